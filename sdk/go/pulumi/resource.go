// Copyright 2016-2024, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pulumi

import (
	"github.com/pulumi/pulumi-sdkgen/pkg/util/contract"
)

type (
	// ID is the provider's name for a custom resource.
	ID string
	// URN identifies a resource within a stack. The monitor assigns it at registration.
	URN string
)

// ResourceState is the base for all resource objects. Generated resource types embed it and add typed outputs.
type ResourceState struct {
	urn Output[URN]

	typ    string
	name   string
	parent Resource
}

// URN resolves once the registration completes.
func (s *ResourceState) URN() Output[URN] {
	return s.urn
}

// Type is the resource's type token.
func (s *ResourceState) Type() string {
	return s.typ
}

// Name is the resource's logical name.
func (s *ResourceState) Name() string {
	return s.name
}

func (s *ResourceState) getState() *ResourceState {
	return s
}

// CustomResourceState is the base for resources managed directly by a provider.
type CustomResourceState struct {
	ResourceState

	id Output[ID]
}

// ID is the provider-assigned unique identifier for this resource.
func (s *CustomResourceState) ID() Output[ID] {
	return s.id
}

func (s *CustomResourceState) getCustomState() *CustomResourceState {
	return s
}

// Resource represents a cloud resource managed by Pulumi.
type Resource interface {
	// URN returns the resource's URN.
	URN() Output[URN]

	getState() *ResourceState
}

// CustomResource is a cloud resource whose create, read, update, and delete (CRUD) operations are managed by
// performing external operations on some physical entity.
type CustomResource interface {
	Resource

	// ID returns the provider ID. It is empty for resources the provider has not created yet.
	ID() Output[ID]

	getCustomState() *CustomResourceState
}

type resourceOptions struct {
	Parent    Resource
	DependsOn []Resource
	Version   string
	URN       string
}

type invokeOptions struct {
	Parent  Resource
	Version string
}

// ResourceOption is an optional argument to a resource constructor.
type ResourceOption interface {
	applyResourceOption(*resourceOptions)
}

// InvokeOption is an optional argument to a function invocation.
type InvokeOption interface {
	applyInvokeOption(*invokeOptions)
}

// ResourceOrInvokeOption applies to both resource constructors and invocations.
type ResourceOrInvokeOption interface {
	ResourceOption
	InvokeOption
}

type resourceOption func(*resourceOptions)

func (o resourceOption) applyResourceOption(opts *resourceOptions) {
	o(opts)
}

type resourceOrInvokeOption func(ro *resourceOptions, io *invokeOptions)

func (o resourceOrInvokeOption) applyResourceOption(opts *resourceOptions) {
	o(opts, nil)
}

func (o resourceOrInvokeOption) applyInvokeOption(opts *invokeOptions) {
	o(nil, opts)
}

// last value wins for scalars; lists are appended.
func merge(opts ...ResourceOption) *resourceOptions {
	options := &resourceOptions{}
	for _, o := range opts {
		if o != nil {
			o.applyResourceOption(options)
		}
	}
	return options
}

func mergeInvokeOptions(opts ...InvokeOption) *invokeOptions {
	options := &invokeOptions{}
	for _, o := range opts {
		if o != nil {
			o.applyInvokeOption(options)
		}
	}
	return options
}

// DependsOn is an optional array of explicit dependencies on other resources.
func DependsOn(o []Resource) ResourceOption {
	return resourceOption(func(ro *resourceOptions) {
		ro.DependsOn = append(ro.DependsOn, o...)
	})
}

// Parent sets the parent resource to which this resource or invoke belongs.
func Parent(r Resource) ResourceOrInvokeOption {
	return resourceOrInvokeOption(func(ro *resourceOptions, io *invokeOptions) {
		switch {
		case ro != nil:
			ro.Parent = r
		case io != nil:
			io.Parent = r
		}
	})
}

// Version is an optional version, corresponding to the version of the provider plugin that should be used.
func Version(o string) ResourceOrInvokeOption {
	return resourceOrInvokeOption(func(ro *resourceOptions, io *invokeOptions) {
		switch {
		case ro != nil:
			ro.Version = o
		case io != nil:
			io.Version = o
		}
	})
}

// URN_ is an optional URN of a previously-registered resource of this type to read from the engine.
//
//nolint:revive
func URN_(o string) ResourceOption {
	return resourceOption(func(ro *resourceOptions) {
		ro.URN = o
	})
}

func checkResource(resource Resource) {
	contract.Requiref(resource != nil, "resource", "must not be nil")
}
