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

import "context"

// RegisterResourceRequest describes a resource registration, a read of an existing resource, or the hydration of a
// previously registered resource by URN.
type RegisterResourceRequest struct {
	Type         string
	Name         string
	Parent       URN
	Custom       bool
	Remote       bool
	Inputs       map[string]interface{}
	Dependencies []URN
	Version      string

	// ID is set when reading an existing provider resource.
	ID ID
	// URN is set when hydrating a resource that was registered earlier.
	URN URN
}

// RegisterResourceResponse carries the engine's answer to a registration.
type RegisterResourceResponse struct {
	URN     URN
	ID      ID
	Outputs map[string]interface{}
}

// InvokeRequest describes a function invocation.
type InvokeRequest struct {
	Token   string
	Args    map[string]interface{}
	Version string
}

// ResourceMonitor is the engine endpoint a Context registers resources with. The engine's wire protocol lives
// behind this interface.
type ResourceMonitor interface {
	RegisterResource(ctx context.Context, req RegisterResourceRequest) (RegisterResourceResponse, error)
	Invoke(ctx context.Context, req InvokeRequest) (map[string]interface{}, error)
}
