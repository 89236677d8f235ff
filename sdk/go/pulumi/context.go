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
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/pulumi/pulumi-sdkgen/pkg/util/logging"
)

// Context handles registration of resources and exposes metadata about the current deployment context.
type Context struct {
	ctx     context.Context
	info    RunInfo
	monitor ResourceMonitor
	modules *moduleRegistry

	rpcs     sync.WaitGroup // outstanding registrations.
	errsLock sync.Mutex
	errs     *multierror.Error
}

// NewContext creates a fresh run context out of the given metadata.
func NewContext(ctx context.Context, info RunInfo) (*Context, error) {
	if info.Monitor == nil {
		return nil, errors.New("no resource monitor configured")
	}
	return &Context{
		ctx:     ctx,
		info:    info,
		monitor: info.Monitor,
		modules: resourceModules,
	}, nil
}

// Context returns the context.Context that bounds this run.
func (ctx *Context) Context() context.Context { return ctx.ctx }

// Project returns the current project name.
func (ctx *Context) Project() string { return ctx.info.Project }

// Stack returns the current stack name being deployed into.
func (ctx *Context) Stack() string { return ctx.info.Stack }

// Invoke will invoke a provider's function, identified by its token tok. This function call is synchronous.
func (ctx *Context) Invoke(tok string, args interface{}, result interface{}, opts ...InvokeOption) error {
	if tok == "" {
		return errors.New("invoke token must not be empty")
	}
	options := mergeInvokeOptions(opts...)

	inputs, err := marshalInputs(args)
	if err != nil {
		return fmt.Errorf("marshaling arguments of %s: %w", tok, err)
	}

	logging.V(9).Infof("Invoke(%s, #args=%d): RPC call being made synchronously", tok, len(inputs))
	outputs, err := ctx.monitor.Invoke(ctx.ctx, InvokeRequest{Token: tok, Args: inputs, Version: options.Version})
	if err != nil {
		return fmt.Errorf("invoke of %s failed: %w", tok, err)
	}
	if result == nil || outputs == nil {
		return nil
	}
	if err := decodeOutput(outputs, result); err != nil {
		return fmt.Errorf("decoding result of %s: %w", tok, err)
	}
	return nil
}

// RegisterResource creates and registers a new resource object. t is the fully qualified type token and name is
// the "name" part to use in creating a stable and globally unique URN for the object. props holds the arguments;
// registration is asynchronous and the resource's outputs resolve once the monitor answers.
func (ctx *Context) RegisterResource(
	t, name string, props interface{}, resource Resource, opts ...ResourceOption,
) error {
	return ctx.registerResource(t, name, props, resource, false, "", opts...)
}

// RegisterComponentResource registers a component implemented in this program.
func (ctx *Context) RegisterComponentResource(
	t, name string, resource Resource, opts ...ResourceOption,
) error {
	return ctx.registerResource(t, name, nil, resource, false, "", opts...)
}

// RegisterRemoteComponentResource registers a component implemented by the package's provider plugin.
func (ctx *Context) RegisterRemoteComponentResource(
	t, name string, props interface{}, resource Resource, opts ...ResourceOption,
) error {
	return ctx.registerResource(t, name, props, resource, true, "", opts...)
}

// ReadResource reads an existing custom resource's state from the resource monitor. t is the fully qualified type
// token and name is the "name" part to use in creating a stable and globally unique URN for the object. id is the
// unique id of the resource, if any, and props contains any state necessary to perform the read.
func (ctx *Context) ReadResource(
	t, name string, id ID, props interface{}, resource CustomResource, opts ...ResourceOption,
) error {
	if id == "" {
		return errors.New("resource ID is required for lookup and cannot be empty")
	}
	return ctx.registerResource(t, name, props, resource, false, id, opts...)
}

// Hydrate constructs the resource registered earlier under urn, using the module registered for token's package and
// module. Tokens that no module knows yield an *UnknownResourceTypeError.
func (ctx *Context) Hydrate(token, name string, urn URN) (Resource, error) {
	module, ok := ctx.modules.lookup(token)
	if !ok {
		return nil, &UnknownResourceTypeError{Token: token}
	}
	logging.V(7).Infof("hydrating %s %s from %s", token, name, urn)
	return module.Construct(ctx, name, token, string(urn))
}

func (ctx *Context) registerResource(
	t, name string, props interface{}, resource Resource, remote bool, id ID, opts ...ResourceOption,
) error {
	if t == "" {
		return errors.New("resource type argument cannot be empty")
	}
	if name == "" {
		return errors.New("resource name argument (for URN creation) cannot be empty")
	}
	checkResource(resource)

	options := merge(opts...)
	inputs, err := marshalInputs(props)
	if err != nil {
		return fmt.Errorf("marshaling inputs of %s %s: %w", t, name, err)
	}
	fields, err := bindOutputFields(resource)
	if err != nil {
		return err
	}

	state := resource.getState()
	state.typ, state.name, state.parent = t, name, options.Parent
	var resolveURN func(URN)
	var rejectURN func(error)
	state.urn, resolveURN, rejectURN = NewOutput[URN]()

	var resolveID func(ID)
	var rejectID func(error)
	custom, isCustom := resource.(CustomResource)
	if isCustom {
		cs := custom.getCustomState()
		cs.id, resolveID, rejectID = NewOutput[ID]()
	}

	req := RegisterResourceRequest{
		Type:    t,
		Name:    name,
		Custom:  isCustom,
		Remote:  remote,
		Inputs:  inputs,
		Version: options.Version,
		ID:      id,
		URN:     URN(options.URN),
	}

	ctx.rpcs.Add(1)
	go func() {
		defer ctx.rpcs.Done()

		resp, err := ctx.register(req, options)
		if err != nil {
			err = fmt.Errorf("registering %s %s: %w", t, name, err)
			ctx.recordError(err)
			rejectURN(err)
			if isCustom {
				rejectID(err)
			}
			for _, f := range fields {
				f.reject(err)
			}
			return
		}

		resolveURN(resp.URN)
		if isCustom {
			resolveID(resp.ID)
		}
		for prop, f := range fields {
			raw, ok := resp.Outputs[prop]
			if err := f.resolve(raw, ok); err != nil {
				ctx.recordError(fmt.Errorf("decoding output %s of %s %s: %w", prop, t, name, err))
			}
		}
	}()
	return nil
}

// register waits for the URNs of the parent and explicit dependencies, then calls the monitor.
func (ctx *Context) register(req RegisterResourceRequest, options *resourceOptions) (RegisterResourceResponse, error) {
	if options.Parent != nil {
		parent, err := options.Parent.URN().Await(ctx.ctx)
		if err != nil {
			return RegisterResourceResponse{}, fmt.Errorf("awaiting parent: %w", err)
		}
		req.Parent = parent
	}
	for _, dep := range options.DependsOn {
		urn, err := dep.URN().Await(ctx.ctx)
		if err != nil {
			return RegisterResourceResponse{}, fmt.Errorf("awaiting dependency: %w", err)
		}
		req.Dependencies = append(req.Dependencies, urn)
	}

	logging.V(9).Infof("RegisterResource(%s, %s): RPC call being made", req.Type, req.Name)
	resp, err := ctx.monitor.RegisterResource(ctx.ctx, req)
	if err != nil {
		return RegisterResourceResponse{}, err
	}
	logging.V(9).Infof("RegisterResource(%s, %s): success: %s %s #outs=%d",
		req.Type, req.Name, resp.URN, resp.ID, len(resp.Outputs))
	return resp, nil
}

// bindOutputFields initializes every tagged Output field of resource and returns their resolvers keyed by property
// name.
func bindOutputFields(resource Resource) (map[string]outputResolver, error) {
	rv := reflect.ValueOf(resource)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("resource must be a non-nil pointer to a struct, got %T", resource)
	}
	rv = rv.Elem()

	fields := map[string]outputResolver{}
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Type().Field(i)
		tag := field.Tag.Get("pulumi")
		if tag == "" || !field.IsExported() {
			continue
		}
		binder, ok := rv.Field(i).Addr().Interface().(outputBinder)
		if !ok {
			continue
		}
		fields[tag] = binder.bindOutput(decodeOutput)
	}
	return fields, nil
}

func (ctx *Context) recordError(err error) {
	ctx.errsLock.Lock()
	defer ctx.errsLock.Unlock()
	ctx.errs = multierror.Append(ctx.errs, err)
}

// Wait blocks until every outstanding registration has been answered and returns the registrations that failed.
func (ctx *Context) Wait() error {
	ctx.rpcs.Wait()

	ctx.errsLock.Lock()
	defer ctx.errsLock.Unlock()
	return ctx.errs.ErrorOrNil()
}
