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
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/blang/semver"

	"github.com/pulumi/pulumi-sdkgen/pkg/util/logging"
)

// ResourceModule constructs the resources of one module of a package by type token. Generated SDKs register one per
// module from their init functions.
type ResourceModule interface {
	Version() semver.Version
	Construct(ctx *Context, name, typ, urn string) (Resource, error)
}

// UnknownResourceTypeError is returned when hydrating a resource whose type token no registered module knows.
type UnknownResourceTypeError struct {
	Token string
}

func (e *UnknownResourceTypeError) Error() string {
	return fmt.Sprintf("unknown resource type %q", e.Token)
}

type moduleRegistry struct {
	mu      sync.Mutex
	sealed  bool
	modules map[string]ResourceModule
}

func newModuleRegistry() *moduleRegistry {
	return &moduleRegistry{modules: map[string]ResourceModule{}}
}

func moduleKey(pkg, mod string) string {
	return pkg + ":" + mod
}

func (r *moduleRegistry) register(pkg, mod string, module ResourceModule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := moduleKey(pkg, mod)
	if r.sealed {
		panic(fmt.Sprintf("resource module %s registered after the first lookup", key))
	}
	if _, has := r.modules[key]; has {
		panic(fmt.Sprintf("duplicate resource module %s", key))
	}
	logging.V(7).Infof("registered resource module %s@%v", key, module.Version())
	r.modules[key] = module
}

func (r *moduleRegistry) lookup(token string) (ResourceModule, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sealed = true
	components := strings.Split(token, ":")
	if len(components) != 3 {
		return nil, false
	}
	module, ok := r.modules[moduleKey(components[0], components[1])]
	return module, ok
}

var resourceModules = newModuleRegistry()

// RegisterResourceModule registers a module that constructs resources of package pkg and module mod. Registration
// must happen from init functions: registering a module twice, or after the first hydration, panics.
func RegisterResourceModule(pkg, mod string, module ResourceModule) {
	resourceModules.register(pkg, mod, module)
}

type unionInfo struct {
	discriminant string
	variants     map[string]reflect.Type
}

var (
	unionsMu sync.RWMutex
	unions   = map[reflect.Type]unionInfo{}
)

// RegisterUnion registers the variants of a discriminated union interface. Decoded values whose target type is iface
// select their variant by the value of the discriminant property.
func RegisterUnion(iface reflect.Type, discriminant string, variants map[string]reflect.Type) {
	if iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("union %v must be an interface type", iface))
	}
	for tag, v := range variants {
		if !v.Implements(iface) {
			panic(fmt.Sprintf("union %v: variant %q (%v) does not implement it", iface, tag, v))
		}
	}

	unionsMu.Lock()
	defer unionsMu.Unlock()
	if _, has := unions[iface]; has {
		panic(fmt.Sprintf("duplicate union %v", iface))
	}
	unions[iface] = unionInfo{discriminant: discriminant, variants: variants}
}

func lookupUnion(t reflect.Type) (unionInfo, bool) {
	unionsMu.RLock()
	defer unionsMu.RUnlock()
	u, ok := unions[t]
	return u, ok
}
