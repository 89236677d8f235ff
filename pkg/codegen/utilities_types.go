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

package codegen

import "github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"

// Usage records whether an object type is reachable from input properties, output properties, or both.
type Usage struct {
	Input  bool
	Output bool
}

func visitTypeClosure(t schema.Type, visitor func(t schema.Type), seen map[schema.Type]struct{}) {
	if _, ok := seen[t]; ok {
		return
	}
	seen[t] = struct{}{}

	visitor(t)

	switch st := t.(type) {
	case *schema.OptionalType:
		visitTypeClosure(st.ElementType, visitor, seen)
	case *schema.ArrayType:
		visitTypeClosure(st.ElementType, visitor, seen)
	case *schema.MapType:
		visitTypeClosure(st.ElementType, visitor, seen)
	case *schema.ObjectType:
		for _, p := range st.Properties {
			visitTypeClosure(p.Type, visitor, seen)
		}
	case *schema.UnionType:
		for _, e := range st.ElementTypes {
			visitTypeClosure(e, visitor, seen)
		}
	}
}

// VisitTypeClosure calls visitor once for every type reachable from the given properties.
func VisitTypeClosure(properties []*schema.Property, visitor func(t schema.Type)) {
	seen := map[schema.Type]struct{}{}
	for _, p := range properties {
		visitTypeClosure(p.Type, visitor, seen)
	}
}

// VisitPackageProperties calls visitor for every property of every object type, resource and function in the
// package, in token order. owner is the token of the declaring member.
func VisitPackageProperties(pkg *schema.Package, visitor func(owner string, p *schema.Property)) {
	for _, t := range pkg.Types {
		if o, ok := t.(*schema.ObjectType); ok {
			for _, p := range o.Properties {
				visitor(o.Token, p)
			}
		}
	}
	for _, r := range pkg.Resources {
		for _, p := range r.InputProperties {
			visitor(r.Token, p)
		}
		for _, p := range r.Properties {
			visitor(r.Token, p)
		}
	}
	for _, f := range pkg.Functions {
		for _, o := range []*schema.ObjectType{f.Inputs, f.Outputs} {
			if o == nil {
				continue
			}
			for _, p := range o.Properties {
				visitor(f.Token, p)
			}
		}
	}
}

// ObjectTypeUsage computes, for every named object type of the package, whether it is used as an input, an output,
// or both. Types that no resource or function reaches are treated as both.
func ObjectTypeUsage(pkg *schema.Package) map[*schema.ObjectType]Usage {
	usage := map[*schema.ObjectType]Usage{}
	mark := func(properties []*schema.Property, input bool) {
		VisitTypeClosure(properties, func(t schema.Type) {
			o, ok := t.(*schema.ObjectType)
			if !ok || o.Package != pkg {
				return
			}
			u := usage[o]
			if input {
				u.Input = true
			} else {
				u.Output = true
			}
			usage[o] = u
		})
	}

	for _, r := range pkg.Resources {
		mark(r.InputProperties, true)
		mark(r.Properties, false)
	}
	for _, f := range pkg.Functions {
		if f.Inputs != nil {
			mark(f.Inputs.Properties, true)
		}
		if f.Outputs != nil {
			mark(f.Outputs.Properties, false)
		}
	}
	for _, t := range pkg.Types {
		if o, ok := t.(*schema.ObjectType); ok {
			if _, reached := usage[o]; !reached {
				usage[o] = Usage{Input: true, Output: true}
			}
		}
	}
	return usage
}
