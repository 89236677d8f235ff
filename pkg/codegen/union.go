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

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pulumi/inflector"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/cgstrings"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
)

// DefaultDiscriminant is the name of the discriminant property synthesized for object unions that do not declare one.
const DefaultDiscriminant = "kind"

// UnionVariant is one member of an object union.
type UnionVariant struct {
	// Tag is the discriminant value that selects the variant.
	Tag string
	// Type is the variant's object type.
	Type *schema.ObjectType
}

// ObjectUnion is a union whose members are all object types, rendered as a discriminated union.
type ObjectUnion struct {
	// Owner is the token of the type, resource, or function that declares the union property.
	Owner string
	// Property is the name of the declaring property.
	Property string
	// Name is the uncased name of the union type, e.g. "EC2ServiceTaskDefinitionVolume".
	Name string
	// Module is the module of the owner.
	Module string
	// Discriminant is the property that carries the variant tag.
	Discriminant string
	// Synthesized is true if the schema did not declare the discriminant.
	Synthesized bool
	// Variants are the union members in declaration order.
	Variants []UnionVariant
	// Union is the underlying schema type.
	Union *schema.UnionType
}

// Variant returns the variant for the given object type.
func (u *ObjectUnion) Variant(t *schema.ObjectType) (UnionVariant, bool) {
	for _, v := range u.Variants {
		if v.Type == t {
			return v, true
		}
	}
	return UnionVariant{}, false
}

// NewObjectUnion builds the discriminated form of a union. It returns nil if any member is not an object type.
func NewObjectUnion(pkg *schema.Package, owner, property string, u *schema.UnionType) *ObjectUnion {
	objects := u.ObjectTypes()
	if len(objects) == 0 || len(objects) != len(u.ElementTypes) {
		return nil
	}

	result := &ObjectUnion{
		Owner:        owner,
		Property:     property,
		Name:         schema.TokenName(owner) + cgstrings.UppercaseFirst(inflector.Singularize(property)),
		Module:       pkg.TokenToModule(owner),
		Discriminant: u.Discriminator,
		Union:        u,
	}
	if result.Discriminant == "" {
		result.Discriminant, result.Synthesized = synthesizeDiscriminant(objects), true
	}

	tags := map[string]string{}
	for value, tok := range u.Mapping {
		tags[tok] = value
	}
	for _, o := range objects {
		tag, ok := tags[o.Token]
		if !ok && !result.Synthesized {
			if p, has := o.Property(result.Discriminant); has {
				if s, isString := p.ConstValue.(string); isString {
					tag, ok = s, true
				}
			}
		}
		if !ok {
			tag = schema.TokenName(o.Token)
		}
		result.Variants = append(result.Variants, UnionVariant{Tag: tag, Type: o})
	}
	return result
}

// synthesizeDiscriminant picks "kind", or "kind2", "kind3", ... if a member already has a property of that name.
func synthesizeDiscriminant(objects []*schema.ObjectType) string {
	taken := func(name string) bool {
		for _, o := range objects {
			if _, ok := o.Property(name); ok {
				return true
			}
		}
		return false
	}
	name := DefaultDiscriminant
	for i := 2; taken(name); i++ {
		name = DefaultDiscriminant + strconv.Itoa(i)
	}
	return name
}

// UnionTable indexes the object unions of a package by declaring owner and property.
type UnionTable struct {
	byProperty map[string]*ObjectUnion
	unions     []*ObjectUnion
}

func unionKey(owner, property string) string {
	return owner + "/" + property
}

// Lookup finds the object union declared by the given property, if any.
func (t *UnionTable) Lookup(owner, property string) (*ObjectUnion, bool) {
	u, ok := t.byProperty[unionKey(owner, property)]
	return u, ok
}

// Unions returns all object unions sorted by name.
func (t *UnionTable) Unions() []*ObjectUnion {
	return t.unions
}

// InModule returns the object unions whose owner lives in the given module.
func (t *UnionTable) InModule(module string) []*ObjectUnion {
	var result []*ObjectUnion
	for _, u := range t.unions {
		if u.Module == module {
			result = append(result, u)
		}
	}
	return result
}

// SynthesizedDiscriminants returns a string property carrying the variant tag for every union with a synthesized
// discriminant that obj belongs to. Emitters add these to the variant's shape.
func (t *UnionTable) SynthesizedDiscriminants(obj *schema.ObjectType) []*schema.Property {
	var result []*schema.Property
	seen := NewStringSet()
	for _, u := range t.unions {
		v, ok := u.Variant(obj)
		if !ok || !u.Synthesized || seen.Has(u.Discriminant) {
			continue
		}
		seen.Add(u.Discriminant)
		result = append(result, &schema.Property{
			Name:       u.Discriminant,
			Type:       &schema.OptionalType{ElementType: schema.StringType},
			ConstValue: v.Tag,
		})
	}
	return result
}

// CollectObjectUnions finds every property of the package whose type is, or contains, a union of object types.
// Synthesized names that collide with a declared type get a "Union" suffix.
func CollectObjectUnions(pkg *schema.Package) (*UnionTable, error) {
	table := &UnionTable{byProperty: map[string]*ObjectUnion{}}
	declared := NewStringSet()
	for _, t := range pkg.Types {
		declared.Add(pkg.TokenToModule(schema.TypeToken(t)) + ":" + schema.TokenName(schema.TypeToken(t)))
	}
	names := map[string]*ObjectUnion{}

	var err error
	VisitPackageProperties(pkg, func(owner string, p *schema.Property) {
		if err != nil {
			return
		}
		u := findUnion(p.Type)
		if u == nil {
			return
		}
		ou := NewObjectUnion(pkg, owner, p.Name, u)
		if ou == nil {
			return
		}
		key := unionKey(owner, p.Name)
		if existing, ok := table.byProperty[key]; ok {
			if existing.Union != u {
				err = fmt.Errorf("%s: property %q declares two different unions", owner, p.Name)
			}
			return
		}
		if declared.Has(ou.Module + ":" + ou.Name) {
			ou.Name += "Union"
		}
		if other, ok := names[ou.Module+":"+ou.Name]; ok {
			err = fmt.Errorf("union types for %s.%s and %s.%s would both be named %s",
				other.Owner, other.Property, owner, p.Name, ou.Name)
			return
		}
		names[ou.Module+":"+ou.Name] = ou
		table.byProperty[key] = ou
		table.unions = append(table.unions, ou)
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(table.unions, func(i, j int) bool {
		if table.unions[i].Module != table.unions[j].Module {
			return table.unions[i].Module < table.unions[j].Module
		}
		return table.unions[i].Name < table.unions[j].Name
	})
	return table, nil
}

// findUnion returns the union at the core of a property type, looking through optionals, arrays and maps.
func findUnion(t schema.Type) *schema.UnionType {
	for {
		switch tt := t.(type) {
		case *schema.OptionalType:
			t = tt.ElementType
		case *schema.ArrayType:
			t = tt.ElementType
		case *schema.MapType:
			t = tt.ElementType
		case *schema.UnionType:
			return tt
		default:
			return nil
		}
	}
}
