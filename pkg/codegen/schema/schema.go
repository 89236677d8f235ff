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

package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/blang/semver"
)

// Type represents a datatype in the Pulumi Schema. Types created by this package are identical if they are
// equal values.
type Type interface {
	String() string

	isType()
}

type primitiveType struct {
	name string
}

func (t *primitiveType) String() string {
	return t.name
}

func (*primitiveType) isType() {}

var (
	// BoolType represents the set of boolean values.
	BoolType Type = &primitiveType{name: "boolean"}
	// IntType represents the set of arbitrary-precision integer values.
	IntType Type = &primitiveType{name: "integer"}
	// NumberType represents the set of IEEE754 double-precision values.
	NumberType Type = &primitiveType{name: "number"}
	// StringType represents the set of UTF-8 string values.
	StringType Type = &primitiveType{name: "string"}
	// AnyType represents any Pulumi value.
	AnyType Type = &primitiveType{name: "pulumi:pulumi:Any"}
	// JSONType represents any JSON value.
	JSONType Type = &primitiveType{name: "pulumi:pulumi:Json"}
	// AssetType represents an asset.
	AssetType Type = &primitiveType{name: "pulumi:pulumi:Asset"}
	// ArchiveType represents an archive.
	ArchiveType Type = &primitiveType{name: "pulumi:pulumi:Archive"}
)

// IsPrimitiveType returns true if t is one of the scalar primitive types.
func IsPrimitiveType(t Type) bool {
	switch t {
	case BoolType, IntType, NumberType, StringType:
		return true
	default:
		return false
	}
}

// ArrayType represents arrays of particular element types.
type ArrayType struct {
	// ElementType is the element type of the array.
	ElementType Type
}

func (t *ArrayType) String() string {
	return fmt.Sprintf("Array<%v>", t.ElementType)
}

func (*ArrayType) isType() {}

// MapType represents maps from strings to particular element types.
type MapType struct {
	// ElementType is the element type of the map.
	ElementType Type
}

func (t *MapType) String() string {
	return fmt.Sprintf("Map<%v>", t.ElementType)
}

func (*MapType) isType() {}

// OptionalType represents a type that accepts an optional value.
type OptionalType struct {
	// ElementType is the element type of the optional value.
	ElementType Type
}

func (t *OptionalType) String() string {
	return fmt.Sprintf("Optional<%v>", t.ElementType)
}

func (*OptionalType) isType() {}

// UnionType represents values that may be any one of a specified set of types.
type UnionType struct {
	// ElementTypes are the allowable types for the union type.
	ElementTypes []Type
	// Discriminator informs the consumer of an alternative schema based on the value associated with it.
	Discriminator string
	// Mapping is an optional object to hold mappings between payload values and type tokens.
	Mapping map[string]string
}

func (t *UnionType) String() string {
	elements := make([]string, len(t.ElementTypes))
	for i, e := range t.ElementTypes {
		elements[i] = e.String()
	}
	if t.Discriminator != "" {
		return fmt.Sprintf("Union<%v, %v>", strings.Join(elements, ", "), t.Discriminator)
	}
	return fmt.Sprintf("Union<%v>", strings.Join(elements, ", "))
}

func (*UnionType) isType() {}

// ObjectTypes returns the object element types of the union, in declaration order.
func (t *UnionType) ObjectTypes() []*ObjectType {
	var objects []*ObjectType
	for _, e := range t.ElementTypes {
		if o, ok := e.(*ObjectType); ok {
			objects = append(objects, o)
		}
	}
	return objects
}

// ObjectType represents schematized maps from strings to particular types.
type ObjectType struct {
	// Package is the package that defines the resource.
	Package *Package
	// Token is the type's Pulumi type token.
	Token string
	// Description is the description of the type, if any.
	Description string
	// Properties is the list of the type's properties, sorted by name.
	Properties []*Property
	// Cyclic is true if the type participates in a reference cycle.
	Cyclic bool

	properties map[string]*Property
}

func (t *ObjectType) String() string {
	return t.Token
}

func (*ObjectType) isType() {}

// Property returns the property with the given name, if any.
func (t *ObjectType) Property(name string) (*Property, bool) {
	p, ok := t.properties[name]
	return p, ok
}

// Enum contains information about an enum.
type Enum struct {
	// Value is the value of the enum.
	Value interface{}
	// Description is the description of the enum value.
	Description string
	// Name is the name for the enum.
	Name string
	// DeprecationMessage indicates whether or not the value is deprecated.
	DeprecationMessage string
}

// EnumType represents an enum.
type EnumType struct {
	// Package is the type's package.
	Package *Package
	// Token is the type's Pulumi type token.
	Token string
	// Description is the description of the type, if any.
	Description string
	// Elements are the predefined enum values.
	Elements []*Enum
	// ElementType is the underlying type for the enum.
	ElementType Type
}

func (t *EnumType) String() string {
	return t.Token
}

func (*EnumType) isType() {}

// ResourceType represents a reference to a resource defined by this package.
type ResourceType struct {
	// Token is the type's Pulumi type token.
	Token string
	// Resource is the type's underlying resource.
	Resource *Resource
}

func (t *ResourceType) String() string {
	return t.Token
}

func (*ResourceType) isType() {}

// ExternalKind distinguishes the members an external type reference can name.
type ExternalKind string

const (
	// ExternalObject is a reference to an object or enum type of another package.
	ExternalObject ExternalKind = "types"
	// ExternalResource is a reference to a resource of another package.
	ExternalResource ExternalKind = "resources"
)

// ExternalType is a placeholder for a type defined by a declared dependency. Emitters turn it into an import.
type ExternalType struct {
	// Package is the name of the dependency.
	Package string
	// Version is the version of the dependency.
	Version semver.Version
	// Token is the type or resource token within the dependency.
	Token string
	// Kind is the kind of member the token names.
	Kind ExternalKind
	// Module is the member's module within the dependency. The root module is "".
	Module string
	// IsEnum is true if the dependency was loaded and the token names an enum type.
	IsEnum bool
}

func (t *ExternalType) String() string {
	return fmt.Sprintf("%s@v%s#%s", t.Package, t.Version, t.Token)
}

func (*ExternalType) isType() {}

// DefaultValue describes a default value for a property.
type DefaultValue struct {
	// Value specifies a static default value, if any. This value must be representable in the Pulumi schema type
	// system, and its type must be assignable to that of the property to which the default applies.
	Value interface{}
	// Environment specifies a set of environment variables to probe for a default value.
	Environment []string
}

// Property describes an object or resource property.
type Property struct {
	// Name is the name of the property.
	Name string
	// Description is the description of the property, if any.
	Description string
	// Type is the type of the property. Optional properties have an *OptionalType.
	Type Type
	// ConstValue is the constant value for the property, if any.
	ConstValue interface{}
	// DefaultValue is the default value for the property, if any.
	DefaultValue *DefaultValue
	// DeprecationMessage indicates whether or not the property is deprecated.
	DeprecationMessage string
}

// IsRequired returns true if this property is required (i.e. its type is not Optional).
func (p *Property) IsRequired() bool {
	_, optional := p.Type.(*OptionalType)
	return !optional
}

// Resource describes a Pulumi resource.
type Resource struct {
	// Package is the package that defines the resource.
	Package *Package
	// Token is the resource's Pulumi type token.
	Token string
	// Description is the description of the resource, if any.
	Description string
	// InputProperties is the list of the resource's input properties.
	InputProperties []*Property
	// Properties is the list of the resource's output properties.
	Properties []*Property
	// DeprecationMessage indicates whether or not the resource is deprecated.
	DeprecationMessage string
	// IsComponent indicates whether the resource is a ComponentResource.
	IsComponent bool
	// IsOverlay indicates whether the resource is an overlay provided by the package.
	IsOverlay bool
}

// Function describes a Pulumi function.
type Function struct {
	// Package is the package that defines the function.
	Package *Package
	// Token is the function's Pulumi type token.
	Token string
	// Description is the description of the function, if any.
	Description string
	// Inputs is the bag of input values for the function, if any.
	Inputs *ObjectType
	// Outputs is the bag of output values for the function, if any.
	Outputs *ObjectType
	// DeprecationMessage indicates whether or not the function is deprecated.
	DeprecationMessage string
	// IsOverlay indicates whether the function is an overlay provided by the package.
	IsOverlay bool
}

// Dependency is an external package whose types may be referenced.
type Dependency struct {
	Name    string
	Version semver.Version
}

// Package describes a Pulumi package. A bound Package is immutable and safe for concurrent readers.
type Package struct {
	// Name is the unqualified name of the package.
	Name string
	// DisplayName is the human-friendly name of the package.
	DisplayName string
	// Version is the version of the package, if any.
	Version *semver.Version
	// Description is the description of the package.
	Description string
	// Keywords is the list of keywords that are associated with the package, if any.
	Keywords []string
	// Homepage is the package's homepage.
	Homepage string
	// License indicates which license is used for the package's contents.
	License string
	// Repository is the URL at which the source for the package can be found.
	Repository string
	// Publisher is the name of the person or organization that authored and published the package.
	Publisher string
	// Dependencies are the declared external packages.
	Dependencies []Dependency

	// Types is the list of non-resource types defined by the package, sorted by token.
	Types []Type
	// Resources is the list of resource types defined by the package, sorted by token.
	Resources []*Resource
	// Functions is the list of functions defined by the package, sorted by token.
	Functions []*Function
	// Language specifies additional language-specific data about the package.
	Language map[string]map[string]interface{}

	moduleFormat  *regexp.Regexp
	typeTable     map[string]Type
	resourceTable map[string]*Resource
	functionTable map[string]*Function
	cycles        map[*ObjectType]int
}

// LookupType finds a named type by token.
func (pkg *Package) LookupType(token string) (Type, bool) {
	t, ok := pkg.typeTable[token]
	return t, ok
}

// LookupResource finds a resource by token.
func (pkg *Package) LookupResource(token string) (*Resource, bool) {
	r, ok := pkg.resourceTable[token]
	return r, ok
}

// LookupFunction finds a function by token.
func (pkg *Package) LookupFunction(token string) (*Function, bool) {
	f, ok := pkg.functionTable[token]
	return f, ok
}

// SameCycle returns true if a and b are members of the same reference cycle.
func (pkg *Package) SameCycle(a, b *ObjectType) bool {
	ia, ok := pkg.cycles[a]
	if !ok {
		return false
	}
	ib, ok := pkg.cycles[b]
	return ok && ia == ib
}

// TokenToModule extracts a package member's module name from its token. The root module is "".
func (pkg *Package) TokenToModule(tok string) string {
	components := strings.Split(tok, ":")
	if len(components) != 3 {
		return ""
	}

	switch components[1] {
	case "providers", "index", "":
		return ""
	}

	if pkg.moduleFormat == nil {
		return components[1]
	}
	matches := pkg.moduleFormat.FindStringSubmatch(components[1])
	if len(matches) < 2 || strings.HasPrefix(matches[1], "index") {
		return ""
	}
	return matches[1]
}

// Modules returns the sorted set of module names that contain at least one member. The root module is "".
func (pkg *Package) Modules() []string {
	seen := map[string]struct{}{}
	add := func(tok string) {
		seen[pkg.TokenToModule(tok)] = struct{}{}
	}
	for _, t := range pkg.Types {
		add(TypeToken(t))
	}
	for _, r := range pkg.Resources {
		add(r.Token)
	}
	for _, f := range pkg.Functions {
		add(f.Token)
	}
	modules := make([]string, 0, len(seen))
	for m := range seen {
		modules = append(modules, m)
	}
	sort.Strings(modules)
	return modules
}

// TokenName returns the member name of a token, i.e. the part after the last colon.
func TokenName(tok string) string {
	components := strings.Split(tok, ":")
	return components[len(components)-1]
}

// TypeToken returns the token of a named type, or "" for anonymous types.
func TypeToken(t Type) string {
	switch t := t.(type) {
	case *ObjectType:
		return t.Token
	case *EnumType:
		return t.Token
	case *ResourceType:
		return t.Token
	case *ExternalType:
		return t.Token
	default:
		return ""
	}
}

// UnwrapOptional returns the element type of an optional type, or t itself.
func UnwrapOptional(t Type) Type {
	if o, ok := t.(*OptionalType); ok {
		return o.ElementType
	}
	return t
}
