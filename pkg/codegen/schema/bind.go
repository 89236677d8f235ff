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
	"math"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/golang/glog"
	"github.com/hashicorp/hcl/v2"
)

// BindOptions configure schema binding.
type BindOptions struct {
	// Loader, if set, is used to verify references into declared dependencies.
	Loader Loader
}

// ImportSpec converts a serializable PackageSpec into a Package. Any error diagnostics are returned as a
// *DiagnosticsError; the typed errors it carries are reachable with errors.As.
func ImportSpec(spec PackageSpec, opts BindOptions) (*Package, error) {
	pkg, diags, err := BindSpec(spec, opts)
	if err != nil {
		return nil, err
	}
	for _, d := range diags {
		glog.Warningf("%s", d.Summary)
	}
	return pkg, nil
}

// BindSpec converts a serializable PackageSpec into a Package.
//
// Binding runs in two passes: the first declares every object type, enum type, and resource by token; the second
// binds property types by looking tokens up in that table. This lets object types refer to one another in any order,
// including cyclically.
//
// Diagnostics carry JSON pointers to the offending entities. If any diagnostic is an error, the returned error is a
// *DiagnosticsError and the package is nil.
func BindSpec(spec PackageSpec, opts BindOptions) (*Package, hcl.Diagnostics, error) {
	b := &binder{
		spec:       spec,
		loader:     opts.Loader,
		objects:    map[string]*ObjectType{},
		enums:      map[string]*EnumType{},
		resources:  map[string]*ResourceType{},
		arrays:     map[Type]*ArrayType{},
		maps:       map[Type]*MapType{},
		optionals:  map[Type]*OptionalType{},
		unions:     map[string]*UnionType{},
		externals:  map[string]*ExternalType{},
		deps:       map[string]Dependency{},
		loadedDeps: map[string]*Package{},
		refs:       newReferenceGraph(),
	}

	b.bindPackageInfo()
	b.validateTokens()
	if b.diags.HasErrors() {
		return nil, b.diags, newDiagnosticsError(b.diags)
	}

	b.declareMembers()
	b.bindTypes()
	b.bindResources()
	b.bindFunctions()
	b.reportUnresolved()
	if b.diags.HasErrors() {
		return nil, b.diags, newDiagnosticsError(b.diags)
	}

	if err := b.markCycles(); err != nil {
		return nil, b.diags, err
	}
	b.finish()
	return b.pkg, b.diags, nil
}

type pendingUnresolved struct {
	path     string
	owner    string
	property string
	err      *UnresolvedTypeError
}

type binder struct {
	spec   PackageSpec
	pkg    *Package
	loader Loader
	diags  hcl.Diagnostics

	objects   map[string]*ObjectType
	enums     map[string]*EnumType
	resources map[string]*ResourceType
	arrays    map[Type]*ArrayType
	maps      map[Type]*MapType
	optionals map[Type]*OptionalType
	unions    map[string]*UnionType
	externals map[string]*ExternalType

	deps       map[string]Dependency
	loadedDeps map[string]*Package

	refs       *referenceGraph
	unresolved []pendingUnresolved
}

var (
	tokenNameRE   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	tokenModuleRE = regexp.MustCompile(`^[a-zA-Z][-a-zA-Z0-9_/]*$`)
)

func (b *binder) errorf(path, member, message string, args ...interface{}) {
	b.diags = b.diags.Append(schemaErrorf(path, member, message, args...))
}

func (b *binder) bindPackageInfo() {
	spec := b.spec
	pkg := &Package{
		Name:          spec.Name,
		DisplayName:   spec.DisplayName,
		Description:   spec.Description,
		Keywords:      spec.Keywords,
		Homepage:      spec.Homepage,
		License:       spec.License,
		Repository:    spec.Repository,
		Publisher:     spec.Publisher,
		Language:      spec.Language,
		typeTable:     map[string]Type{},
		resourceTable: map[string]*Resource{},
		functionTable: map[string]*Function{},
		cycles:        map[*ObjectType]int{},
	}
	b.pkg = pkg

	if spec.Name == "" {
		b.errorf("#/name", "", "missing required field")
	}

	if spec.Version != "" {
		v, err := semver.ParseTolerant(spec.Version)
		if err != nil {
			b.errorf("#/version", "", "invalid version %q: %v", spec.Version, err)
		} else {
			pkg.Version = &v
		}
	}

	if spec.Meta != nil && spec.Meta.ModuleFormat != "" {
		format, err := regexp.Compile(spec.Meta.ModuleFormat)
		switch {
		case err != nil:
			b.errorf("#/meta/moduleFormat", "", "invalid module format: %v", err)
		case format.NumSubexp() < 1:
			b.errorf("#/meta/moduleFormat", "", "module format must define one capturing group")
		default:
			pkg.moduleFormat = format
		}
	}

	for i, dep := range spec.Dependencies {
		path := fmt.Sprintf("#/dependencies/%d", i)
		if dep.Name == spec.Name {
			b.errorf(path+"/name", "", "a package cannot depend on itself")
			continue
		}
		if _, dup := b.deps[dep.Name]; dup {
			b.errorf(path+"/name", "", "duplicate dependency %q", dep.Name)
			continue
		}
		v, err := semver.ParseTolerant(dep.Version)
		if err != nil {
			b.errorf(path+"/version", "", "invalid version %q: %v", dep.Version, err)
			continue
		}
		d := Dependency{Name: dep.Name, Version: v}
		b.deps[dep.Name] = d
		pkg.Dependencies = append(pkg.Dependencies, d)
	}
}

// validateTokens checks that every member token is well-formed and unique. Tokens that differ only in case are
// rejected because they produce colliding file names on case-insensitive filesystems.
func (b *binder) validateTokens() {
	seen := map[string]string{}
	check := func(section, tok string) {
		path := memberPath(section, tok)
		components := strings.Split(tok, ":")
		switch {
		case len(components) != 3:
			b.errorf(path, tok, "malformed token: expected pkg:module:Name")
			return
		case components[0] != b.spec.Name:
			b.errorf(path, tok, "token package %q does not match package name %q", components[0], b.spec.Name)
			return
		case !tokenModuleRE.MatchString(components[1]):
			b.errorf(path, tok, "malformed token: invalid module %q", components[1])
			return
		case !tokenNameRE.MatchString(components[2]):
			b.errorf(path, tok, "malformed token: invalid name %q", components[2])
			return
		}

		key := strings.ToLower(tok)
		if other, dup := seen[key]; dup {
			if other == tok {
				b.errorf(path, tok, "duplicate type token %q", tok)
			} else {
				b.errorf(path, tok, "duplicate type token %q (conflicts with %q)", tok, other)
			}
			return
		}
		seen[key] = tok
	}

	for _, tok := range sortedMapKeys(b.spec.Types) {
		check("types", tok)
	}
	for _, tok := range sortedMapKeys(b.spec.Resources) {
		check("resources", tok)
	}
	for _, tok := range sortedMapKeys(b.spec.Functions) {
		check("functions", tok)
	}
}

// declareMembers is the first binding pass.
func (b *binder) declareMembers() {
	for _, tok := range sortedMapKeys(b.spec.Types) {
		spec := b.spec.Types[tok]
		path := memberPath("types", tok)
		if len(spec.Enum) > 0 {
			if t, ok := b.bindEnumType(path, tok, spec); ok {
				b.enums[tok] = t
				b.pkg.typeTable[tok] = t
			}
			continue
		}
		if spec.Type != "" && spec.Type != "object" {
			b.errorf(path+"/type", tok, "type must be \"object\" unless the type is an enum")
			continue
		}
		t := &ObjectType{Package: b.pkg, Token: tok, Description: spec.Description}
		b.objects[tok] = t
		b.pkg.typeTable[tok] = t
		b.refs.addMember(tok, false, true)
	}
	for _, tok := range sortedMapKeys(b.spec.Resources) {
		b.resources[tok] = &ResourceType{Token: tok}
		b.refs.addMember(tok, true, false)
	}
	for _, tok := range sortedMapKeys(b.spec.Functions) {
		b.refs.addMember(tok, true, false)
	}
}

func (b *binder) bindEnumType(path, tok string, spec ComplexTypeSpec) (*EnumType, bool) {
	var elementType Type
	switch spec.Type {
	case "string":
		elementType = StringType
	case "integer":
		elementType = IntType
	case "number":
		elementType = NumberType
	case "boolean":
		elementType = BoolType
	case "":
		b.errorf(path+"/type", tok, "missing required field: enums must declare an underlying type")
		return nil, false
	default:
		b.errorf(path+"/type", tok, "enums may only be of type string, integer, number or boolean")
		return nil, false
	}

	t := &EnumType{Package: b.pkg, Token: tok, Description: spec.Description, ElementType: elementType}
	values := map[interface{}]struct{}{}
	ok := true
	for i, e := range spec.Enum {
		valuePath := fmt.Sprintf("%s/enum/%d/value", path, i)
		value, valid := b.bindPrimitiveValue(valuePath, tok, e.Value, elementType)
		if !valid {
			ok = false
			continue
		}
		if _, dup := values[value]; dup {
			b.errorf(valuePath, tok, "duplicate enum value %v", value)
			ok = false
			continue
		}
		values[value] = struct{}{}
		t.Elements = append(t.Elements, &Enum{
			Value:              value,
			Description:        e.Description,
			Name:               e.Name,
			DeprecationMessage: e.DeprecationMessage,
		})
	}
	return t, ok
}

// bindPrimitiveValue checks that value is assignable to a primitive type and converts it to its canonical Go form:
// bool, int64, float64, or string.
func (b *binder) bindPrimitiveValue(path, member string, value interface{}, typ Type) (interface{}, bool) {
	switch typ {
	case BoolType:
		if v, ok := value.(bool); ok {
			return v, true
		}
	case IntType:
		switch v := value.(type) {
		case float64:
			if v == math.Trunc(v) {
				return int64(v), true
			}
		case int:
			return int64(v), true
		case int64:
			return v, true
		}
	case NumberType:
		switch v := value.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		}
	case StringType:
		if v, ok := value.(string); ok {
			return v, true
		}
	}
	b.errorf(path, member, "value %v is not assignable to type %v", value, typ)
	return nil, false
}

// bindTypes is the second binding pass for object types.
func (b *binder) bindTypes() {
	for _, tok := range sortedMapKeys(b.objects) {
		t := b.objects[tok]
		spec := b.spec.Types[tok]
		path := memberPath("types", tok)
		t.Properties, t.properties = b.bindProperties(path, tok, spec.Properties, spec.Required, "required")
	}
}

func (b *binder) bindProperties(path, owner string, specs map[string]PropertySpec, required []string,
	requiredField string,
) ([]*Property, map[string]*Property) {
	requiredSet := map[string]bool{}
	for i, name := range required {
		if _, ok := specs[name]; !ok {
			b.errorf(fmt.Sprintf("%s/%s/%d", path, requiredField, i), owner,
				"required property %q is not defined", name)
			continue
		}
		requiredSet[name] = true
	}

	properties := make([]*Property, 0, len(specs))
	table := make(map[string]*Property, len(specs))
	propertiesPath := path + "/properties"
	if requiredField == "requiredInputs" {
		propertiesPath = path + "/inputProperties"
	}
	for _, name := range sortedMapKeys(specs) {
		p := b.bindProperty(propertiesPath+"/"+escapePointer(name), owner, name, specs[name], requiredSet[name])
		properties = append(properties, p)
		table[name] = p
	}
	return properties, table
}

func (b *binder) bindProperty(path, owner, name string, spec PropertySpec, required bool) *Property {
	typ := b.bindType(path, owner, name, spec.TypeSpec)
	p := &Property{
		Name:               name,
		Description:        spec.Description,
		DeprecationMessage: spec.DeprecationMessage,
	}

	if spec.Const != nil {
		if v, ok := b.bindDefaultLiteral(path+"/const", owner, spec.Const, typ); ok {
			p.ConstValue = v
		}
	}

	if spec.Default != nil || spec.DefaultInfo != nil {
		dv := &DefaultValue{}
		if spec.Default != nil {
			if v, ok := b.bindDefaultLiteral(path+"/default", owner, spec.Default, typ); ok {
				dv.Value = v
			}
		}
		if spec.DefaultInfo != nil {
			if !IsPrimitiveType(typ) {
				if _, isEnum := typ.(*EnumType); !isEnum {
					b.errorf(path+"/defaultInfo", owner, "environment defaults require a primitive or enum type")
				}
			}
			dv.Environment = spec.DefaultInfo.Environment
		}
		p.DefaultValue = dv
		// A defaulted property can always be omitted.
		required = false
	}

	if !required {
		typ = b.optional(typ)
	}
	p.Type = typ
	return p
}

func (b *binder) bindDefaultLiteral(path, owner string, value interface{}, typ Type) (interface{}, bool) {
	switch t := typ.(type) {
	case *EnumType:
		v, ok := b.bindPrimitiveValue(path, owner, value, t.ElementType)
		if !ok {
			return nil, false
		}
		for _, e := range t.Elements {
			if e.Value == v {
				return v, true
			}
		}
		b.errorf(path, owner, "value %v is not a member of enum %v", value, t.Token)
		return nil, false
	default:
		if !IsPrimitiveType(typ) {
			b.errorf(path, owner, "default and const values are only supported for primitive and enum types")
			return nil, false
		}
		return b.bindPrimitiveValue(path, owner, value, typ)
	}
}

// bindType binds a property's type. owner and property identify the reference for cycle detection and error
// reporting.
func (b *binder) bindType(path, owner, property string, spec TypeSpec) Type {
	if spec.Ref != "" {
		return b.bindTypeRef(path+"/$ref", owner, property, spec.Ref)
	}

	if len(spec.OneOf) != 0 {
		return b.bindUnion(path, owner, property, spec)
	}

	switch spec.Type {
	case "boolean":
		return BoolType
	case "integer":
		return IntType
	case "number":
		return NumberType
	case "string":
		return StringType
	case "array":
		if spec.Items == nil {
			b.errorf(path+"/items", owner, "missing required field: arrays must specify an item type")
			return b.array(AnyType)
		}
		return b.array(b.bindType(path+"/items", owner, property, *spec.Items))
	case "object":
		elementType := StringType
		if spec.AdditionalProperties != nil {
			elementType = b.bindType(path+"/additionalProperties", owner, property, *spec.AdditionalProperties)
		}
		return b.mapType(elementType)
	case "":
		b.errorf(path, owner, "missing required field: a type or $ref is required")
		return AnyType
	default:
		b.errorf(path+"/type", owner, "unknown primitive type %q", spec.Type)
		return AnyType
	}
}

func (b *binder) bindUnion(path, owner, property string, spec TypeSpec) Type {
	elements := make([]Type, len(spec.OneOf))
	for i, e := range spec.OneOf {
		elements[i] = b.bindType(fmt.Sprintf("%s/oneOf/%d", path, i), owner, property, e)
	}

	u := &UnionType{ElementTypes: elements}
	if spec.Discriminator != nil {
		u.Discriminator = spec.Discriminator.PropertyName
		for _, e := range elements {
			if _, ok := e.(*ObjectType); !ok {
				b.errorf(path+"/discriminator", owner, "a discriminator requires every union member to be an object type")
				return b.union(u)
			}
		}
		if len(spec.Discriminator.Mapping) != 0 {
			u.Mapping = map[string]string{}
			for _, value := range sortedMapKeys(spec.Discriminator.Mapping) {
				ref := spec.Discriminator.Mapping[value]
				mappingPath := path + "/discriminator/mapping/" + escapePointer(value)
				parsed, err := parseTypeRef(ref)
				if err != nil || parsed.kind != "types" {
					b.errorf(mappingPath, owner, "malformed type reference %q", ref)
					continue
				}
				found := false
				for _, e := range elements {
					if TypeToken(e) == parsed.token {
						found = true
						break
					}
				}
				if !found {
					b.errorf(mappingPath, owner, "mapping refers to %q, which is not a member of the union", ref)
					continue
				}
				u.Mapping[value] = parsed.token
			}
		}
	}
	return b.union(u)
}

type typeRef struct {
	builtin string
	pkg     string
	version string
	kind    string
	token   string
}

var refPathRE = regexp.MustCompile(`^/?(?P<package>[-\w]+)/(?P<version>v[^/]*)/schema\.(json|yaml)$`)

// parseTypeRef parses the three accepted reference forms: "pulumi.json#/Name" builtins, "#/kind/token" local
// references, and "/pkg/vX.Y.Z/schema.json#/kind/token" external references.
func parseTypeRef(ref string) (typeRef, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return typeRef{}, err
	}
	if parsed.Scheme != "" || parsed.Host != "" {
		return typeRef{}, fmt.Errorf("references must be relative")
	}

	if parsed.Path == "pulumi.json" {
		name := strings.TrimPrefix(parsed.Fragment, "/")
		if name == "" || strings.Contains(name, "/") {
			return typeRef{}, fmt.Errorf("malformed builtin reference")
		}
		return typeRef{builtin: name}, nil
	}

	var r typeRef
	if parsed.Path != "" {
		m := refPathRE.FindStringSubmatch(parsed.Path)
		if m == nil {
			return typeRef{}, fmt.Errorf("external references must have the form /pkg/vX.Y.Z/schema.json")
		}
		r.pkg, r.version = m[1], m[2]
	}

	fragment := parsed.Fragment
	if !strings.HasPrefix(fragment, "/") {
		return typeRef{}, fmt.Errorf("missing fragment")
	}
	parts := strings.SplitN(fragment[1:], "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return typeRef{}, fmt.Errorf("fragment must have the form #/types/token or #/resources/token")
	}
	switch parts[0] {
	case "types", "resources":
		r.kind, r.token = parts[0], parts[1]
	default:
		return typeRef{}, fmt.Errorf("unknown reference kind %q", parts[0])
	}
	return r, nil
}

func (b *binder) bindTypeRef(path, owner, property, ref string) Type {
	r, err := parseTypeRef(ref)
	if err != nil {
		b.errorf(path, owner, "malformed type reference %q: %v", ref, err)
		return AnyType
	}

	if r.builtin != "" {
		switch r.builtin {
		case "Any":
			return AnyType
		case "Json":
			return JSONType
		case "Asset":
			return AssetType
		case "Archive":
			return ArchiveType
		default:
			b.errorf(path, owner, "malformed type reference %q: unknown builtin %q", ref, r.builtin)
			return AnyType
		}
	}

	if r.pkg != "" && r.pkg != b.spec.Name {
		return b.bindExternalRef(path, owner, property, r)
	}

	switch r.kind {
	case "types":
		if t, ok := b.objects[r.token]; ok {
			b.refs.addReference(owner, property, r.token, b.isObject(owner))
			return t
		}
		if t, ok := b.enums[r.token]; ok {
			return t
		}
	case "resources":
		if t, ok := b.resources[r.token]; ok {
			b.refs.addReference(owner, property, r.token, false)
			return t
		}
	}

	b.unresolved = append(b.unresolved, pendingUnresolved{
		path:     path,
		owner:    owner,
		property: property,
		err:      &UnresolvedTypeError{Token: r.token},
	})
	return AnyType
}

func (b *binder) isObject(token string) bool {
	_, ok := b.objects[token]
	return ok
}

func (b *binder) bindExternalRef(path, owner, property string, r typeRef) Type {
	unresolved := func(reason string, args ...interface{}) Type {
		b.unresolved = append(b.unresolved, pendingUnresolved{
			path:     path,
			owner:    owner,
			property: property,
			err:      &UnresolvedTypeError{Token: r.token, Reason: fmt.Sprintf(reason, args...)},
		})
		return AnyType
	}

	dep, ok := b.deps[r.pkg]
	if !ok {
		return unresolved("package %q is not a declared dependency", r.pkg)
	}
	refVersion, err := semver.ParseTolerant(r.version)
	if err != nil {
		b.errorf(path, owner, "malformed type reference: invalid version %q", r.version)
		return AnyType
	}
	// A major-only version such as "v5" matches any declared version with that major.
	majorOnly := !strings.Contains(r.version, ".")
	if (majorOnly && refVersion.Major != dep.Version.Major) || (!majorOnly && !refVersion.EQ(dep.Version)) {
		return unresolved("version %s does not match declared dependency %s@%s", r.version, dep.Name, dep.Version)
	}

	isEnum, module := false, externalModule(r.token)
	if b.loader != nil {
		depPkg, ok := b.loadedDeps[dep.Name]
		if !ok {
			version := dep.Version
			depPkg, err = b.loader.LoadPackage(dep.Name, &version)
			if err != nil {
				return unresolved("loading dependency %s@%s: %v", dep.Name, dep.Version, err)
			}
			b.loadedDeps[dep.Name] = depPkg
		}
		module = depPkg.TokenToModule(r.token)
		switch r.kind {
		case "types":
			t, ok := depPkg.LookupType(r.token)
			if !ok {
				return unresolved("type is not defined by %s@%s", dep.Name, dep.Version)
			}
			_, isEnum = t.(*EnumType)
		case "resources":
			if _, ok := depPkg.LookupResource(r.token); !ok {
				return unresolved("resource is not defined by %s@%s", dep.Name, dep.Version)
			}
		}
	}

	key := fmt.Sprintf("%s@%s#/%s/%s", dep.Name, dep.Version, r.kind, r.token)
	if t, ok := b.externals[key]; ok {
		return t
	}
	t := &ExternalType{
		Package: dep.Name,
		Version: dep.Version,
		Token:   r.token,
		Kind:    ExternalKind(r.kind),
		Module:  module,
		IsEnum:  isEnum,
	}
	b.externals[key] = t
	return t
}

func (b *binder) bindResources() {
	for _, tok := range sortedMapKeys(b.spec.Resources) {
		spec := b.spec.Resources[tok]
		path := memberPath("resources", tok)

		if spec.Type != "" {
			b.errorf(path+"/type", tok, "resources may not declare a type")
		}

		inputs, _ := b.bindProperties(path, tok, spec.InputProperties, spec.RequiredInputs, "requiredInputs")
		outputs, _ := b.bindProperties(path, tok, spec.Properties, spec.Required, "required")

		reserved := []string{"urn"}
		if !spec.IsComponent {
			reserved = append(reserved, "id")
		}
		for _, name := range reserved {
			if _, ok := spec.Properties[name]; ok {
				b.errorf(path+"/properties/"+name, tok, "%q is a reserved property name", name)
			}
		}

		r := &Resource{
			Package:            b.pkg,
			Token:              tok,
			Description:        spec.Description,
			InputProperties:    inputs,
			Properties:         outputs,
			DeprecationMessage: spec.DeprecationMessage,
			IsComponent:        spec.IsComponent,
			IsOverlay:          spec.IsOverlay,
		}
		b.resources[tok].Resource = r
		b.pkg.resourceTable[tok] = r
		b.pkg.Resources = append(b.pkg.Resources, r)
	}
}

func (b *binder) bindFunctions() {
	for _, tok := range sortedMapKeys(b.spec.Functions) {
		spec := b.spec.Functions[tok]
		path := memberPath("functions", tok)

		f := &Function{
			Package:            b.pkg,
			Token:              tok,
			Description:        spec.Description,
			DeprecationMessage: spec.DeprecationMessage,
			IsOverlay:          spec.IsOverlay,
		}
		if spec.Inputs != nil {
			f.Inputs = b.bindFunctionObject(path+"/inputs", tok, *spec.Inputs)
		}
		if spec.Outputs != nil {
			f.Outputs = b.bindFunctionObject(path+"/outputs", tok, *spec.Outputs)
		}
		b.pkg.functionTable[tok] = f
		b.pkg.Functions = append(b.pkg.Functions, f)
	}
}

func (b *binder) bindFunctionObject(path, tok string, spec ObjectTypeSpec) *ObjectType {
	t := &ObjectType{Package: b.pkg, Token: tok, Description: spec.Description}
	t.Properties, t.properties = b.bindProperties(path, tok, spec.Properties, spec.Required, "required")
	return t
}

// reportUnresolved turns dangling references into diagnostics once the reference graph is complete, so that each
// error can name the chain from a resource or function down to the dangling reference.
func (b *binder) reportUnresolved() {
	for _, u := range b.unresolved {
		chain := b.refs.chainTo(u.owner)
		u.err.Chain = append(append(chain, u.property), u.err.Token)
		b.diags = b.diags.Append(unresolvedError(u.path, u.err))
	}
}

func (b *binder) markCycles() error {
	cycles, err := b.refs.cycles()
	if err != nil {
		return fmt.Errorf("finding reference cycles: %w", err)
	}
	for id, members := range cycles {
		glog.V(5).Infof("reference cycle %d: %v", id, members)
		for _, tok := range members {
			t := b.objects[tok]
			t.Cyclic = true
			b.pkg.cycles[t] = id
		}
	}
	return nil
}

func (b *binder) finish() {
	for _, tok := range sortedMapKeys(b.pkg.typeTable) {
		b.pkg.Types = append(b.pkg.Types, b.pkg.typeTable[tok])
	}
	sort.Slice(b.pkg.Resources, func(i, j int) bool {
		return b.pkg.Resources[i].Token < b.pkg.Resources[j].Token
	})
	sort.Slice(b.pkg.Functions, func(i, j int) bool {
		return b.pkg.Functions[i].Token < b.pkg.Functions[j].Token
	})
}

func (b *binder) array(elementType Type) *ArrayType {
	t, ok := b.arrays[elementType]
	if !ok {
		t = &ArrayType{ElementType: elementType}
		b.arrays[elementType] = t
	}
	return t
}

func (b *binder) mapType(elementType Type) *MapType {
	t, ok := b.maps[elementType]
	if !ok {
		t = &MapType{ElementType: elementType}
		b.maps[elementType] = t
	}
	return t
}

func (b *binder) optional(elementType Type) *OptionalType {
	t, ok := b.optionals[elementType]
	if !ok {
		t = &OptionalType{ElementType: elementType}
		b.optionals[elementType] = t
	}
	return t
}

func (b *binder) union(u *UnionType) *UnionType {
	key := u.String()
	if len(u.Mapping) != 0 {
		for _, k := range sortedMapKeys(u.Mapping) {
			key += ";" + k + "=" + u.Mapping[k]
		}
	}
	if t, ok := b.unions[key]; ok {
		return t
	}
	b.unions[key] = u
	return u
}

func sortedMapKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// externalModule guesses the module of a dependency member when the dependency's schema is not loaded. Module parts
// of the form "module/member" name the module before the slash.
func externalModule(tok string) string {
	components := strings.Split(tok, ":")
	if len(components) != 3 {
		return ""
	}
	module := components[1]
	if i := strings.LastIndex(module, "/"); i >= 0 {
		module = module[:i]
	}
	if module == "index" {
		return ""
	}
	return module
}
