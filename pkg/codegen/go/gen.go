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

// Pulling out some of the repeated strings tokens into constants would harm readability, so we just ignore the
// goconst linter's warning.
//
// nolint: lll, goconst
package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"io"
	"path"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/cgstrings"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
)

// DefaultRuntimeImport is the import path of the Go runtime that generated code targets.
const DefaultRuntimeImport = "github.com/pulumi/pulumi-sdkgen/sdk/go/pulumi"

// GoInfo holds the "go" language block of a package.
type GoInfo struct {
	// ImportBasePath is the import path of the package root.
	ImportBasePath string
	// RuntimeImport is the import path of the runtime.
	RuntimeImport string
}

func goInfo(pkg *schema.Package) GoInfo {
	name := goPackage(pkg.Name)
	return GoInfo{
		ImportBasePath: codegen.LanguageString(pkg, "go", "importBasePath",
			fmt.Sprintf("github.com/pulumi/pulumi-%s/sdk/go/%s", pkg.Name, name)),
		RuntimeImport: codegen.LanguageString(pkg, "go", "runtimeImportPath", DefaultRuntimeImport),
	}
}

// importSet maps import paths to their aliases. An empty alias imports the package under its own name.
type importSet map[string]string

func (imports importSet) add(importPath, alias string) {
	imports[importPath] = alias
}

// generator holds the state shared by the per-module contexts of one package.
type generator struct {
	pkg      *schema.Package
	info     GoInfo
	ectx     *codegen.EmitterContext
	unions   *codegen.UnionTable
	packages map[string]*pkgContext
	// hosts maps modules that share a Go package with others to the module that owns it.
	hosts map[string]string

	// typeNames maps the token of every named member to its Go name.
	typeNames map[string]string
}

type pkgContext struct {
	gen       *generator
	pkg       *schema.Package
	mod       string
	goName    string
	dir       string
	types     []*schema.ObjectType
	enums     []*schema.EnumType
	resources []*schema.Resource
	functions []*schema.Function

	names         codegen.StringSet
	functionNames map[*schema.Function]string
	needsUtils    bool
}

// typeCtx describes where a type is being rendered.
type typeCtx struct {
	imports importSet
	// owner is the token of the member that declares the property.
	owner string
	// property is the name of the property.
	property string
	// ownerType is the object type that declares the property, if any.
	ownerType *schema.ObjectType
	// direct is true if the value is stored directly in the owner, i.e. not through a slice or map.
	direct bool
}

func (tc typeCtx) element() typeCtx {
	tc.direct = false
	return tc
}

// goModule returns the module whose Go package holds the members of mod.
func (g *generator) goModule(mod string) string {
	if host, ok := g.hosts[mod]; ok {
		return host
	}
	return mod
}

// unionsIn returns the object unions rendered into the Go package of mod.
func (g *generator) unionsIn(mod string) []*codegen.ObjectUnion {
	var result []*codegen.ObjectUnion
	for _, u := range g.unions.Unions() {
		if g.goModule(u.Module) == mod {
			result = append(result, u)
		}
	}
	return result
}

func (pkg *pkgContext) importPath(mod string) string {
	if mod == "" {
		return pkg.gen.info.ImportBasePath
	}
	return path.Join(pkg.gen.info.ImportBasePath, modulePath(mod))
}

// tokenToType returns the Go name of a member of this package, qualified if it lives in another module.
func (pkg *pkgContext) tokenToType(tok string, imports importSet) string {
	name, ok := pkg.gen.typeNames[tok]
	if !ok {
		name = cgstrings.Pascal(schema.TokenName(tok))
	}
	mod := pkg.gen.goModule(pkg.pkg.TokenToModule(tok))
	if mod == pkg.mod {
		return name
	}
	other := pkg.gen.packages[mod]
	imports.add(pkg.importPath(mod), "")
	return other.goName + "." + name
}

func (pkg *pkgContext) qualifiedUnionName(u *codegen.ObjectUnion, imports importSet) string {
	name := cgstrings.Pascal(u.Name)
	mod := pkg.gen.goModule(u.Module)
	if mod == pkg.mod {
		return name
	}
	imports.add(pkg.importPath(mod), "")
	return pkg.gen.packages[mod].goName + "." + name
}

func (pkg *pkgContext) externalType(t *schema.ExternalType, imports importSet) string {
	base, ok := pkg.gen.ectx.Imports[t.Package]
	if !ok {
		base = defaultImport(schema.Dependency{Name: t.Package, Version: t.Version})
	}
	importPath, alias := base, goPackage(t.Package)
	if t.Module != "" {
		importPath = path.Join(base, modulePath(t.Module))
		alias = goPackage(t.Package) + strings.ReplaceAll(modulePath(t.Module), "/", "")
	}
	imports.add(importPath, alias)

	name := alias + "." + cgstrings.Pascal(schema.TokenName(t.Token))
	if t.Kind == schema.ExternalResource {
		return "*" + name
	}
	return name
}

func defaultImport(dep schema.Dependency) string {
	name := goPackage(dep.Name)
	if dep.Version.Major > 1 {
		return fmt.Sprintf("github.com/pulumi/pulumi-%s/sdk/v%d/go/%s", dep.Name, dep.Version.Major, name)
	}
	return fmt.Sprintf("github.com/pulumi/pulumi-%s/sdk/go/%s", dep.Name, name)
}

// isNilable returns true if the rendered Go type already has a nil value.
func isNilable(typ string) bool {
	return strings.HasPrefix(typ, "*") || strings.HasPrefix(typ, "[]") || strings.HasPrefix(typ, "map[") ||
		typ == "any"
}

// plainType returns the Go type of a plain value of type t.
func (pkg *pkgContext) plainType(t schema.Type, tc typeCtx) string {
	switch t := t.(type) {
	case *schema.OptionalType:
		typ := pkg.plainType(t.ElementType, tc)
		if isNilable(typ) || pkg.isUnionInterface(t.ElementType, tc) {
			return typ
		}
		return "*" + typ
	case *schema.ArrayType:
		return "[]" + pkg.plainType(t.ElementType, tc.element())
	case *schema.MapType:
		return "map[string]" + pkg.plainType(t.ElementType, tc.element())
	case *schema.EnumType:
		return pkg.tokenToType(t.Token, tc.imports)
	case *schema.ObjectType:
		name := pkg.tokenToType(t.Token, tc.imports)
		if tc.direct && tc.ownerType != nil && pkg.pkg.SameCycle(tc.ownerType, t) {
			return "*" + name
		}
		return name
	case *schema.ResourceType:
		return "*" + pkg.tokenToType(t.Token, tc.imports)
	case *schema.ExternalType:
		return pkg.externalType(t, tc.imports)
	case *schema.UnionType:
		if u, ok := pkg.gen.unions.Lookup(tc.owner, tc.property); ok {
			return pkg.qualifiedUnionName(u, tc.imports)
		}
		return "any"
	default:
		switch t {
		case schema.BoolType:
			return "bool"
		case schema.IntType:
			return "int"
		case schema.NumberType:
			return "float64"
		case schema.StringType:
			return "string"
		default:
			return "any"
		}
	}
}

func (pkg *pkgContext) isUnionInterface(t schema.Type, tc typeCtx) bool {
	if _, ok := t.(*schema.UnionType); !ok {
		return false
	}
	_, ok := pkg.gen.unions.Lookup(tc.owner, tc.property)
	return ok
}

// fieldType returns the Go type of a struct field for the given property.
func (pkg *pkgContext) fieldType(owner string, ownerType *schema.ObjectType, p *schema.Property, optional bool,
	imports importSet,
) string {
	tc := typeCtx{imports: imports, owner: owner, property: p.Name, ownerType: ownerType, direct: true}
	inner := schema.UnwrapOptional(p.Type)
	typ := pkg.plainType(inner, tc)
	if (optional || !p.IsRequired()) && !isNilable(typ) && !pkg.isUnionInterface(inner, tc) {
		return "*" + typ
	}
	return typ
}

func printComment(w io.Writer, comment string, indent bool) {
	for _, l := range codegen.CommentLines(codegen.FilterExamples(comment, "go")) {
		if indent {
			fmt.Fprintf(w, "\t")
		}
		if l == "" {
			fmt.Fprintf(w, "//\n")
		} else {
			fmt.Fprintf(w, "// %s\n", l)
		}
	}
}

func printDeprecation(w io.Writer, message string, indent bool) {
	if message == "" {
		return
	}
	if indent {
		fmt.Fprintf(w, "\t")
	}
	fmt.Fprintf(w, "//\n")
	if indent {
		fmt.Fprintf(w, "\t")
	}
	fmt.Fprintf(w, "// Deprecated: %s\n", strings.ReplaceAll(message, "\n", " "))
}

func (pkg *pkgContext) genPlainType(w io.Writer, owner string, ownerType *schema.ObjectType, name, comment string,
	properties []*schema.Property, optional bool, imports importSet,
) {
	printComment(w, comment, false)
	fmt.Fprintf(w, "type %s struct {\n", name)
	for _, p := range properties {
		printComment(w, p.Description, true)
		printDeprecation(w, p.DeprecationMessage, true)
		fmt.Fprintf(w, "\t%s %s `pulumi:\"%s\"`\n", fieldName(p.Name), pkg.fieldType(owner, ownerType, p, optional, imports), p.Name)
	}
	fmt.Fprintf(w, "}\n\n")
}

func goPrimitiveValue(value interface{}) (string, error) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return "true", nil
		}
		return "false", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	case reflect.String:
		return strconv.Quote(v.String()), nil
	default:
		return "", errors.Errorf("unsupported default value of type %T", value)
	}
}

// getDefaultValue returns an expression of type t that evaluates to the property's default value.
func (pkg *pkgContext) getDefaultValue(dv *schema.DefaultValue, t schema.Type, imports importSet) (string, error) {
	base := t
	enum, isEnum := t.(*schema.EnumType)
	if isEnum {
		base = enum.ElementType
	}

	val := ""
	if dv.Value != nil {
		v, err := goPrimitiveValue(dv.Value)
		if err != nil {
			return "", err
		}
		val = v
	}

	parser, typDefault, typ := "nil", `""`, "string"
	switch base {
	case schema.BoolType:
		parser, typDefault, typ = "parseEnvBool", "false", "bool"
	case schema.IntType:
		parser, typDefault, typ = "parseEnvInt", "0", "int"
	case schema.NumberType:
		parser, typDefault, typ = "parseEnvFloat", "0", "float64"
	}
	if val == "" {
		val = typDefault
	}
	if base == schema.NumberType {
		val = fmt.Sprintf("float64(%s)", val)
	}

	if len(dv.Environment) > 0 {
		pkg.needsUtils = true

		env := fmt.Sprintf("getEnvOrDefault(%s, %s", val, parser)
		for _, e := range dv.Environment {
			env += fmt.Sprintf(", %q", e)
		}
		val = fmt.Sprintf("%s).(%s)", env, typ)
	}

	if isEnum {
		val = fmt.Sprintf("%s(%s)", pkg.tokenToType(enum.Token, imports), val)
	}
	return val, nil
}

func hasDefaults(properties []*schema.Property) bool {
	for _, p := range properties {
		if p.DefaultValue != nil {
			return true
		}
	}
	return false
}

// genDefaults assigns default values to the unset properties of target, and applies the defaults of nested object
// types. Defaults only apply to fields that can be unset.
func (pkg *pkgContext) genDefaults(w io.Writer, target, owner string, ownerType *schema.ObjectType,
	properties []*schema.Property, imports importSet,
) error {
	for _, p := range properties {
		field := target + "." + fieldName(p.Name)
		inner := schema.UnwrapOptional(p.Type)
		pointer := strings.HasPrefix(pkg.fieldType(owner, ownerType, p, false, importSet{}), "*")

		if p.DefaultValue != nil {
			if !pointer {
				continue
			}
			v, err := pkg.getDefaultValue(p.DefaultValue, inner, imports)
			if err != nil {
				return fmt.Errorf("%s: property %s: %w", owner, p.Name, err)
			}
			local := localName(p.Name)
			fmt.Fprintf(w, "\tif %s == nil {\n", field)
			fmt.Fprintf(w, "\t\t%s := %s\n", local, v)
			fmt.Fprintf(w, "\t\t%s = &%s\n", field, local)
			fmt.Fprintf(w, "\t}\n")
			continue
		}

		if obj, ok := inner.(*schema.ObjectType); ok && obj.Package == pkg.pkg && hasDefaults(obj.Properties) {
			if pointer {
				fmt.Fprintf(w, "\t%[1]s = %[1]s.Defaults()\n", field)
			} else {
				fmt.Fprintf(w, "\t%[1]s = *%[1]s.Defaults()\n", field)
			}
		}
	}
	return nil
}

func (pkg *pkgContext) resourceName(r *schema.Resource) string {
	return pkg.gen.typeNames[r.Token]
}

func (pkg *pkgContext) genResource(w io.Writer, r *schema.Resource, imports importSet) error {
	name := pkg.resourceName(r)
	rt := pkg.gen.info.RuntimeImport
	imports.add(rt, "")

	printComment(w, r.Description, false)
	printDeprecation(w, r.DeprecationMessage, false)
	fmt.Fprintf(w, "type %s struct {\n", name)
	if r.IsComponent {
		fmt.Fprintf(w, "\tpulumi.ResourceState\n\n")
	} else {
		fmt.Fprintf(w, "\tpulumi.CustomResourceState\n\n")
	}
	for _, p := range r.Properties {
		printComment(w, p.Description, true)
		printDeprecation(w, p.DeprecationMessage, true)
		fmt.Fprintf(w, "\t%s pulumi.Output[%s] `pulumi:\"%s\"`\n", fieldName(p.Name),
			pkg.fieldType(r.Token, nil, p, false, imports), p.Name)
	}
	fmt.Fprintf(w, "}\n\n")

	// Create a constructor function that registers a new instance of this resource.
	fmt.Fprintf(w, "// New%s registers a new resource with the given unique name, arguments, and options.\n", name)
	fmt.Fprintf(w, "func New%s(ctx *pulumi.Context,\n", name)
	fmt.Fprintf(w, "\tname string, args *%[1]sArgs, opts ...pulumi.ResourceOption) (*%[1]s, error) {\n", name)

	var required []*schema.Property
	for _, p := range r.InputProperties {
		if p.IsRequired() {
			required = append(required, p)
		}
	}
	if len(required) > 0 {
		imports.add("errors", "")
		fmt.Fprintf(w, "\tif args == nil {\n")
		fmt.Fprintf(w, "\t\treturn nil, errors.New(\"missing one or more required arguments\")\n")
		fmt.Fprintf(w, "\t}\n\n")
		for _, p := range required {
			if isNilable(pkg.fieldType(r.Token, nil, p, false, importSet{})) || pkg.isUnionInterface(p.Type, typeCtx{owner: r.Token, property: p.Name}) {
				fmt.Fprintf(w, "\tif args.%s == nil {\n", fieldName(p.Name))
				fmt.Fprintf(w, "\t\treturn nil, errors.New(\"invalid value for required argument '%s'\")\n", fieldName(p.Name))
				fmt.Fprintf(w, "\t}\n")
			}
		}
	} else {
		fmt.Fprintf(w, "\tif args == nil {\n")
		fmt.Fprintf(w, "\t\targs = &%sArgs{}\n", name)
		fmt.Fprintf(w, "\t}\n\n")
	}
	if err := pkg.genDefaults(w, "args", r.Token, nil, r.InputProperties, imports); err != nil {
		return err
	}

	// Finally make the call to registration.
	register := "RegisterResource"
	if r.IsComponent {
		register = "RegisterRemoteComponentResource"
	}
	fmt.Fprintf(w, "\tvar resource %s\n", name)
	fmt.Fprintf(w, "\terr := ctx.%s(\"%s\", name, args, &resource, opts...)\n", register, r.Token)
	fmt.Fprintf(w, "\tif err != nil {\n")
	fmt.Fprintf(w, "\t\treturn nil, err\n")
	fmt.Fprintf(w, "\t}\n")
	fmt.Fprintf(w, "\treturn &resource, nil\n")
	fmt.Fprintf(w, "}\n\n")

	// Emit a factory function that reads existing instances of this resource.
	if !r.IsComponent {
		fmt.Fprintf(w, "// Get%[1]s gets an existing %[1]s resource's state with the given name, ID, and optional\n", name)
		fmt.Fprintf(w, "// state properties that are used to uniquely qualify the lookup (nil if not required).\n")
		fmt.Fprintf(w, "func Get%s(ctx *pulumi.Context,\n", name)
		fmt.Fprintf(w, "\tname string, id pulumi.ID, state *%[1]sState, opts ...pulumi.ResourceOption) (*%[1]s, error) {\n", name)
		fmt.Fprintf(w, "\tvar resource %s\n", name)
		fmt.Fprintf(w, "\terr := ctx.ReadResource(\"%s\", name, id, state, &resource, opts...)\n", r.Token)
		fmt.Fprintf(w, "\tif err != nil {\n")
		fmt.Fprintf(w, "\t\treturn nil, err\n")
		fmt.Fprintf(w, "\t}\n")
		fmt.Fprintf(w, "\treturn &resource, nil\n")
		fmt.Fprintf(w, "}\n\n")

		pkg.genPlainType(w, r.Token, nil, name+"State",
			fmt.Sprintf("Input properties used for looking up and filtering %s resources.", name),
			r.Properties, true, imports)
	}

	pkg.genPlainType(w, r.Token, nil, name+"Args",
		fmt.Sprintf("The set of arguments for constructing a %s resource.", name),
		r.InputProperties, false, imports)
	return nil
}

func (pkg *pkgContext) genFunction(w io.Writer, f *schema.Function, imports importSet) error {
	// If the function starts with New or Get, it will conflict; so rename them.
	name := pkg.functionNames[f]
	imports.add(pkg.gen.info.RuntimeImport, "")

	printComment(w, f.Description, false)
	printDeprecation(w, f.DeprecationMessage, false)

	// Inputs without properties take no argument.
	hasArgs := f.Inputs != nil && len(f.Inputs.Properties) > 0
	argsig := "ctx *pulumi.Context"
	if hasArgs {
		argsig = fmt.Sprintf("%s, args *%sArgs", argsig, name)
	}
	var retty string
	if f.Outputs == nil {
		retty = "error"
	} else {
		retty = fmt.Sprintf("(*%sResult, error)", name)
	}
	fmt.Fprintf(w, "func %s(%s, opts ...pulumi.InvokeOption) %s {\n", name, argsig, retty)

	inputsVar := "nil"
	if hasArgs {
		inputsVar = "args"
		if hasDefaults(f.Inputs.Properties) {
			fmt.Fprintf(w, "\targs = args.Defaults()\n")
		}
	}

	outputsType := "struct{}"
	if f.Outputs != nil {
		outputsType = name + "Result"
	}
	fmt.Fprintf(w, "\tvar rv %s\n", outputsType)
	fmt.Fprintf(w, "\terr := ctx.Invoke(\"%s\", %s, &rv, opts...)\n", f.Token, inputsVar)

	if f.Outputs == nil {
		fmt.Fprintf(w, "\treturn err\n")
	} else {
		fmt.Fprintf(w, "\tif err != nil {\n")
		fmt.Fprintf(w, "\t\treturn nil, err\n")
		fmt.Fprintf(w, "\t}\n")
		fmt.Fprintf(w, "\treturn &rv, nil\n")
	}
	fmt.Fprintf(w, "}\n\n")

	if hasArgs {
		pkg.genPlainType(w, f.Token, f.Inputs, name+"Args", f.Inputs.Description, f.Inputs.Properties, false, imports)
		if hasDefaults(f.Inputs.Properties) {
			if err := pkg.genDefaultsMethod(w, name+"Args", f.Token, f.Inputs, f.Inputs.Properties, imports); err != nil {
				return err
			}
		}
	}
	if f.Outputs != nil {
		pkg.genPlainType(w, f.Token, f.Outputs, name+"Result", f.Outputs.Description, f.Outputs.Properties, false, imports)
	}
	return nil
}

func (pkg *pkgContext) genDefaultsMethod(w io.Writer, name, owner string, ownerType *schema.ObjectType,
	properties []*schema.Property, imports importSet,
) error {
	fmt.Fprintf(w, "// Defaults sets the appropriate defaults for %s\n", name)
	fmt.Fprintf(w, "func (val *%[1]s) Defaults() *%[1]s {\n", name)
	fmt.Fprintf(w, "\tif val == nil {\n")
	fmt.Fprintf(w, "\t\treturn nil\n")
	fmt.Fprintf(w, "\t}\n")
	fmt.Fprintf(w, "\ttmp := *val\n")
	if err := pkg.genDefaults(w, "tmp", owner, ownerType, properties, imports); err != nil {
		return err
	}
	fmt.Fprintf(w, "\treturn &tmp\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}

func (pkg *pkgContext) genType(w io.Writer, obj *schema.ObjectType, imports importSet) error {
	name := pkg.tokenToType(obj.Token, imports)
	pkg.genPlainType(w, obj.Token, obj, name, obj.Description, obj.Properties, false, imports)
	if hasDefaults(obj.Properties) {
		if err := pkg.genDefaultsMethod(w, name, obj.Token, obj, obj.Properties, imports); err != nil {
			return err
		}
	}
	for _, u := range pkg.gen.unions.Unions() {
		if _, ok := u.Variant(obj); ok {
			fmt.Fprintf(w, "func (%s) Is%s() {}\n\n", name, cgstrings.Pascal(u.Name))
		}
	}
	return nil
}

func (pkg *pkgContext) genUnion(w io.Writer, u *codegen.ObjectUnion, imports importSet) {
	name := cgstrings.Pascal(u.Name)
	variants := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		variants[i] = pkg.tokenToType(v.Type.Token, imports)
	}
	fmt.Fprintf(w, "// %s is one of %s. The %q property selects the variant.\n", name,
		strings.Join(variants, ", "), u.Discriminant)
	fmt.Fprintf(w, "type %s interface {\n", name)
	fmt.Fprintf(w, "\tIs%s()\n", name)
	fmt.Fprintf(w, "}\n\n")
}

func (pkg *pkgContext) genUnionRegistrations(w io.Writer, unions []*codegen.ObjectUnion, imports importSet) {
	imports.add("reflect", "")
	imports.add(pkg.gen.info.RuntimeImport, "")
	fmt.Fprintf(w, "func init() {\n")
	for _, u := range unions {
		name := cgstrings.Pascal(u.Name)
		fmt.Fprintf(w, "\tpulumi.RegisterUnion(reflect.TypeOf((*%s)(nil)).Elem(), %q, map[string]reflect.Type{\n", name, u.Discriminant)
		for _, v := range u.Variants {
			fmt.Fprintf(w, "\t\t%q: reflect.TypeOf(%s{}),\n", v.Tag, pkg.tokenToType(v.Type.Token, imports))
		}
		fmt.Fprintf(w, "\t})\n")
	}
	fmt.Fprintf(w, "}\n")
}

func (pkg *pkgContext) genEnum(w io.Writer, enum *schema.EnumType, imports importSet) error {
	name := pkg.tokenToType(enum.Token, imports)
	underlying := pkg.plainType(enum.ElementType, typeCtx{imports: imports})

	printComment(w, enum.Description, false)
	fmt.Fprintf(w, "type %s %s\n\n", name, underlying)

	fmt.Fprintf(w, "const (\n")
	for _, e := range enum.Elements {
		elementName := e.Name
		if elementName == "" {
			elementName = fmt.Sprint(e.Value)
		}
		constName, err := makeSafeEnumName(elementName, name)
		if err != nil {
			return fmt.Errorf("enum %s: %w", enum.Token, err)
		}
		value, err := goPrimitiveValue(e.Value)
		if err != nil {
			return fmt.Errorf("enum %s: %w", enum.Token, err)
		}
		printComment(w, e.Description, true)
		printDeprecation(w, e.DeprecationMessage, true)
		fmt.Fprintf(w, "\t%s = %s(%s)\n", constName, name, value)
	}
	fmt.Fprintf(w, ")\n\n")

	fmt.Fprintf(w, "// %sValues returns every value of %s.\n", name, name)
	fmt.Fprintf(w, "func %[1]sValues() []%[1]s {\n", name)
	fmt.Fprintf(w, "\treturn []%s{\n", name)
	for _, e := range enum.Elements {
		elementName := e.Name
		if elementName == "" {
			elementName = fmt.Sprint(e.Value)
		}
		constName, _ := makeSafeEnumName(elementName, name)
		fmt.Fprintf(w, "\t\t%s,\n", constName)
	}
	fmt.Fprintf(w, "\t}\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}

// genInit emits the resource module that constructs this package's resources by token.
func (pkg *pkgContext) genInit(w io.Writer, imports importSet, result *codegen.EmitResult) {
	imports.add("github.com/blang/semver", "")
	imports.add(pkg.gen.info.RuntimeImport, "")

	fmt.Fprintf(w, "type module struct {\n")
	fmt.Fprintf(w, "\tversion semver.Version\n")
	fmt.Fprintf(w, "}\n\n")
	fmt.Fprintf(w, "func (m *module) Version() semver.Version {\n")
	fmt.Fprintf(w, "\treturn m.version\n")
	fmt.Fprintf(w, "}\n\n")
	fmt.Fprintf(w, "func (m *module) Construct(ctx *pulumi.Context, name, typ, urn string) (r pulumi.Resource, err error) {\n")
	fmt.Fprintf(w, "\tswitch typ {\n")
	mods := codegen.NewStringSet()
	for _, r := range pkg.resources {
		fmt.Fprintf(w, "\tcase %q:\n", r.Token)
		fmt.Fprintf(w, "\t\tr = &%s{}\n", pkg.resourceName(r))
		mods.Add(strings.Split(r.Token, ":")[1])
		result.Tokens = append(result.Tokens, r.Token)
	}
	fmt.Fprintf(w, "\tdefault:\n")
	fmt.Fprintf(w, "\t\treturn nil, &pulumi.UnknownResourceTypeError{Token: typ}\n")
	fmt.Fprintf(w, "\t}\n\n")
	fmt.Fprintf(w, "\terr = ctx.RegisterResource(typ, name, nil, r, pulumi.URN_(urn))\n")
	fmt.Fprintf(w, "\treturn\n")
	fmt.Fprintf(w, "}\n\n")

	version := "1.0.0"
	if pkg.pkg.Version != nil {
		version = pkg.pkg.Version.String()
	}
	fmt.Fprintf(w, "func init() {\n")
	fmt.Fprintf(w, "\tversion := semver.MustParse(%q)\n", version)
	for _, mod := range mods.SortedValues() {
		fmt.Fprintf(w, "\tpulumi.RegisterResourceModule(\n")
		fmt.Fprintf(w, "\t\t%q,\n", pkg.pkg.Name)
		fmt.Fprintf(w, "\t\t%q,\n", mod)
		fmt.Fprintf(w, "\t\t&module{version},\n")
		fmt.Fprintf(w, "\t)\n")
	}
	fmt.Fprintf(w, "}\n")
}

func (pkg *pkgContext) genHeader(w io.Writer, imports importSet) {
	fmt.Fprintf(w, "package %s\n\n", pkg.goName)

	var std, others []string
	for importPath := range imports {
		if strings.Contains(strings.Split(importPath, "/")[0], ".") {
			others = append(others, importPath)
		} else {
			std = append(std, importPath)
		}
	}
	sort.Strings(std)
	sort.Strings(others)

	if len(std)+len(others) == 0 {
		return
	}
	fmt.Fprintf(w, "import (\n")
	for _, importPath := range std {
		fmt.Fprintf(w, "\t%q\n", importPath)
	}
	if len(std) > 0 && len(others) > 0 {
		fmt.Fprintf(w, "\n")
	}
	for _, importPath := range others {
		if alias := imports[importPath]; alias != "" && alias != path.Base(importPath) {
			fmt.Fprintf(w, "\t%s %q\n", alias, importPath)
		} else {
			fmt.Fprintf(w, "\t%q\n", importPath)
		}
	}
	fmt.Fprintf(w, ")\n\n")
}

const utilitiesFile = `type envParser func(v string) interface{}

func parseEnvBool(v string) interface{} {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return b
}

func parseEnvInt(v string) interface{} {
	i, err := strconv.ParseInt(v, 0, 0)
	if err != nil {
		return nil
	}
	return int(i)
}

func parseEnvFloat(v string) interface{} {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return f
}

func getEnvOrDefault(def interface{}, parser envParser, vars ...string) interface{} {
	for _, v := range vars {
		if value := os.Getenv(v); value != "" {
			if parser == nil {
				return value
			}
			if parsed := parser(value); parsed != nil {
				return parsed
			}
		}
	}
	return def
}
`

// NewEmitter returns the Go emitter.
func NewEmitter() codegen.Emitter {
	return emitter{}
}

type emitter struct{}

func (emitter) Language() string {
	return "go"
}

type naming struct {
	root string
}

func (naming) TypeName(token string) string {
	return cgstrings.Pascal(schema.TokenName(token))
}

func (naming) PropertyName(name string) string {
	return fieldName(name)
}

func (n naming) ModulePath(module string) string {
	if module == "" {
		return n.root
	}
	return path.Join(n.root, modulePath(module))
}

func (emitter) NewContext(pkg *schema.Package, overlays codegen.StringSet) *codegen.EmitterContext {
	return &codegen.EmitterContext{
		Tool:     codegen.Tool,
		Language: "go",
		Naming:   naming{root: goPackage(pkg.Name)},
		Imports:  codegen.PackageImports(pkg, "go", defaultImport),
		Overlays: overlays,
	}
}

func (emitter) Emit(ctx context.Context, pkg *schema.Package, ectx *codegen.EmitterContext) (*codegen.EmitResult, error) {
	return GeneratePackage(ctx, pkg, ectx)
}

// GeneratePackage generates the Go SDK for pkg.
func GeneratePackage(ctx context.Context, pkg *schema.Package, ectx *codegen.EmitterContext) (*codegen.EmitResult, error) {
	unions, err := codegen.CollectObjectUnions(pkg)
	if err != nil {
		return nil, err
	}
	if err := checkSupported(pkg); err != nil {
		return nil, err
	}
	hosts, err := moduleHosts(pkg)
	if err != nil {
		return nil, err
	}
	for mod, host := range hosts {
		glog.V(3).Infof("go: module %q shares the Go package of %q", mod, host)
	}

	g := &generator{
		pkg:       pkg,
		info:      goInfo(pkg),
		ectx:      ectx,
		unions:    unions,
		packages:  map[string]*pkgContext{},
		typeNames: map[string]string{},
		hosts:     hosts,
	}
	root := goPackage(pkg.Name)

	// group resources, types, and functions into Go packages
	getPkg := func(mod string) *pkgContext {
		mod = g.goModule(mod)
		pack, ok := g.packages[mod]
		if !ok {
			goName := root
			if mod != "" {
				goName = goPackage(path.Base(mod))
			}
			pack = &pkgContext{
				gen:           g,
				pkg:           pkg,
				mod:           mod,
				goName:        goName,
				dir:           ectx.Naming.ModulePath(mod),
				names:         codegen.NewStringSet(),
				functionNames: map[*schema.Function]string{},
			}
			g.packages[mod] = pack
		}
		return pack
	}
	getPkg("")

	for _, r := range pkg.Resources {
		mod := pkg.TokenToModule(r.Token)
		pack := getPkg(mod)
		pack.resources = append(pack.resources, r)

		name := ectx.Naming.TypeName(r.Token)
		if pack.names.Has(name) && mod != pack.mod {
			name = cgstrings.Pascal(path.Base(mod)) + name
		}
		g.typeNames[r.Token] = name
		pack.names.Add(name)
		pack.names.Add(name + "Args")
		pack.names.Add("New" + name)
		if !r.IsComponent {
			pack.names.Add(name + "State")
			pack.names.Add("Get" + name)
		}
	}

	for _, t := range pkg.Types {
		pack := getPkg(pkg.TokenToModule(schema.TypeToken(t)))
		name := ectx.Naming.TypeName(schema.TypeToken(t))
		if pack.names.Has(name) {
			name += "Type"
		}
		pack.names.Add(name)
		g.typeNames[schema.TypeToken(t)] = name

		switch t := t.(type) {
		case *schema.ObjectType:
			pack.types = append(pack.types, t)
		case *schema.EnumType:
			pack.enums = append(pack.enums, t)
		}
	}

	for _, f := range pkg.Functions {
		mod := pkg.TokenToModule(f.Token)
		pack := getPkg(mod)
		pack.functions = append(pack.functions, f)

		name := ectx.Naming.TypeName(f.Token)
		if pack.names.Has(name) {
			switch {
			case strings.HasPrefix(name, "New"):
				name = "Create" + name[3:]
			case strings.HasPrefix(name, "Get"):
				name = "Lookup" + name[3:]
			}
		}
		if pack.names.Has(name) && mod != pack.mod {
			name = cgstrings.Pascal(path.Base(mod)) + name
		}
		pack.names.Add(name)
		pack.functionNames[f] = name
		g.typeNames[f.Token] = name
	}

	for _, u := range unions.Unions() {
		getPkg(u.Module)
	}

	// emit each package
	var pkgMods []string
	for mod := range g.packages {
		pkgMods = append(pkgMods, mod)
	}
	sort.Strings(pkgMods)

	result := codegen.NewEmitResult()
	setFile := func(relPath string, body func(w io.Writer, imports importSet) error, pack *pkgContext) error {
		if ectx.Overlays.Has(relPath) {
			glog.V(3).Infof("go: %s is supplied by an overlay", relPath)
			return nil
		}
		imports := importSet{}
		buffer := &bytes.Buffer{}
		if err := body(buffer, imports); err != nil {
			return err
		}

		file := &bytes.Buffer{}
		pack.genHeader(file, imports)
		file.Write(buffer.Bytes())

		formatted, err := format.Source(file.Bytes())
		if err != nil {
			return errors.Wrapf(err, "formatting %s", relPath)
		}
		result.Files.Add(relPath, formatted)
		return nil
	}

	for _, mod := range pkgMods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pack := g.packages[mod]

		if mod == "" {
			docPath := path.Join(pack.dir, "doc.go")
			if !ectx.Overlays.Has(docPath) {
				doc := &bytes.Buffer{}
				if pkg.Description != "" {
					printComment(doc, pkg.Description, false)
				} else {
					fmt.Fprintf(doc, "// Package %[1]s exports types, functions, subpackages for provisioning %[1]s resources.\n", pack.goName)
				}
				fmt.Fprintf(doc, "package %s\n\n", pack.goName)
				fmt.Fprint(doc, codegen.PreserveRegion("//", codegen.ExtensionsRegion))
				result.Files.Add(docPath, doc.Bytes())
			}
		}

		// Resources
		for _, r := range pack.resources {
			relPath := path.Join(pack.dir, cgstrings.Camel(pack.resourceName(r))+".go")
			if r.IsOverlay {
				result.Overlays = append(result.Overlays, relPath)
				continue
			}
			r := r
			if err := setFile(relPath, func(w io.Writer, imports importSet) error {
				return pack.genResource(w, r, imports)
			}, pack); err != nil {
				return nil, err
			}
		}

		// Functions
		for _, f := range pack.functions {
			relPath := path.Join(pack.dir, cgstrings.Camel(pack.functionNames[f])+".go")
			if f.IsOverlay {
				result.Overlays = append(result.Overlays, relPath)
				continue
			}
			f := f
			if err := setFile(relPath, func(w io.Writer, imports importSet) error {
				return pack.genFunction(w, f, imports)
			}, pack); err != nil {
				return nil, err
			}
		}

		// Types
		modUnions := g.unionsIn(mod)
		if len(pack.types) > 0 || len(modUnions) > 0 {
			if err := setFile(path.Join(pack.dir, "pulumiTypes.go"), func(w io.Writer, imports importSet) error {
				for _, u := range modUnions {
					pack.genUnion(w, u, imports)
				}
				for _, t := range pack.types {
					if err := pack.genType(w, t, imports); err != nil {
						return err
					}
				}
				if len(modUnions) > 0 {
					pack.genUnionRegistrations(w, modUnions, imports)
				}
				return nil
			}, pack); err != nil {
				return nil, err
			}
		}

		// Enums
		if len(pack.enums) > 0 {
			if err := setFile(path.Join(pack.dir, "pulumiEnums.go"), func(w io.Writer, imports importSet) error {
				for _, e := range pack.enums {
					if err := pack.genEnum(w, e, imports); err != nil {
						return err
					}
				}
				return nil
			}, pack); err != nil {
				return nil, err
			}
		}

		// Registration
		if len(pack.resources) > 0 {
			if err := setFile(path.Join(pack.dir, "init.go"), func(w io.Writer, imports importSet) error {
				pack.genInit(w, imports, result)
				return nil
			}, pack); err != nil {
				return nil, err
			}
		}

		// Utilities
		if pack.needsUtils {
			if err := setFile(path.Join(pack.dir, "pulumiUtilities.go"), func(w io.Writer, imports importSet) error {
				imports.add("os", "")
				imports.add("strconv", "")
				fmt.Fprint(w, utilitiesFile)
				return nil
			}, pack); err != nil {
				return nil, err
			}
		}
	}

	return result.Finish(), nil
}
