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
package nodejs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"github.com/segmentio/encoding/json"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/cgstrings"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
	"github.com/pulumi/pulumi-sdkgen/pkg/util/contract"
)

const (
	// MinimumValidSDKVersion is the minimum version of @pulumi/pulumi that generated packages depend on.
	MinimumValidSDKVersion = "^3.42.0"
	// MinimumTypescriptVersion is the default TypeScript version of generated packages.
	MinimumTypescriptVersion = "^4.3.5"
	// MinimumNodeTypesVersion is the version of @types/node that generated packages build against.
	MinimumNodeTypesVersion = "^14"
)

// NodePackageInfo holds the "nodejs" language block of a package.
type NodePackageInfo struct {
	// Custom name for the NPM package.
	PackageName string `json:"packageName,omitempty"`
	// Description for the NPM package.
	PackageDescription string `json:"packageDescription,omitempty"`
	// NPM dependencies to add to package.json.
	Dependencies map[string]string `json:"dependencies,omitempty"`
	// NPM dev-dependencies to add to package.json.
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	// NPM peer-dependencies to add to package.json.
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
	// The version of TypeScript to include as a dev-dependency.
	TypeScriptVersion string `json:"typescriptVersion,omitempty"`
	// Additional TypeScript files, usually supplied by overlays, to list in tsconfig.json.
	ExtraTypeScriptFiles []string `json:"extraTypeScriptFiles,omitempty"`
	// Whether to use the schema's version for package.json instead of a placeholder.
	RespectSchemaVersion bool `json:"respectSchemaVersion,omitempty"`
}

func lookupNodePackageInfo(pkg *schema.Package) (NodePackageInfo, error) {
	var info NodePackageInfo
	raw, ok := pkg.Language["nodejs"]
	if !ok {
		return info, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &info,
	})
	contract.AssertNoErrorf(err, "creating decoder")
	if err := decoder.Decode(raw); err != nil {
		return info, fmt.Errorf("decoding nodejs language settings: %w", err)
	}
	return info, nil
}

type generator struct {
	pkg     *schema.Package
	info    NodePackageInfo
	ectx    *codegen.EmitterContext
	unions  *codegen.UnionTable
	usage   map[*schema.ObjectType]codegen.Usage
	modules map[string]*modContext
}

type modContext struct {
	gen       *generator
	mod       string
	types     []*schema.ObjectType
	enums     []*schema.EnumType
	resources []*schema.Resource
	functions []*schema.Function
	children  codegen.StringSet
}

func (mod *modContext) String() string {
	return mod.mod
}

func (mod *modContext) dir() string {
	return moduleDir(mod.mod)
}

// fileImports records the imports a generated file needs.
type fileImports struct {
	inputs    bool
	outputs   bool
	enums     bool
	utilities bool
	externals map[string]string
}

func newFileImports() *fileImports {
	return &fileImports{externals: map[string]string{}}
}

// external returns the local name of an imported dependency.
func (g *generator) external(name string, imports *fileImports) string {
	alias := strcase.ToLowerCamel(name)
	if isReservedWord(alias) || !isLegalIdentifier(alias) {
		alias = makeValidIdentifier("_" + alias)
	}
	npm, ok := g.ectx.Imports[name]
	if !ok {
		npm = defaultImport(schema.Dependency{Name: name})
	}
	imports.externals[npm] = alias
	return alias
}

func defaultImport(dep schema.Dependency) string {
	return "@pulumi/" + dep.Name
}

func tokenToName(tok string) string {
	return cgstrings.Pascal(schema.TokenName(tok))
}

func tokenToFunctionName(tok string) string {
	return cgstrings.LowercaseFirst(schema.TokenName(tok))
}

func (g *generator) qualifier(ns, mod string) string {
	if mod == "" {
		return ns
	}
	return ns + "." + namespacePath(mod)
}

func (g *generator) objectName(obj *schema.ObjectType, input bool) string {
	name := tokenToName(obj.Token)
	if input {
		name += "Args"
	}
	return name
}

func (g *generator) externalType(t *schema.ExternalType, input bool, imports *fileImports) string {
	alias := g.external(t.Package, imports)
	name := tokenToName(t.Token)
	mod := ""
	if t.Module != "" {
		mod = "." + namespacePath(t.Module)
	}
	switch {
	case t.Kind == schema.ExternalResource:
		return alias + mod + "." + name
	case t.IsEnum:
		return alias + ".types.enums" + mod + "." + name
	case input:
		return alias + ".types.input" + mod + "." + name + "Args"
	default:
		return alias + ".types.output" + mod + "." + name
	}
}

// typeString returns the TypeScript type of a plain value of type t. fromDir is the directory of the file that
// references the type.
func (g *generator) typeString(t schema.Type, input bool, constValue interface{}, fromDir string, imports *fileImports) string {
	if s, ok := constValue.(string); ok {
		return strconv.Quote(s)
	}

	switch t := t.(type) {
	case *schema.OptionalType:
		return g.typeString(t.ElementType, input, nil, fromDir, imports)
	case *schema.ArrayType:
		elem := g.typeString(t.ElementType, input, nil, fromDir, imports)
		if strings.Contains(elem, " | ") {
			elem = "(" + elem + ")"
		}
		return elem + "[]"
	case *schema.MapType:
		return fmt.Sprintf("{[key: string]: %s}", g.typeString(t.ElementType, input, nil, fromDir, imports))
	case *schema.EnumType:
		imports.enums = true
		return g.qualifier("enums", g.pkg.TokenToModule(t.Token)) + "." + tokenToName(t.Token)
	case *schema.ObjectType:
		if input {
			imports.inputs = true
			return g.qualifier("inputs", g.pkg.TokenToModule(t.Token)) + "." + g.objectName(t, true)
		}
		imports.outputs = true
		return g.qualifier("outputs", g.pkg.TokenToModule(t.Token)) + "." + g.objectName(t, false)
	case *schema.ResourceType:
		target := moduleDir(g.pkg.TokenToModule(t.Token))
		return fmt.Sprintf("import(%q).%s", relativeImport(fromDir, target), tokenToName(t.Token))
	case *schema.ExternalType:
		return g.externalType(t, input, imports)
	case *schema.UnionType:
		elements := make([]string, len(t.ElementTypes))
		for i, e := range t.ElementTypes {
			elements[i] = g.typeString(e, input, nil, fromDir, imports)
		}
		return strings.Join(elements, " | ")
	default:
		switch t {
		case schema.BoolType:
			return "boolean"
		case schema.IntType, schema.NumberType:
			return "number"
		case schema.StringType:
			return "string"
		case schema.AssetType:
			return "pulumi.asset.Asset | pulumi.asset.Archive"
		case schema.ArchiveType:
			return "pulumi.asset.Archive"
		default:
			return "any"
		}
	}
}

// inputType wraps the type of an input property in pulumi.Input.
func (g *generator) inputType(p *schema.Property, fromDir string, imports *fileImports) string {
	return fmt.Sprintf("pulumi.Input<%s>", g.typeString(p.Type, true, p.ConstValue, fromDir, imports))
}

func tsPrimitiveValue(value interface{}) (string, error) {
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
		return fmt.Sprintf("%q", v.String()), nil
	default:
		return "", fmt.Errorf("unsupported default value of type %T", value)
	}
}

func (g *generator) getDefaultValue(dv *schema.DefaultValue, t schema.Type, imports *fileImports) (string, error) {
	var val string
	if dv.Value != nil {
		v, err := tsPrimitiveValue(dv.Value)
		if err != nil {
			return "", err
		}
		val = v
	}

	if len(dv.Environment) != 0 {
		imports.utilities = true

		getType := ""
		if enum, ok := t.(*schema.EnumType); ok {
			t = enum.ElementType
		}
		switch t {
		case schema.BoolType:
			getType = "Boolean"
		case schema.IntType, schema.NumberType:
			getType = "Number"
		}

		envVars := fmt.Sprintf("%q", dv.Environment[0])
		for _, e := range dv.Environment[1:] {
			envVars += fmt.Sprintf(", %q", e)
		}

		getEnv := fmt.Sprintf("utilities.getEnv%s(%s)", getType, envVars)
		if val != "" {
			val = fmt.Sprintf("(%s || %s)", getEnv, val)
		} else {
			val = getEnv
		}
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

func provideDefaultsFuncName(obj *schema.ObjectType) string {
	return cgstrings.LowercaseFirst(tokenToName(obj.Token)) + "ArgsProvideDefaults"
}

// applyDefaults wraps arg in a call to the provideDefaults function of its object type, if it has one.
func (g *generator) applyDefaults(p *schema.Property, arg string, imports *fileImports) string {
	obj, ok := schema.UnwrapOptional(p.Type).(*schema.ObjectType)
	if !ok || obj.Package != g.pkg || !hasDefaults(obj.Properties) {
		return arg
	}
	imports.inputs = true
	fn := g.qualifier("inputs", g.pkg.TokenToModule(obj.Token)) + "." + provideDefaultsFuncName(obj)
	return fmt.Sprintf("(%[1]s ? pulumi.output(%[1]s).apply(%[2]s) : undefined)", arg, fn)
}

// genPlainType writes an interface. Input interfaces wrap their property types in pulumi.Input unless plain is set.
func (g *generator) genPlainType(w io.Writer, name, comment string, properties []*schema.Property, input, plain, readonly bool,
	fromDir string, level int, imports *fileImports,
) {
	indent := strings.Repeat("    ", level)

	printComment(w, comment, "", indent)
	fmt.Fprintf(w, "%sexport interface %s {\n", indent, name)
	for _, p := range properties {
		printComment(w, p.Description, p.DeprecationMessage, indent+"    ")

		prefix := ""
		if readonly {
			prefix = "readonly "
		}
		sigil := ""
		if !p.IsRequired() {
			sigil = "?"
		}

		var typ string
		if input && !plain {
			typ = g.inputType(p, fromDir, imports)
		} else {
			typ = g.typeString(p.Type, input, p.ConstValue, fromDir, imports)
		}
		fmt.Fprintf(w, "%s    %s%s%s: %s;\n", indent, prefix, propertyKey(p.Name), sigil, typ)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

func (g *generator) genPlainObjectDefaultFunc(w io.Writer, obj *schema.ObjectType, level int, imports *fileImports) error {
	indent := strings.Repeat("    ", level)
	name := g.objectName(obj, true)
	fn := provideDefaultsFuncName(obj)

	printComment(w, fmt.Sprintf("%s sets the appropriate defaults for %s", fn, name), "", indent)
	fmt.Fprintf(w, "%sexport function %s(val: %s): %s {\n", indent, fn, name, name)
	fmt.Fprintf(w, "%s    return {\n", indent)
	fmt.Fprintf(w, "%s        ...val,\n", indent)
	for _, p := range obj.Properties {
		if p.DefaultValue == nil {
			continue
		}
		dv, err := g.getDefaultValue(p.DefaultValue, schema.UnwrapOptional(p.Type), imports)
		if err != nil {
			return fmt.Errorf("%s: property %s: %w", obj.Token, p.Name, err)
		}
		fmt.Fprintf(w, "%s        %s: (%s) ?? %s,\n", indent, propertyKey(p.Name), propertyAccess("val", p.Name), dv)
	}
	fmt.Fprintf(w, "%s    };\n", indent)
	fmt.Fprintf(w, "%s}\n", indent)
	return nil
}

func (mod *modContext) resourceFileName(r *schema.Resource) string {
	return mod.sourceFileName(tokenToName(r.Token))
}

func (mod *modContext) functionFileName(f *schema.Function) string {
	return mod.sourceFileName(tokenToFunctionName(f.Token))
}

// sourceFileName returns the path of a member's source file. Names that would shadow an index, the utilities file or
// the types directory get a trailing underscore.
func (mod *modContext) sourceFileName(name string) string {
	base := cgstrings.LowercaseFirst(name)
	switch base {
	case "index", "utilities":
		base += "_"
	case "types":
		if mod.mod == "" {
			base += "_"
		}
	}
	for _, child := range mod.children.SortedValues() {
		if child == base {
			base += "_"
		}
	}
	return path.Join(mod.dir(), base+".ts")
}

func (mod *modContext) genResource(w io.Writer, r *schema.Resource, imports *fileImports) (resourceFileInfo, error) {
	g := mod.gen
	dir := mod.dir()
	name := tokenToName(r.Token)
	info := resourceFileInfo{resourceClassName: name, resourceArgsInterfaceName: name + "Args"}

	// Write the TypeDoc/JSDoc for the resource class
	printComment(w, r.Description, r.DeprecationMessage, "")

	baseType, optionsType := "CustomResource", "CustomResourceOptions"
	if r.IsComponent {
		baseType, optionsType = "ComponentResource", "ComponentResourceOptions"
	}

	// Begin defining the class.
	fmt.Fprintf(w, "export class %s extends pulumi.%s {\n", name, baseType)

	// Emit a static factory to read instances of this resource unless this is a ComponentResource.
	stateType := name + "State"
	if !r.IsComponent {
		info.stateInterfaceName = stateType

		fmt.Fprintf(w, "    /**\n")
		fmt.Fprintf(w, "     * Get an existing %s resource's state with the given name, ID, and optional extra\n", name)
		fmt.Fprintf(w, "     * properties used to qualify the lookup.\n")
		fmt.Fprintf(w, "     *\n")
		fmt.Fprintf(w, "     * @param name The _unique_ name of the resulting resource.\n")
		fmt.Fprintf(w, "     * @param id The _unique_ provider ID of the resource to lookup.\n")
		fmt.Fprintf(w, "     * @param state Any extra arguments used during the lookup.\n")
		fmt.Fprintf(w, "     * @param opts Optional settings to control the behavior of the CustomResource.\n")
		fmt.Fprintf(w, "     */\n")
		fmt.Fprintf(w, "    public static get(name: string, id: pulumi.Input<pulumi.ID>, state?: %s, opts?: pulumi.%s): %s {\n",
			stateType, optionsType, name)
		if r.DeprecationMessage != "" {
			fmt.Fprintf(w, "        pulumi.log.warn(\"%s is deprecated: %s\")\n", name, escape(r.DeprecationMessage))
		}
		fmt.Fprintf(w, "        return new %s(name, <any>state, { ...opts, id: id });\n", name)
		fmt.Fprintf(w, "    }\n")
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "    /** @internal */\n")
	fmt.Fprintf(w, "    public static readonly __pulumiType = '%s';\n", r.Token)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "    /**\n")
	fmt.Fprintf(w, "     * Returns true if the given object is an instance of %s.  This is designed to work even\n", name)
	fmt.Fprintf(w, "     * when multiple copies of the Pulumi SDK have been loaded into the same process.\n")
	fmt.Fprintf(w, "     */\n")
	fmt.Fprintf(w, "    public static isInstance(obj: any): obj is %s {\n", name)
	fmt.Fprintf(w, "        if (obj === undefined || obj === null) {\n")
	fmt.Fprintf(w, "            return false;\n")
	fmt.Fprintf(w, "        }\n")
	fmt.Fprintf(w, "        return obj['__pulumiType'] === %s.__pulumiType;\n", name)
	fmt.Fprintf(w, "    }\n")
	fmt.Fprintf(w, "\n")

	// Emit all properties (using their output types).
	ins := codegen.NewStringSet()
	allOptionalInputs := true
	for _, prop := range r.InputProperties {
		ins.Add(prop.Name)
		allOptionalInputs = allOptionalInputs && !prop.IsRequired()
	}
	for _, prop := range r.Properties {
		printComment(w, prop.Description, prop.DeprecationMessage, "    ")

		// Make a little comment in the code so it's easy to pick out output properties.
		var outcomment string
		if !ins.Has(prop.Name) {
			outcomment = "/*out*/ "
		}

		typ := g.typeString(prop.Type, false, prop.ConstValue, dir, imports)
		if !prop.IsRequired() {
			typ += " | undefined"
		}
		fmt.Fprintf(w, "    public %sreadonly %s!: pulumi.Output<%s>;\n", outcomment, propertyKey(prop.Name), typ)
	}
	if len(r.Properties) > 0 {
		fmt.Fprintf(w, "\n")
	}

	// Now create a constructor that chains supercalls and stores into properties.
	fmt.Fprintf(w, "    /**\n")
	fmt.Fprintf(w, "     * Create a %s resource with the given unique name, arguments, and options.\n", name)
	fmt.Fprintf(w, "     *\n")
	fmt.Fprintf(w, "     * @param name The _unique_ name of the resource.\n")
	fmt.Fprintf(w, "     * @param args The arguments to use to populate this resource's properties.\n")
	fmt.Fprintf(w, "     * @param opts A bag of options that control this resource's behavior.\n")
	fmt.Fprintf(w, "     */\n")

	var argsFlags string
	if allOptionalInputs {
		// If the number of required input properties was zero, we can make the args object optional.
		argsFlags = "?"
	}
	argsType := name + "Args"

	if r.IsComponent {
		fmt.Fprintf(w, "    constructor(name: string, args%s: %s, opts?: pulumi.%s) {\n", argsFlags, argsType, optionsType)
	} else {
		fmt.Fprintf(w, "    constructor(name: string, args%s: %s, opts?: pulumi.%s)\n", argsFlags, argsType, optionsType)
		fmt.Fprintf(w, "    constructor(name: string, argsOrState?: %s | %s, opts?: pulumi.%s) {\n", argsType, stateType, optionsType)
	}
	if r.DeprecationMessage != "" {
		fmt.Fprintf(w, "        pulumi.log.warn(\"%s is deprecated: %s\")\n", name, escape(r.DeprecationMessage))
	}
	fmt.Fprintf(w, "        let resourceInputs: pulumi.Inputs = {};\n")
	fmt.Fprintf(w, "        opts = opts || {};\n")

	genInputProps := func() error {
		for _, prop := range r.InputProperties {
			if prop.IsRequired() {
				fmt.Fprintf(w, "            if ((!args || %s === undefined) && !opts.urn) {\n", propertyAccess("args", prop.Name))
				fmt.Fprintf(w, "                throw new Error(\"Missing required property '%s'\");\n", prop.Name)
				fmt.Fprintf(w, "            }\n")
			}
		}
		for _, prop := range r.InputProperties {
			arg := fmt.Sprintf("args ? %s : undefined", g.applyDefaults(prop, propertyAccess("args", prop.Name), imports))
			if prop.ConstValue != nil {
				cv, err := tsPrimitiveValue(prop.ConstValue)
				if err != nil {
					return fmt.Errorf("%s: property %s: %w", r.Token, prop.Name, err)
				}
				arg = cv
			} else if prop.DefaultValue != nil {
				dv, err := g.getDefaultValue(prop.DefaultValue, schema.UnwrapOptional(prop.Type), imports)
				if err != nil {
					return fmt.Errorf("%s: property %s: %w", r.Token, prop.Name, err)
				}
				arg = fmt.Sprintf("(%s) ?? %s", arg, dv)
			}
			fmt.Fprintf(w, "            resourceInputs[%q] = %s;\n", prop.Name, arg)
		}
		for _, prop := range r.Properties {
			if !ins.Has(prop.Name) {
				fmt.Fprintf(w, "            resourceInputs[%q] = undefined /*out*/;\n", prop.Name)
			}
		}
		return nil
	}

	if r.IsComponent {
		fmt.Fprintf(w, "        if (!opts.id) {\n")
		if err := genInputProps(); err != nil {
			return info, err
		}
		fmt.Fprintf(w, "        } else {\n")
		for _, prop := range r.Properties {
			fmt.Fprintf(w, "            resourceInputs[%q] = undefined /*out*/;\n", prop.Name)
		}
	} else {
		// The lookup case:
		fmt.Fprintf(w, "        if (opts.id) {\n")
		fmt.Fprintf(w, "            const state = argsOrState as %s | undefined;\n", stateType)
		for _, prop := range r.Properties {
			fmt.Fprintf(w, "            resourceInputs[%q] = state ? %s : undefined;\n", prop.Name, propertyAccess("state", prop.Name))
		}
		// The creation case (with args):
		fmt.Fprintf(w, "        } else {\n")
		fmt.Fprintf(w, "            const args = argsOrState as %s | undefined;\n", argsType)
		if err := genInputProps(); err != nil {
			return info, err
		}
	}
	fmt.Fprintf(w, "        }\n")

	// If the caller didn't request a specific version, supply one using the version of this library.
	imports.utilities = true
	fmt.Fprint(w, "        opts = pulumi.mergeOptions(utilities.resourceOptsDefaults(), opts);\n")

	// Now invoke the super constructor with the type, name, and a property map.
	if r.IsComponent {
		fmt.Fprintf(w, "        super(%s.__pulumiType, name, resourceInputs, opts, true /*remote*/);\n", name)
	} else {
		fmt.Fprintf(w, "        super(%s.__pulumiType, name, resourceInputs, opts);\n", name)
	}
	fmt.Fprintf(w, "    }\n")
	fmt.Fprintf(w, "}\n")

	// Emit the state type for get methods.
	if !r.IsComponent {
		fmt.Fprintf(w, "\n")
		stateProps := make([]*schema.Property, len(r.Properties))
		for i, p := range r.Properties {
			stateProps[i] = &schema.Property{
				Name:               p.Name,
				Description:        p.Description,
				Type:               optional(p.Type),
				DeprecationMessage: p.DeprecationMessage,
			}
		}
		g.genPlainType(w, stateType, fmt.Sprintf("Input properties used for looking up and filtering %s resources.", name),
			stateProps, true, false, false, dir, 0, imports)
	}

	// Emit the argument type for construction.
	fmt.Fprintf(w, "\n")
	g.genPlainType(w, argsType, fmt.Sprintf("The set of arguments for constructing a %s resource.", name),
		r.InputProperties, true, false, false, dir, 0, imports)
	return info, nil
}

func optional(t schema.Type) schema.Type {
	if _, ok := t.(*schema.OptionalType); ok {
		return t
	}
	return &schema.OptionalType{ElementType: t}
}

func functionArgsOptional(f *schema.Function) bool {
	if f.Inputs != nil {
		for _, p := range f.Inputs.Properties {
			if p.IsRequired() {
				return false
			}
		}
	}
	return true
}

func (mod *modContext) genFunction(w io.Writer, f *schema.Function, imports *fileImports) (functionFileInfo, error) {
	g := mod.gen
	dir := mod.dir()
	name := tokenToFunctionName(f.Token)
	info := functionFileInfo{functionName: name}

	// Write the TypeDoc/JSDoc for the data source function.
	printComment(w, f.Description, f.DeprecationMessage, "")

	hasArgs := f.Inputs != nil && len(f.Inputs.Properties) > 0
	argsOptional := functionArgsOptional(f)
	var argsig string
	if hasArgs {
		optFlag := ""
		if argsOptional {
			optFlag = "?"
		}
		argsig = fmt.Sprintf("args%s: %sArgs, ", optFlag, cgstrings.UppercaseFirst(name))
	}

	retty := "void"
	if f.Outputs != nil {
		retty = cgstrings.UppercaseFirst(name) + "Result"
	}

	fmt.Fprintf(w, "export function %s(%sopts?: pulumi.InvokeOptions): Promise<%s> {\n", name, argsig, retty)
	if f.DeprecationMessage != "" {
		fmt.Fprintf(w, "    pulumi.log.warn(\"%s is deprecated: %s\")\n", name, escape(f.DeprecationMessage))
	}
	if hasArgs && argsOptional {
		fmt.Fprintf(w, "    args = args || {};\n")
	}
	fmt.Fprint(w, "\n")

	imports.utilities = true
	fmt.Fprintf(w, "    opts = pulumi.mergeOptions(utilities.resourceOptsDefaults(), opts || {});\n")
	fmt.Fprintf(w, "    return pulumi.runtime.invoke(%q, {\n", f.Token)
	if hasArgs {
		for _, p := range f.Inputs.Properties {
			fmt.Fprintf(w, "        %q: %s,\n", p.Name, g.applyDefaults(p, propertyAccess("args", p.Name), imports))
		}
	}
	fmt.Fprint(w, "    }, opts);\n")
	fmt.Fprint(w, "}\n")

	if hasArgs {
		fmt.Fprintf(w, "\n")
		info.functionArgsInterfaceName = cgstrings.UppercaseFirst(name) + "Args"
		g.genPlainType(w, info.functionArgsInterfaceName, f.Inputs.Description, f.Inputs.Properties, true, true, false, dir, 0, imports)
	}
	if f.Outputs != nil {
		fmt.Fprintf(w, "\n")
		info.functionResultInterfaceName = retty
		g.genPlainType(w, retty, f.Outputs.Description, f.Outputs.Properties, false, false, true, dir, 0, imports)
	}
	return info, nil
}

func (g *generator) genHeader(w io.Writer, fromDir string, imports *fileImports, pulumi bool) {
	fmt.Fprintf(w, "// *** WARNING: this file was generated by %v. ***\n", g.ectx.Tool)
	fmt.Fprintf(w, "// *** Do not edit by hand unless you're certain you know what you are doing! ***\n\n")

	if pulumi {
		fmt.Fprintf(w, "import * as pulumi from \"@pulumi/pulumi\";\n")
	}
	root := relativeImport(fromDir, "")
	if imports.inputs {
		fmt.Fprintf(w, "import * as inputs from %q;\n", root+"/types/input")
	}
	if imports.outputs {
		fmt.Fprintf(w, "import * as outputs from %q;\n", root+"/types/output")
	}
	if imports.enums {
		fmt.Fprintf(w, "import * as enums from %q;\n", root+"/types/enums")
	}
	if imports.utilities {
		fmt.Fprintf(w, "import * as utilities from %q;\n", root+"/utilities")
	}

	if len(imports.externals) > 0 {
		fmt.Fprintf(w, "\n")
		var names []string
		for npm := range imports.externals {
			names = append(names, npm)
		}
		sort.Strings(names)
		for _, npm := range names {
			fmt.Fprintf(w, "import * as %s from %q;\n", imports.externals[npm], npm)
		}
	}
	fmt.Fprintf(w, "\n")
}

// genTypes generates types/input.ts or types/output.ts.
func (g *generator) genTypes(input bool, imports *fileImports) (string, error) {
	w := &bytes.Buffer{}

	var mods []string
	for mod := range g.modules {
		mods = append(mods, mod)
	}
	sort.Strings(mods)

	for _, m := range mods {
		mod := g.modules[m]
		var types []*schema.ObjectType
		for _, t := range mod.types {
			usage := g.usage[t]
			if input && usage.Input || !input && usage.Output {
				types = append(types, t)
			}
		}
		if len(types) == 0 {
			continue
		}

		level := 0
		if m != "" {
			fmt.Fprintf(w, "export namespace %s {\n", namespacePath(m))
			level = 1
		}
		for i, t := range types {
			if i > 0 {
				fmt.Fprintf(w, "\n")
			}
			properties := append(g.unions.SynthesizedDiscriminants(t), t.Properties...)
			sort.SliceStable(properties, func(i, j int) bool {
				return properties[i].Name < properties[j].Name
			})
			g.genPlainType(w, g.objectName(t, input), t.Description, properties, input, false, !input, "types", level, imports)
			if input && hasDefaults(t.Properties) {
				fmt.Fprintf(w, "\n")
				if err := g.genPlainObjectDefaultFunc(w, t, level, imports); err != nil {
					return "", err
				}
			}
		}
		if m != "" {
			fmt.Fprintf(w, "}\n")
		}
		fmt.Fprintf(w, "\n")
	}
	return w.String(), nil
}

func (g *generator) genEnum(w io.Writer, enum *schema.EnumType, level int) error {
	indent := strings.Repeat("    ", level)
	enumName := tokenToName(enum.Token)

	fmt.Fprintf(w, "%sexport const %s = {\n", indent, enumName)
	for _, e := range enum.Elements {
		// If the enum doesn't have a name, set the value as the name.
		if e.Name == "" {
			e.Name = fmt.Sprintf("%v", e.Value)
		}
		memberName, err := makeSafeEnumName(e.Name, enumName)
		if err != nil {
			return fmt.Errorf("enum %s: %w", enum.Token, err)
		}
		printComment(w, e.Description, e.DeprecationMessage, indent+"    ")
		value, err := tsPrimitiveValue(e.Value)
		if err != nil {
			return fmt.Errorf("enum %s: %w", enum.Token, err)
		}
		fmt.Fprintf(w, "%s    %s: %s,\n", indent, memberName, value)
	}
	fmt.Fprintf(w, "%s} as const;\n", indent)
	fmt.Fprintf(w, "\n")
	printComment(w, enum.Description, "", indent)
	fmt.Fprintf(w, "%sexport type %[2]s = (typeof %[2]s)[keyof typeof %[2]s];\n", indent, enumName)
	return nil
}

func (g *generator) genEnums() (string, error) {
	w := &bytes.Buffer{}

	var mods []string
	for mod := range g.modules {
		mods = append(mods, mod)
	}
	sort.Strings(mods)

	for _, m := range mods {
		mod := g.modules[m]
		if len(mod.enums) == 0 {
			continue
		}
		level := 0
		if m != "" {
			fmt.Fprintf(w, "export namespace %s {\n", namespacePath(m))
			level = 1
		}
		for i, e := range mod.enums {
			if i > 0 {
				fmt.Fprintf(w, "\n")
			}
			if err := g.genEnum(w, e, level); err != nil {
				return "", err
			}
		}
		if m != "" {
			fmt.Fprintf(w, "}\n")
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprint(w, codegen.PreserveRegion("//", codegen.ExtensionsRegion))
	return w.String(), nil
}

func (mod *modContext) genIndex(w io.Writer, exports []fileInfo, result *codegen.EmitResult) {
	g := mod.gen
	dir := mod.dir()

	children := codegen.NewStringSet(mod.children.SortedValues()...)
	if mod.mod == "" {
		children.Add("types")
	}

	imports := newFileImports()
	imports.utilities = len(exports) > 0
	imports.enums = len(mod.enums) > 0
	g.genHeader(w, dir, imports, len(mod.resources) > 0)

	// Export anything flatly that is a direct export rather than sub-module.
	if len(exports) > 0 {
		fmt.Fprintf(w, "// Export members:\n")
		sort.SliceStable(exports, func(i, j int) bool {
			return exports[i].pathToNodeModule < exports[j].pathToNodeModule
		})

		ll := newLazyLoadGen()
		for _, exp := range exports {
			rel := strings.TrimPrefix(strings.TrimPrefix(exp.pathToNodeModule, dir), "/")
			ll.genReexport(w, exp, "./"+strings.TrimSuffix(rel, ".ts"))
		}
	}

	if len(mod.enums) > 0 {
		fmt.Fprintf(w, "// Export enums:\n")
		for _, e := range mod.enums {
			qualified := g.qualifier("enums", mod.mod) + "." + tokenToName(e.Token)
			fmt.Fprintf(w, "export const %s = %s;\n", tokenToName(e.Token), qualified)
			fmt.Fprintf(w, "export type %s = %s;\n", tokenToName(e.Token), qualified)
		}
		fmt.Fprintf(w, "\n")
	}

	// If there are submodules, export them.
	if len(children) > 0 {
		fmt.Fprintf(w, "// Export sub-modules:\n")
		sorted := children.SortedValues()
		for _, child := range sorted {
			fmt.Fprintf(w, "import * as %[1]s from \"./%[1]s\";\n", child)
		}
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "export {\n")
		for _, child := range sorted {
			fmt.Fprintf(w, "    %s,\n", child)
		}
		fmt.Fprintf(w, "};\n")
		fmt.Fprintf(w, "\n")
	}

	// If there are resources in this module, register the module with the runtime.
	if len(mod.resources) != 0 {
		mod.genResourceModule(w, result)
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprint(w, codegen.PreserveRegion("//", codegen.ExtensionsRegion))
}

// genResourceModule generates a ResourceModule definition and the code to register an instance thereof with the
// Pulumi runtime. The generated ResourceModule supports the deserialization of resource references into fully-
// hydrated Resource instances.
func (mod *modContext) genResourceModule(w io.Writer, result *codegen.EmitResult) {
	contract.Assertf(len(mod.resources) != 0, "module %v has no resources", mod.mod)

	registrations := codegen.NewStringSet()
	fmt.Fprintf(w, "const _module = {\n")
	fmt.Fprintf(w, "    version: utilities.getVersion(),\n")
	fmt.Fprintf(w, "    construct: (name: string, type: string, urn: string): pulumi.Resource => {\n")
	fmt.Fprintf(w, "        switch (type) {\n")
	for _, r := range mod.resources {
		registrations.Add(strings.Split(r.Token, ":")[1])
		result.Tokens = append(result.Tokens, r.Token)

		fmt.Fprintf(w, "            case \"%v\":\n", r.Token)
		fmt.Fprintf(w, "                return new %v(name, <any>undefined, { urn })\n", tokenToName(r.Token))
	}
	fmt.Fprintf(w, "            default:\n")
	fmt.Fprintf(w, "                throw new Error(`unknown resource type ${type}`);\n")
	fmt.Fprintf(w, "        }\n")
	fmt.Fprintf(w, "    },\n")
	fmt.Fprintf(w, "};\n")
	for _, name := range registrations.SortedValues() {
		fmt.Fprintf(w, "pulumi.runtime.registerResourceModule(\"%v\", \"%v\", _module)\n", mod.gen.pkg.Name, name)
	}
}

type npmPackage struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Description      string            `json:"description,omitempty"`
	Keywords         []string          `json:"keywords,omitempty"`
	Homepage         string            `json:"homepage,omitempty"`
	Repository       string            `json:"repository,omitempty"`
	License          string            `json:"license,omitempty"`
	Main             string            `json:"main"`
	Types            string            `json:"types"`
	Scripts          map[string]string `json:"scripts,omitempty"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
	Pulumi           npmPulumiInfo     `json:"pulumi"`
}

type npmPulumiInfo struct {
	Resource bool   `json:"resource"`
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
}

func genNPMPackageMetadata(pkg *schema.Package, info NodePackageInfo) string {
	packageName := info.PackageName
	if packageName == "" {
		packageName = fmt.Sprintf("@pulumi/%s", pkg.Name)
	}

	devDependencies := map[string]string{}
	if info.TypeScriptVersion != "" {
		devDependencies["typescript"] = info.TypeScriptVersion
	} else {
		devDependencies["typescript"] = MinimumTypescriptVersion
	}
	devDependencies["@types/node"] = MinimumNodeTypesVersion

	version := "${VERSION}"
	pluginVersion := ""
	if pkg.Version != nil && info.RespectSchemaVersion {
		version = pkg.Version.String()
		pluginVersion = version
	}

	description := info.PackageDescription
	if description == "" {
		description = pkg.Description
	}

	// Create info that will get serialized into an NPM package.json.
	npminfo := npmPackage{
		Name:        packageName,
		Version:     version,
		Description: description,
		Keywords:    pkg.Keywords,
		Homepage:    pkg.Homepage,
		Repository:  pkg.Repository,
		License:     pkg.License,
		Main:        "bin/index.js",
		Types:       "bin/index.d.ts",
		Scripts: map[string]string{
			"build": "tsc",
		},
		Dependencies:    map[string]string{},
		DevDependencies: devDependencies,
		Pulumi: npmPulumiInfo{
			Resource: true,
			Name:     pkg.Name,
			Version:  pluginVersion,
		},
	}

	// Copy the overlay dependencies, if any.
	for depk, depv := range info.Dependencies {
		npminfo.Dependencies[depk] = depv
	}
	for depk, depv := range info.DevDependencies {
		npminfo.DevDependencies[depk] = depv
	}
	for depk, depv := range info.PeerDependencies {
		if npminfo.PeerDependencies == nil {
			npminfo.PeerDependencies = make(map[string]string)
		}
		npminfo.PeerDependencies[depk] = depv
	}

	// Declared schema dependencies that the language block does not pin get a caret range of their version.
	for _, dep := range pkg.Dependencies {
		npm := defaultImport(dep)
		if _, ok := npminfo.Dependencies[npm]; !ok {
			npminfo.Dependencies[npm] = "^" + dep.Version.String()
		}
	}

	// If there is no @pulumi/pulumi, add it as a dependency.
	sdkPack := "@pulumi/pulumi"
	if npminfo.Dependencies[sdkPack] == "" &&
		npminfo.DevDependencies[sdkPack] == "" &&
		npminfo.PeerDependencies[sdkPack] == "" {
		npminfo.Dependencies[sdkPack] = MinimumValidSDKVersion
	}

	// Now write out the serialized form.
	npmjson, err := json.MarshalIndent(npminfo, "", "    ")
	contract.AssertNoErrorf(err, "error serializing package.json")
	return string(npmjson) + "\n"
}

func genTypeScriptProjectFile(tsFiles []string) string {
	w := &bytes.Buffer{}

	fmt.Fprintf(w, `{
    "compilerOptions": {
        "outDir": "bin",
        "target": "es2016",
        "module": "commonjs",
        "moduleResolution": "node",
        "declaration": true,
        "sourceMap": true,
        "stripInternal": true,
        "experimentalDecorators": true,
        "noFallthroughCasesInSwitch": true,
        "forceConsistentCasingInFileNames": true,
        "strict": true
    },
    "files": [
`)

	sort.Strings(tsFiles)
	for i, file := range tsFiles {
		var suffix string
		if i != len(tsFiles)-1 {
			suffix = ","
		}
		fmt.Fprintf(w, "        \"%s\"%s\n", file, suffix)
	}
	fmt.Fprintf(w, `    ]
}
`)
	return w.String()
}

const utilitiesFile = `
export function getEnv(...vars: string[]): string | undefined {
    for (const v of vars) {
        const value = process.env[v];
        if (value) {
            return value;
        }
    }
    return undefined;
}

export function getEnvBoolean(...vars: string[]): boolean | undefined {
    const s = getEnv(...vars);
    if (s !== undefined) {
        // NOTE: these values are taken from https://golang.org/src/strconv/atob.go?s=351:391#L1, which is what
        // Terraform uses internally when parsing boolean values.
        if (["1", "t", "T", "true", "TRUE", "True"].find(v => v === s) !== undefined) {
            return true;
        }
        if (["0", "f", "F", "false", "FALSE", "False"].find(v => v === s) !== undefined) {
            return false;
        }
    }
    return undefined;
}

export function getEnvNumber(...vars: string[]): number | undefined {
    const s = getEnv(...vars);
    if (s !== undefined) {
        const f = parseFloat(s);
        if (!isNaN(f)) {
            return f;
        }
    }
    return undefined;
}

export function getVersion(): string {
    let version = require('./package.json').version;
    // Node allows for the version to be prefixed by a "v", while semver doesn't.
    // If there is a v, strip it off.
    if (version.indexOf('v') === 0) {
        version = version.slice(1);
    }
    return version;
}

/** @internal */
export function resourceOptsDefaults(): any {
    return { version: getVersion() };
}

/** @internal */
export function lazyLoad(exports: any, props: string[], loadModule: any) {
    for (let property of props) {
        Object.defineProperty(exports, property, {
            enumerable: true,
            get: function() {
                return loadModule()[property];
            },
        });
    }
}
`

// NewEmitter returns the Node.js emitter.
func NewEmitter() codegen.Emitter {
	return emitter{}
}

type emitter struct{}

func (emitter) Language() string {
	return "nodejs"
}

type naming struct{}

func (naming) TypeName(token string) string {
	return tokenToName(token)
}

func (naming) PropertyName(name string) string {
	return propertyKey(name)
}

func (naming) ModulePath(module string) string {
	return moduleDir(module)
}

func (emitter) NewContext(pkg *schema.Package, overlays codegen.StringSet) *codegen.EmitterContext {
	return &codegen.EmitterContext{
		Tool:     codegen.Tool,
		Language: "nodejs",
		Naming:   naming{},
		Imports:  codegen.PackageImports(pkg, "nodejs", defaultImport),
		Overlays: overlays,
	}
}

func (emitter) Emit(ctx context.Context, pkg *schema.Package, ectx *codegen.EmitterContext) (*codegen.EmitResult, error) {
	return GeneratePackage(ctx, pkg, ectx)
}

// GeneratePackage generates the Node.js SDK for pkg.
func GeneratePackage(ctx context.Context, pkg *schema.Package, ectx *codegen.EmitterContext) (*codegen.EmitResult, error) {
	info, err := lookupNodePackageInfo(pkg)
	if err != nil {
		return nil, err
	}
	unions, err := codegen.CollectObjectUnions(pkg)
	if err != nil {
		return nil, err
	}

	g := &generator{
		pkg:     pkg,
		info:    info,
		ectx:    ectx,
		unions:  unions,
		usage:   codegen.ObjectTypeUsage(pkg),
		modules: map[string]*modContext{},
	}

	// group resources, types, and functions into NodeJS modules
	var getMod func(mod string) *modContext
	getMod = func(mod string) *modContext {
		m, ok := g.modules[mod]
		if !ok {
			m = &modContext{gen: g, mod: mod, children: codegen.NewStringSet()}
			g.modules[mod] = m

			if mod != "" {
				parent := ""
				if i := strings.LastIndex(mod, "/"); i >= 0 {
					parent = mod[:i]
				}
				getMod(parent).children.Add(path.Base(moduleDir(mod)))
			}
		}
		return m
	}
	getMod("")

	for _, t := range pkg.Types {
		m := getMod(pkg.TokenToModule(schema.TypeToken(t)))
		switch t := t.(type) {
		case *schema.ObjectType:
			m.types = append(m.types, t)
		case *schema.EnumType:
			m.enums = append(m.enums, t)
		}
	}
	for _, r := range pkg.Resources {
		m := getMod(pkg.TokenToModule(r.Token))
		m.resources = append(m.resources, r)
	}
	for _, f := range pkg.Functions {
		m := getMod(pkg.TokenToModule(f.Token))
		m.functions = append(m.functions, f)
	}

	result := codegen.NewEmitResult()
	setFile := func(relPath, contents string) {
		if ectx.Overlays.Has(relPath) {
			glog.V(3).Infof("nodejs: %s is supplied by an overlay", relPath)
			return
		}
		result.Files.Add(relPath, []byte(contents))
	}

	var mods []string
	for mod := range g.modules {
		mods = append(mods, mod)
	}
	sort.Strings(mods)

	for _, m := range mods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mod := g.modules[m]
		var exports []fileInfo

		// Resources
		for _, r := range mod.resources {
			relPath := mod.resourceFileName(r)
			name := tokenToName(r.Token)
			exp := fileInfo{
				fileType:         resourceFileType,
				pathToNodeModule: relPath,
				resourceFileInfo: resourceFileInfo{resourceClassName: name, resourceArgsInterfaceName: name + "Args"},
			}
			if !r.IsComponent {
				exp.resourceFileInfo.stateInterfaceName = name + "State"
			}
			exports = append(exports, exp)

			if r.IsOverlay {
				result.Overlays = append(result.Overlays, relPath)
				continue
			}

			imports := newFileImports()
			buffer := &bytes.Buffer{}
			if _, err := mod.genResource(buffer, r, imports); err != nil {
				return nil, err
			}
			file := &bytes.Buffer{}
			g.genHeader(file, mod.dir(), imports, true)
			file.Write(buffer.Bytes())
			setFile(relPath, file.String())
		}

		// Functions
		for _, f := range mod.functions {
			relPath := mod.functionFileName(f)

			imports := newFileImports()
			buffer := &bytes.Buffer{}
			fi, err := mod.genFunction(buffer, f, imports)
			if err != nil {
				return nil, err
			}
			exports = append(exports, fileInfo{
				fileType:         functionFileType,
				pathToNodeModule: relPath,
				functionFileInfo: fi,
			})

			if f.IsOverlay {
				result.Overlays = append(result.Overlays, relPath)
				continue
			}

			file := &bytes.Buffer{}
			g.genHeader(file, mod.dir(), imports, true)
			file.Write(buffer.Bytes())
			setFile(relPath, file.String())
		}

		// Index
		index := &bytes.Buffer{}
		mod.genIndex(index, exports, result)
		setFile(path.Join(mod.dir(), "index.ts"), index.String())
	}

	// Types
	for _, input := range []bool{true, false} {
		imports := newFileImports()
		body, err := g.genTypes(input, imports)
		if err != nil {
			return nil, err
		}
		// The generated namespaces refer to their own kind through the module import.
		if input {
			imports.inputs = true
		} else {
			imports.outputs = true
		}
		file := &bytes.Buffer{}
		g.genHeader(file, "types", imports, true)
		file.WriteString(body)

		name := "output.ts"
		if input {
			name = "input.ts"
		}
		setFile(path.Join("types", name), file.String())
	}

	enums, err := g.genEnums()
	if err != nil {
		return nil, err
	}
	enumsFile := &bytes.Buffer{}
	g.genHeader(enumsFile, "types/enums", newFileImports(), false)
	enumsFile.WriteString(enums)
	setFile("types/enums/index.ts", enumsFile.String())

	typesIndex := &bytes.Buffer{}
	g.genHeader(typesIndex, "types", newFileImports(), false)
	fmt.Fprintf(typesIndex, "// Export sub-modules:\n")
	fmt.Fprintf(typesIndex, "import * as enums from \"./enums\";\n")
	fmt.Fprintf(typesIndex, "import * as input from \"./input\";\n")
	fmt.Fprintf(typesIndex, "import * as output from \"./output\";\n")
	fmt.Fprintf(typesIndex, "\n")
	fmt.Fprintf(typesIndex, "export {\n")
	fmt.Fprintf(typesIndex, "    enums,\n")
	fmt.Fprintf(typesIndex, "    input,\n")
	fmt.Fprintf(typesIndex, "    output,\n")
	fmt.Fprintf(typesIndex, "};\n")
	fmt.Fprintf(typesIndex, "\n")
	fmt.Fprint(typesIndex, codegen.PreserveRegion("//", codegen.ExtensionsRegion))
	setFile("types/index.ts", typesIndex.String())

	// Utilities
	utilities := &bytes.Buffer{}
	g.genHeader(utilities, "", newFileImports(), false)
	fmt.Fprint(utilities, strings.TrimPrefix(utilitiesFile, "\n"))
	setFile("utilities.ts", utilities.String())

	// Package metadata
	setFile("package.json", genNPMPackageMetadata(pkg, info))

	tsFiles := codegen.NewStringSet(info.ExtraTypeScriptFiles...)
	for p := range result.Files {
		if path.Ext(p) == ".ts" {
			tsFiles.Add(p)
		}
	}
	for _, p := range result.Overlays {
		tsFiles.Add(p)
	}
	for p := range ectx.Overlays {
		if path.Ext(p) == ".ts" {
			tsFiles.Add(p)
		}
	}
	setFile("tsconfig.json", genTypeScriptProjectFile(tsFiles.SortedValues()))

	return result.Finish(), nil
}
