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
//nolint:lll, goconst
package dotnet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/golang/glog"
	"github.com/mitchellh/mapstructure"
	"github.com/segmentio/encoding/json"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/cgstrings"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
	"github.com/pulumi/pulumi-sdkgen/pkg/util/contract"
)

// The schema language block for .NET is keyed by the language's name rather than the runtime's.
const languageKey = "csharp"

// CSharpPackageInfo holds the settings of a package's "csharp" language block.
type CSharpPackageInfo struct {
	// RootNamespace prefixes every generated namespace. The default is "Pulumi".
	RootNamespace string `json:"rootNamespace,omitempty"`
	// Namespaces maps schema modules to namespace segments.
	Namespaces map[string]string `json:"namespaces,omitempty"`
	// PackageReferences adds or pins NuGet references of the generated project.
	PackageReferences map[string]string `json:"packageReferences,omitempty"`
	// TargetFramework is the framework of the generated project. The default is net6.0.
	TargetFramework string `json:"targetFramework,omitempty"`
	// RespectSchemaVersion writes the schema version into the project instead of leaving it to the build.
	RespectSchemaVersion bool `json:"respectSchemaVersion,omitempty"`
}

func lookupPackageInfo(pkg *schema.Package) (CSharpPackageInfo, error) {
	var info CSharpPackageInfo
	if raw, ok := pkg.Language[languageKey]; ok {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           &info,
		})
		if err != nil {
			return info, err
		}
		if err := dec.Decode(raw); err != nil {
			return info, fmt.Errorf("decoding csharp language settings: %w", err)
		}
	}
	if info.RootNamespace == "" {
		info.RootNamespace = "Pulumi"
	}
	if info.TargetFramework == "" {
		info.TargetFramework = "net6.0"
	}
	return info, nil
}

type generator struct {
	pkg       *schema.Package
	info      CSharpPackageInfo
	ectx      *codegen.EmitterContext
	namespace string
	unions    *codegen.UnionTable
	usage     map[*schema.ObjectType]codegen.Usage
	modules   map[string]*modContext
	enumNames map[*schema.EnumType]string
}

// packageNamespace is the namespace of the package's root module, e.g. Pulumi.Awsx.
func packageNamespace(rootNamespace, pkgName string) string {
	return rootNamespace + "." + namespaceName(pkgName)
}

// moduleSegment is the namespace segment of a module relative to the package namespace.
func moduleSegment(info CSharpPackageInfo, mod string) string {
	if seg, ok := info.Namespaces[mod]; ok {
		return seg
	}
	return namespaceName(mod)
}

func (g *generator) moduleNamespace(mod string) string {
	if seg := moduleSegment(g.info, mod); seg != "" {
		return g.namespace + "." + seg
	}
	return g.namespace
}

type modContext struct {
	gen       *generator
	mod       string
	namespace string
	dir       string
	types     []*schema.ObjectType
	enums     []*schema.EnumType
	resources []*schema.Resource
	functions []*schema.Function
}

// typeName is the class name of the member with the given token.
func typeName(tok string) string {
	return validIdentifier(cgstrings.Pascal(schema.TokenName(tok)))
}

func objectName(t *schema.ObjectType, input bool) string {
	if input {
		return typeName(t.Token) + "Args"
	}
	return typeName(t.Token)
}

func (mod *modContext) objectRef(t *schema.ObjectType, input bool) string {
	sub := "Outputs"
	if input {
		sub = "Inputs"
	}
	target := mod.gen.pkg.TokenToModule(t.Token)
	if target == mod.mod {
		return sub + "." + objectName(t, input)
	}
	return "global::" + mod.gen.moduleNamespace(target) + "." + sub + "." + objectName(t, input)
}

func (mod *modContext) enumRef(t *schema.EnumType) string {
	name, ok := mod.gen.enumNames[t]
	contract.Assertf(ok, "enum %s was not declared", t.Token)
	return "global::" + mod.gen.moduleNamespace(mod.gen.pkg.TokenToModule(t.Token)) + "." + name
}

func (mod *modContext) resourceRef(t *schema.ResourceType) string {
	return "global::" + mod.gen.moduleNamespace(mod.gen.pkg.TokenToModule(t.Token)) + "." + typeName(t.Token)
}

func (mod *modContext) externalRef(t *schema.ExternalType, input bool) string {
	ns, ok := mod.gen.ectx.Imports[t.Package]
	contract.Assertf(ok, "no import for dependency %s", t.Package)
	if t.Module != "" {
		ns += "." + namespaceName(t.Module)
	}
	name := typeName(t.Token)
	switch {
	case t.Kind == schema.ExternalResource, t.IsEnum:
		return "global::" + ns + "." + name
	case input:
		return "global::" + ns + ".Inputs." + name + "Args"
	default:
		return "global::" + ns + ".Outputs." + name
	}
}

// plainType is the C# type of a value nested inside a collection or union, or of a plain invoke argument. Input
// shapes are used when input is set.
func (mod *modContext) plainType(t schema.Type, input bool) string {
	switch t := t.(type) {
	case *schema.OptionalType:
		return mod.plainType(t.ElementType, input)
	case *schema.ArrayType:
		return fmt.Sprintf("ImmutableArray<%s>", mod.plainType(t.ElementType, input))
	case *schema.MapType:
		return fmt.Sprintf("ImmutableDictionary<string, %s>", mod.plainType(t.ElementType, input))
	case *schema.UnionType:
		if len(t.ElementTypes) == 2 {
			return fmt.Sprintf("Union<%s, %s>",
				mod.plainType(t.ElementTypes[0], input), mod.plainType(t.ElementTypes[1], input))
		}
		// Only unions of objects get here. There is no closed union type of that arity.
		return "object"
	case *schema.ObjectType:
		return mod.objectRef(t, input)
	case *schema.EnumType:
		return mod.enumRef(t)
	case *schema.ResourceType:
		return mod.resourceRef(t)
	case *schema.ExternalType:
		return mod.externalRef(t, input)
	}

	switch t {
	case schema.BoolType:
		return "bool"
	case schema.IntType:
		return "int"
	case schema.NumberType:
		return "double"
	case schema.StringType:
		return "string"
	case schema.JSONType:
		return "System.Text.Json.JsonElement"
	case schema.AnyType:
		return "object"
	}
	contract.Failf("unexpected type %v", t)
	return ""
}

// isCollection reports whether values of t are lists or dictionaries. Those are never null.
func isCollection(t schema.Type) bool {
	switch schema.UnwrapOptional(t).(type) {
	case *schema.ArrayType, *schema.MapType:
		return true
	}
	return false
}

// isValueType reports whether the plain C# type of t is a struct.
func isValueType(t schema.Type) bool {
	switch t := schema.UnwrapOptional(t).(type) {
	case *schema.ArrayType, *schema.MapType, *schema.EnumType:
		return true
	case *schema.UnionType:
		return len(t.ElementTypes) == 2
	}
	switch schema.UnwrapOptional(t) {
	case schema.BoolType, schema.IntType, schema.NumberType, schema.JSONType:
		return true
	}
	return false
}

// outputType is the type of an output field or result value.
func (mod *modContext) outputType(p *schema.Property) string {
	typ := mod.plainType(p.Type, false)
	if !p.IsRequired() && !isCollection(p.Type) {
		typ += "?"
	}
	return typ
}

// argsType is the wrapped type of an input property of an args class, and whether it is a collection.
func (mod *modContext) argsType(p *schema.Property) (string, bool) {
	switch t := schema.UnwrapOptional(p.Type).(type) {
	case *schema.ArrayType:
		return fmt.Sprintf("InputList<%s>", mod.plainType(t.ElementType, true)), true
	case *schema.MapType:
		return fmt.Sprintf("InputMap<%s>", mod.plainType(t.ElementType, true)), true
	case *schema.UnionType:
		if len(t.ElementTypes) == 2 {
			return fmt.Sprintf("InputUnion<%s, %s>",
				mod.plainType(t.ElementTypes[0], true), mod.plainType(t.ElementTypes[1], true)), false
		}
	}
	if schema.UnwrapOptional(p.Type) == schema.JSONType {
		return "InputJson", false
	}
	return fmt.Sprintf("Input<%s>", mod.plainType(p.Type, true)), false
}

// invokeArgType is the plain type of an invoke argument, and whether it is a collection.
func (mod *modContext) invokeArgType(p *schema.Property) (string, bool) {
	switch t := schema.UnwrapOptional(p.Type).(type) {
	case *schema.ArrayType:
		return fmt.Sprintf("List<%s>", mod.plainType(t.ElementType, true)), true
	case *schema.MapType:
		return fmt.Sprintf("Dictionary<string, %s>", mod.plainType(t.ElementType, true)), true
	}
	typ := mod.plainType(p.Type, true)
	if !p.IsRequired() {
		typ += "?"
	}
	return typ, false
}

func sortedProperties(props []*schema.Property) []*schema.Property {
	sorted := make([]*schema.Property, len(props))
	copy(sorted, props)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// optionalProperties returns copies of the properties with every type made optional and defaults dropped.
func optionalProperties(properties []*schema.Property) []*schema.Property {
	result := make([]*schema.Property, len(properties))
	for i, p := range properties {
		cp := *p
		cp.DefaultValue = nil
		if p.IsRequired() {
			cp.Type = &schema.OptionalType{ElementType: p.Type}
		}
		result[i] = &cp
	}
	return result
}

func obsoleteAttribute(message string) string {
	return fmt.Sprintf("[Obsolete(@\"%s\")]", strings.ReplaceAll(message, `"`, `""`))
}

func primitiveValue(v interface{}) (string, error) {
	switch v := v.(type) {
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return csharpStringLiteral(v), nil
	default:
		return "", fmt.Errorf("unsupported default value of type %T", v)
	}
}

func (mod *modContext) enumMemberRef(t *schema.EnumType, value interface{}) (string, error) {
	for _, e := range t.Elements {
		if fmt.Sprint(e.Value) != fmt.Sprint(value) {
			continue
		}
		name := e.Name
		if name == "" {
			name = fmt.Sprint(e.Value)
		}
		member, err := makeSafeEnumName(name, mod.gen.enumNames[t])
		if err != nil {
			return "", err
		}
		return mod.enumRef(t) + "." + member, nil
	}
	return "", fmt.Errorf("default value %v is not a member of %s", value, t.Token)
}

var envGetters = map[schema.Type]string{
	schema.StringType: "Utilities.GetEnv",
	schema.BoolType:   "Utilities.GetEnvBoolean",
	schema.IntType:    "Utilities.GetEnvInt32",
	schema.NumberType: "Utilities.GetEnvDouble",
}

// genDefault writes the constructor statements that apply a property's default value.
func (mod *modContext) genDefault(w io.Writer, member string, p *schema.Property) error {
	dv := p.DefaultValue
	t := schema.UnwrapOptional(p.Type)

	var literal string
	if dv.Value != nil {
		var err error
		if enum, ok := t.(*schema.EnumType); ok {
			literal, err = mod.enumMemberRef(enum, dv.Value)
		} else {
			literal, err = primitiveValue(dv.Value)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
	}

	getter, hasGetter := envGetters[t]
	if len(dv.Environment) == 0 || !hasGetter {
		if literal != "" {
			fmt.Fprintf(w, "            %s = %s;\n", member, literal)
		}
		return nil
	}

	names := make([]string, len(dv.Environment))
	for i, n := range dv.Environment {
		names[i] = csharpStringLiteral(n)
	}
	env := fmt.Sprintf("%s(%s)", getter, strings.Join(names, ", "))
	switch {
	case literal != "":
		fmt.Fprintf(w, "            %s = %s ?? %s;\n", member, env, literal)
	case t == schema.StringType:
		fmt.Fprintf(w, "            %s = %s;\n", member, env)
	default:
		// Only apply environment values that are set.
		local := "default" + member
		fmt.Fprintf(w, "            var %s = %s;\n", local, env)
		fmt.Fprintf(w, "            if (%s.HasValue)\n", local)
		fmt.Fprintf(w, "            {\n")
		fmt.Fprintf(w, "                %s = %s.Value;\n", member, local)
		fmt.Fprintf(w, "            }\n")
	}
	return nil
}

// genArgsClass writes an input shape. Invoke arguments are plain values; every other shape wraps its properties
// in Input types.
func (mod *modContext) genArgsClass(w io.Writer, name, baseClass, comment string, properties []*schema.Property, plain bool) error {
	props := sortedProperties(properties)

	fmt.Fprintf(w, "\n")
	printComment(w, comment, "    ")
	fmt.Fprintf(w, "    public sealed class %s : %s\n", name, baseClass)
	fmt.Fprintf(w, "    {\n")

	for _, p := range props {
		member := memberName(p.Name, name)
		typ, collection := mod.argsType(p)
		if plain {
			typ, collection = mod.invokeArgType(p)
		}

		attr := fmt.Sprintf("[Input(%q)]", p.Name)
		if p.IsRequired() {
			attr = fmt.Sprintf("[Input(%q, required: true)]", p.Name)
		}

		if collection {
			field := "_" + strings.TrimPrefix(parameterName(p.Name), "@")
			fmt.Fprintf(w, "        %s\n", attr)
			fmt.Fprintf(w, "        private %s? %s;\n\n", typ, field)
			printComment(w, p.Description, "        ")
			if p.DeprecationMessage != "" {
				fmt.Fprintf(w, "        %s\n", obsoleteAttribute(p.DeprecationMessage))
			}
			fmt.Fprintf(w, "        public %s %s\n", typ, member)
			fmt.Fprintf(w, "        {\n")
			fmt.Fprintf(w, "            get => %[1]s ?? (%[1]s = new %[2]s());\n", field, typ)
			fmt.Fprintf(w, "            set => %s = value;\n", field)
			fmt.Fprintf(w, "        }\n\n")
			continue
		}

		printComment(w, p.Description, "        ")
		if p.DeprecationMessage != "" {
			fmt.Fprintf(w, "        %s\n", obsoleteAttribute(p.DeprecationMessage))
		}
		fmt.Fprintf(w, "        %s\n", attr)
		switch {
		case !p.IsRequired() && !plain:
			fmt.Fprintf(w, "        public %s? %s { get; set; }\n\n", typ, member)
		case p.IsRequired() && plain && isValueType(p.Type):
			fmt.Fprintf(w, "        public %s %s { get; set; }\n\n", typ, member)
		case p.IsRequired():
			fmt.Fprintf(w, "        public %s %s { get; set; } = null!;\n\n", typ, member)
		default:
			fmt.Fprintf(w, "        public %s %s { get; set; }\n\n", typ, member)
		}
	}

	fmt.Fprintf(w, "        public %s()\n", name)
	fmt.Fprintf(w, "        {\n")
	for _, p := range props {
		member := memberName(p.Name, name)
		if p.DefaultValue != nil {
			if err := mod.genDefault(w, member, p); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		if p.ConstValue != nil {
			cv, err := primitiveValue(p.ConstValue)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", name, p.Name, err)
			}
			fmt.Fprintf(w, "            %s = %s;\n", member, cv)
		}
	}
	fmt.Fprintf(w, "        }\n")
	fmt.Fprintf(w, "        public static new %[1]s Empty => new %[1]s();\n", name)
	fmt.Fprintf(w, "    }\n")
	return nil
}

// genOutputClass writes an output shape: readonly fields filled by the deserializer through the output constructor.
func (mod *modContext) genOutputClass(w io.Writer, name, comment string, properties []*schema.Property) {
	props := sortedProperties(properties)

	fmt.Fprintf(w, "\n")
	printComment(w, comment, "    ")
	fmt.Fprintf(w, "    [OutputType]\n")
	fmt.Fprintf(w, "    public sealed class %s\n", name)
	fmt.Fprintf(w, "    {\n")
	for _, p := range props {
		printComment(w, p.Description, "        ")
		if p.DeprecationMessage != "" {
			fmt.Fprintf(w, "        %s\n", obsoleteAttribute(p.DeprecationMessage))
		}
		fmt.Fprintf(w, "        public readonly %s %s;\n", mod.outputType(p), memberName(p.Name, name))
	}

	if len(props) > 0 {
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "        [OutputConstructor]\n")
	fmt.Fprintf(w, "        private %s(", name)
	for i, p := range props {
		if i > 0 {
			fmt.Fprintf(w, ",\n")
		}
		fmt.Fprintf(w, "\n            %s %s", mod.outputType(p), parameterName(p.Name))
	}
	fmt.Fprintf(w, ")\n")
	fmt.Fprintf(w, "        {\n")
	for _, p := range props {
		fmt.Fprintf(w, "            %s = %s;\n", memberName(p.Name, name), parameterName(p.Name))
	}
	fmt.Fprintf(w, "        }\n")
	fmt.Fprintf(w, "    }\n")
}

var standardUsings = []string{
	"System",
	"System.Collections.Generic",
	"System.Collections.Immutable",
	"System.Threading.Tasks",
	"Pulumi.Serialization",
}

func (g *generator) genHeader(w io.Writer, usings []string, namespace string) {
	fmt.Fprintf(w, "// *** WARNING: this file was generated by %v. ***\n", g.ectx.Tool)
	fmt.Fprintf(w, "// *** Do not edit by hand unless you're certain you know what you are doing! ***\n\n")
	for _, u := range usings {
		fmt.Fprintf(w, "using %s;\n", u)
	}
	if len(usings) > 0 {
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "namespace %s\n", namespace)
	fmt.Fprintf(w, "{\n")
}

func (mod *modContext) resourceArgsName(r *schema.Resource) string {
	return typeName(r.Token) + "Args"
}

func (mod *modContext) genResource(w io.Writer, r *schema.Resource) error {
	name := typeName(r.Token)
	argsName := mod.resourceArgsName(r)

	baseType, optionsType := "global::Pulumi.CustomResource", "CustomResourceOptions"
	if r.IsComponent {
		baseType, optionsType = "global::Pulumi.ComponentResource", "ComponentResourceOptions"
	}

	if r.Description != "" {
		printComment(w, codegen.FilterExamples(r.Description, "dotnet"), "    ")
	}
	if r.DeprecationMessage != "" {
		fmt.Fprintf(w, "    %s\n", obsoleteAttribute(r.DeprecationMessage))
	}
	fmt.Fprintf(w, "    [%sResourceType(%q)]\n", mod.gen.attributePrefix(), r.Token)
	fmt.Fprintf(w, "    public partial class %s : %s\n", name, baseType)
	fmt.Fprintf(w, "    {\n")

	// Outputs
	for _, p := range sortedProperties(r.Properties) {
		printComment(w, p.Description, "        ")
		if p.DeprecationMessage != "" {
			fmt.Fprintf(w, "        %s\n", obsoleteAttribute(p.DeprecationMessage))
		}
		fmt.Fprintf(w, "        [Output(%q)]\n", p.Name)
		fmt.Fprintf(w, "        public Output<%s> %s { get; private set; } = null!;\n\n", mod.outputType(p), memberName(p.Name, name))
	}

	// Constructor
	argsParam := fmt.Sprintf("%s? args = null", argsName)
	for _, p := range r.InputProperties {
		if p.IsRequired() {
			argsParam = fmt.Sprintf("%s args", argsName)
			break
		}
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "        /// <summary>\n")
	fmt.Fprintf(w, "        /// Create a %s resource with the given unique name, arguments, and options.\n", name)
	fmt.Fprintf(w, "        /// </summary>\n")
	fmt.Fprintf(w, "        ///\n")
	fmt.Fprintf(w, "        /// <param name=\"name\">The unique name of the resource</param>\n")
	fmt.Fprintf(w, "        /// <param name=\"args\">The arguments used to populate this resource's properties</param>\n")
	fmt.Fprintf(w, "        /// <param name=\"options\">A bag of options that control this resource's behavior</param>\n")
	fmt.Fprintf(w, "        public %s(string name, %s, %s? options = null)\n", name, argsParam, optionsType)
	remote := ""
	if r.IsComponent {
		remote = ", remote: true"
	}
	fmt.Fprintf(w, "            : base(%q, name, args ?? new %s(), MakeResourceOptions(options, \"\")%s)\n", r.Token, argsName, remote)
	fmt.Fprintf(w, "        {\n")
	fmt.Fprintf(w, "        }\n")

	if !r.IsComponent {
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "        private %[1]s(string name, Input<string> id, %[1]sState? state = null, %[2]s? options = null)\n", name, optionsType)
		fmt.Fprintf(w, "            : base(%q, name, state, MakeResourceOptions(options, id))\n", r.Token)
		fmt.Fprintf(w, "        {\n")
		fmt.Fprintf(w, "        }\n")
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "        private static %[1]s MakeResourceOptions(%[1]s? options, Input<string>? id)\n", optionsType)
	fmt.Fprintf(w, "        {\n")
	fmt.Fprintf(w, "            var defaultOptions = new %s\n", optionsType)
	fmt.Fprintf(w, "            {\n")
	fmt.Fprintf(w, "                Version = Utilities.Version,\n")
	fmt.Fprintf(w, "            };\n")
	fmt.Fprintf(w, "            var merged = %s.Merge(defaultOptions, options);\n", optionsType)
	fmt.Fprintf(w, "            // Override the ID if one was specified for consistency with other language SDKs.\n")
	fmt.Fprintf(w, "            merged.Id = id ?? merged.Id;\n")
	fmt.Fprintf(w, "            return merged;\n")
	fmt.Fprintf(w, "        }\n")

	// Read path
	if !r.IsComponent {
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "        /// <summary>\n")
		fmt.Fprintf(w, "        /// Get an existing %s resource's state with the given name, ID, and optional extra\n", name)
		fmt.Fprintf(w, "        /// properties used to qualify the lookup.\n")
		fmt.Fprintf(w, "        /// </summary>\n")
		fmt.Fprintf(w, "        ///\n")
		fmt.Fprintf(w, "        /// <param name=\"name\">The unique name of the resulting resource.</param>\n")
		fmt.Fprintf(w, "        /// <param name=\"id\">The unique provider ID of the resource to lookup.</param>\n")
		fmt.Fprintf(w, "        /// <param name=\"state\">Any extra arguments used during the lookup.</param>\n")
		fmt.Fprintf(w, "        /// <param name=\"options\">A bag of options that control this resource's behavior</param>\n")
		fmt.Fprintf(w, "        public static %[1]s Get(string name, Input<string> id, %[1]sState? state = null, %[2]s? options = null)\n", name, optionsType)
		fmt.Fprintf(w, "        {\n")
		fmt.Fprintf(w, "            return new %s(name, id, state, options);\n", name)
		fmt.Fprintf(w, "        }\n")
	}
	fmt.Fprintf(w, "    }\n")

	if err := mod.genArgsClass(w, argsName, "global::Pulumi.ResourceArgs", "", r.InputProperties, false); err != nil {
		return err
	}
	if !r.IsComponent {
		if err := mod.genArgsClass(w, name+"State", "global::Pulumi.ResourceArgs", "", optionalProperties(r.Properties), false); err != nil {
			return err
		}
	}
	return nil
}

func (mod *modContext) genFunction(w io.Writer, f *schema.Function) error {
	className := typeName(f.Token)
	argsName, resultName := className+"Args", className+"Result"

	var args []*schema.Property
	if f.Inputs != nil {
		args = f.Inputs.Properties
	}
	argsRequired := false
	for _, a := range args {
		if a.IsRequired() {
			argsRequired = true
		}
	}

	if f.DeprecationMessage != "" {
		fmt.Fprintf(w, "    %s\n", obsoleteAttribute(f.DeprecationMessage))
	}
	fmt.Fprintf(w, "    public static class %s\n", className)
	fmt.Fprintf(w, "    {\n")
	if f.Description != "" {
		printComment(w, codegen.FilterExamples(f.Description, "dotnet"), "        ")
	}

	returnType, typeParam := "Task", ""
	if f.Outputs != nil {
		returnType, typeParam = fmt.Sprintf("Task<%s>", resultName), fmt.Sprintf("<%s>", resultName)
	}

	var params, argsExpr string
	switch {
	case len(args) == 0:
		params, argsExpr = "InvokeOptions? options = null", "InvokeArgs.Empty"
	case argsRequired:
		params, argsExpr = fmt.Sprintf("%s args, InvokeOptions? options = null", argsName), fmt.Sprintf("args ?? new %s()", argsName)
	default:
		params, argsExpr = fmt.Sprintf("%s? args = null, InvokeOptions? options = null", argsName), fmt.Sprintf("args ?? new %s()", argsName)
	}
	fmt.Fprintf(w, "        public static %s InvokeAsync(%s)\n", returnType, params)
	fmt.Fprintf(w, "            => global::Pulumi.Deployment.Instance.InvokeAsync%s(%q, %s, options.WithDefaults());\n", typeParam, f.Token, argsExpr)
	fmt.Fprintf(w, "    }\n")

	if len(args) > 0 {
		if err := mod.genArgsClass(w, argsName, "global::Pulumi.InvokeArgs", "", args, true); err != nil {
			return err
		}
	}
	if f.Outputs != nil {
		mod.genOutputClass(w, resultName, "", f.Outputs.Properties)
	}
	return nil
}

func (mod *modContext) genEnums(w io.Writer) error {
	for i, e := range mod.enums {
		if i > 0 {
			fmt.Fprintf(w, "\n")
		}
		if err := mod.genEnum(w, e); err != nil {
			return err
		}
	}
	return nil
}

func (mod *modContext) genEnum(w io.Writer, enum *schema.EnumType) error {
	name := mod.gen.enumNames[enum]

	members := make([]string, len(enum.Elements))
	seen := mapset.NewThreadUnsafeSet[string]()
	for i, e := range enum.Elements {
		elementName := e.Name
		if elementName == "" {
			elementName = fmt.Sprint(e.Value)
		}
		member, err := makeSafeEnumName(elementName, name)
		if err != nil {
			return fmt.Errorf("%s: %w", enum.Token, err)
		}
		if !seen.Add(member) {
			return fmt.Errorf("%s: enum members %q collide", enum.Token, member)
		}
		members[i] = member
	}

	printComment(w, enum.Description, "    ")

	// Integer enums are native C# enums. String and number enums are structs with a closed set of values.
	if enum.ElementType == schema.IntType {
		fmt.Fprintf(w, "    [EnumType]\n")
		fmt.Fprintf(w, "    public enum %s\n", name)
		fmt.Fprintf(w, "    {\n")
		for i, e := range enum.Elements {
			printComment(w, e.Description, "        ")
			if e.DeprecationMessage != "" {
				fmt.Fprintf(w, "        %s\n", obsoleteAttribute(e.DeprecationMessage))
			}
			fmt.Fprintf(w, "        %s = %v,\n", members[i], e.Value)
		}
		fmt.Fprintf(w, "    }\n")
		return nil
	}

	var underlying string
	switch enum.ElementType {
	case schema.StringType:
		underlying = "string"
	case schema.NumberType:
		underlying = "double"
	default:
		return fmt.Errorf("%s: enums of type %s are not supported", enum.Token, enum.ElementType)
	}

	fmt.Fprintf(w, "    [EnumType]\n")
	fmt.Fprintf(w, "    public readonly struct %[1]s : IEquatable<%[1]s>\n", name)
	fmt.Fprintf(w, "    {\n")
	fmt.Fprintf(w, "        private readonly %s _value;\n\n", underlying)
	fmt.Fprintf(w, "        private %s(%s value)\n", name, underlying)
	fmt.Fprintf(w, "        {\n")
	if underlying == "string" {
		fmt.Fprintf(w, "            _value = value ?? throw new ArgumentNullException(nameof(value));\n")
	} else {
		fmt.Fprintf(w, "            _value = value;\n")
	}
	fmt.Fprintf(w, "        }\n\n")

	for i, e := range enum.Elements {
		printComment(w, e.Description, "        ")
		if e.DeprecationMessage != "" {
			fmt.Fprintf(w, "        %s\n", obsoleteAttribute(e.DeprecationMessage))
		}
		value, err := primitiveValue(e.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", enum.Token, err)
		}
		fmt.Fprintf(w, "        public static %[1]s %[2]s { get; } = new %[1]s(%[3]s);\n", name, members[i], value)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "        public static bool operator ==(%[1]s left, %[1]s right) => left.Equals(right);\n", name)
	fmt.Fprintf(w, "        public static bool operator !=(%[1]s left, %[1]s right) => !left.Equals(right);\n\n", name)
	fmt.Fprintf(w, "        public static explicit operator %s(%s value) => value._value;\n\n", underlying, name)
	fmt.Fprintf(w, "        [EditorBrowsable(EditorBrowsableState.Never)]\n")
	fmt.Fprintf(w, "        public override bool Equals(object? obj) => obj is %s other && Equals(other);\n", name)
	if underlying == "string" {
		fmt.Fprintf(w, "        public bool Equals(%s other) => string.Equals(_value, other._value, StringComparison.Ordinal);\n\n", name)
		fmt.Fprintf(w, "        [EditorBrowsable(EditorBrowsableState.Never)]\n")
		fmt.Fprintf(w, "        public override int GetHashCode() => _value?.GetHashCode() ?? 0;\n\n")
		fmt.Fprintf(w, "        public override string ToString() => _value;\n")
	} else {
		fmt.Fprintf(w, "        public bool Equals(%s other) => _value == other._value;\n\n", name)
		fmt.Fprintf(w, "        [EditorBrowsable(EditorBrowsableState.Never)]\n")
		fmt.Fprintf(w, "        public override int GetHashCode() => _value.GetHashCode();\n\n")
		fmt.Fprintf(w, "        public override string ToString() => _value.ToString();\n")
	}
	fmt.Fprintf(w, "    }\n")
	return nil
}

func (mod *modContext) genTypeFile(t *schema.ObjectType, input bool) (string, error) {
	ns := mod.namespace + ".Outputs"
	if input {
		ns = mod.namespace + ".Inputs"
	}
	props := append(mod.gen.unions.SynthesizedDiscriminants(t), t.Properties...)

	w := &bytes.Buffer{}
	mod.gen.genHeader(w, standardUsings, ns)
	if input {
		if err := mod.genArgsClass(w, objectName(t, true), "global::Pulumi.ResourceArgs", t.Description, props, false); err != nil {
			return "", err
		}
	} else {
		mod.genOutputClass(w, objectName(t, false), t.Description, props)
	}
	fmt.Fprintf(w, "}\n")
	return w.String(), nil
}

func (mod *modContext) generate(result *codegen.EmitResult, setFile func(relPath, contents string)) error {
	for _, r := range mod.resources {
		p := path.Join(mod.dir, typeName(r.Token)+".cs")
		if r.IsOverlay {
			result.Overlays = append(result.Overlays, p)
			continue
		}
		w := &bytes.Buffer{}
		mod.gen.genHeader(w, standardUsings, mod.namespace)
		if err := mod.genResource(w, r); err != nil {
			return err
		}
		fmt.Fprintf(w, "}\n")
		setFile(p, w.String())
	}

	for _, f := range mod.functions {
		p := path.Join(mod.dir, typeName(f.Token)+".cs")
		if f.IsOverlay {
			result.Overlays = append(result.Overlays, p)
			continue
		}
		w := &bytes.Buffer{}
		mod.gen.genHeader(w, standardUsings, mod.namespace)
		if err := mod.genFunction(w, f); err != nil {
			return err
		}
		fmt.Fprintf(w, "}\n")
		setFile(p, w.String())
	}

	for _, t := range mod.types {
		usage := mod.gen.usage[t]
		if usage.Input {
			file, err := mod.genTypeFile(t, true)
			if err != nil {
				return err
			}
			setFile(path.Join(mod.dir, "Inputs", objectName(t, true)+".cs"), file)
		}
		if usage.Output {
			file, err := mod.genTypeFile(t, false)
			if err != nil {
				return err
			}
			setFile(path.Join(mod.dir, "Outputs", objectName(t, false)+".cs"), file)
		}
	}

	if len(mod.enums) > 0 {
		w := &bytes.Buffer{}
		mod.gen.genHeader(w, []string{"System", "System.ComponentModel", "Pulumi"}, mod.namespace)
		if err := mod.genEnums(w); err != nil {
			return err
		}
		fmt.Fprintf(w, "}\n")
		setFile(path.Join(mod.dir, "Enums.cs"), w.String())
	}
	return nil
}

// attributePrefix names the package's resource type attribute, e.g. AwsxResourceType.
func (g *generator) attributePrefix() string {
	return namespaceName(g.pkg.Name)
}

// buildModules groups the members of the package by module and names its enums. An enum whose name is taken by a
// resource or function class of its module gets an "Enum" suffix.
func (g *generator) buildModules() {
	getMod := func(mod string) *modContext {
		m, ok := g.modules[mod]
		if !ok {
			m = &modContext{
				gen:       g,
				mod:       mod,
				namespace: g.moduleNamespace(mod),
				dir:       strings.ReplaceAll(moduleSegment(g.info, mod), ".", "/"),
			}
			g.modules[mod] = m
		}
		return m
	}
	getMod("")

	for _, r := range g.pkg.Resources {
		m := getMod(g.pkg.TokenToModule(r.Token))
		m.resources = append(m.resources, r)
	}
	for _, f := range g.pkg.Functions {
		m := getMod(g.pkg.TokenToModule(f.Token))
		m.functions = append(m.functions, f)
	}
	for _, t := range g.pkg.Types {
		m := getMod(g.pkg.TokenToModule(schema.TypeToken(t)))
		switch t := t.(type) {
		case *schema.ObjectType:
			m.types = append(m.types, t)
		case *schema.EnumType:
			m.enums = append(m.enums, t)
		}
	}

	for _, m := range g.modules {
		classes := mapset.NewThreadUnsafeSet[string]()
		for _, r := range m.resources {
			classes.Add(typeName(r.Token))
			classes.Add(m.resourceArgsName(r))
		}
		for _, f := range m.functions {
			classes.Add(typeName(f.Token))
		}
		for _, e := range m.enums {
			name := typeName(e.Token)
			if classes.Contains(name) {
				name += "Enum"
			}
			g.enumNames[e] = name
		}
	}
}

// NewEmitter returns the .NET emitter.
func NewEmitter() codegen.Emitter {
	return emitter{}
}

type emitter struct{}

func (emitter) Language() string {
	return "dotnet"
}

type naming struct {
	info CSharpPackageInfo
}

func (naming) TypeName(token string) string {
	return typeName(token)
}

func (naming) PropertyName(name string) string {
	return propertyName(name)
}

func (n naming) ModulePath(module string) string {
	return strings.ReplaceAll(moduleSegment(n.info, module), ".", "/")
}

func defaultImport(dep schema.Dependency) string {
	return packageNamespace("Pulumi", dep.Name)
}

func (emitter) NewContext(pkg *schema.Package, overlays codegen.StringSet) *codegen.EmitterContext {
	// Malformed settings are reported by Emit. Naming falls back to the defaults.
	info, err := lookupPackageInfo(pkg)
	if err != nil {
		glog.V(3).Infof("dotnet: %v", err)
	}
	return &codegen.EmitterContext{
		Tool:     codegen.Tool,
		Language: "dotnet",
		Naming:   naming{info: info},
		Imports:  codegen.PackageImports(pkg, languageKey, defaultImport),
		Overlays: overlays,
	}
}

func (emitter) Emit(ctx context.Context, pkg *schema.Package, ectx *codegen.EmitterContext) (*codegen.EmitResult, error) {
	return GeneratePackage(ctx, pkg, ectx)
}

// GeneratePackage generates the .NET SDK for pkg.
func GeneratePackage(ctx context.Context, pkg *schema.Package, ectx *codegen.EmitterContext) (*codegen.EmitResult, error) {
	info, err := lookupPackageInfo(pkg)
	if err != nil {
		return nil, err
	}
	if err := checkSupported(pkg); err != nil {
		return nil, err
	}
	unions, err := codegen.CollectObjectUnions(pkg)
	if err != nil {
		return nil, err
	}

	g := &generator{
		pkg:       pkg,
		info:      info,
		ectx:      ectx,
		namespace: packageNamespace(info.RootNamespace, pkg.Name),
		unions:    unions,
		usage:     codegen.ObjectTypeUsage(pkg),
		modules:   map[string]*modContext{},
		enumNames: map[*schema.EnumType]string{},
	}
	g.buildModules()

	result := codegen.NewEmitResult()
	setFile := func(relPath, contents string) {
		if ectx.Overlays.Has(relPath) {
			glog.V(3).Infof("dotnet: %s is supplied by an overlay", relPath)
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
		if err := g.modules[m].generate(result, setFile); err != nil {
			return nil, err
		}
	}

	// Every resource class carries the resource type attribute that binds its token.
	for _, r := range pkg.Resources {
		result.Tokens = append(result.Tokens, r.Token)
	}

	utilities, err := g.genUtilities()
	if err != nil {
		return nil, err
	}
	setFile("Utilities.cs", utilities)

	project, err := g.genProjectFile()
	if err != nil {
		return nil, err
	}
	setFile(g.namespace+".csproj", project)

	plugin, err := g.genPulumiPluginFile()
	if err != nil {
		return nil, err
	}
	setFile("pulumi-plugin.json", plugin)

	if info.RespectSchemaVersion && pkg.Version != nil {
		setFile("version.txt", pkg.Version.String()+"\n")
	}
	if pkg.Description != "" {
		setFile("README.md", strings.TrimRight(pkg.Description, "\n")+"\n")
	}

	return result.Finish(), nil
}

type pulumiPlugin struct {
	Resource bool   `json:"resource"`
	Name     string `json:"name,omitempty"`
	Version  string `json:"version,omitempty"`
}

func (g *generator) genPulumiPluginFile() (string, error) {
	plugin := pulumiPlugin{
		Resource: true,
		Name:     g.pkg.Name,
		Version:  "${PLUGIN_VERSION}",
	}
	if g.info.RespectSchemaVersion && g.pkg.Version != nil {
		plugin.Version = g.pkg.Version.String()
	}
	b, err := json.MarshalIndent(plugin, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
