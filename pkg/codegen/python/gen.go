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
package python

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/blang/semver"
	"github.com/golang/glog"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/cgstrings"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/python/pyproject"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
	"github.com/pulumi/pulumi-sdkgen/pkg/util/contract"
)

// PackageInfo holds the settings of a package's "python" language block.
type PackageInfo struct {
	// PackageName overrides the import name of the generated package. The default is pulumi_<name>.
	PackageName string `json:"packageName,omitempty"`
	// Requires adds or pins entries of the generated dependency list.
	Requires map[string]string `json:"requires,omitempty"`
	// PythonRequires is the supported interpreter range.
	PythonRequires string `json:"pythonRequires,omitempty"`
	// Readme is the contents of the generated README.md.
	Readme string `json:"readme,omitempty"`
	// ModuleNameOverrides maps schema modules to Python module paths.
	ModuleNameOverrides map[string]string `json:"moduleNameOverrides,omitempty"`
	// RespectSchemaVersion writes the schema version into the package metadata instead of a placeholder.
	RespectSchemaVersion bool `json:"respectSchemaVersion,omitempty"`
}

func lookupPackageInfo(pkg *schema.Package) (PackageInfo, error) {
	var info PackageInfo
	raw, ok := pkg.Language["python"]
	if !ok {
		return info, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &info,
	})
	if err != nil {
		return info, err
	}
	if err := dec.Decode(raw); err != nil {
		return info, fmt.Errorf("decoding python language settings: %w", err)
	}
	return info, nil
}

type generator struct {
	pkg       *schema.Package
	info      PackageInfo
	ectx      *codegen.EmitterContext
	pyPkgName string
	unions    *codegen.UnionTable
	usage     map[*schema.ObjectType]codegen.Usage
	modules   map[string]*modContext
}

func (g *generator) tokenToModule(tok string) string {
	mod := g.pkg.TokenToModule(tok)
	if override, ok := g.info.ModuleNameOverrides[mod]; ok {
		return override
	}
	return moduleName(mod)
}

type imports codegen.StringSet

func (imports imports) add(imp string) {
	codegen.StringSet(imports).Add(imp)
}

func (imports imports) strings() []string {
	return codegen.StringSet(imports).SortedValues()
}

type modContext struct {
	gen       *generator
	pkg       *schema.Package
	mod       string
	pyPkgName string
	types     []*schema.ObjectType
	enums     []*schema.EnumType
	resources []*schema.Resource
	functions []*schema.Function
	children  []*modContext
	parent    *modContext
}

func (mod *modContext) isTopLevel() bool {
	return mod.parent == nil
}

func (mod *modContext) walkSelfWithDescendants() []*modContext {
	found := []*modContext{mod}
	for _, child := range mod.children {
		found = append(found, child.walkSelfWithDescendants()...)
	}
	return found
}

func (mod *modContext) addChild(child *modContext) {
	mod.children = append(mod.children, child)
	child.parent = mod
}

func (mod *modContext) dir() string {
	return path.Join(mod.pyPkgName, mod.mod)
}

func (mod *modContext) unqualifiedImportName() string {
	// Nested modules have their own __init__.py, so only the last component names them.
	parts := strings.Split(mod.mod, "/")
	return parts[len(parts)-1]
}

func (mod *modContext) fullyQualifiedImportName() string {
	if mod.parent == nil {
		return mod.pyPkgName
	}
	return fmt.Sprintf("%s.%s", mod.parent.fullyQualifiedImportName(), mod.unqualifiedImportName())
}

func (mod *modContext) hasTypes(input bool) bool {
	for _, t := range mod.types {
		if mod.usedAs(t, input) {
			return true
		}
	}
	return false
}

func (mod *modContext) usedAs(t *schema.ObjectType, input bool) bool {
	u := mod.gen.usage[t]
	return input && u.Input || !input && u.Output
}

func tokenToName(tok string) string {
	return cgstrings.Pascal(schema.TokenName(tok))
}

func resourceName(res *schema.Resource) string {
	return pyClassName(tokenToName(res.Token))
}

// reservedFileNames are the module files the generator writes itself.
var reservedFileNames = codegen.NewStringSet("__init__", "_enums", "_inputs", "_utilities", "outputs")

// memberFileName returns the file, without extension, that holds the resource or function with the given token.
func memberFileName(tok string) string {
	name := PyName(tokenToName(tok))
	if reservedFileNames.Has(name) {
		name += "_"
	}
	return name
}

func unqualifiedObjectTypeName(t *schema.ObjectType, input bool) string {
	name := pyClassName(tokenToName(t.Token))
	if input {
		return name + "Args"
	}
	return name
}

func quote(s string) string {
	return "'" + s + "'"
}

// fileContext renders types into one generated file and records the imports they need.
type fileContext struct {
	mod     *modContext
	name    string
	imports imports
}

func (mod *modContext) newFile(name string) *fileContext {
	return &fileContext{mod: mod, name: name, imports: imports{}}
}

// moduleRef returns the prefix that names members of target from the current file. rootFile is the file that holds
// those members when target is the package root.
func (fc *fileContext) moduleRef(target, rootFile string) string {
	rel := relativeImport(fc.mod.mod)
	if target == "" {
		alias := "_root_" + strings.TrimPrefix(rootFile, "_")
		fc.imports.add(fmt.Sprintf("from %s import %s as %s", rel, rootFile, alias))
		return alias + "."
	}
	parts := strings.Split(target, "/")
	fc.imports.add(fmt.Sprintf("from %s import %s as _%s", rel, parts[0], parts[0]))
	return "_" + strings.Join(parts, ".") + "."
}

func (fc *fileContext) objectType(t *schema.ObjectType, input bool) string {
	target := fc.mod.gen.tokenToModule(t.Token)
	name := unqualifiedObjectTypeName(t, input)
	if input {
		if target == fc.mod.mod {
			if fc.name != "_inputs" {
				fc.imports.add("from ._inputs import *")
			}
			return quote(name)
		}
		return quote(fc.moduleRef(target, "_inputs") + name)
	}

	if target == fc.mod.mod {
		if fc.name == "outputs" {
			return quote(name)
		}
		fc.imports.add("from . import outputs")
		return quote("outputs." + name)
	}
	if target == "" {
		return quote(fc.moduleRef(target, "outputs") + name)
	}
	return quote(fc.moduleRef(target, "") + "outputs." + name)
}

func (fc *fileContext) enumType(t *schema.EnumType) string {
	target := fc.mod.gen.tokenToModule(t.Token)
	name := pyClassName(tokenToName(t.Token))
	if target == fc.mod.mod {
		if fc.name != "_enums" {
			fc.imports.add("from ._enums import *")
		}
		return name
	}
	return quote(fc.moduleRef(target, "_enums") + name)
}

func (fc *fileContext) resourceType(t *schema.ResourceType) string {
	target := fc.mod.gen.tokenToModule(t.Token)
	name := pyClassName(tokenToName(t.Token))
	file := memberFileName(t.Token)
	if target == fc.mod.mod {
		if fc.name != file {
			fc.imports.add(fmt.Sprintf("from .%s import %s", file, name))
		}
		return quote(name)
	}
	return quote(fc.moduleRef(target, file) + name)
}

func (fc *fileContext) externalType(t *schema.ExternalType, input bool) string {
	pkgName := fc.mod.gen.ectx.Imports[t.Package]
	if pkgName == "" {
		pkgName = pyPack(t.Package)
	}
	fc.imports.add("import " + pkgName)

	qualifier := pkgName
	if t.Module != "" {
		qualifier += "." + strings.ReplaceAll(moduleName(t.Module), "/", ".")
	}
	name := pyClassName(tokenToName(t.Token))
	switch {
	case t.Kind == schema.ExternalResource || t.IsEnum:
	case input:
		name += "Args"
	default:
		name = "outputs." + name
	}
	return quote(qualifier + "." + name)
}

func (fc *fileContext) typeString(t schema.Type, input bool) string {
	switch t := t.(type) {
	case *schema.OptionalType:
		return fmt.Sprintf("Optional[%s]", fc.typeString(t.ElementType, input))
	case *schema.ArrayType:
		return fmt.Sprintf("Sequence[%s]", fc.typeString(t.ElementType, input))
	case *schema.MapType:
		return fmt.Sprintf("Mapping[str, %s]", fc.typeString(t.ElementType, input))
	case *schema.EnumType:
		return fc.enumType(t)
	case *schema.ObjectType:
		return fc.objectType(t, input)
	case *schema.ResourceType:
		return fc.resourceType(t)
	case *schema.ExternalType:
		return fc.externalType(t, input)
	case *schema.UnionType:
		elementTypeSet := codegen.NewStringSet()
		elements := make([]string, 0, len(t.ElementTypes))
		for _, e := range t.ElementTypes {
			et := fc.typeString(e, input)
			if !elementTypeSet.Has(et) {
				elementTypeSet.Add(et)
				elements = append(elements, et)
			}
		}
		if len(elements) == 1 {
			return elements[0]
		}
		return fmt.Sprintf("Union[%s]", strings.Join(elements, ", "))
	}

	switch t {
	case schema.BoolType:
		return "bool"
	case schema.IntType:
		return "int"
	case schema.NumberType:
		return "float"
	case schema.StringType:
		return "str"
	case schema.ArchiveType:
		return "pulumi.Archive"
	case schema.AssetType:
		return "Union[pulumi.Asset, pulumi.Archive]"
	case schema.JSONType, schema.AnyType:
		return "Any"
	}
	contract.Failf("unexpected type %T", t)
	return ""
}

// inputType returns the type of an input property: the value or an output of it, nullable when optional.
func (fc *fileContext) inputType(p *schema.Property) string {
	typ := fc.typeString(schema.UnwrapOptional(p.Type), true)
	if typ != "Any" {
		typ = fmt.Sprintf("pulumi.Input[%s]", typ)
	}
	if !p.IsRequired() {
		typ = fmt.Sprintf("Optional[%s]", typ)
	}
	return typ
}

// optionalInputType is the type of a keyword parameter that defaults to None.
func (fc *fileContext) optionalInputType(p *schema.Property) string {
	typ := fc.typeString(schema.UnwrapOptional(p.Type), true)
	if typ != "Any" {
		typ = fmt.Sprintf("pulumi.Input[%s]", typ)
	}
	return fmt.Sprintf("Optional[%s]", typ)
}

// pyType returns the runtime type that isinstance checks a value against, or "" when there is no useful check.
func pyType(t schema.Type) string {
	switch t := t.(type) {
	case *schema.OptionalType:
		return pyType(t.ElementType)
	case *schema.EnumType:
		return pyType(t.ElementType)
	case *schema.ArrayType:
		return "list"
	case *schema.MapType, *schema.ObjectType, *schema.UnionType:
		return "dict"
	case *schema.ResourceType, *schema.ExternalType:
		return ""
	}
	switch t {
	case schema.BoolType:
		return "bool"
	case schema.IntType:
		return "int"
	case schema.NumberType:
		return "float"
	case schema.StringType:
		return "str"
	case schema.ArchiveType:
		return "pulumi.Archive"
	case schema.AssetType:
		return "(pulumi.Asset, pulumi.Archive)"
	default:
		return ""
	}
}

func (mod *modContext) genHeader(w io.Writer, needsSDK bool, imports imports) {
	// Set the encoding to UTF-8, in case the comments contain non-ASCII characters.
	fmt.Fprintf(w, "# coding=utf-8\n")

	// Emit a standard warning header ("do not edit", etc).
	fmt.Fprintf(w, "# *** WARNING: this file was generated by %v. ***\n", mod.gen.ectx.Tool)
	fmt.Fprintf(w, "# *** Do not edit by hand unless you're certain you know what you are doing! ***\n\n")

	if needsSDK {
		fmt.Fprintf(w, "import copy\n")
		fmt.Fprintf(w, "import warnings\n")
		fmt.Fprintf(w, "import pulumi\n")
		fmt.Fprintf(w, "import pulumi.runtime\n")
		fmt.Fprintf(w, "from typing import Any, Mapping, Optional, Sequence, Union, overload\n")
		fmt.Fprintf(w, "%s\n", mod.genUtilitiesImport())
		for _, imp := range imports.strings() {
			fmt.Fprintf(w, "%s\n", imp)
		}
		fmt.Fprintf(w, "\n")
	}
}

func (mod *modContext) genUtilitiesImport() string {
	return fmt.Sprintf("from %s import _utilities", relativeImport(mod.mod))
}

func (mod *modContext) generate(result *codegen.EmitResult, setFile func(relPath, contents string)) error {
	dir := mod.dir()

	var exports []string
	for _, r := range mod.resources {
		name := memberFileName(r.Token)
		exports = append(exports, name)
		p := path.Join(dir, name+".py")
		if r.IsOverlay {
			result.Overlays = append(result.Overlays, p)
			continue
		}
		res, err := mod.genResource(r)
		if err != nil {
			return err
		}
		setFile(p, res)
	}

	for _, f := range mod.functions {
		name := memberFileName(f.Token)
		exports = append(exports, name)
		p := path.Join(dir, name+".py")
		if f.IsOverlay {
			result.Overlays = append(result.Overlays, p)
			continue
		}
		fun, err := mod.genFunction(f)
		if err != nil {
			return err
		}
		setFile(p, fun)
	}

	for _, input := range []bool{true, false} {
		if !mod.hasTypes(input) {
			continue
		}
		name := "outputs"
		if input {
			name = "_inputs"
		}
		types, err := mod.genTypes(name, input)
		if err != nil {
			return err
		}
		setFile(path.Join(dir, name+".py"), types)
	}

	if len(mod.enums) > 0 {
		enums, err := mod.genEnums()
		if err != nil {
			return err
		}
		exports = append(exports, "_enums")
		setFile(path.Join(dir, "_enums.py"), enums)
	}

	// Overlay sources that sit next to the generated ones are re-exported with them.
	for p := range mod.gen.ectx.Overlays {
		base := path.Base(p)
		if path.Dir(p) != dir || path.Ext(p) != ".py" || strings.HasPrefix(base, "_") {
			continue
		}
		name := strings.TrimSuffix(base, ".py")
		if !codegen.NewStringSet(exports...).Has(name) {
			exports = append(exports, name)
		}
	}

	init, err := mod.genInit(exports, result)
	if err != nil {
		return err
	}
	setFile(path.Join(dir, "__init__.py"), init)
	return nil
}

// genInit emits an __init__.py module that re-exports the module's members and submodules.
func (mod *modContext) genInit(exports []string, result *codegen.EmitResult) (string, error) {
	w := &bytes.Buffer{}
	mod.genHeader(w, false /*needsSDK*/, nil)
	fmt.Fprintf(w, "%s\n", mod.genUtilitiesImport())
	fmt.Fprintf(w, "import typing\n")

	// Import anything to export flatly that is a direct export rather than sub-module.
	if len(exports) > 0 {
		sort.Strings(exports)
		fmt.Fprintf(w, "# Export this package's modules as members:\n")
		for _, exp := range exports {
			fmt.Fprintf(w, "from .%s import *\n", exp)
		}
	}
	if mod.hasTypes(true /*input*/) {
		fmt.Fprintf(w, "from ._inputs import *\n")
	}
	if mod.hasTypes(false /*input*/) {
		fmt.Fprintf(w, "from . import outputs\n")
	}

	// If there are subpackages, import them lazily.
	if len(mod.children) > 0 {
		children := make([]*modContext, len(mod.children))
		copy(children, mod.children)
		sort.Slice(children, func(i, j int) bool {
			return children[i].mod < children[j].mod
		})

		fmt.Fprintf(w, "\n# Make subpackages available:\n")
		fmt.Fprintf(w, "if typing.TYPE_CHECKING:\n")
		for _, submod := range children {
			fmt.Fprintf(w, "    import %s as %s\n", submod.fullyQualifiedImportName(), submod.unqualifiedImportName())
		}
		fmt.Fprintf(w, "else:\n")
		for _, submod := range children {
			fmt.Fprintf(w, "    %s = _utilities.lazy_import('%s')\n",
				submod.unqualifiedImportName(), submod.fullyQualifiedImportName())
		}
	}

	// The root module registers every resource module of the package with the runtime.
	if mod.isTopLevel() && len(mod.pkg.Resources) > 0 {
		fmt.Fprintf(w, "\n")
		tokens, err := genResourceMappings(mod, w)
		if err != nil {
			return "", err
		}
		result.Tokens = append(result.Tokens, tokens...)
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprint(w, codegen.PreserveRegion("#", codegen.ExtensionsRegion))
	return w.String(), nil
}

func (mod *modContext) genTypes(name string, input bool) (string, error) {
	fc := mod.newFile(name)
	body := &bytes.Buffer{}

	// Export only the symbols we want exported.
	fmt.Fprintf(body, "__all__ = [\n")
	for _, t := range mod.types {
		if mod.usedAs(t, input) {
			fmt.Fprintf(body, "    '%s',\n", unqualifiedObjectTypeName(t, input))
		}
	}
	fmt.Fprintf(body, "]\n\n")

	for _, t := range mod.types {
		if !mod.usedAs(t, input) {
			continue
		}
		props := append(mod.gen.unions.SynthesizedDiscriminants(t), t.Properties...)
		if err := fc.genType(body, unqualifiedObjectTypeName(t, input), t.Description, props, input); err != nil {
			return "", err
		}
	}

	w := &bytes.Buffer{}
	mod.genHeader(w, true /*needsSDK*/, fc.imports)
	w.Write(body.Bytes())
	return w.String(), nil
}

func (fc *fileContext) genType(w io.Writer, name, comment string, properties []*schema.Property, input bool) error {
	// Sort required props first.
	props := make([]*schema.Property, len(properties))
	copy(props, properties)
	sort.SliceStable(props, func(i, j int) bool {
		pi, pj := props[i], props[j]
		switch {
		case pi.IsRequired() != pj.IsRequired():
			return pi.IsRequired() && !pj.IsRequired()
		default:
			return pi.Name < pj.Name
		}
	})

	propType := func(p *schema.Property) string {
		if input {
			return fc.inputType(p)
		}
		return fc.typeString(p.Type, false)
	}

	decorator, suffix := "@pulumi.input_type", ""
	if !input {
		decorator, suffix = "@pulumi.output_type", "(dict)"
	}

	fmt.Fprintf(w, "%s\n", decorator)
	fmt.Fprintf(w, "class %s%s:\n", name, suffix)
	if !input && comment != "" {
		printComment(w, comment, "    ")
	}

	// Output types are dicts keyed by the schema names. Warn when a camelCase key is used instead of the getter.
	if !input {
		genKeyWarning(w, name, props)
	}

	// Generate an __init__ method. The bare `*` forces callers to use named arguments.
	fmt.Fprintf(w, "    def __init__(__self__")
	if len(props) > 0 {
		fmt.Fprintf(w, ", *")
	}
	for _, prop := range props {
		var defaultValue string
		if !prop.IsRequired() {
			defaultValue = " = None"
		}
		fmt.Fprintf(w, ",\n                 %s: %s%s", PyName(prop.Name), propType(prop), defaultValue)
	}
	fmt.Fprintf(w, "):\n")
	fc.genTypeDocstring(w, comment, props, input)
	if len(props) == 0 {
		fmt.Fprintf(w, "        pass\n")
	}
	for _, prop := range props {
		pname := PyName(prop.Name)

		// Fill in computed defaults for arguments.
		if prop.DefaultValue != nil {
			dv, err := getDefaultValue(prop.DefaultValue, schema.UnwrapOptional(prop.Type))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "        if %s is None:\n", pname)
			fmt.Fprintf(w, "            %s = %s\n", pname, dv)
		}

		// Check that the property isn't deprecated.
		if input && prop.DeprecationMessage != "" {
			escaped := strings.ReplaceAll(prop.DeprecationMessage, `"`, `\"`)
			fmt.Fprintf(w, "        if %s is not None:\n", pname)
			fmt.Fprintf(w, "            warnings.warn(\"\"\"%s\"\"\", DeprecationWarning)\n", escaped)
			fmt.Fprintf(w, "            pulumi.log.warn(\"\"\"%s is deprecated: %s\"\"\")\n", pname, escaped)
		}

		// Constant values are always set.
		if prop.ConstValue != nil {
			cv, err := getPrimitiveValue(prop.ConstValue)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "        pulumi.set(__self__, \"%s\", %s)\n", pname, cv)
			continue
		}

		var indent string
		if !prop.IsRequired() {
			fmt.Fprintf(w, "        if %s is not None:\n", pname)
			indent = "    "
		}
		fmt.Fprintf(w, "%s        pulumi.set(__self__, \"%s\", %s)\n", indent, pname, pname)
	}
	fmt.Fprintf(w, "\n")

	// Input types have getters and setters, output types only have getters.
	genProperties(w, props, input /*setters*/, propType)

	fmt.Fprintf(w, "\n")
	return nil
}

func genKeyWarning(w io.Writer, name string, props []*schema.Property) {
	var needsCaseWarning bool
	for _, prop := range props {
		if PyName(prop.Name) != prop.Name {
			needsCaseWarning = true
			break
		}
	}
	if !needsCaseWarning {
		return
	}

	fmt.Fprintf(w, "    @staticmethod\n")
	fmt.Fprintf(w, "    def __key_warning(key: str):\n")
	fmt.Fprintf(w, "        suggest = None\n")
	prefix := "if"
	for _, prop := range props {
		pname := PyName(prop.Name)
		if pname == prop.Name {
			continue
		}
		fmt.Fprintf(w, "        %s key == %q:\n", prefix, prop.Name)
		fmt.Fprintf(w, "            suggest = %q\n", pname)
		prefix = "elif"
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "        if suggest:\n")
	fmt.Fprintf(w, "            pulumi.log.warn(f\"Key '{key}' not found in %s. Access the value via the '{suggest}' property getter instead.\")\n", name)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "    def __getitem__(self, key: str) -> Any:\n")
	fmt.Fprintf(w, "        %s.__key_warning(key)\n", name)
	fmt.Fprintf(w, "        return super().__getitem__(key)\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "    def get(self, key: str, default = None) -> Any:\n")
	fmt.Fprintf(w, "        %s.__key_warning(key)\n", name)
	fmt.Fprintf(w, "        return super().get(key, default)\n")
	fmt.Fprintf(w, "\n")
}

func genProperties(w io.Writer, properties []*schema.Property, setters bool, propType func(prop *schema.Property) string) {
	// A property named "property" is emitted last so that it does not shadow the built-in `@property` decorator.
	emitProp := func(pname string, prop *schema.Property) {
		ty := propType(prop)
		fmt.Fprintf(w, "    @property\n")
		if pname == prop.Name {
			fmt.Fprintf(w, "    @pulumi.getter\n")
		} else {
			fmt.Fprintf(w, "    @pulumi.getter(name=%q)\n", prop.Name)
		}
		fmt.Fprintf(w, "    def %s(self) -> %s:\n", pname, ty)
		if prop.Description != "" {
			printComment(w, prop.Description, "        ")
		}
		fmt.Fprintf(w, "        return pulumi.get(self, %q)\n\n", pname)

		if setters {
			fmt.Fprintf(w, "    @%s.setter\n", pname)
			fmt.Fprintf(w, "    def %s(self, value: %s):\n", pname, ty)
			fmt.Fprintf(w, "        pulumi.set(self, %q, value)\n\n", pname)
		}
	}
	var propNamedProperty *schema.Property
	for _, prop := range properties {
		pname := PyName(prop.Name)
		if pname == "property" {
			propNamedProperty = prop
			continue
		}
		emitProp(pname, prop)
	}
	if propNamedProperty != nil {
		emitProp("property", propNamedProperty)
	}
}

func (fc *fileContext) genTypeDocstring(w io.Writer, comment string, properties []*schema.Property, input bool) {
	b := &bytes.Buffer{}
	if comment != "" {
		fmt.Fprintln(b, comment)
	}
	for _, prop := range properties {
		fc.genPropDocstring(b, PyName(prop.Name), prop, input)
	}
	printComment(w, b.String(), "        ")
}

func (fc *fileContext) genPropDocstring(w io.Writer, name string, prop *schema.Property, input bool) {
	if prop.Description == "" {
		return
	}

	ty := fc.typeString(schema.UnwrapOptional(prop.Type), input)
	if input && ty != "Any" {
		ty = fmt.Sprintf("pulumi.Input[%s]", ty)
	}

	// Continuation lines are indented so that Sphinx keeps them with the parameter.
	for i, docLine := range codegen.CommentLines(prop.Description) {
		if i == 0 {
			fmt.Fprintf(w, ":param %s %s: %s\n", ty, name, docLine)
		} else {
			fmt.Fprintf(w, "       %s\n", docLine)
		}
	}
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

func (mod *modContext) resourceArgsName(res *schema.Resource) (string, error) {
	name := resourceName(res)
	argsName := name + "Args"

	// An input type may already own the <Resource>Args name in this module. The args class then becomes
	// <Resource>InitArgs instead.
	const alternateSuffix = "InitArgs"
	for _, t := range mod.types {
		if mod.usedAs(t, true) && unqualifiedObjectTypeName(t, true) == argsName {
			argsName = name + alternateSuffix
			break
		}
	}
	if strings.HasSuffix(argsName, alternateSuffix) {
		for _, t := range mod.types {
			if mod.usedAs(t, true) && unqualifiedObjectTypeName(t, true) == argsName {
				return "", errors.Errorf("resource args class named %s in %s conflicts with input type", argsName, mod.mod)
			}
		}
	}
	return argsName, nil
}

func (mod *modContext) genResource(res *schema.Resource) (string, error) {
	fc := mod.newFile(memberFileName(res.Token))
	w := &bytes.Buffer{}

	name := resourceName(res)
	resourceArgsName, err := mod.resourceArgsName(res)
	if err != nil {
		return "", err
	}

	// Export only the symbols we want exported.
	fmt.Fprintf(w, "__all__ = ['%s', '%s']\n\n", resourceArgsName, name)

	// Produce an args class.
	argsComment := fmt.Sprintf("The set of arguments for constructing a %s resource.", name)
	if err := fc.genType(w, resourceArgsName, argsComment, res.InputProperties, true); err != nil {
		return "", err
	}

	// Custom resources can be read back with known state. The state class is internal to `get`.
	hasState := !res.IsComponent && len(res.Properties) > 0
	stateProps := optionalProperties(res.Properties)
	if hasState {
		stateComment := fmt.Sprintf("Input properties used for looking up and filtering %s resources.", name)
		if err := fc.genType(w, fmt.Sprintf("_%sState", name), stateComment, stateProps, true); err != nil {
			return "", err
		}
	}

	baseType := "pulumi.CustomResource"
	if res.IsComponent {
		baseType = "pulumi.ComponentResource"
	}

	if res.DeprecationMessage != "" {
		escaped := strings.ReplaceAll(res.DeprecationMessage, `"`, `\"`)
		fmt.Fprintf(w, "warnings.warn(\"\"\"%s\"\"\", DeprecationWarning)\n\n\n", escaped)
	}

	// Produce a class definition with optional """ comment.
	fmt.Fprintf(w, "class %s(%s):\n", name, baseType)
	if res.DeprecationMessage != "" {
		escaped := strings.ReplaceAll(res.DeprecationMessage, `"`, `\"`)
		fmt.Fprintf(w, "    warnings.warn(\"\"\"%s\"\"\", DeprecationWarning)\n\n", escaped)
	}

	allOptionalInputs := true
	for _, prop := range res.InputProperties {
		allOptionalInputs = allOptionalInputs && !prop.IsRequired()
	}

	emitInitMethodSignature := func(methodName string) {
		fmt.Fprintf(w, "    def %s(__self__,\n", methodName)
		fmt.Fprintf(w, "                 resource_name: str,\n")
		fmt.Fprintf(w, "                 opts: Optional[pulumi.ResourceOptions] = None")
		for _, prop := range res.InputProperties {
			fmt.Fprintf(w, ",\n                 %s: %s = None", InitParamName(prop.Name), fc.optionalInputType(prop))
		}
		fmt.Fprintf(w, ",\n                 __props__=None):\n")
	}

	// An __init__ overload that accepts the resource's inputs as keyword arguments.
	fmt.Fprintf(w, "    @overload\n")
	emitInitMethodSignature("__init__")
	fc.genInitDocstring(w, res, resourceArgsName, false /*argsOverload*/)
	fmt.Fprintf(w, "        ...\n")

	// An __init__ overload that accepts the resource's inputs as an args object.
	fmt.Fprintf(w, "    @overload\n")
	fmt.Fprintf(w, "    def __init__(__self__,\n")
	fmt.Fprintf(w, "                 resource_name: str,\n")
	if allOptionalInputs {
		fmt.Fprintf(w, "                 args: Optional[%s] = None,\n", resourceArgsName)
	} else {
		fmt.Fprintf(w, "                 args: %s,\n", resourceArgsName)
	}
	fmt.Fprintf(w, "                 opts: Optional[pulumi.ResourceOptions] = None):\n")
	fc.genInitDocstring(w, res, resourceArgsName, true /*argsOverload*/)
	fmt.Fprintf(w, "        ...\n")

	// The implementation dispatches on the overload that was called.
	fmt.Fprintf(w, "    def __init__(__self__, resource_name: str, *args, **kwargs):\n")
	fmt.Fprintf(w, "        resource_args, opts = _utilities.get_resource_args_opts(%s, pulumi.ResourceOptions, *args, **kwargs)\n", resourceArgsName)
	fmt.Fprintf(w, "        if resource_args is not None:\n")
	fmt.Fprintf(w, "            __self__._internal_init(resource_name, opts, **resource_args.__dict__)\n")
	fmt.Fprintf(w, "        else:\n")
	fmt.Fprintf(w, "            __self__._internal_init(resource_name, *args, **kwargs)\n")
	fmt.Fprintf(w, "\n")

	emitInitMethodSignature("_internal_init")
	if res.DeprecationMessage != "" {
		fmt.Fprintf(w, "        pulumi.log.warn(\"\"\"%s is deprecated: %s\"\"\")\n", name, res.DeprecationMessage)
	}
	fmt.Fprintf(w, "        opts = pulumi.ResourceOptions.merge(_utilities.get_resource_opts_defaults(), opts)\n")
	fmt.Fprintf(w, "        if not isinstance(opts, pulumi.ResourceOptions):\n")
	fmt.Fprintf(w, "            raise TypeError('Expected resource options to be a ResourceOptions instance')\n")
	if res.IsComponent {
		fmt.Fprintf(w, "        if opts.id is not None:\n")
		fmt.Fprintf(w, "            raise ValueError('ComponentResource classes do not support opts.id')\n")
		fmt.Fprintf(w, "        else:\n")
	} else {
		fmt.Fprintf(w, "        if opts.id is None:\n")
	}
	fmt.Fprintf(w, "            if __props__ is not None:\n")
	fmt.Fprintf(w, "                raise TypeError(")
	fmt.Fprintf(w, "'__props__ is only valid when passed in combination with a valid opts.id to get an existing resource')\n")

	// `__props__` is an args instance created without validation. Its __dict__ also carries the output properties.
	fmt.Fprintf(w, "            __props__ = %[1]s.__new__(%[1]s)\n\n", resourceArgsName)

	ins := codegen.NewStringSet()
	for _, prop := range res.InputProperties {
		pname := InitParamName(prop.Name)

		// Fill in computed defaults for arguments.
		if prop.DefaultValue != nil {
			dv, err := getDefaultValue(prop.DefaultValue, schema.UnwrapOptional(prop.Type))
			if err != nil {
				return "", err
			}
			fmt.Fprintf(w, "            if %s is None:\n", pname)
			fmt.Fprintf(w, "                %s = %s\n", pname, dv)
		}

		if prop.IsRequired() {
			fmt.Fprintf(w, "            if %s is None and not opts.urn:\n", pname)
			fmt.Fprintf(w, "                raise TypeError(\"Missing required property '%s'\")\n", pname)
		}

		if prop.DeprecationMessage != "" {
			escaped := strings.ReplaceAll(prop.DeprecationMessage, `"`, `\"`)
			fmt.Fprintf(w, "            if %s is not None and not opts.urn:\n", pname)
			fmt.Fprintf(w, "                warnings.warn(\"\"\"%s\"\"\", DeprecationWarning)\n", escaped)
			fmt.Fprintf(w, "                pulumi.log.warn(\"\"\"%s is deprecated: %s\"\"\")\n", pname, escaped)
		}

		arg := pname
		if prop.ConstValue != nil {
			cv, err := getPrimitiveValue(prop.ConstValue)
			if err != nil {
				return "", err
			}
			arg = cv
		}
		fmt.Fprintf(w, "            __props__.__dict__[%q] = %s\n", PyName(prop.Name), arg)
		ins.Add(prop.Name)
	}

	// Pure output properties default to None so that they are always present as properties.
	for _, prop := range res.Properties {
		if !ins.Has(prop.Name) {
			fmt.Fprintf(w, "            __props__.__dict__[%q] = None\n", PyName(prop.Name))
		}
	}

	// Chain to the base constructor, which registers the resource.
	fmt.Fprintf(w, "        super(%s, __self__).__init__(\n", name)
	fmt.Fprintf(w, "            '%s',\n", res.Token)
	fmt.Fprintf(w, "            resource_name,\n")
	fmt.Fprintf(w, "            __props__,\n")
	if res.IsComponent {
		fmt.Fprintf(w, "            opts,\n")
		fmt.Fprintf(w, "            remote=True)\n")
	} else {
		fmt.Fprintf(w, "            opts)\n")
	}
	fmt.Fprintf(w, "\n")

	if !res.IsComponent {
		fmt.Fprintf(w, "    @staticmethod\n")
		fmt.Fprintf(w, "    def get(resource_name: str,\n")
		fmt.Fprintf(w, "            id: pulumi.Input[str],\n")
		fmt.Fprintf(w, "            opts: Optional[pulumi.ResourceOptions] = None")
		if hasState {
			for _, prop := range stateProps {
				fmt.Fprintf(w, ",\n            %s: %s = None", InitParamName(prop.Name), fc.optionalInputType(prop))
			}
		}
		fmt.Fprintf(w, ") -> '%s':\n", name)
		fc.genGetDocstring(w, res, stateProps)
		fmt.Fprintf(w, "        opts = pulumi.ResourceOptions.merge(opts, pulumi.ResourceOptions(id=id))\n")
		fmt.Fprintf(w, "\n")
		if hasState {
			fmt.Fprintf(w, "        __props__ = _%[1]sState.__new__(_%[1]sState)\n\n", name)
		} else {
			fmt.Fprintf(w, "        __props__ = %[1]s.__new__(%[1]s)\n\n", resourceArgsName)
		}
		for _, prop := range stateProps {
			fmt.Fprintf(w, "        __props__.__dict__[%q] = %s\n", PyName(prop.Name), InitParamName(prop.Name))
		}
		fmt.Fprintf(w, "        return %s(resource_name, opts=opts, __props__=__props__)\n\n", name)
	}

	// Property getters for each of the resource's outputs.
	genProperties(w, res.Properties, false /*setters*/, func(prop *schema.Property) string {
		return fmt.Sprintf("pulumi.Output[%s]", fc.typeString(prop.Type, false /*input*/))
	})

	file := &bytes.Buffer{}
	mod.genHeader(file, true /*needsSDK*/, fc.imports)
	file.Write(w.Bytes())
	return file.String(), nil
}

func (fc *fileContext) genInitDocstring(w io.Writer, res *schema.Resource, resourceArgsName string, argOverload bool) {
	// b contains the full text of the docstring, without the leading and trailing triple quotes.
	b := &bytes.Buffer{}

	if res.Description != "" {
		fmt.Fprintln(b, codegen.FilterExamples(res.Description, "python"))
	} else {
		fmt.Fprintf(b, "Create a %s resource with the given unique name, props, and options.\n", tokenToName(res.Token))
	}

	fmt.Fprintln(b, ":param str resource_name: The name of the resource.")
	if argOverload {
		fmt.Fprintf(b, ":param %s args: The arguments to use to populate this resource's properties.\n", resourceArgsName)
	}
	fmt.Fprintln(b, ":param pulumi.ResourceOptions opts: Options for the resource.")
	if !argOverload {
		for _, prop := range res.InputProperties {
			fc.genPropDocstring(b, InitParamName(prop.Name), prop, true /*input*/)
		}
	}

	printComment(w, b.String(), "        ")
}

func (fc *fileContext) genGetDocstring(w io.Writer, res *schema.Resource, stateProps []*schema.Property) {
	b := &bytes.Buffer{}

	fmt.Fprintf(b, "Get an existing %s resource's state with the given name, id, and optional extra\n"+
		"properties used to qualify the lookup.\n", tokenToName(res.Token))
	fmt.Fprintln(b, "")

	fmt.Fprintln(b, ":param str resource_name: The unique name of the resulting resource.")
	fmt.Fprintln(b, ":param pulumi.Input[str] id: The unique provider ID of the resource to lookup.")
	fmt.Fprintln(b, ":param pulumi.ResourceOptions opts: Options for the resource.")
	for _, prop := range stateProps {
		fc.genPropDocstring(b, InitParamName(prop.Name), prop, true /*input*/)
	}

	printComment(w, b.String(), "        ")
}

func awaitableTypeNames(fun *schema.Function) (baseName, awaitableName string) {
	baseName = pyClassName(tokenToName(fun.Token)) + "Result"
	awaitableName = "Awaitable" + baseName
	return
}

func (fc *fileContext) genAwaitableType(w io.Writer, fun *schema.Function) string {
	baseName, awaitableName := awaitableTypeNames(fun)
	props := fun.Outputs.Properties

	// Produce a class definition with optional """ comment.
	fmt.Fprint(w, "@pulumi.output_type\n")
	fmt.Fprintf(w, "class %s:\n", baseName)
	printComment(w, fmt.Sprintf("A collection of values returned by %s.", PyName(tokenToName(fun.Token))), "    ")

	// An initializer with a keyword argument for every result.
	fmt.Fprintf(w, "    def __init__(__self__")
	for _, prop := range props {
		fmt.Fprintf(w, ", %s=None", PyName(prop.Name))
	}
	fmt.Fprintf(w, "):\n")
	if len(props) == 0 {
		fmt.Fprintf(w, "        pass\n")
	}
	for _, prop := range props {
		pname := PyName(prop.Name)
		if ptype := pyType(prop.Type); ptype != "" {
			fmt.Fprintf(w, "        if %s and not isinstance(%s, %s):\n", pname, pname, ptype)
			fmt.Fprintf(w, "            raise TypeError(\"Expected argument '%s' to be a %s\")\n", pname, ptype)
		}

		if prop.DeprecationMessage != "" {
			escaped := strings.ReplaceAll(prop.DeprecationMessage, `"`, `\"`)
			fmt.Fprintf(w, "        if %s is not None:\n", pname)
			fmt.Fprintf(w, "            warnings.warn(\"\"\"%s\"\"\", DeprecationWarning)\n", escaped)
			fmt.Fprintf(w, "            pulumi.log.warn(\"\"\"%s is deprecated: %s\"\"\")\n\n", pname, escaped)
		}

		fmt.Fprintf(w, "        pulumi.set(__self__, \"%[1]s\", %[1]s)\n", pname)
	}
	fmt.Fprintf(w, "\n")

	genProperties(w, props, false /*setters*/, func(prop *schema.Property) string {
		return fc.typeString(prop.Type, false /*input*/)
	})

	// The awaitable subclass. __await__ must be a generator that returns a plain instance of the base class, so it
	// yields nothing through `if False: yield`.
	fmt.Fprint(w, "\n")
	fmt.Fprintf(w, "class %s(%s):\n", awaitableName, baseName)
	fmt.Fprintf(w, "    # pylint: disable=using-constant-test\n")
	fmt.Fprintf(w, "    def __await__(self):\n")
	fmt.Fprintf(w, "        if False:\n")
	fmt.Fprintf(w, "            yield self\n")
	fmt.Fprintf(w, "        return %s(", baseName)
	for i, prop := range props {
		if i > 0 {
			fmt.Fprintf(w, ",")
		}
		pname := PyName(prop.Name)
		fmt.Fprintf(w, "\n            %s=self.%s", pname, pname)
	}
	fmt.Fprintf(w, ")\n")

	return awaitableName
}

func (mod *modContext) genFunction(fun *schema.Function) (string, error) {
	fc := mod.newFile(memberFileName(fun.Token))
	w := &bytes.Buffer{}

	var baseName, awaitableName string
	if fun.Outputs != nil {
		baseName, awaitableName = awaitableTypeNames(fun)
	}
	name := PyName(tokenToName(fun.Token))

	// Export only the symbols we want exported.
	fmt.Fprintf(w, "__all__ = [\n")
	if fun.Outputs != nil {
		fmt.Fprintf(w, "    '%s',\n", baseName)
		fmt.Fprintf(w, "    '%s',\n", awaitableName)
	}
	fmt.Fprintf(w, "    '%s',\n", name)
	fmt.Fprintf(w, "]\n\n")

	if fun.DeprecationMessage != "" {
		escaped := strings.ReplaceAll(fun.DeprecationMessage, `"`, `\"`)
		fmt.Fprintf(w, "warnings.warn(\"\"\"%s\"\"\", DeprecationWarning)\n\n", escaped)
	}

	retTypeName := ""
	var rets []*schema.Property
	if fun.Outputs != nil {
		retTypeName, rets = fc.genAwaitableType(w, fun), fun.Outputs.Properties
		fmt.Fprintf(w, "\n\n")
	}

	var args []*schema.Property
	if fun.Inputs != nil {
		args = fun.Inputs.Properties
	}

	// Invoke arguments are plain values.
	argType := func(arg *schema.Property) string {
		return fc.typeString(&schema.OptionalType{ElementType: schema.UnwrapOptional(arg.Type)}, true /*input*/)
	}

	def := fmt.Sprintf("def %s(", name)
	var indent string
	if len(args) > 0 {
		indent = strings.Repeat(" ", len(def))
	}
	fmt.Fprint(w, def)
	for i, arg := range args {
		var ind string
		if i != 0 {
			ind = indent
		}
		fmt.Fprintf(w, "%s%s: %s = None,\n", ind, PyName(arg.Name), argType(arg))
	}
	fmt.Fprintf(w, "%sopts: Optional[pulumi.InvokeOptions] = None", indent)
	if retTypeName != "" {
		fmt.Fprintf(w, ") -> %s:\n", retTypeName)
	} else {
		fmt.Fprintf(w, "):\n")
	}

	docs := &bytes.Buffer{}
	if fun.Description != "" {
		fmt.Fprintln(docs, codegen.FilterExamples(fun.Description, "python"))
	} else {
		fmt.Fprintln(docs, "Use this data source to access information about an existing resource.")
	}
	if len(args) > 0 {
		fmt.Fprintln(docs, "")
		for _, arg := range args {
			fc.genPropDocstring(docs, PyName(arg.Name), arg, false /*input*/)
		}
	}
	printComment(w, docs.String(), "    ")

	if fun.DeprecationMessage != "" {
		fmt.Fprintf(w, "    pulumi.log.warn(\"\"\"%s is deprecated: %s\"\"\")\n", name, fun.DeprecationMessage)
	}

	// Copy the function arguments into a dictionary, filling in defaults.
	fmt.Fprintf(w, "    __args__ = dict()\n")
	for _, arg := range args {
		pname := PyName(arg.Name)
		if arg.DefaultValue != nil {
			dv, err := getDefaultValue(arg.DefaultValue, schema.UnwrapOptional(arg.Type))
			if err != nil {
				return "", err
			}
			fmt.Fprintf(w, "    if %s is None:\n", pname)
			fmt.Fprintf(w, "        %s = %s\n", pname, dv)
		}
		fmt.Fprintf(w, "    __args__['%s'] = %s\n", arg.Name, pname)
	}

	fmt.Fprintf(w, "    opts = pulumi.InvokeOptions.merge(_utilities.get_invoke_opts_defaults(), opts)\n")

	var typ string
	if fun.Outputs != nil {
		// The result class is passed along so that nested output types are instantiated by the invoke.
		typ = fmt.Sprintf(", typ=%s", baseName)
	}
	fmt.Fprintf(w, "    __ret__ = pulumi.runtime.invoke('%s', __args__, opts=opts%s).value\n", fun.Token, typ)
	fmt.Fprintf(w, "\n")

	if fun.Outputs != nil {
		fmt.Fprintf(w, "    return %s(", retTypeName)
		for i, ret := range rets {
			if i > 0 {
				fmt.Fprintf(w, ",")
			}
			fmt.Fprintf(w, "\n        %[1]s=pulumi.get(__ret__, '%[1]s')", PyName(ret.Name))
		}
		fmt.Fprintf(w, ")\n")
	}

	file := &bytes.Buffer{}
	mod.genHeader(file, true /*needsSDK*/, fc.imports)
	file.Write(w.Bytes())
	return file.String(), nil
}

func (mod *modContext) genEnums() (string, error) {
	w := &bytes.Buffer{}
	mod.genHeader(w, false /*needsSDK*/, nil)

	fmt.Fprintf(w, "from enum import Enum\n\n")

	// Export only the symbols we want exported.
	fmt.Fprintf(w, "__all__ = [\n")
	for _, enum := range mod.enums {
		fmt.Fprintf(w, "    '%s',\n", pyClassName(tokenToName(enum.Token)))
	}
	fmt.Fprintf(w, "]\n\n\n")

	for i, enum := range mod.enums {
		if err := genEnum(w, enum); err != nil {
			return "", err
		}
		if i != len(mod.enums)-1 {
			fmt.Fprintf(w, "\n\n")
		}
	}
	return w.String(), nil
}

func genEnum(w io.Writer, enum *schema.EnumType) error {
	indent := "    "
	enumName := pyClassName(tokenToName(enum.Token))

	var underlyingType string
	switch enum.ElementType {
	case schema.StringType:
		underlyingType = "str"
	case schema.IntType:
		underlyingType = "int"
	case schema.NumberType:
		underlyingType = "float"
	default:
		return errors.Errorf("enums of type %s are not yet implemented for this language", enum.ElementType.String())
	}

	fmt.Fprintf(w, "class %s(%s, Enum):\n", enumName, underlyingType)
	printComment(w, enum.Description, indent)
	for _, e := range enum.Elements {
		// Elements without a name are named by their value.
		elementName := e.Name
		if elementName == "" {
			elementName = fmt.Sprintf("%v", e.Value)
		}
		safeName, err := makeSafeEnumName(elementName, enumName)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s%s = ", indent, safeName)
		if val, ok := e.Value.(string); ok {
			fmt.Fprintf(w, "%q\n", val)
		} else {
			fmt.Fprintf(w, "%v\n", e.Value)
		}
		if e.Description != "" {
			fmt.Fprintf(w, "%s\"\"\"\n%s%s\n%s\"\"\"\n", indent, indent, strings.ReplaceAll(e.Description, `"""`, `\"\"\"`), indent)
		}
	}
	return nil
}

func getPrimitiveValue(value interface{}) (string, error) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return "True", nil
		}
		return "False", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	case reflect.String:
		return pyStringLiteral(v.String()), nil
	default:
		return "", errors.Errorf("unsupported default value of type %T", value)
	}
}

func getDefaultValue(dv *schema.DefaultValue, t schema.Type) (string, error) {
	defaultValue := ""
	if dv.Value != nil {
		v, err := getPrimitiveValue(dv.Value)
		if err != nil {
			return "", err
		}
		defaultValue = v
	}

	if len(dv.Environment) > 0 {
		envFunc := "_utilities.get_env"
		switch t {
		case schema.BoolType:
			envFunc = "_utilities.get_env_bool"
		case schema.IntType:
			envFunc = "_utilities.get_env_int"
		case schema.NumberType:
			envFunc = "_utilities.get_env_float"
		}

		envVars := make([]string, len(dv.Environment))
		for i, e := range dv.Environment {
			envVars[i] = pyStringLiteral(e)
		}
		if defaultValue == "" {
			defaultValue = fmt.Sprintf("%s(%s)", envFunc, strings.Join(envVars, ", "))
		} else {
			defaultValue = fmt.Sprintf("(%s(%s) or %s)", envFunc, strings.Join(envVars, ", "), defaultValue)
		}
	}

	return defaultValue, nil
}

var requirementRegex = regexp.MustCompile(`^>=([^,]+),<[^,]+$`)
var pep440AlphaRegex = regexp.MustCompile(`^(\d+\.\d+\.\d+)a(\d+)$`)
var pep440BetaRegex = regexp.MustCompile(`^(\d+\.\d+\.\d+)b(\d+)$`)
var pep440RCRegex = regexp.MustCompile(`^(\d+\.\d+\.\d+)rc(\d+)$`)
var pep440DevRegex = regexp.MustCompile(`^(\d+\.\d+\.\d+)\.dev(\d+)$`)

// Remote components need the construct support of the 3.x SDK.
var oldestAllowedPulumi = semver.Version{Major: 3}

const defaultPulumiRequirement = ">=3.0.0,<4.0.0"

func sanitizePackageDescription(description string) string {
	lines := strings.SplitN(description, "\n", 2)
	if len(lines) > 0 {
		return lines[0]
	}
	return ""
}

func pep440VersionToSemver(v string) (semver.Version, error) {
	switch {
	case pep440AlphaRegex.MatchString(v):
		parts := pep440AlphaRegex.FindStringSubmatch(v)
		v = parts[1] + "-alpha." + parts[2]
	case pep440BetaRegex.MatchString(v):
		parts := pep440BetaRegex.FindStringSubmatch(v)
		v = parts[1] + "-beta." + parts[2]
	case pep440RCRegex.MatchString(v):
		parts := pep440RCRegex.FindStringSubmatch(v)
		v = parts[1] + "-rc." + parts[2]
	case pep440DevRegex.MatchString(v):
		parts := pep440DevRegex.FindStringSubmatch(v)
		v = parts[1] + "-dev." + parts[2]
	}

	return semver.ParseTolerant(v)
}

// calculateDependencies returns the sorted requirement list of the package. The Pulumi SDK and every schema
// dependency get an entry when the language block does not pin one.
func calculateDependencies(pkg *schema.Package, info PackageInfo) ([]string, error) {
	requires := map[string]string{
		"parver": ">=0.2.1",
		"semver": ">=2.8.1",
	}
	for name, req := range info.Requires {
		requires[name] = req
	}

	if pulumiReq, ok := requires["pulumi"]; ok {
		// We expect a specific pattern of ">=version,<version" here.
		matches := requirementRegex.FindStringSubmatch(pulumiReq)
		if len(matches) != 2 {
			return nil, errors.Errorf("invalid requirement specifier \"%s\"; expected \">=version1,<version2\"", pulumiReq)
		}
		lowerBound, err := pep440VersionToSemver(matches[1])
		if err != nil {
			return nil, errors.Errorf("invalid version for lower bound: %v", err)
		}
		if lowerBound.LT(oldestAllowedPulumi) {
			return nil, errors.Errorf("lower version bound must be at least %v", oldestAllowedPulumi)
		}
	} else {
		requires["pulumi"] = defaultPulumiRequirement
	}

	for _, dep := range pkg.Dependencies {
		name := "pulumi-" + strings.ReplaceAll(dep.Name, "_", "-")
		if _, ok := requires[name]; !ok {
			requires[name] = fmt.Sprintf(">=%s,<%d.0.0", dep.Version, dep.Version.Major+1)
		}
	}

	names := make([]string, 0, len(requires))
	for name := range requires {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make([]string, len(names))
	for i, name := range names {
		deps[i] = name + requires[name]
	}
	return deps, nil
}

func genPyprojectTOML(pkg *schema.Package, info PackageInfo, pyPkgName string) (string, error) {
	deps, err := calculateDependencies(pkg, info)
	if err != nil {
		return "", err
	}

	version := "0.0.0"
	if info.RespectSchemaVersion && pkg.Version != nil {
		version = pypiVersion(*pkg.Version)
	}
	pythonRequires := info.PythonRequires
	if pythonRequires == "" {
		pythonRequires = ">=3.8"
	}

	project := &pyproject.Project{
		Name:           pyPkgName,
		Description:    sanitizePackageDescription(pkg.Description),
		Dependencies:   deps,
		Keywords:       pkg.Keywords,
		README:         "README.md",
		RequiresPython: pythonRequires,
		Version:        version,
	}
	if pkg.License != "" {
		project.License = &pyproject.License{Text: pkg.License}
	}
	urls := map[string]string{}
	if pkg.Homepage != "" {
		urls["Homepage"] = pkg.Homepage
	}
	if pkg.Repository != "" {
		urls["Repository"] = pkg.Repository
	}
	if len(urls) > 0 {
		project.URLs = urls
	}

	doc := pyproject.Schema{
		Project: project,
		BuildSystem: &pyproject.BuildSystem{
			Requires:     []string{"setuptools>=61.0"},
			BuildBackend: "setuptools.build_meta",
		},
		Tool: &pyproject.Tool{
			Setuptools: &pyproject.Setuptools{
				PackageData: map[string][]string{
					pyPkgName: {"py.typed", "pulumi-plugin.json"},
				},
			},
		},
	}

	w := &bytes.Buffer{}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return "", fmt.Errorf("encoding pyproject.toml: %w", err)
	}
	return w.String(), nil
}

type pulumiPlugin struct {
	Resource bool   `json:"resource"`
	Name     string `json:"name,omitempty"`
	Version  string `json:"version,omitempty"`
}

func genPulumiPluginFile(pkg *schema.Package, info PackageInfo) (string, error) {
	plugin := pulumiPlugin{
		Resource: true,
		Name:     pkg.Name,
		Version:  "${PLUGIN_VERSION}",
	}
	if info.RespectSchemaVersion && pkg.Version != nil {
		plugin.Version = pkg.Version.String()
	}
	b, err := json.MarshalIndent(plugin, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

func genReadme(pkg *schema.Package, info PackageInfo) string {
	readme := info.Readme
	if readme == "" {
		readme = pkg.Description
	}
	if readme != "" && !strings.HasSuffix(readme, "\n") {
		readme += "\n"
	}
	return readme
}

// NewEmitter returns the Python emitter.
func NewEmitter() codegen.Emitter {
	return emitter{}
}

type emitter struct{}

func (emitter) Language() string {
	return "python"
}

type naming struct {
	root      string
	overrides map[string]string
}

func (naming) TypeName(token string) string {
	return pyClassName(tokenToName(token))
}

func (naming) PropertyName(name string) string {
	return PyName(name)
}

func (n naming) ModulePath(module string) string {
	if module == "" {
		return n.root
	}
	if override, ok := n.overrides[module]; ok {
		return path.Join(n.root, override)
	}
	return path.Join(n.root, moduleName(module))
}

func defaultImport(dep schema.Dependency) string {
	return pyPack(dep.Name)
}

func (emitter) NewContext(pkg *schema.Package, overlays codegen.StringSet) *codegen.EmitterContext {
	return &codegen.EmitterContext{
		Tool:     codegen.Tool,
		Language: "python",
		Naming: naming{
			root:      codegen.LanguageString(pkg, "python", "packageName", pyPack(pkg.Name)),
			overrides: codegen.LanguageStringMap(pkg, "python", "moduleNameOverrides"),
		},
		Imports:  codegen.PackageImports(pkg, "python", defaultImport),
		Overlays: overlays,
	}
}

func (emitter) Emit(ctx context.Context, pkg *schema.Package, ectx *codegen.EmitterContext) (*codegen.EmitResult, error) {
	return GeneratePackage(ctx, pkg, ectx)
}

func (g *generator) buildModules() {
	var getMod func(modName string) *modContext
	getMod = func(modName string) *modContext {
		mod, ok := g.modules[modName]
		if !ok {
			mod = &modContext{gen: g, pkg: g.pkg, mod: modName, pyPkgName: g.pyPkgName}
			g.modules[modName] = mod

			if modName != "" {
				parentName := path.Dir(modName)
				if parentName == "." {
					parentName = ""
				}
				getMod(parentName).addChild(mod)
			}
		}
		return mod
	}
	getMod("")

	for _, t := range g.pkg.Types {
		switch t := t.(type) {
		case *schema.ObjectType:
			u := g.usage[t]
			if u.Input || u.Output {
				mod := getMod(g.tokenToModule(t.Token))
				mod.types = append(mod.types, t)
			}
		case *schema.EnumType:
			mod := getMod(g.tokenToModule(t.Token))
			mod.enums = append(mod.enums, t)
		}
	}
	for _, r := range g.pkg.Resources {
		mod := getMod(g.tokenToModule(r.Token))
		mod.resources = append(mod.resources, r)
	}
	for _, f := range g.pkg.Functions {
		mod := getMod(g.tokenToModule(f.Token))
		mod.functions = append(mod.functions, f)
	}
}

// GeneratePackage generates the Python SDK for pkg.
func GeneratePackage(ctx context.Context, pkg *schema.Package, ectx *codegen.EmitterContext) (*codegen.EmitResult, error) {
	info, err := lookupPackageInfo(pkg)
	if err != nil {
		return nil, err
	}
	unions, err := codegen.CollectObjectUnions(pkg)
	if err != nil {
		return nil, err
	}

	pyPkgName := info.PackageName
	if pyPkgName == "" {
		pyPkgName = pyPack(pkg.Name)
	}

	g := &generator{
		pkg:       pkg,
		info:      info,
		ectx:      ectx,
		pyPkgName: pyPkgName,
		unions:    unions,
		usage:     codegen.ObjectTypeUsage(pkg),
		modules:   map[string]*modContext{},
	}
	g.buildModules()

	result := codegen.NewEmitResult()
	setFile := func(relPath, contents string) {
		if ectx.Overlays.Has(relPath) {
			glog.V(3).Infof("python: %s is supplied by an overlay", relPath)
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

	root := g.modules[""]
	utilities := &bytes.Buffer{}
	root.genHeader(utilities, false /*needsSDK*/, nil)
	fmt.Fprint(utilities, strings.TrimPrefix(utilitiesFile, "\n"))
	setFile(path.Join(pyPkgName, "_utilities.py"), utilities.String())
	setFile(path.Join(pyPkgName, "py.typed"), "")

	plugin, err := genPulumiPluginFile(pkg, info)
	if err != nil {
		return nil, err
	}
	setFile(path.Join(pyPkgName, "pulumi-plugin.json"), plugin)

	project, err := genPyprojectTOML(pkg, info, pyPkgName)
	if err != nil {
		return nil, err
	}
	setFile("pyproject.toml", project)
	setFile("README.md", genReadme(pkg, info))

	return result.Finish(), nil
}

const utilitiesFile = `
import importlib.util
import json
import os
import sys

import pulumi
import pulumi.runtime
import pkg_resources

from semver import VersionInfo as SemverVersion
from parver import Version as PEP440Version


def get_env(*args):
    for v in args:
        value = os.getenv(v)
        if value is not None:
            return value
    return None


def get_env_bool(*args):
    str = get_env(*args)
    if str is not None:
        # NOTE: these values are taken from https://golang.org/src/strconv/atob.go?s=351:391#L1, which is what
        # Terraform uses internally when parsing boolean values.
        if str in ["1", "t", "T", "true", "TRUE", "True"]:
            return True
        if str in ["0", "f", "F", "false", "FALSE", "False"]:
            return False
    return None


def get_env_int(*args):
    str = get_env(*args)
    if str is not None:
        try:
            return int(str)
        except:
            return None
    return None


def get_env_float(*args):
    str = get_env(*args)
    if str is not None:
        try:
            return float(str)
        except:
            return None
    return None


def _get_semver_version():
    # __name__ is the fully-qualified name of this module, <root package>._utilities.
    root_package, *rest = __name__.split('.')

    # PEP440 and semver differ slightly in incompatible ways. The engine expects a semver string, so the
    # installed PEP440 version is converted here.
    pep440_version_string = pkg_resources.require(root_package)[0].version
    pep440_version = PEP440Version.parse(pep440_version_string)
    (major, minor, patch) = pep440_version.release
    prerelease = None
    if pep440_version.pre_tag == 'a':
        prerelease = f"alpha.{pep440_version.pre}"
    elif pep440_version.pre_tag == 'b':
        prerelease = f"beta.{pep440_version.pre}"
    elif pep440_version.pre_tag == 'rc':
        prerelease = f"rc.{pep440_version.pre}"
    elif pep440_version.dev is not None:
        prerelease = f"dev.{pep440_version.dev}"

    return SemverVersion(major=major, minor=minor, patch=patch, prerelease=prerelease)


# Determine the version once and cache the value, which measurably improves program performance.
_version = _get_semver_version()
_version_str = str(_version)


def get_version():
    return _version_str


def get_resource_opts_defaults() -> pulumi.ResourceOptions:
    return pulumi.ResourceOptions(version=get_version())


def get_invoke_opts_defaults() -> pulumi.InvokeOptions:
    return pulumi.InvokeOptions(version=get_version())


def get_resource_args_opts(resource_args_type, resource_options_type, *args, **kwargs):
    """
    Return the resource args and options given the *args and **kwargs of a resource's
    __init__ method.
    """

    resource_args, opts = None, None

    # If the first item is the resource args type, save it and remove it from the args list.
    if args and isinstance(args[0], resource_args_type):
        resource_args, args = args[0], args[1:]

    # Now look at the first item in the args list again.
    # If the first item is the resource options class, save it.
    if args and isinstance(args[0], resource_options_type):
        opts = args[0]

    # If resource_args is None, see if "args" is in kwargs, and, if so, if it's typed as the
    # the resource args type.
    if resource_args is None:
        a = kwargs.get("args")
        if isinstance(a, resource_args_type):
            resource_args = a

    # If opts is None, look it up in kwargs.
    if opts is None:
        opts = kwargs.get("opts")

    return resource_args, opts


def lazy_import(fullname):
    m = sys.modules.get(fullname, None)
    if m is not None:
        return m

    spec = importlib.util.find_spec(fullname)

    m = sys.modules.get(fullname, None)
    if m is not None:
        return m

    loader = importlib.util.LazyLoader(spec.loader)
    spec.loader = loader
    module = importlib.util.module_from_spec(spec)

    m = sys.modules.get(fullname, None)
    if m is not None:
        return m

    sys.modules[fullname] = module
    loader.exec_module(module)
    return module


class Module(pulumi.runtime.ResourceModule):
    def __init__(self, mod_info):
        super().__init__()
        self.mod_info = mod_info

    def version(self):
        return _version

    def construct(self, name: str, typ: str, urn: str) -> pulumi.Resource:
        class_name = self.mod_info['classes'].get(typ, None)

        if class_name is None:
            raise Exception(f"unknown resource type {typ}")

        TheClass = getattr(lazy_import(self.mod_info['fqn']), class_name)
        return TheClass(name, pulumi.ResourceOptions(urn=urn))


def register(resource_modules):
    resource_modules = json.loads(resource_modules)

    for mod_info in resource_modules:
        pulumi.runtime.register_resource_module(
            mod_info['pkg'],
            mod_info['mod'],
            Module(mod_info))
`
