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
	"context"
	"sort"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
)

// Tool is the generator name stamped into every generated file header.
const Tool = "pulumi-sdkgen"

// Emitter generates the SDK for one target language. Emitters are pure: they read the bound package and return an
// in-memory tree, and never touch the filesystem.
type Emitter interface {
	// Language returns the language name, which is also the name of the output subdirectory.
	Language() string
	// NewContext returns the naming and import context for generating pkg. overlays holds the paths supplied by the
	// language's overlay directory.
	NewContext(pkg *schema.Package, overlays StringSet) *EmitterContext
	// Emit generates the SDK.
	Emit(ctx context.Context, pkg *schema.Package, ectx *EmitterContext) (*EmitResult, error)
}

// Naming maps schema names to a language's identifiers.
type Naming interface {
	// TypeName returns the local name of the type, resource or function with the given token.
	TypeName(token string) string
	// PropertyName returns the identifier of a property or parameter.
	PropertyName(name string) string
	// ModulePath returns the directory of a module relative to the language root.
	ModulePath(module string) string
}

// EmitterContext carries per-language settings shared by the files of one emission.
type EmitterContext struct {
	// Tool is the generator name.
	Tool string
	// Language is the target language.
	Language string
	// Naming is the language's naming table.
	Naming Naming
	// Imports maps dependency package names to the language's import reference for that package.
	Imports map[string]string
	// Overlays holds the paths supplied by overlays. The emitter skips these.
	Overlays StringSet
}

// EmitResult is the output of one emission.
type EmitResult struct {
	// Files is the generated tree, relative to the language root.
	Files Fs
	// Tokens are the resource tokens bound into the generated registration table, sorted.
	Tokens []string
	// Overlays are the paths the overlay set must supply for overlay resources and functions, sorted.
	Overlays []string
}

// NewEmitResult returns an empty result.
func NewEmitResult() *EmitResult {
	return &EmitResult{Files: Fs{}}
}

// Finish sorts the token and overlay lists.
func (r *EmitResult) Finish() *EmitResult {
	sort.Strings(r.Tokens)
	sort.Strings(r.Overlays)
	return r
}

// LanguageString returns a string setting from the package's language block, or def.
func LanguageString(pkg *schema.Package, language, key, def string) string {
	if v, ok := pkg.Language[language][key].(string); ok && v != "" {
		return v
	}
	return def
}

// LanguageStringMap returns a string-to-string map setting from the package's language block.
func LanguageStringMap(pkg *schema.Package, language, key string) map[string]string {
	result := map[string]string{}
	raw, ok := pkg.Language[language][key].(map[string]interface{})
	if !ok {
		return result
	}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			result[k] = s
		}
	}
	return result
}

// PackageImports resolves the import reference of each declared dependency. Entries in the language block's
// "packageImports" setting win over the reference computed by defaultImport.
func PackageImports(pkg *schema.Package, language string, defaultImport func(dep schema.Dependency) string) map[string]string {
	configured := LanguageStringMap(pkg, language, "packageImports")
	imports := map[string]string{}
	for _, dep := range pkg.Dependencies {
		if ref, ok := configured[dep.Name]; ok {
			imports[dep.Name] = ref
		} else {
			imports[dep.Name] = defaultImport(dep)
		}
	}
	return imports
}
