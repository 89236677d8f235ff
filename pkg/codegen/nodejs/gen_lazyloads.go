// Copyright 2016-2022, Pulumi Corporation.
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

// Module index files re-export resources and functions lazily so
// that loading a package does not require every one of its modules.

package nodejs

import (
	"fmt"
	"io"
	"strings"
)

type fileType int

const (
	otherFileType fileType = iota
	resourceFileType
	functionFileType
)

type resourceFileInfo struct {
	resourceClassName         string
	resourceArgsInterfaceName string
	stateInterfaceName        string
}

type functionFileInfo struct {
	functionName                string
	functionArgsInterfaceName   string
	functionResultInterfaceName string
}

func (i functionFileInfo) interfaces() []string {
	var result []string
	if i.functionArgsInterfaceName != "" {
		result = append(result, i.functionArgsInterfaceName)
	}
	if i.functionResultInterfaceName != "" {
		result = append(result, i.functionResultInterfaceName)
	}
	return result
}

// fileInfo describes a generated module file that an index file re-exports.
type fileInfo struct {
	fileType         fileType
	pathToNodeModule string
	resourceFileInfo resourceFileInfo
	functionFileInfo functionFileInfo
}

type lazyLoadGen struct{}

func newLazyLoadGen() *lazyLoadGen {
	return &lazyLoadGen{}
}

// Generates TypeScript code to re-export a generated module. For
// resources and functions this is optimized to use lazy loading.
// Falls back to eager re-export for everything else.
func (ll *lazyLoadGen) genReexport(w io.Writer, exp fileInfo, importPath string) {
	switch exp.fileType {
	case functionFileType:
		ll.genFunctionReexport(w, exp.functionFileInfo, importPath)
	case resourceFileType:
		ll.genResourceReexport(w, exp.resourceFileInfo, importPath)
	default:
		// non-optimized but foolproof eager reexport
		fmt.Fprintf(w, "export * from %q;\n", importPath)
	}
}

// Generates TypeScript code that lazily imports and re-exports a
// module defining a resource, while also importing the resource class
// in-scope.
func (*lazyLoadGen) genResourceReexport(w io.Writer, i resourceFileInfo, importPath string) {
	defer fmt.Fprintf(w, "\n")

	quotedImport := fmt.Sprintf("%q", importPath)

	interfaces := []string{
		i.resourceArgsInterfaceName,
	}
	if i.stateInterfaceName != "" {
		interfaces = append(interfaces, i.stateInterfaceName)
	}
	// Re-export interfaces. This is type-only and does not
	// generate a require() call.
	fmt.Fprintf(w, "export { %s } from %s;\n",
		strings.Join(interfaces, ", "),
		quotedImport)

	// Re-export class type into the type group, see
	// https://www.typescriptlang.org/docs/handbook/declaration-merging.html
	fmt.Fprintf(w, "export type %[1]s = import(%[2]s).%[1]s;\n",
		i.resourceClassName,
		quotedImport)

	// Mock re-export class value into the value group - for compilation.
	fmt.Fprintf(w, "export const %[1]s: typeof import(%[2]s).%[1]s = null as any;\n",
		i.resourceClassName,
		quotedImport)

	// At runtime, install lazy loading. This has no effect on types.
	fmt.Fprintf(w, "utilities.lazyLoad(exports, [%q], () => require(%s));\n",
		i.resourceClassName, quotedImport)
}

// Generates TypeScript code that lazily imports and re-exports a
// module defining a function.
func (*lazyLoadGen) genFunctionReexport(w io.Writer, i functionFileInfo, importPath string) {
	defer fmt.Fprintf(w, "\n")

	quotedImport := fmt.Sprintf("%q", importPath)

	// Re-export interfaces. This is type-only and does not
	// generate a require() call.
	if interfaces := i.interfaces(); len(interfaces) > 0 {
		fmt.Fprintf(w, "export { %s } from %s;\n",
			strings.Join(interfaces, ", "),
			quotedImport)
	}

	fmt.Fprintf(w, "export const %[1]s: typeof import(%[2]s).%[1]s = null as any;\n",
		i.functionName, quotedImport)
	fmt.Fprintf(w, "utilities.lazyLoad(exports, [%q], () => require(%s));\n",
		i.functionName, quotedImport)
}
