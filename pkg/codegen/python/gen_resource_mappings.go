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

package python

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/segmentio/encoding/json"
)

// Generates code to build and register ResourceModule instances with
// the Pulumi runtime. This code supports deserialization of references
// into fully hydrated Resource instances.
//
// Implementation scans the given root `modContext` for resource
// modules, passes the info down as a JSON literal to the generated
// code, and generates a `_utilities.register` call to do the heavy
// lifting.
//
// Generates code only for the top-level `__init__.py`. Whenever any
// of the sub-modules is imported, Python imports top-level module
// also. This scheme ensures all resource modules are registered
// eagerly even when we apply lazy loading for some of the modules.
func genResourceMappings(root *modContext, w io.Writer) ([]string, error) {
	if !root.isTopLevel() {
		return nil, nil
	}
	infos := allResourceModuleInfos(root)
	rm, err := jsonPythonLiteral(infos)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "_utilities.register(\n    resource_modules=%s\n)\n", rm)

	var tokens []string
	for _, info := range infos {
		for tok := range info.Classes {
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

func jsonPythonLiteral(thing interface{}) (string, error) {
	bytes, err := json.MarshalIndent(thing, "", " ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("\"\"\"\n%s\n\"\"\"", string(bytes)), nil
}

// Information about a resource module and how it maps tokens to
// Python classes.
//
// Example:
//
//	{
//	  "pkg": "awsx",
//	  "mod": "ec2",
//	  "fqn": "pulumi_awsx.ec2",
//	  "classes": {
//	    "awsx:ec2:DefaultVpc": "DefaultVpc",
//	    "awsx:ec2:Vpc": "Vpc"
//	  }
//	}
type resourceModuleInfo struct {
	Pkg     string            `json:"pkg"`
	Mod     string            `json:"mod"`
	Fqn     string            `json:"fqn"`
	Classes map[string]string `json:"classes"`
}

func (rmi *resourceModuleInfo) Token() string {
	return fmt.Sprintf("%s:%s", rmi.Pkg, rmi.Mod)
}

func allResourceModuleInfos(root *modContext) []resourceModuleInfo {
	var result []resourceModuleInfo
	for _, mctx := range root.walkSelfWithDescendants() {
		result = append(result, collectResourceModuleInfos(mctx)...)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Token() < result[j].Token()
	})
	return result
}

func collectResourceModuleInfos(mctx *modContext) []resourceModuleInfo {
	byMod := make(map[string]resourceModuleInfo)

	for _, res := range mctx.resources {
		pkg := mctx.pkg.Name
		mod := strings.Split(res.Token, ":")[1]

		rmi, found := byMod[mod]
		if !found {
			rmi = resourceModuleInfo{pkg, mod, mctx.fullyQualifiedImportName(), make(map[string]string)}
			byMod[mod] = rmi
		}
		rmi.Classes[res.Token] = resourceName(res)
	}

	var result []resourceModuleInfo
	for _, rmi := range byMod {
		result = append(result, rmi)
	}
	return result
}
