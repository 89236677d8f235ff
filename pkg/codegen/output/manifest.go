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

package output

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
)

// ManifestFile lists the paths of a language tree that the last run wrote.
const ManifestFile = ".sdkgen-manifest"

func renderManifest(tool string, paths []string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Files written by %s. Do not edit.\n", tool)
	for _, p := range paths {
		fmt.Fprintln(&b, p)
	}
	return b.Bytes()
}

func parseManifest(contents []byte) codegen.StringSet {
	paths := codegen.NewStringSet()
	scanner := bufio.NewScanner(bytes.NewReader(contents))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths.Add(line)
	}
	return paths
}
