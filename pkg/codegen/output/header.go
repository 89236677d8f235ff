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
	"bytes"
	"fmt"
	"path"
)

// commentPrefixes maps file extensions to their line-comment syntax. Files of other types carry no header and are
// only recorded in the manifest.
var commentPrefixes = map[string]string{
	".go":   "//",
	".ts":   "//",
	".js":   "//",
	".cs":   "//",
	".py":   "#",
	".toml": "#",
	".yaml": "#",
}

// generatedMarker identifies files that already carry a generated-code header.
const generatedMarker = "this file was generated by"

// headerScanLines is how far into a file the marker is looked for. Python files start with an encoding line.
const headerScanLines = 3

func header(tool, prefix string) string {
	return fmt.Sprintf("%[1]s *** WARNING: this file was generated by %[2]s. ***\n"+
		"%[1]s *** Do not edit by hand unless you're certain you know what you are doing! ***\n\n", prefix, tool)
}

func hasHeader(contents []byte) bool {
	lines := bytes.SplitN(contents, []byte("\n"), headerScanLines+1)
	for i, l := range lines {
		if i == headerScanLines {
			break
		}
		if bytes.Contains(l, []byte(generatedMarker)) {
			return true
		}
	}
	return false
}

// stamp prepends the generated-code header to a file unless it has one or its type has no comment syntax.
func stamp(tool, p string, contents []byte) []byte {
	prefix, ok := commentPrefixes[path.Ext(p)]
	if !ok || hasHeader(contents) {
		return contents
	}
	return append([]byte(header(tool, prefix)), contents...)
}
