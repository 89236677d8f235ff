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

import "fmt"

const (
	// PreserveBegin opens a region of a generated file whose contents survive regeneration.
	PreserveBegin = "sdkgen:preserve-begin"
	// PreserveEnd closes a preserved region.
	PreserveEnd = "sdkgen:preserve-end"
	// ExtensionsRegion is the preserved region at the end of every barrel file.
	ExtensionsRegion = "extensions"
)

// PreserveRegion returns an empty preserved region written with the given line-comment prefix.
func PreserveRegion(comment, id string) string {
	return fmt.Sprintf("%[1]s %[2]s %[3]s\n%[1]s %[4]s %[3]s\n", comment, PreserveBegin, id, PreserveEnd)
}
