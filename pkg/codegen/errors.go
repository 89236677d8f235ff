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

// Feature names reported by UnsupportedFeatureError.
const (
	FeatureMixedUnion     = "union of object and primitive types"
	FeaturePrimitiveUnion = "union of more than two primitive types"
	FeatureAsset          = "asset or archive value"
)

// UnsupportedFeatureError reports a schema construct that has no mapping in a target language. It aborts generation
// for that language only.
type UnsupportedFeatureError struct {
	// Language is the target language.
	Language string
	// Feature names the construct.
	Feature string
	// Token is the member that uses the construct, optionally followed by the property path.
	Token string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("%s: %s is not supported (used by %s)", e.Language, e.Feature, e.Token)
}
