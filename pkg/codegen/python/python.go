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
	"strings"
	"unicode"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
)

// PyName turns a camelCase schema name into a snake_case Python name. A run of capitals stays one word, so
// podCIDRSet becomes pod_cidr_set. Digits and a plural "s" directly after a run of capitals join it, so
// SHA256Hash becomes sha256_hash and nonResourceURLs becomes non_resource_urls.
func PyName(name string) string {
	const (
		start = iota
		capital
		other
	)

	var words []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	prev, capitals := start, 0
	for _, r := range name {
		if !isLegalIdentifierPart(r) {
			r = '_'
		}
		if prev == start && !isLegalIdentifierStart(r) {
			word.WriteRune('_')
		}

		switch {
		case unicode.IsUpper(r):
			if prev == other {
				flush()
			}
			word.WriteRune(unicode.ToLower(r))
			prev, capitals = capital, capitals+1
		case prev == capital && capitals > 1 && !unicode.IsDigit(r) && r != 's':
			// The last capital of the run begins the next word.
			runes := []rune(word.String())
			word.Reset()
			word.WriteString(string(runes[:len(runes)-1]))
			flush()
			word.WriteRune(runes[len(runes)-1])
			word.WriteRune(r)
			prev, capitals = other, 0
		default:
			word.WriteRune(r)
			prev, capitals = other, 0
		}
	}
	flush()

	return EnsureKeywordSafe(strings.Join(words, "_"))
}

// Keywords are the reserved words of Python 2 and 3. Generated identifiers must avoid them.
//
//   - Python 2: https://docs.python.org/2.5/ref/keywords.html
//   - Python 3: https://docs.python.org/3/reference/lexical_analysis.html#keywords
var Keywords = codegen.NewStringSet(
	"False",
	"None",
	"True",
	"and",
	"as",
	"assert",
	"async",
	"await",
	"break",
	"class",
	"continue",
	"def",
	"del",
	"elif",
	"else",
	"except",
	"exec",
	"finally",
	"for",
	"from",
	"global",
	"if",
	"import",
	"in",
	"is",
	"lambda",
	"nonlocal",
	"not",
	"or",
	"pass",
	"print",
	"raise",
	"return",
	"try",
	"while",
	"with",
	"yield")

// EnsureKeywordSafe appends an underscore to names that clash with a keyword, per PEP 8.
func EnsureKeywordSafe(name string) string {
	if Keywords.Has(name) {
		return name + "_"
	}
	return name
}
