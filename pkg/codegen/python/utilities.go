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
	"regexp"
	"strings"
	"unicode"

	"github.com/blang/semver"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
)

func isLegalIdentifierStart(c rune) bool {
	return c == '_' || unicode.In(c, unicode.Letter)
}

func isLegalIdentifierPart(c rune) bool {
	return isLegalIdentifierStart(c) || unicode.In(c, unicode.Digit)
}

func isLegalIdentifier(s string) bool {
	for i, c := range s {
		if i == 0 && !isLegalIdentifierStart(c) || i > 0 && !isLegalIdentifierPart(c) {
			return false
		}
	}
	return s != "" && !Keywords.Has(s)
}

// makeValidIdentifier replaces characters that are not allowed in Python identifiers with underscores.
func makeValidIdentifier(name string) string {
	var builder strings.Builder
	for i, c := range name {
		if i == 0 && !isLegalIdentifierStart(c) || i > 0 && !isLegalIdentifierPart(c) {
			builder.WriteRune('_')
		} else {
			builder.WriteRune(c)
		}
	}
	return EnsureKeywordSafe(builder.String())
}

var underscoresRE = regexp.MustCompile(`_+`)

// makeSafeEnumName returns an UPPER_SNAKE enum member name.
func makeSafeEnumName(name, typeName string) (string, error) {
	// Replace common single character enum names.
	safeName := codegen.ExpandShortEnumName(name)

	// If the name is one illegal character, return an error.
	if len(safeName) == 1 && !isLegalIdentifierStart(rune(safeName[0])) {
		return "", fmt.Errorf("enum name %s is not a valid identifier", safeName)
	}

	safeName = makeValidIdentifier(strings.ToUpper(PyName(safeName)))

	// Names that had to be escaped get the type name as a prefix.
	if strings.HasPrefix(safeName, "_") {
		safeName = strings.ToUpper(PyName(typeName)) + safeName
	}

	return underscoresRE.ReplaceAllString(safeName, "_"), nil
}

var pep440Tags = map[string]string{
	"alpha": "a",
	"beta":  "b",
	"rc":    "rc",
	"dev":   ".dev",
	"post":  ".post",
}

var pep440TagRE = regexp.MustCompile(`^(alpha|beta|rc|dev|post)(\d+)$`)

// pypiVersion converts a semantic version to its PEP 440 form. Prerelease identifiers without a PEP 440
// equivalent move into the local version segment together with the build metadata.
func pypiVersion(v semver.Version) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)

	var local []string
	for i := 0; i < len(v.Pre); i++ {
		pre := v.Pre[i].String()
		if m := pep440TagRE.FindStringSubmatch(pre); m != nil {
			b.WriteString(pep440Tags[m[1]] + m[2])
			continue
		}
		if tag, ok := pep440Tags[pre]; ok && i+1 < len(v.Pre) && v.Pre[i+1].IsNum {
			b.WriteString(tag + v.Pre[i+1].String())
			i++
			continue
		}
		local = append(local, pre)
	}
	local = append(local, v.Build...)
	if len(local) > 0 {
		b.WriteString("+" + strings.Join(local, "."))
	}
	return b.String()
}

// pyPack returns the suggested package name for the given string.
func pyPack(s string) string {
	return "pulumi_" + strings.ReplaceAll(s, "-", "_")
}

// pyClassName turns a raw name into one that is suitable as a Python class name.
func pyClassName(name string) string {
	return EnsureKeywordSafe(name)
}

// InitParamName returns a PyName-encoded name but also deduplicates the name against built-in parameters of
// resource __init__.
func InitParamName(name string) string {
	result := PyName(name)
	switch result {
	case "resource_name", "opts":
		return result + "_"
	default:
		return result
	}
}

// moduleName returns the Python module path of a schema module: each component is snake_cased.
func moduleName(mod string) string {
	if mod == "" {
		return ""
	}
	parts := strings.Split(strings.ToLower(mod), "/")
	for i, p := range parts {
		parts[i] = PyName(p)
	}
	return strings.Join(parts, "/")
}

// relativeImport returns the relative import that reaches the package root from a module.
func relativeImport(mod string) string {
	if mod == "" {
		return "."
	}
	return "." + strings.Repeat(".", strings.Count(mod, "/")+1)
}

func pyStringLiteral(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

func printComment(w io.Writer, comment string, indent string) {
	lines := codegen.CommentLines(comment)
	if len(lines) == 0 {
		return
	}

	// Known special characters that need escaping.
	replacer := strings.NewReplacer(`"""`, `\"\"\"`, `\x`, `\\x`, `\N`, `\\N`)
	fmt.Fprintf(w, "%s\"\"\"\n", indent)
	for _, l := range lines {
		if l == "" {
			fmt.Fprintf(w, "\n")
		} else {
			fmt.Fprintf(w, "%s%s\n", indent, replacer.Replace(l))
		}
	}
	fmt.Fprintf(w, "%s\"\"\"\n", indent)
}
