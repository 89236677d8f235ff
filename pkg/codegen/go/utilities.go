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

package gen

import (
	"go/token"
	"path"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/cgstrings"
)

// goPackage returns the Go package name for a Pulumi package or module name. Anything after the first hyphen is
// dropped, so "azure-nextgen" becomes "azure".
func goPackage(name string) string {
	if i := strings.Index(name, "-"); i >= 0 {
		name = name[:i]
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, name)
}

// modulePath returns the directory of a module relative to the package root.
func modulePath(mod string) string {
	parts := strings.Split(mod, "/")
	for i, p := range parts {
		parts[i] = goPackage(p)
	}
	return path.Join(parts...)
}

func isLegalIdentifierStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isLegalIdentifierPart(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func isLegalIdentifier(s string) bool {
	for i, c := range s {
		if i == 0 && !isLegalIdentifierStart(c) || !isLegalIdentifierPart(c) {
			return false
		}
	}
	return s != "" && !token.IsKeyword(s)
}

// makeValidIdentifier replaces characters that are not allowed in Go identifiers with underscores and prefixes
// names that start with a digit or are keywords.
func makeValidIdentifier(name string) string {
	var builder strings.Builder
	for i, c := range name {
		if i == 0 && !isLegalIdentifierStart(c) && c != '&' {
			builder.WriteRune('_')
		}
		if isLegalIdentifierPart(c) || i == 0 && c == '&' {
			builder.WriteRune(c)
		} else {
			builder.WriteRune('_')
		}
	}
	result := builder.String()
	if token.IsKeyword(result) {
		return "_" + result
	}
	return result
}

// fieldName returns the exported Go name of a property.
func fieldName(name string) string {
	f := cgstrings.Pascal(name)
	if f == "" || !isLegalIdentifierStart([]rune(f)[0]) {
		return "X" + makeValidIdentifier(f)
	}
	return f
}

// localName returns an unexported Go name for a local variable, e.g. for the default value of a property.
func localName(name string) string {
	return makeValidIdentifier(cgstrings.Camel(name))
}

// makeSafeEnumName returns the name of the constant for an enum value. Values that are not legal identifiers keep
// their words and are joined with underscores.
func makeSafeEnumName(name, typeName string) (string, error) {
	safeName := codegen.ExpandShortEnumName(name)

	words := strings.FieldsFunc(safeName, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "", errors.Errorf("enum name %s is not a valid identifier", safeName)
	}

	if isLegalIdentifier(safeName) && (!strings.Contains(safeName, "_") || safeName == strings.ToLower(safeName)) {
		return typeName + cgstrings.Pascal(safeName), nil
	}
	return typeName + "_" + strings.Join(words, "_"), nil
}
