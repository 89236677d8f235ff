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

package dotnet

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/cgstrings"
)

// isReservedWord returns true if s is a C# reserved word as per
// https://docs.microsoft.com/en-us/dotnet/csharp/language-reference/language-specification/lexical-structure#keywords
func isReservedWord(s string) bool {
	switch s {
	case "abstract", "as", "base", "bool", "break", "byte", "case", "catch", "char", "checked", "class", "const",
		"continue", "decimal", "default", "delegate", "do", "double", "else", "enum", "event", "explicit", "extern",
		"false", "finally", "fixed", "float", "for", "foreach", "goto", "if", "implicit", "in", "int", "interface",
		"internal", "is", "lock", "long", "namespace", "new", "null", "object", "operator", "out", "override",
		"params", "private", "protected", "public", "readonly", "ref", "return", "sbyte", "sealed", "short",
		"sizeof", "stackalloc", "static", "string", "struct", "switch", "this", "throw", "true", "try", "typeof",
		"uint", "ulong", "unchecked", "unsafe", "ushort", "using", "virtual", "void", "volatile", "while":
		return true

	default:
		return false
	}
}

// isLegalIdentifierStart returns true if it is legal for c to be the first character of a C# identifier as per
// https://docs.microsoft.com/en-us/dotnet/csharp/language-reference/language-specification/lexical-structure#identifiers
func isLegalIdentifierStart(c rune) bool {
	return c == '_' ||
		unicode.In(c, unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl)
}

// isLegalIdentifierPart returns true if it is legal for c to be part of a C# identifier besides the first character.
func isLegalIdentifierPart(c rune) bool {
	return isLegalIdentifierStart(c) || unicode.In(c, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Cf)
}

// validIdentifier replaces characters that are not allowed in C# identifiers with underscores. A reserved word is
// prefixed with @. No attempt is made to ensure that the result is unique.
func validIdentifier(name string) string {
	var builder strings.Builder
	for i, c := range name {
		if !isLegalIdentifierPart(c) {
			builder.WriteRune('_')
		} else {
			if i == 0 && !isLegalIdentifierStart(c) {
				builder.WriteRune('_')
			}
			builder.WriteRune(c)
		}
	}
	name = builder.String()
	if isReservedWord(name) {
		return "@" + name
	}
	return name
}

// propertyName is the PascalCase member name of a schema property.
func propertyName(name string) string {
	return validIdentifier(cgstrings.Pascal(name))
}

// memberName is propertyName for a member of the named class. C# forbids members named after their enclosing type.
func memberName(name, className string) string {
	member := propertyName(name)
	if member == className {
		return member + "Value"
	}
	return member
}

// parameterName is the camelCase parameter name of a schema property.
func parameterName(name string) string {
	return validIdentifier(cgstrings.Camel(name))
}

// namespaceName is the namespace segment of a module path: "ec2" becomes "Ec2", "aws/iam" becomes "Aws.Iam".
func namespaceName(module string) string {
	if module == "" {
		return ""
	}
	parts := strings.Split(module, "/")
	for i, p := range parts {
		parts[i] = validIdentifier(cgstrings.Pascal(p))
	}
	return strings.Join(parts, ".")
}

// makeSafeEnumName turns an enum element name into a legal C# member name of the enum type.
func makeSafeEnumName(name, typeName string) (string, error) {
	// Names like "*" or "0" become words.
	name = codegen.ExpandShortEnumName(name)

	safeName := cgstrings.Pascal(name)
	if safeName == "" {
		return "", fmt.Errorf("enum name %q is not a valid identifier", name)
	}
	if first := []rune(safeName)[0]; !isLegalIdentifierStart(first) {
		safeName = "_" + safeName
	}
	safeName = validIdentifier(safeName)

	// A member can't share the name of its enclosing type.
	if safeName == typeName {
		safeName += "Value"
	}
	return safeName, nil
}

// csharpStringLiteral renders s as a regular C# string literal.
func csharpStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// xmlDocEscape escapes the characters that are special in XML doc comments.
var xmlDocEscape = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// printComment writes a description as a /// <summary> block.
func printComment(w io.Writer, comment, indent string) {
	lines := codegen.CommentLines(comment)
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "%s/// <summary>\n", indent)
	for _, l := range lines {
		fmt.Fprintf(w, "%s/// %s\n", indent, xmlDocEscape.Replace(l))
	}
	fmt.Fprintf(w, "%s/// </summary>\n", indent)
}
