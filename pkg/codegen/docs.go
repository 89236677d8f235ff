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

import (
	"regexp"
	"strings"
)

var (
	// IMPORTANT! The following regexps contain named capturing groups. When changing the group names, be sure to
	// change the references to them below as well.
	examplesSectionRE = regexp.MustCompile(
		"(?P<examples_start>{{% examples %}})(?P<examples_content>(.|\n)*?)(?P<examples_end>{{% /examples %}})")
	individualExampleRE = regexp.MustCompile(
		"(?P<example_start>{{% example %}})(?P<example_content>(.|\n)*?)(?P<example_end>{{% /example %}})")
	h3TitleRE = regexp.MustCompile("(### .*)")
	snippetRE = regexp.MustCompile("(?P<fence>```(?P<lang>[a-z]+))\n(?P<code>(.|\n)*?)```")
)

// snippetLanguages maps a target language to the code fence label its examples use.
var snippetLanguages = map[string]string{
	"go":     "go",
	"nodejs": "typescript",
	"python": "python",
	"dotnet": "csharp",
}

type exampleParts struct {
	Title   string
	Snippet string
}

func namedGroups(regex *regexp.Regexp, match []string) map[string]string {
	groups := map[string]string{}
	for i, name := range regex.SubexpNames() {
		if name != "" && i < len(match) {
			groups[name] = match[i]
		}
	}
	return groups
}

func exampleForLanguage(content, fence string) (exampleParts, bool) {
	for _, m := range snippetRE.FindAllStringSubmatch(content, -1) {
		groups := namedGroups(snippetRE, m)
		if groups["lang"] == fence {
			return exampleParts{
				Title:   h3TitleRE.FindString(content),
				Snippet: m[0],
			}, true
		}
	}
	return exampleParts{}, false
}

// FilterExamples rewrites the examples section of a description so that it only holds the snippets written in the
// target language. The section is dropped if there are none. Descriptions without an examples section are returned
// unchanged.
func FilterExamples(description, language string) string {
	section := examplesSectionRE.FindStringSubmatch(description)
	if section == nil {
		return description
	}
	fence := snippetLanguages[language]

	var examples []exampleParts
	content := namedGroups(examplesSectionRE, section)["examples_content"]
	for _, m := range individualExampleRE.FindAllStringSubmatch(content, -1) {
		if ex, ok := exampleForLanguage(namedGroups(individualExampleRE, m)["example_content"], fence); ok {
			examples = append(examples, ex)
		}
	}

	var builder strings.Builder
	if len(examples) > 0 {
		builder.WriteString("## Example Usage\n\n")
	}
	for i, ex := range examples {
		if ex.Title != "" {
			builder.WriteString(ex.Title + "\n\n")
		}
		builder.WriteString(ex.Snippet + "\n")
		if i != len(examples)-1 {
			builder.WriteString("\n")
		}
	}

	result := strings.Replace(description, section[0], builder.String(), 1)
	return strings.TrimRight(result, "\n")
}

// CommentLines splits a description into lines for a comment block, dropping trailing whitespace and trailing
// empty lines.
func CommentLines(description string) []string {
	description = strings.TrimRight(description, " \t\n")
	if description == "" {
		return nil
	}
	lines := strings.Split(description, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return lines
}
