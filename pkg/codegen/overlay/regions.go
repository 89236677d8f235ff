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

package overlay

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
)

// markerPrefix is common to both markers and finds candidate lines cheaply.
const markerPrefix = "sdkgen:preserve-"

// markerRE matches a line comment whose text starts with a marker. Markers mentioned elsewhere in a line, for
// example inside a doc comment, are ordinary text.
var markerRE = regexp.MustCompile(`^\s*(?://|#|--|;)\s*` + regexp.QuoteMeta(markerPrefix) + `(\S*)(.*)$`)

// region is a preserved block of a file. begin and end index the marker lines.
type region struct {
	id         string
	begin, end int
}

type regionError struct {
	region string
	reason string
}

func (e *regionError) Error() string {
	return e.reason
}

// splitLines splits text into lines that keep their terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.SplitAfter(text, "\n")
}

// parseRegions finds the preserved regions of a file. A marker is a line comment in any of the emitted languages'
// syntaxes whose text begins with the marker and is followed by the region id.
func parseRegions(lines []string) ([]region, error) {
	var regions []region
	seen := map[string]bool{}
	open := -1

	for i, line := range lines {
		if !strings.Contains(line, markerPrefix) {
			continue
		}
		m := markerRE.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m == nil {
			continue
		}
		var kind string
		switch markerPrefix + m[1] {
		case codegen.PreserveBegin, codegen.PreserveEnd:
			kind = markerPrefix + m[1]
		default:
			return nil, &regionError{reason: fmt.Sprintf("line %d: malformed preserve marker", i+1)}
		}
		fields := strings.Fields(m[2])
		if len(fields) != 1 {
			return nil, &regionError{reason: fmt.Sprintf("line %d: preserve marker must name exactly one region", i+1)}
		}
		id := fields[0]

		switch kind {
		case codegen.PreserveBegin:
			if open >= 0 {
				return nil, &regionError{
					region: id,
					reason: fmt.Sprintf("line %d: region opened inside region %q", i+1, regions[open].id),
				}
			}
			if seen[id] {
				return nil, &regionError{region: id, reason: fmt.Sprintf("line %d: duplicate region", i+1)}
			}
			seen[id] = true
			regions = append(regions, region{id: id, begin: i, end: -1})
			open = len(regions) - 1
		case codegen.PreserveEnd:
			if open < 0 {
				return nil, &regionError{region: id, reason: fmt.Sprintf("line %d: region closed but never opened", i+1)}
			}
			if regions[open].id != id {
				return nil, &regionError{
					region: id,
					reason: fmt.Sprintf("line %d: region closed while %q is open", i+1, regions[open].id),
				}
			}
			regions[open].end = i
			open = -1
		}
	}
	if open >= 0 {
		return nil, &regionError{region: regions[open].id, reason: "unterminated region"}
	}
	return regions, nil
}

// spliceRegions copies the body of every region of previous into the region of the same id in fresh. A region of
// previous that fresh lacks is an error.
func spliceRegions(previous, fresh string) (string, error) {
	if !strings.Contains(previous, markerPrefix) {
		// Still validate the fresh file so that broken markers never reach disk.
		if _, err := parseRegions(splitLines(fresh)); err != nil {
			return "", err
		}
		return fresh, nil
	}

	prevLines, freshLines := splitLines(previous), splitLines(fresh)
	prevRegions, err := parseRegions(prevLines)
	if err != nil {
		return "", err
	}
	freshRegions, err := parseRegions(freshLines)
	if err != nil {
		return "", err
	}

	inFresh := map[string]bool{}
	for _, r := range freshRegions {
		inFresh[r.id] = true
	}
	bodies := map[string][]string{}
	for _, r := range prevRegions {
		if !inFresh[r.id] {
			return "", &regionError{region: r.id, reason: "region is missing from the generated file"}
		}
		bodies[r.id] = prevLines[r.begin+1 : r.end]
	}

	var b strings.Builder
	next := 0
	for _, r := range freshRegions {
		for _, l := range freshLines[next : r.begin+1] {
			b.WriteString(l)
		}
		body, ok := bodies[r.id]
		if !ok {
			body = freshLines[r.begin+1 : r.end]
		}
		for _, l := range body {
			b.WriteString(l)
		}
		next = r.end
	}
	for _, l := range freshLines[next:] {
		b.WriteString(l)
	}
	return b.String(), nil
}
