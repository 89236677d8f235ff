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
	"context"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
)

// FileDrift describes one file whose contents on disk differ from what would be written.
type FileDrift struct {
	// Path is relative to the language tree.
	Path string
	// Diff is a patch from the contents on disk to the generated contents. It is empty for stale files.
	Diff string
	// Stale is set for files of the previous run that would be removed.
	Stale bool
}

// DriftError reports that a language tree is out of date.
type DriftError struct {
	Language string
	Files    []FileDrift
}

func (e *DriftError) Error() string {
	paths := make([]string, len(e.Files))
	for i, f := range e.Files {
		paths[i] = f.Path
	}
	return fmt.Sprintf("%s: %d generated files are out of date: %s", e.Language, len(e.Files), strings.Join(paths, ", "))
}

// Check compares the tree of a language with files without writing anything. It returns a *DriftError if any file
// would change.
func (w *Writer) Check(ctx context.Context, lang string, files codegen.Fs, opts ...WriteOption) error {
	rendered := w.render(files, opts)
	previous, err := w.previousManifest(lang)
	if err != nil {
		return err
	}

	var drift []FileDrift
	for _, p := range rendered.SortedPaths() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == ManifestFile {
			continue
		}
		existing, _, err := w.current(lang, p)
		if err != nil {
			return err
		}
		if string(existing) != string(rendered[p]) {
			drift = append(drift, FileDrift{Path: p, Diff: unifiedDiff(string(existing), string(rendered[p]))})
		}
	}
	for _, p := range previous.SortedValues() {
		if _, ok := rendered[p]; ok {
			continue
		}
		if _, exists, err := w.current(lang, p); err != nil {
			return err
		} else if exists {
			drift = append(drift, FileDrift{Path: p, Stale: true})
		}
	}

	if len(drift) > 0 {
		return &DriftError{Language: lang, Files: drift}
	}
	return nil
}

// unifiedDiff renders a line-level patch between two file versions.
func unifiedDiff(before, after string) string {
	differ := diffmatchpatch.New()
	a, b, lines := differ.DiffLinesToChars(before, after)
	diffs := differ.DiffCharsToLines(differ.DiffMain(a, b, false), lines)
	return differ.PatchToText(differ.PatchMake(before, diffs))
}
