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

// Package overlay merges hand-written files and preserved regions into freshly generated SDK trees.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"
	"github.com/spf13/afero"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	utilafero "github.com/pulumi/pulumi-sdkgen/pkg/util/afero"
)

// OverlayConflictError reports overlays that cannot be merged with the generated tree. Nothing is written when a
// run hits one.
type OverlayConflictError struct {
	// Language is the tree being merged.
	Language string
	// Path is the file at fault, if any.
	Path string
	// Region is the preserved region at fault, if any.
	Region string
	// Reason describes the conflict.
	Reason string
}

func (e *OverlayConflictError) Error() string {
	msg := e.Language
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Region != "" {
		msg += fmt.Sprintf(" (region %q)", e.Region)
	}
	return msg + ": " + e.Reason
}

// MergeInput is the input of Merge for one language.
type MergeInput struct {
	// Language is the language of the tree.
	Language string
	// Generated is the emitter's output.
	Generated codegen.Fs
	// OverlayFiles are the hand-written files of the language. They replace generated files of the same path.
	OverlayFiles codegen.Fs
	// Preserve holds doublestar globs of paths whose previous contents are kept as they are.
	Preserve []string
	// Previous is the tree currently on disk. It supplies preserved files and regions.
	Previous codegen.Fs
}

// Merge returns the tree to write for one language. Overlay files and preserved paths win over generated content.
// Every other generated file gets the preserved regions of its previous version spliced in.
func Merge(ctx context.Context, in MergeInput) (codegen.Fs, error) {
	for _, pattern := range in.Preserve {
		if !doublestar.ValidatePattern(pattern) {
			return nil, &OverlayConflictError{
				Language: in.Language,
				Reason:   fmt.Sprintf("invalid preserve pattern %q", pattern),
			}
		}
	}

	result := codegen.Fs{}
	for _, p := range in.Generated.SortedPaths() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fresh := in.Generated[p]
		if _, ok := in.OverlayFiles[p]; ok {
			glog.V(3).Infof("%s: overlay replaces %s", in.Language, p)
			continue
		}
		if prev, ok := in.Previous[p]; ok && preserved(in.Preserve, p) {
			glog.V(3).Infof("%s: keeping %s", in.Language, p)
			result[p] = prev
			continue
		}

		merged, err := spliceRegions(string(in.Previous[p]), string(fresh))
		if err != nil {
			var re *regionError
			if errors.As(err, &re) {
				return nil, &OverlayConflictError{Language: in.Language, Path: p, Region: re.region, Reason: re.reason}
			}
			return nil, err
		}
		result[p] = []byte(merged)
	}

	// Preserved files that the emitters no longer produce stay as well.
	for _, p := range in.Previous.SortedPaths() {
		if _, ok := result[p]; !ok && preserved(in.Preserve, p) {
			result[p] = in.Previous[p]
		}
	}
	for _, p := range in.OverlayFiles.SortedPaths() {
		result[p] = in.OverlayFiles[p]
	}
	return result, nil
}

func preserved(patterns []string, p string) bool {
	for _, pattern := range patterns {
		// Patterns are validated by Merge.
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

// Load reads the overlay files of a language, i.e. every file below <root>/<language>. A missing directory yields no
// overlays.
func Load(fs afero.Fs, root, language string) (codegen.Fs, error) {
	if root == "" {
		return codegen.Fs{}, nil
	}
	files, err := utilafero.ReadTree(fs, filepath.Join(root, language), nil)
	if err != nil {
		return nil, fmt.Errorf("reading %s overlays: %w", language, err)
	}
	return codegen.Fs(files), nil
}
