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

// Package output writes generated SDK trees to disk.
package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/natefinch/atomic"
	"github.com/spf13/afero"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	utilafero "github.com/pulumi/pulumi-sdkgen/pkg/util/afero"
	"github.com/pulumi/pulumi-sdkgen/pkg/util/contract"
)

// Writer lays out language trees below a root directory as <root>/<language>/<path>.
type Writer struct {
	fs   afero.Fs
	root string
	tool string
}

// NewWriter returns a Writer for the given filesystem and root. tool names the generator in file headers.
func NewWriter(fs afero.Fs, root, tool string) *Writer {
	contract.Requiref(fs != nil, "fs", "must not be nil")
	return &Writer{fs: fs, root: root, tool: tool}
}

// Dir returns the directory of a language tree.
func (w *Writer) Dir(lang string) string {
	return filepath.Join(w.root, lang)
}

// Read returns the tree of a language as it is on disk, without the manifest.
func (w *Writer) Read(lang string) (codegen.Fs, error) {
	files, err := utilafero.ReadTree(w.fs, w.Dir(lang), func(rel string, _ os.FileInfo) bool {
		return rel != ManifestFile
	})
	if err != nil {
		return nil, err
	}
	return codegen.Fs(files), nil
}

// WriteOption configures a Write or Check.
type WriteOption func(*writeOptions)

type writeOptions struct {
	handwritten codegen.StringSet
}

// Handwritten marks paths that must be written as they are, without a generated-code header.
func Handwritten(paths codegen.StringSet) WriteOption {
	return func(o *writeOptions) {
		o.handwritten = paths
	}
}

// WriteResult summarizes a Write.
type WriteResult struct {
	// Written lists the files that were created or changed.
	Written []string
	// Unchanged lists the files that already had the right contents.
	Unchanged []string
	// Removed lists the files of the previous run that are no longer produced.
	Removed []string
}

// Changed reports whether the Write touched the tree.
func (r *WriteResult) Changed() bool {
	return len(r.Written) > 0 || len(r.Removed) > 0
}

// render returns the final contents of every file and the manifest.
func (w *Writer) render(files codegen.Fs, opts []WriteOption) codegen.Fs {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}

	rendered := codegen.Fs{}
	paths := files.SortedPaths()
	for _, p := range paths {
		contract.Requiref(p != ManifestFile, "files", "must not contain %s", ManifestFile)
		if o.handwritten.Has(p) {
			rendered[p] = files[p]
		} else {
			rendered[p] = stamp(w.tool, p, files[p])
		}
	}
	rendered[ManifestFile] = renderManifest(w.tool, paths)
	return rendered
}

// previousManifest returns the paths written by the last run, if any.
func (w *Writer) previousManifest(lang string) (codegen.StringSet, error) {
	contents, err := afero.ReadFile(w.fs, filepath.Join(w.Dir(lang), ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return codegen.NewStringSet(), nil
		}
		return nil, err
	}
	return parseManifest(contents), nil
}

func (w *Writer) current(lang, p string) ([]byte, bool, error) {
	contents, err := afero.ReadFile(w.fs, filepath.Join(w.Dir(lang), filepath.FromSlash(p)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return contents, true, nil
}

// Write replaces the tree of a language with files. Changed files are staged next to the tree first; the context is
// honored until the staged files start to be swapped into place. Files with unchanged contents are left alone and
// files written by the previous run that are no longer produced are removed.
func (w *Writer) Write(ctx context.Context, lang string, files codegen.Fs, opts ...WriteOption) (*WriteResult, error) {
	rendered := w.render(files, opts)
	dir := w.Dir(lang)

	previous, err := w.previousManifest(lang)
	if err != nil {
		return nil, fmt.Errorf("reading %s manifest: %w", lang, err)
	}

	if err := w.fs.MkdirAll(w.root, 0o755); err != nil {
		return nil, err
	}
	staging, err := afero.TempDir(w.fs, w.root, "."+lang+"-staging-")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	defer func() {
		if err := w.fs.RemoveAll(staging); err != nil {
			glog.Warningf("removing %s: %v", staging, err)
		}
	}()

	result := &WriteResult{}
	staged := codegen.Fs{}
	for _, p := range rendered.SortedPaths() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		existing, ok, err := w.current(lang, p)
		if err != nil {
			return nil, err
		}
		if ok && bytes.Equal(existing, rendered[p]) {
			if p != ManifestFile {
				result.Unchanged = append(result.Unchanged, p)
			}
			continue
		}
		staged[p] = rendered[p]
	}
	if err := utilafero.WriteTree(w.fs, staging, staged, 0o644); err != nil {
		return nil, fmt.Errorf("staging %s: %w", lang, err)
	}

	// Last chance to back out. From here on the tree is brought up to date.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, p := range staged.SortedPaths() {
		dst := filepath.Join(dir, filepath.FromSlash(p))
		if err := w.swap(filepath.Join(staging, filepath.FromSlash(p)), dst); err != nil {
			return nil, fmt.Errorf("writing %s: %w", dst, err)
		}
		if p != ManifestFile {
			glog.V(3).Infof("%s: wrote %s", lang, p)
			result.Written = append(result.Written, p)
		}
	}

	for _, p := range previous.SortedValues() {
		if _, ok := rendered[p]; ok || !safeRelative(p) {
			continue
		}
		err := w.fs.Remove(filepath.Join(dir, filepath.FromSlash(p)))
		switch {
		case err == nil:
			glog.V(3).Infof("%s: removed %s", lang, p)
			result.Removed = append(result.Removed, p)
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("removing %s: %w", p, err)
		}
		if err := utilafero.PruneEmptyDirs(w.fs, dir, p); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// swap moves a staged file into place. On the OS filesystem the replacement is atomic.
func (w *Writer) swap(staged, dst string) error {
	if err := w.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if _, ok := w.fs.(*afero.OsFs); ok {
		return atomic.ReplaceFile(staged, dst)
	}
	if err := w.fs.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return w.fs.Rename(staged, dst)
}

// safeRelative reports whether a manifest entry stays inside the tree.
func safeRelative(p string) bool {
	clean := path.Clean(p)
	return clean == p && !path.IsAbs(p) && clean != ".." && !strings.HasPrefix(clean, "../")
}
