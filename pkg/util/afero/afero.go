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

package afero

import (
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// ReadTree reads every regular file below root into a map keyed by slash-separated paths relative to root. Files for
// which keep returns false are skipped. A missing root yields an empty tree.
func ReadTree(fs afero.Fs, root string, keep func(rel string, info os.FileInfo) bool) (map[string][]byte, error) {
	files := map[string][]byte{}
	if ok, err := afero.DirExists(fs, root); err != nil || !ok {
		return files, err
	}

	err := afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if keep != nil && !keep(rel, info) {
			return nil
		}
		contents, err := afero.ReadFile(fs, p)
		if err != nil {
			return err
		}
		files[rel] = contents
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// WriteTree writes files below root, creating intermediate directories. Paths are slash-separated and relative to
// root. Files are written in path order.
func WriteTree(fs afero.Fs, root string, files map[string][]byte, perm os.FileMode) error {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		dst := filepath.Join(root, filepath.FromSlash(p))
		if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := afero.WriteFile(fs, dst, files[p], perm); err != nil {
			return err
		}
	}
	return nil
}

// PruneEmptyDirs removes the parent directories of rel, deepest first, as long as they are empty and below root.
func PruneEmptyDirs(fs afero.Fs, root, rel string) error {
	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		full := filepath.Join(root, filepath.FromSlash(dir))
		empty, err := afero.IsEmpty(fs, full)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		if !empty {
			return nil
		}
		if err := fs.Remove(full); err != nil {
			return err
		}
	}
	return nil
}
