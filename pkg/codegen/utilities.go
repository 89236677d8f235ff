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
	"fmt"
	"sort"

	"github.com/pulumi/pulumi-sdkgen/pkg/util/contract"
)

type StringSet map[string]struct{}

func NewStringSet(values ...string) StringSet {
	s := StringSet{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (ss StringSet) Add(s string) {
	ss[s] = struct{}{}
}

func (ss StringSet) Any() bool {
	return len(ss) > 0
}

func (ss StringSet) Delete(s string) {
	delete(ss, s)
}

func (ss StringSet) Has(s string) bool {
	_, ok := ss[s]
	return ok
}

func (ss StringSet) SortedValues() []string {
	values := make([]string, 0, len(ss))
	for v := range ss {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Contains returns true if all elements of the subset are also present in the current set. It also returns true
// if subset is empty.
func (ss StringSet) Contains(subset StringSet) bool {
	for v := range subset {
		if !ss.Has(v) {
			return false
		}
	}
	return true
}

// Subtract returns a new string set with all elements of the current set that are not present in the other set.
func (ss StringSet) Subtract(other StringSet) StringSet {
	result := NewStringSet()
	for v := range ss {
		if !other.Has(v) {
			result.Add(v)
		}
	}
	return result
}

var commonEnumNameReplacements = map[string]string{
	"*": "Asterisk",
	"0": "Zero",
	"1": "One",
	"2": "Two",
	"3": "Three",
	"4": "Four",
	"5": "Five",
	"6": "Six",
	"7": "Seven",
	"8": "Eight",
	"9": "Nine",
}

// ExpandShortEnumName spells out enum values that are a single symbol or digit, which would otherwise yield an empty
// or illegal identifier.
func ExpandShortEnumName(name string) string {
	if replacement, ok := commonEnumNameReplacements[name]; ok {
		return replacement
	}
	return name
}

// Fs is an in-memory file tree keyed by slash-separated relative path.
type Fs map[string][]byte

// Set adds a file, failing if the path is already taken.
func (fs Fs) Set(p string, contents []byte) error {
	if _, has := fs[p]; has {
		return fmt.Errorf("duplicate file: %s", p)
	}
	fs[p] = contents
	return nil
}

// Add adds a file. Emitting the same path twice is a programming error.
func (fs Fs) Add(p string, contents []byte) {
	contract.AssertNoErrorf(fs.Set(p, contents), "adding %s", p)
}

// SortedPaths returns the file paths in lexical order.
func (fs Fs) SortedPaths() []string {
	paths := make([]string, 0, len(fs))
	for p := range fs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clone returns a shallow copy of the tree. File contents are shared.
func (fs Fs) Clone() Fs {
	result := make(Fs, len(fs))
	for p, contents := range fs {
		result[p] = contents
	}
	return result
}

// Paths returns the set of file paths.
func (fs Fs) Paths() StringSet {
	result := NewStringSet()
	for p := range fs {
		result.Add(p)
	}
	return result
}
