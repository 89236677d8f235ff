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

// Package pyproject models the parts of pyproject.toml that generated packages write.
//
// https://packaging.python.org/en/latest/specifications/declaring-project-metadata/
package pyproject

// Schema is the root of a pyproject.toml document.
type Schema struct {
	Project     *Project     `toml:"project,omitempty"`
	BuildSystem *BuildSystem `toml:"build-system,omitempty"`
	Tool        *Tool        `toml:"tool,omitempty"`
}

// Project holds the core package metadata.
type Project struct {
	Name         string   `toml:"name"` // name must always be provided
	Description  string   `toml:"description,omitempty"`
	Dependencies []string `toml:"dependencies,omitempty"`
	// These are keywords used in package search.
	Keywords []string `toml:"keywords,omitempty"`
	License  *License `toml:"license,omitempty"`
	// README is a path to a .md file or a .rst file
	README string `toml:"readme,omitempty"`
	// The version constraint e.g. ">=3.8"
	RequiresPython string `toml:"requires-python,omitempty"`
	// URLs holds links to the project homepage and repository.
	URLs    map[string]string `toml:"urls,omitempty"`
	Version string            `toml:"version,omitempty"`
}

// The license instance must populate either file or text, but not both.
type License struct {
	File string `toml:"file,omitempty"`
	Text string `toml:"text,omitempty"`
}

// BuildSystem names the PEP 517 backend.
type BuildSystem struct {
	Requires     []string `toml:"requires,omitempty"`
	BuildBackend string   `toml:"build-backend,omitempty"`
}

type Tool struct {
	Setuptools *Setuptools `toml:"setuptools,omitempty"`
}

type Setuptools struct {
	// PackageData maps a package to the non-code files shipped with it.
	PackageData map[string][]string `toml:"package-data,omitempty"`
}
