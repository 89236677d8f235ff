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

package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/blang/semver"
	"github.com/golang/glog"
	"github.com/spf13/afero"
)

// Loader loads the schemas of dependency packages.
type Loader interface {
	LoadPackage(pkg string, version *semver.Version) (*Package, error)
}

// PackageNotFoundError is returned by a Loader that has no schema for the requested package.
type PackageNotFoundError struct {
	Name    string
	Version *semver.Version
	Path    string
}

func (e *PackageNotFoundError) Error() string {
	if e.Version == nil {
		return fmt.Sprintf("no schema for package %q under %s", e.Name, e.Path)
	}
	return fmt.Sprintf("no schema for package %q at version %v under %s", e.Name, e.Version, e.Path)
}

type dirLoader struct {
	m sync.RWMutex

	fs      afero.Fs
	root    string
	opts    LoadOptions
	entries map[string]*Package
}

// NewDirLoader returns a Loader that reads dependency schemas from a directory tree laid out as
// <root>/<name>/v<version>/schema.json (or schema.yaml). Requests without a version read <root>/<name>/schema.json.
// Loaded packages are cached; a Loader may be shared by concurrent binds.
func NewDirLoader(fs afero.Fs, root string, opts LoadOptions) Loader {
	return &dirLoader{
		fs:      fs,
		root:    root,
		opts:    opts,
		entries: map[string]*Package{},
	}
}

func packageIdentity(name string, version *semver.Version) string {
	if version == nil {
		return name
	}
	return name + "@" + version.String()
}

func (l *dirLoader) getPackage(key string) (*Package, bool) {
	l.m.RLock()
	defer l.m.RUnlock()

	p, ok := l.entries[key]
	return p, ok
}

func (l *dirLoader) setPackage(key string, p *Package) *Package {
	l.m.Lock()
	defer l.m.Unlock()

	if p, ok := l.entries[key]; ok {
		return p
	}
	l.entries[key] = p
	return p
}

func (l *dirLoader) LoadPackage(name string, version *semver.Version) (*Package, error) {
	key := packageIdentity(name, version)
	if p, ok := l.getPackage(key); ok {
		return p, nil
	}

	dir := filepath.Join(l.root, name)
	if version != nil {
		dir = filepath.Join(dir, "v"+version.String())
	}

	var path string
	for _, candidate := range []string{"schema.json", "schema.yaml", "schema.yml"} {
		p := filepath.Join(dir, candidate)
		if ok, err := afero.Exists(l.fs, p); err == nil && ok {
			path = p
			break
		}
	}
	if path == "" {
		return nil, &PackageNotFoundError{Name: name, Version: version, Path: l.root}
	}

	data, release, err := l.readSchemaBytes(path)
	if err != nil {
		return nil, err
	}
	defer release()

	glog.V(7).Infof("loading dependency schema %s from %s", key, path)
	spec, _, err := ParseSpec(data, filepath.Ext(path), l.opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	if version != nil && spec.Version == "" {
		spec.Version = version.String()
	}

	// Dependencies of dependencies are not verified; only their own members matter to the caller.
	pkg, _, err := BindSpec(*spec, BindOptions{})
	if err != nil {
		return nil, fmt.Errorf("binding %s: %w", key, err)
	}
	return l.setPackage(key, pkg), nil
}

// readSchemaBytes reads a schema file. Files on the OS filesystem are memory-mapped; the returned release function
// must be called once the bytes are no longer referenced.
func (l *dirLoader) readSchemaBytes(path string) ([]byte, func(), error) {
	if _, isOS := l.fs.(*afero.OsFs); isOS {
		if data, release, ok := mmapSchemaBytes(path); ok {
			return data, release, nil
		}
	}
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &PackageNotFoundError{Name: filepath.Base(filepath.Dir(path)), Path: l.root}
		}
		return nil, nil, err
	}
	return data, func() {}, nil
}
