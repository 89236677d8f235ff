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

// Package test holds the schema fixtures and helpers shared by the code generator tests.
package test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
)

// TestdataPath returns the absolute path of the fixture directory.
func TestdataPath() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("cannot locate test fixtures")
	}
	return filepath.Join(filepath.Dir(file), "testdata")
}

// SchemaPath returns the absolute path of a fixture schema.
func SchemaPath(name string) string {
	return filepath.Join(TestdataPath(), name)
}

// LoadSchema reads and binds a fixture schema. Dependencies are loaded from the fixture's deps directory.
func LoadSchema(name string) (*schema.Package, error) {
	fs := afero.NewOsFs()
	spec, _, err := schema.ReadSpec(fs, SchemaPath(name), schema.LoadOptions{})
	if err != nil {
		return nil, err
	}
	loader := schema.NewDirLoader(fs, filepath.Join(TestdataPath(), "deps"), schema.LoadOptions{})
	pkg, _, err := schema.BindSpec(*spec, schema.BindOptions{Loader: loader})
	return pkg, err
}

// MustLoadSchema is LoadSchema for fixtures that are known to be valid.
func MustLoadSchema(t testing.TB, name string) *schema.Package {
	t.Helper()
	pkg, err := LoadSchema(name)
	require.NoError(t, err)
	return pkg
}

// Emit runs an emitter over a fixture schema with no overlays.
func Emit(t testing.TB, emitter codegen.Emitter, name string) (*codegen.EmitResult, error) {
	t.Helper()
	pkg := MustLoadSchema(t, name)
	ectx := emitter.NewContext(pkg, codegen.NewStringSet())
	return emitter.Emit(context.Background(), pkg, ectx)
}

// MustEmit is Emit for fixtures the emitter is expected to support.
func MustEmit(t testing.TB, emitter codegen.Emitter, name string) codegen.Fs {
	t.Helper()
	result, err := Emit(t, emitter, name)
	require.NoError(t, err)
	return result.Files
}

// File returns the contents of a generated file, failing the test if it is missing.
func File(t testing.TB, files codegen.Fs, path string) string {
	t.Helper()
	contents, ok := files[path]
	if !ok {
		require.Failf(t, "missing file", "%s was not generated; have %v", path, files.SortedPaths())
	}
	return string(contents)
}
