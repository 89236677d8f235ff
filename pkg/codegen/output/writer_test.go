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
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
)

const tool = "pulumi-sdkgen"

func readFile(t *testing.T, fs afero.Fs, p string) string {
	t.Helper()
	contents, err := afero.ReadFile(fs, p)
	require.NoError(t, err)
	return string(contents)
}

func TestWriteLayout(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/sdk", tool)
	result, err := w.Write(context.Background(), "python", codegen.Fs{
		"pulumi_awsx/__init__.py": []byte("# coding=utf-8\n# *** WARNING: this file was generated by pulumi-sdkgen. ***\n"),
		"pyproject.toml":          []byte("[project]\nname = \"pulumi_awsx\"\n"),
		"pulumi_awsx/plugin.json": []byte("{}\n"),
		"pulumi_awsx/helpers.py":  []byte("def helper(): pass\n"),
	}, Handwritten(codegen.NewStringSet("pulumi_awsx/helpers.py")))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"pulumi_awsx/__init__.py",
		"pulumi_awsx/helpers.py",
		"pulumi_awsx/plugin.json",
		"pyproject.toml",
	}, result.Written)
	assert.Empty(t, result.Unchanged)
	assert.Empty(t, result.Removed)

	// Files that already carry a header keep it as is.
	assert.Equal(t, "# coding=utf-8\n# *** WARNING: this file was generated by pulumi-sdkgen. ***\n",
		readFile(t, fs, "/sdk/python/pulumi_awsx/__init__.py"))
	assert.Equal(t, "# *** WARNING: this file was generated by pulumi-sdkgen. ***\n"+
		"# *** Do not edit by hand unless you're certain you know what you are doing! ***\n\n"+
		"[project]\nname = \"pulumi_awsx\"\n", readFile(t, fs, "/sdk/python/pyproject.toml"))
	assert.Equal(t, "{}\n", readFile(t, fs, "/sdk/python/pulumi_awsx/plugin.json"))
	assert.Equal(t, "def helper(): pass\n", readFile(t, fs, "/sdk/python/pulumi_awsx/helpers.py"))

	assert.Equal(t, "# Files written by pulumi-sdkgen. Do not edit.\n"+
		"pulumi_awsx/__init__.py\n"+
		"pulumi_awsx/helpers.py\n"+
		"pulumi_awsx/plugin.json\n"+
		"pyproject.toml\n", readFile(t, fs, "/sdk/python/.sdkgen-manifest"))

	// Staging directories are cleaned up.
	entries, err := afero.ReadDir(fs, "/sdk")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "python", entries[0].Name())
}

func TestWriteIsIdempotent(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/sdk", tool)
	files := codegen.Fs{
		"ec2/vpc.ts": []byte("export class Vpc {}\n"),
		"index.ts":   []byte("export * from \"./ec2\";\n"),
	}

	_, err := w.Write(context.Background(), "nodejs", files)
	require.NoError(t, err)
	first, err := w.Read("nodejs")
	require.NoError(t, err)

	result, err := w.Write(context.Background(), "nodejs", files)
	require.NoError(t, err)
	assert.False(t, result.Changed())
	assert.Equal(t, []string{"ec2/vpc.ts", "index.ts"}, result.Unchanged)

	second, err := w.Read("nodejs")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotContains(t, second, ManifestFile)
}

func TestWriteRemovesStaleFiles(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/sdk", tool)
	require.NoError(t, afero.WriteFile(fs, "/sdk/go/notes.md", []byte("kept"), 0o644))

	_, err := w.Write(context.Background(), "go", codegen.Fs{
		"awsx/ec2/vpc.go":        []byte("package ec2\n"),
		"awsx/cloudtrail/a.go":   []byte("package cloudtrail\n"),
		"awsx/cloudtrail/b.go":   []byte("package cloudtrail\n"),
		"awsx/ecr/repository.go": []byte("package ecr\n"),
	})
	require.NoError(t, err)

	result, err := w.Write(context.Background(), "go", codegen.Fs{
		"awsx/ec2/vpc.go":        []byte("package ec2\n\n// Changed.\n"),
		"awsx/ecr/repository.go": []byte("package ecr\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"awsx/ec2/vpc.go"}, result.Written)
	assert.Equal(t, []string{"awsx/ecr/repository.go"}, result.Unchanged)
	assert.Equal(t, []string{"awsx/cloudtrail/a.go", "awsx/cloudtrail/b.go"}, result.Removed)

	exists, err := afero.DirExists(fs, "/sdk/go/awsx/cloudtrail")
	require.NoError(t, err)
	assert.False(t, exists)

	// Files that the writer never wrote are left alone.
	assert.Equal(t, "kept", readFile(t, fs, "/sdk/go/notes.md"))
}

func TestWriteCanceled(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/sdk", tool)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Write(ctx, "dotnet", codegen.Fs{"Ec2/Vpc.cs": []byte("namespace Pulumi.Awsx.Ec2 {}\n")})
	assert.ErrorIs(t, err, context.Canceled)

	exists, err := afero.Exists(fs, "/sdk/dotnet")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWriteOsFs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w := NewWriter(afero.NewOsFs(), root, tool)
	_, err := w.Write(context.Background(), "go", codegen.Fs{"awsx/doc.go": []byte("package awsx\n")})
	require.NoError(t, err)
	_, err = w.Write(context.Background(), "go", codegen.Fs{"awsx/doc.go": []byte("// Package awsx.\npackage awsx\n")})
	require.NoError(t, err)

	assert.Equal(t, "// *** WARNING: this file was generated by pulumi-sdkgen. ***\n"+
		"// *** Do not edit by hand unless you're certain you know what you are doing! ***\n\n"+
		"// Package awsx.\npackage awsx\n", readFile(t, afero.NewOsFs(), filepath.Join(root, "go", "awsx", "doc.go")))
}

func TestCheck(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/sdk", tool)
	files := codegen.Fs{
		"README.md": []byte("Pulumi AWSX\n"),
		"index.ts":  []byte("export * from \"./ec2\";\n"),
		"old.ts":    []byte("export {};\n"),
	}
	_, err := w.Write(context.Background(), "nodejs", files)
	require.NoError(t, err)

	assert.NoError(t, w.Check(context.Background(), "nodejs", files))

	err = w.Check(context.Background(), "nodejs", codegen.Fs{
		"README.md": []byte("Pulumi AWSX components\n"),
		"index.ts":  []byte("export * from \"./ec2\";\n"),
		"new.ts":    []byte("export {};\n"),
	})
	var drift *DriftError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, "nodejs", drift.Language)
	require.Len(t, drift.Files, 3)

	assert.Equal(t, "README.md", drift.Files[0].Path)
	assert.Contains(t, drift.Files[0].Diff, "-Pulumi AWSX%0A")
	assert.Contains(t, drift.Files[0].Diff, "+Pulumi AWSX components%0A")
	assert.Equal(t, "new.ts", drift.Files[1].Path)
	assert.False(t, drift.Files[1].Stale)
	assert.Equal(t, FileDrift{Path: "old.ts", Stale: true}, drift.Files[2])
	assert.EqualError(t, err, "nodejs: 3 generated files are out of date: README.md, new.ts, old.ts")

	// Check never writes.
	assert.Equal(t, "Pulumi AWSX\n", readFile(t, fs, "/sdk/nodejs/README.md"))
}

func TestSafeRelative(t *testing.T) {
	t.Parallel()

	assert.True(t, safeRelative("ec2/vpc.go"))
	assert.False(t, safeRelative("../outside.go"))
	assert.False(t, safeRelative("/etc/passwd"))
	assert.False(t, safeRelative("ec2/../../x"))
}

func TestHasHeader(t *testing.T) {
	t.Parallel()

	assert.True(t, hasHeader([]byte("// *** WARNING: this file was generated by pulumi-sdkgen. ***\n")))
	assert.True(t, hasHeader([]byte("# coding=utf-8\n# *** WARNING: this file was generated by x. ***\n")))
	assert.False(t, hasHeader([]byte("a\nb\nc\n// this file was generated by x\n")))
	assert.False(t, hasHeader(nil))
}
