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

package sdkgen

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/output"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/overlay"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/testing/test"
	utilafero "github.com/pulumi/pulumi-sdkgen/pkg/util/afero"
)

func readTree(t *testing.T, fs afero.Fs, root string) map[string][]byte {
	t.Helper()
	files, err := utilafero.ReadTree(fs, root, nil)
	require.NoError(t, err)
	return files
}

func TestLoadPackage(t *testing.T) {
	t.Parallel()

	pkg, err := LoadPackage(afero.NewOsFs(), test.SchemaPath("awsx.json"), LoadOptions{
		DepsDir: filepath.Join(test.TestdataPath(), "deps"),
	})
	require.NoError(t, err)
	assert.Equal(t, "awsx", pkg.Name)

	yamlPkg, err := LoadPackage(afero.NewOsFs(), test.SchemaPath("awsx.yaml"), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, len(pkg.Resources), len(yamlPkg.Resources))

	_, err = LoadPackage(afero.NewOsFs(), test.SchemaPath("bad-unknown-key.json"), LoadOptions{Strict: true})
	var schemaErr *schema.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestNewEmitter(t *testing.T) {
	t.Parallel()

	for _, lang := range Languages {
		e, err := NewEmitter(lang)
		require.NoError(t, err)
		assert.Equal(t, lang, e.Language())
	}
	_, err := NewEmitter("java")
	assert.EqualError(t, err, `unknown language "java"; expected one of [dotnet go nodejs python]`)
}

func TestGenerateAllLanguages(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	fs := afero.NewMemMapFs()
	report, err := Generate(context.Background(), pkg, Options{Fs: fs, Out: "/sdk"})
	require.NoError(t, err)
	require.NoError(t, report.Err())

	require.Len(t, report.Languages, 4)
	for i, lang := range Languages {
		l := report.Languages[i]
		assert.Equal(t, lang, l.Language)
		require.NotNil(t, l.Write, lang)
		assert.NotEmpty(t, l.Write.Written, lang)

		// Every language binds the same tokens.
		assert.Equal(t, report.Languages[0].Tokens, l.Tokens, lang)

		manifest, err := afero.Exists(fs, filepath.Join("/sdk", lang, output.ManifestFile))
		require.NoError(t, err)
		assert.True(t, manifest, lang)
	}

	for _, p := range []string{
		"/sdk/dotnet/Pulumi.Awsx.csproj",
		"/sdk/go/awsx/ec2/vpc.go",
		"/sdk/nodejs/package.json",
		"/sdk/python/pyproject.toml",
	} {
		exists, err := afero.Exists(fs, p)
		require.NoError(t, err)
		assert.True(t, exists, p)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	fs := afero.NewMemMapFs()
	_, err := Generate(context.Background(), pkg, Options{Fs: fs, Out: "/sdk"})
	require.NoError(t, err)
	first := readTree(t, fs, "/sdk")

	report, err := Generate(context.Background(), pkg, Options{Fs: fs, Out: "/sdk"})
	require.NoError(t, err)
	for _, l := range report.Languages {
		assert.False(t, l.Write.Changed(), l.Language)
	}
	assert.Equal(t, first, readTree(t, fs, "/sdk"))
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	reference := afero.NewMemMapFs()
	_, err := Generate(context.Background(), pkg, Options{Fs: reference, Out: "/sdk"})
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		languages := rapid.SliceOfDistinct(rapid.SampledFrom(Languages), rapid.ID[string]).Draw(t, "languages")
		parallelism := rapid.IntRange(0, 4).Draw(t, "parallelism")

		fs := afero.NewMemMapFs()
		_, err := Generate(context.Background(), pkg, Options{
			Fs:          fs,
			Out:         "/sdk",
			Languages:   languages,
			Parallelism: parallelism,
		})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		for _, lang := range languages {
			want, err := utilafero.ReadTree(reference, filepath.Join("/sdk", lang), nil)
			if err != nil {
				t.Fatalf("read reference: %v", err)
			}
			got, err := utilafero.ReadTree(fs, filepath.Join("/sdk", lang), nil)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if !assert.ObjectsAreEqual(want, got) {
				t.Fatalf("%s: output differs from the reference run", lang)
			}
		}
	})
}

func TestPreservedRegionsSurvive(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	fs := afero.NewMemMapFs()
	opts := Options{Fs: fs, Out: "/sdk", Languages: []string{"nodejs", "python"}}
	_, err := Generate(context.Background(), pkg, opts)
	require.NoError(t, err)

	const begin = "// sdkgen:preserve-begin extensions\n"
	index := "/sdk/nodejs/ec2/index.ts"
	contents, err := afero.ReadFile(fs, index)
	require.NoError(t, err)
	require.Contains(t, string(contents), begin)
	edited := strings.Replace(string(contents), begin, begin+"export * from \"./subnets\";\n", 1)
	require.NoError(t, afero.WriteFile(fs, index, []byte(edited), 0o644))

	report, err := Generate(context.Background(), pkg, opts)
	require.NoError(t, err)
	assert.Equal(t, edited, string(readTree(t, fs, "/sdk/nodejs")["ec2/index.ts"]))
	assert.False(t, report.Languages[0].Write.Changed())
}

func TestPreserveGlobs(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	fs := afero.NewMemMapFs()
	opts := Options{Fs: fs, Out: "/sdk", Languages: []string{"dotnet"}, Preserve: []string{"README.md"}}
	_, err := Generate(context.Background(), pkg, opts)
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "/sdk/dotnet/README.md", []byte("Hand-written readme.\n"), 0o644))
	_, err = Generate(context.Background(), pkg, opts)
	require.NoError(t, err)

	contents, err := afero.ReadFile(fs, "/sdk/dotnet/README.md")
	require.NoError(t, err)
	assert.Equal(t, "Hand-written readme.\n", string(contents))
}

func TestUnsupportedFeatureFailsOneLanguage(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "asset.json")
	fs := afero.NewMemMapFs()
	report, err := Generate(context.Background(), pkg, Options{Fs: fs, Out: "/sdk"})
	require.NoError(t, err)

	failed := map[string]bool{}
	for _, l := range report.Languages {
		if l.Err != nil {
			var unsupported *codegen.UnsupportedFeatureError
			require.ErrorAs(t, l.Err, &unsupported)
			assert.Equal(t, codegen.FeatureAsset, unsupported.Feature)
			assert.Nil(t, l.Write)
			failed[l.Language] = true
		} else {
			assert.NotNil(t, l.Write)
		}
	}
	assert.Equal(t, map[string]bool{"dotnet": true, "go": true}, failed)

	var unsupported *codegen.UnsupportedFeatureError
	assert.ErrorAs(t, report.Err(), &unsupported)

	for lang, wantExists := range map[string]bool{"dotnet": false, "go": false, "nodejs": true, "python": true} {
		exists, err := afero.DirExists(fs, filepath.Join("/sdk", lang))
		require.NoError(t, err)
		assert.Equal(t, wantExists, exists, lang)
	}
}

func TestMissingOverlaysCommitNothing(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "overlay.json")
	fs := afero.NewMemMapFs()
	_, err := Generate(context.Background(), pkg, Options{Fs: fs, Out: "/sdk", Overlays: "/overlays"})

	var conflict *overlay.OverlayConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "overlay resource has no overlay file", conflict.Reason)

	exists, err := afero.Exists(fs, "/sdk")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOverlaysAreWritten(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "overlay.json")
	fs := afero.NewMemMapFs()
	overlays := map[string]string{
		"dotnet": "Cloudtrail/Trail.cs",
		"go":     "awsx/cloudtrail/trail.go",
		"nodejs": "cloudtrail/trail.ts",
		"python": "pulumi_awsx/cloudtrail/trail.py",
	}
	for lang, p := range overlays {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/overlays", lang, p), []byte("hand-written trail\n"), 0o644))
	}

	report, err := Generate(context.Background(), pkg, Options{Fs: fs, Out: "/sdk", Overlays: "/overlays"})
	require.NoError(t, err)
	require.NoError(t, report.Err())

	for lang, p := range overlays {
		contents, err := afero.ReadFile(fs, filepath.Join("/sdk", lang, p))
		require.NoError(t, err, lang)
		// Overlay files are written verbatim, without a generated-code header.
		assert.Equal(t, "hand-written trail\n", string(contents), lang)
	}
}

func TestCheckMode(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	fs := afero.NewMemMapFs()
	_, err := Generate(context.Background(), pkg, Options{Fs: fs, Out: "/sdk", Languages: []string{"go", "python"}})
	require.NoError(t, err)

	opts := Options{Fs: fs, Out: "/sdk", Languages: []string{"go", "python"}, Check: true}
	report, err := Generate(context.Background(), pkg, opts)
	require.NoError(t, err)
	assert.NoError(t, report.Err())

	require.NoError(t, afero.WriteFile(fs, "/sdk/python/pyproject.toml", []byte("edited\n"), 0o644))
	before := readTree(t, fs, "/sdk")

	report, err = Generate(context.Background(), pkg, opts)
	require.NoError(t, err)
	assert.NoError(t, report.Languages[0].Err)

	var drift *output.DriftError
	require.ErrorAs(t, report.Languages[1].Err, &drift)
	assert.Equal(t, "python", drift.Language)
	require.Len(t, drift.Files, 1)
	assert.Equal(t, "pyproject.toml", drift.Files[0].Path)

	assert.Equal(t, before, readTree(t, fs, "/sdk"))
}

func TestGenerateCanceled(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fs := afero.NewMemMapFs()
	_, err := Generate(ctx, pkg, Options{Fs: fs, Out: "/sdk"})
	assert.ErrorIs(t, err, context.Canceled)

	exists, err := afero.Exists(fs, "/sdk")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUnknownLanguage(t *testing.T) {
	t.Parallel()

	pkg := test.MustLoadSchema(t, "awsx.json")
	_, err := Generate(context.Background(), pkg, Options{Fs: afero.NewMemMapFs(), Out: "/sdk", Languages: []string{"java"}})
	assert.ErrorContains(t, err, `unknown language "java"`)
}
