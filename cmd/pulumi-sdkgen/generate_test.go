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

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/output"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/schema"
	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/testing/test"
)

// newTestFs reads fixtures from disk and keeps every write in memory.
func newTestFs() afero.Fs {
	return afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewMemMapFs())
}

func testConfigFor(name string, languages ...string) config {
	return config{
		Schema:    test.SchemaPath(name),
		Deps:      filepath.Join(test.TestdataPath(), "deps"),
		Out:       "/sdkgen-out",
		Languages: languages,
	}
}

func TestRunGenerate(t *testing.T) {
	t.Parallel()

	fs := newTestFs()
	cfg := testConfigFor("awsx.json", "go", "nodejs")

	var out bytes.Buffer
	require.NoError(t, runGenerate(context.Background(), fs, cfg, &out))
	assert.Regexp(t, `(?m)^go: \d+ written, 0 unchanged, 0 removed$`, out.String())
	assert.Regexp(t, `(?m)^nodejs: \d+ written, 0 unchanged, 0 removed$`, out.String())

	exists, err := afero.Exists(fs, "/sdkgen-out/go/awsx/ec2/vpc.go")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = afero.Exists(fs, "/sdkgen-out/python")
	require.NoError(t, err)
	assert.False(t, exists)

	out.Reset()
	require.NoError(t, runGenerate(context.Background(), fs, cfg, &out))
	assert.Regexp(t, `(?m)^go: 0 written, \d+ unchanged, 0 removed$`, out.String())

	out.Reset()
	cfg.Check = true
	require.NoError(t, runGenerate(context.Background(), fs, cfg, &out))
	assert.Equal(t, "go: up to date\nnodejs: up to date\n", out.String())
}

func TestRunGenerateCheckDrift(t *testing.T) {
	t.Parallel()

	fs := newTestFs()
	cfg := testConfigFor("awsx.json", "nodejs")
	require.NoError(t, runGenerate(context.Background(), fs, cfg, &bytes.Buffer{}))
	require.NoError(t, afero.WriteFile(fs, "/sdkgen-out/nodejs/ec2/vpc.ts", []byte("tampered\n"), 0o600))

	var out bytes.Buffer
	cfg.Check = true
	err := runGenerate(context.Background(), fs, cfg, &out)
	var drift *output.DriftError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, "nodejs", drift.Language)
	assert.Equal(t, "nodejs: 1 files out of date\n    ec2/vpc.ts\n", out.String())

	contents, err := afero.ReadFile(fs, "/sdkgen-out/nodejs/ec2/vpc.ts")
	require.NoError(t, err)
	assert.Equal(t, "tampered\n", string(contents))
}

func TestRunGenerateAllLanguages(t *testing.T) {
	t.Parallel()

	fs := newTestFs()
	var out bytes.Buffer
	require.NoError(t, runGenerate(context.Background(), fs, testConfigFor("awsx.json", "all"), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	for i, lang := range []string{"dotnet", "go", "nodejs", "python"} {
		assert.True(t, strings.HasPrefix(lines[i], lang+": "), lines[i])
	}
}

func TestRunGenerateUnsupportedFeature(t *testing.T) {
	t.Parallel()

	fs := newTestFs()
	var out bytes.Buffer
	err := runGenerate(context.Background(), fs, testConfigFor("asset.json"), &out)

	var unsupported *codegen.UnsupportedFeatureError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, out.String(), "dotnet: failed\n")
	assert.Regexp(t, `(?m)^nodejs: \d+ written`, out.String())
}

func TestRunGenerateRequiresSettings(t *testing.T) {
	t.Parallel()

	fs := newTestFs()
	err := runGenerate(context.Background(), fs, config{Out: "/sdkgen-out"}, &bytes.Buffer{})
	assert.EqualError(t, err, "a schema must be specified with --schema")

	err = runGenerate(context.Background(), fs, config{Schema: test.SchemaPath("awsx.json")}, &bytes.Buffer{})
	assert.EqualError(t, err, "an output directory must be specified with --out")

	cfg := testConfigFor("awsx.json", "java")
	err = runGenerate(context.Background(), fs, cfg, &bytes.Buffer{})
	assert.ErrorContains(t, err, `unknown language "java"`)
}

func TestRunValidate(t *testing.T) {
	t.Parallel()

	fs := newTestFs()
	var out bytes.Buffer
	require.NoError(t, runValidate(fs, testConfigFor("awsx.json"), &out))
	assert.Regexp(t, `^awsx: \d+ resources, \d+ types, \d+ functions\n$`, out.String())

	cfg := testConfigFor("bad-unknown-key.json")
	cfg.Strict = true
	err := runValidate(fs, cfg, &bytes.Buffer{})
	var schemaErr *schema.SchemaError
	assert.ErrorAs(t, err, &schemaErr)

	err = runValidate(fs, config{}, &bytes.Buffer{})
	assert.EqualError(t, err, "a schema must be specified with --schema")
}

func TestGenerateCommand(t *testing.T) {
	t.Parallel()

	fs := newTestFs()
	cmd, cleanup := NewSDKGenCmd(fs)
	defer cleanup()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"generate",
		"--schema", test.SchemaPath("awsx.json"),
		"--deps", filepath.Join(test.TestdataPath(), "deps"),
		"--out", "/sdkgen-out",
		"--language", "python",
	})
	require.NoError(t, cmd.Execute())
	assert.Regexp(t, `^python: \d+ written, 0 unchanged, 0 removed\n$`, out.String())

	exists, err := afero.Exists(fs, "/sdkgen-out/python/pulumi_awsx/__init__.py")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRootCommand(t *testing.T) {
	t.Parallel()

	cmd, cleanup := NewSDKGenCmd(afero.NewMemMapFs())
	defer cleanup()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"generate", "validate"}, names)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("logtostderr"))
}
