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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pulumi/pulumi-sdkgen/pkg/codegen/output"
	"github.com/pulumi/pulumi-sdkgen/pkg/sdkgen"
	"github.com/pulumi/pulumi-sdkgen/pkg/util/cmdutil"
)

func newGenerateCmd(fs afero.Fs) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Args:  cobra.NoArgs,
		Short: "Generate language SDKs from a package schema",
		Long: "Generate language SDKs from a package schema.\n" +
			"\n" +
			"The schema is validated as if by `pulumi-sdkgen validate` prior to generation. Each language is\n" +
			"written to <out>/<language>; hand-written overlays are read from <overlays>/<language>.\n" +
			"\n" +
			"Valid languages are dotnet, go, nodejs, and python. All of them are generated if none is given.\n" +
			"\n" +
			"With --check nothing is written; the command fails if any generated file is out of date.",
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(fs, configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), fs, cfg, cmd.OutOrStdout())
		}),
	}

	cmd.Flags().StringVar(&configPath, "config", "",
		"Read settings from this file instead of sdkgen.yaml")
	cmd.Flags().StringP("schema", "s", "",
		"The package schema, in JSON or YAML")
	cmd.Flags().StringSliceP("language", "l", nil,
		"The languages to generate; may be repeated or comma-separated")
	cmd.Flags().StringP("out", "o", "",
		"The output directory")
	cmd.Flags().String("overlays", "",
		"The directory holding hand-written overlays, one subdirectory per language")
	cmd.Flags().String("deps", "",
		"The directory holding dependency schemas as <name>/v<version>/schema.json")
	cmd.Flags().Bool("strict", false,
		"Reject unknown schema properties")
	cmd.Flags().Bool("check", false,
		"Fail if the generated SDKs differ from the files on disk instead of writing them")
	cmd.Flags().StringSlice("preserve", nil,
		"Glob of generated paths to leave as they are on disk; may be repeated")
	cmd.Flags().Int("parallelism", 0,
		"The number of languages generated at once; 0 means all")

	return cmd
}

func runGenerate(ctx context.Context, fs afero.Fs, cfg config, w io.Writer) error {
	if cfg.Schema == "" {
		return errors.New("a schema must be specified with --schema")
	}
	if cfg.Out == "" {
		return errors.New("an output directory must be specified with --out")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pkg, err := sdkgen.LoadPackage(fs, cfg.Schema, sdkgen.LoadOptions{Strict: cfg.Strict, DepsDir: cfg.Deps})
	if err != nil {
		return err
	}

	languages := cfg.Languages
	for _, l := range languages {
		if l == "all" {
			languages = nil
			break
		}
	}

	report, err := sdkgen.Generate(ctx, pkg, sdkgen.Options{
		Fs:          fs,
		Languages:   languages,
		Out:         cfg.Out,
		Overlays:    cfg.Overlays,
		Preserve:    cfg.Preserve,
		Check:       cfg.Check,
		Parallelism: cfg.Parallelism,
	})
	if err != nil {
		return err
	}

	printReport(w, report, cfg.Check)
	return report.Err()
}

func printReport(w io.Writer, report *sdkgen.Report, check bool) {
	for _, l := range report.Languages {
		var drift *output.DriftError
		switch {
		case errors.As(l.Err, &drift):
			fmt.Fprintf(w, "%s: %d files out of date\n", l.Language, len(drift.Files))
			for _, f := range drift.Files {
				if f.Stale {
					fmt.Fprintf(w, "    %s (no longer generated)\n", f.Path)
				} else {
					fmt.Fprintf(w, "    %s\n", f.Path)
				}
			}
		case l.Err != nil:
			fmt.Fprintf(w, "%s: failed\n", l.Language)
		case check:
			fmt.Fprintf(w, "%s: up to date\n", l.Language)
		case l.Write != nil:
			fmt.Fprintf(w, "%s: %d written, %d unchanged, %d removed\n",
				l.Language, len(l.Write.Written), len(l.Write.Unchanged), len(l.Write.Removed))
		}
	}
}
