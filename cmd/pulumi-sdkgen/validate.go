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
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pulumi/pulumi-sdkgen/pkg/sdkgen"
	"github.com/pulumi/pulumi-sdkgen/pkg/util/cmdutil"
)

func newValidateCmd(fs afero.Fs) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Args:  cobra.NoArgs,
		Short: "Check a package schema for errors",
		Long: "Check a package schema for errors.\n" +
			"\n" +
			"The schema is parsed, checked against the metaschema, and every type reference is resolved.\n" +
			"Nothing is written.",
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(fs, configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return runValidate(fs, cfg, cmd.OutOrStdout())
		}),
	}

	cmd.Flags().StringVar(&configPath, "config", "",
		"Read settings from this file instead of sdkgen.yaml")
	cmd.Flags().StringP("schema", "s", "",
		"The package schema, in JSON or YAML")
	cmd.Flags().String("deps", "",
		"The directory holding dependency schemas as <name>/v<version>/schema.json")
	cmd.Flags().Bool("strict", false,
		"Reject unknown schema properties")

	return cmd
}

func runValidate(fs afero.Fs, cfg config, w io.Writer) error {
	if cfg.Schema == "" {
		return errors.New("a schema must be specified with --schema")
	}

	pkg, err := sdkgen.LoadPackage(fs, cfg.Schema, sdkgen.LoadOptions{Strict: cfg.Strict, DepsDir: cfg.Deps})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d resources, %d types, %d functions\n",
		pkg.Name, len(pkg.Resources), len(pkg.Types), len(pkg.Functions))
	return nil
}
