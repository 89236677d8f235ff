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
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pulumi/pulumi-sdkgen/pkg/util/logging"
)

// NewSDKGenCmd creates the root command. fs is the filesystem schemas are read from and SDKs are written to.
func NewSDKGenCmd(fs afero.Fs) (*cobra.Command, func()) {
	var logFlow bool
	var logToStderr bool
	var verbose int

	cleanup := func() {
		logging.Flush()
	}

	cmd := &cobra.Command{
		Use:           "pulumi-sdkgen",
		Short:         "Generate Pulumi component package SDKs",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: "pulumi-sdkgen - SDK generator for Pulumi component packages\n" +
			"\n" +
			"Given a package schema, pulumi-sdkgen writes client SDKs for .NET, Go, Node.js and Python.\n" +
			"\n" +
			"The most common commands are:\n" +
			"\n" +
			"    - pulumi-sdkgen generate : Generate language SDKs from a schema\n" +
			"    - pulumi-sdkgen validate : Check a schema for errors without generating anything\n" +
			"\n" +
			"Settings may also be read from an sdkgen.yaml file in the working directory.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitLogging(logToStderr, verbose, logFlow)
		},
	}

	cmd.PersistentFlags().BoolVar(&logFlow, "logflow", false,
		"Flow log settings to child processes")
	cmd.PersistentFlags().BoolVar(&logToStderr, "logtostderr", false,
		"Log to stderr instead of to files")
	cmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0,
		"Enable verbose logging (e.g., v=3); anything >3 is very verbose")

	cmd.AddCommand(newGenerateCmd(fs))
	cmd.AddCommand(newValidateCmd(fs))

	return cmd, cleanup
}
