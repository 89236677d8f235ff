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

package cmdutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pulumi/pulumi-sdkgen/pkg/util/logging"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// DetailedError renders an error followed by the stack traces recorded along its cause chain.
func DetailedError(err error) string {
	var b strings.Builder
	b.WriteString(errorMessage(err))

	for depth := 0; ; depth++ {
		st, ok := err.(stackTracer)
		if !ok {
			break
		}
		b.WriteString("\n")
		if depth > 0 {
			b.WriteString("CAUSED BY...\n")
		}
		for _, f := range st.StackTrace() {
			fmt.Fprintf(&b, "%+v\n", f)
		}

		cause := errors.Cause(err)
		if cause == nil || cause == err {
			break
		}
		err = cause
	}
	return b.String()
}

// RunFunc adapts an error-returning command body to cobra. Failures are reported once and the process exits, so
// subcommands never call os.Exit themselves.
func RunFunc(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		err := run(cmd, args)
		if err == nil {
			return
		}
		if logging.LogToStderr {
			ExitError("%s", DetailedError(err))
		}
		glog.V(3).Infof("%s", DetailedError(err))
		ExitError("%s", errorMessage(err))
	}
}

// Exit reports err and exits.
func Exit(err error) {
	ExitError("%s", errorMessage(err))
}

// ExitError prints an error diagnostic and exits with status -1.
func ExitError(msg string, args ...interface{}) {
	exitErrorCode(-1, msg, args...)
}

func exitErrorCode(code int, msg string, args ...interface{}) {
	Errorf(msg, args...)
	logging.Flush()
	os.Exit(code)
}

// errorMessage flattens multierrors into a numbered list.
func errorMessage(err error) string {
	multi, ok := err.(*multierror.Error)
	if !ok {
		return err.Error()
	}

	wrapped := multi.WrappedErrors()
	if len(wrapped) == 1 {
		return errorMessage(wrapped[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:", len(wrapped))
	for i, e := range wrapped {
		fmt.Fprintf(&b, "\n    %d) %s", i, errorMessage(e))
	}
	return b.String()
}
