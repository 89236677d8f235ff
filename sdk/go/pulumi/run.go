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

package pulumi

import (
	"context"

	multierror "github.com/hashicorp/go-multierror"
)

// RunInfo contains all the metadata about a run request.
type RunInfo struct {
	Project string
	Stack   string
	Monitor ResourceMonitor
}

// RunOption is used to control the behavior of RunErr and RunWithContext.
type RunOption func(*RunInfo)

// RunFunc executes the body of a Pulumi program.
type RunFunc func(ctx *Context) error

// WithMonitor runs the program against the given resource monitor.
func WithMonitor(project, stack string, monitor ResourceMonitor) RunOption {
	return func(info *RunInfo) {
		info.Project, info.Stack, info.Monitor = project, stack, monitor
	}
}

// RunErr executes the body of a Pulumi program, granting it access to a deployment context that it may use to
// register resources. It returns once every registration has been answered.
func RunErr(body RunFunc, opts ...RunOption) error {
	var info RunInfo
	for _, o := range opts {
		o(&info)
	}

	ctx, err := NewContext(context.Background(), info)
	if err != nil {
		return err
	}
	return RunWithContext(ctx, body)
}

// RunWithContext runs the body of a Pulumi program using the given Context for information about the target stack,
// configuration, and engine connection.
func RunWithContext(ctx *Context, body RunFunc) error {
	var result error
	if err := body(ctx); err != nil {
		result = multierror.Append(result, err)
	}

	// Ensure all outstanding registrations have completed before returning.
	if err := ctx.Wait(); err != nil {
		result = multierror.Append(result, err)
	}
	return result
}
