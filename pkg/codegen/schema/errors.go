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
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
)

// SchemaError reports a malformed or incomplete schema. It is always fatal.
type SchemaError struct {
	// Path is a JSON pointer to the offending entity, e.g. "#/resources/awsx:ec2:Vpc/requiredInputs".
	Path string
	// Member is the resource, type, or function token that owns the offending entity, if any.
	Member string
	// Constraint describes the violated constraint.
	Constraint string
}

func (e *SchemaError) Error() string {
	if e.Member != "" && !strings.Contains(e.Path, e.Member) {
		return fmt.Sprintf("invalid schema: %s (%s): %s", e.Path, e.Member, e.Constraint)
	}
	return fmt.Sprintf("invalid schema: %s: %s", e.Path, e.Constraint)
}

// UnresolvedTypeError reports a type reference that could not be found in the schema or its declared dependencies.
type UnresolvedTypeError struct {
	// Token is the reference that could not be resolved.
	Token string
	// Chain is the reference chain from the referring resource or function to the missing token, alternating
	// between member tokens and property names.
	Chain []string
	// Reason optionally explains why the reference did not resolve.
	Reason string
}

func (e *UnresolvedTypeError) Error() string {
	msg := fmt.Sprintf("unresolved type reference %q", e.Token)
	if len(e.Chain) > 0 {
		msg += " (via " + strings.Join(e.Chain, " -> ") + ")"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// DiagnosticsError carries every error diagnostic produced while loading or binding a schema. The typed error
// attached to each diagnostic is reachable with errors.As.
type DiagnosticsError struct {
	Diagnostics hcl.Diagnostics

	errs *multierror.Error
}

func newDiagnosticsError(diags hcl.Diagnostics) *DiagnosticsError {
	var errs *multierror.Error
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		if err, ok := d.Extra.(error); ok {
			errs = multierror.Append(errs, err)
		} else {
			errs = multierror.Append(errs, &SchemaError{Path: "#", Constraint: d.Summary})
		}
	}
	return &DiagnosticsError{Diagnostics: diags, errs: errs}
}

func (e *DiagnosticsError) Error() string {
	wrapped := e.errs.WrappedErrors()
	if len(wrapped) == 1 {
		return wrapped[0].Error()
	}
	msgs := make([]string, len(wrapped))
	for i, err := range wrapped {
		msgs[i] = "    " + err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(wrapped), strings.Join(msgs, "\n"))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *DiagnosticsError) Unwrap() error {
	return e.errs
}

// Errors returns the individual typed errors.
func (e *DiagnosticsError) Errors() []error {
	return e.errs.WrappedErrors()
}

func schemaErrorf(path, member, message string, args ...interface{}) *hcl.Diagnostic {
	err := &SchemaError{Path: path, Member: member, Constraint: fmt.Sprintf(message, args...)}
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  path + ": " + err.Constraint,
		Extra:    err,
	}
}

func warningf(path, message string, args ...interface{}) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  path + ": " + fmt.Sprintf(message, args...),
	}
}

func unresolvedError(path string, err *UnresolvedTypeError) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  path + ": " + err.Error(),
		Extra:    err,
	}
}
