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
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessageFlattensMultierror(t *testing.T) {
	t.Parallel()

	single := multierror.Append(nil, stderrors.New("only"))
	assert.Equal(t, "only", errorMessage(single))

	multi := multierror.Append(nil, stderrors.New("first"), stderrors.New("second"))
	assert.Equal(t, "2 errors occurred:\n    0) first\n    1) second", errorMessage(multi))
}

func TestDetailedErrorIncludesStack(t *testing.T) {
	t.Parallel()

	err := errors.Wrap(stderrors.New("boom"), "generating")
	msg := DetailedError(err)
	assert.Contains(t, msg, "generating: boom")
	assert.Contains(t, msg, "TestDetailedErrorIncludesStack")

	plain := stderrors.New("plain")
	assert.Equal(t, "plain", DetailedError(plain))
}

func TestDiagnosticsWriteToWriter(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	prev := SetDiagWriter(&buf)
	defer SetDiagWriter(prev)

	Errorf("schema %q is invalid", "awsx")
	Warningf("unknown key")
	assert.Equal(t, "error: schema \"awsx\" is invalid\nwarning: unknown key\n", buf.String())
}
