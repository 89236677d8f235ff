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
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	diagMu  sync.Mutex
	diagOut io.Writer = color.Error
)

// SetDiagWriter redirects diagnostics, returning the previous writer.
func SetDiagWriter(w io.Writer) io.Writer {
	diagMu.Lock()
	defer diagMu.Unlock()
	prev := diagOut
	diagOut = w
	return prev
}

// Errorf prints an error diagnostic to the error stream.
func Errorf(msg string, args ...interface{}) {
	printDiag(color.New(color.FgRed, color.Bold), "error", msg, args...)
}

// Warningf prints a warning diagnostic to the error stream.
func Warningf(msg string, args ...interface{}) {
	printDiag(color.New(color.FgYellow), "warning", msg, args...)
}

func printDiag(c *color.Color, prefix, msg string, args ...interface{}) {
	diagMu.Lock()
	defer diagMu.Unlock()

	text := msg
	if len(args) > 0 {
		text = fmt.Sprintf(msg, args...)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	c.Fprint(diagOut, prefix+": ")
	fmt.Fprint(diagOut, text)
}
