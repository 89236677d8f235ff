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

// Package logging wraps glog so that the generator and its tools share one set of verbosity settings.
package logging

import (
	"flag"
	"strconv"
	"sync"

	"github.com/golang/glog"
)

var (
	// LogToStderr is true when logs are written to stderr rather than files.
	LogToStderr = false
	// Verbose is the glog verbosity level.
	Verbose = 0
	// LogFlow is true when child tools should inherit the logging settings.
	LogFlow = false
)

var initOnce sync.Once

// InitLogging ensures the glog library has been initialized with the given settings.
func InitLogging(logToStderr bool, verbose int, logFlow bool) {
	// glog is configured only through flags and complains until they are parsed. Command line flags belong to
	// cobra, so parse an empty set.
	initOnce.Do(func() {
		if !flag.Parsed() {
			_ = flag.CommandLine.Parse(nil)
		}
	})

	LogToStderr = logToStderr
	Verbose = verbose
	LogFlow = logFlow

	setFlag("logtostderr", strconv.FormatBool(logToStderr))
	setFlag("v", strconv.Itoa(verbose))
}

func setFlag(name, value string) {
	if f := flag.Lookup(name); f != nil {
		if err := f.Value.Set(value); err != nil {
			glog.Warningf("could not set glog flag %s=%s: %v", name, value, err)
		}
	}
}

// V returns a leveled logger for the given verbosity.
func V(level glog.Level) glog.Verbose {
	return glog.V(level)
}

// Infof logs at info level.
func Infof(msg string, args ...interface{}) {
	glog.InfoDepth(1, sprintf(msg, args...))
}

// Warningf logs at warning level.
func Warningf(msg string, args ...interface{}) {
	glog.WarningDepth(1, sprintf(msg, args...))
}

// Errorf logs at error level.
func Errorf(msg string, args ...interface{}) {
	glog.ErrorDepth(1, sprintf(msg, args...))
}

// Flush flushes any buffered log output.
func Flush() {
	glog.Flush()
}
