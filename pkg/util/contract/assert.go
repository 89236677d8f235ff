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

package contract

import (
	"fmt"
	"io"
)

const assertMsg = "An assertion has failed"

// Assertf checks an internal invariant and fails with a formatted message if it is false.
func Assertf(cond bool, msg string, args ...interface{}) {
	if !cond {
		failfast(fmt.Sprintf("%v: %v", assertMsg, fmt.Sprintf(msg, args...)))
	}
}

// AssertNoErrorf fails if err is non-nil.
func AssertNoErrorf(err error, msg string, args ...interface{}) {
	if err != nil {
		failfast(fmt.Sprintf("%v: %v: %v", assertMsg, fmt.Sprintf(msg, args...), err))
	}
}

// IgnoreClose closes a resource and discards the error.
func IgnoreClose(cr io.Closer) {
	_ = cr.Close()
}
