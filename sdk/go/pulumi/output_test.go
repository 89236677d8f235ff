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
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputResolvesOnce(t *testing.T) {
	t.Parallel()

	o, resolve, reject := NewOutput[string]()
	assert.True(t, o.IsPending())

	resolve("first")
	resolve("second")
	reject(errors.New("too late"))

	v, err := o.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", v)
	assert.False(t, o.IsPending())
}

func TestOutputRejected(t *testing.T) {
	t.Parallel()

	o, resolve, reject := NewOutput[int]()
	reject(errors.New("boom"))
	resolve(42)

	v, err := o.Await(context.Background())
	assert.EqualError(t, err, "boom")
	assert.Zero(t, v)
}

func TestOutputCopiesShareState(t *testing.T) {
	t.Parallel()

	o, resolve, _ := NewOutput[int]()
	copied := o
	resolve(7)

	v, err := copied.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestUninitializedOutput(t *testing.T) {
	t.Parallel()

	var o Output[string]
	assert.True(t, o.IsPending())
	_, err := o.Await(context.Background())
	assert.ErrorIs(t, err, ErrUninitializedOutput)
}

func TestOutputAwaitCanceled(t *testing.T) {
	t.Parallel()

	o, _, _ := NewOutput[string]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := o.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, o.IsPending())
}

func TestApply(t *testing.T) {
	t.Parallel()

	o, resolve, _ := NewOutput[int]()
	s := Apply(o, strconv.Itoa)
	resolve(12)

	v, err := s.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12", v)
}

func TestApplyPropagatesFailure(t *testing.T) {
	t.Parallel()

	o, _, reject := NewOutput[int]()
	called := false
	s := Apply(o, func(v int) string {
		called = true
		return strconv.Itoa(v)
	})
	reject(errors.New("upstream"))

	_, err := s.Await(context.Background())
	assert.EqualError(t, err, "upstream")
	assert.False(t, called)

	failed := ApplyErr(ToOutput(1), func(int) (string, error) {
		return "", errors.New("applier")
	})
	_, err = failed.Await(context.Background())
	assert.EqualError(t, err, "applier")
}

func TestAll(t *testing.T) {
	t.Parallel()

	a, resolveA, _ := NewOutput[string]()
	b, resolveB, _ := NewOutput[string]()
	all := All(a, b, ToOutput("c"))
	resolveB("b")
	resolveA("a")

	v, err := all.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, v)

	failed, _, reject := NewOutput[string]()
	reject(errors.New("nope"))
	_, err = All(ToOutput("x"), failed).Await(context.Background())
	assert.EqualError(t, err, "nope")
}

func TestAllEmpty(t *testing.T) {
	t.Parallel()

	v, err := All[int]().Await(context.Background())
	require.NoError(t, err)
	assert.Empty(t, v)
}
