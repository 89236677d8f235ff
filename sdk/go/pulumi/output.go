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
	"fmt"
	"sync"
)

// ErrUninitializedOutput is returned when awaiting an output that no registration ever bound.
var ErrUninitializedOutput = errors.New("output was never initialized")

type outputStatus int

const (
	outputPending outputStatus = iota
	outputResolved
	outputFailed
)

func (s outputStatus) String() string {
	switch s {
	case outputPending:
		return "pending"
	case outputResolved:
		return "resolved"
	case outputFailed:
		return "failed"
	default:
		return fmt.Sprintf("outputStatus(%d)", int(s))
	}
}

type outputState struct {
	mu     sync.Mutex
	done   chan struct{}
	status outputStatus
	value  interface{}
	err    error
}

func newOutputState() *outputState {
	return &outputState{done: make(chan struct{})}
}

// fulfill settles the state. Only the first call has any effect; it reports whether it was that call.
func (s *outputState) fulfill(value interface{}, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != outputPending {
		return false
	}
	if err != nil {
		s.status, s.err = outputFailed, err
	} else {
		s.status, s.value = outputResolved, value
	}
	close(s.done)
	return true
}

func (s *outputState) await(ctx context.Context) (interface{}, error) {
	select {
	case <-s.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.err
}

// Output is a single-assignment deferred value. It starts pending and settles exactly once, either resolved with a
// value or failed with an error. Copies of an Output share the same state.
type Output[T any] struct {
	state *outputState
}

// NewOutput returns a pending output along with functions that resolve or reject it.
func NewOutput[T any]() (Output[T], func(T), func(error)) {
	o := Output[T]{state: newOutputState()}
	resolve := func(v T) { o.state.fulfill(v, nil) }
	reject := func(err error) { o.state.fulfill(nil, err) }
	return o, resolve, reject
}

// ToOutput returns an output already resolved to v.
func ToOutput[T any](v T) Output[T] {
	o, resolve, _ := NewOutput[T]()
	resolve(v)
	return o
}

// Await blocks until the output settles or ctx is done.
func (o Output[T]) Await(ctx context.Context) (T, error) {
	var zero T
	if o.state == nil {
		return zero, ErrUninitializedOutput
	}
	v, err := o.state.await(ctx)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}

// IsPending reports whether the output has yet to settle.
func (o Output[T]) IsPending() bool {
	if o.state == nil {
		return true
	}
	o.state.mu.Lock()
	defer o.state.mu.Unlock()
	return o.state.status == outputPending
}

// Apply returns an output holding fn applied to o's value. Failures propagate without calling fn.
func Apply[T, U any](o Output[T], fn func(T) U) Output[U] {
	return ApplyErr(o, func(v T) (U, error) { return fn(v), nil })
}

// ApplyErr is like Apply, but fn may fail.
func ApplyErr[T, U any](o Output[T], fn func(T) (U, error)) Output[U] {
	result, resolve, reject := NewOutput[U]()
	go func() {
		v, err := o.Await(context.Background())
		if err != nil {
			reject(err)
			return
		}
		u, err := fn(v)
		if err != nil {
			reject(err)
			return
		}
		resolve(u)
	}()
	return result
}

// All joins outputs into one holding their values in order. It fails with the first failure in argument order.
func All[T any](outputs ...Output[T]) Output[[]T] {
	result, resolve, reject := NewOutput[[]T]()
	go func() {
		values := make([]T, len(outputs))
		for i, o := range outputs {
			v, err := o.Await(context.Background())
			if err != nil {
				reject(err)
				return
			}
			values[i] = v
		}
		resolve(values)
	}()
	return result
}

// outputBinder is implemented by *Output[T] so that registration can bind typed output fields it finds by
// reflection.
type outputBinder interface {
	bindOutput(decode func(raw, out interface{}) error) outputResolver
}

type outputResolver struct {
	resolve func(raw interface{}, present bool) error
	reject  func(err error)
}

func (o *Output[T]) bindOutput(decode func(raw, out interface{}) error) outputResolver {
	o.state = newOutputState()
	state := o.state
	return outputResolver{
		resolve: func(raw interface{}, present bool) error {
			var v T
			if present && raw != nil {
				if err := decode(raw, &v); err != nil {
					state.fulfill(nil, err)
					return err
				}
			}
			state.fulfill(v, nil)
			return nil
		},
		reject: func(err error) { state.fulfill(nil, err) },
	}
}
