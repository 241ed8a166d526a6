// Copyright 2023 The Shac Authors
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

package tablegen

import (
	"go.starlark.net/starlark"
)

// BacktraceableError is an error that has a starlark backtrace attached to it.
type BacktraceableError interface {
	error
	// Backtrace returns a user-friendly error message describing the stack
	// of calls that led to this error, along with the error message itself.
	Backtrace() string
}

// evalError is starlark.EvalError with an optimized Backtrace() function.
type evalError struct {
	*starlark.EvalError
}

// Backtrace returns a user-friendly error message describing the stack
// of calls that led to this error.
func (e *evalError) Backtrace() string {
	c := e.CallStack
	if len(c) > 0 && c[len(c)-1].Pos.Filename() == "<builtin>" {
		c = c[:len(c)-1]
	}
	return c.String()
}

// Unwrap returns the underlying starlark error.
func (e *evalError) Unwrap() error {
	return e.EvalError
}

var _ BacktraceableError = (*evalError)(nil)
