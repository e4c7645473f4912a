// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package binary

import (
	"atomgraph/core/fault"
	"atomgraph/core/fault/stacktrace"
)

// The sentinel errors below name the seven ways a traversal or a byte
// stream can fail. They are plain string constants in the style of
// core/fault.Const rather than a struct hierarchy, so callers compare with
// errors.Is or a switch instead of a type assertion.
const (
	// ErrUnsupportedValue is returned when a Classifier's Kind has no
	// Builder and keepUnknownsAsIs is false.
	ErrUnsupportedValue = fault.Const("binary: unsupported value")
	// ErrInfiniteLoop is returned when atomizing a value recurses into
	// itself before AllowSelfReference has been called for it.
	ErrInfiniteLoop = fault.Const("binary: infinite loop, value references itself before AllowSelfReference")
	// ErrValueEncodedIntoNothing is returned when a Builder returns
	// successfully without emitting any atom.
	ErrValueEncodedIntoNothing = fault.Const("binary: value encoded into nothing")
	// ErrJumpStackUnderflow is returned when PopJump is called without a
	// matching PushJump, or when Atomize finishes with a PushJump left
	// unpopped.
	ErrJumpStackUnderflow = fault.Const("binary: jump stack underflow")
	// ErrIncompleteData is returned when the byte stream ends in the
	// middle of a cell or a composite region.
	ErrIncompleteData = fault.Const("binary: incomplete data")
	// ErrExcessContent is returned when bytes remain after the root value
	// has been fully decoded.
	ErrExcessContent = fault.Const("binary: excess content after root value")
	// ErrBadTag is returned when a byte stream tag does not correspond to
	// any known cell shape.
	ErrBadTag = fault.Const("binary: bad tag byte")
)

// UnsupportedKindError decorates ErrUnsupportedValue with the offending Kind
// and the call stack at the point the traversal gave up, so a host
// embedding a large, deeply nested value graph can tell which branch of it
// produced the unsupported value without re-running under a debugger.
type UnsupportedKindError struct {
	Kind  Kind
	Stack stacktrace.Callstack
}

// NewUnsupportedKindError builds an UnsupportedKindError capturing the
// current call stack.
func NewUnsupportedKindError(k Kind) UnsupportedKindError {
	return UnsupportedKindError{Kind: k, Stack: stacktrace.Capture()}
}

func (e UnsupportedKindError) Error() string {
	return ErrUnsupportedValue.Error() + ": " + e.Kind.String()
}

func (e UnsupportedKindError) Unwrap() error { return ErrUnsupportedValue }
