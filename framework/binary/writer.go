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

// Writer is the surface a Builder uses to turn one value into atoms. An
// Atomizer implements it; Builders only ever see it through this narrower
// interface so they cannot reach into the reference table or jump stack
// directly.
//
// The source this package is modelled on gives builders a single method
// carrying a hidden capability token that switches behaviour by argument
// shape. Go has no implicit operator dispatch of that kind, so each
// operation that token could select is a plain method here instead; the
// semantics they implement are unchanged.
type Writer interface {
	// EmitRaw appends v to the atom stream verbatim. It does not advance
	// the atom index and is used for values that need no dedup slot of
	// their own, such as the members of a fused scalar payload.
	EmitRaw(v interface{})

	// EmitAsIs appends v to the atom stream, escaping it first if it is an
	// int64 that would otherwise be misread as a back-reference.
	EmitAsIs(v interface{})

	// WriteChild atomizes v as a child of the value currently being
	// atomized: an existing reference emits a back-reference, otherwise v
	// is recursively classified, built and, if cacheable, registered.
	WriteChild(v interface{}) error

	// PushJump opens a composite region of the given kind, reserving a
	// header cell whose Until field PopJump will fill in.
	PushJump(kind AtomKind)

	// PopJump closes the most recently opened region, recording the atom
	// index one past its last child.
	PopJump() error

	// AllowSelfReference permits the value currently being atomized to
	// appear as one of its own descendants; a subsequent WriteChild call
	// for the same value emits a self back-reference instead of
	// recursing again. Calling it more than once for the same value, or
	// omitting it when the value does recurse into itself, is a caller
	// error surfaced as ErrInfiniteLoop from the enclosing atomize call.
	AllowSelfReference()
}

// Builder atomizes a single value of the Kind it is registered for, using
// w to emit its atoms. It returns cacheable=true if future occurrences of
// v (by identity, see Options) should be encoded as a back-reference
// rather than re-atomized.
type Builder func(w Writer, v interface{}) (cacheable bool, err error)

// Options configures an Atomizer or Rebuilder. Every Builder field is
// optional; a Kind with no Builder falls back to KeepUnknownsAsIs when set,
// otherwise atomizing a value of that Kind fails with ErrUnsupportedValue.
type Options struct {
	Classifier Classifier

	Void, Null, Boolean, Number, String, Bytes Builder
	Array, Object, Map, Set                    Builder
	Function, Symbol, Instance, Custom         Builder

	// KeepUnknownsAsIs causes values with no registered Builder to be
	// emitted as an as-is literal instead of failing the traversal.
	KeepUnknownsAsIs bool

	// Dictionary seeds the reference table before traversal starts, so
	// that values known to both ends of a channel need never be spelled
	// out on the wire; each entry is assigned a reference slot in order
	// before atom index 0 is handed out to the root value.
	Dictionary []interface{}
}

func (o Options) builder(k Kind) (Builder, bool) {
	switch k {
	case Void:
		return o.Void, o.Void != nil
	case Null:
		return o.Null, o.Null != nil
	case Boolean:
		return o.Boolean, o.Boolean != nil
	case Number:
		return o.Number, o.Number != nil
	case String:
		return o.String, o.String != nil
	case BytesKind:
		return o.Bytes, o.Bytes != nil
	case ArrayKind:
		return o.Array, o.Array != nil
	case ObjectKind:
		return o.Object, o.Object != nil
	case MapKind:
		return o.Map, o.Map != nil
	case SetKind:
		return o.Set, o.Set != nil
	case Function:
		return o.Function, o.Function != nil
	case Symbol:
		return o.Symbol, o.Symbol != nil
	case Instance:
		return o.Instance, o.Instance != nil
	case Custom:
		return o.Custom, o.Custom != nil
	default:
		return nil, false
	}
}

// Builder looks up the Builder registered for k, returning ok=false if none
// was configured.
func (o Options) Builder(k Kind) (Builder, bool) { return o.builder(k) }

// ClassifierOrDefault returns the configured Classifier, defaulting to
// DefaultClassifier when none was set.
func (o Options) ClassifierOrDefault() Classifier {
	if o.Classifier != nil {
		return o.Classifier
	}
	return DefaultClassifier
}
