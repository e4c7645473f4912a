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

package cyclic

import (
	"reflect"

	"atomgraph/framework/binary"
)

// frame tracks one value currently being atomized, so that a value which
// references itself - directly or through a descendant - can be told
// apart from one that merely looks the same as something already fully
// written.
type frame struct {
	id                   interface{}
	index                int
	selfReferenceAllowed bool
}

// Atomizer walks a value graph into a flat atom stream, deduplicating any
// value it has already written by identity. It implements binary.Writer,
// the surface the Builder for the value currently being walked uses to
// describe it.
type Atomizer struct {
	opts      binary.Options
	atoms     []binary.Cell
	refs      map[interface{}]int
	jumps     []int
	atomIndex int
	stack     []*frame
}

var _ binary.Writer = (*Atomizer)(nil)

// NewAtomizer creates an Atomizer configured by opts. Any values in
// opts.Dictionary are assigned reference slots before the root value is
// atomized, so a value equal to one of them is written as a back-reference
// without ever appearing on the wire.
func NewAtomizer(opts binary.Options) *Atomizer {
	a := &Atomizer{opts: opts, refs: map[interface{}]int{}}
	for _, d := range opts.Dictionary {
		if key, ok := identityOf(d); ok {
			a.refs[key] = a.atomIndex
		}
		a.atomIndex++
	}
	return a
}

// Atomize walks v and returns the atom stream describing it.
func (a *Atomizer) Atomize(v interface{}) ([]binary.Cell, error) {
	if err := a.WriteChild(v); err != nil {
		return nil, err
	}
	if len(a.jumps) != 0 {
		return nil, binary.ErrJumpStackUnderflow
	}
	return a.atoms, nil
}

// Atomize is a convenience wrapper around NewAtomizer(opts).Atomize(v).
func Atomize(v interface{}, opts binary.Options) ([]binary.Cell, error) {
	return NewAtomizer(opts).Atomize(v)
}

// EmitRaw implements binary.Writer.
func (a *Atomizer) EmitRaw(v interface{}) {
	a.atoms = append(a.atoms, binary.Cell{Op: binary.OpLiteral, Literal: v})
}

// EmitAsIs implements binary.Writer.
func (a *Atomizer) EmitAsIs(v interface{}) {
	if n, ok := toInt64(v); ok {
		a.atoms = append(a.atoms, binary.Cell{Op: binary.OpAsIs, Literal: n})
		return
	}
	a.EmitRaw(v)
}

// PushJump implements binary.Writer.
func (a *Atomizer) PushJump(kind binary.AtomKind) {
	idx := len(a.atoms)
	a.atoms = append(a.atoms, binary.Cell{Op: binary.OpHeader, Header: binary.Header{Kind: kind}})
	a.jumps = append(a.jumps, idx)
}

// PopJump implements binary.Writer.
func (a *Atomizer) PopJump() error {
	if len(a.jumps) == 0 {
		return binary.ErrJumpStackUnderflow
	}
	idx := a.jumps[len(a.jumps)-1]
	a.jumps = a.jumps[:len(a.jumps)-1]
	// Until is a cell-stream position, not an atom-index: a trailing child
	// that back-references an earlier value consumes a cell here without
	// ever advancing atomIndex, so a bound expressed in atom-indices would
	// stop short of the cells that back-reference wrote.
	a.atoms[idx].Header.Until = len(a.atoms)
	return nil
}

// AllowSelfReference implements binary.Writer.
func (a *Atomizer) AllowSelfReference() {
	if n := len(a.stack); n > 0 {
		a.stack[n-1].selfReferenceAllowed = true
	}
}

// WriteChild implements binary.Writer.
func (a *Atomizer) WriteChild(v interface{}) error {
	key, identifiable := identityOf(v)
	if identifiable {
		if idx, ok := a.refs[key]; ok {
			a.emitBackRef(idx)
			return nil
		}
		for i := len(a.stack) - 1; i >= 0; i-- {
			if a.stack[i].id == key {
				if !a.stack[i].selfReferenceAllowed {
					return binary.ErrInfiniteLoop
				}
				a.emitBackRef(^a.stack[i].index)
				return nil
			}
		}
	}
	return a.atomizeValue(v, key, identifiable)
}

func (a *Atomizer) emitBackRef(idx int) {
	a.atoms = append(a.atoms, binary.Cell{Op: binary.OpBackRef, Ref: idx})
}

func (a *Atomizer) atomizeValue(v interface{}, key interface{}, identifiable bool) error {
	kind := a.opts.ClassifierOrDefault().Classify(v)
	builder, ok := a.opts.Builder(kind)
	if !ok {
		if !a.opts.KeepUnknownsAsIs {
			return binary.NewUnsupportedKindError(kind)
		}
		builder = func(w binary.Writer, v interface{}) (bool, error) {
			w.EmitAsIs(v)
			return false, nil
		}
	}

	myIndex := a.atomIndex
	a.atomIndex++
	a.stack = append(a.stack, &frame{id: key, index: myIndex})
	startLen := len(a.atoms)

	cacheable, err := builder(a, v)

	a.stack = a.stack[:len(a.stack)-1]
	if err != nil {
		return err
	}
	if len(a.atoms) == startLen {
		return binary.ErrValueEncodedIntoNothing
	}
	if cacheable && identifiable {
		a.refs[key] = myIndex
	}
	return nil
}

// identityOf returns a value usable as a map key for value, and whether
// value has a stable enough identity to participate in the reference
// table at all. Slices, maps and functions are never comparable in Go, so
// a Builder atomizing one of those must wrap it in a pointer type (as
// Array, Object, Map and Set do) to be deduplicated.
func identityOf(v interface{}) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	t := reflect.TypeOf(v)
	if !t.Comparable() {
		return nil, false
	}
	return v, true
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
