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

import "atomgraph/framework/binary"

// CustomDecoder reconstructs a value written by a Custom Builder. It reads
// exactly the children that Builder wrote, using r, and returns the
// reconstructed value.
type CustomDecoder func(r *Rebuilder) (interface{}, error)

// Rebuilder walks an atom stream back into a value graph. Array, Object,
// Map and Set atoms are reconstructed into the composite types declared in
// the binary package; Custom atoms are handed to the configured
// CustomDecoder, and there is no other host customization point, mirroring
// the read side is generic where the write side needed a Builder only to
// decide how to walk an arbitrary host value.
type Rebuilder struct {
	atoms   []binary.Cell
	pos     int
	nextIdx int
	slots   map[int]interface{}
	custom  CustomDecoder
}

// NewRebuilder creates a Rebuilder over atoms. dictionary must list the
// same values, in the same order, as the Options.Dictionary the stream was
// atomized with, so that a back-reference into it resolves to the same
// value the encoder saw; pass nil if the stream was atomized without one.
// custom may be nil if the stream is not expected to contain any Custom
// atoms.
func NewRebuilder(atoms []binary.Cell, dictionary []interface{}, custom CustomDecoder) *Rebuilder {
	r := &Rebuilder{atoms: atoms, slots: map[int]interface{}{}, custom: custom}
	for i, v := range dictionary {
		r.slots[i] = v
	}
	r.nextIdx = len(dictionary)
	return r
}

// Rebuild reconstructs the single root value described by atoms.
func Rebuild(atoms []binary.Cell, dictionary []interface{}, custom CustomDecoder) (interface{}, error) {
	r := NewRebuilder(atoms, dictionary, custom)
	v, err := r.ReadChild()
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.atoms) {
		return nil, binary.ErrExcessContent
	}
	return v, nil
}

// ReadChild reads and returns the next value-consuming cell: a scalar
// literal, a fully reconstructed composite, or the shell of a composite
// whose own children have not finished decoding yet (in the case of a
// self-reference). It is the read-side counterpart of Writer.WriteChild.
func (r *Rebuilder) ReadChild() (interface{}, error) {
	if r.pos >= len(r.atoms) {
		return nil, binary.ErrIncompleteData
	}
	cell := r.atoms[r.pos]
	switch cell.Op {
	case binary.OpBackRef:
		r.pos++
		idx := cell.Ref
		if idx < 0 {
			idx = ^idx
		}
		v, ok := r.slots[idx]
		if !ok {
			return nil, binary.ErrBadTag
		}
		return v, nil
	case binary.OpAsIs, binary.OpLiteral:
		r.pos++
		idx := r.nextIdx
		r.nextIdx++
		r.slots[idx] = cell.Literal
		return cell.Literal, nil
	case binary.OpHeader:
		return r.readComposite(cell.Header)
	default:
		return nil, binary.ErrBadTag
	}
}

func (r *Rebuilder) readComposite(h binary.Header) (interface{}, error) {
	r.pos++
	idx := r.nextIdx
	r.nextIdx++

	if h.Kind == binary.CustomHeader {
		if r.custom == nil {
			return nil, binary.ErrUnsupportedValue
		}
		v, err := r.custom(r)
		if err != nil {
			return nil, err
		}
		r.slots[idx] = v
		return v, nil
	}

	var shell interface{}
	switch h.Kind {
	case binary.ArrayHeader:
		shell = &binary.Array{}
	case binary.ObjectHeader:
		shell = &binary.Object{}
	case binary.MapHeader:
		shell = &binary.Map{}
	case binary.SetHeader:
		shell = &binary.Set{}
	default:
		return nil, binary.ErrBadTag
	}
	// Register the shell before reading any child, so a cell that refers
	// back to this value - even before it is fully populated - resolves
	// to the same pointer the finished value will be reached through.
	r.slots[idx] = shell

	var err error
	switch s := shell.(type) {
	case *binary.Array:
		err = r.fillArray(s, h.Until)
	case *binary.Object:
		err = r.fillObject(s, h.Until)
	case *binary.Map:
		err = r.fillMap(s, h.Until)
	case *binary.Set:
		err = r.fillSet(s, h.Until)
	}
	if err != nil {
		return nil, err
	}
	return shell, nil
}

// fillArray reads children positionally, bounded by until - a cell-stream
// position, not an atom index, so a child that is itself a back-reference
// (which consumes a cell but no fresh atom index) is still counted.
func (r *Rebuilder) fillArray(a *binary.Array, until int) error {
	for r.pos < until {
		v, err := r.ReadChild()
		if err != nil {
			return err
		}
		a.Items = append(a.Items, v)
	}
	return nil
}

func (r *Rebuilder) fillSet(s *binary.Set, until int) error {
	for r.pos < until {
		v, err := r.ReadChild()
		if err != nil {
			return err
		}
		s.Add(v)
	}
	return nil
}

// fillObject reads every key bounded by until, then reads exactly that many
// trailing values from immediately after: the wire shape Options.Object
// writes, so that a value may itself refer back to o. until bounds the key
// run by cell-stream position rather than atom index, so a key that is
// itself a shared value written as a back-reference is still read instead
// of being silently skipped.
func (r *Rebuilder) fillObject(o *binary.Object, until int) error {
	var keys []string
	for r.pos < until {
		key, err := r.ReadChild()
		if err != nil {
			return err
		}
		k, ok := key.(string)
		if !ok {
			return binary.ErrBadTag
		}
		keys = append(keys, k)
	}
	for _, k := range keys {
		val, err := r.ReadChild()
		if err != nil {
			return err
		}
		o.Set(k, val)
	}
	return nil
}

// fillMap mirrors fillObject with arbitrary-valued keys.
func (r *Rebuilder) fillMap(m *binary.Map, until int) error {
	var keys []interface{}
	for r.pos < until {
		key, err := r.ReadChild()
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}
	for _, k := range keys {
		val, err := r.ReadChild()
		if err != nil {
			return err
		}
		m.Set(k, val)
	}
	return nil
}
