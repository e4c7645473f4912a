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

// AtomKind tags a header cell in the atom stream, naming the shape of the
// composite region it opens. It is a much smaller enumeration than Kind:
// scalars never get a header, they are written directly as literal cells.
type AtomKind int

const (
	// AsIs marks a literal that must be taken verbatim rather than
	// recursively atomized, used to escape an integer literal that would
	// otherwise be mistaken for a back-reference.
	AsIs AtomKind = iota
	// ArrayHeader opens an Array region: children hold every element in order.
	ArrayHeader
	// ObjectHeader opens an Object region: its Until bounds a run of keys
	// only, immediately followed - outside the region - by that many
	// values in the same order.
	ObjectHeader
	// MapHeader opens a Map region: its Until bounds a run of keys only,
	// immediately followed - outside the region - by that many values in
	// the same order.
	MapHeader
	// SetHeader opens a Set region: children hold every member in order.
	SetHeader
	// CustomHeader opens a region produced by a host encoder.
	CustomHeader
)

// CellOp discriminates the payload carried by a Cell.
type CellOp int

const (
	// OpLiteral carries a scalar value straight through: bool, nil,
	// float64, string, *Bytes, or an int64 that is safe to read as-is.
	OpLiteral CellOp = iota
	// OpAsIs carries an int64 literal that must not be mistaken for a
	// back-reference; Literal holds the int64.
	OpAsIs
	// OpHeader opens a composite region; Header names its kind and, once
	// closed, the cell position its first child-run ends at.
	OpHeader
	// OpBackRef closes a reference to a previously atomized value;
	// Ref holds its atom index.
	OpBackRef
)

// Header is the payload of an OpHeader cell. Until is filled in by PopJump
// once every child of the region has been written, and is a position in the
// cell stream, not an atom index: a back-reference cell belongs to the
// region just like any other child even though it does not consume a fresh
// atom index, so only a cell-position bound counts it correctly.
type Header struct {
	Kind  AtomKind
	Until int
}

// Cell is one entry in the flat atom stream produced by an Atomizer and
// consumed by a Rebuilder or Serializer. A composite value expands into a
// header cell followed by the cells of its children and, for a
// self-referencing value, a closing promotion of its own reference slot;
// nothing in the stream is nested, all structure is expressed through
// Header.Until and OpBackRef.
type Cell struct {
	Op      CellOp
	Literal interface{}
	Header  Header
	Ref     int
}
