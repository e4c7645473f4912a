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
	stdbinary "encoding/binary"
	"io"
	"math"

	"atomgraph/framework/binary"
	"atomgraph/framework/binary/vle"
)

// Deserialize unpacks bytes written by Serialize (or SerializeAtoms)
// straight into a value, the composition of DeserializeAtoms and Rebuild
// for a caller that has no use for the intermediate atom stream. dictionary
// and custom are passed through to Rebuild unchanged.
func Deserialize(data []byte, dictionary []interface{}, custom CustomDecoder) (interface{}, error) {
	atoms, err := DeserializeAtoms(data)
	if err != nil {
		return nil, err
	}
	return Rebuild(atoms, dictionary, custom)
}

// DeserializeAtoms unpacks bytes written by SerializeAtoms back into an
// atom stream, ready for Rebuild.
func DeserializeAtoms(data []byte) ([]binary.Cell, error) {
	d := &deserState{r: &byteReader{data: data}}
	cells, err := d.readChild()
	if err != nil {
		return nil, err
	}
	if d.r.pos != len(d.r.data) {
		return nil, binary.ErrExcessContent
	}
	return cells, nil
}

// byteReader is a minimal io.ByteReader/io.Reader over a byte slice. A
// plain slice-backed reader, rather than a bufio.Reader, makes slicing out
// a length-prefixed sub-region for a nested composite a matter of
// re-pointing at a subslice instead of layering readers.
type byteReader struct {
	data []byte
	pos  int
}

func (b *byteReader) ReadByte() (byte, error) {
	if b.pos >= len(b.data) {
		return 0, io.ErrUnexpectedEOF
	}
	c := b.data[b.pos]
	b.pos++
	return c, nil
}

func (b *byteReader) Read(p []byte) (int, error) {
	if b.pos >= len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += n
	return n, nil
}

// deserState tracks pos, the position the next decoded cell will occupy in
// the flat []binary.Cell stream this deserializer builds - the same
// position space Header.Until is expressed in, not an atom index. A
// back-reference cell occupies a position like any other even though it
// carries no atom index of its own.
type deserState struct {
	r   *byteReader
	pos int
}

func (d *deserState) readChild() ([]binary.Cell, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return nil, binary.ErrIncompleteData
	}
	switch {
	case b&tagComplexAtom != 0:
		return d.readComplexAtom(b)
	case b&tagBackRef != 0:
		_, zz, err := vle.ReadTaggedFrom(d.r, b, tagBitsBackRef)
		if err != nil {
			return nil, binary.ErrIncompleteData
		}
		ref := int(vle.ZigZagDecode(zz))
		d.pos++
		return []binary.Cell{{Op: binary.OpBackRef, Ref: ref}}, nil
	case b&tagInt != 0:
		_, zz, err := vle.ReadTaggedFrom(d.r, b, tagBitsInt)
		if err != nil {
			return nil, binary.ErrIncompleteData
		}
		d.pos++
		return []binary.Cell{{Op: binary.OpAsIs, Literal: vle.ZigZagDecode(zz)}}, nil
	default:
		return d.readSentinel(b)
	}
}

func (d *deserState) readComplexAtom(b byte) ([]binary.Cell, error) {
	tag, length, err := vle.ReadTaggedFrom(d.r, b, tagBitsComplexAtom)
	if err != nil {
		return nil, binary.ErrIncompleteData
	}
	kind := tag >> 1
	switch {
	case kind == fusedBytes || kind == fusedString:
		return d.readFusedPayload(kind, int(length))
	case kind >= 1 && kind <= 5:
		return d.readComposite(binary.AtomKind(kind), int(length))
	default:
		return nil, binary.ErrBadTag
	}
}

func (d *deserState) readFusedPayload(kind byte, length int) ([]binary.Cell, error) {
	data := make([]byte, length)
	if _, err := io.ReadFull(d.r, data); err != nil {
		return nil, binary.ErrIncompleteData
	}
	d.pos++
	var lit interface{}
	if kind == fusedString {
		lit = string(data)
	} else {
		lit = &binary.Bytes{Data: data}
	}
	return []binary.Cell{{Op: binary.OpLiteral, Literal: lit}}, nil
}

// readComposite reads a length-prefixed jumped region into cells, then, for
// Object and Map, continues reading exactly as many further children
// directly from d - the outer stream, past the end of the region - as the
// number read from the region. That mirrors serializeHeader: for Object and
// Map the region holds only keys, and the values immediately following it
// belong to this same composite even though they sit outside its length
// prefix.
func (d *deserState) readComposite(kind binary.AtomKind, byteLen int) ([]binary.Cell, error) {
	if d.r.pos+byteLen > len(d.r.data) {
		return nil, binary.ErrIncompleteData
	}
	region := d.r.data[d.r.pos : d.r.pos+byteLen]
	d.r.pos += byteLen

	// The header cell itself occupies position d.pos; the region's
	// children start right after it.
	sub := &deserState{r: &byteReader{data: region}, pos: d.pos + 1}
	var children []binary.Cell
	count := 0
	for sub.r.pos < len(sub.r.data) {
		cells, err := sub.readChild()
		if err != nil {
			return nil, err
		}
		children = append(children, cells...)
		count++
	}
	if sub.r.pos != len(sub.r.data) {
		return nil, binary.ErrExcessContent
	}
	d.pos = sub.pos
	until := sub.pos

	if kind == binary.ObjectHeader || kind == binary.MapHeader {
		for i := 0; i < count; i++ {
			cells, err := d.readChild()
			if err != nil {
				return nil, err
			}
			children = append(children, cells...)
		}
	}

	header := binary.Cell{Op: binary.OpHeader, Header: binary.Header{Kind: kind, Until: until}}
	return append([]binary.Cell{header}, children...), nil
}

func (d *deserState) readSentinel(b byte) ([]binary.Cell, error) {
	code := b >> 4
	d.pos++
	switch code {
	case sentinelVoid:
		return []binary.Cell{{Op: binary.OpLiteral, Literal: binary.VoidValue{}}}, nil
	case sentinelNull:
		return []binary.Cell{{Op: binary.OpLiteral, Literal: nil}}, nil
	case sentinelTrue:
		return []binary.Cell{{Op: binary.OpLiteral, Literal: true}}, nil
	case sentinelFalse:
		return []binary.Cell{{Op: binary.OpLiteral, Literal: false}}, nil
	case sentinelNaN:
		return []binary.Cell{{Op: binary.OpLiteral, Literal: math.NaN()}}, nil
	case sentinelFloat64:
		var buf [8]byte
		if _, err := io.ReadFull(d.r, buf[:]); err != nil {
			return nil, binary.ErrIncompleteData
		}
		bits := stdbinary.BigEndian.Uint64(buf[:])
		return []binary.Cell{{Op: binary.OpLiteral, Literal: math.Float64frombits(bits)}}, nil
	default:
		return nil, binary.ErrBadTag
	}
}
