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
	"bytes"
	stdbinary "encoding/binary"
	"math"

	"atomgraph/framework/binary"
	"atomgraph/framework/binary/vle"
)

// Serialize atomizes v under opts and packs the result straight to bytes,
// the composition of Atomize and SerializeAtoms for a caller that has no
// use for the intermediate atom stream.
func Serialize(v interface{}, opts binary.Options) ([]byte, error) {
	atoms, err := Atomize(v, opts)
	if err != nil {
		return nil, err
	}
	return SerializeAtoms(atoms)
}

// SerializeAtoms packs an atom stream into bytes. Composite regions are
// length-prefixed, which means each one is packed into a scratch buffer
// bottom-up before its own header can be written.
func SerializeAtoms(atoms []binary.Cell) ([]byte, error) {
	s := &serState{atoms: atoms}
	buf, err := s.serializeChild()
	if err != nil {
		return nil, err
	}
	if s.pos != len(s.atoms) {
		return nil, binary.ErrExcessContent
	}
	return buf, nil
}

type serState struct {
	atoms []binary.Cell
	pos   int
}

func (s *serState) serializeChild() ([]byte, error) {
	if s.pos >= len(s.atoms) {
		return nil, binary.ErrIncompleteData
	}
	cell := s.atoms[s.pos]
	switch cell.Op {
	case binary.OpBackRef:
		s.pos++
		return encodeBackRef(cell.Ref)
	case binary.OpAsIs:
		s.pos++
		n, _ := cell.Literal.(int64)
		return encodeInt(n)
	case binary.OpLiteral:
		s.pos++
		return encodeLiteral(cell.Literal)
	case binary.OpHeader:
		return s.serializeHeader(cell.Header)
	default:
		return nil, binary.ErrBadTag
	}
}

// serializeHeader packs a composite's jumped region - bounded by h.Until, a
// cell-stream position - into a length-prefixed ComplexAtom. For Object and
// Map that region holds only the keys; the values that Options.Object and
// Options.Map write afterward, outside the jump, are appended as a flat run
// of exactly as many further children right after the length-prefixed
// region, not counted in its length. Bounding on cell position rather than
// atom index matters here: a key that is itself a back-reference to an
// earlier shared value consumes a cell without ever advancing an atom
// index, so an atom-index bound would stop short of it.
func (s *serState) serializeHeader(h binary.Header) ([]byte, error) {
	s.pos++

	var body bytes.Buffer
	count := 0
	for s.pos < h.Until {
		childBuf, err := s.serializeChild()
		if err != nil {
			return nil, err
		}
		body.Write(childBuf)
		count++
	}

	if int(h.Kind) < 1 || int(h.Kind) > 5 {
		return nil, binary.ErrBadTag
	}
	tag := tagComplexAtom | byte(h.Kind)<<1
	var out bytes.Buffer
	if err := vle.WriteTagged(&out, tagBitsComplexAtom, tag, uint64(body.Len())); err != nil {
		return nil, err
	}
	out.Write(body.Bytes())

	if h.Kind == binary.ObjectHeader || h.Kind == binary.MapHeader {
		for i := 0; i < count; i++ {
			valBuf, err := s.serializeChild()
			if err != nil {
				return nil, err
			}
			out.Write(valBuf)
		}
	}
	return out.Bytes(), nil
}

func encodeInt(n int64) ([]byte, error) {
	var out bytes.Buffer
	if err := vle.WriteTagged(&out, tagBitsInt, tagInt, vle.ZigZagEncode(n)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func encodeBackRef(ref int) ([]byte, error) {
	var out bytes.Buffer
	if err := vle.WriteTagged(&out, tagBitsBackRef, tagBackRef, vle.ZigZagEncode(int64(ref))); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func encodeLiteral(v interface{}) ([]byte, error) {
	var out bytes.Buffer
	switch t := v.(type) {
	case nil:
		out.WriteByte(sentinelNull << 4)
	case binary.VoidValue:
		out.WriteByte(sentinelVoid << 4)
	case bool:
		if t {
			out.WriteByte(sentinelTrue << 4)
		} else {
			out.WriteByte(sentinelFalse << 4)
		}
	case float32:
		writeFloat64(&out, float64(t))
	case float64:
		if math.IsNaN(t) {
			out.WriteByte(sentinelNaN << 4)
		} else {
			writeFloat64(&out, t)
		}
	case string:
		if err := writeFused(&out, fusedString, []byte(t)); err != nil {
			return nil, err
		}
	case *binary.Bytes:
		if err := writeFused(&out, fusedBytes, t.Data); err != nil {
			return nil, err
		}
	default:
		return nil, binary.ErrBadTag
	}
	return out.Bytes(), nil
}

func writeFloat64(out *bytes.Buffer, f float64) {
	out.WriteByte(sentinelFloat64 << 4)
	var b [8]byte
	stdbinary.BigEndian.PutUint64(b[:], math.Float64bits(f))
	out.Write(b[:])
}

func writeFused(out *bytes.Buffer, kind byte, data []byte) error {
	tag := tagComplexAtom | kind<<1
	if err := vle.WriteTagged(out, tagBitsComplexAtom, tag, uint64(len(data))); err != nil {
		return err
	}
	out.Write(data)
	return nil
}
