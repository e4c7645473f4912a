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

// The wire tag byte for a cell is dispatched by its low bits, checked in
// this priority order: ComplexAtom, then BackReference, then Int. A byte
// with all three low bits clear is a sentinel naming a fixed scalar shape,
// carried in bits 4 and up.
const (
	tagComplexAtom byte = 1 << 0
	tagBackRef     byte = 1 << 1
	tagInt         byte = 1 << 2
)

// tagBitsComplexAtom, tagBitsBackRef and tagBitsInt are how many low bits
// of the first byte each shape reserves for its tag; the rest of that
// byte, plus any continuation bytes, hold the tagged varint value (a
// byte length for ComplexAtom, a zig-zagged index for BackReference, a
// zig-zagged magnitude for Int).
const (
	tagBitsComplexAtom = 4
	tagBitsBackRef     = 2
	tagBitsInt         = 3
)

// Fused scalar kinds share the ComplexAtom tag's 3-bit kind field with the
// composite AtomKinds (1 through 5): a payload-length-prefixed region
// whose kind marks it as raw bytes or UTF-8 text rather than a nested atom
// sequence.
const (
	fusedBytes  = 6
	fusedString = 7
)

// Sentinel codes occupy bits 4-7 of a byte whose low 3 bits are all clear.
const (
	sentinelVoid = 1 + iota
	sentinelNull
	sentinelTrue
	sentinelFalse
	sentinelNaN
	sentinelFloat64
)
