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

// Package vle implements the tag-embedded variable length integer coding
// used to pack atom stream cells into bytes.
//
// A tagged value is written as a byte sequence whose first byte reserves
// its low tagBits bits for a small tag (which cell shape follows) and its
// top bit as a continuation flag; the bits in between hold the low order
// bits of the value. If the continuation flag is set, further bytes each
// carry 7 more value bits in their low 7 bits and a continuation flag in
// their top bit, standard LEB128 style. This lets a one-byte cell (a small
// back-reference, or the header of a two-element array) skip the extra
// byte a fixed-width tag-then-varint encoding would spend on it.
//
// Signed integers are zig-zag encoded into an unsigned magnitude before
// being tagged, interleaving negative then positive values (0, -1, +1, -2,
// +2, ... -> 0, 1, 2, 3, 4, ...) so that small numbers of either sign use
// few bytes.
package vle
