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

// Package binary declares the contract shared by a cycle-aware,
// reference-deduplicating value graph codec: the closed set of value
// Kinds, the Classifier and Builder interfaces a host supplies to
// customize traversal, the intermediate atom stream cell types, and the
// Writer surface builders use to emit atoms.
//
// The concrete traversal (Atomizer), reconstruction (Rebuilder) and byte
// packing (Serializer/Deserializer) that implement this contract live in
// the cyclic subpackage, named for the cyclic object graphs it is built
// to round-trip.
package binary
