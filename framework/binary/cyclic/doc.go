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

// Package cyclic implements the concrete traversal, reconstruction and
// byte packing that binary.Options describes: the Atomizer walks a value
// graph that may contain cycles into a flat atom stream, the Rebuilder
// walks it back into a value graph, and the Serializer and Deserializer
// pack that stream to and from bytes.
//
// A value already atomized once is referenced, not repeated: the
// Atomizer keeps a table from value identity to the atom index it was
// first written at, and any later occurrence of the same value - however
// deep, however far back up the graph - is emitted as a back-reference to
// that index instead of being walked again. A value may even reference
// itself, directly or through its own descendants, provided its Builder
// calls AllowSelfReference before recursing into anything that could
// reach back to it.
package cyclic
