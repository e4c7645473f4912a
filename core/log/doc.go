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

// Package log provides a small context-carried structured logger.
//
// A Logger is built from a context.Context with log.From, inherits a trail
// of Enter names and V key/value pairs from that context, and is handed to
// a Handler that turns a Message into text. Tests obtain a context with
// log.Testing(t), which routes messages to the *testing.T instead of
// stderr.
package log
