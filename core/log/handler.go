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

package log

import (
	"fmt"
	"os"
)

// Handler is called once per emitted Message.
type Handler func(*Message)

// StderrHandler writes messages to os.Stderr, one per line.
var StderrHandler Handler = func(m *Message) {
	fmt.Fprintln(os.Stderr, m.Print())
}

// Multi returns a Handler that forwards each message to every handler in
// hs.
func Multi(hs ...Handler) Handler {
	return func(m *Message) {
		for _, h := range hs {
			h(m)
		}
	}
}
