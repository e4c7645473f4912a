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

// Message is a single log record produced by a Logger and passed to a
// Handler.
type Message struct {
	Severity Severity
	Text     string
	Trace    []string
	Values   V
}

// Print renders m as a single line of text.
func (m *Message) Print() string {
	s := m.Severity.String() + ": "
	for _, t := range m.Trace {
		s += t + ": "
	}
	s += m.Text
	for _, k := range m.Values.keys() {
		s += " " + k + "=" + printValue(m.Values[k])
	}
	return s
}
