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

import "context"

// delegate matches the logging methods of the test host types (*testing.T
// and *testing.B).
type delegate interface {
	Fatal(...interface{})
	Error(...interface{})
	Log(...interface{})
}

// Testing returns a context whose log messages are routed to t.
func Testing(t delegate) context.Context {
	return SubTest(context.Background(), t)
}

// SubTest returns ctx with its handler replaced with one that routes
// messages to t. Useful for propagating trace/values into a t.Run subtest.
func SubTest(ctx context.Context, t delegate) context.Context {
	return PutHandler(ctx, testHandler(t))
}

func testHandler(t delegate) Handler {
	if t == nil {
		panic("delegate cannot be nil")
	}
	return func(m *Message) {
		switch {
		case m.Severity >= Fatal:
			t.Fatal(m.Print())
		case m.Severity >= Error:
			t.Error(m.Print())
		default:
			t.Log(m.Print())
		}
	}
}
