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

// Command atomgraph atomizes and rebuilds JSON documents through the
// cyclic atom stream, exercising the same encode and decode paths a host
// embedding the framework/binary/cyclic package would use directly.
package main

import (
	"atomgraph/core/app"
)

func main() {
	app.ShortHelp = "atomgraph encodes and decodes JSON documents through the cyclic atom wire format"
	app.Name = "atomgraph"
	app.AddVerb(&app.Verb{
		Name:       "encode",
		ShortHelp:  "read a JSON document and write its atom-stream encoding",
		ShortUsage: "<in.json> <out.atoms>",
		Auto:       &encodeVerb{},
	})
	app.AddVerb(&app.Verb{
		Name:       "decode",
		ShortHelp:  "read an atom-stream encoding and write it back out as JSON",
		ShortUsage: "<in.atoms> <out.json>",
		Auto:       &decodeVerb{},
	})
	app.Run(app.VerbMain)
}
