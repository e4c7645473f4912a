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

package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"atomgraph/core/log"
	"atomgraph/framework/binary/cyclic"
)

type decodeVerb struct{}

func (*decodeVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	args := flags.Args()
	if len(args) != 2 {
		return fmt.Errorf("usage: atomgraph decode <in.atoms> <out.json>")
	}
	data, err := ioutil.ReadFile(args[0])
	if err != nil {
		return err
	}

	atoms, err := cyclic.DeserializeAtoms(data)
	if err != nil {
		return fmt.Errorf("deserializing %s: %w", args[0], err)
	}
	v, err := cyclic.Rebuild(atoms, nil, nil)
	if err != nil {
		return fmt.Errorf("rebuilding %s: %w", args[0], err)
	}

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	enc := &jsonEncoder{w: out}
	if err := valueToJSON(enc, v, map[interface{}]bool{}); err != nil {
		return fmt.Errorf("rendering %s as JSON: %w", args[1], err)
	}
	if enc.err != nil {
		return enc.err
	}
	log.I(ctx, "wrote %s from %d atoms", args[1], len(atoms))
	return nil
}
