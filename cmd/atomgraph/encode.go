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
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"atomgraph/core/log"
	"atomgraph/framework/binary"
	"atomgraph/framework/binary/cyclic"
)

type encodeVerb struct{}

func (*encodeVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	args := flags.Args()
	if len(args) != 2 {
		return fmt.Errorf("usage: atomgraph encode <in.json> <out.atoms>")
	}
	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	v, err := jsonToValue(json.NewDecoder(in))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	atoms, err := cyclic.Atomize(v, binary.DefaultOptions())
	if err != nil {
		return fmt.Errorf("atomizing %s: %w", args[0], err)
	}
	data, err := cyclic.SerializeAtoms(atoms)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", args[0], err)
	}

	if err := ioutil.WriteFile(args[1], data, 0644); err != nil {
		return err
	}
	log.I(ctx, "wrote %d bytes across %d atoms to %s", len(data), len(atoms), args[1])
	return nil
}
