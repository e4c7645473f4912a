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
	"encoding/json"
	"fmt"
	"io"

	"atomgraph/framework/binary"
)

// jsonEncoder writes JSON to an underlying writer a fragment at a time, so
// valueToJSON can interleave literal punctuation with json.Marshal output
// for leaf scalars without building the whole document in memory first.
type jsonEncoder struct {
	w   io.Writer
	err error
}

func (e *jsonEncoder) raw(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *jsonEncoder) value(v interface{}) error {
	if e.err != nil {
		return e.err
	}
	data, err := json.Marshal(v)
	if err != nil {
		e.err = err
		return err
	}
	_, e.err = e.w.Write(data)
	return e.err
}

// jsonToValue decodes a single JSON value from dec into the binary value
// model, preserving object key order - something the standard library's
// map[string]interface{} decoding throws away, but which the atom stream's
// ordering law depends on.
func jsonToValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonTokenToValue(dec, tok)
}

func jsonTokenToValue(dec *json.Decoder, tok json.Token) (interface{}, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			o := &binary.Object{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("atomgraph: object key %v is not a string", keyTok)
				}
				val, err := jsonToValue(dec)
				if err != nil {
					return nil, err
				}
				o.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return o, nil
		case '[':
			a := &binary.Array{}
			for dec.More() {
				val, err := jsonToValue(dec)
				if err != nil {
					return nil, err
				}
				a.Items = append(a.Items, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return a, nil
		default:
			return nil, fmt.Errorf("atomgraph: unexpected delimiter %v", t)
		}
	case string, bool, float64, nil:
		return t, nil
	default:
		return nil, fmt.Errorf("atomgraph: unexpected JSON token %T", tok)
	}
}

// valueToJSON is the inverse of jsonToValue: it walks a rebuilt binary value
// and emits it through enc, preserving Object key order. It does not
// attempt to represent shared or cyclic structure - JSON has no equivalent
// of a back-reference - so a graph with sharing or cycles round-trips
// through the atom stream faithfully but flattens to a tree on the way back
// out to JSON, duplicating any shared subtree and refusing an unbroken
// cycle outright.
func valueToJSON(enc *jsonEncoder, v interface{}, seen map[interface{}]bool) error {
	switch t := v.(type) {
	case *binary.Array:
		if seen[t] {
			return fmt.Errorf("atomgraph: cannot render a cyclic array as JSON")
		}
		seen[t] = true
		defer delete(seen, t)
		enc.raw("[")
		for i, item := range t.Items {
			if i > 0 {
				enc.raw(",")
			}
			if err := valueToJSON(enc, item, seen); err != nil {
				return err
			}
		}
		enc.raw("]")
		return nil
	case *binary.Object:
		if seen[t] {
			return fmt.Errorf("atomgraph: cannot render a cyclic object as JSON")
		}
		seen[t] = true
		defer delete(seen, t)
		enc.raw("{")
		for i, key := range t.Keys {
			if i > 0 {
				enc.raw(",")
			}
			if err := enc.value(key); err != nil {
				return err
			}
			enc.raw(":")
			if err := valueToJSON(enc, t.Vals[i], seen); err != nil {
				return err
			}
		}
		enc.raw("}")
		return nil
	case *binary.Map:
		// JSON has no map type with non-string keys; project it as an array
		// of [key, value] pairs instead of lossily coercing keys to strings.
		if seen[t] {
			return fmt.Errorf("atomgraph: cannot render a cyclic map as JSON")
		}
		seen[t] = true
		defer delete(seen, t)
		enc.raw("[")
		for i, key := range t.Keys {
			if i > 0 {
				enc.raw(",")
			}
			enc.raw("[")
			if err := valueToJSON(enc, key, seen); err != nil {
				return err
			}
			enc.raw(",")
			if err := valueToJSON(enc, t.Vals[i], seen); err != nil {
				return err
			}
			enc.raw("]")
		}
		enc.raw("]")
		return nil
	case *binary.Set:
		if seen[t] {
			return fmt.Errorf("atomgraph: cannot render a cyclic set as JSON")
		}
		seen[t] = true
		defer delete(seen, t)
		enc.raw("[")
		for i, item := range t.Items {
			if i > 0 {
				enc.raw(",")
			}
			if err := valueToJSON(enc, item, seen); err != nil {
				return err
			}
		}
		enc.raw("]")
		return nil
	case *binary.Bytes:
		return enc.value(t.Data)
	case binary.VoidValue:
		enc.raw("null")
		return nil
	default:
		return enc.value(v)
	}
}
