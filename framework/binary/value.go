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

package binary

// This file supplies an out-of-the-box value model for hosts that do not
// already have their own object graph to traverse. Its composite types are
// used by pointer so that two graphs holding structurally identical but
// distinct containers are not mistaken for the same reference: the
// reference table below is keyed by identity, and in Go pointer equality is
// the natural stand-in for that. Go's native map type is not used for
// Object or Map because it does not preserve insertion order, and the atom
// stream's key order is observable on the wire.

// Array is an ordered, index-keyed container.
type Array struct{ Items []interface{} }

// Object is an ordered, string-keyed container.
type Object struct {
	Keys []string
	Vals []interface{}
}

// Map is an ordered container keyed by arbitrary values.
type Map struct {
	Keys []interface{}
	Vals []interface{}
}

// Set is an ordered container of unique values, kept in insertion order.
type Set struct{ Items []interface{} }

// Bytes wraps a raw byte buffer so it has pointer identity for the
// reference table, the same way Array, Object, Map and Set do.
type Bytes struct{ Data []byte }

// VoidValue is the explicit value of Kind Void. Go has a single bottom
// value, nil, which DefaultOptions already uses for Null; a host that
// needs void and null to round-trip as visibly different wire atoms can
// classify VoidValue{} separately and register its own Void Builder.
type VoidValue struct{}

// Get returns the value stored under key, and whether it was found.
func (o *Object) Get(key string) (interface{}, bool) {
	for i, k := range o.Keys {
		if k == key {
			return o.Vals[i], true
		}
	}
	return nil, false
}

// Set stores value under key, appending a new slot if key is not present.
func (o *Object) Set(key string, value interface{}) {
	for i, k := range o.Keys {
		if k == key {
			o.Vals[i] = value
			return
		}
	}
	o.Keys = append(o.Keys, key)
	o.Vals = append(o.Vals, value)
}

// Get returns the value stored under key, and whether it was found. Keys
// are compared with ==, so key must be a comparable value.
func (m *Map) Get(key interface{}) (interface{}, bool) {
	for i, k := range m.Keys {
		if k == key {
			return m.Vals[i], true
		}
	}
	return nil, false
}

// Set stores value under key, appending a new slot if key is not present.
func (m *Map) Set(key, value interface{}) {
	for i, k := range m.Keys {
		if k == key {
			m.Vals[i] = value
			return
		}
	}
	m.Keys = append(m.Keys, key)
	m.Vals = append(m.Vals, value)
}

// Add appends v to the set if it is not already a member.
func (s *Set) Add(v interface{}) {
	for _, i := range s.Items {
		if i == v {
			return
		}
	}
	s.Items = append(s.Items, v)
}

// DefaultClassifier recognises nil, the built-in scalar kinds, and the
// composite types declared in this file. Anything else classifies as
// Instance, so a host relying on it should register an Instance Builder or
// set KeepUnknownsAsIs.
var DefaultClassifier = ClassifierFunc(defaultClassify)

func defaultClassify(v interface{}) Kind {
	switch v.(type) {
	case nil:
		return Null
	case VoidValue:
		return Void
	case bool:
		return Boolean
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Number
	case string:
		return String
	case *Bytes:
		return BytesKind
	case *Array:
		return ArrayKind
	case *Object:
		return ObjectKind
	case *Map:
		return MapKind
	case *Set:
		return SetKind
	default:
		return Instance
	}
}

// numberCacheable reports whether a Number atom is worth a reference-table
// slot. NaN never compares equal to a prior NaN, and a small integer already
// fits in a back-reference's own varint, so caching either only spends an
// atom index for no later win.
func numberCacheable(v interface{}) bool {
	f, ok := asFloat64(v)
	if !ok {
		return true
	}
	if f != f { // NaN
		return false
	}
	if f == float64(int64(f)) && f >= -128 && f < 128 {
		return false
	}
	return true
}

func asFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// DefaultOptions returns an Options wired to the composite types in this
// file: Array, Object, Map and Set atomize and rebuild through the natural
// container types above, scalars pass straight through, and Instance and
// Custom are left for the caller to fill in.
func DefaultOptions() Options {
	return Options{
		Classifier: DefaultClassifier,

		Void:    func(w Writer, v interface{}) (bool, error) { w.EmitRaw(VoidValue{}); return false, nil },
		Null:    func(w Writer, v interface{}) (bool, error) { w.EmitRaw(nil); return false, nil },
		Boolean: func(w Writer, v interface{}) (bool, error) { w.EmitRaw(v); return false, nil },
		Number: func(w Writer, v interface{}) (bool, error) {
			w.EmitAsIs(v)
			return numberCacheable(v), nil
		},
		String:  func(w Writer, v interface{}) (bool, error) { w.EmitRaw(v); return true, nil },
		Bytes: func(w Writer, v interface{}) (bool, error) {
			w.EmitRaw(v.(*Bytes))
			return true, nil
		},

		Array: func(w Writer, v interface{}) (bool, error) {
			a := v.(*Array)
			w.AllowSelfReference()
			w.PushJump(ArrayHeader)
			for _, item := range a.Items {
				if err := w.WriteChild(item); err != nil {
					return false, err
				}
			}
			return true, w.PopJump()
		},
		// Object and Map write every key inside the jumped region, close
		// it, then write every value outside the region in the same
		// order: a deserializer can allocate the shell, read the keys
		// bounded by the header's until-index, and only then read
		// exactly that many trailing values - which may themselves
		// reference the object or map being built.
		Object: func(w Writer, v interface{}) (bool, error) {
			o := v.(*Object)
			w.AllowSelfReference()
			w.PushJump(ObjectHeader)
			for _, key := range o.Keys {
				if err := w.WriteChild(key); err != nil {
					return false, err
				}
			}
			if err := w.PopJump(); err != nil {
				return false, err
			}
			for _, val := range o.Vals {
				if err := w.WriteChild(val); err != nil {
					return false, err
				}
			}
			return true, nil
		},
		Map: func(w Writer, v interface{}) (bool, error) {
			m := v.(*Map)
			w.AllowSelfReference()
			w.PushJump(MapHeader)
			for _, key := range m.Keys {
				if err := w.WriteChild(key); err != nil {
					return false, err
				}
			}
			if err := w.PopJump(); err != nil {
				return false, err
			}
			for _, val := range m.Vals {
				if err := w.WriteChild(val); err != nil {
					return false, err
				}
			}
			return true, nil
		},
		Set: func(w Writer, v interface{}) (bool, error) {
			s := v.(*Set)
			w.AllowSelfReference()
			w.PushJump(SetHeader)
			for _, item := range s.Items {
				if err := w.WriteChild(item); err != nil {
					return false, err
				}
			}
			return true, w.PopJump()
		},
	}
}
