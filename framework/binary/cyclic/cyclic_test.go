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

package cyclic_test

import (
	"bytes"
	"math"
	"testing"

	"atomgraph/core/assert"
	"atomgraph/core/log"
	"atomgraph/framework/binary"
	"atomgraph/framework/binary/cyclic"
)

func roundTrip(t *testing.T, v interface{}) interface{} {
	t.Helper()
	atoms, err := cyclic.Atomize(v, binary.DefaultOptions())
	if err != nil {
		t.Fatalf("Atomize: %v", err)
	}
	data, err := cyclic.SerializeAtoms(atoms)
	if err != nil {
		t.Fatalf("SerializeAtoms: %v", err)
	}
	back, err := cyclic.DeserializeAtoms(data)
	if err != nil {
		t.Fatalf("DeserializeAtoms: %v", err)
	}
	got, err := cyclic.Rebuild(back, nil, nil)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return got
}

func TestScalarsRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	for _, v := range []interface{}{nil, true, false, "hello", 3.5, -12} {
		got := roundTrip(t, v)
		switch v.(type) {
		case int:
			// integers come back as int64, the atom stream's native integer type.
			assert.With(ctx).For("%v", v).That(got).Equals(int64(v.(int)))
		default:
			assert.With(ctx).For("%v", v).That(got).Equals(v)
		}
	}
}

func TestArrayRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	a := &binary.Array{Items: []interface{}{"a", "b", int64(3)}}
	got := roundTrip(t, a).(*binary.Array)
	assert.With(ctx).For("length").That(len(got.Items)).Equals(3)
	assert.With(ctx).For("items").ThatSlice(got.Items).DeepEquals(a.Items)
}

func TestSerializeDeserializeComposeAtomizeAndSerializeAtoms(t *testing.T) {
	ctx := log.Testing(t)
	a := &binary.Array{Items: []interface{}{"a", "b", int64(3)}}

	data, err := cyclic.Serialize(a, binary.DefaultOptions())
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	v, err := cyclic.Deserialize(data, nil, nil)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	got, ok := v.(*binary.Array)
	if !ok {
		t.Fatalf("Deserialize returned %T, not *binary.Array", v)
	}
	assert.With(ctx).For("items").ThatSlice(got.Items).DeepEquals(a.Items)
}

func TestObjectRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	o := &binary.Object{}
	o.Set("name", "gopher")
	o.Set("age", int64(11))
	got := roundTrip(t, o).(*binary.Object)
	name, _ := got.Get("name")
	age, _ := got.Get("age")
	assert.With(ctx).For("name").That(name).Equals("gopher")
	assert.With(ctx).For("age").That(age).Equals(int64(11))
	assert.With(ctx).For("key order").ThatSlice(got.Keys).Equals(o.Keys)
}

func TestMapRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	m := &binary.Map{}
	m.Set("x", int64(1))
	m.Set("y", int64(2))
	got := roundTrip(t, m).(*binary.Map)
	x, _ := got.Get("x")
	assert.With(ctx).For("x").That(x).Equals(int64(1))
}

func TestSetRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	s := &binary.Set{}
	s.Add("a")
	s.Add("b")
	got := roundTrip(t, s).(*binary.Set)
	assert.With(ctx).For("members").ThatSlice(got.Items).Equals(s.Items)
}

func TestSharedReferenceIsDeduped(t *testing.T) {
	ctx := log.Testing(t)
	shared := &binary.Array{Items: []interface{}{"shared"}}
	root := &binary.Array{Items: []interface{}{shared, shared}}

	atoms, err := cyclic.Atomize(root, binary.DefaultOptions())
	if err != nil {
		t.Fatalf("Atomize: %v", err)
	}
	// shared should be atomized once: its header cell followed by its one
	// child, then a single back-reference cell for the second slot.
	backRefs := 0
	for _, c := range atoms {
		if c.Op == binary.OpBackRef {
			backRefs++
		}
	}
	assert.With(ctx).For("back-reference count").That(backRefs).Equals(1)

	got := roundTrip(t, root).(*binary.Array)
	a := got.Items[0].(*binary.Array)
	b := got.Items[1].(*binary.Array)
	assert.With(ctx).For("dedup preserved identity").That(a == b).Equals(true)
}

func TestSelfReferenceRoundTrips(t *testing.T) {
	ctx := log.Testing(t)
	self := &binary.Array{}
	self.Items = []interface{}{"before", self, "after"}

	got := roundTrip(t, self).(*binary.Array)
	assert.With(ctx).For("length").That(len(got.Items)).Equals(3)
	assert.With(ctx).For("self reference").That(got.Items[1] == interface{}(got)).Equals(true)
}

func TestCycleWithoutAllowSelfReferenceFails(t *testing.T) {
	ctx := log.Testing(t)
	self := &binary.Array{}
	self.Items = []interface{}{self}

	opts := binary.DefaultOptions()
	opts.Array = func(w binary.Writer, v interface{}) (bool, error) {
		a := v.(*binary.Array)
		w.PushJump(binary.ArrayHeader)
		for _, item := range a.Items {
			if err := w.WriteChild(item); err != nil {
				return false, err
			}
		}
		return true, w.PopJump()
	}

	_, err := cyclic.Atomize(self, opts)
	assert.With(ctx).For("missing AllowSelfReference").ThatError(err).Equals(binary.ErrInfiniteLoop)
}

func TestEmptyBuilderIsRejected(t *testing.T) {
	ctx := log.Testing(t)
	opts := binary.DefaultOptions()
	opts.Instance = func(w binary.Writer, v interface{}) (bool, error) {
		return false, nil
	}
	_, err := cyclic.Atomize(struct{ X int }{1}, opts)
	assert.With(ctx).For("value encoded into nothing").ThatError(err).Equals(binary.ErrValueEncodedIntoNothing)
}

func TestUnsupportedValueFails(t *testing.T) {
	ctx := log.Testing(t)
	opts := binary.DefaultOptions()
	_, err := cyclic.Atomize(struct{ X int }{1}, opts)
	assert.With(ctx).For("no Instance builder registered").That(err).NotEquals(nil)
}

func TestKeepUnknownsAsIs(t *testing.T) {
	ctx := log.Testing(t)
	opts := binary.DefaultOptions()
	opts.KeepUnknownsAsIs = true
	got := roundTripWithOptions(t, 7, opts)
	assert.With(ctx).For("kept as is").That(got).Equals(int64(7))
}

func TestSelfReferentialObjectRoundTrips(t *testing.T) {
	ctx := log.Testing(t)
	o := &binary.Object{}
	o.Set("test", int64(1))
	o.Set("test", o)

	got := roundTrip(t, o).(*binary.Object)
	test, _ := got.Get("test")
	assert.With(ctx).For("self reference").That(test == interface{}(got)).Equals(true)
}

func TestMapValueReferencesTheMapItself(t *testing.T) {
	ctx := log.Testing(t)
	x := &binary.Array{}
	x.Items = []interface{}{int64(1)}
	x.Items = append(x.Items, x)

	y := &binary.Map{}
	y.Set(int64(1), "hi")
	y.Set("hi", int64(4))
	inner := &binary.Set{}
	inner.Add(y)
	inner.Add("boom")
	y.Set(x, inner)

	got := roundTrip(t, y).(*binary.Map)
	hi, _ := got.Get("hi")
	four, _ := got.Get(int64(1))
	assert.With(ctx).For("y.get(1)").That(four).Equals("hi")
	assert.With(ctx).For("y.get(hi)").That(hi).Equals(int64(4))

	// x has no stable identity across the round trip, so look the Set value
	// up by its position (the third and last entry) rather than by key.
	setVal, ok := got.Vals[len(got.Vals)-1].(*binary.Set)
	if !ok {
		t.Fatalf("last map value is not a *binary.Set: %#v", got.Vals[len(got.Vals)-1])
	}
	assert.With(ctx).For("set's first element is the map itself").That(setVal.Items[0] == interface{}(got)).Equals(true)
}

func TestCyclicArrayScenario(t *testing.T) {
	ctx := log.Testing(t)
	x := &binary.Array{}
	x.Items = []interface{}{int64(1)}
	x.Items = append(x.Items, x)

	atoms, err := cyclic.Atomize(x, binary.DefaultOptions())
	if err != nil {
		t.Fatalf("Atomize: %v", err)
	}
	// header(Array, until=2), AsIs(1), back-reference to the array's own
	// index (0), matching the atom shape described for this scenario.
	assert.With(ctx).For("cell count").That(len(atoms)).Equals(3)
	assert.With(ctx).For("header kind").That(atoms[0].Op).Equals(binary.OpHeader)
	assert.With(ctx).For("until").That(atoms[0].Header.Until).Equals(2)
	assert.With(ctx).For("back-reference").That(atoms[2].Op).Equals(binary.OpBackRef)
	assert.With(ctx).For("back-reference target").That(atoms[2].Ref).Equals(^0)

	got := roundTrip(t, x).(*binary.Array)
	assert.With(ctx).For("length").That(len(got.Items)).Equals(2)
	assert.With(ctx).For("y[0]").That(got.Items[0]).Equals(int64(1))
	assert.With(ctx).For("y[1] is y").That(got.Items[1] == interface{}(got)).Equals(true)
}

func TestNegativeIntegerRoundTrips(t *testing.T) {
	ctx := log.Testing(t)
	got := roundTrip(t, -1)
	assert.With(ctx).For("-1").That(got).Equals(int64(-1))
}

func TestBoundaryIntegersRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	for _, n := range []int64{0, -1, 1<<30 - 1, -(1<<30 - 1), 1 << 30, -(1 << 30)} {
		got := roundTrip(t, n)
		assert.With(ctx).For("%d", n).That(got).Equals(n)
	}
}

func TestEmptyContainersRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	a := roundTrip(t, &binary.Array{}).(*binary.Array)
	assert.With(ctx).For("empty array").That(len(a.Items)).Equals(0)

	o := roundTrip(t, &binary.Object{}).(*binary.Object)
	assert.With(ctx).For("empty object").That(len(o.Keys)).Equals(0)

	m := roundTrip(t, &binary.Map{}).(*binary.Map)
	assert.With(ctx).For("empty map").That(len(m.Keys)).Equals(0)

	s := roundTrip(t, &binary.Set{}).(*binary.Set)
	assert.With(ctx).For("empty set").That(len(s.Items)).Equals(0)
}

func TestNaNIsPreserved(t *testing.T) {
	ctx := log.Testing(t)
	got := roundTrip(t, math.NaN()).(float64)
	assert.With(ctx).For("NaN preserved").That(math.IsNaN(got)).Equals(true)
}

func TestMapOrderingIsPreserved(t *testing.T) {
	ctx := log.Testing(t)
	m := &binary.Map{}
	m.Set("k1", int64(1))
	m.Set("k2", int64(2))
	m.Set("k3", int64(3))
	got := roundTrip(t, m).(*binary.Map)
	assert.With(ctx).For("key order").ThatSlice(got.Keys).DeepEquals(m.Keys)
}

func TestDictionaryAgreementAvoidsWireCost(t *testing.T) {
	ctx := log.Testing(t)
	shared := &binary.Array{Items: []interface{}{"shared"}}
	dictionary := []interface{}{shared}
	opts := binary.DefaultOptions()
	opts.Dictionary = dictionary

	atoms, err := cyclic.Atomize(shared, opts)
	if err != nil {
		t.Fatalf("Atomize: %v", err)
	}
	assert.With(ctx).For("dictionary hit encodes as a single back-reference").That(len(atoms)).Equals(1)
	assert.With(ctx).For("back-reference op").That(atoms[0].Op).Equals(binary.OpBackRef)

	data, err := cyclic.SerializeAtoms(atoms)
	if err != nil {
		t.Fatalf("SerializeAtoms: %v", err)
	}
	back, err := cyclic.DeserializeAtoms(data)
	if err != nil {
		t.Fatalf("DeserializeAtoms: %v", err)
	}
	got, err := cyclic.Rebuild(back, dictionary, nil)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	assert.With(ctx).For("dictionary back-reference resolves to the caller's value").That(got == interface{}(shared)).Equals(true)
}

func TestSharedValueAsMapKeyRoundTrips(t *testing.T) {
	ctx := log.Testing(t)
	shared := &binary.Array{Items: []interface{}{int64(1)}}
	m := &binary.Map{}
	m.Set(shared, "v")
	root := &binary.Array{Items: []interface{}{shared, m}}

	got := roundTrip(t, root).(*binary.Array)
	assert.With(ctx).For("root has two children").That(len(got.Items)).Equals(2)

	gotMap, ok := got.Items[1].(*binary.Map)
	if !ok {
		t.Fatalf("second child is %T, not *binary.Map", got.Items[1])
	}
	assert.With(ctx).For("map key count").That(len(gotMap.Keys)).Equals(1)
	val, ok := gotMap.Get(gotMap.Keys[0])
	if !ok {
		t.Fatalf("value missing for decoded map's only key")
	}
	assert.With(ctx).For("value for the shared-array key").That(val).Equals("v")
	assert.With(ctx).For("key is the same array pointed to from root").That(gotMap.Keys[0] == got.Items[0]).Equals(true)
}

func TestEncodingIsDeterministic(t *testing.T) {
	ctx := log.Testing(t)
	v := &binary.Array{Items: []interface{}{"a", int64(2), true, nil}}

	atoms1, err := cyclic.Atomize(v, binary.DefaultOptions())
	if err != nil {
		t.Fatalf("Atomize: %v", err)
	}
	data1, err := cyclic.SerializeAtoms(atoms1)
	if err != nil {
		t.Fatalf("SerializeAtoms: %v", err)
	}

	atoms2, err := cyclic.Atomize(v, binary.DefaultOptions())
	if err != nil {
		t.Fatalf("Atomize: %v", err)
	}
	data2, err := cyclic.SerializeAtoms(atoms2)
	if err != nil {
		t.Fatalf("SerializeAtoms: %v", err)
	}

	assert.With(ctx).For("byte-identical output").That(bytes.Equal(data1, data2)).Equals(true)
}

func TestCustomBuilderEmittingZeroChildrenIsDecodable(t *testing.T) {
	ctx := log.Testing(t)
	type marker struct{}

	opts := binary.DefaultOptions()
	opts.Classifier = binary.ClassifierFunc(func(v interface{}) binary.Kind {
		if _, ok := v.(marker); ok {
			return binary.Custom
		}
		return binary.DefaultClassifier.Classify(v)
	})
	opts.Custom = func(w binary.Writer, v interface{}) (bool, error) {
		w.PushJump(binary.CustomHeader)
		return false, w.PopJump()
	}

	atoms, err := cyclic.Atomize(marker{}, opts)
	if err != nil {
		t.Fatalf("Atomize: %v", err)
	}
	data, err := cyclic.SerializeAtoms(atoms)
	if err != nil {
		t.Fatalf("SerializeAtoms: %v", err)
	}
	back, err := cyclic.DeserializeAtoms(data)
	if err != nil {
		t.Fatalf("DeserializeAtoms: %v", err)
	}
	got, err := cyclic.Rebuild(back, nil, func(r *cyclic.Rebuilder) (interface{}, error) {
		return marker{}, nil
	})
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	assert.With(ctx).For("zero-child custom atom decodes").That(got).Equals(marker{})
}

func roundTripWithOptions(t *testing.T, v interface{}, opts binary.Options) interface{} {
	t.Helper()
	atoms, err := cyclic.Atomize(v, opts)
	if err != nil {
		t.Fatalf("Atomize: %v", err)
	}
	data, err := cyclic.SerializeAtoms(atoms)
	if err != nil {
		t.Fatalf("SerializeAtoms: %v", err)
	}
	back, err := cyclic.DeserializeAtoms(data)
	if err != nil {
		t.Fatalf("DeserializeAtoms: %v", err)
	}
	got, err := cyclic.Rebuild(back, opts.Dictionary, nil)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return got
}
