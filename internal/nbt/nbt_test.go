package nbt

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type cacheFixture struct {
	Version string `nbt:"version"`
	IDs     []int32
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := cacheFixture{Version: "1", IDs: []int32{1, 2, 3}}
	if err := NewEncoder(&buf).Encode(in); err != nil {
		t.Fatalf("encode: %v", err)
	}

	root, err := NewDecoder(&buf).Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	version, ok := root.Value.MustString("version")
	if !ok || version != "1" {
		t.Fatalf("version = %q, %v", version, ok)
	}

	ids, ok := root.Value.Get("IDs")
	if !ok || ids.Tag != TagIntArray {
		t.Fatalf("IDs missing or wrong tag: %+v", ids)
	}
	if diff := cmp.Diff([]int32{1, 2, 3}, ids.Ints); diff != "" {
		t.Fatalf("IDs mismatch: %s", diff)
	}
}

func TestDecodeCompoundList(t *testing.T) {
	var buf bytes.Buffer
	type item struct {
		ID int32 `nbt:"id"`
	}
	type doc struct {
		Items []item `nbt:"items"`
	}
	if err := NewEncoder(&buf).Encode(doc{Items: []item{{ID: 7}, {ID: 9}}}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	root, err := NewDecoder(&buf).Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	items, ok := root.Value.MustList("items")
	if !ok || len(items) != 2 {
		t.Fatalf("items = %+v, %v", items, ok)
	}
	id0, _ := items[0].MustInt("id")
	id1, _ := items[1].MustInt("id")
	if id0 != 7 || id1 != 9 {
		t.Fatalf("ids = %d, %d", id0, id1)
	}
}
