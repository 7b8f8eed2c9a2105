package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIndexSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index")

	idx := NewIndex()
	modified := time.Unix(1700000000, 123456)
	idx.RecordRegion("r.0.0.mca", modified, map[uint32]struct{}{1: {}, 3: {}, 2: {}})
	idx.RecordPlayer("Steve.dat", modified, map[uint32]struct{}{7: {}})

	if err := Save(path, idx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := Load(path)

	ids, ok := loaded.Lookup(loaded.Regions, "r.0.0.mca", modified)
	if !ok {
		t.Fatal("expected a cache hit for the saved region entry")
	}
	if len(ids) != 3 {
		t.Fatalf("got %d map ids, want 3", len(ids))
	}
	for _, id := range []uint32{1, 2, 3} {
		if _, present := ids[id]; !present {
			t.Fatalf("missing map id %d", id)
		}
	}

	if _, ok := loaded.Lookup(loaded.Players, "Steve.dat", modified); !ok {
		t.Fatal("expected a cache hit for the saved player entry")
	}
}

func TestIndexLookupMissesOnModTimeChange(t *testing.T) {
	idx := NewIndex()
	original := time.Unix(1000, 0)
	idx.RecordRegion("r.0.0.mca", original, map[uint32]struct{}{1: {}})

	if _, ok := idx.Lookup(idx.Regions, "r.0.0.mca", original.Add(time.Second)); ok {
		t.Fatal("expected a cache miss when the on-disk modification time moved")
	}
}

func TestIndexLookupMissesOnUnknownPath(t *testing.T) {
	idx := NewIndex()
	if _, ok := idx.Lookup(idx.Regions, "never-recorded.mca", time.Unix(0, 0)); ok {
		t.Fatal("expected a cache miss for a path never recorded")
	}
}

func TestLoadMissingFileYieldsEmptyIndex(t *testing.T) {
	dir := t.TempDir()

	idx := Load(filepath.Join(dir, "absent"))
	if len(idx.Regions) != 0 || len(idx.Players) != 0 {
		t.Fatal("expected an empty index when the cache file is missing")
	}
}

func TestLoadCorruptFileYieldsEmptyIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index")

	if err := os.WriteFile(path, []byte("not a zstd stream"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	idx := Load(path)
	if len(idx.Regions) != 0 || len(idx.Players) != 0 {
		t.Fatal("expected an empty index when the cache file is corrupt")
	}
}
