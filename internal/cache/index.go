package cache

import (
	"bytes"
	"io"
	"os"
	"sort"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/AndrewKvalheim/little-a-map/internal/nbt"
)

// IndexVersion guards the discovery-cache format the way
// original_source/src/cache.rs's version field guards bincode's: a
// mismatch is treated as "no cache", not an error — the index is an
// optimization only, never load-bearing for correctness.
const IndexVersion = "little-a-map-discovery-cache-v1"

// Referrer records, for one source file, the map ids it was found to
// reference and the modification time that finding is valid as of —
// directly generalizing cache.rs's Referrer.
type Referrer struct {
	MapIDs     []uint32
	ModifiedAt time.Time
}

// Index is the persisted discovery-cache: per-region and per-player-file
// referrer records that let a re-run skip scanning any source file whose
// modification time hasn't moved.
type Index struct {
	Regions map[string]Referrer
	Players map[string]Referrer
}

func NewIndex() *Index {
	return &Index{Regions: make(map[string]Referrer), Players: make(map[string]Referrer)}
}

// Lookup returns the cached map-id set for path if its on-disk
// modification time still matches what was recorded, and false
// otherwise — including when path isn't in the index at all.
func (idx *Index) Lookup(table map[string]Referrer, path string, modifiedAt time.Time) (map[uint32]struct{}, bool) {
	r, ok := table[path]
	if !ok || !r.ModifiedAt.Equal(modifiedAt) {
		return nil, false
	}
	set := make(map[uint32]struct{}, len(r.MapIDs))
	for _, id := range r.MapIDs {
		set[id] = struct{}{}
	}
	return set, true
}

func (idx *Index) RecordRegion(path string, modifiedAt time.Time, mapIDs map[uint32]struct{}) {
	idx.Regions[path] = Referrer{MapIDs: sortedKeys(mapIDs), ModifiedAt: modifiedAt}
}

func (idx *Index) RecordPlayer(path string, modifiedAt time.Time, mapIDs map[uint32]struct{}) {
	idx.Players[path] = Referrer{MapIDs: sortedKeys(mapIDs), ModifiedAt: modifiedAt}
}

func sortedKeys(set map[uint32]struct{}) []uint32 {
	out := make([]uint32, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// referrerRecord is the on-the-wire NBT shape of one Referrer, encoded
// via internal/nbt's reflection-driven Encoder.
type referrerRecord struct {
	Path            string  `nbt:"path"`
	MapIDs          []int32 `nbt:"mapIds"`
	ModifiedAtNanos int64   `nbt:"modifiedAtNanos"`
}

type indexDocument struct {
	Version string           `nbt:"version"`
	Regions []referrerRecord `nbt:"regions"`
	Players []referrerRecord `nbt:"players"`
}

// Load reads a previously saved discovery cache. Any problem reading,
// decompressing, decoding, or a version mismatch yields a fresh empty
// Index rather than an error: the cache's absence or corruption only
// costs a slower run, never a wrong one.
func Load(path string) *Index {
	f, err := os.Open(path)
	if err != nil {
		return NewIndex()
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return NewIndex()
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return NewIndex()
	}

	root, err := nbt.NewDecoder(bytes.NewReader(data)).Decode()
	if err != nil {
		return NewIndex()
	}

	version, _ := root.Value.MustString("version")
	if version != IndexVersion {
		return NewIndex()
	}

	idx := NewIndex()
	decodeReferrerList(root.Value, "regions", idx.Regions)
	decodeReferrerList(root.Value, "players", idx.Players)
	return idx
}

func decodeReferrerList(root nbt.Value, key string, into map[string]Referrer) {
	list, ok := root.MustList(key)
	if !ok {
		return
	}
	for _, entry := range list {
		path, ok := entry.MustString("path")
		if !ok {
			continue
		}
		nanos, _ := entry.MustLong("modifiedAtNanos")

		rawIDs, _ := entry.MustIntArray("mapIds")
		ids := make([]uint32, len(rawIDs))
		for i, v := range rawIDs {
			ids[i] = uint32(v)
		}

		into[path] = Referrer{MapIDs: ids, ModifiedAt: time.Unix(0, nanos)}
	}
}

// Save persists idx as an NBT compound framed through a zstd stream, the
// same envelope slime_writer.go uses for its own NBT sections.
func Save(path string, idx *Index) error {
	doc := indexDocument{Version: IndexVersion}
	for p, r := range idx.Regions {
		doc.Regions = append(doc.Regions, toRecord(p, r))
	}
	for p, r := range idx.Players {
		doc.Players = append(doc.Players, toRecord(p, r))
	}

	var buf bytes.Buffer
	if err := nbt.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}

	var compressed bytes.Buffer
	zw, err := zstd.NewWriter(&compressed)
	if err != nil {
		return err
	}
	if _, err := buf.WriteTo(zw); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	return writeFileAtomic(path, compressed.Bytes())
}

func toRecord(path string, r Referrer) referrerRecord {
	ids := make([]int32, len(r.MapIDs))
	for i, id := range r.MapIDs {
		ids[i] = int32(id)
	}
	return referrerRecord{Path: path, MapIDs: ids, ModifiedAtNanos: r.ModifiedAt.UnixNano()}
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
