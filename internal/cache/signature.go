// Package cache implements the signature contract that drives incremental
// re-rendering, and the orphan pruner that removes tiles and per-map
// artifacts whose inputs have disappeared.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/AndrewKvalheim/little-a-map/internal/mapitem"
	"github.com/AndrewKvalheim/little-a-map/internal/tile"
)

// ToolVersion is folded into every signature so a format change
// invalidates the whole output directory automatically, without a
// migration path.
const ToolVersion byte = 1

// Signature is the opaque per-tile fingerprint that gates re-rendering.
type Signature [sha256.Size]byte

type contribution struct {
	mapID           uint32
	scale           uint8
	modifiedAtNanos int64
}

// Compute derives the signature for one tile from its zoom/x/y and its
// contributing maps' (id, modification time) pairs, sorted into the same
// order the compositor paints them in. No third-party hash library
// appears anywhere in the retrieved corpus; crypto/sha256 is the
// standard library's own deterministic, fixed-size digest and needs no
// replacement here.
func Compute(c tile.Coord, contributors []*mapitem.MapItem) Signature {
	pairs := make([]contribution, len(contributors))
	for i, m := range contributors {
		pairs[i] = contribution{mapID: m.ID, scale: m.Scale, modifiedAtNanos: m.ModifiedAt.UnixNano()}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].scale != pairs[j].scale {
			return pairs[i].scale > pairs[j].scale
		}
		return pairs[i].mapID > pairs[j].mapID
	})

	h := sha256.New()
	h.Write([]byte{ToolVersion})

	var header [12]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(c.Zoom))
	binary.BigEndian.PutUint32(header[4:8], uint32(c.X))
	binary.BigEndian.PutUint32(header[8:12], uint32(c.Y))
	h.Write(header[:])

	var entry [12]byte
	for _, p := range pairs {
		binary.BigEndian.PutUint32(entry[0:4], p.mapID)
		binary.BigEndian.PutUint64(entry[4:12], uint64(p.modifiedAtNanos))
		h.Write(entry[:])
	}

	var sig Signature
	copy(sig[:], h.Sum(nil))
	return sig
}

// ContributorSet flattens a tile's contributors into the map-id set that
// matters for its signature, deduplicating (a mip tile's contributors are
// the union of its four children's).
func ContributorSet(groups ...[]*mapitem.MapItem) []*mapitem.MapItem {
	seen := make(map[uint32]*mapitem.MapItem)
	for _, g := range groups {
		for _, m := range g {
			seen[m.ID] = m
		}
	}
	out := make([]*mapitem.MapItem, 0, len(seen))
	for _, m := range seen {
		out = append(out, m)
	}
	return out
}
