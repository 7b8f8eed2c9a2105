// Package bannercatalog builds the GeoJSON FeatureCollection of every
// banner carried by decoded map items. github.com/paulmach/orb/geojson is
// the retrieved corpus's own GeoJSON library
// (other_examples/RoninZc-tiler__tile.go imports the orb module for its
// tile/geometry types), used here rather than hand-assembling GeoJSON's
// nested JSON shape by hand.
package bannercatalog

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/AndrewKvalheim/little-a-map/internal/mapitem"
)

// key identifies a physical banner: two banners are the same iff their
// world positions are bit-equal.
type key [3]int32

type entry struct {
	pos   [3]int32
	color mapitem.DyeColor
	name  string
	maps  map[uint32]struct{}
}

// Build collects every banner referenced by items (already filtered to
// Overworld-dimension, rendering-eligible maps by the caller) into a
// deterministic GeoJSON FeatureCollection.
func Build(items []*mapitem.MapItem) *geojson.FeatureCollection {
	banners := make(map[key]*entry)

	for _, item := range items {
		for _, b := range item.Banners {
			k := key(b.WorldPos)
			e, ok := banners[k]
			if !ok {
				e = &entry{pos: b.WorldPos, color: b.Color, maps: make(map[uint32]struct{})}
				banners[k] = e
			}
			if b.HasName() {
				e.name = b.Name
			}
			e.maps[item.ID] = struct{}{}
		}
	}

	nameCounts := countNamesByColor(banners)

	keys := make([]key, 0, len(banners))
	for k := range banners {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })

	fc := geojson.NewFeatureCollection()
	for _, k := range keys {
		e := banners[k]

		point := orb.Point{float64(e.pos[2]), float64(e.pos[0])} // [z, x] => (lat, lng)
		f := geojson.NewFeature(point)
		f.Properties["color"] = string(e.color)
		if e.name != "" {
			f.Properties["name"] = e.name
			f.Properties["unique"] = nameCounts[nameKey{e.color, e.name}] == 1
		} else {
			f.Properties["unique"] = false
		}
		f.Properties["maps"] = sortedMapIDs(e.maps)

		fc.Append(f)
	}
	return fc
}

type nameKey struct {
	color mapitem.DyeColor
	name  string
}

// countNamesByColor counts, for every (color, name) pair across distinct
// physical banners, how many banners share it — a name is unique iff its
// count is exactly 1: it is non-empty and distinct among all named
// banners of the same color.
func countNamesByColor(banners map[key]*entry) map[nameKey]int {
	counts := make(map[nameKey]int)
	for _, e := range banners {
		if e.name == "" {
			continue
		}
		counts[nameKey{e.color, e.name}]++
	}
	return counts
}

func sortedMapIDs(set map[uint32]struct{}) []uint32 {
	out := make([]uint32, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func lessKey(a, b key) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
