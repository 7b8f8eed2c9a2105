// Package mapsearch walks every block entity, entity, and player
// inventory reachable in a save to find every minecraft:filled_map item,
// recursing into containers to arbitrary depth.
package mapsearch

import "github.com/AndrewKvalheim/little-a-map/internal/nbt"

// CollectMapIDs walks every compound reachable from root — block entities,
// entities, player inventories, and arbitrarily nested container items
// alike — and returns the set of minecraft:filled_map item ids found.
//
// The walk is iterative over an explicit stack of pending NBT values
// rather than native recursion: a pathologically deep chain of nested
// shulker boxes or bundles must not blow the goroutine stack. Scanning
// every compound in the document, rather than following only a fixed set
// of known container paths, is a deliberate generalization: the set of
// paths a filled map can appear under has grown across save versions
// (shulker boxes, item frames, lecterns, decorated pots, bundles, dropped
// items, glow item frames...), and a full walk finds an item wherever any
// of them puts it without needing a path table kept in sync with the
// game's own format changes.
func CollectMapIDs(root nbt.Value) map[uint32]struct{} {
	ids := make(map[uint32]struct{})

	stack := []nbt.Value{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v.Tag {
		case nbt.TagCompound:
			if id, ok := mapIDOf(v); ok {
				ids[id] = struct{}{}
			}
			for _, child := range v.Compound {
				stack = append(stack, child)
			}
		case nbt.TagList:
			stack = append(stack, v.List...)
		}
	}

	return ids
}

// mapIDOf reports whether v is an item stack compound naming
// minecraft:filled_map, returning its map id in either the 1.20.5+
// components encoding (components."minecraft:map_id") or the legacy
// tag.map encoding.
func mapIDOf(v nbt.Value) (uint32, bool) {
	id, ok := v.MustString("id")
	if !ok || id != "minecraft:filled_map" {
		return 0, false
	}

	if components, ok := v.MustCompound("components"); ok {
		if mapID, ok := components.MustInt("minecraft:map_id"); ok {
			return uint32(mapID), true
		}
	}
	if tag, ok := v.MustCompound("tag"); ok {
		if mapID, ok := tag.MustInt("map"); ok {
			return uint32(mapID), true
		}
	}
	return 0, false
}
