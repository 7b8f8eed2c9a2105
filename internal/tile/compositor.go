package tile

import (
	"image"
	"sort"

	"github.com/AndrewKvalheim/little-a-map/internal/mapitem"
	"github.com/AndrewKvalheim/little-a-map/internal/palette"
)

// Assign computes, for every native-zoom tile any of items intersects, the
// ordered list of contributing maps in compositing order: coarsest
// (largest scale) first, finest last — so that painting the list
// front-to-back leaves the finest map's pixels on top. Maps whose coverage
// square doesn't fit in int32 world coordinates are dropped, with the caller
// expected to log a warning per map id returned in rejected.
func Assign(items []*mapitem.MapItem) (assignments map[Coord][]*mapitem.MapItem, rejected []uint32) {
	assignments = make(map[Coord][]*mapitem.MapItem)

	for _, item := range items {
		if item.Dimension != mapitem.DimensionOverworld {
			continue
		}

		tiles, ok := CoverageTiles(item.Scale, item.CenterX, item.CenterZ)
		if !ok {
			rejected = append(rejected, item.ID)
			continue
		}

		for _, t := range tiles {
			assignments[t] = append(assignments[t], item)
		}
	}

	for t, contributors := range assignments {
		sortCompositingOrder(contributors)
		assignments[t] = contributors
	}

	return assignments, rejected
}

// sortCompositingOrder sorts contributors into paint order: coarsest
// (largest scale) first, finest last, for front-to-back painting. Equal-
// scale ties go by id descending, so the lower id — painted last — wins
// where two equal-scale maps overlap.
func sortCompositingOrder(contributors []*mapitem.MapItem) {
	sort.Slice(contributors, func(i, j int) bool {
		if contributors[i].Scale != contributors[j].Scale {
			return contributors[i].Scale > contributors[j].Scale
		}
		return contributors[i].ID > contributors[j].ID
	})
}

// RenderNative composites contributors (already in paint order, per
// Assign) onto the given native-zoom tile and returns the resulting RGBA
// image and whether any pixel is non-transparent.
func RenderNative(tile Coord, contributors []*mapitem.MapItem, table []palette.RGB) (*image.RGBA, bool) {
	img := image.NewRGBA(image.Rect(0, 0, TileBlocks, TileBlocks))
	nonEmpty := false

	originWorldX := int64(tile.X) * TileBlocks
	originWorldZ := int64(tile.Y) * TileBlocks

	for _, item := range contributors {
		edge := int64(TileBlocks) << item.Scale
		mapOriginX := int64(item.CenterX) - edge/2
		mapOriginZ := int64(item.CenterZ) - edge/2
		scaleFactor := int64(1) << item.Scale

		for dy := 0; dy < TileBlocks; dy++ {
			worldZ := originWorldZ + int64(dy)
			srcZ := floorDivI64(worldZ-mapOriginZ, scaleFactor)
			if srcZ < 0 || srcZ >= TileBlocks {
				continue
			}
			for dx := 0; dx < TileBlocks; dx++ {
				worldX := originWorldX + int64(dx)
				srcX := floorDivI64(worldX-mapOriginX, scaleFactor)
				if srcX < 0 || srcX >= TileBlocks {
					continue
				}

				index := item.Colors[srcZ*TileBlocks+srcX]
				r, g, b, a := palette.Resolve(table, index)
				if a == 0 {
					continue // transparent source pixels never overwrite
				}

				offset := img.PixOffset(dx, dy)
				img.Pix[offset] = r
				img.Pix[offset+1] = g
				img.Pix[offset+2] = b
				img.Pix[offset+3] = a
				nonEmpty = true
			}
		}
	}

	return img, nonEmpty
}
