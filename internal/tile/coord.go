// Package tile projects decoded map items onto the native-zoom tile
// grid, composites them in stacking order, generates mipmaps, and
// encodes the result as WebP.
package tile

import "math"

const (
	// TileBlocks is the world-block edge length of one tile at native zoom.
	TileBlocks = 128

	// MaxZoom is the coarsest mipmap level: zooms 1 through 3 are
	// downscaled mipmaps of the native zoom-0 tiles.
	MaxZoom = 3

	// MetaZoomPrefix is the fixed, viewer-oriented path segment meta.json
	// sidecars are written under; it does not participate in tile math.
	MetaZoomPrefix = 4
)

// Coord addresses one tile in the pyramid.
type Coord struct {
	Zoom int
	X, Y int32
}

// Parent returns the coarser-zoom tile this one downsamples into, and
// false if Zoom is already MaxZoom.
func (c Coord) Parent() (Coord, bool) {
	if c.Zoom >= MaxZoom {
		return Coord{}, false
	}
	return Coord{Zoom: c.Zoom + 1, X: floorDiv32(c.X, 2), Y: floorDiv32(c.Y, 2)}, true
}

// Quadrant reports which of the parent's four children this tile is:
// 0 = top-left, 1 = top-right, 2 = bottom-left, 3 = bottom-right.
func (c Coord) Quadrant() int {
	dx := int(mod32(c.X, 2))
	dy := int(mod32(c.Y, 2))
	return dy*2 + dx
}

// Children returns the four finer-zoom tiles that downsample into c.
func (c Coord) Children() [4]Coord {
	z, x, y := c.Zoom-1, c.X*2, c.Y*2
	return [4]Coord{
		{Zoom: z, X: x, Y: y},
		{Zoom: z, X: x + 1, Y: y},
		{Zoom: z, X: x, Y: y + 1},
		{Zoom: z, X: x + 1, Y: y + 1},
	}
}

// CoverageTiles returns every native-zoom (zoom 0) tile coordinate that a
// map item at the given scale and center intersects. ok is false if the
// coverage square extends outside the int32 world-coordinate range: such
// a map is rejected, not guessed at.
func CoverageTiles(scale uint8, centerX, centerZ int32) ([]Coord, bool) {
	edge := int64(TileBlocks) << scale
	originX := int64(centerX) - edge/2
	originZ := int64(centerZ) - edge/2

	if !fitsInt32(originX) || !fitsInt32(originX+edge-1) || !fitsInt32(originZ) || !fitsInt32(originZ+edge-1) {
		return nil, false
	}

	minTileX := floorDivI64(originX, TileBlocks)
	maxTileX := floorDivI64(originX+edge-1, TileBlocks)
	minTileZ := floorDivI64(originZ, TileBlocks)
	maxTileZ := floorDivI64(originZ+edge-1, TileBlocks)

	var tiles []Coord
	for x := minTileX; x <= maxTileX; x++ {
		for z := minTileZ; z <= maxTileZ; z++ {
			tiles = append(tiles, Coord{Zoom: 0, X: int32(x), Y: int32(z)})
		}
	}
	return tiles, true
}

func fitsInt32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

func floorDivI64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorDiv32(a, b int32) int32 {
	return int32(floorDivI64(int64(a), int64(b)))
}

func mod32(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
