package pipeline

import (
	"image"

	"github.com/AndrewKvalheim/little-a-map/internal/cache"
	"github.com/AndrewKvalheim/little-a-map/internal/mapitem"
	"github.com/AndrewKvalheim/little-a-map/internal/palette"
	"github.com/AndrewKvalheim/little-a-map/internal/tile"
)

// renderMapArtifact writes a map's standalone 128×128 inspect-popup
// render, keyed by the map file's own modification time rather than by
// tile contributors.
func renderMapArtifact(opts Options, item *mapitem.MapItem, table []palette.RGB) (wrote bool, err error) {
	sig := cache.ComputeMapSignature(item)
	webpPath, sigPath := cache.MapArtifactPaths(opts.OutputDir, item.ID)

	if !opts.Force {
		if existing, ok := cache.ReadSidecar(sigPath); ok && existing.Equal(sig) {
			return false, nil
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, tile.TileBlocks, tile.TileBlocks))
	for y := 0; y < tile.TileBlocks; y++ {
		for x := 0; x < tile.TileBlocks; x++ {
			r, g, b, a := palette.Resolve(table, item.Colors[y*tile.TileBlocks+x])
			off := img.PixOffset(x, y)
			img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = r, g, b, a
		}
	}

	data, err := tile.EncodeLossless(img)
	if err != nil {
		return false, err
	}
	if err := tile.WriteAtomic(webpPath, data); err != nil {
		return false, err
	}
	if err := cache.WriteSidecar(sigPath, sig); err != nil {
		return false, err
	}
	return true, nil
}
