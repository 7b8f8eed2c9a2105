package tile

import "image"

// Downsample produces the parent mip tile's pixels for one quadrant by
// 2×2 box-averaging a child tile's 128×128 pixels into a 64×64 block,
// ignoring fully-transparent inputs (if all four source pixels of a block
// are transparent, the output pixel is transparent too). quadrant
// selects which 64×64 region of the 128×128 parent buffer the result is
// written into (0=TL, 1=TR, 2=BL, 3=BR, matching Coord.Quadrant).
func Downsample(dst *image.RGBA, child *image.RGBA, quadrant int) {
	offsetX := (quadrant % 2) * (TileBlocks / 2)
	offsetY := (quadrant / 2) * (TileBlocks / 2)

	for y := 0; y < TileBlocks/2; y++ {
		for x := 0; x < TileBlocks/2; x++ {
			r, g, b, a, n := 0, 0, 0, 0, 0
			for _, d := range [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
				sx, sy := x*2+d[0], y*2+d[1]
				off := child.PixOffset(sx, sy)
				if child.Pix[off+3] == 0 {
					continue
				}
				r += int(child.Pix[off])
				g += int(child.Pix[off+1])
				b += int(child.Pix[off+2])
				a += int(child.Pix[off+3])
				n++
			}

			off := dst.PixOffset(offsetX+x, offsetY+y)
			if n == 0 {
				dst.Pix[off], dst.Pix[off+1], dst.Pix[off+2], dst.Pix[off+3] = 0, 0, 0, 0
				continue
			}
			dst.Pix[off] = uint8(r / n)
			dst.Pix[off+1] = uint8(g / n)
			dst.Pix[off+2] = uint8(b / n)
			dst.Pix[off+3] = uint8(a / n)
		}
	}
}

// BuildMip composites the four children (already-rendered 128×128 RGBA
// tiles, any of which may be nil if that child has no content) into one
// parent 128×128 RGBA tile, and reports whether the result has any
// non-transparent pixel.
func BuildMip(children [4]*image.RGBA) (*image.RGBA, bool) {
	parent := image.NewRGBA(image.Rect(0, 0, TileBlocks, TileBlocks))
	nonEmpty := false

	for quadrant, child := range children {
		if child == nil {
			continue
		}
		Downsample(parent, child, quadrant)
	}

	for i := 3; i < len(parent.Pix); i += 4 {
		if parent.Pix[i] != 0 {
			nonEmpty = true
			break
		}
	}

	return parent, nonEmpty
}
