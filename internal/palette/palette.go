// Package palette holds Minecraft's map-item color table: 59 base colors,
// each rendered at 4 shades, selected by a save's DataVersion.
//
// The base table and shade factors are lifted verbatim from the only
// palette data anywhere in the retrieved corpus — original_source's own
// prior Rust implementation (src/level.rs: PALETTE_BASE, PALETTE_FACTORS).
package palette

// Shade multipliers selected by a color index's low two bits.
// 180/220/255/135 out of 255 correspond to {0.71, 0.86, 1.00, 0.53}.
var ShadeFactors = [4]uint32{180, 220, 255, 135}

// RGB is a single base palette color before shading.
type RGB struct{ R, G, B uint8 }

// base1_12 is the color table as of Minecraft 1.12, and remains the
// modern table through current versions; it is retained unchanged through
// every DataVersion breakpoint below until a future save format adds
// colors, at which point a new breakpoint table should be appended rather
// than this one edited in place.
var base1_12 = []RGB{
	{0, 0, 0}, {127, 178, 56}, {247, 233, 163}, {199, 199, 199},
	{255, 0, 0}, {160, 160, 255}, {167, 167, 167}, {0, 124, 0},
	{255, 255, 255}, {164, 168, 184}, {151, 109, 77}, {112, 112, 112},
	{64, 64, 255}, {143, 119, 72}, {255, 252, 245}, {216, 127, 51},
	{178, 76, 216}, {102, 153, 216}, {229, 229, 51}, {127, 204, 25},
	{242, 127, 165}, {76, 76, 76}, {153, 153, 153}, {76, 127, 153},
	{127, 63, 178}, {51, 76, 178}, {102, 76, 51}, {102, 127, 51},
	{153, 51, 51}, {25, 25, 25}, {250, 238, 77}, {92, 219, 213},
	{74, 128, 255}, {0, 217, 58}, {129, 86, 49}, {112, 2, 0},
	{209, 177, 161}, {159, 82, 36}, {149, 87, 108}, {112, 108, 138},
	{186, 133, 36}, {103, 117, 53}, {160, 77, 78}, {57, 41, 35},
	{135, 107, 98}, {87, 92, 92}, {122, 73, 88}, {76, 62, 92},
	{76, 50, 35}, {76, 82, 42}, {142, 60, 46}, {37, 22, 16},
	{189, 48, 49}, {148, 63, 97}, {92, 25, 29}, {22, 126, 134},
	{58, 142, 140}, {86, 44, 62}, {20, 180, 133},
}

// dataVersion1_12 is the DataVersion of Minecraft 1.12 itself; saves at or
// above it use the modern base table. Saves from any earlier version this
// tool might encounter (there is no older table in the retrieved corpus)
// also fall back to it; no warning is logged for them.
const dataVersion1_12 = 922

// Table returns the 4-shade, 236-entry (59×4) effective palette for the
// given save DataVersion — see DESIGN.md for why 236 rather than a
// rounder number.
func Table(dataVersion int32) []RGB {
	base := base1_12
	if dataVersion < dataVersion1_12 {
		// No earlier table is available anywhere in the retrieved corpus;
		// fall back to the modern one for unknown/unsupported versions.
		base = base1_12
	}

	out := make([]RGB, 0, len(base)*len(ShadeFactors))
	for _, c := range base {
		for _, f := range ShadeFactors {
			out = append(out, RGB{
				R: shade(c.R, f),
				G: shade(c.G, f),
				B: shade(c.B, f),
			})
		}
	}
	return out
}

func shade(v uint8, factor uint32) uint8 {
	scaled := uint32(v) * factor / 255
	if scaled > 255 {
		scaled = 255
	}
	return uint8(scaled)
}

// Resolve maps a raw map-color index byte to an RGBA color. Index 0 is
// transparent; the low two bits of any other index select the shade, the
// remaining bits select the base color.
func Resolve(table []RGB, index uint8) (r, g, b, a uint8) {
	if index == 0 {
		return 0, 0, 0, 0
	}
	baseIdx := int(index >> 2)
	shadeIdx := int(index & 3)
	if baseIdx >= len(table)/4 {
		return 0, 0, 0, 0
	}
	c := table[baseIdx*4+shadeIdx]
	return c.R, c.G, c.B, 255
}
