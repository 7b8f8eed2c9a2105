// Package mapitem decodes a single map item's .dat file into an
// immutable record of its scale, center, dimension, 128×128 color grid,
// and banners.
package mapitem

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/AndrewKvalheim/little-a-map/internal/nbt"
)

type Dimension int8

const (
	DimensionNether    Dimension = -1
	DimensionOverworld Dimension = 0
	DimensionEnd       Dimension = 1
	dimensionUnknown   Dimension = 127
)

// MapItem is the decoded, immutable result of reading one map_<id>.dat.
type MapItem struct {
	ID         uint32
	Scale      uint8
	CenterX    int32
	CenterZ    int32
	Dimension  Dimension
	Colors     [16384]byte
	Banners    []Banner
	ModifiedAt time.Time
}

// DyeColor is one of the sixteen Minecraft dye colors a banner can carry.
type DyeColor string

// Banner is an in-world marker a player has placed on a map. Two
// banners are the same physical banner iff WorldPos is bit-equal.
type Banner struct {
	WorldPos [3]int32
	Color    DyeColor
	Name     string // empty means "unnamed"
}

// HasName reports whether the banner carries a non-empty name.
func (b Banner) HasName() bool { return b.Name != "" }

// Decode reads and parses the map .dat file at path. A not-exist error is
// reported as os.ErrNotExist-wrapped so callers can treat an absent map
// specially: it yields an empty contribution rather than a fatal error.
// Any other failure is a decode error, fatal for this ID.
func Decode(path string, id uint32) (*MapItem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err // os.IsNotExist(err) lets the caller distinguish "absent"
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("mapitem: %s: not gzip: %w", path, err)
	}
	defer gz.Close()

	root, err := nbt.NewDecoder(gz).Decode()
	if err != nil {
		return nil, fmt.Errorf("mapitem: %s: %w", path, err)
	}

	data, ok := root.Value.MustCompound("data")
	if !ok {
		return nil, fmt.Errorf("mapitem: %s: missing data compound", path)
	}

	item := &MapItem{ID: id, ModifiedAt: info.ModTime()}

	dim, err := decodeDimension(data)
	if err != nil {
		return nil, fmt.Errorf("mapitem: %s: %w", path, err)
	}
	item.Dimension = dim

	scale, ok := data.MustByte("scale")
	if !ok {
		return nil, fmt.Errorf("mapitem: %s: missing scale", path)
	}
	if scale < 0 || scale > 4 {
		return nil, fmt.Errorf("mapitem: %s: scale %d out of range", path, scale)
	}
	item.Scale = uint8(scale)

	x, ok := data.MustInt("xCenter")
	if !ok {
		return nil, fmt.Errorf("mapitem: %s: missing xCenter", path)
	}
	z, ok := data.MustInt("zCenter")
	if !ok {
		return nil, fmt.Errorf("mapitem: %s: missing zCenter", path)
	}
	item.CenterX, item.CenterZ = x, z

	colors, ok := data.MustByteArray("colors")
	if !ok || len(colors) != len(item.Colors) {
		return nil, fmt.Errorf("mapitem: %s: colors array is %d bytes, want %d", path, len(colors), len(item.Colors))
	}
	copy(item.Colors[:], colors)

	banners, err := decodeBanners(data)
	if err != nil {
		return nil, fmt.Errorf("mapitem: %s: %w", path, err)
	}
	item.Banners = banners

	return item, nil
}

// decodeDimension handles both save-version encodings of the dimension
// tag: a TagByte on older saves, a TagString on newer ones.
func decodeDimension(data nbt.Value) (Dimension, error) {
	child, ok := data.Get("dimension")
	if !ok {
		return dimensionUnknown, fmt.Errorf("missing dimension")
	}

	switch child.Tag {
	case nbt.TagByte:
		switch Dimension(child.Byte) {
		case DimensionNether, DimensionOverworld, DimensionEnd:
			return Dimension(child.Byte), nil
		default:
			return dimensionUnknown, fmt.Errorf("unknown dimension byte %d", child.Byte)
		}
	case nbt.TagString:
		switch child.Str {
		case "minecraft:the_nether":
			return DimensionNether, nil
		case "minecraft:overworld":
			return DimensionOverworld, nil
		case "minecraft:the_end":
			return DimensionEnd, nil
		default:
			return dimensionUnknown, fmt.Errorf("unknown dimension string %q", child.Str)
		}
	default:
		return dimensionUnknown, fmt.Errorf("dimension has unexpected tag %d", child.Tag)
	}
}

func decodeBanners(data nbt.Value) ([]Banner, error) {
	list, ok := data.MustList("banners")
	if !ok {
		return nil, nil
	}

	banners := make([]Banner, 0, len(list))
	for _, entry := range list {
		if entry.Tag != nbt.TagCompound {
			continue
		}

		pos, hasPos := entry.MustCompound("Pos")
		var worldPos [3]int32
		if hasPos {
			x, _ := pos.MustInt("X")
			y, _ := pos.MustInt("Y")
			z, _ := pos.MustInt("Z")
			worldPos = [3]int32{x, y, z}
		} else if intArr, ok2 := entry.Get("Pos"); ok2 && intArr.Tag == nbt.TagIntArray && len(intArr.Ints) == 3 {
			worldPos = [3]int32{intArr.Ints[0], intArr.Ints[1], intArr.Ints[2]}
		} else {
			continue
		}

		color, _ := entry.MustString("Color")
		if color == "" {
			color, _ = entry.MustString("color")
		}
		if color == "" {
			color = "white"
		}

		name := decodeBannerName(entry)

		banners = append(banners, Banner{WorldPos: worldPos, Color: DyeColor(color), Name: name})
	}
	return banners, nil
}

// decodeBannerName unwraps the optional Name field, which is a JSON text
// component (either `{"text": "..."}` or, on newer saves, a bare JSON
// string) — the same two shapes src/level.rs's Name visitor handles.
func decodeBannerName(entry nbt.Value) string {
	raw, ok := entry.MustString("Name")
	if !ok {
		raw, ok = entry.MustString("name")
	}
	if !ok || raw == "" {
		return ""
	}

	var withText struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(raw), &withText); err == nil && withText.Text != "" {
		return withText.Text
	}

	var bare string
	if err := json.Unmarshal([]byte(raw), &bare); err == nil {
		return bare
	}

	return raw
}
