package mapitem

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/AndrewKvalheim/little-a-map/internal/nbt"
)

// writeFixture hand-assembles a map .dat using the raw NBT tag grammar
// instead of the struct-reflection Encoder, because MapData's "banners"
// list needs a heterogeneous-looking Pos compound that the reflection
// encoder can't express directly from a Go struct without duplicating the
// decoder's own surface.
func writeFixture(t *testing.T, path string, dimensionAsString bool) {
	t.Helper()

	var body bytes.Buffer
	writeCompoundField := func(name string) { writeTaggedName(&body, nbt.TagCompound, name) }
	_ = writeCompoundField

	// root compound "" -> data compound "data" -> fields
	writeTaggedName(&body, nbt.TagCompound, "")
	writeTaggedName(&body, nbt.TagCompound, "data")

	if dimensionAsString {
		writeTaggedName(&body, nbt.TagString, "dimension")
		writeString(&body, "minecraft:overworld")
	} else {
		writeTaggedName(&body, nbt.TagByte, "dimension")
		body.WriteByte(0)
	}

	writeTaggedName(&body, nbt.TagByte, "scale")
	body.WriteByte(0)

	writeTaggedName(&body, nbt.TagInt, "xCenter")
	writeInt32(&body, 64)

	writeTaggedName(&body, nbt.TagInt, "zCenter")
	writeInt32(&body, 64)

	writeTaggedName(&body, nbt.TagByteArray, "colors")
	writeInt32(&body, 16384)
	colors := make([]byte, 16384)
	for i := range colors {
		colors[i] = 34
	}
	body.Write(colors)

	writeTaggedName(&body, nbt.TagList, "banners")
	body.WriteByte(nbt.TagCompound)
	writeInt32(&body, 1)
	// one banner compound, unnamed list element
	writeTaggedName(&body, nbt.TagString, "Color")
	writeString(&body, "red")
	writeTaggedName(&body, nbt.TagString, "Name")
	writeString(&body, `{"text":"Home"}`)
	writeTaggedName(&body, nbt.TagCompound, "Pos")
	writeTaggedName(&body, nbt.TagInt, "X")
	writeInt32(&body, 100)
	writeTaggedName(&body, nbt.TagInt, "Y")
	writeInt32(&body, 64)
	writeTaggedName(&body, nbt.TagInt, "Z")
	writeInt32(&body, 200)
	body.WriteByte(nbt.TagEnd) // end Pos
	body.WriteByte(nbt.TagEnd) // end banner compound

	body.WriteByte(nbt.TagEnd) // end data
	body.WriteByte(nbt.TagEnd) // end root

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(body.Bytes()); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
}

func writeTaggedName(buf *bytes.Buffer, tag byte, name string) {
	buf.WriteByte(tag)
	writeInt16(buf, int16(len(name)))
	buf.WriteString(name)
}

func writeInt16(buf *bytes.Buffer, v int16) {
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v))
}

func writeInt32(buf *bytes.Buffer, v int32) {
	buf.WriteByte(byte(v >> 24))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v))
}

func writeString(buf *bytes.Buffer, s string) {
	writeInt16(buf, int16(len(s)))
	buf.WriteString(s)
}

func TestDecodeBothDimensionEncodings(t *testing.T) {
	for _, asString := range []bool{false, true} {
		dir := t.TempDir()
		path := filepath.Join(dir, "map_1.dat")
		writeFixture(t, path, asString)

		item, err := Decode(path, 1)
		if err != nil {
			t.Fatalf("asString=%v: decode: %v", asString, err)
		}
		if item.Dimension != DimensionOverworld {
			t.Fatalf("asString=%v: dimension = %v", asString, item.Dimension)
		}
		if item.Scale != 0 || item.CenterX != 64 || item.CenterZ != 64 {
			t.Fatalf("asString=%v: bad geometry: %+v", asString, item)
		}
		if len(item.Banners) != 1 {
			t.Fatalf("asString=%v: banners = %+v", asString, item.Banners)
		}
		b := item.Banners[0]
		if b.WorldPos != [3]int32{100, 64, 200} || b.Color != "red" || b.Name != "Home" {
			t.Fatalf("asString=%v: banner = %+v", asString, b)
		}
		for _, c := range item.Colors {
			if c != 34 {
				t.Fatalf("asString=%v: colors not all 34", asString)
			}
		}
	}
}

func TestDecodeAbsentMap(t *testing.T) {
	dir := t.TempDir()
	_, err := Decode(filepath.Join(dir, "map_42.dat"), 42)
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
