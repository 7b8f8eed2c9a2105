// Package nbt implements a minimal reader/writer for Minecraft's Named
// Binary Tag format: a big-endian, self-describing tagged tree.
//
// The encoder is adapted from anvil2slime's struct-reflection marshaller;
// the decoder builds a generic tagged-value tree instead, because the
// search and map-decode phases need to walk recursive, schema-varying
// Item compounds rather than unmarshal into a fixed Go struct.
package nbt

const (
	TagEnd byte = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)
