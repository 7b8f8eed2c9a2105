package nbt

// Value is a generic NBT payload. Exactly one of the fields is meaningful,
// selected by Tag. Lists and compounds nest further Values, which is the
// "enum-of-shapes" representation the item-container walk (internal/mapsearch)
// is built to traverse.
type Value struct {
	Tag      byte
	Byte     int8
	Short    int16
	Int      int32
	Long     int64
	Float    float32
	Double   float64
	Bytes    []byte
	Str      string
	Ints     []int32
	Longs    []int64
	ListElem byte
	List     []Value
	Compound map[string]Value
}

// Named is one entry of a decoded compound: an NBT tag carries a name only
// at the point it is referenced from its parent compound or the document root.
type Named struct {
	Name  string
	Value Value
}

func (v Value) Get(name string) (Value, bool) {
	if v.Tag != TagCompound {
		return Value{}, false
	}
	child, ok := v.Compound[name]
	return child, ok
}

func (v Value) MustInt(name string) (int32, bool) {
	child, ok := v.Get(name)
	if !ok {
		return 0, false
	}
	switch child.Tag {
	case TagInt:
		return child.Int, true
	case TagByte:
		return int32(child.Byte), true
	case TagShort:
		return int32(child.Short), true
	case TagLong:
		return int32(child.Long), true
	default:
		return 0, false
	}
}

func (v Value) MustLong(name string) (int64, bool) {
	child, ok := v.Get(name)
	if !ok {
		return 0, false
	}
	switch child.Tag {
	case TagLong:
		return child.Long, true
	case TagInt:
		return int64(child.Int), true
	default:
		return 0, false
	}
}

func (v Value) MustIntArray(name string) ([]int32, bool) {
	child, ok := v.Get(name)
	if !ok || child.Tag != TagIntArray {
		return nil, false
	}
	return child.Ints, true
}

func (v Value) MustByte(name string) (int8, bool) {
	child, ok := v.Get(name)
	if !ok || child.Tag != TagByte {
		return 0, false
	}
	return child.Byte, true
}

func (v Value) MustString(name string) (string, bool) {
	child, ok := v.Get(name)
	if !ok || child.Tag != TagString {
		return "", false
	}
	return child.Str, true
}

func (v Value) MustByteArray(name string) ([]byte, bool) {
	child, ok := v.Get(name)
	if !ok || child.Tag != TagByteArray {
		return nil, false
	}
	return child.Bytes, true
}

func (v Value) MustList(name string) ([]Value, bool) {
	child, ok := v.Get(name)
	if !ok || child.Tag != TagList {
		return nil, false
	}
	return child.List, true
}

func (v Value) MustCompound(name string) (Value, bool) {
	child, ok := v.Get(name)
	if !ok || child.Tag != TagCompound {
		return Value{}, false
	}
	return child, true
}
