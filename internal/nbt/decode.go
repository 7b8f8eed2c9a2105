package nbt

import (
	"bufio"
	"fmt"
	"io"
)

// Decoder reads a single root-level NBT compound, big-endian, from a stream.
// Unlike the reflection-based Encoder, Decode builds a Value tree: the
// search and map-decode phases need to branch on shapes that vary across
// save format versions, which a fixed Go struct can't express.
type Decoder struct {
	r *bufio.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{r: br}
}

// Decode reads the root tag and returns its name and value. Anvil chunks,
// map .dat files, and level.dat all begin with a single unnamed or
// empty-named root compound.
func (d *Decoder) Decode() (Named, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return Named{}, err
	}
	if tag == TagEnd {
		return Named{Value: Value{Tag: TagEnd}}, nil
	}

	name, err := d.readString()
	if err != nil {
		return Named{}, fmt.Errorf("nbt: reading root name: %w", err)
	}

	val, err := d.readValue(tag)
	if err != nil {
		return Named{}, fmt.Errorf("nbt: reading root %q: %w", name, err)
	}
	return Named{Name: name, Value: val}, nil
}

func (d *Decoder) readValue(tag byte) (Value, error) {
	switch tag {
	case TagEnd:
		return Value{Tag: TagEnd}, nil

	case TagByte:
		b, err := d.r.ReadByte()
		return Value{Tag: TagByte, Byte: int8(b)}, err

	case TagShort:
		v, err := d.readInt16()
		return Value{Tag: TagShort, Short: v}, err

	case TagInt:
		v, err := d.readInt32()
		return Value{Tag: TagInt, Int: v}, err

	case TagLong:
		v, err := d.readInt64()
		return Value{Tag: TagLong, Long: v}, err

	case TagFloat:
		v, err := d.readInt32()
		return Value{Tag: TagFloat, Float: int32BitsToFloat32(v)}, err

	case TagDouble:
		v, err := d.readInt64()
		return Value{Tag: TagDouble, Double: int64BitsToFloat64(v)}, err

	case TagByteArray:
		n, err := d.readInt32()
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			return Value{}, fmt.Errorf("nbt: negative byte array length %d", n)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(d.r, buf); err != nil {
			return Value{}, err
		}
		return Value{Tag: TagByteArray, Bytes: buf}, nil

	case TagString:
		s, err := d.readString()
		return Value{Tag: TagString, Str: s}, err

	case TagList:
		elem, err := d.r.ReadByte()
		if err != nil {
			return Value{}, err
		}
		n, err := d.readInt32()
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			n = 0
		}
		list := make([]Value, 0, n)
		for i := int32(0); i < n; i++ {
			v, err := d.readValue(elem)
			if err != nil {
				return Value{}, fmt.Errorf("list element %d: %w", i, err)
			}
			list = append(list, v)
		}
		return Value{Tag: TagList, ListElem: elem, List: list}, nil

	case TagCompound:
		compound := make(map[string]Value)
		for {
			childTag, err := d.r.ReadByte()
			if err != nil {
				return Value{}, err
			}
			if childTag == TagEnd {
				break
			}
			name, err := d.readString()
			if err != nil {
				return Value{}, fmt.Errorf("nbt: reading field name: %w", err)
			}
			val, err := d.readValue(childTag)
			if err != nil {
				return Value{}, fmt.Errorf("nbt: reading field %q: %w", name, err)
			}
			compound[name] = val
		}
		return Value{Tag: TagCompound, Compound: compound}, nil

	case TagIntArray:
		n, err := d.readInt32()
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			return Value{}, fmt.Errorf("nbt: negative int array length %d", n)
		}
		ints := make([]int32, n)
		for i := range ints {
			v, err := d.readInt32()
			if err != nil {
				return Value{}, err
			}
			ints[i] = v
		}
		return Value{Tag: TagIntArray, Ints: ints}, nil

	case TagLongArray:
		n, err := d.readInt32()
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			return Value{}, fmt.Errorf("nbt: negative long array length %d", n)
		}
		longs := make([]int64, n)
		for i := range longs {
			v, err := d.readInt64()
			if err != nil {
				return Value{}, err
			}
			longs[i] = v
		}
		return Value{Tag: TagLongArray, Longs: longs}, nil

	default:
		return Value{}, fmt.Errorf("nbt: unknown tag %d", tag)
	}
}

func (d *Decoder) readString() (string, error) {
	n, err := d.readInt16()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("nbt: negative string length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (d *Decoder) readInt16() (int16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return int16(buf[0])<<8 | int16(buf[1]), nil
}

func (d *Decoder) readInt32() (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return int32(buf[0])<<24 | int32(buf[1])<<16 | int32(buf[2])<<8 | int32(buf[3]), nil
}

func (d *Decoder) readInt64() (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	var v int64
	for _, b := range buf {
		v = v<<8 | int64(b)
	}
	return v, nil
}
