package nbt

import (
	"errors"
	"io"
	"reflect"
)

// Encoder serializes Go values as NBT compounds via reflection. It is the
// teacher's own marshaller (astei/anvil2slime's nbt.Encoder), kept nearly
// verbatim since the shape of the problem — walk a struct, write a tagged
// compound — doesn't change; only its caller does. Here it serializes the
// internal discovery-cache index (internal/cache) instead of Slime chunk
// data.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) Encode(v interface{}) error {
	return e.marshal(reflect.ValueOf(v), "")
}

func (e *Encoder) marshal(val reflect.Value, tagName string) error {
	switch vk := val.Kind(); vk {
	default:
		return errors.New("nbt: unknown type " + vk.String() + " whilst serializing " + tagName)

	case reflect.Uint8:
		if err := e.writeTag(TagByte, tagName); err != nil {
			return err
		}
		_, err := e.w.Write([]byte{byte(val.Uint())})
		return err

	case reflect.Int16, reflect.Uint16:
		if err := e.writeTag(TagShort, tagName); err != nil {
			return err
		}
		return e.writeInt16(int16(val.Int()))

	case reflect.Int32, reflect.Uint32, reflect.Int:
		if err := e.writeTag(TagInt, tagName); err != nil {
			return err
		}
		return e.writeInt32(int32(val.Int()))

	case reflect.Float32:
		if err := e.writeTag(TagFloat, tagName); err != nil {
			return err
		}
		return e.writeInt32(float32ToInt32Bits(float32(val.Float())))

	case reflect.Int64, reflect.Uint64:
		if err := e.writeTag(TagLong, tagName); err != nil {
			return err
		}
		return e.writeInt64(val.Int())

	case reflect.Float64:
		if err := e.writeTag(TagDouble, tagName); err != nil {
			return err
		}
		return e.writeInt64(float64ToInt64Bits(val.Float()))

	case reflect.Array, reflect.Slice:
		return e.marshalArray(val, tagName, val.Type().Elem().Kind())

	case reflect.String:
		if err := e.writeTag(TagString, tagName); err != nil {
			return err
		}
		if err := e.writeInt16(int16(val.Len())); err != nil {
			return err
		}
		_, err := e.w.Write([]byte(val.String()))
		return err

	case reflect.Struct:
		if err := e.writeTag(TagCompound, tagName); err != nil {
			return err
		}
		return e.marshalStruct(val)

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return errors.New("nbt: unsupported map key type " + val.Type().String())
		}
		if err := e.writeTag(TagCompound, tagName); err != nil {
			return err
		}
		return e.marshalMap(val)

	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return e.marshal(reflect.Zero(reflect.TypeOf("")), tagName)
		}
		return e.marshal(val.Elem(), tagName)
	}
}

func (e *Encoder) marshalArray(val reflect.Value, tagName string, elementKind reflect.Kind) error {
	switch elementKind {
	case reflect.Uint8:
		if err := e.writeTag(TagByteArray, tagName); err != nil {
			return err
		}
		if err := e.writeInt32(int32(val.Len())); err != nil {
			return err
		}
		_, err := e.w.Write(val.Bytes())
		return err

	case reflect.Int32, reflect.Uint32, reflect.Int:
		if err := e.writeTag(TagIntArray, tagName); err != nil {
			return err
		}
		n := val.Len()
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.writeInt32(int32(val.Index(i).Int())); err != nil {
				return err
			}
		}
		return nil

	case reflect.Int64, reflect.Uint64:
		if err := e.writeTag(TagLongArray, tagName); err != nil {
			return err
		}
		n := val.Len()
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.writeInt64(val.Index(i).Int()); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct, reflect.Map:
		if err := e.writeTag(TagList, tagName); err != nil {
			return err
		}
		if _, err := e.w.Write([]byte{TagCompound}); err != nil {
			return err
		}
		n := val.Len()
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			item := val.Index(i)
			var err error
			if elementKind == reflect.Struct {
				err = e.marshalStruct(item)
			} else {
				err = e.marshalMap(item)
			}
			if err != nil {
				return err
			}
		}
		return nil

	case reflect.String:
		if err := e.writeTag(TagList, tagName); err != nil {
			return err
		}
		if _, err := e.w.Write([]byte{TagString}); err != nil {
			return err
		}
		n := val.Len()
		if err := e.writeInt32(int32(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			entry := val.Index(i)
			if err := e.writeInt16(int16(entry.Len())); err != nil {
				return err
			}
			if _, err := e.w.Write([]byte(entry.String())); err != nil {
				return err
			}
		}
		return nil

	default:
		if val.Len() == 0 {
			if err := e.writeTag(TagList, tagName); err != nil {
				return err
			}
			if _, err := e.w.Write([]byte{TagEnd}); err != nil {
				return err
			}
			return e.writeInt32(0)
		}
		return errors.New("nbt: unsupported slice element kind " + elementKind.String())
	}
}

func (e *Encoder) marshalStruct(val reflect.Value) error {
	n := val.NumField()
	for i := 0; i < n; i++ {
		f := val.Type().Field(i)
		tag := f.Tag.Get("nbt")
		if (f.PkgPath != "" && !f.Anonymous) || tag == "-" {
			continue
		}

		tagName := f.Name
		if tag != "" {
			tagName = tag
		}

		if err := e.marshal(val.Field(i), tagName); err != nil {
			return err
		}
	}
	_, err := e.w.Write([]byte{TagEnd})
	return err
}

func (e *Encoder) marshalMap(val reflect.Value) error {
	iter := val.MapRange()
	for iter.Next() {
		if err := e.marshal(iter.Value(), iter.Key().String()); err != nil {
			return err
		}
	}
	_, err := e.w.Write([]byte{TagEnd})
	return err
}

func (e *Encoder) writeTag(tagType byte, tagName string) error {
	if _, err := e.w.Write([]byte{tagType}); err != nil {
		return err
	}
	bName := []byte(tagName)
	if err := e.writeInt16(int16(len(bName))); err != nil {
		return err
	}
	_, err := e.w.Write(bName)
	return err
}

func (e *Encoder) writeInt16(n int16) error {
	_, err := e.w.Write([]byte{byte(n >> 8), byte(n)})
	return err
}

func (e *Encoder) writeInt32(n int32) error {
	_, err := e.w.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	return err
}

func (e *Encoder) writeInt64(n int64) error {
	_, err := e.w.Write([]byte{
		byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	return err
}
