package tinydb

import (
	"fmt"
	"math"
)

// Scalar entry constructors, one per primitive type.

func NewByte(name string, v byte) *Entry {
	return newScalar(name, Byte, uint64(v))
}

func NewShort(name string, v int16) *Entry {
	return newScalar(name, Short, uint64(uint16(v)))
}

func NewChar(name string, v uint16) *Entry {
	return newScalar(name, Char, uint64(v))
}

func NewInt32(name string, v int32) *Entry {
	return newScalar(name, Int32, uint64(uint32(v)))
}

func NewInt64(name string, v int64) *Entry {
	return newScalar(name, Int64, uint64(v))
}

func NewFloat32(name string, v float32) *Entry {
	return newScalar(name, Float32, uint64(math.Float32bits(v)))
}

func NewFloat64(name string, v float64) *Entry {
	return newScalar(name, Float64, math.Float64bits(v))
}

func NewBool(name string, v bool) *Entry {
	var bits uint64
	if v {
		bits = 1
	}
	return newScalar(name, Bool, bits)
}

func newScalar(name string, t PrimType, bits uint64) *Entry {
	e := newEntry(name, Value)
	e.prim = t
	e.scalar = bits
	e.size = 1 + t.width()
	return e
}

// Typed scalar accessors. Each fails with ErrTypeMismatch unless the entry
// is a scalar of exactly the requested primitive type.

func (e *Entry) Byte() (byte, error) {
	bits, err := e.scalarBits(Byte)
	return byte(bits), err
}

func (e *Entry) Short() (int16, error) {
	bits, err := e.scalarBits(Short)
	return int16(uint16(bits)), err
}

func (e *Entry) Char() (uint16, error) {
	bits, err := e.scalarBits(Char)
	return uint16(bits), err
}

func (e *Entry) Int32() (int32, error) {
	bits, err := e.scalarBits(Int32)
	return int32(uint32(bits)), err
}

func (e *Entry) Int64() (int64, error) {
	bits, err := e.scalarBits(Int64)
	return int64(bits), err
}

func (e *Entry) Float32() (float32, error) {
	bits, err := e.scalarBits(Float32)
	return math.Float32frombits(uint32(bits)), err
}

func (e *Entry) Float64() (float64, error) {
	bits, err := e.scalarBits(Float64)
	return math.Float64frombits(bits), err
}

// Bool decodes any nonzero byte as true.
func (e *Entry) Bool() (bool, error) {
	bits, err := e.scalarBits(Bool)
	return bits != 0, err
}

func (e *Entry) scalarBits(t PrimType) (uint64, error) {
	if e.kind != Value || e.prim != t {
		return 0, fmt.Errorf("%q: have %s, want %s value: %w", e.name, e.typeString(), t, ErrTypeMismatch)
	}
	return e.scalar, nil
}

func decodeValuePayload(e *Entry, d *byteDecoder) error {
	tag, err := d.Byte()
	if err != nil {
		return err
	}
	t := PrimType(tag)
	if !t.valid() {
		return dataErrf(d.orig, d.off-1, ErrUnknownPrimitiveType, "value entry %q: primitive type tag %d", e.name, tag)
	}
	bits, err := d.Scalar(t)
	if err != nil {
		return err
	}
	e.prim = t
	e.scalar = bits
	return nil
}
