package tinydb

import (
	"fmt"
	"math"
)

// Array entry constructors, one per primitive type. Element data is copied
// into the entry's packed payload; the entry never aliases the caller's
// slice. A zero-length slice (or nil) is a valid array.

func NewByteArray(name string, v []byte) *Entry {
	e := newArray(name, Byte, len(v))
	copy(e.elems, v)
	return e
}

func NewShortArray(name string, v []int16) *Entry {
	e := newArray(name, Short, len(v))
	for i, x := range v {
		bePutUint16(e.elems[2*i:], uint16(x))
	}
	return e
}

func NewCharArray(name string, v []uint16) *Entry {
	e := newArray(name, Char, len(v))
	for i, x := range v {
		bePutUint16(e.elems[2*i:], x)
	}
	return e
}

func NewInt32Array(name string, v []int32) *Entry {
	e := newArray(name, Int32, len(v))
	for i, x := range v {
		bePutUint32(e.elems[4*i:], uint32(x))
	}
	return e
}

func NewInt64Array(name string, v []int64) *Entry {
	e := newArray(name, Int64, len(v))
	for i, x := range v {
		bePutUint64(e.elems[8*i:], uint64(x))
	}
	return e
}

func NewFloat32Array(name string, v []float32) *Entry {
	e := newArray(name, Float32, len(v))
	for i, x := range v {
		bePutUint32(e.elems[4*i:], math.Float32bits(x))
	}
	return e
}

func NewFloat64Array(name string, v []float64) *Entry {
	e := newArray(name, Float64, len(v))
	for i, x := range v {
		bePutUint64(e.elems[8*i:], math.Float64bits(x))
	}
	return e
}

func NewBoolArray(name string, v []bool) *Entry {
	e := newArray(name, Bool, len(v))
	for i, x := range v {
		if x {
			e.elems[i] = 1
		}
	}
	return e
}

func newArray(name string, t PrimType, count int) *Entry {
	byteLen := uint64(count) * uint64(t.width())
	if arrayFixedLen+byteLen > maxPayloadLen {
		panic(fmt.Errorf("tinydb: array %q too large (%d elements of %s)", name, count, t))
	}
	e := newEntry(name, Array)
	e.prim = t
	e.count = count
	e.elems = make([]byte, int(byteLen))
	e.size = arrayFixedLen + int(byteLen)
	return e
}

// Count returns the number of elements of an array entry, and 0 for other
// kinds.
func (e *Entry) Count() int {
	return e.count
}

// Typed array accessors. Each returns a fresh copy (never aliasing the
// entry's payload) and fails with ErrTypeMismatch unless the entry is an
// array of exactly the requested primitive type. A zero-length array yields
// an empty, non-nil slice.

func (e *Entry) ByteArray() ([]byte, error) {
	if err := e.checkArray(Byte); err != nil {
		return nil, err
	}
	out := make([]byte, e.count)
	copy(out, e.elems)
	return out, nil
}

func (e *Entry) ShortArray() ([]int16, error) {
	if err := e.checkArray(Short); err != nil {
		return nil, err
	}
	out := make([]int16, e.count)
	for i := range out {
		out[i] = int16(beUint16(e.elems[2*i:]))
	}
	return out, nil
}

func (e *Entry) CharArray() ([]uint16, error) {
	if err := e.checkArray(Char); err != nil {
		return nil, err
	}
	out := make([]uint16, e.count)
	for i := range out {
		out[i] = beUint16(e.elems[2*i:])
	}
	return out, nil
}

func (e *Entry) Int32Array() ([]int32, error) {
	if err := e.checkArray(Int32); err != nil {
		return nil, err
	}
	out := make([]int32, e.count)
	for i := range out {
		out[i] = int32(beUint32(e.elems[4*i:]))
	}
	return out, nil
}

func (e *Entry) Int64Array() ([]int64, error) {
	if err := e.checkArray(Int64); err != nil {
		return nil, err
	}
	out := make([]int64, e.count)
	for i := range out {
		out[i] = int64(beUint64(e.elems[8*i:]))
	}
	return out, nil
}

func (e *Entry) Float32Array() ([]float32, error) {
	if err := e.checkArray(Float32); err != nil {
		return nil, err
	}
	out := make([]float32, e.count)
	for i := range out {
		out[i] = math.Float32frombits(beUint32(e.elems[4*i:]))
	}
	return out, nil
}

func (e *Entry) Float64Array() ([]float64, error) {
	if err := e.checkArray(Float64); err != nil {
		return nil, err
	}
	out := make([]float64, e.count)
	for i := range out {
		out[i] = math.Float64frombits(beUint64(e.elems[8*i:]))
	}
	return out, nil
}

func (e *Entry) BoolArray() ([]bool, error) {
	if err := e.checkArray(Bool); err != nil {
		return nil, err
	}
	out := make([]bool, e.count)
	for i := range out {
		out[i] = e.elems[i] != 0
	}
	return out, nil
}

func (e *Entry) checkArray(t PrimType) error {
	if e.kind != Array || e.prim != t {
		return fmt.Errorf("%q: have %s, want %s array: %w", e.name, e.typeString(), t, ErrTypeMismatch)
	}
	return nil
}

func decodeArrayPayload(e *Entry, d *byteDecoder) error {
	tag, err := d.Byte()
	if err != nil {
		return err
	}
	t := PrimType(tag)
	if !t.valid() {
		return dataErrf(d.orig, d.off-1, ErrUnknownPrimitiveType, "array entry %q: primitive type tag %d", e.name, tag)
	}
	count, err := d.Uint32()
	if err != nil {
		return err
	}
	// The length check runs in uint64 so a hostile count cannot overflow int
	// on 32-bit platforms.
	byteLen := uint64(count) * uint64(t.width())
	if byteLen > uint64(d.Remaining()) {
		return dataErrf(d.orig, d.off, ErrBufferUnderrun, "array entry %q: %d elements of %s need %d bytes, %d remaining", e.name, count, t, byteLen, d.Remaining())
	}
	raw, err := d.Raw(int(byteLen))
	if err != nil {
		return err
	}
	e.prim = t
	e.count = int(count)
	e.elems = make([]byte, len(raw))
	copy(e.elems, raw)
	return nil
}
