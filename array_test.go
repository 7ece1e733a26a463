package tinydb

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func TestArrayEncoding(t *testing.T) {
	tests := []struct {
		entry    *Entry
		expected string
	}{
		{NewByteArray("a", []byte{1, 2, 3}), "01 0001 61 00000008 00 00000003 010203"},
		{NewShortArray("a", []int16{-1, 1}), "01 0001 61 00000009 01 00000002 ffff 0001"},
		{NewInt32Array("a", []int32{100}), "01 0001 61 00000009 03 00000001 00000064"},
		{NewFloat32Array("a", []float32{1.5, 2.5}), "01 0001 61 0000000d 05 00000002 3fc00000 40200000"},
		{NewBoolArray("a", []bool{true, false, true}), "01 0001 61 00000008 07 00000003 01 00 01"},
		{NewInt64Array("a", nil), "01 0001 61 00000005 04 00000000"},
	}
	for _, test := range tests {
		test.expected = strings.Map(removeSpaces, test.expected)
		b := prealloc(test.entry.EncodedLen())
		ensure(test.entry.encodeTo(&b))
		if a := hex.EncodeToString(b.Trimmed()); a != test.expected {
			t.Errorf("** encode(%s %q) = %v, wanted %v", test.entry.typeString(), test.entry.Name(), a, test.expected)
		}
	}
}

func TestArrayRoundTrip(t *testing.T) {
	doc := NewDocument()
	ensure(doc.Put(NewByteArray("bytes", []byte{0, 255, 7})))
	ensure(doc.Put(NewShortArray("shorts", []int16{-32768, 32767})))
	ensure(doc.Put(NewCharArray("chars", []uint16{'a', 0x263A})))
	ensure(doc.Put(NewInt32Array("ints", []int32{-1, 0, 1 << 30})))
	ensure(doc.Put(NewInt64Array("longs", []int64{-1 << 62, 1<<62 - 1})))
	ensure(doc.Put(NewFloat32Array("floats", []float32{1.5, 2.5, 3.5})))
	ensure(doc.Put(NewFloat64Array("doubles", []float64{-0.25, 1e100})))
	ensure(doc.Put(NewBoolArray("bools", []bool{true, false})))

	decoded := must(DecodeFromBuffer(doc.EncodeToBuffer()))
	deepEqual(t, must(decoded.ByteArray("bytes")), []byte{0, 255, 7})
	deepEqual(t, must(decoded.ShortArray("shorts")), []int16{-32768, 32767})
	deepEqual(t, must(decoded.CharArray("chars")), []uint16{'a', 0x263A})
	deepEqual(t, must(decoded.Int32Array("ints")), []int32{-1, 0, 1 << 30})
	deepEqual(t, must(decoded.Int64Array("longs")), []int64{-1 << 62, 1<<62 - 1})
	deepEqual(t, must(decoded.Float32Array("floats")), []float32{1.5, 2.5, 3.5})
	deepEqual(t, must(decoded.Float64Array("doubles")), []float64{-0.25, 1e100})
	deepEqual(t, must(decoded.BoolArray("bools")), []bool{true, false})
}

func TestArrayZeroLength(t *testing.T) {
	doc := NewDocument()
	ensure(doc.Put(NewFloat32Array("empty", nil)))
	decoded := must(DecodeFromBuffer(doc.EncodeToBuffer()))
	v := must(decoded.Float32Array("empty"))
	if v == nil {
		t.Fatalf("** decoded zero-length array must be non-nil")
	}
	eq(t, len(v), 0)
}

func TestArrayAccessorsCopy(t *testing.T) {
	src := []byte{1, 2, 3}
	e := NewByteArray("a", src)
	src[0] = 99 // constructor copied
	v1 := must(e.ByteArray())
	eq(t, v1[0], 1)
	v1[1] = 99 // accessor copied
	v2 := must(e.ByteArray())
	eq(t, v2[1], 2)
}

func TestArrayCountOverrun(t *testing.T) {
	doc := NewDocument()
	ensure(doc.Put(NewInt32Array("a", []int32{1, 2})))
	data := doc.EncodeToBuffer()

	// root header (7) + child header (7+1) + type tag (1) puts count at 16
	eq(t, beUint32(data[16:]), 2)
	bePutUint32(data[16:], 1000)
	_, err := DecodeFromBuffer(data)
	if !errors.Is(err, ErrBufferUnderrun) {
		t.Fatalf("** got %v, wanted ErrBufferUnderrun", err)
	}
}

func TestArrayUnknownPrimitiveType(t *testing.T) {
	doc := NewDocument()
	ensure(doc.Put(NewInt32Array("a", []int32{1})))
	data := doc.EncodeToBuffer()
	data[15] = 0xEE // type tag of child "a"
	_, err := DecodeFromBuffer(data)
	if !errors.Is(err, ErrUnknownPrimitiveType) {
		t.Fatalf("** got %v, wanted ErrUnknownPrimitiveType", err)
	}
}
