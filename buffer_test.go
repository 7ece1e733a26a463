package tinydb

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func TestByteBufBigEndian(t *testing.T) {
	b := prealloc(1 + 2 + 4 + 8)
	ensure(b.AppendByte(0x01))
	ensure(b.AppendUint16(0x0203))
	ensure(b.AppendUint32(0x04050607))
	ensure(b.AppendUint64(0x08090A0B0C0D0E0F))
	expected := strings.Map(removeSpaces, "01 0203 04050607 08090a0b0c0d0e0f")
	if a := hex.EncodeToString(b.Trimmed()); a != expected {
		t.Errorf("** got %v, wanted %v", a, expected)
	}
}

func TestByteBufOverrun(t *testing.T) {
	b := prealloc(3)
	ensure(b.AppendUint16(0xBEEF))
	err := b.AppendUint32(1)
	if !errors.Is(err, ErrBufferOverrun) {
		t.Fatalf("** got %v, wanted ErrBufferOverrun", err)
	}
	// a failed append must not consume space or mutate the buffer
	eq(t, b.off, 2)
	eq(t, b.buf[2], 0)
	ensure(b.AppendByte(0xAA))
	eq(t, hex.EncodeToString(b.Trimmed()), "beefaa")
}

func TestByteDecoderRoundTrip(t *testing.T) {
	b := prealloc(1 + 2 + 4 + 8 + 2 + 3)
	ensure(b.AppendByte(0x7F))
	ensure(b.AppendUint16(0xCAFE))
	ensure(b.AppendUint32(0xDEADBEEF))
	ensure(b.AppendUint64(0x0102030405060708))
	ensure(b.AppendString16("abc"))

	d := makeByteDecoder(b.Trimmed())
	eq(t, must(d.Byte()), 0x7F)
	eq(t, must(d.Uint16()), 0xCAFE)
	eq(t, must(d.Uint32()), 0xDEADBEEF)
	eq(t, must(d.Uint64()), 0x0102030405060708)
	eq(t, must(d.String16()), "abc")
	eq(t, d.Remaining(), 0)
}

func TestByteDecoderUnderrun(t *testing.T) {
	d := makeByteDecoder([]byte{1, 2, 3})
	eq(t, must(d.Uint16()), 0x0102)
	_, err := d.Uint16()
	if !errors.Is(err, ErrBufferUnderrun) {
		t.Fatalf("** got %v, wanted ErrBufferUnderrun", err)
	}
	// a failed read must not consume anything
	eq(t, d.Remaining(), 1)
	eq(t, must(d.Byte()), 3)
}

func TestByteDecoderStringUnderrun(t *testing.T) {
	// declared length 5, only 2 bytes follow
	d := makeByteDecoder([]byte{0, 5, 'h', 'i'})
	_, err := d.String16()
	if !errors.Is(err, ErrBufferUnderrun) {
		t.Fatalf("** got %v, wanted ErrBufferUnderrun", err)
	}
}

func TestByteDecoderWindow(t *testing.T) {
	d := makeByteDecoder([]byte{1, 2, 3, 4, 5})
	must(d.Byte())
	w := must(d.Window(3))
	eq(t, w.off, 1)
	eq(t, w.Remaining(), 3)
	eq(t, must(w.Uint16()), 0x0203)
	eq(t, w.off, 3)
	eq(t, d.Remaining(), 1)

	_, err := d.Window(2)
	if !errors.Is(err, ErrBufferUnderrun) {
		t.Fatalf("** got %v, wanted ErrBufferUnderrun", err)
	}
}

func TestScalarWidths(t *testing.T) {
	tests := []struct {
		t     PrimType
		width int
	}{
		{Byte, 1}, {Short, 2}, {Char, 2}, {Int32, 4},
		{Int64, 8}, {Float32, 4}, {Float64, 8}, {Bool, 1},
	}
	for _, test := range tests {
		eq(t, test.t.width(), test.width)

		b := prealloc(test.width)
		ensure(b.AppendScalar(test.t, 0x1122334455667788))
		d := makeByteDecoder(b.Trimmed())
		bits := must(d.Scalar(test.t))
		// low width bytes survive, zero-extended
		var mask uint64 = 0xFFFFFFFFFFFFFFFF >> (64 - 8*test.width)
		eq(t, bits, 0x1122334455667788&mask)
	}
}
