package tinydb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dump renders e as a single-line human-readable tree for tests and debug
// logging. The output is not a wire format and not stable across versions.
func Dump(e *Entry) string {
	var buf strings.Builder
	dump(&buf, e)
	return buf.String()
}

func dump(buf *strings.Builder, e *Entry) {
	switch e.kind {
	case Value:
		buf.WriteString(e.prim.String())
		buf.WriteByte('(')
		buf.WriteString(primString(e.prim, e.scalar))
		buf.WriteByte(')')
	case Array:
		fmt.Fprintf(buf, "%s[%d](", e.prim, e.count)
		w := e.prim.width()
		for i := 0; i < e.count; i++ {
			if i > 0 {
				buf.WriteByte(' ')
			}
			var bits uint64
			switch w {
			case 1:
				bits = uint64(e.elems[i])
			case 2:
				bits = uint64(beUint16(e.elems[2*i:]))
			case 4:
				bits = uint64(beUint32(e.elems[4*i:]))
			default:
				bits = beUint64(e.elems[8*i:])
			}
			buf.WriteString(primString(e.prim, bits))
		}
		buf.WriteByte(')')
	case Object:
		buf.WriteByte('{')
		for i, c := range e.children {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(c.name)
			buf.WriteString(": ")
			dump(buf, c)
		}
		buf.WriteByte('}')
	}
}

func primString(t PrimType, bits uint64) string {
	switch t {
	case Byte, Char:
		return strconv.FormatUint(bits, 10)
	case Short:
		return strconv.FormatInt(int64(int16(uint16(bits))), 10)
	case Int32:
		return strconv.FormatInt(int64(int32(uint32(bits))), 10)
	case Int64:
		return strconv.FormatInt(int64(bits), 10)
	case Float32:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(bits))), 'g', -1, 32)
	case Float64:
		return strconv.FormatFloat(math.Float64frombits(bits), 'g', -1, 64)
	default:
		if bits != 0 {
			return "true"
		}
		return "false"
	}
}

// typeString names an entry's shape for error messages: "int32", "int32[]",
// "object".
func (e *Entry) typeString() string {
	switch e.kind {
	case Value:
		return e.prim.String()
	case Array:
		return e.prim.String() + "[]"
	case Object:
		return "object"
	default:
		return e.kind.String()
	}
}
