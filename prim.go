package tinydb

import "fmt"

// PrimType identifies one of the eight fixed-width primitive types the
// format supports. The numeric values are part of the wire format and must
// never be reassigned.
type PrimType byte

const (
	Byte    PrimType = 0
	Short   PrimType = 1
	Char    PrimType = 2 // 16-bit unsigned code unit
	Int32   PrimType = 3
	Int64   PrimType = 4
	Float32 PrimType = 5
	Float64 PrimType = 6
	Bool    PrimType = 7

	primTypeCount = 8
)

var primWidths = [primTypeCount]int{1, 2, 2, 4, 8, 4, 8, 1}

var primNames = [primTypeCount]string{"byte", "short", "char", "int32", "int64", "float32", "float64", "bool"}

func (t PrimType) valid() bool {
	return t < primTypeCount
}

// width returns the encoded size of one value of this type, in bytes.
func (t PrimType) width() int {
	return primWidths[t]
}

func (t PrimType) String() string {
	if !t.valid() {
		return fmt.Sprintf("PrimType(%d)", byte(t))
	}
	return primNames[t]
}
