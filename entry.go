package tinydb

import (
	"fmt"
	"math"
)

// Kind discriminates the three entry containers. The numeric values are part
// of the wire format; decoders treat values outside the known set as
// unknown-and-skippable wherever the enclosing payload size is known.
type Kind byte

const (
	Value  Kind = 0
	Array  Kind = 1
	Object Kind = 2

	kindCount = 3
)

func (k Kind) valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	switch k {
	case Value:
		return "value"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

const (
	headerFixedLen = 1 + 2 + 4 // kind, name length, payload size
	arrayFixedLen  = 1 + 4     // primitive type, element count

	maxNameLen    = math.MaxUint16
	maxPayloadLen = math.MaxUint32
)

// Entry is one node of a document tree: a scalar value, a homogeneous array,
// or an object holding an ordered sequence of named children. Every entry
// has exactly one owner; attaching it to a second parent panics.
//
// Scalar and array entries are immutable after construction. Objects grow
// via Put; payload sizes are maintained eagerly on every mutation, so
// encoding never needs a separate measuring pass.
//
// Sibling names are case-sensitive and unique only by convention: the format
// and (*Entry).Put permit duplicates, Get returns the first match, and the
// Document facade is where uniqueness is enforced.
type Entry struct {
	name     string
	kind     Kind
	prim     PrimType // Value and Array entries only
	scalar   uint64   // Value entries: raw value bits, zero-extended
	elems    []byte   // Array entries: packed big-endian elements
	count    int      // Array entries: element count
	children []*Entry // Object entries, in insertion order
	parent   *Entry
	size     int // payload length in bytes, excluding the header
}

func newEntry(name string, kind Kind) *Entry {
	if len(name) > maxNameLen {
		panic(fmt.Errorf("tinydb: entry name too long (%d bytes)", len(name)))
	}
	return &Entry{name: name, kind: kind}
}

func (e *Entry) Name() string {
	return e.name
}

func (e *Entry) Kind() Kind {
	return e.kind
}

// PrimitiveType returns the primitive type of a scalar or array entry;
// ok is false for objects.
func (e *Entry) PrimitiveType() (t PrimType, ok bool) {
	if e.kind == Object {
		return 0, false
	}
	return e.prim, true
}

func (e *Entry) headerLen() int {
	return headerFixedLen + len(e.name)
}

// EncodedLen returns the total number of bytes this entry occupies on the
// wire, header included.
func (e *Entry) EncodedLen() int {
	return e.headerLen() + e.size
}

func (e *Entry) encodeTo(b *byteBuf) error {
	if err := b.AppendByte(byte(e.kind)); err != nil {
		return err
	}
	if err := b.AppendString16(e.name); err != nil {
		return err
	}
	if err := b.AppendUint32(uint32(e.size)); err != nil {
		return err
	}
	switch e.kind {
	case Value:
		if err := b.AppendByte(byte(e.prim)); err != nil {
			return err
		}
		return b.AppendScalar(e.prim, e.scalar)
	case Array:
		if err := b.AppendByte(byte(e.prim)); err != nil {
			return err
		}
		if err := b.AppendUint32(uint32(e.count)); err != nil {
			return err
		}
		return b.AppendRaw(e.elems)
	default:
		for _, c := range e.children {
			if err := c.encodeTo(b); err != nil {
				return err
			}
		}
		return nil
	}
}

type header struct {
	kind Kind
	name string
	size int
}

// decodeHeader reads the common prefix shared by all entries. It does not
// validate the kind: the caller decides whether an unknown kind is fatal or
// skippable.
func decodeHeader(d *byteDecoder) (header, error) {
	kind, err := d.Byte()
	if err != nil {
		return header{}, err
	}
	name, err := d.String16()
	if err != nil {
		return header{}, err
	}
	size, err := d.Uint32()
	if err != nil {
		return header{}, err
	}
	return header{Kind(kind), name, int(size)}, nil
}

// decodeEntryBody reconstructs an entry of a known kind from its payload
// window. The window must be exactly hdr.size bytes; unconsumed payload
// bytes mean the declared size lied and fail with ErrCorruptStructure.
func decodeEntryBody(hdr header, d *byteDecoder) (*Entry, error) {
	e := newEntry(hdr.name, hdr.kind)
	switch hdr.kind {
	case Value:
		if err := decodeValuePayload(e, d); err != nil {
			return nil, err
		}
		e.size = 1 + e.prim.width()
	case Array:
		if err := decodeArrayPayload(e, d); err != nil {
			return nil, err
		}
		e.size = arrayFixedLen + len(e.elems)
	default:
		if err := decodeObjectPayload(e, d); err != nil {
			return nil, err
		}
	}
	if d.Remaining() != 0 {
		return nil, dataErrf(d.orig, d.off, ErrCorruptStructure, "entry %q: %d unconsumed payload bytes", hdr.name, d.Remaining())
	}
	return e, nil
}
