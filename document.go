package tinydb

import "fmt"

// Document is the root object entry of a serialized tree, presented as a
// name-keyed store. A document is owned by the caller that created it and is
// not safe for concurrent mutation; independent documents share no state and
// may be used from separate goroutines freely.
type Document struct {
	root *Entry
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{root: NewObject("")}
}

// Root exposes the underlying root object entry.
func (doc *Document) Root() *Entry {
	return doc.root
}

// Put attaches e as a direct child of the root. Unlike (*Entry).Put, the
// facade rejects duplicate sibling names with ErrDuplicateKey so that Get is
// well-defined for every stored key.
func (doc *Document) Put(e *Entry) error {
	if doc.root.Get(e.name) != nil {
		return fmt.Errorf("%q: %w", e.name, ErrDuplicateKey)
	}
	doc.root.Put(e)
	return nil
}

// PutObject creates an empty child object, attaches it to the root and
// returns it for further population.
func (doc *Document) PutObject(name string) (*Entry, error) {
	e := NewObject(name)
	if err := doc.Put(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Get returns the direct child with the given name, failing with
// ErrKeyNotFound.
func (doc *Document) Get(name string) (*Entry, error) {
	e := doc.root.Get(name)
	if e == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrKeyNotFound)
	}
	return e, nil
}

// Object returns the direct child object with the given name, failing with
// ErrKeyNotFound or ErrTypeMismatch.
func (doc *Document) Object(name string) (*Entry, error) {
	e, err := doc.Get(name)
	if err != nil {
		return nil, err
	}
	if e.kind != Object {
		return nil, fmt.Errorf("%q: have %s, want object: %w", name, e.typeString(), ErrTypeMismatch)
	}
	return e, nil
}

func docGet[T any](doc *Document, name string, get func(*Entry) (T, error)) (T, error) {
	e, err := doc.Get(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return get(e)
}

// Typed accessors over the root's direct children, failing with
// ErrKeyNotFound or ErrTypeMismatch.

func (doc *Document) Byte(name string) (byte, error) {
	return docGet(doc, name, (*Entry).Byte)
}
func (doc *Document) Short(name string) (int16, error) {
	return docGet(doc, name, (*Entry).Short)
}
func (doc *Document) Char(name string) (uint16, error) {
	return docGet(doc, name, (*Entry).Char)
}
func (doc *Document) Int32(name string) (int32, error) {
	return docGet(doc, name, (*Entry).Int32)
}
func (doc *Document) Int64(name string) (int64, error) {
	return docGet(doc, name, (*Entry).Int64)
}
func (doc *Document) Float32(name string) (float32, error) {
	return docGet(doc, name, (*Entry).Float32)
}
func (doc *Document) Float64(name string) (float64, error) {
	return docGet(doc, name, (*Entry).Float64)
}
func (doc *Document) Bool(name string) (bool, error) {
	return docGet(doc, name, (*Entry).Bool)
}

func (doc *Document) ByteArray(name string) ([]byte, error) {
	return docGet(doc, name, (*Entry).ByteArray)
}
func (doc *Document) ShortArray(name string) ([]int16, error) {
	return docGet(doc, name, (*Entry).ShortArray)
}
func (doc *Document) CharArray(name string) ([]uint16, error) {
	return docGet(doc, name, (*Entry).CharArray)
}
func (doc *Document) Int32Array(name string) ([]int32, error) {
	return docGet(doc, name, (*Entry).Int32Array)
}
func (doc *Document) Int64Array(name string) ([]int64, error) {
	return docGet(doc, name, (*Entry).Int64Array)
}
func (doc *Document) Float32Array(name string) ([]float32, error) {
	return docGet(doc, name, (*Entry).Float32Array)
}
func (doc *Document) Float64Array(name string) ([]float64, error) {
	return docGet(doc, name, (*Entry).Float64Array)
}
func (doc *Document) BoolArray(name string) ([]bool, error) {
	return docGet(doc, name, (*Entry).BoolArray)
}

// EncodedLen returns the exact number of bytes EncodeToBuffer will produce.
func (doc *Document) EncodedLen() int {
	return doc.root.EncodedLen()
}

// EncodeToBuffer serializes the document depth-first into a freshly
// allocated buffer of exactly the right size.
func (doc *Document) EncodeToBuffer() []byte {
	b := prealloc(doc.root.EncodedLen())
	ensure(doc.root.encodeTo(&b))
	return b.Trimmed()
}

// EncodeTo serializes the document into buf, returning the number of bytes
// written. The size check runs up front, so a buffer that fails with
// ErrBufferOverrun is left unmodified.
func (doc *Document) EncodeTo(buf []byte) (int, error) {
	n := doc.root.EncodedLen()
	if n > len(buf) {
		return 0, dataErrf(buf, 0, ErrBufferOverrun, "document needs %d bytes, buffer holds %d", n, len(buf))
	}
	b := byteBuf{buf: buf[:n]}
	ensure(doc.root.encodeTo(&b))
	return n, nil
}

// DecodeFromBuffer reconstructs a document produced by EncodeToBuffer. The
// buffer must hold exactly one object entry; the returned tree is a fresh
// copy that does not alias buf. On failure the returned error wraps one of
// the package error kinds.
func DecodeFromBuffer(buf []byte) (*Document, error) {
	if len(buf) == 0 {
		return nil, dataErrf(buf, 0, ErrBufferUnderrun, "empty buffer")
	}
	d := makeByteDecoder(buf)
	hdr, err := decodeHeader(&d)
	if err != nil {
		return nil, err
	}
	if !hdr.kind.valid() {
		// The root has no enclosing size to skip by, so an unknown kind is
		// fatal here, unlike inside an object payload.
		return nil, dataErrf(buf, 0, ErrUnknownContainerKind, "container kind %d at document root", byte(hdr.kind))
	}
	if hdr.kind != Object {
		return nil, dataErrf(buf, 0, ErrCorruptStructure, "document root is a %s entry, not an object", hdr.kind)
	}
	w, err := d.Window(hdr.size)
	if err != nil {
		return nil, err // truncated document
	}
	if d.Remaining() != 0 {
		return nil, dataErrf(buf, d.off, ErrCorruptStructure, "%d trailing bytes after document root", d.Remaining())
	}
	root, err := decodeEntryBody(hdr, &w)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}
