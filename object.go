package tinydb

import "fmt"

// NewObject returns an empty object entry.
func NewObject(name string) *Entry {
	return newEntry(name, Object)
}

// Put appends child as the last direct child of this object. Insertion order
// is the encoding order and the only iteration order. The format permits
// duplicate sibling names (Get returns the first match); the Document facade
// is where uniqueness is enforced.
//
// Panics if e is not an object or child is already attached to a parent.
func (e *Entry) Put(child *Entry) {
	if e.kind != Object {
		panic(fmt.Errorf("tinydb: Put on %s entry %q", e.kind, e.name))
	}
	if child.parent != nil {
		panic(fmt.Errorf("tinydb: entry %q is already attached to %q", child.name, child.parent.name))
	}
	child.parent = e
	e.children = append(e.children, child)
	n := child.EncodedLen()
	for p := e; p != nil; p = p.parent {
		p.size += n
		if uint64(p.size) > maxPayloadLen {
			panic(fmt.Errorf("tinydb: object %q payload exceeds %d bytes", p.name, uint64(maxPayloadLen)))
		}
	}
}

// Get returns the first direct child with the given name, or nil. Lookup is
// a linear scan; the facade's typed getters build on this.
func (e *Entry) Get(name string) *Entry {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Children returns the direct children in insertion order. The returned
// slice is owned by the entry and must not be mutated.
func (e *Entry) Children() []*Entry {
	return e.children
}

// decodeObjectPayload walks the object's payload window child by child.
// A child with an unknown container kind but a sound header is skipped via
// its declared size; that is the format's forward compatibility rule. A
// child whose header or declared extent overshoots the window means the
// object's own size field lied, which is ErrCorruptStructure.
func decodeObjectPayload(e *Entry, d *byteDecoder) error {
	for d.Remaining() > 0 {
		hdr, err := decodeHeader(d)
		if err != nil {
			return dataErrf(d.orig, d.off, ErrCorruptStructure, "object %q: child header extends past payload (%v)", e.name, err)
		}
		w, err := d.Window(hdr.size)
		if err != nil {
			return dataErrf(d.orig, d.off, ErrCorruptStructure, "object %q: child %q declares %d payload bytes, %d remaining", e.name, hdr.name, hdr.size, d.Remaining())
		}
		if !hdr.kind.valid() {
			continue // skip unknown kinds, keep decoding siblings
		}
		child, err := decodeEntryBody(hdr, &w)
		if err != nil {
			return err
		}
		e.Put(child)
	}
	return nil
}
