// Package tinydb implements a compact, self-describing binary format for
// hierarchical game state: save files, level snapshots, configuration blobs.
//
// A document is a tree of named entries. Every entry carries a one-byte
// container kind, a length-prefixed name and the byte length of its payload,
// so a reader can skip over entries it does not understand and still decode
// the rest of the document. That skip rule is the format's only forward
// compatibility mechanism; there is no schema and no version negotiation.
//
// Wire format (all multi-byte fields big-endian):
//
//	entry           = kind:8 nameLen:16 name:nameLen size:32 payload
//	payload(value)  = primType:8 value:width(primType)
//	payload(array)  = primType:8 count:32 elements:count*width(primType)
//	payload(object) = entry*      (total payload bytes = size)
//
// Container kinds: 0 value, 1 array, 2 object. Primitive types: 0 byte(1),
// 1 short(2), 2 char(2), 3 int32(4), 4 int64(8), 5 float32(4), 6 float64(8),
// 7 bool(1); the number in parentheses is the encoded width in bytes.
//
// Encoding walks the tree depth-first, pre-order, children in insertion
// order, and decoding mirrors that exactly, so any two conforming
// implementations produce byte-identical output for the same tree.
//
// The core is purely in-memory and synchronous, and never touches files;
// see the savestore subpackage for persisting documents to disk.
package tinydb
