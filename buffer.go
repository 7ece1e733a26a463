package tinydb

func bePutUint16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func bePutUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func bePutUint64(b []byte, v uint64) {
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

func beUint16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func beUint64(b []byte) uint64 {
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

// byteBuf writes into a preallocated buffer and never grows it. Encode paths
// precompute exact sizes, so running out of space means an undersized
// caller-provided buffer; every append checks space before mutating anything,
// so a failed append leaves the buffer untouched.
type byteBuf struct {
	buf []byte
	off int
}

func prealloc(n int) byteBuf {
	return byteBuf{buf: make([]byte, n)}
}

func (b *byteBuf) Trimmed() []byte {
	return b.buf[:b.off]
}

func (b *byteBuf) grow(n int) (int, error) {
	if b.off+n > len(b.buf) {
		return 0, dataErrf(b.buf, b.off, ErrBufferOverrun, "writing %d bytes, %d remaining", n, len(b.buf)-b.off)
	}
	off := b.off
	b.off += n
	return off, nil
}

func (b *byteBuf) AppendByte(v byte) error {
	off, err := b.grow(1)
	if err != nil {
		return err
	}
	b.buf[off] = v
	return nil
}

func (b *byteBuf) AppendUint16(v uint16) error {
	off, err := b.grow(2)
	if err != nil {
		return err
	}
	bePutUint16(b.buf[off:], v)
	return nil
}

func (b *byteBuf) AppendUint32(v uint32) error {
	off, err := b.grow(4)
	if err != nil {
		return err
	}
	bePutUint32(b.buf[off:], v)
	return nil
}

func (b *byteBuf) AppendUint64(v uint64) error {
	off, err := b.grow(8)
	if err != nil {
		return err
	}
	bePutUint64(b.buf[off:], v)
	return nil
}

func (b *byteBuf) AppendRaw(v []byte) error {
	off, err := b.grow(len(v))
	if err != nil {
		return err
	}
	copy(b.buf[off:], v)
	return nil
}

// AppendString16 writes a u16 length prefix followed by the raw bytes of s,
// with no terminator. Callers validate length <= 65535 at construction time.
func (b *byteBuf) AppendString16(s string) error {
	off, err := b.grow(2 + len(s))
	if err != nil {
		return err
	}
	bePutUint16(b.buf[off:], uint16(len(s)))
	copy(b.buf[off+2:], s)
	return nil
}

// AppendScalar writes the low width(t) bytes of bits, big-endian.
func (b *byteBuf) AppendScalar(t PrimType, bits uint64) error {
	switch t.width() {
	case 1:
		return b.AppendByte(byte(bits))
	case 2:
		return b.AppendUint16(uint16(bits))
	case 4:
		return b.AppendUint32(uint32(bits))
	default:
		return b.AppendUint64(bits)
	}
}

// byteDecoder reads a window of the input buffer, tracking the absolute
// offset for error reporting. Every read checks remaining length first and
// fails with ErrBufferUnderrun without consuming anything.
type byteDecoder struct {
	orig []byte // entire input, for error context
	buf  []byte // unread remainder of this decoder's window
	off  int    // absolute offset of buf[0] within orig
}

func makeByteDecoder(buf []byte) byteDecoder {
	return byteDecoder{buf, buf, 0}
}

func (d *byteDecoder) Remaining() int {
	return len(d.buf)
}

func (d *byteDecoder) take(n int) ([]byte, error) {
	if len(d.buf) < n {
		return nil, dataErrf(d.orig, d.off, ErrBufferUnderrun, "reading %d bytes, %d remaining", n, len(d.buf))
	}
	v := d.buf[:n]
	d.buf = d.buf[n:]
	d.off += n
	return v, nil
}

func (d *byteDecoder) Raw(n int) ([]byte, error) {
	return d.take(n)
}

// Window consumes n bytes and returns a sub-decoder restricted to them.
func (d *byteDecoder) Window(n int) (byteDecoder, error) {
	off := d.off
	v, err := d.take(n)
	if err != nil {
		return byteDecoder{}, err
	}
	return byteDecoder{d.orig, v, off}, nil
}

func (d *byteDecoder) Byte() (byte, error) {
	v, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func (d *byteDecoder) Uint16() (uint16, error) {
	v, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return beUint16(v), nil
}

func (d *byteDecoder) Uint32() (uint32, error) {
	v, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return beUint32(v), nil
}

func (d *byteDecoder) Uint64() (uint64, error) {
	v, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return beUint64(v), nil
}

// String16 reads a u16 length prefix and that many raw bytes. The returned
// string is a copy and does not alias the input buffer.
func (d *byteDecoder) String16() (string, error) {
	n, err := d.Uint16()
	if err != nil {
		return "", err
	}
	v, err := d.take(int(n))
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Scalar reads width(t) bytes and zero-extends them into uint64 bits.
func (d *byteDecoder) Scalar(t PrimType) (uint64, error) {
	switch t.width() {
	case 1:
		v, err := d.Byte()
		return uint64(v), err
	case 2:
		v, err := d.Uint16()
		return uint64(v), err
	case 4:
		v, err := d.Uint32()
		return uint64(v), err
	default:
		return d.Uint64()
	}
}
