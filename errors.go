package tinydb

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by encoding, decoding and the Document facade.
// Decode-path failures are wrapped in DataError for buffer context; match
// the kind with errors.Is.
var (
	ErrBufferUnderrun       = errors.New("buffer underrun")
	ErrBufferOverrun        = errors.New("buffer overrun")
	ErrUnknownPrimitiveType = errors.New("unknown primitive type")
	ErrUnknownContainerKind = errors.New("unknown container kind")
	ErrCorruptStructure     = errors.New("corrupt structure")
	ErrKeyNotFound          = errors.New("key not found")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrDuplicateKey         = errors.New("duplicate key")
)

// DataError carries the buffer and absolute offset a decode failure occurred
// at, wrapping one of the error kinds above.
type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s at offset %d: %v: (%d) %x", e.Msg, e.Off, e.Err, n, e.Data)
		} else {
			return fmt.Sprintf("%s at offset %d: (%d) %x", e.Msg, e.Off, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s at offset %d: %v: (%d) %x...%x", e.Msg, e.Off, e.Err, n, p, s)
		} else {
			return fmt.Sprintf("%s at offset %d: (%d) %x...%x", e.Msg, e.Off, n, p, s)
		}
	}
}
