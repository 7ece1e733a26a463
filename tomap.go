package tinydb

import (
	"fmt"
	"sort"
	"unicode/utf16"
)

// ToMap converts the document into nested generic values: scalars become
// their Go values, arrays become typed slices, char arrays become strings
// (UTF-16 decoded), objects become map[string]any. Sibling order is lost;
// the bridge exists for tooling and metadata export, not as a second wire
// format.
func (doc *Document) ToMap() map[string]any {
	return objectToMap(doc.root)
}

func objectToMap(e *Entry) map[string]any {
	m := make(map[string]any, len(e.children))
	for _, c := range e.children {
		m[c.name] = entryValue(c)
	}
	return m
}

func entryValue(e *Entry) any {
	if e.kind == Object {
		return objectToMap(e)
	}
	if e.kind == Value {
		switch e.prim {
		case Byte:
			return must(e.Byte())
		case Short:
			return must(e.Short())
		case Char:
			return must(e.Char())
		case Int32:
			return must(e.Int32())
		case Int64:
			return must(e.Int64())
		case Float32:
			return must(e.Float32())
		case Float64:
			return must(e.Float64())
		default:
			return must(e.Bool())
		}
	}
	switch e.prim {
	case Byte:
		return must(e.ByteArray())
	case Short:
		return must(e.ShortArray())
	case Char:
		return string(utf16.Decode(must(e.CharArray())))
	case Int32:
		return must(e.Int32Array())
	case Int64:
		return must(e.Int64Array())
	case Float32:
		return must(e.Float32Array())
	case Float64:
		return must(e.Float64Array())
	default:
		return must(e.BoolArray())
	}
}

// DocumentFromMap builds a document from nested generic values, the inverse
// of ToMap. Keys are attached in sorted order so the result is
// deterministic. Plain int values widen to int64; strings become char
// arrays. Unsupported value types fail with ErrTypeMismatch.
func DocumentFromMap(m map[string]any) (*Document, error) {
	doc := NewDocument()
	if err := putMapInto(doc.root, m); err != nil {
		return nil, err
	}
	return doc, nil
}

func putMapInto(obj *Entry, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e, err := entryFromValue(k, m[k])
		if err != nil {
			return err
		}
		obj.Put(e)
	}
	return nil
}

func entryFromValue(name string, v any) (*Entry, error) {
	switch v := v.(type) {
	case map[string]any:
		obj := NewObject(name)
		if err := putMapInto(obj, v); err != nil {
			return nil, err
		}
		return obj, nil
	case byte:
		return NewByte(name, v), nil
	case int16:
		return NewShort(name, v), nil
	case uint16:
		return NewChar(name, v), nil
	case int32:
		return NewInt32(name, v), nil
	case int64:
		return NewInt64(name, v), nil
	case int:
		return NewInt64(name, int64(v)), nil
	case float32:
		return NewFloat32(name, v), nil
	case float64:
		return NewFloat64(name, v), nil
	case bool:
		return NewBool(name, v), nil
	case string:
		return NewCharArray(name, utf16.Encode([]rune(v))), nil
	case []byte:
		return NewByteArray(name, v), nil
	case []int16:
		return NewShortArray(name, v), nil
	case []uint16:
		return NewCharArray(name, v), nil
	case []int32:
		return NewInt32Array(name, v), nil
	case []int64:
		return NewInt64Array(name, v), nil
	case []float32:
		return NewFloat32Array(name, v), nil
	case []float64:
		return NewFloat64Array(name, v), nil
	case []bool:
		return NewBoolArray(name, v), nil
	default:
		return nil, fmt.Errorf("%q: cannot represent %T: %w", name, v, ErrTypeMismatch)
	}
}
