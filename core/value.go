package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value represents a loosely-typed content attribute value.
type Value interface {
	Kind() Kind
	String() string
}

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindString
	KindArray
	KindDict
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindReal:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindDict:
		return "mapping"
	default:
		return "unknown"
	}
}

// Null represents an absent or explicit null value.
type Null struct{}

func (n Null) Kind() Kind     { return KindNull }
func (n Null) String() string { return "null" }

// Bool represents a boolean value.
type Bool bool

func (b Bool) Kind() Kind { return KindBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int represents an integer value.
type Int int64

func (i Int) Kind() Kind     { return KindInt }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Real represents a floating point value.
type Real float64

func (r Real) Kind() Kind     { return KindReal }
func (r Real) String() string { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String represents a text value.
type String string

func (s String) Kind() Kind     { return KindString }
func (s String) String() string { return string(s) }

// Array represents an ordered sequence of values.
type Array []Value

func (a Array) Kind() Kind { return KindArray }
func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Len returns the number of elements in the array.
func (a Array) Len() int { return len(a) }

// Get retrieves the element at the given index, or nil if out of range.
func (a Array) Get(index int) Value {
	if index < 0 || index >= len(a) {
		return nil
	}
	return a[index]
}

// Strings returns the array as a string slice if every element is a String.
// The second return value reports whether the conversion succeeded.
func (a Array) Strings() ([]string, bool) {
	out := make([]string, len(a))
	for i, v := range a {
		s, ok := v.(String)
		if !ok {
			return nil, false
		}
		out[i] = string(s)
	}
	return out, true
}

// Dict represents a string-keyed mapping of values.
type Dict map[string]Value

func (d Dict) Kind() Kind { return KindDict }
func (d Dict) String() string {
	keys := d.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + d[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get retrieves a value by key, or nil if the key is absent.
func (d Dict) Get(key string) Value {
	v, ok := d[key]
	if !ok {
		return nil
	}
	return v
}

// Has reports whether the key is present.
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Keys returns the keys in sorted order for deterministic iteration.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString retrieves a string value by key. The second return value is
// false when the key is absent or the value is not a String.
func (d Dict) GetString(key string) (string, bool) {
	s, ok := d[key].(String)
	if !ok {
		return "", false
	}
	return string(s), true
}

// GetArray retrieves an array value by key. The second return value is
// false when the key is absent or the value is not an Array.
func (d Dict) GetArray(key string) (Array, bool) {
	a, ok := d[key].(Array)
	if !ok {
		return nil, false
	}
	return a, true
}

// GetBool retrieves a boolean value by key. The second return value is
// false when the key is absent or the value is not a Bool.
func (d Dict) GetBool(key string) (bool, bool) {
	b, ok := d[key].(Bool)
	if !ok {
		return false, false
	}
	return bool(b), true
}

// FromAny converts a dynamically-typed value, as produced by the yaml and
// json decoders or read from a database row, into a Value. Unrecognized
// types are stringified via fmt so that no attribute is silently lost.
func FromAny(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(val)
	case int:
		return Int(val)
	case int64:
		return Int(val)
	case uint64:
		return Int(int64(val))
	case float32:
		return Real(val)
	case float64:
		return Real(val)
	case string:
		return String(val)
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			arr[i] = FromAny(elem)
		}
		return arr
	case map[string]any:
		return FromMap(val)
	case Value:
		return val
	default:
		return String(fmt.Sprintf("%v", val))
	}
}

// FromMap converts a decoded mapping into a Dict.
func FromMap(m map[string]any) Dict {
	d := make(Dict, len(m))
	for k, v := range m {
		d[k] = FromAny(v)
	}
	return d
}
