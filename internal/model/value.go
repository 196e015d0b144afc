// internal/model/value.go
package model

import (
	"encoding/json"
	"strconv"
)

// ValueKind identifies the concrete type held by a Value.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindInt
	KindFloat
	KindString
)

// Value is a collected metric value: an integer, a float, a string, or
// explicitly missing. Missing is a first-class state, not a nil.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
}

// IntValue returns a Value holding an integer.
func IntValue(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// FloatValue returns a Value holding a float.
func FloatValue(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// StringValue returns a Value holding a string.
func StringValue(v string) Value {
	return Value{kind: KindString, s: v}
}

// MissingValue returns the missing Value.
func MissingValue() Value {
	return Value{kind: KindMissing}
}

// Kind returns the kind of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsMissing reports whether the value is missing.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Float returns the value as a float64. The second return is false when the
// value is a string or missing.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Text renders the value for report output. Integers render without a
// decimal point, floats with two decimals, missing values as "null".
func (v Value) Text() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', 2, 64)
	case KindString:
		return v.s
	default:
		return "null"
	}
}

// MarshalJSON encodes integers and floats as JSON numbers, strings as JSON
// strings, and missing values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		return json.Marshal(v.f)
	case KindString:
		return json.Marshal(v.s)
	default:
		return []byte("null"), nil
	}
}
