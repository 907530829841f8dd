package domain

import (
	"strconv"
	"strings"
)

// ValueKind discriminates the scalar variants a variable can hold.
type ValueKind string

const (
	KindEmpty  ValueKind = "empty"
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
	KindBool   ValueKind = "bool"
	// KindMap is an ordered name -> Value mapping, used for structured
	// declarations like `completed_modules: {}`.
	KindMap ValueKind = "map"
)

// Value is the scalar variant stored in variable scopes.
// The zero Value is Empty.
type Value struct {
	Kind    ValueKind  `json:"kind" yaml:"kind"`
	Str     string     `json:"str,omitempty" yaml:"str,omitempty"`
	Num     float64    `json:"num,omitempty" yaml:"num,omitempty"`
	Bool    bool       `json:"bool,omitempty" yaml:"bool,omitempty"`
	Entries []MapEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// MapEntry is one ordered pair of a KindMap value.
type MapEntry struct {
	Name  string `json:"name" yaml:"name"`
	Value Value  `json:"value" yaml:"value"`
}

// EmptyValue returns the Empty variant.
func EmptyValue() Value { return Value{Kind: KindEmpty} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// MapValue wraps an ordered mapping.
func MapValue(entries ...MapEntry) Value {
	return Value{Kind: KindMap, Entries: entries}
}

// Truthy reports whether the value counts as true in a condition branch.
// Empty, false, zero, and the strings "false" and "0" are falsy; everything
// else is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindEmpty:
		return false
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num != 0
	case KindString:
		return v.Str != "false" && v.Str != "0"
	default:
		return true
	}
}

// Display renders the value for interpolation into script text.
// Empty renders as "", whole numbers render without a decimal point, and
// maps render their entries in declaration order.
func (v Value) Display() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindMap:
		var sb strings.Builder
		sb.WriteString("{")
		for i, e := range v.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.Name)
			sb.WriteString(": ")
			sb.WriteString(e.Value.Display())
		}
		sb.WriteString("}")
		return sb.String()
	default:
		return ""
	}
}
