package entity

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the type held by a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindReal
	KindInt
	KindBool
	KindString
	KindRef // Reference to a named asset or prototype, resolved against a symbol table
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindReal:
		return "real"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Symbol is a resolved asset reference. Target holds the resolved resource
// (e.g. *asset.Sprite or *Prototype) and may be nil if only the name is known.
type Symbol struct {
	Name   string
	Target any
}

// Value is a tagged union stored in property bags.
// The zero Value has KindNone.
type Value struct {
	kind Kind
	num  float64
	i    int64
	b    bool
	s    string
	ref  *Symbol
}

// Real creates a real-valued Value.
func Real(f float64) Value { return Value{kind: KindReal, num: f} }

// Int creates an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Bool creates a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String creates a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Ref creates an asset reference Value.
func Ref(name string, target any) Value {
	return Value{kind: KindRef, s: name, ref: &Symbol{Name: name, Target: target}}
}

// Kind returns the type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether the value is unset.
func (v Value) IsNone() bool { return v.kind == KindNone }

// Float returns the value as a float64. Integers and booleans convert;
// other kinds return 0.
func (v Value) Float() float64 {
	switch v.kind {
	case KindReal:
		return v.num
	case KindInt:
		return float64(v.i)
	case KindBool:
		if v.b {
			return 1
		}
	}
	return 0
}

// Int returns the value as an int64. Reals truncate toward zero.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindReal:
		return int64(v.num)
	case KindBool:
		if v.b {
			return 1
		}
	}
	return 0
}

// Bool returns the truthiness of the value. Numbers are true when > 0.5,
// strings and references when non-empty.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindReal:
		return v.num > 0.5
	case KindInt:
		return v.i > 0
	case KindString, KindRef:
		return v.s != ""
	}
	return false
}

// Str returns the string payload for strings and the symbol name for references.
func (v Value) Str() string {
	switch v.kind {
	case KindString, KindRef:
		return v.s
	}
	return ""
}

// Symbol returns the resolved symbol of a reference value.
func (v Value) Symbol() (*Symbol, bool) {
	if v.kind != KindRef {
		return nil, false
	}
	return v.ref, true
}

// Equal reports whether two values have the same kind and payload.
// References compare by name.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindReal:
		return v.num == o.num
	case KindInt:
		return v.i == o.i
	case KindBool:
		return v.b == o.b
	case KindString, KindRef:
		return v.s == o.s
	}
	return true
}

// String formats the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindReal:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return strconv.Quote(v.s)
	case KindRef:
		return fmt.Sprintf("@%s", v.s)
	}
	return "<none>"
}

// Props is a property bag keyed by name.
type Props map[string]Value

// Clone returns an independent copy of the bag.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Overlay returns a copy of p with every entry of over applied on top.
func (p Props) Overlay(over Props) Props {
	out := p.Clone()
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Keys returns the bag's keys in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
