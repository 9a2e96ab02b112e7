// Package content provides an immutable, order-preserving representation of
// decoded JSON and YAML documents.
//
// A Value is a tagged variant: null, bool, number, string, an ordered
// sequence, or a map whose keys keep their source order. Values are built by
// Decode (or the constructor functions) and never change afterwards, so they
// can be shared freely between goroutines.
//
// Field access is explicit. Optional fields are read with accessors that
// report whether the field was present, and StringField reports a *TypeError
// naming the field when it is present with the wrong type:
//
//	v, err := content.Decode(data)
//	if err != nil {
//		return err
//	}
//	version, ok, err := v.StringField("openapi")
package content

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// Null is the zero Kind; the zero Value is null.
	Null Kind = iota
	Bool
	Number
	String
	Sequence
	Map
)

var kindNames = [...]string{
	Null:     "null",
	Bool:     "boolean",
	Number:   "number",
	String:   "string",
	Sequence: "array",
	Map:      "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Member is one key/value pair of a Map value.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON/YAML value. The zero Value is null.
type Value struct {
	kind Kind
	// text holds the String content or the Number literal
	text    string
	flag    bool
	items   []Value
	members []Member
	index   map[string]int
}

// TypeError reports a field that is present but holds the wrong kind of value.
type TypeError struct {
	// Field is the key that was looked up; empty when the value itself was inspected
	Field string
	Want  Kind
	Got   Kind
}

func (e *TypeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
	}
	return fmt.Sprintf("field %q: expected %s, got %s", e.Field, e.Want, e.Got)
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: Bool, flag: b} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// NumberValue returns a number value holding f.
func NumberValue(f float64) Value {
	return Value{kind: Number, text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// IntValue returns a number value holding n.
func IntValue(n int64) Value {
	return Value{kind: Number, text: strconv.FormatInt(n, 10)}
}

// SequenceValue returns an ordered sequence of items.
func SequenceValue(items ...Value) Value {
	return Value{kind: Sequence, items: slices.Clone(items)}
}

// MapValue returns a map with the members in the given order.
// When a key repeats, the last value wins and keeps the first position.
func MapValue(members ...Member) Value {
	v := Value{kind: Map, members: make([]Member, 0, len(members)), index: make(map[string]int, len(members))}
	for _, m := range members {
		v.set(m.Key, m.Value)
	}
	return v
}

// set is only used while a Value is being built.
func (v *Value) set(key string, val Value) {
	if i, ok := v.index[key]; ok {
		v.members[i].Value = val
		return
	}
	v.index[key] = len(v.members)
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == Null }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.text, v.kind == String
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.flag, v.kind == Bool
}

// AsNumber returns the number held by v as a float64.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.text, 64)
	return f, err == nil
}

// NumberLiteral returns the number exactly as it was written in the source.
func (v Value) NumberLiteral() (string, bool) {
	return v.text, v.kind == Number
}

// Len returns the number of items of a sequence or members of a map, and 0
// for scalars.
func (v Value) Len() int {
	switch v.kind {
	case Sequence:
		return len(v.items)
	case Map:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th item of a sequence.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Sequence || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Items returns a copy of the items of a sequence.
func (v Value) Items() []Value {
	if v.kind != Sequence {
		return nil
	}
	return slices.Clone(v.items)
}

// Get returns the value stored under key in a map.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Map {
		return Value{}, false
	}
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.members[i].Value, true
}

// Has reports whether v is a map containing key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Keys returns the keys of a map in source order.
func (v Value) Keys() []string {
	if v.kind != Map {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Members iterates over the members of a map in source order.
func (v Value) Members() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if v.kind != Map {
			return
		}
		for _, m := range v.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Elements iterates over the items of a sequence.
func (v Value) Elements() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.kind != Sequence {
			return
		}
		for i, item := range v.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// StringField reads an optional string field of a map.
//
// It returns ok=false with a nil error when v is a map without the field. A
// *TypeError is returned when v is not a map, or when the field exists but
// does not hold a string.
func (v Value) StringField(key string) (s string, ok bool, err error) {
	if v.kind != Map {
		return "", false, &TypeError{Want: Map, Got: v.kind}
	}
	field, present := v.Get(key)
	if !present {
		return "", false, nil
	}
	s, isString := field.AsString()
	if !isString {
		return "", false, &TypeError{Field: key, Want: String, Got: field.kind}
	}
	return s, true, nil
}

// Equal reports whether v and other hold the same data. Map key order is not
// significant; sequence order is.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.flag == other.flag
	case Number:
		if v.text == other.text {
			return true
		}
		a, okA := v.AsNumber()
		b, okB := other.AsNumber()
		return okA && okB && a == b
	case String:
		return v.text == other.text
	case Sequence:
		return slices.EqualFunc(v.items, other.items, Value.Equal)
	case Map:
		if len(v.members) != len(other.members) {
			return false
		}
		for _, m := range v.members {
			o, ok := other.Get(m.Key)
			if !ok || !m.Value.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v into plain Go values: nil, bool, int64 or float64,
// string, []any and map[string]any. Key order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.flag
	case Number:
		if n, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return n
		}
		f, _ := v.AsNumber()
		return f
	case String:
		return v.text
	case Sequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case Map:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// String returns v as compact JSON.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(data)
}
