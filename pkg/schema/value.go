package schema

import (
	"fmt"

	"github.com/Keats/kickstart/pkg/errors"
)

// Kind identifies the type a variable holds for the whole run.
// It is decided once, from the TOML type of the variable's default.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
)

// String returns the schema-facing name of the kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	}
	return "unknown"
}

// Value is a closed union of the types a variable can hold: string,
// boolean or integer. Equality and coercion dispatch on the kind
// explicitly, there is no implicit conversion between kinds.
type Value struct {
	kind Kind
	str  string
	b    bool
	i    int64
}

// StringValue creates a string Value
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// BoolValue creates a boolean Value
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// IntValue creates an integer Value
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// ValueFromTOML converts a decoded TOML literal into a Value.
// Only strings, booleans and integers are allowed.
func ValueFromTOML(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case string:
		return StringValue(v), nil
	case bool:
		return BoolValue(v), nil
	case int64:
		return IntValue(v), nil
	case int:
		return IntValue(int64(v)), nil
	default:
		return Value{}, errors.Newf(errors.ErrSchemaInvalid,
			"value %v (of type %T) is not allowed: only strings, integers and booleans are", raw, raw)
	}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// String returns the display form of the value
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	}
	return ""
}

// AsString returns the string payload, false if the value is not a string
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsBool returns the boolean payload, false if the value is not a boolean
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the integer payload, false if the value is not an integer
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Equal reports type-aware equality: values of different kinds are
// never equal, even when their display forms match.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	}
	return false
}

// Interface returns the native Go value, for handing to the template engine
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	}
	return nil
}
