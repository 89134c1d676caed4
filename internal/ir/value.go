package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Scalar is a sealed interface representing a resolved property value.
// Only String, Int, and Decimal implement this.
// NO float variant - fractional numbers are carried as Decimal.
type Scalar interface {
	// Canonical renders the value without locale formatting.
	// This is the representation used inside product keys.
	Canonical() string

	// Truthy reports whether the value is non-empty and non-zero.
	Truthy() bool

	scalar() // Sealed - only these types implement it
}

// String is a string property value.
type String string

func (String) scalar() {}

// Canonical returns the string unchanged.
func (s String) Canonical() string { return string(s) }

// Truthy is false only for the empty string.
func (s String) Truthy() bool { return s != "" }

// Int is an integer property value. Always int64.
type Int int64

func (Int) scalar() {}

// Canonical renders the integer in base 10.
func (n Int) Canonical() string { return strconv.FormatInt(int64(n), 10) }

// Truthy is false only for zero.
func (n Int) Truthy() bool { return n != 0 }

// Decimal is a fractional property value.
type Decimal struct {
	d decimal.Decimal
}

func (Decimal) scalar() {}

// NewDecimal wraps a decimal as a Scalar.
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{d: d}
}

// Value returns the wrapped decimal.
func (d Decimal) Value() decimal.Decimal { return d.d }

// Canonical renders the decimal with no exponent and no trailing zeros
// beyond its scale (e.g. "31.5").
func (d Decimal) Canonical() string { return d.d.String() }

// Truthy is false only for zero.
func (d Decimal) Truthy() bool { return !d.d.IsZero() }

// Equal reports whether two scalars have the same variant and value.
// Decimal values compare numerically, so 1.50 equals 1.5.
func Equal(a, b Scalar) bool {
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Decimal:
		bv, ok := b.(Decimal)
		return ok && av.d.Equal(bv.d)
	default:
		return false
	}
}

// MarshalScalar encodes a Scalar as JSON.
// Decimals are written as bare JSON numbers.
func MarshalScalar(v Scalar) ([]byte, error) {
	switch val := v.(type) {
	case String:
		return json.Marshal(string(val))
	case Int:
		return []byte(val.Canonical()), nil
	case Decimal:
		return []byte(val.Canonical()), nil
	default:
		return nil, fmt.Errorf("unknown Scalar type: %T", v)
	}
}

// UnmarshalScalar decodes a JSON value into a Scalar.
// Strings become String, integers become Int, any other number becomes
// Decimal. null, booleans, arrays, and objects are rejected.
func UnmarshalScalar(data []byte) (Scalar, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return ScalarFromAny(raw)
}

// ScalarFromAny converts a decoded Go value into a Scalar.
// Accepts the shapes produced by encoding/json (with UseNumber) and by
// yaml.v3 decoding into interface{}.
func ScalarFromAny(v any) (Scalar, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is not a valid property value")
	case Scalar:
		return val, nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case json.Number:
		return parseNumber(string(val))
	case decimal.Decimal:
		return NewDecimal(val), nil
	case float64, float32:
		// yaml.v3 yields float64 for fractional literals; go through the
		// shortest text form to avoid binary rounding artifacts.
		return parseNumber(fmt.Sprint(val))
	default:
		return nil, fmt.Errorf("unsupported property value type: %T", v)
	}
}

// ScalarFromNode converts a YAML scalar node into a Scalar using its
// resolved tag. Only !!str, !!int, and !!float are accepted.
func ScalarFromNode(node *yaml.Node) (Scalar, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: property value must be a scalar", node.Line)
	}

	switch node.ShortTag() {
	case "!!str":
		return String(node.Value), nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Int(n), nil
	case "!!float":
		d, err := decimal.NewFromString(node.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid number %q", node.Line, node.Value)
		}
		return NewDecimal(d), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported property value %q (%s)", node.Line, node.Value, node.ShortTag())
	}
}

// parseNumber turns a numeric literal into Int when it is integral,
// Decimal otherwise.
func parseNumber(s string) (Scalar, error) {
	if !strings.ContainsAny(s, ".eE") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("number out of int64 range: %s", s)
		}
		return Int(n), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return NewDecimal(d), nil
}
