/*
Package values defines the zk value-type lattice and the handful of
free functions that work on rendered textual values.

Every runtime value flows through the interpreter as its rendered text;
a companion Type is consulted only where a static type is actually
needed (declared variable type, function return type) — a single
string plus a small enum, rather than a polymorphic object hierarchy.
*/
package values

import "strconv"

// Type is one of the five atoms in the value-type lattice.
type Type int

const (
	Integer Type = iota
	Float
	String
	Bool
	None
)

// String renders a Type the way diagnostics print it: int|float|string|bool|null.
func (t Type) String() string {
	switch t {
	case Integer:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case None:
		return "null"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether t is Integer or Float.
func (t Type) IsNumeric() bool {
	return t == Integer || t == Float
}

// Widen returns the value-type binary arithmetic produces from two
// numeric operand types: Float if either operand is Float, else Integer.
func Widen(a, b Type) Type {
	if a == Float || b == Float {
		return Float
	}
	return Integer
}

// Truthy reports whether text counts as true: every text is truthy
// unless it is exactly "", "0", "null", or "false".
func Truthy(text string) bool {
	switch text {
	case "", "0", "null", "false":
		return false
	default:
		return true
	}
}

// ParseNumeric attempts to parse text as a float64, the common
// representation used for arithmetic and numeric comparison regardless
// of whether the operand's static type is Integer or Float.
func ParseNumeric(text string) (float64, bool) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// HasDecimalPoint reports whether text, as originally written, contains
// a '.' — used to decide whether a binary-op result should render as a
// float or be truncated to an integer.
func HasDecimalPoint(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] == '.' {
			return true
		}
	}
	return false
}

// FormatFloat renders a float64 using the shortest round-trip
// representation ('g' format): trailing zeros are dropped and very large
// or very small magnitudes use exponent notation (e.g. "1e+21").
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatInt renders an integer result, truncating toward zero.
func FormatInt(f float64) string {
	return strconv.FormatInt(int64(f), 10)
}

// TypeKeyword maps a type keyword's spelling (as lexed) to its Type.
func TypeKeyword(word string) (Type, bool) {
	switch word {
	case "int":
		return Integer, true
	case "float":
		return Float, true
	case "string":
		return String, true
	case "bool":
		return Bool, true
	default:
		return None, false
	}
}
