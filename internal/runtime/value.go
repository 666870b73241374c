// Package runtime implements the evaluator and runtime value system for lux.
package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Luxbin-labs/luxbin-lang/internal/ast"
)

// Value is the interface for all runtime values.
type Value interface {
	TypeName() string
	String() string
}

// ---- Primitive values ----

// NumberVal is the single numeric domain: every LLL number is a float64.
// TypeName reports "int" when the value is exactly integer-representable
// and "float" otherwise; the distinction is surface-only.
type NumberVal float64

func (v NumberVal) TypeName() string {
	f := float64(v)
	if f == math.Trunc(f) && f >= -math.MaxInt64 && f <= math.MaxInt64 {
		return "int"
	}
	return "float"
}

func (v NumberVal) String() string {
	f := float64(v)
	if f == math.Trunc(f) && !math.IsInf(f, 0) && f >= -math.MaxInt64 && f <= math.MaxInt64 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// StringVal represents a string value.
type StringVal string

func (v StringVal) TypeName() string { return "string" }
func (v StringVal) String() string   { return string(v) }

// BoolVal represents a boolean value.
type BoolVal bool

func (v BoolVal) TypeName() string { return "bool" }
func (v BoolVal) String() string   { return strconv.FormatBool(bool(v)) }

// NilVal represents nil.
type NilVal struct{}

func (v NilVal) TypeName() string { return "nil" }
func (v NilVal) String() string   { return "nil" }

// ---- Array value ----

// ArrayVal represents an ordered, zero-indexed, mutable array. Arrays are
// reference values: assigning one binding to another aliases the same
// backing ArrayVal, so mutation through either is visible through both.
type ArrayVal struct {
	Elements []Value
}

func (v *ArrayVal) TypeName() string { return "array" }
func (v *ArrayVal) String() string {
	parts := make([]string, len(v.Elements))
	for i, elem := range v.Elements {
		parts[i] = elem.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ---- Callable values ----

// FunctionVal represents a user-declared function: a reference to its
// declaration body plus the environment captured at the moment the
// declaration executed.
type FunctionVal struct {
	Name    string
	Params  []string
	Body    *ast.BlockStmt
	Closure *Environment
}

func (v *FunctionVal) TypeName() string { return "function" }
func (v *FunctionVal) String() string   { return fmt.Sprintf("<function %s>", v.Name) }

// BuiltinVal wraps a native callable under the name it was registered as.
type BuiltinVal struct {
	Name string
	Fn   BuiltinFunc
}

func (v *BuiltinVal) TypeName() string { return "builtin" }
func (v *BuiltinVal) String() string   { return fmt.Sprintf("<builtin %s>", v.Name) }

// ---- Truthiness ----

// IsTruthy reports whether a value counts as true in a condition. nil,
// false, the number zero, and the empty string are falsy; every other
// value, including empty arrays, is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case NilVal:
		return false
	case BoolVal:
		return bool(val)
	case NumberVal:
		return float64(val) != 0
	case StringVal:
		return string(val) != ""
	default:
		return true
	}
}

// ---- Equality ----

// valuesEqual implements == / != across all value kinds: numbers compare
// numerically, strings by contents, booleans and nil by identity, arrays
// and functions by reference.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case NumberVal:
		bv, ok := b.(NumberVal)
		return ok && float64(av) == float64(bv)
	case StringVal:
		bv, ok := b.(StringVal)
		return ok && string(av) == string(bv)
	case BoolVal:
		bv, ok := b.(BoolVal)
		return ok && bool(av) == bool(bv)
	case NilVal:
		_, ok := b.(NilVal)
		return ok
	default:
		return a == b
	}
}

// ---- Helpers ----

// ValuesString formats a slice of values with a separator, used by print
// and println.
func ValuesString(vals []Value, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, sep)
}

// ToFloat64 extracts the underlying float64 of a NumberVal.
func ToFloat64(v Value) (float64, bool) {
	n, ok := v.(NumberVal)
	if !ok {
		return 0, false
	}
	return float64(n), true
}
