// Package value defines ObjectQL's uniform runtime value representation.
//
// Every piece of data that flows through the lexer, parser, and evaluator —
// whether it originates in the caller's data tree or is produced mid-
// evaluation — is a Value. The kind tag mirrors the teacher's ValueKind
// convention (internal/graph/value.go) but widens it with List and Map so
// the same type can represent both scalars and the tree-shaped data the
// query language walks.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the variant a Value carries.
type Kind int

const (
	Null Kind = iota
	Bool
	Integer
	Float
	String
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// Value is the tagged variant described in spec §3. Only the field(s)
// matching Kind are meaningful; the zero Value is Null.
type Value struct {
	Kind Kind
	B    bool
	I    int64
	F    float64
	S    string
	L    []Value
	M    map[string]Value
}

func NullValue() Value                { return Value{Kind: Null} }
func BoolValue(b bool) Value          { return Value{Kind: Bool, B: b} }
func IntValue(i int64) Value          { return Value{Kind: Integer, I: i} }
func FloatValue(f float64) Value      { return Value{Kind: Float, F: f} }
func StringValue(s string) Value      { return Value{Kind: String, S: s} }
func ListValue(xs []Value) Value      { return Value{Kind: List, L: xs} }
func MapValue(m map[string]Value) Value {
	return Value{Kind: Map, M: m}
}

func (v Value) IsNull() bool { return v.Kind == Null }

// IsNumeric reports whether v is Integer or Float.
func (v Value) IsNumeric() bool { return v.Kind == Integer || v.Kind == Float }

// AsFloat returns v's numeric value as a float64. ok is false for
// non-numeric kinds.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case Integer:
		return float64(v.I), true
	case Float:
		return v.F, true
	default:
		return 0, false
	}
}

// String renders v for diagnostics, concat(), and string coercion. It is
// not a parseable round-trip format.
func (v Value) String() string {
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.B)
	case Integer:
		return strconv.FormatInt(v.I, 10)
	case Float:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case String:
		return v.S
	case List:
		parts := make([]string, len(v.L))
		for i, e := range v.L {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Map:
		keys := make([]string, 0, len(v.M))
		for k := range v.M {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, v.M[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}

// Equal compares two values by ObjectQL's membership/equality semantics:
// numeric kinds compare via float64, everything else compares by kind and
// underlying field. It is used by In/NotIn and by == on non-boolean,
// non-numeric operands that have already been resolved to concrete values.
func Equal(a, b Value) bool {
	if a.IsNumeric() && b.IsNumeric() {
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return af == bf
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Null:
		return true
	case Bool:
		return a.B == b.B
	case String:
		return a.S == b.S
	case List:
		if len(a.L) != len(b.L) {
			return false
		}
		for i := range a.L {
			if !Equal(a.L[i], b.L[i]) {
				return false
			}
		}
		return true
	case Map:
		if len(a.M) != len(b.M) {
			return false
		}
		for k, av := range a.M {
			bv, ok := b.M[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
