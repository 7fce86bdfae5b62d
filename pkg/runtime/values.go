package runtime

import (
	"fmt"
	"math/big"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindRational Kind = iota
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindRational:
		return "rational"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// ParseKind maps the names produced by Kind.String back to kinds.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "rational":
		return KindRational, true
	case "bool":
		return KindBool, true
	case "string":
		return KindString, true
	default:
		return 0, false
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// RationalValue holds a normalized exact rational. Val is never mutated once
// the value is built; arithmetic always allocates a fresh big.Rat.
type RationalValue struct {
	Val *big.Rat
}

func (v RationalValue) Kind() Kind { return KindRational }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// NewRational panics when den is zero, like big.NewRat.
func NewRational(num, den int64) RationalValue {
	return RationalValue{Val: big.NewRat(num, den)}
}

// RationalFrom copies r into a new value.
func RationalFrom(r *big.Rat) RationalValue {
	out := new(big.Rat)
	if r != nil {
		out.Set(r)
	}
	return RationalValue{Val: out}
}

// Zero is the value produced by assignments, loops and blocks.
func Zero() RationalValue {
	return RationalValue{Val: new(big.Rat)}
}

// IsZero reports whether v is the rational zero.
func (v RationalValue) IsZero() bool {
	return v.Val == nil || v.Val.Sign() == 0
}

// Truthy follows the usual scalar truth rules: zero, false and the empty
// string are falsy.
func Truthy(val Value) bool {
	switch v := val.(type) {
	case RationalValue:
		return !v.IsZero()
	case BoolValue:
		return v.Val
	case StringValue:
		return v.Val != ""
	default:
		return false
	}
}

// ValuesEqual compares values of the same kind; values of different kinds are
// never equal.
func ValuesEqual(left, right Value) bool {
	switch lv := left.(type) {
	case RationalValue:
		if rv, ok := right.(RationalValue); ok {
			return ratOf(lv).Cmp(ratOf(rv)) == 0
		}
	case BoolValue:
		if rv, ok := right.(BoolValue); ok {
			return lv.Val == rv.Val
		}
	case StringValue:
		if rv, ok := right.(StringValue); ok {
			return lv.Val == rv.Val
		}
	}
	return false
}

// FormatValue renders a value for display: rationals as n or n/d.
func FormatValue(val Value) string {
	switch v := val.(type) {
	case RationalValue:
		return ratOf(v).RatString()
	case BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case StringValue:
		return v.Val
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}

func ratOf(v RationalValue) *big.Rat {
	if v.Val == nil {
		return new(big.Rat)
	}
	return v.Val
}
