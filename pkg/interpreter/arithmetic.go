package interpreter

import (
	"math/big"
	"strings"

	"ratexpr/interpreter-go/pkg/ast"
	"ratexpr/interpreter-go/pkg/runtime"
)

func evaluateArithmetic(op ast.BinaryOperator, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	lv, lok := left.(runtime.RationalValue)
	rv, rok := right.(runtime.RationalValue)
	if !lok || !rok {
		return nil, unsupported("operator %s requires rational operands, got %s and %s", op, left.Kind(), right.Kind())
	}
	a, b := ratValue(lv), ratValue(rv)
	result := new(big.Rat)
	switch op {
	case ast.OpAdd:
		result.Add(a, b)
	case ast.OpSub:
		result.Sub(a, b)
	case ast.OpMul:
		result.Mul(a, b)
	case ast.OpDiv:
		if b.Sign() == 0 {
			return nil, ErrDivisionByZero
		}
		result.Quo(a, b)
	case ast.OpPow:
		pow, err := ratPow(a, b)
		if err != nil {
			return nil, err
		}
		result = pow
	default:
		return nil, unsupported("arithmetic operator %q", op)
	}
	return runtime.RationalValue{Val: result}, nil
}

// ratPow raises base to an integer exponent of either sign. Non-integer
// exponents have no exact rational result and are rejected.
func ratPow(base, exp *big.Rat) (*big.Rat, error) {
	if !exp.IsInt() {
		return nil, unsupported("non-integer exponent %s", exp.RatString())
	}
	e := new(big.Int).Abs(exp.Num())
	num := new(big.Int).Exp(base.Num(), e, nil)
	den := new(big.Int).Exp(base.Denom(), e, nil)
	if exp.Sign() < 0 {
		if base.Sign() == 0 {
			return nil, ErrDivisionByZero
		}
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den), nil
}

func evaluateComparison(op ast.BinaryOperator, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	var cmp int
	switch lv := left.(type) {
	case runtime.RationalValue:
		rv, ok := right.(runtime.RationalValue)
		if !ok {
			return nil, unsupported("cannot compare %s with %s", left.Kind(), right.Kind())
		}
		cmp = ratValue(lv).Cmp(ratValue(rv))
	case runtime.StringValue:
		rv, ok := right.(runtime.StringValue)
		if !ok {
			return nil, unsupported("cannot compare %s with %s", left.Kind(), right.Kind())
		}
		cmp = strings.Compare(lv.Val, rv.Val)
	default:
		return nil, unsupported("cannot compare %s with %s", left.Kind(), right.Kind())
	}
	switch op {
	case ast.OpLess:
		return runtime.BoolValue{Val: cmp < 0}, nil
	case ast.OpGreater:
		return runtime.BoolValue{Val: cmp > 0}, nil
	default:
		return nil, unsupported("comparison operator %q", op)
	}
}

func ratValue(v runtime.RationalValue) *big.Rat {
	if v.Val == nil {
		return new(big.Rat)
	}
	return v.Val
}
