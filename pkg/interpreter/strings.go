package interpreter

import (
	"strings"

	"ratexpr/interpreter-go/pkg/ast"
	"ratexpr/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStringOperation(expr *ast.StringOperation, scope *runtime.Scope, ns *runtime.Namespace) (runtime.Value, error) {
	switch expr.Operator {
	case ast.StringConcat:
		var builder strings.Builder
		for idx, operand := range expr.Operands {
			str, err := i.evaluateString(operand, scope, ns)
			if err != nil {
				return nil, err
			}
			if str == nil {
				return nil, unsupported("concat operand %d is not a string", idx)
			}
			builder.WriteString(str.Val)
		}
		return runtime.StringValue{Val: builder.String()}, nil
	case ast.StringSlice:
		if len(expr.Operands) != 1 {
			return nil, unsupported("slice takes one operand, got %d", len(expr.Operands))
		}
		if expr.Hop == 0 {
			return nil, unsupported("slice step cannot be zero")
		}
		str, err := i.evaluateString(expr.Operands[0], scope, ns)
		if err != nil {
			return nil, err
		}
		if str == nil {
			return nil, unsupported("slice operand is not a string")
		}
		return runtime.StringValue{Val: sliceString(str.Val, expr.Start, expr.Stop, expr.Hop)}, nil
	default:
		return nil, unsupported("string operator %q", expr.Operator)
	}
}

// evaluateString returns nil without error when the operand is not a string.
func (i *Interpreter) evaluateString(node ast.Node, scope *runtime.Scope, ns *runtime.Namespace) (*runtime.StringValue, error) {
	val, err := i.evaluateNode(node, scope, ns)
	if err != nil {
		return nil, err
	}
	str, ok := val.(runtime.StringValue)
	if !ok {
		return nil, nil
	}
	return &str, nil
}

// sliceString takes s[start:stop:step] over code points. Negative indices
// count from the end and out-of-range bounds are clamped. step must be
// non-zero.
func sliceString(s string, start, stop, step int) string {
	runes := []rune(s)
	start = clampSliceIndex(start, len(runes), step)
	stop = clampSliceIndex(stop, len(runes), step)

	var out []rune
	if step > 0 {
		for idx := start; idx < stop; idx += step {
			out = append(out, runes[idx])
		}
	} else {
		for idx := start; idx > stop; idx += step {
			out = append(out, runes[idx])
		}
	}
	return string(out)
}

func clampSliceIndex(idx, length, step int) int {
	if idx < 0 {
		idx += length
		if idx < 0 {
			if step < 0 {
				return -1
			}
			return 0
		}
		return idx
	}
	if idx >= length {
		if step < 0 {
			return length - 1
		}
		return length
	}
	return idx
}
