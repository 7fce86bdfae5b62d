package interpreter

import (
	"ratexpr/interpreter-go/pkg/ast"
	"ratexpr/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateNode(node ast.Node, scope *runtime.Scope, ns *runtime.Namespace) (runtime.Value, error) {
	if isNilNode(node) {
		return nil, unsupported("missing node")
	}
	switch n := node.(type) {
	case *ast.NumericLiteral:
		return runtime.RationalFrom(n.Value), nil
	case *ast.BoolLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.LetVar:
		val, ok := scope.Lookup(n.Name)
		if !ok {
			return nil, undefined(n.Name)
		}
		return val, nil
	case *ast.Let:
		return i.evaluateLet(n, scope, ns)
	case *ast.MutVar:
		return readNamespace(ns, n)
	case *ast.Get:
		return readNamespace(ns, n.Variable)
	case *ast.Set:
		return i.evaluateSet(n, scope, ns)
	case *ast.BinaryOperation:
		return i.evaluateBinaryOperation(n, scope, ns)
	case *ast.StringOperation:
		return i.evaluateStringOperation(n, scope, ns)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, scope, ns)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, scope, ns)
	case *ast.Block:
		return i.evaluateBlock(n, scope, ns)
	default:
		return nil, unsupported("node type %s", n.NodeType())
	}
}

// isNilNode reports whether node is nil, including a typed nil pointer held
// in the interface.
func isNilNode(node ast.Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *ast.NumericLiteral:
		return n == nil
	case *ast.BoolLiteral:
		return n == nil
	case *ast.StringLiteral:
		return n == nil
	case *ast.LetVar:
		return n == nil
	case *ast.Let:
		return n == nil
	case *ast.MutVar:
		return n == nil
	case *ast.Get:
		return n == nil
	case *ast.Set:
		return n == nil
	case *ast.BinaryOperation:
		return n == nil
	case *ast.StringOperation:
		return n == nil
	case *ast.IfStatement:
		return n == nil
	case *ast.WhileLoop:
		return n == nil
	case *ast.Block:
		return n == nil
	default:
		return false
	}
}

func (i *Interpreter) evaluateLet(expr *ast.Let, scope *runtime.Scope, ns *runtime.Namespace) (runtime.Value, error) {
	if expr.Variable == nil {
		return nil, unsupported("let without variable")
	}
	bound, err := i.evaluateNode(expr.Bound, scope, ns)
	if err != nil {
		return nil, err
	}
	return i.evaluateNode(expr.Body, scope.Extend(expr.Variable.Name, bound), ns)
}

func readNamespace(ns *runtime.Namespace, variable *ast.MutVar) (runtime.Value, error) {
	if variable == nil {
		return nil, unsupported("get without variable")
	}
	val, ok := ns.Get(variable.Name)
	if !ok {
		return nil, undefined(variable.Name)
	}
	return val, nil
}

func (i *Interpreter) evaluateBinaryOperation(expr *ast.BinaryOperation, scope *runtime.Scope, ns *runtime.Namespace) (runtime.Value, error) {
	if expr.Operator == ast.OpDiv && i.divisionParity {
		if err := i.checkDivisorParity(expr.Right); err != nil {
			return nil, err
		}
	}
	leftVal, err := i.evaluateNode(expr.Left, scope, ns)
	if err != nil {
		return nil, err
	}
	rightVal, err := i.evaluateNode(expr.Right, scope, ns)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpPow:
		return evaluateArithmetic(expr.Operator, leftVal, rightVal)
	case ast.OpLess, ast.OpGreater:
		return evaluateComparison(expr.Operator, leftVal, rightVal)
	case ast.OpEq, ast.OpNotEq:
		eq := runtime.ValuesEqual(leftVal, rightVal)
		if expr.Operator == ast.OpNotEq {
			eq = !eq
		}
		return runtime.BoolValue{Val: eq}, nil
	case ast.OpAnd:
		// Both operands have already been evaluated; there is no short circuit.
		return runtime.BoolValue{Val: runtime.Truthy(leftVal) && runtime.Truthy(rightVal)}, nil
	case ast.OpOr:
		return runtime.BoolValue{Val: runtime.Truthy(leftVal) || runtime.Truthy(rightVal)}, nil
	default:
		return nil, unsupported("binary operator %q", expr.Operator)
	}
}

// checkDivisorParity evaluates the divisor against empty environments and
// rejects a zero result.
func (i *Interpreter) checkDivisorParity(divisor ast.Node) error {
	val, err := i.evaluateNode(divisor, nil, runtime.NewNamespace())
	if err != nil {
		return err
	}
	if r, ok := val.(runtime.RationalValue); ok && r.IsZero() {
		return ErrDivisionByZero
	}
	return nil
}
