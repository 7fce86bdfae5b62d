package interpreter

import (
	"fmt"

	"ratexpr/interpreter-go/pkg/ast"
	"ratexpr/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateSet(expr *ast.Set, scope *runtime.Scope, ns *runtime.Namespace) (runtime.Value, error) {
	if expr.Variable == nil {
		return nil, unsupported("set without variable")
	}
	val, err := i.evaluateNode(expr.Value, scope, ns)
	if err != nil {
		return nil, err
	}
	ns.Set(expr.Variable.Name, val)
	return runtime.Zero(), nil
}

func (i *Interpreter) evaluateIfStatement(expr *ast.IfStatement, scope *runtime.Scope, ns *runtime.Namespace) (runtime.Value, error) {
	cond, err := i.evaluateNode(expr.Condition, scope, ns)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(cond) {
		return i.evaluateNode(expr.ThenBranch, scope, ns)
	}
	return i.evaluateNode(expr.ElseBranch, scope, ns)
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, scope *runtime.Scope, ns *runtime.Namespace) (runtime.Value, error) {
	iterations := 0
	for {
		cond, err := i.evaluateNode(loop.Condition, scope, ns)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return runtime.Zero(), nil
		}
		if i.maxLoopIterations > 0 && iterations >= i.maxLoopIterations {
			return nil, fmt.Errorf("%w (%d)", ErrLoopLimit, i.maxLoopIterations)
		}
		iterations++
		if _, err := i.evaluateNode(loop.Body, scope, ns); err != nil {
			return nil, err
		}
	}
}

// evaluateBlock runs the expressions against a copy of the namespace. Writes
// to names that existed before the block are copied back; names first set
// inside the block are discarded with the copy.
func (i *Interpreter) evaluateBlock(block *ast.Block, scope *runtime.Scope, ns *runtime.Namespace) (runtime.Value, error) {
	local := ns.Clone()
	for _, expr := range block.Expressions {
		if _, err := i.evaluateNode(expr, scope, local); err != nil {
			return nil, err
		}
	}
	ns.MergeExisting(local)
	return runtime.Zero(), nil
}
