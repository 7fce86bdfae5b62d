package interpreter

import (
	"ratexpr/interpreter-go/pkg/ast"
	"ratexpr/interpreter-go/pkg/runtime"
)

// Interpreter evaluates AST nodes over exact rationals, booleans and strings.
// It keeps no state between calls; environments are supplied per call.
type Interpreter struct {
	divisionParity    bool
	maxLoopIterations int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithDivisionParity makes / evaluate its divisor twice: once against an empty
// scope and namespace to test for zero, then again against the real
// environment for the quotient. Divisors that read variables fail the zero
// test with ErrUndefinedVariable in this mode.
func WithDivisionParity(enabled bool) Option {
	return func(i *Interpreter) { i.divisionParity = enabled }
}

// WithMaxLoopIterations bounds the body executions of any single while loop.
// Zero, the default, means unbounded.
func WithMaxLoopIterations(n int) Option {
	return func(i *Interpreter) {
		if n < 0 {
			n = 0
		}
		i.maxLoopIterations = n
	}
}

// New returns an interpreter configured by opts.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Evaluate reduces node to a value. A nil scope is the empty scope and a nil
// namespace is replaced by a fresh empty one; a non-nil namespace is updated
// in place by set.
func (i *Interpreter) Evaluate(node ast.Node, scope *runtime.Scope, ns *runtime.Namespace) (runtime.Value, error) {
	if ns == nil {
		ns = runtime.NewNamespace()
	}
	return i.evaluateNode(node, scope, ns)
}

// Evaluate runs node with default options and empty environments.
func Evaluate(node ast.Node) (runtime.Value, error) {
	return New().Evaluate(node, nil, nil)
}
