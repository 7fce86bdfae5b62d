package interpreter

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedVariable is returned when a let variable or namespace
	// variable is read before it is bound.
	ErrUndefinedVariable = errors.New("undefined variable")
	// ErrDivisionByZero is returned when the divisor of / (or the base of a
	// negative power) is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnsupportedProgram is returned for node and operator combinations
	// that have no evaluation rule.
	ErrUnsupportedProgram = errors.New("program not supported")
	// ErrLoopLimit is returned when a while loop exceeds the iteration limit
	// configured with WithMaxLoopIterations.
	ErrLoopLimit = errors.New("loop iteration limit exceeded")
)

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedProgram, fmt.Sprintf(format, args...))
}

func undefined(name string) error {
	return fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
}
