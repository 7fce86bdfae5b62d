package ast

import "math/big"

// Short constructors used by tests and fixtures.

func Num(n int64) *NumericLiteral {
	return NewNumericLiteral(big.NewRat(n, 1))
}

// Frac panics when den is zero.
func Frac(num, den int64) *NumericLiteral {
	return NewNumericLiteral(big.NewRat(num, den))
}

func Bool(v bool) *BoolLiteral { return NewBoolLiteral(v) }

func Str(s string) *StringLiteral { return NewStringLiteral(s) }

func Bin(op BinaryOperator, left, right Node) *BinaryOperation {
	return NewBinaryOperation(op, left, right)
}

func Concat(operands ...Node) *StringOperation { return NewConcat(operands) }

func Slice(operand Node, start, stop, hop int) *StringOperation {
	return NewSlice(operand, start, stop, hop)
}

func Lv(name string) *LetVar { return NewLetVar(name) }

func LetIn(name string, bound, body Node) *Let {
	return NewLet(NewLetVar(name), bound, body)
}

func Mv(name string) *MutVar { return NewMutVar(name) }

func Read(name string) *Get { return NewGet(NewMutVar(name)) }

func Assign(name string, value Node) *Set { return NewSet(NewMutVar(name), value) }

func If(cond, then, els Node) *IfStatement { return NewIfStatement(cond, then, els) }

func While(cond, body Node) *WhileLoop { return NewWhileLoop(cond, body) }

func Seq(exprs ...Node) *Block { return NewBlock(exprs) }
