package ast

import "math/big"

type NodeType string

const (
	NodeNumericLiteral  NodeType = "NumericLiteral"
	NodeBoolLiteral     NodeType = "BoolLiteral"
	NodeStringLiteral   NodeType = "StringLiteral"
	NodeBinaryOperation NodeType = "BinaryOperation"
	NodeStringOperation NodeType = "StringOperation"
	NodeLetVar          NodeType = "LetVar"
	NodeLet             NodeType = "Let"
	NodeMutVar          NodeType = "MutVar"
	NodeGet             NodeType = "Get"
	NodeSet             NodeType = "Set"
	NodeIfStatement     NodeType = "IfStatement"
	NodeWhileLoop       NodeType = "WhileLoop"
	NodeBlock           NodeType = "Block"
)

// Node is implemented by every AST variant. The set is closed: isNode is
// unexported so only this package can add variants.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Literal marks nodes that evaluate to the value they hold.
type Literal interface {
	Node
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Literals

type NumericLiteral struct {
	nodeImpl
	literalMarker

	Value *big.Rat `json:"value"`
}

// NewNumericLiteral copies value so later changes by the caller are not
// observed by the node.
func NewNumericLiteral(value *big.Rat) *NumericLiteral {
	v := new(big.Rat)
	if value != nil {
		v.Set(value)
	}
	return &NumericLiteral{nodeImpl: newNodeImpl(NodeNumericLiteral), Value: v}
}

type BoolLiteral struct {
	nodeImpl
	literalMarker

	Value bool `json:"value"`
}

func NewBoolLiteral(value bool) *BoolLiteral {
	return &BoolLiteral{nodeImpl: newNodeImpl(NodeBoolLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// Operators

type BinaryOperator string

const (
	OpAdd     BinaryOperator = "+"
	OpSub     BinaryOperator = "-"
	OpMul     BinaryOperator = "*"
	OpDiv     BinaryOperator = "/"
	OpPow     BinaryOperator = "**"
	OpEq      BinaryOperator = "=="
	OpNotEq   BinaryOperator = "!="
	OpLess    BinaryOperator = "<"
	OpGreater BinaryOperator = ">"
	OpAnd     BinaryOperator = "&&"
	OpOr      BinaryOperator = "||"
)

type BinaryOperation struct {
	nodeImpl

	Operator BinaryOperator `json:"operator"`
	Left     Node           `json:"left"`
	Right    Node           `json:"right"`
}

func NewBinaryOperation(operator BinaryOperator, left, right Node) *BinaryOperation {
	return &BinaryOperation{nodeImpl: newNodeImpl(NodeBinaryOperation), Operator: operator, Left: left, Right: right}
}

type StringOperator string

const (
	StringConcat StringOperator = "concat"
	StringSlice  StringOperator = "slice"
)

// StringOperation covers concat and slice. Start, Stop and Hop are only read
// by slice.
type StringOperation struct {
	nodeImpl

	Operator StringOperator `json:"operator"`
	Operands []Node         `json:"operands"`
	Start    int            `json:"start"`
	Stop     int            `json:"stop"`
	Hop      int            `json:"hop"`
}

func NewConcat(operands []Node) *StringOperation {
	return &StringOperation{nodeImpl: newNodeImpl(NodeStringOperation), Operator: StringConcat, Operands: operands, Hop: 1}
}

func NewSlice(operand Node, start, stop, hop int) *StringOperation {
	return &StringOperation{
		nodeImpl: newNodeImpl(NodeStringOperation),
		Operator: StringSlice,
		Operands: []Node{operand},
		Start:    start,
		Stop:     stop,
		Hop:      hop,
	}
}

// Let bindings

type LetVar struct {
	nodeImpl

	Name string `json:"name"`
}

func NewLetVar(name string) *LetVar {
	return &LetVar{nodeImpl: newNodeImpl(NodeLetVar), Name: name}
}

// Let binds Variable to the value of Bound while evaluating Body.
type Let struct {
	nodeImpl

	Variable *LetVar `json:"variable"`
	Bound    Node    `json:"bound"`
	Body     Node    `json:"body"`
}

func NewLet(variable *LetVar, bound, body Node) *Let {
	return &Let{nodeImpl: newNodeImpl(NodeLet), Variable: variable, Bound: bound, Body: body}
}

// Mutable namespace access

type MutVar struct {
	nodeImpl

	Name string `json:"name"`
}

func NewMutVar(name string) *MutVar {
	return &MutVar{nodeImpl: newNodeImpl(NodeMutVar), Name: name}
}

type Get struct {
	nodeImpl

	Variable *MutVar `json:"variable"`
}

func NewGet(variable *MutVar) *Get {
	return &Get{nodeImpl: newNodeImpl(NodeGet), Variable: variable}
}

type Set struct {
	nodeImpl

	Variable *MutVar `json:"variable"`
	Value    Node    `json:"value"`
}

func NewSet(variable *MutVar, value Node) *Set {
	return &Set{nodeImpl: newNodeImpl(NodeSet), Variable: variable, Value: value}
}

// Control flow

type IfStatement struct {
	nodeImpl

	Condition  Node `json:"condition"`
	ThenBranch Node `json:"thenBranch"`
	ElseBranch Node `json:"elseBranch"`
}

func NewIfStatement(condition, thenBranch, elseBranch Node) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

type WhileLoop struct {
	nodeImpl

	Condition Node `json:"condition"`
	Body      Node `json:"body"`
}

func NewWhileLoop(condition, body Node) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type Block struct {
	nodeImpl

	Expressions []Node `json:"expressions"`
}

func NewBlock(expressions []Node) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Expressions: expressions}
}
