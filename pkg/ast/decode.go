package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// DecodeJSON rebuilds a node from its JSON encoding (the shape produced by
// encoding/json on the node structs).
func DecodeJSON(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	return DecodeTree(raw)
}

// DecodeTree rebuilds a node from a generic tree, as produced by decoding JSON
// or YAML into map[string]any.
func DecodeTree(node map[string]any) (Node, error) {
	if node == nil {
		return nil, fmt.Errorf("missing node")
	}
	typ, _ := node["type"].(string)
	switch NodeType(typ) {
	case NodeNumericLiteral:
		val, err := decodeRat(node["value"])
		if err != nil {
			return nil, err
		}
		return NewNumericLiteral(val), nil
	case NodeBoolLiteral:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("BoolLiteral value must be a bool, got %T", node["value"])
		}
		return NewBoolLiteral(val), nil
	case NodeStringLiteral:
		val, ok := node["value"].(string)
		if !ok {
			return nil, fmt.Errorf("StringLiteral value must be a string, got %T", node["value"])
		}
		return NewStringLiteral(val), nil
	case NodeBinaryOperation:
		op, _ := node["operator"].(string)
		left, err := decodeChild(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeChild(node, "right")
		if err != nil {
			return nil, err
		}
		return NewBinaryOperation(BinaryOperator(op), left, right), nil
	case NodeStringOperation:
		op, _ := node["operator"].(string)
		operandsVal, _ := node["operands"].([]any)
		operands := make([]Node, 0, len(operandsVal))
		for idx, raw := range operandsVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("StringOperation operand %d: invalid entry %T", idx, raw)
			}
			decoded, err := DecodeTree(child)
			if err != nil {
				return nil, fmt.Errorf("StringOperation operand %d: %w", idx, err)
			}
			operands = append(operands, decoded)
		}
		start, err := intField(node, "start", 0)
		if err != nil {
			return nil, err
		}
		stop, err := intField(node, "stop", 0)
		if err != nil {
			return nil, err
		}
		hop, err := intField(node, "hop", 1)
		if err != nil {
			return nil, err
		}
		return &StringOperation{
			nodeImpl: newNodeImpl(NodeStringOperation),
			Operator: StringOperator(op),
			Operands: operands,
			Start:    start,
			Stop:     stop,
			Hop:      hop,
		}, nil
	case NodeLetVar:
		name, _ := node["name"].(string)
		return NewLetVar(name), nil
	case NodeLet:
		varNode, err := decodeChild(node, "variable")
		if err != nil {
			return nil, err
		}
		variable, ok := varNode.(*LetVar)
		if !ok {
			return nil, fmt.Errorf("Let variable must be a LetVar, got %s", varNode.NodeType())
		}
		bound, err := decodeChild(node, "bound")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(node, "body")
		if err != nil {
			return nil, err
		}
		return NewLet(variable, bound, body), nil
	case NodeMutVar:
		name, _ := node["name"].(string)
		return NewMutVar(name), nil
	case NodeGet:
		variable, err := decodeMutVar(node)
		if err != nil {
			return nil, err
		}
		return NewGet(variable), nil
	case NodeSet:
		variable, err := decodeMutVar(node)
		if err != nil {
			return nil, err
		}
		value, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		return NewSet(variable, value), nil
	case NodeIfStatement:
		cond, err := decodeChild(node, "condition")
		if err != nil {
			return nil, err
		}
		thenBranch, err := decodeChild(node, "thenBranch")
		if err != nil {
			return nil, err
		}
		elseBranch, err := decodeChild(node, "elseBranch")
		if err != nil {
			return nil, err
		}
		return NewIfStatement(cond, thenBranch, elseBranch), nil
	case NodeWhileLoop:
		cond, err := decodeChild(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeChild(node, "body")
		if err != nil {
			return nil, err
		}
		return NewWhileLoop(cond, body), nil
	case NodeBlock:
		exprsVal, _ := node["expressions"].([]any)
		exprs := make([]Node, 0, len(exprsVal))
		for idx, raw := range exprsVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("Block expression %d: invalid entry %T", idx, raw)
			}
			decoded, err := DecodeTree(child)
			if err != nil {
				return nil, fmt.Errorf("Block expression %d: %w", idx, err)
			}
			exprs = append(exprs, decoded)
		}
		return NewBlock(exprs), nil
	default:
		return nil, fmt.Errorf("unsupported node type %q", typ)
	}
}

func decodeChild(node map[string]any, field string) (Node, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%v: field %q must be a node", node["type"], field)
	}
	child, err := DecodeTree(raw)
	if err != nil {
		return nil, fmt.Errorf("%v.%s: %w", node["type"], field, err)
	}
	return child, nil
}

func decodeMutVar(node map[string]any) (*MutVar, error) {
	child, err := decodeChild(node, "variable")
	if err != nil {
		return nil, err
	}
	variable, ok := child.(*MutVar)
	if !ok {
		return nil, fmt.Errorf("%v variable must be a MutVar, got %s", node["type"], child.NodeType())
	}
	return variable, nil
}

func decodeRat(val any) (*big.Rat, error) {
	switch v := val.(type) {
	case string:
		r, ok := new(big.Rat).SetString(v)
		if !ok {
			return nil, fmt.Errorf("invalid rational %q", v)
		}
		return r, nil
	case json.Number:
		r, ok := new(big.Rat).SetString(v.String())
		if !ok {
			return nil, fmt.Errorf("invalid rational %q", v.String())
		}
		return r, nil
	case int:
		return big.NewRat(int64(v), 1), nil
	case int64:
		return big.NewRat(v, 1), nil
	case uint64:
		return new(big.Rat).SetFrac(new(big.Int).SetUint64(v), big.NewInt(1)), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid rational %v", v)
		}
		// Decoded floats go through their shortest decimal text so that a
		// YAML 0.1 becomes 1/10 rather than its binary approximation.
		text := strconv.FormatFloat(v, 'g', -1, 64)
		r, ok := new(big.Rat).SetString(text)
		if !ok {
			return nil, fmt.Errorf("invalid rational %q", text)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("NumericLiteral value must be a number or rational string, got %T", val)
	}
}

func intField(node map[string]any, field string, fallback int) (int, error) {
	raw, ok := node[field]
	if !ok || raw == nil {
		return fallback, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v.%s must be an integer", node["type"], field)
		}
		if v < math.MinInt || v >= math.MaxInt {
			return 0, fmt.Errorf("%v.%s: value %v out of range", node["type"], field, v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%v.%s: %w", node["type"], field, err)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%v.%s must be an integer, got %T", node["type"], field, raw)
	}
}
