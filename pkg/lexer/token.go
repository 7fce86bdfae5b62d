package lexer

import (
	"fmt"
	"math/big"
	"strconv"
)

// TokenKind classifies a token.
type TokenKind int

const (
	// TokenNone is the zero token returned by PeekToken at end of input.
	TokenNone TokenKind = iota
	TokenNumber
	TokenKeyword
	TokenIdentifier
	TokenString
	TokenOperator
	TokenEndOfLine
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNumber:
		return "Number"
	case TokenKeyword:
		return "Keyword"
	case TokenIdentifier:
		return "Identifier"
	case TokenString:
		return "String"
	case TokenOperator:
		return "Operator"
	case TokenEndOfLine:
		return "EndOfLine"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a classified lexical unit. Number tokens carry their canonical
// decimal digits in Text. Tokens compare with ==.
type Token struct {
	Kind TokenKind
	Text string
}

func Num(n int64) Token { return Token{Kind: TokenNumber, Text: strconv.FormatInt(n, 10)} }
func Kw(word string) Token { return Token{Kind: TokenKeyword, Text: word} }
func Ident(word string) Token { return Token{Kind: TokenIdentifier, Text: word} }
func Str(s string) Token { return Token{Kind: TokenString, Text: s} }
func Op(sym string) Token { return Token{Kind: TokenOperator, Text: sym} }
func EOL(marker string) Token { return Token{Kind: TokenEndOfLine, Text: marker} }

// IsNone reports whether t is the end-of-input sentinel.
func (t Token) IsNone() bool { return t.Kind == TokenNone }

// Int returns the integer held by a Number token.
func (t Token) Int() (*big.Int, bool) {
	if t.Kind != TokenNumber {
		return nil, false
	}
	return new(big.Int).SetString(t.Text, 10)
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNone:
		return "None"
	case TokenString:
		return fmt.Sprintf("String(%q)", t.Text)
	default:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	}
}

var keywords = map[string]struct{}{
	"print": {}, "var": {}, "true": {}, "false": {}, "if": {}, "else": {},
	"then": {}, "for": {}, "while": {}, "return": {}, "end": {}, "do": {},
	"List": {}, "let": {}, "in": {},
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Characters that start an operator token.
var operatorStarts = map[rune]struct{}{
	',': {}, '.': {}, ';': {}, '+': {}, '-': {}, '*': {}, '%': {},
	'>': {}, '<': {}, '=': {}, '!': {}, '^': {}, '(': {}, ')': {},
	'[': {}, ']': {}, '&': {}, '|': {},
}

// Two-character operators keyed by their first character: the second
// character that completes them and the resulting symbol.
var operatorPairs = map[rune]struct {
	next   rune
	symbol string
}{
	'=': {'=', "=="},
	'!': {'=', "!="},
	'>': {'=', ">="},
	'<': {'=', "<="},
	'&': {'&', "and"},
	'|': {'|', "or"},
	'^': {'^', "**"},
}
