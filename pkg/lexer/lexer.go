package lexer

import (
	"errors"
	"fmt"
	"iter"
	"math/big"
	"strings"
	"unicode"
)

// Lexer turns a Stream into tokens. It holds at most one token of lookahead.
type Lexer struct {
	stream   *Stream
	saved    Token
	hasSaved bool
}

// New creates a lexer over src.
func New(src string) *Lexer {
	return FromStream(NewStream(src))
}

// FromStream creates a lexer reading from an existing stream.
func FromStream(s *Stream) *Lexer {
	return &Lexer{stream: s}
}

// Tokenize scans the whole of src.
func Tokenize(src string) ([]Token, error) {
	var out []Token
	for tok, err := range New(src).All() {
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
	return out, nil
}

// NextToken returns the next token, consuming the lookahead slot first if it
// is filled. It returns ErrEndOfInput once the source is exhausted.
func (l *Lexer) NextToken() (Token, error) {
	if l.hasSaved {
		tok := l.saved
		l.clearSaved()
		return tok, nil
	}
	return l.scan()
}

// PeekToken returns the next token without consuming it. At end of input it
// returns the zero Token and a nil error.
func (l *Lexer) PeekToken() (Token, error) {
	if l.hasSaved {
		return l.saved, nil
	}
	tok, err := l.scan()
	if err != nil {
		if errors.Is(err, ErrEndOfInput) {
			return Token{}, nil
		}
		return Token{}, err
	}
	l.saved = tok
	l.hasSaved = true
	return tok, nil
}

// Advance consumes exactly one token.
func (l *Lexer) Advance() error {
	if l.hasSaved {
		l.clearSaved()
		return nil
	}
	_, err := l.scan()
	return err
}

// Match consumes the next token if it equals expected.
func (l *Lexer) Match(expected Token) error {
	tok, err := l.PeekToken()
	if err != nil {
		return err
	}
	if tok != expected {
		return fmt.Errorf("%w: expected %s, found %s", ErrUnexpectedToken, expected, tok)
	}
	return l.Advance()
}

// All yields the remaining tokens once each. Iteration ends quietly at end of
// input; any other failure is yielded as the final element.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.NextToken()
			if errors.Is(err, ErrEndOfInput) {
				return
			}
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

func (l *Lexer) clearSaved() {
	l.saved = Token{}
	l.hasSaved = false
}

func (l *Lexer) scan() (Token, error) {
	for {
		c, err := l.stream.NextChar()
		if err != nil {
			return Token{}, err
		}
		switch {
		case isOperatorStart(c):
			return l.operator(c), nil
		case isDigit(c):
			return l.number(c), nil
		case unicode.IsLetter(c):
			return l.word(c), nil
		case c == '"':
			return l.str()
		case isWhitespace(c):
			continue
		default:
			return Token{}, fmt.Errorf("%w %q", ErrInvalidCharacter, c)
		}
	}
}

func (l *Lexer) operator(c rune) Token {
	pair, ok := operatorPairs[c]
	if !ok {
		return Op(string(c))
	}
	next, err := l.stream.NextChar()
	if err != nil {
		return Op(string(c))
	}
	if next == pair.next {
		return Op(pair.symbol)
	}
	l.stream.PrevChar()
	return Op(string(c))
}

func (l *Lexer) number(first rune) Token {
	var digits strings.Builder
	digits.WriteRune(first)
	for {
		c, err := l.stream.NextChar()
		if err != nil {
			break
		}
		if !isDigit(c) {
			l.stream.PrevChar()
			break
		}
		digits.WriteRune(c)
	}
	n, _ := new(big.Int).SetString(digits.String(), 10)
	return Token{Kind: TokenNumber, Text: n.String()}
}

func (l *Lexer) word(first rune) Token {
	var word strings.Builder
	word.WriteRune(first)
	for {
		c, err := l.stream.NextChar()
		if err != nil {
			break
		}
		if !unicode.IsLetter(c) {
			l.stream.PrevChar()
			break
		}
		word.WriteRune(c)
	}
	w := word.String()
	if IsKeyword(w) {
		return Kw(w)
	}
	return Ident(w)
}

// str reads up to the closing quote. There are no escape sequences.
func (l *Lexer) str() (Token, error) {
	var s strings.Builder
	for {
		c, err := l.stream.NextChar()
		if err != nil {
			return Token{}, ErrUnterminatedString
		}
		if c == '"' {
			return Str(s.String()), nil
		}
		s.WriteRune(c)
	}
}

func isOperatorStart(c rune) bool {
	_, ok := operatorStarts[c]
	return ok
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isWhitespace(c rune) bool { return c == ' ' || c == '\t' || c == '\n' }
