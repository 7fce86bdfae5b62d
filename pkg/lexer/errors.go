package lexer

import "errors"

var (
	// ErrEndOfInput is returned when reading past the end of the source.
	ErrEndOfInput = errors.New("end of input")
	// ErrUnterminatedString is returned when a string literal is never closed.
	ErrUnterminatedString = errors.New("unterminated string")
	// ErrUnexpectedToken is returned by Match when the next token differs.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrInvalidCharacter is returned for characters that start no token.
	ErrInvalidCharacter = errors.New("invalid character")
)
