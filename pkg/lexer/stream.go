package lexer

// Stream is a cursor over source text with one step of pushback.
type Stream struct {
	src []rune
	pos int
}

// NewStream creates a stream positioned at the start of src.
func NewStream(src string) *Stream {
	return &Stream{src: []rune(src)}
}

// NextChar returns the character under the cursor and advances past it.
func (s *Stream) NextChar() (rune, error) {
	if s.pos >= len(s.src) {
		return 0, ErrEndOfInput
	}
	s.pos++
	return s.src[s.pos-1], nil
}

// PrevChar moves the cursor back one character. Calling it at the start of the
// stream is a programming error.
func (s *Stream) PrevChar() {
	if s.pos <= 0 {
		panic("lexer: PrevChar at start of stream")
	}
	s.pos--
}

// Pos is the index of the next unread character.
func (s *Stream) Pos() int { return s.pos }
