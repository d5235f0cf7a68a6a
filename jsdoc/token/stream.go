package token

import (
	"strings"

	"github.com/dhamidi/closuredoc/source"
)

// Cursor is an index into a stream's token vector. Saving a cursor and
// seeking back to it is how parsers backtrack.
type Cursor int

// Stream is a cursor over the immutable token vector of one comment.
type Stream struct {
	src  source.Source
	toks []Token
	pos  int
}

func NewStream(src source.Source) *Stream {
	return &Stream{src: src, toks: Scan(src)}
}

func (s *Stream) Source() source.Source {
	return s.src
}

// Tokens returns the whole token vector.
func (s *Stream) Tokens() []Token {
	return s.toks
}

func (s *Stream) Cursor() Cursor {
	return Cursor(s.pos)
}

func (s *Stream) Seek(c Cursor) {
	switch {
	case c < 0:
		s.pos = 0
	case int(c) > len(s.toks):
		s.pos = len(s.toks)
	default:
		s.pos = int(c)
	}
}

// At returns the token at c.
func (s *Stream) At(c Cursor) Token {
	if c < 0 {
		return s.toks[0]
	}
	if int(c) >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[c]
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() Token {
	return s.At(Cursor(s.pos))
}

// Next consumes and returns the next token. The final EOC/EOF token is
// returned again on every call once reached.
func (s *Stream) Next() Token {
	tok := s.Peek()
	if s.pos < len(s.toks) {
		s.pos++
	}
	return tok
}

// Unread pushes the most recently consumed token back.
func (s *Stream) Unread() {
	if s.pos > 0 {
		s.pos--
	}
}

// Last returns the most recently consumed token.
func (s *Stream) Last() Token {
	if s.pos == 0 {
		return Token{Kind: EOL, Span: source.Span{Start: s.src.Start(), End: s.src.Start()}}
	}
	return s.toks[s.pos-1]
}

// Match reports whether the next token has one of the given kinds.
func (s *Stream) Match(kinds ...Kind) bool {
	k := s.Peek().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// SkipEOLs consumes line breaks together with the "*" that may start the
// following line.
func (s *Stream) SkipEOLs() {
	for s.Match(EOL) {
		s.Next()
		if s.Match(Star) {
			s.Next()
		}
	}
}

// Raw returns the comment text between two absolute offsets.
func (s *Stream) Raw(from, to int) string {
	from -= s.src.Offset
	to -= s.src.Offset
	if from < 0 {
		from = 0
	}
	if to > len(s.src.Text) {
		to = len(s.src.Text)
	}
	if from >= to {
		return ""
	}
	return s.src.Text[from:to]
}

// RawTokens returns the comment text covered by tokens [from, to).
func (s *Stream) RawTokens(from, to Cursor) string {
	if to <= from {
		return ""
	}
	return s.Raw(s.At(from).Span.Start.Offset, s.At(to-1).Span.End.Offset)
}

// Span covers tokens [from, to).
func (s *Stream) Span(from, to Cursor) source.Span {
	if to <= from {
		p := s.At(from).Span.Start
		return source.Span{Start: p, End: p}
	}
	return source.Span{Start: s.At(from).Span.Start, End: s.At(to - 1).Span.End}
}

// Text returns the raw text of the comment without the closing "*/".
func (s *Stream) Text() string {
	return strings.TrimSuffix(s.src.Text, "*/")
}
