package token

import (
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/closuredoc/source"
)

type scanner struct {
	src    source.Source
	text   string
	pos    int
	line   int
	column int
}

// Scan tokenizes the comment body in src. The result always ends with an
// EOC token (when "*/" was found) or an EOF token.
func Scan(src source.Source) []Token {
	s := &scanner{
		src:    src,
		text:   src.Text,
		line:   src.Line,
		column: src.Column,
	}
	var toks []Token
	for {
		tok := s.next()
		toks = append(toks, tok)
		if tok.Kind.IsEnd() {
			return toks
		}
	}
}

func (s *scanner) position() source.Position {
	return source.Position{Offset: s.src.Offset + s.pos, Line: s.line, Column: s.column}
}

func (s *scanner) peek() rune {
	if s.pos >= len(s.text) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.text[s.pos:])
	return r
}

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.text) {
		return 0
	}
	return s.text[s.pos+n]
}

func (s *scanner) advance() rune {
	if s.pos >= len(s.text) {
		return -1
	}
	r, size := utf8.DecodeRuneInString(s.text[s.pos:])
	s.pos += size
	if r == '\n' {
		s.line++
		s.column = 0
	} else {
		s.column++
	}
	return r
}

func (s *scanner) skipSpace() {
	for {
		r := s.peek()
		if r == -1 || r == '\n' || !unicode.IsSpace(r) {
			return
		}
		s.advance()
	}
}

func (s *scanner) token(kind Kind, start source.Position) Token {
	return Token{
		Kind: kind,
		Text: s.text[start.Offset-s.src.Offset : s.pos],
		Span: source.Span{Start: start, End: s.position()},
	}
}

func (s *scanner) next() Token {
	s.skipSpace()
	start := s.position()

	r := s.peek()
	if r == -1 {
		return s.token(EOF, start)
	}

	switch r {
	case '\n':
		s.advance()
		return s.token(EOL, start)
	case '@':
		s.advance()
		return s.scanAnnotation(start)
	case '*':
		s.advance()
		if s.peek() == '/' {
			s.advance()
			return s.token(EOC, start)
		}
		return s.token(Star, start)
	case '.':
		if s.peekAt(1) == '<' {
			s.advance()
			s.advance()
			return s.token(LeftAngle, start)
		}
		if s.peekAt(1) == '.' && s.peekAt(2) == '.' {
			s.advance()
			s.advance()
			s.advance()
			return s.token(Ellipsis, start)
		}
		return s.scanWord(start)
	case '&':
		if s.peekAt(1) == '&' {
			s.advance()
			s.advance()
			return s.token(AndAnd, start)
		}
		return s.scanWord(start)
	}

	if kind, ok := punctuation[r]; ok {
		s.advance()
		return s.token(kind, start)
	}
	return s.scanWord(start)
}

var punctuation = map[rune]Kind{
	',': Comma,
	':': Colon,
	'!': Bang,
	'?': QMark,
	'|': Pipe,
	'=': Equals,
	'<': LeftAngle,
	'>': RightAngle,
	'{': LeftCurly,
	'}': RightCurly,
	'(': LeftParen,
	')': RightParen,
	'[': LeftSquare,
	']': RightSquare,
}

func (s *scanner) scanAnnotation(start source.Position) Token {
	nameStart := s.pos
	if r := s.peek(); r != -1 && isIdentStart(r) {
		s.advance()
		for {
			r := s.peek()
			if r == -1 || !isIdentPart(r) {
				break
			}
			s.advance()
		}
	}
	tok := s.token(Annotation, start)
	tok.Text = s.text[nameStart:s.pos]
	return tok
}

func (s *scanner) scanWord(start source.Position) Token {
	wordStart := s.pos
	for {
		r := s.peek()
		if r == -1 || unicode.IsSpace(r) || r == '*' {
			break
		}
		if _, ok := punctuation[r]; ok {
			break
		}
		if r == '.' && s.peekAt(1) == '<' {
			break
		}
		if r == '&' && s.peekAt(1) == '&' {
			break
		}
		s.advance()
	}
	tok := s.token(String, start)
	tok.Text = s.text[wordStart:s.pos]
	return tok
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
