// Package extract finds documentation comments in JavaScript source.
package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/closuredoc/source"
)

// Comment is one "/** ... */" block found in a file.
type Comment struct {
	// Source is the comment body, starting after "/**" and including the
	// closing "*/" when present.
	Source source.Source
	// Span covers the whole comment, "/**" included.
	Span source.Span
	// Declaration is the first line of code that follows the comment.
	Declaration string
	// Inline is set for one-line comments without annotations that are
	// followed by code on the same line, such as "/** number */ x".
	Inline bool
}

// Closed reports whether the comment ends with "*/".
func (c Comment) Closed() bool {
	return strings.HasSuffix(c.Source.Text, "*/")
}

type scanner struct {
	input    string
	file     string
	pos      int
	lines    *source.LineIndex
	comments []Comment
	// regexOK is set when a "/" at the current position starts a regular
	// expression literal rather than a division.
	regexOK bool
}

// Comments returns the documentation comments of a JavaScript file in
// source order. "/**/" is an empty ordinary comment and is skipped.
func Comments(file, text string) []Comment {
	s := &scanner{input: text, file: file, lines: source.NewLineIndex(text), regexOK: true}
	s.run()
	return s.comments
}

func (s *scanner) peekN(n int) byte {
	if s.pos+n >= len(s.input) {
		return 0
	}
	return s.input[s.pos+n]
}

func (s *scanner) run() {
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		switch {
		case ch == '/' && s.peekN(1) == '*':
			s.blockComment()
		case ch == '/' && s.peekN(1) == '/':
			s.skipLine()
		case ch == '/' && s.regexOK:
			s.skipRegex()
			s.regexOK = false
		case ch == '\'' || ch == '"' || ch == '`':
			s.skipString(ch)
			s.regexOK = false
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			s.pos++
		case isIdentByte(ch):
			start := s.pos
			for s.pos < len(s.input) && isIdentByte(s.input[s.pos]) {
				s.pos++
			}
			s.regexOK = regexKeywords[s.input[start:s.pos]]
		case ch == ')' || ch == ']' || ch == '}':
			s.pos++
			s.regexOK = false
		default:
			s.pos++
			s.regexOK = true
		}
	}
}

// regexKeywords may be directly followed by a regular expression literal.
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true,
	"of": true, "new": true, "delete": true, "void": true, "throw": true,
	"case": true, "do": true, "else": true, "yield": true, "await": true,
}

func isIdentByte(ch byte) bool {
	return ch == '_' || ch == '$' || ch >= 0x80 ||
		('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9')
}

func (s *scanner) skipLine() {
	for s.pos < len(s.input) && s.input[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) skipString(quote byte) {
	s.pos++
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		s.pos++
		switch {
		case ch == '\\':
			s.pos++
		case ch == quote:
			return
		case ch == '\n' && quote != '`':
			return
		}
	}
}

func (s *scanner) skipRegex() {
	s.pos++
	inClass := false
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		s.pos++
		switch {
		case ch == '\\':
			s.pos++
		case ch == '[':
			inClass = true
		case ch == ']':
			inClass = false
		case ch == '/' && !inClass:
			for s.pos < len(s.input) && isIdentByte(s.input[s.pos]) {
				s.pos++
			}
			return
		case ch == '\n':
			return
		}
	}
}

func (s *scanner) blockComment() {
	start := s.pos
	doc := s.peekN(2) == '*' && s.peekN(3) != '/'
	end := strings.Index(s.input[start+2:], "*/")
	if end < 0 {
		s.pos = len(s.input)
	} else {
		s.pos = start + 2 + end + 2
	}
	if !doc {
		return
	}

	bodyStart := start + 3
	body := s.input[bodyStart:s.pos]
	pos := s.lines.Position(bodyStart)
	c := Comment{
		Source: source.Source{
			File:   s.file,
			Text:   body,
			Offset: bodyStart,
			Line:   pos.Line,
			Column: pos.Column,
		},
		Span: source.Span{Start: s.lines.Position(start), End: s.lines.Position(s.pos)},
	}
	c.Declaration, c.Inline = s.following(body)
	s.comments = append(s.comments, c)
}

// following describes the code after the comment that just ended.
func (s *scanner) following(body string) (string, bool) {
	rest := s.input[s.pos:]
	sameLine, _, _ := strings.Cut(rest, "\n")
	inline := !strings.ContainsAny(body, "\n@") && strings.TrimSpace(sameLine) != ""

	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "//") {
		return "", inline
	}
	decl, _, _ := strings.Cut(trimmed, "\n")
	if i := strings.IndexAny(decl, "{;"); i >= 0 {
		decl = decl[:i]
	}
	decl = strings.TrimSpace(decl)
	if !utf8.ValidString(decl) {
		decl = strings.ToValidUTF8(decl, "")
	}
	return decl, inline
}
