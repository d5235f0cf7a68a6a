// Package source describes where comment text comes from and how offsets in
// that text map back to lines and columns of the originating file.
package source

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a location in a file. Line and Column are zero-based; Column
// counts runes from the start of the line.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Contains reports whether p lies in the span. The end is exclusive, except
// for empty spans, which contain their start.
func (s Span) Contains(p Position) bool {
	if s.Start == s.End {
		return p.Line == s.Start.Line && p.Column == s.Start.Column
	}
	return !p.Before(s.Start) && p.Before(s.End)
}

// IsZero reports whether the span was never set.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Source is the text of one documentation comment together with the
// position of its first character in the enclosing file. Text starts right
// after the opening "/**" and normally ends with "*/".
type Source struct {
	File   string
	Text   string
	Offset int
	Line   int
	Column int
}

// Start returns the position of the first character of Text.
func (s Source) Start() Position {
	return Position{Offset: s.Offset, Line: s.Line, Column: s.Column}
}

// LineIndex maps byte offsets of a whole file to positions.
type LineIndex struct {
	text  string
	lines []int
}

func NewLineIndex(text string) *LineIndex {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &LineIndex{text: text, lines: lines}
}

// Position converts a byte offset into a position. Offsets past the end of
// the text are clamped.
func (idx *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(idx.text) {
		offset = len(idx.text)
	}
	line := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i] > offset
	}) - 1
	column := utf8.RuneCountInString(idx.text[idx.lines[line]:offset])
	return Position{Offset: offset, Line: line, Column: column}
}

// LineCount returns the number of lines in the indexed text.
func (idx *LineIndex) LineCount() int {
	return len(idx.lines)
}

// Line returns the text of the zero-based line without its terminator.
func (idx *LineIndex) Line(n int) string {
	if n < 0 || n >= len(idx.lines) {
		return ""
	}
	start := idx.lines[n]
	end := len(idx.text)
	if n+1 < len(idx.lines) {
		end = idx.lines[n+1] - 1
	}
	if end > start && idx.text[end-1] == '\r' {
		end--
	}
	return idx.text[start:end]
}
