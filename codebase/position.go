package codebase

import (
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/closuredoc/source"
)

// Language server positions count UTF-16 code units; source positions
// count runes.

func toProtocolPosition(lines *source.LineIndex, p source.Position) (protocol.Position, error) {
	line := lines.Line(p.Line)
	units := 0
	for i, r := range []rune(line) {
		if i >= p.Column {
			break
		}
		units += utf16Len(r)
	}
	if extra := p.Column - utf8.RuneCountInString(line); extra > 0 {
		units += extra
	}
	l, err := safecast.Conv[uint32](p.Line)
	if err != nil {
		return protocol.Position{}, err
	}
	c, err := safecast.Conv[uint32](units)
	if err != nil {
		return protocol.Position{}, err
	}
	return protocol.Position{Line: l, Character: c}, nil
}

func toProtocolRange(lines *source.LineIndex, s source.Span) (protocol.Range, error) {
	start, err := toProtocolPosition(lines, s.Start)
	if err != nil {
		return protocol.Range{}, err
	}
	end, err := toProtocolPosition(lines, s.End)
	if err != nil {
		return protocol.Range{}, err
	}
	return protocol.Range{Start: start, End: end}, nil
}

func fromProtocolPosition(lines *source.LineIndex, p protocol.Position) (source.Position, error) {
	n, err := safecast.Conv[int](p.Line)
	if err != nil {
		return source.Position{}, err
	}
	want, err := safecast.Conv[int](p.Character)
	if err != nil {
		return source.Position{}, err
	}
	column, units := 0, 0
	for _, r := range lines.Line(n) {
		if units >= want {
			break
		}
		units += utf16Len(r)
		column++
	}
	return source.Position{Line: n, Column: column}, nil
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
