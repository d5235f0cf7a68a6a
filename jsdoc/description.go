package jsdoc

import (
	"strings"

	"github.com/dhamidi/closuredoc/jsdoc/token"
	"github.com/dhamidi/closuredoc/source"
)

// whitespace selects how line structure is kept in extracted text.
type whitespace uint8

const (
	// singleLine joins lines with a single space.
	singleLine whitespace = iota
	// trimmed keeps line breaks and trims both ends.
	trimmed
	// preserved keeps the text verbatim, including embedded annotations
	// and indentation after the leading "*".
	preserved
)

// lineEnd returns the cursor of the first EOL, EOC or EOF token at or after
// the current position.
func (p *parser) lineEnd() token.Cursor {
	c := p.s.Cursor()
	for {
		tok := p.s.At(c)
		if tok.Kind == token.EOL || tok.Kind.IsEnd() {
			return c
		}
		c++
	}
}

// restOfLine returns the raw text from offset up to the end of the current
// line, the cursor of the token ending the line and the end of the last
// token on the line. The stream is not moved.
func (p *parser) restOfLine(offset int) (string, token.Cursor, source.Position, bool) {
	stop := p.lineEnd()
	text := p.s.Raw(offset, p.s.At(stop).Span.Start.Offset)
	if stop == p.s.Cursor() {
		return text, stop, source.Position{}, false
	}
	return text, stop, p.s.At(stop - 1).Span.End, true
}

// descriptionStart is where text following the last consumed token begins.
// Its line is the line of the annotation being parsed.
func (p *parser) descriptionStart() source.Position {
	pos := p.s.Last().Span.End
	if p.marker >= 0 {
		pos.Line = p.markers[p.marker].Annotation.Span.Start.Line
	}
	return pos
}

// singleLineText extracts the trimmed remainder of the current line and
// returns it with the consumed token ending the line.
func (p *parser) singleLineText() (string, token.Token) {
	start := p.descriptionStart()
	line, stop, end, ok := p.restOfLine(p.s.Last().Span.End.Offset)
	line = strings.TrimSpace(line)
	if ok && line != "" {
		p.markText(line, source.Span{Start: start, End: end})
	}
	p.s.Seek(stop)
	return line, p.s.Next()
}

// multilineText extracts the text after the last consumed token up to the
// next annotation that starts a line, or the end of the comment. The first
// token after the text is consumed and returned.
func (p *parser) multilineText(mode whitespace) (string, token.Token) {
	last := p.s.Last()
	if last.Kind == token.EOL || last.Kind.IsEnd() {
		return "", last
	}
	start := p.descriptionStart()
	end := last.Span.End

	line, stop, lineEnd, ok := p.restOfLine(last.Span.End.Offset)
	if mode != preserved {
		line = strings.TrimSpace(line)
	}
	if ok {
		end = lineEnd
	}
	var b strings.Builder
	b.WriteString(line)
	p.s.Seek(stop)
	p.state = searchingAnnotation
	tok := p.s.Next()

	ignoreStar := false
	lineStart := -1
	for {
		switch tok.Kind {
		case token.Star:
			if ignoreStar {
				lineStart = tok.Span.End.Column
			} else {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteByte('*')
				end = tok.Span.End
			}
			tok = p.s.Next()
			continue
		case token.EOL:
			if mode != singleLine {
				b.WriteByte('\n')
			}
			ignoreStar = true
			lineStart = 0
			tok = p.s.Next()
			continue
		}

		ignoreStar = false
		p.state = searchingAnnotation
		if tok.Kind != token.EOC {
			if lineStart != -1 && mode == preserved {
				if n := tok.Span.Start.Column - lineStart; n > 0 {
					b.WriteString(strings.Repeat(" ", n))
				}
				lineStart = -1
			} else if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteByte(' ')
			}
		}

		if tok.Kind.IsEnd() || (tok.Kind == token.Annotation && mode != preserved) {
			text := b.String()
			if mode != preserved {
				text = strings.TrimSpace(text)
			}
			if text != "" {
				p.markText(text, source.Span{Start: start, End: end})
			}
			return text, tok
		}

		p.s.Unread()
		line, stop, lineEnd, _ := p.restOfLine(tok.Span.Start.Offset)
		if mode != preserved {
			line = strings.TrimRight(line, " \t\r\f\v")
		}
		b.WriteString(line)
		end = lineEnd
		p.s.Seek(stop)
		tok = p.s.Next()
	}
}

// blockDescription extracts the text before the first annotation. Line
// breaks are kept.
func (p *parser) blockDescription(tok token.Token) (string, token.Token) {
	var b strings.Builder
	ignoreStar := true
	for {
		switch tok.Kind {
		case token.Annotation, token.EOC, token.EOF:
			return strings.TrimSpace(b.String()), tok
		case token.Star:
			if !ignoreStar {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteByte('*')
			}
			tok = p.s.Next()
		case token.EOL:
			ignoreStar = true
			b.WriteByte('\n')
			tok = p.s.Next()
		default:
			if !ignoreStar && b.Len() > 0 {
				b.WriteByte(' ')
			}
			ignoreStar = false
			p.s.Unread()
			line, stop, _, _ := p.restOfLine(tok.Span.Start.Offset)
			b.WriteString(strings.TrimRight(line, " \t\r\f\v"))
			p.s.Seek(stop)
			tok = p.s.Next()
		}
	}
}
