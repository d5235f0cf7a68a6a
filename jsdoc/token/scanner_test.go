package token

import (
	"testing"

	"github.com/dhamidi/closuredoc/source"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{"type annotation", "@type {number}*/", []Kind{Annotation, LeftCurly, String, RightCurly, EOC}},
		{"generic dot angle", "Array.<string>", []Kind{String, LeftAngle, String, RightAngle, EOF}},
		{"generic angle", "Array<string>", []Kind{String, LeftAngle, String, RightAngle, EOF}},
		{"ellipsis", "...number", []Kind{Ellipsis, String, EOF}},
		{"punctuation", ",:!?|=()[]", []Kind{Comma, Colon, Bang, QMark, Pipe, Equals, LeftParen, RightParen, LeftSquare, RightSquare, EOF}},
		{"star lines", "foo\n * bar */", []Kind{String, EOL, Star, String, EOC}},
		{"and and", "a && b", []Kind{String, AndAnd, String, EOF}},
		{"ttl delimiters", ":= x =:", []Kind{Colon, Equals, String, Equals, Colon, EOF}},
		{"trailing text ignored", "*/ @type", []Kind{EOC}},
		{"empty", "", []Kind{EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Scan(source.Source{Text: tt.input}))
			if len(got) != len(tt.want) {
				t.Fatalf("Scan(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Scan(%q) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestScanWords(t *testing.T) {
	toks := Scan(source.Source{Text: "goog.foo.Bar 'quoted' a-b x@y.com"})
	want := []string{"goog.foo.Bar", "'quoted'", "a-b", "x@y.com"}
	for i, w := range want {
		if toks[i].Kind != String || toks[i].Text != w {
			t.Errorf("token %d = %v %q, want string %q", i, toks[i].Kind, toks[i].Text, w)
		}
	}
}

func TestScanAnnotationNames(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"@param", "param"},
		{"@fileOverview", "fileOverview"},
		{"@123", ""},
		{"@ foo", ""},
		{"@jaggerProvidePromise{", "jaggerProvidePromise"},
	}
	for _, tt := range tests {
		tok := Scan(source.Source{Text: tt.input})[0]
		if tok.Kind != Annotation || tok.Text != tt.want {
			t.Errorf("Scan(%q)[0] = %v %q, want annotation %q", tt.input, tok.Kind, tok.Text, tt.want)
		}
	}
}

func TestScanPositions(t *testing.T) {
	src := source.Source{Text: "@type {x}\n * @private */", Offset: 100, Line: 4, Column: 3}
	toks := Scan(src)

	tests := []struct {
		index int
		kind  Kind
		start source.Position
	}{
		{0, Annotation, source.Position{Offset: 100, Line: 4, Column: 3}},
		{1, LeftCurly, source.Position{Offset: 106, Line: 4, Column: 9}},
		{3, RightCurly, source.Position{Offset: 108, Line: 4, Column: 11}},
		{4, EOL, source.Position{Offset: 109, Line: 4, Column: 12}},
		{5, Star, source.Position{Offset: 111, Line: 5, Column: 1}},
		{6, Annotation, source.Position{Offset: 113, Line: 5, Column: 3}},
	}
	for _, tt := range tests {
		tok := toks[tt.index]
		if tok.Kind != tt.kind {
			t.Errorf("token %d kind = %v, want %v", tt.index, tok.Kind, tt.kind)
		}
		if tok.Span.Start != tt.start {
			t.Errorf("token %d start = %+v, want %+v", tt.index, tok.Span.Start, tt.start)
		}
	}
	if end := toks[6].Span.End.Column; end != 11 {
		t.Errorf("@private end column = %d, want 11", end)
	}
}

func TestStreamNavigation(t *testing.T) {
	s := NewStream(source.Source{Text: "a\n * b */"})

	if tok := s.Next(); tok.Text != "a" {
		t.Fatalf("Next() = %v, want a", tok)
	}
	mark := s.Cursor()
	s.SkipEOLs()
	if tok := s.Next(); tok.Text != "b" {
		t.Fatalf("after SkipEOLs Next() = %v, want b", tok)
	}
	if s.Last().Text != "b" {
		t.Errorf("Last() = %v, want b", s.Last())
	}
	s.Seek(mark)
	if !s.Match(EOL) {
		t.Errorf("after Seek Peek() = %v, want EOL", s.Peek())
	}
	s.SkipEOLs()
	s.Next()
	if tok := s.Next(); tok.Kind != EOC {
		t.Fatalf("Next() = %v, want EOC", tok)
	}
	if tok := s.Next(); tok.Kind != EOC {
		t.Errorf("Next() past end = %v, want EOC", tok)
	}
	s.Unread()
	if !s.Match(EOC) {
		t.Errorf("Peek() after Unread = %v, want EOC", s.Peek())
	}
}

func TestStreamRaw(t *testing.T) {
	s := NewStream(source.Source{Text: "see   foo.<bar> here*/", Offset: 10})
	from := Cursor(0)
	to := Cursor(5)
	if got := s.RawTokens(from, to); got != "see   foo.<bar>" {
		t.Errorf("RawTokens = %q", got)
	}
	if got := s.Text(); got != "see   foo.<bar> here" {
		t.Errorf("Text() = %q", got)
	}
}
