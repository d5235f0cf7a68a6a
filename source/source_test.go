package source

import "testing"

func TestLineIndexPosition(t *testing.T) {
	text := "ab\ncdé\n\nx"
	idx := NewLineIndex(text)

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{Offset: 0, Line: 0, Column: 0}},
		{2, Position{Offset: 2, Line: 0, Column: 2}},
		{3, Position{Offset: 3, Line: 1, Column: 0}},
		{7, Position{Offset: 7, Line: 1, Column: 3}},
		{8, Position{Offset: 8, Line: 2, Column: 0}},
		{9, Position{Offset: 9, Line: 3, Column: 0}},
		{100, Position{Offset: len(text), Line: 3, Column: 1}},
	}

	for _, tt := range tests {
		got := idx.Position(tt.offset)
		if got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestLineIndexLine(t *testing.T) {
	idx := NewLineIndex("first\r\nsecond\nthird")
	if idx.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", idx.LineCount())
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if got := idx.Line(i); got != w {
			t.Errorf("Line(%d) = %q, want %q", i, got, w)
		}
	}
	if got := idx.Line(7); got != "" {
		t.Errorf("Line(7) = %q, want empty", got)
	}
}

func TestPositionBefore(t *testing.T) {
	a := Position{Line: 1, Column: 4}
	b := Position{Line: 1, Column: 5}
	c := Position{Line: 2, Column: 0}
	if !a.Before(b) || !b.Before(c) || c.Before(a) || a.Before(a) {
		t.Error("Before ordering is wrong")
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: Position{Line: 1, Column: 4}, End: Position{Line: 2, Column: 1}}
	tests := []struct {
		p    Position
		want bool
	}{
		{Position{Line: 1, Column: 3}, false},
		{Position{Line: 1, Column: 4}, true},
		{Position{Line: 1, Column: 40}, true},
		{Position{Line: 2, Column: 0}, true},
		{Position{Line: 2, Column: 1}, false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	empty := Span{Start: Position{Line: 3, Column: 2}, End: Position{Line: 3, Column: 2}}
	if !empty.Contains(Position{Line: 3, Column: 2}) {
		t.Errorf("empty span does not contain its start")
	}
}
