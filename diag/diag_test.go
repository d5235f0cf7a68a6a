package diag

import (
	"testing"

	"github.com/dhamidi/closuredoc/source"
)

func at(offset int) source.Span {
	p := source.Position{Offset: offset, Column: offset}
	return source.Span{Start: p, End: p}
}

func TestDiagnosticText(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{Category: CatType, Message: MsgMissingRP}, "Bad type annotation. missing closing )"},
		{Diagnostic{Category: CatParser, Message: MsgDeprecated}, "extra @deprecated tag"},
		{Diagnostic{Category: CatType, Message: DuplicateVariable("x")}, `Bad type annotation. duplicate variable name "x"`},
		{Diagnostic{Category: CatParser, Message: UnknownTag("foobar")}, `illegal use of unknown JSDoc tag "foobar"; ignoring it`},
	}
	for _, tt := range tests {
		if got := tt.d.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(3)
	b.Add(Diagnostic{File: "b.js", Span: at(1), Message: "b1"})
	b.Add(Diagnostic{File: "a.js", Span: at(9), Message: "a9", Severity: SevWarning})
	b.Add(Diagnostic{File: "a.js", Span: at(9), Message: "a9e", Severity: SevError})
	if b.Add(Diagnostic{Message: "dropped"}) {
		t.Fatal("Add() past limit = true, want false")
	}

	b.Sort()
	got := []string{}
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	want := []string{"a9e", "a9", "b1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted = %v, want %v", got, want)
		}
	}
	if !b.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
	if n := b.Count(SevWarning); n != 1 {
		t.Errorf("Count(warning) = %d, want 1", n)
	}
}

func TestFuncReporter(t *testing.T) {
	var gotMsg string
	var gotLine, gotCol int
	r := FuncReporter(func(msg string, line, col int) {
		gotMsg, gotLine, gotCol = msg, line, col
	})
	r.Report(Diagnostic{
		Category: CatType,
		Message:  MsgTypeSyntax,
		Span:     source.Span{Start: source.Position{Line: 2, Column: 7}},
	})
	if gotMsg != "Bad type annotation. type not recognized due to syntax error" || gotLine != 2 || gotCol != 7 {
		t.Errorf("got (%q, %d, %d)", gotMsg, gotLine, gotCol)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := Diagnostic{Message: MsgConst, Span: at(4)}
	r.Report(d)
	r.Report(d)
	d.Span = at(5)
	r.Report(d)
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
}

func TestParseSeverity(t *testing.T) {
	for _, sev := range []Severity{SevInfo, SevWarning, SevError} {
		got, ok := ParseSeverity(sev.String())
		if !ok || got != sev {
			t.Errorf("ParseSeverity(%q) = %v, %v", sev.String(), got, ok)
		}
	}
	if _, ok := ParseSeverity("fatal"); ok {
		t.Error("ParseSeverity(fatal) ok = true, want false")
	}
}
