package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/source"
)

const text = "/**\n * @param {strin x\n *\t@bogus\n */\n"

func span(startOff, startCol, endOff, endCol, line int) source.Span {
	return source.Span{
		Start: source.Position{Offset: startOff, Line: line, Column: startCol},
		End:   source.Position{Offset: endOff, Line: line, Column: endCol},
	}
}

func sampleBag() *diag.Bag {
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Category: diag.CatType,
		Message:  diag.MsgMissingRC,
		File:     "src/a.js",
		Span:     span(19, 15, 20, 16, 1),
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Category: diag.CatParser,
		Message:  diag.UnknownTag("bogus"),
		File:     "src/a.js",
		Span:     span(26, 3, 32, 9, 2),
	})
	return bag
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	files := MapSources(map[string]string{"src/a.js": text})
	err := Pretty(&buf, sampleBag(), files, PrettyOpts{Context: true, TabWidth: 2, PathMode: PathModeBasename})
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "a.js:2:16: warning: Bad type annotation. expected closing }\n" +
		"2 |  * @param {strin x\n" +
		"  |                ^\n" +
		"a.js:3:4: warning: illegal use of unknown JSDoc tag \"bogus\"; ignoring it\n" +
		"3 |  *  @bogus\n" +
		"  |     ^~~~~~\n"
	if got := buf.String(); got != want {
		t.Errorf("Pretty =\n%s\nwant\n%s", got, want)
	}
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), nil, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("Pretty with Color has no escape sequences: %q", buf.String())
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("Pretty without sources printed context:\n%s", buf.String())
	}
}

func TestUnderlineWideRunes(t *testing.T) {
	line := "日本 @x"
	lead, width := underline(line, span(0, 3, 0, 5, 0), 0)
	if lead != "     " {
		t.Errorf("lead = %q, want 5 spaces", lead)
	}
	if width != 2 {
		t.Errorf("width = %d, want 2", width)
	}

	_, width = underline(line, span(0, 3, 0, 3, 0), 0)
	if width != 1 {
		t.Errorf("empty span width = %d, want 1", width)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1:\n%s", len(lines), buf.String())
	}
	var got DiagnosticJSON
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := DiagnosticJSON{
		Severity: "warning",
		Category: "type",
		Message:  "Bad type annotation. expected closing }",
		Location: LocationJSON{File: "src/a.js", StartByte: 19, EndByte: 20, StartLine: 2, StartCol: 16, EndLine: 2, EndCol: 17},
	}
	if got != want {
		t.Errorf("JSON = %+v, want %+v", got, want)
	}
}

func TestSummary(t *testing.T) {
	bag := sampleBag()
	if got := Summary(bag); got != "2 warnings" {
		t.Errorf("Summary = %q, want %q", got, "2 warnings")
	}
	bag.Add(diag.Diagnostic{Severity: diag.SevError})
	if got := Summary(bag); got != "1 error, 2 warnings" {
		t.Errorf("Summary = %q, want %q", got, "1 error, 2 warnings")
	}
	if got := Summary(diag.NewBag(0)); got != "no problems" {
		t.Errorf("Summary(empty) = %q, want %q", got, "no problems")
	}
}
