package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/closuredoc/jsdoc"
)

const sample = "/**\n" +
	" * Adds two numbers.\n" +
	" * @param {number} a The first.\n" +
	" * @param {number=} b\n" +
	" * @return {number}\n" +
	" */\n" +
	"function add(a, b) {}\n" +
	"/**\n" +
	" * @private\n" +
	" * @const {string}\n" +
	" */\n" +
	"var secret = 'x';\n" +
	"var n = /** number */ (x);\n"

func sampleFile(t *testing.T) File {
	t.Helper()
	docs := jsdoc.ParseFile("a.js", sample, nil)
	if len(docs) != 3 {
		t.Fatalf("len(docs) = %d, want 3", len(docs))
	}
	return File{Name: "a.js", Docs: docs}
}

func assertText(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	t.Errorf("output mismatch:\n%s", dmp.DiffPrettyText(diffs))
}

func TestKind(t *testing.T) {
	file := sampleFile(t)
	want := []string{"function", "const", "cast"}
	for i, d := range file.Docs {
		if got := Kind(d.Info); got != want[i] {
			t.Errorf("Kind(docs[%d]) = %q, want %q", i, got, want[i])
		}
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(sampleFile(t)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "a.js:1\tfunction\tfunction add(a, b)\t(a: number, b: number=): number\t-\t-\n" +
		"a.js:8\tconst\tvar secret = 'x'\tstring\tprivate\tconst\n" +
		"a.js:13\tcast\t(x)\tnumber\t-\tinlineType\n"
	assertText(t, buf.String(), want)
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(sampleFile(t)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var got fileData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.File != "a.js" {
		t.Errorf("file = %q, want %q", got.File, "a.js")
	}
	add := got.Docs[0]
	if add.Description != "Adds two numbers." {
		t.Errorf("description = %q, want %q", add.Description, "Adds two numbers.")
	}
	wantParams := []paramData{
		{Name: "a", Type: "number", Description: "The first."},
		{Name: "b", Type: "number="},
	}
	if diff := cmp.Diff(wantParams, add.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	if add.Return == nil || add.Return.Type != "number" {
		t.Errorf("return = %+v, want number", add.Return)
	}
	if len(add.Markers) != 3 || add.Markers[0].Annotation != "param" {
		t.Fatalf("markers = %+v, want param, param, return", add.Markers)
	}
	if start := add.Markers[0].Span.Start; start.Line != 3 || start.Column != 4 {
		t.Errorf("marker start = %d:%d, want 3:4", start.Line, start.Column)
	}
	if got.Docs[1].Visibility != "private" {
		t.Errorf("visibility = %q, want %q", got.Docs[1].Visibility, "private")
	}
}

func TestYAMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLEncoder(&buf).Encode(sampleFile(t)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var got fileData
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Docs) != 3 {
		t.Fatalf("len(docs) = %d, want 3", len(got.Docs))
	}
	if got.Docs[2].Kind != "cast" || got.Docs[2].Type != "number" {
		t.Errorf("docs[2] = %+v, want a number cast", got.Docs[2])
	}
	if !strings.Contains(buf.String(), "\n  - line: 1\n") {
		t.Errorf("output is not indented by two spaces:\n%s", buf.String())
	}
}

func TestJSDocPrinter(t *testing.T) {
	file := sampleFile(t)
	p := NewJSDocPrinter(nil)

	tests := []struct {
		name string
		info *jsdoc.Info
		want string
	}{
		{"function", file.Docs[0].Info, "/**\n" +
			" * Adds two numbers.\n" +
			" *\n" +
			" * @param {number} a The first.\n" +
			" * @param {number=} b\n" +
			" * @return {number}\n" +
			" */\n"},
		{"const", file.Docs[1].Info, "/**\n * @private\n * @const {string}\n */\n"},
		{"cast", file.Docs[2].Info, "/** number */"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertText(t, p.Sprint(tt.info), tt.want)
		})
	}
}

func TestJSDocPrinterSingleLine(t *testing.T) {
	docs := jsdoc.ParseFile("b.js", "/** @type {Array.<string>} */\nvar a;\n", nil)
	p := NewJSDocPrinter(nil)
	p.SetIndent("  ")
	assertText(t, p.Sprint(docs[0].Info), "  /** @type {Array<string>} */\n")
}

func TestMarkdownEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownEncoder(&buf).Encode(sampleFile(t)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "# a.js\n\n" +
		"## `function add(a, b)`\n\n" +
		"*function* · `(a: number, b: number=): number`\n\n" +
		"Adds two numbers.\n\n" +
		"**Parameters**\n\n" +
		"- `a` `number`: The first.\n" +
		"- `b` `number=`\n\n" +
		"**Returns** `number`\n\n"
	assertText(t, buf.String(), want)
}

func TestMarkdownEncoderAll(t *testing.T) {
	var buf bytes.Buffer
	e := NewMarkdownEncoder(&buf)
	e.All = true
	if err := e.Encode(sampleFile(t)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), "## `var secret = 'x'`") {
		t.Errorf("private declaration missing:\n%s", buf.String())
	}
}

func TestHTMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHTMLEncoder(&buf).Encode(sampleFile(t)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, want := range []string{"<h1>a.js</h1>", "<code>function add(a, b)</code>", "<strong>Parameters</strong>"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("HTML does not contain %q:\n%s", want, buf.String())
		}
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"First line\nsecond line.\n\nSecond paragraph.", "First line second line."},
		{"Uses `code` here.", "Uses code here."},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Summary(tt.in); got != tt.want {
			t.Errorf("Summary(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalTypeEdits(t *testing.T) {
	src := "/** @type {Array.<string>} */\nvar a;\n" +
		"/** @param {  number  } x\n @return {(string|number)} */\nfunction f(x) {}\n"
	docs := jsdoc.ParseFile("c.js", src, nil)

	edits := CanonicalTypeEdits(src, docs)
	if len(edits) != 2 {
		t.Fatalf("len(edits) = %d, want 2: %+v", len(edits), edits)
	}
	want := "/** @type {Array<string>} */\nvar a;\n" +
		"/** @param {number} x\n @return {(string|number)} */\nfunction f(x) {}\n"
	assertText(t, Apply(src, edits), want)

	again := jsdoc.ParseFile("c.js", want, nil)
	if edits := CanonicalTypeEdits(want, again); len(edits) != 0 {
		t.Errorf("edits after rewrite = %+v, want none", edits)
	}
}

func TestLineDiff(t *testing.T) {
	if got := LineDiff("a.js", "x\n", "x\n", true); got != "" {
		t.Errorf("LineDiff(equal) = %q, want empty", got)
	}
	got := LineDiff("a.js", "x\ny\n", "x\nz\n", false)
	assertText(t, got, "--- a.js\n+++ a.js\n-y\n+z\n")

	got = LineDiff("a.js", "x\ny\n", "x\nz\n", true)
	assertText(t, got, "--- a.js\n+++ a.js\n x\n-y\n+z\n")
}
