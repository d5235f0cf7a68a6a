package codebase

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/closuredoc/source"
)

func TestProtocolPositions(t *testing.T) {
	lines := source.NewLineIndex("ab\n😀x{T}\n")

	tests := []struct {
		pos  source.Position
		want protocol.Position
	}{
		{source.Position{Line: 0, Column: 1}, protocol.Position{Line: 0, Character: 1}},
		{source.Position{Line: 1, Column: 1}, protocol.Position{Line: 1, Character: 2}},
		{source.Position{Line: 1, Column: 3}, protocol.Position{Line: 1, Character: 4}},
	}
	for _, tt := range tests {
		got, err := toProtocolPosition(lines, tt.pos)
		if err != nil {
			t.Fatalf("toProtocolPosition(%v): %v", tt.pos, err)
		}
		if got != tt.want {
			t.Errorf("toProtocolPosition(%v) = %+v, want %+v", tt.pos, got, tt.want)
		}
		back, err := fromProtocolPosition(lines, got)
		if err != nil {
			t.Fatalf("fromProtocolPosition(%+v): %v", got, err)
		}
		if back.Line != tt.pos.Line || back.Column != tt.pos.Column {
			t.Errorf("fromProtocolPosition(%+v) = %v, want %v", got, back, tt.pos)
		}
	}
}

func TestProtocolDiagnostics(t *testing.T) {
	f := Parse("a.js", []byte(sample), nil)
	items := ProtocolDiagnostics(f)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	d := items[0]
	if d.Range.Start.Line != 2 || d.Range.Start.Character != 3 {
		t.Errorf("start = %+v, want 2:3", d.Range.Start)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityWarning {
		t.Errorf("severity = %v, want warning", d.Severity)
	}
	if d.Message != `illegal use of unknown JSDoc tag "bogus"; ignoring it` {
		t.Errorf("message = %q", d.Message)
	}
}

func TestURIRoundTrip(t *testing.T) {
	uri := pathToURI("/tmp/a b.js")
	if uri != "file:///tmp/a%20b.js" {
		t.Errorf("pathToURI = %q, want %q", uri, "file:///tmp/a%20b.js")
	}
	path, err := uriToPath(uri)
	if err != nil || path != "/tmp/a b.js" {
		t.Errorf("uriToPath(%q) = %q, %v", uri, path, err)
	}
}
