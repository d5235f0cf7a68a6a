package extract

import "testing"

func TestComments(t *testing.T) {
	src := "var a = 1;\n" +
		"/**\n * Adds.\n * @param {number} x\n */\n" +
		"function add(x) {\n  return x;\n}\n" +
		"/* plain */\n" +
		"/**/\n" +
		"var s = '/** not a comment */';\n" +
		"var r = /\\/** nope/;\n" +
		"var y = /** number */ (z);\n"

	got := Comments("a.js", src)
	if len(got) != 2 {
		t.Fatalf("len(Comments) = %d, want 2", len(got))
	}

	first := got[0]
	if first.Source.File != "a.js" {
		t.Errorf("File = %q, want %q", first.Source.File, "a.js")
	}
	if first.Source.Offset != 14 {
		t.Errorf("Offset = %d, want 14", first.Source.Offset)
	}
	if first.Source.Line != 1 || first.Source.Column != 3 {
		t.Errorf("start = %d:%d, want 1:3", first.Source.Line, first.Source.Column)
	}
	if !first.Closed() {
		t.Errorf("Closed() = false, want true")
	}
	if first.Declaration != "function add(x)" {
		t.Errorf("Declaration = %q, want %q", first.Declaration, "function add(x)")
	}
	if first.Inline {
		t.Errorf("Inline = true, want false")
	}

	second := got[1]
	if second.Source.Text != " number */" {
		t.Errorf("Text = %q, want %q", second.Source.Text, " number */")
	}
	if !second.Inline {
		t.Errorf("Inline = false, want true")
	}
}

func TestCommentsUnterminated(t *testing.T) {
	got := Comments("b.js", "x;\n/** @const")
	if len(got) != 1 {
		t.Fatalf("len(Comments) = %d, want 1", len(got))
	}
	if got[0].Closed() {
		t.Errorf("Closed() = true, want false")
	}
	if got[0].Source.Text != " @const" {
		t.Errorf("Text = %q, want %q", got[0].Source.Text, " @const")
	}
}

func TestCommentsDivisionIsNotRegex(t *testing.T) {
	got := Comments("c.js", "var q = a / b; /** @type {number} */\nvar n;\n")
	if len(got) != 1 {
		t.Fatalf("len(Comments) = %d, want 1", len(got))
	}
	if got[0].Declaration != "var n" {
		t.Errorf("Declaration = %q, want %q", got[0].Declaration, "var n")
	}
}
