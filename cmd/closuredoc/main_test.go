package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleJS = "/**\n * Sums.\n * @param {Array.<number>} xs\n * @return {number}\n */\nfunction sum(xs) {}\n"

func TestTypeCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"type", "Array.<string>|null"}, "(Array<string>|null)\n"},
		{[]string{"type", "--param", "...number"}, "...number\n"},
		{[]string{"type", "--lang", "es3", "[string]"}, "[string]\n"},
		{[]string{"type", "--tree", "?Foo"}, "Nullable\n  Named Foo\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, stderr, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("err = %v, stderr = %s", err, stderr)
			}
			if got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeCmdError(t *testing.T) {
	_, stderr, err := run(t, "type", "[string]")
	if err == nil {
		t.Fatalf("err = nil, want an error for an ES5 array literal")
	}
	if !strings.Contains(stderr, "Bad type annotation.") {
		t.Errorf("stderr = %q, want a type diagnostic", stderr)
	}
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.js", sampleJS)
	writeFile(t, dir, "warn.js", "/** @bogus */\nvar x;\n")

	stdout, stderr, err := run(t, "check", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(stdout, `unknown JSDoc tag "bogus"`) {
		t.Errorf("stdout = %q, want the unknown tag warning", stdout)
	}
	if !strings.Contains(stderr, "1 warning in 2 files") {
		t.Errorf("stderr = %q, want the summary", stderr)
	}

	_, _, err = run(t, "check", "--strict", dir)
	var de *diagnosticsError
	if !errors.As(err, &de) || de.warnings != 1 {
		t.Errorf("check --strict err = %v, want a diagnosticsError with 1 warning", err)
	}
}

func TestCheckCmdErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.js", "/** @type {string */\nvar x;\n/** @param {number x */\nfunction f(x) {}\n")

	stdout, _, err := run(t, "check", "--format", "json", "--jobs", "1", path)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) < 2 {
		t.Errorf("got %d JSON lines, want at least 2:\n%s", len(lines), stdout)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, `{"severity":"error","category":"type"`) {
			t.Errorf("line = %s, want a type error", line)
		}
	}
	var de *diagnosticsError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want a diagnosticsError", err)
	}
}

func TestParseCmd(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.js", sampleJS)

	stdout, _, err := run(t, "parse", "-f", "line", path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := path + ":1\tfunction\tfunction sum(xs)\t(xs: Array<number>): number\t-\t-\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	if _, _, err := run(t, "parse", "-f", "xml", path); err == nil {
		t.Errorf("parse -f xml succeeded, want an error")
	}
}

func TestFmtCmd(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.js", sampleJS)

	stdout, _, err := run(t, "fmt", "--diff", path)
	if err != nil {
		t.Fatalf("fmt --diff: %v", err)
	}
	want := "--- " + path + "\n+++ " + path + "\n" +
		"- * @param {Array.<number>} xs\n" +
		"+ * @param {Array<number>} xs\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	if _, _, err := run(t, "fmt", "-w", path); err != nil {
		t.Fatalf("fmt -w: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "{Array<number>}") {
		t.Errorf("file was not rewritten:\n%s", data)
	}

	if _, _, err := run(t, "fmt", "-w"); err == nil {
		t.Errorf("fmt -w without a file succeeded, want an error")
	}
}

func TestDocCmd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", sampleJS)

	stdout, _, err := run(t, "doc", dir)
	if err != nil {
		t.Fatalf("doc: %v", err)
	}
	if !strings.Contains(stdout, "## `function sum(xs)`") {
		t.Errorf("stdout = %q, want a section for sum", stdout)
	}

	stdout, _, err = run(t, "doc", "--html", dir)
	if err != nil {
		t.Fatalf("doc --html: %v", err)
	}
	if !strings.Contains(stdout, "<h2><code>function sum(xs)</code></h2>") {
		t.Errorf("stdout = %q, want an HTML heading for sum", stdout)
	}
}

func TestGrammarCmd(t *testing.T) {
	stdout, _, err := run(t, "grammar")
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}
	if !strings.HasPrefix(stdout, "Annotation = ") {
		t.Errorf("stdout = %q, want the grammar", stdout)
	}
	for _, text := range []string{"{Array.<string>}", "number", "goog.Foo"} {
		if _, _, err := run(t, "grammar", "--accepts", text); err != nil {
			t.Errorf("grammar --accepts %s: %v", text, err)
		}
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "c.toml", "language_mode = \"es3\"\n")
	stdout, _, err := run(t, "--config", cfg, "type", "[number]")
	if err != nil {
		t.Fatalf("type with config: %v", err)
	}
	if stdout != "[number]\n" {
		t.Errorf("stdout = %q, want %q", stdout, "[number]\n")
	}

	bad := writeFile(t, dir, "bad.toml", "nope = 1\n")
	if _, _, err := run(t, "--config", bad, "type", "number"); err == nil {
		t.Errorf("unknown config key accepted")
	}
}
