package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.LanguageMode != ES5 {
		t.Errorf("LanguageMode = %v, want ES5", c.LanguageMode)
	}
	if !c.PreserveDescriptions {
		t.Error("PreserveDescriptions = false, want true")
	}
	if !c.IsAnnotation("since") || c.IsAnnotation("type") {
		t.Error("IsAnnotation does not match the default list")
	}
	if !c.IsSuppression("visibility") || c.IsSuppression("nope") {
		t.Error("IsSuppression does not match the default list")
	}
}

func TestParseLanguageMode(t *testing.T) {
	tests := []struct {
		input string
		want  LanguageMode
	}{
		{"es3", ES3},
		{"ES5", ES5},
		{" es6 ", ES6},
	}
	for _, tt := range tests {
		got, err := ParseLanguageMode(tt.input)
		if err != nil {
			t.Fatalf("ParseLanguageMode(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLanguageMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
	if _, err := ParseLanguageMode("es2015"); !errors.Is(err, ErrUnknownLanguageMode) {
		t.Errorf("ParseLanguageMode(es2015) error = %v, want ErrUnknownLanguageMode", err)
	}
	if !ES3.LegacyArrays() || ES5.LegacyArrays() {
		t.Error("only ES3 accepts legacy arrays")
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("test.toml", `
language_mode = "es3"
preserve_descriptions = false
file_visibility = "private"

[annotations]
extra = ["polymer", "since"]

[suppressions]
extra = ["myCheck"]
`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if c.LanguageMode != ES3 {
		t.Errorf("LanguageMode = %v, want ES3", c.LanguageMode)
	}
	if c.PreserveDescriptions {
		t.Error("PreserveDescriptions = true, want false")
	}
	if c.FileVisibility != "private" {
		t.Errorf("FileVisibility = %q, want private", c.FileVisibility)
	}
	if !c.IsAnnotation("polymer") || !c.IsAnnotation("since") {
		t.Error("extra annotations were not merged")
	}
	if got, want := len(c.Annotations), len(defaultAnnotations)+1; got != want {
		t.Errorf("len(Annotations) = %d, want %d", got, want)
	}
	if !c.IsSuppression("myCheck") || !c.IsSuppression("checkTypes") {
		t.Error("extra suppressions were not merged")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"language mode", `language_mode = "es9"`, ErrUnknownLanguageMode},
		{"visibility", `file_visibility = "secret"`, ErrUnknownVisibility},
		{"unknown key", `colour = "red"`, ErrUndecodedKeys},
		{"unknown nested key", "[annotations]\nmore = [\"x\"]", ErrUndecodedKeys},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.toml", tt.text)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCloneDoesNotShare(t *testing.T) {
	base := Default()
	c := base.Clone()
	c.Annotations = append(c.Annotations, "custom")
	c.Freeze()
	if base.IsAnnotation("custom") {
		t.Error("modifying a clone changed the original")
	}
	if !c.IsAnnotation("custom") {
		t.Error("clone lost its own annotation")
	}
}

func TestFindAndDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, []byte("language_mode = \"es6\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", got, ok, err)
	}
	if got != path {
		t.Errorf("Find = %q, want %q", got, path)
	}

	c, used, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if used != path || c.LanguageMode != ES6 {
		t.Errorf("Discover = %v from %q, want ES6 from %q", c.LanguageMode, used, path)
	}
}
