package typeexpr

import "testing"

func TestGrammarVerifies(t *testing.T) {
	g, err := Grammar()
	if err != nil {
		t.Fatalf("Grammar() error: %v", err)
	}
	if g[StartProduction] == nil {
		t.Errorf("grammar has no %s production", StartProduction)
	}
}

func TestGrammarAcceptsCanonicalForms(t *testing.T) {
	inputs := []string{
		"string",
		"number",
		"goog.Foo",
		"?Object",
		"!goog.events.Event",
		"Array<string>",
		"Object<string,(number|null)>",
		"(number|string|null)",
		"{a: number, b}",
		"{}",
		"function(this:Foo, ...number)",
		"function(new:Foo, string=): void",
		"function(...)",
		"*",
		"?",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			typ, bag := parse(t, input)
			if typ == nil {
				t.Fatalf("Parse(%q) failed: %v", input, bag.Messages())
			}
			ok, err := Accepts(StartProduction, typ.String())
			if err != nil {
				t.Fatalf("Accepts error: %v", err)
			}
			if !ok {
				t.Errorf("grammar rejects %q", typ.String())
			}
		})
	}
}

func TestGrammarParamAnnotation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"{...number}", true},
		{"{...}", true},
		{"{string=}", true},
		{"{...number=}", false},
		{"{string", false},
		{"function(", false},
		{"Array<string", false},
	}
	for _, tt := range tests {
		got, err := Accepts(StartProduction, tt.input)
		if err != nil {
			t.Fatalf("Accepts(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Accepts(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAcceptsUnknownProduction(t *testing.T) {
	if _, err := Accepts("Nope", "string"); err == nil {
		t.Error("Accepts(Nope) succeeded, want error")
	}
}
