package typeexpr

import (
	"testing"

	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/jsdoc/token"
	"github.com/dhamidi/closuredoc/source"
)

func parse(t *testing.T, text string, opts ...Option) (Type, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	return Parse(text, diag.BagReporter{Bag: bag}, opts...), bag
}

func TestParseCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"string", "string"},
		{"?string", "?string"},
		{"string?", "?string"},
		{"!Object", "!Object"},
		{"Object!", "!Object"},
		{"*", "*"},
		{"?", "?"},
		{"null", "null"},
		{"Null", "null"},
		{"undefined", "void"},
		{"void", "void"},
		{"number|string", "(number|string)"},
		{"number||string", "(number|string)"},
		{"(number|string)", "(number|string)"},
		{"(number,string)", "(number|string)"},
		{"(number|number)", "number"},
		{"?number|string", "(number|string|null)"},
		{"(?string)", "(string|null)"},
		{"Array.<string>", "Array<string>"},
		{"Object<string, number>", "Object<string,number>"},
		{"Array<?>", "Array<?>"},
		{"Object<string,number|null>", "Object<string,(number|null)>"},
		{"goog.events.Event", "goog.events.Event"},
		{"{}", "{}"},
		{"{a: number, b}", "{a: number, b}"},
		{"{a: ?}", "{a}"},
		{"{0: string, 'b': ?number}", "{0: string, 'b': ?number}"},
		{"function()", "function()"},
		{"function(): void", "function(): void"},
		{"function(string, number=): boolean", "function(string, number=): boolean"},
		{"function(this:Foo, ...number)", "function(this:Foo, ...number)"},
		{"function(this:?)", "function(this:?)"},
		{"function(new:Foo, string)", "function(new:Foo, string)"},
		{"function(...)", "function(...)"},
		{"function(...[number])", "function(...number)"},
		{"function((string|number)=): ?Object", "function((string|number)=): ?Object"},
		{"function(function(string): number): undefined", "function(function(string): number): void"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, bag := parse(t, tt.input)
			if bag.Len() != 0 {
				t.Fatalf("Parse(%q) reported %v", tt.input, bag.Messages())
			}
			if got == nil {
				t.Fatalf("Parse(%q) = nil", tt.input)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}

			again, bag := parse(t, got.String())
			if again == nil || bag.Len() != 0 {
				t.Fatalf("reparse of %q failed: %v", got.String(), bag.Messages())
			}
			if !Equal(got, again) {
				t.Errorf("reparse of %q = %q", got.String(), again.String())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Array<string", diag.MsgMissingGT},
		{"(string|number", diag.MsgMissingRP},
		{"function string", diag.MsgMissingLP},
		{"function(this Foo)", diag.MsgMissingColon},
		{"function(...number, string)", diag.MsgVarArgsNotLast},
		{"function(this:Foo, new:Bar)", diag.MsgFunctionContexts},
		{"function(...number])", diag.MsgMissingLB},
		{"function(...[number)", diag.MsgMissingRB},
		{"function(string", diag.MsgMissingRP},
		{"{a: number, a: string}", diag.DuplicateRecordField("a")},
		{"{a: number", diag.MsgMissingRC},
		{"{a: number, ?}", diag.MsgTypeSyntax},
		{"string string", diag.MsgTypeSyntax},
		{"[string]", diag.MsgTypeSyntax},
		{"|string", diag.MsgTypeSyntax},
		{"", diag.MsgTypeSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, bag := parse(t, tt.input)
			if got != nil {
				t.Errorf("Parse(%q) = %q, want nil", tt.input, got.String())
			}
			msgs := bag.Messages()
			if len(msgs) != 1 {
				t.Fatalf("Parse(%q) reported %d diagnostics %v, want 1", tt.input, len(msgs), msgs)
			}
			if want := diag.TypePrefix + tt.want; msgs[0] != want {
				t.Errorf("message = %q, want %q", msgs[0], want)
			}
			d := bag.Items()[0]
			if d.Category != diag.CatType || d.Severity != diag.SevError {
				t.Errorf("diagnostic = %v/%v, want type error", d.Category, d.Severity)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, bag := parse(t, "string string")
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1", bag.Len())
	}
	if got := bag.Items()[0].Span.Start.Column; got != 7 {
		t.Errorf("column = %d, want 7", got)
	}
}

func TestParseLegacyArrays(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[]", "[]"},
		{"[string]", "[string]"},
		{"[string, ?number]", "[string,?number]"},
	}
	for _, tt := range tests {
		got, bag := parse(t, tt.input, WithLegacyArrays(true))
		if got == nil || bag.Len() != 0 {
			t.Fatalf("Parse(%q) failed: %v", tt.input, bag.Messages())
		}
		if got.String() != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, got.String(), tt.want)
		}
	}

	_, bag := parse(t, "[string", WithLegacyArrays(true))
	if msgs := bag.Messages(); len(msgs) != 1 || msgs[0] != diag.TypePrefix+diag.MsgMissingRB {
		t.Errorf("messages = %v, want missing ]", msgs)
	}
}

func TestParseAcrossLines(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"goog.\n * events.Event", "goog.events.Event"},
		{"Object<string,\n * number>", "Object<string,number>"},
		{"function(string,\n *     number)", "function(string, number)"},
		{"{a: string,\n * b: number}", "{a: string, b: number}"},
	}
	for _, tt := range tests {
		got, bag := parse(t, tt.input)
		if got == nil || bag.Len() != 0 {
			t.Fatalf("Parse(%q) failed: %v", tt.input, bag.Messages())
		}
		if got.String() != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, got.String(), tt.want)
		}
	}
}

func annotate(text string, param bool) (Type, *diag.Bag, token.Token) {
	bag := diag.NewBag(0)
	s := token.NewStream(source.Source{Text: text})
	p := NewParser(s, diag.BagReporter{Bag: bag})
	var got Type
	if param {
		got = p.ParseParamAnnotation(s.Next())
	} else {
		got = p.ParseAnnotation(s.Next())
	}
	return got, bag, s.Peek()
}

func TestParseParamAnnotation(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		message string
	}{
		{"{string}", "string", ""},
		{"{...}", "...", ""},
		{"{...number}", "...number", ""},
		{"{number=}", "number=", ""},
		{"{?number|string=}", "(number|string|null)=", ""},
		{"{...number=}", "...number", diag.MsgMissingRC},
		{"{string", "string", diag.MsgMissingRC},
		{"string", "string", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, bag, _ := annotate(tt.input, true)
			if got == nil {
				t.Fatalf("ParseParamAnnotation(%q) = nil", tt.input)
			}
			if got.String() != tt.want {
				t.Errorf("ParseParamAnnotation(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
			var want []string
			if tt.message != "" {
				want = []string{diag.TypePrefix + tt.message}
			}
			if msgs := bag.Messages(); len(msgs) != len(want) || (len(want) == 1 && msgs[0] != want[0]) {
				t.Errorf("messages = %v, want %v", msgs, want)
			}
		})
	}
}

func TestParseAnnotationLeavesStream(t *testing.T) {
	got, bag, next := annotate("{Array<string>} name description", false)
	if got == nil || bag.Len() != 0 {
		t.Fatalf("ParseAnnotation failed: %v", bag.Messages())
	}
	if next.Kind != token.String || next.Text != "name" {
		t.Errorf("next token = %v, want name", next)
	}

	got, _, next = annotate("{function(string): number}*/", false)
	if got == nil || got.String() != "function(string): number" {
		t.Fatalf("ParseAnnotation = %v", got)
	}
	if next.Kind != token.EOC {
		t.Errorf("next token = %v, want EOC", next)
	}
}

func TestParseTypeNameAnnotation(t *testing.T) {
	s := token.NewStream(source.Source{Text: "{goog.Foo<T>}"})
	p := NewParser(s, nil)
	got := p.ParseTypeNameAnnotation(s.Next())
	if got == nil || got.String() != "goog.Foo<T>" {
		t.Errorf("ParseTypeNameAnnotation = %v, want goog.Foo<T>", got)
	}
}

func TestNewUnion(t *testing.T) {
	str := &Named{Name: "string"}
	num := &Named{Name: "number"}
	tests := []struct {
		name string
		alts []Type
		want string
	}{
		{"empty", nil, "?"},
		{"single", []Type{str}, "string"},
		{"dedupe", []Type{str, &Named{Name: "string"}}, "string"},
		{"flatten", []Type{&Union{Alts: []Type{str, num}}, &Void{}}, "(string|number|void)"},
		{"nullable member", []Type{&Nullable{Inner: str}, num}, "(string|number|null)"},
		{"null last", []Type{&Null{}, str}, "(string|null)"},
		{"only null", []Type{&Null{}}, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewUnion(tt.alts...).String(); got != tt.want {
				t.Errorf("NewUnion = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMakeNullable(t *testing.T) {
	tests := []struct {
		in   Type
		want string
	}{
		{&Named{Name: "Foo"}, "?Foo"},
		{&Nullable{Inner: &Named{Name: "Foo"}}, "?Foo"},
		{&Unknown{}, "?"},
		{&Any{}, "*"},
		{&Union{Alts: []Type{&Named{Name: "a"}, &Named{Name: "b"}}}, "(a|b|null)"},
	}
	for _, tt := range tests {
		if got := MakeNullable(tt.in).String(); got != tt.want {
			t.Errorf("MakeNullable(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDump(t *testing.T) {
	got, _ := parse(t, "function(new:Foo, ?string)")
	want := "Function new\n" +
		"  new: Named Foo\n" +
		"  param: Nullable\n" +
		"    Named string\n"
	if d := Dump(got); d != want {
		t.Errorf("Dump =\n%s\nwant\n%s", d, want)
	}
}

func TestParseParam(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"...number", "...number", true},
		{"string=", "string=", true},
		{"Object<string, number>", "Object<string,number>", true},
		{"string }", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			bag := diag.NewBag(0)
			got := ParseParam(tt.input, diag.BagReporter{Bag: bag})
			if !tt.ok {
				if bag.Len() == 0 {
					t.Errorf("ParseParam(%q) reported nothing", tt.input)
				}
				return
			}
			if got == nil || got.String() != tt.want {
				t.Errorf("ParseParam(%q) = %v, want %q", tt.input, got, tt.want)
			}
			if bag.Len() != 0 {
				t.Errorf("messages = %v, want none", bag.Messages())
			}
		})
	}
}
