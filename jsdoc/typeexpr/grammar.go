package typeexpr

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/closuredoc/jsdoc/token"
	"github.com/dhamidi/closuredoc/source"
	"golang.org/x/exp/ebnf"
)

// StartProduction is the production every annotation type matches.
const StartProduction = "Annotation"

// GrammarText is the EBNF for type annotations. Productions starting with an
// uppercase letter match whole tokens; lowercase productions match the
// characters of a single word token.
const GrammarText = `Annotation = TypeAnnotation | ParamAnnotation .
TypeAnnotation = "{" TopLevel "}" | TypeExpr .
ParamAnnotation = "{" ( "..." [ TopLevel ] | TopLevel [ "=" ] ) "}" .
TopLevel = TypeExpr { "|" [ "|" ] TypeExpr } .
TypeExpr = "?" | "?" Basic | "!" Basic | Basic [ "?" | "!" ] .
Basic = "*" | Record | Union | Function | Array | "null" | "undefined" | "void" | TypeName .
TypeName = dotted [ Generic ] .
Generic = ( ".<" | "<" ) TypeList ">" .
TypeList = TopLevel { "," TopLevel } .
Union = "(" TypeExpr { ( "|" [ "|" ] | "," ) TypeExpr } ")" .
Record = "{" [ Field { "," Field } ] "}" .
Field = FieldName [ ":" TypeExpr ] .
FieldName = dotted | number | quoted .
Function = "function" "(" [ Context [ "," Params ] | Params ] ")" [ ":" Result ] .
Context = ( "this" | "new" ) ":" ( "?" | Basic ) .
Params = Param { "," Param } .
Param = "..." [ [ "[" ] TypeExpr [ "]" ] ] | TypeExpr [ "=" ] .
Result = "void" | TypeExpr .
Array = "[" [ TypeList ] "]" .
dotted = name { "." name } .
name = letter { letter | digit } .
number = digit { digit } .
quoted = "'" { letter | digit } "'" .
letter = "a" … "z" | "A" … "Z" | "_" | "$" .
digit = "0" … "9" .
`

var (
	grammarOnce sync.Once
	grammar     ebnf.Grammar
	grammarErr  error
)

// Grammar returns the parsed and verified type grammar.
func Grammar() (ebnf.Grammar, error) {
	grammarOnce.Do(func() {
		g, err := ebnf.Parse("typeexpr.ebnf", strings.NewReader(GrammarText))
		if err != nil {
			grammarErr = fmt.Errorf("parse grammar: %w", err)
			return
		}
		if err := ebnf.Verify(g, StartProduction); err != nil {
			grammarErr = fmt.Errorf("verify grammar: %w", err)
			return
		}
		grammar = g
	})
	return grammar, grammarErr
}

// Accepts reports whether text is a sentence of the given production.
func Accepts(production, text string) (bool, error) {
	g, err := Grammar()
	if err != nil {
		return false, err
	}
	if g[production] == nil {
		return false, fmt.Errorf("unknown production %q", production)
	}

	var toks []string
	for _, tok := range token.Scan(source.Source{Text: text}) {
		if tok.Kind.IsEnd() || tok.Kind == token.EOL {
			continue
		}
		toks = append(toks, tok.Text)
	}

	r := &recognizer{grammar: g, memo: make(map[memoKey][]int)}
	for _, end := range r.matchName(production, r.tokenLevel(toks), 0) {
		if end == len(toks) {
			return true, nil
		}
	}
	return false, nil
}

type memoKey struct {
	name    string
	input   string
	lexical bool
	start   int
}

// recognizer computes, for an expression and a start position, every
// position a match can end at. Token-level input items are whole tokens and
// lexical input items are the runes of one word.
type recognizer struct {
	grammar ebnf.Grammar
	memo    map[memoKey][]int
}

type input struct {
	key     string
	items   []string
	lexical bool
}

func (r *recognizer) tokenLevel(toks []string) input {
	return input{key: strings.Join(toks, "\x00"), items: toks}
}

func runes(word string) input {
	var items []string
	for _, ch := range word {
		items = append(items, string(ch))
	}
	return input{key: word, items: items, lexical: true}
}

func isLexical(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}

func (r *recognizer) matchName(name string, in input, start int) []int {
	key := memoKey{name: name, input: in.key, lexical: in.lexical, start: start}
	if ends, ok := r.memo[key]; ok {
		return ends
	}
	// The grammar has no left recursion, so an in-progress entry is never
	// consulted.
	r.memo[key] = nil

	prod := r.grammar[name]
	var ends []int
	switch {
	case prod == nil || prod.Expr == nil:
	case isLexical(name) && !in.lexical:
		// A lexical production consumes exactly one word token.
		if start < len(in.items) {
			word := runes(in.items[start])
			for _, end := range r.matchName(name, word, 0) {
				if end == len(word.items) {
					ends = []int{start + 1}
					break
				}
			}
		}
	default:
		ends = r.match(prod.Expr, in, []int{start})
	}
	r.memo[key] = ends
	return ends
}

func (r *recognizer) match(expr ebnf.Expression, in input, starts []int) []int {
	if len(starts) == 0 {
		return nil
	}

	switch e := expr.(type) {
	case nil:
		return starts
	case ebnf.Sequence:
		for _, part := range e {
			starts = r.match(part, in, starts)
		}
		return starts
	case ebnf.Alternative:
		var ends []int
		for _, alt := range e {
			ends = append(ends, r.match(alt, in, starts)...)
		}
		return uniq(ends)
	case *ebnf.Group:
		return r.match(e.Body, in, starts)
	case *ebnf.Option:
		return uniq(append(append([]int(nil), starts...), r.match(e.Body, in, starts)...))
	case *ebnf.Repetition:
		seen := append([]int(nil), starts...)
		frontier := starts
		for len(frontier) > 0 {
			var next []int
			for _, end := range r.match(e.Body, in, frontier) {
				if !contains(seen, end) {
					seen = append(seen, end)
					next = append(next, end)
				}
			}
			frontier = next
		}
		return uniq(seen)
	case *ebnf.Token:
		var ends []int
		for _, start := range starts {
			if start < len(in.items) && in.items[start] == e.String {
				ends = append(ends, start+1)
			}
		}
		return uniq(ends)
	case *ebnf.Range:
		var ends []int
		lo, hi := firstRune(e.Begin.String), firstRune(e.End.String)
		for _, start := range starts {
			if start >= len(in.items) {
				continue
			}
			if ch := firstRune(in.items[start]); ch >= lo && ch <= hi {
				ends = append(ends, start+1)
			}
		}
		return uniq(ends)
	case *ebnf.Name:
		var ends []int
		for _, start := range starts {
			ends = append(ends, r.matchName(e.String, in, start)...)
		}
		return uniq(ends)
	}
	return nil
}

func firstRune(s string) rune {
	for _, ch := range s {
		return ch
	}
	return -1
}

func contains(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

func uniq(list []int) []int {
	if len(list) < 2 {
		return list
	}
	sort.Ints(list)
	out := list[:1]
	for _, v := range list[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
