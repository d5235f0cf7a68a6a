package typeexpr

import (
	"strings"

	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/jsdoc/token"
	"github.com/dhamidi/closuredoc/source"
)

// Parser reads type expressions from a token stream shared with its caller.
// Every method takes the first token of the construct, already consumed, and
// leaves the stream on the first token after it. On a syntax error one
// diagnostic is reported and nil is returned.
type Parser struct {
	s            *token.Stream
	r            diag.Reporter
	legacyArrays bool
}

type Option func(*Parser)

// WithLegacyArrays accepts the bracket array syntax [T, U].
func WithLegacyArrays(enabled bool) Option {
	return func(p *Parser) {
		p.legacyArrays = enabled
	}
}

func NewParser(s *token.Stream, r diag.Reporter, opts ...Option) *Parser {
	if r == nil {
		r = diag.NopReporter{}
	}
	p := &Parser{s: s, r: r}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a type expression given as a plain string, outside of any
// comment. Trailing tokens are a syntax error.
func Parse(text string, r diag.Reporter, opts ...Option) Type {
	return ParseSource(source.Source{Text: text}, r, opts...)
}

// ParseSource is Parse with an explicit origin for diagnostics.
func ParseSource(src source.Source, r diag.Reporter, opts ...Option) Type {
	s := token.NewStream(src)
	p := NewParser(s, r, opts...)
	t := p.ParseTopLevel(s.Next())
	if t == nil {
		return nil
	}
	if !s.Match(token.EOF) {
		return p.syntaxError()
	}
	return t
}

func (p *Parser) report(at source.Span, msg string) {
	p.r.Report(diag.Diagnostic{
		Severity: diag.SevError,
		Category: diag.CatType,
		Message:  msg,
		File:     p.s.Source().File,
		Span:     at,
	})
}

// typeError reports msg at the next unread token and returns nil.
func (p *Parser) typeError(msg string) Type {
	p.report(p.s.Peek().Span, msg)
	return nil
}

func (p *Parser) syntaxError() Type {
	return p.typeError(diag.MsgTypeSyntax)
}

// ParseAnnotation parses '{' TopLevel '}' or a bare type expression. A
// missing closing brace is reported but the type is kept.
func (p *Parser) ParseAnnotation(tok token.Token) Type {
	if tok.Kind != token.LeftCurly {
		return p.ParseTypeExpression(tok)
	}
	p.s.SkipEOLs()
	t := p.ParseTopLevel(p.s.Next())
	if t != nil {
		p.closeCurly()
	}
	return t
}

// ParseParam parses the type of a @param tag written without braces, such
// as "...number" or "string=".
func ParseParam(text string, r diag.Reporter, opts ...Option) Type {
	// The added brace sits before the first column so positions still
	// refer to text.
	s := token.NewStream(source.Source{Text: "{" + text + "}", Offset: -1, Column: -1})
	p := NewParser(s, r, opts...)
	t := p.ParseParamAnnotation(s.Next())
	if t == nil {
		return nil
	}
	if !s.Match(token.EOF) {
		return p.syntaxError()
	}
	return t
}

// ParseParamAnnotation parses the braced type of a @param tag, which may be
// variadic ({...T}) or optional ({T=}).
func (p *Parser) ParseParamAnnotation(tok token.Token) Type {
	if tok.Kind != token.LeftCurly {
		return p.ParseAnnotation(tok)
	}
	p.s.SkipEOLs()
	tok = p.s.Next()
	rest := false
	if tok.Kind == token.Ellipsis {
		tok = p.s.Next()
		if tok.Kind == token.RightCurly {
			return &VarArgs{}
		}
		rest = true
	}

	t := p.ParseTopLevel(tok)
	if t == nil {
		return nil
	}
	p.s.SkipEOLs()
	if rest {
		t = &VarArgs{Inner: t}
	} else if p.s.Match(token.Equals) {
		p.s.Next()
		p.s.SkipEOLs()
		t = &Optional{Inner: t}
	}
	p.closeCurly()
	return t
}

// ParseTypeNameAnnotation parses TypeName or '{' TypeName '}'.
func (p *Parser) ParseTypeNameAnnotation(tok token.Token) Type {
	if tok.Kind != token.LeftCurly {
		return p.ParseTypeName(tok)
	}
	p.s.SkipEOLs()
	t := p.ParseTypeName(p.s.Next())
	if t != nil {
		p.closeCurly()
	}
	return t
}

func (p *Parser) closeCurly() {
	p.s.SkipEOLs()
	if !p.s.Match(token.RightCurly) {
		p.typeError(diag.MsgMissingRC)
		return
	}
	p.s.Next()
}

// ParseTopLevel parses a type expression optionally followed by "|"
// alternatives.
func (p *Parser) ParseTopLevel(tok token.Token) Type {
	t := p.ParseTypeExpression(tok)
	if t == nil || !p.s.Match(token.Pipe) {
		return t
	}
	p.s.Next()
	if p.s.Match(token.Pipe) {
		p.s.Next()
	}
	p.s.SkipEOLs()
	return p.parseUnion(p.s.Next(), t)
}

// ParseTypeExpression handles the prefix and postfix "?" and "!"
// modifiers. A lone "?" followed by a closing token is the unknown type.
func (p *Parser) ParseTypeExpression(tok token.Token) Type {
	switch tok.Kind {
	case token.QMark:
		if p.s.Match(token.Comma, token.Equals, token.RightSquare, token.RightCurly,
			token.RightParen, token.Pipe, token.RightAngle, token.EOC, token.EOF) {
			return &Unknown{}
		}
		inner := p.parseBasic(p.s.Next())
		if inner == nil {
			return nil
		}
		return MakeNullable(inner)
	case token.Bang:
		inner := p.parseBasic(p.s.Next())
		if inner == nil {
			return nil
		}
		return &NonNull{Inner: inner}
	}

	t := p.parseBasic(tok)
	if t == nil {
		return nil
	}
	switch {
	case p.s.Match(token.QMark):
		p.s.Next()
		return MakeNullable(t)
	case p.s.Match(token.Bang):
		p.s.Next()
		return &NonNull{Inner: t}
	}
	return t
}

func (p *Parser) parseBasic(tok token.Token) Type {
	switch tok.Kind {
	case token.Star:
		return &Any{}
	case token.LeftCurly:
		p.s.SkipEOLs()
		return p.parseRecord(p.s.Next())
	case token.LeftParen:
		p.s.SkipEOLs()
		return p.parseUnion(p.s.Next(), nil)
	case token.LeftSquare:
		if p.legacyArrays {
			p.s.SkipEOLs()
			return p.parseArray(p.s.Next())
		}
	case token.String:
		switch tok.Text {
		case "function":
			p.s.SkipEOLs()
			return p.parseFunction(p.s.Next())
		case "null", "Null":
			return &Null{}
		case "undefined", "Undefined", "void":
			return &Void{}
		}
		return p.ParseTypeName(tok)
	}
	p.s.Unread()
	return p.syntaxError()
}

// ParseTypeName parses a dotted name with optional type arguments. A name
// ending in "." continues on the next line.
func (p *Parser) ParseTypeName(tok token.Token) Type {
	if tok.Kind != token.String {
		p.s.Unread()
		return p.syntaxError()
	}

	name := tok.Text
	for p.s.Match(token.EOL) && strings.HasSuffix(name, ".") {
		p.s.SkipEOLs()
		if p.s.Match(token.String) {
			name += p.s.Next().Text
		}
	}

	named := &Named{Name: name}
	if !p.s.Match(token.LeftAngle) {
		return named
	}
	p.s.Next()
	p.s.SkipEOLs()
	args := p.parseTypeList(p.s.Next())
	if args == nil {
		return nil
	}
	p.s.SkipEOLs()
	if !p.s.Match(token.RightAngle) {
		return p.typeError(diag.MsgMissingGT)
	}
	p.s.Next()
	named.Args = args
	return named
}

func (p *Parser) parseTypeList(tok token.Token) []Type {
	t := p.ParseTopLevel(tok)
	if t == nil {
		return nil
	}
	list := []Type{t}
	for p.s.Match(token.Comma) {
		p.s.Next()
		p.s.SkipEOLs()
		t = p.ParseTopLevel(p.s.Next())
		if t == nil {
			return nil
		}
		list = append(list, t)
	}
	return list
}

// parseUnion parses alternatives separated by "|", "||" or, inside
// parentheses, ",". A nil first means the opening parenthesis was consumed
// and a closing one is required.
func (p *Parser) parseUnion(tok token.Token, first Type) Type {
	inParens := first == nil
	var alts []Type
	if first != nil {
		alts = append(alts, first)
	}

	for {
		t := p.ParseTypeExpression(tok)
		if t == nil {
			return nil
		}
		alts = append(alts, t)

		if !p.s.Match(token.Pipe) && !(inParens && p.s.Match(token.Comma)) {
			break
		}
		if sep := p.s.Next(); sep.Kind == token.Pipe && p.s.Match(token.Pipe) {
			p.s.Next()
		}
		p.s.SkipEOLs()
		tok = p.s.Next()
	}

	if inParens {
		p.s.SkipEOLs()
		if !p.s.Match(token.RightParen) {
			return p.typeError(diag.MsgMissingRP)
		}
		p.s.Next()
	}
	return NewUnion(alts...)
}

func (p *Parser) parseRecord(tok token.Token) Type {
	rec := &Record{}
	if tok.Kind == token.RightCurly {
		return rec
	}

	seen := make(map[string]bool)
	for {
		if tok.Kind != token.String {
			p.s.Unread()
			return p.syntaxError()
		}
		name := tok.Text
		var fieldType Type = &Unknown{}

		p.s.SkipEOLs()
		if p.s.Match(token.Colon) {
			p.s.Next()
			p.s.SkipEOLs()
			fieldType = p.ParseTypeExpression(p.s.Next())
			if fieldType == nil {
				return nil
			}
		}
		if seen[name] {
			p.report(tok.Span, diag.DuplicateRecordField(name))
			return nil
		}
		seen[name] = true
		rec.Fields = append(rec.Fields, Field{Name: name, Type: fieldType})

		p.s.SkipEOLs()
		if !p.s.Match(token.Comma) {
			break
		}
		p.s.Next()
		p.s.SkipEOLs()
		tok = p.s.Next()
	}

	p.s.SkipEOLs()
	if !p.s.Match(token.RightCurly) {
		return p.typeError(diag.MsgMissingRC)
	}
	p.s.Next()
	return rec
}

func (p *Parser) parseArray(tok token.Token) Type {
	arr := &ArrayLiteral{}
	if tok.Kind == token.RightSquare {
		return arr
	}
	elems := p.parseTypeList(tok)
	if elems == nil {
		return nil
	}
	p.s.SkipEOLs()
	if !p.s.Match(token.RightSquare) {
		return p.typeError(diag.MsgMissingRB)
	}
	p.s.Next()
	arr.Elems = elems
	return arr
}

func isContext(tok token.Token) bool {
	return tok.Kind == token.String && (tok.Text == "this" || tok.Text == "new")
}

func (p *Parser) parseFunction(tok token.Token) Type {
	if tok.Kind != token.LeftParen {
		p.s.Unread()
		return p.typeError(diag.MsgMissingLP)
	}

	fn := &Function{}
	p.s.SkipEOLs()
	if !p.s.Match(token.RightParen) {
		tok = p.s.Next()
		hasParams := true

		if isContext(tok) {
			if !p.s.Match(token.Colon) {
				return p.typeError(diag.MsgMissingColon)
			}
			p.s.Next()
			p.s.SkipEOLs()
			ctx := p.parseContextType(p.s.Next())
			if ctx == nil {
				return nil
			}
			fn.This = ctx
			fn.IsNew = tok.Text == "new"

			if p.s.Match(token.Comma) {
				p.s.Next()
				p.s.SkipEOLs()
				tok = p.s.Next()
			} else {
				hasParams = false
			}
		}

		if hasParams {
			if fn.This != nil && isContext(tok) && p.s.Match(token.Colon) {
				p.s.Unread()
				return p.typeError(diag.MsgFunctionContexts)
			}
			params, ok := p.parseParams(tok)
			if !ok {
				return nil
			}
			fn.Params = params
		}
	}

	p.s.SkipEOLs()
	if !p.s.Match(token.RightParen) {
		return p.typeError(diag.MsgMissingRP)
	}
	p.s.Next()

	result, ok := p.parseResult()
	if !ok {
		return nil
	}
	fn.Result = result
	return fn
}

func (p *Parser) parseContextType(tok token.Token) Type {
	if tok.Kind == token.QMark {
		return &Unknown{}
	}
	return p.parseBasic(tok)
}

func (p *Parser) parseParams(tok token.Token) ([]Type, bool) {
	var params []Type
	varArgs := false
	for {
		var param Type
		if tok.Kind == token.Ellipsis {
			varArgs = true
			p.s.SkipEOLs()
			if p.s.Match(token.RightParen) {
				param = &VarArgs{}
			} else {
				brackets := p.s.Match(token.LeftSquare)
				if brackets {
					p.s.Next()
				}
				p.s.SkipEOLs()
				inner := p.ParseTypeExpression(p.s.Next())
				if inner == nil {
					return nil, false
				}
				p.s.SkipEOLs()
				if brackets {
					if !p.s.Match(token.RightSquare) {
						p.typeError(diag.MsgMissingRB)
						return nil, false
					}
					p.s.Next()
				} else if p.s.Match(token.RightSquare) {
					p.typeError(diag.MsgMissingLB)
					return nil, false
				}
				param = &VarArgs{Inner: inner}
			}
		} else {
			param = p.ParseTypeExpression(tok)
			if param == nil {
				return nil, false
			}
			if p.s.Match(token.Equals) {
				p.s.Next()
				param = &Optional{Inner: param}
			}
		}
		params = append(params, param)

		if varArgs || !p.s.Match(token.Comma) {
			break
		}
		p.s.Next()
		p.s.SkipEOLs()
		tok = p.s.Next()
	}

	if varArgs && p.s.Match(token.Comma) {
		p.typeError(diag.MsgVarArgsNotLast)
		return nil, false
	}
	return params, true
}

// parseResult parses an optional ": T" after a parameter list. A nil type
// with ok set means no result type was written.
func (p *Parser) parseResult() (Type, bool) {
	p.s.SkipEOLs()
	if !p.s.Match(token.Colon) {
		return nil, true
	}
	p.s.Next()
	p.s.SkipEOLs()
	if tok := p.s.Peek(); tok.Kind == token.String && tok.Text == "void" {
		p.s.Next()
		return &Void{}, true
	}
	t := p.ParseTypeExpression(p.s.Next())
	if t == nil {
		return nil, false
	}
	return t, true
}
