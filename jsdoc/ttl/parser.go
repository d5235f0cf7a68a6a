package ttl

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/jsdoc/token"
	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
	"github.com/dhamidi/closuredoc/source"
)

// Parser reads one transformation expression from a comment token stream.
// Line breaks and the "*" starting a continuation line are skipped between
// tokens.
type Parser struct {
	s        *token.Stream
	r        diag.Reporter
	typeOpts []typeexpr.Option
	end      token.Cursor
	errors   int
}

type Option func(*Parser)

// WithTypeOptions sets the options used to parse typeExpr arguments.
func WithTypeOptions(opts ...typeexpr.Option) Option {
	return func(p *Parser) {
		p.typeOpts = opts
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

// ParseString parses a transformation expression given without delimiters.
func ParseString(text string, r diag.Reporter, opts ...Option) Node {
	s := token.NewStream(source.Source{Text: text + " =:"})
	return NewParser(s, r, opts...).Parse()
}

// Parse parses from just after ":=" through the closing "=:". On success
// and after a syntax error alike the stream is left after "=:". When no
// "=:" follows, the stream is not moved.
func (p *Parser) Parse() Node {
	start := p.s.Cursor()
	end, ok := p.findDelimiter()
	if !ok {
		p.report(p.s.Peek().Span, diag.MsgTTLMissingDelimiter)
		return nil
	}
	p.end = end
	defer p.s.Seek(end + 2)

	p.skipEOLs()
	if p.s.Cursor() >= end {
		p.s.Seek(start)
		p.report(p.s.Peek().Span, diag.MsgTTLExpressionMissing)
		return nil
	}

	tok := p.next()
	mark := p.errors
	n := p.parseExpression(tok)
	if n == nil || IsBoolean(n) {
		if p.errors == mark {
			p.report(tok.Span, diag.MsgTTLInvalidTransform)
		}
		return nil
	}
	p.skipEOLs()
	if p.s.Cursor() < end {
		p.report(p.s.Peek().Span, diag.MsgTTLInvalidTransform)
		return nil
	}
	return n
}

// findDelimiter locates the "=" of the closing "=:" pair.
func (p *Parser) findDelimiter() (token.Cursor, bool) {
	for c := p.s.Cursor(); ; c++ {
		tok := p.s.At(c)
		if tok.Kind.IsEnd() {
			return 0, false
		}
		if tok.Kind != token.Equals {
			continue
		}
		if next := p.s.At(c + 1); next.Kind == token.Colon && next.Span.Start.Offset == tok.Span.End.Offset {
			return c, true
		}
	}
}

func (p *Parser) report(at source.Span, msg string) {
	p.errors++
	p.r.Report(diag.Diagnostic{
		Severity: diag.SevError,
		Category: diag.CatType,
		Message:  msg,
		File:     p.s.Source().File,
		Span:     at,
	})
}

func (p *Parser) skipEOLs() {
	for p.s.Cursor() < p.end && p.s.Match(token.EOL, token.Star) {
		p.s.Next()
	}
}

func (p *Parser) peek() token.Token {
	p.skipEOLs()
	if p.s.Cursor() >= p.end {
		return p.s.At(p.end)
	}
	return p.s.Peek()
}

// next returns the next significant token. At the closing delimiter it
// returns the "=" without consuming it.
func (p *Parser) next() token.Token {
	tok := p.peek()
	if p.s.Cursor() < p.end {
		p.s.Next()
	}
	return tok
}

func (p *Parser) peekCall() bool {
	return p.peek().Kind == token.LeftParen
}

func (p *Parser) peekOr() bool {
	if p.peek().Kind != token.Pipe {
		return false
	}
	first, second := p.s.Peek(), p.s.At(p.s.Cursor()+1)
	return second.Kind == token.Pipe && second.Span.Start.Offset == first.Span.End.Offset
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func isQuoted(tok token.Token) bool {
	return tok.Kind == token.String && (strings.HasPrefix(tok.Text, "'") || strings.HasPrefix(tok.Text, `"`))
}

// parseExpression parses a name, a literal or a keyword call. Failures that
// are not reported here are left for the caller to describe.
func (p *Parser) parseExpression(tok token.Token) Node {
	if tok.Kind != token.String {
		return nil
	}
	switch {
	case isQuoted(tok):
		return p.parseString(tok)
	case isIdent(tok.Text) && p.peekCall():
		return p.parseCall(tok)
	case isIdent(tok.Text):
		return &TypeName{Name: tok.Text}
	}
	return nil
}

// typeArg parses an expression that must denote a type.
func (p *Parser) typeArg(tok token.Token, context string) Node {
	n := p.parseExpression(tok)
	if n == nil || IsBoolean(n) {
		p.report(tok.Span, diag.TTLInvalidInside(context))
		return nil
	}
	return n
}

// parseString reads a quoted literal. Literals holding punctuation span
// several tokens, so the value is taken from the raw comment text.
func (p *Parser) parseString(open token.Token) Node {
	quote := open.Text[:1]
	if len(open.Text) >= 2 && strings.HasSuffix(open.Text, quote) {
		return &StringLit{Value: open.Text[1 : len(open.Text)-1]}
	}
	for p.s.Cursor() < p.end {
		tok := p.s.Next()
		if tok.Kind == token.EOL || tok.Kind.IsEnd() {
			break
		}
		if strings.HasSuffix(tok.Text, quote) {
			return &StringLit{Value: p.s.Raw(open.Span.Start.Offset+1, tok.Span.End.Offset-1)}
		}
	}
	p.report(open.Span, diag.MsgTTLInvalidString)
	return nil
}

// countArgs counts the top-level arguments between the "(" at the cursor
// and its matching ")", without consuming anything.
func (p *Parser) countArgs() (int, bool) {
	depth, count := 0, 0
	empty := true
	quote := ""
	for c := p.s.Cursor(); c < p.end; c++ {
		tok := p.s.At(c)
		if quote != "" {
			if strings.HasSuffix(tok.Text, quote) {
				quote = ""
			}
			continue
		}
		if isQuoted(tok) {
			empty = false
			if q := tok.Text[:1]; len(tok.Text) < 2 || !strings.HasSuffix(tok.Text, q) {
				quote = q
			}
			continue
		}
		switch tok.Kind {
		case token.LeftParen, token.LeftCurly, token.LeftSquare:
			depth++
			if depth > 1 {
				empty = false
			}
		case token.RightParen, token.RightCurly, token.RightSquare:
			depth--
			if depth == 0 {
				if !empty {
					count++
				}
				return count, true
			}
		case token.Comma:
			if depth == 1 {
				count++
			}
		case token.EOL, token.Star:
		default:
			empty = false
		}
	}
	return 0, false
}

func (p *Parser) parseCall(name token.Token) Node {
	kw, ok := Lookup(name.Text)
	if !ok {
		return nil
	}
	count, ok := p.countArgs()
	if !ok {
		p.report(name.Span, diag.MsgMissingRP)
		return nil
	}
	switch {
	case count < kw.Min:
		p.report(name.Span, diag.TTLMissingParam(kw.Name))
		return nil
	case kw.Max != Variadic && count > kw.Max:
		p.report(name.Span, diag.TTLExtraParam(kw.Name))
		return nil
	}

	p.next()
	args, ok := p.parseArgs(kw, count)
	if !ok {
		return nil
	}

	switch {
	case kw.Op == OpCond:
		return &CondOp{Pred: args[0], Then: args[1], Else: args[2]}
	case kw.Op == OpUnion:
		return &UnionOp{Alts: args}
	case kw.IsPredicate():
		return &BoolPred{Op: kw.Op, Args: args}
	}
	return &NamedOp{Op: kw.Op, Args: args}
}

// parseArgs parses count comma separated arguments and the closing ")".
func (p *Parser) parseArgs(kw Keyword, count int) ([]Node, bool) {
	args := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if i > 0 {
			if tok := p.next(); tok.Kind != token.Comma {
				p.report(tok.Span, diag.TTLInvalidInside(context(kw)))
				return nil, false
			}
		}
		arg := p.parseArg(kw, i, p.next())
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
	}
	if tok := p.next(); tok.Kind != token.RightParen {
		p.report(tok.Span, diag.TTLInvalidInside(context(kw)))
		return nil, false
	}
	return args, true
}

func context(kw Keyword) string {
	switch kw.Op {
	case OpCond:
		return "conditional"
	case OpUnion:
		return "union type"
	case OpType, OpRawTypeOf, OpTemplateTypeOf:
		return "template type operation"
	case OpRecord:
		return "record type"
	}
	if kw.IsPredicate() {
		return "boolean"
	}
	return kw.Name
}

func (p *Parser) parseArg(kw Keyword, i int, tok token.Token) Node {
	switch kw.Op {
	case OpCond:
		if i == 0 {
			mark := p.errors
			pred := p.parseBoolean(tok, false)
			if pred == nil && p.errors == mark {
				p.report(tok.Span, diag.MsgTTLInvalidPredicate)
			}
			if pred == nil {
				p.report(tok.Span, diag.TTLInvalidInside(context(kw)))
			}
			return pred
		}
	case OpTemplateTypeOf:
		if i == 1 {
			n, err := strconv.Atoi(tok.Text)
			if tok.Kind != token.String || err != nil || n < 0 {
				p.report(tok.Span, diag.MsgTTLInvalidIndex)
				return nil
			}
			return &Number{Value: n}
		}
	case OpMapUnion:
		if i == 1 {
			return p.parseMapFunc(tok, 1)
		}
	case OpMapRecord:
		if i == 1 {
			return p.parseMapFunc(tok, 2)
		}
	case OpRecord:
		if tok.Kind == token.LeftCurly {
			return p.parseRecordLit(tok)
		}
		n := p.parseExpression(tok)
		if n == nil || IsBoolean(n) {
			p.report(tok.Span, diag.MsgTTLInvalidRecord)
			return nil
		}
		return n
	case OpTypeExpr:
		return p.parseTypeLit(tok)
	case OpPrintType:
		if i == 0 {
			return p.stringArg(tok, diag.MsgTTLInvalidMessage)
		}
	case OpPropType:
		if i == 0 {
			return p.stringArg(tok, diag.MsgTTLInvalidPropertyName)
		}
	case OpTypeOfVar:
		return p.stringArg(tok, diag.MsgTTLInvalidName)
	case OpIsDefined:
		if tok.Kind != token.String || !isIdent(tok.Text) || p.peekCall() {
			p.report(tok.Span, diag.MsgTTLInvalidName)
			return nil
		}
		return &TypeName{Name: tok.Text}
	case OpStrEq:
		if isQuoted(tok) {
			return p.parseString(tok)
		}
		if tok.Kind != token.String || !isIdent(tok.Text) || p.peekCall() {
			p.report(tok.Span, diag.MsgTTLInvalidString)
			return nil
		}
		return &TypeName{Name: tok.Text}
	}
	return p.typeArg(tok, context(kw))
}

func (p *Parser) stringArg(tok token.Token, msg string) Node {
	if !isQuoted(tok) {
		p.report(tok.Span, msg)
		return nil
	}
	return p.parseString(tok)
}

func (p *Parser) parseTypeLit(tok token.Token) Node {
	if !isQuoted(tok) {
		p.report(tok.Span, diag.MsgTTLInvalidNativeType)
		return nil
	}
	lit, ok := p.parseString(tok).(*StringLit)
	if !ok {
		return nil
	}
	src := p.s.Source()
	start := tok.Span.Start
	t := typeexpr.ParseSource(source.Source{
		File:   src.File,
		Text:   lit.Value,
		Offset: start.Offset + 1,
		Line:   start.Line,
		Column: start.Column + 1,
	}, diag.NopReporter{}, p.typeOpts...)
	if t == nil {
		p.report(tok.Span, diag.MsgTTLInvalidNativeType)
		return nil
	}
	return &TypeLit{Source: lit.Value, Type: t}
}

func (p *Parser) parseMapFunc(tok token.Token, want int) Node {
	if tok.Kind != token.LeftParen {
		p.report(tok.Span, diag.MsgTTLInvalidMapFunction)
		return nil
	}
	var params []string
	for {
		t := p.next()
		if t.Kind == token.RightParen && len(params) == 0 {
			break
		}
		if t.Kind != token.String || !isIdent(t.Text) {
			p.report(t.Span, diag.MsgTTLInvalidMapFunction)
			return nil
		}
		params = append(params, t.Text)
		t = p.next()
		if t.Kind == token.RightParen {
			break
		}
		if t.Kind != token.Comma {
			p.report(t.Span, diag.MsgTTLInvalidMapFunction)
			return nil
		}
	}
	switch {
	case len(params) < want:
		p.report(tok.Span, diag.TTLMissingParam("map function"))
		return nil
	case len(params) > want:
		p.report(tok.Span, diag.TTLExtraParam("map function"))
		return nil
	}

	arrow := p.next()
	if gt := p.s.Peek(); arrow.Kind != token.Equals || gt.Kind != token.RightAngle ||
		gt.Span.Start.Offset != arrow.Span.End.Offset {
		p.report(arrow.Span, diag.MsgTTLInvalidMapFunction)
		return nil
	}
	p.s.Next()

	body := p.typeArg(p.next(), "map function")
	if body == nil {
		return nil
	}
	return &MapFunc{Params: params, Body: body}
}

func (p *Parser) parseRecordLit(open token.Token) Node {
	rec := &RecordLit{}
	if p.peek().Kind == token.RightCurly {
		p.report(open.Span, diag.MsgTTLEmptyRecord)
		return nil
	}
	for {
		prop, ok := p.parseProp(p.next())
		if !ok {
			return nil
		}
		rec.Props = append(rec.Props, prop)
		tok := p.next()
		if tok.Kind == token.RightCurly {
			return rec
		}
		if tok.Kind != token.Comma {
			p.report(tok.Span, diag.MsgMissingRC)
			return nil
		}
	}
}

func (p *Parser) parseProp(tok token.Token) (Prop, bool) {
	var prop Prop
	switch {
	case tok.Kind == token.LeftSquare:
		name := p.next()
		if name.Kind != token.String || !isIdent(name.Text) || p.next().Kind != token.RightSquare {
			p.report(name.Span, diag.MsgTTLInvalidPropertyName)
			return prop, false
		}
		prop.Key, prop.Computed = name.Text, true
	case tok.Kind == token.String && isIdent(tok.Text):
		prop.Key = tok.Text
	default:
		p.report(tok.Span, diag.MsgTTLInvalidPropertyName)
		return prop, false
	}

	if colon := p.next(); colon.Kind != token.Colon {
		p.report(tok.Span, diag.MsgTTLPropertyMissingType)
		return prop, false
	}
	value := p.typeArg(p.next(), "record type")
	if value == nil {
		return prop, false
	}
	prop.Value = value
	return prop, true
}

// parseBoolean parses a disjunction of conjunctions of possibly negated
// predicates. operand is set when the expression is itself an argument of
// a boolean operator.
func (p *Parser) parseBoolean(tok token.Token, operand bool) Node {
	left := p.parseConjunction(tok, operand)
	for left != nil && p.peekOr() {
		p.next()
		p.next()
		right := p.parseConjunction(p.next(), true)
		if right == nil {
			return nil
		}
		left = &BoolOp{Kind: Or, Args: []Node{left, right}}
	}
	return left
}

func (p *Parser) parseConjunction(tok token.Token, operand bool) Node {
	left := p.parseNegation(tok, operand)
	for left != nil && p.peek().Kind == token.AndAnd {
		p.next()
		right := p.parseNegation(p.next(), true)
		if right == nil {
			return nil
		}
		left = &BoolOp{Kind: And, Args: []Node{left, right}}
	}
	return left
}

func (p *Parser) parseNegation(tok token.Token, operand bool) Node {
	switch tok.Kind {
	case token.Bang:
		inner := p.parseNegation(p.next(), true)
		if inner == nil {
			return nil
		}
		return &BoolOp{Kind: Not, Args: []Node{inner}}
	case token.LeftParen:
		inner := p.parseBoolean(p.next(), operand)
		if inner == nil {
			return nil
		}
		if closing := p.next(); closing.Kind != token.RightParen {
			p.report(closing.Span, diag.MsgMissingRP)
			return nil
		}
		return inner
	}

	mark := p.errors
	n := p.parseExpression(tok)
	if n != nil && IsBoolean(n) {
		return n
	}
	if p.errors == mark {
		msg := diag.MsgTTLInvalidPredicate
		if operand || p.peek().Kind == token.AndAnd || p.peekOr() {
			msg = diag.MsgTTLInvalidBoolean
		}
		p.report(tok.Span, msg)
	}
	return nil
}
