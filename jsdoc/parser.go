package jsdoc

import (
	"strings"
	"unicode"

	"github.com/dhamidi/closuredoc/config"
	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/jsdoc/token"
	"github.com/dhamidi/closuredoc/jsdoc/ttl"
	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
	"github.com/dhamidi/closuredoc/source"
)

type state uint8

const (
	// searchingAnnotation: an annotation token is dispatched.
	searchingAnnotation state = iota
	// searchingNewline: the rest of the line is skipped.
	searchingNewline
)

// event is what a handler extracted for one tag occurrence.
type event struct {
	tag       Tag
	at        source.Span
	typ       typeexpr.Type
	name      string
	names     []string
	spans     []source.Span
	text      string
	transform ttl.Node
}

type handler func(p *parser, at token.Token, tag Tag) token.Token

var handlers = [...]handler{
	TagAuthor:                (*parser).parseAuthor,
	TagConsistentIDGenerator: (*parser).parseFlag,
	TagConst:                 (*parser).parseTypeTag,
	TagConstructor:           (*parser).parseFlag,
	TagDefine:                (*parser).parseTypeTag,
	TagDeprecated:            (*parser).parseDeprecated,
	TagDesc:                  (*parser).parseText,
	TagDict:                  (*parser).parseFlag,
	TagDisposes:              (*parser).parseDisposes,
	TagEnum:                  (*parser).parseEnum,
	TagExport:                (*parser).parseTypeTag,
	TagExpose:                (*parser).parseFlag,
	TagExtends:               (*parser).parseExtends,
	TagExterns:               (*parser).parseFlag,
	TagFileOverview:          (*parser).parseFileOverview,
	TagHidden:                (*parser).parseFlag,
	TagIDGenerator:           (*parser).parseIDGenerator,
	TagImplements:            (*parser).parseExtends,
	TagImplicitCast:          (*parser).parseFlag,
	TagInheritDoc:            (*parser).parseFlag,
	TagInterface:             (*parser).parseFlag,
	TagJaggerInject:          (*parser).parseFlag,
	TagJaggerModule:          (*parser).parseFlag,
	TagJaggerProvide:         (*parser).parseFlag,
	TagJaggerProvidePromise:  (*parser).parseFlag,
	TagLends:                 (*parser).parseLends,
	TagLicense:               (*parser).parseLicense,
	TagMeaning:               (*parser).parseText,
	TagModifies:              (*parser).parseModifies,
	TagNgInject:              (*parser).parseFlag,
	TagNoAlias:               (*parser).parseFlag,
	TagNoCompile:             (*parser).parseFlag,
	TagNoSideEffects:         (*parser).parseFlag,
	TagNoTypeCheck:           (*parser).parseFlag,
	TagOverride:              (*parser).parseFlag,
	TagPackage:               (*parser).parseTypeTag,
	TagParam:                 (*parser).parseParam,
	TagPreserve:              (*parser).parseLicense,
	TagPreserveTry:           (*parser).parseFlag,
	TagPrivate:               (*parser).parseTypeTag,
	TagProtected:             (*parser).parseTypeTag,
	TagPublic:                (*parser).parseTypeTag,
	TagRecord:                (*parser).parseFlag,
	TagReturn:                (*parser).parseTypeTag,
	TagSee:                   (*parser).parseAuthor,
	TagStableIDGenerator:     (*parser).parseFlag,
	TagStruct:                (*parser).parseFlag,
	TagSuppress:              (*parser).parseSuppress,
	TagTemplate:              (*parser).parseTemplate,
	TagThis:                  (*parser).parseTypeTag,
	TagThrows:                (*parser).parseThrows,
	TagType:                  (*parser).parseTypeTag,
	TagTypedef:               (*parser).parseTypeTag,
	TagUnrestricted:          (*parser).parseFlag,
	TagVersion:               (*parser).parseVersion,
	TagWizaction:             (*parser).parseFlag,
	tagInformational:         (*parser).parseInformational,
}

// reporter adds file identity, severity and category to diagnostics.
type reporter struct {
	r    diag.Reporter
	file string
}

func (r reporter) report(sev diag.Severity, cat diag.Category, at source.Span, msg string) {
	r.r.Report(diag.Diagnostic{
		Severity: sev,
		Category: cat,
		Message:  msg,
		File:     r.file,
		Span:     at,
	})
}

func (r reporter) warning(at source.Span, msg string) {
	r.report(diag.SevWarning, diag.CatParser, at, msg)
}

func (r reporter) typeWarning(at source.Span, msg string) {
	r.report(diag.SevWarning, diag.CatType, at, msg)
}

func (r reporter) typeError(at source.Span, msg string) {
	r.report(diag.SevError, diag.CatType, at, msg)
}

type parser struct {
	reporter
	s     *token.Stream
	cfg   *config.Config
	types *typeexpr.Parser
	state state

	events  []event
	markers []Marker
	marker  int
	block   string
}

func newParser(src source.Source, r diag.Reporter, cfg *config.Config) *parser {
	if r == nil {
		r = diag.NopReporter{}
	}
	s := token.NewStream(src)
	return &parser{
		reporter: reporter{r: r, file: src.File},
		s:        s,
		cfg:      cfg,
		types:    typeexpr.NewParser(s, r, typeexpr.WithLegacyArrays(cfg.LanguageMode.LegacyArrays())),
		marker:   -1,
	}
}

func (p *parser) parse() *Info {
	p.state = searchingAnnotation
	p.s.SkipEOLs()
	tok := p.s.Next()
	if p.cfg.PreserveDescriptions {
		p.block, tok = p.blockDescription(tok)
	}

	for {
		switch tok.Kind {
		case token.Annotation:
			if p.state == searchingAnnotation {
				p.state = searchingNewline
				tok = p.annotation(tok)
			} else {
				tok = p.s.Next()
			}
		case token.EOC:
			return p.finish(tok)
		case token.EOF:
			p.warning(tok.Span, diag.MsgUnexpectedEOF)
			return p.finish(tok)
		case token.EOL:
			p.state = searchingAnnotation
			tok = p.s.Next()
		default:
			if tok.Kind == token.Star && p.state == searchingAnnotation {
				tok = p.s.Next()
			} else {
				p.state = searchingNewline
				tok = p.eatLine(p.s.Next())
			}
		}
	}
}

func (p *parser) finish(end token.Token) *Info {
	b := newBuilder(p.reporter, p.s.Source())
	for _, ev := range p.events {
		b.apply(ev)
	}
	info := b.finish(end)
	info.BlockDescription = p.block
	info.Markers = p.markers
	return info
}

func (p *parser) annotation(at token.Token) token.Token {
	tag, ok := LookupTag(at.Text)
	if !ok {
		if !p.cfg.IsAnnotation(at.Text) {
			p.warning(at.Span, diag.UnknownTag(at.Text))
			return p.s.Next()
		}
		tag = tagInformational
	}
	p.markers = append(p.markers, Marker{Annotation: Item{Text: at.Text, Span: at.Span}})
	p.marker = len(p.markers) - 1
	return handlers[tag](p, at, tag)
}

func (p *parser) emit(ev event) {
	p.events = append(p.events, ev)
}

// eatLine consumes tokens up to and including the end of the line tok is
// on. tok has already been consumed.
func (p *parser) eatLine(tok token.Token) token.Token {
	for tok.Kind != token.EOL && !tok.Kind.IsEnd() {
		tok = p.s.Next()
	}
	return tok
}

// eatLineUnlessAnnotation is eatLine, except that an annotation in tok is
// handed back to the main loop for dispatch.
func (p *parser) eatLineUnlessAnnotation(tok token.Token) token.Token {
	if tok.Kind == token.Annotation {
		p.state = searchingAnnotation
		return tok
	}
	return p.eatLine(tok)
}

func (p *parser) eatRest() token.Token {
	return p.eatLineUnlessAnnotation(p.s.Next())
}

func (p *parser) markText(text string, at source.Span) {
	if p.marker < 0 {
		return
	}
	p.markers[p.marker].Description = &Item{Text: text, Span: at}
}

func (p *parser) markName(tok token.Token) {
	if p.marker < 0 {
		return
	}
	p.markers[p.marker].Name = &Item{Text: tok.Text, Span: tok.Span}
}

func (p *parser) markType(t typeexpr.Type, at source.Span, brackets bool) {
	if t == nil || p.marker < 0 {
		return
	}
	p.markers[p.marker].Type = &TypeItem{Type: t, Span: at, Brackets: brackets}
}

// typeSpan covers a type annotation that started with first and whose last
// token has just been consumed.
func (p *parser) typeSpan(first token.Token) (source.Span, bool) {
	last := p.s.Last()
	brackets := first.Kind == token.LeftCurly
	end := last.Span.End
	if brackets && last.Kind == token.RightCurly {
		end = last.Span.Start
	}
	return source.Span{Start: first.Span.Start, End: end}, brackets
}

// parseTypeNode parses a braced or bare type starting at tok and records
// it on the current marker.
func (p *parser) parseTypeNode(tok token.Token) typeexpr.Type {
	t := p.types.ParseAnnotation(tok)
	span, brackets := p.typeSpan(tok)
	p.markType(t, span, brackets)
	return t
}

// description extracts a single-line description when descriptions are
// kept and no annotation follows on the same line.
func (p *parser) description(ev *event) token.Token {
	if !p.cfg.PreserveDescriptions || p.s.Match(token.Annotation) {
		p.emit(*ev)
		return p.eatRest()
	}
	text, next := p.multilineText(singleLine)
	ev.text = text
	p.emit(*ev)
	return next
}

func (p *parser) parseFlag(at token.Token, tag Tag) token.Token {
	p.emit(event{tag: tag, at: at.Span})
	return p.eatRest()
}

func (p *parser) parseInformational(at token.Token, tag Tag) token.Token {
	return p.eatRest()
}

// parseAuthor handles @author and @see, which take the rest of the line.
func (p *parser) parseAuthor(at token.Token, tag Tag) token.Token {
	if !p.cfg.PreserveDescriptions {
		return p.eatRest()
	}
	text, next := p.singleLineText()
	if text == "" {
		msg := diag.MsgAuthorMissing
		if tag == TagSee {
			msg = diag.MsgSeeMissing
		}
		p.warning(at.Span, msg)
		return next
	}
	p.emit(event{tag: tag, at: at.Span, text: text})
	return next
}

func (p *parser) parseVersion(at token.Token, tag Tag) token.Token {
	text, next := p.singleLineText()
	if text == "" {
		p.warning(at.Span, diag.MsgVersionMissing)
		return next
	}
	p.emit(event{tag: tag, at: at.Span, text: text})
	return next
}

func (p *parser) parseDeprecated(at token.Token, tag Tag) token.Token {
	text, next := p.multilineText(singleLine)
	p.emit(event{tag: tag, at: at.Span, text: text})
	return next
}

// parseText handles @desc and @meaning.
func (p *parser) parseText(at token.Token, tag Tag) token.Token {
	text, next := p.multilineText(singleLine)
	p.emit(event{tag: tag, at: at.Span, text: text})
	return next
}

func (p *parser) parseFileOverview(at token.Token, tag Tag) token.Token {
	ev := event{tag: tag, at: at.Span}
	var next token.Token
	if p.cfg.PreserveDescriptions {
		ev.text, next = p.multilineText(trimmed)
	} else {
		next = p.eatLine(p.s.Next())
	}
	p.emit(ev)
	return next
}

// parseLicense handles @license and @preserve, whose text is kept verbatim.
func (p *parser) parseLicense(at token.Token, tag Tag) token.Token {
	text, next := p.multilineText(preserved)
	if text != "" {
		p.emit(event{tag: tag, at: at.Span, text: text})
	}
	return next
}

func (p *parser) parseEnum(at token.Token, tag Tag) token.Token {
	tok := p.s.Next()
	var t typeexpr.Type
	if tok.Kind != token.EOL && !tok.Kind.IsEnd() {
		t = p.parseTypeNode(tok)
	}
	if t == nil {
		t = &typeexpr.Named{Name: "number"}
	}
	p.emit(event{tag: tag, at: at.Span, typ: t})
	if tok.Kind == token.EOL || tok.Kind.IsEnd() {
		return tok
	}
	return p.eatRest()
}

// parseExtends handles @extends and @implements: a type name, optionally
// in braces.
func (p *parser) parseExtends(at token.Token, tag Tag) token.Token {
	p.s.SkipEOLs()
	tok := p.s.Next()
	first := tok
	braced := tok.Kind == token.LeftCurly
	if braced {
		tok = p.s.Next()
	}
	if tok.Kind != token.String {
		p.typeError(tok.Span, diag.MsgNoTypeName)
		return p.eatLineUnlessAnnotation(tok)
	}

	t := p.types.ParseTypeName(tok)
	if t == nil {
		return p.eatRest()
	}
	p.markType(t, source.Span{Start: first.Span.Start, End: p.s.Last().Span.End}, braced)
	p.emit(event{tag: tag, at: at.Span, typ: &typeexpr.NonNull{Inner: t}})

	tok = p.s.Next()
	if braced {
		if tok.Kind != token.RightCurly {
			p.typeError(tok.Span, diag.MsgMissingRC)
		} else {
			tok = p.s.Next()
		}
	} else if tok.Kind != token.EOL && !tok.Kind.IsEnd() {
		p.typeError(tok.Span, diag.MsgEndAnnotationExpected)
	}
	return p.eatLineUnlessAnnotation(tok)
}

func (p *parser) parseLends(at token.Token, tag Tag) token.Token {
	p.s.SkipEOLs()
	braced := p.s.Match(token.LeftCurly)
	if braced {
		p.s.Next()
	}
	if p.s.Match(token.String) {
		tok := p.s.Next()
		p.markName(tok)
		p.emit(event{tag: tag, at: tok.Span, name: tok.Text})
	} else {
		p.typeWarning(p.s.Peek().Span, diag.MsgLendsMissing)
	}
	if braced && !p.s.Match(token.RightCurly) {
		p.typeError(p.s.Peek().Span, diag.MsgMissingRC)
	}
	return p.eatRest()
}

func (p *parser) parseThrows(at token.Token, tag Tag) token.Token {
	p.s.SkipEOLs()
	tok := p.s.Next()
	ev := event{tag: tag, at: at.Span}
	switch {
	case tok.Kind == token.LeftCurly:
		ev.typ = p.parseTypeNode(tok)
		if ev.typ == nil {
			return p.eatRest()
		}
	case tok.Kind == token.EOL || tok.Kind.IsEnd():
		p.emit(ev)
		return tok
	default:
		p.s.Unread()
	}
	return p.description(&ev)
}

func (p *parser) parseParam(at token.Token, tag Tag) token.Token {
	p.s.SkipEOLs()
	tok := p.s.Next()
	var t typeexpr.Type
	if tok.Kind == token.LeftCurly {
		t = p.types.ParseParamAnnotation(tok)
		if t == nil {
			return p.eatRest()
		}
		span, _ := p.typeSpan(tok)
		p.markType(t, span, true)
		p.s.SkipEOLs()
		tok = p.s.Next()
	}

	bracketed := tok.Kind == token.LeftSquare
	if bracketed {
		tok = p.s.Next()
	}
	if tok.Kind != token.String {
		p.typeWarning(tok.Span, diag.MsgMissingVariableName)
		return p.eatLineUnlessAnnotation(tok)
	}

	name := tok
	if bracketed {
		tok = p.s.Next()
		if tok.Kind == token.Equals {
			// A default value is accepted and ignored.
			tok = p.s.Next()
			if tok.Kind == token.String {
				tok = p.s.Next()
			}
		}
		if tok.Kind != token.RightSquare {
			p.typeError(tok.Span, diag.MsgMissingRB)
		} else if t != nil {
			t = typeexpr.MakeOptional(t)
		}
	}

	if strings.Contains(name.Text, ".") {
		p.warning(name.Span, diag.InvalidVariable(name.Text))
		return p.eatLineUnlessAnnotation(tok)
	}
	p.markName(name)

	ev := event{tag: tag, at: name.Span, name: name.Text, typ: t}
	if tok.Kind == token.EOL || tok.Kind.IsEnd() || tok.Kind == token.Annotation {
		p.emit(ev)
		return p.eatLineUnlessAnnotation(tok)
	}
	if !p.cfg.PreserveDescriptions || p.s.Match(token.Annotation) {
		p.emit(ev)
		return p.eatRest()
	}
	ev.text, tok = p.multilineText(singleLine)
	p.emit(ev)
	return tok
}

// parseTypeTag handles the tags whose main payload is a type: @type,
// @typedef, @return, @this, @define and the tags that may carry a type in
// place of @type.
func (p *parser) parseTypeTag(at token.Token, tag Tag) token.Token {
	ev := event{tag: tag, at: at.Span}
	canSkip := tag.alternateType() || tag == TagReturn
	if p.s.Match(token.LeftCurly) || !canSkip {
		p.s.SkipEOLs()
		ev.typ = p.parseTypeNode(p.s.Next())
		if ev.typ == nil && !canSkip {
			if tag == TagDefine {
				p.emit(ev)
			}
			return p.eatRest()
		}
		if ev.typ != nil && tag == TagThis {
			ev.typ = &typeexpr.NonNull{Inner: ev.typ}
		}
	}

	switch tag {
	case TagDefine, TagExport, TagPackage, TagPrivate, TagProtected, TagPublic, TagReturn:
		return p.description(&ev)
	}
	p.emit(ev)
	return p.eatRest()
}

// parseNameSet reads '{' name (('|' | ',') name)* '}'. check is called on
// every name token. The last consumed token is returned.
func (p *parser) parseNameSet(malformed string, check func(token.Token)) ([]string, []source.Span, token.Token, bool) {
	tok := p.s.Next()
	if tok.Kind != token.LeftCurly {
		p.warning(tok.Span, malformed)
		return nil, nil, tok, false
	}
	var names []string
	var spans []source.Span
	for {
		if !p.s.Match(token.String) {
			p.warning(p.s.Peek().Span, malformed)
			return nil, nil, tok, false
		}
		tok = p.s.Next()
		if check != nil {
			check(tok)
		}
		if !containsString(names, tok.Text) {
			names = append(names, tok.Text)
			spans = append(spans, tok.Span)
		}
		if !p.s.Match(token.Pipe, token.Comma) {
			break
		}
		tok = p.s.Next()
	}
	if !p.s.Match(token.RightCurly) {
		p.warning(p.s.Peek().Span, malformed)
		return nil, nil, tok, false
	}
	return names, spans, p.s.Next(), true
}

func (p *parser) parseSuppress(at token.Token, tag Tag) token.Token {
	names, spans, tok, ok := p.parseNameSet(diag.MsgSuppressMalformed, func(name token.Token) {
		if !p.cfg.IsSuppression(name.Text) {
			p.warning(name.Span, diag.UnknownSuppression(name.Text))
		}
	})
	if ok {
		p.emit(event{tag: tag, at: at.Span, names: names, spans: spans})
	}
	return tok
}

func (p *parser) parseModifies(at token.Token, tag Tag) token.Token {
	names, spans, tok, ok := p.parseNameSet(diag.MsgModifiesMalformed, nil)
	if ok {
		p.emit(event{tag: tag, at: at.Span, names: names, spans: spans})
	}
	return tok
}

var idGenerators = map[string]Flag{
	"unique":     FlagIDGenerator,
	"consistent": FlagConsistentIDGenerator,
	"stable":     FlagStableIDGenerator,
	"mapped":     FlagMappedIDGenerator,
}

func (p *parser) parseIDGenerator(at token.Token, tag Tag) token.Token {
	kind := "unique"
	tok := p.s.Next()
	if tok.Kind == token.LeftCurly {
		if !p.s.Match(token.String) {
			p.warning(p.s.Peek().Span, diag.MsgIDGenMalformed)
			return tok
		}
		tok = p.s.Next()
		kind = tok.Text
		if _, ok := idGenerators[kind]; !ok {
			p.warning(tok.Span, diag.UnknownIDGenerator(kind))
		}
		if !p.s.Match(token.RightCurly) {
			p.warning(p.s.Peek().Span, diag.MsgIDGenMalformed)
			return tok
		}
		tok = p.s.Next()
	}
	p.emit(event{tag: tag, at: at.Span, name: kind})
	return tok
}

func (p *parser) parseDisposes(at token.Token, tag Tag) token.Token {
	text, next := p.singleLineText()
	names := splitNames(text)
	if len(names) == 0 || names[0] == "" {
		p.typeWarning(at.Span, diag.MsgDisposesMissing)
		return next
	}
	p.emit(event{tag: tag, at: at.Span, names: names})
	return next
}

func (p *parser) parseTemplate(at token.Token, tag Tag) token.Token {
	from := p.s.Cursor()
	text, next := p.multilineText(trimmed)
	to := p.s.Cursor()

	namesText := text
	expr := ""
	transform := false
	valid := true
	if i := strings.Index(text, ":="); i < 0 {
		if j := strings.IndexByte(text, '\n'); j >= 0 {
			namesText = text[:j]
		}
	} else {
		namesText = text[:i]
		if j := strings.Index(text[i+2:], "=:"); j < 0 {
			p.typeWarning(at.Span, diag.MsgTTLMissingDelimiter)
			valid = false
		} else {
			transform = true
			expr = strings.TrimSpace(text[i+2 : i+2+j])
		}
	}

	ev := event{tag: tag, at: at.Span}
	names := splitNames(namesText)
	if len(names) == 1 && names[0] == "" {
		p.typeWarning(at.Span, diag.MsgTemplateMissing)
	} else {
		for _, name := range names {
			if !validTemplateName(name) {
				p.typeWarning(at.Span, diag.MsgTemplateInvalidName)
			} else if !transform {
				ev.names = append(ev.names, name)
			}
		}
	}

	if transform {
		if len(names) > 1 {
			p.typeWarning(at.Span, diag.MsgTTLMultipleNames)
		}
		if expr == "" {
			p.typeWarning(at.Span, diag.MsgTTLExpressionMissing)
			valid = false
		}
		if valid {
			if node := p.parseTransform(from, to); node != nil {
				ev.names = []string{names[0]}
				ev.transform = node
			}
		}
	}
	if len(ev.names) > 0 {
		p.emit(ev)
	}
	return next
}

// parseTransform runs the transformation parser on the ":= ... =:" found
// between the two cursors and restores the stream afterwards.
func (p *parser) parseTransform(from, to token.Cursor) ttl.Node {
	saved := p.s.Cursor()
	defer p.s.Seek(saved)
	for c := from; c+1 < to; c++ {
		colon, eq := p.s.At(c), p.s.At(c+1)
		if colon.Kind == token.Colon && eq.Kind == token.Equals && colon.Span.End.Offset == eq.Span.Start.Offset {
			p.s.Seek(c + 2)
			tp := ttl.NewParser(p.s, p.r, ttl.WithTypeOptions(typeexpr.WithLegacyArrays(p.cfg.LanguageMode.LegacyArrays())))
			return tp.Parse()
		}
	}
	return nil
}

// validTemplateName requires an upper case first letter followed by
// letters, digits and underscores.
func validTemplateName(name string) bool {
	for i, r := range name {
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return name != ""
}

func splitNames(text string) []string {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
