package format

import (
	"io"
	"strings"

	"github.com/dhamidi/closuredoc/jsdoc"
	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
)

// JSDocPrinter writes a record back as a normalized documentation comment.
// Types are printed in canonical form and tags in a fixed order.
type JSDocPrinter struct {
	w      io.Writer
	indent string
	lines  []string
}

func NewJSDocPrinter(w io.Writer) *JSDocPrinter {
	return &JSDocPrinter{w: w}
}

// SetIndent sets the text written before every line of the comment.
func (p *JSDocPrinter) SetIndent(indent string) {
	p.indent = indent
}

func (p *JSDocPrinter) Print(info *jsdoc.Info) error {
	_, err := io.WriteString(p.w, p.Sprint(info))
	return err
}

// Sprint returns the comment for info. Block comments end in a newline;
// inline casts do not.
func (p *JSDocPrinter) Sprint(info *jsdoc.Info) string {
	p.lines = p.lines[:0]
	if info.Has(jsdoc.FlagInlineType) {
		return "/** " + typeText(info.Type) + " */"
	}
	p.printRecord(info)
	for len(p.lines) > 0 && p.lines[len(p.lines)-1] == "" {
		p.lines = p.lines[:len(p.lines)-1]
	}
	if len(p.lines) == 0 {
		return p.indent + "/** */\n"
	}

	var sb strings.Builder
	if len(p.lines) == 1 && !strings.Contains(p.lines[0], "\n") {
		sb.WriteString(p.indent + "/** " + p.lines[0] + " */\n")
		return sb.String()
	}
	sb.WriteString(p.indent + "/**\n")
	for _, line := range p.lines {
		for _, l := range strings.Split(line, "\n") {
			if l == "" {
				sb.WriteString(p.indent + " *\n")
			} else {
				sb.WriteString(p.indent + " * " + l + "\n")
			}
		}
	}
	sb.WriteString(p.indent + " */\n")
	return sb.String()
}

func (p *JSDocPrinter) line(parts ...string) {
	var nonEmpty []string
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	p.lines = append(p.lines, strings.Join(nonEmpty, " "))
}

func braced(t typeexpr.Type) string {
	if t == nil {
		return ""
	}
	return "{" + t.String() + "}"
}

var visibilityTags = map[jsdoc.Visibility]string{
	jsdoc.Public:    "@public",
	jsdoc.Protected: "@protected",
	jsdoc.Private:   "@private",
	jsdoc.Package:   "@package",
}

// flagTags lists the flags printed as a bare tag, in output order.
var flagTags = []struct {
	flag jsdoc.Flag
	tag  string
}{
	{jsdoc.FlagOverride, "@override"},
	{jsdoc.FlagNoAlias, "@noalias"},
	{jsdoc.FlagNoCompile, "@nocompile"},
	{jsdoc.FlagNoTypeCheck, "@notypecheck"},
	{jsdoc.FlagExterns, "@externs"},
	{jsdoc.FlagHidden, "@hidden"},
	{jsdoc.FlagPreserveTry, "@preserveTry"},
	{jsdoc.FlagExpose, "@expose"},
	{jsdoc.FlagNoSideEffects, "@nosideeffects"},
	{jsdoc.FlagImplicitCast, "@implicitCast"},
	{jsdoc.FlagNgInject, "@ngInject"},
	{jsdoc.FlagJaggerInject, "@jaggerInject"},
	{jsdoc.FlagJaggerModule, "@jaggerModule"},
	{jsdoc.FlagJaggerProvide, "@jaggerProvide"},
	{jsdoc.FlagJaggerProvidePromise, "@jaggerProvidePromise"},
	{jsdoc.FlagWizaction, "@wizaction"},
	{jsdoc.FlagIDGenerator, "@idGenerator"},
	{jsdoc.FlagConsistentIDGenerator, "@idGenerator {consistent}"},
	{jsdoc.FlagStableIDGenerator, "@idGenerator {stable}"},
	{jsdoc.FlagMappedIDGenerator, "@idGenerator {mapped}"},
}

func (p *JSDocPrinter) printRecord(info *jsdoc.Info) {
	if info.BlockDescription != "" {
		p.line(info.BlockDescription)
		p.lines = append(p.lines, "")
	}
	if info.IsFileOverview() {
		p.line("@fileoverview", info.FileOverview)
	}
	if info.License != "" {
		p.line("@license", strings.TrimSpace(info.License))
	}

	typePrinted := false
	switch {
	case info.IsExport():
		p.line("@export", braced(info.Type))
		typePrinted = info.Type != nil
	case info.Visibility != jsdoc.Inherited:
		p.line(visibilityTags[info.Visibility])
	}
	switch {
	case info.IsDefine():
		p.line("@define", braced(info.Type), info.Description)
		typePrinted = true
	case info.Has(jsdoc.FlagConstant):
		if typePrinted {
			p.line("@const")
		} else {
			p.line("@const", braced(info.Type))
		}
		typePrinted = true
	}

	switch {
	case info.Has(jsdoc.FlagRecord):
		p.line("@record")
	case info.IsInterface():
		p.line("@interface")
	case info.IsConstructor():
		p.line("@constructor")
	}
	for _, f := range []struct {
		flag jsdoc.Flag
		tag  string
	}{{jsdoc.FlagStruct, "@struct"}, {jsdoc.FlagDict, "@dict"}, {jsdoc.FlagUnrestricted, "@unrestricted"}} {
		if info.Has(f.flag) {
			p.line(f.tag)
		}
	}
	if info.BaseType != nil {
		p.line("@extends", braced(unwrapNonNull(info.BaseType)))
	}
	for _, t := range info.ExtendedInterfaces {
		p.line("@extends", braced(unwrapNonNull(t)))
	}
	for _, t := range info.ImplementedInterfaces {
		p.line("@implements", braced(unwrapNonNull(t)))
	}
	for _, t := range info.Templates {
		if t.Transform != nil {
			p.line("@template", t.Name, ":=", t.Transform.String(), "=:")
		} else {
			p.line("@template", t.Name)
		}
	}

	switch {
	case info.EnumType != nil:
		p.line("@enum", braced(info.EnumType))
	case info.TypedefType != nil:
		p.line("@typedef", braced(info.TypedefType))
	case info.Type != nil && !typePrinted:
		p.line("@type", braced(info.Type))
	}
	if info.ThisType != nil {
		p.line("@this", braced(unwrapNonNull(info.ThisType)))
	}
	for _, param := range info.Params {
		p.line("@param", braced(param.Type), param.Name, param.Description)
	}
	if info.ReturnType != nil {
		p.line("@return", braced(info.ReturnType), info.ReturnDescription)
	}
	for _, t := range info.Throws {
		p.line("@throws", braced(t.Type), t.Description)
	}
	if info.IsDeprecated() {
		p.line("@deprecated", info.DeprecationReason)
	}
	for _, ft := range flagTags {
		if info.Has(ft.flag) {
			p.line(ft.tag)
		}
	}
	if len(info.Suppressions) > 0 {
		p.line("@suppress", "{"+strings.Join(info.Suppressions, "|")+"}")
	}
	if len(info.Modifies) > 0 {
		p.line("@modifies", "{"+strings.Join(info.Modifies, "|")+"}")
	}
	if len(info.Disposes) > 0 {
		p.line("@disposes", strings.Join(info.Disposes, ", "))
	}
	if info.Lends != "" {
		p.line("@lends", "{"+info.Lends+"}")
	}
	if info.Description != "" && !info.IsDefine() {
		p.line("@desc", info.Description)
	}
	if info.Meaning != "" {
		p.line("@meaning", info.Meaning)
	}
	for _, a := range info.Authors {
		p.line("@author", a)
	}
	for _, r := range info.References {
		p.line("@see", r)
	}
	if info.Version != "" {
		p.line("@version", info.Version)
	}
}

// unwrapNonNull removes the "!" the parser adds to class-like references.
func unwrapNonNull(t typeexpr.Type) typeexpr.Type {
	if nn, ok := t.(*typeexpr.NonNull); ok {
		return nn.Inner
	}
	return t
}

// JSDocEncoder prints the normalized comment of every record followed by
// the declaration it documents.
type JSDocEncoder struct {
	w    io.Writer
	file File
}

func NewJSDocEncoder(w io.Writer) *JSDocEncoder {
	return &JSDocEncoder{w: w}
}

func (e *JSDocEncoder) Encode(file File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSDocEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	p := NewJSDocPrinter(&sb)
	for i, d := range e.file.Docs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		text := p.Sprint(d.Info)
		sb.WriteString(text)
		if d.Info.Has(jsdoc.FlagInlineType) {
			sb.WriteByte('\n')
		}
		if d.Comment.Declaration != "" {
			sb.WriteString(d.Comment.Declaration + "\n")
		}
	}
	return []byte(sb.String()), nil
}
