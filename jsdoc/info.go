// Package jsdoc parses Closure-style documentation comments into Info
// records.
//
// A comment is parsed in two phases. The dispatcher walks the token stream
// once, handing each @tag to its handler, and collects one event per tag
// together with the markers that locate it in the source. A validation pass
// then applies the events in order to a fresh Info, reporting conflicting
// and repeated tags. The first occurrence of a tag wins.
package jsdoc

import (
	"github.com/dhamidi/closuredoc/jsdoc/ttl"
	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
	"github.com/dhamidi/closuredoc/source"
)

type Visibility uint8

const (
	Inherited Visibility = iota
	Public
	Protected
	Private
	Package
)

var visibilityNames = [...]string{
	Inherited: "inherited",
	Public:    "public",
	Protected: "protected",
	Private:   "private",
	Package:   "package",
}

func (v Visibility) String() string {
	if int(v) < len(visibilityNames) {
		return visibilityNames[v]
	}
	return "unknown"
}

// ParseVisibility is the inverse of Visibility.String. The empty string
// is Inherited.
func ParseVisibility(s string) (Visibility, bool) {
	if s == "" {
		return Inherited, true
	}
	for v, name := range visibilityNames {
		if name == s {
			return Visibility(v), true
		}
	}
	return Inherited, false
}

// Flag is a boolean property of a record. Flags are combined in a Flags
// bit set.
type Flag uint64

const (
	FlagConstant Flag = 1 << iota
	FlagConstructor
	FlagInterface
	FlagRecord
	FlagStruct
	FlagDict
	FlagUnrestricted
	FlagDefine
	FlagDeprecated
	FlagOverride
	FlagNoAlias
	FlagExport
	FlagExpose
	FlagNoSideEffects
	FlagImplicitCast
	FlagNoCompile
	FlagNoTypeCheck
	FlagExterns
	FlagHidden
	FlagPreserveTry
	FlagNgInject
	FlagJaggerInject
	FlagJaggerModule
	FlagJaggerProvide
	FlagJaggerProvidePromise
	FlagWizaction
	FlagIDGenerator
	FlagConsistentIDGenerator
	FlagStableIDGenerator
	FlagMappedIDGenerator
	FlagFileOverview
	FlagInlineType
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagConstant, "const"},
	{FlagConstructor, "constructor"},
	{FlagInterface, "interface"},
	{FlagRecord, "record"},
	{FlagStruct, "struct"},
	{FlagDict, "dict"},
	{FlagUnrestricted, "unrestricted"},
	{FlagDefine, "define"},
	{FlagDeprecated, "deprecated"},
	{FlagOverride, "override"},
	{FlagNoAlias, "noalias"},
	{FlagExport, "export"},
	{FlagExpose, "expose"},
	{FlagNoSideEffects, "nosideeffects"},
	{FlagImplicitCast, "implicitCast"},
	{FlagNoCompile, "nocompile"},
	{FlagNoTypeCheck, "notypecheck"},
	{FlagExterns, "externs"},
	{FlagHidden, "hidden"},
	{FlagPreserveTry, "preserveTry"},
	{FlagNgInject, "ngInject"},
	{FlagJaggerInject, "jaggerInject"},
	{FlagJaggerModule, "jaggerModule"},
	{FlagJaggerProvide, "jaggerProvide"},
	{FlagJaggerProvidePromise, "jaggerProvidePromise"},
	{FlagWizaction, "wizaction"},
	{FlagIDGenerator, "idGenerator"},
	{FlagConsistentIDGenerator, "consistentIdGenerator"},
	{FlagStableIDGenerator, "stableIdGenerator"},
	{FlagMappedIDGenerator, "mappedIdGenerator"},
	{FlagFileOverview, "fileoverview"},
	{FlagInlineType, "inlineType"},
}

func (f Flag) String() string {
	for _, fn := range flagNames {
		if fn.flag == f {
			return fn.name
		}
	}
	return "unknown"
}

type Flags uint64

func (fs Flags) Has(f Flag) bool {
	return uint64(fs)&uint64(f) != 0
}

func (fs *Flags) set(f Flag) {
	*fs |= Flags(f)
}

// Names lists the names of the set flags in a fixed order.
func (fs Flags) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if fs.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

type Param struct {
	Name        string
	Type        typeexpr.Type
	Description string
}

// Template is a template type name, bound to a transformation when it was
// declared with ":= ... =:".
type Template struct {
	Name      string
	Transform ttl.Node
}

type Throw struct {
	Type        typeexpr.Type
	Description string
}

// Item is a piece of text and where it was found.
type Item struct {
	Text string
	Span source.Span
}

// TypeItem locates a type annotation. Brackets reports whether the type
// was written between braces; the span then starts at "{" and ends at the
// start of "}".
type TypeItem struct {
	Type     typeexpr.Type
	Span     source.Span
	Brackets bool
}

// Marker locates one recognized annotation and its parts.
type Marker struct {
	Annotation  Item
	Type        *TypeItem
	Name        *Item
	Description *Item
}

// Info is the record produced for one comment. It must not be modified
// once returned by a parse function.
type Info struct {
	Flags      Flags
	Visibility Visibility

	Type        typeexpr.Type
	EnumType    typeexpr.Type
	TypedefType typeexpr.Type
	ReturnType  typeexpr.Type
	ThisType    typeexpr.Type
	BaseType    typeexpr.Type

	ExtendedInterfaces    []typeexpr.Type
	ImplementedInterfaces []typeexpr.Type

	Params    []Param
	Templates []Template
	Throws    []Throw

	Suppressions []string
	Modifies     []string
	Disposes     []string
	Lends        string

	BlockDescription  string
	Description       string
	ReturnDescription string
	DeprecationReason string
	FileOverview      string
	License           string
	Meaning           string
	Version           string
	Authors           []string
	References        []string

	Markers []Marker
	Source  source.Source
}

func (info *Info) Has(f Flag) bool {
	return info.Flags.Has(f)
}

// HasType reports whether a @type (or a typed visibility, @const or
// @define) was recorded.
func (info *Info) HasType() bool {
	return info.Type != nil
}

func (info *Info) ParameterCount() int {
	return len(info.Params)
}

func (info *Info) param(name string) *Param {
	for i := range info.Params {
		if info.Params[i].Name == name {
			return &info.Params[i]
		}
	}
	return nil
}

func (info *Info) HasParameter(name string) bool {
	return info.param(name) != nil
}

// ParameterType returns the declared type of the named parameter, or nil
// when the parameter is unknown or untyped.
func (info *Info) ParameterType(name string) typeexpr.Type {
	if p := info.param(name); p != nil {
		return p.Type
	}
	return nil
}

func (info *Info) ParameterDescription(name string) string {
	if p := info.param(name); p != nil {
		return p.Description
	}
	return ""
}

// ParameterNames returns the parameter names in declaration order.
func (info *Info) ParameterNames() []string {
	names := make([]string, len(info.Params))
	for i, p := range info.Params {
		names[i] = p.Name
	}
	return names
}

func (info *Info) TemplateTypeNames() []string {
	names := make([]string, len(info.Templates))
	for i, t := range info.Templates {
		names[i] = t.Name
	}
	return names
}

// TypeTransformation returns the transformation bound to a template name.
func (info *Info) TypeTransformation(name string) ttl.Node {
	for _, t := range info.Templates {
		if t.Name == name {
			return t.Transform
		}
	}
	return nil
}

func (info *Info) hasTemplate(name string) bool {
	for _, t := range info.Templates {
		if t.Name == name {
			return true
		}
	}
	return false
}

// IsConstant reports @const, which @define implies.
func (info *Info) IsConstant() bool {
	return info.Has(FlagConstant) || info.Has(FlagDefine)
}

func (info *Info) IsConstructor() bool { return info.Has(FlagConstructor) }
func (info *Info) IsInterface() bool   { return info.Has(FlagInterface) }
func (info *Info) IsDeprecated() bool  { return info.Has(FlagDeprecated) }
func (info *Info) IsOverride() bool    { return info.Has(FlagOverride) }
func (info *Info) IsExport() bool      { return info.Has(FlagExport) }
func (info *Info) IsDefine() bool      { return info.Has(FlagDefine) }
func (info *Info) IsFileOverview() bool {
	return info.Has(FlagFileOverview)
}

// IsConstructorOrInterface is true for @constructor, @interface and
// @record.
func (info *Info) IsConstructorOrInterface() bool {
	return info.IsConstructor() || info.IsInterface()
}

// IsSuppressed reports whether name appears in @suppress.
func (info *Info) IsSuppressed(name string) bool {
	for _, s := range info.Suppressions {
		if s == name {
			return true
		}
	}
	return false
}

// MarkersFor returns the markers of every occurrence of the named tag.
func (info *Info) MarkersFor(tag string) []Marker {
	var out []Marker
	for _, m := range info.Markers {
		if m.Annotation.Text == tag {
			out = append(out, m)
		}
	}
	return out
}

// OriginalCommentText returns the comment body as it was parsed.
func (info *Info) OriginalCommentText() string {
	return info.Source.Text
}

// OriginalCommentOffset returns the byte offset of the comment body in its
// file.
func (info *Info) OriginalCommentOffset() int {
	return info.Source.Offset
}

// hasSingletonType reports whether the record already has a type that
// excludes every other type-bearing tag.
func (info *Info) hasSingletonType() bool {
	return info.Type != nil || info.TypedefType != nil || info.EnumType != nil
}

func (info *Info) hasTypeRelated() bool {
	return info.IsConstructorOrInterface() ||
		len(info.Params) > 0 ||
		info.ReturnType != nil ||
		info.BaseType != nil ||
		len(info.ExtendedInterfaces) > 0 ||
		info.Lends != "" ||
		info.ThisType != nil ||
		info.hasSingletonType()
}

// EffectiveVisibility returns the visibility that applies to the
// declaration documented by info. An explicit visibility wins over the
// default declared by the file overview.
func EffectiveVisibility(info, fileOverview *Info) Visibility {
	if info != nil && info.Visibility != Inherited {
		return info.Visibility
	}
	if fileOverview != nil {
		return fileOverview.Visibility
	}
	return Inherited
}
