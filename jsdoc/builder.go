package jsdoc

import (
	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/jsdoc/token"
	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
	"github.com/dhamidi/closuredoc/source"
)

// builder applies events to a record and reports the conflicts between
// them.
type builder struct {
	reporter
	info     *Info
	recorded map[Tag]bool
	extends  []event
	modifies source.Span
	disposes source.Span
}

func newBuilder(r reporter, src source.Source) *builder {
	return &builder{
		reporter: r,
		info:     &Info{Source: src},
		recorded: map[Tag]bool{},
	}
}

func (b *builder) incompatible(at source.Span) {
	b.typeWarning(at, diag.MsgIncompatibleType)
}

func (b *builder) setFlag(f Flag, at source.Span, msg string) {
	if b.info.Has(f) {
		b.warning(at, msg)
		return
	}
	b.info.Flags.set(f)
}

func (b *builder) recordType(t typeexpr.Type) bool {
	if t == nil || b.info.hasTypeRelated() {
		return false
	}
	b.info.Type = t
	return true
}

func (b *builder) recordVisibility(v Visibility) bool {
	if b.info.Visibility != Inherited {
		return false
	}
	b.info.Visibility = v
	return true
}

func (b *builder) apply(ev event) {
	info := b.info
	switch ev.tag {
	case TagType:
		if !b.recordType(ev.typ) && ev.typ != nil {
			b.incompatible(ev.at)
		}

	case TagTypedef:
		if info.hasTypeRelated() || info.TypedefType != nil {
			b.incompatible(ev.at)
			return
		}
		info.TypedefType = ev.typ

	case TagEnum:
		if info.hasTypeRelated() {
			b.incompatible(ev.at)
			return
		}
		info.EnumType = ev.typ

	case TagReturn:
		if info.ReturnType != nil || info.hasSingletonType() {
			b.incompatible(ev.at)
			return
		}
		t := ev.typ
		if t == nil {
			t = &typeexpr.Unknown{}
		}
		info.ReturnType = t
		info.ReturnDescription = ev.text

	case TagThis:
		if info.ThisType != nil || info.hasSingletonType() {
			b.incompatible(ev.at)
			return
		}
		info.ThisType = ev.typ

	case TagParam:
		if info.HasParameter(ev.name) {
			b.typeWarning(ev.at, diag.DuplicateVariable(ev.name))
			return
		}
		if info.hasSingletonType() {
			b.incompatible(ev.at)
			return
		}
		info.Params = append(info.Params, Param{Name: ev.name, Type: ev.typ, Description: ev.text})

	case TagConstructor:
		if info.hasSingletonType() || info.IsConstructorOrInterface() {
			b.interfaceConflict(ev.at, info.IsInterface())
			return
		}
		info.Flags.set(FlagConstructor)

	case TagInterface, TagRecord:
		if info.hasSingletonType() || info.IsConstructorOrInterface() || info.Has(FlagStruct) || info.Has(FlagDict) {
			b.interfaceConflict(ev.at, info.IsConstructor())
			return
		}
		info.Flags.set(FlagInterface)
		if ev.tag == TagRecord {
			info.Flags.set(FlagRecord)
		}

	case TagStruct, TagDict:
		if info.hasSingletonType() || info.IsInterface() ||
			info.Has(FlagStruct) || info.Has(FlagDict) || info.Has(FlagUnrestricted) {
			b.incompatible(ev.at)
			return
		}
		if ev.tag == TagStruct {
			info.Flags.set(FlagStruct)
		} else {
			info.Flags.set(FlagDict)
		}

	case TagUnrestricted:
		if info.hasSingletonType() || info.IsInterface() ||
			info.Has(FlagStruct) || info.Has(FlagDict) || info.Has(FlagUnrestricted) {
			b.incompatible(ev.at)
			return
		}
		info.Flags.set(FlagUnrestricted)

	case TagConst:
		if ev.typ != nil && !b.recordType(ev.typ) {
			b.incompatible(ev.at)
		}
		if info.IsConstant() {
			b.warning(ev.at, diag.MsgConst)
			return
		}
		info.Flags.set(FlagConstant)

	case TagDefine:
		if ev.typ == nil || info.IsConstant() || !b.recordType(ev.typ) {
			b.warning(ev.at, diag.MsgDefine)
			return
		}
		info.Flags.set(FlagDefine)
		info.Description = ev.text

	case TagExport:
		if info.Has(FlagExport) {
			b.warning(ev.at, diag.MsgExport)
			return
		}
		info.Flags.set(FlagExport)
		if !b.recordVisibility(Public) {
			b.warning(ev.at, diag.MsgExtraVisibility)
		}
		b.alternateType(ev)
		b.visibilityDescription(ev)

	case TagPackage, TagPrivate, TagProtected, TagPublic:
		v := map[Tag]Visibility{
			TagPackage:   Package,
			TagPrivate:   Private,
			TagProtected: Protected,
			TagPublic:    Public,
		}[ev.tag]
		b.alternateType(ev)
		if !b.recordVisibility(v) {
			b.warning(ev.at, diag.MsgExtraVisibility)
			return
		}
		b.visibilityDescription(ev)

	case TagOverride, TagInheritDoc:
		if info.IsOverride() {
			b.typeWarning(ev.at, diag.MsgOverride)
			return
		}
		info.Flags.set(FlagOverride)

	case TagExpose:
		b.setFlag(FlagExpose, ev.at, diag.MsgExpose)

	case TagImplicitCast:
		if info.Has(FlagImplicitCast) {
			b.typeWarning(ev.at, diag.MsgImplicitCast)
			return
		}
		info.Flags.set(FlagImplicitCast)

	case TagNoSideEffects:
		if info.Has(FlagNoSideEffects) || len(info.Modifies) > 0 {
			b.warning(ev.at, diag.MsgNoSideEffects)
			return
		}
		info.Flags.set(FlagNoSideEffects)

	case TagModifies:
		if len(info.Modifies) > 0 || info.Has(FlagNoSideEffects) {
			b.warning(ev.at, diag.MsgModifiesDuplicate)
			return
		}
		info.Modifies = ev.names
		b.modifies = ev.at

	case TagSuppress:
		if b.recorded[TagSuppress] {
			b.warning(ev.at, diag.MsgSuppressDuplicate)
			return
		}
		b.recorded[TagSuppress] = true
		info.Suppressions = ev.names

	case TagIDGenerator:
		f, ok := idGenerators[ev.name]
		if !ok {
			return
		}
		if info.Has(FlagIDGenerator) || info.Has(FlagConsistentIDGenerator) ||
			info.Has(FlagStableIDGenerator) || info.Has(FlagMappedIDGenerator) {
			b.warning(ev.at, diag.ExtraTag("idGenerator"))
			return
		}
		info.Flags.set(f)

	case TagImplements:
		for _, t := range info.ImplementedInterfaces {
			if typeexpr.Equal(t, ev.typ) {
				b.warning(ev.at, diag.MsgImplementsDuplicate)
				return
			}
		}
		info.ImplementedInterfaces = append(info.ImplementedInterfaces, ev.typ)

	case TagExtends:
		// Whether a base type or an extended interface is meant depends on
		// @interface, which may come later.
		b.extends = append(b.extends, ev)

	case TagLends:
		if info.hasTypeRelated() {
			b.typeWarning(ev.at, diag.MsgLendsIncompatible)
			return
		}
		info.Lends = ev.name

	case TagThrows:
		if ev.typ == nil || info.hasSingletonType() {
			return
		}
		info.Throws = append(info.Throws, Throw{Type: ev.typ, Description: ev.text})

	case TagDesc:
		if !b.once(ev, diag.MsgDescExtra) {
			return
		}
		info.Description = ev.text

	case TagMeaning:
		if !b.once(ev, diag.MsgMeaningExtra) {
			return
		}
		info.Meaning = ev.text

	case TagFileOverview:
		if !b.once(ev, diag.MsgFileOverviewExtra) {
			return
		}
		info.Flags.set(FlagFileOverview)
		info.FileOverview = ev.text

	case TagDeprecated:
		if info.IsDeprecated() {
			b.warning(ev.at, diag.MsgDeprecated)
			return
		}
		info.Flags.set(FlagDeprecated)
		info.DeprecationReason = ev.text

	case TagLicense, TagPreserve:
		info.License += ev.text

	case TagVersion:
		if !b.once(ev, diag.MsgExtraVersion) {
			return
		}
		info.Version = ev.text

	case TagAuthor:
		info.Authors = append(info.Authors, ev.text)

	case TagSee:
		info.References = append(info.References, ev.text)

	case TagTemplate:
		for _, name := range ev.names {
			if info.hasTemplate(name) {
				b.typeWarning(ev.at, diag.MsgTemplateDeclaredTwice)
				continue
			}
			info.Templates = append(info.Templates, Template{Name: name, Transform: ev.transform})
		}

	case TagDisposes:
		info.Disposes = append(info.Disposes, ev.names...)
		if b.disposes.IsZero() {
			b.disposes = ev.at
		}

	default:
		if f, ok := tagFlags[ev.tag]; ok {
			b.setFlag(f, ev.at, diag.ExtraTag(ev.tag.String()))
		}
	}
}

// tagFlags maps the tags that only set a flag.
var tagFlags = map[Tag]Flag{
	TagNoAlias:               FlagNoAlias,
	TagNoCompile:             FlagNoCompile,
	TagNoTypeCheck:           FlagNoTypeCheck,
	TagExterns:               FlagExterns,
	TagHidden:                FlagHidden,
	TagPreserveTry:           FlagPreserveTry,
	TagNgInject:              FlagNgInject,
	TagJaggerInject:          FlagJaggerInject,
	TagJaggerModule:          FlagJaggerModule,
	TagJaggerProvide:         FlagJaggerProvide,
	TagJaggerProvidePromise:  FlagJaggerProvidePromise,
	TagWizaction:             FlagWizaction,
	TagConsistentIDGenerator: FlagConsistentIDGenerator,
	TagStableIDGenerator:     FlagStableIDGenerator,
}

func (b *builder) once(ev event, msg string) bool {
	if b.recorded[ev.tag] {
		b.warning(ev.at, msg)
		return false
	}
	b.recorded[ev.tag] = true
	return true
}

func (b *builder) interfaceConflict(at source.Span, other bool) {
	if other {
		b.warning(at, diag.MsgInterfaceConstructor)
		return
	}
	b.incompatible(at)
}

// alternateType records the type carried by a visibility or @export tag.
func (b *builder) alternateType(ev event) {
	if ev.typ != nil && !b.recordType(ev.typ) {
		b.incompatible(ev.at)
	}
}

func (b *builder) visibilityDescription(ev event) {
	if ev.text != "" && b.info.Description == "" {
		b.info.Description = ev.text
	}
}

func (b *builder) finish(end token.Token) *Info {
	info := b.info
	for _, ev := range b.extends {
		b.applyExtends(ev)
	}
	b.validateModifies()
	b.validateDisposes()
	if info.IsFileOverview() && (info.Visibility == Private || info.Visibility == Protected) {
		b.warning(end.Span, diag.FileOverviewVisibility(info.Visibility.String()))
	}
	return info
}

func (b *builder) applyExtends(ev event) {
	info := b.info
	if info.IsInterface() {
		for _, t := range info.ExtendedInterfaces {
			if typeexpr.Equal(t, ev.typ) {
				b.warning(ev.at, diag.MsgExtendsDuplicate)
				return
			}
		}
		info.ExtendedInterfaces = append(info.ExtendedInterfaces, ev.typ)
		return
	}
	if info.hasSingletonType() || info.BaseType != nil {
		b.incompatible(ev.at)
		return
	}
	info.BaseType = ev.typ
}

func (b *builder) validateModifies() {
	for _, name := range b.info.Modifies {
		if name == "this" || name == "arguments" || b.info.HasParameter(name) {
			continue
		}
		b.warning(b.modifies, diag.UnknownModifies(name))
	}
}

func (b *builder) validateDisposes() {
	seen := map[string]bool{}
	for _, name := range b.info.Disposes {
		if seen[name] || (name != "*" && !b.info.HasParameter(name)) {
			b.typeWarning(b.disposes, diag.MsgDisposesUnknown)
			return
		}
		seen[name] = true
	}
}
