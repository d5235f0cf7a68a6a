package jsdoc

// Tag is an annotation keyword with its own handler. Informational tags
// from the configuration are not listed here; they are consumed without
// effect.
type Tag uint8

const (
	TagUnknown Tag = iota
	TagAuthor
	TagConsistentIDGenerator
	TagConst
	TagConstructor
	TagDefine
	TagDeprecated
	TagDesc
	TagDict
	TagDisposes
	TagEnum
	TagExport
	TagExpose
	TagExtends
	TagExterns
	TagFileOverview
	TagHidden
	TagIDGenerator
	TagImplements
	TagImplicitCast
	TagInheritDoc
	TagInterface
	TagJaggerInject
	TagJaggerModule
	TagJaggerProvide
	TagJaggerProvidePromise
	TagLends
	TagLicense
	TagMeaning
	TagModifies
	TagNgInject
	TagNoAlias
	TagNoCompile
	TagNoSideEffects
	TagNoTypeCheck
	TagOverride
	TagPackage
	TagParam
	TagPreserve
	TagPreserveTry
	TagPrivate
	TagProtected
	TagPublic
	TagRecord
	TagReturn
	TagSee
	TagStableIDGenerator
	TagStruct
	TagSuppress
	TagTemplate
	TagThis
	TagThrows
	TagType
	TagTypedef
	TagUnrestricted
	TagVersion
	TagWizaction

	// tagInformational marks a name accepted through the configuration.
	tagInformational
)

var tagNames = [...]string{
	TagUnknown:               "",
	TagAuthor:                "author",
	TagConsistentIDGenerator: "consistentIdGenerator",
	TagConst:                 "const",
	TagConstructor:           "constructor",
	TagDefine:                "define",
	TagDeprecated:            "deprecated",
	TagDesc:                  "desc",
	TagDict:                  "dict",
	TagDisposes:              "disposes",
	TagEnum:                  "enum",
	TagExport:                "export",
	TagExpose:                "expose",
	TagExtends:               "extends",
	TagExterns:               "externs",
	TagFileOverview:          "fileoverview",
	TagHidden:                "hidden",
	TagIDGenerator:           "idGenerator",
	TagImplements:            "implements",
	TagImplicitCast:          "implicitCast",
	TagInheritDoc:            "inheritDoc",
	TagInterface:             "interface",
	TagJaggerInject:          "jaggerInject",
	TagJaggerModule:          "jaggerModule",
	TagJaggerProvide:         "jaggerProvide",
	TagJaggerProvidePromise:  "jaggerProvidePromise",
	TagLends:                 "lends",
	TagLicense:               "license",
	TagMeaning:               "meaning",
	TagModifies:              "modifies",
	TagNgInject:              "ngInject",
	TagNoAlias:               "noalias",
	TagNoCompile:             "nocompile",
	TagNoSideEffects:         "nosideeffects",
	TagNoTypeCheck:           "notypecheck",
	TagOverride:              "override",
	TagPackage:               "package",
	TagParam:                 "param",
	TagPreserve:              "preserve",
	TagPreserveTry:           "preserveTry",
	TagPrivate:               "private",
	TagProtected:             "protected",
	TagPublic:                "public",
	TagRecord:                "record",
	TagReturn:                "return",
	TagSee:                   "see",
	TagStableIDGenerator:     "stableIdGenerator",
	TagStruct:                "struct",
	TagSuppress:              "suppress",
	TagTemplate:              "template",
	TagThis:                  "this",
	TagThrows:                "throws",
	TagType:                  "type",
	TagTypedef:               "typedef",
	TagUnrestricted:          "unrestricted",
	TagVersion:               "version",
	TagWizaction:             "wizaction",
	tagInformational:         "",
}

// aliases maps alternative spellings to their tag.
var aliases = map[string]Tag{
	"augments":  TagExtends,
	"constant":  TagConst,
	"returns":   TagReturn,
	"exception": TagThrows,
}

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, len(tagNames)+len(aliases))
	for tag, name := range tagNames {
		if name != "" {
			m[name] = Tag(tag)
		}
	}
	for name, tag := range aliases {
		m[name] = tag
	}
	return m
}()

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return ""
}

// LookupTag returns the tag named name, which is given without "@".
func LookupTag(name string) (Tag, bool) {
	t, ok := tagsByName[name]
	return t, ok
}

// Tags returns every tag with a handler in declaration order.
func Tags() []Tag {
	tags := make([]Tag, 0, len(tagNames))
	for t := TagUnknown + 1; t < tagInformational; t++ {
		tags = append(tags, t)
	}
	return tags
}

// alternateType reports whether t may carry an optional type that is
// recorded as if it had been given with @type.
func (t Tag) alternateType() bool {
	switch t {
	case TagConst, TagExport, TagPackage, TagPrivate, TagProtected, TagPublic:
		return true
	}
	return false
}
