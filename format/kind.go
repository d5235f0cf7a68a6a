package format

import (
	"github.com/dhamidi/closuredoc/jsdoc"
	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
)

// Kind names what a record documents.
func Kind(info *jsdoc.Info) string {
	switch {
	case info.IsFileOverview():
		return "fileoverview"
	case info.Has(jsdoc.FlagRecord):
		return "record"
	case info.IsInterface():
		return "interface"
	case info.IsConstructor():
		return "class"
	case info.EnumType != nil:
		return "enum"
	case info.TypedefType != nil:
		return "typedef"
	case info.Has(jsdoc.FlagInlineType):
		return "cast"
	case info.ParameterCount() > 0 || info.ReturnType != nil || info.ThisType != nil:
		return "function"
	case info.IsDefine():
		return "define"
	case info.IsConstant():
		return "const"
	case info.Type != nil:
		return "property"
	}
	return "comment"
}

func typeText(t typeexpr.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
