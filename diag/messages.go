package diag

import "fmt"

// Message texts. Diagnostics of CatType are shown with TypePrefix.
const (
	MsgIncompatibleType       = "type annotation incompatible with other annotations"
	MsgMissingRC              = "expected closing }"
	MsgMissingRP              = "missing closing )"
	MsgMissingLP              = "missing opening ("
	MsgMissingRB              = "missing closing ]"
	MsgMissingLB              = "missing opening ["
	MsgMissingGT              = "missing closing >"
	MsgMissingColon           = "expecting colon after this"
	MsgTypeSyntax             = "type not recognized due to syntax error"
	MsgVarArgsNotLast         = "variable length argument must be last"
	MsgFunctionContexts       = "function type cannot have both this: and new: contexts"
	MsgMissingVariableName    = "expecting a variable name in a @param tag"
	MsgNoTypeName             = "expecting a type name"
	MsgEndAnnotationExpected  = "expected end of line or comment"
	MsgUnexpectedEOF          = "Unexpected end of file"
	MsgInterfaceConstructor   = "cannot be both an interface and a constructor"
	MsgLendsMissing           = "missing object name in @lends tag"
	MsgLendsIncompatible      = "@lends tag incompatible with other annotations"
	MsgOverride               = "extra @override/@inheritDoc tag"
	MsgDeprecated             = "extra @deprecated tag"
	MsgConst                  = "conflicting @const tag"
	MsgDefine                 = "conflicting @define tag"
	MsgExport                 = "extra @export tag"
	MsgExpose                 = "extra @expose tag"
	MsgExtraVisibility        = "extra visibility tag"
	MsgExtraVersion           = "conflicting @version tag"
	MsgVersionMissing         = "@version tag missing version information"
	MsgAuthorMissing          = "@author tag missing author"
	MsgSeeMissing             = "@see tag missing description"
	MsgMeaningExtra           = "extra @meaning tag"
	MsgDescExtra              = "extra @desc tag"
	MsgFileOverviewExtra      = "extra @fileoverview tag"
	MsgNoSideEffects          = "conflicting @nosideeffects tag"
	MsgImplicitCast           = "extra @implicitCast tag"
	MsgSuppressMalformed      = "malformed @suppress tag"
	MsgSuppressDuplicate      = "duplicate @suppress tag"
	MsgModifiesMalformed      = "malformed @modifies tag"
	MsgModifiesDuplicate      = "conflicting @modifies tag"
	MsgIDGenMalformed         = "malformed @idGenerator tag"
	MsgImplementsDuplicate    = "duplicate @implements tag"
	MsgExtendsDuplicate       = "duplicate @extends tag"
	MsgTemplateMissing        = "@template tag missing type name"
	MsgTemplateDeclaredTwice  = "Type name(s) for @template annotation declared twice"
	MsgTemplateInvalidName    = "Invalid type name(s) for @template annotation"
	MsgTTLMultipleNames       = "Type transformation must be associated to a single type name"
	MsgTTLExpressionMissing   = "Missing type transformation expression"
	MsgTTLMissingDelimiter    = "Expected end delimiter for a type transformation"
	MsgDisposesMissing        = "@disposes tag missing parameter name"
	MsgDisposesUnknown        = "@disposes parameter unknown or parameter specified multiple times"
	MsgTTLInvalidTransform    = "Invalid type transformation expression"
	MsgTTLInvalidBoolean      = "Invalid boolean expression"
	MsgTTLInvalidPredicate    = "Invalid boolean predicate"
	MsgTTLInvalidString       = "Invalid string expression"
	MsgTTLInvalidName         = "Invalid name"
	MsgTTLInvalidIndex        = "Invalid index"
	MsgTTLInvalidMessage      = "Invalid message"
	MsgTTLInvalidPropertyName = "Invalid property name"
	MsgTTLInvalidNativeType   = "Invalid native type expression"
	MsgTTLInvalidMapFunction  = "Invalid map function"
	MsgTTLEmptyRecord         = "Invalid empty record"
	MsgTTLPropertyMissingType = "Invalid property, missing type"
	MsgTTLInvalidRecord       = "Invalid record expression"
)

// ExtraTag returns the message for a repeated at-most-once flag tag.
func ExtraTag(name string) string {
	return fmt.Sprintf("extra @%s tag", name)
}

func DuplicateVariable(name string) string {
	return fmt.Sprintf("duplicate variable name %q", name)
}

func InvalidVariable(name string) string {
	return fmt.Sprintf("invalid param name %q", name)
}

func UnknownTag(name string) string {
	return fmt.Sprintf("illegal use of unknown JSDoc tag %q; ignoring it", name)
}

func UnknownSuppression(name string) string {
	return "unknown @suppress parameter: " + name
}

func UnknownModifies(name string) string {
	return "unknown @modifies parameter: " + name
}

func UnknownIDGenerator(name string) string {
	return "unknown @idGenerator parameter: " + name
}

func DuplicateRecordField(name string) string {
	return fmt.Sprintf("duplicate record field %q", name)
}

// FileOverviewVisibility reports a visibility that a file overview may not carry.
func FileOverviewVisibility(vis string) string {
	return vis + " annotation is not allowed in @fileoverview JsDoc"
}

func TTLInvalid(what string) string {
	return "Invalid " + what
}

func TTLInvalidExpression(what string) string {
	return "Invalid " + what + " expression"
}

func TTLMissingParam(op string) string {
	return "Missing parameter in " + op
}

func TTLExtraParam(op string) string {
	return "Found extra parameter in " + op
}

func TTLInvalidInside(what string) string {
	return "Invalid expression inside " + what
}
