package config

var defaultAnnotations = []string{
	"addon", "argument", "base", "borrows", "bug", "class",
	"code", "constructs", "customElement", "default", "defaultValue",
	"description", "dom", "element", "event", "example", "extension", "field",
	"file", "fires", "function", "global", "hassoydelcall",
	"hassoydeltemplate", "ignore", "inner", "link", "member", "memberOf",
	"memberof", "method", "mixes", "mixin", "modName", "moduleName", "mods",
	"name", "namespace", "nocollapse", "owner", "property", "requires",
	"since", "static", "supported", "wizmodule",
}

var defaultSuppressions = []string{
	"accessControls", "ambiguousFunctionDecl", "checkDebuggerStatement",
	"checkRegExp", "checkTypes", "checkVars", "closureDepMethodUsageChecks",
	"const", "constantProperty", "deprecated", "duplicate", "es5Strict",
	"externsValidation", "extraProvide", "extraRequire", "fileoverviewTags",
	"globalThis", "inferredConstCheck", "internetExplorerChecks",
	"invalidCasts", "lintChecks", "messageConventions",
	"misplacedTypeAnnotation", "missingProperties", "missingProvide",
	"missingRequire", "missingReturn", "newCheckTypes", "nonStandardJsDocs",
	"reportUnknownTypes", "strictModuleDepCheck", "suspiciousCode",
	"undefinedNames", "undefinedVars", "underscore", "unknownDefines",
	"unusedLocalVariables", "uselessCode", "visibility", "with",
}
