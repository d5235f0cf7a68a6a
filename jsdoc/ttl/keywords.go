package ttl

// Op identifies a keyword of the transformation language.
type Op int

const (
	OpAll Op = iota
	OpCond
	OpEq
	OpIsCtor
	OpIsDefined
	OpIsRecord
	OpIsTemplatized
	OpIsUnknown
	OpInstanceOf
	OpMapUnion
	OpMapRecord
	OpNone
	OpPrintType
	OpPropType
	OpRawTypeOf
	OpSub
	OpStrEq
	OpRecord
	OpTemplateTypeOf
	OpType
	OpTypeExpr
	OpTypeOfVar
	OpUnion
	OpUnknown
)

// Class groups keywords by the kind of expression they build.
type Class int

const (
	TypeConstructor Class = iota
	Operation
	TypePredicate
	StringPredicate
	TypeVarPredicate
)

// Variadic is the Max of keywords that take any number of arguments.
const Variadic = -1

type Keyword struct {
	Name  string
	Op    Op
	Class Class
	Min   int
	Max   int
}

// IsPredicate reports whether calls to k are boolean.
func (k Keyword) IsPredicate() bool {
	return k.Class == TypePredicate || k.Class == StringPredicate || k.Class == TypeVarPredicate
}

var keywords = []Keyword{
	{"all", OpAll, TypeConstructor, 0, 0},
	{"cond", OpCond, Operation, 3, 3},
	{"eq", OpEq, TypePredicate, 2, 2},
	{"isCtor", OpIsCtor, TypePredicate, 1, 1},
	{"isDefined", OpIsDefined, TypeVarPredicate, 1, 1},
	{"isRecord", OpIsRecord, TypePredicate, 1, 1},
	{"isTemplatized", OpIsTemplatized, TypePredicate, 1, 1},
	{"isUnknown", OpIsUnknown, TypePredicate, 1, 1},
	{"instanceOf", OpInstanceOf, Operation, 1, 1},
	{"mapunion", OpMapUnion, Operation, 2, 2},
	{"maprecord", OpMapRecord, Operation, 2, 2},
	{"none", OpNone, TypeConstructor, 0, 0},
	{"printType", OpPrintType, Operation, 2, 2},
	{"propType", OpPropType, Operation, 2, 2},
	{"rawTypeOf", OpRawTypeOf, TypeConstructor, 1, 1},
	{"sub", OpSub, TypePredicate, 2, 2},
	{"streq", OpStrEq, StringPredicate, 2, 2},
	{"record", OpRecord, TypeConstructor, 1, Variadic},
	{"templateTypeOf", OpTemplateTypeOf, TypeConstructor, 2, 2},
	{"type", OpType, TypeConstructor, 2, Variadic},
	{"typeExpr", OpTypeExpr, TypeConstructor, 1, 1},
	{"typeOfVar", OpTypeOfVar, Operation, 1, 1},
	{"union", OpUnion, TypeConstructor, 2, Variadic},
	{"unknown", OpUnknown, TypeConstructor, 0, 0},
}

var keywordsByName = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywords))
	for _, kw := range keywords {
		m[kw.Name] = kw
	}
	return m
}()

// Lookup returns the keyword spelled name.
func Lookup(name string) (Keyword, bool) {
	kw, ok := keywordsByName[name]
	return kw, ok
}

// Keywords returns every keyword in table order.
func Keywords() []Keyword {
	return append([]Keyword(nil), keywords...)
}

func (op Op) String() string {
	if int(op) < len(keywords) && keywords[op].Op == op {
		return keywords[op].Name
	}
	for _, kw := range keywords {
		if kw.Op == op {
			return kw.Name
		}
	}
	return "Op(?)"
}
