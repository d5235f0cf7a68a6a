// Package typeexpr parses and prints the type expressions found in
// documentation comments, such as {Array<string>}, {?Object} or
// {function(this:Foo, number=): boolean}.
package typeexpr

import "strings"

type Kind int

const (
	KindNamed Kind = iota
	KindNullable
	KindNonNull
	KindOptional
	KindVarArgs
	KindUnion
	KindRecord
	KindFunction
	KindAny
	KindUnknown
	KindVoid
	KindNull
	KindArray
)

var kindNames = [...]string{
	KindNamed:    "Named",
	KindNullable: "Nullable",
	KindNonNull:  "NonNull",
	KindOptional: "Optional",
	KindVarArgs:  "VarArgs",
	KindUnion:    "Union",
	KindRecord:   "Record",
	KindFunction: "Function",
	KindAny:      "Any",
	KindUnknown:  "Unknown",
	KindVoid:     "Void",
	KindNull:     "Null",
	KindArray:    "ArrayLiteral",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Type is a node of a parsed type expression. String returns the canonical
// spelling, which parses back to an equal tree.
type Type interface {
	Kind() Kind
	String() string
	typeNode()
}

// Named is a reference to a type by its dotted name, optionally applied to
// type arguments. Names are not resolved.
type Named struct {
	Name string
	Args []Type
}

type Nullable struct {
	Inner Type
}

type NonNull struct {
	Inner Type
}

// Optional marks a function parameter or @param type that may be omitted.
type Optional struct {
	Inner Type
}

// VarArgs marks a variadic parameter. Inner is nil when no element type was
// given.
type VarArgs struct {
	Inner Type
}

// Union holds at least two distinct alternatives. Use NewUnion to build one.
type Union struct {
	Alts []Type
}

type Field struct {
	Name string
	Type Type
}

// Record is a structural object type. Field names are unique.
type Record struct {
	Fields []Field
}

// Function is a function signature. When IsNew is set, This holds the type
// constructed by the function (new:T); otherwise This is the receiver type
// (this:T) or nil.
type Function struct {
	This   Type
	IsNew  bool
	Params []Type
	Result Type
}

type Any struct{}

type Unknown struct{}

type Void struct{}

type Null struct{}

// ArrayLiteral is the legacy bracket array syntax, [T, U].
type ArrayLiteral struct {
	Elems []Type
}

func (*Named) typeNode()        {}
func (*Nullable) typeNode()     {}
func (*NonNull) typeNode()      {}
func (*Optional) typeNode()     {}
func (*VarArgs) typeNode()      {}
func (*Union) typeNode()        {}
func (*Record) typeNode()       {}
func (*Function) typeNode()     {}
func (*Any) typeNode()          {}
func (*Unknown) typeNode()      {}
func (*Void) typeNode()         {}
func (*Null) typeNode()         {}
func (*ArrayLiteral) typeNode() {}

func (*Named) Kind() Kind        { return KindNamed }
func (*Nullable) Kind() Kind     { return KindNullable }
func (*NonNull) Kind() Kind      { return KindNonNull }
func (*Optional) Kind() Kind     { return KindOptional }
func (*VarArgs) Kind() Kind      { return KindVarArgs }
func (*Union) Kind() Kind        { return KindUnion }
func (*Record) Kind() Kind       { return KindRecord }
func (*Function) Kind() Kind     { return KindFunction }
func (*Any) Kind() Kind          { return KindAny }
func (*Unknown) Kind() Kind      { return KindUnknown }
func (*Void) Kind() Kind         { return KindVoid }
func (*Null) Kind() Kind         { return KindNull }
func (*ArrayLiteral) Kind() Kind { return KindArray }

// Field returns the named field of a record, or nil.
func (r *Record) Field(name string) Type {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

// NewUnion flattens nested unions, folds nullable members into a single
// trailing null, and removes duplicates. With one distinct alternative left
// that alternative is returned as is.
func NewUnion(alts ...Type) Type {
	var out []Type
	seen := make(map[string]bool)
	hasNull := false

	var add func(t Type)
	add = func(t Type) {
		switch t := t.(type) {
		case *Union:
			for _, alt := range t.Alts {
				add(alt)
			}
		case *Nullable:
			hasNull = true
			add(t.Inner)
		case *Null:
			hasNull = true
		default:
			key := t.String()
			if seen[key] {
				return
			}
			seen[key] = true
			out = append(out, t)
		}
	}
	for _, alt := range alts {
		if alt != nil {
			add(alt)
		}
	}

	if hasNull {
		out = append(out, &Null{})
	}
	switch len(out) {
	case 0:
		return &Unknown{}
	case 1:
		return out[0]
	}
	return &Union{Alts: out}
}

// MakeNullable applies a "?" modifier. Unions gain a null alternative;
// types that already admit null are returned unchanged.
func MakeNullable(t Type) Type {
	switch t.(type) {
	case *Union:
		return NewUnion(t, &Null{})
	case *Nullable, *Null, *Unknown, *Any:
		return t
	}
	return &Nullable{Inner: t}
}

// MakeOptional wraps t in Optional unless it already is one. Variadic types
// are returned unchanged.
func MakeOptional(t Type) Type {
	switch t.(type) {
	case *Optional, *VarArgs:
		return t
	}
	return &Optional{Inner: t}
}

// Equal compares two types by their canonical form.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// HasNull reports whether null is one of the values admitted by t.
func HasNull(t Type) bool {
	switch t := t.(type) {
	case *Null, *Nullable:
		return true
	case *Union:
		for _, alt := range t.Alts {
			if HasNull(alt) {
				return true
			}
		}
	}
	return false
}

// Names returns every type name referenced by t, in order of appearance.
func Names(t Type) []string {
	var names []string
	Walk(t, func(n Type) bool {
		if named, ok := n.(*Named); ok {
			names = append(names, named.Name)
		}
		return true
	})
	return names
}

// Walk visits t and its children depth first. Children are skipped when fn
// returns false.
func Walk(t Type, fn func(Type) bool) {
	if t == nil || !fn(t) {
		return
	}
	switch t := t.(type) {
	case *Named:
		for _, a := range t.Args {
			Walk(a, fn)
		}
	case *Nullable:
		Walk(t.Inner, fn)
	case *NonNull:
		Walk(t.Inner, fn)
	case *Optional:
		Walk(t.Inner, fn)
	case *VarArgs:
		Walk(t.Inner, fn)
	case *Union:
		for _, a := range t.Alts {
			Walk(a, fn)
		}
	case *Record:
		for _, f := range t.Fields {
			Walk(f.Type, fn)
		}
	case *Function:
		Walk(t.This, fn)
		for _, p := range t.Params {
			Walk(p, fn)
		}
		Walk(t.Result, fn)
	case *ArrayLiteral:
		for _, e := range t.Elems {
			Walk(e, fn)
		}
	}
}

func joinTypes(ts []Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}
