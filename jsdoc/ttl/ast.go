// Package ttl parses type transformation expressions, the small functional
// language written between ":=" and "=:" in a @template tag:
//
//	@template R := cond(eq(T, 'Object'), 'A', 'B') =:
package ttl

import (
	"strconv"
	"strings"

	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
)

// Node is an expression of the transformation language. String returns
// source text that parses back to an equal tree.
type Node interface {
	String() string
	ttlNode()
}

// TypeName refers to a type variable or a name bound by a map function.
type TypeName struct {
	Name string
}

// StringLit is a quoted literal: a type name, message or property name
// depending on where it appears.
type StringLit struct {
	Value string
}

type Number struct {
	Value int
}

type UnionOp struct {
	Alts []Node
}

type CondOp struct {
	Pred Node
	Then Node
	Else Node
}

// BoolPred is a call to one of the predicate keywords.
type BoolPred struct {
	Op   Op
	Args []Node
}

type BoolOpKind int

const (
	And BoolOpKind = iota
	Or
	Not
)

type BoolOp struct {
	Kind BoolOpKind
	Args []Node
}

// NamedOp is a call to any keyword that is not cond, union or a predicate.
type NamedOp struct {
	Op   Op
	Args []Node
}

// MapFunc is the (x) => body argument of mapunion and maprecord.
type MapFunc struct {
	Params []string
	Body   Node
}

type Prop struct {
	Key      string
	Computed bool
	Value    Node
}

type RecordLit struct {
	Props []Prop
}

// TypeLit is the parsed argument of typeExpr.
type TypeLit struct {
	Source string
	Type   typeexpr.Type
}

func (*TypeName) ttlNode()  {}
func (*StringLit) ttlNode() {}
func (*Number) ttlNode()    {}
func (*UnionOp) ttlNode()   {}
func (*CondOp) ttlNode()    {}
func (*BoolPred) ttlNode()  {}
func (*BoolOp) ttlNode()    {}
func (*NamedOp) ttlNode()   {}
func (*MapFunc) ttlNode()   {}
func (*RecordLit) ttlNode() {}
func (*TypeLit) ttlNode()   {}

func (n *TypeName) String() string  { return n.Name }
func (n *StringLit) String() string { return "'" + n.Value + "'" }
func (n *Number) String() string    { return strconv.Itoa(n.Value) }
func (n *TypeLit) String() string   { return "'" + n.Source + "'" }

func (n *UnionOp) String() string { return call("union", n.Alts) }

func (n *CondOp) String() string {
	return call("cond", []Node{n.Pred, n.Then, n.Else})
}

func (n *BoolPred) String() string { return call(n.Op.String(), n.Args) }
func (n *NamedOp) String() string  { return call(n.Op.String(), n.Args) }

func (n *BoolOp) String() string {
	switch n.Kind {
	case Not:
		return "!" + n.Args[0].String()
	case And:
		return "(" + n.Args[0].String() + " && " + n.Args[1].String() + ")"
	}
	return "(" + n.Args[0].String() + " || " + n.Args[1].String() + ")"
}

func (n *MapFunc) String() string {
	return "(" + strings.Join(n.Params, ", ") + ") => " + n.Body.String()
}

func (n *RecordLit) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range n.Props {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Computed {
			b.WriteString("[" + p.Key + "]")
		} else {
			b.WriteString(p.Key)
		}
		b.WriteString(": ")
		b.WriteString(p.Value.String())
	}
	b.WriteByte('}')
	return b.String()
}

func call(name string, args []Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// IsBoolean reports whether n can be used as a cond predicate.
func IsBoolean(n Node) bool {
	switch n.(type) {
	case *BoolPred, *BoolOp:
		return true
	}
	return false
}

// TypeVars returns the names referenced by n that are not bound by an
// enclosing map function, in order of first use.
func TypeVars(n Node) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(n Node, bound map[string]bool)
	walk = func(n Node, bound map[string]bool) {
		switch n := n.(type) {
		case *TypeName:
			if !bound[n.Name] && !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case *UnionOp:
			for _, a := range n.Alts {
				walk(a, bound)
			}
		case *CondOp:
			walk(n.Pred, bound)
			walk(n.Then, bound)
			walk(n.Else, bound)
		case *BoolPred:
			for _, a := range n.Args {
				walk(a, bound)
			}
		case *BoolOp:
			for _, a := range n.Args {
				walk(a, bound)
			}
		case *NamedOp:
			for _, a := range n.Args {
				walk(a, bound)
			}
		case *MapFunc:
			inner := make(map[string]bool, len(bound)+len(n.Params))
			for k := range bound {
				inner[k] = true
			}
			for _, p := range n.Params {
				inner[p] = true
			}
			walk(n.Body, inner)
		case *RecordLit:
			for _, p := range n.Props {
				walk(p.Value, bound)
			}
		}
	}
	walk(n, map[string]bool{})
	return names
}
