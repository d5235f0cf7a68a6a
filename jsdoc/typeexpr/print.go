package typeexpr

import (
	"fmt"
	"strings"
)

func (t *Named) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	return t.Name + "<" + joinTypes(t.Args, ",") + ">"
}

func (t *Nullable) String() string { return "?" + t.Inner.String() }
func (t *NonNull) String() string  { return "!" + t.Inner.String() }
func (t *Optional) String() string { return t.Inner.String() + "=" }

func (t *VarArgs) String() string {
	if t.Inner == nil {
		return "..."
	}
	return "..." + t.Inner.String()
}

func (t *Union) String() string {
	return "(" + joinTypes(t.Alts, "|") + ")"
}

func (t *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		if _, unknown := f.Type.(*Unknown); !unknown {
			b.WriteString(": ")
			b.WriteString(f.Type.String())
		}
	}
	b.WriteByte('}')
	return b.String()
}

func (t *Function) String() string {
	var b strings.Builder
	b.WriteString("function(")
	var parts []string
	if t.This != nil {
		ctx := "this:"
		if t.IsNew {
			ctx = "new:"
		}
		parts = append(parts, ctx+t.This.String())
	}
	for _, p := range t.Params {
		parts = append(parts, p.String())
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteByte(')')
	if t.Result != nil {
		b.WriteString(": ")
		b.WriteString(t.Result.String())
	}
	return b.String()
}

func (*Any) String() string     { return "*" }
func (*Unknown) String() string { return "?" }
func (*Void) String() string    { return "void" }
func (*Null) String() string    { return "null" }

func (t *ArrayLiteral) String() string {
	return "[" + joinTypes(t.Elems, ",") + "]"
}

// Dump renders t as an indented tree, one node per line.
func Dump(t Type) string {
	var b strings.Builder
	dump(&b, t, 0, "")
	return b.String()
}

func dump(b *strings.Builder, t Type, depth int, label string) {
	indent := strings.Repeat("  ", depth)
	if t == nil {
		return
	}
	fmt.Fprintf(b, "%s%s%s", indent, label, t.Kind())
	switch t := t.(type) {
	case *Named:
		fmt.Fprintf(b, " %s\n", t.Name)
		for _, a := range t.Args {
			dump(b, a, depth+1, "")
		}
	case *Nullable:
		b.WriteByte('\n')
		dump(b, t.Inner, depth+1, "")
	case *NonNull:
		b.WriteByte('\n')
		dump(b, t.Inner, depth+1, "")
	case *Optional:
		b.WriteByte('\n')
		dump(b, t.Inner, depth+1, "")
	case *VarArgs:
		b.WriteByte('\n')
		dump(b, t.Inner, depth+1, "")
	case *Union:
		b.WriteByte('\n')
		for _, a := range t.Alts {
			dump(b, a, depth+1, "")
		}
	case *Record:
		b.WriteByte('\n')
		for _, f := range t.Fields {
			dump(b, f.Type, depth+1, f.Name+": ")
		}
	case *Function:
		if t.IsNew {
			b.WriteString(" new")
		}
		b.WriteByte('\n')
		if t.This != nil {
			ctx := "this: "
			if t.IsNew {
				ctx = "new: "
			}
			dump(b, t.This, depth+1, ctx)
		}
		for _, p := range t.Params {
			dump(b, p, depth+1, "param: ")
		}
		if t.Result != nil {
			dump(b, t.Result, depth+1, "result: ")
		}
	case *ArrayLiteral:
		b.WriteByte('\n')
		for _, e := range t.Elems {
			dump(b, e, depth+1, "")
		}
	default:
		b.WriteByte('\n')
	}
}
