// Package token splits the body of a documentation comment into tokens and
// provides a cursor over the resulting token vector.
package token

import "github.com/dhamidi/closuredoc/source"

type Kind int

const (
	EOF Kind = iota
	EOC
	EOL
	Annotation
	String
	Star
	Comma
	Colon
	Bang
	QMark
	Pipe
	AndAnd
	Equals
	Ellipsis
	LeftAngle
	RightAngle
	LeftCurly
	RightCurly
	LeftParen
	RightParen
	LeftSquare
	RightSquare
)

var kindNames = [...]string{
	EOF:         "EOF",
	EOC:         "*/",
	EOL:         "EOL",
	Annotation:  "annotation",
	String:      "string",
	Star:        "*",
	Comma:       ",",
	Colon:       ":",
	Bang:        "!",
	QMark:       "?",
	Pipe:        "|",
	AndAnd:      "&&",
	Equals:      "=",
	Ellipsis:    "...",
	LeftAngle:   "<",
	RightAngle:  ">",
	LeftCurly:   "{",
	RightCurly:  "}",
	LeftParen:   "(",
	RightParen:  ")",
	LeftSquare:  "[",
	RightSquare: "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsEnd reports whether k terminates the comment.
func (k Kind) IsEnd() bool {
	return k == EOC || k == EOF
}

// Token is one lexical unit of a comment. Text holds the tag name (without
// "@") of an Annotation token and the source text of every other token.
type Token struct {
	Kind Kind
	Text string
	Span source.Span
}

func (t Token) String() string {
	switch t.Kind {
	case String:
		return t.Text
	case Annotation:
		return "@" + t.Text
	}
	return t.Kind.String()
}
