package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/closuredoc/jsdoc"
)

// LineEncoder writes one tab separated line per comment:
// line, kind, declaration, type, visibility and flags.
type LineEncoder struct {
	w    io.Writer
	file File
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(file File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, d := range e.file.Docs {
		fmt.Fprintf(&sb, "%s:%d\t%s\t%s\t%s\t%s\t%s\n",
			e.file.Name,
			d.Comment.Span.Start.Line+1,
			Kind(d.Info),
			orDash(d.Comment.Declaration),
			orDash(signature(d.Info)),
			orDash(visibilityStr(d.Info)),
			orDash(strings.Join(d.Info.Flags.Names(), ",")),
		)
	}
	return []byte(sb.String()), nil
}

// signature summarizes the types of a record in one line.
func signature(info *jsdoc.Info) string {
	switch {
	case info.TypedefType != nil:
		return typeText(info.TypedefType)
	case info.EnumType != nil:
		return typeText(info.EnumType)
	case info.ParameterCount() > 0 || info.ReturnType != nil:
		params := make([]string, len(info.Params))
		for i, p := range info.Params {
			if p.Type == nil {
				params[i] = p.Name
			} else {
				params[i] = p.Name + ": " + typeText(p.Type)
			}
		}
		s := "(" + strings.Join(params, ", ") + ")"
		if info.ReturnType != nil {
			s += ": " + typeText(info.ReturnType)
		}
		return s
	}
	return typeText(info.Type)
}

func visibilityStr(info *jsdoc.Info) string {
	if info.Visibility == jsdoc.Inherited {
		return ""
	}
	return info.Visibility.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
