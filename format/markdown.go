package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/closuredoc/jsdoc"
)

// MarkdownEncoder writes API documentation for every documented
// declaration of a file. Descriptions are copied as Markdown.
type MarkdownEncoder struct {
	w    io.Writer
	file File
	// All includes private declarations.
	All bool
}

func NewMarkdownEncoder(w io.Writer) *MarkdownEncoder {
	return &MarkdownEncoder{w: w}
}

func (e *MarkdownEncoder) Encode(file File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *MarkdownEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	overview := jsdoc.FileOverview(e.file.Docs)

	fmt.Fprintf(&sb, "# %s\n\n", e.file.Name)
	if overview != nil && overview.FileOverview != "" {
		sb.WriteString(overview.FileOverview + "\n\n")
	}
	if overview != nil && overview.License != "" {
		sb.WriteString("```\n" + strings.TrimSpace(overview.License) + "\n```\n\n")
	}

	for _, d := range e.file.Docs {
		if !e.documented(d, overview) {
			continue
		}
		e.writeDoc(&sb, d, overview)
	}
	return []byte(sb.String()), nil
}

func (e *MarkdownEncoder) documented(d jsdoc.Doc, overview *jsdoc.Info) bool {
	if d.Comment.Declaration == "" || d.Info.IsFileOverview() || d.Info.Has(jsdoc.FlagInlineType) {
		return false
	}
	return e.All || jsdoc.EffectiveVisibility(d.Info, overview) != jsdoc.Private
}

func (e *MarkdownEncoder) writeDoc(sb *strings.Builder, d jsdoc.Doc, overview *jsdoc.Info) {
	info := d.Info
	fmt.Fprintf(sb, "## `%s`\n\n", d.Comment.Declaration)

	var meta []string
	meta = append(meta, "*"+Kind(info)+"*")
	if v := jsdoc.EffectiveVisibility(info, overview); v != jsdoc.Inherited {
		meta = append(meta, v.String())
	}
	if sig := signature(info); sig != "" {
		meta = append(meta, "`"+sig+"`")
	}
	sb.WriteString(strings.Join(meta, " · ") + "\n\n")

	if info.IsDeprecated() {
		sb.WriteString("> **Deprecated.**")
		if info.DeprecationReason != "" {
			sb.WriteString(" " + info.DeprecationReason)
		}
		sb.WriteString("\n\n")
	}
	if desc := firstNonEmpty(info.BlockDescription, info.Description); desc != "" {
		sb.WriteString(desc + "\n\n")
	}
	if info.BaseType != nil {
		fmt.Fprintf(sb, "Extends `%s`.\n\n", typeText(unwrapNonNull(info.BaseType)))
	}
	if len(info.ImplementedInterfaces) > 0 || len(info.ExtendedInterfaces) > 0 {
		var names []string
		for _, t := range append(info.ExtendedInterfaces, info.ImplementedInterfaces...) {
			names = append(names, "`"+typeText(unwrapNonNull(t))+"`")
		}
		fmt.Fprintf(sb, "Implements %s.\n\n", strings.Join(names, ", "))
	}
	if len(info.Templates) > 0 {
		fmt.Fprintf(sb, "Type parameters: `%s`\n\n", strings.Join(info.TemplateTypeNames(), "`, `"))
	}
	if len(info.Params) > 0 {
		sb.WriteString("**Parameters**\n\n")
		for _, p := range info.Params {
			fmt.Fprintf(sb, "- `%s`", p.Name)
			if p.Type != nil {
				fmt.Fprintf(sb, " `%s`", typeText(p.Type))
			}
			if p.Description != "" {
				sb.WriteString(": " + p.Description)
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	if info.ReturnType != nil {
		fmt.Fprintf(sb, "**Returns** `%s`", typeText(info.ReturnType))
		if info.ReturnDescription != "" {
			sb.WriteString(": " + info.ReturnDescription)
		}
		sb.WriteString("\n\n")
	}
	for _, t := range info.Throws {
		fmt.Fprintf(sb, "**Throws** `%s`", typeText(t.Type))
		if t.Description != "" {
			sb.WriteString(": " + t.Description)
		}
		sb.WriteString("\n\n")
	}
	for _, r := range info.References {
		fmt.Fprintf(sb, "See %s\n\n", r)
	}
}
