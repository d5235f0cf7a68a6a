package format

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// HTMLEncoder renders the Markdown documentation of a file to HTML.
type HTMLEncoder struct {
	w    io.Writer
	file File
	md   *MarkdownEncoder
}

func NewHTMLEncoder(w io.Writer) *HTMLEncoder {
	return &HTMLEncoder{w: w, md: NewMarkdownEncoder(nil)}
}

// SetAll includes private declarations.
func (e *HTMLEncoder) SetAll(all bool) {
	e.md.All = all
}

func (e *HTMLEncoder) Encode(file File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *HTMLEncoder) MarshalText() ([]byte, error) {
	e.md.file = e.file
	src, err := e.md.MarshalText()
	if err != nil {
		return nil, err
	}
	return RenderHTML(src)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts Markdown to an HTML fragment.
func RenderHTML(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary returns the plain text of the first paragraph of a Markdown
// description.
func Summary(description string) string {
	src := []byte(description)
	doc := markdown.Parser().Parse(text.NewReader(src))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if _, ok := n.(*ast.Paragraph); ok {
			return plainText(n, src)
		}
	}
	return ""
}

func plainText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
			continue
		}
		buf.WriteString(plainText(c, src))
	}
	return buf.String()
}
