package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/source"
)

type palette struct {
	sev      map[diag.Severity]*color.Color
	location *color.Color
	gutter   *color.Color
	caret    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		location: color.New(color.Bold),
		gutter:   color.New(color.FgBlue),
		caret:    color.New(color.FgGreen, color.Bold),
	}
	for _, c := range append([]*color.Color{p.location, p.gutter, p.caret},
		p.sev[diag.SevError], p.sev[diag.SevWarning], p.sev[diag.SevInfo]) {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty writes diagnostics in the form
//
//	path:line:col: severity: message
//
// followed, when opts.Context is set and the file is known, by the source
// line and a ^~~~ underline of the span. Diagnostics are written in the
// order of bag.Items; call bag.Sort first for source order.
func Pretty(w io.Writer, bag *diag.Bag, files Sources, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	indexes := map[string]*source.LineIndex{}
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, files, indexes, p, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, files Sources, indexes map[string]*source.LineIndex, p palette, opts PrettyOpts) error {
	loc := fmt.Sprintf("%s:%s:", formatPath(d.File, opts.PathMode, opts.BaseDir), d.Span.Start)
	sev := p.sev[d.Severity]
	if sev == nil {
		sev = p.location
	}
	if _, err := fmt.Fprintf(w, "%s %s %s\n", p.location.Sprint(loc), sev.Sprint(d.Severity.String()+":"), d.Text()); err != nil {
		return err
	}
	if !opts.Context || files == nil || d.File == "" {
		return nil
	}
	text, ok := files(d.File)
	if !ok {
		return nil
	}
	idx := indexes[d.File]
	if idx == nil {
		idx = source.NewLineIndex(text)
		indexes[d.File] = idx
	}
	if d.Span.Start.Line >= idx.LineCount() {
		return nil
	}
	line := strings.TrimRight(idx.Line(d.Span.Start.Line), "\r\n")
	num := fmt.Sprintf("%d", d.Span.Start.Line+1)
	pad := strings.Repeat(" ", len(num))

	if _, err := fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), expandTabs(line, opts.TabWidth)); err != nil {
		return err
	}
	lead, width := underline(line, d.Span, opts.TabWidth)
	mark := "^" + strings.Repeat("~", width-1)
	_, err := fmt.Fprintf(w, "%s %s %s%s\n", pad, p.gutter.Sprint("|"), lead, p.caret.Sprint(mark))
	return err
}

// underline returns the text that moves the caret below the span start and
// the display width of the span on its first line, at least 1.
func underline(line string, span source.Span, tabWidth int) (string, int) {
	runes := []rune(line)
	start := min(span.Start.Column, len(runes))
	end := len(runes)
	if span.End.Line == span.Start.Line {
		end = min(span.End.Column, len(runes))
	}

	var lead strings.Builder
	for _, r := range runes[:start] {
		switch {
		case r == '\t' && tabWidth <= 0:
			lead.WriteByte('\t')
		case r == '\t':
			lead.WriteString(strings.Repeat(" ", tabWidth))
		default:
			lead.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
	}
	width := 0
	if end > start {
		width = runewidth.StringWidth(expandTabs(string(runes[start:end]), tabWidth))
	}
	return lead.String(), max(width, 1)
}

func expandTabs(s string, tabWidth int) string {
	if tabWidth <= 0 {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Summary counts diagnostics by severity, as in "2 errors, 1 warning".
func Summary(bag *diag.Bag) string {
	var parts []string
	for _, sev := range []diag.Severity{diag.SevError, diag.SevWarning, diag.SevInfo} {
		n := bag.Count(sev)
		if n == 0 {
			continue
		}
		name := sev.String()
		if sev == diag.SevInfo {
			name = "note"
		}
		if n != 1 {
			name += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
	}
	if len(parts) == 0 {
		return "no problems"
	}
	return strings.Join(parts, ", ")
}
