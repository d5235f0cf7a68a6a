package format

import (
	"sort"

	"github.com/dhamidi/closuredoc/jsdoc"
)

// Edit replaces Text[Start:End] of a file.
type Edit struct {
	Start, End int
	New        string
}

// CanonicalTypeEdits returns the edits that rewrite every braced type
// annotation of docs in its canonical form. text is the file the docs were
// parsed from. Edits are sorted by offset and do not overlap.
func CanonicalTypeEdits(text string, docs []jsdoc.Doc) []Edit {
	var edits []Edit
	for _, d := range docs {
		for _, m := range d.Info.Markers {
			if m.Type == nil || !m.Type.Brackets {
				continue
			}
			start, end := m.Type.Span.Start.Offset+1, m.Type.Span.End.Offset
			if start > end || end >= len(text) || text[end] != '}' {
				continue
			}
			canonical := m.Type.Type.String()
			if text[start:end] == canonical {
				continue
			}
			edits = append(edits, Edit{Start: start, End: end, New: canonical})
		}
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Start < edits[j].Start })
	return edits
}

// Apply returns text with the edits applied.
func Apply(text string, edits []Edit) string {
	out := make([]byte, 0, len(text))
	last := 0
	for _, e := range edits {
		if e.Start < last {
			continue
		}
		out = append(out, text[last:e.Start]...)
		out = append(out, e.New...)
		last = e.End
	}
	out = append(out, text[last:]...)
	return string(out)
}
