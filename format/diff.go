package format

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff renders the line by line difference between two texts, marking
// removed lines with "-" and added lines with "+". Unchanged lines are
// kept when context is set. The result is empty when the texts are equal.
func LineDiff(name, before, after string, context bool) string {
	if before == after {
		return ""
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString("--- " + name + "\n+++ " + name + "\n")
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		case diffpatch.DiffEqual:
			if !context {
				continue
			}
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix + line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}
	return sb.String()
}
