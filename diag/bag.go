package diag

import "sort"

// Bag collects diagnostics up to an optional limit.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag returns a bag holding at most max diagnostics; max <= 0 means no
// limit.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add returns false when the limit was reached and d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the collected diagnostics. The slice must not be modified.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Messages returns the user-facing text of every diagnostic in order.
func (b *Bag) Messages() []string {
	out := make([]string, len(b.items))
	for i, d := range b.items {
		out[i] = d.Text()
	}
	return out
}

func (b *Bag) HasErrors() bool {
	return b.HasAtLeast(SevError)
}

func (b *Bag) HasWarnings() bool {
	return b.HasAtLeast(SevWarning)
}

// HasAtLeast reports whether any diagnostic has severity sev or higher.
func (b *Bag) HasAtLeast(sev Severity) bool {
	for i := range b.items {
		if b.items[i].Severity >= sev {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics with exactly the given severity.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

// Merge appends the diagnostics of other, ignoring the limit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, then position, then severity (errors
// first). The sort is stable so diagnostics at the same place keep the order
// in which they were reported.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Span.Start.Offset != dj.Span.Start.Offset {
			return di.Span.Start.Offset < dj.Span.Start.Offset
		}
		return di.Severity > dj.Severity
	})
}
