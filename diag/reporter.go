package diag

import "sync"

// Reporter receives diagnostics as they are produced.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter writes into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// FuncReporter adapts a (message, line, column) callback. Lines and columns
// are zero-based.
type FuncReporter func(message string, line, column int)

func (f FuncReporter) Report(d Diagnostic) {
	f(d.Text(), d.Span.Start.Line, d.Span.Start.Column)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// MultiReporter fans a diagnostic out to every reporter.
type MultiReporter []Reporter

func (m MultiReporter) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}

// SyncReporter serializes calls to the wrapped reporter so that it may be
// shared between goroutines.
type SyncReporter struct {
	mu   sync.Mutex
	next Reporter
}

func NewSyncReporter(next Reporter) *SyncReporter {
	return &SyncReporter{next: next}
}

func (r *SyncReporter) Report(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next.Report(d)
}

type dedupKey struct {
	sev   Severity
	cat   Category
	file  string
	start int
	msg   string
}

// DedupReporter suppresses repeated diagnostics with the same message at
// the same place.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	key := dedupKey{d.Severity, d.Category, d.File, d.Span.Start.Offset, d.Message}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(d)
}
