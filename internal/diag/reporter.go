package diag

// Reporter: минимальный контракт получения диагностик.
// Реализации: BagReporter (кладёт в Bag), DedupReporter, FilterReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// DedupReporter wraps another Reporter and suppresses diagnostics identical
// to one already forwarded.
type DedupReporter struct {
	next Reporter
	seen map[Diagnostic]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[Diagnostic]struct{}),
	}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	if _, ok := r.seen[d]; ok {
		return
	}
	r.seen[d] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

// WarningPolicy controls how FilterReporter treats warnings.
type WarningPolicy uint8

const (
	WarningsKeep WarningPolicy = iota
	// WarningsDrop discards warning and info diagnostics.
	WarningsDrop
	// WarningsAsErrors rewrites warnings to errors.
	WarningsAsErrors
)

// FilterReporter applies a WarningPolicy before forwarding.
type FilterReporter struct {
	Next   Reporter
	Policy WarningPolicy
}

func (r FilterReporter) Report(d Diagnostic) {
	if r.Next == nil {
		return
	}
	sev := d.Severity()
	switch r.Policy {
	case WarningsDrop:
		if sev < SevError {
			return
		}
	case WarningsAsErrors:
		if sev == SevWarning {
			d.Kind = SevError.Label()
		}
	}
	r.Next.Report(d)
}
