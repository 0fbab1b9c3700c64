package problem

// Reporter: минимальный контракт получения проблем от проверок.
// Реализации: BagReporter (кладёт в Bag), DedupReporter, MultiReporter (fan-out).
type Reporter interface {
	// Report returns false when the problem was dropped.
	Report(p Problem) bool
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(p Problem) bool {
	if r.Bag == nil {
		return false
	}
	return r.Bag.Add(p)
}

// DedupReporter wraps another Reporter and suppresses problems with the
// same kind and position. Suppressed problems do not reach next, so they
// never count against its cap.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique problems to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(p Problem) bool {
	if r == nil {
		return false
	}
	key := p.dedupKey()
	if _, ok := r.seen[key]; ok {
		return false
	}
	if r.next == nil || !r.next.Report(p) {
		return false
	}
	// только принятые: отброшенная по лимиту проблема не блокирует повтор
	r.seen[key] = struct{}{}
	return true
}

// MultiReporter fans out to every reporter; it reports true if any
// accepted the problem.
type MultiReporter []Reporter

func (m MultiReporter) Report(p Problem) bool {
	accepted := false
	for _, r := range m {
		if r != nil && r.Report(p) {
			accepted = true
		}
	}
	return accepted
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Problem) bool { return false }
