package problem

import "slices"

// Unlimited disables the cap of a Bag.
const Unlimited = -1

// Bag collects problems up to a cap.
type Bag struct {
	items []Problem
	max   int
}

// NewBag returns a bag holding at most max problems, or any number
// for Unlimited.
func NewBag(max int) *Bag {
	capHint := max
	if capHint < 0 || capHint > 64 {
		capHint = 8
	}
	return &Bag{
		items: make([]Problem, 0, capHint),
		max:   max,
	}
}

// Add добавляет проблему, учитывая лимит.
// Возвращает false, если проблема не добавлена (достигнут лимит).
func (b *Bag) Add(p Problem) bool {
	if b.Full() {
		return false
	}
	b.items = append(b.items, p)
	return true
}

// Full reports whether the next Add would be dropped.
func (b *Bag) Full() bool {
	return b.max != Unlimited && len(b.items) >= b.max
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы одна проблема с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity() >= SevError {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice проблем.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Problem {
	return b.items
}

// Merge объединяет проблемы из другого Bag.
// Лимит растёт, если нужно вместить все элементы.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max != Unlimited {
		b.max = max(b.max, len(b.items)+len(other.items))
	}
	b.items = append(b.items, other.items...)
}

// Sort orders problems by path, line, column, then kind, keeping the
// insertion order of equal problems.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, Problem.Compare)
}

// Dedup keeps the first problem of each (kind, position).
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	out := b.items[:0]
	for _, p := range b.items {
		k := p.dedupKey()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	clear(b.items[len(out):])
	b.items = out
}
