package c14n

import "sort"

// permuter enumerates the distinct permutations of a list of strings in
// lexicographic order, one at a time, without materializing them.
type permuter struct {
	items   []string
	started bool
	done    bool
}

func newPermuter(items []string) *permuter {
	p := &permuter{items: append([]string(nil), items...)}
	sort.Strings(p.items)
	return p
}

// Next advances to the next permutation. The first call yields the sorted
// order.
func (p *permuter) Next() bool {
	if p.done {
		return false
	}
	if !p.started {
		p.started = true
		return true
	}

	items := p.items
	i := len(items) - 2
	for i >= 0 && items[i] >= items[i+1] {
		i--
	}
	if i < 0 {
		p.done = true
		return false
	}

	j := len(items) - 1
	for items[j] <= items[i] {
		j--
	}
	items[i], items[j] = items[j], items[i]

	for l, r := i+1, len(items)-1; l < r; l, r = l+1, r-1 {
		items[l], items[r] = items[r], items[l]
	}
	return true
}

// Permutation returns the current permutation. The slice is reused by the
// following call to Next.
func (p *permuter) Permutation() []string {
	return p.items
}
