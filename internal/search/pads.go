package search

import (
	"nonosolve/internal/bitset"
	"nonosolve/internal/core"
)

// ProbePad remembers which (cell, color) trials have already been probed
// during the current probing phase (C11), so Prober never repeats a trial
// whose outcome cannot have changed (domains only shrink between probes,
// so a previously-consistent branch stays consistent).
type ProbePad struct {
	tried map[*core.Cell]bitset.Set
}

// NewProbePad returns an empty pad.
func NewProbePad() *ProbePad {
	return &ProbePad{tried: make(map[*core.Cell]bitset.Set)}
}

// Tried reports whether (cell, c) was already probed.
func (p *ProbePad) Tried(cell *core.Cell, c int) bool {
	return p.tried[cell].Test(c)
}

// MarkTried records that (cell, c) has now been probed.
func (p *ProbePad) MarkTried(cell *core.Cell, c int) {
	p.tried[cell] = p.tried[cell].With(c)
}

// MergePad accumulates, across every consistent color trial of one
// candidate cell, the union of colors each cell on the grid ended up with.
// If that union ends up narrower than a cell's real domain, then every
// branch agreed on excluding some colors for that cell -- a conclusion
// that holds regardless of which color the candidate cell turns out to be,
// and so can be applied unconditionally.
type MergePad struct {
	union    map[*core.Cell]bitset.Set
	branches int
}

// NewMergePad returns an empty pad.
func NewMergePad() *MergePad {
	return &MergePad{union: make(map[*core.Cell]bitset.Set)}
}

// Reset clears the pad for a new candidate cell.
func (m *MergePad) Reset() {
	m.union = make(map[*core.Cell]bitset.Set)
	m.branches = 0
}

// Merge folds one consistent trial's resulting grid into the accumulator.
func (m *MergePad) Merge(rows []core.Line) {
	m.branches++
	for _, row := range rows {
		for _, cell := range row {
			m.union[cell] = m.union[cell].Union(cell.Domain)
		}
	}
}

// Apply checks every cell against the accumulated union and, where it is a
// strict subset of the cell's current domain, calls tighten to apply the
// deduction. Returns the number of cells tightened. A pad with zero merged
// branches (every trial contradicted) applies nothing, since try_everything
// and contradiction-elimination already cover that case elsewhere.
func (m *MergePad) Apply(rows []core.Line, tighten func(cell *core.Cell, newDomain bitset.Set) bool) int {
	if m.branches == 0 {
		return 0
	}
	hits := 0
	for _, row := range rows {
		for _, cell := range row {
			u, ok := m.union[cell]
			if !ok {
				continue
			}
			newDomain := cell.Domain.Intersect(u)
			if newDomain == cell.Domain {
				continue
			}
			if tighten(cell, newDomain) {
				hits++
			}
		}
	}
	return hits
}
