package search

import (
	"nonosolve/internal/bitset"
	"nonosolve/internal/core"
)

// histEntry records a cell's state immediately before it was mutated, so
// the mutation can be undone.
type histEntry struct {
	cell   *core.Cell
	n      int
	domain bitset.Set
	branch bool
}

// History is the undo stack (C4). It is lazily "active" from the first
// branch push: propagation does not bother recording plain tightenings
// until there is at least one guess to backtrack past.
type History struct {
	entries []histEntry
	active  bool
}

// NewHistory returns an empty, inactive history.
func NewHistory() *History {
	return &History{}
}

// Active reports whether entries are currently being recorded.
func (h *History) Active() bool {
	return h.active
}

// Empty reports whether the stack has no entries.
func (h *History) Empty() bool {
	return len(h.entries) == 0
}

// Record pushes cell's current state with branch=false. A no-op unless the
// history is active (i.e. at least one guess has been made).
func (h *History) Record(cell *core.Cell) {
	if !h.active {
		return
	}
	h.entries = append(h.entries, histEntry{cell: cell, n: cell.N, domain: cell.Domain, branch: false})
}

// Push saves cell's current state as a branch point and activates
// recording. Used right before a guess narrows cell to one color.
func (h *History) Push(cell *core.Cell) {
	h.active = true
	h.entries = append(h.entries, histEntry{cell: cell, n: cell.N, domain: cell.Domain, branch: true})
}

// Mark returns a checkpoint usable with UndoTo.
func (h *History) Mark() int {
	return len(h.entries)
}

// UndoTo pops entries down to mark, restoring each cell's saved state
// without inverting anything, and keeping puz.NSolved in step with every
// restored cell's solved/unsolved status. Used to rewind a completed probe
// back to its starting point.
func (h *History) UndoTo(puz *core.Puzzle, mark int) {
	for len(h.entries) > mark {
		e := h.pop()
		restore(puz, e)
	}
}

// restore writes e's saved domain/n back onto e.cell and adjusts
// puz.NSolved for the resulting change in solved status.
func restore(puz *core.Puzzle, e histEntry) {
	wasSolved := e.cell.N == 1
	e.cell.Domain = e.domain
	e.cell.N = e.n
	nowSolved := e.n == 1
	if wasSolved && !nowSolved {
		puz.NSolved--
	} else if !wasSolved && nowSolved {
		puz.NSolved++
	}
}

func (h *History) pop() histEntry {
	n := len(h.entries)
	e := h.entries[n-1]
	h.entries[n-1] = histEntry{}
	h.entries = h.entries[:n-1]
	return e
}

// Backtrack pops entries, restoring each, until it pops one whose branch
// flag is set; at that point it inverts the guess (clears the
// just-guessed color from the cell's domain, decrementing n) and enqueues
// the cell's lines. Returns true iff no branch entry is found (the stack
// was empty, or held only plain entries, which are all restored): the
// puzzle has no solution.
func (h *History) Backtrack(puz *core.Puzzle, q *JobQueue) bool {
	if h.Empty() {
		return true
	}
	for {
		e := h.pop()
		if !e.branch {
			restore(puz, e)
			if h.Empty() {
				return true
			}
			continue
		}

		// e.cell currently holds the single guessed color (solved cells
		// are never mutated again except by undo, so it's unchanged
		// since the guess was made).
		guessed, ok := e.cell.Domain.Only()
		if !ok {
			panic("search: branch entry's cell was not a singleton at backtrack time")
		}

		puz.NSolved-- // undo the credit the guess gave itself
		newDomain := e.domain.Without(guessed)
		e.cell.Domain = newDomain
		e.cell.N = newDomain.Count()
		if e.cell.N == 1 {
			puz.NSolved++
		}
		q.AddCell(puz, e.cell)
		return false
	}
}
