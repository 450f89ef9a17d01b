package search

import (
	"nonosolve/internal/bitset"
	"nonosolve/internal/core"
)

// GuessCell pins cell to color c, marking this as a branch point in the
// history (and starting history recording if it wasn't active already),
// then enqueues every line crossing the cell.
func GuessCell(puz *core.Puzzle, q *JobQueue, hist *History, cell *core.Cell, c int) {
	hist.Push(cell)

	cell.Domain = bitset.Single(c)
	cell.N = 1
	puz.NSolved++

	q.AddCell(puz, cell)
}
