package search

import (
	"nonosolve/internal/bitset"
	"nonosolve/internal/core"
)

// ExhaustFallback runs "try everything" (C7): for every unsolved cell, for
// every color still in its domain, tentatively pin the cell to that color
// and run the line solver on each line through it, without touching the
// job queue. If every such line stays satisfiable, no conclusion is drawn.
// If any line becomes unsatisfiable, that color is provably impossible and
// is removed from the cell's domain permanently.
//
// This recovers the completeness the per-line solver is not required to
// have (spec.md §4.7); it restores every trial cell's state on every exit
// path.
type ExhaustFallback struct {
	Puzzle *core.Puzzle
	Sol    *core.Solution
	Queue  *JobQueue
	Line   LineSolver

	Runs  int // number of times Run was called
	Cells int // cumulative (cell,color) eliminations
}

// Run performs one sweep over every unsolved cell. Returns the number of
// domain bits eliminated this sweep.
func (e *ExhaustFallback) Run() int {
	e.Runs++
	hits := 0

	rows := e.Sol.Lines[core.DirRow]
	for _, row := range rows {
		for _, cell := range row {
			if cell.N == 1 {
				continue
			}
			hits += e.tryCell(cell)
		}
	}

	e.Cells += hits
	return hits
}

// tryCell trials every remaining color of one cell, restoring the cell's
// real domain and n on every exit path.
func (e *ExhaustFallback) tryCell(cell *core.Cell) int {
	realDomain := cell.Domain
	realN := cell.N
	hits := 0

	for c := 0; c < e.Puzzle.NColor(); c++ {
		if !realDomain.Test(c) {
			continue
		}
		if !e.trialColor(cell, c) {
			realDomain = realDomain.Without(c)
			realN--
			hits++
			if realN == 1 {
				break
			}
		}
	}

	cell.Domain = realDomain
	cell.N = realN
	if hits > 0 {
		e.Queue.AddCell(e.Puzzle, cell)
		if realN == 1 {
			e.Puzzle.NSolved++
		}
	}
	return hits
}

type savedCell struct {
	n      int
	domain bitset.Set
}

// trialColor pins cell to c and checks every crossing line against the
// line solver, without touching the job queue or leaving any permanent
// mutation. Reports whether the trial stayed feasible.
func (e *ExhaustFallback) trialColor(cell *core.Cell, c int) bool {
	saved := make(map[*core.Cell]savedCell)
	save := func(cl *core.Cell) {
		if _, ok := saved[cl]; !ok {
			saved[cl] = savedCell{n: cl.N, domain: cl.Domain}
		}
	}

	save(cell)
	cell.Domain = bitset.Single(c)
	cell.N = 1

	feasible := true
	for dir := 0; dir < e.Puzzle.NSet && feasible; dir++ {
		idx := cell.Coord[dir]
		line := e.Sol.Lines[dir][idx]
		lc := e.Puzzle.Clue[dir][idx]

		for _, lcell := range line {
			save(lcell)
		}
		if !e.Line.Solve(line, &lc) {
			feasible = false
		}
	}

	for cl, s := range saved {
		cl.Domain = s.domain
		cl.N = s.n
	}
	return feasible
}
