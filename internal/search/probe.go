package search

import (
	"nonosolve/internal/bitset"
	"nonosolve/internal/core"
)

// ProbeOutcome is the result of one probing sweep (C9).
type ProbeOutcome int

const (
	// ProbeLogical means a deduction was found and already applied
	// (either a color was proven impossible, or the merge pad found a
	// universal consequence); the caller should re-run propagation.
	ProbeLogical ProbeOutcome = iota
	// ProbeSolved means a trial propagation completed the puzzle outright
	// ("solved by luck"); the branch was left in place, not undone.
	ProbeSolved
	// ProbeGuess means no logical deduction was found; Cell/Color name
	// the best candidate guess (fewest cells left unsolved after its
	// trial) for the caller to commit as a branch point.
	ProbeGuess
	// ProbeNone means there were no candidate cells to probe at all.
	ProbeNone
)

// ProbeResult is returned by Prober.Run.
type ProbeResult struct {
	Outcome ProbeOutcome
	Cell    *core.Cell
	Color   int
}

// Prober implements probing (C9): for each candidate cell, it tentatively
// guesses each untried remaining color in turn and fully propagates.
//
//   - A color that leads to a contradiction is eliminated from the cell's
//     domain permanently; the whole sweep aborts and reports ProbeLogical.
//   - A color whose propagation completes the puzzle is kept in place and
//     reported as ProbeSolved.
//   - A color that stalls contributes its resulting grid to a MergePad and
//     is undone; if its nleft is the best seen so far, it becomes the
//     current best guess candidate.
//
// Once every color of a candidate cell has stalled, the merge pad is
// checked: any cell every branch agreed on can be tightened unconditionally
// and the sweep aborts reporting ProbeLogical. Otherwise probing continues
// to the next candidate cell.
type Prober struct {
	Puzzle *core.Puzzle
	Sol    *core.Solution
	Queue  *JobQueue
	Hist   *History
	Line   LineSolver

	Pad   *ProbePad
	Merge *MergePad

	// ProbeLevel mirrors Switches.ProbeLevel (spec.md §6). At 1, Run only
	// does the all-cells scan. At 2 or higher it first walks history
	// newest-to-last-branch, probing the unsolved orthogonal neighbors of
	// each mutated cell, before falling through to the all-cells scan.
	ProbeLevel int

	Runs int // number of full-grid probing sweeps
	Hits int // cumulative sweeps ended by a logical deduction or a lucky solve
}

// NewProber wires a prober over the given puzzle state.
func NewProber(puz *core.Puzzle, sol *core.Solution, q *JobQueue, hist *History, line LineSolver) *Prober {
	return &Prober{
		Puzzle: puz, Sol: sol, Queue: q, Hist: hist, Line: line,
		Pad: NewProbePad(), Merge: NewMergePad(), ProbeLevel: 1,
	}
}

// ResetPad forgets every previously-tried (cell, color) pair. The top-level
// search calls this whenever it makes or undoes a guess, since a changed
// grid may make a previously-untried probe newly worth running (it never
// makes a previously-tried one worth repeating).
func (p *Prober) ResetPad() {
	p.Pad = NewProbePad()
}

// Run performs one probing sweep. At ProbeLevel 2 or higher it first runs
// the history-neighbor pass; it then probes, in row-major order, every
// unsolved cell with at least two solved or off-grid orthogonal neighbors.
func (p *Prober) Run() ProbeResult {
	p.Runs++

	rows := p.Sol.Lines[core.DirRow]
	bestNLeft := p.Puzzle.NCells + 1
	var bestCell *core.Cell
	bestColor := -1
	sawCandidate := false

	if p.ProbeLevel > 1 {
		entries := p.Hist.entries
		height := len(rows)
		for k := len(entries) - 1; k >= 0; k-- {
			e := entries[k]
			ci, cj := e.cell.Coord[0], e.cell.Coord[1]
			width := len(rows[ci])

			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				ni, nj := ci+d[0], cj+d[1]
				if ni < 0 || ni >= height || nj < 0 || nj >= width {
					continue
				}
				cell := rows[ni][nj]
				if cell.N == 1 {
					continue
				}
				sawCandidate = true

				result, logical := p.probeCell(cell, rows, &bestNLeft, &bestCell, &bestColor)
				if logical {
					p.Hits++
					return result
				}
			}

			if e.branch {
				break
			}
		}
	}

	for i, row := range rows {
		for j, cell := range row {
			if cell.N == 1 || core.CountNeighbors(p.Sol, i, j) < 2 {
				continue
			}
			sawCandidate = true

			result, logical := p.probeCell(cell, rows, &bestNLeft, &bestCell, &bestColor)
			if logical {
				p.Hits++
				return result
			}
		}
	}

	if !sawCandidate || bestCell == nil {
		return ProbeResult{Outcome: ProbeNone}
	}
	return ProbeResult{Outcome: ProbeGuess, Cell: bestCell, Color: bestColor}
}

// probeCell probes every untried color of one candidate cell. It returns
// (result, true) the moment a logical deduction or a lucky solve is found,
// in which case the caller must stop the sweep immediately. Otherwise it
// returns (zero, false) having updated *bestNLeft/*bestCell/*bestColor with
// the best stalled outcome seen on this cell.
func (p *Prober) probeCell(cell *core.Cell, rows []core.Line, bestNLeft *int, bestCell **core.Cell, bestColor *int) (ProbeResult, bool) {
	prop := NewPropagator(p.Puzzle, p.Sol, p.Queue, p.Hist, p.Line)
	p.Merge.Reset()
	merging := true

	for c := 0; c < p.Puzzle.NColor(); c++ {
		if !cell.MayBe(c) {
			continue
		}
		if p.Pad.Tried(cell, c) {
			// A previous probe's consequences already cover this one; we
			// can no longer claim every alternative on this cell was
			// tried, so merging on this cell is abandoned.
			merging = false
			continue
		}
		p.Pad.MarkTried(cell, c)

		mark := p.Hist.Mark()
		GuessCell(p.Puzzle, p.Queue, p.Hist, cell, c)

		if !prop.LogicSolve() {
			p.Hist.UndoTo(p.Puzzle, mark)
			tighten(p.Puzzle, p.Queue, p.Hist, cell, cell.Domain.Without(c))
			return ProbeResult{Outcome: ProbeLogical}, true
		}

		if p.Sol.IsSolved() {
			return ProbeResult{Outcome: ProbeSolved}, true
		}

		nleft := p.Puzzle.NCells - p.Puzzle.NSolved
		if nleft < *bestNLeft {
			*bestNLeft = nleft
			*bestCell = cell
			*bestColor = c
		}
		p.Merge.Merge(rows)
		p.Hist.UndoTo(p.Puzzle, mark)
	}

	if !merging {
		return ProbeResult{}, false
	}
	hits := p.Merge.Apply(rows, func(cl *core.Cell, nd bitset.Set) bool {
		return tighten(p.Puzzle, p.Queue, p.Hist, cl, nd)
	})
	if hits > 0 {
		return ProbeResult{Outcome: ProbeLogical}, true
	}
	return ProbeResult{}, false
}

// tighten applies a permanent domain narrowing discovered outside the
// normal line-solve path (contradiction elimination, merge-pad deduction):
// it records history, updates n, enqueues crossing lines, and credits
// NSolved if the cell just became a singleton. Reports whether anything
// actually changed.
func tighten(puz *core.Puzzle, q *JobQueue, hist *History, cell *core.Cell, newDomain bitset.Set) bool {
	if newDomain == cell.Domain {
		return false
	}
	if hist.Active() {
		hist.entries = append(hist.entries, histEntry{cell: cell, n: cell.N, domain: cell.Domain, branch: false})
	}
	wasSingle := cell.N == 1
	cell.Domain = newDomain
	cell.N = newDomain.Count()
	q.AddCell(puz, cell)
	if cell.N == 1 && !wasSingle {
		puz.NSolved++
	}
	return true
}
