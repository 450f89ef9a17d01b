package search

import (
	"nonosolve/internal/bitset"
	"nonosolve/internal/core"
)

// Propagator drains the job queue against a LineSolver until it stalls or
// hits a contradiction (C6). It is deterministic in the current state: it
// never itself makes a guess.
type Propagator struct {
	Puzzle  *core.Puzzle
	Sol     *core.Solution
	Queue   *JobQueue
	Hist    *History
	Line    LineSolver
	NLines  int // lines processed, for Stats
}

// NewPropagator wires a propagator over the given puzzle state.
func NewPropagator(puz *core.Puzzle, sol *core.Solution, q *JobQueue, hist *History, line LineSolver) *Propagator {
	return &Propagator{Puzzle: puz, Sol: sol, Queue: q, Hist: hist, Line: line}
}

// LogicSolve drains the job queue, applying the line solver to each queued
// line. Returns false the moment a line is found unsatisfiable
// (contradiction); true once the queue empties (stalled but consistent, or
// solved).
func (p *Propagator) LogicSolve() bool {
	for {
		dir, i, ok := p.Queue.Next(p.Puzzle)
		if !ok {
			return true
		}
		p.NLines++

		line := p.Sol.Lines[dir][i]
		lc := &p.Puzzle.Clue[dir][i]

		before := snapshotLine(line)
		if !p.Line.Solve(line, lc) {
			return false
		}
		p.applyTightenings(line, before)
	}
}

type cellSnapshot struct {
	n      int
	domain bitset.Set
}

// snapshotLine records each cell's (n, domain) before a line-solve call,
// so the caller can tell which cells were tightened and can push an
// accurate history entry for each.
func snapshotLine(line core.Line) []cellSnapshot {
	before := make([]cellSnapshot, len(line))
	for i, c := range line {
		before[i] = cellSnapshot{n: c.N, domain: c.Domain}
	}
	return before
}

// applyTightenings records history and enqueues crossing lines for every
// cell whose domain the line solver just narrowed.
func (p *Propagator) applyTightenings(line core.Line, before []cellSnapshot) {
	for i, cell := range line {
		if cell.N == before[i].n {
			continue
		}
		if p.Hist.Active() {
			p.Hist.entries = append(p.Hist.entries, histEntry{
				cell: cell, n: before[i].n, domain: before[i].domain, branch: false,
			})
		}
		p.Queue.AddCell(p.Puzzle, cell)
		if cell.N == 1 && before[i].n != 1 {
			p.Puzzle.NSolved++
		}
	}
}
