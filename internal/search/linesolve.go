package search

import (
	"slices"

	"nonosolve/internal/bitset"
	"nonosolve/internal/core"
)

// LineSolver is the pluggable per-line deduction contract (C5). Given the
// current cell domains on one line and its clue sequence, it tightens
// domains in place and reports whether the line is still satisfiable. It
// must never add a bit to any cell's domain, and must be sound (never
// remove a color that is still actually feasible) — it need not be
// complete; ExhaustFallback (C7) exists to catch what it misses.
type LineSolver interface {
	Solve(line core.Line, clues *core.LineClue) (ok bool)
}

// LROSolver is the default line solver: a left-right-overlap algorithm.
// For each clue block it computes the leftmost and rightmost position a
// greedy, domain-respecting placement could put it, then:
//
//   - cells common to every valid placement of a block (the overlap
//     between its leftmost and rightmost placement) are forced to that
//     block's color;
//   - cells outside the reachable span of every block are forced to
//     background;
//   - a line whose every cell is fixed is accepted only if its runs of
//     color match the clue sequence exactly.
type LROSolver struct{}

// Solve implements LineSolver.
func (LROSolver) Solve(line core.Line, lc *core.LineClue) bool {
	lefts, ok := leftSolve(line, lc.Clues)
	if !ok {
		return false
	}
	rights, ok := rightSolve(line, lc.Clues)
	if !ok {
		return false
	}

	n := len(lc.Clues)
	reach := make([][2]int, n) // [start,end] inclusive reachable span per clue
	for k := 0; k < n; k++ {
		length := lc.Clues[k].Length
		reach[k] = [2]int{lefts[k], rights[k] + length - 1}
		if lefts[k] > rights[k] {
			// Left-to-right and right-to-left placements disagree: the
			// line has no feasible arrangement at all.
			return false
		}

		overlapStart, overlapEnd := rights[k], lefts[k]+length-1
		if overlapStart <= overlapEnd {
			color := lc.Clues[k].Color
			for p := overlapStart; p <= overlapEnd; p++ {
				line[p].Domain = line[p].Domain.Intersect(bitset.Single(color))
				line[p].N = line[p].Domain.Count()
				if line[p].N == 0 {
					return false
				}
			}
		}
	}

	for p := range line {
		if inAnyReach(reach, p) {
			continue
		}
		line[p].Domain = line[p].Domain.Intersect(bitset.Single(0))
		line[p].N = line[p].Domain.Count()
		if line[p].N == 0 {
			return false
		}
	}

	// A line whose every cell is fixed must spell out its clues exactly.
	var runs []core.Clue
	for p, cell := range line {
		c, fixed := cell.Domain.Only()
		switch {
		case !fixed:
			return true
		case c != 0 && p > 0 && line[p-1].Domain == cell.Domain:
			runs[len(runs)-1].Length++
		case c != 0:
			runs = append(runs, core.Clue{Length: 1, Color: c})
		}
	}
	return slices.Equal(runs, lc.Clues)
}

func inAnyReach(reach [][2]int, p int) bool {
	for _, r := range reach {
		if p >= r[0] && p <= r[1] {
			return true
		}
	}
	return false
}

// leftSolve greedily places each clue block as far left as possible,
// respecting per-cell domains and the mandatory gap between same-colored
// consecutive blocks. Returns false if the clues cannot be placed at all.
func leftSolve(line core.Line, clues []core.Clue) ([]int, bool) {
	n := len(line)
	lefts := make([]int, len(clues))
	pos := 0
	for k, c := range clues {
		if k > 0 && clues[k-1].Color == c.Color {
			pos++
		}
		for {
			if pos+c.Length > n {
				return nil, false
			}
			if blockFits(line, pos, c.Length, c.Color) {
				break
			}
			pos++
		}
		lefts[k] = pos
		pos += c.Length
	}
	return lefts, true
}

// rightSolve is the mirror image of leftSolve, placing blocks as far right
// as possible, scanning from the end of the line.
func rightSolve(line core.Line, clues []core.Clue) ([]int, bool) {
	n := len(line)
	rights := make([]int, len(clues))
	pos := n // exclusive end of the next block to place, scanning backwards
	for k := len(clues) - 1; k >= 0; k-- {
		c := clues[k]
		if k < len(clues)-1 && clues[k+1].Color == c.Color {
			pos--
		}
		for {
			start := pos - c.Length
			if start < 0 {
				return nil, false
			}
			if blockFits(line, start, c.Length, c.Color) {
				pos = start
				break
			}
			pos--
		}
		rights[k] = pos
	}
	return rights, true
}

// blockFits reports whether every cell in [start, start+length) admits
// color.
func blockFits(line core.Line, start, length, color int) bool {
	for p := start; p < start+length; p++ {
		if !line[p].MayBe(color) {
			return false
		}
	}
	return true
}
