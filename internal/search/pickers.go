package search

import (
	"math"
	"math/rand"

	"nonosolve/internal/core"
)

// CellRatingVariant selects how CellPicker breaks ties among cells with an
// equal number of solved/edge neighbors. Corresponds to pbnsolve's
// GR_SIMPLE/GR_ADHOC/GR_MATH build-time variants, now runtime-selectable
// per spec.md §9 Design Notes.
type CellRatingVariant int

const (
	RatingSimple CellRatingVariant = iota
	RatingAdhoc
	RatingMath
)

// ColorVariant selects how ColorPicker chooses among a cell's remaining
// colors. Corresponds to pbnsolve's GC_MAX/GC_MIN/GC_RAND/GC_CONTRAST.
type ColorVariant int

const (
	ColorMin ColorVariant = iota
	ColorMax
	ColorRandom
	ColorContrast
)

// CellPicker chooses which unsolved cell to branch on next (used only by
// the heuristic guessing path, not the probing engine).
type CellPicker interface {
	Pick(puz *core.Puzzle, sol *core.Solution) *core.Cell
}

// NewCellPicker returns the strategy for variant.
func NewCellPicker(variant CellRatingVariant) CellPicker {
	return cellPicker{variant: variant}
}

type cellPicker struct {
	variant CellRatingVariant
}

// Pick scans unsolved cells, preferring those with the most solved/edge
// neighbors (all-neighbors-set triggers an early return); among ties, it
// prefers the lower-rated crossing lines per rateCell.
func (p cellPicker) Pick(puz *core.Puzzle, sol *core.Solution) *core.Cell {
	if puz.Type != core.TypeGrid {
		panic("search: heuristic cell picker only supports grid puzzles")
	}

	rows := sol.Lines[core.DirRow]
	maxV := -1
	var minRate float64
	var favorite *core.Cell

	for i, row := range rows {
		for j, cell := range row {
			if cell.N == 1 {
				continue
			}

			v := core.CountNeighbors(sol, i, j)
			if v == 2*puz.NSet {
				return cell
			}

			if v < maxV {
				continue
			}

			rate := p.rateCell(puz, i, j)
			if v > maxV || rate < minRate {
				maxV = v
				minRate = rate
				favorite = cell
			}
		}
	}

	return favorite
}

// rateCell scores cell (i,j) for branching preference using BOTH the
// row-i clue and the column-j clue. spec.md's Open Questions flags the
// original's "si/sj both computed from i" as a copy-paste bug; this fixes
// it by rating on the actual crossing lines.
func (p cellPicker) rateCell(puz *core.Puzzle, i, j int) float64 {
	rowClue := &puz.Clue[core.DirRow][i]
	colClue := &puz.Clue[core.DirCol][j]

	switch p.variant {
	case RatingSimple:
		return 0
	case RatingAdhoc:
		si := float64(rowClue.Slack + 2*rowClue.NClues())
		sj := float64(colClue.Slack + 2*colClue.NClues())
		if si < sj {
			return 3*si + sj
		}
		return 3*sj + si
	case RatingMath:
		si := logBinomial(rowClue.Slack+rowClue.NClues(), rowClue.NClues())
		sj := logBinomial(colClue.Slack+colClue.NClues(), colClue.NClues())
		if si < sj {
			return si
		}
		return sj
	default:
		return 0
	}
}

// logBinomial returns log(C(n,k)), the log count of line placements —
// preferring to work on lines with fewer possible solutions.
func logBinomial(n, k int) float64 {
	if k < 0 || n < 0 || k > n {
		return math.Inf(1)
	}
	lg, _ := math.Lgamma(float64(n + 1))
	lk, _ := math.Lgamma(float64(k + 1))
	lnk, _ := math.Lgamma(float64(n - k + 1))
	return lg - lk - lnk
}

// ColorPicker chooses which color of a branching cell to try first.
type ColorPicker interface {
	Pick(puz *core.Puzzle, sol *core.Solution, cell *core.Cell) int
}

// NewColorPicker returns the strategy for variant.
func NewColorPicker(variant ColorVariant) ColorPicker {
	return colorPicker{variant: variant}
}

type colorPicker struct {
	variant ColorVariant
}

func (p colorPicker) Pick(puz *core.Puzzle, sol *core.Solution, cell *core.Cell) int {
	switch p.variant {
	case ColorMax:
		for c := puz.NColor() - 1; c >= 0; c-- {
			if cell.MayBe(c) {
				return c
			}
		}
	case ColorRandom:
		n := 0
		best := -1
		for c := 0; c < puz.NColor(); c++ {
			if cell.MayBe(c) {
				n++
				if rand.Intn(n) == 0 {
					best = c
				}
			}
		}
		return best
	case ColorContrast:
		return p.pickContrast(puz, sol, cell)
	case ColorMin:
		fallthrough
	default:
		for c := 0; c < puz.NColor(); c++ {
			if cell.MayBe(c) {
				return c
			}
		}
	}
	return -1
}

// pickContrast favors a color different from the cell's neighbors,
// treating off-grid neighbors as background.
func (p colorPicker) pickContrast(puz *core.Puzzle, sol *core.Solution, cell *core.Cell) int {
	rows := sol.Lines[core.DirRow]
	i, j := cell.Coord[core.DirRow], cell.Coord[core.DirCol]
	height, width := len(rows), len(rows[0])

	bestC, bestN := -1, -1
	for c := 0; c < puz.NColor(); c++ {
		if !cell.MayBe(c) {
			continue
		}
		n := 0
		n += contrastScore(rows, i-1, j, height, width, c)
		n += contrastScore(rows, i+1, j, height, width, c)
		n += contrastScore(rows, i, j-1, height, width, c)
		n += contrastScore(rows, i, j+1, height, width, c)
		if n > bestN {
			bestC, bestN = c, n
		}
	}
	return bestC
}

// contrastScore returns 1 if the neighbor at (i,j) (or the implicit
// off-grid background) disagrees with color c, else 0.
func contrastScore(rows []core.Line, i, j, height, width int, c int) int {
	if i < 0 || i >= height || j < 0 || j >= width {
		if c != 0 {
			return 1
		}
		return 0
	}
	if !rows[i][j].MayBe(c) {
		return 1
	}
	return 0
}
