package core

import (
	"fmt"
	"strings"

	"nonosolve/internal/bitset"
)

// NewGridPuzzle builds a rectangular Puzzle from per-row and per-column
// clue sequences. It computes each line's slack and rejects the puzzle
// (mirroring the loader contract of SPEC_FULL.md §4.12) if any line's
// clues cannot possibly fit.
func NewGridPuzzle(palette []Color, rowClues, colClues [][]Clue) (*Puzzle, error) {
	height := len(rowClues)
	width := len(colClues)

	puz := &Puzzle{
		Type:    TypeGrid,
		Palette: palette,
		NSet:    2,
		NCells:  width * height,
	}

	rows, err := buildLineClues(rowClues, width)
	if err != nil {
		return nil, fmt.Errorf("row clues: %w", err)
	}
	cols, err := buildLineClues(colClues, height)
	if err != nil {
		return nil, fmt.Errorf("column clues: %w", err)
	}
	puz.Clue[DirRow] = rows
	puz.Clue[DirCol] = cols
	return puz, nil
}

// buildLineClues computes slack for each line and validates it is >= 0.
func buildLineClues(clueSets [][]Clue, lineLen int) ([]LineClue, error) {
	out := make([]LineClue, len(clueSets))
	for i, clues := range clueSets {
		need := 0
		for k, c := range clues {
			need += c.Length
			if k > 0 && clues[k-1].Color == c.Color {
				need++ // mandatory gap between same-color blocks
			}
		}
		slack := lineLen - need
		if slack < 0 {
			return nil, fmt.Errorf("line %d: clue lengths (%d cells needed) exceed line length %d", i, need, lineLen)
		}
		out[i] = LineClue{Clues: clues, Slack: slack, JobIndex: -1}
	}
	return out, nil
}

// NewSolution allocates a fresh Solution for puz, with one Cell object per
// grid position shared across the row and column line arrays, every cell's
// domain set to the full palette.
func NewSolution(puz *Puzzle) *Solution {
	sol := &Solution{Puzzle: puz}
	full := bitset.Full(puz.NColor())

	height := puz.NLines(DirRow)
	width := puz.NLines(DirCol)

	rows := make([]Line, height)
	cols := make([]Line, width)
	for j := 0; j < width; j++ {
		cols[j] = make(Line, height)
	}

	for i := 0; i < height; i++ {
		rows[i] = make(Line, width)
		for j := 0; j < width; j++ {
			cell := &Cell{
				Coord:  [3]int{i, j, 0},
				Domain: full,
				N:      full.Count(),
			}
			rows[i][j] = cell
			cols[j][i] = cell
		}
	}

	sol.Lines[DirRow] = rows
	sol.Lines[DirCol] = cols
	return sol
}

// CountNeighbors returns how many of a grid cell's four orthogonal
// neighbors are either off the grid or solved (n == 1). Grid puzzles only;
// per SPEC_FULL.md §4.2 triddler neighbor counting is not implemented.
func CountNeighbors(sol *Solution, i, j int) int {
	rows := sol.Lines[DirRow]
	height := len(rows)
	width := len(rows[0])

	count := 0
	if i == 0 || rows[i-1][j].N == 1 {
		count++
	}
	if i == height-1 || rows[i+1][j].N == 1 {
		count++
	}
	if j == 0 || rows[i][j-1].N == 1 {
		count++
	}
	if j == width-1 || rows[i][j+1].N == 1 {
		count++
	}
	return count
}

// SolutionString renders the solution as one character per cell (from the
// palette's display character column), rows separated by newlines. Unsolved
// cells are rendered '?'.
func SolutionString(puz *Puzzle, sol *Solution) string {
	var b strings.Builder
	for _, row := range sol.Lines[DirRow] {
		for _, cell := range row {
			if c, ok := cell.Domain.Only(); ok {
				b.WriteByte(puz.Palette[c].Ch)
			} else {
				b.WriteByte('?')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
