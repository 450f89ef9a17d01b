package search

import (
	"testing"

	"nonosolve/internal/bitset"
	"nonosolve/internal/core"
)

func threeByThreePuzzle(t *testing.T) (*core.Puzzle, *core.Solution) {
	t.Helper()
	palette := []core.Color{{Name: "background", Ch: '.'}, {Name: "black", Ch: 'X'}}
	rows := [][]core.Clue{
		{{Length: 1, Color: 1}},
		{{Length: 1, Color: 1}},
		{{Length: 1, Color: 1}},
	}
	cols := [][]core.Clue{
		{{Length: 1, Color: 1}},
		{{Length: 1, Color: 1}},
		{{Length: 1, Color: 1}},
	}
	puz, err := core.NewGridPuzzle(palette, rows, cols)
	if err != nil {
		t.Fatalf("NewGridPuzzle failed: %v", err)
	}
	return puz, core.NewSolution(puz)
}

func TestCellPickerPrefersMostConstrainedNeighbors(t *testing.T) {
	puz, sol := threeByThreePuzzle(t)
	// Solve the corner cell (0,0), giving the center cell (1,1) no extra
	// neighbors but giving cell (0,1) one solved neighbor.
	sol.Lines[core.DirRow][0][0].Domain = bitset.Single(0)
	sol.Lines[core.DirRow][0][0].N = 1

	picker := NewCellPicker(RatingMath)
	cell := picker.Pick(puz, sol)
	if cell == nil {
		t.Fatal("Pick should return a cell while unsolved cells remain")
	}
	if cell.N == 1 {
		t.Error("Pick should never return an already-solved cell")
	}
}

func TestCellPickerEarlyReturnsOnFullySurroundedCell(t *testing.T) {
	// A 1x3 row: solving both ends leaves the middle cell's neighbor count
	// at the maximum (two off-grid edges plus two solved neighbors), while
	// neither end cell reaches the maximum itself.
	palette := []core.Color{{Name: "background", Ch: '.'}, {Name: "black", Ch: 'X'}}
	rows := [][]core.Clue{{{Length: 1, Color: 1}}}
	cols := [][]core.Clue{{{Length: 1, Color: 1}}, {{Length: 1, Color: 1}}, {{Length: 1, Color: 1}}}
	puz, err := core.NewGridPuzzle(palette, rows, cols)
	if err != nil {
		t.Fatalf("NewGridPuzzle failed: %v", err)
	}
	sol := core.NewSolution(puz)

	for _, j := range []int{0, 2} {
		cell := sol.Lines[core.DirRow][0][j]
		cell.Domain = bitset.Single(0)
		cell.N = 1
	}

	picker := NewCellPicker(RatingSimple)
	cell := picker.Pick(puz, sol)
	want := sol.Lines[core.DirRow][0][1]
	if cell != want {
		t.Errorf("Pick should return the fully-surrounded middle cell, got coord %v", cell.Coord)
	}
}

func TestColorPickerMin(t *testing.T) {
	puz, _ := threeByThreePuzzle(t)
	cell := &core.Cell{Domain: bitset.Full(3), N: 3}
	p := NewColorPicker(ColorMin)
	if got := p.Pick(puz, nil, cell); got != 0 {
		t.Errorf("ColorMin should pick the lowest available color, got %d", got)
	}
}

func TestColorPickerMax(t *testing.T) {
	puz, _ := threeByThreePuzzle(t)
	cell := &core.Cell{Domain: bitset.Full(2), N: 2}
	p := NewColorPicker(ColorMax)
	if got := p.Pick(puz, nil, cell); got != 1 {
		t.Errorf("ColorMax should pick the highest available color, got %d", got)
	}
}

func TestColorPickerMinSkipsUnavailableColors(t *testing.T) {
	puz, _ := threeByThreePuzzle(t)
	cell := &core.Cell{Domain: bitset.Full(2).Without(0), N: 1}
	p := NewColorPicker(ColorMin)
	if got := p.Pick(puz, nil, cell); got != 1 {
		t.Errorf("ColorMin should skip colors not in the domain, got %d", got)
	}
}

func TestColorPickerContrastPrefersDisagreement(t *testing.T) {
	puz, sol := threeByThreePuzzle(t)
	center := sol.Lines[core.DirRow][1][1]

	// Pin every neighbor of the center cell to background.
	for _, coord := range [][2]int{{0, 1}, {2, 1}, {1, 0}, {1, 2}} {
		cell := sol.Lines[core.DirRow][coord[0]][coord[1]]
		cell.Domain = bitset.Single(0)
		cell.N = 1
	}

	p := NewColorPicker(ColorContrast)
	got := p.Pick(puz, sol, center)
	if got != 1 {
		t.Errorf("ColorContrast should prefer the color that disagrees with all-background neighbors, got %d", got)
	}
}
