package search

import (
	"testing"

	"nonosolve/internal/core"
)

// solidRowPuzzle is a 1x3 grid whose single row clue is "3" (zero slack):
// logic alone solves it.
func solidRowPuzzle(t *testing.T) (*core.Puzzle, *core.Solution) {
	t.Helper()
	palette := []core.Color{{Name: "background", Ch: '.'}, {Name: "black", Ch: 'X'}}
	rows := [][]core.Clue{{{Length: 3, Color: 1}}}
	cols := [][]core.Clue{{{Length: 1, Color: 1}}, {{Length: 1, Color: 1}}, {{Length: 1, Color: 1}}}
	puz, err := core.NewGridPuzzle(palette, rows, cols)
	if err != nil {
		t.Fatalf("NewGridPuzzle failed: %v", err)
	}
	return puz, core.NewSolution(puz)
}

func TestPropagatorSolvesTrivialRow(t *testing.T) {
	puz, sol := solidRowPuzzle(t)
	q := NewJobQueue()
	q.Init(puz)
	hist := NewHistory()
	prop := NewPropagator(puz, sol, q, hist, LROSolver{})

	if ok := prop.LogicSolve(); !ok {
		t.Fatal("LogicSolve should succeed on a trivially solvable puzzle")
	}
	if !sol.IsSolved() {
		t.Error("the zero-slack row/columns puzzle should be fully solved by logic alone")
	}
	if prop.NLines == 0 {
		t.Error("NLines should count the lines processed")
	}
}

func TestPropagatorDetectsContradiction(t *testing.T) {
	palette := []core.Color{{Name: "background", Ch: '.'}, {Name: "black", Ch: 'X'}}
	rows := [][]core.Clue{{{Length: 1, Color: 1}}}
	cols := [][]core.Clue{{{Length: 1, Color: 1}}}
	puz, err := core.NewGridPuzzle(palette, rows, cols)
	if err != nil {
		t.Fatalf("NewGridPuzzle failed: %v", err)
	}
	sol := core.NewSolution(puz)
	// Force the only cell to background, directly contradicting the "1" clue.
	sol.Lines[core.DirRow][0][0].Domain = sol.Lines[core.DirRow][0][0].Domain.Without(1)
	sol.Lines[core.DirRow][0][0].N = 1

	q := NewJobQueue()
	q.Init(puz)
	hist := NewHistory()
	prop := NewPropagator(puz, sol, q, hist, LROSolver{})

	if ok := prop.LogicSolve(); ok {
		t.Error("LogicSolve should detect the contradiction and return false")
	}
}

func TestPropagatorCreditsNSolved(t *testing.T) {
	puz, sol := solidRowPuzzle(t)
	q := NewJobQueue()
	q.Init(puz)
	hist := NewHistory()
	prop := NewPropagator(puz, sol, q, hist, LROSolver{})
	prop.LogicSolve()

	if puz.NSolved != puz.NCells {
		t.Errorf("NSolved should reach NCells once every cell is a singleton, got %d/%d", puz.NSolved, puz.NCells)
	}
}
