package search

import (
	"testing"

	"nonosolve/internal/core"
)

func buildPuzzle(t *testing.T, rows, cols [][]core.Clue) (*core.Puzzle, *core.Solution) {
	t.Helper()
	puz, err := core.NewGridPuzzle(twoColor, rows, cols)
	if err != nil {
		t.Fatalf("NewGridPuzzle failed: %v", err)
	}
	return puz, core.NewSolution(puz)
}

func TestSolverSolvesTrivialRowByLogicAlone(t *testing.T) {
	rows := [][]core.Clue{{{Length: 3, Color: 1}}}
	cols := [][]core.Clue{{{Length: 1, Color: 1}}, {{Length: 1, Color: 1}}, {{Length: 1, Color: 1}}}
	puz, sol := buildPuzzle(t, rows, cols)

	solver := NewSolver(puz, sol, DefaultSwitches())
	status := solver.Solve()

	if status != StatusSolved {
		t.Fatalf("expected StatusSolved, got %v", status)
	}
	if !sol.IsSolved() {
		t.Error("solution should be fully solved")
	}
	if solver.Stats.Guesses != 0 {
		t.Errorf("a zero-slack puzzle should need no guesses, got %d", solver.Stats.Guesses)
	}
	if solver.Stats.Backtracks != 0 {
		t.Errorf("a zero-slack puzzle should need no backtracks, got %d", solver.Stats.Backtracks)
	}
}

func TestSolverReportsUnsolvableOnImmediateContradiction(t *testing.T) {
	// A single cell whose row clue forces it to color 1 (zero slack) while
	// its column clue is empty (forces background): an outright
	// contradiction found on the very first propagation pass, with no
	// guess ever made to backtrack from.
	rows := [][]core.Clue{{{Length: 1, Color: 1}}}
	cols := [][]core.Clue{{}}
	puz, sol := buildPuzzle(t, rows, cols)

	solver := NewSolver(puz, sol, DefaultSwitches())
	status := solver.Solve()

	if status != StatusUnsolvable {
		t.Fatalf("expected StatusUnsolvable, got %v", status)
	}
	if solver.Stats.Guesses != 0 {
		t.Errorf("no guess should have been needed to find this contradiction, got %d", solver.Stats.Guesses)
	}
}

func TestSolverChecksboardIsNonUniqueWhenChecked(t *testing.T) {
	// A 2x2 grid with a single "1" clue on every row and column has
	// exactly two solutions (the two diagonals); with CheckUnique enabled
	// the solver must find both and report StatusNonUnique.
	oneClue := []core.Clue{{Length: 1, Color: 1}}
	rows := [][]core.Clue{oneClue, oneClue}
	cols := [][]core.Clue{oneClue, oneClue}

	puz, sol := buildPuzzle(t, rows, cols)
	sw := DefaultSwitches()
	sw.CheckUnique = true
	solver := NewSolver(puz, sol, sw)
	status := solver.Solve()

	if status != StatusNonUnique {
		t.Fatalf("expected StatusNonUnique, got %v", status)
	}
	if solver.Stats.Backtracks == 0 {
		t.Error("finding the second solution requires inverting the first guess via backtrack")
	}
}

func TestSolverChecksboardIsSolvedWithoutUniquenessCheck(t *testing.T) {
	oneClue := []core.Clue{{Length: 1, Color: 1}}
	rows := [][]core.Clue{oneClue, oneClue}
	cols := [][]core.Clue{oneClue, oneClue}

	puz, sol := buildPuzzle(t, rows, cols)
	solver := NewSolver(puz, sol, DefaultSwitches())
	status := solver.Solve()

	if status != StatusSolved {
		t.Fatalf("expected StatusSolved when uniqueness is not checked, got %v", status)
	}
	if !sol.IsSolved() {
		t.Error("solution should be fully solved")
	}
}

func TestSolverSolvesLatinSquareRequiringAGuess(t *testing.T) {
	// Every row and column carries a single "1" clue (3x3): pure per-line
	// logic and the exhaustive single-line fallback both stall completely
	// since no line ever reaches zero slack, so the solver must commit a
	// real guess (surfaced by probing) and propagate its consequences.
	oneClue := []core.Clue{{Length: 1, Color: 1}}
	rows := [][]core.Clue{oneClue, oneClue, oneClue}
	cols := [][]core.Clue{oneClue, oneClue, oneClue}

	puz, sol := buildPuzzle(t, rows, cols)
	solver := NewSolver(puz, sol, DefaultSwitches())
	status := solver.Solve()

	if status != StatusSolved {
		t.Fatalf("expected StatusSolved, got %v", status)
	}
	if !sol.IsSolved() {
		t.Fatal("solution should be fully solved")
	}
	if solver.Stats.Guesses == 0 {
		t.Error("this puzzle cannot be solved by propagation alone, expected at least one guess")
	}
	for i := 0; i < 3; i++ {
		found := 0
		for j := 0; j < 3; j++ {
			if c, ok := sol.Lines[core.DirRow][i][j].Domain.Only(); ok && c == 1 {
				found++
			}
		}
		if found != 1 {
			t.Errorf("row %d should have exactly one colored cell, found %d", i, found)
		}
	}
}

func TestSolverBacktracksOutOfAnUnsatisfiablePuzzle(t *testing.T) {
	// 3 rows x 2 columns, every row and column clued with a single "1":
	// the rows demand 3 colored cells total but the columns only supply
	// capacity for 2, a pigeonhole contradiction invisible to any single
	// line (every line has slack on its own) that can only be discovered
	// by exhausting every branch of the search.
	oneClue := []core.Clue{{Length: 1, Color: 1}}
	rows := [][]core.Clue{oneClue, oneClue, oneClue}
	cols := [][]core.Clue{oneClue, oneClue}

	puz, sol := buildPuzzle(t, rows, cols)
	solver := NewSolver(puz, sol, DefaultSwitches())
	status := solver.Solve()

	if status != StatusUnsolvable {
		t.Fatalf("expected StatusUnsolvable for a pigeonhole-contradictory puzzle, got %v", status)
	}
	if solver.Stats.Backtracks == 0 {
		t.Error("an unsatisfiable puzzle with no zero-slack lines must require at least one backtrack to prove")
	}
}

func TestStatusStringAndExitCode(t *testing.T) {
	cases := []struct {
		status   Status
		wantStr  string
		wantExit int
	}{
		{StatusSolved, "solved", 0},
		{StatusUnique, "unique", 0},
		{StatusNonUnique, "non-unique", 2},
		{StatusUnsolvable, "unsolvable", 1},
	}
	for _, c := range cases {
		if got := c.status.String(); got != c.wantStr {
			t.Errorf("Status(%d).String() = %q, want %q", c.status, got, c.wantStr)
		}
		if got := c.status.ExitCode(); got != c.wantExit {
			t.Errorf("Status(%d).ExitCode() = %d, want %d", c.status, got, c.wantExit)
		}
	}
}

func TestDefaultSwitches(t *testing.T) {
	sw := DefaultSwitches()
	if !sw.LineSolve || !sw.Backtrack || !sw.Probe || !sw.MergeProbe || !sw.TryHarder || !sw.Exhaust {
		t.Errorf("DefaultSwitches should enable the full engine, got %+v", sw)
	}
	if sw.CheckUnique {
		t.Error("DefaultSwitches should not check uniqueness by default")
	}
	if sw.CellPicker != RatingMath {
		t.Errorf("DefaultSwitches should use the math cell rating, got %v", sw.CellPicker)
	}
	if sw.ColorPicker != ColorMin {
		t.Errorf("DefaultSwitches should use the min color picker, got %v", sw.ColorPicker)
	}
}
