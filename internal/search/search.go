// Package search implements the nonogram solver engine: the job queue,
// history/undo stack, line-solver contract, propagation driver, exhaustive
// fallback, heuristic pickers, probing engine, and the top-level search
// loop that orchestrates them.
package search

import "nonosolve/internal/core"

// Switches mirrors the configuration table of spec.md §6 as a struct
// instead of globals, per the Design Notes.
type Switches struct {
	LineSolve     bool // maylinesolve: not read by Solve; per-line propagation always runs
	Backtrack     bool // maybacktrack: permit speculative guessing
	Probe         bool // mayprobe: use the probing engine over the heuristic picker
	MergeProbe    bool // mergeprobe: whether probe deductions are counted in Stats.Merges; the prober applies merge-pad deductions either way
	ProbeLevel    int  // probelevel: 1 = scan-all-cells only, >=2 adds a history-neighbor pass first
	TryHarder     bool // tryharder: run the exhaustive fallback when stalled
	CheckUnique   bool // checkunique: keep searching after the first solution
	CheckSolution bool // checksolution: compare against a supplied reference (caller's responsibility)
	Exhaust       bool // mayexhaust: whether the fallback is permitted at all

	CellPicker  CellRatingVariant
	ColorPicker ColorVariant
}

// DefaultSwitches returns the conventional configuration: full propagation,
// backtracking and probing enabled, exhaustive fallback on, uniqueness
// checking off.
func DefaultSwitches() Switches {
	return Switches{
		LineSolve:   true,
		Backtrack:   true,
		Probe:       true,
		MergeProbe:  true,
		ProbeLevel:  1,
		TryHarder:   true,
		Exhaust:     true,
		CellPicker:  RatingMath,
		ColorPicker: ColorMin,
	}
}

// Stats aggregates the counters of spec.md §6's output contract, in place
// of the original's module-level globals.
type Stats struct {
	Lines        int // lines processed by the propagation driver
	Guesses      int // branch points committed
	Backtracks   int // rollbacks performed
	Probes       int // probing sweeps run
	Merges       int // merge-pad deductions applied
	ExhaustRuns  int // exhaustive fallback sweeps run
	ExhaustCells int // cumulative (cell,color) eliminations by the fallback
}

// Status is the outcome of a solve, matching the exit-code table of
// spec.md §6 and the HTTP status field of SPEC_FULL.md §4.14.
type Status int

const (
	// StatusSolved means a solution was found; uniqueness was not checked.
	StatusSolved Status = iota
	// StatusUnique means a solution was found and confirmed to be the
	// only one.
	StatusUnique
	// StatusNonUnique means a second, distinct solution was found during
	// a uniqueness check.
	StatusNonUnique
	// StatusUnsolvable means the backtrack stack was exhausted (or
	// backtracking was disabled and propagation stalled) without ever
	// reaching a solution.
	StatusUnsolvable
)

// String renders the status the way SPEC_FULL.md's HTTP contract expects.
func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusUnique:
		return "unique"
	case StatusNonUnique:
		return "non-unique"
	case StatusUnsolvable:
		return "unsolvable"
	default:
		return "unknown"
	}
}

// ExitCode maps a Status to the process exit code table of spec.md §6.
func (s Status) ExitCode() int {
	switch s {
	case StatusSolved, StatusUnique:
		return 0
	case StatusUnsolvable:
		return 1
	case StatusNonUnique:
		return 2
	default:
		return 3
	}
}

// state names the top-level search loop's position (C10).
type state int

const (
	stDrain state = iota
	stAssess
	stChoose
	stBacktrack
	stDone
)

// Solver holds everything the top-level search loop needs: the puzzle and
// its in-progress solution, the job queue and history it shares with the
// propagation/probing/exhaust components, the pluggable line solver and
// pickers, the configuration switches, and the running Stats.
type Solver struct {
	Puzzle *core.Puzzle
	Sol    *core.Solution

	Queue *JobQueue
	Hist  *History
	Line  LineSolver

	Exhaust *ExhaustFallback
	Prober  *Prober

	CellPicker  CellPicker
	ColorPicker ColorPicker

	Switches Switches
	Stats    Stats
}

// NewSolver wires a Solver over a freshly-loaded puzzle and solution. sol
// must have come from core.NewSolution(puz) (or an equivalent all-set
// initial state).
func NewSolver(puz *core.Puzzle, sol *core.Solution, switches Switches) *Solver {
	line := LROSolver{}
	q := NewJobQueue()
	hist := NewHistory()

	prober := NewProber(puz, sol, q, hist, line)
	prober.ProbeLevel = switches.ProbeLevel

	return &Solver{
		Puzzle: puz, Sol: sol, Queue: q, Hist: hist, Line: line,
		Exhaust:     &ExhaustFallback{Puzzle: puz, Sol: sol, Queue: q, Line: line},
		Prober:      prober,
		CellPicker:  NewCellPicker(switches.CellPicker),
		ColorPicker: NewColorPicker(switches.ColorPicker),
		Switches:    switches,
	}
}

// Solve runs the top-level search loop of spec.md §4.10 to completion.
func (s *Solver) Solve() Status {
	s.Queue.Init(s.Puzzle)

	prop := NewPropagator(s.Puzzle, s.Sol, s.Queue, s.Hist, s.Line)
	solutionsFound := 0
	st := stDrain

	for {
		switch st {
		case stDrain:
			ok := prop.LogicSolve()
			s.Stats.Lines = prop.NLines
			if !ok {
				st = stBacktrack
				continue
			}
			if s.Sol.IsSolved() {
				st = stDone
				continue
			}
			st = stAssess

		case stAssess:
			if s.Sol.IsSolved() {
				st = stDone
				continue
			}
			if s.Switches.TryHarder && s.Switches.Exhaust && s.Hist.Empty() {
				hits := s.Exhaust.Run()
				s.Stats.ExhaustRuns = s.Exhaust.Runs
				s.Stats.ExhaustCells = s.Exhaust.Cells
				if hits > 0 {
					st = stDrain
					continue
				}
			}
			if !s.Switches.Backtrack {
				return s.finish(solutionsFound)
			}
			st = stChoose

		case stChoose:
			if s.Switches.Probe {
				s.Stats.Probes++
				result := s.Prober.Run()
				switch result.Outcome {
				case ProbeLogical:
					if s.Switches.MergeProbe {
						s.Stats.Merges++
					}
					st = stDrain
					continue
				case ProbeSolved:
					st = stDone
					continue
				case ProbeGuess:
					s.Stats.Guesses++
					GuessCell(s.Puzzle, s.Queue, s.Hist, result.Cell, result.Color)
					s.Prober.ResetPad()
					st = stDrain
					continue
				case ProbeNone:
					// No guess candidate (no unsolved cell has two or more
					// solved/off-grid neighbors, or every color of the
					// candidates was already probed): fall back to the
					// heuristic picker.
				}
			}

			cell := s.CellPicker.Pick(s.Puzzle, s.Sol)
			if cell == nil {
				panic("search: no branching cell available on an unsolved, non-contradictory puzzle")
			}
			color := s.ColorPicker.Pick(s.Puzzle, s.Sol, cell)
			if color < 0 {
				panic("search: color picker found no candidate color for a cell with n > 1")
			}
			s.Stats.Guesses++
			GuessCell(s.Puzzle, s.Queue, s.Hist, cell, color)
			st = stDrain

		case stBacktrack:
			s.Prober.ResetPad()
			empty := s.Hist.Backtrack(s.Puzzle, s.Queue)
			s.Stats.Backtracks++
			if empty {
				return s.finish(solutionsFound)
			}
			st = stDrain

		case stDone:
			solutionsFound++
			if !s.Switches.CheckUnique {
				return s.finish(solutionsFound)
			}
			if solutionsFound >= 2 {
				return StatusNonUnique
			}
			if s.Hist.Empty() {
				// No branch point exists to force an alternative from:
				// this solution really is the only one.
				return StatusUnique
			}
			s.Prober.ResetPad()
			s.Hist.Backtrack(s.Puzzle, s.Queue)
			s.Stats.Backtracks++
			st = stDrain
		}
	}
}

// finish turns a terminal loop exit into a Status, given how many complete
// solutions were seen before the loop gave up.
func (s *Solver) finish(solutionsFound int) Status {
	if solutionsFound == 0 {
		return StatusUnsolvable
	}
	if s.Switches.CheckUnique {
		return StatusUnique
	}
	return StatusSolved
}
