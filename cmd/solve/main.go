// Command solve loads a nonogram puzzle file and runs the solver engine
// against it, printing the resulting grid and a one-line stats summary.
// Exit codes follow the solved/unique/non-unique/unsolvable table from
// internal/search's Status.ExitCode.
package main

import (
	"flag"
	"fmt"
	"os"

	"nonosolve/internal/core"
	"nonosolve/internal/puzzles"
	"nonosolve/internal/search"
	"nonosolve/pkg/constants"
)

func main() {
	sw := search.DefaultSwitches()

	probe := flag.Bool("probe", sw.Probe, "enable probing before falling back to a blind guess")
	backtrack := flag.Bool("backtrack", sw.Backtrack, "enable backtracking search (disable to report after pure logic)")
	tryHarder := flag.Bool("tryharder", sw.TryHarder, "enable the exhaustive per-cell fallback before giving up on logic alone")
	mergeProbe := flag.Bool("mergeprobe", sw.MergeProbe, "count probing deductions in the merges statistic (merge-pad deductions are applied either way)")
	checkUnique := flag.Bool("unique", sw.CheckUnique, "after finding a solution, keep searching to confirm it is the only one")
	cellPicker := flag.String("cellpicker", "math", "branching cell heuristic: simple, adhoc, or math")
	colorPicker := flag.String("colorpicker", "min", "branching color heuristic: min, max, random, or contrast")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <puzzle-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(constants.ExitInputError)
	}

	sw.Probe = *probe
	sw.Backtrack = *backtrack
	sw.TryHarder = *tryHarder
	sw.MergeProbe = *mergeProbe
	sw.CheckUnique = *checkUnique

	variant, err := parseCellPicker(*cellPicker)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(constants.ExitInputError)
	}
	sw.CellPicker = variant

	colorVariant, err := parseColorPicker(*colorPicker)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(constants.ExitInputError)
	}
	sw.ColorPicker = colorVariant

	puz, sol, err := puzzles.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(constants.ExitInputError)
	}

	solver := search.NewSolver(puz, sol, sw)
	status := solver.Solve()

	fmt.Print(core.SolutionString(puz, sol))
	fmt.Printf("status: %s\n", status)
	fmt.Printf("lines=%d guesses=%d backtracks=%d probes=%d merges=%d exhaust_runs=%d exhaust_cells=%d\n",
		solver.Stats.Lines, solver.Stats.Guesses, solver.Stats.Backtracks,
		solver.Stats.Probes, solver.Stats.Merges, solver.Stats.ExhaustRuns, solver.Stats.ExhaustCells)

	os.Exit(status.ExitCode())
}

func parseCellPicker(s string) (search.CellRatingVariant, error) {
	switch s {
	case "simple":
		return search.RatingSimple, nil
	case "adhoc":
		return search.RatingAdhoc, nil
	case "math":
		return search.RatingMath, nil
	default:
		return 0, fmt.Errorf("unknown -cellpicker %q (want simple, adhoc, or math)", s)
	}
}

func parseColorPicker(s string) (search.ColorVariant, error) {
	switch s {
	case "min":
		return search.ColorMin, nil
	case "max":
		return search.ColorMax, nil
	case "random":
		return search.ColorRandom, nil
	case "contrast":
		return search.ColorContrast, nil
	default:
		return 0, fmt.Errorf("unknown -colorpicker %q (want min, max, random, or contrast)", s)
	}
}
