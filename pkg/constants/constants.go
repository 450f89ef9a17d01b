// Package constants holds the small enums and display-string tables that
// replace raw numeric flags and string macros throughout the solver:
// directions, puzzle types, verbosity channels, and process exit codes.
package constants

// Direction names, matching internal/core.Direction's int values.
const (
	DirRow = iota
	DirCol
	DirUp
	DirDown
)

// DirectionNames maps a direction index to its display name.
var DirectionNames = map[int]string{
	DirRow: "row",
	DirCol: "col",
	DirUp:  "up",
	DirDown: "down",
}

// Puzzle type names, matching internal/core.Type's int values.
const (
	PTGrid = iota
	PTTrid
)

// PuzzleTypeNames maps a puzzle-type index to its display name.
var PuzzleTypeNames = map[int]string{
	PTGrid: "grid",
	PTTrid: "triddler",
}

// Verbosity is a bitmask of independent diagnostic channels (spec §6: 11
// channels), gated at runtime instead of the original's per-channel build
// flags.
type Verbosity uint16

const (
	VTop Verbosity = 1 << iota
	VBacktrack
	VExhaust
	VGuess
	VJobs
	VLineDetail
	VMerge
	VProbe
	VUndo
	VState
	VExtra
)

// VerbosityNames maps each channel bit to its single-letter name, mirroring
// the original's VCHAR table.
var VerbosityNames = map[Verbosity]string{
	VTop:        "t",
	VBacktrack:  "b",
	VExhaust:    "x",
	VGuess:      "g",
	VJobs:       "j",
	VLineDetail: "l",
	VMerge:      "m",
	VProbe:      "p",
	VUndo:       "u",
	VState:      "s",
	VExtra:      "e",
}

// Exit codes (spec §6): 0 = solved (and unique if requested), 1 = no
// solution, 2 = non-unique (when uniqueness requested), >2 = input or
// internal error.
const (
	ExitSolved     = 0
	ExitNoSolution = 1
	ExitNonUnique  = 2
	ExitInputError = 3
	ExitInternal   = 4
)

// APIVersion is reported by the HTTP health endpoint.
const APIVersion = "0.1.0"

// DefaultPort is used when the PORT environment variable is unset.
const DefaultPort = "8080"
