// Package puzzles loads nonogram puzzles from two on-disk formats: a plain
// text clue format in the spirit of Steven Simpson's NON format, and a
// JSON save format. Both return a ready-to-solve core.Puzzle plus its
// initial, all-set core.Solution.
package puzzles

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"nonosolve/internal/core"
)

// Load reads a puzzle file, sniffing its format from content: a leading
// '{' means JSON, anything else is parsed as NON text.
func Load(path string) (*core.Puzzle, *core.Solution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("puzzles: read %s: %w", path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return ParseJSON(data)
	}
	return ParseNON(data)
}

// --- JSON format ---

type jsonColor struct {
	Name string `json:"name"`
	RGB  string `json:"rgb,omitempty"`
	Ch   string `json:"ch"`
}

type jsonClue struct {
	Length int `json:"length"`
	Color  int `json:"color"`
}

type jsonPuzzle struct {
	Title    string       `json:"title,omitempty"`
	Source   string       `json:"source,omitempty"`
	Palette  []jsonColor  `json:"palette"`
	Rows     [][]jsonClue `json:"rows"`
	Columns  [][]jsonClue `json:"columns"`
	Solution string       `json:"solution,omitempty"`
}

// ParseJSON parses the JSON save format: a palette (index 0 = background),
// row clues, column clues, and an optional reference solution string. The
// solution string is accepted but discarded: it is neither kept on the
// Puzzle nor loaded into the Solution, and nothing compares against it.
func ParseJSON(data []byte) (*core.Puzzle, *core.Solution, error) {
	var jp jsonPuzzle
	if err := json.Unmarshal(data, &jp); err != nil {
		return nil, nil, fmt.Errorf("puzzles: parse json: %w", err)
	}
	if len(jp.Palette) == 0 {
		return nil, nil, fmt.Errorf("puzzles: json puzzle has no palette")
	}

	palette := make([]core.Color, len(jp.Palette))
	for i, c := range jp.Palette {
		if len(c.Ch) != 1 {
			return nil, nil, fmt.Errorf("puzzles: palette entry %d: ch must be exactly one character", i)
		}
		palette[i] = core.Color{Name: c.Name, RGB: c.RGB, Ch: c.Ch[0]}
	}

	rows := toClueSets(jp.Rows)
	cols := toClueSets(jp.Columns)

	puz, err := core.NewGridPuzzle(palette, rows, cols)
	if err != nil {
		return nil, nil, fmt.Errorf("puzzles: %w", err)
	}
	puz.Title = jp.Title
	puz.Source = jp.Source

	sol := core.NewSolution(puz)
	return puz, sol, nil
}

func toClueSets(in [][]jsonClue) [][]core.Clue {
	out := make([][]core.Clue, len(in))
	for i, line := range in {
		cs := make([]core.Clue, len(line))
		for j, c := range line {
			cs[j] = core.Clue{Length: c.Length, Color: c.Color}
		}
		out[i] = cs
	}
	return out
}

// WriteJSON renders puz back into the JSON save format (without a
// reference solution), for round-tripping a loaded puzzle.
func WriteJSON(puz *core.Puzzle) ([]byte, error) {
	jp := jsonPuzzle{
		Title:  puz.Title,
		Source: puz.Source,
	}
	jp.Palette = make([]jsonColor, len(puz.Palette))
	for i, c := range puz.Palette {
		jp.Palette[i] = jsonColor{Name: c.Name, RGB: c.RGB, Ch: string(c.Ch)}
	}
	jp.Rows = fromClueSets(puz.Clue[core.DirRow])
	jp.Columns = fromClueSets(puz.Clue[core.DirCol])
	return json.MarshalIndent(jp, "", "  ")
}

func fromClueSets(in []core.LineClue) [][]jsonClue {
	out := make([][]jsonClue, len(in))
	for i, lc := range in {
		cs := make([]jsonClue, len(lc.Clues))
		for j, c := range lc.Clues {
			cs[j] = jsonClue{Length: c.Length, Color: c.Color}
		}
		out[i] = cs
	}
	return out
}

// --- NON text format ---

// ParseNON parses the line-oriented clue format:
//
//	width 5
//	height 2
//	title My Puzzle
//	colors
//	a #ff0000 red
//	rows
//	5
//	1,1,1
//	columns
//	1
//	1
//	1
//	1
//	1
//
// "width"/"height"/"title"/"source" are key-value header lines (colon
// after the key is optional); width and height are ignored, the grid size
// comes from the number of column and row clue lines. "colors", "rows", and "columns" switch the
// active section; color lines are "<char> <hex-rgb> [name...]"; clue lines
// are comma-separated tokens, each either a bare length (defaulting to
// color index 1) or "length:color", where color is a palette index or a
// palette character. Blank lines and lines starting with '#' are ignored.
// Color index 0 (background) is implicit and need not appear in the
// colors section.
func ParseNON(data []byte) (*core.Puzzle, *core.Solution, error) {
	palette := []core.Color{{Name: "background", Ch: '.'}}
	var title, source string
	var rows, cols [][]core.Clue
	section := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, hasValue := splitKV(line)
		lower := strings.ToLower(key)

		switch {
		case lower == "width" && hasValue:
			continue // ignored: the width is the number of column clue lines
		case lower == "height" && hasValue:
			continue
		case lower == "title" && hasValue:
			title = value
		case lower == "source" && hasValue:
			source = value
		case lower == "colors":
			section = "colors"
		case lower == "rows":
			section = "rows"
		case lower == "columns":
			section = "columns"
		default:
			switch section {
			case "colors":
				c, err := parseColorLine(line)
				if err != nil {
					return nil, nil, fmt.Errorf("puzzles: line %d: %w", lineNo, err)
				}
				palette = append(palette, c)
			case "rows":
				clues, err := parseClueLine(line, palette)
				if err != nil {
					return nil, nil, fmt.Errorf("puzzles: line %d: %w", lineNo, err)
				}
				rows = append(rows, clues)
			case "columns":
				clues, err := parseClueLine(line, palette)
				if err != nil {
					return nil, nil, fmt.Errorf("puzzles: line %d: %w", lineNo, err)
				}
				cols = append(cols, clues)
			default:
				return nil, nil, fmt.Errorf("puzzles: line %d: %q outside any section", lineNo, line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("puzzles: scan: %w", err)
	}
	if len(rows) == 0 || len(cols) == 0 {
		return nil, nil, fmt.Errorf("puzzles: missing rows or columns section")
	}

	puz, err := core.NewGridPuzzle(palette, rows, cols)
	if err != nil {
		return nil, nil, fmt.Errorf("puzzles: %w", err)
	}
	puz.Title = title
	puz.Source = source

	sol := core.NewSolution(puz)
	return puz, sol, nil
}

// splitKV splits "key value" or "key: value" into (key, value, true), or
// returns (line, "", false) if there is no separator.
func splitKV(line string) (key, value string, hasValue bool) {
	if i := strings.IndexAny(line, " \t:"); i >= 0 {
		key = line[:i]
		value = strings.TrimSpace(strings.TrimPrefix(line[i:], ":"))
		return key, value, value != ""
	}
	return line, "", false
}

func parseColorLine(line string) (core.Color, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return core.Color{}, fmt.Errorf("color line needs at least a character and an RGB value: %q", line)
	}
	if len(fields[0]) != 1 {
		return core.Color{}, fmt.Errorf("color character must be one byte: %q", fields[0])
	}
	name := ""
	if len(fields) > 2 {
		name = strings.Join(fields[2:], " ")
	}
	return core.Color{Name: name, RGB: strings.TrimPrefix(fields[1], "#"), Ch: fields[0][0]}, nil
}

func parseClueLine(line string, palette []core.Color) ([]core.Clue, error) {
	if line == "0" {
		return nil, nil
	}
	tokens := strings.Split(line, ",")
	clues := make([]core.Clue, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		clue, err := parseClueToken(tok, palette)
		if err != nil {
			return nil, err
		}
		clues = append(clues, clue)
	}
	return clues, nil
}

func parseClueToken(tok string, palette []core.Color) (core.Clue, error) {
	lengthPart, colorPart, hasColor := strings.Cut(tok, ":")
	length, err := strconv.Atoi(strings.TrimSpace(lengthPart))
	if err != nil {
		return core.Clue{}, fmt.Errorf("invalid clue length %q", lengthPart)
	}
	if !hasColor {
		return core.Clue{Length: length, Color: 1}, nil
	}

	colorPart = strings.TrimSpace(colorPart)
	if idx, err := strconv.Atoi(colorPart); err == nil {
		return core.Clue{Length: length, Color: idx}, nil
	}
	if len(colorPart) == 1 {
		for i, c := range palette {
			if c.Ch == colorPart[0] {
				return core.Clue{Length: length, Color: i}, nil
			}
		}
	}
	return core.Clue{}, fmt.Errorf("unknown clue color %q", colorPart)
}
