package model

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Pattern is a set of live cells relative to a top-left anchor
type Pattern struct {
	Name  string
	Cells []Position
}

var (
	// Block is a 2x2 still life
	Block = Pattern{
		Name:  "block",
		Cells: []Position{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}

	// Blinker is a period 2 oscillator, horizontal phase
	Blinker = Pattern{
		Name:  "blinker",
		Cells: []Position{{0, 0}, {0, 1}, {0, 2}},
	}

	// Glider travels one cell diagonally every 4 generations
	Glider = Pattern{
		Name:  "glider",
		Cells: []Position{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	}

	patterns = map[string]Pattern{
		Block.Name:   Block,
		Blinker.Name: Blinker,
		Glider.Name:  Glider,
	}
)

// PatternNames lists the known pattern names in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PatternByName looks up a pattern case-insensitively
func PatternByName(name string) (Pattern, error) {
	p, ok := patterns[strings.ToLower(name)]
	if !ok {
		return Pattern{}, errors.Wrapf(ErrInvalidArgument, "[PatternByName] unknown pattern %q, want one of %s",
			name, strings.Join(PatternNames(), ", "))
	}
	return p, nil
}

// Place sets the pattern's cells alive with its anchor at (row, column).
// Cells falling outside the board are skipped. It returns how many cells were placed.
func (b *Board) Place(p Pattern, row, column int) int {
	placed := 0
	for _, pos := range p.Cells {
		r, c := row+pos.Row, column+pos.Column
		if !b.inBounds(r, c) {
			continue
		}
		b.grid[r][c].SetAlive()
		placed++
	}
	return placed
}
