package model

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	gridPosAlive = "⬛"
	gridPosDead  = "⬜"

	ansiClearScreen = "\033[H\033[2J"
)

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	Out   io.Writer
	Alive string
	Dead  string
}

// NewTerminalRenderer renders to stdout with the default cell glyphs
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout, Alive: gridPosAlive, Dead: gridPosDead}
}

// Display renders the board, one line per row
func (r *TerminalRenderer) Display(b *Board) error {
	var sb strings.Builder
	for row := range b.grid {
		for col := range b.grid[row] {
			if b.grid[row][col].alive {
				sb.WriteString(r.Alive)
			} else {
				sb.WriteString(r.Dead)
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(r.Out, sb.String())
	return err
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	_, err := fmt.Fprint(r.Out, ansiClearScreen)
	return err
}
