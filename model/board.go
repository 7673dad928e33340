package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// defaultOneIn gives each freshly seeded cell a 1 in 3 chance of starting alive
const defaultOneIn = 3

// ErrInvalidArgument is the cause of every precondition violation reported by a Board
var ErrInvalidArgument = errors.New("invalid argument")

// Position addresses a cell by row and column, both 0-indexed
type Position struct {
	Row    int
	Column int
}

// Board owns a fixed rows x columns grid of cells, indexed [row][column]
type Board struct {
	rows       int
	columns    int
	grid       [][]Cell
	order      []Position // row-major visiting order used by Advance
	workers    int
	generation int
	scratch    *scratchPool
}

type options struct {
	rng     *rand.Rand
	oneIn   int
	workers int
	empty   bool
}

// Option configures a Board at construction time
type Option func(*options)

// WithRand seeds the board from the given random source
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed seeds the board from a source created with seed
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithDensity makes each cell start alive iff a uniform draw over oneIn values equals 1
func WithDensity(oneIn int) Option {
	return func(o *options) { o.oneIn = oneIn }
}

// WithWorkers splits neighbor counting across n goroutines during Advance
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithEmptyGrid skips random seeding, every cell starts dead
func WithEmptyGrid() Option {
	return func(o *options) { o.empty = true }
}

// NewBoard allocates a rows x columns board and randomly seeds every cell.
//
// rows must be positive and columns non-negative; a board with zero columns is
// valid and simply has no cells.
func NewBoard(rows, columns int, opts ...Option) (*Board, error) {
	o := options{oneIn: defaultOneIn, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	if rows <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "[NewBoard] rows must be positive, got %d", rows)
	}
	if columns < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "[NewBoard] columns must not be negative, got %d", columns)
	}
	if o.oneIn < 2 {
		return nil, errors.Wrapf(ErrInvalidArgument, "[NewBoard] density must draw from at least 2 values, got %d", o.oneIn)
	}
	if o.workers < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "[NewBoard] workers must be positive, got %d", o.workers)
	}

	b := newBoard(rows, columns)
	b.workers = o.workers

	if !o.empty {
		if o.rng == nil {
			o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		b.seed(o.rng, o.oneIn)
	}
	return b, nil
}

func newBoard(rows, columns int) *Board {
	grid := make([][]Cell, rows)
	order := make([]Position, 0, rows*columns)
	for r := range grid {
		grid[r] = make([]Cell, columns)
		for c := range columns {
			order = append(order, Position{Row: r, Column: c})
		}
	}
	return &Board{
		rows:    rows,
		columns: columns,
		grid:    grid,
		order:   order,
		workers: 1,
		scratch: newScratchPool(),
	}
}

// seed draws once per cell, row-major
func (b *Board) seed(rng *rand.Rand, oneIn int) {
	for r := range b.grid {
		for c := range b.grid[r] {
			if rng.Intn(oneIn) == 1 {
				b.grid[r][c].SetAlive()
			}
		}
	}
}

// Rows returns the number of rows
func (b *Board) Rows() int {
	return b.rows
}

// Columns returns the number of columns
func (b *Board) Columns() int {
	return b.columns
}

// Generation returns how many times Advance has completed
func (b *Board) Generation() int {
	return b.generation
}

func (b *Board) inBounds(row, column int) bool {
	return row >= 0 && row < b.rows && column >= 0 && column < b.columns
}

func (b *Board) checkBounds(caller string, row, column int) error {
	if !b.inBounds(row, column) {
		return errors.Wrapf(ErrInvalidArgument, "[%s] position (%d, %d) outside %dx%d board",
			caller, row, column, b.rows, b.columns)
	}
	return nil
}

// IsAlive reports whether the cell at (row, column) is alive
func (b *Board) IsAlive(row, column int) (bool, error) {
	if err := b.checkBounds("IsAlive", row, column); err != nil {
		return false, err
	}
	return b.grid[row][column].IsAlive(), nil
}

// Set forces the cell at (row, column) alive or dead
func (b *Board) Set(row, column int, alive bool) error {
	if err := b.checkBounds("Set", row, column); err != nil {
		return err
	}
	if alive {
		b.grid[row][column].SetAlive()
	} else {
		b.grid[row][column].SetDead()
	}
	return nil
}

// neighborBounds clips the 3x3 block around (row, column) to the board
func (b *Board) neighborBounds(row, column int) (minR, maxR, minC, maxC int) {
	return max(0, row-1), min(b.rows-1, row+1), max(0, column-1), min(b.columns-1, column+1)
}

// NeighborsOf returns the in-bounds cells surrounding (row, column), row-major.
// Corner cells have 3 neighbors, edge cells 5 and interior cells 8; the board
// does not wrap.
func (b *Board) NeighborsOf(row, column int) ([]*Cell, error) {
	if err := b.checkBounds("NeighborsOf", row, column); err != nil {
		return nil, err
	}

	minR, maxR, minC, maxC := b.neighborBounds(row, column)
	neighbors := make([]*Cell, 0, 8)
	for r := minR; r <= maxR; r++ {
		for c := minC; c <= maxC; c++ {
			if r == row && c == column {
				continue
			}
			neighbors = append(neighbors, &b.grid[r][c])
		}
	}
	return neighbors, nil
}

// countAliveNeighbors walks the same block as NeighborsOf without allocating
func (b *Board) countAliveNeighbors(row, column int) int {
	count := 0
	minR, maxR, minC, maxC := b.neighborBounds(row, column)
	for r := minR; r <= maxR; r++ {
		for c := minC; c <= maxC; c++ {
			if r == row && c == column {
				continue
			}
			if b.grid[r][c].alive {
				count++
			}
		}
	}
	return count
}

// CountLivingCells returns the total number of living cells
func (b *Board) CountLivingCells() (count int) {
	for r := range b.grid {
		for c := range b.grid[r] {
			if b.grid[r][c].alive {
				count++
			}
		}
	}
	return
}

// Snapshot copies the current cell states into a fresh [row][column] matrix
func (b *Board) Snapshot() [][]bool {
	snap := make([][]bool, b.rows)
	for r := range b.grid {
		snap[r] = make([]bool, b.columns)
		for c := range b.grid[r] {
			snap[r][c] = b.grid[r][c].alive
		}
	}
	return snap
}

// Clone returns an independent board with the same dimensions, cells and settings
func (b *Board) Clone() *Board {
	clone := newBoard(b.rows, b.columns)
	for r := range b.grid {
		copy(clone.grid[r], b.grid[r])
	}
	clone.workers = b.workers
	clone.generation = b.generation
	clone.scratch = b.scratch
	return clone
}

// Hash returns an MD5 digest of the current cell states
func (b *Board) Hash() string {
	h := md5.New()
	for r := range b.grid {
		for c := range b.grid[r] {
			if b.grid[r][c].alive {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
