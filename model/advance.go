package model

import (
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/lifeboard/rules"
)

// Advance moves the board forward one generation in place.
//
// Every transition is decided from the current generation before any cell is
// written. With more than one worker the deciding phase is split into row
// bands; the writes still only start once every band has finished reading.
func (b *Board) Advance() {
	if b.workers > 1 && b.rows > 1 && b.columns > 0 {
		b.advanceParallel()
	} else {
		b.advanceInOrder(b.order)
	}
	b.generation++
}

// advanceInOrder decides transitions visiting cells in the given order, then applies them
func (b *Board) advanceInOrder(order []Position) {
	t := b.scratch.Get()
	b.collect(order, t)
	t.apply()
	b.scratch.Put(t)
}

// collect only reads the grid
func (b *Board) collect(order []Position, t *transitions) {
	for _, p := range order {
		cell := &b.grid[p.Row][p.Column]
		switch rules.Next(b.countAliveNeighbors(p.Row, p.Column), cell.alive) {
		case rules.Born:
			t.born = append(t.born, cell)
		case rules.Dies:
			t.dies = append(t.dies, cell)
		}
	}
}

// advanceParallel calculates the next generation using one row band per worker
func (b *Board) advanceParallel() {
	var (
		eg            errgroup.Group
		numWorkers    = min(b.workers, b.rows)
		rowsPerWorker = (b.rows + numWorkers - 1) / numWorkers // Ceiling division
		bands         = make([]*transitions, 0, numWorkers)
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, b.rows)
		)
		if startRow >= b.rows {
			break
		}

		t := b.scratch.Get()
		bands = append(bands, t)
		band := b.order[startRow*b.columns : endRow*b.columns]
		eg.Go(func() error {
			b.collect(band, t)
			return nil
		})
	}

	// collect never fails; Wait is the barrier between reading and writing
	_ = eg.Wait()

	for _, t := range bands {
		t.apply()
		b.scratch.Put(t)
	}
}
