package model

import (
	"math/rand"
	"reflect"
	"slices"
	"strconv"
	"testing"
)

func alivePositions(b *Board) []Position {
	var alive []Position
	for r := range b.grid {
		for c := range b.grid[r] {
			if b.grid[r][c].IsAlive() {
				alive = append(alive, Position{r, c})
			}
		}
	}
	return alive
}

// referenceNext computes the next generation into a fresh buffer
func referenceNext(snap [][]bool) [][]bool {
	rows := len(snap)
	next := make([][]bool, rows)
	for r := range snap {
		next[r] = make([]bool, len(snap[r]))
		for c := range snap[r] {
			n := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					nr, nc := r+dr, c+dc
					if (dr == 0 && dc == 0) || nr < 0 || nr >= rows || nc < 0 || nc >= len(snap[r]) {
						continue
					}
					if snap[nr][nc] {
						n++
					}
				}
			}
			next[r][c] = n == 3 || (snap[r][c] && n == 2)
		}
	}
	return next
}

func TestAdvanceSingleCellBoardDies(t *testing.T) {
	for _, alive := range []bool{true, false} {
		b := newTestBoard(t, 1, 1)
		if err := b.Set(0, 0, alive); err != nil {
			t.Fatal(err)
		}
		for range 3 {
			b.Advance()
			if got, _ := b.IsAlive(0, 0); got {
				t.Fatalf("1x1 board starting alive=%v has a live cell after generation %d", alive, b.Generation())
			}
		}
	}
}

func TestAdvanceBlockIsStillLife(t *testing.T) {
	block := []Position{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	b := newTestBoard(t, 4, 4, block...)
	for range 10 {
		b.Advance()
		if got := alivePositions(b); !reflect.DeepEqual(got, block) {
			t.Fatalf("generation %d: alive = %v, want %v", b.Generation(), got, block)
		}
	}
}

func TestAdvanceBlinkerOscillates(t *testing.T) {
	horizontal := []Position{{1, 1}, {1, 2}, {1, 3}}
	vertical := []Position{{0, 2}, {1, 2}, {2, 2}}

	b := newTestBoard(t, 5, 5, horizontal...)
	for i := range 6 {
		b.Advance()
		want := vertical
		if i%2 == 1 {
			want = horizontal
		}
		if got := alivePositions(b); !reflect.DeepEqual(got, want) {
			t.Fatalf("generation %d: alive = %v, want %v", b.Generation(), got, want)
		}
	}
}

func TestAdvanceUnderpopulation(t *testing.T) {
	tests := []struct {
		name  string
		alive []Position
	}{
		{"isolated cell", []Position{{2, 2}}},
		{"pair", []Position{{2, 2}, {2, 3}}},
		{"corner cell", []Position{{0, 0}}},
		{"diagonal pair", []Position{{0, 0}, {1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t, 5, 5, tt.alive...)
			b.Advance()
			if got := alivePositions(b); len(got) != 0 {
				t.Errorf("alive after one generation = %v, want none", got)
			}
		})
	}
}

func TestAdvanceOverpopulation(t *testing.T) {
	// centre has four live neighbors
	b := newTestBoard(t, 3, 3, Position{1, 1}, Position{0, 0}, Position{0, 2}, Position{2, 0}, Position{2, 2})
	b.Advance()
	if alive, _ := b.IsAlive(1, 1); alive {
		t.Error("cell with four live neighbors survived")
	}
}

func TestAdvanceReproduction(t *testing.T) {
	tests := []struct {
		name  string
		alive []Position
		want  bool
	}{
		{"two neighbors", []Position{{0, 0}, {0, 2}}, false},
		{"three neighbors", []Position{{0, 0}, {0, 1}, {0, 2}}, true},
		{"three scattered neighbors", []Position{{0, 0}, {2, 1}, {1, 2}}, true},
		{"four neighbors", []Position{{0, 0}, {0, 2}, {2, 0}, {2, 2}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t, 3, 3, tt.alive...)
			b.Advance()
			if got, _ := b.IsAlive(1, 1); got != tt.want {
				t.Errorf("centre alive = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdvanceGliderTravels(t *testing.T) {
	b := newTestBoard(t, 10, 10)
	b.Place(Glider, 0, 0)
	for range 4 {
		b.Advance()
	}

	want := make([]Position, 0, len(Glider.Cells))
	for _, p := range Glider.Cells {
		want = append(want, Position{p.Row + 1, p.Column + 1})
	}
	slices.SortFunc(want, func(a, b Position) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Column - b.Column
	})
	if got := alivePositions(b); !reflect.DeepEqual(got, want) {
		t.Errorf("glider after 4 generations = %v, want %v", got, want)
	}
}

func TestAdvanceIsDeterministic(t *testing.T) {
	a, err := NewBoard(30, 40, WithSeed(2024))
	if err != nil {
		t.Fatal(err)
	}
	b := a.Clone()
	for range 25 {
		a.Advance()
		b.Advance()
		if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
			t.Fatalf("copies diverged at generation %d", a.Generation())
		}
	}
}

func TestAdvanceMatchesDoubleBufferedReference(t *testing.T) {
	b, err := NewBoard(23, 31, WithSeed(11))
	if err != nil {
		t.Fatal(err)
	}
	for range 20 {
		want := referenceNext(b.Snapshot())
		b.Advance()
		if got := b.Snapshot(); !reflect.DeepEqual(got, want) {
			t.Fatalf("generation %d differs from the double-buffered reference", b.Generation())
		}
	}
}

func TestAdvanceIsIndependentOfIterationOrder(t *testing.T) {
	base, err := NewBoard(16, 21, WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}

	reversed := slices.Clone(base.order)
	slices.Reverse(reversed)

	shuffled := slices.Clone(base.order)
	rng := rand.New(rand.NewSource(13))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	columnMajor := make([]Position, 0, len(base.order))
	for c := range base.Columns() {
		for r := range base.Rows() {
			columnMajor = append(columnMajor, Position{r, c})
		}
	}

	orders := map[string][]Position{
		"reversed":     reversed,
		"shuffled":     shuffled,
		"column major": columnMajor,
	}

	for gen := range 10 {
		want := base.Clone()
		want.advanceInOrder(want.order)

		for name, order := range orders {
			got := base.Clone()
			got.advanceInOrder(order)
			if !reflect.DeepEqual(got.Snapshot(), want.Snapshot()) {
				t.Fatalf("generation %d: %s order differs from row-major order", gen+1, name)
			}
		}
		base = want
	}
}

func TestAdvanceParallelMatchesSequential(t *testing.T) {
	tests := []struct {
		name          string
		rows, columns int
		workers       int
	}{
		{"even split", 32, 32, 4},
		{"uneven split", 17, 9, 4},
		{"more workers than rows", 3, 12, 16},
		{"single column", 25, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := NewBoard(tt.rows, tt.columns, WithSeed(77))
			if err != nil {
				t.Fatal(err)
			}
			par, err := NewBoard(tt.rows, tt.columns, WithSeed(77), WithWorkers(tt.workers))
			if err != nil {
				t.Fatal(err)
			}
			for range 15 {
				seq.Advance()
				par.Advance()
				if !reflect.DeepEqual(seq.Snapshot(), par.Snapshot()) {
					t.Fatalf("generation %d: parallel board differs from sequential", seq.Generation())
				}
			}
		})
	}
}

func TestAdvanceCountsGenerations(t *testing.T) {
	b := newTestBoard(t, 2, 2)
	for i := 1; i <= 3; i++ {
		b.Advance()
		if b.Generation() != i {
			t.Errorf("Generation() = %d, want %d", b.Generation(), i)
		}
	}
}

func BenchmarkAdvance(b *testing.B) {
	for _, workers := range []int{1, 2, 4, 8} {
		board, err := NewBoard(200, 200, WithSeed(1), WithWorkers(workers))
		if err != nil {
			b.Fatal(err)
		}
		b.Run("workers="+strconv.Itoa(workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				board.Advance()
			}
		})
	}
}
