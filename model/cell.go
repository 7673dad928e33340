package model

// Cell is a single two-state unit of the board. Its position is implied by
// where the owning Board stores it.
type Cell struct {
	alive bool
}

// SetAlive marks the cell alive
func (c *Cell) SetAlive() {
	c.alive = true
}

// SetDead marks the cell dead
func (c *Cell) SetDead() {
	c.alive = false
}

// IsAlive reports the current state of the cell
func (c *Cell) IsAlive() bool {
	return c.alive
}
