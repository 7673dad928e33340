package rules

// Transition describes what happens to a single cell between two generations.
type Transition int

const (
	Stay Transition = iota
	Born
	Dies
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// Next returns the transition a cell takes given its current state and alive-neighbor count
func Next(neighbors int, alive bool) Transition {
	switch next := ApplyConwayRules(neighbors, alive); {
	case alive && !next:
		return Dies
	case !alive && next:
		return Born
	}
	return Stay
}

func (t Transition) String() string {
	switch t {
	case Born:
		return "born"
	case Dies:
		return "dies"
	}
	return "stay"
}
