package utils

const (
	historySize = 5
	cycleWindow = 3
)

// History remembers the hashes of recent board states for cycle detection
type History struct {
	hashes []string
}

// Record adds a state hash and keeps only the most recent ones
func (h *History) Record(hash string) {
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// Stagnant reports whether hash repeats one of the last three recorded states,
// which catches still lifes and oscillators of period up to 3
func (h *History) Stagnant(hash string) bool {
	for i := 1; i <= cycleWindow && i <= len(h.hashes); i++ {
		if h.hashes[len(h.hashes)-i] == hash {
			return true
		}
	}
	return false
}

// Len returns how many states are remembered
func (h *History) Len() int {
	return len(h.hashes)
}

// Reset forgets every recorded state
func (h *History) Reset() {
	h.hashes = nil
}
