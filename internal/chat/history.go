package chat

import "portfolio-backend/internal/models"

// Turn is one entry of the rolling history replayed to the remote session.
type Turn struct {
	Role string
	Text string
}

// History is a FIFO buffer of user+model pairs capped at maxPairs pairs. It
// never holds the system instruction, which is supplied out of band each time
// a remote session is created.
type History struct {
	turns    []Turn
	maxPairs int
}

func NewHistory(maxPairs int) *History {
	if maxPairs <= 0 {
		maxPairs = 5
	}
	return &History{maxPairs: maxPairs}
}

func (h *History) Push(user, model string) {
	h.turns = append(h.turns,
		Turn{Role: models.RoleUser, Text: user},
		Turn{Role: models.RoleModel, Text: model},
	)
}

// Trim drops the oldest turns once the buffer exceeds 2*maxPairs entries and
// reports whether anything was dropped, in which case the remote session has
// to be rebuilt from Turns().
func (h *History) Trim() bool {
	limit := 2 * h.maxPairs
	if len(h.turns) <= limit {
		return false
	}
	h.turns = append([]Turn(nil), h.turns[len(h.turns)-limit:]...)
	return true
}

// Turns returns a copy of the buffered turns, oldest first.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

func (h *History) Len() int {
	return len(h.turns)
}
