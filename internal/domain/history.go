package domain

import "github.com/google/uuid"

// MoveToFront returns a new history with id at position 0 and no other occurrence of id.
// The input slice is not modified.
func MoveToFront(history []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(history)+1)
	out = append(out, id)
	for _, h := range history {
		if h != id {
			out = append(out, h)
		}
	}
	return out
}
