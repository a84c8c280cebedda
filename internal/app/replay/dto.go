package replay

import (
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

type Request struct {
	SessionID    string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

// Snapshot is the latest state summary recovered from the journal. It is
// informational only and never restores a session.
type Snapshot struct {
	Stats   survival.Stats `json:"stats"`
	Clock   world.Clock    `json:"clock"`
	Biome   world.Biome    `json:"biome"`
	Version int64          `json:"version"`
}

type Response struct {
	Events      []survival.DomainEvent `json:"events"`
	LatestState *Snapshot              `json:"latest_state,omitempty"`
}
