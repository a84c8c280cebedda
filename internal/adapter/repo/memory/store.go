package memory

import (
	"sync"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

// Store holds every session in process memory. txMu serializes use-case
// transactions; dataMu guards the maps for readers outside a transaction.
type Store struct {
	txMu   sync.Mutex
	dataMu sync.RWMutex

	state     map[string]survival.GameState
	execution map[string]ports.ActionExecutionRecord
	events    map[string][]survival.DomainEvent
}

func NewStore() *Store {
	return &Store{
		state:     make(map[string]survival.GameState),
		execution: make(map[string]ports.ActionExecutionRecord),
		events:    make(map[string][]survival.DomainEvent),
	}
}

func execKey(sessionID, key string) string {
	return sessionID + "::" + key
}

func (s *Store) SeedState(sessionID string, state survival.GameState) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.state[sessionID] = state
}

func (s *Store) SessionIDs() []string {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	out := make([]string, 0, len(s.state))
	for id := range s.state {
		out = append(out, id)
	}
	return out
}
