package memory

import (
	"context"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

type GameStateRepo struct {
	store *Store
}

func NewGameStateRepo(store *Store) GameStateRepo {
	return GameStateRepo{store: store}
}

func (r GameStateRepo) GetBySessionID(_ context.Context, sessionID string) (survival.GameState, error) {
	r.store.dataMu.RLock()
	defer r.store.dataMu.RUnlock()
	state, ok := r.store.state[sessionID]
	if !ok {
		return survival.GameState{}, ports.ErrNotFound
	}
	return state, nil
}

// SaveWithVersion stores state when the held version equals expectedVersion.
// expectedVersion 0 creates a new session.
func (r GameStateRepo) SaveWithVersion(_ context.Context, sessionID string, state survival.GameState, expectedVersion int64) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	current, ok := r.store.state[sessionID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.state[sessionID] = state
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.state[sessionID] = state
	return nil
}

// Reset replaces a session unconditionally.
func (r GameStateRepo) Reset(_ context.Context, sessionID string, state survival.GameState) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	r.store.state[sessionID] = state
	return nil
}
