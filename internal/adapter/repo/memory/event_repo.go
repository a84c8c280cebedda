package memory

import (
	"context"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, sessionID string, events []survival.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	r.store.events[sessionID] = append(r.store.events[sessionID], events...)
	return nil
}

// ListBySessionID returns the newest events first.
func (r EventRepo) ListBySessionID(_ context.Context, sessionID string, limit int) ([]survival.DomainEvent, error) {
	r.store.dataMu.RLock()
	defer r.store.dataMu.RUnlock()
	all := r.store.events[sessionID]
	if len(all) == 0 {
		return nil, ports.ErrNotFound
	}
	n := len(all)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]survival.DomainEvent, 0, n)
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
