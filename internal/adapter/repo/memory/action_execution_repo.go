package memory

import (
	"context"

	"wildcraft/internal/app/ports"
)

type ActionExecutionRepo struct {
	store *Store
}

func NewActionExecutionRepo(store *Store) ActionExecutionRepo {
	return ActionExecutionRepo{store: store}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(_ context.Context, sessionID, key string) (*ports.ActionExecutionRecord, error) {
	r.store.dataMu.RLock()
	defer r.store.dataMu.RUnlock()
	rec, ok := r.store.execution[execKey(sessionID, key)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := rec
	return &copy, nil
}

func (r ActionExecutionRepo) SaveExecution(_ context.Context, execution ports.ActionExecutionRecord) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	k := execKey(execution.SessionID, execution.IdempotencyKey)
	if _, exists := r.store.execution[k]; exists {
		return ports.ErrConflict
	}
	r.store.execution[k] = execution
	return nil
}

// ForgetSession drops stored executions for sessionID, used on restart.
func (r ActionExecutionRepo) ForgetSession(_ context.Context, sessionID string) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	prefix := execKey(sessionID, "")
	for k := range r.store.execution {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(r.store.execution, k)
		}
	}
	return nil
}
