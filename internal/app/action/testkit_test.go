package action

import (
	"context"
	"testing"
	"time"

	staticcatalog "wildcraft/internal/adapter/catalog/static"
	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubStateRepo struct {
	bySession map[string]survival.GameState
	saves     int
}

func (r *stubStateRepo) GetBySessionID(_ context.Context, sessionID string) (survival.GameState, error) {
	state, ok := r.bySession[sessionID]
	if !ok {
		return survival.GameState{}, ports.ErrNotFound
	}
	return state, nil
}

func (r *stubStateRepo) SaveWithVersion(_ context.Context, sessionID string, state survival.GameState, expectedVersion int64) error {
	current, ok := r.bySession[sessionID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.bySession[sessionID] = state
		r.saves++
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.bySession[sessionID] = state
	r.saves++
	return nil
}

type conflictStateRepo struct {
	stubStateRepo
}

func (r *conflictStateRepo) SaveWithVersion(context.Context, string, survival.GameState, int64) error {
	return ports.ErrConflict
}

type stubActionRepo struct {
	byKey map[string]ports.ActionExecutionRecord
}

func (r *stubActionRepo) GetByIdempotencyKey(_ context.Context, sessionID, key string) (*ports.ActionExecutionRecord, error) {
	record, ok := r.byKey[sessionID+"|"+key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := record
	return &copy, nil
}

func (r *stubActionRepo) SaveExecution(_ context.Context, execution ports.ActionExecutionRecord) error {
	r.byKey[execution.SessionID+"|"+execution.IdempotencyKey] = execution
	return nil
}

type stubEventRepo struct {
	events []survival.DomainEvent
}

func (r *stubEventRepo) Append(_ context.Context, _ string, events []survival.DomainEvent) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *stubEventRepo) ListBySessionID(_ context.Context, _ string, _ int) ([]survival.DomainEvent, error) {
	if len(r.events) == 0 {
		return nil, ports.ErrNotFound
	}
	return r.events, nil
}

type stubArchive struct {
	batches int
}

func (a *stubArchive) Write(_ context.Context, _ string, _ []survival.DomainEvent) error {
	a.batches++
	return nil
}

type stubMetrics struct {
	success  map[survival.ResultCode]int
	rejected map[survival.ResultCode]int
	conflict int
	failure  int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{success: map[survival.ResultCode]int{}, rejected: map[survival.ResultCode]int{}}
}

func (m *stubMetrics) RecordSuccess(code survival.ResultCode)  { m.success[code]++ }
func (m *stubMetrics) RecordRejected(code survival.ResultCode) { m.rejected[code]++ }
func (m *stubMetrics) RecordConflict()                         { m.conflict++ }
func (m *stubMetrics) RecordFailure()                          { m.failure++ }

type fixture struct {
	uc      UseCase
	states  *stubStateRepo
	actions *stubActionRepo
	events  *stubEventRepo
	archive *stubArchive
	metrics *stubMetrics
	catalog *survival.Catalog
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	catalog, err := staticcatalog.Provider{}.Load(context.Background())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	f := fixture{
		states:  &stubStateRepo{bySession: map[string]survival.GameState{}},
		actions: &stubActionRepo{byKey: map[string]ports.ActionExecutionRecord{}},
		events:  &stubEventRepo{},
		archive: &stubArchive{},
		metrics: newStubMetrics(),
		catalog: catalog,
	}
	f.uc = UseCase{
		TxManager:  stubTxManager{},
		StateRepo:  f.states,
		ActionRepo: f.actions,
		EventRepo:  f.events,
		Archive:    f.archive,
		Metrics:    f.metrics,
		Engine:     survival.Engine{Catalog: catalog},
		Now:        func() time.Time { return testNow },
	}
	f.states.bySession["s1"] = survival.NewSession(catalog)
	return f
}

func (f fixture) give(t *testing.T, sessionID, id string, n int) {
	t.Helper()
	state := f.states.bySession[sessionID]
	if r, ok := f.catalog.Resource(id); ok {
		state.Inventory = state.Inventory.Add(survival.ResourceStack{Resource: r}, n)
	} else if it, ok := f.catalog.Item(id); ok {
		state.Inventory = state.Inventory.Add(survival.ItemStack{Item: it}, n)
	} else {
		t.Fatalf("unknown id %q", id)
	}
	f.states.bySession[sessionID] = state
}
