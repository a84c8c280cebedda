package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"wildcraft/internal/adapter/repo/memory"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

type failingEvents struct{ err error }

func (f failingEvents) Append(context.Context, string, []survival.DomainEvent) error { return f.err }
func (f failingEvents) ListBySessionID(context.Context, string, int) ([]survival.DomainEvent, error) {
	return nil, f.err
}

func TestUseCase_ReconstructsLatestState(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewEventRepo(store)
	base := time.Unix(1_700_000_000, 0)

	eng := survival.Engine{Catalog: mustCatalog(t), Now: func() time.Time { return base }}
	state := survival.NewSession(eng.Catalog)
	for i := 0; i < 3; i++ {
		out, err := eng.CollectResource(state, "fiber")
		if err != nil {
			t.Fatalf("collect: %v", err)
		}
		state = out.UpdatedState
		if err := repo.Append(context.Background(), "s1", out.Events); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	resp, err := UseCase{Events: repo}.Execute(context.Background(), Request{SessionID: "s1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(resp.Events))
	}
	if resp.LatestState == nil {
		t.Fatalf("expected latest state")
	}
	if got, want := resp.LatestState.Version, state.Version; got != want {
		t.Fatalf("version mismatch: got=%d want=%d", got, want)
	}
	if got, want := resp.LatestState.Clock, state.Clock; got != want {
		t.Fatalf("clock mismatch: got=%+v want=%+v", got, want)
	}
	if resp.LatestState.Stats != state.Stats {
		t.Fatalf("stats mismatch: got=%+v want=%+v", resp.LatestState.Stats, state.Stats)
	}
	if resp.LatestState.Biome != world.BiomeForest {
		t.Fatalf("biome = %s", resp.LatestState.Biome)
	}
}

func TestUseCase_EmptyJournal(t *testing.T) {
	repo := memory.NewEventRepo(memory.NewStore())
	resp, err := UseCase{Events: repo}.Execute(context.Background(), Request{SessionID: "s1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Events) != 0 || resp.LatestState != nil {
		t.Fatalf("expected empty response, got %+v", resp)
	}
}

func TestUseCase_FiltersByTimeWindow(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewEventRepo(store)
	base := time.Unix(1_700_000_000, 0)
	for i := 0; i < 5; i++ {
		_ = repo.Append(context.Background(), "s1", []survival.DomainEvent{{Type: "e", OccurredAt: base.Add(time.Duration(i) * time.Minute)}})
	}

	resp, err := UseCase{Events: repo}.Execute(context.Background(), Request{
		SessionID:    "s1",
		OccurredFrom: base.Add(time.Minute).Unix(),
		OccurredTo:   base.Add(3 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got, want := len(resp.Events), 3; got != want {
		t.Fatalf("event count mismatch: got=%d want=%d", got, want)
	}
}

func TestUseCase_RejectsInvalidRequest(t *testing.T) {
	uc := UseCase{}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), Request{SessionID: "s1", Limit: -1}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for negative limit, got %v", err)
	}
}

func TestUseCase_PropagatesRepoError(t *testing.T) {
	wantErr := errors.New("db down")
	if _, err := (UseCase{Events: failingEvents{err: wantErr}}).Execute(context.Background(), Request{SessionID: "s1"}); !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

func mustCatalog(t *testing.T) *survival.Catalog {
	t.Helper()
	c, err := survival.NewCatalog(survival.Content{
		Resources: []survival.Resource{{ID: "fiber", Name: "Fiber", Biome: world.BiomeAll, Rarity: survival.RarityCommon, EnergyCost: 3}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}
