package ports

import (
	"context"
	"time"

	"wildcraft/internal/domain/survival"
)

type ActionResult struct {
	UpdatedState survival.GameState
	Events       []survival.DomainEvent
	ResultCode   survival.ResultCode
}

type ActionExecutionRecord struct {
	SessionID      string
	IdempotencyKey string
	IntentType     string
	Result         ActionResult
	AppliedAt      time.Time
}

type GameStateRepository interface {
	GetBySessionID(ctx context.Context, sessionID string) (survival.GameState, error)
	SaveWithVersion(ctx context.Context, sessionID string, state survival.GameState, expectedVersion int64) error
}

type ActionExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*ActionExecutionRecord, error)
	SaveExecution(ctx context.Context, execution ActionExecutionRecord) error
}

type EventRepository interface {
	Append(ctx context.Context, sessionID string, events []survival.DomainEvent) error
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]survival.DomainEvent, error)
}

// EventArchive receives every event batch after the state commit. It is a
// write-only audit sink; nothing reads state back from it.
type EventArchive interface {
	Write(ctx context.Context, sessionID string, events []survival.DomainEvent) error
}

type CatalogProvider interface {
	Load(ctx context.Context) (*survival.Catalog, error)
}
