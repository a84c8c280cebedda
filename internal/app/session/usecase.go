package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

var ErrInvalidRequest = errors.New("invalid session request")

// Resetter replaces a session regardless of its stored version.
type Resetter interface {
	Reset(ctx context.Context, sessionID string, state survival.GameState) error
}

// ExecutionForgetter drops idempotency records so keys can be reused after a
// restart.
type ExecutionForgetter interface {
	ForgetSession(ctx context.Context, sessionID string) error
}

type Request struct {
	SessionID string
}

type Response struct {
	State  survival.GameState     `json:"state"`
	Events []survival.DomainEvent `json:"events"`
}

type UseCase struct {
	TxManager  ports.TxManager
	StateRepo  ports.GameStateRepository
	Resetter   Resetter
	Executions ExecutionForgetter
	EventRepo  ports.EventRepository
	Archive    ports.EventArchive
	Catalog    *survival.Catalog
	Now        func() time.Time
}

// Restart discards the current run and starts a fresh one. It works on live
// and dead sessions alike and creates the session when it does not exist.
func (u UseCase) Restart(ctx context.Context, req Request) (Response, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		fresh := survival.NewSession(u.Catalog)
		var previous survival.GameState
		current, err := u.StateRepo.GetBySessionID(txCtx, sessionID)
		switch {
		case err == nil:
			previous = current
			fresh.Version = current.Version + 1
		case errors.Is(err, ports.ErrNotFound):
		default:
			return err
		}

		if err := u.store(txCtx, sessionID, fresh, previous.Version); err != nil {
			return err
		}
		if u.Executions != nil {
			if err := u.Executions.ForgetSession(txCtx, sessionID); err != nil {
				return fmt.Errorf("forget executions: %w", err)
			}
		}
		out = Response{State: fresh, Events: []survival.DomainEvent{u.startedEvent(sessionID, previous, fresh)}}
		if u.EventRepo != nil {
			return u.EventRepo.Append(txCtx, sessionID, out.Events)
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	if u.Archive != nil {
		if err := u.Archive.Write(ctx, sessionID, out.Events); err != nil {
			hlog.CtxWarnf(ctx, "archive restart for session %s: %v", sessionID, err)
		}
	}
	hlog.CtxInfof(ctx, "session %s restarted at version %d", sessionID, out.State.Version)
	return out, nil
}

// Ensure creates the session when it is missing and leaves an existing one
// alone.
func (u UseCase) Ensure(ctx context.Context, req Request) (survival.GameState, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return survival.GameState{}, ErrInvalidRequest
	}
	state, err := u.StateRepo.GetBySessionID(ctx, sessionID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return survival.GameState{}, err
	}
	out, err := u.Restart(ctx, req)
	if err != nil {
		return survival.GameState{}, err
	}
	return out.State, nil
}

func (u UseCase) store(ctx context.Context, sessionID string, fresh survival.GameState, expected int64) error {
	if u.Resetter != nil {
		return u.Resetter.Reset(ctx, sessionID, fresh)
	}
	return u.StateRepo.SaveWithVersion(ctx, sessionID, fresh, expected)
}

func (u UseCase) startedEvent(sessionID string, previous, fresh survival.GameState) survival.DomainEvent {
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	payload := map[string]any{
		"session_id": sessionID,
		"version":    fresh.Version,
		"biome":      string(fresh.Biome),
		"day":        fresh.Clock.Day,
	}
	if previous.Version > 0 {
		payload["previous_version"] = previous.Version
		payload["previous_died"] = previous.Dead()
	}
	return survival.DomainEvent{
		Type:       survival.EventSessionStarted,
		OccurredAt: nowFn(),
		Payload:    payload,
	}
}
