package tick

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

var ErrInvalidRequest = errors.New("invalid tick request")

// MaxMinutes bounds a single tick to one in-game day.
const MaxMinutes = 24 * 60

var tracer = otel.Tracer("wildcraft/internal/app/tick")

type Request struct {
	SessionID string
	Minutes   int
}

type Response struct {
	UpdatedState survival.GameState     `json:"updated_state"`
	Events       []survival.DomainEvent `json:"events"`
	ResultCode   survival.ResultCode    `json:"result_code"`
	Skipped      bool                   `json:"skipped"`
}

// UseCase applies one passive step to a stored session. Dead sessions are
// left untouched.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.GameStateRepository
	EventRepo ports.EventRepository
	Archive   ports.EventArchive
	Metrics   ports.TickMetrics
	Engine    survival.Engine
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" || req.Minutes < 0 || req.Minutes > MaxMinutes {
		return Response{}, ErrInvalidRequest
	}
	minutes := req.Minutes
	if minutes == 0 {
		minutes = survival.TickMinutes
	}

	ctx, span := tracer.Start(ctx, "tick")
	defer span.End()
	span.SetAttributes(attribute.String("wildcraft.session_id", sessionID))

	engine := u.Engine
	if engine.Now == nil && u.Now != nil {
		engine.Now = u.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := u.StateRepo.GetBySessionID(txCtx, sessionID)
		if err != nil {
			return err
		}
		if state.Dead() {
			out = Response{UpdatedState: state, Events: []survival.DomainEvent{}, ResultCode: survival.ResultPlayerDied, Skipped: true}
			return nil
		}
		result, err := engine.Tick(state, minutes)
		if err != nil {
			return err
		}
		for i := range result.Events {
			if result.Events[i].Payload == nil {
				result.Events[i].Payload = map[string]any{}
			}
			result.Events[i].Payload["session_id"] = sessionID
		}
		if err := u.StateRepo.SaveWithVersion(txCtx, sessionID, result.UpdatedState, state.Version); err != nil {
			return err
		}
		if u.EventRepo != nil {
			if err := u.EventRepo.Append(txCtx, sessionID, result.Events); err != nil {
				return err
			}
		}
		out = Response{UpdatedState: result.UpdatedState, Events: result.Events, ResultCode: result.ResultCode}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Response{}, err
	}

	if out.Skipped {
		if u.Metrics != nil {
			u.Metrics.RecordTickSkipped()
		}
		return out, nil
	}
	if u.Metrics != nil {
		u.Metrics.RecordTick(out.ResultCode)
	}
	if u.Archive != nil {
		if err := u.Archive.Write(ctx, sessionID, out.Events); err != nil {
			hlog.CtxWarnf(ctx, "archive tick events for session %s: %v", sessionID, err)
		}
	}
	if out.ResultCode == survival.ResultPlayerDied {
		hlog.CtxInfof(ctx, "session %s: player died on %s", sessionID, out.UpdatedState.Clock.Label())
	}
	return out, nil
}
