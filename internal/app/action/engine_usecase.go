package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

var (
	ErrInvalidRequest      = errors.New("invalid action request")
	ErrInvalidActionParams = errors.New("invalid action params")
	ErrGameOver            = errors.New("player is dead")
	ErrRecipeLocked        = errors.New("recipe locked")
	ErrResourceNotInBiome  = errors.New("resource not in biome")
)

type RecipeLockedError struct {
	RecipeID   string
	UnlockedBy string
}

func (e *RecipeLockedError) Error() string {
	return ErrRecipeLocked.Error()
}

func (e *RecipeLockedError) Unwrap() error {
	return ErrRecipeLocked
}

type ResourceNotInBiomeError struct {
	ResourceID string
	Biome      world.Biome
	Available  world.Biome
}

func (e *ResourceNotInBiomeError) Error() string {
	return ErrResourceNotInBiome.Error()
}

func (e *ResourceNotInBiomeError) Unwrap() error {
	return ErrResourceNotInBiome
}

type UnknownTargetError struct {
	Kind       survival.IDKind
	ID         string
	Suggestion string
}

func (e *UnknownTargetError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s %q, did you mean %q", e.Kind, e.ID, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

func (e *UnknownTargetError) Unwrap() error {
	return survival.ErrUnknownID
}

var tracer = otel.Tracer("wildcraft/internal/app/action")

type UseCase struct {
	TxManager  ports.TxManager
	StateRepo  ports.GameStateRepository
	ActionRepo ports.ActionExecutionRepository
	EventRepo  ports.EventRepository
	Archive    ports.EventArchive
	Metrics    ports.ActionMetrics
	Engine     survival.Engine
	Now        func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	ac, err := u.ValidateRequest(req)
	if err != nil {
		return Response{}, err
	}

	ctx, span := tracer.Start(ctx, "action."+string(ac.Tmp.ResolvedIntent.Type), trace.WithAttributes(
		attribute.String("wildcraft.session_id", ac.In.SessionID),
		attribute.String("wildcraft.intent", string(ac.Tmp.ResolvedIntent.Type)),
	))
	defer span.End()

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	ac.In.NowAt = nowFn()

	var out Response
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		replay, ok, err := u.ReplayIdempotent(txCtx, &ac)
		if err != nil {
			return err
		}
		if ok {
			out = replay
			return nil
		}
		if err := u.LoadState(txCtx, &ac); err != nil {
			return err
		}
		if err := u.ResolveSpec(&ac); err != nil {
			return err
		}
		if err := u.RunPrechecks(txCtx, &ac); err != nil {
			return err
		}
		if err := u.ExecuteAction(txCtx, &ac); err != nil {
			return err
		}
		if err := u.Persist(txCtx, &ac); err != nil {
			return err
		}
		out = u.BuildResponse(&ac)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		u.recordError(err)
		return Response{}, err
	}
	span.SetAttributes(attribute.String("wildcraft.result_code", string(out.ResultCode)))
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(out.ResultCode)
	}
	if !out.Replayed {
		u.archive(ctx, ac.In.SessionID, out.Events)
	}
	if out.ResultCode == survival.ResultPlayerDied && !out.Replayed {
		hlog.CtxInfof(ctx, "session %s: player died on %s", ac.In.SessionID, out.UpdatedState.Clock.Label())
	}

	return out, nil
}

const (
	CodeGameOver           survival.ResultCode = "GAME_OVER"
	CodeRecipeLocked       survival.ResultCode = "RECIPE_LOCKED"
	CodeResourceNotInBiome survival.ResultCode = "RESOURCE_NOT_IN_BIOME"
)

// RejectionCode maps gameplay rejections, from the engine or from the gates
// in front of it, to the code reported to clients.
func RejectionCode(err error) (survival.ResultCode, bool) {
	if code, ok := survival.ResultCodeFor(err); ok {
		return code, true
	}
	switch {
	case errors.Is(err, ErrGameOver):
		return CodeGameOver, true
	case errors.Is(err, ErrRecipeLocked):
		return CodeRecipeLocked, true
	case errors.Is(err, ErrResourceNotInBiome):
		return CodeResourceNotInBiome, true
	default:
		return "", false
	}
}

// RequirementAlive is reported when a dead player tries to act.
const RequirementAlive = "PLAYER_ALIVE"

// BlockedBy names the requirements behind a rejection code. NOT_USABLE does
// not tell a missing stack from a non-consumable one, so both are listed.
func BlockedBy(code survival.ResultCode) []string {
	switch code {
	case survival.ResultInsufficientEnergy:
		return []string{survival.RequirementEnergy}
	case survival.ResultMissingIngredients:
		return []string{survival.RequirementRecipeInputs}
	case survival.ResultNotUsable:
		return []string{survival.RequirementHasItem, survival.RequirementConsumable}
	case CodeRecipeLocked:
		return []string{survival.RequirementRecipeUnlocked}
	case CodeResourceNotInBiome:
		return []string{survival.RequirementInBiome}
	case CodeGameOver:
		return []string{RequirementAlive}
	default:
		return []string{}
	}
}

func (u UseCase) recordError(err error) {
	if u.Metrics == nil {
		return
	}
	if code, ok := RejectionCode(err); ok {
		u.Metrics.RecordRejected(code)
		return
	}
	if errors.Is(err, ports.ErrConflict) {
		u.Metrics.RecordConflict()
		return
	}
	u.Metrics.RecordFailure()
}

// archive hands committed events to the audit sink. Failures are logged and
// never surface to the caller.
func (u UseCase) archive(ctx context.Context, sessionID string, events []survival.DomainEvent) {
	if u.Archive == nil || len(events) == 0 {
		return
	}
	if err := u.Archive.Write(ctx, sessionID, events); err != nil {
		hlog.CtxWarnf(ctx, "archive events for session %s: %v", sessionID, err)
	}
}
