package action

import (
	"context"
	"errors"
	"strings"
	"time"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

func (u UseCase) ValidateRequest(req Request) (ActionContext, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	req.Intent = normalizeIntent(req.Intent)

	if req.SessionID == "" || !isSupportedActionType(req.Intent.Type) {
		return ActionContext{}, ErrInvalidRequest
	}
	if !hasValidActionParams(req.Intent) {
		return ActionContext{}, ErrInvalidActionParams
	}

	return ActionContext{
		In: ActionInput{
			Req:            req,
			SessionID:      req.SessionID,
			IdempotencyKey: req.IdempotencyKey,
		},
		Tmp: ActionTmp{ResolvedIntent: req.Intent},
	}, nil
}

func normalizeIntent(intent survival.ActionIntent) survival.ActionIntent {
	intent.Type = survival.ActionType(strings.ToLower(strings.TrimSpace(string(intent.Type))))
	intent.ResourceID = strings.TrimSpace(intent.ResourceID)
	intent.RecipeID = strings.TrimSpace(intent.RecipeID)
	intent.ItemID = strings.TrimSpace(intent.ItemID)
	intent.Stat = survival.Stat(strings.ToLower(strings.TrimSpace(string(intent.Stat))))
	intent.Biome = strings.ToLower(strings.TrimSpace(intent.Biome))
	return intent
}

// ReplayIdempotent returns the stored response when the key was already
// applied. Requests without a key are never deduplicated.
func (u UseCase) ReplayIdempotent(ctx context.Context, ac *ActionContext) (Response, bool, error) {
	if ac.In.IdempotencyKey == "" || u.ActionRepo == nil {
		return Response{}, false, nil
	}
	exec, err := u.ActionRepo.GetByIdempotencyKey(ctx, ac.In.SessionID, ac.In.IdempotencyKey)
	if err == nil && exec != nil {
		return Response{
			UpdatedState: exec.Result.UpdatedState,
			Events:       exec.Result.Events,
			ResultCode:   exec.Result.ResultCode,
			Replayed:     true,
		}, true, nil
	}
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return Response{}, false, err
	}
	return Response{}, false, nil
}

func (u UseCase) LoadState(ctx context.Context, ac *ActionContext) error {
	state, err := u.StateRepo.GetBySessionID(ctx, ac.In.SessionID)
	if err != nil {
		return err
	}
	if state.Dead() {
		return ErrGameOver
	}
	ac.View.StateBefore = state
	return nil
}

func (u UseCase) ResolveSpec(ac *ActionContext) error {
	spec, ok := actionRegistry()[ac.Tmp.ResolvedIntent.Type]
	if !ok {
		return ErrInvalidRequest
	}
	ac.View.Spec = spec
	return nil
}

func (u UseCase) RunPrechecks(ctx context.Context, ac *ActionContext) error {
	if ac.View.Spec.Handler != nil {
		return ac.View.Spec.Handler.Precheck(ctx, u, ac)
	}
	return nil
}

func (u UseCase) ExecuteAction(ctx context.Context, ac *ActionContext) error {
	if ac.View.Spec.Handler == nil {
		return ErrInvalidRequest
	}
	engine := u.Engine
	if engine.Now == nil {
		nowAt := ac.In.NowAt
		engine.Now = func() time.Time { return nowAt }
	}
	scoped := u
	scoped.Engine = engine
	result, err := ac.View.Spec.Handler.Execute(ctx, scoped, ac)
	if err != nil {
		return err
	}
	for i := range result.Events {
		if result.Events[i].Payload == nil {
			result.Events[i].Payload = map[string]any{}
		}
		result.Events[i].Payload["session_id"] = ac.In.SessionID
	}
	ac.Tmp.Result = result
	return nil
}

// Persist writes the new state, the events and the idempotency record. A
// transition that produced no version bump (a no-op drop) writes nothing.
func (u UseCase) Persist(ctx context.Context, ac *ActionContext) error {
	result := ac.Tmp.Result
	before := ac.View.StateBefore
	if result.UpdatedState.Version == before.Version {
		return nil
	}
	if err := u.StateRepo.SaveWithVersion(ctx, ac.In.SessionID, result.UpdatedState, before.Version); err != nil {
		return err
	}
	if ac.In.IdempotencyKey != "" && u.ActionRepo != nil {
		execution := ports.ActionExecutionRecord{
			SessionID:      ac.In.SessionID,
			IdempotencyKey: ac.In.IdempotencyKey,
			IntentType:     string(ac.Tmp.ResolvedIntent.Type),
			Result: ports.ActionResult{
				UpdatedState: result.UpdatedState,
				Events:       result.Events,
				ResultCode:   result.ResultCode,
			},
			AppliedAt: ac.In.NowAt,
		}
		if err := u.ActionRepo.SaveExecution(ctx, execution); err != nil {
			return err
		}
	}
	if u.EventRepo != nil {
		if err := u.EventRepo.Append(ctx, ac.In.SessionID, result.Events); err != nil {
			return err
		}
	}
	return nil
}

func (u UseCase) BuildResponse(ac *ActionContext) Response {
	events := ac.Tmp.Result.Events
	if events == nil {
		events = []survival.DomainEvent{}
	}
	code := ac.Tmp.Result.ResultCode
	if code == "" {
		code = survival.ResultOK
	}
	ac.Tmp.Response = Response{
		UpdatedState: ac.Tmp.Result.UpdatedState,
		Events:       events,
		ResultCode:   code,
	}
	return ac.Tmp.Response
}
