package action

import (
	"context"
	"math"
	"time"

	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

type ActionSpec struct {
	Type    survival.ActionType
	Handler ActionHandler
}

// ActionHandler runs the gates that sit in front of the engine, then the
// engine transition itself. Precheck must not modify state.
type ActionHandler interface {
	Precheck(ctx context.Context, uc UseCase, ac *ActionContext) error
	Execute(ctx context.Context, uc UseCase, ac *ActionContext) (survival.TransitionResult, error)
}

type BaseHandler struct{}

func (BaseHandler) Precheck(context.Context, UseCase, *ActionContext) error { return nil }

type ActionInput struct {
	Req            Request
	NowAt          time.Time
	SessionID      string
	IdempotencyKey string
}

type ActionView struct {
	Spec        ActionSpec
	StateBefore survival.GameState
}

type ActionTmp struct {
	ResolvedIntent survival.ActionIntent
	Result         survival.TransitionResult
	Response       Response
}

type ActionContext struct {
	In   ActionInput
	View ActionView
	Tmp  ActionTmp
}

func actionRegistry() map[survival.ActionType]ActionSpec {
	return map[survival.ActionType]ActionSpec{
		survival.ActionCollect:     {Type: survival.ActionCollect, Handler: collectActionHandler{}},
		survival.ActionCraft:       {Type: survival.ActionCraft, Handler: craftActionHandler{}},
		survival.ActionUse:         {Type: survival.ActionUse, Handler: useActionHandler{}},
		survival.ActionDrop:        {Type: survival.ActionDrop, Handler: dropActionHandler{}},
		survival.ActionChangeStat:  {Type: survival.ActionChangeStat, Handler: changeStatActionHandler{}},
		survival.ActionChangeBiome: {Type: survival.ActionChangeBiome, Handler: changeBiomeActionHandler{}},
	}
}

func supportedActionTypes() []survival.ActionType {
	return []survival.ActionType{
		survival.ActionCollect,
		survival.ActionCraft,
		survival.ActionUse,
		survival.ActionDrop,
		survival.ActionChangeStat,
		survival.ActionChangeBiome,
	}
}

func isSupportedActionType(t survival.ActionType) bool {
	for _, actionType := range supportedActionTypes() {
		if t == actionType {
			return true
		}
	}
	return false
}

func actionParamValidators() map[survival.ActionType]func(survival.ActionIntent) bool {
	return map[survival.ActionType]func(survival.ActionIntent) bool{
		survival.ActionCollect:     func(i survival.ActionIntent) bool { return i.ResourceID != "" },
		survival.ActionCraft:       func(i survival.ActionIntent) bool { return i.RecipeID != "" },
		survival.ActionUse:         func(i survival.ActionIntent) bool { return i.ItemID != "" },
		survival.ActionDrop:        func(i survival.ActionIntent) bool { return i.ItemID != "" && i.Amount >= 0 },
		survival.ActionChangeStat:  validateChangeStatParams,
		survival.ActionChangeBiome: validateChangeBiomeParams,
	}
}

func hasValidActionParams(intent survival.ActionIntent) bool {
	validate, ok := actionParamValidators()[intent.Type]
	if !ok {
		return false
	}
	return validate(intent)
}

func validateChangeStatParams(intent survival.ActionIntent) bool {
	if _, ok := survival.ParseStat(string(intent.Stat)); !ok {
		return false
	}
	return !math.IsNaN(intent.Delta) && !math.IsInf(intent.Delta, 0)
}

func validateChangeBiomeParams(intent survival.ActionIntent) bool {
	_, ok := world.ParseBiome(intent.Biome)
	return ok
}
