package survival

import (
	"math"
	"time"

	"wildcraft/internal/domain/world"
)

// Engine applies player actions and passive ticks to a GameState. Every
// method returns a new state; the input is never modified. A rejected
// action returns the input state unchanged together with a sentinel error.
type Engine struct {
	Catalog *Catalog
	Now     func() time.Time
}

func (e Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// CollectResource gathers one unit of a resource. Costs the resource's
// energy, then 5 minutes and one decay tick.
func (e Engine) CollectResource(state GameState, resourceID string) (TransitionResult, error) {
	res, ok := e.Catalog.Resource(resourceID)
	if !ok {
		return unchanged(state), &UnknownIDError{Kind: IDKindResource, ID: resourceID}
	}
	if state.Stats.Energy < res.EnergyCost {
		return rejected(state, ErrInsufficientEnergy)
	}

	next := state
	next.Inventory = gather(state.Inventory, res, 1)
	next.Stats = next.Stats.with(StatEnergy, next.Stats.Energy-res.EnergyCost)
	next.Clock = next.Clock.Advance(CollectMinutes)
	next.Stats = decay(next.Stats)

	return e.settle(state, next, ActionIntent{Type: ActionCollect, ResourceID: res.ID}, nil, true), nil
}

// CraftItem consumes every ingredient before adding the result, so a recipe
// whose result is also one of its ingredients nets out correctly. Unlocks
// run once against the result id.
func (e Engine) CraftItem(state GameState, recipeID string) (TransitionResult, error) {
	recipe, ok := e.Catalog.Recipe(recipeID)
	if !ok {
		return unchanged(state), &UnknownIDError{Kind: IDKindRecipe, ID: recipeID}
	}
	if !hasEnough(state.Inventory, recipe.Ingredients) {
		return rejected(state, ErrMissingIngredients)
	}
	result, ok := e.Catalog.Item(recipe.Result)
	if !ok {
		return unchanged(state), &UnknownIDError{Kind: IDKindItem, ID: recipe.Result}
	}

	next := state
	next.Inventory = consume(state.Inventory, recipe.Ingredients)
	next.Inventory = produce(next.Inventory, result, 1)

	unlocked, added := unlockFor(e.Catalog, state, recipe.Result)
	next.UnlockedRecipes = unlocked

	next.Stats = next.Stats.with(StatEnergy, next.Stats.Energy-CraftEnergyCost)
	next.Clock = next.Clock.Advance(CraftMinutes)
	next.Stats = decay(next.Stats)

	now := e.now()
	extra := make([]DomainEvent, 0, len(added))
	for _, id := range added {
		extra = append(extra, DomainEvent{
			Type:       EventRecipeUnlocked,
			OccurredAt: now,
			Payload: map[string]any{
				"recipe_id":   id,
				"unlocked_by": recipe.Result,
			},
		})
	}
	return e.settle(state, next, ActionIntent{Type: ActionCraft, RecipeID: recipe.ID}, extra, true), nil
}

// UseItem consumes one consumable item and applies its effects. Resources,
// missing entries and non-consumables are rejected with ErrNotUsable.
func (e Engine) UseItem(state GameState, itemID string) (TransitionResult, error) {
	stack, ok := state.Inventory.Find(itemID)
	if !ok || stack.Count() < 1 {
		return rejected(state, ErrNotUsable)
	}
	held, ok := stack.(ItemStack)
	if !ok {
		return rejected(state, ErrNotUsable)
	}
	item := held.Item
	if def, ok := e.Catalog.Item(itemID); ok {
		item = def
	}
	if !item.Consumable() {
		return rejected(state, ErrNotUsable)
	}

	next := state
	next.Stats = applyEffects(state.Stats, item.Effects)
	next.Inventory = state.Inventory.Remove(itemID, 1)
	next.Clock = next.Clock.Advance(UseMinutes)

	return e.settle(state, next, ActionIntent{Type: ActionUse, ItemID: itemID}, nil, true), nil
}

// DropItem discards amount units (default 1). Dropping something not held
// is a successful no-op.
func (e Engine) DropItem(state GameState, id string, amount int) (TransitionResult, error) {
	if amount <= 0 {
		amount = DefaultDropAmount
	}
	if _, ok := state.Inventory.Find(id); !ok {
		return TransitionResult{UpdatedState: state, ResultCode: ResultOK}, nil
	}

	next := state
	next.Inventory = state.Inventory.Remove(id, amount)

	return e.settle(state, next, ActionIntent{Type: ActionDrop, ItemID: id, Amount: amount}, nil, false), nil
}

func (e Engine) ChangePlayerStat(state GameState, stat Stat, delta float64) (TransitionResult, error) {
	next := state
	stats, err := changeStat(state.Stats, stat, delta)
	if err != nil {
		return unchanged(state), err
	}
	next.Stats = stats

	return e.settle(state, next, ActionIntent{Type: ActionChangeStat, Stat: stat, Delta: delta}, nil, true), nil
}

// ChangeBiome travels to biome: 30 minutes, then 20 energy, then one decay
// tick, always in that order.
func (e Engine) ChangeBiome(state GameState, biome world.Biome) (TransitionResult, error) {
	if !biome.IsTravelable() {
		return unchanged(state), ErrUnknownBiome
	}

	next := state
	next.Biome = biome
	next.Clock = next.Clock.Advance(TravelMinutes)
	stats, err := changeStat(next.Stats, StatEnergy, -TravelEnergyCost)
	if err != nil {
		return unchanged(state), err
	}
	next.Stats = decay(stats)

	return e.settle(state, next, ActionIntent{Type: ActionChangeBiome, Biome: string(biome)}, nil, true), nil
}

// AdvanceTime moves the clock only; stats and inventory are untouched.
func (e Engine) AdvanceTime(state GameState, minutes int) (TransitionResult, error) {
	if minutes < 0 {
		return unchanged(state), ErrInvalidDelta
	}
	next := state
	next.Clock = state.Clock.Advance(minutes)

	return e.settle(state, next, ActionIntent{Type: ActionTick, Amount: minutes}, nil, false), nil
}

func (e Engine) DecayStats(state GameState) (TransitionResult, error) {
	next := state
	next.Stats = decay(state.Stats)

	return e.settle(state, next, ActionIntent{Type: ActionTick}, nil, true), nil
}

// Tick is the periodic passive step: AdvanceTime(minutes) then DecayStats.
func (e Engine) Tick(state GameState, minutes int) (TransitionResult, error) {
	if minutes < 0 {
		return unchanged(state), ErrInvalidDelta
	}
	next := state
	next.Clock = state.Clock.Advance(minutes)
	next.Stats = decay(next.Stats)

	return e.settle(state, next, ActionIntent{Type: ActionTick, Amount: minutes}, nil, true), nil
}

// Apply dispatches an intent to the matching transition.
func (e Engine) Apply(state GameState, intent ActionIntent) (TransitionResult, error) {
	switch intent.Type {
	case ActionCollect:
		return e.CollectResource(state, intent.ResourceID)
	case ActionCraft:
		return e.CraftItem(state, intent.RecipeID)
	case ActionUse:
		return e.UseItem(state, intent.ItemID)
	case ActionDrop:
		return e.DropItem(state, intent.ItemID, intent.Amount)
	case ActionChangeStat:
		return e.ChangePlayerStat(state, intent.Stat, intent.Delta)
	case ActionChangeBiome:
		return e.ChangeBiome(state, world.Biome(intent.Biome))
	case ActionTick:
		return e.Tick(state, intent.Amount)
	default:
		return unchanged(state), ErrUnsupportedAction
	}
}

func decay(stats Stats) Stats {
	stats = stats.with(StatHunger, stats.Hunger-DecayHunger)
	stats = stats.with(StatThirst, stats.Thirst-DecayThirst)
	stats = stats.with(StatEnergy, stats.Energy-DecayEnergy)
	if stats.Hunger == StatMin || stats.Thirst == StatMin {
		stats = stats.with(StatHealth, stats.Health-StarvationHealthLoss)
	}
	return stats
}

func changeStat(stats Stats, stat Stat, delta float64) (Stats, error) {
	current, ok := stats.Get(stat)
	if !ok {
		return stats, ErrUnknownStat
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return stats, ErrInvalidDelta
	}
	return stats.with(stat, current+delta), nil
}

func unchanged(state GameState) TransitionResult {
	return TransitionResult{UpdatedState: state}
}

func rejected(state GameState, err error) (TransitionResult, error) {
	code, _ := ResultCodeFor(err)
	return TransitionResult{UpdatedState: state, ResultCode: code}, err
}

func (e Engine) settle(before, next GameState, intent ActionIntent, extra []DomainEvent, checkDeath bool) TransitionResult {
	now := e.now()
	next.Version = before.Version + 1

	events := make([]DomainEvent, 0, 2+len(extra))
	events = append(events, DomainEvent{
		Type:       EventActionSettled,
		OccurredAt: now,
		Payload: map[string]any{
			"state_before": stateSummary(before),
			"decision": map[string]any{
				"intent": string(intent.Type),
				"params": intentDecisionParams(intent),
			},
			"state_after": stateSummary(next),
		},
	})
	events = append(events, extra...)

	code := ResultOK
	if checkDeath && next.Dead() {
		code = ResultPlayerDied
		events = append(events, DomainEvent{
			Type:       EventPlayerDied,
			OccurredAt: now,
			Payload: map[string]any{
				"day":    next.Clock.Day,
				"hour":   next.Clock.Hour,
				"minute": next.Clock.Minute,
				"cause":  string(deriveDeathCause(next)),
			},
		})
	}

	return TransitionResult{
		UpdatedState: next,
		Events:       events,
		ResultCode:   code,
	}
}

func stateSummary(s GameState) map[string]any {
	return map[string]any{
		"health":  s.Stats.Health,
		"hunger":  s.Stats.Hunger,
		"thirst":  s.Stats.Thirst,
		"energy":  s.Stats.Energy,
		"day":     s.Clock.Day,
		"hour":    s.Clock.Hour,
		"minute":  s.Clock.Minute,
		"biome":   string(s.Biome),
		"stacks":  len(s.Inventory),
		"version": s.Version,
	}
}

func intentDecisionParams(intent ActionIntent) map[string]any {
	out := map[string]any{}
	if intent.ResourceID != "" {
		out["resource_id"] = intent.ResourceID
	}
	if intent.RecipeID != "" {
		out["recipe_id"] = intent.RecipeID
	}
	if intent.ItemID != "" {
		out["item_id"] = intent.ItemID
	}
	if intent.Amount != 0 {
		out["amount"] = intent.Amount
	}
	if intent.Stat != "" {
		out["stat"] = string(intent.Stat)
		out["delta"] = intent.Delta
	}
	if intent.Biome != "" {
		out["biome"] = intent.Biome
	}
	return out
}

type DeathCause string

const (
	DeathCauseUnknown     DeathCause = "unknown"
	DeathCauseStarvation  DeathCause = "starvation"
	DeathCauseDehydration DeathCause = "dehydration"
)

func deriveDeathCause(state GameState) DeathCause {
	switch {
	case state.Stats.Thirst <= StatMin:
		return DeathCauseDehydration
	case state.Stats.Hunger <= StatMin:
		return DeathCauseStarvation
	default:
		return DeathCauseUnknown
	}
}
