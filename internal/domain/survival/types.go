package survival

import (
	"time"

	"wildcraft/internal/domain/world"
)

type Stat string

const (
	StatHealth Stat = "health"
	StatHunger Stat = "hunger"
	StatThirst Stat = "thirst"
	StatEnergy Stat = "energy"
)

// StatOrder is the display and effect-application order.
var StatOrder = []Stat{StatHealth, StatHunger, StatThirst, StatEnergy}

func ParseStat(raw string) (Stat, bool) {
	for _, s := range StatOrder {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

type Stats struct {
	Health float64 `json:"health"`
	Hunger float64 `json:"hunger"`
	Thirst float64 `json:"thirst"`
	Energy float64 `json:"energy"`
}

func (s Stats) Get(stat Stat) (float64, bool) {
	switch stat {
	case StatHealth:
		return s.Health, true
	case StatHunger:
		return s.Hunger, true
	case StatThirst:
		return s.Thirst, true
	case StatEnergy:
		return s.Energy, true
	default:
		return 0, false
	}
}

// with returns a copy where stat is set to clamp(v).
func (s Stats) with(stat Stat, v float64) Stats {
	v = clampStat(v)
	switch stat {
	case StatHealth:
		s.Health = v
	case StatHunger:
		s.Hunger = v
	case StatThirst:
		s.Thirst = v
	case StatEnergy:
		s.Energy = v
	}
	return s
}

type GameState struct {
	Stats           Stats       `json:"stats"`
	Clock           world.Clock `json:"clock"`
	Inventory       Inventory   `json:"inventory"`
	UnlockedRecipes []string    `json:"unlocked_recipes"`
	Biome           world.Biome `json:"biome"`
	Version         int64       `json:"version"`
}

type ActionType string

const (
	ActionCollect     ActionType = "collect"
	ActionCraft       ActionType = "craft"
	ActionUse         ActionType = "use"
	ActionDrop        ActionType = "drop"
	ActionChangeStat  ActionType = "change_stat"
	ActionChangeBiome ActionType = "change_biome"
	ActionTick        ActionType = "tick"
	ActionRestart     ActionType = "restart"
)

type ActionIntent struct {
	Type       ActionType `json:"type"`
	ResourceID string     `json:"resource_id,omitempty"`
	RecipeID   string     `json:"recipe_id,omitempty"`
	ItemID     string     `json:"item_id,omitempty"`
	Amount     int        `json:"amount,omitempty"`
	Stat       Stat       `json:"stat,omitempty"`
	Delta      float64    `json:"delta,omitempty"`
	Biome      string     `json:"biome,omitempty"`
}

type ResultCode string

const (
	ResultOK                 ResultCode = "OK"
	ResultInsufficientEnergy ResultCode = "INSUFFICIENT_ENERGY"
	ResultMissingIngredients ResultCode = "MISSING_INGREDIENTS"
	ResultNotUsable          ResultCode = "NOT_USABLE"
	ResultPlayerDied         ResultCode = "PLAYER_DIED"
)

type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

const (
	EventActionSettled  = "action_settled"
	EventRecipeUnlocked = "recipe_unlocked"
	EventPlayerDied     = "player_died"
	EventSessionStarted = "session_started"
)

type TransitionResult struct {
	UpdatedState GameState     `json:"updated_state"`
	Events       []DomainEvent `json:"events"`
	ResultCode   ResultCode    `json:"result_code"`
}

func (r TransitionResult) PlayerDied() bool {
	return r.ResultCode == ResultPlayerDied
}
