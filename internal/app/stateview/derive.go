package stateview

import (
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

const (
	EffectStarving   = "STARVING"
	EffectDehydrated = "DEHYDRATED"
	EffectExhausted  = "EXHAUSTED"
	EffectCritical   = "CRITICAL"
	EffectInDark     = "IN_DARK"
)

// View is the read model returned to clients. It never feeds back into a
// transition.
type View struct {
	State         survival.GameState `json:"state"`
	StatBars      []survival.StatBar `json:"stat_bars"`
	StatusEffects []string           `json:"status_effects"`
	TimeLabel     string             `json:"time_label"`
	Phase         world.Phase        `json:"phase"`
	InventoryUsed int                `json:"inventory_used"`
	Dead          bool               `json:"dead"`
}

func Enrich(state survival.GameState) View {
	return View{
		State:         state,
		StatBars:      survival.StatBars(state.Stats),
		StatusEffects: deriveStatusEffects(state),
		TimeLabel:     state.Clock.Label(),
		Phase:         state.Clock.Phase(),
		InventoryUsed: computeInventoryUsed(state),
		Dead:          state.Dead(),
	}
}

func computeInventoryUsed(state survival.GameState) int {
	total := 0
	for _, s := range state.Inventory {
		total += s.Count()
	}
	return total
}

func deriveStatusEffects(state survival.GameState) []string {
	effects := make([]string, 0, 5)
	if state.Stats.Hunger <= survival.StatMin {
		effects = append(effects, EffectStarving)
	}
	if state.Stats.Thirst <= survival.StatMin {
		effects = append(effects, EffectDehydrated)
	}
	if state.Stats.Energy <= survival.LowEnergyThreshold {
		effects = append(effects, EffectExhausted)
	}
	if state.Stats.Health <= survival.CriticalHealthThreshold {
		effects = append(effects, EffectCritical)
	}
	if state.Clock.Phase() == world.PhaseNight {
		effects = append(effects, EffectInDark)
	}
	return effects
}
