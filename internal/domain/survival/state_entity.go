package survival

import "wildcraft/internal/domain/world"

// NewSession builds the initial state for a fresh run. It is also the reset
// target after the player dies.
func NewSession(catalog *Catalog) GameState {
	unlocked := []string{}
	if catalog != nil {
		unlocked = catalog.InitialUnlocked()
	}
	return GameState{
		Stats: Stats{
			Health: InitialHealth,
			Hunger: InitialHunger,
			Thirst: InitialThirst,
			Energy: InitialEnergy,
		},
		Clock:           world.NewClock(),
		Inventory:       Inventory{},
		UnlockedRecipes: unlocked,
		Biome:           world.DefaultBiome,
		Version:         1,
	}
}

func (s GameState) Dead() bool {
	return s.Stats.Health <= StatMin
}

func (s GameState) HasRecipe(recipeID string) bool {
	for _, id := range s.UnlockedRecipes {
		if id == recipeID {
			return true
		}
	}
	return false
}

// withUnlocked returns a copy of the unlocked set with ids appended once.
func (s GameState) withUnlocked(ids ...string) ([]string, []string) {
	out := append([]string(nil), s.UnlockedRecipes...)
	added := make([]string, 0, len(ids))
	for _, id := range ids {
		if containsString(out, id) {
			continue
		}
		out = append(out, id)
		added = append(added, id)
	}
	return out, added
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func clampStat(v float64) float64 {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}
