package gormrepo

import (
	"encoding/json"
	"fmt"
	"math"

	"wildcraft/internal/adapter/repo/gorm/model"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

// stateDoc is the stored JSON form of a game state. Inventory stacks are
// flattened to records and rebuilt against the catalog on load.
type stateDoc struct {
	Stats           survival.Stats         `json:"stats"`
	Clock           world.Clock            `json:"clock"`
	Inventory       []survival.StackRecord `json:"inventory"`
	UnlockedRecipes []string               `json:"unlocked_recipes"`
	Biome           world.Biome            `json:"biome"`
	Version         int64                  `json:"version"`
}

func encodeStateDoc(state survival.GameState) ([]byte, error) {
	return json.Marshal(stateDoc{
		Stats:           state.Stats,
		Clock:           state.Clock,
		Inventory:       state.Inventory.Records(),
		UnlockedRecipes: state.UnlockedRecipes,
		Biome:           state.Biome,
		Version:         state.Version,
	})
}

func decodeStateDoc(catalog *survival.Catalog, raw []byte) (survival.GameState, error) {
	var doc stateDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return survival.GameState{}, fmt.Errorf("decode state: %w", err)
	}
	inv, err := catalog.RestoreInventory(doc.Inventory)
	if err != nil {
		return survival.GameState{}, err
	}
	unlocked := doc.UnlockedRecipes
	if unlocked == nil {
		unlocked = []string{}
	}
	return survival.GameState{
		Stats:           doc.Stats,
		Clock:           doc.Clock,
		Inventory:       inv,
		UnlockedRecipes: unlocked,
		Biome:           doc.Biome,
		Version:         doc.Version,
	}, nil
}

func toModel(sessionID string, state survival.GameState) (model.GameState, error) {
	if state.Clock.Day > math.MaxInt32 {
		return model.GameState{}, fmt.Errorf("day %d exceeds storable range", state.Clock.Day)
	}
	inv, err := json.Marshal(state.Inventory.Records())
	if err != nil {
		return model.GameState{}, err
	}
	unlocked := state.UnlockedRecipes
	if unlocked == nil {
		unlocked = []string{}
	}
	rec, err := json.Marshal(unlocked)
	if err != nil {
		return model.GameState{}, err
	}
	return model.GameState{
		SessionID:       sessionID,
		Health:          state.Stats.Health,
		Hunger:          state.Stats.Hunger,
		Thirst:          state.Stats.Thirst,
		Energy:          state.Stats.Energy,
		Day:             int32(state.Clock.Day),
		Hour:            int32(state.Clock.Hour),
		Minute:          int32(state.Clock.Minute),
		Biome:           string(state.Biome),
		Inventory:       inv,
		UnlockedRecipes: rec,
		Version:         state.Version,
	}, nil
}

func fromModel(catalog *survival.Catalog, m model.GameState) (survival.GameState, error) {
	var records []survival.StackRecord
	if len(m.Inventory) > 0 {
		if err := json.Unmarshal(m.Inventory, &records); err != nil {
			return survival.GameState{}, fmt.Errorf("decode inventory: %w", err)
		}
	}
	inv, err := catalog.RestoreInventory(records)
	if err != nil {
		return survival.GameState{}, err
	}
	unlocked := []string{}
	if len(m.UnlockedRecipes) > 0 {
		if err := json.Unmarshal(m.UnlockedRecipes, &unlocked); err != nil {
			return survival.GameState{}, fmt.Errorf("decode unlocked recipes: %w", err)
		}
	}
	hour := int(m.Hour)
	return survival.GameState{
		Stats: survival.Stats{
			Health: m.Health,
			Hunger: m.Hunger,
			Thirst: m.Thirst,
			Energy: m.Energy,
		},
		Clock: world.Clock{
			Day:       int(m.Day),
			Hour:      hour,
			Minute:    int(m.Minute),
			IsDayTime: world.IsDayHour(hour),
		},
		Inventory:       inv,
		UnlockedRecipes: unlocked,
		Biome:           world.Biome(m.Biome),
		Version:         m.Version,
	}, nil
}
