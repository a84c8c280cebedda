package survival

// ActionCostProfile describes the fixed cost of an action as exposed to
// clients. Collect's energy cost varies per resource and is reported as
// zero here with the RESOURCE_ENERGY requirement.
type ActionCostProfile struct {
	Minutes      int      `json:"minutes"`
	EnergyCost   float64  `json:"energy_cost"`
	Decays       bool     `json:"decays"`
	Requirements []string `json:"requirements"`
}

// Requirements named in cost profiles and in rejection envelopes.
const (
	RequirementEnergy         = "RESOURCE_ENERGY"
	RequirementInBiome        = "RESOURCE_IN_BIOME"
	RequirementRecipeUnlocked = "RECIPE_UNLOCKED"
	RequirementRecipeInputs   = "RECIPE_INPUTS"
	RequirementHasItem        = "HAS_ITEM"
	RequirementConsumable     = "CONSUMABLE"
	RequirementKnownBiome     = "KNOWN_BIOME"
)

func DefaultActionCostProfiles() map[ActionType]ActionCostProfile {
	return map[ActionType]ActionCostProfile{
		ActionCollect: {
			Minutes:      CollectMinutes,
			Decays:       true,
			Requirements: []string{RequirementEnergy, RequirementInBiome},
		},
		ActionCraft: {
			Minutes:      CraftMinutes,
			EnergyCost:   CraftEnergyCost,
			Decays:       true,
			Requirements: []string{RequirementRecipeUnlocked, RequirementRecipeInputs},
		},
		ActionUse: {
			Minutes:      UseMinutes,
			Requirements: []string{RequirementHasItem, RequirementConsumable},
		},
		ActionDrop: {
			Requirements: []string{},
		},
		ActionChangeStat: {
			Requirements: []string{},
		},
		ActionChangeBiome: {
			Minutes:      TravelMinutes,
			EnergyCost:   TravelEnergyCost,
			Decays:       true,
			Requirements: []string{RequirementKnownBiome},
		},
		ActionTick: {
			Minutes:      TickMinutes,
			Decays:       true,
			Requirements: []string{},
		},
	}
}
