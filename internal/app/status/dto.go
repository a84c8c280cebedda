package status

import (
	"wildcraft/internal/app/stateview"
	"wildcraft/internal/domain/survival"
)

type Request struct {
	SessionID    string
	Category     string
	InventoryTab string
}

type RecipeView struct {
	survival.Recipe
	Category  survival.Category `json:"category"`
	Craftable bool              `json:"craftable"`
}

type Response struct {
	View               stateview.View                                     `json:"view"`
	Inventory          survival.Inventory                                 `json:"inventory"`
	InventoryTab       survival.InventoryTab                              `json:"inventory_tab"`
	Categories         []survival.Category                                `json:"categories"`
	Category           survival.Category                                  `json:"category"`
	Recipes            []RecipeView                                       `json:"recipes"`
	AvailableResources []survival.Resource                                `json:"available_resources"`
	ActionCosts        map[survival.ActionType]survival.ActionCostProfile `json:"action_costs"`
	CatalogDigest      string                                             `json:"catalog_digest"`
}
