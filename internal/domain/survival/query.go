package survival

import "wildcraft/internal/domain/world"

// InventoryTab selects a subset of the inventory for display.
type InventoryTab string

const (
	TabAll       InventoryTab = "all"
	TabResources InventoryTab = "resources"
	TabItems     InventoryTab = "items"
)

func ParseInventoryTab(raw string) (InventoryTab, bool) {
	switch InventoryTab(raw) {
	case "", TabAll:
		return TabAll, true
	case TabResources, TabItems:
		return InventoryTab(raw), true
	default:
		return "", false
	}
}

// CraftableRecipes lists unlocked recipes whose ingredients are all held.
func CraftableRecipes(catalog *Catalog, state GameState) []Recipe {
	out := make([]Recipe, 0)
	for _, r := range catalog.recipes {
		if !state.HasRecipe(r.ID) {
			continue
		}
		if Craftable(r, state) {
			out = append(out, r)
		}
	}
	return out
}

// AvailableResources returns resources native to biome plus those marked
// "all", in catalog order.
func AvailableResources(catalog *Catalog, biome world.Biome) []Resource {
	out := make([]Resource, 0, len(catalog.resources))
	for _, r := range catalog.resources {
		if r.Biome.Matches(biome) {
			out = append(out, r)
		}
	}
	return out
}

// CategoriesPresent returns "all" followed by the distinct categories of the
// unlocked recipes' results in first-seen order. A result the catalog does
// not know counts as misc.
func CategoriesPresent(catalog *Catalog, state GameState) []Category {
	out := []Category{CategoryAll}
	seen := map[Category]bool{CategoryAll: true}
	for _, r := range catalog.recipes {
		if !state.HasRecipe(r.ID) {
			continue
		}
		cat := CategoryMisc
		if it, ok := catalog.Item(r.Result); ok && it.Category != "" {
			cat = it.Category
		}
		if seen[cat] {
			continue
		}
		seen[cat] = true
		out = append(out, cat)
	}
	return out
}

// RecipesInCategory lists unlocked recipes whose result falls in category.
// CategoryAll matches every unlocked recipe.
func RecipesInCategory(catalog *Catalog, state GameState, category Category) []Recipe {
	out := make([]Recipe, 0)
	for _, r := range catalog.recipes {
		if !state.HasRecipe(r.ID) {
			continue
		}
		if category == CategoryAll || category == "" {
			out = append(out, r)
			continue
		}
		cat := CategoryMisc
		if it, ok := catalog.Item(r.Result); ok && it.Category != "" {
			cat = it.Category
		}
		if cat == category {
			out = append(out, r)
		}
	}
	return out
}

func FilterInventory(inv Inventory, tab InventoryTab) Inventory {
	out := make(Inventory, 0, len(inv))
	for _, s := range inv {
		switch tab {
		case TabResources:
			if s.Kind() != StackResource {
				continue
			}
		case TabItems:
			if s.Kind() != StackItem {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

type StatBar struct {
	Stat    Stat    `json:"stat"`
	Value   float64 `json:"value"`
	Percent int     `json:"percent"`
}

// StatBars renders stats in StatOrder as rounded whole percentages.
func StatBars(stats Stats) []StatBar {
	out := make([]StatBar, 0, len(StatOrder))
	for _, s := range StatOrder {
		v, _ := stats.Get(s)
		out = append(out, StatBar{Stat: s, Value: v, Percent: int(v*100/StatMax + 0.5)})
	}
	return out
}
