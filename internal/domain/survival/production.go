package survival

// Craftable reports whether inv satisfies every ingredient of recipe.
func Craftable(recipe Recipe, state GameState) bool {
	return hasEnough(state.Inventory, recipe.Ingredients)
}

func hasEnough(inv Inventory, required []Ingredient) bool {
	for _, ing := range required {
		if inv.Quantity(ing.ID) < ing.Quantity {
			return false
		}
	}
	return true
}

// consume subtracts all ingredients. Callers check hasEnough first so every
// Consume succeeds.
func consume(inv Inventory, required []Ingredient) Inventory {
	for _, ing := range required {
		next, ok := inv.Consume(ing.ID, ing.Quantity)
		if !ok {
			continue
		}
		inv = next
	}
	return inv
}

func produce(inv Inventory, item Item, amount int) Inventory {
	return inv.Add(ItemStack{Item: item}, amount)
}

func gather(inv Inventory, resource Resource, amount int) Inventory {
	return inv.Add(ResourceStack{Resource: resource}, amount)
}

// applyEffects raises each declared stat by its effect, capped at StatMax.
func applyEffects(stats Stats, effects Effects) Stats {
	for _, stat := range StatOrder {
		delta, ok := effects[stat]
		if !ok {
			continue
		}
		current, _ := stats.Get(stat)
		stats = stats.with(stat, current+delta)
	}
	return stats
}

// unlockFor adds the recipes unlocked by crafting resultID. One pass only:
// recipes unlocked here do not cascade further.
func unlockFor(catalog *Catalog, state GameState, resultID string) ([]string, []string) {
	return state.withUnlocked(catalog.UnlockedBy(resultID)...)
}
