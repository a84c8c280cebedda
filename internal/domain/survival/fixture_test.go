package survival

import (
	"testing"
	"time"

	"wildcraft/internal/domain/world"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testContent() Content {
	return Content{
		Resources: []Resource{
			{ID: "wood", Name: "Wood", Biome: world.BiomeForest, Rarity: RarityCommon, EnergyCost: 5},
			{ID: "stone", Name: "Stone", Biome: world.BiomeMountains, Rarity: RarityCommon, EnergyCost: 8},
			{ID: "fiber", Name: "Fiber", Biome: world.BiomeAll, Rarity: RarityCommon, EnergyCost: 3},
			{ID: "flint", Name: "Flint", Biome: world.BiomeDesert, Rarity: RarityUncommon, EnergyCost: 6},
			{ID: "meat", Name: "Raw Meat", Biome: world.BiomeForest, Rarity: RarityUncommon, EnergyCost: 15},
			{ID: "water", Name: "Water", Biome: world.BiomeAll, Rarity: RarityCommon, EnergyCost: 2},
			{ID: "berries", Name: "Berries", Biome: world.BiomeForest, Rarity: RarityCommon, EnergyCost: 2},
			{ID: "metal", Name: "Metal Ore", Biome: world.BiomeMountains, Rarity: RarityRare, EnergyCost: 20},
		},
		Items: []Item{
			{ID: "axe", Name: "Stone Axe", Category: CategoryTool, Durability: 50},
			{ID: "pickaxe", Name: "Stone Pickaxe", Category: CategoryTool, Durability: 40},
			{ID: "fire", Name: "Campfire", Category: CategoryTool},
			{ID: "cooked_meat", Name: "Cooked Meat", Category: CategoryFood, Effects: Effects{StatHunger: 40, StatEnergy: 10}},
			{ID: "water_container", Name: "Water Container", Category: CategoryTool},
			{ID: "berry_juice", Name: "Berry Juice", Category: CategoryFood, Effects: Effects{StatThirst: 30, StatHunger: 5}},
			{ID: "metal_axe", Name: "Metal Axe", Category: CategoryTool, Durability: 100},
		},
		Recipes: []Recipe{
			{ID: "stone_axe", Name: "Stone Axe", Result: "axe", Ingredients: []Ingredient{{ID: "wood", Quantity: 2}, {ID: "stone", Quantity: 3}, {ID: "fiber", Quantity: 1}}},
			{ID: "stone_pickaxe", Name: "Stone Pickaxe", Result: "pickaxe", Ingredients: []Ingredient{{ID: "wood", Quantity: 2}, {ID: "stone", Quantity: 4}, {ID: "fiber", Quantity: 1}}},
			{ID: "campfire", Name: "Campfire", Result: "fire", Ingredients: []Ingredient{{ID: "wood", Quantity: 3}, {ID: "stone", Quantity: 5}, {ID: "flint", Quantity: 1}}},
			{ID: "cooked_meat_recipe", Name: "Cooked Meat", Result: "cooked_meat", Locked: true, UnlockedBy: "fire", Ingredients: []Ingredient{{ID: "meat", Quantity: 1}, {ID: "fire", Quantity: 1}}},
			{ID: "water_container_recipe", Name: "Water Container", Result: "water_container", Ingredients: []Ingredient{{ID: "fiber", Quantity: 3}, {ID: "wood", Quantity: 1}}},
			{ID: "berry_juice_recipe", Name: "Berry Juice", Result: "berry_juice", Locked: true, UnlockedBy: "water_container", Ingredients: []Ingredient{{ID: "berries", Quantity: 3}, {ID: "water", Quantity: 1}, {ID: "water_container", Quantity: 1}}},
			{ID: "metal_axe_recipe", Name: "Metal Axe", Result: "metal_axe", Locked: true, UnlockedBy: "pickaxe", Ingredients: []Ingredient{{ID: "metal", Quantity: 3}, {ID: "wood", Quantity: 2}, {ID: "fiber", Quantity: 1}}},
		},
		Digest: "test",
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(testContent())
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	return c
}

func testEngine(t *testing.T) Engine {
	t.Helper()
	return Engine{Catalog: testCatalog(t), Now: func() time.Time { return fixedNow }}
}

func withResource(t *testing.T, c *Catalog, inv Inventory, id string, n int) Inventory {
	t.Helper()
	r, ok := c.Resource(id)
	if !ok {
		t.Fatalf("unknown resource %q", id)
	}
	return inv.Add(ResourceStack{Resource: r}, n)
}

func withItem(t *testing.T, c *Catalog, inv Inventory, id string, n int) Inventory {
	t.Helper()
	it, ok := c.Item(id)
	if !ok {
		t.Fatalf("unknown item %q", id)
	}
	return inv.Add(ItemStack{Item: it}, n)
}
