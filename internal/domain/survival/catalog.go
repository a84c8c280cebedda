package survival

import (
	"fmt"

	"wildcraft/internal/domain/world"
)

type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

type Category string

const (
	CategoryAll      Category = "all"
	CategoryMisc     Category = "misc"
	CategoryTool     Category = "tool"
	CategoryWeapon   Category = "weapon"
	CategoryFood     Category = "food"
	CategoryMedicine Category = "medicine"
	CategoryShelter  Category = "shelter"
	CategoryClothing Category = "clothing"
)

var itemCategories = map[Category]bool{
	CategoryTool:     true,
	CategoryWeapon:   true,
	CategoryFood:     true,
	CategoryMedicine: true,
	CategoryShelter:  true,
	CategoryClothing: true,
}

type Resource struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	Biome       world.Biome `json:"biome"`
	Rarity      Rarity      `json:"rarity"`
	EnergyCost  float64     `json:"energy_cost"`
}

// Effects holds the declared stat restorations of an item. Absent keys are
// not applied.
type Effects map[Stat]float64

type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Category    Category `json:"category"`
	Effects     Effects  `json:"effects,omitempty"`
	Durability  int      `json:"durability,omitempty"`
}

func (i Item) Consumable() bool {
	return ConsumableCategories[i.Category]
}

type Ingredient struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type Recipe struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	Result      string       `json:"result"`
	Locked      bool         `json:"locked"`
	UnlockedBy  string       `json:"unlocked_by,omitempty"`
}

type Content struct {
	Resources []Resource
	Items     []Item
	Recipes   []Recipe
	Digest    string
}

// Catalog is the immutable content table shared by every session. All
// accessors return copies or values; nothing mutates a Catalog after
// NewCatalog returns.
type Catalog struct {
	resources []Resource
	items     []Item
	recipes   []Recipe
	digest    string

	resourceByID map[string]int
	itemByID     map[string]int
	recipeByID   map[string]int

	// unlocks indexes locked recipes by the item that unlocks them.
	unlocks map[string][]string
}

func NewCatalog(content Content) (*Catalog, error) {
	c := &Catalog{
		resources:    append([]Resource(nil), content.Resources...),
		items:        append([]Item(nil), content.Items...),
		recipes:      append([]Recipe(nil), content.Recipes...),
		digest:       content.Digest,
		resourceByID: make(map[string]int, len(content.Resources)),
		itemByID:     make(map[string]int, len(content.Items)),
		recipeByID:   make(map[string]int, len(content.Recipes)),
		unlocks:      map[string][]string{},
	}

	for i, r := range c.resources {
		if r.ID == "" {
			return nil, catalogErrorf("resource #%d: empty id", i)
		}
		if _, dup := c.resourceByID[r.ID]; dup {
			return nil, catalogErrorf("resource %q: duplicate id", r.ID)
		}
		if r.Biome != world.BiomeAll && !r.Biome.IsTravelable() {
			return nil, catalogErrorf("resource %q: unknown biome %q", r.ID, r.Biome)
		}
		if r.EnergyCost < 0 {
			return nil, catalogErrorf("resource %q: negative energy cost", r.ID)
		}
		c.resourceByID[r.ID] = i
	}

	for i, it := range c.items {
		if it.ID == "" {
			return nil, catalogErrorf("item #%d: empty id", i)
		}
		if _, dup := c.itemByID[it.ID]; dup {
			return nil, catalogErrorf("item %q: duplicate id", it.ID)
		}
		if _, clash := c.resourceByID[it.ID]; clash {
			return nil, catalogErrorf("item %q: id already used by a resource", it.ID)
		}
		if !itemCategories[it.Category] {
			return nil, catalogErrorf("item %q: unknown category %q", it.ID, it.Category)
		}
		for stat, v := range it.Effects {
			if _, ok := (Stats{}).Get(stat); !ok {
				return nil, catalogErrorf("item %q: unknown effect stat %q", it.ID, stat)
			}
			if v < 0 {
				return nil, catalogErrorf("item %q: negative %s effect", it.ID, stat)
			}
		}
		c.itemByID[it.ID] = i
	}

	for i, r := range c.recipes {
		if r.ID == "" {
			return nil, catalogErrorf("recipe #%d: empty id", i)
		}
		if _, dup := c.recipeByID[r.ID]; dup {
			return nil, catalogErrorf("recipe %q: duplicate id", r.ID)
		}
		if _, ok := c.itemByID[r.Result]; !ok {
			return nil, catalogErrorf("recipe %q: result %q is not an item", r.ID, r.Result)
		}
		if len(r.Ingredients) == 0 {
			return nil, catalogErrorf("recipe %q: no ingredients", r.ID)
		}
		seen := make(map[string]bool, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			if seen[ing.ID] {
				return nil, catalogErrorf("recipe %q: duplicate ingredient %q", r.ID, ing.ID)
			}
			seen[ing.ID] = true
			if !c.known(ing.ID) {
				return nil, catalogErrorf("recipe %q: unknown ingredient %q", r.ID, ing.ID)
			}
			if ing.Quantity <= 0 {
				return nil, catalogErrorf("recipe %q: ingredient %q needs a positive quantity", r.ID, ing.ID)
			}
		}
		if r.UnlockedBy != "" {
			if _, ok := c.itemByID[r.UnlockedBy]; !ok {
				return nil, catalogErrorf("recipe %q: unlocked_by %q is not an item", r.ID, r.UnlockedBy)
			}
			if r.Locked {
				c.unlocks[r.UnlockedBy] = append(c.unlocks[r.UnlockedBy], r.ID)
			}
		}
		c.recipeByID[r.ID] = i
	}

	return c, nil
}

func (c *Catalog) known(id string) bool {
	if _, ok := c.resourceByID[id]; ok {
		return true
	}
	_, ok := c.itemByID[id]
	return ok
}

func (c *Catalog) Digest() string {
	return c.digest
}

func (c *Catalog) Resources() []Resource {
	return append([]Resource(nil), c.resources...)
}

func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

func (c *Catalog) Recipes() []Recipe {
	return append([]Recipe(nil), c.recipes...)
}

func (c *Catalog) Resource(id string) (Resource, bool) {
	i, ok := c.resourceByID[id]
	if !ok {
		return Resource{}, false
	}
	return c.resources[i], true
}

func (c *Catalog) Item(id string) (Item, bool) {
	i, ok := c.itemByID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

func (c *Catalog) Recipe(id string) (Recipe, bool) {
	i, ok := c.recipeByID[id]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[i], true
}

// UnlockedBy lists the locked recipes that crafting itemID unlocks, in
// catalog order.
func (c *Catalog) UnlockedBy(itemID string) []string {
	return append([]string(nil), c.unlocks[itemID]...)
}

// InitialUnlocked lists every recipe that starts unlocked, in catalog order.
func (c *Catalog) InitialUnlocked() []string {
	out := make([]string, 0, len(c.recipes))
	for _, r := range c.recipes {
		if !r.Locked {
			out = append(out, r.ID)
		}
	}
	return out
}

func (c *Catalog) IDs(kind IDKind) []string {
	switch kind {
	case IDKindResource:
		out := make([]string, 0, len(c.resources))
		for _, r := range c.resources {
			out = append(out, r.ID)
		}
		return out
	case IDKindItem:
		out := make([]string, 0, len(c.items))
		for _, it := range c.items {
			out = append(out, it.ID)
		}
		return out
	case IDKindRecipe:
		out := make([]string, 0, len(c.recipes))
		for _, r := range c.recipes {
			out = append(out, r.ID)
		}
		return out
	default:
		return nil
	}
}

// RestoreInventory rebuilds typed stacks from stored records. Records whose
// id is no longer in the catalog fail with UnknownIDError.
func (c *Catalog) RestoreInventory(records []StackRecord) (Inventory, error) {
	inv := Inventory{}
	for _, rec := range records {
		if rec.Quantity <= 0 {
			continue
		}
		switch rec.Kind {
		case StackResource:
			r, ok := c.Resource(rec.ID)
			if !ok {
				return nil, &UnknownIDError{Kind: IDKindResource, ID: rec.ID}
			}
			inv = inv.Add(ResourceStack{Resource: r}, rec.Quantity)
		case StackItem:
			it, ok := c.Item(rec.ID)
			if !ok {
				return nil, &UnknownIDError{Kind: IDKindItem, ID: rec.ID}
			}
			inv = inv.Add(ItemStack{Item: it}, rec.Quantity)
		default:
			return nil, fmt.Errorf("restore inventory: unknown stack kind %q", rec.Kind)
		}
	}
	return inv, nil
}
