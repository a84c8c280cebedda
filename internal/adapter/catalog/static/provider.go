package staticcatalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

//go:embed content.yaml
var defaultContent []byte

//go:embed content.schema.json
var contentSchema string

var ErrInvalidContent = errors.New("invalid content file")

// Provider loads the game catalog from Path, or from the embedded default
// content when Path is empty.
type Provider struct {
	Path string
}

func (p Provider) Load(_ context.Context) (*survival.Catalog, error) {
	raw := defaultContent
	if strings.TrimSpace(p.Path) != "" {
		b, err := os.ReadFile(p.Path)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return Parse(raw)
}

// Parse validates raw YAML against the content schema and builds a catalog.
// The digest is the sha256 of raw.
func Parse(raw []byte) (*survival.Catalog, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	var doc contentDoc
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: content.yaml: %v", ErrInvalidContent, err)
	}

	sum := sha256.Sum256(raw)
	return survival.NewCatalog(doc.toContent(hex.EncodeToString(sum[:])))
}

func DefaultContent() []byte {
	return append([]byte(nil), defaultContent...)
}

func validate(raw []byte) error {
	schema, err := jsonschema.CompileString("content.schema.json", contentSchema)
	if err != nil {
		return fmt.Errorf("compile content schema: %w", err)
	}

	// The validator expects JSON-decoded values, so round-trip the YAML tree.
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("%w: content.yaml: %v", ErrInvalidContent, err)
	}
	b, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return nil
}

type contentDoc struct {
	Resources []resourceDoc `yaml:"resources"`
	Items     []itemDoc     `yaml:"items"`
	Recipes   []recipeDoc   `yaml:"recipes"`
}

type resourceDoc struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Icon        string  `yaml:"icon"`
	Biome       string  `yaml:"biome"`
	Rarity      string  `yaml:"rarity"`
	EnergyCost  float64 `yaml:"energy_cost"`
}

type itemDoc struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Icon        string             `yaml:"icon"`
	Category    string             `yaml:"category"`
	Durability  int                `yaml:"durability"`
	Effects     map[string]float64 `yaml:"effects"`
}

type ingredientDoc struct {
	ID       string `yaml:"id"`
	Quantity int    `yaml:"quantity"`
}

type recipeDoc struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Result      string          `yaml:"result"`
	Locked      bool            `yaml:"locked"`
	UnlockedBy  string          `yaml:"unlocked_by"`
	Ingredients []ingredientDoc `yaml:"ingredients"`
}

func (d contentDoc) toContent(digest string) survival.Content {
	out := survival.Content{
		Resources: make([]survival.Resource, 0, len(d.Resources)),
		Items:     make([]survival.Item, 0, len(d.Items)),
		Recipes:   make([]survival.Recipe, 0, len(d.Recipes)),
		Digest:    digest,
	}
	for _, r := range d.Resources {
		out.Resources = append(out.Resources, survival.Resource{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Icon:        r.Icon,
			Biome:       world.Biome(r.Biome),
			Rarity:      survival.Rarity(r.Rarity),
			EnergyCost:  r.EnergyCost,
		})
	}
	for _, it := range d.Items {
		var effects survival.Effects
		if len(it.Effects) > 0 {
			effects = make(survival.Effects, len(it.Effects))
			for k, v := range it.Effects {
				effects[survival.Stat(k)] = v
			}
		}
		out.Items = append(out.Items, survival.Item{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Icon:        it.Icon,
			Category:    survival.Category(it.Category),
			Effects:     effects,
			Durability:  it.Durability,
		})
	}
	for _, r := range d.Recipes {
		ings := make([]survival.Ingredient, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			ings = append(ings, survival.Ingredient{ID: ing.ID, Quantity: ing.Quantity})
		}
		out.Recipes = append(out.Recipes, survival.Recipe{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Ingredients: ings,
			Result:      r.Result,
			Locked:      r.Locked,
			UnlockedBy:  r.UnlockedBy,
		})
	}
	return out
}
