package status

import (
	"context"
	"errors"
	"strings"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/app/stateview"
	"wildcraft/internal/domain/survival"
)

var (
	ErrInvalidRequest  = errors.New("invalid status request")
	ErrUnknownCategory = errors.New("unknown recipe category")
)

type UseCase struct {
	StateRepo ports.GameStateRepository
	Catalog   *survival.Catalog
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	tab, ok := survival.ParseInventoryTab(strings.ToLower(strings.TrimSpace(req.InventoryTab)))
	if !ok {
		return Response{}, ErrInvalidRequest
	}
	state, err := u.StateRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return Response{}, err
	}

	categories := survival.CategoriesPresent(u.Catalog, state)
	category := survival.Category(strings.ToLower(strings.TrimSpace(req.Category)))
	if category == "" {
		category = survival.CategoryAll
	}
	if !containsCategory(categories, category) {
		return Response{}, ErrUnknownCategory
	}

	recipes := survival.RecipesInCategory(u.Catalog, state, category)
	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		cat := survival.CategoryMisc
		if it, ok := u.Catalog.Item(r.Result); ok {
			cat = it.Category
		}
		views = append(views, RecipeView{
			Recipe:    r,
			Category:  cat,
			Craftable: survival.Craftable(r, state),
		})
	}

	return Response{
		View:               stateview.Enrich(state),
		Inventory:          survival.FilterInventory(state.Inventory, tab),
		InventoryTab:       tab,
		Categories:         categories,
		Category:           category,
		Recipes:            views,
		AvailableResources: survival.AvailableResources(u.Catalog, state.Biome),
		ActionCosts:        survival.DefaultActionCostProfiles(),
		CatalogDigest:      u.Catalog.Digest(),
	}, nil
}

func containsCategory(list []survival.Category, c survival.Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}
