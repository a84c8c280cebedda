package action

import (
	"context"

	"wildcraft/internal/domain/survival"
	"wildcraft/internal/domain/world"
)

type collectActionHandler struct{}

// Precheck rejects unknown ids and resources that do not grow in the
// current biome. The engine itself does not know about biomes.
func (collectActionHandler) Precheck(_ context.Context, uc UseCase, ac *ActionContext) error {
	id := ac.Tmp.ResolvedIntent.ResourceID
	res, ok := uc.Engine.Catalog.Resource(id)
	if !ok {
		return unknownTarget(uc.Engine.Catalog, survival.IDKindResource, id)
	}
	if !res.Biome.Matches(ac.View.StateBefore.Biome) {
		return &ResourceNotInBiomeError{ResourceID: id, Biome: ac.View.StateBefore.Biome, Available: res.Biome}
	}
	return nil
}

func (collectActionHandler) Execute(_ context.Context, uc UseCase, ac *ActionContext) (survival.TransitionResult, error) {
	return uc.Engine.CollectResource(ac.View.StateBefore, ac.Tmp.ResolvedIntent.ResourceID)
}

type craftActionHandler struct{}

func (craftActionHandler) Precheck(_ context.Context, uc UseCase, ac *ActionContext) error {
	id := ac.Tmp.ResolvedIntent.RecipeID
	recipe, ok := uc.Engine.Catalog.Recipe(id)
	if !ok {
		return unknownTarget(uc.Engine.Catalog, survival.IDKindRecipe, id)
	}
	if !ac.View.StateBefore.HasRecipe(recipe.ID) {
		return &RecipeLockedError{RecipeID: recipe.ID, UnlockedBy: recipe.UnlockedBy}
	}
	return nil
}

func (craftActionHandler) Execute(_ context.Context, uc UseCase, ac *ActionContext) (survival.TransitionResult, error) {
	return uc.Engine.CraftItem(ac.View.StateBefore, ac.Tmp.ResolvedIntent.RecipeID)
}

type useActionHandler struct{}

func (useActionHandler) Precheck(_ context.Context, uc UseCase, ac *ActionContext) error {
	return requireKnownStack(uc.Engine.Catalog, ac.Tmp.ResolvedIntent.ItemID)
}

func (useActionHandler) Execute(_ context.Context, uc UseCase, ac *ActionContext) (survival.TransitionResult, error) {
	return uc.Engine.UseItem(ac.View.StateBefore, ac.Tmp.ResolvedIntent.ItemID)
}

type dropActionHandler struct{}

func (dropActionHandler) Precheck(_ context.Context, uc UseCase, ac *ActionContext) error {
	return requireKnownStack(uc.Engine.Catalog, ac.Tmp.ResolvedIntent.ItemID)
}

func (dropActionHandler) Execute(_ context.Context, uc UseCase, ac *ActionContext) (survival.TransitionResult, error) {
	intent := ac.Tmp.ResolvedIntent
	return uc.Engine.DropItem(ac.View.StateBefore, intent.ItemID, intent.Amount)
}

type changeStatActionHandler struct{ BaseHandler }

func (changeStatActionHandler) Execute(_ context.Context, uc UseCase, ac *ActionContext) (survival.TransitionResult, error) {
	intent := ac.Tmp.ResolvedIntent
	return uc.Engine.ChangePlayerStat(ac.View.StateBefore, intent.Stat, intent.Delta)
}

type changeBiomeActionHandler struct{ BaseHandler }

func (changeBiomeActionHandler) Execute(_ context.Context, uc UseCase, ac *ActionContext) (survival.TransitionResult, error) {
	biome, _ := world.ParseBiome(ac.Tmp.ResolvedIntent.Biome)
	return uc.Engine.ChangeBiome(ac.View.StateBefore, biome)
}

// requireKnownStack accepts any id the catalog knows as an item or a
// resource. Whether the stack is held is the engine's concern.
func requireKnownStack(catalog *survival.Catalog, id string) error {
	if _, ok := catalog.Item(id); ok {
		return nil
	}
	if _, ok := catalog.Resource(id); ok {
		return nil
	}
	return unknownTarget(catalog, survival.IDKindItem, id)
}

func unknownTarget(catalog *survival.Catalog, kind survival.IDKind, id string) error {
	candidates := catalog.IDs(kind)
	if kind == survival.IDKindItem {
		candidates = append(candidates, catalog.IDs(survival.IDKindResource)...)
	}
	return &UnknownTargetError{Kind: kind, ID: id, Suggestion: suggestID(id, candidates)}
}
