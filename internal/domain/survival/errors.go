package survival

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrMissingIngredients = errors.New("missing ingredients")
	ErrNotUsable          = errors.New("item not usable")

	ErrInvalidDelta      = errors.New("invalid delta")
	ErrUnknownStat       = errors.New("unknown stat")
	ErrUnknownBiome      = errors.New("unknown biome")
	ErrUnknownID         = errors.New("unknown catalog id")
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrUnsupportedAction = errors.New("unsupported action")
)

type IDKind string

const (
	IDKindResource IDKind = "resource"
	IDKindItem     IDKind = "item"
	IDKindRecipe   IDKind = "recipe"
)

type UnknownIDError struct {
	Kind IDKind
	ID   string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

func (e *UnknownIDError) Unwrap() error {
	return ErrUnknownID
}

// ResultCodeFor maps gameplay rejections to their result code.
func ResultCodeFor(err error) (ResultCode, bool) {
	switch {
	case errors.Is(err, ErrInsufficientEnergy):
		return ResultInsufficientEnergy, true
	case errors.Is(err, ErrMissingIngredients):
		return ResultMissingIngredients, true
	case errors.Is(err, ErrNotUsable):
		return ResultNotUsable, true
	default:
		return "", false
	}
}

func catalogErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}
