package gormrepo

import (
	"context"
	"errors"
	"time"

	"wildcraft/internal/adapter/repo/gorm/model"
	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"

	"gorm.io/gorm"
)

type GameStateRepo struct {
	db      *gorm.DB
	catalog *survival.Catalog
}

func NewGameStateRepo(db *gorm.DB, catalog *survival.Catalog) GameStateRepo {
	return GameStateRepo{db: db, catalog: catalog}
}

func (r GameStateRepo) GetBySessionID(ctx context.Context, sessionID string) (survival.GameState, error) {
	var m model.GameState
	if err := getDBFromCtx(ctx, r.db).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return survival.GameState{}, ports.ErrNotFound
		}
		return survival.GameState{}, err
	}
	return fromModel(r.catalog, m)
}

func (r GameStateRepo) SaveWithVersion(ctx context.Context, sessionID string, state survival.GameState, expectedVersion int64) error {
	m, err := toModel(sessionID, state)
	if err != nil {
		return err
	}
	m.UpdatedAt = time.Now()
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	res := db.Model(&model.GameState{}).
		Where("session_id = ? AND version = ?", sessionID, expectedVersion).
		Updates(updateColumns(m))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

// Reset overwrites a session unconditionally, inserting it when missing.
func (r GameStateRepo) Reset(ctx context.Context, sessionID string, state survival.GameState) error {
	m, err := toModel(sessionID, state)
	if err != nil {
		return err
	}
	m.UpdatedAt = time.Now()
	db := getDBFromCtx(ctx, r.db)
	res := db.Model(&model.GameState{}).Where("session_id = ?", sessionID).Updates(updateColumns(m))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return db.Create(&m).Error
}

// SessionIDs lists every stored session for the tick runner.
func (r GameStateRepo) SessionIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := getDBFromCtx(ctx, r.db).Model(&model.GameState{}).Order("session_id").Pluck("session_id", &ids).Error
	return ids, err
}

func updateColumns(m model.GameState) map[string]any {
	return map[string]any{
		"health":           m.Health,
		"hunger":           m.Hunger,
		"thirst":           m.Thirst,
		"energy":           m.Energy,
		"day":              m.Day,
		"hour":             m.Hour,
		"minute":           m.Minute,
		"biome":            m.Biome,
		"inventory":        m.Inventory,
		"unlocked_recipes": m.UnlockedRecipes,
		"version":          m.Version,
		"updated_at":       m.UpdatedAt,
	}
}
