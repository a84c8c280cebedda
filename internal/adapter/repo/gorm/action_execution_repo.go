package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"wildcraft/internal/adapter/repo/gorm/model"
	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"

	"gorm.io/gorm"
)

type ActionExecutionRepo struct {
	db      *gorm.DB
	catalog *survival.Catalog
}

func NewActionExecutionRepo(db *gorm.DB, catalog *survival.Catalog) ActionExecutionRepo {
	return ActionExecutionRepo{db: db, catalog: catalog}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*ports.ActionExecutionRecord, error) {
	var m model.ActionExecution
	err := getDBFromCtx(ctx, r.db).
		Where(&model.ActionExecution{SessionID: sessionID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	result, err := r.decodeResult(m)
	if err != nil {
		return nil, err
	}
	return &ports.ActionExecutionRecord{
		SessionID:      m.SessionID,
		IdempotencyKey: m.IdempotencyKey,
		IntentType:     m.IntentType,
		Result:         result,
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	stateJSON, err := encodeStateDoc(execution.Result.UpdatedState)
	if err != nil {
		return err
	}
	eventsJSON, err := json.Marshal(execution.Result.Events)
	if err != nil {
		return err
	}
	m := model.ActionExecution{
		SessionID:      execution.SessionID,
		IdempotencyKey: execution.IdempotencyKey,
		IntentType:     execution.IntentType,
		ResultCode:     string(execution.Result.ResultCode),
		UpdatedState:   stateJSON,
		Events:         eventsJSON,
		AppliedAt:      execution.AppliedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

// ForgetSession drops stored executions for sessionID, used on restart.
func (r ActionExecutionRepo) ForgetSession(ctx context.Context, sessionID string) error {
	return getDBFromCtx(ctx, r.db).Where("session_id = ?", sessionID).Delete(&model.ActionExecution{}).Error
}

func (r ActionExecutionRepo) decodeResult(m model.ActionExecution) (ports.ActionResult, error) {
	state, err := decodeStateDoc(r.catalog, m.UpdatedState)
	if err != nil {
		return ports.ActionResult{}, err
	}
	var events []survival.DomainEvent
	if err := json.Unmarshal(m.Events, &events); err != nil {
		return ports.ActionResult{}, err
	}
	return ports.ActionResult{
		UpdatedState: state,
		Events:       events,
		ResultCode:   survival.ResultCode(m.ResultCode),
	}, nil
}
