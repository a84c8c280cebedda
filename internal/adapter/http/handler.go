package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"wildcraft/internal/app/action"
	"wildcraft/internal/app/ports"
	"wildcraft/internal/app/replay"
	"wildcraft/internal/app/session"
	"wildcraft/internal/app/status"
	"wildcraft/internal/app/tick"
	"wildcraft/internal/domain/survival"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const sessionIDHeader = "X-Session-ID"

type Handler struct {
	SessionUC      session.UseCase
	ActionUC       action.UseCase
	StatusUC       status.UseCase
	TickUC         tick.UseCase
	ReplayUC       replay.UseCase
	Catalog        *survival.Catalog
	KPI            kpiSnapshotProvider
	DefaultSession string
	CORSOrigins    []string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.CORSOrigins))

	api := s.Group("/api/session")
	api.POST("/restart", h.restart)
	api.POST("/status", h.status)
	api.POST("/action", h.action)
	api.POST("/tick", h.tick)
	api.GET("/replay", h.replay)

	s.GET("/api/catalog", h.catalog)
	s.GET("/ops/kpi", h.kpi)
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

type statusRequest struct {
	SessionID    string `json:"session_id"`
	Category     string `json:"category"`
	InventoryTab string `json:"inventory_tab"`
}

type actionRequest struct {
	SessionID      string                `json:"session_id"`
	IdempotencyKey string                `json:"idempotency_key"`
	Intent         survival.ActionIntent `json:"intent"`
}

type tickRequest struct {
	SessionID string `json:"session_id"`
	Minutes   int    `json:"minutes"`
}

type catalogResponse struct {
	Digest    string              `json:"digest"`
	Resources []survival.Resource `json:"resources"`
	Items     []survival.Item     `json:"items"`
	Recipes   []survival.Recipe   `json:"recipes"`
}

func (h Handler) restart(c context.Context, ctx *app.RequestContext) {
	var body sessionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.SessionUC.Restart(c, session.Request{SessionID: h.sessionID(ctx, body.SessionID)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	var body statusRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{
		SessionID:    h.sessionID(ctx, body.SessionID),
		Category:     body.Category,
		InventoryTab: body.InventoryTab,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ActionUC.Execute(c, action.Request{
		SessionID:      h.sessionID(ctx, body.SessionID),
		IdempotencyKey: body.IdempotencyKey,
		Intent:         body.Intent,
	})
	if err != nil {
		if writeActionRejectedFromErr(ctx, err) {
			return
		}
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) tick(c context.Context, ctx *app.RequestContext) {
	var body tickRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TickUC.Execute(c, tick.Request{
		SessionID: h.sessionID(ctx, body.SessionID),
		Minutes:   body.Minutes,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "limit must be an integer")
		return
	}
	occurredFrom, err := queryInt64(ctx, "occurred_from")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "occurred_from must be an integer")
		return
	}
	occurredTo, err := queryInt64(ctx, "occurred_to")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "occurred_to must be an integer")
		return
	}
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID:    h.sessionID(ctx, string(ctx.Query("session_id"))),
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalog(_ context.Context, ctx *app.RequestContext) {
	if h.Catalog == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "catalog not configured")
		return
	}
	ctx.JSON(consts.StatusOK, catalogResponse{
		Digest:    h.Catalog.Digest(),
		Resources: h.Catalog.Resources(),
		Items:     h.Catalog.Items(),
		Recipes:   h.Catalog.Recipes(),
	})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

// sessionID resolves the target session: explicit body or query value, then
// the X-Session-ID header, then the configured default.
func (h Handler) sessionID(ctx *app.RequestContext, explicit string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	if id := strings.TrimSpace(string(ctx.GetHeader(sessionIDHeader))); id != "" {
		return id
	}
	return h.DefaultSession
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func queryInt(ctx *app.RequestContext, key string) (int, error) {
	raw := strings.TrimSpace(string(ctx.Query(key)))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func queryInt64(ctx *app.RequestContext, key string) (int64, error) {
	raw := strings.TrimSpace(string(ctx.Query(key)))
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, action.ErrInvalidActionParams):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_action_params", err.Error())
	case errors.Is(err, status.ErrUnknownCategory):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_category", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, session.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, tick.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, survival.ErrInvalidDelta),
		errors.Is(err, survival.ErrUnknownStat),
		errors.Is(err, survival.ErrUnknownBiome):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, survival.ErrUnknownID):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_id", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// writeActionRejectedFromErr renders gameplay rejections and bad targets in
// the REJECTED envelope. Other errors fall through to writeError.
func writeActionRejectedFromErr(ctx *app.RequestContext, err error) bool {
	var unknown *action.UnknownTargetError
	if errors.As(err, &unknown) {
		details := map[string]any{"kind": string(unknown.Kind), "id": unknown.ID}
		if unknown.Suggestion != "" {
			details["suggestion"] = unknown.Suggestion
		}
		writeActionRejected(ctx, consts.StatusNotFound, "unknown_id", err.Error(), false, []string{"KNOWN_TARGET"}, details)
		return true
	}

	code, ok := action.RejectionCode(err)
	if !ok {
		if errors.Is(err, action.ErrInvalidActionParams) {
			writeActionRejected(ctx, consts.StatusBadRequest, "invalid_action_params", err.Error(), false, []string{"REQUIREMENT_NOT_MET"}, nil)
			return true
		}
		if errors.Is(err, action.ErrInvalidRequest) {
			writeActionRejected(ctx, consts.StatusBadRequest, "bad_request", err.Error(), false, []string{"REQUIREMENT_NOT_MET"}, nil)
			return true
		}
		return false
	}

	var details map[string]any
	var locked *action.RecipeLockedError
	var biome *action.ResourceNotInBiomeError
	switch {
	case errors.As(err, &locked):
		details = map[string]any{"recipe_id": locked.RecipeID, "unlocked_by": locked.UnlockedBy}
	case errors.As(err, &biome):
		details = map[string]any{
			"resource_id":     biome.ResourceID,
			"biome":           string(biome.Biome),
			"available_biome": string(biome.Available),
		}
	}
	// Passive ticks never restore a stat, so waiting cannot clear a rejection.
	writeActionRejected(ctx, consts.StatusConflict, string(code), err.Error(), false, action.BlockedBy(code), details)
	return true
}

func writeActionRejected(ctx *app.RequestContext, status int, code, message string, retryable bool, blockedBy []string, details map[string]any) {
	ctx.JSON(status, map[string]any{
		"result_code": "REJECTED",
		"error": map[string]any{
			"code":       code,
			"message":    message,
			"retryable":  retryable,
			"blocked_by": blockedBy,
			"details":    details,
		},
	})
}
