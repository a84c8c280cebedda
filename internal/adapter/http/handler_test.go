package httpadapter

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	staticcatalog "wildcraft/internal/adapter/catalog/static"
	metricsinmem "wildcraft/internal/adapter/metrics/inmemory"
	"wildcraft/internal/adapter/repo/memory"
	"wildcraft/internal/app/action"
	"wildcraft/internal/app/replay"
	"wildcraft/internal/app/session"
	"wildcraft/internal/app/status"
	"wildcraft/internal/app/tick"
	"wildcraft/internal/domain/survival"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (Handler, *memory.Store) {
	t.Helper()
	catalog, err := staticcatalog.Provider{}.Load(context.Background())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	store := memory.NewStore()
	tx := memory.NewTxManager(store)
	states := memory.NewGameStateRepo(store)
	actions := memory.NewActionExecutionRepo(store)
	events := memory.NewEventRepo(store)
	kpi := metricsinmem.NewRecorder()
	now := func() time.Time { return testNow }
	engine := survival.Engine{Catalog: catalog}

	h := Handler{
		SessionUC: session.UseCase{
			TxManager:  tx,
			StateRepo:  states,
			Resetter:   states,
			Executions: actions,
			EventRepo:  events,
			Catalog:    catalog,
			Now:        now,
		},
		ActionUC: action.UseCase{
			TxManager:  tx,
			StateRepo:  states,
			ActionRepo: actions,
			EventRepo:  events,
			Metrics:    kpi,
			Engine:     engine,
			Now:        now,
		},
		StatusUC:       status.UseCase{StateRepo: states, Catalog: catalog},
		TickUC:         tick.UseCase{TxManager: tx, StateRepo: states, EventRepo: events, Metrics: kpi, Engine: engine, Now: now},
		ReplayUC:       replay.UseCase{Events: events},
		Catalog:        catalog,
		KPI:            kpi,
		DefaultSession: "default",
	}
	store.SeedState("default", survival.NewSession(catalog))
	return h, store
}

func postJSON(body string) *app.RequestContext {
	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodPost)
	ctx.Request.SetBody([]byte(body))
	return ctx
}

func decodeBody(t *testing.T, ctx *app.RequestContext) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v (%s)", err, ctx.Response.Body())
	}
	return body
}

func errorCode(body map[string]any) any {
	e, _ := body["error"].(map[string]any)
	return e["code"]
}

func TestAction_CollectOK(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := postJSON(`{"intent":{"type":"collect","resource_id":"wood"}}`)

	h.action(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	body := decodeBody(t, ctx)
	if got, want := body["result_code"], "OK"; got != want {
		t.Fatalf("result code mismatch: got=%v want=%v", got, want)
	}
	state := asMap(body["updated_state"])
	inv, _ := state["inventory"].([]any)
	if len(inv) != 1 || asMap(inv[0])["id"] != "wood" {
		t.Fatalf("unexpected inventory: %v", state["inventory"])
	}
}

func TestAction_MissingIngredientsIsRejected(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := postJSON(`{"intent":{"type":"craft","recipe_id":"stone_axe"}}`)

	h.action(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	body := decodeBody(t, ctx)
	if body["result_code"] != "REJECTED" {
		t.Fatalf("expected REJECTED envelope, got %v", body)
	}
	if got, want := errorCode(body), string(survival.ResultMissingIngredients); got != want {
		t.Fatalf("error code mismatch: got=%v want=%v", got, want)
	}
	blocked, _ := asMap(body["error"])["blocked_by"].([]any)
	if len(blocked) != 1 || blocked[0] != survival.RequirementRecipeInputs {
		t.Fatalf("blocked_by mismatch: %v", asMap(body["error"])["blocked_by"])
	}
}

func TestAction_InsufficientEnergyIsNotRetryable(t *testing.T) {
	h, store := newTestHandler(t)
	state := survival.NewSession(h.Catalog)
	state.Stats.Energy = 0
	store.SeedState("default", state)
	ctx := postJSON(`{"intent":{"type":"collect","resource_id":"wood"}}`)

	h.action(context.Background(), ctx)

	body := decodeBody(t, ctx)
	if got, want := errorCode(body), string(survival.ResultInsufficientEnergy); got != want {
		t.Fatalf("error code mismatch: got=%v want=%v", got, want)
	}
	envelope := asMap(body["error"])
	if got, want := envelope["retryable"], false; got != want {
		t.Fatalf("retryable mismatch: got=%v want=%v", got, want)
	}
	blocked, _ := envelope["blocked_by"].([]any)
	if len(blocked) != 1 || blocked[0] != survival.RequirementEnergy {
		t.Fatalf("blocked_by mismatch: %v", envelope["blocked_by"])
	}
}

func TestAction_WrongBiomeCarriesDetails(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := postJSON(`{"intent":{"type":"collect","resource_id":"stone"}}`)

	h.action(context.Background(), ctx)

	body := decodeBody(t, ctx)
	if got, want := errorCode(body), string(action.CodeResourceNotInBiome); got != want {
		t.Fatalf("error code mismatch: got=%v want=%v", got, want)
	}
	details := asMap(asMap(body["error"])["details"])
	if got, want := details["available_biome"], "mountains"; got != want {
		t.Fatalf("available biome mismatch: got=%v want=%v", got, want)
	}
}

func TestAction_UnknownIDSuggests(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := postJSON(`{"intent":{"type":"collect","resource_id":"wod"}}`)

	h.action(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	body := decodeBody(t, ctx)
	details := asMap(asMap(body["error"])["details"])
	if got, want := details["suggestion"], "wood"; got != want {
		t.Fatalf("suggestion mismatch: got=%v want=%v", got, want)
	}
}

func TestAction_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := postJSON(`{"intent":`)

	h.action(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(decodeBody(t, ctx)), "invalid_json"; got != want {
		t.Fatalf("error code mismatch: got=%v want=%v", got, want)
	}
}

func TestAction_DeadPlayerGameOverThenRestart(t *testing.T) {
	h, store := newTestHandler(t)
	dead := survival.NewSession(h.Catalog)
	dead.Stats.Health = 0
	store.SeedState("default", dead)

	ctx := postJSON(`{"intent":{"type":"collect","resource_id":"wood"}}`)
	h.action(context.Background(), ctx)
	if got, want := errorCode(decodeBody(t, ctx)), string(action.CodeGameOver); got != want {
		t.Fatalf("error code mismatch: got=%v want=%v", got, want)
	}

	ctx = postJSON(``)
	h.restart(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("restart status mismatch: got=%d want=%d", got, want)
	}

	ctx = postJSON(`{"intent":{"type":"collect","resource_id":"wood"}}`)
	h.action(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("action after restart: got=%d want=%d", got, want)
	}
}

func TestStatus_UsesHeaderSession(t *testing.T) {
	h, store := newTestHandler(t)
	store.SeedState("other", survival.NewSession(h.Catalog))
	ctx := postJSON(`{"inventory_tab":"items"}`)
	ctx.Request.Header.Set(sessionIDHeader, "other")

	h.status(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	body := decodeBody(t, ctx)
	if got, want := body["inventory_tab"], "items"; got != want {
		t.Fatalf("inventory tab mismatch: got=%v want=%v", got, want)
	}
	view := asMap(body["view"])
	if got, want := view["time_label"], "Day 1 - 8:00 AM"; got != want {
		t.Fatalf("time label mismatch: got=%v want=%v", got, want)
	}
}

func TestStatus_UnknownSession(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := postJSON(`{"session_id":"ghost"}`)

	h.status(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestTickAndReplay(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := postJSON(`{"minutes":30}`)
	h.tick(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("tick status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/session/replay?limit=5")
	h.replay(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("replay status mismatch: got=%d want=%d", got, want)
	}
	body := decodeBody(t, ctx)
	events, _ := body["events"].([]any)
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	latest := asMap(body["latest_state"])
	if got, want := asMap(latest["clock"])["minute"], float64(30); got != want {
		t.Fatalf("replayed minute mismatch: got=%v want=%v", got, want)
	}
}

func TestReplay_BadLimit(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/session/replay?limit=abc")

	h.replay(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestReplay_BadTimeWindow(t *testing.T) {
	h, _ := newTestHandler(t)
	for _, uri := range []string{
		"/api/session/replay?occurred_from=yesterday",
		"/api/session/replay?occurred_to=1.5",
	} {
		ctx := &app.RequestContext{}
		ctx.Request.SetRequestURI(uri)

		h.replay(context.Background(), ctx)

		if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
			t.Fatalf("%s: status mismatch: got=%d want=%d", uri, got, want)
		}
	}
}

func TestCatalogAndKPI(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := &app.RequestContext{}
	h.catalog(context.Background(), ctx)
	body := decodeBody(t, ctx)
	if recipes, _ := body["recipes"].([]any); len(recipes) == 0 {
		t.Fatalf("expected recipes in catalog response")
	}
	if body["digest"] == "" {
		t.Fatalf("expected catalog digest")
	}

	h.action(context.Background(), postJSON(`{"intent":{"type":"collect","resource_id":"wood"}}`))
	ctx = &app.RequestContext{}
	h.kpi(context.Background(), ctx)
	kpi := decodeBody(t, ctx)
	if got, want := kpi["action_success"], float64(1); got != want {
		t.Fatalf("kpi success mismatch: got=%v want=%v", got, want)
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{}.kpi(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestWriteError_InvalidActionParams(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, action.ErrInvalidActionParams)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(decodeBody(t, ctx)), "invalid_action_params"; got != want {
		t.Fatalf("error code mismatch: got=%v want=%v", got, want)
	}
}

func TestWriteError_InternalHidesMessage(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, context.DeadlineExceeded)

	if got, want := ctx.Response.StatusCode(), consts.StatusInternalServerError; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	e := asMap(decodeBody(t, ctx)["error"])
	if e["message"] != "internal error" {
		t.Fatalf("internal errors must not leak details: %v", e["message"])
	}
}
