package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	httpadapter "wildcraft/internal/adapter/http"
	staticcatalog "wildcraft/internal/adapter/catalog/static"
	zstdjournal "wildcraft/internal/adapter/journal/zstd"
	metricsinmem "wildcraft/internal/adapter/metrics/inmemory"
	gormrepo "wildcraft/internal/adapter/repo/gorm"
	"wildcraft/internal/adapter/repo/memory"
	"wildcraft/internal/app/action"
	"wildcraft/internal/app/ports"
	"wildcraft/internal/app/replay"
	"wildcraft/internal/app/session"
	"wildcraft/internal/app/status"
	"wildcraft/internal/app/tick"
	"wildcraft/internal/domain/survival"
	"wildcraft/internal/platform/config"
	"wildcraft/internal/platform/otel"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadServer()
	if err != nil {
		hlog.Fatalf("load config: %v", err)
	}
	shutdownTracing, err := otel.Setup(ctx, "wildcraft")
	if err != nil {
		hlog.Fatalf("setup tracing: %v", err)
	}

	catalog, err := staticcatalog.Provider{Path: cfg.ContentPath}.Load(ctx)
	if err != nil {
		hlog.Fatalf("load catalog: %v", err)
	}
	be, err := buildBackend(ctx, cfg, catalog)
	if err != nil {
		hlog.Fatalf("build backend: %v", err)
	}
	var archive *zstdjournal.Archive
	if cfg.ArchiveDir != "" {
		archive = zstdjournal.NewArchive(cfg.ArchiveDir)
	}

	app := wire(cfg, catalog, be, archive)
	if _, err := app.handler.SessionUC.Ensure(ctx, session.Request{SessionID: cfg.SessionID}); err != nil {
		hlog.Fatalf("ensure session %s: %v", cfg.SessionID, err)
	}
	if cfg.TickEnabled {
		go func() {
			if err := app.runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				hlog.Errorf("tick runner stopped: %v", err)
			}
		}()
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	app.handler.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(shutdownCtx context.Context) {
		cancel()
		if archive != nil {
			if err := archive.Close(); err != nil {
				hlog.CtxWarnf(shutdownCtx, "close archive: %v", err)
			}
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			hlog.CtxWarnf(shutdownCtx, "shutdown tracing: %v", err)
		}
	})

	hlog.Infof("wildcraft listening on %s (session %s, catalog %s, backend %s)", cfg.Addr, cfg.SessionID, catalog.Digest(), be.name)
	s.Spin()
}

// backend groups the storage ports; memory and postgres both satisfy it.
type backend struct {
	name       string
	tx         ports.TxManager
	states     ports.GameStateRepository
	resetter   session.Resetter
	executions executionStore
	events     ports.EventRepository
	sessionIDs func() []string
}

type executionStore interface {
	ports.ActionExecutionRepository
	session.ExecutionForgetter
}

func buildBackend(ctx context.Context, cfg config.Server, catalog *survival.Catalog) (backend, error) {
	if !cfg.UsesPostgres() {
		store := memory.NewStore()
		states := memory.NewGameStateRepo(store)
		return backend{
			name:       "memory",
			tx:         memory.NewTxManager(store),
			states:     states,
			resetter:   states,
			executions: memory.NewActionExecutionRepo(store),
			events:     memory.NewEventRepo(store),
			sessionIDs: store.SessionIDs,
		}, nil
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		return backend{}, err
	}
	if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		return backend{}, fmt.Errorf("apply migrations: %w", err)
	}
	states := gormrepo.NewGameStateRepo(db, catalog)
	return backend{
		name:       "postgres",
		tx:         gormrepo.NewTxManager(db),
		states:     states,
		resetter:   states,
		executions: gormrepo.NewActionExecutionRepo(db, catalog),
		events:     gormrepo.NewEventRepo(db),
		sessionIDs: func() []string {
			ids, err := states.SessionIDs(ctx)
			if err != nil {
				hlog.CtxErrorf(ctx, "list sessions: %v", err)
				return nil
			}
			return ids
		},
	}, nil
}

type application struct {
	handler httpadapter.Handler
	runner  tick.Runner
}

func wire(cfg config.Server, catalog *survival.Catalog, be backend, archive *zstdjournal.Archive) application {
	var sink ports.EventArchive
	if archive != nil {
		sink = archive
	}
	kpi := metricsinmem.NewRecorder()
	engine := survival.Engine{Catalog: catalog}

	tickUC := tick.UseCase{
		TxManager: be.tx,
		StateRepo: be.states,
		EventRepo: be.events,
		Archive:   sink,
		Metrics:   kpi,
		Engine:    engine,
		Now:       time.Now,
	}
	h := httpadapter.Handler{
		SessionUC: session.UseCase{
			TxManager:  be.tx,
			StateRepo:  be.states,
			Resetter:   be.resetter,
			Executions: be.executions,
			EventRepo:  be.events,
			Archive:    sink,
			Catalog:    catalog,
			Now:        time.Now,
		},
		ActionUC: action.UseCase{
			TxManager:  be.tx,
			StateRepo:  be.states,
			ActionRepo: be.executions,
			EventRepo:  be.events,
			Archive:    sink,
			Metrics:    kpi,
			Engine:     engine,
			Now:        time.Now,
		},
		StatusUC:       status.UseCase{StateRepo: be.states, Catalog: catalog},
		TickUC:         tickUC,
		ReplayUC:       replay.UseCase{Events: be.events},
		Catalog:        catalog,
		KPI:            kpi,
		DefaultSession: cfg.SessionID,
		CORSOrigins:    cfg.CORSOrigins,
	}
	return application{
		handler: h,
		runner:  tick.Runner{Ticker: tickUC, Sessions: be.sessionIDs, Interval: cfg.TickInterval},
	}
}
