package config

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type envTestConfig struct {
	Port int `env:"WILDCRAFT_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("WILDCRAFT_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Server{
		Addr:          ":8080",
		MigrationsDir: "db/migrations",
		SessionID:     "default",
		TickEnabled:   true,
		TickInterval:  3 * time.Second,
	}
	if diff := cmp.Diff(want, cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.UsesPostgres() {
		t.Fatalf("expected memory backend without a DSN")
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("WILDCRAFT_ADDR", ":9090")
	t.Setenv("WILDCRAFT_DB_DSN", "postgres://localhost/wildcraft")
	t.Setenv("WILDCRAFT_TICK_INTERVAL", "250ms")
	t.Setenv("WILDCRAFT_CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.TickInterval != 250*time.Millisecond {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.UsesPostgres() {
		t.Fatalf("expected postgres backend")
	}
	if diff := cmp.Diff([]string{"http://a.test", "http://b.test"}, cfg.CORSOrigins); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadServerRejectsInvalid(t *testing.T) {
	t.Setenv("WILDCRAFT_SESSION_ID", "  ")
	if _, err := LoadServer(); err == nil {
		t.Fatalf("expected error for blank session id")
	}

	t.Setenv("WILDCRAFT_SESSION_ID", "s1")
	t.Setenv("WILDCRAFT_TICK_INTERVAL", "0s")
	if _, err := LoadServer(); err == nil {
		t.Fatalf("expected error for zero tick interval")
	}
}
