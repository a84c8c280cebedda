package config

import (
	"errors"
	"strings"
	"time"
)

// Server is the runtime configuration of cmd/server.
type Server struct {
	Addr          string        `env:"WILDCRAFT_ADDR"           envDefault:":8080"`
	DBDSN         string        `env:"WILDCRAFT_DB_DSN"`
	MigrationsDir string        `env:"WILDCRAFT_MIGRATIONS_DIR" envDefault:"db/migrations"`
	ContentPath   string        `env:"WILDCRAFT_CONTENT_PATH"`
	ArchiveDir    string        `env:"WILDCRAFT_ARCHIVE_DIR"`
	SessionID     string        `env:"WILDCRAFT_SESSION_ID"     envDefault:"default"`
	TickEnabled   bool          `env:"WILDCRAFT_TICK_ENABLED"   envDefault:"true"`
	TickInterval  time.Duration `env:"WILDCRAFT_TICK_INTERVAL"  envDefault:"3s"`
	CORSOrigins   []string      `env:"WILDCRAFT_CORS_ORIGINS"   envSeparator:","`
}

// LoadServer parses Server from the environment and validates it.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	cfg.SessionID = strings.TrimSpace(cfg.SessionID)
	if cfg.SessionID == "" {
		return Server{}, errors.New("WILDCRAFT_SESSION_ID must not be blank")
	}
	if cfg.TickEnabled && cfg.TickInterval <= 0 {
		return Server{}, errors.New("WILDCRAFT_TICK_INTERVAL must be positive")
	}
	origins := cfg.CORSOrigins[:0]
	for _, o := range cfg.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSOrigins = origins
	return cfg, nil
}

// UsesPostgres reports whether sessions live in postgres instead of memory.
func (c Server) UsesPostgres() bool {
	return strings.TrimSpace(c.DBDSN) != ""
}
