package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/marcus/clinic/internal/api"
	"github.com/marcus/clinic/internal/auth"
	"github.com/marcus/clinic/internal/config"
	"github.com/marcus/clinic/internal/db"
	"github.com/marcus/clinic/internal/directory"
	"github.com/marcus/clinic/internal/logging"
	"github.com/marcus/clinic/internal/output"
	"github.com/marcus/clinic/internal/session"
)

// app holds the collaborators every command shares
type app struct {
	cfg       *config.Config
	client    *api.Client
	sessions  *session.Store
	cache     *db.DB
	auth      *auth.Service
	directory *directory.Service

	logs io.Closer
}

// openApp loads config, starts logging and opens the doctor cache. A cache
// that cannot be opened is reported and skipped.
func openApp() (*app, error) {
	dir := getBaseDir()

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	logs, err := logging.Setup(dir, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		client:   api.New(cfg.APIBaseURL, cfg.Timeout()),
		sessions: session.NewStore(dir),
		logs:     logs,
	}
	a.auth = auth.NewService(a.client, a.sessions)

	var cache directory.Cache
	database, err := db.Open(dir)
	if err != nil {
		output.Warning("doctor cache unavailable: %v", err)
	} else {
		a.cache = database
		cache = database
	}
	a.directory = directory.New(a.client, cache)

	slog.Debug("clinic started", "version", version, "api", cfg.APIBaseURL, "dir", dir)
	return a, nil
}

// Close releases the cache and log file
func (a *app) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			slog.Warn("close cache", "err", err)
		}
	}
	if a.logs != nil {
		a.logs.Close()
	}
}

func withApp(fn func(a *app) error) error {
	a, err := openApp()
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	defer a.Close()
	return fn(a)
}
