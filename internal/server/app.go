// Package server initializes and runs the main application server.
// It wires the storage backend, the advisory engine and the HTTP API, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fortress-vault/fortress/internal/logging"
	"github.com/fortress-vault/fortress/internal/server/advisor"
	"github.com/fortress-vault/fortress/internal/server/config"
	"github.com/fortress-vault/fortress/internal/server/departments"
	"github.com/fortress-vault/fortress/internal/server/httpapi"
	"github.com/fortress-vault/fortress/internal/server/passwords"
	"github.com/fortress-vault/fortress/internal/server/shared/db"
	"github.com/fortress-vault/fortress/internal/server/users"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	manager   db.RepositoryManager
	server    *httpapi.Server
	debouncer *advisor.Debouncer
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	ds := departments.NewService(m.Departments(), logger)
	us := users.NewService(m.Users(), logger)
	ps := passwords.NewService(m.Passwords(), logger)

	adv := advisor.NewGeminiAdvisor(
		c.AdvisoryEndpoint, c.AdvisoryAPIKey, c.AdvisoryModel, c.AdvisoryTimeout, logger)
	deb := advisor.NewDebouncer(adv, c.DebounceInterval)

	srv := httpapi.NewServer(c.EndpointAddrHTTP, logger, ds, us, ps, adv, deb)

	return &App{config: c, logger: logger, manager: m, server: srv, debouncer: deb}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.debouncer.Close()
	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
