// Package server initializes and runs the application: it opens the
// database, applies migrations, wires services, and starts the HTTP API
// with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/evetodo/eve-server/internal/logging"
	"github.com/evetodo/eve-server/internal/server/config"
	"github.com/evetodo/eve-server/internal/server/httpapi"
	"github.com/evetodo/eve-server/internal/server/repositories/repomanager"
	"github.com/evetodo/eve-server/internal/server/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	handlers *httpapi.Handlers
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxDBConnections)

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	sessionService := services.NewSessionService(db, rm, cfg, logger)
	accountService := services.NewAccountService(db, rm, services.BcryptHasher{Cost: cfg.BcryptCost}, cfg)
	projectService := services.NewProjectService(db, rm)
	todoService := services.NewTodoService(db, rm)
	identity := services.NewIdentityResolver(cfg)

	handlers := httpapi.NewHandlers(sessionService, accountService, projectService,
		todoService, identity, cfg.SessionCookieName, logger)

	return &App{config: cfg, logger: logger, db: db, handlers: handlers}, nil
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

	s := httpapi.NewHTTPServer(app.config.EndpointAddr, app.handlers, app.logger)

	if err := s.Run(ctx); err != nil {
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

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
