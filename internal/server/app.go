// Package server initializes and runs the board's backend: it opens the
// database, applies migrations, wires the services, and serves the HTTP API
// until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/akulikov/boardd/internal/logging"
	"github.com/akulikov/boardd/internal/server/auth"
	"github.com/akulikov/boardd/internal/server/config"
	"github.com/akulikov/boardd/internal/server/httpapi"
	"github.com/akulikov/boardd/internal/server/mail"
	"github.com/akulikov/boardd/internal/server/repositories/repomanager"
	"github.com/akulikov/boardd/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens := auth.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	mailer := mail.NewSMTPMailer(cfg, logger)

	authSvc := services.NewAuthService(db, rm, cfg, tokens, hasher, mailer, logger)
	userSvc := services.NewUserService(db, rm, cfg, authSvc, hasher, mailer, logger)
	commSvc := services.NewCommunityService(db, rm)
	postSvc := services.NewPostService(db, rm, hasher)
	commentSvc := services.NewCommentService(db, rm, hasher)

	api := httpapi.NewServer(cfg, logger, tokens, authSvc, userSvc, commSvc, postSvc, commentSvc)

	return &App{config: cfg, logger: logger, db: db, api: api}, nil
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then drains in-flight requests and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.initSignalHandler(cancel)

	srv := &http.Server{
		Addr:    app.config.Addr,
		Handler: app.api.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}
	return app.db.Close()
}

func (app *App) initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}
