// Package server initializes and runs the backend: it opens the selected
// storage backends, wires the services, handles shutdown signals, and starts
// the HTTP server.
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

	"github.com/redis/go-redis/v9"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/logging"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/auth"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/config"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/db"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/httpapi"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/repositories/profiles"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/repositories/sessions"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/repositories/users"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	conn, err := db.NewPostgresDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	sessionStore, err := newSessionStore(cfg, conn)
	if err != nil {
		return nil, err
	}

	codec := auth.NewCodec(
		[]byte(cfg.AccessSecretKey), []byte(cfg.RefreshSecretKey),
		cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration,
	)

	userRepo := users.NewPostgresRepository(conn)
	profileRepo := profiles.NewPostgresRepository(conn)

	authService := services.NewAuthService(codec, sessionStore, userRepo, logger)
	profileService := services.NewProfileService(userRepo, profileRepo)

	server := httpapi.NewServer(cfg.EndpointAddr, logger, authService, profileService, codec.VerifyAccess)

	return &App{config: cfg, logger: logger, server: server}, nil
}

func newSessionStore(cfg *config.Config, conn *sql.DB) (sessions.Store, error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return sessions.NewRedisStore(client), nil
	case config.SessionStorePostgres:
		return sessions.NewPostgresStore(conn), nil
	default:
		return nil, fmt.Errorf("unknown session store backend: %q", cfg.SessionStore)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
