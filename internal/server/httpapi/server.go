// Package httpapi exposes the authentication backend over HTTP using gin.
// It maps the service error taxonomy to status codes and keeps failure
// messages generic; details go to the logs only.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/logging"
	"github.com/Larisagabriela329/goit-project-health-backend/internal/server/services"
)

// Server wires the gin engine to the services.
type Server struct {
	address  string
	logger   logging.Logger
	auth     *services.AuthService
	profiles *services.ProfileService
	verify   func(token string) (string, error)
}

// NewServer builds the HTTP server. verifyAccess resolves an access token to
// a user id and backs the bearer middleware.
func NewServer(address string, logger logging.Logger, auth *services.AuthService, profiles *services.ProfileService, verifyAccess func(string) (string, error)) *Server {
	return &Server{
		address:  address,
		logger:   logger.With("module", "http_server"),
		auth:     auth,
		profiles: profiles,
		verify:   verifyAccess,
	}
}

func (s *Server) router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.POST("/auth/register", s.handleRegister)
		api.POST("/auth/login", s.handleLogin)
		api.POST("/auth/logout", s.handleLogout)
		api.POST("/auth/refresh", s.handleRefresh)

		api.GET("/users/me", s.bearerAuth(), s.handleCurrentUser)
	}

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
