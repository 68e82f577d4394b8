// Package server assembles the HTTP surface: router, middleware, static
// client files and the http.Server itself.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"accounts/internal/auth"
	"accounts/internal/config"
	"accounts/internal/database"
	"accounts/internal/profile"
	"accounts/internal/session"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	db       database.Service
	sessions session.Manager

	auth    *auth.Handler
	profile *profile.Handler

	allowedOrigins []string
	static         *clientFiles // nil when STATIC_DIR is empty

	logger *slog.Logger
}

// Deps are the collaborators the routes dispatch to
type Deps struct {
	DB       database.Service
	Sessions session.Manager
	Auth     *auth.Handler
	Profile  *profile.Handler
	Logger   *slog.Logger
}

// New creates a Server from cfg and deps
func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		db:             deps.DB,
		sessions:       deps.Sessions,
		auth:           deps.Auth,
		profile:        deps.Profile,
		allowedOrigins: cfg.AllowedOrigins,
		logger:         deps.Logger,
	}
	if cfg.StaticDir != "" {
		s.static = newClientFiles(cfg.StaticDir)
	}
	return s
}

// NewHTTPServer configures the http.Server that serves handler
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
