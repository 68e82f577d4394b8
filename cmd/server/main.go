package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accounts/internal/auth"
	"accounts/internal/config"
	"accounts/internal/database"
	"accounts/internal/logger"
	"accounts/internal/password"
	"accounts/internal/profile"
	"accounts/internal/server"
	"accounts/internal/session"
	"accounts/internal/users"

	"github.com/common-nighthawk/go-figure"
)

func main() {
	log := logger.New()
	logger.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	displayAppname(cfg.AppName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = db.Migrate(migrateCtx)
	cancel()
	if err != nil {
		return err
	}
	log.Info("Database ready", "host", cfg.Database.Host, "database", cfg.Database.Database,
		"max_open_conns", cfg.Database.MaxOpenConns)

	store := session.NewMemoryStore()
	sessions := session.NewManager(store, session.Options{
		TTL:        cfg.SessionTTL,
		MaxEntries: cfg.SessionMaxEntries,
		Tokens:     session.NewTokenGenerator(cfg.SessionTokenBytes),
	})
	if cfg.SessionTTL > 0 {
		go session.RunSweeper(ctx, store, cfg.SessionSweepInterval, func(removed int) {
			if removed > 0 {
				log.Debug("Expired sessions purged", "removed", removed)
			}
		})
	}

	repo := users.NewPostgresRepository(db.DB())
	hasher := password.NewBcryptHasher(password.DefaultCost)
	cookies := session.CookieOptions{Secure: cfg.CookieSecure}

	srv := server.New(cfg, server.Deps{
		DB:       db,
		Sessions: sessions,
		Auth:     auth.NewHandler(auth.NewService(repo, hasher, sessions, log), cookies, log),
		Profile:  profile.NewHandler(profile.NewService(repo, hasher, sessions, log), log),
		Logger:   log,
	})
	httpServer := server.NewHTTPServer(cfg, srv.RegisterRoutes())

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", "addr", httpServer.Addr, "static_dir", cfg.StaticDir)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	return shutdown(httpServer)
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
