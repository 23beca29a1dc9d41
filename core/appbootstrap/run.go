package appbootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"nis2-copilot/api"
	"nis2-copilot/config"
	"nis2-copilot/core/store"
	"nis2-copilot/core/utils"
)

const shutdownGrace = 10 * time.Second

// Run wires the full runtime and serves until SIGINT or SIGTERM.
func Run(cfg *config.AppConfig, logger *utils.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.AuditEnabled {
		var err error
		db, err = store.NewDB(cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := store.ApplyMigrations(ctx, db, cfg.DBDriver, logger); err != nil {
			return err
		}
	}

	composition, err := composeRuntime(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	if composition.sweeper != nil {
		if err := composition.sweeper.Start(); err != nil {
			return err
		}
		defer composition.sweeper.Stop()
	}

	server := api.NewServer(cfg, composition.serverDeps, logger)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
		return err
	}
	return nil
}

// Used by tests and one-off tooling that need the composed handler without a
// listening socket.
func ComposeHandler(ctx context.Context, cfg *config.AppConfig, db *sql.DB, logger *utils.Logger) (http.Handler, error) {
	composition, err := composeRuntime(ctx, cfg, db, logger)
	if err != nil {
		return nil, err
	}
	return api.NewServer(cfg, composition.serverDeps, logger).Handler(), nil
}
