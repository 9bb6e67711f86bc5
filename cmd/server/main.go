package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/skistation/resort/internal/config"
	"github.com/skistation/resort/internal/db"
	"github.com/skistation/resort/internal/handlers"
	"github.com/skistation/resort/internal/logger"
	"github.com/skistation/resort/internal/store"
	"github.com/skistation/resort/internal/web"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "resort",
	Short:        "Ski station registration service",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML); SKI_* env vars override it")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// openBackend picks the store for cfg.Database.Driver, migrating SQL databases.
func openBackend(cfg config.DatabaseConfig, log *logger.Logger) (store.Backend, error) {
	if cfg.Driver == "memory" {
		log.Warn("using in-memory store; data is lost on exit")
		return store.NewMemory(), nil
	}
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn); err != nil {
		return nil, err
	}
	return store.NewGorm(conn), nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Database.Driver == "memory" {
		return errors.New("migrate needs a sqlite or postgres database")
	}
	conn, err := db.Open(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := conn.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := db.Migrate(conn); err != nil {
		return err
	}
	log.Info("schema up to date", "driver", cfg.Database.Driver)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	backend, err := openBackend(cfg.Database, log)
	if err != nil {
		log.Error("open store", "driver", cfg.Database.Driver, "error", err)
		return err
	}
	defer backend.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           web.Router(cfg.Server, handlers.New(backend, log), log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("resort listening", "addr", cfg.Server.Addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
