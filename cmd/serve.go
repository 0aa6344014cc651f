package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/duracube/kb-server/internal/api"
	"github.com/duracube/kb-server/internal/config"
	"github.com/duracube/kb-server/internal/knowledge"
	"github.com/duracube/kb-server/internal/tools"
)

// Server timeout configuration.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 0 // SSE streams stay open until the client leaves
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 30 * time.Second
)

// runServe initializes and starts the HTTP server.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	addr, err := parseServeAddr(cfg.Addr)
	if err != nil {
		return fmt.Errorf("parsing address: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.Default()
	logger.Info("starting knowledge server", "version", Version)

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}

	apiServer, err := api.NewServer(api.ServerConfig{
		Logger:      logger,
		Registry:    registry,
		Name:        Name,
		Version:     Version,
		KeepAlive:   cfg.KeepAlive(),
		CORSOrigins: cfg.CORSOrigins,
		RateBurst:   cfg.RateBurst,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	logger.Info("knowledge server ready",
		"addr", addr,
		"rpc", "/mcp, /messages",
		"stream", "/sse",
		"health", "/health",
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down knowledge server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server: %w", err)
	}
}

// buildRegistry wires the knowledge store and kit into the tool registry.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*tools.Registry, error) {
	store := knowledge.NewStore(knowledge.StoreConfig{DataDir: cfg.DataDir, Logger: logger})
	kit := tools.NewKit(store, logger)
	registry, err := tools.NewRegistry(kit)
	if err != nil {
		return nil, fmt.Errorf("building tool registry: %w", err)
	}
	return registry, nil
}
