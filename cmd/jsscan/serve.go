package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/conduit-lang/jsscan/internal/audit"
	"github.com/conduit-lang/jsscan/internal/cache"
	"github.com/conduit-lang/jsscan/internal/config"
	"github.com/conduit-lang/jsscan/internal/service"
	"github.com/conduit-lang/jsscan/internal/watch"
	"github.com/conduit-lang/jsscan/internal/wsbus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveWatchDir string

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP + WebSocket tokenize service",
		Long: `Starts jsscan as a long-running service: POST /v1/tokenize scans a
request body and returns its tokens, GET /v1/stream pushes every result to
connected WebSocket clients, and a result cache and audit log are wired in
per jsscan.yaml. Pass --watch to also rescan a directory on file save and
broadcast fresh tokens to subscribers.`,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&serveWatchDir, "watch", "", "directory to watch for .js file changes")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	var resultCache cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		resultCache, err = cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			Config:   cache.Config{DefaultTTL: time.Duration(cfg.Cache.TTLSecs) * time.Second, Prefix: "jsscan:tokenize:"},
		})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
	default:
		resultCache = cache.NewMemoryCache()
	}
	defer resultCache.Close()

	auditStore, err := audit.Open(cfg.Audit.Driver, cfg.Audit.DSN)
	if err != nil {
		return fmt.Errorf("opening audit store: %w", err)
	}
	defer auditStore.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := wsbus.NewHub(ctx, logger)

	var authSvc *service.AuthService
	if cfg.Auth.SecretKey != "" {
		authSvc = service.NewAuthService(cfg.Auth.SecretKey, time.Duration(cfg.Auth.TokenTTLMn)*time.Minute)
	}

	svc := service.New(service.Options{
		Cache:     resultCache,
		Audit:     auditStore,
		Hub:       hub,
		Auth:      authSvc,
		Logger:    logger,
		APIPrefix: cfg.Server.APIPrefix,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := service.NewServer(addr, svc, hub, logger)

	if serveWatchDir != "" {
		watcher, err := watch.New(hub, logger)
		if err != nil {
			return fmt.Errorf("starting file watcher: %w", err)
		}
		if err := watcher.AddDir(serveWatchDir); err != nil {
			return fmt.Errorf("watching %s: %w", serveWatchDir, err)
		}
		go watcher.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("service error: %w", err)
		}
	}

	return srv.Shutdown(10 * time.Second)
}
