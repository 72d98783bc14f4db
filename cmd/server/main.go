package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homepage/internal/api"
	"homepage/internal/config"
	"homepage/internal/docs"
	"homepage/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting server", "name", cfg.Server.Name, "backend", cfg.Store.Backend)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	kv, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("failed to open store", "error", err, "backend", cfg.Store.Backend)
		os.Exit(1)
	}
	defer kv.Close()

	registry := docs.NewRegistry(kv, docs.DefaultKeys())

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	err = registry.EnsureInitialized(ctx, docs.DefaultContent(cfg.Admin.Username, cfg.Admin.Password))
	cancel()
	if err != nil {
		slog.Error("failed to initialize documents", "error", err)
		os.Exit(1)
	}
	slog.Info("documents initialized")

	server := api.NewServer(cfg, registry)

	addr := cfg.Addr()
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server,
	}

	go func() {
		slog.Info("server listening", "addr", addr, "base_url", cfg.Server.BaseURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (store.KV, error) {
	switch cfg.Store.Backend {
	case "redis":
		return store.NewRedisStore(ctx, cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB)
	case "sqlite":
		return store.NewSQLiteStore(ctx, cfg.Store.SQLite.Path)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
