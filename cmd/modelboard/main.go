// Package main is the entry point for the model metadata aggregation
// server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"modelboard/config"
	"modelboard/internal/aggregate"
	"modelboard/internal/benchmark"
	"modelboard/internal/httpclient"
	"modelboard/internal/leaderboard"
	"modelboard/internal/logging"
	"modelboard/internal/server"
	"modelboard/internal/version"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information")
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Format, cfg.Logging.Level)

	slog.Info("starting modelboard",
		"version", version.Version,
		"commit", version.Commit,
		"build_date", version.Date,
	)

	client := httpclient.New(nil)

	benchClient := benchmark.NewClient(client, cfg.Benchmark.URL, cfg.Benchmark.APIKey)
	if benchClient.Enabled() {
		slog.Info("benchmark integration enabled", "url", cfg.Benchmark.URL)
	} else {
		slog.Info("benchmark integration disabled: no API key configured")
	}

	lbClient := leaderboard.NewClient(client,
		cfg.Leaderboard.BaseURL,
		cfg.Leaderboard.Dataset,
		cfg.Leaderboard.PageSize,
		cfg.Leaderboard.MaxRows,
	)

	orchestrator := aggregate.New(client, aggregate.Config{
		FeedURL:     cfg.Feed.URL,
		Benchmark:   benchClient,
		Leaderboard: lbClient,
		CacheTTL:    cfg.Cache.TTL,
		Allowed:     cfg.Providers.Allowed,
	})

	if cfg.Metrics.Enabled {
		slog.Info("prometheus metrics enabled", "endpoint", cfg.Metrics.Endpoint)
	}

	srv := server.New(orchestrator, &server.Config{
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsEndpoint: cfg.Metrics.Endpoint,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	addr := ":" + cfg.Server.Port
	slog.Info("starting server", "address", addr, "cache_ttl", cfg.Cache.TTL)

	if err := srv.Start(addr); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			slog.Info("server stopped gracefully")
		} else {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}
}
