package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stock-screener-bot/internal/alertlog"
	"stock-screener-bot/internal/feed"
	"stock-screener-bot/internal/feed/feedobs"
	"stock-screener-bot/internal/interfaces"
	"stock-screener-bot/internal/journal"
	"stock-screener-bot/internal/logger"
	"stock-screener-bot/internal/screener"
	"stock-screener-bot/internal/screener/screenerobs"
	"stock-screener-bot/internal/store"
	"stock-screener-bot/internal/trace"
)

// initializeSystem initializes env, logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// compressOldAlerts gzips old alert files when retention is configured
func compressOldAlerts(ctx context.Context) {
	if v := os.Getenv("SCREENER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := alertlog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old alert logs", "error", err)
		}
	}
}

// initializeFeed picks the quote source from config, wrapped with observability
func initializeFeed(ctx context.Context, cfg *store.Config) interfaces.Feed {
	timeout := time.Duration(cfg.Feed.TimeoutSeconds) * time.Second

	var f interfaces.Feed
	switch cfg.DataSource {
	case "HTML":
		f = feed.NewHTMLFeed(cfg.Feed.URL, timeout)
		logger.Info(ctx, "Using HTML quote table feed", "source", cfg.Feed.URL)
	case "API":
		f = feed.NewAPIFeed(cfg.Feed.URL, "/quotes/{market}", timeout)
		logger.Info(ctx, "Using JSON quote API feed", "base_url", cfg.Feed.URL)
	default:
		f = feed.NewStaticFeed(cfg.Static.Symbols)
		logger.Warn(ctx, "Using STATIC synthetic feed - quotes are fabricated", "symbols", len(cfg.Static.Symbols))
	}

	return feedobs.Wrap(f)
}

// initializeJournal opens the position journal
func initializeJournal(ctx context.Context, cfg *store.Config) (interfaces.Journal, error) {
	j, err := journal.Open(ctx, cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return j, nil
}

// initializeScreener builds the screening pipeline with observability
func initializeScreener(f interfaces.Feed, j interfaces.Journal) interfaces.Screener {
	return screenerobs.Wrap(screener.New(f, j))
}
