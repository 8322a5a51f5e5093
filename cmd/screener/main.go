package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-screener-bot/internal/logger"
	"stock-screener-bot/internal/store"
	"stock-screener-bot/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := store.LoadConfig(configPath())
	must(err)

	compressOldAlerts(ctx)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	f := initializeFeed(ctx, cfg)
	j, err := initializeJournal(ctx, cfg)
	must(err)
	scr := initializeScreener(f, j)

	// Strong-buy symbols already alerted on this session. Owned here, not
	// by the screener, so a restart deliberately re-alerts.
	seen := map[string]bool{}

	tick := time.NewTicker(time.Duration(cfg.PollSeconds) * time.Second)
	defer tick.Stop()

	logger.Info(ctx, "Screener started", "market", cfg.Market, "data_source", cfg.DataSource, "poll_seconds", cfg.PollSeconds)

	runPass := func() {
		result, err := scr.Step(ctx, cfg.Market, seen)
		if err != nil {
			logger.ErrorWithErr(ctx, "Screening pass error", err, "market", cfg.Market)
			return
		}
		b, _ := json.Marshal(result)
		fmt.Println(string(b))
	}

	runPass()
	for {
		select {
		case <-tick.C:
			runPass()
		case <-sigc:
			logger.Info(ctx, "Shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = trace.Shutdown(shutdownCtx)
			shutdownCancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func configPath() string {
	if v := os.Getenv("SCREENER_CONFIG"); v != "" {
		return v
	}
	return "config.yaml"
}
