package screenerobs

import (
	"context"
	"time"

	"stock-screener-bot/internal/interfaces"
	"stock-screener-bot/internal/logger"
	"stock-screener-bot/internal/trace"
	"stock-screener-bot/internal/types"
)

type observableScreener struct {
	screener interfaces.Screener
}

var _ interfaces.Screener = (*observableScreener)(nil)

func Wrap(s interfaces.Screener) interfaces.Screener {
	return &observableScreener{screener: s}
}

func (os *observableScreener) Step(ctx context.Context, market string, seen map[string]bool) (*types.ScreenResult, error) {
	ctx, span := trace.StartSpan(ctx, "screener.Step")
	defer span.End()

	start := time.Now()

	logger.Info(ctx, "Starting screening pass", "market", market)

	result, err := os.screener.Step(ctx, market, seen)
	if err != nil {
		logger.ErrorWithErr(ctx, "Screening pass failed", err,
			"market", market,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.Info(ctx, "Screening pass completed",
		"market", market,
		"signals", len(result.Signals),
		"assessments", len(result.Assessments),
		"new_strong_buys", len(result.NewStrongBuys),
		"dropped", result.Dropped,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
