package feedobs

import (
	"context"
	"time"

	"stock-screener-bot/internal/interfaces"
	"stock-screener-bot/internal/logger"
	"stock-screener-bot/internal/trace"
	"stock-screener-bot/internal/types"
)

type observableFeed struct {
	feed interfaces.Feed
}

var _ interfaces.Feed = (*observableFeed)(nil)

func Wrap(f interfaces.Feed) interfaces.Feed {
	return &observableFeed{feed: f}
}

func (of *observableFeed) FetchBatch(ctx context.Context, market string) ([]types.RawRow, error) {
	ctx, span := trace.StartSpan(ctx, "feed.FetchBatch")
	defer span.End()

	start := time.Now()

	rows, err := of.feed.FetchBatch(ctx, market)
	if err != nil {
		logger.ErrorWithErr(ctx, "Batch fetch failed", err,
			"market", market,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.Debug(ctx, "Batch fetched",
		"market", market,
		"rows", len(rows),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return rows, nil
}
