package screener

import (
	"context"
	"errors"
	"time"

	"stock-screener-bot/internal/alertlog"
	"stock-screener-bot/internal/evaluate"
	"stock-screener-bot/internal/interfaces"
	"stock-screener-bot/internal/logger"
	"stock-screener-bot/internal/normalize"
	"stock-screener-bot/internal/types"
)

// Screener runs the full pass: fetch -> normalize -> classify -> evaluate.
// It holds no per-pass state of its own; the previously-alerted strong-buy
// set is owned by the caller and threaded through Step.
type Screener struct {
	feed    interfaces.Feed
	journal interfaces.Journal
}

var _ interfaces.Screener = (*Screener)(nil)

func New(feed interfaces.Feed, journal interfaces.Journal) *Screener {
	return &Screener{feed: feed, journal: journal}
}

// Step screens one market against the journal. A feed failure is not an
// error at this boundary: the pass continues with an empty batch, signals
// come back empty and every journaled position reads UNAVAILABLE.
func (s *Screener) Step(ctx context.Context, market string, seen map[string]bool) (*types.ScreenResult, error) {
	if s.feed == nil || s.journal == nil {
		return nil, errors.New("screener: feed and journal must be configured")
	}

	rows, err := s.feed.FetchBatch(ctx, market)
	if err != nil {
		logger.Warn(ctx, "Feed fetch failed, continuing with empty batch", "market", market, "error", err)
		rows = nil
	}

	snaps, stats := normalize.Batch(rows)
	if stats.Dropped > 0 {
		logger.Warn(ctx, "Dropped unusable rows", "market", market, "dropped", stats.Dropped, "kept", stats.Kept)
	}

	signals := make([]types.Signal, 0, len(snaps))
	bySymbol := make(map[string]types.Snapshot, len(snaps))
	var newStrong []string

	for _, snap := range snaps {
		sig := Classify(snap)
		signals = append(signals, sig)
		bySymbol[snap.Symbol] = snap

		if sig.Tier == types.TierStrongBuy && seen != nil && !seen[snap.Symbol] {
			seen[snap.Symbol] = true
			newStrong = append(newStrong, snap.Symbol)

			if err := alertlog.AppendSignal(alertlog.SignalEntry{
				Symbol:     sig.Symbol,
				Tier:       sig.Tier,
				Price:      snap.Price,
				Entry:      sig.Entry,
				TakeProfit: sig.TakeProfit,
				StopLoss:   sig.StopLoss,
				RiskReward: sig.RiskReward,
			}); err != nil {
				logger.Warn(ctx, "Failed to append signal alert", "symbol", sig.Symbol, "error", err)
			}
		}
	}

	assessments := evaluate.AssessAll(s.journal.List(), bySymbol)
	for _, a := range assessments {
		if a.Recommendation == types.RecHold {
			continue
		}
		if err := alertlog.AppendAssessment(alertlog.AssessmentEntry{
			Symbol:         a.Symbol,
			Recommendation: a.Recommendation,
			CurrentPrice:   a.CurrentPrice,
			PnLPct:         a.PnLPct,
		}); err != nil {
			logger.Warn(ctx, "Failed to append assessment alert", "symbol", a.Symbol, "error", err)
		}
	}

	return &types.ScreenResult{
		Market:        market,
		Time:          time.Now().Unix(),
		Signals:       signals,
		Assessments:   assessments,
		NewStrongBuys: newStrong,
		Dropped:       stats.Dropped,
	}, nil
}
