package evaluate

import "stock-screener-bot/internal/types"

// Recommendation thresholds. Rule order matters and is fixed: the capital
// preservation stop fires before any momentum rule, whatever the RSI says.
const (
	stopLossPnLPct = -5.0
	overboughtRSI  = 75.0
	elevatedRSI    = 65.0
)

// Assess combines one open position with the latest snapshot batch, keyed
// by symbol. A symbol missing from the batch yields UNAVAILABLE rather
// than an error; dashboards keep rendering with partial data.
func Assess(p types.Position, bySymbol map[string]types.Snapshot) types.PositionAssessment {
	snap, ok := bySymbol[p.Symbol]
	if !ok {
		return types.PositionAssessment{
			Symbol:         p.Symbol,
			Recommendation: types.RecUnavailable,
		}
	}

	current := snap.Price
	pnlPct := (current - p.BuyPrice) / p.BuyPrice * 100

	return types.PositionAssessment{
		Symbol:         p.Symbol,
		CurrentPrice:   &current,
		PnLPct:         &pnlPct,
		Recommendation: recommend(pnlPct, snap.RSI),
	}
}

// AssessAll evaluates every journaled position against the latest batch,
// preserving journal order.
func AssessAll(positions []types.Position, bySymbol map[string]types.Snapshot) []types.PositionAssessment {
	if len(positions) == 0 {
		return nil
	}
	out := make([]types.PositionAssessment, 0, len(positions))
	for _, p := range positions {
		out = append(out, Assess(p, bySymbol))
	}
	return out
}

// recommend walks the decision table in priority order, first match wins.
func recommend(pnlPct float64, rsi *float64) types.Recommendation {
	switch {
	case pnlPct <= stopLossPnLPct:
		return types.RecStopLoss
	case rsi != nil && *rsi > overboughtRSI && pnlPct > 0:
		return types.RecTakeProfit
	case rsi != nil && *rsi >= elevatedRSI && *rsi <= overboughtRSI:
		return types.RecPartialTakeProfit
	default:
		return types.RecHold
	}
}
