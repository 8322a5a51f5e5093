package feed

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"stock-screener-bot/internal/logger"
	"stock-screener-bot/internal/ta"
	"stock-screener-bot/internal/types"
)

// StaticFeed fabricates quote rows for dry runs. Each symbol gets a random
// walk seeded from the symbol and the current hour, so values are stable
// within an hour but drift between runs. Metrics are derived from the walk
// the way a real provider would report them (RSI from closes, relative
// volume against the trailing average).
type StaticFeed struct {
	symbols []string
}

func NewStaticFeed(symbols []string) *StaticFeed {
	return &StaticFeed{symbols: symbols}
}

func (f *StaticFeed) FetchBatch(ctx context.Context, market string) ([]types.RawRow, error) {
	hour := time.Now().Truncate(time.Hour).Unix()

	rows := make([]types.RawRow, 0, len(f.symbols))
	for _, sym := range f.symbols {
		rows = append(rows, syntheticRow(sym, hour))
	}

	logger.Debug(ctx, "Static batch generated", "market", market, "rows", len(rows))
	return rows, nil
}

func syntheticRow(symbol string, hour int64) types.RawRow {
	rng := rand.New(rand.NewSource(seed(symbol, hour)))

	base := 20 + rng.Float64()*180
	closes := make([]float64, 0, 30)
	volumes := make([]float64, 0, 30)
	price := base
	for i := 0; i < 30; i++ {
		price *= 1 + (rng.Float64()-0.5)*0.04
		closes = append(closes, price)
		volumes = append(volumes, 50_000+rng.Float64()*500_000)
	}
	// Occasional volume spike so the strong tier is reachable in dry runs.
	if rng.Float64() < 0.3 {
		volumes[len(volumes)-1] *= 2 + rng.Float64()*2
	}

	last := closes[len(closes)-1]
	prev := closes[len(closes)-2]
	changePct := (last - prev) / prev * 100

	fields := map[string]string{
		"Price":                   fmt.Sprintf("%.2f SAR", last),
		"Change|TimeResolution1D": fmt.Sprintf("%+.2f%%", changePct),
	}
	if rv := ta.RelativeVolume(volumes, 10); !math.IsNaN(rv) {
		fields["RelativeVolume|TimeResolution1D"] = fmt.Sprintf("%.2f", rv)
	}
	if rsi := ta.RSI(closes, 14); !math.IsNaN(rsi) {
		fields["RelativeStrengthIndex|TimeResolution1D"] = fmt.Sprintf("%.2f", rsi)
	}
	// A slice of the universe has no meaningful earnings; leave PE blank.
	if rng.Float64() < 0.8 {
		fields["PriceToEarnings"] = fmt.Sprintf("%.2f", 8+rng.Float64()*50)
	}

	return types.RawRow{
		Symbol:  symbol,
		Company: "Company " + symbol,
		Fields:  fields,
	}
}

func seed(symbol string, hour int64) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64()) ^ hour
}
