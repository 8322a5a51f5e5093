package interfaces

import (
	"context"

	"stock-screener-bot/internal/types"
)

// Screener runs one synchronous screening pass over a market. seen is the
// caller-owned set of strong-buy symbols already alerted on; Step adds the
// symbols it reports as new.
type Screener interface {
	Step(ctx context.Context, market string, seen map[string]bool) (*types.ScreenResult, error)
}
