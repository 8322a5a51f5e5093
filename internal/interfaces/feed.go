package interfaces

import (
	"context"

	"stock-screener-bot/internal/types"
)

// Feed supplies raw quote rows for one market. Implementations must fail
// soft: transient provider trouble is reported as an error here, but callers
// downgrade it to an empty batch rather than aborting the pass.
type Feed interface {
	FetchBatch(ctx context.Context, market string) ([]types.RawRow, error)
}
