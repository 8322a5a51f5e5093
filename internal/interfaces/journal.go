package interfaces

import "stock-screener-bot/internal/types"

// Journal is the durable store of open positions. Mutating operations are
// atomic: they either persist completely or leave the store untouched.
type Journal interface {
	Append(p types.Position) error
	List() []types.Position
	Overwrite(ps []types.Position) error
}
