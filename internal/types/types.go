package types

import "time"

// RawRow is one text row as delivered by a quote source, before any
// validation. Fields is keyed by the provider's column identifiers.
type RawRow struct {
	Symbol  string
	Company string
	Fields  map[string]string
}

// Snapshot is one validated instrument at one point in time.
// Optional metrics are nil when the provider did not supply a usable value.
type Snapshot struct {
	Symbol         string   `json:"symbol"`
	Company        string   `json:"company,omitempty"`
	Price          float64  `json:"price"`
	ChangePct      *float64 `json:"change_pct,omitempty"`
	RelativeVolume *float64 `json:"relative_volume,omitempty"`
	PERatio        *float64 `json:"pe_ratio,omitempty"`
	RSI            *float64 `json:"rsi,omitempty"`
}

type Tier string

const (
	TierStrongBuy    Tier = "STRONG_BUY"
	TierPotentialBuy Tier = "POTENTIAL_BUY"
	TierWatch        Tier = "WATCH"
	TierNone         Tier = "NONE"
)

// Signal is the classification result for one snapshot. Entry/TakeProfit/
// StopLoss are set only for the buy tiers; RiskReward only when the stop
// spread is positive. Label is a display hint and never an input to any rule.
type Signal struct {
	Symbol     string   `json:"symbol"`
	Company    string   `json:"company,omitempty"`
	Tier       Tier     `json:"tier"`
	Label      string   `json:"label"`
	Entry      *float64 `json:"entry,omitempty"`
	TakeProfit *float64 `json:"take_profit,omitempty"`
	StopLoss   *float64 `json:"stop_loss,omitempty"`
	RiskReward *float64 `json:"risk_reward,omitempty"`
}

// Position is a user-recorded open trade. Closing a position is done by
// rewriting the journal without it, never by mutating the record.
type Position struct {
	Symbol   string    `json:"symbol"`
	BuyPrice float64   `json:"buy_price"`
	Quantity int       `json:"quantity"`
	OpenedOn time.Time `json:"opened_on"`
}

type Recommendation string

const (
	RecHold              Recommendation = "HOLD"
	RecPartialTakeProfit Recommendation = "PARTIAL_TAKE_PROFIT"
	RecTakeProfit        Recommendation = "TAKE_PROFIT"
	RecStopLoss          Recommendation = "STOP_LOSS"
	RecUnavailable       Recommendation = "UNAVAILABLE"
)

// PositionAssessment is derived from a position and the latest snapshot
// batch. It is never persisted.
type PositionAssessment struct {
	Symbol         string         `json:"symbol"`
	CurrentPrice   *float64       `json:"current_price,omitempty"`
	PnLPct         *float64       `json:"pnl_pct,omitempty"`
	Recommendation Recommendation `json:"recommendation"`
}

// ScreenResult is the output of one screening pass over one market.
type ScreenResult struct {
	Market        string               `json:"market"`
	Time          int64                `json:"time"`
	Signals       []Signal             `json:"signals"`
	Assessments   []PositionAssessment `json:"assessments,omitempty"`
	NewStrongBuys []string             `json:"new_strong_buys,omitempty"`
	Dropped       int                  `json:"dropped,omitempty"`
}

// Float returns a pointer to v. Convenience for building optional metrics.
func Float(v float64) *float64 { return &v }
