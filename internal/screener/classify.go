package screener

import (
	"math"

	"stock-screener-bot/internal/types"
)

// Rule thresholds. Strict inequalities throughout: a change of exactly 2%
// or a relative volume of exactly 1.5 does not qualify for the strong tier.
const (
	strongChangePct = 2.0
	strongRelVolume = 1.5
	strongMaxPE     = 30.0

	potentialChangePct = 1.0
	potentialRelVolume = 1.2
	potentialMaxPE     = 50.0

	strongTakeProfitMult = 1.05
	strongStopLossMult   = 0.975

	potentialTakeProfitMult = 1.03
	potentialStopLossMult   = 0.985
)

var tierLabels = map[types.Tier]string{
	types.TierStrongBuy:    "Strong Buy",
	types.TierPotentialBuy: "Potential Buy",
	types.TierWatch:        "Watch",
	types.TierNone:         "No Signal",
}

// Classify maps one snapshot to exactly one signal. Pure and deterministic:
// same snapshot in, bit-identical signal out. The rule chain is evaluated
// top to bottom and the first match wins; an unknown PE ratio always fails
// the "< N" tests, so the buy tiers are unreachable without a known PE.
func Classify(s types.Snapshot) types.Signal {
	sig := types.Signal{Symbol: s.Symbol, Company: s.Company}

	switch {
	case gt(s.ChangePct, strongChangePct) &&
		gt(s.RelativeVolume, strongRelVolume) &&
		lt(s.PERatio, strongMaxPE):
		sig.Tier = types.TierStrongBuy
		attachLevels(&sig, s.Price, strongTakeProfitMult, strongStopLossMult)

	case (gt(s.ChangePct, potentialChangePct) || gt(s.RelativeVolume, potentialRelVolume)) &&
		lt(s.PERatio, potentialMaxPE):
		sig.Tier = types.TierPotentialBuy
		attachLevels(&sig, s.Price, potentialTakeProfitMult, potentialStopLossMult)

	case s.ChangePct == nil || *s.ChangePct >= 0:
		sig.Tier = types.TierWatch

	default:
		sig.Tier = types.TierNone
	}

	sig.Label = tierLabels[sig.Tier]
	return sig
}

// attachLevels derives entry, target and stop from the live price. Each
// level is rounded once, after its multiplication, never on intermediates.
// RiskReward stays nil when the stop spread is not positive.
func attachLevels(sig *types.Signal, price, tpMult, slMult float64) {
	entry := round2(price)
	tp := round2(price * tpMult)
	sl := round2(price * slMult)

	sig.Entry = &entry
	sig.TakeProfit = &tp
	sig.StopLoss = &sl

	reward := tp - entry
	risk := entry - sl
	if reward > 0 && risk > 0 {
		rr := round2(reward / risk)
		sig.RiskReward = &rr
	}
}

// gt reports v > threshold, with nil meaning unknown and failing the test.
func gt(v *float64, threshold float64) bool {
	return v != nil && *v > threshold
}

// lt reports v < threshold, with nil meaning unknown and failing the test.
func lt(v *float64, threshold float64) bool {
	return v != nil && *v < threshold
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
