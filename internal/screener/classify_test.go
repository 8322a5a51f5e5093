package screener

import (
	"reflect"
	"testing"

	"stock-screener-bot/internal/types"
)

func f(v float64) *float64 { return &v }

func TestClassifyStrongBuyLevels(t *testing.T) {
	sig := Classify(types.Snapshot{
		Symbol:         "2222",
		Price:          100,
		ChangePct:      f(3),
		RelativeVolume: f(2),
		PERatio:        f(20),
	})

	if sig.Tier != types.TierStrongBuy {
		t.Fatalf("expected STRONG_BUY, got %s", sig.Tier)
	}
	if sig.Entry == nil || *sig.Entry != 100.00 {
		t.Errorf("expected entry 100.00, got %v", sig.Entry)
	}
	if sig.TakeProfit == nil || *sig.TakeProfit != 105.00 {
		t.Errorf("expected take profit 105.00, got %v", sig.TakeProfit)
	}
	if sig.StopLoss == nil || *sig.StopLoss != 97.50 {
		t.Errorf("expected stop loss 97.50, got %v", sig.StopLoss)
	}
	if sig.RiskReward == nil || *sig.RiskReward != 2.00 {
		t.Errorf("expected risk/reward 2.00, got %v", sig.RiskReward)
	}
}

func TestClassifyThresholdsAreStrict(t *testing.T) {
	// Change of exactly 2 must not reach the strong tier.
	sig := Classify(types.Snapshot{
		Symbol:         "1120",
		Price:          50,
		ChangePct:      f(2.0),
		RelativeVolume: f(2.0),
		PERatio:        f(25),
	})
	if sig.Tier != types.TierPotentialBuy {
		t.Errorf("change==2.0: expected POTENTIAL_BUY, got %s", sig.Tier)
	}

	// Relative volume of exactly 1.5 must not either.
	sig = Classify(types.Snapshot{
		Symbol:         "1120",
		Price:          50,
		ChangePct:      f(3.0),
		RelativeVolume: f(1.5),
		PERatio:        f(25),
	})
	if sig.Tier != types.TierPotentialBuy {
		t.Errorf("relvol==1.5: expected POTENTIAL_BUY, got %s", sig.Tier)
	}
}

func TestClassifyUnknownPEDisqualifiesBuyTiers(t *testing.T) {
	snaps := []types.Snapshot{
		{Symbol: "A", Price: 10, ChangePct: f(5), RelativeVolume: f(3)},
		{Symbol: "B", Price: 10, ChangePct: f(1.5), RelativeVolume: f(1.3)},
	}
	for _, s := range snaps {
		sig := Classify(s)
		if sig.Tier == types.TierStrongBuy || sig.Tier == types.TierPotentialBuy {
			t.Errorf("%s: nil PE reached buy tier %s", s.Symbol, sig.Tier)
		}
		if sig.Entry != nil || sig.TakeProfit != nil || sig.StopLoss != nil {
			t.Errorf("%s: price levels set outside buy tiers", s.Symbol)
		}
	}
}

func TestClassifyPotentialBuyByVolumeAlone(t *testing.T) {
	sig := Classify(types.Snapshot{
		Symbol:         "7010",
		Price:          33.33,
		ChangePct:      f(0.2),
		RelativeVolume: f(1.3),
		PERatio:        f(40),
	})
	if sig.Tier != types.TierPotentialBuy {
		t.Fatalf("expected POTENTIAL_BUY, got %s", sig.Tier)
	}
	if sig.Entry == nil || *sig.Entry != 33.33 {
		t.Errorf("expected entry 33.33, got %v", sig.Entry)
	}
	if sig.TakeProfit == nil || *sig.TakeProfit != 34.33 {
		t.Errorf("expected take profit 34.33, got %v", sig.TakeProfit)
	}
	if sig.StopLoss == nil || *sig.StopLoss != 32.83 {
		t.Errorf("expected stop loss 32.83, got %v", sig.StopLoss)
	}
}

func TestClassifyWatchAndNone(t *testing.T) {
	cases := []struct {
		name string
		snap types.Snapshot
		want types.Tier
	}{
		{"flat day", types.Snapshot{Symbol: "X", Price: 10, ChangePct: f(0)}, types.TierWatch},
		{"unknown change", types.Snapshot{Symbol: "X", Price: 10}, types.TierWatch},
		{"small gain no pe", types.Snapshot{Symbol: "X", Price: 10, ChangePct: f(1.5)}, types.TierWatch},
		{"down day", types.Snapshot{Symbol: "X", Price: 10, ChangePct: f(-0.1)}, types.TierNone},
	}
	for _, tc := range cases {
		if got := Classify(tc.snap); got.Tier != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got.Tier)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	snap := types.Snapshot{
		Symbol:         "2010",
		Company:        "SABIC",
		Price:          81.47,
		ChangePct:      f(2.31),
		RelativeVolume: f(1.9),
		PERatio:        f(17.2),
		RSI:            f(61),
	}
	first := Classify(snap)
	second := Classify(snap)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("classify is not idempotent: %+v vs %+v", first, second)
	}
}

func TestClassifyRiskRewardNeverNonPositive(t *testing.T) {
	prices := []float64{0.01, 0.03, 1, 12.5, 99.99, 2500}
	for _, p := range prices {
		for _, snap := range []types.Snapshot{
			{Symbol: "S", Price: p, ChangePct: f(5), RelativeVolume: f(2), PERatio: f(10)},
			{Symbol: "P", Price: p, ChangePct: f(1.5), PERatio: f(10)},
		} {
			sig := Classify(snap)
			if sig.RiskReward != nil && *sig.RiskReward <= 0 {
				t.Errorf("price %v tier %s: non-positive risk/reward %v", p, sig.Tier, *sig.RiskReward)
			}
		}
	}
}

func TestClassifyLabelIsPresentationOnly(t *testing.T) {
	sig := Classify(types.Snapshot{Symbol: "X", Price: 10, ChangePct: f(-3)})
	if sig.Label != "No Signal" {
		t.Errorf("expected label 'No Signal', got %q", sig.Label)
	}
}
