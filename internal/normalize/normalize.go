package normalize

import (
	"math"
	"strconv"
	"strings"

	"stock-screener-bot/internal/types"
)

// Provider column identifiers, in lookup order. The screener-style tables
// qualify columns with a time resolution suffix; bare names cover the
// simpler providers.
var (
	priceKeys  = []string{"Price"}
	changeKeys = []string{"Change|TimeResolution1D", "Change"}
	relVolKeys = []string{"RelativeVolume|TimeResolution1D", "RelativeVolume"}
	peKeys     = []string{"PriceToEarnings", "PE"}
	rsiKeys    = []string{"RelativeStrengthIndex|TimeResolution1D", "RSI"}
)

// Stats counts what happened to a batch during normalization. Dropped rows
// are an expected condition, reported for logging rather than as errors.
type Stats struct {
	Total   int
	Kept    int
	Dropped int
}

// Batch converts raw provider rows into validated snapshots. Rows without a
// symbol or a positive price are dropped; optional metrics that fail to
// parse become nil. Duplicate symbols within one batch resolve last-wins
// while preserving the position of the first occurrence.
func Batch(rows []types.RawRow) ([]types.Snapshot, Stats) {
	stats := Stats{Total: len(rows)}
	out := make([]types.Snapshot, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		snap, ok := Row(row)
		if !ok {
			stats.Dropped++
			continue
		}
		if i, dup := index[snap.Symbol]; dup {
			out[i] = snap
			continue
		}
		index[snap.Symbol] = len(out)
		out = append(out, snap)
	}

	stats.Kept = len(out)
	return out, stats
}

// Row converts a single raw row. ok is false when the row is unusable
// (missing symbol, missing or non-positive price).
func Row(row types.RawRow) (types.Snapshot, bool) {
	symbol := strings.TrimSpace(row.Symbol)
	if symbol == "" {
		return types.Snapshot{}, false
	}

	price, ok := parseRequired(lookup(row.Fields, priceKeys))
	if !ok || price <= 0 {
		return types.Snapshot{}, false
	}

	snap := types.Snapshot{
		Symbol:         symbol,
		Company:        strings.TrimSpace(row.Company),
		Price:          price,
		ChangePct:      parseOptional(lookup(row.Fields, changeKeys)),
		RelativeVolume: parseOptional(lookup(row.Fields, relVolKeys)),
		PERatio:        parseOptional(lookup(row.Fields, peKeys)),
		RSI:            parseOptional(lookup(row.Fields, rsiKeys)),
	}

	// Out-of-range metrics are demoted to unknown, not clamped.
	if snap.RelativeVolume != nil && *snap.RelativeVolume < 0 {
		snap.RelativeVolume = nil
	}
	if snap.RSI != nil && (*snap.RSI < 0 || *snap.RSI > 100) {
		snap.RSI = nil
	}

	return snap, true
}

func lookup(fields map[string]string, keys []string) string {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			return v
		}
	}
	return ""
}

func parseRequired(text string) (float64, bool) {
	v := parseNumber(text)
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func parseOptional(text string) *float64 {
	v := parseNumber(text)
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// parseNumber cleans the display text quote tables carry: percent signs,
// thousands separators, a trailing currency code, Unicode minus. NaN marks
// an unparsable or empty value.
func parseNumber(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" || s == "—" || s == "–" || s == "-" {
		return math.NaN()
	}
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "−", "-") // Unicode minus
	s = strings.TrimSpace(s)

	// Trailing currency code, e.g. "91.50 SAR".
	if i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+'
	}); i > 0 {
		s = strings.TrimSpace(s[:i])
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
