package alertlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"stock-screener-bot/internal/types"
)

var mu sync.Mutex

// Riyadh time; the screened market trades on AST.
var marketZone = time.FixedZone("AST", 10800)

// SignalEntry is one alert line for a newly classified instrument.
type SignalEntry struct {
	Time       string
	Symbol     string
	Tier       types.Tier
	Price      float64
	Entry      *float64 `json:",omitempty"`
	TakeProfit *float64 `json:",omitempty"`
	StopLoss   *float64 `json:",omitempty"`
	RiskReward *float64 `json:",omitempty"`
}

// AssessmentEntry is one line for a journaled position's latest verdict.
type AssessmentEntry struct {
	Time           string
	Symbol         string
	Recommendation types.Recommendation
	CurrentPrice   *float64 `json:",omitempty"`
	PnLPct         *float64 `json:",omitempty"`
}

func logDir() string {
	if v := os.Getenv("SCREENER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func signalsFilepath(t time.Time) string {
	d := t.In(marketZone).Format("2006-01-02")
	return filepath.Join(logDir(), "signals", d+".txt")
}

func assessmentsFilepath(t time.Time) string {
	d := t.In(marketZone).Format("2006-01-02")
	return filepath.Join(logDir(), "positions", d+".txt")
}

// AppendSignal records a signal alert in today's file.
func AppendSignal(e SignalEntry) error {
	now := time.Now().In(marketZone)
	e.Time = now.Format("2006-01-02 15:04:05")
	return appendLine(signalsFilepath(now), e)
}

// AppendAssessment records a position assessment in today's file.
func AppendAssessment(e AssessmentEntry) error {
	now := time.Now().In(marketZone)
	e.Time = now.Format("2006-01-02 15:04:05")
	return appendLine(assessmentsFilepath(now), e)
}

func appendLine(path string, v any) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips alert files older than retentionDays and removes the
// originals. A non-positive retention disables compression.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	return filepath.WalkDir(logDir(), func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".txt" {
			return nil
		}
		info, err := os.Stat(p)
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, err := os.Stat(gz); err == nil {
			// Compressed copy already there from an earlier run.
			return os.Remove(p)
		}

		in, err := os.Open(p)
		if err != nil {
			return nil
		}
		defer in.Close()

		out, err := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil
		}
		gw := gzip.NewWriter(out)
		if _, err := io.Copy(gw, in); err != nil {
			gw.Close()
			out.Close()
			return nil
		}
		if err := gw.Close(); err != nil {
			out.Close()
			return nil
		}
		if err := out.Close(); err != nil {
			return nil
		}
		return os.Remove(p)
	})
}
