package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stock-screener-bot/internal/api"
	"stock-screener-bot/internal/logger"
	"stock-screener-bot/internal/types"
)

// APIFeed pulls quote rows from a JSON endpoint returning an array of
// instruments. Numeric fields arrive as JSON numbers or display strings;
// both are passed through as text for the normalizer to clean.
type APIFeed struct {
	client *api.Client
	path   string
}

func NewAPIFeed(baseURL, path string, timeout time.Duration) *APIFeed {
	opts := []api.ClientOption{
		api.WithBaseURL(baseURL),
		api.WithTimeout(timeout),
	}
	for key, value := range api.BrowserHeaders() {
		opts = append(opts, api.WithHeader(key, value))
	}
	return &APIFeed{client: api.NewClient(opts...), path: path}
}

type apiRow struct {
	Symbol         string     `json:"symbol"`
	Company        string     `json:"company"`
	Price          textNumber `json:"price"`
	ChangePct      textNumber `json:"change_pct"`
	RelativeVolume textNumber `json:"relative_volume"`
	PERatio        textNumber `json:"pe_ratio"`
	RSI            textNumber `json:"rsi"`
}

// textNumber accepts a JSON number or string and keeps its text form.
type textNumber string

func (t *textNumber) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = textNumber(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = textNumber(s)
	return nil
}

func (f *APIFeed) FetchBatch(ctx context.Context, market string) ([]types.RawRow, error) {
	path := strings.ReplaceAll(f.path, "{market}", strings.ToLower(market))

	resp, err := f.client.GET(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("quote API: %w", err)
	}

	var wire []apiRow
	if err := resp.ParseJSON(&wire); err != nil {
		return nil, fmt.Errorf("quote API: %w", err)
	}

	rows := make([]types.RawRow, 0, len(wire))
	for _, w := range wire {
		fields := map[string]string{}
		putNumber(fields, "Price", w.Price)
		putNumber(fields, "Change", w.ChangePct)
		putNumber(fields, "RelativeVolume", w.RelativeVolume)
		putNumber(fields, "PE", w.PERatio)
		putNumber(fields, "RSI", w.RSI)
		rows = append(rows, types.RawRow{
			Symbol:  w.Symbol,
			Company: w.Company,
			Fields:  fields,
		})
	}

	logger.Debug(ctx, "Quote API batch fetched", "market", market, "rows", len(rows))
	return rows, nil
}

func putNumber(fields map[string]string, key string, n textNumber) {
	if n == "" {
		return
	}
	fields[key] = string(n)
}
