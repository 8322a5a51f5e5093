package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "data_source: STATIC\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Market != "TADAWUL" {
		t.Errorf("expected default market TADAWUL, got %q", cfg.Market)
	}
	if cfg.PollSeconds != 60 {
		t.Errorf("expected default poll_seconds 60, got %d", cfg.PollSeconds)
	}
	if cfg.Journal.Path != "journal.csv" {
		t.Errorf("expected default journal path, got %q", cfg.Journal.Path)
	}
	if len(cfg.Static.Symbols) == 0 {
		t.Error("expected default static symbols")
	}
}

func TestLoadConfigFull(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
data_source: HTML
market: TADAWUL
poll_seconds: 30
feed:
  url: https://example.com/screener/{market}
  timeout_seconds: 10
journal:
  path: data/positions.csv
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource != "HTML" || cfg.PollSeconds != 30 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Feed.URL != "https://example.com/screener/{market}" || cfg.Feed.TimeoutSeconds != 10 {
		t.Errorf("unexpected feed config: %+v", cfg.Feed)
	}
	if cfg.Journal.Path != "data/positions.csv" {
		t.Errorf("unexpected journal path: %q", cfg.Journal.Path)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad data source", "data_source: CARRIER_PIGEON\n"},
		{"html without url", "data_source: HTML\n"},
		{"api without url", "data_source: API\n"},
		{"negative poll", "data_source: STATIC\npoll_seconds: -5\n"},
	}
	for _, tc := range cases {
		if _, err := LoadConfig(writeConfig(t, tc.content)); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
