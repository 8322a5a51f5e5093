package alertlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stock-screener-bot/internal/types"
)

func TestAppendSignalWritesJSONLine(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SCREENER_LOG_DIR", dir)

	entry := 28.50
	if err := AppendSignal(SignalEntry{
		Symbol: "2222",
		Tier:   types.TierStrongBuy,
		Price:  28.50,
		Entry:  &entry,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	day := time.Now().In(marketZone).Format("2006-01-02")
	f, err := os.Open(filepath.Join(dir, "signals", day+".txt"))
	if err != nil {
		t.Fatalf("open alert file: %v", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		t.Fatal("expected one line")
	}
	var got SignalEntry
	if err := json.Unmarshal(sc.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal line: %v", err)
	}
	if got.Symbol != "2222" || got.Tier != types.TierStrongBuy || got.Time == "" {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestCompressOlderGzipsStaleFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SCREENER_LOG_DIR", dir)

	stale := filepath.Join(dir, "signals", "2026-01-01.txt")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(stale, []byte(`{"Symbol":"X"}`+"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	old := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if err := CompressOlder(7); err != nil {
		t.Fatalf("compress: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file should have been removed")
	}
	if _, err := os.Stat(stale + ".gz"); err != nil {
		t.Errorf("expected gzip copy: %v", err)
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	t.Setenv("SCREENER_LOG_DIR", t.TempDir())
	if err := CompressOlder(0); err != nil {
		t.Errorf("retention 0 must be a no-op, got %v", err)
	}
}
