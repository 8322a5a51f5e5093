package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gocarina/gocsv"

	"stock-screener-bot/internal/logger"
	"stock-screener-bot/internal/types"
)

const dateLayout = "2006-01-02"

// ValidationError reports bad user input to Append/Overwrite. It is
// surfaced to the caller and never silently coerced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid position: %s %s", e.Field, e.Reason)
}

// row is the persisted shape of one position. Column names are part of the
// on-disk contract; reloading must reproduce the in-memory sequence exactly.
type row struct {
	Symbol   string  `csv:"Symbol"`
	BuyPrice float64 `csv:"Buy Price"`
	Quantity int     `csv:"Quantity"`
	Date     string  `csv:"Date"`
}

// FileJournal is a durable, append-oriented store of open positions backed
// by a single UTF-8 CSV file with a mandatory header row. All mutations are
// serialized and persisted by writing a fresh file and renaming it over the
// old one, so a crash mid-write leaves the previous content intact.
type FileJournal struct {
	mu        sync.Mutex
	path      string
	positions []types.Position
}

// Open loads the journal at path. A missing file starts an empty journal;
// an unreadable or corrupt file also starts empty, but that is logged as a
// data-loss event rather than swallowed.
func Open(ctx context.Context, path string) (*FileJournal, error) {
	if path == "" {
		return nil, fmt.Errorf("journal path cannot be empty")
	}
	j := &FileJournal{path: path}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return j, nil
	}
	if err != nil {
		logger.Warn(ctx, "Journal unreadable, starting empty", "path", path, "error", err)
		return j, nil
	}
	defer f.Close()

	var rows []*row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		logger.Warn(ctx, "Journal corrupt, starting empty", "path", path, "error", err)
		return j, nil
	}

	for _, r := range rows {
		p, err := r.toPosition()
		if err != nil {
			logger.Warn(ctx, "Skipping bad journal row", "path", path, "symbol", r.Symbol, "error", err)
			continue
		}
		j.positions = append(j.positions, p)
	}

	logger.Info(ctx, "Journal loaded", "path", path, "positions", len(j.positions))
	return j, nil
}

// Append validates p, then persists it atomically. On any persistence
// failure the in-memory and on-disk state are left as they were.
func (j *FileJournal) Append(p types.Position) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.OpenedOn.IsZero() {
		p.OpenedOn = time.Now()
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	next := append(append([]types.Position(nil), j.positions...), p)
	if err := j.persist(next); err != nil {
		return err
	}
	j.positions = next
	return nil
}

// List returns all positions in insertion order. The returned slice is a
// copy; callers cannot mutate the store through it.
func (j *FileJournal) List() []types.Position {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]types.Position(nil), j.positions...)
}

// Overwrite replaces the entire journal content, used for close/delete.
// Every record is validated before anything is written.
func (j *FileJournal) Overwrite(ps []types.Position) error {
	for i, p := range ps {
		if err := validate(p); err != nil {
			return fmt.Errorf("position %d: %w", i, err)
		}
	}

	next := append([]types.Position(nil), ps...)

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.persist(next); err != nil {
		return err
	}
	j.positions = next
	return nil
}

// persist writes the full position set to a temp file in the journal's
// directory and renames it into place. Callers hold the mutex.
func (j *FileJournal) persist(ps []types.Position) error {
	rows := make([]*row, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, &row{
			Symbol:   p.Symbol,
			BuyPrice: p.BuyPrice,
			Quantity: p.Quantity,
			Date:     p.OpenedOn.Format(dateLayout),
		})
	}

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".journal-*.csv")
	if err != nil {
		return fmt.Errorf("create temp journal: %w", err)
	}
	tmpPath := tmp.Name()

	if err := gocsv.MarshalFile(&rows, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write journal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp journal: %w", err)
	}
	if err := os.Rename(tmpPath, j.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace journal: %w", err)
	}
	return nil
}

func validate(p types.Position) error {
	if p.Symbol == "" {
		return &ValidationError{Field: "symbol", Reason: "cannot be empty"}
	}
	if p.BuyPrice <= 0 {
		return &ValidationError{Field: "buy_price", Reason: "must be > 0"}
	}
	if p.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be >= 1"}
	}
	return nil
}

func (r *row) toPosition() (types.Position, error) {
	opened, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return types.Position{}, fmt.Errorf("bad date %q: %w", r.Date, err)
	}
	p := types.Position{
		Symbol:   r.Symbol,
		BuyPrice: r.BuyPrice,
		Quantity: r.Quantity,
		OpenedOn: opened,
	}
	if err := validate(p); err != nil {
		return types.Position{}, err
	}
	return p, nil
}
