package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleTable = `<html><body><table>
<tr class="row-RdUXZpkv">
  <td><a class="tickerName-GrtoTeat">2222</a><a class="tickerDescription-GrtoTeat">Saudi Aramco</a></td>
  <td data-field="Price">27.85 SAR</td>
  <td data-field="Change|TimeResolution1D">+2.35%</td>
  <td data-field="RelativeVolume|TimeResolution1D">1.72</td>
  <td data-field="PriceToEarnings">16.1</td>
</tr>
<tr class="row-RdUXZpkv">
  <td><a class="tickerName-GrtoTeat">1120</a><a class="tickerDescription-GrtoTeat">Al Rajhi Bank</a></td>
  <td data-field="Price">88.20 SAR</td>
  <td data-field="Change|TimeResolution1D">&#8722;0.90%</td>
</tr>
<tr class="row-RdUXZpkv">
  <td>header repeat without symbol anchor</td>
</tr>
</table></body></html>`

func TestFetchBatchFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.html")
	if err := os.WriteFile(path, []byte(sampleTable), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	f := NewHTMLFeed(path, 5*time.Second)
	rows, err := f.FetchBatch(context.Background(), "TADAWUL")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Symbol != "2222" || first.Company != "Saudi Aramco" {
		t.Errorf("unexpected first row identity: %q / %q", first.Symbol, first.Company)
	}
	if first.Fields["Price"] != "27.85 SAR" {
		t.Errorf("expected raw price text, got %q", first.Fields["Price"])
	}
	if first.Fields["Change|TimeResolution1D"] != "+2.35%" {
		t.Errorf("expected raw change text, got %q", first.Fields["Change|TimeResolution1D"])
	}

	second := rows[1]
	if second.Symbol != "1120" {
		t.Errorf("expected symbol 1120, got %q", second.Symbol)
	}
	if second.Fields["Change|TimeResolution1D"] != "−0.90%" {
		t.Errorf("expected unicode minus preserved, got %q", second.Fields["Change|TimeResolution1D"])
	}
	if _, ok := second.Fields["PriceToEarnings"]; ok {
		t.Error("absent cell must not produce a field")
	}
}

func TestFetchBatchMissingFile(t *testing.T) {
	f := NewHTMLFeed(filepath.Join(t.TempDir(), "nope.html"), time.Second)
	if _, err := f.FetchBatch(context.Background(), "TADAWUL"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMarketPlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tadawul.html")
	if err := os.WriteFile(path, []byte(sampleTable), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	f := NewHTMLFeed(filepath.Join(dir, "{market}.html"), time.Second)
	rows, err := f.FetchBatch(context.Background(), "TADAWUL")
	if err != nil {
		t.Fatalf("fetch with placeholder: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(rows))
	}
}
