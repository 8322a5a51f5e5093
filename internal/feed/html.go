package feed

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"stock-screener-bot/internal/logger"
	"stock-screener-bot/internal/types"
)

// Selectors for the screener table markup. The provider renders one <tr>
// per instrument with the symbol and company as anchors and every metric
// in a data-field-tagged <td>.
const (
	rowSelector     = "tr.row-RdUXZpkv"
	symbolSelector  = "a.tickerName-GrtoTeat"
	companySelector = "a.tickerDescription-GrtoTeat"
)

// HTMLFeed scrapes a screener-style quote table. Source may be an http(s)
// URL (optionally containing a {market} placeholder) or a local file path,
// which covers the saved-page workflow.
type HTMLFeed struct {
	source  string
	timeout time.Duration
}

func NewHTMLFeed(source string, timeout time.Duration) *HTMLFeed {
	return &HTMLFeed{source: source, timeout: timeout}
}

// FetchBatch fetches and parses the quote table for market. Any network or
// parse failure comes back as an error; callers treat it as an empty batch.
func (f *HTMLFeed) FetchBatch(ctx context.Context, market string) ([]types.RawRow, error) {
	target := strings.ReplaceAll(f.source, "{market}", strings.ToLower(market))

	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return f.fetchFile(ctx, target)
	}
	return f.fetchRemote(ctx, target)
}

func (f *HTMLFeed) fetchFile(ctx context.Context, path string) ([]types.RawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quote table %s: %w", path, err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("parse quote table %s: %w", path, err)
	}

	rows := []types.RawRow{}
	doc.Find(rowSelector).Each(func(_ int, sel *goquery.Selection) {
		if row, ok := parseRow(sel); ok {
			rows = append(rows, row)
		}
	})

	logger.Debug(ctx, "Quote table parsed", "path", path, "rows", len(rows))
	return rows, nil
}

func (f *HTMLFeed) fetchRemote(ctx context.Context, target string) ([]types.RawRow, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(target)),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	rows := []types.RawRow{}
	c.OnHTML(rowSelector, func(e *colly.HTMLElement) {
		if row, ok := parseRow(e.DOM); ok {
			rows = append(rows, row)
		}
	})

	var fetchErr error
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(target); err != nil {
		return nil, fmt.Errorf("visit %s: %w", target, err)
	}
	c.Wait()
	if fetchErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, fetchErr)
	}

	logger.Debug(ctx, "Quote table scraped", "url", target, "rows", len(rows))
	return rows, nil
}

// parseRow extracts one raw row from a table <tr>. Rows without a symbol
// anchor are not instrument rows and are skipped here; numeric validation
// belongs to the normalizer.
func parseRow(sel *goquery.Selection) (types.RawRow, bool) {
	symbol := strings.TrimSpace(sel.Find(symbolSelector).First().Text())
	if symbol == "" {
		return types.RawRow{}, false
	}

	row := types.RawRow{
		Symbol:  symbol,
		Company: strings.TrimSpace(sel.Find(companySelector).First().Text()),
		Fields:  map[string]string{},
	}
	sel.Find("td").Each(func(_ int, td *goquery.Selection) {
		field, ok := td.Attr("data-field")
		if !ok || field == "" {
			return
		}
		row.Fields[field] = strings.TrimSpace(td.Text())
	})
	return row, true
}

// getDomain extracts the host from a URL for colly's domain allowlist
func getDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
