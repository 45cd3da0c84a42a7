package universe

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Constituent pages. The Composite is preferred; the TSX 60 is the fallback
// when the Composite table cannot be read.
const (
	compositeURL = "https://en.wikipedia.org/wiki/S%26P/TSX_Composite_Index"
	tsx60URL     = "https://en.wikipedia.org/wiki/S%26P/TSX_60"

	// Plausibility floors: the Composite carries ~230 members, the 60 carries 60.
	compositeMin = 100
	tsx60Min     = 40
)

// WikipediaProvider loads the TSX universe from the index constituent pages.
type WikipediaProvider struct {
	Client *http.Client
	Tries  int
	Delay  time.Duration
}

// NewWikipediaProvider creates a provider with optional proxy support.
func NewWikipediaProvider(proxyURL string) *WikipediaProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &WikipediaProvider{
		Client: &http.Client{
			Timeout:   25 * time.Second,
			Transport: transport,
		},
		Tries: 3,
		Delay: time.Second,
	}
}

func (p *WikipediaProvider) Name() string { return "wikipedia" }

// Fetch returns the Composite universe, or the TSX 60 when the Composite
// page is unreadable.
func (p *WikipediaProvider) Fetch(ctx context.Context) ([]string, error) {
	symbols, err := p.fetchIndex(ctx, compositeURL, compositeMin)
	if err == nil {
		return symbols, nil
	}
	log.Printf("[WARN] composite universe unavailable, trying TSX 60: %v", err)
	symbols, err60 := p.fetchIndex(ctx, tsx60URL, tsx60Min)
	if err60 != nil {
		return nil, fmt.Errorf("composite: %w; tsx60: %w", err, err60)
	}
	return symbols, nil
}

func (p *WikipediaProvider) fetchIndex(ctx context.Context, pageURL string, minCount int) ([]string, error) {
	var lastErr error
	for attempt := 1; attempt <= p.Tries; attempt++ {
		symbols, err := p.fetchOnce(ctx, pageURL, minCount)
		if err == nil {
			return symbols, nil
		}
		lastErr = err
		log.Printf("[WARN] wikipedia fetch failed (attempt %d/%d): %v", attempt, p.Tries, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.Delay):
		}
	}
	return nil, lastErr
}

func (p *WikipediaProvider) fetchOnce(ctx context.Context, pageURL string, minCount int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, err
	}
	// Wikipedia rejects default Go user agents on some mirrors.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en,fr;q=0.9")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &AcquisitionError{Source: pageURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &AcquisitionError{Source: pageURL, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	tables, err := parseTables(resp.Body)
	if err != nil {
		return nil, &MalformedSourceError{Source: pageURL, Reason: err.Error()}
	}
	for _, t := range tables {
		raw := symbolsFromTable(t)
		if raw == nil {
			continue
		}
		if symbols := Normalize(raw); len(symbols) >= minCount {
			return symbols, nil
		}
	}
	return nil, &MalformedSourceError{Source: pageURL, Reason: "no table with a usable symbol column"}
}

type symbolTable [][]string

// parseTables extracts every <table> on the page as rows of cell text.
func parseTables(r io.Reader) ([]symbolTable, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var tables []symbolTable
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			if t := extractTable(n); len(t) > 0 {
				tables = append(tables, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return tables, nil
}

func extractTable(table *html.Node) symbolTable {
	var rows symbolTable
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, strings.TrimSpace(nodeText(c)))
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// symbolsFromTable returns the raw ticker column of a constituents table,
// or nil if the header has no recognizable symbol column.
func symbolsFromTable(t symbolTable) []string {
	if len(t) < 2 {
		return nil
	}
	col := symbolColumnIndex(t[0])
	if col < 0 {
		return nil
	}
	var raw []string
	for _, row := range t[1:] {
		if col < len(row) {
			raw = append(raw, row[col])
		}
	}
	return raw
}
