package stockanalysis

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/dgi/pkg/httputil"
	"github.com/wonny/dgi/pkg/logger"
)

// Client fetches dividend fundamentals from an HTML screener page.
// The page is expected to carry one table whose header names match the
// universe CSV columns (symbol, name, sector, ...), which is what the
// public dividend screeners export.
// ⭐ SSOT: 웹 펀더멘털 조회는 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a fundamentals page client
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// FetchFundamentals downloads and parses the screener table into raw
// string rows keyed by header name. No business validation happens here.
func (c *Client) FetchFundamentals(ctx context.Context) ([]map[string]string, error) {
	resp, err := c.httpClient.Get(ctx, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	rows, err := parseFundamentalsHTML(string(body))
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"url":  c.baseURL,
		"rows": len(rows),
	}).Debug("Fetched fundamentals table")

	return rows, nil
}

// parseFundamentalsHTML extracts the first table with a header row
func parseFundamentalsHTML(html string) ([]map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table found in fundamentals page")
	}

	var header []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(th.Text()))
		name = strings.ReplaceAll(name, " ", "_")
		header = append(header, name)
	})
	if len(header) == 0 {
		return nil, fmt.Errorf("fundamentals table has no header row")
	}

	var rows []map[string]string
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}

		row := make(map[string]string, len(header))
		cells.Each(func(i int, td *goquery.Selection) {
			if i < len(header) {
				row[header[i]] = strings.TrimSpace(td.Text())
			}
		})
		rows = append(rows, row)
	})

	return rows, nil
}
