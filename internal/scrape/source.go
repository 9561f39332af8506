package scrape

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
)

// tableSelector matches the data table on both sharesansar listing pages.
const tableSelector = "table.dataTable"

// Source performs one bounded-timeout fetch against one listings endpoint
// and looks up rows by symbol. Transport and parse failures collapse to
// "unavailable": FindRow reports them the same way as a missing symbol,
// since no retry is attempted at this layer.
type Source struct {
	name         string
	url          string
	symbolColumn int
	columns      ColumnMap
	client       *http.Client
	logger       arbor.ILogger
}

// NewLiveTradingSource builds a Source for the live-trading table.
func NewLiveTradingSource(url string, client *http.Client, logger arbor.ILogger) *Source {
	return &Source{
		name:         "live-trading",
		url:          url,
		symbolColumn: 1,
		columns: ColumnMap{
			FieldLTP:           {Index: 2},
			FieldChangePercent: {Index: 4, String: true},
			FieldDayHigh:       {Index: 6},
			FieldDayLow:        {Index: 7},
			FieldVolume:        {Index: 8, String: true},
			FieldPreviousClose: {Index: 9},
		},
		client: client,
		logger: logger,
	}
}

// NewDailySummarySource builds a Source for the today-share-price table,
// which carries the 52-week band.
func NewDailySummarySource(url string, client *http.Client, logger arbor.ILogger) *Source {
	return &Source{
		name:         "daily-summary",
		url:          url,
		symbolColumn: 1,
		columns: ColumnMap{
			FieldWeek52High: {Index: 22},
			FieldWeek52Low:  {Index: 23},
		},
		client: client,
		logger: logger,
	}
}

// Fetch performs one GET against the source endpoint and parses the body.
func (s *Source) Fetch(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: s.url, StatusCode: resp.StatusCode}
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// FindRow fetches the source and returns the first row whose symbol column
// matches (case-insensitive exact equality). The second return is false
// when the symbol is absent or the source is unavailable; callers must
// treat both identically. Duplicate symbols are not detected, first match
// wins.
func (s *Source) FindRow(ctx context.Context, symbol string) (Row, bool) {
	doc, err := s.Fetch(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", s.name).Msg("Source fetch failed")
		return nil, false
	}
	return s.findRowInDoc(doc, symbol)
}

// findRowInDoc scans a parsed document for the symbol.
func (s *Source) findRowInDoc(doc *goquery.Document, symbol string) (Row, bool) {
	table, err := findTable(doc, tableSelector)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", s.name).Msg("Data table missing from document")
		return nil, false
	}

	minCells := s.columns.maxIndex() + 1
	if s.symbolColumn+1 > minCells {
		minCells = s.symbolColumn + 1
	}

	var found Row
	table.Find("tbody tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.Find("td")
		if cells.Length() < minCells {
			return true // short row, keep scanning
		}
		if !strings.EqualFold(cellText(cells, s.symbolColumn), symbol) {
			return true
		}
		found = extractRow(cells, s.columns)
		return false
	})

	if found == nil {
		return nil, false
	}
	return found, true
}
