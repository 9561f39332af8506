// Package market merges per-symbol rows from the two sharesansar listing
// tables into a single quote and computes the derived 52-week metrics.
package market

import (
	"context"
	"math"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/common"
	"github.com/syntoo/nepsebot/internal/interfaces"
	"github.com/syntoo/nepsebot/internal/models"
	"github.com/syntoo/nepsebot/internal/scrape"
)

// Resolver resolves a ticker symbol against the live-trading and
// daily-summary sources. Both sources are mandatory: partial data is
// never surfaced as a record.
type Resolver struct {
	live   *scrape.Source
	daily  *scrape.Source
	logger arbor.ILogger
}

// NewResolver creates a resolver over the two market data sources
func NewResolver(live, daily *scrape.Source, logger arbor.ILogger) *Resolver {
	return &Resolver{
		live:   live,
		daily:  daily,
		logger: logger,
	}
}

// Resolve normalizes and validates the symbol, queries both sources
// concurrently, and merges the matching rows. Malformed input returns
// ErrInvalidSymbol before any network call; a miss or an unavailable
// source returns ErrSymbolNotFound; a zero 52-week bound returns
// ErrComputation instead of an infinite or NaN metric.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (*models.StockRecord, error) {
	sym := common.NormalizeSymbol(symbol)
	if !common.IsValidSymbol(sym) {
		return nil, interfaces.ErrInvalidSymbol
	}

	// The two fetches have no ordering dependency; the merge waits for both.
	var (
		wg                sync.WaitGroup
		liveRow, dailyRow scrape.Row
		liveOK, dailyOK   bool
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		liveRow, liveOK = r.live.FindRow(ctx, sym)
	}()
	go func() {
		defer wg.Done()
		dailyRow, dailyOK = r.daily.FindRow(ctx, sym)
	}()
	wg.Wait()

	if !liveOK || !dailyOK {
		r.logger.Debug().
			Str("symbol", sym).
			Bool("live", liveOK).
			Bool("daily", dailyOK).
			Msg("Symbol not present in both sources")
		return nil, interfaces.ErrSymbolNotFound
	}

	return r.merge(sym, liveRow, dailyRow)
}

// merge combines the two row-mappings into one record and computes the
// derived fields.
func (r *Resolver) merge(symbol string, live, daily scrape.Row) (*models.StockRecord, error) {
	ltp := live[scrape.FieldLTP]
	high := daily[scrape.FieldWeek52High]
	low := daily[scrape.FieldWeek52Low]

	// A row whose mandatory numeric fields did not coerce is as useless as
	// a missing row.
	if !ltp.Numeric || !high.Numeric || !low.Numeric {
		r.logger.Warn().
			Str("symbol", symbol).
			Str("ltp", ltp.Text).
			Str("week_52_high", high.Text).
			Str("week_52_low", low.Text).
			Msg("Non-numeric mandatory field in source row")
		return nil, interfaces.ErrSymbolNotFound
	}

	if high.Number == 0 || low.Number == 0 {
		r.logger.Warn().
			Str("symbol", symbol).
			Float64("week_52_high", high.Number).
			Float64("week_52_low", low.Number).
			Msg("Degenerate 52-week bound")
		return nil, interfaces.ErrComputation
	}

	return &models.StockRecord{
		Symbol:        symbol,
		LTP:           ltp.Number,
		ChangePercent: live[scrape.FieldChangePercent].Text,
		DayHigh:       live[scrape.FieldDayHigh].Number,
		DayLow:        live[scrape.FieldDayLow].Number,
		PreviousClose: live[scrape.FieldPreviousClose].Number,
		Volume:        live[scrape.FieldVolume].Text,
		Week52High:    high.Number,
		Week52Low:     low.Number,
		DownFromHigh:  round2((high.Number - ltp.Number) / high.Number * 100),
		UpFromLow:     round2((ltp.Number - low.Number) / low.Number * 100),
	}, nil
}

// round2 rounds to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
