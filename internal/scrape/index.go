package scrape

import (
	"context"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/interfaces"
	"github.com/syntoo/nepsebot/internal/models"
)

const (
	indexSummarySelector = "div.index-summary-box"
	// Directional markers, tried in order. When neither is rendered the
	// change field is the literal "N/A".
	changeNegativeSelector = "span.text-danger"
	changePositiveSelector = "span.text-success"
)

// IndexReader extracts the aggregate NEPSE index value and its change
// indicator from the live-trading page summary box.
type IndexReader struct {
	source *Source
	logger arbor.ILogger
}

// NewIndexReader creates an IndexReader over the live-trading source.
func NewIndexReader(source *Source, logger arbor.ILogger) *IndexReader {
	return &IndexReader{
		source: source,
		logger: logger,
	}
}

// ReadSnapshot fetches the live-trading page once and parses the summary
// box. Exactly one headline value is expected, so a parse failure there is
// fatal to the read rather than row-skipped.
func (r *IndexReader) ReadSnapshot(ctx context.Context) (*models.IndexSnapshot, error) {
	doc, err := r.source.Fetch(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Index page fetch failed")
		return nil, interfaces.ErrSnapshotUnavailable
	}

	box := doc.Find(indexSummarySelector).First()
	if box.Length() == 0 {
		r.logger.Warn().Str("selector", indexSummarySelector).Msg("Index summary box not found")
		return nil, interfaces.ErrSnapshotUnavailable
	}

	headline := strings.ReplaceAll(strings.TrimSpace(box.Find("h4").First().Text()), ",", "")
	value, err := strconv.ParseFloat(headline, 64)
	if err != nil {
		r.logger.Warn().Str("text", headline).Msg("Index headline value not numeric")
		return nil, interfaces.ErrSnapshotUnavailable
	}

	change := "N/A"
	for _, selector := range []string{changeNegativeSelector, changePositiveSelector} {
		el := box.Find(selector).First()
		if el.Length() > 0 {
			change = strings.TrimSpace(el.Text())
			break
		}
	}

	return &models.IndexSnapshot{
		Index:  value,
		Change: change,
	}, nil
}
