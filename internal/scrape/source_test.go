package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/httpclient"
)

const liveTradingHTML = `
<html><body>
<table class="dataTable">
<tbody>
<tr><td>1</td><td>NABIL</td><td>540.0</td><td>x</td><td>-0.37 %</td><td>x</td><td>545</td><td>530</td><td>12,500</td><td>538</td></tr>
<tr><td>2</td><td>SHINE</td><td>310.5</td><td>x</td><td>+1.10 %</td><td>x</td><td>315</td><td>305</td><td>8,000</td><td>307</td></tr>
</tbody>
</table>
</body></html>`

func newTestSource(t *testing.T, handler http.HandlerFunc) (*Source, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := httpclient.NewDefaultHTTPClient(2 * time.Second)
	return NewLiveTradingSource(srv.URL, client, arbor.NewLogger()), srv
}

func TestFindRow(t *testing.T) {
	source, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(liveTradingHTML))
	})

	row, ok := source.FindRow(context.Background(), "NABIL")
	require.True(t, ok)

	assert.True(t, row[FieldLTP].Numeric)
	assert.InDelta(t, 540.0, row[FieldLTP].Number, 0.001)
	assert.Equal(t, "-0.37 %", row[FieldChangePercent].Text)
	assert.InDelta(t, 545, row[FieldDayHigh].Number, 0.001)
	assert.InDelta(t, 530, row[FieldDayLow].Number, 0.001)
	assert.Equal(t, "12500", row[FieldVolume].Text)
	assert.InDelta(t, 538, row[FieldPreviousClose].Number, 0.001)
}

func TestFindRowCaseInsensitive(t *testing.T) {
	source, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(liveTradingHTML))
	})

	_, ok := source.FindRow(context.Background(), "nabil")
	assert.True(t, ok)
}

func TestFindRowSymbolAbsent(t *testing.T) {
	source, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(liveTradingHTML))
	})

	_, ok := source.FindRow(context.Background(), "UPPER")
	assert.False(t, ok)
}

func TestFindRowServerError(t *testing.T) {
	// A non-2xx response is "unavailable", reported the same way as a
	// missing symbol.
	source, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})

	_, ok := source.FindRow(context.Background(), "NABIL")
	assert.False(t, ok)
}

func TestFindRowTableMissing(t *testing.T) {
	source, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>market closed</body></html>`))
	})

	_, ok := source.FindRow(context.Background(), "NABIL")
	assert.False(t, ok)
}

func TestFindRowConnectionRefused(t *testing.T) {
	source, srv := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(liveTradingHTML))
	})
	srv.Close()

	_, ok := source.FindRow(context.Background(), "NABIL")
	assert.False(t, ok)
}
