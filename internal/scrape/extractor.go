// Package scrape extracts tabulated market data from sharesansar listing
// pages. Row extraction is deliberately lenient: malformed rows are skipped,
// failed numeric coercion falls back to the raw cell text, and only a
// missing table or an unfetchable document fails the overall call.
package scrape

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/syntoo/nepsebot/internal/interfaces"
)

// Field keys shared by the extractor, the sources and the resolver.
const (
	FieldLTP           = "ltp"
	FieldChangePercent = "change_percent"
	FieldDayHigh       = "day_high"
	FieldDayLow        = "day_low"
	FieldVolume        = "volume"
	FieldPreviousClose = "previous_close"
	FieldWeek52High    = "week_52_high"
	FieldWeek52Low     = "week_52_low"
)

// Column describes where a field lives in a table and whether its text is
// preserved verbatim instead of coerced to a number (e.g. a signed
// percentage or a formatted volume).
type Column struct {
	Index  int
	String bool
}

// ColumnMap maps field keys to table columns.
type ColumnMap map[string]Column

// Cell holds one extracted table cell. Number is valid only when Numeric
// is true; Text always carries the stripped cell text.
type Cell struct {
	Text    string
	Number  float64
	Numeric bool
}

// Row maps field keys to extracted cells.
type Row map[string]Cell

// maxIndex returns the highest column index referenced by the map.
func (m ColumnMap) maxIndex() int {
	max := 0
	for _, col := range m {
		if col.Index > max {
			max = col.Index
		}
	}
	return max
}

// findTable locates the first table matching the selector.
func findTable(doc *goquery.Document, tableSelector string) (*goquery.Selection, error) {
	table := doc.Find(tableSelector).First()
	if table.Length() == 0 {
		return nil, interfaces.ErrTableNotFound
	}
	return table, nil
}

// ExtractRows parses every body row of the first table matching
// tableSelector. Rows with fewer cells than the highest referenced column
// are silently skipped. No per-row failure escapes; the call only fails
// when the table itself is missing.
func ExtractRows(doc *goquery.Document, tableSelector string, columns ColumnMap) ([]Row, error) {
	table, err := findTable(doc, tableSelector)
	if err != nil {
		return nil, err
	}

	minCells := columns.maxIndex() + 1
	var rows []Row

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < minCells {
			return
		}
		rows = append(rows, extractRow(cells, columns))
	})

	return rows, nil
}

// extractRow pulls the mapped columns out of one row's cells.
func extractRow(cells *goquery.Selection, columns ColumnMap) Row {
	row := make(Row, len(columns))
	for field, col := range columns {
		row[field] = extractCell(cells.Eq(col.Index), col)
	}
	return row
}

// extractCell strips whitespace and thousands separators, then attempts
// numeric coercion unless the column is string-preserving. Coercion failure
// keeps the raw stripped text.
func extractCell(cell *goquery.Selection, col Column) Cell {
	text := strings.ReplaceAll(strings.TrimSpace(cell.Text()), ",", "")
	if col.String {
		return Cell{Text: text}
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return Cell{Text: text, Number: n, Numeric: true}
	}
	return Cell{Text: text}
}

// cellText returns the symbol-column text of a row selection, used for
// case-insensitive symbol matching before full extraction.
func cellText(cells *goquery.Selection, index int) string {
	return strings.TrimSpace(cells.Eq(index).Text())
}
