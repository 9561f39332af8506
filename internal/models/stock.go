package models

// StockRecord is a merged per-symbol quote assembled from the live-trading
// table and the daily-summary table. A record is only constructed when both
// source rows were found; partial data is never surfaced.
type StockRecord struct {
	Symbol        string  `json:"symbol"` // Uppercase ticker symbol
	LTP           float64 `json:"ltp"`    // Last traded price
	ChangePercent string  `json:"change_percent"` // Preserves sign/format as published
	DayHigh       float64 `json:"day_high"`
	DayLow        float64 `json:"day_low"`
	PreviousClose float64 `json:"previous_close"`
	Volume        string  `json:"volume"` // May carry locale separators, kept verbatim
	Week52High    float64 `json:"week_52_high"`
	Week52Low     float64 `json:"week_52_low"`

	// Derived fields, rounded to 2 decimal places
	DownFromHigh float64 `json:"down_from_high"` // Percent below the 52-week high
	UpFromLow    float64 `json:"up_from_low"`    // Percent above the 52-week low
}

// IndexSnapshot is the aggregate NEPSE index reading taken from the
// live-trading page summary box. Recomputed on every broadcast trigger,
// never persisted.
type IndexSnapshot struct {
	Index  float64 `json:"index"`
	Change string  `json:"change"` // "N/A" when no directional marker is rendered
}
