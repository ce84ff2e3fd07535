// Package entity defines the domain models for the quotes feature.
package entity

// Quote represents the latest traded price for a symbol.
type Quote struct {
	Price         float64 // Last traded price
	PercentChange float64 // Change since previous close, in percent
}

// SeriesPoint is a single observation in a price history series.
type SeriesPoint struct {
	Timestamp int64   `json:"timestamp"` // Unix seconds
	Price     float64 `json:"price"`
}

// Series is the price history for a symbol over one timeframe.
// It is fetched on demand and never persisted.
type Series struct {
	Symbol   string        `json:"symbol"`
	Name     string        `json:"name"`
	Exchange string        `json:"exchange"`
	Timezone string        `json:"timezone"`
	Points   []SeriesPoint `json:"data"`
}
