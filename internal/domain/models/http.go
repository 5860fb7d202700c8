package models

// CalculateRequest is the wire form of a single-indicator calculation.
// Indicator parameters are validated further down at the dispatcher; the
// handler only checks the market coordinates.
type CalculateRequest struct {
	Venue     string          `json:"venue" validate:"required"`
	Symbol    string          `json:"symbol" validate:"required"`
	Timeframe string          `json:"timeframe" default:"1h"`
	Indicator IndicatorConfig `json:"indicator"`
}

// BatchCalculateRequest carries up to MaxBatchConfigs indicator configs for
// one market.
type BatchCalculateRequest struct {
	Venue      string            `json:"venue" validate:"required"`
	Symbol     string            `json:"symbol" validate:"required"`
	Timeframe  string            `json:"timeframe" default:"1h"`
	Indicators []IndicatorConfig `json:"indicators" validate:"max=50"`
}

// InvalidateRequest selects cached results for eviction.
type InvalidateRequest struct {
	Venue         string `json:"venue,omitempty"`
	Symbol        string `json:"symbol,omitempty"`
	IndicatorType string `json:"indicatorType,omitempty"`
}
