package models

import "time"

// Candle represents one OHLCV observation for a fixed time bucket.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// MarketKey identifies the market context a candle series belongs to.
type MarketKey struct {
	Venue     string `json:"venue"`
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
}

func (k MarketKey) String() string {
	return k.Venue + ":" + k.Symbol + ":" + k.Timeframe
}
