package models

import "time"

// CacheEntry is one persisted calculation result. Read-only after creation
// except for Hits increments and deletion on expiry or invalidation.
type CacheEntry struct {
	Market        MarketKey       `json:"market"`
	IndicatorType IndicatorType   `json:"indicatorType"`
	Config        IndicatorConfig `json:"config"`
	Result        IndicatorResult `json:"result"`
	CalculatedAt  time.Time       `json:"calculatedAt"`
	ExpiresAt     time.Time       `json:"expiresAt"`
	Hits          int64           `json:"hits"`
}

// Expired reports whether the entry is past its TTL at the given instant.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// InvalidationFilter selects cache entries for explicit eviction. Empty
// fields match everything.
type InvalidationFilter struct {
	Venue         string        `json:"venue,omitempty"`
	Symbol        string        `json:"symbol,omitempty"`
	IndicatorType IndicatorType `json:"indicatorType,omitempty"`
}
