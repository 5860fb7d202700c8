package repository

import (
	"context"
	"time"

	"TAEngine/internal/domain/models"
)

// CandleSource supplies ordered candle windows for a market context.
// Implementations return candles ascending by timestamp, at most limit rows.
type CandleSource interface {
	Fetch(ctx context.Context, venue, symbol string, tf Timeframe, limit int) ([]models.Candle, error)
}

// ResultStore persists derived indicator results with TTL expiry and atomic
// hit counting. The engine is agnostic to whether the store is in-process or
// networked.
type ResultStore interface {
	Get(ctx context.Context, key string) (*models.CacheEntry, error)
	Put(ctx context.Context, key string, entry *models.CacheEntry, ttl time.Duration) error
	Delete(ctx context.Context, pattern string) error
	IncrementHits(ctx context.Context, key string) (int64, error)
}

// Observation is one completed unit of indicator work, successful or not.
type Observation struct {
	Market            models.MarketKey       `json:"market"`
	IndicatorType     models.IndicatorType   `json:"indicatorType"`
	Config            models.IndicatorConfig `json:"config"`
	Success           bool                   `json:"success"`
	CalculationTimeMs float64                `json:"calculationTimeMs"`
	FromCache         bool                   `json:"fromCache"`
	ErrorMessage      string                 `json:"errorMessage,omitempty"`
}

// StatsSink receives fire-and-forget observations. A sink failure must never
// affect the calculation outcome.
type StatsSink interface {
	Observe(ctx context.Context, obs Observation)
}

// Metrics records operational counters for the engine.
type Metrics interface {
	RecordCalculation(indicator string, success bool)
	RecordCacheHit(timeframe string)
	RecordCacheMiss(timeframe string)
	RecordCacheError(op string)
	RecordLatency(op string, seconds float64)
}
