package usecase

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"TAEngine/internal/domain/models"
	"TAEngine/internal/domain/repository"
	"TAEngine/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

// testCandles builds a deterministic oscillating series with hourly spacing.
func testCandles(n int) []models.Candle {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Candle, n)
	prev := 100.0
	for i := range out {
		f := float64(i)
		c := 100 + 0.08*f + 4*math.Sin(0.35*f) + 1.5*math.Cos(0.9*f)
		out[i] = models.Candle{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Open:      prev,
			High:      math.Max(prev, c) + 0.8,
			Low:       math.Min(prev, c) - 0.8,
			Close:     c,
			Volume:    1000 + 10*f,
		}
		prev = c
	}
	return out
}

func testMarket() models.MarketKey {
	return models.MarketKey{Venue: "binance", Symbol: "BTCUSDT", Timeframe: "1h"}
}

type fakeCandleSource struct {
	mu      sync.Mutex
	candles []models.Candle
	err     error
	fetches int
}

func (f *fakeCandleSource) Fetch(_ context.Context, _, _ string, _ repository.Timeframe, limit int) ([]models.Candle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.candles) {
		return f.candles[len(f.candles)-limit:], nil
	}
	return f.candles, nil
}

func (f *fakeCandleSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type fakeStore struct {
	mu       sync.Mutex
	entries  map[string]*models.CacheEntry
	hits     map[string]int64
	getErr   error
	putErr   error
	patterns []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries: make(map[string]*models.CacheEntry),
		hits:    make(map[string]int64),
	}
}

func (f *fakeStore) Get(_ context.Context, key string) (*models.CacheEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	entry, ok := f.entries[key]
	if !ok {
		return nil, nil
	}
	cp := *entry
	return &cp, nil
}

func (f *fakeStore) Put(_ context.Context, key string, entry *models.CacheEntry, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	cp := *entry
	f.entries[key] = &cp
	return nil
}

func (f *fakeStore) Delete(_ context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patterns = append(f.patterns, pattern)
	return nil
}

func (f *fakeStore) IncrementHits(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[key]++
	return f.hits[key], nil
}

func (f *fakeStore) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

type fakeSink struct {
	mu  sync.Mutex
	obs []repository.Observation
}

func (f *fakeSink) Observe(_ context.Context, obs repository.Observation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, obs)
}

func (f *fakeSink) observations() []repository.Observation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.Observation, len(f.obs))
	copy(out, f.obs)
	return out
}

type fakeMetrics struct {
	mu           sync.Mutex
	calcOK       int
	calcFail     int
	cacheHits    int
	cacheMisses  int
	cacheErrors  int
	latencyCalls int
}

func (f *fakeMetrics) RecordCalculation(_ string, success bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if success {
		f.calcOK++
	} else {
		f.calcFail++
	}
}

func (f *fakeMetrics) RecordCacheHit(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cacheHits++
}

func (f *fakeMetrics) RecordCacheMiss(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cacheMisses++
}

func (f *fakeMetrics) RecordCacheError(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cacheErrors++
}

func (f *fakeMetrics) RecordLatency(string, float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latencyCalls++
}

func (f *fakeMetrics) snapshot() fakeMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeMetrics{
		calcOK:      f.calcOK,
		calcFail:    f.calcFail,
		cacheHits:   f.cacheHits,
		cacheMisses: f.cacheMisses,
		cacheErrors: f.cacheErrors,
	}
}

type engineFixture struct {
	engine  *Engine
	candles *fakeCandleSource
	store   *fakeStore
	sink    *fakeSink
	metrics *fakeMetrics
}

func newEngineFixture(t *testing.T, n int, opts ...EngineOption) *engineFixture {
	t.Helper()
	f := &engineFixture{
		candles: &fakeCandleSource{candles: testCandles(n)},
		store:   newFakeStore(),
		sink:    &fakeSink{},
		metrics: &fakeMetrics{},
	}
	f.engine = NewEngine(NewDispatcher(), f.candles, f.store, f.sink, f.metrics, testLogger(t), opts...)
	return f
}
