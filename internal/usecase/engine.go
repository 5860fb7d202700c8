package usecase

import (
	"context"
	"errors"
	"time"

	"TAEngine/internal/domain/models"
	"TAEngine/internal/domain/repository"
	svccache "TAEngine/internal/service/cache"
	"TAEngine/pkg/logger"
)

const (
	defaultCandleLimit  = 500
	defaultCacheTimeout = 150 * time.Millisecond
)

// Engine ties the calculation path together: cache lookup, candle fetch,
// dispatch, cache store and stats emission. Cache I/O is bounded by its own
// timeout and degrades to a miss on any failure; the calculation itself never
// depends on the cache being up.
type Engine struct {
	dispatcher   *Dispatcher
	candles      repository.CandleSource
	store        repository.ResultStore
	stats        repository.StatsSink
	metrics      repository.Metrics
	log          *logger.Logger
	candleLimit  int
	cacheTimeout time.Duration
	now          func() time.Time
}

type EngineOption func(*Engine)

func WithCandleLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.candleLimit = n
		}
	}
}

func WithCacheTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.cacheTimeout = d
		}
	}
}

func NewEngine(
	dispatcher *Dispatcher,
	candles repository.CandleSource,
	store repository.ResultStore,
	stats repository.StatsSink,
	metrics repository.Metrics,
	log *logger.Logger,
	opts ...EngineOption,
) *Engine {
	e := &Engine{
		dispatcher:   dispatcher,
		candles:      candles,
		store:        store,
		stats:        stats,
		metrics:      metrics,
		log:          log,
		candleLimit:  defaultCandleLimit,
		cacheTimeout: defaultCacheTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Outcome is the cache-aware wrapper around one calculation result.
type Outcome struct {
	Result    *models.IndicatorResult
	FromCache bool
	Hits      int64
}

// candleSupplier hands the calculation its candle window on demand, so a
// cache hit never touches the candle source.
type candleSupplier func(context.Context) ([]models.Candle, error)

func (e *Engine) fetchWindow(market models.MarketKey) candleSupplier {
	return func(ctx context.Context) ([]models.Candle, error) {
		return e.candles.Fetch(ctx, market.Venue, market.Symbol, repository.Timeframe(market.Timeframe), e.candleLimit)
	}
}

func staticWindow(candles []models.Candle) candleSupplier {
	return func(context.Context) ([]models.Candle, error) { return candles, nil }
}

// Calculate resolves one indicator for a market, fetching the candle window
// from the configured source.
func (e *Engine) Calculate(ctx context.Context, market models.MarketKey, cfg models.IndicatorConfig) (*Outcome, error) {
	return e.calculate(ctx, market, e.fetchWindow(market), cfg)
}

// CalculateWith is Calculate over a caller-supplied candle series; no fetch
// happens, but caching and stats behave the same.
func (e *Engine) CalculateWith(ctx context.Context, market models.MarketKey, candles []models.Candle, cfg models.IndicatorConfig) (*Outcome, error) {
	return e.calculate(ctx, market, staticWindow(candles), cfg)
}

func (e *Engine) calculate(ctx context.Context, market models.MarketKey, supply candleSupplier, cfg models.IndicatorConfig) (*Outcome, error) {
	key := svccache.BuildKey(market, cfg)

	if entry := e.lookup(ctx, market, key); entry != nil {
		e.observe(ctx, market, cfg, repository.Observation{Success: true, FromCache: true})
		return &Outcome{Result: &entry.Result, FromCache: true, Hits: entry.Hits}, nil
	}

	candles, err := supply(ctx)
	if err != nil {
		return nil, err
	}

	result, err := e.dispatcher.Calculate(ctx, candles, cfg)
	if err != nil {
		e.metrics.RecordCalculation(string(cfg.Type), false)
		e.observe(ctx, market, cfg, repository.Observation{ErrorMessage: err.Error()})
		return nil, err
	}

	e.metrics.RecordCalculation(string(cfg.Type), true)
	e.metrics.RecordLatency("calculate", result.Metadata.CalculationTimeMs/1000)
	e.storeResult(ctx, market, key, cfg, result)
	e.observe(ctx, market, cfg, repository.Observation{
		Success:           true,
		CalculationTimeMs: result.Metadata.CalculationTimeMs,
	})

	return &Outcome{Result: result}, nil
}

// lookup reads the cache under its own deadline. Any failure is a miss.
func (e *Engine) lookup(ctx context.Context, market models.MarketKey, key string) *models.CacheEntry {
	cctx, cancel := context.WithTimeout(ctx, e.cacheTimeout)
	defer cancel()

	entry, err := e.store.Get(cctx, key)
	if err != nil {
		e.log.Warn("cache lookup degraded to miss", logger.String("key", key), logger.Error(err))
		e.metrics.RecordCacheMiss(market.Timeframe)
		return nil
	}
	if entry == nil {
		e.metrics.RecordCacheMiss(market.Timeframe)
		return nil
	}

	e.metrics.RecordCacheHit(market.Timeframe)
	if n, err := e.store.IncrementHits(cctx, key); err == nil {
		entry.Hits = n
	}
	return entry
}

func (e *Engine) storeResult(ctx context.Context, market models.MarketKey, key string, cfg models.IndicatorConfig, result *models.IndicatorResult) {
	cctx, cancel := context.WithTimeout(ctx, e.cacheTimeout)
	defer cancel()

	now := e.now()
	ttl := repository.CacheTTL(repository.Timeframe(market.Timeframe))
	entry := &models.CacheEntry{
		Market:        market,
		IndicatorType: cfg.Type,
		Config:        cfg,
		Result:        *result,
		CalculatedAt:  now,
		ExpiresAt:     now.Add(ttl),
	}
	if err := e.store.Put(cctx, key, entry, ttl); err != nil {
		e.log.Warn("cache store skipped", logger.String("key", key), logger.Error(err))
	}
}

// Invalidate evicts cached results matching the filter.
func (e *Engine) Invalidate(ctx context.Context, filter models.InvalidationFilter) error {
	return e.store.Delete(ctx, svccache.BuildPattern(filter))
}

func (e *Engine) observe(ctx context.Context, market models.MarketKey, cfg models.IndicatorConfig, obs repository.Observation) {
	obs.Market = market
	obs.IndicatorType = cfg.Type
	obs.Config = cfg
	e.stats.Observe(ctx, obs)
}

// errorCode maps a calculation error onto the wire error taxonomy.
func errorCode(err error) string {
	var (
		unsupported  *models.UnsupportedIndicatorError
		invalidParam *models.InvalidParameterError
		insufficient *models.InsufficientDataError
		invalidRange *models.InvalidRangeError
	)
	switch {
	case errors.As(err, &unsupported):
		return "unsupported_indicator"
	case errors.As(err, &invalidParam):
		return "invalid_parameter"
	case errors.As(err, &insufficient):
		return "insufficient_data"
	case errors.As(err, &invalidRange):
		return "invalid_range"
	default:
		return "internal"
	}
}
