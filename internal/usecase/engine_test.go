package usecase

import (
	"context"
	"errors"
	"testing"

	"TAEngine/internal/domain/models"
)

func TestEngineCachesSecondCall(t *testing.T) {
	f := newEngineFixture(t, 100)
	market := testMarket()
	cfg := models.IndicatorConfig{Type: models.RSI}

	first, err := f.engine.Calculate(context.Background(), market, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if first.FromCache {
		t.Fatal("first call must compute")
	}
	if f.store.size() != 1 {
		t.Fatalf("store should hold one entry, got %d", f.store.size())
	}

	second, err := f.engine.Calculate(context.Background(), market, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !second.FromCache {
		t.Fatal("second call must come from cache")
	}
	if second.Hits != 1 {
		t.Fatalf("hits: got %d, want 1", second.Hits)
	}
	if second.Result.Type != first.Result.Type {
		t.Fatalf("cached result type %s differs from computed %s", second.Result.Type, first.Result.Type)
	}
	if f.candles.fetchCount() != 1 {
		t.Fatalf("candles fetched %d times, want 1", f.candles.fetchCount())
	}

	m := f.metrics.snapshot()
	if m.cacheMisses != 1 || m.cacheHits != 1 {
		t.Fatalf("metrics: %d misses / %d hits, want 1/1", m.cacheMisses, m.cacheHits)
	}
	if m.calcOK != 1 {
		t.Fatalf("calculations recorded: %d, want 1", m.calcOK)
	}
}

func TestEngineDifferentConfigsGetDifferentKeys(t *testing.T) {
	f := newEngineFixture(t, 100)
	market := testMarket()

	if _, err := f.engine.Calculate(context.Background(), market, models.IndicatorConfig{Type: models.RSI}); err != nil {
		t.Fatal(err)
	}
	out, err := f.engine.Calculate(context.Background(), market, models.IndicatorConfig{Type: models.RSI, Period: 7})
	if err != nil {
		t.Fatal(err)
	}
	if out.FromCache {
		t.Fatal("different period must not hit the default-period entry")
	}
	if f.store.size() != 2 {
		t.Fatalf("store should hold two entries, got %d", f.store.size())
	}
}

func TestEngineCacheErrorDegradesToMiss(t *testing.T) {
	f := newEngineFixture(t, 100)
	f.store.getErr = errors.New("backend down")
	market := testMarket()

	out, err := f.engine.Calculate(context.Background(), market, models.IndicatorConfig{Type: models.SMA})
	if err != nil {
		t.Fatal(err)
	}
	if out.FromCache {
		t.Fatal("a failing cache must degrade to a miss")
	}
	if out.Result == nil {
		t.Fatal("calculation must still produce a result")
	}
}

func TestEnginePutFailureIsNonFatal(t *testing.T) {
	f := newEngineFixture(t, 100)
	f.store.putErr = errors.New("backend down")

	out, err := f.engine.Calculate(context.Background(), testMarket(), models.IndicatorConfig{Type: models.SMA})
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil {
		t.Fatal("result missing")
	}
}

func TestEngineFetchErrorPropagates(t *testing.T) {
	f := newEngineFixture(t, 100)
	f.candles.err = errors.New("clickhouse unreachable")

	_, err := f.engine.Calculate(context.Background(), testMarket(), models.IndicatorConfig{Type: models.SMA})
	if err == nil {
		t.Fatal("expected fetch error")
	}
}

func TestEngineCalculateWithSkipsFetch(t *testing.T) {
	f := newEngineFixture(t, 100)

	out, err := f.engine.CalculateWith(context.Background(), testMarket(), testCandles(100), models.IndicatorConfig{Type: models.EMA})
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil {
		t.Fatal("result missing")
	}
	if f.candles.fetchCount() != 0 {
		t.Fatalf("candles fetched %d times, want 0", f.candles.fetchCount())
	}
}

func TestEngineObservationsOnSuccessAndFailure(t *testing.T) {
	f := newEngineFixture(t, 100)
	market := testMarket()

	if _, err := f.engine.Calculate(context.Background(), market, models.IndicatorConfig{Type: models.SMA}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.engine.Calculate(context.Background(), market, models.IndicatorConfig{Type: "bogus"}); err == nil {
		t.Fatal("expected unsupported indicator error")
	}

	obs := f.sink.observations()
	if len(obs) != 2 {
		t.Fatalf("got %d observations, want 2", len(obs))
	}
	if !obs[0].Success || obs[0].ErrorMessage != "" {
		t.Fatalf("first observation should be a success: %+v", obs[0])
	}
	if obs[1].Success || obs[1].ErrorMessage == "" {
		t.Fatalf("second observation should carry the error: %+v", obs[1])
	}
	if obs[0].Market != market {
		t.Fatalf("observation market: got %+v", obs[0].Market)
	}
}

func TestEngineCandleLimitOption(t *testing.T) {
	f := newEngineFixture(t, 400, WithCandleLimit(50))

	// 50 candles cover the default RSI window but not a 60-period one.
	if _, err := f.engine.Calculate(context.Background(), testMarket(), models.IndicatorConfig{Type: models.RSI}); err != nil {
		t.Fatal(err)
	}
	var insufficient *models.InsufficientDataError
	_, err := f.engine.Calculate(context.Background(), testMarket(), models.IndicatorConfig{Type: models.RSI, Period: 60})
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}

func TestEngineInvalidatePattern(t *testing.T) {
	f := newEngineFixture(t, 100)

	err := f.engine.Invalidate(context.Background(), models.InvalidationFilter{
		Venue:         "binance",
		Symbol:        "BTCUSDT",
		IndicatorType: models.RSI,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(f.store.patterns) != 1 {
		t.Fatalf("got %d delete calls, want 1", len(f.store.patterns))
	}
	want := "indicators:binance:BTCUSDT:*:rsi:*"
	if f.store.patterns[0] != want {
		t.Fatalf("pattern: got %q, want %q", f.store.patterns[0], want)
	}

	if err := f.engine.Invalidate(context.Background(), models.InvalidationFilter{}); err != nil {
		t.Fatal(err)
	}
	if f.store.patterns[1] != "indicators:*:*:*:*:*" {
		t.Fatalf("open filter pattern: got %q", f.store.patterns[1])
	}
}

func TestErrorCodeTaxonomy(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{&models.UnsupportedIndicatorError{Type: "x"}, "unsupported_indicator"},
		{&models.InvalidParameterError{Name: "period"}, "invalid_parameter"},
		{&models.InsufficientDataError{Indicator: "RSI", Required: 15, Actual: 3}, "insufficient_data"},
		{&models.InvalidRangeError{Reason: "high must be greater than low"}, "invalid_range"},
		{errors.New("boom"), "internal"},
	}
	for _, c := range cases {
		if got := errorCode(c.err); got != c.code {
			t.Fatalf("errorCode(%v): got %q, want %q", c.err, got, c.code)
		}
	}
}
