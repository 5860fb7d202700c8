package usecase

import (
	"context"
	"sync"
	"time"

	"TAEngine/internal/domain/models"
)

// CalculateBatch runs every config concurrently against the same market and
// joins the outcomes back into request order. One failing slot never affects
// its siblings; each failure is captured on its own slot.
func (e *Engine) CalculateBatch(ctx context.Context, market models.MarketKey, candles []models.Candle, configs []models.IndicatorConfig) (*models.BatchResult, error) {
	res := &models.BatchResult{
		Market: market,
		Items:  make([]models.BatchItem, len(configs)),
	}
	if len(configs) == 0 {
		return res, nil
	}

	// The shared window is fetched at most once, and only when the first
	// cache miss needs it. An all-hit batch never touches the candle source.
	supply := staticWindow(candles)
	var fetchErr error
	if candles == nil {
		var (
			once   sync.Once
			shared []models.Candle
			fetch  = e.fetchWindow(market)
		)
		supply = func(ctx context.Context) ([]models.Candle, error) {
			once.Do(func() { shared, fetchErr = fetch(ctx) })
			return shared, fetchErr
		}
	}

	start := time.Now()

	type item struct {
		index   int
		outcome *Outcome
		err     error
	}
	ch := make(chan item, len(configs))
	var wg sync.WaitGroup

	for i, cfg := range configs {
		wg.Add(1)
		go func(i int, cfg models.IndicatorConfig) {
			defer wg.Done()
			out, err := e.calculate(ctx, market, supply, cfg)
			ch <- item{i, out, err}
		}(i, cfg)
	}

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		slot := models.BatchItem{Index: it.index}
		if it.err != nil {
			slot.Error = &models.BatchItemError{
				Code:    errorCode(it.err),
				Message: it.err.Error(),
			}
		} else {
			slot.Result = it.outcome.Result
			slot.FromCache = it.outcome.FromCache
		}
		res.Items[it.index] = slot
	}

	// A dead candle source fails the batch as a whole, same as the single
	// calculate path; no slot could have computed anyway.
	if fetchErr != nil {
		return nil, fetchErr
	}

	res.TotalCalculationTimeMs = float64(time.Since(start).Microseconds()) / 1000
	return res, nil
}
