package indicator

import (
	"TAEngine/internal/indicator/series"
)

// SuperTrend direction and signal labels.
const (
	DirectionUp   = "up"
	DirectionDown = "down"

	SignalBuy  = "buy"
	SignalSell = "sell"
	SignalHold = "hold"
)

// SuperTrendResult carries the per-point SuperTrend outputs. The slices
// share their last index with the input candle series.
type SuperTrendResult struct {
	Value     []float64
	Direction []string
	Signal    []string
}

// SuperTrendCalc computes the SuperTrend indicator: ATR-based basic bands
// around the bar midpoint, ratcheted final bands, and a two-state trend
// machine that flips only when the close crosses the opposite final band.
// A down-to-up flip emits a buy signal, up-to-down emits sell.
func SuperTrendCalc(highs, lows, closes []float64, atrPeriod int, multiplier float64) (*SuperTrendResult, error) {
	if err := series.ValidatePeriod(atrPeriod, "atrPeriod", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateParam(multiplier, "multiplier", 0.1, 10); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(closes), atrPeriod+1, "SuperTrend"); err != nil {
		return nil, err
	}

	atr, err := Atr(highs, lows, closes, atrPeriod)
	if err != nil {
		return nil, err
	}

	// atr[0] corresponds to candle index offset.
	offset := len(closes) - len(atr)
	n := len(atr)

	basicUpper := make([]float64, n)
	basicLower := make([]float64, n)
	for i := 0; i < n; i++ {
		c := i + offset
		hl2 := (highs[c] + lows[c]) / 2
		basicUpper[i] = hl2 + multiplier*atr[i]
		basicLower[i] = hl2 - multiplier*atr[i]
	}

	// Final bands ratchet: the upper band may only tighten downward unless
	// the prior close already broke above it; symmetric for the lower band.
	finalUpper := make([]float64, n)
	finalLower := make([]float64, n)
	finalUpper[0] = basicUpper[0]
	finalLower[0] = basicLower[0]
	for i := 1; i < n; i++ {
		prevClose := closes[i+offset-1]
		if basicUpper[i] < finalUpper[i-1] || prevClose > finalUpper[i-1] {
			finalUpper[i] = basicUpper[i]
		} else {
			finalUpper[i] = finalUpper[i-1]
		}
		if basicLower[i] > finalLower[i-1] || prevClose < finalLower[i-1] {
			finalLower[i] = basicLower[i]
		} else {
			finalLower[i] = finalLower[i-1]
		}
	}

	res := &SuperTrendResult{
		Value:     make([]float64, n),
		Direction: make([]string, n),
		Signal:    make([]string, n),
	}

	dir := DirectionUp // initial state
	for i := 0; i < n; i++ {
		c := closes[i+offset]
		prev := dir
		if dir == DirectionUp {
			if c < finalLower[i] {
				dir = DirectionDown
			}
		} else {
			if c > finalUpper[i] {
				dir = DirectionUp
			}
		}

		res.Direction[i] = dir
		if dir == DirectionUp {
			res.Value[i] = finalLower[i]
		} else {
			res.Value[i] = finalUpper[i]
		}

		switch {
		case i > 0 && prev == DirectionDown && dir == DirectionUp:
			res.Signal[i] = SignalBuy
		case i > 0 && prev == DirectionUp && dir == DirectionDown:
			res.Signal[i] = SignalSell
		default:
			res.Signal[i] = SignalHold
		}
	}
	return res, nil
}
