package indicator

import (
	"math"

	"TAEngine/internal/indicator/series"
)

// TrueRange computes the true range series. Output length is len(closes)-1
// because the first bar has no prior close.
func TrueRange(highs, lows, closes []float64) ([]float64, error) {
	if err := series.ValidateMinLength(len(closes), 2, "True Range"); err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		out = append(out, math.Max(hl, math.Max(hc, lc)))
	}
	return out, nil
}

// Atr computes the average true range with Wilder's smoothing, seeded with
// the simple mean of the first window. Output length is len(closes)-period.
func Atr(highs, lows, closes []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(closes), period+1, "ATR"); err != nil {
		return nil, err
	}

	tr, err := TrueRange(highs, lows, closes)
	if err != nil {
		return nil, err
	}

	var seed float64
	for _, v := range tr[:period] {
		seed += v
	}
	prev := seed / float64(period)

	out := make([]float64, 0, len(tr)-period+1)
	out = append(out, prev)
	for _, v := range tr[period:] {
		prev = (prev*float64(period-1) + v) / float64(period)
		out = append(out, prev)
	}
	return out, nil
}

// Bands bundles the per-point Bollinger Band outputs.
type Bands struct {
	Middle    []float64
	Upper     []float64
	Lower     []float64
	Bandwidth []float64
	PercentB  []float64
}

// Bollinger computes Bollinger Bands from an SMA middle line plus/minus
// stdDevMult population standard deviations, along with bandwidth
// (upper-lower)/middle and %B (price-lower)/(upper-lower). %B is defined as
// 0.5 when the band width is zero.
func Bollinger(values []float64, period int, stdDevMult float64) (*Bands, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateParam(stdDevMult, "stdDevMultiplier", 0.1, 10); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period, "Bollinger Bands"); err != nil {
		return nil, err
	}

	middle, err := Sma(values, period)
	if err != nil {
		return nil, err
	}
	sd, err := RollingStdDev(values, period)
	if err != nil {
		return nil, err
	}

	n := len(middle)
	b := &Bands{
		Middle:    middle,
		Upper:     make([]float64, n),
		Lower:     make([]float64, n),
		Bandwidth: make([]float64, n),
		PercentB:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		b.Upper[i] = middle[i] + stdDevMult*sd[i]
		b.Lower[i] = middle[i] - stdDevMult*sd[i]

		width := b.Upper[i] - b.Lower[i]
		if middle[i] != 0 {
			b.Bandwidth[i] = width / middle[i]
		}
		if width == 0 {
			b.PercentB[i] = 0.5
		} else {
			price := values[i+period-1]
			b.PercentB[i] = (price - b.Lower[i]) / width
		}
	}
	return b, nil
}

// Keltner computes Keltner Channels: an EMA middle line with bands at
// multiplier * ATR. The three slices share their last index.
func Keltner(highs, lows, closes []float64, emaPeriod, atrPeriod int, multiplier float64) (upper, middle, lower []float64, err error) {
	if err := series.ValidatePeriod(emaPeriod, "emaPeriod", 2, MaxPeriod); err != nil {
		return nil, nil, nil, err
	}
	if err := series.ValidateParam(multiplier, "multiplier", 0.1, 10); err != nil {
		return nil, nil, nil, err
	}

	ema, err := Ema(closes, emaPeriod)
	if err != nil {
		return nil, nil, nil, err
	}
	atr, err := Atr(highs, lows, closes, atrPeriod)
	if err != nil {
		return nil, nil, nil, err
	}

	n := len(ema)
	if len(atr) < n {
		n = len(atr)
	}
	ema = ema[len(ema)-n:]
	atr = atr[len(atr)-n:]

	upper = make([]float64, n)
	lower = make([]float64, n)
	for i := 0; i < n; i++ {
		upper[i] = ema[i] + multiplier*atr[i]
		lower[i] = ema[i] - multiplier*atr[i]
	}
	return upper, ema, lower, nil
}

// Donchian computes Donchian Channels: the highest high and lowest low over
// the trailing window, with the middle line as their midpoint.
func Donchian(highs, lows []float64, period int) (upper, middle, lower []float64, err error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, nil, nil, err
	}
	if err := series.ValidateMinLength(len(highs), period, "Donchian Channel"); err != nil {
		return nil, nil, nil, err
	}

	n := len(highs) - period + 1
	upper = make([]float64, 0, n)
	middle = make([]float64, 0, n)
	lower = make([]float64, 0, n)
	for i := period - 1; i < len(highs); i++ {
		hh, ll := highs[i], lows[i]
		for j := i - period + 1; j <= i; j++ {
			if highs[j] > hh {
				hh = highs[j]
			}
			if lows[j] < ll {
				ll = lows[j]
			}
		}
		upper = append(upper, hh)
		lower = append(lower, ll)
		middle = append(middle, (hh+ll)/2)
	}
	return upper, middle, lower, nil
}

// RollingStdDev computes the population standard deviation over the
// trailing window.
func RollingStdDev(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period, "StdDev"); err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(values)-period+1)
	for i := period - 1; i < len(values); i++ {
		var sum float64
		for j := i - period + 1; j <= i; j++ {
			sum += values[j]
		}
		mean := sum / float64(period)

		var variance float64
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		out = append(out, math.Sqrt(variance/float64(period)))
	}
	return out, nil
}
