package indicator

import (
	"math"

	"TAEngine/internal/indicator/series"
)

// Period bounds shared by every windowed indicator.
const (
	MinPeriod = 1
	MaxPeriod = 500
)

// Sma computes the simple moving average. Output length is len(values)-period+1.
func Sma(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period, "SMA"); err != nil {
		return nil, err
	}

	// Each window is summed from scratch. A rolling add/subtract sum leaks
	// floating-point residue, which can push the SMA of non-negative input
	// below zero.
	out := make([]float64, 0, len(values)-period+1)
	for i := period - 1; i < len(values); i++ {
		var sum float64
		for j := i - period + 1; j <= i; j++ {
			sum += values[j]
		}
		out = append(out, sum/float64(period))
	}
	return out, nil
}

// Ema computes the exponential moving average, seeded with the SMA of the
// first window. Output length is len(values)-period+1.
func Ema(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period, "EMA"); err != nil {
		return nil, err
	}

	alpha := 2.0 / float64(period+1)
	out := make([]float64, 0, len(values)-period+1)

	var seed float64
	for _, v := range values[:period] {
		seed += v
	}
	prev := seed / float64(period)
	out = append(out, prev)

	for _, v := range values[period:] {
		prev = alpha*v + (1-alpha)*prev
		out = append(out, prev)
	}
	return out, nil
}

// Wma computes the linearly weighted moving average (weights 1..period).
func Wma(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period, "WMA"); err != nil {
		return nil, err
	}

	denom := float64(period*(period+1)) / 2
	out := make([]float64, 0, len(values)-period+1)
	for i := period - 1; i < len(values); i++ {
		var sum float64
		for j := 0; j < period; j++ {
			sum += values[i-period+1+j] * float64(j+1)
		}
		out = append(out, sum/denom)
	}
	return out, nil
}

// Dema computes the double EMA: 2*EMA - EMA(EMA). Needs 2*period points.
func Dema(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), 2*period, "DEMA"); err != nil {
		return nil, err
	}

	ema1, err := Ema(values, period)
	if err != nil {
		return nil, err
	}
	ema2, err := Ema(ema1, period)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(ema2))
	shift := len(ema1) - len(ema2)
	for i := range ema2 {
		out[i] = 2*ema1[i+shift] - ema2[i]
	}
	return out, nil
}

// Tema computes the triple EMA: 3*EMA - 3*EMA(EMA) + EMA(EMA(EMA)).
// Needs 3*period points.
func Tema(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), 3*period, "TEMA"); err != nil {
		return nil, err
	}

	ema1, err := Ema(values, period)
	if err != nil {
		return nil, err
	}
	ema2, err := Ema(ema1, period)
	if err != nil {
		return nil, err
	}
	ema3, err := Ema(ema2, period)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(ema3))
	s1 := len(ema1) - len(ema3)
	s2 := len(ema2) - len(ema3)
	for i := range ema3 {
		out[i] = 3*ema1[i+s1] - 3*ema2[i+s2] + ema3[i]
	}
	return out, nil
}

// Hma computes the Hull moving average:
// WMA(2*WMA(period/2) - WMA(period), sqrt(period)).
func Hma(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	half := period / 2
	if half < 1 {
		half = 1
	}
	sqrtP := int(math.Round(math.Sqrt(float64(period))))
	if sqrtP < 1 {
		sqrtP = 1
	}

	// The final WMA over the de-lagged series needs sqrtP points of its own,
	// so the candle minimum is period+sqrtP-1, not period.
	if err := series.ValidateMinLength(len(values), period+sqrtP-1, "HMA"); err != nil {
		return nil, err
	}

	wmaHalf, err := Wma(values, half)
	if err != nil {
		return nil, err
	}
	wmaFull, err := Wma(values, period)
	if err != nil {
		return nil, err
	}

	shift := len(wmaHalf) - len(wmaFull)
	diff := make([]float64, len(wmaFull))
	for i := range wmaFull {
		diff[i] = 2*wmaHalf[i+shift] - wmaFull[i]
	}

	return Wma(diff, sqrtP)
}

// Kama computes Kaufman's adaptive moving average with fast/slow smoothing
// constants of 2 and 30. The recurrence is seeded with the SMA of the first
// window.
func Kama(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period+1, "KAMA"); err != nil {
		return nil, err
	}

	const (
		fastSC = 2.0 / (2.0 + 1.0)
		slowSC = 2.0 / (30.0 + 1.0)
	)

	out := make([]float64, 0, len(values)-period+1)
	var seed float64
	for _, v := range values[:period] {
		seed += v
	}
	prev := seed / float64(period)
	out = append(out, prev)

	for i := period; i < len(values); i++ {
		change := math.Abs(values[i] - values[i-period])
		var volatility float64
		for j := i - period + 1; j <= i; j++ {
			volatility += math.Abs(values[j] - values[j-1])
		}
		er := 0.0
		if volatility != 0 {
			er = change / volatility
		}
		sc := er*(fastSC-slowSC) + slowSC
		sc *= sc
		prev += sc * (values[i] - prev)
		out = append(out, prev)
	}
	return out, nil
}

// Zlema computes the zero-lag EMA: an EMA of the de-lagged series
// 2*x[i] - x[i-lag] with lag = (period-1)/2.
func Zlema(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	lag := (period - 1) / 2
	if err := series.ValidateMinLength(len(values), period+lag, "ZLEMA"); err != nil {
		return nil, err
	}

	delagged := make([]float64, 0, len(values)-lag)
	for i := lag; i < len(values); i++ {
		delagged = append(delagged, 2*values[i]-values[i-lag])
	}
	return Ema(delagged, period)
}

// Vwma computes the volume-weighted moving average.
func Vwma(closes, volumes []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(closes), period, "VWMA"); err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(closes)-period+1)
	for i := period - 1; i < len(closes); i++ {
		var pv, v float64
		for j := i - period + 1; j <= i; j++ {
			pv += closes[j] * volumes[j]
			v += volumes[j]
		}
		if v == 0 {
			out = append(out, closes[i])
			continue
		}
		out = append(out, pv/v)
	}
	return out, nil
}

// Alma computes the Arnaud Legoux moving average with the given offset and
// sigma shape parameters.
func Alma(values []float64, period int, offset, sigma float64) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateParam(offset, "offset", 0, 1); err != nil {
		return nil, err
	}
	if err := series.ValidateParamMin(sigma, "sigma", 0.1); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period, "ALMA"); err != nil {
		return nil, err
	}

	m := offset * float64(period-1)
	s := float64(period) / sigma
	weights := make([]float64, period)
	var norm float64
	for j := 0; j < period; j++ {
		w := math.Exp(-((float64(j) - m) * (float64(j) - m)) / (2 * s * s))
		weights[j] = w
		norm += w
	}

	out := make([]float64, 0, len(values)-period+1)
	for i := period - 1; i < len(values); i++ {
		var sum float64
		for j := 0; j < period; j++ {
			sum += values[i-period+1+j] * weights[j]
		}
		out = append(out, sum/norm)
	}
	return out, nil
}

// Trima computes the triangular moving average as an SMA of an SMA with
// window halves ceil(p/2) and floor(p/2)+1.
func Trima(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period, "TRIMA"); err != nil {
		return nil, err
	}

	p1 := (period + 1) / 2
	p2 := period/2 + 1
	first, err := Sma(values, p1)
	if err != nil {
		return nil, err
	}
	return Sma(first, p2)
}
