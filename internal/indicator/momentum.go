package indicator

import (
	"TAEngine/internal/domain/models"
	"TAEngine/internal/indicator/series"
)

// Rsi computes the relative strength index using Wilder's smoothing of
// average gain and loss. A plain SMA of gains diverges from the reference
// after the warm-up period, so the averages are carried as a recurrence.
// Output length is len(values)-period.
func Rsi(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period+1, "RSI"); err != nil {
		return nil, err
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	out := make([]float64, 0, len(values)-period)
	out = append(out, rsiFrom(avgGain, avgLoss))

	for i := period + 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out = append(out, rsiFrom(avgGain, avgLoss))
	}
	return out, nil
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// StochasticOsc computes the fast stochastic oscillator: raw %K over
// kPeriod and %D as an SMA of %K over dPeriod. The returned slices share
// their last index; %K is truncated to the length of %D.
func StochasticOsc(highs, lows, closes []float64, kPeriod, dPeriod int) (k, d []float64, err error) {
	if err := series.ValidatePeriod(kPeriod, "kPeriod", 2, MaxPeriod); err != nil {
		return nil, nil, err
	}
	if err := series.ValidatePeriod(dPeriod, "dPeriod", 1, MaxPeriod); err != nil {
		return nil, nil, err
	}
	if err := series.ValidateMinLength(len(closes), kPeriod+dPeriod-1, "Stochastic"); err != nil {
		return nil, nil, err
	}

	rawK := make([]float64, 0, len(closes)-kPeriod+1)
	for i := kPeriod - 1; i < len(closes); i++ {
		hh, ll := highs[i], lows[i]
		for j := i - kPeriod + 1; j <= i; j++ {
			if highs[j] > hh {
				hh = highs[j]
			}
			if lows[j] < ll {
				ll = lows[j]
			}
		}
		if hh == ll {
			rawK = append(rawK, 50)
			continue
		}
		rawK = append(rawK, (closes[i]-ll)/(hh-ll)*100)
	}

	d, err = Sma(rawK, dPeriod)
	if err != nil {
		return nil, nil, err
	}
	return rawK[len(rawK)-len(d):], d, nil
}

// StochasticRsiOsc computes the stochastic oscillator applied to an RSI
// series instead of price.
func StochasticRsiOsc(values []float64, rsiPeriod, stochPeriod, dPeriod int) (k, d []float64, err error) {
	rsi, err := Rsi(values, rsiPeriod)
	if err != nil {
		return nil, nil, err
	}
	if err := series.ValidatePeriod(stochPeriod, "stochPeriod", 2, MaxPeriod); err != nil {
		return nil, nil, err
	}
	if err := series.ValidateMinLength(len(rsi), stochPeriod+dPeriod-1, "StochasticRSI"); err != nil {
		return nil, nil, err
	}
	return StochasticOsc(rsi, rsi, rsi, stochPeriod, dPeriod)
}

// Macd computes the MACD line (fast EMA - slow EMA), its signal EMA and the
// histogram. All three slices share their last index.
func Macd(values []float64, fastPeriod, slowPeriod, signalPeriod int) (macd, signal, histogram []float64, err error) {
	if err := series.ValidatePeriod(fastPeriod, "fastPeriod", 2, MaxPeriod); err != nil {
		return nil, nil, nil, err
	}
	if err := series.ValidatePeriod(slowPeriod, "slowPeriod", 2, MaxPeriod); err != nil {
		return nil, nil, nil, err
	}
	if err := series.ValidatePeriod(signalPeriod, "signalPeriod", 1, MaxPeriod); err != nil {
		return nil, nil, nil, err
	}
	if fastPeriod >= slowPeriod {
		return nil, nil, nil, &models.InvalidParameterError{
			Name: "fastPeriod", Min: 2, Max: float64(slowPeriod - 1), HasMax: true, Actual: fastPeriod,
		}
	}
	if err := series.ValidateMinLength(len(values), slowPeriod+signalPeriod, "MACD"); err != nil {
		return nil, nil, nil, err
	}

	fast, err := Ema(values, fastPeriod)
	if err != nil {
		return nil, nil, nil, err
	}
	slow, err := Ema(values, slowPeriod)
	if err != nil {
		return nil, nil, nil, err
	}

	shift := len(fast) - len(slow)
	line := make([]float64, len(slow))
	for i := range slow {
		line[i] = fast[i+shift] - slow[i]
	}

	signal, err = Ema(line, signalPeriod)
	if err != nil {
		return nil, nil, nil, err
	}

	macd = line[len(line)-len(signal):]
	histogram = make([]float64, len(signal))
	for i := range signal {
		histogram[i] = macd[i] - signal[i]
	}
	return macd, signal, histogram, nil
}

// Cci computes the commodity channel index over typical prices.
func Cci(highs, lows, closes []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(closes), period, "CCI"); err != nil {
		return nil, err
	}

	tp := make([]float64, len(closes))
	for i := range closes {
		tp[i] = (highs[i] + lows[i] + closes[i]) / 3
	}

	out := make([]float64, 0, len(tp)-period+1)
	for i := period - 1; i < len(tp); i++ {
		var sum float64
		for j := i - period + 1; j <= i; j++ {
			sum += tp[j]
		}
		mean := sum / float64(period)

		var dev float64
		for j := i - period + 1; j <= i; j++ {
			d := tp[j] - mean
			if d < 0 {
				d = -d
			}
			dev += d
		}
		dev /= float64(period)
		if dev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (tp[i]-mean)/(0.015*dev))
	}
	return out, nil
}

// Roc computes the rate of change in percent over period bars.
func Roc(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period+1, "ROC"); err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(values)-period)
	for i := period; i < len(values); i++ {
		if values[i-period] == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (values[i]-values[i-period])/values[i-period]*100)
	}
	return out, nil
}

// MomentumOsc computes the raw momentum x[i] - x[i-period].
func MomentumOsc(values []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", MinPeriod, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period+1, "Momentum"); err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(values)-period)
	for i := period; i < len(values); i++ {
		out = append(out, values[i]-values[i-period])
	}
	return out, nil
}

// WilliamsPercentR computes Williams %R over the trailing window.
func WilliamsPercentR(highs, lows, closes []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(closes), period, "Williams %R"); err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(closes)-period+1)
	for i := period - 1; i < len(closes); i++ {
		hh, ll := highs[i], lows[i]
		for j := i - period + 1; j <= i; j++ {
			if highs[j] > hh {
				hh = highs[j]
			}
			if lows[j] < ll {
				ll = lows[j]
			}
		}
		if hh == ll {
			out = append(out, -50)
			continue
		}
		out = append(out, (hh-closes[i])/(hh-ll)*-100)
	}
	return out, nil
}

// Tsi computes the true strength index (double-smoothed momentum over
// double-smoothed absolute momentum) and its EMA signal line.
func Tsi(values []float64, longPeriod, shortPeriod, signalPeriod int) (tsi, signal []float64, err error) {
	if err := series.ValidatePeriod(longPeriod, "longPeriod", 2, MaxPeriod); err != nil {
		return nil, nil, err
	}
	if err := series.ValidatePeriod(shortPeriod, "shortPeriod", 2, MaxPeriod); err != nil {
		return nil, nil, err
	}
	if err := series.ValidatePeriod(signalPeriod, "signalPeriod", 1, MaxPeriod); err != nil {
		return nil, nil, err
	}
	if err := series.ValidateMinLength(len(values), longPeriod+shortPeriod+signalPeriod, "TSI"); err != nil {
		return nil, nil, err
	}

	mom := make([]float64, len(values)-1)
	absMom := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		mom[i-1] = d
		if d < 0 {
			d = -d
		}
		absMom[i-1] = d
	}

	smooth := func(xs []float64) ([]float64, error) {
		first, err := Ema(xs, longPeriod)
		if err != nil {
			return nil, err
		}
		return Ema(first, shortPeriod)
	}

	num, err := smooth(mom)
	if err != nil {
		return nil, nil, err
	}
	den, err := smooth(absMom)
	if err != nil {
		return nil, nil, err
	}

	tsi = make([]float64, len(num))
	for i := range num {
		if den[i] == 0 {
			tsi[i] = 0
			continue
		}
		tsi[i] = num[i] / den[i] * 100
	}

	signal, err = Ema(tsi, signalPeriod)
	if err != nil {
		return nil, nil, err
	}
	return tsi[len(tsi)-len(signal):], signal, nil
}
