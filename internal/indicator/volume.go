package indicator

import (
	"math"

	"TAEngine/internal/indicator/series"
)

// Obv computes the on-balance volume running total. Output length equals the
// input length; the first point starts at zero.
func Obv(closes, volumes []float64) ([]float64, error) {
	if err := series.ValidateMinLength(len(closes), 2, "OBV"); err != nil {
		return nil, err
	}

	out := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			out[i] = out[i-1] + volumes[i]
		case closes[i] < closes[i-1]:
			out[i] = out[i-1] - volumes[i]
		default:
			out[i] = out[i-1]
		}
	}
	return out, nil
}

// Vwap computes the cumulative volume-weighted average price over typical
// prices. Output length equals the input length.
func Vwap(highs, lows, closes, volumes []float64) ([]float64, error) {
	if err := series.ValidateMinLength(len(closes), 1, "VWAP"); err != nil {
		return nil, err
	}

	out := make([]float64, len(closes))
	var cumPV, cumV float64
	for i := range closes {
		tp := (highs[i] + lows[i] + closes[i]) / 3
		cumPV += tp * volumes[i]
		cumV += volumes[i]
		if cumV == 0 {
			out[i] = tp
			continue
		}
		out[i] = cumPV / cumV
	}
	return out, nil
}

// AdLine computes the accumulation/distribution line. Bars with zero range
// contribute no money flow.
func AdLine(highs, lows, closes, volumes []float64) ([]float64, error) {
	if err := series.ValidateMinLength(len(closes), 1, "A/D"); err != nil {
		return nil, err
	}

	out := make([]float64, len(closes))
	var acc float64
	for i := range closes {
		rng := highs[i] - lows[i]
		if rng != 0 {
			clv := ((closes[i] - lows[i]) - (highs[i] - closes[i])) / rng
			acc += clv * volumes[i]
		}
		out[i] = acc
	}
	return out, nil
}

// Cmf computes the Chaikin money flow over the trailing window.
func Cmf(highs, lows, closes, volumes []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(closes), period, "CMF"); err != nil {
		return nil, err
	}

	mfv := make([]float64, len(closes))
	for i := range closes {
		rng := highs[i] - lows[i]
		if rng != 0 {
			clv := ((closes[i] - lows[i]) - (highs[i] - closes[i])) / rng
			mfv[i] = clv * volumes[i]
		}
	}

	out := make([]float64, 0, len(closes)-period+1)
	for i := period - 1; i < len(closes); i++ {
		var flowSum, volSum float64
		for j := i - period + 1; j <= i; j++ {
			flowSum += mfv[j]
			volSum += volumes[j]
		}
		if volSum == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, flowSum/volSum)
	}
	return out, nil
}

// Mfi computes the money flow index: the volume-weighted RSI analogue over
// typical-price money flows.
func Mfi(highs, lows, closes, volumes []float64, period int) ([]float64, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(closes), period+1, "MFI"); err != nil {
		return nil, err
	}

	tp := make([]float64, len(closes))
	for i := range closes {
		tp[i] = (highs[i] + lows[i] + closes[i]) / 3
	}

	posFlow := make([]float64, len(closes))
	negFlow := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		flow := tp[i] * volumes[i]
		if tp[i] > tp[i-1] {
			posFlow[i] = flow
		} else if tp[i] < tp[i-1] {
			negFlow[i] = flow
		}
	}

	out := make([]float64, 0, len(closes)-period)
	for i := period; i < len(closes); i++ {
		var pos, neg float64
		for j := i - period + 1; j <= i; j++ {
			pos += posFlow[j]
			neg += negFlow[j]
		}
		if neg == 0 {
			out = append(out, 100)
			continue
		}
		ratio := pos / neg
		out = append(out, 100-100/(1+ratio))
	}
	return out, nil
}

// AdxResult bundles the directional movement outputs. The three slices share
// their last index.
type AdxResult struct {
	ADX     []float64
	PlusDI  []float64
	MinusDI []float64
}

// Adx computes the average directional index with both directional lines.
// Directional movement is derived from highs and lows only, per the
// classical definition; the close enters solely through the true range
// normalization. Needs at least 2*period candles.
func Adx(highs, lows, closes []float64, period int) (*AdxResult, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(closes), 2*period, "ADX"); err != nil {
		return nil, err
	}

	tr, err := TrueRange(highs, lows, closes)
	if err != nil {
		return nil, err
	}

	n := len(tr)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < len(highs); i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM[i-1] = up
		}
		if down > up && down > 0 {
			minusDM[i-1] = down
		}
	}

	smTR := wilderSmooth(tr, period)
	smPlus := wilderSmooth(plusDM, period)
	smMinus := wilderSmooth(minusDM, period)

	m := len(smTR)
	plusDI := make([]float64, m)
	minusDI := make([]float64, m)
	dx := make([]float64, m)
	for i := 0; i < m; i++ {
		if smTR[i] != 0 {
			plusDI[i] = smPlus[i] / smTR[i] * 100
			minusDI[i] = smMinus[i] / smTR[i] * 100
		}
		sum := plusDI[i] + minusDI[i]
		if sum != 0 {
			dx[i] = math.Abs(plusDI[i]-minusDI[i]) / sum * 100
		}
	}

	adx := wilderSmooth(dx, period)
	return &AdxResult{
		ADX:     adx,
		PlusDI:  plusDI[len(plusDI)-len(adx):],
		MinusDI: minusDI[len(minusDI)-len(adx):],
	}, nil
}

// wilderSmooth applies Wilder's recursive smoothing seeded with the simple
// mean of the first window. Callers guarantee len(xs) >= period.
func wilderSmooth(xs []float64, period int) []float64 {
	var seed float64
	for _, v := range xs[:period] {
		seed += v
	}
	prev := seed / float64(period)

	out := make([]float64, 0, len(xs)-period+1)
	out = append(out, prev)
	for _, v := range xs[period:] {
		prev = (prev*float64(period-1) + v) / float64(period)
		out = append(out, prev)
	}
	return out
}
