package usecase

import (
	"TAEngine/internal/domain/models"
	"TAEngine/internal/indicator"
	"TAEngine/internal/indicator/series"
)

// calcFunc parses the indicator-specific configuration, runs the matching
// function and shapes the latest values into the result payload.
type calcFunc func(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error)

// Per-indicator configuration structs. Defaults follow the conventional
// settings for each indicator; ranges mirror the function-level validators.
type maParams struct {
	Period int `json:"period" default:"20" validate:"min=1,max=500"`
}

func (p maParams) period() int { return p.Period }

type rocParams struct {
	Period int `json:"period" default:"12" validate:"min=1,max=500"`
}

func (p rocParams) period() int { return p.Period }

type momentumParams struct {
	Period int `json:"period" default:"10" validate:"min=1,max=500"`
}

func (p momentumParams) period() int { return p.Period }

type atrParams struct {
	Period int `json:"period" default:"14" validate:"min=1,max=500"`
}

func (p atrParams) period() int { return p.Period }

type stdDevParams struct {
	Period int `json:"period" default:"20" validate:"min=2,max=500"`
}

func (p stdDevParams) period() int { return p.Period }

type rsiParams struct {
	Period int `json:"period" default:"14" validate:"min=2,max=500"`
}

type stochParams struct {
	KPeriod int `json:"kPeriod" default:"14" validate:"min=2,max=500"`
	DPeriod int `json:"dPeriod" default:"3" validate:"min=1,max=500"`
}

type stochRsiParams struct {
	RsiPeriod   int `json:"rsiPeriod" default:"14" validate:"min=2,max=500"`
	StochPeriod int `json:"stochPeriod" default:"14" validate:"min=2,max=500"`
	DPeriod     int `json:"dPeriod" default:"3" validate:"min=1,max=500"`
}

type macdParams struct {
	FastPeriod   int `json:"fastPeriod" default:"12" validate:"min=2,max=500"`
	SlowPeriod   int `json:"slowPeriod" default:"26" validate:"min=2,max=500"`
	SignalPeriod int `json:"signalPeriod" default:"9" validate:"min=1,max=500"`
}

type tsiParams struct {
	LongPeriod   int `json:"longPeriod" default:"25" validate:"min=2,max=500"`
	ShortPeriod  int `json:"shortPeriod" default:"13" validate:"min=2,max=500"`
	SignalPeriod int `json:"signalPeriod" default:"9" validate:"min=1,max=500"`
}

type bollingerParams struct {
	Period           int     `json:"period" default:"20" validate:"min=2,max=500"`
	StdDevMultiplier float64 `json:"stdDevMultiplier" default:"2.0" validate:"min=0.1,max=10"`
}

type keltnerParams struct {
	EmaPeriod  int     `json:"emaPeriod" default:"20" validate:"min=2,max=500"`
	AtrPeriod  int     `json:"atrPeriod" default:"10" validate:"min=1,max=500"`
	Multiplier float64 `json:"multiplier" default:"2.0" validate:"min=0.1,max=10"`
}

type almaParams struct {
	Period int     `json:"period" default:"9" validate:"min=1,max=500"`
	Offset float64 `json:"offset" default:"0.85" validate:"min=0,max=1"`
	Sigma  float64 `json:"sigma" default:"6.0" validate:"min=0.1"`
}

type superTrendParams struct {
	AtrPeriod  int     `json:"atrPeriod" default:"10" validate:"min=1,max=500"`
	Multiplier float64 `json:"multiplier" default:"3.0" validate:"min=0.1,max=10"`
}

type ichimokuParams struct {
	TenkanPeriod  int `json:"tenkanPeriod" default:"9" validate:"min=2,max=500"`
	KijunPeriod   int `json:"kijunPeriod" default:"26" validate:"min=2,max=500"`
	SenkouBPeriod int `json:"senkouBPeriod" default:"52" validate:"min=2,max=500"`
	Displacement  int `json:"displacement" default:"26" validate:"min=1,max=500"`
}

type pivotParams struct {
	Method string `json:"method" default:"classic" validate:"oneof=classic fibonacci woodie camarilla"`
}

type fibonacciParams struct {
	High         *float64 `json:"high,omitempty"`
	Low          *float64 `json:"low,omitempty"`
	Trend        string   `json:"trend,omitempty" validate:"omitempty,oneof=uptrend downtrend"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
}

type noParams struct{}

var registry = map[models.IndicatorType]calcFunc{
	models.SMA:   maCalc(indicator.Sma),
	models.EMA:   maCalc(indicator.Ema),
	models.WMA:   maCalc(indicator.Wma),
	models.DEMA:  maCalc(indicator.Dema),
	models.TEMA:  maCalc(indicator.Tema),
	models.HMA:   maCalc(indicator.Hma),
	models.KAMA:  maCalc(indicator.Kama),
	models.ZLEMA: maCalc(indicator.Zlema),
	models.ALMA:  calcAlma,
	models.TRIMA: maCalc(indicator.Trima),
	models.VWMA:  calcVwma,

	models.RSI:           calcRsi,
	models.Stochastic:    calcStochastic,
	models.StochasticRSI: calcStochasticRsi,
	models.MACD:          calcMacd,
	models.CCI:           calcCci,
	models.ROC:           scalarCalc[rocParams](func(c ohlcv, p int) ([]float64, error) { return indicator.Roc(c.closes, p) }),
	models.Momentum:      scalarCalc[momentumParams](func(c ohlcv, p int) ([]float64, error) { return indicator.MomentumOsc(c.closes, p) }),
	models.WilliamsR:     calcWilliamsR,
	models.TSI:           calcTsi,

	models.ATR:             scalarCalc[atrParams](func(c ohlcv, p int) ([]float64, error) { return indicator.Atr(c.highs, c.lows, c.closes, p) }),
	models.BollingerBands:  calcBollinger,
	models.KeltnerChannel:  calcKeltner,
	models.DonchianChannel: calcDonchian,
	models.StdDev:          scalarCalc[stdDevParams](func(c ohlcv, p int) ([]float64, error) { return indicator.RollingStdDev(c.closes, p) }),

	models.OBV:  cumulativeCalc(func(c ohlcv) ([]float64, error) { return indicator.Obv(c.closes, c.volumes) }),
	models.VWAP: cumulativeCalc(func(c ohlcv) ([]float64, error) { return indicator.Vwap(c.highs, c.lows, c.closes, c.volumes) }),
	models.AD:   cumulativeCalc(func(c ohlcv) ([]float64, error) { return indicator.AdLine(c.highs, c.lows, c.closes, c.volumes) }),
	models.CMF:  scalarCalc[maParams](func(c ohlcv, p int) ([]float64, error) { return indicator.Cmf(c.highs, c.lows, c.closes, c.volumes, p) }),
	models.MFI:  calcMfi,
	models.ADX:  calcAdx,

	models.LinearRegression: calcLinReg,

	models.SuperTrend:           calcSuperTrend,
	models.Ichimoku:             calcIchimoku,
	models.PivotPoints:          calcPivotPoints,
	models.FibonacciRetracement: calcFibonacci,
}

// ohlcv bundles the extracted component arrays.
type ohlcv struct {
	opens, highs, lows, closes, volumes []float64
}

func extract(candles []models.Candle) ohlcv {
	return ohlcv{
		opens:   series.Opens(candles),
		highs:   series.Highs(candles),
		lows:    series.Lows(candles),
		closes:  series.Closes(candles),
		volumes: series.Volumes(candles),
	}
}

func last(xs []float64) float64 { return xs[len(xs)-1] }

// maCalc wraps a close-price moving average into the MAValue shape.
func maCalc(fn func([]float64, int) ([]float64, error)) calcFunc {
	return func(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
		p, err := decodeParams[maParams](cfg)
		if err != nil {
			return nil, calcMeta{}, err
		}
		out, err := fn(series.Closes(candles), p.Period)
		if err != nil {
			return nil, calcMeta{}, err
		}
		return models.MAValue{
			Value: last(out),
			Trend: indicator.DetermineTrend(out, 3),
		}, calcMeta{period: p.Period}, nil
	}
}

// periodParams is implemented by the single-period config structs so the
// scalar wrapper can stay generic over their differing defaults.
type periodParams interface {
	period() int
}

// scalarCalc wraps a single-series windowed transform into SingleValue.
func scalarCalc[T periodParams](fn func(ohlcv, int) ([]float64, error)) calcFunc {
	return func(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
		p, err := decodeParams[T](cfg)
		if err != nil {
			return nil, calcMeta{}, err
		}
		period := (*p).period()
		out, err := fn(extract(candles), period)
		if err != nil {
			return nil, calcMeta{}, err
		}
		return models.SingleValue{Value: last(out)}, calcMeta{period: period}, nil
	}
}

// cumulativeCalc wraps a full-length cumulative transform into SingleValue.
func cumulativeCalc(fn func(ohlcv) ([]float64, error)) calcFunc {
	return func(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
		if _, err := decodeParams[noParams](cfg); err != nil {
			return nil, calcMeta{}, err
		}
		out, err := fn(extract(candles))
		if err != nil {
			return nil, calcMeta{}, err
		}
		return models.SingleValue{Value: last(out)}, calcMeta{}, nil
	}
}

func calcAlma(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[almaParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	out, err := indicator.Alma(series.Closes(candles), p.Period, p.Offset, p.Sigma)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return models.MAValue{Value: last(out), Trend: indicator.DetermineTrend(out, 3)},
		calcMeta{period: p.Period, params: map[string]any{"offset": p.Offset, "sigma": p.Sigma}}, nil
}

func calcVwma(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[maParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	c := extract(candles)
	out, err := indicator.Vwma(c.closes, c.volumes, p.Period)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return models.MAValue{Value: last(out), Trend: indicator.DetermineTrend(out, 3)},
		calcMeta{period: p.Period}, nil
}

func calcRsi(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[rsiParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	out, err := indicator.Rsi(series.Closes(candles), p.Period)
	if err != nil {
		return nil, calcMeta{}, err
	}
	v := last(out)
	return models.OscillatorValue{Value: v, Overbought: v >= 70, Oversold: v <= 30},
		calcMeta{period: p.Period}, nil
}

func calcStochastic(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[stochParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	c := extract(candles)
	k, d, err := indicator.StochasticOsc(c.highs, c.lows, c.closes, p.KPeriod, p.DPeriod)
	if err != nil {
		return nil, calcMeta{}, err
	}
	kv := last(k)
	return models.StochasticValue{K: kv, D: last(d), Overbought: kv >= 80, Oversold: kv <= 20},
		calcMeta{period: p.KPeriod, params: map[string]any{"dPeriod": p.DPeriod}}, nil
}

func calcStochasticRsi(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[stochRsiParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	k, d, err := indicator.StochasticRsiOsc(series.Closes(candles), p.RsiPeriod, p.StochPeriod, p.DPeriod)
	if err != nil {
		return nil, calcMeta{}, err
	}
	kv := last(k)
	return models.StochasticValue{K: kv, D: last(d), Overbought: kv >= 80, Oversold: kv <= 20},
		calcMeta{period: p.RsiPeriod, params: map[string]any{"stochPeriod": p.StochPeriod, "dPeriod": p.DPeriod}}, nil
}

func calcMacd(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[macdParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	macd, signal, hist, err := indicator.Macd(series.Closes(candles), p.FastPeriod, p.SlowPeriod, p.SignalPeriod)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return models.MACDValue{MACD: last(macd), Signal: last(signal), Histogram: last(hist)},
		calcMeta{params: map[string]any{"fastPeriod": p.FastPeriod, "slowPeriod": p.SlowPeriod, "signalPeriod": p.SignalPeriod}}, nil
}

func calcCci(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[maParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	c := extract(candles)
	out, err := indicator.Cci(c.highs, c.lows, c.closes, p.Period)
	if err != nil {
		return nil, calcMeta{}, err
	}
	v := last(out)
	return models.OscillatorValue{Value: v, Overbought: v >= 100, Oversold: v <= -100},
		calcMeta{period: p.Period}, nil
}

func calcWilliamsR(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[rsiParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	c := extract(candles)
	out, err := indicator.WilliamsPercentR(c.highs, c.lows, c.closes, p.Period)
	if err != nil {
		return nil, calcMeta{}, err
	}
	v := last(out)
	return models.OscillatorValue{Value: v, Overbought: v >= -20, Oversold: v <= -80},
		calcMeta{period: p.Period}, nil
}

func calcTsi(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[tsiParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	tsi, signal, err := indicator.Tsi(series.Closes(candles), p.LongPeriod, p.ShortPeriod, p.SignalPeriod)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return models.TSIValue{TSI: last(tsi), Signal: last(signal)},
		calcMeta{params: map[string]any{"longPeriod": p.LongPeriod, "shortPeriod": p.ShortPeriod, "signalPeriod": p.SignalPeriod}}, nil
}

func calcMfi(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[rsiParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	c := extract(candles)
	out, err := indicator.Mfi(c.highs, c.lows, c.closes, c.volumes, p.Period)
	if err != nil {
		return nil, calcMeta{}, err
	}
	v := last(out)
	return models.OscillatorValue{Value: v, Overbought: v >= 80, Oversold: v <= 20},
		calcMeta{period: p.Period}, nil
}

func calcBollinger(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[bollingerParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	b, err := indicator.Bollinger(series.Closes(candles), p.Period, p.StdDevMultiplier)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return models.BandsValue{
			Upper:     last(b.Upper),
			Middle:    last(b.Middle),
			Lower:     last(b.Lower),
			Bandwidth: last(b.Bandwidth),
			PercentB:  last(b.PercentB),
		},
		calcMeta{period: p.Period, params: map[string]any{"stdDevMultiplier": p.StdDevMultiplier}}, nil
}

func calcKeltner(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[keltnerParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	c := extract(candles)
	upper, middle, lower, err := indicator.Keltner(c.highs, c.lows, c.closes, p.EmaPeriod, p.AtrPeriod, p.Multiplier)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return models.BandsValue{Upper: last(upper), Middle: last(middle), Lower: last(lower)},
		calcMeta{period: p.EmaPeriod, params: map[string]any{"atrPeriod": p.AtrPeriod, "multiplier": p.Multiplier}}, nil
}

func calcDonchian(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[maParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	c := extract(candles)
	upper, middle, lower, err := indicator.Donchian(c.highs, c.lows, p.Period)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return models.BandsValue{Upper: last(upper), Middle: last(middle), Lower: last(lower)},
		calcMeta{period: p.Period}, nil
}

func calcAdx(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[rsiParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	c := extract(candles)
	res, err := indicator.Adx(c.highs, c.lows, c.closes, p.Period)
	if err != nil {
		return nil, calcMeta{}, err
	}
	adx := last(res.ADX)
	var strength string
	switch {
	case adx < 20:
		strength = "weak"
	case adx < 40:
		strength = "moderate"
	case adx < 60:
		strength = "strong"
	default:
		strength = "very_strong"
	}
	return models.ADXValue{ADX: adx, PlusDI: last(res.PlusDI), MinusDI: last(res.MinusDI), Strength: strength},
		calcMeta{period: p.Period}, nil
}

func calcLinReg(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[rsiParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	res, err := indicator.LinReg(series.Closes(candles), p.Period)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return models.LinRegValue{Slope: last(res.Slope), Intercept: last(res.Intercept), Forecast: last(res.Forecast)},
		calcMeta{period: p.Period}, nil
}

func calcSuperTrend(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[superTrendParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	c := extract(candles)
	res, err := indicator.SuperTrendCalc(c.highs, c.lows, c.closes, p.AtrPeriod, p.Multiplier)
	if err != nil {
		return nil, calcMeta{}, err
	}
	n := len(res.Value) - 1
	return models.SuperTrendValue{Value: res.Value[n], Direction: res.Direction[n], Signal: res.Signal[n]},
		calcMeta{period: p.AtrPeriod, params: map[string]any{"multiplier": p.Multiplier}}, nil
}

func calcIchimoku(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[ichimokuParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	c := extract(candles)
	v, err := indicator.IchimokuCalc(c.highs, c.lows, c.closes, p.TenkanPeriod, p.KijunPeriod, p.SenkouBPeriod, p.Displacement)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return *v, calcMeta{params: map[string]any{
		"tenkanPeriod":  p.TenkanPeriod,
		"kijunPeriod":   p.KijunPeriod,
		"senkouBPeriod": p.SenkouBPeriod,
		"displacement":  p.Displacement,
	}}, nil
}

func calcPivotPoints(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[pivotParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	v, err := indicator.PivotPointsCalc(candles, p.Method)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return *v, calcMeta{params: map[string]any{"method": p.Method}}, nil
}

func calcFibonacci(candles []models.Candle, cfg models.IndicatorConfig) (models.IndicatorValue, calcMeta, error) {
	p, err := decodeParams[fibonacciParams](cfg)
	if err != nil {
		return nil, calcMeta{}, err
	}
	if err := series.ValidateMinLength(len(candles), 2, "Fibonacci Retracement"); err != nil {
		return nil, calcMeta{}, err
	}

	c := extract(candles)
	high, low := c.highs[0], c.lows[0]
	for i := range c.highs {
		if c.highs[i] > high {
			high = c.highs[i]
		}
		if c.lows[i] < low {
			low = c.lows[i]
		}
	}
	if p.High != nil {
		high = *p.High
	}
	if p.Low != nil {
		low = *p.Low
	}

	trend := p.Trend
	if trend == "" {
		trend = indicator.TrendUptrend
		if indicator.DetermineTrend(c.closes, 3) == indicator.TrendDown {
			trend = indicator.TrendDowntrend
		}
	}

	price := last(c.closes)
	if p.CurrentPrice != nil {
		price = *p.CurrentPrice
	}

	v, err := indicator.FibonacciCalc(high, low, trend, &price)
	if err != nil {
		return nil, calcMeta{}, err
	}
	return *v, calcMeta{params: map[string]any{"high": high, "low": low, "trend": trend}}, nil
}
