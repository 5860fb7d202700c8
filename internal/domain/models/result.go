package models

import "time"

// IndicatorValue is the per-type payload of an IndicatorResult. The concrete
// shape depends on the indicator family; each variant is a struct below.
type IndicatorValue interface {
	indicatorValue()
}

// ResultMetadata describes how a result was produced.
type ResultMetadata struct {
	Period            int            `json:"period,omitempty"`
	Parameters        map[string]any `json:"parameters,omitempty"`
	CalculationTimeMs float64        `json:"calculationTimeMs"`
}

// IndicatorResult is the uniform envelope returned by the dispatcher.
type IndicatorResult struct {
	Type      IndicatorType     `json:"type"`
	Category  IndicatorCategory `json:"category"`
	Timestamp time.Time         `json:"timestamp"`
	Value     IndicatorValue    `json:"value"`
	Metadata  ResultMetadata    `json:"metadata"`
}

// SingleValue carries one scalar (ROC, momentum, ATR, OBV, VWAP, ...).
type SingleValue struct {
	Value float64 `json:"value"`
}

// MAValue carries the latest moving-average point plus the recent trend of
// the average itself.
type MAValue struct {
	Value float64 `json:"value"`
	Trend string  `json:"trend"` // up, down, sideways
}

// OscillatorValue carries a bounded oscillator reading with threshold flags
// (RSI, Williams %R, MFI, CCI).
type OscillatorValue struct {
	Value      float64 `json:"value"`
	Overbought bool    `json:"overbought"`
	Oversold   bool    `json:"oversold"`
}

// MACDValue carries the MACD line, its signal line and the histogram.
type MACDValue struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// StochasticValue carries %K/%D with threshold flags.
type StochasticValue struct {
	K          float64 `json:"k"`
	D          float64 `json:"d"`
	Overbought bool    `json:"overbought"`
	Oversold   bool    `json:"oversold"`
}

// TSIValue carries the true strength index and its signal line.
type TSIValue struct {
	TSI    float64 `json:"tsi"`
	Signal float64 `json:"signal"`
}

// BandsValue carries a three-band channel. Bandwidth and PercentB are only
// populated for Bollinger Bands.
type BandsValue struct {
	Upper     float64 `json:"upper"`
	Middle    float64 `json:"middle"`
	Lower     float64 `json:"lower"`
	Bandwidth float64 `json:"bandwidth,omitempty"`
	PercentB  float64 `json:"percentB,omitempty"`
}

// ADXValue carries the average directional index with both directional lines.
type ADXValue struct {
	ADX      float64 `json:"adx"`
	PlusDI   float64 `json:"plusDI"`
	MinusDI  float64 `json:"minusDI"`
	Strength string  `json:"strength"` // weak, moderate, strong, very_strong
}

// LinRegValue carries a windowed linear-regression fit.
type LinRegValue struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Forecast  float64 `json:"forecast"`
}

// SuperTrendValue carries the latest SuperTrend line, trend direction and
// the signal emitted by the most recent direction transition.
type SuperTrendValue struct {
	Value     float64 `json:"value"`
	Direction string  `json:"direction"` // up, down
	Signal    string  `json:"signal"`    // buy, sell, hold
}

// IchimokuValue carries the five Ichimoku series at their latest points plus
// the derived cloud state and signal.
type IchimokuValue struct {
	TenkanSen     float64 `json:"tenkanSen"`
	KijunSen      float64 `json:"kijunSen"`
	SenkouSpanA   float64 `json:"senkouSpanA"`
	SenkouSpanB   float64 `json:"senkouSpanB"`
	ChikouSpan    float64 `json:"chikouSpan"`
	CloudColor    string  `json:"cloudColor"`    // bullish, bearish
	PricePosition string  `json:"pricePosition"` // above_cloud, in_cloud, below_cloud
	Signal        string  `json:"signal"`        // strong_buy, buy, neutral, sell, strong_sell
}

// PivotPointsValue carries the pivot and three resistance/support levels.
type PivotPointsValue struct {
	Method   string  `json:"method"` // classic, fibonacci, woodie, camarilla
	Pivot    float64 `json:"pivot"`
	R1       float64 `json:"r1"`
	R2       float64 `json:"r2"`
	R3       float64 `json:"r3"`
	S1       float64 `json:"s1"`
	S2       float64 `json:"s2"`
	S3       float64 `json:"s3"`
	Position string  `json:"position"` // above_r3 ... below_s3
}

// FibLevel is one retracement/extension level.
type FibLevel struct {
	Label string  `json:"label"` // "0", "23.6", ..., "161.8"
	Ratio float64 `json:"ratio"`
	Price float64 `json:"price"`
}

// FibonacciValue carries the full level table and, when a current price was
// supplied, the nearest level to it.
type FibonacciValue struct {
	Trend        string     `json:"trend"` // uptrend, downtrend
	High         float64    `json:"high"`
	Low          float64    `json:"low"`
	Levels       []FibLevel `json:"levels"`
	NearestLevel *FibLevel  `json:"nearestLevel,omitempty"`
}

func (SingleValue) indicatorValue()      {}
func (MAValue) indicatorValue()          {}
func (OscillatorValue) indicatorValue()  {}
func (MACDValue) indicatorValue()        {}
func (StochasticValue) indicatorValue()  {}
func (TSIValue) indicatorValue()         {}
func (BandsValue) indicatorValue()       {}
func (ADXValue) indicatorValue()         {}
func (LinRegValue) indicatorValue()      {}
func (SuperTrendValue) indicatorValue()  {}
func (IchimokuValue) indicatorValue()    {}
func (PivotPointsValue) indicatorValue() {}
func (FibonacciValue) indicatorValue()   {}
