package models

// IndicatorType enumerates the supported indicators.
type IndicatorType string

const (
	// Moving averages
	SMA   IndicatorType = "sma"
	EMA   IndicatorType = "ema"
	WMA   IndicatorType = "wma"
	DEMA  IndicatorType = "dema"
	TEMA  IndicatorType = "tema"
	HMA   IndicatorType = "hma"
	KAMA  IndicatorType = "kama"
	ZLEMA IndicatorType = "zlema"
	VWMA  IndicatorType = "vwma"
	ALMA  IndicatorType = "alma"
	TRIMA IndicatorType = "trima"

	// Momentum / oscillators
	RSI           IndicatorType = "rsi"
	Stochastic    IndicatorType = "stochastic"
	StochasticRSI IndicatorType = "stochastic_rsi"
	MACD          IndicatorType = "macd"
	CCI           IndicatorType = "cci"
	ROC           IndicatorType = "roc"
	Momentum      IndicatorType = "momentum"
	WilliamsR     IndicatorType = "williams_r"
	TSI           IndicatorType = "tsi"

	// Volatility / bands
	ATR             IndicatorType = "atr"
	BollingerBands  IndicatorType = "bollinger_bands"
	KeltnerChannel  IndicatorType = "keltner_channel"
	DonchianChannel IndicatorType = "donchian_channel"
	StdDev          IndicatorType = "std_dev"

	// Volume
	OBV  IndicatorType = "obv"
	VWAP IndicatorType = "vwap"
	AD   IndicatorType = "ad"
	CMF  IndicatorType = "cmf"
	MFI  IndicatorType = "mfi"
	ADX  IndicatorType = "adx"

	// Linear regression
	LinearRegression IndicatorType = "linear_regression"

	// Custom algorithms
	SuperTrend           IndicatorType = "supertrend"
	Ichimoku             IndicatorType = "ichimoku"
	PivotPoints          IndicatorType = "pivot_points"
	FibonacciRetracement IndicatorType = "fibonacci_retracement"
)

// IndicatorCategory groups indicators by what they measure.
type IndicatorCategory string

const (
	CategoryTrend             IndicatorCategory = "trend"
	CategoryMomentum          IndicatorCategory = "momentum"
	CategoryVolatility        IndicatorCategory = "volatility"
	CategoryVolume            IndicatorCategory = "volume"
	CategorySupportResistance IndicatorCategory = "support_resistance"
)

var indicatorCategories = map[IndicatorType]IndicatorCategory{
	SMA:   CategoryTrend,
	EMA:   CategoryTrend,
	WMA:   CategoryTrend,
	DEMA:  CategoryTrend,
	TEMA:  CategoryTrend,
	HMA:   CategoryTrend,
	KAMA:  CategoryTrend,
	ZLEMA: CategoryTrend,
	VWMA:  CategoryTrend,
	ALMA:  CategoryTrend,
	TRIMA: CategoryTrend,

	RSI:           CategoryMomentum,
	Stochastic:    CategoryMomentum,
	StochasticRSI: CategoryMomentum,
	MACD:          CategoryMomentum,
	CCI:           CategoryMomentum,
	ROC:           CategoryMomentum,
	Momentum:      CategoryMomentum,
	WilliamsR:     CategoryMomentum,
	TSI:           CategoryMomentum,

	ATR:             CategoryVolatility,
	BollingerBands:  CategoryVolatility,
	KeltnerChannel:  CategoryVolatility,
	DonchianChannel: CategoryVolatility,
	StdDev:          CategoryVolatility,

	OBV:  CategoryVolume,
	VWAP: CategoryVolume,
	AD:   CategoryVolume,
	CMF:  CategoryVolume,
	MFI:  CategoryVolume,
	ADX:  CategoryTrend,

	LinearRegression: CategoryTrend,

	SuperTrend:           CategoryTrend,
	Ichimoku:             CategoryTrend,
	PivotPoints:          CategorySupportResistance,
	FibonacciRetracement: CategorySupportResistance,
}

// CategoryOf returns the category of an indicator type.
// The second return is false for unknown types.
func CategoryOf(t IndicatorType) (IndicatorCategory, bool) {
	c, ok := indicatorCategories[t]
	return c, ok
}

// IsValidIndicator reports whether t is a supported indicator type.
func IsValidIndicator(t IndicatorType) bool {
	_, ok := indicatorCategories[t]
	return ok
}

// IndicatorConfig is one indicator request: the type plus its parameters.
// Parameters are indicator-specific and validated at the dispatcher boundary.
type IndicatorConfig struct {
	Type       IndicatorType  `json:"type" validate:"required"`
	Period     int            `json:"period,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}
