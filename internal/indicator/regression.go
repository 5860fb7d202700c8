package indicator

import (
	"TAEngine/internal/indicator/series"
)

// LinRegResult bundles the rolling linear-regression outputs. The slices
// share their last index.
type LinRegResult struct {
	Slope     []float64
	Intercept []float64
	Forecast  []float64
}

// LinReg fits a least-squares line over each trailing window (x = 0..p-1
// inside the window) and forecasts one bar past the window end. Closed form,
// no recurrence.
func LinReg(values []float64, period int) (*LinRegResult, error) {
	if err := series.ValidatePeriod(period, "period", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidateMinLength(len(values), period, "Linear Regression"); err != nil {
		return nil, err
	}

	p := float64(period)
	sumX := p * (p - 1) / 2
	sumX2 := (p - 1) * p * (2*p - 1) / 6
	denom := p*sumX2 - sumX*sumX

	n := len(values) - period + 1
	res := &LinRegResult{
		Slope:     make([]float64, 0, n),
		Intercept: make([]float64, 0, n),
		Forecast:  make([]float64, 0, n),
	}
	for i := period - 1; i < len(values); i++ {
		var sumY, sumXY float64
		for j := 0; j < period; j++ {
			y := values[i-period+1+j]
			sumY += y
			sumXY += float64(j) * y
		}
		slope := (p*sumXY - sumX*sumY) / denom
		intercept := (sumY - slope*sumX) / p
		res.Slope = append(res.Slope, slope)
		res.Intercept = append(res.Intercept, intercept)
		res.Forecast = append(res.Forecast, intercept+slope*p)
	}
	return res, nil
}
