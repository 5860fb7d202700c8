package indicator

import (
	"TAEngine/internal/domain/models"
	"TAEngine/internal/indicator/series"
)

// Pivot point formulas.
const (
	PivotClassic   = "classic"
	PivotFibonacci = "fibonacci"
	PivotWoodie    = "woodie"
	PivotCamarilla = "camarilla"
)

// PivotPointsCalc computes a pivot plus three resistance and three support
// levels from the prior candle's H/L/C (and the current open, for Woodie),
// then classifies the current close into one of eight bands, checked from
// the extremes inward.
func PivotPointsCalc(candles []models.Candle, method string) (*models.PivotPointsValue, error) {
	if err := series.ValidateMinLength(len(candles), 2, "Pivot Points"); err != nil {
		return nil, err
	}

	ref := candles[len(candles)-2]
	cur := candles[len(candles)-1]

	var pivot, r1, r2, r3, s1, s2, s3 float64
	switch method {
	case PivotClassic, "":
		method = PivotClassic
		pivot = (ref.High + ref.Low + ref.Close) / 3
		r1 = 2*pivot - ref.Low
		s1 = 2*pivot - ref.High
		r2 = pivot + (ref.High - ref.Low)
		s2 = pivot - (ref.High - ref.Low)
		r3 = ref.High + 2*(pivot-ref.Low)
		s3 = ref.Low - 2*(ref.High-pivot)
	case PivotFibonacci:
		pivot = (ref.High + ref.Low + ref.Close) / 3
		rng := ref.High - ref.Low
		r1 = pivot + 0.382*rng
		r2 = pivot + 0.618*rng
		r3 = pivot + rng
		s1 = pivot - 0.382*rng
		s2 = pivot - 0.618*rng
		s3 = pivot - rng
	case PivotWoodie:
		pivot = (ref.High + ref.Low + 2*cur.Open) / 4
		r1 = 2*pivot - ref.Low
		s1 = 2*pivot - ref.High
		r2 = pivot + (ref.High - ref.Low)
		s2 = pivot - (ref.High - ref.Low)
		r3 = ref.High + 2*(pivot-ref.Low)
		s3 = ref.Low - 2*(ref.High-pivot)
	case PivotCamarilla:
		pivot = (ref.High + ref.Low + ref.Close) / 3
		rng := ref.High - ref.Low
		r1 = ref.Close + rng*1.1/12
		r2 = ref.Close + rng*1.1/6
		r3 = ref.Close + rng*1.1/4
		s1 = ref.Close - rng*1.1/12
		s2 = ref.Close - rng*1.1/6
		s3 = ref.Close - rng*1.1/4
	default:
		return nil, &models.InvalidParameterError{Name: "method", Actual: method}
	}

	price := cur.Close
	var position string
	switch {
	case price >= r3:
		position = "above_r3"
	case price >= r2:
		position = "above_r2"
	case price >= r1:
		position = "above_r1"
	case price <= s3:
		position = "below_s3"
	case price <= s2:
		position = "below_s2"
	case price <= s1:
		position = "below_s1"
	case price > pivot:
		position = "above_pivot"
	default:
		position = "below_pivot"
	}

	return &models.PivotPointsValue{
		Method:   method,
		Pivot:    pivot,
		R1:       r1,
		R2:       r2,
		R3:       r3,
		S1:       s1,
		S2:       s2,
		S3:       s3,
		Position: position,
	}, nil
}
