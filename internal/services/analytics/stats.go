package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"MarketMCP/internal/domain/models"
)

// meanStd returns the population mean and standard deviation of xs.
// xs must be non-empty.
func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 1 {
		return xs[0], 0
	}
	return stat.PopMeanStdDev(xs, nil)
}

// zScore assumes std > 0.
func zScore(x, mean, std float64) float64 {
	return (x - mean) / std
}

// leastSquares fits ys[t] = slope*t + intercept over t = 0..n-1.
// A single point yields slope 0 and intercept equal to that point.
func leastSquares(ys []float64) (slope, intercept float64) {
	if len(ys) == 1 {
		return 0, ys[0]
	}
	ts := make([]float64, len(ys))
	for i := range ts {
		ts[i] = float64(i)
	}
	intercept, slope = stat.LinearRegression(ts, ys, nil, false)
	return slope, intercept
}

// rmsResidual is the root mean square of ys[t] - (slope*t + intercept).
func rmsResidual(ys []float64, slope, intercept float64) float64 {
	var ss float64
	for t, y := range ys {
		r := y - (slope*float64(t) + intercept)
		ss += r * r
	}
	return math.Sqrt(ss / float64(len(ys)))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkFinite(field string, v float64) error {
	if !isFinite(v) {
		return models.InvalidInput(field, "must be a finite number")
	}
	return nil
}

// checkOverflow rejects computed values that left the float64 range even
// though every input was finite.
func checkOverflow(field string, vs ...float64) error {
	for _, v := range vs {
		if !isFinite(v) {
			return models.InvalidInput(field, "overflows float64")
		}
	}
	return nil
}

// checkSeries rejects an empty series and non-finite closes (and volumes
// when withVolume is set).
func checkSeries(s models.Series, withVolume bool) error {
	if len(s) == 0 {
		return models.InvalidInput("data", "must contain at least one element")
	}
	for i, p := range s {
		if err := checkFinite(fmt.Sprintf("data[%d].close", i), p.Close); err != nil {
			return err
		}
		if withVolume {
			if err := checkFinite(fmt.Sprintf("data[%d].volume", i), p.Volume); err != nil {
				return err
			}
		}
	}
	return nil
}
