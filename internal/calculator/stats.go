package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDays is the number of trading days used to annualize.
const TradingDays = 252

// RoundTo rounds half to even at the given number of decimal places,
// the way numpy rounds. NaN and infinities pass through.
func RoundTo(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	p := math.Pow(10, float64(places))
	return math.RoundToEven(x*p) / p
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 { return RoundTo(x, 2) }

// SampleStdDev is the N-1 standard deviation. Fewer than two values yield NaN.
func SampleStdDev(x []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.StdDev(x, nil)
}

// AnnualizedVolatilityPct scales the sample stddev of daily returns to a
// yearly horizon in percent, rounded to two decimals.
func AnnualizedVolatilityPct(dailyReturns []float64) float64 {
	return Round2(SampleStdDev(dailyReturns) * math.Sqrt(TradingDays) * 100)
}

// MeanSkipNaN averages the non-NaN values. No values yields NaN.
func MeanSkipNaN(x []float64) float64 {
	vals := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// PairwiseCorrelation is the Pearson coefficient over the positions where
// both x and y are present (non-NaN). Fewer than two shared observations or a
// constant series yields NaN. The result is clamped to [-1, 1].
func PairwiseCorrelation(x, y []float64) float64 {
	n := min(len(x), len(y))
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := range n {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return math.NaN()
	}
	return max(-1, min(1, stat.Correlation(xs, ys, nil)))
}

func constant(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return false
		}
	}
	return true
}
