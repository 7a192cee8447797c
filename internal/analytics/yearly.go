// Package analytics derives performance, risk and relationship metrics from
// the canonical dataset. Every engine reads the dataset and returns a new
// artifact; none mutates its input.
package analytics

import (
	"MarketLens/internal/calculator"
	"MarketLens/internal/model"
)

// DefaultRankSize is the length of the top gainers/losers/volatile views.
const DefaultRankSize = 10

// YearlyPerformance computes each symbol's whole-period return and
// annualized volatility and the ranked views over them.
func YearlyPerformance(ds *model.Dataset, rankSize int) model.YearlyPerformance {
	groups := ds.Groups()
	table := make([]model.YearlyPerformanceEntry, 0, len(groups))
	for _, g := range groups {
		buckets := calculator.FirstLast(g.Rows, calculator.WholeSeries)
		returns := make([]float64, len(g.Rows))
		for i, r := range g.Rows {
			returns[i] = r.DailyReturn
		}
		table = append(table, model.YearlyPerformanceEntry{
			Symbol:                  g.Symbol,
			YearlyReturnPct:         calculator.Round2(buckets[0].Return() * 100),
			AnnualizedVolatilityPct: calculator.AnnualizedVolatilityPct(returns),
		})
	}

	byReturn := func(e model.YearlyPerformanceEntry) float64 { return e.YearlyReturnPct }
	byVolatility := func(e model.YearlyPerformanceEntry) float64 { return e.AnnualizedVolatilityPct }

	perf := model.YearlyPerformance{
		Table:       table,
		TopGainers:  calculator.TopN(table, rankSize, byReturn, true),
		TopLosers:   calculator.TopN(table, rankSize, byReturn, false),
		TopVolatile: calculator.TopN(table, rankSize, byVolatility, true),
	}
	perf.Green, perf.Red = partition(table)
	return perf
}

// partition splits entries into green (return > 0) and red (the rest).
func partition(table []model.YearlyPerformanceEntry) (green, red []model.YearlyPerformanceEntry) {
	green = []model.YearlyPerformanceEntry{}
	red = []model.YearlyPerformanceEntry{}
	for _, e := range table {
		if e.YearlyReturnPct > 0 {
			green = append(green, e)
		} else {
			red = append(red, e)
		}
	}
	return green, red
}
