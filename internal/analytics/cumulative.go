package analytics

import (
	"MarketLens/internal/calculator"
	"MarketLens/internal/model"
)

// DefaultTopN is how many top performers get a cumulative-return series.
const DefaultTopN = 5

// CumulativeReturns selects the topN symbols by total return and returns
// their running compounded growth, restarting at each symbol.
func CumulativeReturns(ds *model.Dataset, topN int) []model.CumulativeReturnPoint {
	buckets := calculator.FirstLast(ds.Rows(), calculator.WholeSeries)
	top := calculator.TopN(buckets, topN, calculator.Bucket.Return, true)
	selected := make(map[string]bool, len(top))
	for _, b := range top {
		selected[b.Symbol] = true
	}

	var points []model.CumulativeReturnPoint
	for _, g := range ds.Groups() {
		if !selected[g.Symbol] {
			continue
		}
		returns := make([]float64, len(g.Rows))
		for i, r := range g.Rows {
			returns[i] = r.DailyReturn
		}
		for i, growth := range calculator.CumulativeProduct(returns) {
			points = append(points, model.CumulativeReturnPoint{
				Symbol:           g.Symbol,
				Date:             g.Rows[i].Date,
				CumulativeReturn: growth,
			})
		}
	}
	return points
}
