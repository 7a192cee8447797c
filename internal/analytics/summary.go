package analytics

import (
	"fmt"

	"MarketLens/internal/calculator"
	"MarketLens/internal/model"
)

// MarketSummary aggregates dataset-wide statistics. Means are taken over all
// rows of all symbols together, skipping missing values.
func MarketSummary(ds *model.Dataset, green, red []model.YearlyPerformanceEntry) (model.MarketSummary, error) {
	rows := ds.Rows()
	total := len(ds.Symbols())
	if total == 0 {
		return model.MarketSummary{}, fmt.Errorf("%w: market summary over zero symbols", model.ErrPrecondition)
	}

	closes := make([]float64, len(rows))
	volumes := make([]float64, len(rows))
	for i, r := range rows {
		closes[i] = r.Close
		volumes[i] = r.Volume
	}

	return model.MarketSummary{
		TotalStocks:    total,
		GreenStocks:    len(green),
		RedStocks:      len(red),
		AvgClosePrice:  calculator.MeanSkipNaN(closes),
		AvgDailyVolume: calculator.MeanSkipNaN(volumes),
		GreenPercent:   float64(len(green)) / float64(total) * 100,
	}, nil
}
