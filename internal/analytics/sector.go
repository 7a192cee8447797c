package analytics

import (
	"maps"
	"slices"

	"MarketLens/internal/calculator"
	"MarketLens/internal/model"
	"MarketLens/internal/sector"
)

// SectorPerformance averages member symbols' yearly return per sector.
// Symbols missing from the registry are left out.
func SectorPerformance(table []model.YearlyPerformanceEntry, registry *sector.Registry) []model.SectorPerformanceEntry {
	members := map[string][]float64{}
	for _, e := range table {
		s, ok := registry.Lookup(e.Symbol)
		if !ok {
			continue
		}
		members[s] = append(members[s], e.YearlyReturnPct)
	}

	out := make([]model.SectorPerformanceEntry, 0, len(members))
	for _, s := range slices.Sorted(maps.Keys(members)) {
		out = append(out, model.SectorPerformanceEntry{
			Sector:             s,
			AvgYearlyReturnPct: calculator.Round2(calculator.MeanSkipNaN(members[s])),
		})
	}
	return out
}
