package model

import "time"

// YearlyPerformanceEntry holds one symbol's whole-period return and risk.
type YearlyPerformanceEntry struct {
	Symbol                  string
	YearlyReturnPct         float64
	AnnualizedVolatilityPct float64 // NaN when the symbol has a single observation
}

// YearlyPerformance is the full per-symbol table and its ranked views.
type YearlyPerformance struct {
	Table       []YearlyPerformanceEntry
	TopGainers  []YearlyPerformanceEntry
	TopLosers   []YearlyPerformanceEntry
	TopVolatile []YearlyPerformanceEntry
	Green       []YearlyPerformanceEntry
	Red         []YearlyPerformanceEntry
}

// MarketSummary holds dataset-wide scalar statistics.
type MarketSummary struct {
	TotalStocks    int
	GreenStocks    int
	RedStocks      int
	AvgClosePrice  float64
	AvgDailyVolume float64
	GreenPercent   float64
}

// CumulativeReturnPoint is the compounded growth factor of a symbol at a date.
type CumulativeReturnPoint struct {
	Symbol           string
	Date             time.Time
	CumulativeReturn float64
}

// SectorPerformanceEntry is the mean yearly return of a sector's members.
type SectorPerformanceEntry struct {
	Sector             string
	AvgYearlyReturnPct float64
}
