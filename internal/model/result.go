package model

// Result carries every artifact produced by one pipeline run.
// Consumers must treat it as read-only.
type Result struct {
	Dataset        *Dataset
	Summary        MarketSummary
	Yearly         YearlyPerformance
	Cumulative     []CumulativeReturnPoint
	Sectors        []SectorPerformanceEntry
	Correlation    CorrelationMatrix
	MonthlyRanking []MonthlyRankingEntry
}
