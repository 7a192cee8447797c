package analytics

import (
	"slices"
	"time"

	"MarketLens/internal/calculator"
	"MarketLens/internal/model"
)

// DefaultMonthlyRankSize is how many gainers and losers are kept per month.
const DefaultMonthlyRankSize = 5

// MonthLayout labels a month in the ranking table.
const MonthLayout = "2006-01"

// MonthlyRanking reduces each (symbol, calendar month) to its close-to-close
// return and keeps the best and worst size symbols of every month.
func MonthlyRanking(ds *model.Dataset, size int) []model.MonthlyRankingEntry {
	buckets := calculator.FirstLast(ds.Rows(), calculator.CalendarMonth)

	byMonth := map[time.Time][]calculator.Bucket{}
	var months []time.Time
	for _, b := range buckets {
		if _, ok := byMonth[b.Key]; !ok {
			months = append(months, b.Key)
		}
		byMonth[b.Key] = append(byMonth[b.Key], b)
	}
	slices.SortFunc(months, time.Time.Compare)

	out := []model.MonthlyRankingEntry{}
	for _, month := range months {
		label := month.Format(MonthLayout)
		members := byMonth[month]
		for _, b := range calculator.TopN(members, size, calculator.Bucket.Return, true) {
			out = append(out, monthlyEntry(b, label, model.RankGainer))
		}
		for _, b := range calculator.TopN(members, size, calculator.Bucket.Return, false) {
			out = append(out, monthlyEntry(b, label, model.RankLoser))
		}
	}
	return out
}

func monthlyEntry(b calculator.Bucket, label string, kind model.RankType) model.MonthlyRankingEntry {
	return model.MonthlyRankingEntry{
		Symbol:           b.Symbol,
		MonthYear:        label,
		MonthlyReturnPct: calculator.Round2(b.Return() * 100),
		Type:             kind,
	}
}
