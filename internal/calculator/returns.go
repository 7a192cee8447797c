package calculator

import (
	"time"

	"MarketLens/internal/model"
)

// DailyReturns computes the day-over-day fractional change of closes.
// The first value is 0, not undefined.
func DailyReturns(closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		out[i] = (closes[i] - closes[i-1]) / closes[i-1]
	}
	return out
}

// PeriodReturn is the fractional change from first to last.
func PeriodReturn(first, last float64) float64 {
	return (last - first) / first
}

// CumulativeProduct returns the running product of (1 + r).
func CumulativeProduct(returns []float64) []float64 {
	out := make([]float64, len(returns))
	acc := 1.0
	for i, r := range returns {
		acc *= 1 + r
		out[i] = acc
	}
	return out
}

// KeyFunc assigns a row to a bucket within its symbol.
type KeyFunc func(model.DailyRecord) time.Time

// WholeSeries puts every row of a symbol into one bucket.
func WholeSeries(model.DailyRecord) time.Time { return time.Time{} }

// CalendarMonth buckets rows by the calendar month of their date.
func CalendarMonth(r model.DailyRecord) time.Time {
	y, m, _ := r.Date.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// Bucket is the first/last close reduction of one (symbol, key) partition.
type Bucket struct {
	Symbol     string
	Key        time.Time
	FirstClose float64
	LastClose  float64
	Count      int
}

// Return is the bucket's fractional change from first to last close.
func (b Bucket) Return() float64 {
	return PeriodReturn(b.FirstClose, b.LastClose)
}

// FirstLast partitions rows by (Symbol, key(row)) and reduces each partition
// to its chronologically first and last close. Rows must be sorted by
// (Symbol, Date); buckets come back in that order.
func FirstLast(rows []model.DailyRecord, key KeyFunc) []Bucket {
	var buckets []Bucket
	for _, r := range rows {
		k := key(r)
		if n := len(buckets); n > 0 && buckets[n-1].Symbol == r.Symbol && buckets[n-1].Key.Equal(k) {
			buckets[n-1].LastClose = r.Close
			buckets[n-1].Count++
			continue
		}
		buckets = append(buckets, Bucket{Symbol: r.Symbol, Key: k, FirstClose: r.Close, LastClose: r.Close, Count: 1})
	}
	return buckets
}
