package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
)

func rec(symbol string, y int, m time.Month, d int, close float64) model.DailyRecord {
	return model.DailyRecord{Symbol: symbol, Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Close: close}
}

func TestDailyReturns(t *testing.T) {
	got := DailyReturns([]float64{100, 110, 121})
	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got[0])
	assert.InDelta(t, 0.10, got[1], 1e-12)
	assert.InDelta(t, 0.10, got[2], 1e-12)

	assert.Equal(t, []float64{0}, DailyReturns([]float64{42}))
	assert.Empty(t, DailyReturns(nil))
}

func TestCumulativeProduct(t *testing.T) {
	got := CumulativeProduct([]float64{0, 0.1, -0.5})
	assert.Equal(t, 1.0, got[0])
	assert.InDelta(t, 1.1, got[1], 1e-12)
	assert.InDelta(t, 0.55, got[2], 1e-12)
}

func TestFirstLast_WholeSeries(t *testing.T) {
	rows := []model.DailyRecord{
		rec("AAA", 2024, 1, 1, 100),
		rec("AAA", 2024, 1, 2, 110),
		rec("AAA", 2024, 2, 1, 121),
		rec("BBB", 2024, 1, 1, 50),
	}
	buckets := FirstLast(rows, WholeSeries)
	require.Len(t, buckets, 2)

	assert.Equal(t, "AAA", buckets[0].Symbol)
	assert.Equal(t, 100.0, buckets[0].FirstClose)
	assert.Equal(t, 121.0, buckets[0].LastClose)
	assert.Equal(t, 3, buckets[0].Count)
	assert.InDelta(t, 0.21, buckets[0].Return(), 1e-12)

	assert.Equal(t, 1, buckets[1].Count)
	assert.Equal(t, 0.0, buckets[1].Return())
}

func TestFirstLast_CalendarMonth(t *testing.T) {
	rows := []model.DailyRecord{
		rec("AAA", 2024, 1, 2, 100),
		rec("AAA", 2024, 1, 31, 105),
		rec("AAA", 2024, 2, 1, 90),
		rec("AAA", 2024, 2, 29, 99),
		rec("BBB", 2024, 1, 15, 10),
	}
	buckets := FirstLast(rows, CalendarMonth)
	require.Len(t, buckets, 3)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), buckets[0].Key)
	assert.InDelta(t, 0.05, buckets[0].Return(), 1e-12)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), buckets[1].Key)
	assert.InDelta(t, 0.10, buckets[1].Return(), 1e-12)
	assert.Equal(t, "BBB", buckets[2].Symbol)
}

func TestFirstLast_Empty(t *testing.T) {
	assert.Empty(t, FirstLast(nil, WholeSeries))
}
