package analytics

import (
	"fmt"
	"math"
	"slices"
	"time"

	"MarketLens/internal/calculator"
	"MarketLens/internal/model"
)

// Correlation pivots closes into a date x symbol matrix and returns the
// pairwise Pearson correlation of every symbol pair, rounded to two decimals.
// A repeated (Symbol, Date) cannot be pivoted and fails the reshape.
func Correlation(ds *model.Dataset) (model.CorrelationMatrix, error) {
	groups := ds.Groups()
	columns, err := pivotCloses(groups)
	if err != nil {
		return model.CorrelationMatrix{}, err
	}

	n := len(groups)
	m := model.CorrelationMatrix{
		Symbols: make([]string, n),
		Values:  make([][]float64, n),
	}
	for i, g := range groups {
		m.Symbols[i] = g.Symbol
		m.Values[i] = make([]float64, n)
	}
	for i := range n {
		m.Values[i][i] = 1
		for j := i + 1; j < n; j++ {
			c := calculator.Round2(calculator.PairwiseCorrelation(columns[i], columns[j]))
			m.Values[i][j] = c
			m.Values[j][i] = c
		}
	}
	return m, nil
}

// pivotCloses returns one close column per group over the union of dates.
// Dates a symbol did not trade are NaN.
func pivotCloses(groups []model.SymbolSeries) ([][]float64, error) {
	var dates []time.Time
	seen := map[time.Time]bool{}
	for _, g := range groups {
		for _, r := range g.Rows {
			if !seen[r.Date] {
				seen[r.Date] = true
				dates = append(dates, r.Date)
			}
		}
	}
	slices.SortFunc(dates, time.Time.Compare)
	pos := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		pos[d] = i
	}

	columns := make([][]float64, len(groups))
	for i, g := range groups {
		col := make([]float64, len(dates))
		for k := range col {
			col[k] = math.NaN()
		}
		for _, r := range g.Rows {
			k := pos[r.Date]
			if !math.IsNaN(col[k]) {
				return nil, fmt.Errorf("%w: duplicate row for %s on %s",
					model.ErrPrecondition, g.Symbol, r.Date.Format(time.DateOnly))
			}
			col[k] = r.Close
		}
		columns[i] = col
	}
	return columns, nil
}
