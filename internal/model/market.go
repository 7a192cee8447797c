package model

import (
	"slices"
	"time"
)

// DailyRecord is one row of the canonical dataset.
type DailyRecord struct {
	Symbol      string
	Date        time.Time // UTC midnight
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
	Sector      string // empty when the symbol is not in the registry
	DailyReturn float64
}

// SymbolSeries is the chronologically ordered slice of one symbol's rows.
type SymbolSeries struct {
	Symbol string
	Rows   []DailyRecord
}

// Dataset is the canonical dataset: rows sorted by (Symbol, Date).
// It is immutable once built; accessors hand out copies.
type Dataset struct {
	records []DailyRecord
}

// NewDataset wraps rows that are already sorted by (Symbol, Date).
// The slice is copied.
func NewDataset(rows []DailyRecord) *Dataset {
	return &Dataset{records: slices.Clone(rows)}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Rows returns a copy of every row in canonical order.
func (d *Dataset) Rows() []DailyRecord {
	if d == nil {
		return nil
	}
	return slices.Clone(d.records)
}

// Groups splits the dataset into per-symbol series, in symbol order.
func (d *Dataset) Groups() []SymbolSeries {
	if d.Len() == 0 {
		return nil
	}
	var groups []SymbolSeries
	start := 0
	for i := 1; i <= len(d.records); i++ {
		if i == len(d.records) || d.records[i].Symbol != d.records[start].Symbol {
			groups = append(groups, SymbolSeries{
				Symbol: d.records[start].Symbol,
				Rows:   slices.Clone(d.records[start:i]),
			})
			start = i
		}
	}
	return groups
}

// Symbols returns the distinct symbols in canonical order.
func (d *Dataset) Symbols() []string {
	groups := d.Groups()
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Symbol
	}
	return out
}

// CalendarDate returns t's calendar date (in t's own zone) as UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
