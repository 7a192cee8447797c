package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"MarketLens/internal/model"
)

var requiredColumns = []string{"date", "open", "high", "low", "close", "volume"}

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01-02-2006",
	"01/02/2006",
}

// fileRows is the outcome of parsing one file.
type fileRows struct {
	rows    []model.DailyRecord
	dropped int
}

// parseFile reads one CSV payload into records. Rows lacking a date or a
// positive close are dropped; a missing required column rejects the file.
func parseFile(name string, r io.Reader) (*fileRows, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file %s is empty", name)
		}
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &model.SchemaError{File: name, Missing: missing, Found: header}
	}

	symbolIdx := -1
	if i, ok := index["ticker"]; ok {
		symbolIdx = i
	} else if i, ok := index["symbol"]; ok {
		symbolIdx = i
	}
	fallback := symbolFromFileName(name)

	out := &fileRows{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		cell := func(col string) string {
			i := index[col]
			if i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		symbol := fallback
		if symbolIdx >= 0 {
			symbol = ""
			if symbolIdx < len(rec) {
				symbol = strings.TrimSpace(rec[symbolIdx])
			}
		}
		date, ok := parseDate(cell("date"))
		closePrice := parseNumber(cell("close"))
		if symbol == "" || !ok || math.IsNaN(closePrice) || closePrice <= 0 {
			out.dropped++
			continue
		}

		out.rows = append(out.rows, model.DailyRecord{
			Symbol: symbol,
			Date:   date,
			Open:   parseNumber(cell("open")),
			High:   parseNumber(cell("high")),
			Low:    parseNumber(cell("low")),
			Close:  closePrice,
			Volume: parseNumber(cell("volume")),
		})
	}
	return out, nil
}

// symbolFromFileName takes the leading token before the first underscore.
func symbolFromFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	token, _, _ := strings.Cut(base, "_")
	return token
}

// parseNumber coerces a cell to float64; anything unparseable is NaN.
func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseDate accepts the common date layouts and truncates to a calendar date.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.CalendarDate(t), true
		}
	}
	return time.Time{}, false
}
