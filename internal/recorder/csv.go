package recorder

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"MarketLens/internal/model"
)

// CSVHeader is the column order of the flat export.
var CSVHeader = []string{"Symbol", "Date", "open", "high", "low", "close", "volume", "Sector", "Daily_Return"}

// CSVRecorder exports the canonical dataset as one flat CSV file.
type CSVRecorder struct {
	path string
	log  zerolog.Logger
}

func NewCSVRecorder(path string, log zerolog.Logger) *CSVRecorder {
	return &CSVRecorder{path: path, log: log.With().Str("component", "csv_export").Logger()}
}

func (r *CSVRecorder) Name() string { return "csv:" + r.path }

// Record writes to a temporary file next to the target and renames it over
// the target, so readers never see a partial export.
func (r *CSVRecorder) Record(_ context.Context, res *model.Result) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".export-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	rows := res.Dataset.Rows()
	if err := writeCSV(tmp, rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("rename export: %w", err)
	}

	r.log.Info().Str("path", r.path).Int("rows", len(rows)).Msg("Exported master dataset")
	return nil
}

func writeCSV(f *os.File, rows []model.DailyRecord) error {
	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, d := range rows {
		rec := []string{
			d.Symbol, d.Date.Format(time.DateOnly),
			formatFloat(d.Open), formatFloat(d.High), formatFloat(d.Low), formatFloat(d.Close), formatFloat(d.Volume),
			d.Sector, formatFloat(d.DailyReturn),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func (r *CSVRecorder) Close() error { return nil }

// formatFloat renders NaN as an empty cell.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
