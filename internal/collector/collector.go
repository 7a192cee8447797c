package collector

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"MarketLens/internal/calculator"
	"MarketLens/internal/model"
	"MarketLens/internal/sector"
)

// Collector loads per-symbol files into the canonical dataset.
type Collector struct {
	Source   Source
	Registry *sector.Registry
	log      zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(src Source, registry *sector.Registry, log zerolog.Logger) *Collector {
	return &Collector{
		Source:   src,
		Registry: registry,
		log:      log.With().Str("component", "collector").Logger(),
	}
}

// Collect reads every file of the source. See CollectFiles.
func (c *Collector) Collect() (*model.Dataset, error) {
	files, err := c.Source.Files()
	if err != nil {
		return nil, err
	}
	return c.CollectFiles(files)
}

// CollectFiles parses files, skipping (and logging) those that fail, and
// returns the canonical dataset sorted by (Symbol, Date) with sectors and
// daily returns attached.
func (c *Collector) CollectFiles(files []SourceFile) (*model.Dataset, error) {
	var (
		rows    []model.DailyRecord
		skipped int
		dropped int
	)
	for _, f := range files {
		fr, err := c.readFile(f)
		if err != nil {
			skipped++
			c.log.Warn().Err(err).Str("file", f.Name).Msg("Skipping input file")
			continue
		}
		dropped += fr.dropped
		rows = append(rows, fr.rows...)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no valid rows in %d file(s) from %s (%d skipped)",
			model.ErrDataAvailability, len(files), c.Source.Name(), skipped)
	}

	slices.SortStableFunc(rows, func(a, b model.DailyRecord) int {
		if n := cmp.Compare(a.Symbol, b.Symbol); n != 0 {
			return n
		}
		return a.Date.Compare(b.Date)
	})
	c.attachSectors(rows)
	attachDailyReturns(rows)

	c.log.Info().
		Int("files", len(files)).
		Int("skipped", skipped).
		Int("rows", len(rows)).
		Int("dropped_rows", dropped).
		Msg("Loaded canonical dataset")

	return model.NewDataset(rows), nil
}

func (c *Collector) readFile(f SourceFile) (*fileRows, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	return parseFile(f.Name, rc)
}

func (c *Collector) attachSectors(rows []model.DailyRecord) {
	unmapped := map[string]bool{}
	for i := range rows {
		s, ok := c.Registry.Lookup(rows[i].Symbol)
		if !ok {
			unmapped[rows[i].Symbol] = true
		}
		rows[i].Sector = s
	}
	if len(unmapped) > 0 {
		c.log.Debug().Int("symbols", len(unmapped)).Msg("Symbols without a sector mapping")
	}
}

// attachDailyReturns fills DailyReturn per symbol; rows must be sorted.
func attachDailyReturns(rows []model.DailyRecord) {
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i < len(rows) && rows[i].Symbol == rows[start].Symbol {
			continue
		}
		closes := make([]float64, i-start)
		for j := range closes {
			closes[j] = rows[start+j].Close
		}
		for j, r := range calculator.DailyReturns(closes) {
			rows[start+j].DailyReturn = r
		}
		start = i
	}
}
