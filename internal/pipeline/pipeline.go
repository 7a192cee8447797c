// Package pipeline sequences ingestion, analytics, memoization and
// persistence for one run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"MarketLens/internal/analytics"
	"MarketLens/internal/cache"
	"MarketLens/internal/collector"
	"MarketLens/internal/model"
	"MarketLens/internal/recorder"
	"MarketLens/internal/sector"
)

// Params are the analysis knobs. They are part of the cache key.
type Params struct {
	TopN            int
	RankSize        int
	MonthlyRankSize int
}

// DefaultParams returns the standard ranking sizes.
func DefaultParams() Params {
	return Params{
		TopN:            analytics.DefaultTopN,
		RankSize:        analytics.DefaultRankSize,
		MonthlyRankSize: analytics.DefaultMonthlyRankSize,
	}
}

// Fingerprint renders the params for the cache key.
func (p Params) Fingerprint() string {
	return fmt.Sprintf("top=%d;rank=%d;monthly=%d", p.TopN, p.RankSize, p.MonthlyRankSize)
}

// fingerprint covers everything besides the input files that shapes a
// result: the params and the sector mapping.
func (p *Pipeline) fingerprint() string {
	return p.Params.Fingerprint() + ";sectors=" + p.Registry.Fingerprint()
}

// Outcome is the result of Run.
type Outcome struct {
	Result   *model.Result
	CacheHit bool
	Key      string
	// PersistErr joins every sink failure. The Result is valid regardless.
	PersistErr error
}

// Pipeline runs the full analysis over one source.
type Pipeline struct {
	Collector *collector.Collector
	Registry  *sector.Registry
	Params    Params
	Memo      *cache.Memo
	Recorders []recorder.Recorder
	log       zerolog.Logger
}

// New creates a Pipeline. memo may be nil to disable memoization.
func New(src collector.Source, registry *sector.Registry, params Params, memo *cache.Memo, recorders []recorder.Recorder, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		Collector: collector.NewCollector(src, registry, log),
		Registry:  registry,
		Params:    params,
		Memo:      memo,
		Recorders: recorders,
		log:       log.With().Str("component", "pipeline").Logger(),
	}
}

// Analyze derives every artifact from ds. It does no I/O.
func (p *Pipeline) Analyze(ds *model.Dataset) (*model.Result, error) {
	return Analyze(ds, p.Registry, p.Params)
}

// Analyze derives every artifact from ds. It does no I/O.
func Analyze(ds *model.Dataset, registry *sector.Registry, params Params) (*model.Result, error) {
	yearly := analytics.YearlyPerformance(ds, params.RankSize)

	summary, err := analytics.MarketSummary(ds, yearly.Green, yearly.Red)
	if err != nil {
		return nil, fmt.Errorf("market summary: %w", err)
	}

	corr, err := analytics.Correlation(ds)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}

	return &model.Result{
		Dataset:        ds,
		Summary:        summary,
		Yearly:         yearly,
		Cumulative:     analytics.CumulativeReturns(ds, params.TopN),
		Sectors:        analytics.SectorPerformance(yearly.Table, registry),
		Correlation:    corr,
		MonthlyRanking: analytics.MonthlyRanking(ds, params.MonthlyRankSize),
	}, nil
}

// Run resolves the input files, serves the result from the memo when the
// inputs are unchanged, otherwise collects and analyzes, and finally hands
// the result to every recorder.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	start := time.Now()

	listed, err := p.Collector.Source.Files()
	if err != nil {
		return nil, err
	}
	// One read per file: the key and the dataset come from the same bytes.
	files := collector.Buffer(listed)

	out := &Outcome{}
	if p.Memo != nil {
		key, err := cache.Key(files, p.fingerprint())
		if err != nil {
			p.log.Warn().Err(err).Msg("Cannot derive cache key, running uncached")
		} else {
			out.Key = key
			out.Result, out.CacheHit = p.Memo.Load(ctx, key)
		}
	}

	if !out.CacheHit {
		ds, err := p.Collector.CollectFiles(files)
		if err != nil {
			return nil, err
		}
		out.Result, err = p.Analyze(ds)
		if err != nil {
			return nil, err
		}
		if p.Memo != nil && out.Key != "" {
			p.Memo.Save(ctx, out.Key, out.Result)
		}
	}

	out.PersistErr = p.persist(ctx, out.Result)

	p.log.Info().
		Bool("cache_hit", out.CacheHit).
		Int("symbols", out.Result.Summary.TotalStocks).
		Dur("elapsed", time.Since(start)).
		Msg("Pipeline run complete")
	return out, nil
}

func (p *Pipeline) persist(ctx context.Context, res *model.Result) error {
	var errs []error
	for _, r := range p.Recorders {
		if err := r.Record(ctx, res); err != nil {
			p.log.Error().Err(err).Str("sink", r.Name()).Msg("Persist failed")
			errs = append(errs, fmt.Errorf("%w: %s: %w", model.ErrPersistence, r.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every recorder.
func (p *Pipeline) Close() error {
	var errs []error
	for _, r := range p.Recorders {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}
