package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"MarketLens/internal/cache"
	"MarketLens/internal/collector"
	"MarketLens/internal/config"
	"MarketLens/internal/logger"
	"MarketLens/internal/pipeline"
	"MarketLens/internal/recorder"
	"MarketLens/internal/sector"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", defaultConfigPath(), "Path to the YAML configuration file")

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return config.DefaultPath
}

// app is the wiring shared by all subcommands.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	pipeline *pipeline.Pipeline
	redis    *redis.Client
}

// newApp loads and validates the configuration and builds the pipeline.
func newApp(topN int) (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if topN > 0 {
		cfg.Analysis.TopN = topN
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	a := &app{cfg: cfg, log: log}

	registry := sector.Nifty50().With(cfg.Sectors)
	params := pipeline.Params{
		TopN:            cfg.Analysis.TopN,
		RankSize:        cfg.Analysis.RankSize,
		MonthlyRankSize: cfg.Analysis.MonthlyRankSize,
	}
	a.pipeline = pipeline.New(
		collector.NewDirSource(cfg.Input.Dir),
		registry,
		params,
		cache.NewMemo(a.store(), log),
		a.recorders(),
		log,
	)
	return a, nil
}

// store picks Redis when configured, otherwise a process-local map.
func (a *app) store() cache.Store {
	c := a.cfg.Cache
	if c.RedisAddr == "" {
		return cache.NewMemoryStore()
	}
	a.redis = redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})
	a.log.Info().Str("addr", c.RedisAddr).Msg("Using Redis result cache")
	return cache.NewRedisStore(a.redis, c.TTL, c.Namespace)
}

func (a *app) recorders() []recorder.Recorder {
	var recs []recorder.Recorder
	if p := a.cfg.Output.SQLitePath; p != "" {
		sr, err := recorder.NewSQLiteRecorder(p, a.log)
		if err != nil {
			a.log.Warn().Err(err).Msg("Init SQLite recorder failed, skipping")
		} else {
			recs = append(recs, sr)
		}
	}
	if p := a.cfg.Output.CSVPath; p != "" {
		recs = append(recs, recorder.NewCSVRecorder(p, a.log))
	}
	if len(recs) == 0 {
		recs = append(recs, recorder.NewNoopRecorder())
	}
	return recs
}

func (a *app) Close() {
	if err := a.pipeline.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Close recorders")
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
