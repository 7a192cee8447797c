package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "CSV_Output", cfg.Input.Dir)
	assert.Equal(t, 5, cfg.Analysis.TopN)
	assert.Equal(t, 10, cfg.Analysis.RankSize)
	assert.Equal(t, 5, cfg.Analysis.MonthlyRankSize)
	assert.Equal(t, "stock_analysis.db", cfg.Output.SQLitePath)
	assert.Equal(t, "master_stock_data.csv", cfg.Output.CSVPath)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "marketlens", cfg.Cache.Namespace)
	assert.Equal(t, "0 30 18 * * 1-5", cfg.Schedule.Cron)
	assert.True(t, cfg.Log.Pretty)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
input:
  dir: data/in
analysis:
  top_n: 3
cache:
  redis_addr: localhost:6379
  ttl: 90m
log:
  pretty: false
sectors:
  NEWCO: FINTECH
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/in", cfg.Input.Dir)
	assert.Equal(t, 3, cfg.Analysis.TopN)
	assert.Equal(t, 10, cfg.Analysis.RankSize, "unset keys keep defaults")
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 90*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, map[string]string{"NEWCO": "FINTECH"}, cfg.Sectors)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "input:\n  dir: from-yaml\n")
	t.Setenv("INPUT_DIR", "from-env")
	t.Setenv("TOP_N", "7")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Input.Dir)
	assert.Equal(t, 7, cfg.Analysis.TopN)
	assert.Equal(t, "/tmp/x.db", cfg.Output.SQLitePath)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoad_BadValues(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "input: [unclosed"))
		assert.True(t, errors.Is(err, model.ErrConfiguration))
	})
	t.Run("bad TOP_N", func(t *testing.T) {
		t.Setenv("TOP_N", "five")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.True(t, errors.Is(err, model.ErrConfiguration))
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty input dir":    func(c *Config) { c.Input.Dir = "" },
		"zero top n":         func(c *Config) { c.Analysis.TopN = 0 },
		"zero rank size":     func(c *Config) { c.Analysis.MonthlyRankSize = 0 },
		"bad cron":           func(c *Config) { c.Schedule.Cron = "every day" },
		"token without chat": func(c *Config) { c.Telegram.BotToken = "tok" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrConfiguration))
		})
	}
}
