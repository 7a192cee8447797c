package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"MarketLens/internal/model"
)

// DefaultPath is used when neither -config nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yaml"

// CronParser accepts the six-field (with seconds) schedule format.
var CronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Config holds all application configuration.
type Config struct {
	Input struct {
		Dir string `yaml:"dir"`
	} `yaml:"input"`
	Analysis struct {
		TopN            int `yaml:"top_n"`
		RankSize        int `yaml:"rank_size"`
		MonthlyRankSize int `yaml:"monthly_rank_size"`
	} `yaml:"analysis"`
	Output struct {
		SQLitePath string `yaml:"sqlite_path"`
		CSVPath    string `yaml:"csv_path"`
	} `yaml:"output"`
	Cache struct {
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		TTL           time.Duration `yaml:"ttl"`
		Namespace     string        `yaml:"namespace"`
	} `yaml:"cache"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	// Sectors adds to or overrides the built-in symbol to sector mapping.
	Sectors map[string]string `yaml:"sectors"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	cfg.Input.Dir = "CSV_Output"
	cfg.Analysis.TopN = 5
	cfg.Analysis.RankSize = 10
	cfg.Analysis.MonthlyRankSize = 5
	cfg.Output.SQLitePath = "stock_analysis.db"
	cfg.Output.CSVPath = "master_stock_data.csv"
	cfg.Cache.TTL = 24 * time.Hour
	cfg.Cache.Namespace = "marketlens"
	cfg.Schedule.Cron = "0 30 18 * * 1-5"
	cfg.Log.Level = "info"
	cfg.Log.Pretty = true
	return cfg
}

// Load starts from Default, overlays the YAML file at path if it exists,
// then .env and environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: read config: %v", model.ErrConfiguration, err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse config %s: %v", model.ErrConfiguration, path, err)
		}
	}

	// .env never overrides variables already set in the environment.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"INPUT_DIR":          &c.Input.Dir,
		"SQLITE_PATH":        &c.Output.SQLitePath,
		"CSV_EXPORT_PATH":    &c.Output.CSVPath,
		"REDIS_ADDR":         &c.Cache.RedisAddr,
		"REDIS_PASSWORD":     &c.Cache.RedisPassword,
		"CRON_SCHEDULE":      &c.Schedule.Cron,
		"LOG_LEVEL":          &c.Log.Level,
		"TELEGRAM_BOT_TOKEN": &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &c.Telegram.ChatID,
	}
	for name, dst := range strs {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("TOP_N"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: TOP_N=%q is not an integer", model.ErrConfiguration, v)
		}
		c.Analysis.TopN = n
	}
	return nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Input.Dir == "" {
		return fmt.Errorf("%w: input.dir is required", model.ErrConfiguration)
	}
	if c.Analysis.TopN < 1 {
		return fmt.Errorf("%w: analysis.top_n must be positive", model.ErrConfiguration)
	}
	if c.Analysis.RankSize < 1 || c.Analysis.MonthlyRankSize < 1 {
		return fmt.Errorf("%w: analysis rank sizes must be positive", model.ErrConfiguration)
	}
	if _, err := CronParser.Parse(c.Schedule.Cron); err != nil {
		return fmt.Errorf("%w: schedule.cron: %v", model.ErrConfiguration, err)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("%w: telegram.bot_token and telegram.chat_id must be set together", model.ErrConfiguration)
	}
	return nil
}

// TelegramEnabled reports whether run digests should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
