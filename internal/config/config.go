package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Host string `yaml:"host" default:"0.0.0.0"`
		Port int    `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	} `yaml:"server"`
	DataSource struct {
		// BaseURL selects the VsTrader provider when set; Yahoo otherwise.
		BaseURL      string `yaml:"base_url" validate:"omitempty,url"`
		APIKey       string `yaml:"api_key"`
		YahooURL     string `yaml:"yahoo_url" validate:"omitempty,url"`
		HistoryRange string `yaml:"history_range" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y max"`
	} `yaml:"data_source"`
	Refresh struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval" default:"60s" validate:"min=10s,max=300s"`
		TickCron string        `yaml:"tick_cron" default:"*/5 * * * * *" validate:"required"`
		ReapCron string        `yaml:"reap_cron" default:"0 0 3 * * *" validate:"required"`
	} `yaml:"refresh"`
	Session struct {
		IdleTimeout time.Duration `yaml:"idle_timeout" default:"24h" validate:"min=1m"`
	} `yaml:"session"`
	Cache struct {
		// RedisAddr enables the fetch cache when set.
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db" validate:"min=0"`
		HistoryTTL    time.Duration `yaml:"history_ttl" default:"5m"`
		QuoteTTL      time.Duration `yaml:"quote_ttl" default:"15s"`
		ProfileTTL    time.Duration `yaml:"profile_ttl" default:"1h"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" default:"data/stock_terminal.db"`
	} `yaml:"database"`
	Proxy     string   `yaml:"proxy"`
	Watchlist []string `yaml:"watchlist" validate:"dive,required"`
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Path returns the config file path, honouring CONFIG_PATH.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults and the environment still apply.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("VSTRADER_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("VSTRADER_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.DataSource.YahooURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.RedisPassword = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REFRESH_INTERVAL %q: %w", v, err)
		}
		cfg.Refresh.Interval = d
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist = strings.Split(v, ",")
	}

	// Defaults fill only zero-valued fields.
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	for i, s := range cfg.Watchlist {
		cfg.Watchlist[i] = strings.ToUpper(strings.TrimSpace(s))
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints. A database.sqlite_path of "-" disables recording.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
