package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Fred struct {
		BaseURL      string        `yaml:"base_url"`
		APIKey       string        `yaml:"api_key"`
		Timeout      time.Duration `yaml:"timeout"`
		RatePerSec   float64       `yaml:"rate_per_sec"`
		RateCapacity float64       `yaml:"rate_capacity"`
	} `yaml:"fred"`
	Market struct {
		BaseURL      string        `yaml:"base_url"`
		Timeout      time.Duration `yaml:"timeout"`
		RatePerSec   float64       `yaml:"rate_per_sec"`
		RateCapacity float64       `yaml:"rate_capacity"`
	} `yaml:"market"`
	Pipeline struct {
		WindowDays      int           `yaml:"window_days"`
		CacheTTL        time.Duration `yaml:"cache_ttl"`
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		StaleGrace      time.Duration `yaml:"stale_grace"`
	} `yaml:"pipeline"`
	PayloadCache struct {
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"payload_cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. Overrides apply before validation so secrets like the FRED
// key can live in the environment only.
func LoadWithEnv(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func parse(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.Fred.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.PayloadCache.Redis.Addr = v
		c.PayloadCache.Redis.Enabled = true
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Fred.BaseURL == "" {
		c.Fred.BaseURL = "https://api.stlouisfed.org"
	}
	if c.Fred.Timeout == 0 {
		c.Fred.Timeout = 30 * time.Second
	}
	if c.Market.BaseURL == "" {
		c.Market.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = 30 * time.Second
	}
	if c.Pipeline.WindowDays == 0 {
		c.Pipeline.WindowDays = 730
	}
	if c.Pipeline.CacheTTL == 0 {
		c.Pipeline.CacheTTL = time.Hour
	}
	if c.Pipeline.RefreshInterval == 0 {
		c.Pipeline.RefreshInterval = time.Hour
	}
	if c.Pipeline.StaleGrace == 0 {
		c.Pipeline.StaleGrace = 2 * time.Hour
	}
	if c.PayloadCache.TTL == 0 {
		c.PayloadCache.TTL = time.Hour
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Fred.APIKey == "" {
		return fmt.Errorf("fred.api_key is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	if c.Pipeline.WindowDays < 0 {
		return fmt.Errorf("pipeline.window_days cannot be negative")
	}
	if c.Pipeline.CacheTTL < 0 {
		return fmt.Errorf("pipeline.cache_ttl cannot be negative")
	}
	if c.PayloadCache.Redis.Enabled && c.PayloadCache.Redis.Addr == "" {
		return fmt.Errorf("payload_cache.redis.addr is required when redis is enabled")
	}
	return nil
}
