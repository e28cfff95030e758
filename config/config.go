package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Session    SessionConfig    `yaml:"session"`
	Calculator CalculatorConfig `yaml:"calculator"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// SessionConfig controls how long idle calculator sessions live.
type SessionConfig struct {
	TTLMinutes     int           `yaml:"ttl_minutes"`
	CleanupMinutes int           `yaml:"cleanup_minutes"`
	QueueSize      int           `yaml:"queue_size"`
	TTL            time.Duration `yaml:"-"`
	Cleanup        time.Duration `yaml:"-"`
}

// CalculatorConfig holds the timings of the novelty commands.
type CalculatorConfig struct {
	GreetingDelayMS int           `yaml:"greeting_delay_ms"`
	FarewellDelayMS int           `yaml:"farewell_delay_ms"`
	GreetingDelay   time.Duration `yaml:"-"`
	FarewellDelay   time.Duration `yaml:"-"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 30
	}
	if cfg.Session.CleanupMinutes <= 0 {
		cfg.Session.CleanupMinutes = 10
	}
	if cfg.Session.QueueSize <= 0 {
		log.Printf("session.queue_size is not set or invalid; defaulting to 16")
		cfg.Session.QueueSize = 16
	}
	cfg.Session.TTL = time.Duration(cfg.Session.TTLMinutes) * time.Minute
	cfg.Session.Cleanup = time.Duration(cfg.Session.CleanupMinutes) * time.Minute

	if cfg.Calculator.GreetingDelayMS <= 0 {
		cfg.Calculator.GreetingDelayMS = 1000
	}
	if cfg.Calculator.FarewellDelayMS <= 0 {
		cfg.Calculator.FarewellDelayMS = 1000
	}
	cfg.Calculator.GreetingDelay = time.Duration(cfg.Calculator.GreetingDelayMS) * time.Millisecond
	cfg.Calculator.FarewellDelay = time.Duration(cfg.Calculator.FarewellDelayMS) * time.Millisecond
}
