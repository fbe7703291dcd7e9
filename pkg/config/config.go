package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"75s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            struct {
			Enabled      bool     `yaml:"enabled" default:"true"`
			AllowOrigins []string `yaml:"allow_origins" default:"[\"*\"]"`
			MaxAge       int      `yaml:"max_age" default:"600"`
		} `yaml:"cors"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled       bool          `yaml:"enabled" default:"true"`
		Path          string        `yaml:"path" default:"/metrics"`
		SlowThreshold time.Duration `yaml:"slow_threshold" default:"500ms"`
	} `yaml:"metrics"`
	Gemini    Gemini `yaml:"gemini"`
	RateLimit struct {
		Enabled bool    `yaml:"enabled" default:"true"`
		RPS     float64 `yaml:"rps" default:"2"`
		Burst   int     `yaml:"burst" default:"5"`
	} `yaml:"rate_limit"`
	Cache struct {
		ModelsTTL time.Duration `yaml:"models_ttl" default:"10m"`
		Redis     struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"mcp"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Gemini holds the language-model proxy settings. It is handed to the
// proxy client at startup and never read by the analytics code.
type Gemini struct {
	APIKey     string        `yaml:"api_key"`
	APIVersion string        `yaml:"api_version" default:"v1beta"`
	Model      string        `yaml:"model" default:"gemini-2.5-flash-lite"`
	Timeout    time.Duration `yaml:"timeout" default:"60s"`
	MaxRetries int           `yaml:"max_retries" default:"2"`
}

// Enabled reports whether an API key is configured.
func (g Gemini) Enabled() bool { return g.APIKey != "" }

// Load reads and parses a YAML configuration file. Fields missing from the
// file keep their struct defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads .env (if present), the YAML file and then applies
// environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_VERSION"); v != "" {
		c.Gemini.APIVersion = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be 'json' or 'console', got '%s'", c.Log.Format)
	}
	if c.Gemini.APIVersion == "" {
		return fmt.Errorf("gemini.api_version is required")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model is required")
	}
	if c.Gemini.MaxRetries < 0 {
		return fmt.Errorf("gemini.max_retries cannot be negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive when enabled")
	}
	return nil
}
