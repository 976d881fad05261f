package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backend names.
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "CRYPTODASH_CONFIG"

const defaultConfigPath = "./config/config.yaml"

type Config struct {
	Auth    AuthConfig    `yaml:"auth"`
	Market  MarketConfig  `yaml:"market"`
	Storage StorageConfig `yaml:"storage"`
	App     AppConfig     `yaml:"app"`
	Stub    StubConfig    `yaml:"stub"`
}

// AuthConfig points at the authentication backend.
type AuthConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// MarketConfig points at the market-data backend.
type MarketConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type StorageConfig struct {
	Backend string      `yaml:"backend"` // file, redis, or memory
	Path    string      `yaml:"path"`    // file backend only
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AppConfig drives the app-mode client: who logs in, which symbols
// are watched, and which roles the dashboard requires.
type AppConfig struct {
	Username      string   `yaml:"username"`
	Password      string   `yaml:"password"`
	AutoLogin     bool     `yaml:"auto_login"`
	Watchlist     []string `yaml:"watchlist"`
	RequiredRoles []string `yaml:"required_roles"`
}

// StubConfig configures the local fake of both external backends.
type StubConfig struct {
	Port  int        `yaml:"port"`
	Users []StubUser `yaml:"users"`
}

type StubUser struct {
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	Roles     []string `yaml:"roles"`
	Email     string   `yaml:"email"`
	FirstName string   `yaml:"first_name"`
	LastName  string   `yaml:"last_name"`
}

// New loads configuration for fx. A missing config file is not an
// error: defaults describe a working local setup against the stub.
func New() (*Config, error) {
	// Best effort, a missing .env is fine.
	_ = godotenv.Load()

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = defaultConfigPath
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		// Expand ${VAR} references before parsing.
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that loaded values are usable.
func (c *Config) Validate() error {
	if c.Auth.BaseURL == "" {
		return errors.New("auth.base_url is required")
	}
	if c.Market.BaseURL == "" {
		return errors.New("market.base_url is required")
	}
	if c.Market.PollInterval < time.Second {
		return errors.New("market.poll_interval must be >= 1s")
	}

	switch c.Storage.Backend {
	case StorageFile:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the file backend")
		}
	case StorageRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("storage.redis.addr is required for the redis backend")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("storage.backend must be one of %s, %s, %s", StorageFile, StorageRedis, StorageMemory)
	}

	if c.Stub.Port < 1 || c.Stub.Port > 65535 {
		return errors.New("stub.port must be a valid port")
	}

	return nil
}
