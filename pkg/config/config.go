package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
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
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Cache struct {
		TokenomicsTTL time.Duration `yaml:"tokenomics_ttl"`
		AliasTTL      time.Duration `yaml:"alias_ttl"`
	} `yaml:"cache"`
	CoinGecko struct {
		BaseURL         string        `yaml:"base_url"`
		RequestTimeout  time.Duration `yaml:"request_timeout"`
		ListTimeout     time.Duration `yaml:"list_timeout"`
		RateLimitRPS    float64       `yaml:"rate_limit_rps"`
		RateLimitBurst  int           `yaml:"rate_limit_burst"`
		BreakerFailures uint32        `yaml:"breaker_failures"`
		BreakerCooldown time.Duration `yaml:"breaker_cooldown"`
	} `yaml:"coingecko"`
	GitHub struct {
		BaseURL        string        `yaml:"base_url"`
		Token          string        `yaml:"token"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
	} `yaml:"github"`
	Popular []string `yaml:"popular"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Redis.Port = p
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		c.CoinGecko.BaseURL = v
	}
	if v := os.Getenv("POPULAR_COINS"); v != "" {
		c.Popular = strings.Split(v, ",")
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Cache.TokenomicsTTL == 0 {
		c.Cache.TokenomicsTTL = 10 * time.Minute
	}
	if c.Cache.AliasTTL == 0 {
		c.Cache.AliasTTL = 7 * 24 * time.Hour
	}
	if c.CoinGecko.BaseURL == "" {
		c.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.CoinGecko.RequestTimeout == 0 {
		c.CoinGecko.RequestTimeout = 5 * time.Second
	}
	if c.CoinGecko.ListTimeout == 0 {
		c.CoinGecko.ListTimeout = 30 * time.Second
	}
	if c.CoinGecko.RateLimitRPS == 0 {
		c.CoinGecko.RateLimitRPS = 0.5 // free tier: ~30 calls/min
	}
	if c.CoinGecko.RateLimitBurst == 0 {
		c.CoinGecko.RateLimitBurst = 5
	}
	if c.CoinGecko.BreakerFailures == 0 {
		c.CoinGecko.BreakerFailures = 5
	}
	if c.CoinGecko.BreakerCooldown == 0 {
		c.CoinGecko.BreakerCooldown = 30 * time.Second
	}
	if c.GitHub.BaseURL == "" {
		c.GitHub.BaseURL = "https://api.github.com"
	}
	if c.GitHub.RequestTimeout == 0 {
		c.GitHub.RequestTimeout = 5 * time.Second
	}
	if len(c.Popular) == 0 {
		c.Popular = DefaultPopularCoins
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Redis.Host == "" {
		return fmt.Errorf("redis.host is required")
	}
	if c.Redis.Port == 0 {
		return fmt.Errorf("redis.port is required")
	}
	return nil
}

// DefaultPopularCoins is the fixed, ordered warm-up list for popular-coin
// refreshes. Order matters: refresh_popular truncates it to the limit.
var DefaultPopularCoins = []string{
	"bitcoin", "ethereum", "tether", "binancecoin", "solana",
	"usd-coin", "ripple", "cardano", "avalanche-2", "dogecoin",
	"polkadot", "tron", "chainlink", "polygon", "litecoin",
	"near", "uniswap", "internet-computer", "cosmos", "stellar",
}
