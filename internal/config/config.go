package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var ErrEmptyAPIURL = errors.New("error getting MARKET_API_URL: variable not specified or contains an empty string")

type Config struct {
	Env         string // Env is the current environment: local, dev, prod.
	StoragePath string // StoragePath is where the session sqlite file lives.
	API         API
	Cache       Cache
	Dashboard   Dashboard
}

type API struct {
	URL        string        // URL is the marketplace API base, including the version prefix.
	Timeout    time.Duration // Timeout is the per-request deadline.
	MaxRetries int
	RateLimit  float64 // RateLimit is requests per second against the API.
	Burst      int
}

type Cache struct {
	TTL       time.Duration // TTL is the base lifetime of cached reads.
	RedisAddr string        // RedisAddr switches the cache backend to redis when set.
}

type Dashboard struct {
	Addr string // Addr is the local dashboard listen address.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("MARKET")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("STORAGE_PATH", "market-session.db")
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("API_MAX_RETRIES", 2)
	viper.SetDefault("API_RATE_LIMIT", 10.0)
	viper.SetDefault("API_BURST", 20)
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("DASHBOARD_ADDR", ":8780")

	if viper.GetString("API_URL") == "" {
		panic(ErrEmptyAPIURL)
	}

	return &Config{
		Env:         viper.GetString("ENV"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		API: API{
			URL:        viper.GetString("API_URL"),
			Timeout:    viper.GetDuration("API_TIMEOUT"),
			MaxRetries: viper.GetInt("API_MAX_RETRIES"),
			RateLimit:  viper.GetFloat64("API_RATE_LIMIT"),
			Burst:      viper.GetInt("API_BURST"),
		},
		Cache: Cache{
			TTL:       viper.GetDuration("CACHE_TTL"),
			RedisAddr: viper.GetString("CACHE_REDIS_ADDR"),
		},
		Dashboard: Dashboard{
			Addr: viper.GetString("DASHBOARD_ADDR"),
		},
	}
}
