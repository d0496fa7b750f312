package config_test

import (
	"testing"
	"time"

	"github.com/fjod/go_market/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMustLoad(t *testing.T) {
	t.Run("error - empty required env variable", func(t *testing.T) {
		t.Setenv("MARKET_API_URL", "")

		assert.PanicsWithError(t, config.ErrEmptyAPIURL.Error(), func() {
			config.MustLoad()
		})
	})

	t.Run("success", func(t *testing.T) {
		t.Setenv("MARKET_ENV", "local")
		t.Setenv("MARKET_API_URL", "https://api.example.com/api/v1")
		t.Setenv("MARKET_STORAGE_PATH", "some/path/to/db")
		t.Setenv("MARKET_CACHE_REDIS_ADDR", "localhost:6379")

		cfg := config.MustLoad()

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, "https://api.example.com/api/v1", cfg.API.URL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, 2, cfg.API.MaxRetries)
		assert.Equal(t, "some/path/to/db", cfg.StoragePath)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
		assert.Equal(t, ":8780", cfg.Dashboard.Addr)
	})
}
