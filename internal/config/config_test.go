package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "memory", cfg.Storage)
		assert.Equal(t, "memory", cfg.CacheBackend)
		assert.Equal(t, DefaultPageSize, cfg.PageSize)
		assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
		assert.Len(t, cfg.SessionSecret, 32)
	})

	t.Run("Generated secrets differ per load", func(t *testing.T) {
		first, err := Load()
		require.NoError(t, err)
		second, err := Load()
		require.NoError(t, err)

		assert.NotEqual(t, first.SessionSecret, second.SessionSecret)
	})

	t.Run("Explicit values win", func(t *testing.T) {
		t.Setenv("ADDR", ":9000")
		t.Setenv("STORAGE", "postgres")
		t.Setenv("PAGE_SIZE", "25")
		t.Setenv("CACHE_TTL", "60")
		t.Setenv("SESSION_SECRET", "fixed-secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":9000", cfg.Addr)
		assert.Equal(t, "postgres", cfg.Storage)
		assert.Equal(t, 25, cfg.PageSize)
		assert.Equal(t, time.Minute, cfg.CacheTTL)
		assert.Equal(t, []byte("fixed-secret"), cfg.SessionSecret)
	})

	t.Run("Garbage page size is rejected", func(t *testing.T) {
		t.Setenv("PAGE_SIZE", "zero")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Garbage cache TTL is rejected", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "-5x")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBUser:     "blog",
		DBPassword: "pw",
		DBName:     "blogdb",
		DBPort:     "5432",
		DBSSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost user=blog password=pw dbname=blogdb port=5432 sslmode=disable",
		cfg.DSN())
}
