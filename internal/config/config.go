package config

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPageSize = 10
	DefaultCacheTTL = 300 * time.Second
)

// Config carries everything the server needs at startup. It is built once in
// main and handed to the component constructors; nothing reads the environment
// after that.
type Config struct {
	Addr string

	Storage    string // "postgres" or "memory"
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	CacheBackend string // "memory" or "redis"
	RedisAddr    string

	// SessionSecret signs session cookies. When not configured it is generated
	// per process start, so sessions do not survive a restart.
	SessionSecret []byte

	PageSize   int
	CacheTTL   time.Duration
	BcryptCost int

	TemplatesGlob string
}

// Load reads the environment (plus an optional .env file) into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found")
	}

	cfg := &Config{
		Addr:          getEnv("ADDR", ":8080"),
		Storage:       getEnv("STORAGE", "memory"),
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		CacheBackend:  getEnv("CACHE", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		PageSize:      DefaultPageSize,
		CacheTTL:      DefaultCacheTTL,
		BcryptCost:    0, // 0 -> bcrypt.DefaultCost
		TemplatesGlob: getEnv("TEMPLATES", "templates/*.html"),
	}

	if v := os.Getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid PAGE_SIZE %q", v)
		}
		cfg.PageSize = n
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid CACHE_TTL %q", v)
		}
		cfg.CacheTTL = time.Duration(n) * time.Second
	}

	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.SessionSecret = []byte(v)
	} else {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
	}

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
