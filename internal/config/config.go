package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultChannelID  = "LedgerApp"
	defaultChannelKey = "LedgerKey001"
)

type Config struct {
	ServerAddr      string
	DatabaseDSN     string
	MigrationsDir   string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	DefaultCurrency string
	RateCacheTTL    time.Duration
	ChannelID       string
	// ChannelKeyHash is a bcrypt hash; the plaintext channel key is never kept
	// after startup.
	ChannelKeyHash string
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // .env is optional; environment variables win either way
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_NAME", "bank_ledger_db")
	v.SetDefault("DATABASE_SSL_MODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DEFAULT_CURRENCY", "EUR")
	v.SetDefault("RATE_CACHE_TTL", "5m")
	v.SetDefault("CHANNEL_ID", defaultChannelID)
	v.SetDefault("CHANNEL_KEY", defaultChannelKey)

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		v.GetString("DATABASE_HOST"),
		v.GetString("DATABASE_PORT"),
		v.GetString("DATABASE_USER"),
		v.GetString("DATABASE_PASSWORD"),
		v.GetString("DATABASE_NAME"),
		v.GetString("DATABASE_SSL_MODE"),
	)

	currency := strings.ToUpper(strings.TrimSpace(v.GetString("DEFAULT_CURRENCY")))
	if len(currency) != 3 {
		return Config{}, fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter ISO-4217 code, got %q", currency)
	}

	keyHash := strings.TrimSpace(v.GetString("CHANNEL_KEY_HASH"))
	if keyHash == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(v.GetString("CHANNEL_KEY")), bcrypt.DefaultCost)
		if err != nil {
			return Config{}, fmt.Errorf("hash channel key: %w", err)
		}
		keyHash = string(hashed)
	}

	return Config{
		ServerAddr:      v.GetString("SERVER_ADDR"),
		DatabaseDSN:     dsn,
		MigrationsDir:   "migrations",
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		DefaultCurrency: currency,
		RateCacheTTL:    v.GetDuration("RATE_CACHE_TTL"),
		ChannelID:       strings.TrimSpace(v.GetString("CHANNEL_ID")),
		ChannelKeyHash:  keyHash,
	}, nil
}
