package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPort            = "5000"
	defaultDatabaseURL     = "bookit.db"
	defaultLogLevel        = "info"
	defaultCORSOrigins     = "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173"
	defaultTimezone        = "UTC"
	defaultBookingTimeout  = "5s"
	defaultLockTimeout     = "3s"
	defaultShutdownTimeout = "10s"
	defaultCacheTTL        = "1m"
)

type Config struct {
	AppEnv      string `mapstructure:"APP_ENV"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	Timezone    string `mapstructure:"APP_TIMEZONE"`
	AutoMigrate bool   `mapstructure:"AUTO_MIGRATE"`

	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`

	BookingTxTimeout   time.Duration `mapstructure:"BOOKING_TX_TIMEOUT"`
	BookingLockTimeout time.Duration `mapstructure:"BOOKING_LOCK_TIMEOUT"`
	BookingRatePerMin  int           `mapstructure:"BOOKING_RATE_PER_MIN"`
	BookingRateBurst   int           `mapstructure:"BOOKING_RATE_BURST"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int           `mapstructure:"REDIS_DB"`
	ExperienceCacheTTL time.Duration `mapstructure:"EXPERIENCE_CACHE_TTL"`

	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("APP_TIMEZONE", defaultTimezone)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("DATABASE_URL", defaultDatabaseURL)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("BOOKING_TX_TIMEOUT", defaultBookingTimeout)
	v.SetDefault("BOOKING_LOCK_TIMEOUT", defaultLockTimeout)
	v.SetDefault("BOOKING_RATE_PER_MIN", 60)
	v.SetDefault("BOOKING_RATE_BURST", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("EXPERIENCE_CACHE_TTL", defaultCacheTTL)
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.DBMaxOpenConns < 0 || cfg.DBMaxIdleConns < 0 {
		return fmt.Errorf("DB pool sizes must be >= 0")
	}
	if cfg.BookingTxTimeout <= 0 {
		return fmt.Errorf("BOOKING_TX_TIMEOUT must be > 0")
	}
	if cfg.BookingLockTimeout <= 0 {
		return fmt.Errorf("BOOKING_LOCK_TIMEOUT must be > 0")
	}
	if cfg.BookingLockTimeout > cfg.BookingTxTimeout {
		return fmt.Errorf("BOOKING_LOCK_TIMEOUT must not exceed BOOKING_TX_TIMEOUT")
	}
	if cfg.BookingRatePerMin <= 0 || cfg.BookingRateBurst <= 0 {
		return fmt.Errorf("BOOKING_RATE_PER_MIN and BOOKING_RATE_BURST must be > 0")
	}
	if cfg.ExperienceCacheTTL <= 0 {
		return fmt.Errorf("EXPERIENCE_CACHE_TTL must be > 0")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	if isProdLike(cfg.AppEnv) && !isPostgres(cfg.DatabaseURL) {
		return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
	}
	return nil
}

// Location returns the zone that defines "today" for slot and promo dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
