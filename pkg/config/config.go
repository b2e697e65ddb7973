package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Port           string
	DatabaseURL    string
	DBMaxConns     int
	MigrateOnStart bool
	RedisURL       string
	CacheTTL       time.Duration
	JWTSecret      string
	JWTIssuer      string
	JWTTTLMinutes  int
	LogLevel       slog.Level
}

// fileConfig is the YAML file named by CONFIG_PATH. Empty fields keep the defaults.
type fileConfig struct {
	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`
	Postgres struct {
		URL            string `yaml:"url"`
		MaxConns       int    `yaml:"max_conns"`
		MigrateOnStart *bool  `yaml:"migrate_on_start"`
	} `yaml:"postgres"`
	Redis struct {
		URL             string `yaml:"url"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`
	JWT struct {
		Secret     string `yaml:"secret"`
		Issuer     string `yaml:"issuer"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"jwt"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func defaults() Config {
	return Config{
		Port:           "8080",
		DBMaxConns:     10,
		MigrateOnStart: true,
		CacheTTL:       300 * time.Second,
		JWTSecret:      "dev-secret-change",
		JWTIssuer:      "cvbuilder",
		JWTTTLMinutes:  60,
		LogLevel:       slog.LevelInfo,
	}
}

// Load builds the config from defaults, then the YAML file named by CONFIG_PATH
// (if set), then environment variables, optionally from a .env file.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBMaxConns = getEnvInt("DB_MAX_CONNS", cfg.DBMaxConns)
	cfg.MigrateOnStart = getEnvBool("MIGRATE_ON_START", cfg.MigrateOnStart)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	if v := getEnvInt("CACHE_TTL_SECONDS", 0); v > 0 {
		cfg.CacheTTL = time.Duration(v) * time.Second
	}
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.JWTTTLMinutes = getEnvInt("JWT_TTL_MINUTES", cfg.JWTTTLMinutes)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = parseLevel(v)
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var f fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if f.HTTP.Port != "" {
		cfg.Port = f.HTTP.Port
	}
	if f.Postgres.URL != "" {
		cfg.DatabaseURL = f.Postgres.URL
	}
	if f.Postgres.MaxConns > 0 {
		cfg.DBMaxConns = f.Postgres.MaxConns
	}
	if f.Postgres.MigrateOnStart != nil {
		cfg.MigrateOnStart = *f.Postgres.MigrateOnStart
	}
	if f.Redis.URL != "" {
		cfg.RedisURL = f.Redis.URL
	}
	if f.Redis.CacheTTLSeconds > 0 {
		cfg.CacheTTL = time.Duration(f.Redis.CacheTTLSeconds) * time.Second
	}
	if f.JWT.Secret != "" {
		cfg.JWTSecret = f.JWT.Secret
	}
	if f.JWT.Issuer != "" {
		cfg.JWTIssuer = f.JWT.Issuer
	}
	if f.JWT.TTLMinutes > 0 {
		cfg.JWTTTLMinutes = f.JWT.TTLMinutes
	}
	if f.Log.Level != "" {
		cfg.LogLevel = parseLevel(f.Log.Level)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
