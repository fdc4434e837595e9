package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Rate limiter backends.
const (
	RateLimitBackendRedis  = "redis"
	RateLimitBackendMemory = "memory"
)

// API key authentication modes.
const (
	AuthModePermissive = "permissive"
	AuthModeStatic     = "static"
	AuthModeJWT        = "jwt"
)

type Config struct {
	Env             string
	Port            int
	APIPrefix       string
	TrustedProxies  []string
	ShutdownTimeout time.Duration
	EnableDocs      bool

	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Cache     CacheConfig
	Log       LogConfig
}

type DatabaseConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     int
	Password string
	DB       int
}

// RateLimitConfig controls the per-IP admission check in front of the list endpoints.
type RateLimitConfig struct {
	Enabled  bool
	Backend  string
	Requests int
	Window   time.Duration
	Prefix   string
}

// AuthConfig selects how X-API-Key values are checked.
type AuthConfig struct {
	Mode      string
	KeyHashes []string
	JWTSecret string
	JWTIssuer string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// CacheConfig governs list response caching.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = strings.TrimRight(v.GetString("API_PREFIX"), "/")
	cfg.TrustedProxies = splitAndTrim(v.GetString("TRUSTED_PROXIES"))
	cfg.ShutdownTimeout = parseDuration(v.GetString("SHUTDOWN_TIMEOUT"), 10*time.Second)
	cfg.EnableDocs = v.GetBool("ENABLE_DOCS") || cfg.Env != EnvProduction

	cfg.Database = DatabaseConfig{
		URL:          v.GetString("DATABASE_URL"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		URL:      strings.TrimSpace(v.GetString("REDIS_URL")),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	requests := v.GetInt("RATE_LIMIT_REQUESTS")
	if requests <= 0 {
		requests = 10
	}
	cfg.RateLimit = RateLimitConfig{
		Enabled:  v.GetBool("RATE_LIMIT_ENABLED"),
		Backend:  strings.ToLower(v.GetString("RATE_LIMIT_BACKEND")),
		Requests: requests,
		Window:   parseDuration(v.GetString("RATE_LIMIT_WINDOW"), 10*time.Second),
		Prefix:   v.GetString("RATE_LIMIT_PREFIX"),
	}

	cfg.Auth = AuthConfig{
		Mode:      strings.ToLower(v.GetString("AUTH_MODE")),
		KeyHashes: splitAndTrim(v.GetString("API_KEY_HASHES")),
		JWTSecret: v.GetString("API_KEY_JWT_SECRET"),
		JWTIssuer: v.GetString("API_KEY_JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("CACHE_ENABLED"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 30*time.Second),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("ENABLE_DOCS", false)

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "himarpl")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_BACKEND", RateLimitBackendMemory)
	v.SetDefault("RATE_LIMIT_REQUESTS", 10)
	v.SetDefault("RATE_LIMIT_WINDOW", "10s")
	v.SetDefault("RATE_LIMIT_PREFIX", "ratelimit")

	v.SetDefault("AUTH_MODE", AuthModePermissive)
	v.SetDefault("API_KEY_HASHES", "")
	v.SetDefault("API_KEY_JWT_SECRET", "")
	v.SetDefault("API_KEY_JWT_ISSUER", "")

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")

	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", "30s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
