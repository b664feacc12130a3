// Package config resolves the service configuration from environment
// variables, with defaults adjusted by the APP_ENV profile. Resolution
// happens once at startup; the rest of the service only ever reads the
// typed struct.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Profile names accepted in APP_ENV. Anything else falls back to
// development.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Development fallbacks for the secret fields. Validate rejects them
// under the production profile.
const (
	defaultSecretKey = "dev-secret-key-change-in-production"
	defaultJWTSecret = "jwt-secret-key-change-in-production"
)

// Config aggregates all sections. Environment holds the resolved
// profile name and is what /api/v1/info reports.
type Config struct {
	Environment string
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Security    SecurityConfig
	Monitoring  MonitoringConfig
	Cache       CacheConfig
}

type AppConfig struct {
	Debug   bool
	Testing bool
	Host    string
	Port    int
	Workers int
	Timeout time.Duration
}

// DatabaseConfig is resolved, validated, and reported for parity with
// the deployment surface, but the service opens no database.
type DatabaseConfig struct {
	Host        string
	Port        int
	Name        string
	User        string
	Password    string
	SSLMode     string
	PoolSize    int
	MaxOverflow int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	SSL      bool
}

type SecurityConfig struct {
	SecretKey        string
	JWTSecret        string
	BcryptRounds     int
	SessionTimeout   time.Duration
	MaxLoginAttempts int
	LockoutDuration  time.Duration
}

type MonitoringConfig struct {
	PrometheusEnabled   bool
	MetricsPort         int
	HealthCheckInterval time.Duration
	LogLevel            string
	StructuredLogging   bool
	TracingEnabled      bool
	ProfilingEnabled    bool
}

type CacheConfig struct {
	Type           string
	Host           string
	Port           int
	Password       string
	DB             int
	DefaultTimeout time.Duration
	KeyPrefix      string
}

// Load resolves the configuration from the environment. The profile
// named by APP_ENV selects the defaults; explicit environment
// variables always win over profile defaults. Malformed numeric or
// boolean values fall back to the default rather than failing, so a
// bad value can never prevent the service from booting; Validate
// catches out-of-range results afterwards.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", EnvDevelopment)
	profile := normalizeProfile(v.GetString("APP_ENV"))

	defaults := defaultsFor(profile)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	r := resolver{v: v, defaults: defaults}

	return &Config{
		Environment: profile,
		App: AppConfig{
			Debug:   r.flag("DEBUG"),
			Testing: r.flag("TESTING"),
			Host:    r.str("HOST"),
			Port:    r.num("PORT"),
			Workers: r.num("WORKERS"),
			Timeout: r.seconds("TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:        r.str("DB_HOST"),
			Port:        r.num("DB_PORT"),
			Name:        r.str("DB_NAME"),
			User:        r.str("DB_USER"),
			Password:    r.str("DB_PASSWORD"),
			SSLMode:     r.str("DB_SSL_MODE"),
			PoolSize:    r.num("DB_POOL_SIZE"),
			MaxOverflow: r.num("DB_MAX_OVERFLOW"),
		},
		Redis: RedisConfig{
			Host:     r.str("REDIS_HOST"),
			Port:     r.num("REDIS_PORT"),
			Password: r.str("REDIS_PASSWORD"),
			DB:       r.num("REDIS_DB"),
			SSL:      r.flag("REDIS_SSL"),
		},
		Security: SecurityConfig{
			SecretKey:        r.str("SECRET_KEY"),
			JWTSecret:        r.str("JWT_SECRET"),
			BcryptRounds:     r.num("BCRYPT_ROUNDS"),
			SessionTimeout:   r.seconds("SESSION_TIMEOUT"),
			MaxLoginAttempts: r.num("MAX_LOGIN_ATTEMPTS"),
			LockoutDuration:  r.seconds("LOCKOUT_DURATION"),
		},
		Monitoring: MonitoringConfig{
			PrometheusEnabled:   r.flag("PROMETHEUS_ENABLED"),
			MetricsPort:         r.num("METRICS_PORT"),
			HealthCheckInterval: r.seconds("HEALTH_CHECK_INTERVAL"),
			LogLevel:            r.str("LOG_LEVEL"),
			StructuredLogging:   r.flag("STRUCTURED_LOGGING"),
			TracingEnabled:      r.flag("TRACING_ENABLED"),
			ProfilingEnabled:    r.flag("PROFILING_ENABLED"),
		},
		Cache: CacheConfig{
			Type:           r.str("CACHE_TYPE"),
			Host:           r.str("CACHE_HOST"),
			Port:           r.num("CACHE_PORT"),
			Password:       r.str("CACHE_PASSWORD"),
			DB:             r.num("CACHE_DB"),
			DefaultTimeout: r.seconds("CACHE_DEFAULT_TIMEOUT"),
			KeyPrefix:      r.str("CACHE_KEY_PREFIX"),
		},
	}
}

// defaultsFor returns the option -> default table for a profile.
// Durations are plain integers in seconds, matching the environment
// variable format.
func defaultsFor(profile string) map[string]any {
	d := map[string]any{
		"DEBUG":   false,
		"TESTING": false,
		"HOST":    "0.0.0.0",
		"PORT":    8000,
		"WORKERS": 4,
		"TIMEOUT": 30,

		"DB_HOST":         "localhost",
		"DB_PORT":         5432,
		"DB_NAME":         "devops_demo",
		"DB_USER":         "postgres",
		"DB_PASSWORD":     "",
		"DB_SSL_MODE":     "require",
		"DB_POOL_SIZE":    10,
		"DB_MAX_OVERFLOW": 20,

		"REDIS_HOST":     "localhost",
		"REDIS_PORT":     6379,
		"REDIS_PASSWORD": "",
		"REDIS_DB":       0,
		"REDIS_SSL":      true,

		"SECRET_KEY":         defaultSecretKey,
		"JWT_SECRET":         defaultJWTSecret,
		"BCRYPT_ROUNDS":      12,
		"SESSION_TIMEOUT":    3600,
		"MAX_LOGIN_ATTEMPTS": 5,
		"LOCKOUT_DURATION":   900,

		"PROMETHEUS_ENABLED":    true,
		"METRICS_PORT":          9090,
		"HEALTH_CHECK_INTERVAL": 30,
		"LOG_LEVEL":             "INFO",
		"STRUCTURED_LOGGING":    true,
		"TRACING_ENABLED":       false,
		"PROFILING_ENABLED":     false,

		"CACHE_TYPE":            "redis",
		"CACHE_HOST":            "localhost",
		"CACHE_PORT":            6379,
		"CACHE_PASSWORD":        "",
		"CACHE_DB":              1,
		"CACHE_DEFAULT_TIMEOUT": 300,
		"CACHE_KEY_PREFIX":      "devops_demo:",
	}

	switch profile {
	case EnvDevelopment:
		d["DEBUG"] = true
		d["LOG_LEVEL"] = "DEBUG"
		d["CACHE_TYPE"] = "simple"
	case EnvTesting:
		d["TESTING"] = true
		d["LOG_LEVEL"] = "DEBUG"
		d["CACHE_TYPE"] = "simple"
		d["DB_NAME"] = "devops_demo_test"
	case EnvProduction:
		d["LOG_LEVEL"] = "WARNING"
		d["BCRYPT_ROUNDS"] = 14
	}
	return d
}

func normalizeProfile(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case EnvTesting:
		return EnvTesting
	case EnvStaging:
		return EnvStaging
	case EnvProduction:
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

// resolver reads keys through viper so environment variables override
// the registered defaults, and re-parses numeric/boolean values so a
// malformed variable degrades to the default instead of zero.
type resolver struct {
	v        *viper.Viper
	defaults map[string]any
}

func (r resolver) str(key string) string {
	return r.v.GetString(key)
}

func (r resolver) num(key string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(r.v.GetString(key))); err == nil {
		return n
	}
	return r.defaults[key].(int)
}

func (r resolver) flag(key string) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(r.v.GetString(key))); err == nil {
		return b
	}
	return r.defaults[key].(bool)
}

func (r resolver) seconds(key string) time.Duration {
	return time.Duration(r.num(key)) * time.Second
}

// Validate checks the resolved configuration. It runs once at startup
// and a failure aborts boot.
func (c *Config) Validate() error {
	ports := []struct {
		name string
		val  int
	}{
		{"PORT", c.App.Port},
		{"DB_PORT", c.Database.Port},
		{"REDIS_PORT", c.Redis.Port},
		{"CACHE_PORT", c.Cache.Port},
		{"METRICS_PORT", c.Monitoring.MetricsPort},
	}
	for _, p := range ports {
		if p.val < 1 || p.val > 65535 {
			return fmt.Errorf("%s must be between 1 and 65535, got %d", p.name, p.val)
		}
	}

	if c.App.Workers <= 0 {
		return fmt.Errorf("WORKERS must be positive, got %d", c.App.Workers)
	}
	if c.App.Timeout <= 0 {
		return fmt.Errorf("TIMEOUT must be positive, got %s", c.App.Timeout)
	}
	if c.Cache.DefaultTimeout <= 0 {
		return fmt.Errorf("CACHE_DEFAULT_TIMEOUT must be positive, got %s", c.Cache.DefaultTimeout)
	}
	if c.Monitoring.HealthCheckInterval < 0 {
		return fmt.Errorf("HEALTH_CHECK_INTERVAL must not be negative, got %s", c.Monitoring.HealthCheckInterval)
	}

	switch strings.ToUpper(c.Monitoring.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a recognized level", c.Monitoring.LogLevel)
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "simple" {
		return fmt.Errorf("CACHE_TYPE must be redis or simple, got %q", c.Cache.Type)
	}

	if c.Environment == EnvProduction {
		if c.Security.SecretKey == "" || c.Security.SecretKey == defaultSecretKey {
			return errors.New("SECRET_KEY must be set and changed from its default in production")
		}
		if c.Security.JWTSecret == "" || c.Security.JWTSecret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be set and changed from its default in production")
		}
	}
	return nil
}

// Redacted returns the configuration as a nested map for startup
// logging. Secrets and passwords are omitted, not masked.
func (c *Config) Redacted() map[string]any {
	return map[string]any{
		"environment": c.Environment,
		"app": map[string]any{
			"debug":   c.App.Debug,
			"testing": c.App.Testing,
			"host":    c.App.Host,
			"port":    c.App.Port,
			"workers": c.App.Workers,
			"timeout": int(c.App.Timeout.Seconds()),
		},
		"database": map[string]any{
			"host":         c.Database.Host,
			"port":         c.Database.Port,
			"name":         c.Database.Name,
			"user":         c.Database.User,
			"ssl_mode":     c.Database.SSLMode,
			"pool_size":    c.Database.PoolSize,
			"max_overflow": c.Database.MaxOverflow,
		},
		"redis": map[string]any{
			"host": c.Redis.Host,
			"port": c.Redis.Port,
			"db":   c.Redis.DB,
			"ssl":  c.Redis.SSL,
		},
		"cache": map[string]any{
			"type":            c.Cache.Type,
			"host":            c.Cache.Host,
			"port":            c.Cache.Port,
			"db":              c.Cache.DB,
			"default_timeout": int(c.Cache.DefaultTimeout.Seconds()),
			"key_prefix":      c.Cache.KeyPrefix,
		},
		"monitoring": map[string]any{
			"prometheus_enabled":    c.Monitoring.PrometheusEnabled,
			"metrics_port":          c.Monitoring.MetricsPort,
			"health_check_interval": int(c.Monitoring.HealthCheckInterval.Seconds()),
			"log_level":             c.Monitoring.LogLevel,
			"structured_logging":    c.Monitoring.StructuredLogging,
			"tracing_enabled":       c.Monitoring.TracingEnabled,
			"profiling_enabled":     c.Monitoring.ProfilingEnabled,
		},
	}
}
