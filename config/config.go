package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Provider ProviderConfig `mapstructure:"provider"`
	Bridge   BridgeConfig   `mapstructure:"bridge"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Startup  StartupConfig  `mapstructure:"startup"`
	Tenants  []TenantConfig `mapstructure:"tenants"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	OpenAPIPath     string        `mapstructure:"openapi_path"` // empty disables /swagger
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// LedgerConfig points at the ledger's HTTP API (callback + launch).
type LedgerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProviderConfig tunes outbound calls to a tenant's upstream_url.
type ProviderConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type BridgeConfig struct {
	DefaultCurrency  string        `mapstructure:"default_currency"`
	MaxBodyBytes     int64         `mapstructure:"max_body_bytes"`
	TransferCacheTTL time.Duration `mapstructure:"transfer_cache_ttl"`
}

type MetricsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	StatsdAddr string `mapstructure:"statsd_addr"`
	Namespace  string `mapstructure:"namespace"`
}

// StartupConfig bounds how long the process waits for PostgreSQL and Redis.
type StartupConfig struct {
	MaxWait time.Duration `mapstructure:"max_wait"`
}

// TenantConfig is one credential set. Repeating a tenant_id registers
// another key for it; the first entry is the primary key.
type TenantConfig struct {
	TenantID        string   `mapstructure:"tenant_id" yaml:"tenant_id"`
	Secret          string   `mapstructure:"secret" yaml:"secret"`
	UpstreamURL     string   `mapstructure:"upstream_url" yaml:"upstream_url"`
	FallbackSecrets []string `mapstructure:"fallback_secrets" yaml:"fallback_secrets,omitempty"`
}

// Validate checks the parts of the config that cannot be defaulted.
func (c *Config) Validate() error {
	if len(c.Tenants) == 0 {
		return errors.New("at least one tenant must be configured")
	}
	for i, t := range c.Tenants {
		if t.TenantID == "" {
			return fmt.Errorf("tenants[%d]: tenant_id is required", i)
		}
		if t.Secret == "" {
			return fmt.Errorf("tenants[%d] (%s): secret is required", i, t.TenantID)
		}
	}
	if c.Ledger.BaseURL == "" {
		return errors.New("ledger.base_url is required")
	}
	return nil
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: BRIDGE_.
// Nested keys use underscore: BRIDGE_DATABASE_HOST, BRIDGE_LEDGER_BASE_URL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.openapi_path", "docs/api/openapi.yaml")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "provider_bridge")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("ledger.base_url", "")
	v.SetDefault("ledger.timeout", "10s")
	v.SetDefault("provider.timeout", "15s")
	v.SetDefault("bridge.default_currency", "USD")
	v.SetDefault("bridge.max_body_bytes", 1<<20)
	v.SetDefault("bridge.transfer_cache_ttl", "24h")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.statsd_addr", "127.0.0.1:8125")
	v.SetDefault("metrics.namespace", "provider_bridge.")
	v.SetDefault("startup.max_wait", "30s")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// BRIDGE_DATABASE_HOST -> database.host
	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Tenants normally come from the file; env vars only cover scalar keys.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
