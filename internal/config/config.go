// Package config loads jsscan's configuration from jsscan.yaml, with
// environment variable overrides, mirroring how the rest of the ambient
// stack wires viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full jsscan runtime configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Audit  AuditConfig  `mapstructure:"audit"`
	Auth   AuthConfig   `mapstructure:"auth"`
}

// ServerConfig configures the HTTP + WebSocket tokenize service.
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	APIPrefix string `mapstructure:"api_prefix"`
}

// CacheConfig configures the tokenize result cache.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend  string `mapstructure:"backend"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSecs  int    `mapstructure:"ttl_seconds"`
}

// AuditConfig configures the per-request audit log.
type AuditConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// AuthConfig configures bearer-token authentication for the service.
type AuthConfig struct {
	SecretKey  string `mapstructure:"secret_key"`
	TokenTTLMn int    `mapstructure:"token_ttl_minutes"`
}

// Load reads jsscan.yaml (if present) from the current directory, applies
// environment overrides (JSSCAN_SERVER_PORT, etc.), and fills in defaults
// for anything left unset.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8420)
	v.SetDefault("server.api_prefix", "/v1")
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("audit.driver", "sqlite")
	v.SetDefault("audit.dsn", "jsscan_audit.db")
	v.SetDefault("auth.token_ttl_minutes", 60)

	v.SetConfigName("jsscan")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("jsscan")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read jsscan.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.APIPrefix != "" && !strings.HasPrefix(cfg.Server.APIPrefix, "/") {
		return fmt.Errorf("server.api_prefix must start with '/', got: %s", cfg.Server.APIPrefix)
	}
	switch cfg.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be \"memory\" or \"redis\", got: %s", cfg.Cache.Backend)
	}
	switch cfg.Audit.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("audit.driver must be \"sqlite\" or \"postgres\", got: %s", cfg.Audit.Driver)
	}
	return nil
}
