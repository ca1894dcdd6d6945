// Package config loads runtime settings from .env, an optional config file,
// SYNERGY_ environment variables and command-line flags, in rising priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "SYNERGY"

// Storage backends.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Log modes.
const (
	LogProduction  = "production"
	LogDevelopment = "development"
	LogNop         = "nop"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Port        string        `mapstructure:"port"`
	Storage     string        `mapstructure:"storage"`
	DBPath      string        `mapstructure:"db_path"`
	Namespace   string        `mapstructure:"namespace"`
	LoginDelay  time.Duration `mapstructure:"login_delay"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	JWTIssuer   string        `mapstructure:"jwt_issuer"`
	JWTAudience string        `mapstructure:"jwt_audience"`
	LogMode     string        `mapstructure:"log_mode"`
	Seed        bool          `mapstructure:"seed"`
	I18nDir     string        `mapstructure:"i18n_dir"`
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8008")
	v.SetDefault("storage", StorageSQLite)
	v.SetDefault("db_path", "synergysphere.db")
	v.SetDefault("namespace", "synergysphere_")
	v.SetDefault("login_delay", time.Second)
	v.SetDefault("jwt_secret", "development-insecure-secret-change-me")
	v.SetDefault("jwt_issuer", "synergysphere")
	v.SetDefault("jwt_audience", "synergysphere-clients")
	v.SetDefault("log_mode", LogProduction)
	v.SetDefault("seed", true)
	v.SetDefault("i18n_dir", "")
}

// Load reads envFile (a missing file is ignored), then configFile when set,
// then the environment. v may already carry bound flags.
func Load(v *viper.Viper, envFile, configFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageSQLite:
	default:
		return fmt.Errorf("%w: storage %q must be %s or %s", ErrInvalidConfig, c.Storage, StorageMemory, StorageSQLite)
	}
	if c.Storage == StorageSQLite && c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required for sqlite storage", ErrInvalidConfig)
	}
	switch c.LogMode {
	case LogProduction, LogDevelopment, LogNop:
	default:
		return fmt.Errorf("%w: log_mode %q", ErrInvalidConfig, c.LogMode)
	}
	if c.LoginDelay < 0 {
		return fmt.Errorf("%w: login_delay must not be negative", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("%w: port is required", ErrInvalidConfig)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
