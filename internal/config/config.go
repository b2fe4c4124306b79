// Package config loads the pm configuration from ~/.primemall/config.toml,
// a .env file and PM_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "PM"
	DirName    = ".primemall"
	configName = "config"
	configType = "toml"

	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	Dir     string        `mapstructure:"-"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Store   StoreConfig   `mapstructure:"store"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
}

type LedgerConfig struct {
	RPCURL          string        `mapstructure:"rpc_url"`
	ContractAddress string        `mapstructure:"contract_address"`
	Credential      string        `mapstructure:"credential"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	Burst           int           `mapstructure:"burst"`
}

// Configured reports whether a gateway is set up at all.
func (c LedgerConfig) Configured() bool {
	return strings.TrimSpace(c.RPCURL) != "" && strings.TrimSpace(c.ContractAddress) != ""
}

type StoreConfig struct {
	Backend   string `mapstructure:"backend"`
	Path      string `mapstructure:"path"`
	RedisAddr string `mapstructure:"redis_addr"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

type LoadOptions struct {
	// Home is the user home directory; the config directory lives below it.
	Home string
	// EnvFile is loaded into the environment before variables are read.
	// Missing files are ignored.
	EnvFile string
}

// Load reads the configuration into v and decodes it.
func Load(v *viper.Viper, opts LoadOptions) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if strings.TrimSpace(opts.Home) == "" {
		return Config{}, errors.New("home directory is required")
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", opts.EnvFile, err)
		}
	}

	dir := filepath.Join(opts.Home, DirName)
	setDefaults(v, dir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ledger.credential", EnvPrefix+"_LEDGER_CREDENTIAL", EnvPrefix+"_LEDGER_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind ledger credential env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Dir = dir
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	if cfg.Store.Path == "" {
		cfg.Store.Path = cfg.defaultStorePath()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("ledger.rpc_url", "")
	v.SetDefault("ledger.contract_address", "")
	v.SetDefault("ledger.credential", "")
	v.SetDefault("ledger.timeout", 30*time.Second)
	v.SetDefault("ledger.rate_limit", 5.0)
	v.SetDefault("ledger.burst", 5)
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.path", "")
	v.SetDefault("store.redis_addr", "")
	v.SetDefault("catalog.path", filepath.Join(dir, "catalog.toml"))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("server.listen", "127.0.0.1:8080")
}

func (c Config) defaultStorePath() string {
	if c.Store.Backend == BackendSQLite {
		return filepath.Join(c.Dir, "primemall.db")
	}

	return filepath.Join(c.Dir, "data")
}

// SecretsDir is where the file fallback of the secret store keeps entries.
func (c Config) SecretsDir() string {
	return filepath.Join(c.Dir, "secrets")
}

func (c Config) Validate() error {
	if c.Ledger.RPCURL != "" {
		u, err := url.Parse(c.Ledger.RPCURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("ledger.rpc_url must be an http(s) URL, got %q", c.Ledger.RPCURL)
		}
	}
	if c.Ledger.Timeout <= 0 {
		return errors.New("ledger.timeout must be positive")
	}
	if c.Ledger.RateLimit < 0 {
		return errors.New("ledger.rate_limit cannot be negative")
	}

	switch c.Store.Backend {
	case BackendFile, BackendSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			return errors.New("store.path cannot be empty")
		}
	case BackendRedis:
		if strings.TrimSpace(c.Store.RedisAddr) == "" {
			return errors.New("store.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("store.backend must be one of file, sqlite, redis, got %q", c.Store.Backend)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if strings.TrimSpace(c.Server.Listen) == "" {
		return errors.New("server.listen cannot be empty")
	}

	return nil
}
