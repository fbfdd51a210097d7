package config

import (
	"errors"
	"os"
	"sync"
	"time"
	"truco-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// store kinds
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config provides configuration for the truco server
type Config struct {
	loaded         bool
	Addr           string `yaml:"addr" envconfig:"addr"`
	Store          string `yaml:"store" envconfig:"store"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	LongPoll       struct {
		// seconds
		DefaultTimeout int `yaml:"defaultTimeout" envconfig:"default_timeout"`
		MaxTimeout     int `yaml:"maxTimeout" envconfig:"max_timeout"`
	} `yaml:"longPoll" envconfig:"long_poll"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log" envconfig:"log"`
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	c := Config{
		Addr:           ":5000",
		Store:          StoreMemory,
		PGDSN:          "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath: "sql",
	}

	c.LongPoll.DefaultTimeout = 30
	c.LongPoll.MaxTimeout = 120
	c.Log.Level = "info"

	return c
}

// DefaultTimeout returns the long-poll timeout used when the client doesn't ask for one
func (c Config) DefaultTimeout() time.Duration {
	return time.Duration(c.LongPoll.DefaultTimeout) * time.Second
}

// MaxTimeout returns the longest long-poll timeout a client can ask for
func (c Config) MaxTimeout() time.Duration {
	return time.Duration(c.LongPoll.MaxTimeout) * time.Second
}

var (
	lock   sync.Mutex
	config Config
)

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	lock.Lock()
	loaded := config.loaded
	lock.Unlock()

	if !loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	lock.Lock()
	defer lock.Unlock()

	return config
}

// Load will load the configuration
// The YAML file is optional, environment variables prefixed with TRUCO_ take precedence over it.
func Load() error {
	c := DefaultConfig()

	configFile := util.Getenv("TRUCO_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&c); err != nil {
			return err
		}
	}

	if err := envconfig.Process("truco", &c); err != nil {
		return err
	}

	if c.Store != StoreMemory && c.Store != StorePostgres {
		return errors.New("store must be memory or postgres")
	}

	c.loaded = true

	lock.Lock()
	config = c
	lock.Unlock()

	return nil
}
