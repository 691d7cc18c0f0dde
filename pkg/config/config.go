// Package config loads posetrank settings from a TOML file.
//
// Every field has a working default, so a missing config file is not an
// error. The default location is ~/.config/posetrank/config.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/posetrank/posetrank/pkg/errors"
)

// Config holds all user-tunable settings.
type Config struct {
	Enumeration EnumerationConfig `toml:"enumeration"`
	Cache       CacheConfig       `toml:"cache"`
	Server      ServerConfig      `toml:"server"`
	Mongo       MongoConfig       `toml:"mongo"`
}

// EnumerationConfig bounds linear extension enumeration.
type EnumerationConfig struct {
	// MaxElements is the largest ground set enumerated exhaustively.
	// Zero means the built-in default.
	MaxElements int `toml:"max_elements"`

	// MaxSteps bounds the number of recursion steps per enumeration.
	// Zero means unlimited.
	MaxSteps int64 `toml:"max_steps"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty means the user cache dir.
	Dir string `toml:"dir"`

	// TTLHours is the cache entry lifetime. Zero means no expiry.
	TTLHours int `toml:"ttl_hours"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// MongoConfig configures the optional persistent analysis store.
// An empty URI means analyses are kept in memory only.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Enumeration: EnumerationConfig{},
		Cache: CacheConfig{
			Backend:  "file",
			TTLHours: 24 * 7,
			Redis:    RedisConfig{Addr: "localhost:6379"},
		},
		Server: ServerConfig{Addr: ":8080"},
		Mongo:  MongoConfig{Database: "posetrank"},
	}
}

// DefaultPath returns the default config file location,
// ~/.config/posetrank/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "posetrank", "config.toml")
}

// Load reads the config file at path, layering it over [Default]. A missing
// file yields the defaults; a file that exists but cannot be parsed is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	return cfg, nil
}
