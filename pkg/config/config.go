// Package config loads nodeshift settings from TOML or YAML files.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/nodeshift/pkg/core/cascade"
	"github.com/matzehuels/nodeshift/pkg/errors"
	"github.com/matzehuels/nodeshift/pkg/graph"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultExpandHeight is the expansion height used when none is given.
const DefaultExpandHeight = 120.0

// Config is the full settings tree.
type Config struct {
	Layout           Layout              `toml:"layout" yaml:"layout"`
	Transformational map[string][]string `toml:"transformational" yaml:"transformational"`
	Cache            Cache               `toml:"cache" yaml:"cache"`
	Server           Server              `toml:"server" yaml:"server"`
}

// Layout holds the cascade parameters.
type Layout struct {
	MinSeparation float64 `toml:"min_separation" yaml:"min_separation"`
	ExpandHeight  float64 `toml:"expand_height" yaml:"expand_height"`
	RootType      string  `toml:"root_type" yaml:"root_type"`
}

// Cache selects and configures the render cache.
type Cache struct {
	Backend   string        `toml:"backend" yaml:"backend"`
	Dir       string        `toml:"dir" yaml:"dir"`
	RedisAddr string        `toml:"redis_addr" yaml:"redis_addr"`
	TTL       time.Duration `toml:"ttl" yaml:"ttl"`
}

// Server configures the preview API.
type Server struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: Layout{
			MinSeparation: cascade.MinSeparation,
			ExpandHeight:  DefaultExpandHeight,
		},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       24 * time.Hour,
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads path over the defaults. The format follows the extension:
// .yaml and .yml are YAML, anything else is TOML. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := Decode(data, formatOf(path), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, cfg.Validate()
}

// Format is a config file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Decode parses data into cfg, leaving fields absent from data untouched.
func Decode(data []byte, f Format, cfg *Config) error {
	if f == FormatYAML {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return err
		}
		return nil
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Layout.MinSeparation < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.min_separation must not be negative")
	}
	if err := errors.ValidateFinite("layout.min_separation", c.Layout.MinSeparation); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.min_separation")
	}
	if err := errors.ValidateFinite("layout.expand_height", c.Layout.ExpandHeight); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.expand_height")
	}
	if c.Layout.RootType != "" {
		if _, err := graph.ParseRootType(c.Layout.RootType); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.root_type")
		}
	}
	for root := range c.Transformational {
		if _, err := graph.ParseRootType(root); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "transformational")
		}
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}
