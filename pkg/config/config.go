// Package config loads the drawspec configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/drawspec/config.toml
// (~/.config/drawspec/config.toml when XDG_CONFIG_HOME is unset). Every
// key is optional; command-line flags override the file.
//
//	[compile]
//	margin = 0.25
//	auto_fit = true
//	anchor = "center"
//	y_axis = "down"
//
//	[render]
//	formats = ["svg", "png"]
//	scale = 2.0
//
//	[cache]
//	backend = "redis"          # file (default), redis or none
//	redis_addr = "localhost:6379"
//	ttl = "12h"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
//	database = "drawspec"
//
//	[server]
//	addr = ":8080"
package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/drawspec/pkg/cache"
	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/geom"
	"github.com/matzehuels/drawspec/pkg/pipeline"
	"github.com/matzehuels/drawspec/pkg/store"
)

const appName = "drawspec"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// DefaultAddr is the API server listen address.
const DefaultAddr = ":8080"

// Config is the parsed configuration file.
type Config struct {
	Compile CompileConfig `toml:"compile"`
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Store   StoreConfig   `toml:"store"`
	Server  ServerConfig  `toml:"server"`
}

// CompileConfig holds compile option overrides.
type CompileConfig struct {
	Margin  *float64 `toml:"margin"`
	AutoFit *bool    `toml:"auto_fit"`
	Anchor  string   `toml:"anchor"`
	YAxis   string   `toml:"y_axis"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
	RSVG    bool     `toml:"rsvg"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	TTL       string `toml:"ttl"`
}

// StoreConfig configures scene storage for the API server. An empty
// MongoURI keeps scenes in memory.
type StoreConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	KeyPrefix string `toml:"key_prefix"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Backend: CacheFile},
		Store:  StoreConfig{Database: store.DefaultDatabase},
		Server: ServerConfig{Addr: DefaultAddr, KeyPrefix: "api:"},
	}
}

// DefaultPath returns the configuration file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path on top of [Default]. A missing file is not
// an error when path is the default location, i.e. when path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "load config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks enumerated values and durations.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "", CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	if c.Compile.Anchor != "" {
		if _, err := geom.ParseAnchor(c.Compile.Anchor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "compile.anchor")
		}
	}
	if c.Compile.YAxis != "" {
		if _, err := geom.ParseYAxis(c.Compile.YAxis); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "compile.y_axis")
		}
	}
	return pipeline.ValidateFormats(c.Render.Formats)
}

// TTL returns the configured cache entry lifetime, zero for the defaults.
func (c Config) TTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache.ttl %q is not a valid duration", c.Cache.TTL)
	}
	return d, nil
}

// PipelineOptions returns pipeline options seeded from the file.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Margin:  c.Compile.Margin,
		AutoFit: c.Compile.AutoFit,
		Anchor:  c.Compile.Anchor,
		YAxis:   c.Compile.YAxis,
		Formats: append([]string(nil), c.Render.Formats...),
		Scale:   c.Render.Scale,
		RSVG:    c.Render.RSVG,
	}
}

// OpenCache opens the configured cache backend. A file cache without a
// configured directory uses [cache.DefaultDir].
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.Cache.RedisAddr)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := c.Cache.Dir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// OpenStore opens MongoDB when a URI is configured and an in-memory store
// otherwise.
func (c Config) OpenStore(ctx context.Context) (store.Store, error) {
	if c.Store.MongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, store.MongoConfig{
		URI:      c.Store.MongoURI,
		Database: c.Store.Database,
	})
	if err != nil {
		return nil, err
	}
	return ms, nil
}
