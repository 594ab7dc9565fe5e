// Package config loads vtopo.yaml and applies VTOPO_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/beetlebugorg/vtopo/pkg/vtopo"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "vtopo.yaml"

const (
	defaultEncoding     = "windows-1252"
	defaultCacheSize    = 64
	defaultDebounceMs   = 300
	defaultLogMaxSizeMB = 10
	defaultLogBackups   = 3
)

type ParseConfig struct {
	Encoding       string `yaml:"encoding"`
	DecimalDegrees bool   `yaml:"decimal_degrees"`
	IgnoreStars    bool   `yaml:"ignore_stars"`
}

type LoadConfig struct {
	Workers    int  `yaml:"workers"`
	SkipErrors bool `yaml:"skip_errors"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type Config struct {
	Parse   ParseConfig   `yaml:"parse"`
	Load    LoadConfig    `yaml:"load"`
	Logging LoggingConfig `yaml:"logging"`

	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`

	Watch struct {
		DebounceMs int `yaml:"debounce_ms"`
	} `yaml:"watch"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.Parse = ParseConfig{
		Encoding:       defaultEncoding,
		DecimalDegrees: true,
		IgnoreStars:    true,
	}
	cfg.Load.SkipErrors = true
	cfg.Logging = LoggingConfig{
		Level:      "info",
		Format:     "text",
		MaxSizeMB:  defaultLogMaxSizeMB,
		MaxBackups: defaultLogBackups,
	}
	cfg.Cache.Size = defaultCacheSize
	cfg.Watch.DebounceMs = defaultDebounceMs
	return cfg
}

// Load reads path over the defaults. A missing file is not an error when
// optional is true.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	// #nosec G304 -- path is provided by trusted config/flag.
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
	}
	if strings.TrimSpace(cfg.Logging.Format) == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		cfg.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if cfg.Logging.MaxBackups <= 0 {
		cfg.Logging.MaxBackups = defaultLogBackups
	}
	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = defaultCacheSize
	}
	if cfg.Watch.DebounceMs <= 0 {
		cfg.Watch.DebounceMs = defaultDebounceMs
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("VTOPO_ENCODING")); v != "" {
		cfg.Parse.Encoding = v
	}
	cfg.Parse.DecimalDegrees = envBool("VTOPO_DECIMAL_DEGREES", cfg.Parse.DecimalDegrees)
	cfg.Parse.IgnoreStars = envBool("VTOPO_IGNORE_STARS", cfg.Parse.IgnoreStars)
	if v := strings.TrimSpace(os.Getenv("VTOPO_LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("VTOPO_LOG_FILE")); v != "" {
		cfg.Logging.File = v
	}
	if n, ok := envInt("VTOPO_WORKERS"); ok {
		cfg.Load.Workers = n
	}
}

func validate(cfg *Config) error {
	if _, err := ResolveEncoding(cfg.Parse.Encoding); err != nil {
		return err
	}
	if cfg.Load.Workers < 0 {
		return errors.New("load.workers must be >= 0")
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format)
	}
	return nil
}

// ResolveEncoding maps an IANA charset name to a decoder. "" and UTF-8
// resolve to nil, which the parser reads as UTF-8.
func ResolveEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// ParseOptions converts the parse section into library options.
func (c *Config) ParseOptions() (vtopo.ParseOptions, error) {
	enc, err := ResolveEncoding(c.Parse.Encoding)
	if err != nil {
		return vtopo.ParseOptions{}, err
	}
	return vtopo.ParseOptions{
		Encoding:       enc,
		DecimalDegrees: c.Parse.DecimalDegrees,
		IgnoreStars:    c.Parse.IgnoreStars,
	}, nil
}

// LoadOptions converts the parse and load sections into library options.
func (c *Config) LoadOptions() (vtopo.LoadOptions, error) {
	parse, err := c.ParseOptions()
	if err != nil {
		return vtopo.LoadOptions{}, err
	}
	opts := vtopo.DefaultLoadOptions()
	opts.Parse = parse
	if c.Load.Workers > 0 {
		opts.Workers = c.Load.Workers
	}
	opts.SkipErrors = c.Load.SkipErrors
	return opts, nil
}

func envInt(name string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
