// Package config loads the settings of the mirror runtime: resolver cache
// size, logging level, the package prefixes searched when a type is found by
// name and the trace collector endpoint. Settings come from a JSON or TOML
// file and may be overridden by MIRROR_* environment variables.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

var (
	ErrCfgBytesEmpty = errors.New("config bytes is empty")
	ErrUnknownFormat = errors.New("unknown config format")
	ErrInvalidValue  = errors.New("invalid config value")
)

// Environment variables overriding file settings.
const (
	EnvCacheSize       = "MIRROR_CACHE_SIZE"
	EnvLogLevel        = "MIRROR_LOGGING_LEVEL"
	EnvSearchPrefixes  = "MIRROR_SEARCH_PREFIXES"
	EnvTracingEndpoint = "MIRROR_TRACING_ENDPOINT"
	EnvTracingCACerts  = "MIRROR_TRACING_CA_CERTS"
	EnvServiceName     = "MIRROR_SERVICE_NAME"
)

const (
	defaultCacheSize   = 4096
	defaultLogLevel    = "warning"
	defaultServiceName = "mirror"
)

// Format is the encoding of a config file.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
)

// Config holds the runtime settings.
type Config struct {
	// CacheSize bounds each member resolution cache.
	CacheSize int `json:"cache_size" toml:"cache_size"`
	// LogLevel is a logrus level name.
	LogLevel string `json:"log_level" toml:"log_level"`
	// SearchPrefixes are tried, in order, when a type name is not registered as given.
	SearchPrefixes []string `json:"search_prefixes" toml:"search_prefixes"`
	// TracingEndpoint is the OTLP/HTTP collector, tracing is off when empty.
	TracingEndpoint string `json:"tracing_endpoint" toml:"tracing_endpoint"`
	// TracingCACerts is a base64 encoded PEM bundle for the collector connection.
	TracingCACerts string `json:"tracing_ca_certs" toml:"tracing_ca_certs"`
	ServiceName    string `json:"service_name" toml:"service_name"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		CacheSize:   defaultCacheSize,
		LogLevel:    defaultLogLevel,
		ServiceName: defaultServiceName,
	}
}

// FromBytes parses cfgBytes in the given format over the defaults and validates the result.
func FromBytes(cfgBytes []byte, format Format) (*Config, error) {
	if len(bytes.TrimSpace(cfgBytes)) == 0 {
		return nil, ErrCfgBytesEmpty
	}

	cfg := Default()

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(cfgBytes, cfg); err != nil {
			return nil, fmt.Errorf("unmarshalling failed: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(cfgBytes), cfg); err != nil {
			return nil, fmt.Errorf("decoding toml failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads the config file at path, choosing the format by its extension,
// and applies the environment overrides.
func Load(path string) (*Config, error) {
	var format Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		format = FormatJSON
	case ".toml":
		format = FormatTOML
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownFormat, ext)
	}

	cfgBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := FromBytes(cfgBytes, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}

	if err = cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv returns the defaults with the environment overrides applied.
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings with the variables lookup reports as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvCacheSize); ok {
		size, err := cast.ToIntE(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidValue, EnvCacheSize, err)
		}
		c.CacheSize = size
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvSearchPrefixes); ok {
		c.SearchPrefixes = splitList(v)
	}
	if v, ok := lookup(EnvTracingEndpoint); ok {
		c.TracingEndpoint = v
	}
	if v, ok := lookup(EnvTracingCACerts); ok {
		c.TracingCACerts = v
	}
	if v, ok := lookup(EnvServiceName); ok {
		c.ServiceName = v
	}

	return c.Validate()
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache size %d is negative", ErrInvalidValue, c.CacheSize)
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
	}
	return nil
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
