package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vango-dev/smartvalue/internal/errors"
)

const (
	// ConfigFileName is the file Load reads when no path is given.
	ConfigFileName = "smartvalue.yaml"

	// EnvPrefix is the prefix of environment overrides.
	EnvPrefix = "SMARTVALUE_"

	// DefaultAddr is the default address of the demo server.
	DefaultAddr = "localhost:3000"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "smartvalue"
)

// Config is the complete CLI configuration.
type Config struct {
	// Log controls the slog handler.
	Log LogConfig `koanf:"log"`

	// Debug enables runtime debug mode (hook order validation, debug logs).
	Debug bool `koanf:"debug"`

	// Demo seeds the counter demo.
	Demo DemoConfig `koanf:"demo"`

	// Serve configures the HTTP demo.
	Serve ServeConfig `koanf:"serve"`

	// Metrics configures Prometheus instrumentation.
	Metrics MetricsConfig `koanf:"metrics"`

	// configPath stores the path the config was loaded from, if any.
	configPath string
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is text or json.
	Format string `koanf:"format"`
}

// DemoConfig seeds the counter demo.
type DemoConfig struct {
	Initial int  `koanf:"initial"`
	UseRef  bool `koanf:"use_ref"`
}

// ServeConfig configures the HTTP demo.
type ServeConfig struct {
	Addr string `koanf:"addr"`
}

// MetricsConfig configures Prometheus instrumentation.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
}

// knownKeys lists every configuration key; used to map env variables whose
// names contain underscores (SMARTVALUE_DEMO_USE_REF -> demo.use_ref).
var knownKeys = []string{
	"log.level",
	"log.format",
	"debug",
	"demo.initial",
	"demo.use_ref",
	"serve.addr",
	"metrics.enabled",
	"metrics.namespace",
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Serve: ServeConfig{
			Addr: DefaultAddr,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment. An empty path reads ConfigFileName from the working directory
// if it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.New("E100").
				WithDetail(fmt.Sprintf("failed to parse %s", path)).
				Wrap(err)
		}
	} else if explicit {
		return nil, errors.New("E100").
			WithDetail(fmt.Sprintf("config file %s not found", path)).
			Wrap(err)
	} else {
		path = ""
	}

	lookup := buildEnvLookup(knownKeys)
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			if koanfKey, ok := lookup[key]; ok {
				return koanfKey, value
			}
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, errors.New("E100").WithDetail("failed to read environment").Wrap(err)
	}

	cfg := New()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.New("E100").WithDetail("failed to decode configuration").Wrap(err)
	}
	cfg.configPath = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEnvLookup maps env-style keys ("demo_use_ref") to dotted keys.
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		lookup[strings.ReplaceAll(key, ".", "_")] = key
	}
	return lookup
}

// Path returns the path the config was loaded from, or "" if no file was read.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New("E100").WithDetail(err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E100").
			WithDetail(fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	if strings.TrimSpace(c.Serve.Addr) == "" {
		return errors.New("E100").WithDetail("serve.addr must not be empty")
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.New("E100").WithDetail("metrics.namespace must not be empty when metrics are enabled")
	}
	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
