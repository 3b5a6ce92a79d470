package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/astview/foundation/core/error"
	mdwlog "github.com/msto63/astview/foundation/core/log"
)

// EnvVar names the environment variable that points at the config file
const EnvVar = "ASTVIEW_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Render  RenderConfig  `toml:"render" yaml:"render"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	TUI     TUIConfig     `toml:"tui" yaml:"tui"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// RenderConfig holds HTML rendering settings
type RenderConfig struct {
	Title string `toml:"title" yaml:"title"`
}

// ServerConfig holds debug server settings
type ServerConfig struct {
	Host            string   `toml:"host" yaml:"host"`
	Port            int      `toml:"port" yaml:"port"`
	PollInterval    Duration `toml:"poll_interval" yaml:"poll_interval"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// TUIConfig holds terminal tree view settings
type TUIConfig struct {
	Color *bool `toml:"color" yaml:"color"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.New(fmt.Sprintf("config file not found: %s", path)).
				WithCode(mdwerror.CodeMissingConfig).
				WithOperation("config.Load").
				WithDetail("path", path)
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, parseError(err, path, "toml")
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, parseError(err, path, "yaml")
		}
	default:
		return nil, mdwerror.New(fmt.Sprintf("unsupported config format %q", ext)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in paths
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func parseError(err error, path, format string) error {
	return mdwerror.Wrap(err, "failed to parse config").
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Load").
		WithDetail("path", path).
		WithDetail("format", format)
}

// DefaultPaths returns the locations searched when no file is named
func DefaultPaths() []string {
	paths := []string{
		"./astview.toml",
		"./astview.yaml",
		"./configs/astview.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config/astview/config.toml"),
			filepath.Join(home, ".config/astview/config.yaml"),
		)
	}
	return paths
}

// Resolve loads the named file, else the file in ASTVIEW_CONFIG, else the
// first existing default path. Without any file it returns the defaults
// and an empty path.
func Resolve(explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Render
	if c.Render.Title == "" {
		c.Render.Title = "AST"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8087
	}
	if c.Server.PollInterval.Duration == 0 {
		c.Server.PollInterval.Duration = 500 * time.Millisecond
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 5 * time.Second
	}

	// TUI
	if c.TUI.Color == nil {
		color := true
		c.TUI.Color = &color
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, err)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port", strconv.Itoa(c.Server.Port), nil)
	}
	if c.Server.PollInterval.Duration < 0 {
		return invalid("server.poll_interval", c.Server.PollInterval.String(), nil)
	}
	return nil
}

func invalid(key, value string, cause error) error {
	message := fmt.Sprintf("invalid value %q for %s", value, key)
	var err *mdwerror.Error
	if cause != nil {
		err = mdwerror.Wrap(cause, message)
	} else {
		err = mdwerror.New(message)
	}
	return err.WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("key", key)
}

// ServerAddress returns the listen address of the debug server
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ColorEnabled reports whether colored terminal output is configured
func (c *Config) ColorEnabled() bool {
	return c.TUI.Color == nil || *c.TUI.Color
}
