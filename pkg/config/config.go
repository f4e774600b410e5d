// Package config loads nativedb.yaml, the project file the CLI reads before its flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GriffinCanCode/nativedb/pkg/logger"
)

// FileName is looked up in the working directory when no path is given
const FileName = "nativedb.yaml"

// Known generation targets
var Targets = []string{"go"}

// Config mirrors nativedb.yaml
type Config struct {
	Input   string   `yaml:"input"`
	Output  string   `yaml:"output"`
	Targets []string `yaml:"targets"`
	Workers int      `yaml:"workers"`
	Go      GoConfig `yaml:"go"`
	Log     Log      `yaml:"log"`
}

// GoConfig configures the Go binding target
type GoConfig struct {
	Package string `yaml:"package"`
	Runtime string `yaml:"runtime"`
}

// Log configures pkg/logger
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Input:   ".",
		Output:  "out",
		Targets: []string{"go"},
		Go:      GoConfig{Package: "natives"},
		Log:     Log{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. A missing file at the default location is not
// an error; a missing file that was asked for by name is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping values the document does not set.
// Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks every field that has a closed set of values
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input must not be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	for _, t := range c.Targets {
		if !knownTarget(t) {
			return fmt.Errorf("unknown target %q (known: %v)", t, Targets)
		}
	}
	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Logger converts the log section to a logger configuration
func (c Config) Logger() logger.Config {
	lc := logger.DefaultConfig()
	lc.Level, _ = logger.ParseLevel(c.Log.Level)
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}
	lc.LogFile = c.Log.File
	return lc
}

func knownTarget(name string) bool {
	for _, t := range Targets {
		if t == name {
			return true
		}
	}
	return false
}
