// Package config loads interpreter settings: the language dialect and CLI
// presentation options.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the settings file looked up in the working directory.
const DefaultFile = ".astro.yaml"

// PrintStyle selects how print is spelled in programs.
type PrintStyle string

const (
	// PrintKeyword reserves print as a keyword: print x;
	PrintKeyword PrintStyle = "keyword"
	// PrintProcedure binds print as a one-argument procedure: print(x);
	PrintProcedure PrintStyle = "procedure"
)

// Dialect holds the grammar variations the interpreter supports.
type Dialect struct {
	Modulo   bool       `yaml:"modulo"`
	Negation bool       `yaml:"negation"`
	Print    PrintStyle `yaml:"print"`
}

// Color modes for diagnostics.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the top-level settings document.
type Config struct {
	Dialect Dialect `yaml:"dialect"`
	Color   string  `yaml:"color"`
}

// DefaultDialect is the full Astro language: modulo, negation and the
// print keyword all enabled.
func DefaultDialect() Dialect {
	return Dialect{Modulo: true, Negation: true, Print: PrintKeyword}
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{Dialect: DefaultDialect(), Color: ColorAuto}
}

// Load reads settings from path. Keys missing from the file keep their
// default values; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return cfg, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("config: parse %s: %w", abs, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

// Discover loads DefaultFile from dir if it exists and returns the defaults
// otherwise.
func Discover(dir string) (Config, error) {
	path := filepath.Join(dir, DefaultFile)
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Dialect.Print {
	case PrintKeyword, PrintProcedure:
	default:
		return fmt.Errorf("dialect.print must be %q or %q, got %q", PrintKeyword, PrintProcedure, c.Dialect.Print)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	return nil
}
