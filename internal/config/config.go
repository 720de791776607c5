package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"tlog.app/go/errors"

	"github.com/robert-at-pretension-io/hdlgen/internal/validator"
)

// FileName is the name init writes and Load looks for first.
const FileName = "hdlgen.json"

// Dialects.
const (
	V05 = "v05"
	V17 = "v17"
)

// Config is the top-level configuration for hdl-emit
type Config struct {
	// Dialect selects the output language: "v05" or "v17"
	Dialect string `json:"dialect,omitempty"`

	// Width is the line budget handed to the layout engine
	Width int `json:"width,omitempty"`

	// Header is emitted as a comment line above every module
	Header string `json:"header,omitempty"`

	// Designs is a list of glob patterns for HCL design files,
	// used when no files are given on the command line
	Designs []string `json:"designs,omitempty"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Dialect: V05,
		Width:   100,
		Designs: []string{"*.hcl", "**/*.hcl"},
	}
}

// Load finds and loads the configuration file
// Search order:
//  1. ./hdlgen.json (current working directory)
//  2. ./.hdlgen.json (current working directory)
//  3. <rootPath>/hdlgen.json (if different from cwd)
//  4. ~/.config/hdlgen/config.json
//
// Returns DefaultConfig if no config file is found
func Load(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()

	searchPaths := []string{
		filepath.Join(cwd, FileName),
		filepath.Join(cwd, "."+FileName),
	}

	if info, err := os.Stat(rootPath); err == nil && info.IsDir() {
		absRoot, _ := filepath.Abs(rootPath)
		if absRoot != cwd {
			searchPaths = append(searchPaths,
				filepath.Join(rootPath, FileName),
				filepath.Join(rootPath, "."+FileName),
			)
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "hdlgen", "config.json"))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file. The raw JSON is checked
// against the #Config contract first, so unknown keys are errors.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	v, err := validator.New()
	if err != nil {
		return nil, errors.Wrap(err, "validator")
	}

	if err := v.ValidateConfigJSON(data); err != nil {
		return nil, errors.Wrap(err, "config %v", path)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config file")
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Dialect == "" {
		c.Dialect = def.Dialect
	}

	if c.Width <= 0 {
		c.Width = def.Width
	}

	if c.Designs == nil {
		c.Designs = def.Designs
	}
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write config file")
	}

	return nil
}

// IsV17 reports whether output should use the newer dialect.
func (c *Config) IsV17() bool { return c.Dialect == V17 }

// Override replaces the dialect and width when they are set.
func (c *Config) Override(dialect string, width int) error {
	switch dialect {
	case "":
	case V05, V17:
		c.Dialect = dialect
	default:
		return errors.New("unknown dialect: %q", dialect)
	}

	if width > 0 {
		c.Width = width
	}

	return nil
}
