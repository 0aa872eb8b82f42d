// Package config handles loading and validating medcalc configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/medcalc/medcalc/pkg/infusion"
	"github.com/medcalc/medcalc/pkg/scoring"
)

// Dir is the directory holding config.yaml, searched from the working
// directory upward.
const Dir = ".medcalc"

// Output formats understood by the CLI.
const (
	OutputText     = "text"
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputMarkdown = "markdown"
)

// Config is the top-level configuration for medcalc.
type Config struct {
	Output    string          `yaml:"output"`
	Color     bool            `yaml:"color"`
	Infusion  InfusionConfig  `yaml:"infusion"`
	Protocols ProtocolsConfig `yaml:"protocols"`
}

// InfusionConfig sets the units a new infusion calculator starts with.
type InfusionConfig struct {
	DoseUnit          string `yaml:"dose_unit"`
	ConcentrationUnit string `yaml:"concentration_unit"`
}

// ProtocolsConfig restricts the catalog the CLI exposes.
type ProtocolsConfig struct {
	Enabled []string `yaml:"enabled"` // empty means every built-in protocol
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputText,
		Color:  true,
		Infusion: InfusionConfig{
			DoseUnit:          string(infusion.McgPerKgPerMin),
			ConcentrationUnit: string(infusion.MgPerMl),
		},
	}
}

// Load reads a config file from the given path.
// If path is empty or the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the output format, the infusion units and that every
// enabled protocol is built in.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML, OutputMarkdown:
	default:
		return fmt.Errorf("output must be one of text, json, yaml, markdown; got %q", c.Output)
	}
	if _, err := infusion.ParseDoseUnit(c.Infusion.DoseUnit); err != nil {
		return err
	}
	if _, err := infusion.ParseConcentrationUnit(c.Infusion.ConcentrationUnit); err != nil {
		return err
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// Registry returns the built-in registry restricted to the enabled protocols.
func (c *Config) Registry() (*scoring.Registry, error) {
	return scoring.Default().Subset(c.Protocols.Enabled)
}

// FindConfigFile looks for .medcalc/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, Dir, "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
