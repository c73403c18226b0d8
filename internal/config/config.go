package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/tally/internal/balance"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/model"
)

// EnvPath names the environment variable holding the default config path.
const EnvPath = "TALLY_CONFIG"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Statements []StatementFormat `yaml:"statements"`
	Balances   []BalanceProfile  `yaml:"balances"`
}

// StatementFormat selects the parser for one bank export.
type StatementFormat struct {
	Name      string          `yaml:"name"`
	Layout    importer.Layout `yaml:"layout"`
	TitleCase bool            `yaml:"title_case"`
}

// BalanceProfile describes where a bank's statement puts its period-end date
// and ending balance.
type BalanceProfile struct {
	Name          string `yaml:"name"`
	DateMarker    string `yaml:"date_marker"`
	BalanceMarker string `yaml:"balance_marker"`
	Sectioned     bool   `yaml:"sectioned,omitempty"`
}

// Load reads a tally.yaml file from disk and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve loads the config at path, falling back to $TALLY_CONFIG and then
// to Default.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the built-in statement formats and balance profiles.
func Default() *Config {
	return &Config{
		Statements: []StatementFormat{
			{Name: "bofa", Layout: importer.LayoutRow},
			{Name: "bofa-legacy", Layout: importer.LayoutRow, TitleCase: true},
			{Name: "chase", Layout: importer.LayoutColumnar, TitleCase: true},
			{Name: "citi", Layout: importer.LayoutDualDate},
		},
		Balances: []BalanceProfile{
			{Name: "bofa", DateMarker: balance.BofADateMarker, BalanceMarker: balance.BofABalanceMarker},
			{Name: "chase", DateMarker: balance.ChaseDateMarker, BalanceMarker: balance.ChaseBalanceMarker, Sectioned: true},
		},
	}
}

// Validate checks names are unique and every layout and marker is usable.
func (c *Config) Validate() error {
	if _, err := c.Parsers(); err != nil {
		return err
	}
	_, err := c.Extractors()
	return err
}

// Parsers builds the parser registry described by the config.
func (c *Config) Parsers() (*importer.Registry, error) {
	r := importer.NewRegistry()
	for i, sf := range c.Statements {
		if sf.Name == "" {
			return nil, invalid(fmt.Sprintf("statements[%d]: missing name", i))
		}
		if r.Get(sf.Name) != nil {
			return nil, invalid(fmt.Sprintf("statements[%d]: duplicate name %q", i, sf.Name))
		}
		p, err := importer.New(sf.Layout, sf.Name, sf.TitleCase)
		if err != nil {
			return nil, invalid(fmt.Sprintf("statements[%d]: %v", i, err))
		}
		r.Register(p)
	}
	return r, nil
}

// Extractors builds the balance extractor registry described by the config.
func (c *Config) Extractors() (*balance.Registry, error) {
	r := balance.NewRegistry()
	for i, bp := range c.Balances {
		if bp.Name == "" {
			return nil, invalid(fmt.Sprintf("balances[%d]: missing name", i))
		}
		if r.Get(bp.Name) != nil {
			return nil, invalid(fmt.Sprintf("balances[%d]: duplicate name %q", i, bp.Name))
		}
		e, err := balance.NewMarkerExtractor(bp.Name, bp.DateMarker, bp.BalanceMarker, bp.Sectioned)
		if err != nil {
			return nil, invalid(fmt.Sprintf("balances[%d]: %v", i, err))
		}
		r.Register(e)
	}
	return r, nil
}

func invalid(reason string) error {
	return &model.ConfigError{Flag: "config", Reason: reason}
}
