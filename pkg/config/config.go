package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for ssareport.
type Config struct {
	// Week-code validation bounds
	Weeks WeeksConfig `koanf:"weeks"`

	// Export file layout and domain labels
	Data DataConfig `koanf:"data"`

	// Cache settings for parsed exports
	Cache CacheConfig `koanf:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// WeeksConfig bounds the plausible-year window for week codes. The upper
// bound is relative to the analysis run's current ISO year.
type WeeksConfig struct {
	MinYear       int `koanf:"min_year"`
	MaxYearOffset int `koanf:"max_year_offset"`
}

// DataConfig describes the exported spreadsheet layout and the domain
// labels the analyses key on.
type DataConfig struct {
	Sheet            string `koanf:"sheet"`      // empty = first sheet
	HeaderRow        int    `koanf:"header_row"` // 0-based; export carries its header on the second row
	Delimiter        string `koanf:"delimiter"`  // CSV field delimiter
	CriticalPriority string `koanf:"critical_priority"`
	SimpleExecution  string `koanf:"simple_execution"` // value marking simple-execution orders
}

// CacheConfig controls caching of parsed record sets.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Weeks: WeeksConfig{
			MinYear:       2000,
			MaxYearOffset: 5,
		},
		Data: DataConfig{
			HeaderRow:        1,
			Delimiter:        ",",
			CriticalPriority: "S3.7",
			SimpleExecution:  "Sim",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".ssareport/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Validate rejects configurations the analyzers cannot work with.
func (c *Config) Validate() error {
	if c.Weeks.MinYear < 1900 {
		return fmt.Errorf("weeks.min_year %d is implausible", c.Weeks.MinYear)
	}
	if c.Weeks.MaxYearOffset < 0 {
		return fmt.Errorf("weeks.max_year_offset must not be negative, got %d", c.Weeks.MaxYearOffset)
	}
	if c.Data.HeaderRow < 0 {
		return fmt.Errorf("data.header_row must not be negative, got %d", c.Data.HeaderRow)
	}
	if len(c.Data.Delimiter) != 1 {
		return fmt.Errorf("data.delimiter must be a single character, got %q", c.Data.Delimiter)
	}
	return nil
}

// Load loads configuration from a file, layering it over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries standard config locations and falls back to defaults.
func LoadOrDefault() *Config {
	names := []string{
		"ssareport.toml",
		"ssareport.yaml",
		"ssareport.yml",
		"ssareport.json",
		".ssareport.toml",
		".ssareport.yaml",
		".ssareport.yml",
		".ssareport.json",
	}
	dirs := []string{".", ".ssareport"}

	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				if cfg, err := Load(path); err == nil {
					return cfg
				}
			}
		}
	}
	return DefaultConfig()
}
