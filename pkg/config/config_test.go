package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2000, cfg.Weeks.MinYear)
	assert.Equal(t, 5, cfg.Weeks.MaxYearOffset)
	assert.Equal(t, 1, cfg.Data.HeaderRow)
	assert.Equal(t, "S3.7", cfg.Data.CriticalPriority)
	assert.Equal(t, "Sim", cfg.Data.SimpleExecution)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "implausible min year",
			mutate:  func(c *Config) { c.Weeks.MinYear = 1800 },
			wantErr: "min_year",
		},
		{
			name:    "negative year offset",
			mutate:  func(c *Config) { c.Weeks.MaxYearOffset = -1 },
			wantErr: "max_year_offset",
		},
		{
			name:    "negative header row",
			mutate:  func(c *Config) { c.Data.HeaderRow = -1 },
			wantErr: "header_row",
		},
		{
			name:    "multi-character delimiter",
			mutate:  func(c *Config) { c.Data.Delimiter = ";;" },
			wantErr: "delimiter",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ssareport.toml")
	content := `
[weeks]
min_year = 2010

[data]
critical_priority = "P1"

[output]
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2010, cfg.Weeks.MinYear)
	assert.Equal(t, "P1", cfg.Data.CriticalPriority)
	assert.Equal(t, "json", cfg.Output.Format)

	// Untouched keys keep their defaults.
	assert.Equal(t, 5, cfg.Weeks.MaxYearOffset)
	assert.Equal(t, "Sim", cfg.Data.SimpleExecution)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ssareport.yaml")
	content := "weeks:\n  min_year: 2015\ndata:\n  delimiter: \";\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2015, cfg.Weeks.MinYear)
	assert.Equal(t, ";", cfg.Data.Delimiter)
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ssareport.toml")
	require.NoError(t, os.WriteFile(path, []byte("[weeks]\nmin_year = 1500\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "min_year")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := LoadOrDefault()
	assert.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile("ssareport.toml", []byte("[weeks]\nmin_year = 2012\n"), 0o644))
	cfg = LoadOrDefault()
	assert.Equal(t, 2012, cfg.Weeks.MinYear)
}
