package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// a missing config file is fine; defaults apply
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 7860, cfg.Server.Port)
	assert.Equal(t, "data/request_forms.db", cfg.Database.Path)
	assert.Equal(t, "uploads/images", cfg.Storage.UploadDir)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxImageSize)
	assert.Equal(t, 9, cfg.PDF.WrapWidth)
	assert.Contains(t, cfg.PDF.FontPaths, "./edukai-5.0.ttf")
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
  read_timeout: 10s
database:
  path: /tmp/forms.db
storage:
  max_image_size: 1048576
pdf:
  wrap_width: 12
  first_page_budget: 14.5
logger:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/tmp/forms.db", cfg.Database.Path)
	assert.Equal(t, int64(1048576), cfg.Storage.MaxImageSize)
	assert.Equal(t, 12, cfg.PDF.WrapWidth)
	assert.Equal(t, 14.5, cfg.PDF.FirstPageBudget)
	assert.Equal(t, "debug", cfg.Logger.Level)

	// untouched sections keep their defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty database path", func(c *Config) { c.Database.Path = "" }},
		{"empty upload dir", func(c *Config) { c.Storage.UploadDir = "" }},
		{"zero image size", func(c *Config) { c.Storage.MaxImageSize = 0 }},
		{"zero wrap width", func(c *Config) { c.PDF.WrapWidth = 0 }},
		{"negative page budget", func(c *Config) { c.PDF.FirstPageBudget = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
