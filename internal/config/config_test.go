package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/enrich"
)

func validConfig() Config {
	return Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		BasePath:   "/docs",
		Endpoints:  EndpointsConfig{JSON: "spec.json", YAML: "spec.yaml"},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		errContains string
	}{
		{
			name:   "valid config",
			modify: func(*Config) {},
		},
		{
			name:        "missing listen address",
			modify:      func(c *Config) { c.ListenAddr = "" },
			errContains: "listen address is required",
		},
		{
			name:        "invalid log level",
			modify:      func(c *Config) { c.LogLevel = "loud" },
			errContains: "invalid log level",
		},
		{
			name:        "relative base path",
			modify:      func(c *Config) { c.BasePath = "docs" },
			errContains: "base path must start with '/'",
		},
		{
			name:   "empty base path",
			modify: func(c *Config) { c.BasePath = "" },
		},
		{
			name:   "union strategy",
			modify: func(c *Config) { c.Documenter.CollectionStrategy = "Union" },
		},
		{
			name:        "invalid strategy",
			modify:      func(c *Config) { c.Documenter.CollectionStrategy = "merge" },
			errContains: "invalid collection strategy",
		},
		{
			name:        "wildcard replacement verb",
			modify:      func(c *Config) { c.Documenter.ReplacementVerbs = []string{"GET", "any"} },
			errContains: "invalid replacement verb",
		},
		{
			name:        "blank replacement verb",
			modify:      func(c *Config) { c.Documenter.ReplacementVerbs = []string{" "} },
			errContains: "invalid replacement verb",
		},
		{
			name: "all endpoints disabled",
			modify: func(c *Config) {
				c.Endpoints = EndpointsConfig{JSON: "-", YAML: "-"}
			},
			errContains: "at least one spec endpoint",
		},
		{
			name:        "negative cache max age",
			modify:      func(c *Config) { c.Endpoints.CacheMaxAge = -time.Second },
			errContains: "cache max age must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}

	t.Run("invalid strategy wraps sentinel", func(t *testing.T) {
		cfg := validConfig()
		cfg.Documenter.CollectionStrategy = "merge"
		assert.ErrorIs(t, cfg.Validate(), enrich.ErrInvalidStrategy)
	})
}

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd)
	return cmd
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load(newTestCommand())
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "/docs", cfg.BasePath)
		assert.Equal(t, "API", cfg.API.Title)
		assert.Equal(t, enrich.SetIfEmpty, cfg.Strategy())
		assert.Equal(t, EndpointsConfig{JSON: "spec.json", YAML: "spec.yaml"}, cfg.Endpoints)
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yaml")
		content := `
listen-addr: ":9090"
log-level: debug
api:
  title: Pet Store
  version: "2.0"
  contact:
    name: Team
    email: team@example.com
documenter:
  collection-strategy: union
  replacement-verbs: [GET, POST]
  formats: [json, xml]
  overrides: overrides.yaml
  fallback:
    category: general
    tags: [api]
    status-codes:
      - code: 500
        description: Internal error
endpoints:
  yaml: "-"
  cache-max-age: 5m
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cmd := newTestCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

		cfg, err := Load(cmd)
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.ListenAddr)
		assert.Equal(t, zerolog.DebugLevel, cfg.Level())
		assert.Equal(t, "/docs", cfg.BasePath)
		assert.Equal(t, "Pet Store", cfg.API.Title)
		assert.Equal(t, "2.0", cfg.API.Version)
		require.NotNil(t, cfg.API.Contact)
		assert.Equal(t, "team@example.com", cfg.API.Contact.Email)
		assert.Equal(t, enrich.Union, cfg.Strategy())
		assert.Equal(t, []string{"GET", "POST"}, cfg.Documenter.ReplacementVerbs)
		assert.Equal(t, []string{"json", "xml"}, cfg.Documenter.Formats)
		assert.Equal(t, "overrides.yaml", cfg.Documenter.Overrides)
		assert.Equal(t, "general", cfg.Documenter.Fallback.Category)
		assert.Equal(t, []string{"api"}, cfg.Documenter.Fallback.Tags)
		assert.Equal(t, []apidoc.StatusCode{{Code: 500, Description: "Internal error"}}, cfg.Documenter.Fallback.StatusCodes)
		assert.Equal(t, "spec.json", cfg.Endpoints.JSON)
		assert.Equal(t, "-", cfg.Endpoints.YAML)
		assert.Equal(t, 5*time.Minute, cfg.Endpoints.CacheMaxAge)
	})

	t.Run("default file in working directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("base-path: /api\n"), 0o600))
		t.Chdir(dir)

		cfg, err := Load(newTestCommand())
		require.NoError(t, err)
		assert.Equal(t, "/api", cfg.BasePath)
	})

	t.Run("flags override file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("listen-addr: \":9090\"\napi:\n  title: File\n"), 0o600))

		cmd := newTestCommand()
		require.NoError(t, cmd.ParseFlags([]string{
			"--config", path,
			"--listen-addr", ":7070",
			"--title", "Flag",
			"--collection-strategy", "union",
			"--default-tags", "a,b",
			"--fallback-category", "misc",
		}))

		cfg, err := Load(cmd)
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.ListenAddr)
		assert.Equal(t, "Flag", cfg.API.Title)
		assert.Equal(t, enrich.Union, cfg.Strategy())
		assert.Equal(t, []string{"a", "b"}, cfg.Documenter.Fallback.Tags)
		assert.Equal(t, "misc", cfg.Documenter.Fallback.Category)
	})

	t.Run("missing file", func(t *testing.T) {
		cmd := newTestCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))

		_, err := Load(cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cmd := newTestCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--log-level", "loud"}))

		_, err := Load(cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestConfigLevel(t *testing.T) {
	cfg := Config{LogLevel: "warn"}
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())

	cfg.LogLevel = "bogus"
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}
