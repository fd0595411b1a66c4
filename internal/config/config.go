// Package config loads the introspec configuration from a YAML file and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vitalvas/introspec/documenter"
	"github.com/vitalvas/introspec/enrich"
	"github.com/vitalvas/introspec/enrichers/fallback"
)

// DefaultConfigFile is read when no --config flag is given and the file
// exists in the working directory.
const DefaultConfigFile = "introspec.yaml"

type Config struct {
	ListenAddr string            `koanf:"listen-addr"`
	LogLevel   string            `koanf:"log-level"`
	BasePath   string            `koanf:"base-path"`
	API        documenter.Config `koanf:"api"`
	Documenter DocumenterConfig  `koanf:"documenter"`
	Endpoints  EndpointsConfig   `koanf:"endpoints"`
}

type DocumenterConfig struct {
	CollectionStrategy string            `koanf:"collection-strategy"`
	ReplacementVerbs   []string          `koanf:"replacement-verbs"`
	Formats            []string          `koanf:"formats"`
	Overrides          string            `koanf:"overrides"`
	Fallback           fallback.Settings `koanf:"fallback"`
}

// EndpointsConfig names the spec endpoints relative to the base path.
// "-" disables an endpoint.
type EndpointsConfig struct {
	JSON        string        `koanf:"json"`
	YAML        string        `koanf:"yaml"`
	CacheMaxAge time.Duration `koanf:"cache-max-age"`
}

func defaults() map[string]any {
	return map[string]any{
		"listen-addr":                    ":8080",
		"log-level":                      "info",
		"base-path":                      "/docs",
		"api.title":                      "API",
		"documenter.collection-strategy": enrich.SetIfEmpty.String(),
		"endpoints.json":                 "spec.json",
		"endpoints.yaml":                 "spec.yaml",
	}
}

// BindFlags binds the configuration flags shared by every command.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: "+DefaultConfigFile+")")
	flags.String("listen-addr", "", "HTTP listen address")
	flags.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.String("base-path", "", "Base path of the spec endpoints")
	flags.String("title", "", "API title")
	flags.String("api-version", "", "API version")
	flags.String("collection-strategy", "", "Collection merge strategy (set-if-empty, union)")
	flags.StringSlice("replacement-verbs", nil, "Verbs substituted for the ANY wildcard")
	flags.StringSlice("formats", nil, "Wire formats exposed by the host")
	flags.String("overrides", "", "Resource overrides file path")
	flags.String("fallback-category", "", "Category for operations without one")
	flags.String("fallback-notes", "", "Notes for types without any")
	flags.StringSlice("default-tags", nil, "Tags for operations without any")
}

// Load merges defaults, the config file and flags set on cmd, then
// validates the result.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			configFile = DefaultConfigFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	getStringSlice := func(name string) []string {
		if v, err := cmd.Flags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		return nil
	}

	stringFlags := map[string]string{
		"listen-addr":         "listen-addr",
		"log-level":           "log-level",
		"base-path":           "base-path",
		"title":               "api.title",
		"api-version":         "api.version",
		"collection-strategy": "documenter.collection-strategy",
		"overrides":           "documenter.overrides",
		"fallback-category":   "documenter.fallback.category",
		"fallback-notes":      "documenter.fallback.notes",
	}
	for flag, key := range stringFlags {
		if v := getString(flag); v != "" {
			m[key] = v
		}
	}

	sliceFlags := map[string]string{
		"replacement-verbs": "documenter.replacement-verbs",
		"formats":           "documenter.formats",
		"default-tags":      "documenter.fallback.tags",
	}
	for flag, key := range sliceFlags {
		if v := getStringSlice(flag); len(v) > 0 {
			m[key] = v
		}
	}

	return m
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base path must start with '/': %s", c.BasePath)
	}

	if _, err := enrich.ParseStrategy(c.Documenter.CollectionStrategy); err != nil {
		return fmt.Errorf("invalid collection strategy: %w", err)
	}

	for _, verb := range c.Documenter.ReplacementVerbs {
		if strings.TrimSpace(verb) == "" || strings.EqualFold(verb, "ANY") {
			return fmt.Errorf("invalid replacement verb: %q", verb)
		}
	}

	if c.Endpoints.JSON == "-" && c.Endpoints.YAML == "-" {
		return fmt.Errorf("at least one spec endpoint must be enabled")
	}

	if c.Endpoints.CacheMaxAge < 0 {
		return fmt.Errorf("cache max age must not be negative: %s", c.Endpoints.CacheMaxAge)
	}

	return nil
}

// Strategy returns the parsed collection strategy. Call after Validate.
func (c *Config) Strategy() enrich.Strategy {
	s, _ := enrich.ParseStrategy(c.Documenter.CollectionStrategy)
	return s
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
