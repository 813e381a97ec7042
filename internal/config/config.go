// Package config loads tmux-deck configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by cmd)
//  2. Environment variables (TMUX_DECK_*)
//  3. Config file
//  4. Built-in defaults
//
// Config file search order:
//  1. the path given with --config
//  2. .tmux-deck.yaml, then .tmux-deck.toml in the current directory
//  3. ~/.config/tmux-deck/config.yaml, then ~/.config/tmux-deck/config.toml
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config holds all tmux-deck configuration.
type Config struct {
	// tmux server selection
	TmuxPath   string `yaml:"tmux_path" toml:"tmux_path"`
	SocketName string `yaml:"socket_name" toml:"socket_name"` // tmux -L
	SocketPath string `yaml:"socket_path" toml:"socket_path"` // tmux -S

	// CLI behaviour
	Output   string `yaml:"output" toml:"output"`       // "table" or "json"
	Parallel int    `yaml:"parallel" toml:"parallel"`   // concurrent sessions enriched by "tree"
	LogLevel string `yaml:"log_level" toml:"log_level"` // debug, info, warn, error
	Theme    string `yaml:"theme" toml:"theme"`         // browser colors: "dark" or "light"

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint" toml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers" toml:"otel_headers"` // Comma-separated key=value pairs

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-" toml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		TmuxPath: "tmux",
		Output:   OutputTable,
		Parallel: 4,
		LogLevel: "warn",
		Theme:    "dark",
	}
}

// Load reads configuration from file and environment variables.
// When explicitPath is set it must exist; otherwise the search paths are
// tried in order and a missing file is not an error.
func Load(explicitPath string) (*Config, error) {
	cfg := Defaults()

	path, data, err := findConfigFile(explicitPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		fileCfg, err := parseFile(path, data)
		if err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
		mergeFile(cfg, fileCfg)
	}

	if err := mergeEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q (want %q or %q)", c.Output, OutputTable, OutputJSON)
	}
	if c.Parallel < 1 {
		return fmt.Errorf("invalid parallel %d (must be at least 1)", c.Parallel)
	}
	if c.SocketName != "" && c.SocketPath != "" {
		return errors.New("socket_name and socket_path are mutually exclusive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Theme != "dark" && c.Theme != "light" {
		return fmt.Errorf("invalid theme %q (want \"dark\" or \"light\")", c.Theme)
	}
	return nil
}

func searchPaths() []string {
	paths := []string{".tmux-deck.yaml", ".tmux-deck.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".config", "tmux-deck")
		paths = append(paths,
			filepath.Join(dir, "config.yaml"),
			filepath.Join(dir, "config.toml"))
	}
	return paths
}

// findConfigFile returns the path and contents of the config file to use, or
// an empty path when none exists.
func findConfigFile(explicitPath string) (string, []byte, error) {
	if explicitPath != "" {
		data, err := os.ReadFile(explicitPath)
		if err != nil {
			return "", nil, fmt.Errorf("reading config file: %w", err)
		}
		return explicitPath, data, nil
	}
	for _, path := range searchPaths() {
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}
	return "", nil, nil
}

// parseFile decodes data as TOML for .toml files and as YAML otherwise.
func parseFile(path string, data []byte) (*Config, error) {
	var fileCfg Config
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fileCfg)
	} else {
		err = yaml.Unmarshal(data, &fileCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &fileCfg, nil
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.TmuxPath != "" {
		cfg.TmuxPath = file.TmuxPath
	}
	if file.SocketName != "" {
		cfg.SocketName = file.SocketName
	}
	if file.SocketPath != "" {
		cfg.SocketPath = file.SocketPath
	}
	if file.Output != "" {
		cfg.Output = file.Output
	}
	if file.Parallel != 0 {
		cfg.Parallel = file.Parallel
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.Theme != "" {
		cfg.Theme = file.Theme
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins over the
// file.
func mergeEnv(cfg *Config) error {
	if v := os.Getenv("TMUX_DECK_TMUX_PATH"); v != "" {
		cfg.TmuxPath = v
	}
	// An env socket replaces the file's socket selection. Setting both
	// variables is left for Validate to reject.
	name, path := os.Getenv("TMUX_DECK_SOCKET_NAME"), os.Getenv("TMUX_DECK_SOCKET_PATH")
	if name != "" || path != "" {
		cfg.SocketName = name
		cfg.SocketPath = path
	}
	if v := os.Getenv("TMUX_DECK_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("TMUX_DECK_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TMUX_DECK_PARALLEL %q: %w", v, err)
		}
		cfg.Parallel = n
	}
	if v := os.Getenv("TMUX_DECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TMUX_DECK_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
	return nil
}
