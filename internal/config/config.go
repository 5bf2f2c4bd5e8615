// =============================================================================
// Salesforce Permission Doc - Configuration Module
// =============================================================================
//
// This module loads the optional run configuration. Every setting has a
// default, so the tool runs without a configuration file; when one is given
// it only needs the keys being overridden.
//
// EXAMPLE (ppsdoc.yaml):
//
//   source_subdirs: [profiles, permissionsets]
//   file_markers: [.profile, .permissionset]
//   max_concurrency: 4
//   log_level: info
//   style:
//     header_fill: 2C94AB
//     header_font_color: FFFFFF
//     title_font_size: 16
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when --config is not set.
// A missing file at DefaultPath is not an error.
const DefaultPath = "ppsdoc.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the settings of one export run.
type Config struct {
	// SourceSubdirs are the directories below the source root that hold
	// metadata files. Default: profiles, permissionsets
	SourceSubdirs []string `yaml:"source_subdirs"`

	// FileMarkers select metadata files by substring of their name.
	// Default: .profile, .permissionset
	FileMarkers []string `yaml:"file_markers"`

	// MaxConcurrency bounds how many files are read and parsed at once.
	// Sheets are always built one at a time. Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// LogLevel is one of debug, info, warn, error. Default: info
	LogLevel string `yaml:"log_level"`

	// Style controls the header band colors.
	Style StyleConfig `yaml:"style"`
}

// StyleConfig holds the header band colors as hex RGB (no '#').
type StyleConfig struct {
	HeaderFill      string  `yaml:"header_fill"`
	HeaderFontColor string  `yaml:"header_font_color"`
	TitleFontSize   float64 `yaml:"title_font_size"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

// Load reads the configuration from path.
//
// RETURNS:
//   - The configuration with defaults applied to unset keys.
//   - The defaults if path is DefaultPath and the file does not exist.
//   - An error if the file cannot be read or parsed, or holds invalid values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if path == DefaultPath && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&c)

	if err := validate(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &c, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(c *Config) {
	if len(c.SourceSubdirs) == 0 {
		c.SourceSubdirs = []string{"profiles", "permissionsets"}
	}
	if len(c.FileMarkers) == 0 {
		c.FileMarkers = []string{".profile", ".permissionset"}
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = 4
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Style.HeaderFill == "" {
		c.Style.HeaderFill = "2C94AB"
	}
	if c.Style.HeaderFontColor == "" {
		c.Style.HeaderFontColor = "FFFFFF"
	}
	if c.Style.TitleFontSize == 0 {
		c.Style.TitleFontSize = 16
	}
}

func validate(c *Config) error {
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be positive, got %d", c.MaxConcurrency)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for _, color := range []string{c.Style.HeaderFill, c.Style.HeaderFontColor} {
		if !isHexColor(color) {
			return fmt.Errorf("color %q is not a 6-digit hex RGB value", color)
		}
	}
	if c.Style.TitleFontSize < 1 || c.Style.TitleFontSize > 409 {
		return fmt.Errorf("title_font_size must be between 1 and 409, got %v", c.Style.TitleFontSize)
	}
	return nil
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func isHexColor(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range strings.ToLower(s) {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
