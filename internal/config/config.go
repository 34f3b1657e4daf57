// Package config loads diacritix settings from environment variables with
// defaults, and resolves the per-user paths derived from them.
package config

import (
	"os"
	"path/filepath"

	"github.com/nconklindev/diacritix/internal/mapping"
)

// AppName names the per-user configuration directory.
const AppName = "diacritix"

// Config holds all application configuration.
type Config struct {
	Paths     PathsConfig
	Transform TransformConfig
	Logging   LoggingConfig
	Editor    EditorConfig
}

// PathsConfig holds file locations.
type PathsConfig struct {
	// ConfigDir holds the character table and log file (default: <user config dir>/diacritix)
	ConfigDir string `env:"DIACRITIX_CONFIG_DIR"`
}

// TransformConfig holds transliteration settings.
type TransformConfig struct {
	// OutputSuffix is inserted before the output file's extension (default: _fixed)
	OutputSuffix string `env:"DIACRITIX_OUTPUT_SUFFIX" default:"_fixed"`

	// Compose NFC-normalizes cell text before lookup (default: false)
	Compose bool `env:"DIACRITIX_COMPOSE" default:"false"`

	// StripMarks removes combining marks left after lookup (default: false)
	StripMarks bool `env:"DIACRITIX_STRIP_MARKS" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File receives interactive-mode logs (default: <ConfigDir>/diacritix.log)
	File string `env:"LOG_FILE"`
}

// EditorConfig selects the program used to open the character table.
type EditorConfig struct {
	Command string `env:"VISUAL" envAlt:"EDITOR"`
}

// MappingsPath is the location of the character table overlay.
func (c *Config) MappingsPath() string {
	return filepath.Join(c.Paths.ConfigDir, mapping.FileName)
}

// LogPath is where the interactive UI writes its log.
func (c *Config) LogPath() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(c.Paths.ConfigDir, AppName+".log")
}

func defaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}
