// Package config loads config.toml, which holds the settings for logging,
// the store directory and the web inspector.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/wailsapp/wails/v2/pkg/logger"
)

const (
	appDirName = "type-for-me"
	fileName   = "config.toml"

	defaultLogLevel = "info"
)

// Config represents config.toml.
type Config struct {
	Log   LogConfig   `toml:"log"`
	Store StoreConfig `toml:"store"`
	Debug DebugConfig `toml:"debug"`
}

// LogConfig represents the [log] section.
type LogConfig struct {
	// Level is one of "trace", "debug", "info", "warning", "error".
	Level string `toml:"level" validate:"oneof=trace debug info warning error"`
	// File, when set, sends framework logs to this file instead of stdout.
	File string `toml:"file"`
}

// StoreConfig represents the [store] section.
type StoreConfig struct {
	// Dir overrides the directory persisted stores live in.
	Dir string `toml:"dir"`
}

// DebugConfig represents the [debug] section.
type DebugConfig struct {
	Inspector bool `toml:"inspector"`
}

var validate = validator.New()

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Log: LogConfig{Level: defaultLogLevel}}
}

// DefaultPath returns <UserConfigDir>/type-for-me/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "."+appDirName, fileName)
	}
	return filepath.Join(dir, appDirName, fileName)
}

// Load reads path. A missing file yields defaults; so does a file that does
// not parse, after logging a warning. Invalid values fall back to their
// defaults individually.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		log.Printf("warning: failed to parse %s, using defaults: %v", path, err)
		return Default(), nil
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if err := validate.Struct(cfg.Log); err != nil {
		log.Printf("warning: invalid log level %q, using %q", cfg.Log.Level, defaultLogLevel)
		cfg.Log.Level = defaultLogLevel
	}

	cfg.Log.File = expandHome(strings.TrimSpace(cfg.Log.File))
	cfg.Store.Dir = expandHome(strings.TrimSpace(cfg.Store.Dir))
	return cfg, nil
}

// ApplyEnv applies development overrides: WAILS_DEV forces debug logging
// and opens the inspector.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv("WAILS_DEV") != "" {
		c.Log.Level = "debug"
		c.Debug.Inspector = true
	}
}

// LogLevel returns the configured level as a framework log level.
func (c *Config) LogLevel() logger.LogLevel {
	level, err := logger.StringToLogLevel(c.Log.Level)
	if err != nil {
		return logger.INFO
	}
	return level
}

// Logger returns the framework logger: a file logger when log.file is set,
// otherwise the default stdout logger.
func (c *Config) Logger() logger.Logger {
	if c.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.File), 0700); err != nil {
			log.Printf("warning: cannot create log directory, logging to stdout: %v", err)
			return logger.NewDefaultLogger()
		}
		return logger.NewFileLogger(c.Log.File)
	}
	return logger.NewDefaultLogger()
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
