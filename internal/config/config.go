// Package config loads the notes configuration from notes.yaml and NOTES_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (NOTES_STORAGE_PATH, ...).
const EnvPrefix = "NOTES"

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Display DisplayConfig `mapstructure:"display"`
	Host    HostConfig    `mapstructure:"host"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	Adapter string `mapstructure:"adapter" validate:"oneof=fs sqlite memory"`
	Path    string `mapstructure:"path" validate:"required_unless=Adapter memory"`
	Key     string `mapstructure:"key" validate:"required,storagekey"`
}

type DisplayConfig struct {
	Sort       string `mapstructure:"sort" validate:"oneof=date-desc date-asc priority pinned"`
	Locale     string `mapstructure:"locale" validate:"omitempty,oneof=en ru"`
	DateLayout string `mapstructure:"date_layout" validate:"required"`
	Untitled   string `mapstructure:"untitled" validate:"required"`
}

type HostConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	HeaderColor     string `mapstructure:"header_color" validate:"hexcolor"`
	BackgroundColor string `mapstructure:"background_color" validate:"hexcolor"`
	ReadyFile       string `mapstructure:"ready_file"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultDataDir is where notes are stored when storage.path is not set.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "notes")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".notes")
	}
	return filepath.Join(home, ".local", "share", "notes")
}

// Load reads configFile, or notes.yaml from the working directory and
// $HOME/.config/notes when configFile is empty. A missing file is not an
// error: every key has a default. The result is validated.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("notes")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/notes")
	}

	v.SetDefault("storage.adapter", "fs")
	v.SetDefault("storage.path", DefaultDataDir())
	v.SetDefault("storage.key", "tg_notes_list")
	v.SetDefault("display.sort", "date-desc")
	v.SetDefault("display.locale", "")
	v.SetDefault("display.date_layout", "02.01.2006 15:04")
	v.SetDefault("display.untitled", "Untitled")
	v.SetDefault("host.enabled", false)
	v.SetDefault("host.header_color", "#1c1c1e")
	v.SetDefault("host.background_color", "#0d0d0d")
	v.SetDefault("host.ready_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field, reporting all violations in one error.
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, e.Translate(trans))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
	}
	return nil
}
