package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. STUDYSMART_DB_PATH
const EnvPrefix = "STUDYSMART"

// Notifier kinds
const (
	NotifyLog   = "log"
	NotifyTitle = "title"
	NotifyNone  = "none"
)

// Config holds all settings of the app
type Config struct {
	DBPath        string `mapstructure:"db_path" yaml:"db_path"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	Notifications string `mapstructure:"notifications" yaml:"notifications"`
}

// Dir returns the directory that holds the database and config file
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".studysmart"), nil
}

// Load reads configuration from file (optional), then the default config
// file, then STUDYSMART_* environment variables. An explicit file that does
// not exist is an error; a missing default file is not.
func Load(file string) (Config, error) {
	v := viper.New()

	dir, err := Dir()
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	v.SetDefault("db_path", filepath.Join(dir, "studysmart.db"))
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("notifications", NotifyLog)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that have a fixed set of options
func (c Config) Validate() error {
	switch c.Notifications {
	case NotifyLog, NotifyTitle, NotifyNone:
	default:
		return fmt.Errorf("invalid notifications %q, use log, title or none", c.Notifications)
	}
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	return nil
}

// YAML renders the effective configuration
func (c Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(out), nil
}
