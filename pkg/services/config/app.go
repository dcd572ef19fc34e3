package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "PROCUREMENT"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type StorageConfig struct {
	DbPath string `mapstructure:"db_path"`
}

type ReportConfig struct {
	Title    string `mapstructure:"title"`
	Currency string `mapstructure:"currency"`
}

// AppConfig holds the settings shared by the CLI and the web server.
type AppConfig struct {
	Server       ServerConfig  `mapstructure:"server"`
	Storage      StorageConfig `mapstructure:"storage"`
	ProfilesPath string        `mapstructure:"profiles_path"`
	Report       ReportConfig  `mapstructure:"report"`
	LogLevel     string        `mapstructure:"log_level"`
}

// DefaultProfilesPath returns $HOME/.procurementcfg.
func DefaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".procurementcfg"
	}
	return filepath.Join(home, ".procurementcfg")
}

// LoadConfig reads the application config from path, if given, and applies
// PROCUREMENT_* environment overrides on top of the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("storage.db_path", "procurement-atlas.db")
	v.SetDefault("profiles_path", DefaultProfilesPath())
	v.SetDefault("report.title", "PROCUREMENT ANALYTICS REPORT")
	v.SetDefault("report.currency", "RON")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Storage.DbPath == "" {
		errs = append(errs, errors.New("storage.db_path is required"))
	}
	if strings.TrimSpace(c.Report.Currency) == "" {
		errs = append(errs, errors.New("report.currency is required"))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, falling back to info.
func (c *AppConfig) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}
