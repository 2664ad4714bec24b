// Package config provides Viper-based hierarchical configuration for the
// application plus the loader for the per-run scan configuration file.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"rpatwari/si-log-extract/internal/report"
	"rpatwari/si-log-extract/internal/transformer"
)

var once sync.Once

// LoadEnv loads variables from a .env file in the working directory once,
// silently. Values already present in the environment win over the file.
func LoadEnv() {
	once.Do(func() {
		_ = godotenv.Load()
	})
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Listen string `mapstructure:"listen" yaml:"listen"`
	} `mapstructure:"server" yaml:"server"`

	Scan struct {
		// RootPath is a local directory or a gs:// prefix holding
		// config.json and receiving the run output.
		RootPath         string `mapstructure:"root_path" yaml:"root_path"`
		TemplateStyle    string `mapstructure:"template_style" yaml:"template_style"`
		FeedAmountPolicy string `mapstructure:"feed_amount_policy" yaml:"feed_amount_policy"`
	} `mapstructure:"scan" yaml:"scan"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.si-log-extract")
	v.AddConfigPath(".si-log-extract")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("SI_LOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The scan root also honors the bare ROOT_PATH variable deployments
	// set, and the log level the bare LOG_LEVEL used by the CLI wrapper
	if err := v.BindEnv("scan.root_path", "SI_LOG_SCAN_ROOT_PATH", "ROOT_PATH"); err != nil {
		fmt.Printf("Warning: failed to bind ROOT_PATH environment variable: %v\n", err)
	}
	if err := v.BindEnv("log.level", "SI_LOG_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		fmt.Printf("Warning: failed to bind LOG_LEVEL environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// A root path sourced from a file may itself carry $VARs or a leading ~
	config.Scan.RootPath = ExpandEnvString(config.Scan.RootPath)

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Server defaults
	v.SetDefault("server.listen", ":8080")

	// Scan defaults
	v.SetDefault("scan.root_path", "")
	v.SetDefault("scan.template_style", string(transformer.StyleSimple))
	v.SetDefault("scan.feed_amount_policy", string(transformer.PolicyItemized))

	// Report defaults
	v.SetDefault("report.format", string(report.FormatJSON))
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate server listen address
	if config.Server.Listen == "" {
		return fmt.Errorf("server.listen must not be empty")
	}

	// Validate scan options against their closed vocabularies
	if _, err := transformer.ParseTemplateStyle(config.Scan.TemplateStyle); err != nil {
		return fmt.Errorf("invalid scan.template_style: %w", err)
	}
	if _, err := transformer.ParseAmountPolicy(config.Scan.FeedAmountPolicy); err != nil {
		return fmt.Errorf("invalid scan.feed_amount_policy: %w", err)
	}

	// Validate report format
	if _, err := report.ParseFormat(config.Report.Format); err != nil {
		return fmt.Errorf("invalid report.format: %w", err)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
