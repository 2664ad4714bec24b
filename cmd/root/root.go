// Package root contains the root command for the application
package root

import (
	"rpatwari/si-log-extract/internal/config"
	"rpatwari/si-log-extract/internal/container"
	"rpatwari/si-log-extract/internal/currencyutils"
	"rpatwari/si-log-extract/internal/fileutils"
	"rpatwari/si-log-extract/internal/logging"
	"rpatwari/si-log-extract/internal/transformer"
	"rpatwari/si-log-extract/internal/xmlutils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig is the loaded application configuration, set by
	// PersistentPreRun before any command runs
	AppConfig *config.Config

	// AppContainer is the initialized dependency container, set by
	// PersistentPreRun before any command runs
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "si-log-extract",
		Short: "A CLI tool to extract SI payloads from Elasticsearch audit dumps and map Mirakl XML to JSON.",
		Long: `si-log-extract scans Elasticsearch audit-dump exports for configured
audit events, sorts the matching attachment payloads into the expected test
folder layout, and maps Mirakl order/refund XML documents to their JSON
templates. The scan root may be a local directory or a gs:// prefix.`,
		Run: func(cmd *cobra.Command, args []string) {
			// Do Stuff Here
			Log.Info("Welcome to si-log-extract!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}

			// Command-line logging flags win over file and environment
			if LogLevel != "" {
				cfg.Log.Level = LogLevel
			}
			if LogFormat != "" {
				cfg.Log.Format = LogFormat
			}

			AppConfig = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Set the configured logger for all internal packages
			transformer.SetLogger(Log)
			xmlutils.SetLogger(Log)
			fileutils.SetLogger(Log)
			currencyutils.SetLogger(Log)

			AppContainer, err = container.NewContainer(cfg)
			if err != nil {
				Log.Fatalf("Failed to initialize container: %v", err)
			}
		},
		// Release container resources when ANY command finishes
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.Warnf("Failed to close container: %v", err)
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Logging flags layered on top of the loaded configuration
	LogLevel  string
	LogFormat string

	// Specific scan command flags
	ConfigPath   string
	ScanDate     string
	Fresh        bool
	ReportFormat string

	// Specific mirakl command flags
	MapMode string

	// Specific serve command flags
	ListenAddr string
)

// Init initializes the root command and all flags
func Init() {
	// Add persistent flags to root command for common options
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate input format before mapping")
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "Log format (text or json)")
}

// GetConfig returns the loaded application configuration, or nil before
// PersistentPreRun has executed.
func GetConfig() *config.Config {
	return AppConfig
}

// GetContainer returns the initialized dependency container, or nil before
// PersistentPreRun has executed.
func GetContainer() *container.Container {
	return AppContainer
}

// GetLogrusAdapter wraps the shared command logger in the logging.Logger
// interface used by the internal components.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
