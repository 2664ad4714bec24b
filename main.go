package main

import (
	"fmt"
	"os"
	"strings"

	"rpatwari/si-log-extract/cmd/mirakl"
	"rpatwari/si-log-extract/cmd/root"
	"rpatwari/si-log-extract/cmd/scan"
	"rpatwari/si-log-extract/cmd/serve"
	"rpatwari/si-log-extract/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv()

	// 2. Apply LOG_LEVEL to the shared logger before any command logs
	configureEarlyLogLevel()

	// 3. Initialize root command flags
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(scan.Cmd)
	root.Cmd.AddCommand(mirakl.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// configureEarlyLogLevel applies the LOG_LEVEL environment variable to the
// shared command logger. The full configuration loaded in PersistentPreRun
// replaces the logger, so this only covers logging that happens before it.
func configureEarlyLogLevel() {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		return
	}

	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		// Keep the default info level when the value does not parse
		return
	}
	root.Log.SetLevel(level)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
