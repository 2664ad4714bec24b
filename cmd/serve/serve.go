// Package serve starts the HTTP extraction service
package serve

import (
	"rpatwari/si-log-extract/cmd/root"
	"rpatwari/si-log-extract/internal/api"
	"rpatwari/si-log-extract/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP extraction service",
	Long: `Start the HTTP service exposing the extraction endpoint
GET /si-log-extract/{token} plus /healthz and /metrics.

The token must contain a YYYY-MM-DD date; each request runs one extraction
against the configured scan root and returns the run summary as JSON.

Example:
  si-log-extract serve --listen :8080`,
	Run: serveFunc,
}

func init() {
	// Serve command flags
	Cmd.Flags().StringVar(&root.ListenAddr, "listen", "", "Listen address (default: server.listen)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Serve command called")

	appContainer := root.GetContainer()
	if appContainer == nil {
		root.Log.Fatal("Container not initialized")
	}

	addr := root.ListenAddr
	if addr == "" {
		addr = root.GetConfig().Server.Listen
	}
	if err := validation.IsValidListenAddr(addr); err != nil {
		root.Log.Fatalf("Invalid listen address: %v", err)
	}

	handlers := api.NewHandlers(appContainer.GetLogger(), appContainer.GetConfig(),
		appContainer.GetScanner(), appContainer.GetBridge())
	router := api.NewRouter(handlers)

	root.Log.Infof("Listening on %s", addr)
	if err := api.Serve(addr, router, appContainer.GetLogger()); err != nil {
		root.Log.Fatalf("Server failed: %v", err)
	}
}
