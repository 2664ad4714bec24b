// Package scan handles the audit-dump extraction command
package scan

import (
	"os"

	"rpatwari/si-log-extract/cmd/common"
	"rpatwari/si-log-extract/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the scan command
var Cmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan audit dump files and extract matching payloads",
	Long: `Scan Elasticsearch audit-dump exports against the filter rules in
config.json and sort every matching attachment payload into the expected
test folder layout. Mirakl payloads are mapped to their JSON templates on
the way out; everything else is written verbatim.

The run root may be a local directory or a gs:// prefix. Remote roots are
mirrored into a temporary workspace and the run results are synced back.

Example:
  si-log-extract scan -c ./run-root -d 2025-07-25 --report json -o report.json`,
	Run: scanFunc,
}

func init() {
	// Scan command flags
	Cmd.Flags().StringVarP(&root.ConfigPath, "config", "c", "", "Run root directory, config.json path, or gs:// prefix (default: scan.root_path)")
	Cmd.Flags().StringVarP(&root.ScanDate, "date", "d", "", "Date prefix for the run output subtree")
	Cmd.Flags().BoolVar(&root.Fresh, "fresh", false, "Remove the dated output subtree before writing")
	Cmd.Flags().StringVar(&root.ReportFormat, "report", "", "Write a run report in this format (json, yaml, or csv)")
}

func scanFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Scan command called")

	appContainer := root.GetContainer()
	if appContainer == nil {
		root.Log.Fatal("Container not initialized")
	}

	target := root.ConfigPath
	if target == "" {
		target = root.GetConfig().Scan.RootPath
	}
	if target == "" {
		root.Log.Fatal("No run root given: set --config or scan.root_path")
	}

	root.Log.Infof("Run root: %s", target)
	if root.ScanDate != "" {
		root.Log.Infof("Date prefix: %s", root.ScanDate)
	}

	stats, err := common.RunScan(cmd.Context(), appContainer, target, root.ScanDate, root.Fresh)
	if err != nil {
		root.Log.Fatalf("Scan failed: %v", err)
	}

	common.PrintSummary(os.Stdout, stats)

	if root.ReportFormat != "" {
		gen := appContainer.GetReportGenerator()
		if err := common.WriteReport(os.Stdout, gen, stats, root.ReportFormat, root.SharedFlags.Output, appContainer.GetLogger()); err != nil {
			root.Log.Fatalf("Failed to write report: %v", err)
		}
	}

	root.Log.Info("Scan completed successfully!")
}
