// Package mirakl handles the one-shot XML to JSON mapping command
package mirakl

import (
	"os"

	"rpatwari/si-log-extract/cmd/common"
	"rpatwari/si-log-extract/cmd/root"
	"rpatwari/si-log-extract/internal/transformer"

	"github.com/spf13/cobra"
)

// Cmd represents the mirakl command
var Cmd = &cobra.Command{
	Use:   "mirakl",
	Short: "Map one Mirakl XML document to its JSON template",
	Long: `Map a single XML document to the Mirakl order or refund JSON template.

The input dialect (wrapper, feed, or invoice) is detected automatically.
The mapped JSON goes to the --output file, or to stdout when no output is
given.

Example:
  si-log-extract mirakl -i order.xml -m order -o order.json`,
	Run: miraklFunc,
}

func init() {
	// Mirakl command flags
	Cmd.Flags().StringVarP(&root.MapMode, "mode", "m", "", "Mapping mode: order or refund")
	_ = Cmd.MarkFlagRequired("mode")
}

func miraklFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Mirakl map command called")
	root.Log.Infof("Input XML file: %s", root.SharedFlags.Input)

	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file must be specified")
	}

	mode, err := transformer.ParseMode(root.MapMode)
	if err != nil {
		root.Log.Fatalf("Invalid mode: %v", err)
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		root.Log.Fatal("Container not initialized")
	}

	err = common.MapFile(os.Stdout, appContainer.GetMapper(),
		root.SharedFlags.Input, root.SharedFlags.Output,
		mode, root.SharedFlags.Validate, appContainer.GetLogger())
	if err != nil {
		root.Log.Fatalf("Error mapping document: %v", err)
	}

	root.Log.Info("Mirakl mapping completed successfully!")
}
