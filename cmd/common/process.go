// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"rpatwari/si-log-extract/internal/config"
	"rpatwari/si-log-extract/internal/container"
	"rpatwari/si-log-extract/internal/fileutils"
	"rpatwari/si-log-extract/internal/gcs"
	"rpatwari/si-log-extract/internal/logging"
	"rpatwari/si-log-extract/internal/models"
	"rpatwari/si-log-extract/internal/report"
	"rpatwari/si-log-extract/internal/transformer"
	"rpatwari/si-log-extract/internal/validation"
)

// ErrInvalidFormat reports that a document failed the pre-mapping format
// probe.
var ErrInvalidFormat = errors.New("input is not in a recognized Mirakl XML format")

// RunScan executes one extraction run. rootOrConfig may be a local run root
// directory, an explicit config.json path, or a gs:// prefix; remote roots
// go through the bridge, which mirrors them to a temporary workspace and
// syncs the results back. The fresh flag forces removal of the dated output
// subtree even when the run config does not ask for it.
func RunScan(ctx context.Context, c *container.Container, rootOrConfig, date string, fresh bool) (*models.RunStats, error) {
	target := gcs.ConfigTarget(rootOrConfig)
	return c.GetBridge().RunWithMirror(ctx, target, func(configPath string) (*models.RunStats, error) {
		runCfg, err := config.LoadRunConfig(configPath)
		if err != nil {
			return nil, err
		}
		if fresh {
			runCfg.Fresh = true
		}
		return c.GetScanner().Run(runCfg, date)
	})
}

// MapFile maps one XML file onto its Mirakl JSON template. The result goes
// to outputFile, or to w when outputFile is empty.
func MapFile(w io.Writer, m *transformer.Mapper, inputFile, outputFile string, mode transformer.Mode, validate bool, log logging.Logger) error {
	if err := validation.IsValidInputFile(inputFile); err != nil {
		return err
	}

	raw, err := os.ReadFile(inputFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", inputFile, err)
	}
	xmlText := string(raw)

	if validate {
		log.Info("Validating format...")
		if !m.ValidateFormat(xmlText) {
			return ErrInvalidFormat
		}
		log.Info("Validation successful.")
	}

	data, err := m.MapToJSON(xmlText, mode)
	if err != nil {
		return fmt.Errorf("failed to map %s: %w", inputFile, err)
	}

	if outputFile == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}

	if err := fileutils.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
	}
	log.Info("Mapped document written",
		logging.Field{Key: "mode", Value: string(mode)},
		logging.Field{Key: "output", Value: outputFile})
	return nil
}

// PrintSummary writes the human-readable result of a finished run to w:
// overall counters, hits per folder, and the filters that matched nothing.
func PrintSummary(w io.Writer, stats *models.RunStats) {
	fmt.Fprintf(w, "Files scanned:    %d\n", stats.FilesScanned)
	fmt.Fprintf(w, "Payloads written: %d\n", stats.Hits)

	folders := make([]string, 0, len(stats.FolderHits))
	for folder := range stats.FolderHits {
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	for _, folder := range folders {
		fmt.Fprintf(w, "  %-20s %d\n", folder, stats.FolderHits[folder])
	}

	for _, label := range stats.ZeroHit {
		fmt.Fprintf(w, "No matches for filter: folder=%q description=%q\n",
			label.Folder, label.EventDescription)
	}

	if stats.MirrorWorkspace != "" {
		fmt.Fprintf(w, "Mirror workspace: %s (downloaded %d, uploaded %d)\n",
			stats.MirrorWorkspace, stats.Downloaded, stats.Uploaded)
	}
}

// WriteReport renders the run report in the named format, to path when
// given or to w otherwise.
func WriteReport(w io.Writer, gen *report.Generator, stats *models.RunStats, format, path string, log logging.Logger) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	if path == "" {
		data, err := gen.Generate(stats, f)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	if err := gen.Write(stats, f, path); err != nil {
		return err
	}
	log.Info("Run report written",
		logging.Field{Key: "format", Value: string(f)},
		logging.Field{Key: "path", Value: path})
	return nil
}
