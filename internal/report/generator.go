// Package report renders the summary of a scanner run as JSON, YAML, or a
// CSV manifest of the written files.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"rpatwari/si-log-extract/internal/fileutils"
	"rpatwari/si-log-extract/internal/logging"
	"rpatwari/si-log-extract/internal/models"
)

// Format selects the report output encoding.
type Format string

const (
	// FormatJSON renders the full report as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders the full report as YAML.
	FormatYAML Format = "yaml"
	// FormatCSV renders only the written-files manifest as CSV.
	FormatCSV Format = "csv"
)

// ParseFormat validates a report format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// Report is the serializable summary of one scanner run.
type Report struct {
	ReportID       string               `json:"report_id" yaml:"report_id"`
	GeneratedAt    string               `json:"generated_at" yaml:"generated_at"`
	Date           string               `json:"date,omitempty" yaml:"date,omitempty"`
	FilesScanned   int                  `json:"files_scanned" yaml:"files_scanned"`
	Hits           int                  `json:"hits" yaml:"hits"`
	FolderHits     map[string]int       `json:"folder_hits,omitempty" yaml:"folder_hits,omitempty"`
	ZeroHitFilters []models.FilterLabel `json:"zero_hit_filters,omitempty" yaml:"zero_hit_filters,omitempty"`
	Files          []FileRow            `json:"files" yaml:"files"`
}

// FileRow is one written output file in the run manifest.
type FileRow struct {
	Folder string `csv:"folder" json:"folder" yaml:"folder"`
	Path   string `csv:"path" json:"path" yaml:"path"`
}

// NewReport builds a report from run stats: a fresh run ID, the current
// timestamp, and one manifest row per written file.
func NewReport(stats *models.RunStats) *Report {
	files := make([]FileRow, 0, len(stats.WrittenFiles))
	for _, path := range stats.WrittenFiles {
		files = append(files, FileRow{
			Folder: filepath.Dir(path),
			Path:   path,
		})
	}

	return &Report{
		ReportID:       uuid.New().String(),
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
		Date:           stats.Paths.Date,
		FilesScanned:   stats.FilesScanned,
		Hits:           stats.Hits,
		FolderHits:     stats.FolderHits,
		ZeroHitFilters: stats.ZeroHit,
		Files:          files,
	}
}

// Generator renders run reports in the supported formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new report generator.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// Generate renders the stats in the given format and returns the report
// bytes. Unsupported formats fail.
func (g *Generator) Generate(stats *models.RunStats, format Format) ([]byte, error) {
	rep := NewReport(stats)

	switch format {
	case FormatJSON:
		return g.generateJSON(rep)
	case FormatYAML:
		return g.generateYAML(rep)
	case FormatCSV:
		return g.generateCSV(rep)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// Write renders the stats and writes the report to path.
func (g *Generator) Write(stats *models.RunStats, format Format, path string) error {
	data, err := g.Generate(stats, format)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	g.logger.Info("Report written", logging.Field{Key: "path", Value: path}, logging.Field{Key: "format", Value: string(format)})
	return nil
}

func (g *Generator) generateJSON(rep *Report) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

func (g *Generator) generateYAML(rep *Report) ([]byte, error) {
	data, err := yaml.Marshal(rep)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return data, nil
}

// generateCSV renders the written-files manifest only: a header row and
// one row per file.
func (g *Generator) generateCSV(rep *Report) ([]byte, error) {
	rows := rep.Files
	if rows == nil {
		rows = []FileRow{}
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return data, nil
}
