// Package scanner walks Elasticsearch audit-dump exports, matches records
// against the configured filter rules, and extracts attachment payloads
// into the run's output layout. Mirakl payloads are mapped to their JSON
// templates on the way out; every other payload is written verbatim.
package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"rpatwari/si-log-extract/internal/config"
	"rpatwari/si-log-extract/internal/fileutils"
	"rpatwari/si-log-extract/internal/logging"
	"rpatwari/si-log-extract/internal/metrics"
	"rpatwari/si-log-extract/internal/models"
	"rpatwari/si-log-extract/internal/textutils"
	"rpatwari/si-log-extract/internal/transformer"
)

// namingRules maps a normalized folder key to the filename prefix and
// extension of its payload files. Keys not listed default to
// (folderKey|"output", "txt").
var namingRules = map[string]struct{ prefix, ext string }{
	"producer-input": {"input", "xml"},
	"mirakl-order":   {"mirakl_order", "json"},
	"mirakl-refund":  {"mirakl_refund", "json"},
	"vertex":         {"vertex", "txt"},
	"ip-us":          {"ip-us", "txt"},
	"ip-uk":          {"ip-uk", "txt"},
	"pix":            {"pix", "xml"},
}

func namingRuleFor(folderKey string) (prefix, ext string) {
	if r, ok := namingRules[folderKey]; ok {
		return r.prefix, r.ext
	}
	if folderKey == "" {
		return "output", "txt"
	}
	return folderKey, "txt"
}

// rule is a normalized filter with its matcher strings and naming data
// precomputed.
type rule struct {
	folder        string
	folderKey     string
	prefix        string
	ext           string
	wantDesc      string
	wantName      string
	wantDescLower string
	wantNameLower string
}

func (r *rule) isMirakl() bool {
	return r.folderKey == "mirakl-order" || r.folderKey == "mirakl-refund"
}

// folderPath returns the output directory for this rule: producer input
// keeps its own folder at the top level, everything else goes under
// expected-output, with both Mirakl keys sharing one mirakl leaf.
func (r *rule) folderPath(base string) string {
	if r.folderKey == "producer-input" {
		return filepath.Join(base, r.folder)
	}
	leaf := r.folder
	if r.isMirakl() {
		leaf = "mirakl"
	}
	return filepath.Join(base, "expected-output", leaf)
}

// normalizeFilters precomputes each usable rule. Rules without an event
// description are dropped.
func normalizeFilters(raw []config.FilterRule) []rule {
	rules := make([]rule, 0, len(raw))
	for _, f := range raw {
		wantDesc := strings.TrimSpace(f.EventDescription)
		if wantDesc == "" {
			continue
		}
		wantName := strings.TrimSpace(f.EventName)

		folder := textutils.SanitizeFolderName(f.Folder)
		keySource := f.Folder
		if keySource == "" {
			keySource = folder
		}
		folderKey := textutils.NormalizeFolderKey(keySource)
		prefix, ext := namingRuleFor(folderKey)

		rules = append(rules, rule{
			folder:        folder,
			folderKey:     folderKey,
			prefix:        prefix,
			ext:           ext,
			wantDesc:      wantDesc,
			wantName:      wantName,
			wantDescLower: strings.ToLower(wantDesc),
			wantNameLower: strings.ToLower(wantName),
		})
	}
	return rules
}

// Scanner extracts attachment payloads from audit-dump exports.
type Scanner struct {
	logger logging.Logger
	mapper *transformer.Mapper
	now    func() time.Time
}

// New creates a scanner writing through the given mapper.
func New(logger logging.Logger, mapper *transformer.Mapper) *Scanner {
	return &Scanner{
		logger: logger.WithField("component", "Scanner"),
		mapper: mapper,
		now:    time.Now,
	}
}

// RunFromConfigPath loads the run configuration at configPath and
// executes the scan.
func (s *Scanner) RunFromConfigPath(configPath, inputDate string) (*models.RunStats, error) {
	cfg, err := config.LoadRunConfig(configPath)
	if err != nil {
		return nil, err
	}
	return s.Run(cfg, inputDate)
}

// Run executes one scan over cfg's input glob. inputDate, when non-empty,
// becomes a sanitized date folder under the output root and the run's
// fresh-delete target. Unreadable or unparsable dump files are logged and
// skipped; filesystem write failures abort the run.
func (s *Scanner) Run(cfg *config.RunConfig, inputDate string) (*models.RunStats, error) {
	start := s.now()
	metrics.ScanRuns.Inc()
	defer func() {
		metrics.ScanDuration.Observe(s.now().Sub(start).Seconds())
	}()

	outRoot := cfg.Output
	datePrefix := ""
	if inputDate != "" {
		datePrefix = textutils.SanitizeFolderName(inputDate)
	}
	targetRoot := outRoot
	if datePrefix != "" {
		targetRoot = filepath.Join(outRoot, datePrefix)
	}

	if cfg.Fresh {
		if err := os.RemoveAll(targetRoot); err != nil {
			return nil, fmt.Errorf("failed to remove target root %s: %w", targetRoot, err)
		}
		s.logger.Info("Removed previous run output", logging.Field{Key: "path", Value: targetRoot})
	}

	rules := normalizeFilters(cfg.Filters)
	perFolder := make(map[string]int, len(rules))
	for i := range rules {
		perFolder[rules[i].folder] = 0
	}

	stats := models.NewRunStats()

	paths, err := filepath.Glob(cfg.InputGlob)
	if err != nil {
		return nil, fmt.Errorf("invalid input glob %s: %w", cfg.InputGlob, err)
	}
	sort.Strings(paths)

	s.logger.Info("Scan started",
		logging.Field{Key: "input_glob", Value: cfg.InputGlob},
		logging.Field{Key: "target_root", Value: targetRoot},
		logging.Field{Key: "filters", Value: len(rules)})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		stats.FilesScanned++
		metrics.FilesScanned.Inc()

		if err := s.scanFile(path, rules, targetRoot, outRoot, perFolder, stats); err != nil {
			return nil, err
		}
	}

	for i := range rules {
		r := &rules[i]
		count := perFolder[r.folder]
		s.logger.Info("Folder matches",
			logging.Field{Key: "folder", Value: r.folder},
			logging.Field{Key: "count", Value: count})
		if count == 0 {
			stats.ZeroHit = append(stats.ZeroHit, models.FilterLabel{
				Folder:           r.folder,
				EventDescription: r.wantDesc,
				EventName:        r.wantName,
			})
			s.logger.Warn("No matches for filter",
				logging.Field{Key: "folder", Value: r.folder},
				logging.Field{Key: "event_description", Value: r.wantDesc},
				logging.Field{Key: "event_name", Value: r.wantName})
		}
	}

	stats.FolderHits = perFolder
	stats.Paths = buildPaths(outRoot, datePrefix)

	s.logger.Info("Scan finished",
		logging.Field{Key: "files_scanned", Value: stats.FilesScanned},
		logging.Field{Key: "hits", Value: stats.Hits})

	return stats, nil
}

// scanFile processes one dump file. Read and parse problems are warnings,
// not errors; the batch continues.
func (s *Scanner) scanFile(path string, rules []rule, targetRoot, outRoot string, perFolder map[string]int, stats *models.RunStats) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).Warn("Could not read dump file",
			logging.Field{Key: "file", Value: filepath.Base(path)})
		return nil
	}

	var dump models.AuditDump
	if err := json.Unmarshal(data, &dump); err != nil {
		s.logger.WithError(err).Warn("Could not parse dump file",
			logging.Field{Key: "file", Value: filepath.Base(path)})
		return nil
	}

	for _, resp := range dump.Responses {
		for _, hit := range resp.Hits.Hits {
			record := hit.Source
			if len(record.AuditAttachmentsData) == 0 {
				continue
			}
			// One record can satisfy several rules; each writes its own copy.
			for i := range rules {
				r := &rules[i]
				if !record.MatchesEvent(r.wantDescLower, r.wantNameLower) {
					continue
				}
				metrics.RecordsMatched.WithLabelValues(r.folder).Inc()
				if err := s.writeRecord(&record, r, targetRoot, outRoot, perFolder, stats); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// writeRecord writes every attachment payload of a matched record into the
// rule's folder.
func (s *Scanner) writeRecord(record *models.AuditRecord, r *rule, targetRoot, outRoot string, perFolder map[string]int, stats *models.RunStats) error {
	folderPath := r.folderPath(targetRoot)
	if err := fileutils.EnsureDirectoryExists(folderPath); err != nil {
		return err
	}

	invoiceKey := textutils.SanitizeInvoiceKey(record.InvoiceKey())

	for _, payload := range record.AuditAttachmentsData {
		filename := textutils.SanitizeFilename(fmt.Sprintf("%s_%s.%s", r.prefix, invoiceKey, r.ext))
		outPath := fileutils.UniquePath(filepath.Join(folderPath, filename))

		if r.isMirakl() {
			if err := s.writeMapped(r, payload, outPath); err != nil {
				return err
			}
		} else {
			if err := writeRaw(outPath, payload); err != nil {
				return err
			}
		}

		stats.Hits++
		perFolder[r.folder]++
		metrics.PayloadsWritten.WithLabelValues(r.folder).Inc()

		if rel, err := filepath.Rel(outRoot, outPath); err == nil {
			stats.WrittenFiles = append(stats.WrittenFiles, rel)
		} else {
			stats.WrittenFiles = append(stats.WrittenFiles, outPath)
		}
	}
	return nil
}

// writeMapped maps a Mirakl payload and writes the result. Any mapping or
// write problem degrades to the fallback file so the payload is never
// lost.
func (s *Scanner) writeMapped(r *rule, payload, outPath string) error {
	normalized := textutils.NormalizePayload(payload)
	data, _, err := s.mapper.TransformPayload(r.folderKey, normalized)
	if err != nil {
		metrics.MappingFailures.WithLabelValues(strings.TrimPrefix(r.folderKey, "mirakl-")).Inc()
		s.logger.WithError(err).Warn("Mapping failed, writing raw payload",
			logging.Field{Key: "file", Value: filepath.Base(outPath)})
		return writeFallback(outPath, payload, err)
	}
	if err := fileutils.WriteFile(outPath, data, 0644); err != nil {
		return writeFallback(outPath, payload, err)
	}
	return nil
}

// writeRaw writes a payload verbatim, newline-terminated.
func writeRaw(outPath, payload string) error {
	if !strings.HasSuffix(payload, "\n") {
		payload += "\n"
	}
	return fileutils.WriteFile(outPath, []byte(payload), 0644)
}

// writeFallback writes the diagnostic comment line followed by the raw
// original payload, newline-terminated.
func writeFallback(outPath, payload string, mapErr error) error {
	content := fmt.Sprintf("# [WARN] mapping failed: %v\n%s", mapErr, payload)
	if !strings.HasSuffix(payload, "\n") {
		content += "\n"
	}
	return fileutils.WriteFile(outPath, []byte(content), 0644)
}

// buildPaths renders the canonical layout block in {ROOT_PATH} placeholder
// form; segments always join with forward slashes.
func buildPaths(outRoot, datePrefix string) models.RunPaths {
	absRoot, err := filepath.Abs(outRoot)
	if err != nil {
		absRoot = outRoot
	}
	prefix := "{ROOT_PATH}/" + filepath.Base(absRoot)
	if datePrefix != "" {
		prefix += "/" + datePrefix
	}
	return models.RunPaths{
		Date:         datePrefix,
		Root:         filepath.Dir(absRoot),
		Input:        prefix + "/producer-input",
		MiraklOutput: prefix + "/expected-output/mirakl",
		VertexOutput: prefix + "/expected-output/vertex",
		IPUS:         prefix + "/expected-output/ip-us",
		IPUK:         prefix + "/expected-output/ip-uk",
		Pix:          prefix + "/expected-output/pix",
	}
}
