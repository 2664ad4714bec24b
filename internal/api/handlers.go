// Package api exposes the extraction pipeline over HTTP: a scan trigger
// keyed by a date token, a liveness probe, and Prometheus metrics.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"rpatwari/si-log-extract/internal/config"
	"rpatwari/si-log-extract/internal/dateutils"
	"rpatwari/si-log-extract/internal/gcs"
	"rpatwari/si-log-extract/internal/logging"
	"rpatwari/si-log-extract/internal/models"
	"rpatwari/si-log-extract/internal/scanner"
	"rpatwari/si-log-extract/internal/textutils"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	logger  logging.Logger
	cfg     *config.Config
	scanner *scanner.Scanner
	bridge  *gcs.Bridge

	// Scans write a shared output tree and hold one mirror workspace,
	// so only one may run at a time.
	scanMu sync.Mutex
}

// NewHandlers wires the handler set.
func NewHandlers(logger logging.Logger, cfg *config.Config, sc *scanner.Scanner, bridge *gcs.Bridge) *Handlers {
	return &Handlers{
		logger:  logger.WithField("component", "API"),
		cfg:     cfg,
		scanner: sc,
		bridge:  bridge,
	}
}

type extractStats struct {
	FilesScanned int      `json:"files_scanned"`
	Hits         int      `json:"hits"`
	WrittenFiles []string `json:"written_files"`
}

type extractResponse struct {
	RunID string          `json:"run_id"`
	Date  string          `json:"date"`
	Stats extractStats    `json:"stats"`
	Paths models.RunPaths `json:"paths"`
}

// --- Extract ---

// Extract handles GET /si-log-extract/{token}: the last valid YYYY-MM-DD
// in the token selects the run date, and one scan executes synchronously
// under that date's run identifier.
func (h *Handlers) Extract(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	date, err := textutils.LastDateToken(token)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	runID := dateutils.RunIdentifier(date, time.Now())

	h.scanMu.Lock()
	defer h.scanMu.Unlock()

	h.logger.Info("Extraction requested",
		logging.Field{Key: "token", Value: token},
		logging.Field{Key: "run_id", Value: runID})

	target := gcs.ConfigTarget(h.cfg.Scan.RootPath)
	stats, err := h.bridge.RunWithMirror(r.Context(), target, func(configPath string) (*models.RunStats, error) {
		return h.scanner.RunFromConfigPath(configPath, runID)
	})
	if err != nil {
		h.logger.WithError(err).Error("Scan failed", logging.Field{Key: "run_id", Value: runID})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		RunID: runID,
		Date:  date,
		Stats: extractStats{
			FilesScanned: stats.FilesScanned,
			Hits:         stats.Hits,
			WrittenFiles: stats.WrittenFiles,
		},
		Paths: stats.Paths,
	})
}

// --- Healthz ---

// Healthz handles GET /healthz (liveness probe).
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
