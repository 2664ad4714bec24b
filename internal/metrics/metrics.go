package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "silogextract"

var (
	ScanRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_runs_total",
		Help:      "Total number of scan runs started.",
	})

	FilesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_files_scanned_total",
		Help:      "Total number of dump files scanned.",
	})

	RecordsMatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_records_matched_total",
		Help:      "Total number of audit record matches, labelled by output folder.",
	}, []string{"folder"})

	PayloadsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_payloads_written_total",
		Help:      "Total number of payload files written, labelled by output folder.",
	}, []string{"folder"})

	MappingFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mapping_failures_total",
		Help:      "Total number of Mirakl payloads that failed to map, labelled by mode.",
	}, []string{"mode"})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scan_duration_seconds",
		Help:      "Wall-clock duration of a full scan run in seconds.",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served, labelled by path and status code.",
	}, []string{"path", "code"})
)
