package models

// RunStats accumulates the outcome of one scanner run. The JSON field
// names follow the shape consumed by the HTTP response and the report
// writers.
type RunStats struct {
	FilesScanned int            `json:"files_scanned"`
	Hits         int            `json:"hits"`
	WrittenFiles []string       `json:"written_files"`
	FolderHits   map[string]int `json:"folder_hits,omitempty"`
	ZeroHit      []FilterLabel  `json:"zero_hit_filters,omitempty"`
	Paths        RunPaths       `json:"paths"`

	// Mirror transfer counters, set only when the run went through the
	// cloud bridge. Key names match the historical stats block.
	Downloaded      int    `json:"gcs_downloaded,omitempty"`
	Uploaded        int    `json:"gcs_uploaded,omitempty"`
	MirrorWorkspace string `json:"gcs_tmp_root,omitempty"`
}

// NewRunStats returns stats with non-nil collections so JSON output shows
// empty lists instead of null.
func NewRunStats() *RunStats {
	return &RunStats{
		WrittenFiles: []string{},
		FolderHits:   map[string]int{},
	}
}

// FilterLabel names a filter rule in human-readable run output: the
// sanitized folder plus the raw match criteria.
type FilterLabel struct {
	Folder           string `json:"folder"`
	EventDescription string `json:"event_description"`
	EventName        string `json:"event_name,omitempty"`
}

// RunPaths is the canonical output layout advertised after a run, in
// {ROOT_PATH} placeholder form.
type RunPaths struct {
	Date         string `json:"date"`
	Root         string `json:"root"`
	Input        string `json:"input"`
	MiraklOutput string `json:"mirakl_output"`
	VertexOutput string `json:"vertex_output"`
	IPUS         string `json:"ip-us"`
	IPUK         string `json:"ip-uk"`
	Pix          string `json:"pix"`
}
