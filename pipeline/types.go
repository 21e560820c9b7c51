package pipeline

import (
	"time"

	"github.com/GiuLeo01/road-roughness/frame"
)

// FormatVersion identifies the on-disk layout of a prepared run.
const FormatVersion = "pvs_prepare_v1"

// Options configures run preparation.
type Options struct {
	// RunName is the run directory under DataPath, e.g. "PVS1".
	RunName string

	// DataPath is the dataset root holding the run directories.
	DataPath string

	// OutDir receives the prepared artifacts.
	OutDir string

	// Timesteps is the approximation window length. Zero skips
	// approximation entirely; negative values are rejected.
	Timesteps int

	// Label keeps the modal road_condition in the approximated table.
	Label bool

	// Aggregations are the per-feature window aggregations. When
	// empty, every non-key sensor column is averaged (PAA).
	Aggregations []frame.Aggregation

	// Format selects the table output encoding: parquet|csv.
	// Defaults to parquet.
	Format string

	// Engine loads the source tables. Defaults to frame.DiskEngine.
	Engine frame.Engine
}

// Result returns generated output paths and row counts.
type Result struct {
	OutputDir        string `json:"output_dir"`
	AlignedPath      string `json:"aligned_path"`
	ApproximatedPath string `json:"approximated_path,omitempty"`
	SummaryPath      string `json:"summary_path"`
	ManifestPath     string `json:"manifest_path"`
	AlignedRows      int    `json:"aligned_rows"`
	ApproximatedRows int    `json:"approximated_rows,omitempty"`
}

// RunSummary holds one-run aggregate statistics.
type RunSummary struct {
	RunName          string         `json:"run_name"`
	AlignedRows      int            `json:"aligned_rows"`
	ApproximatedRows int            `json:"approximated_rows,omitempty"`
	WindowLength     int            `json:"window_length,omitempty"`
	DurationS        float64        `json:"duration_s"`
	LabelCounts      map[string]int `json:"label_counts,omitempty"`
	MeanSpeed        float64        `json:"mean_speed"`
	MaxSpeed         float64        `json:"max_speed"`
}

// Manifest captures provenance for a prepared run.
type Manifest struct {
	FormatVersion    string       `json:"format_version"`
	GeneratedAt      time.Time    `json:"generated_at"`
	RunName          string       `json:"run_name"`
	DataPath         string       `json:"data_path"`
	Sources          []SourceFile `json:"sources"`
	AlignedPath      string       `json:"aligned_path"`
	ApproximatedPath string       `json:"approximated_path,omitempty"`
	SummaryPath      string       `json:"summary_path"`
}

// SourceFile records one input file's identity. SHA256 is empty when
// the source was not readable as a plain file, e.g. under an
// in-memory engine.
type SourceFile struct {
	Name      string `json:"name"`
	SHA256    string `json:"sha256,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}
