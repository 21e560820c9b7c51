package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	roadroughness "github.com/GiuLeo01/road-roughness"
	"github.com/GiuLeo01/road-roughness/frame"
)

// Run prepares one PVS run end to end: align the three source tables,
// write the aligned table, optionally approximate it, and write a run
// summary and manifest alongside.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.RunName) == "" {
		return nil, fmt.Errorf("run name is required")
	}
	if strings.TrimSpace(opts.DataPath) == "" {
		return nil, fmt.Errorf("data path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.Timesteps < 0 {
		return nil, fmt.Errorf("window length %d: %w", opts.Timesteps, roadroughness.ErrInvalidArgument)
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "parquet"
	}
	if format != "parquet" && format != "csv" {
		return nil, fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}
	eng := opts.Engine
	if eng == nil {
		eng = frame.DiskEngine{}
	}

	aligned, err := roadroughness.DatasetPreparation(opts.RunName, eng, opts.DataPath)
	if err != nil {
		return nil, fmt.Errorf("prepare run %s: %w", opts.RunName, err)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	alignedPath := filepath.Join(opts.OutDir, "aligned_"+opts.RunName+"."+format)
	if err := writeTable(alignedPath, format, aligned); err != nil {
		return nil, fmt.Errorf("write aligned table: %w", err)
	}

	var approximated *frame.Frame
	approximatedPath := ""
	if opts.Timesteps > 0 {
		aggs := opts.Aggregations
		if len(aggs) == 0 {
			aggs = defaultAggregations(aligned)
		}
		approximated, err = roadroughness.ApproximateTS(aligned, aggs, opts.Timesteps, opts.Label)
		if err != nil {
			return nil, fmt.Errorf("approximate run %s: %w", opts.RunName, err)
		}
		approximatedPath = filepath.Join(opts.OutDir, "approximated_"+opts.RunName+"."+format)
		if err := writeTable(approximatedPath, format, approximated); err != nil {
			return nil, fmt.Errorf("write approximated table: %w", err)
		}
	}

	summary := buildRunSummary(opts, aligned, approximated)
	summaryPath := filepath.Join(opts.OutDir, "run_summary.json")
	if err := writeJSON(summaryPath, summary); err != nil {
		return nil, fmt.Errorf("write run_summary.json: %w", err)
	}

	manifest := Manifest{
		FormatVersion: FormatVersion,
		GeneratedAt:   time.Now().UTC(),
		RunName:       opts.RunName,
		DataPath:      opts.DataPath,
		Sources:       hashSources(opts.DataPath, opts.RunName),
		AlignedPath:   filepath.Base(alignedPath),
		SummaryPath:   filepath.Base(summaryPath),
	}
	if approximatedPath != "" {
		manifest.ApproximatedPath = filepath.Base(approximatedPath)
	}
	manifestPath := filepath.Join(opts.OutDir, "manifest.json")
	if err := writeJSON(manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("write manifest.json: %w", err)
	}

	res := &Result{
		OutputDir:    opts.OutDir,
		AlignedPath:  alignedPath,
		SummaryPath:  summaryPath,
		ManifestPath: manifestPath,
		AlignedRows:  aligned.NumRows(),
	}
	if approximated != nil {
		res.ApproximatedPath = approximatedPath
		res.ApproximatedRows = approximated.NumRows()
	}
	return res, nil
}

// ParseAggSpecs turns textual aggregation specs of the form
// "fn:column" or "fn:column:alias" into frame aggregations. Known
// functions: mean (alias avg), max, min, sum, count, stddev, mode,
// first, last.
func ParseAggSpecs(specs []string) ([]frame.Aggregation, error) {
	aggs := make([]frame.Aggregation, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid aggregation spec %q (expected fn:column[:alias])", spec)
		}
		fn, col := strings.ToLower(parts[0]), parts[1]
		var agg frame.Aggregation
		switch fn {
		case "mean", "avg":
			agg = frame.Mean(col)
		case "max":
			agg = frame.Max(col)
		case "min":
			agg = frame.Min(col)
		case "sum":
			agg = frame.Sum(col)
		case "count":
			agg = frame.Count(col)
		case "stddev":
			agg = frame.StdDev(col)
		case "mode":
			agg = frame.Mode(col)
		case "first":
			agg = frame.First(col)
		case "last":
			agg = frame.Last(col)
		default:
			return nil, fmt.Errorf("unknown aggregation %q in spec %q", fn, spec)
		}
		if len(parts) == 3 {
			if parts[2] == "" {
				return nil, fmt.Errorf("empty alias in spec %q", spec)
			}
			agg = agg.As(parts[2])
		}
		aggs = append(aggs, agg)
	}
	return aggs, nil
}

// defaultAggregations averages every column ApproximateTS does not
// already handle, which makes the default reduction a plain PAA.
func defaultAggregations(aligned *frame.Frame) []frame.Aggregation {
	skip := map[string]struct{}{
		"timestep":       {},
		"latitude":       {},
		"longitude":      {},
		"road_condition": {},
	}
	cols := aligned.Columns()
	aggs := make([]frame.Aggregation, 0, len(cols))
	for _, col := range cols {
		if _, ok := skip[col]; ok {
			continue
		}
		aggs = append(aggs, frame.Mean(col))
	}
	return aggs
}

func buildRunSummary(opts Options, aligned, approximated *frame.Frame) RunSummary {
	summary := RunSummary{
		RunName:     opts.RunName,
		AlignedRows: aligned.NumRows(),
		DurationS:   float64(aligned.NumRows()) * roadroughness.SamplingIntervalSeconds,
	}
	if approximated != nil {
		summary.ApproximatedRows = approximated.NumRows()
		summary.WindowLength = opts.Timesteps
	}

	if conditions, err := aligned.Column("road_condition"); err == nil {
		counts := make(map[string]int, 3)
		for _, c := range conditions {
			if c != "" {
				counts[c]++
			}
		}
		summary.LabelCounts = counts
	}

	if speeds, err := aligned.Column("speed"); err == nil {
		parsed := make([]float64, 0, len(speeds))
		for _, s := range speeds {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				parsed = append(parsed, v)
			}
		}
		if len(parsed) > 0 {
			summary.MeanSpeed = stat.Mean(parsed, nil)
			summary.MaxSpeed = floats.Max(parsed)
		}
	}
	return summary
}

func hashSources(dataPath, runName string) []SourceFile {
	names := []string{
		roadroughness.LeftSensorFile,
		roadroughness.RightSensorFile,
		roadroughness.LabelFile,
	}
	sources := make([]SourceFile, 0, len(names))
	for _, name := range names {
		src := SourceFile{Name: name}
		if data, err := os.ReadFile(filepath.Join(dataPath, runName, name)); err == nil {
			sum := sha256.Sum256(data)
			src.SHA256 = hex.EncodeToString(sum[:])
			src.SizeBytes = int64(len(data))
		}
		sources = append(sources, src)
	}
	return sources
}

func writeTable(path, format string, f *frame.Frame) error {
	if format == "csv" {
		return frame.WriteCSV(path, f)
	}
	return writeParquet(path, f)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
