// Package roadroughness prepares PVS driving-run sensor recordings for
// road-surface analysis: it aligns the left-sensor, right-sensor and
// label tables of a run into one time-indexed table, reduces its
// resolution by windowed aggregation, and smooths numeric series.
package roadroughness

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/GiuLeo01/road-roughness/frame"
)

// ErrInvalidArgument reports a caller-supplied parameter outside its
// valid range.
var ErrInvalidArgument = errors.New("invalid argument")

// Road condition values produced by collapsing the per-side labels.
const (
	RoadGood    = "good"
	RoadRegular = "regular"
	RoadBad     = "bad"
)

// SamplingIntervalSeconds is the fixed capture interval of the PVS rig.
// It is not stored in prepared tables; timestep stands in for it.
const SamplingIntervalSeconds = 0.01

// Source file names of one run, under {dataPath}/{name}/.
const (
	LeftSensorFile  = "dataset_gps_mpu_left.csv"
	RightSensorFile = "dataset_gps_mpu_right.csv"
	LabelFile       = "dataset_labels.csv"
)

// sharedColumns come from the single GPS unit both sensor sides read,
// so they stay unsuffixed and double as join keys.
var sharedColumns = []string{"timestep", "latitude", "longitude", "speed"}

var labelColumns = []string{
	"good_road_left", "good_road_right",
	"regular_road_left", "regular_road_right",
	"bad_road_left", "bad_road_right",
}

// rawTimestampColumns are the per-side wall-clock fields superseded by
// the synthetic timestep index.
var rawTimestampColumns = []string{"timestamp_L", "timestamp_R", "timestamp_gps_L", "timestamp_gps_R"}

// DatasetPreparation loads the three tables of run name under dataPath
// through eng and aligns them into one table ordered by timestep: left
// columns suffixed _L, right columns suffixed _R, shared GPS fields
// deduplicated, and the six per-side label indicators collapsed into
// road_condition.
//
// The three tables must have been captured in the same row order; no
// cross-validation is performed, and rows whose shared GPS fields
// differ between the two sides join to nulls on the right rather than
// failing.
func DatasetPreparation(name string, eng frame.Engine, dataPath string) (*frame.Frame, error) {
	if name == "" {
		return nil, fmt.Errorf("run name is required: %w", ErrInvalidArgument)
	}
	if eng == nil {
		return nil, fmt.Errorf("engine is required: %w", ErrInvalidArgument)
	}

	left, err := eng.ReadCSV(filepath.Join(dataPath, name, LeftSensorFile))
	if err != nil {
		return nil, fmt.Errorf("read left sensor table: %w", err)
	}
	right, err := eng.ReadCSV(filepath.Join(dataPath, name, RightSensorFile))
	if err != nil {
		return nil, fmt.Errorf("read right sensor table: %w", err)
	}
	labels, err := eng.ReadCSV(filepath.Join(dataPath, name, LabelFile))
	if err != nil {
		return nil, fmt.Errorf("read label table: %w", err)
	}

	// The original timestamps advance by a fixed interval, so a
	// discrete per-table row index replaces them as the join key.
	left = left.WithRowIndex("timestep").SuffixExcept("_L", sharedColumns...)
	right = right.WithRowIndex("timestep").SuffixExcept("_R", sharedColumns...)
	labels = labels.WithRowIndex("timestep")

	labels, err = labels.Select(append([]string{"timestep"}, labelColumns...)...)
	if err != nil {
		return nil, fmt.Errorf("label table: %w", err)
	}
	labels = labels.WithColumn("road_condition", func(r frame.Row) string {
		return CollapseRoadCondition(
			r.Get("bad_road_left"), r.Get("bad_road_right"),
			r.Get("regular_road_left"), r.Get("regular_road_right"),
		)
	})
	labels, err = labels.Select("timestep", "road_condition")
	if err != nil {
		return nil, fmt.Errorf("label table: %w", err)
	}

	merged, err := left.LeftJoin(right, sharedColumns...)
	if err != nil {
		return nil, fmt.Errorf("join sensor tables: %w", err)
	}
	merged, err = merged.LeftJoin(labels, "timestep")
	if err != nil {
		return nil, fmt.Errorf("join label table: %w", err)
	}
	merged, err = merged.SortByNumber("timestep")
	if err != nil {
		return nil, fmt.Errorf("order by timestep: %w", err)
	}
	return merged.Drop(rawTimestampColumns...), nil
}

// CollapseRoadCondition folds the dual-sided indicators into one value
// with precedence bad > regular > good. A cell counts as set when it
// parses numerically to 1; anything else, nulls included, is unset, so
// the result is total.
func CollapseRoadCondition(badLeft, badRight, regularLeft, regularRight string) string {
	switch {
	case indicatorSet(badLeft) || indicatorSet(badRight):
		return RoadBad
	case indicatorSet(regularLeft) || indicatorSet(regularRight):
		return RoadRegular
	default:
		return RoadGood
	}
}

func indicatorSet(cell string) bool {
	v, err := strconv.ParseFloat(cell, 64)
	return err == nil && v == 1
}
