package roadroughness

import (
	"fmt"
	"math"
	"strconv"

	"github.com/GiuLeo01/road-roughness/frame"
)

// DefaultTimesteps is the window length used when a caller does not
// choose one.
const DefaultTimesteps = 200

// ApproximateTS reduces an aligned table to one row per window of
// timesteps consecutive timesteps. Each output row holds the window's
// last timestep, the mean latitude and longitude, every caller-supplied
// feature aggregation, and, when label is set, the modal
// road_condition. With mean aggregations for every feature this is
// Piecewise Aggregate Approximation.
//
// The final window may hold fewer than timesteps rows. The output has
// ceil(N/timesteps) rows for an input of N rows and is ordered by
// timestep.
func ApproximateTS(df *frame.Frame, features []frame.Aggregation, timesteps int, label bool) (*frame.Frame, error) {
	if df == nil {
		return nil, fmt.Errorf("input table is required: %w", ErrInvalidArgument)
	}
	if timesteps < 1 {
		return nil, fmt.Errorf("window length %d: %w", timesteps, ErrInvalidArgument)
	}

	aggs := make([]frame.Aggregation, 0, 4+len(features))
	aggs = append(aggs, frame.Max("timestep").As("timestep"))
	if label {
		aggs = append(aggs, frame.Mode("road_condition"))
	}
	aggs = append(aggs, frame.Mean("latitude"), frame.Mean("longitude"))
	aggs = append(aggs, features...)

	if df.NumRows() == 0 {
		cols := make([]string, len(aggs))
		for i, a := range aggs {
			cols[i] = a.Name
		}
		return frame.New(cols, nil)
	}

	grouped := df.WithColumn("group_by", func(r frame.Row) string {
		t, ok := windowIndex(r.Get("timestep"), timesteps)
		if !ok {
			return ""
		}
		return strconv.Itoa(t)
	})
	res, err := grouped.GroupBy("group_by", aggs...)
	if err != nil {
		return nil, err
	}
	return res.SortByNumber("timestep")
}

func windowIndex(cell string, timesteps int) (int, bool) {
	if t, err := strconv.Atoi(cell); err == nil {
		return t / timesteps, true
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return int(math.Floor(v / float64(timesteps))), true
	}
	return 0, false
}
