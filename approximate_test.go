package roadroughness

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GiuLeo01/road-roughness/frame"
)

// alignedFixture builds a minimal aligned table of n rows with
// predictable values: latitude i, longitude -i, speed 10+i, and a
// label that is "bad" on every third row and "good" otherwise.
func alignedFixture(t *testing.T, n int) *frame.Frame {
	t.Helper()
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		label := RoadGood
		if i%3 == 0 {
			label = RoadBad
		}
		rows[i] = []string{
			strconv.Itoa(i),
			strconv.Itoa(i),
			strconv.Itoa(-i),
			strconv.Itoa(10 + i),
			label,
		}
	}
	return mustFrame(t, []string{"timestep", "latitude", "longitude", "speed", "road_condition"}, rows)
}

func TestApproximateTSWindowsAndAggregates(t *testing.T) {
	df := alignedFixture(t, 10)

	got, err := ApproximateTS(df, []frame.Aggregation{frame.Mean("speed")}, 4, true)
	if err != nil {
		t.Fatalf("ApproximateTS error: %v", err)
	}

	// ceil(10/4) = 3 windows; the last holds the 2-row remainder.
	wantCols := []string{"timestep", "road_condition", "latitude", "longitude", "speed"}
	if diff := cmp.Diff(wantCols, got.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	want := [][]string{
		{"3", "bad", "1.5", "-1.5", "11.5"},
		{"7", "good", "5.5", "-5.5", "15.5"},
		{"9", "bad", "8.5", "-8.5", "18.5"},
	}
	if diff := cmp.Diff(want, got.Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestApproximateTSRowCountIsCeil(t *testing.T) {
	cases := []struct {
		n, timesteps, want int
	}{
		{10, 4, 3},
		{10, 5, 2},
		{10, 200, 1},
		{1, 1, 1},
		{7, 2, 4},
	}
	for _, tc := range cases {
		df := alignedFixture(t, tc.n)
		got, err := ApproximateTS(df, nil, tc.timesteps, true)
		if err != nil {
			t.Fatalf("n=%d timesteps=%d: %v", tc.n, tc.timesteps, err)
		}
		if got.NumRows() != tc.want {
			t.Fatalf("n=%d timesteps=%d: expected %d rows, got %d", tc.n, tc.timesteps, tc.want, got.NumRows())
		}
	}
}

func TestApproximateTSWindowOfOneKeepsEveryRow(t *testing.T) {
	df := alignedFixture(t, 5)
	got, err := ApproximateTS(df, []frame.Aggregation{frame.Mean("speed")}, 1, true)
	if err != nil {
		t.Fatalf("ApproximateTS error: %v", err)
	}
	if got.NumRows() != df.NumRows() {
		t.Fatalf("expected %d rows, got %d", df.NumRows(), got.NumRows())
	}
	// Single-row windows reproduce the input values.
	for i := 0; i < got.NumRows(); i++ {
		wantSpeed, _ := df.Cell(i, "speed")
		gotSpeed, _ := got.Cell(i, "speed")
		if wantSpeed != gotSpeed {
			t.Fatalf("row %d: speed %q, want %q", i, gotSpeed, wantSpeed)
		}
		wantLabel, _ := df.Cell(i, "road_condition")
		gotLabel, _ := got.Cell(i, "road_condition")
		if wantLabel != gotLabel {
			t.Fatalf("row %d: road_condition %q, want %q", i, gotLabel, wantLabel)
		}
	}
}

func TestApproximateTSWithoutLabelOmitsRoadCondition(t *testing.T) {
	df := alignedFixture(t, 6)
	got, err := ApproximateTS(df, []frame.Aggregation{frame.Mean("speed")}, 3, false)
	if err != nil {
		t.Fatalf("ApproximateTS error: %v", err)
	}
	if got.HasColumn("road_condition") {
		t.Fatal("road_condition should be omitted when label is false")
	}
}

func TestApproximateTSInvalidWindow(t *testing.T) {
	df := alignedFixture(t, 4)
	for _, timesteps := range []int{0, -5} {
		if _, err := ApproximateTS(df, nil, timesteps, true); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("timesteps=%d: expected ErrInvalidArgument, got %v", timesteps, err)
		}
	}
	if _, err := ApproximateTS(nil, nil, 1, true); !errors.Is(err, ErrInvalidArgument) {
		t.Fatal("expected ErrInvalidArgument for nil input")
	}
}

func TestApproximateTSEmptyInput(t *testing.T) {
	df := mustFrame(t, []string{"timestep", "latitude", "longitude", "speed", "road_condition"}, nil)
	got, err := ApproximateTS(df, []frame.Aggregation{frame.Mean("speed")}, 200, true)
	if err != nil {
		t.Fatalf("ApproximateTS error: %v", err)
	}
	if got.NumRows() != 0 {
		t.Fatalf("expected empty output, got %d rows", got.NumRows())
	}
	wantCols := []string{"timestep", "road_condition", "latitude", "longitude", "speed"}
	if diff := cmp.Diff(wantCols, got.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}
