package frame

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustNew(t *testing.T, cols []string, rows [][]string) *Frame {
	t.Helper()
	f, err := New(cols, rows)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return f
}

func TestNewRejectsRaggedRows(t *testing.T) {
	if _, err := New([]string{"a", "b"}, [][]string{{"1"}}); err == nil {
		t.Fatal("expected error for ragged row")
	}
	if _, err := New([]string{"a", "a"}, nil); err == nil {
		t.Fatal("expected error for duplicate column")
	}
}

func TestReadCSVParsesHeaderAndRows(t *testing.T) {
	in := "latitude,longitude,speed\n-25.1,-50.2,13.5\n-25.2,-50.3,14\n"
	f, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if diff := cmp.Diff([]string{"latitude", "longitude", "speed"}, f.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if f.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", f.NumRows())
	}
	cell, err := f.Cell(1, "speed")
	if err != nil {
		t.Fatalf("Cell error: %v", err)
	}
	if cell != "14" {
		t.Fatalf("unexpected cell: %q", cell)
	}
}

func TestReadCSVRequiresHeader(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty stream")
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	f := mustNew(t, []string{"timestep", "road_condition"}, [][]string{
		{"0", "good"},
		{"1", ""},
	})
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(path, f); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	in, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written csv: %v", err)
	}
	defer in.Close()
	back, err := ReadCSV(in)
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if diff := cmp.Diff(f.Rows(), back.Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDiskEngineMissingFile(t *testing.T) {
	_, err := DiskEngine{}.ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMemEngineMissingTable(t *testing.T) {
	_, err := MemEngine{}.ReadCSV("anything.csv")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestWithRowIndex(t *testing.T) {
	f := mustNew(t, []string{"v"}, [][]string{{"a"}, {"b"}, {"c"}})
	got := f.WithRowIndex("timestep")
	col, err := got.Column("timestep")
	if err != nil {
		t.Fatalf("Column error: %v", err)
	}
	if diff := cmp.Diff([]string{"0", "1", "2"}, col); diff != "" {
		t.Fatalf("index mismatch (-want +got):\n%s", diff)
	}
	if f.HasColumn("timestep") {
		t.Fatal("WithRowIndex mutated its receiver")
	}
}

func TestSuffixExcept(t *testing.T) {
	f := mustNew(t, []string{"acc_x", "latitude", "speed"}, nil)
	got := f.SuffixExcept("_L", "latitude", "speed")
	if diff := cmp.Diff([]string{"acc_x_L", "latitude", "speed"}, got.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectMissingColumn(t *testing.T) {
	f := mustNew(t, []string{"a"}, nil)
	if _, err := f.Select("a", "b"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestDropIgnoresMissingColumns(t *testing.T) {
	f := mustNew(t, []string{"a", "timestamp_L"}, [][]string{{"1", "x"}})
	got := f.Drop("timestamp_L", "timestamp_R")
	if diff := cmp.Diff([]string{"a"}, got.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if got.NumRows() != 1 {
		t.Fatalf("expected 1 row, got %d", got.NumRows())
	}
}

func TestSortByNumberIsNumericNotLexicographic(t *testing.T) {
	f := mustNew(t, []string{"timestep"}, [][]string{{"10"}, {"2"}, {""}, {"1"}})
	got, err := f.SortByNumber("timestep")
	if err != nil {
		t.Fatalf("SortByNumber error: %v", err)
	}
	col, _ := got.Column("timestep")
	if diff := cmp.Diff([]string{"1", "2", "10", ""}, col); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	f := mustNew(t, []string{"road_condition"}, [][]string{{"good"}, {"bad"}, {"good"}})
	got := f.Filter(func(r Row) bool { return r.Get("road_condition") == "good" })
	if got.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.NumRows())
	}
}
