package frame

import (
	"fmt"
	"io/fs"
	"os"
)

// Engine loads source tables for dataset preparation. It is passed
// explicitly to every consumer so tests can substitute prebuilt tables
// for the filesystem.
type Engine interface {
	ReadCSV(path string) (*Frame, error)
}

// DiskEngine reads CSV files from the local filesystem.
type DiskEngine struct{}

func (DiskEngine) ReadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tbl, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tbl, nil
}

// MemEngine serves prebuilt Frames keyed by path. Unknown paths report
// fs.ErrNotExist so callers see the same error kind as a missing file.
type MemEngine struct {
	Tables map[string]*Frame
}

func (m MemEngine) ReadCSV(path string) (*Frame, error) {
	f, ok := m.Tables[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return f, nil
}
