package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV parses a headered CSV stream into a Frame. The first record
// is the header; a stream with no records at all is rejected.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	rows := make([][]string, 0, 4096)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return New(header, rows)
}

// WriteCSV writes the Frame as a headered CSV file.
func WriteCSV(path string, f *Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(out)
	if err := w.Write(f.cols); err != nil {
		_ = out.Close()
		return err
	}
	for _, row := range f.rows {
		if err := w.Write(row); err != nil {
			_ = out.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
