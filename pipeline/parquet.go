package pipeline

import (
	"fmt"
	"math"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/GiuLeo01/road-roughness/frame"
)

// writeParquet stores a Frame with a per-column schema: DOUBLE where
// every non-null cell parses numerically, UTF8 otherwise. Null cells
// become NaN in DOUBLE columns and the empty string in UTF8 ones.
// Prepared tables have run-dependent sensor columns, so the schema is
// built from metadata strings rather than a row struct.
func writeParquet(path string, f *frame.Frame) error {
	cols := f.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("cannot write parquet table without columns")
	}

	numeric := make([]bool, len(cols))
	md := make([]string, len(cols))
	for i, col := range cols {
		numeric[i] = columnIsNumeric(f, col)
		if numeric[i] {
			md[i] = fmt.Sprintf("name=%s, type=DOUBLE", col)
		} else {
			md[i] = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY", col)
		}
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewCSVWriter(md, fw, 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range f.Rows() {
		rec := make([]interface{}, len(cols))
		for i, cell := range row {
			if !numeric[i] {
				rec[i] = cell
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				v = math.NaN()
			}
			rec[i] = v
		}
		if err := pw.Write(rec); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

// columnIsNumeric reports whether every non-null cell of a column
// parses as a float. All-null columns stay UTF8.
func columnIsNumeric(f *frame.Frame, col string) bool {
	values, err := f.Column(col)
	if err != nil {
		return false
	}
	sawValue := false
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
		sawValue = true
	}
	return sawValue
}
