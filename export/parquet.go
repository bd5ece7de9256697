// Package export writes and reads the tracking dataset as a Parquet file
package export

import (
	"context"
	"os"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/pkg/errors"

	"droptracker/dataset"
)

// DefaultRowGroupSize is the number of rows per Parquet row group
const DefaultRowGroupSize = 3

var (
	ErrNoColumns   = errors.New("no columns to export")
	ErrColumnType  = errors.New("column is not float64")
	ErrRowMismatch = errors.New("columns have different row counts")
)

// Writer serializes a column set to path in a single write
type Writer interface {
	Write(cols []dataset.Column, path string) error
}

// ParquetWriter writes nullable float64 columns with a fixed row grouping.
// Metadata is attached to the Arrow schema.
type ParquetWriter struct {
	RowGroupSize int64
	Metadata     map[string]string
	mem          memory.Allocator
}

// NewParquetWriter returns a writer using rowGroupSize rows per group
func NewParquetWriter(rowGroupSize int64) *ParquetWriter {
	if rowGroupSize < 1 {
		rowGroupSize = DefaultRowGroupSize
	}
	return &ParquetWriter{
		RowGroupSize: rowGroupSize,
		Metadata:     map[string]string{},
		mem:          memory.NewGoAllocator(),
	}
}

func (w *ParquetWriter) allocator() memory.Allocator {
	if w.mem == nil {
		w.mem = memory.NewGoAllocator()
	}
	return w.mem
}

// Write implements Writer
func (w *ParquetWriter) Write(cols []dataset.Column, path string) error {
	tbl, err := w.table(cols)
	if err != nil {
		return err
	}
	defer tbl.Release()

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "can't create %s", path)
	}

	rowGroup := w.RowGroupSize
	if rowGroup < 1 {
		rowGroup = DefaultRowGroupSize
	}
	props := parquet.NewWriterProperties(parquet.WithAllocator(w.allocator()))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	if err := pqarrow.WriteTable(tbl, f, rowGroup, props, arrowProps); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "can't write parquet table to %s", path)
	}
	// the parquet writer closes its sink on success
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return errors.Wrapf(err, "can't close %s", path)
	}
	return nil
}

func (w *ParquetWriter) table(cols []dataset.Column) (arrow.Table, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	rows := cols[0].Len()

	fields := make([]arrow.Field, len(cols))
	arrs := make([]arrow.Array, len(cols))
	defer func() {
		for _, a := range arrs {
			if a != nil {
				a.Release()
			}
		}
	}()

	for i, c := range cols {
		if c.Len() != rows || len(c.Valid) != rows {
			return nil, errors.Wrapf(ErrRowMismatch, "column %s has %d rows, want %d", c.Name, c.Len(), rows)
		}
		fields[i] = arrow.Field{Name: c.Name, Type: arrow.PrimitiveTypes.Float64, Nullable: true}

		b := array.NewFloat64Builder(w.allocator())
		b.AppendValues(c.Values, c.Valid)
		arrs[i] = b.NewArray()
		b.Release()
	}

	schema := arrow.NewSchema(fields, w.schemaMetadata())
	rec := array.NewRecord(schema, arrs, int64(rows))
	defer rec.Release()

	return array.NewTableFromRecords(schema, []arrow.Record{rec}), nil
}

func (w *ParquetWriter) schemaMetadata() *arrow.Metadata {
	if len(w.Metadata) == 0 {
		return nil
	}
	keys := make([]string, 0, len(w.Metadata))
	for k := range w.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = w.Metadata[k]
	}
	md := arrow.NewMetadata(keys, values)
	return &md
}

// ReadParquet loads every column of a dataset file. Null rows read back as 0
// with Valid set to false.
func ReadParquet(ctx context.Context, path string) ([]dataset.Column, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open %s", path)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, errors.Wrapf(err, "can't read arrow schema of %s", path)
	}
	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read %s", path)
	}
	defer tbl.Release()

	cols := make([]dataset.Column, 0, tbl.NumCols())
	for i := 0; i < int(tbl.NumCols()); i++ {
		col := tbl.Column(i)
		c := dataset.Column{
			Name:   col.Name(),
			Values: make([]float64, 0, col.Len()),
			Valid:  make([]bool, 0, col.Len()),
		}
		for _, chunk := range col.Data().Chunks() {
			arr, ok := chunk.(*array.Float64)
			if !ok {
				return nil, errors.Wrapf(ErrColumnType, "column %s is %s", col.Name(), chunk.DataType())
			}
			for k := 0; k < arr.Len(); k++ {
				if arr.IsNull(k) {
					c.Values = append(c.Values, 0)
					c.Valid = append(c.Valid, false)
					continue
				}
				c.Values = append(c.Values, arr.Value(k))
				c.Valid = append(c.Valid, true)
			}
		}
		cols = append(cols, c)
	}
	return cols, nil
}
