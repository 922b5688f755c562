package vnative

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/joeygibson/vxtract/internal/column"
)

// RowWriter assembles and emits one NATIVE-format row at a time. It
// recycles its scratch buffers across calls so a multi-million-row
// extract does not churn the allocator once per row (§4.5).
type RowWriter struct {
	w    io.Writer
	cols []column.Type

	nulls   []bool
	cells   [][]byte
	row     []byte // reused row payload scratch (bitmap + cell bytes)
	sizeBuf [4]byte
}

// NewRowWriter returns a RowWriter that emits rows matching cols to w.
// WriteHeader should already have been called on w with the same
// column slice.
func NewRowWriter(w io.Writer, cols []column.Type) *RowWriter {
	return &RowWriter{
		w:     w,
		cols:  cols,
		nulls: make([]bool, len(cols)),
		cells: make([][]byte, len(cols)),
	}
}

// WriteRow encodes one row's values and writes it to the underlying
// writer as: a u32 little-endian row size, the null bitmap, then each
// non-null cell's encoded bytes concatenated in column order.
//
// values[i] and isNull[i] must describe column i; a value is ignored
// when isNull[i] is true. The cursor is responsible for producing
// value shapes matching the types documented in types.go.
func (rw *RowWriter) WriteRow(values []any, isNull []bool) error {
	if len(values) != len(rw.cols) || len(isNull) != len(rw.cols) {
		return fmt.Errorf("row has %d/%d values, want %d columns", len(values), len(isNull), len(rw.cols))
	}

	copy(rw.nulls, isNull)

	for i, col := range rw.cols {
		if isNull[i] {
			rw.cells[i] = nil
			continue
		}
		cell, err := EncodeCell(col, values[i], false)
		if err != nil {
			return fmt.Errorf("row encode: %w", err)
		}
		rw.cells[i] = cell
	}

	bitmap := BuildNullBitmap(rw.nulls)

	rowSize := len(bitmap)
	for _, c := range rw.cells {
		rowSize += len(c)
	}

	rw.row = append(rw.row[:0], bitmap...)
	for _, c := range rw.cells {
		rw.row = append(rw.row, c...)
	}

	binary.LittleEndian.PutUint32(rw.sizeBuf[:], uint32(rowSize))
	if _, err := rw.w.Write(rw.sizeBuf[:]); err != nil {
		return fmt.Errorf("row write: %w", err)
	}
	if _, err := rw.w.Write(rw.row); err != nil {
		return fmt.Errorf("row write: %w", err)
	}

	return nil
}
