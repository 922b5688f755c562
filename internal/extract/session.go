// Package extract orchestrates one end-to-end table extraction over a
// connection the caller has already opened: resolve column metadata,
// write the NATIVE header, stream and encode rows, close the row
// cursor. Closing the connection and the output is left to the
// caller. It owns no
// concurrency of its own — the pipeline runs on the caller's
// goroutine and stops as soon as ctx is cancelled.
package extract

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/joeygibson/vxtract/internal/column"
	"github.com/joeygibson/vxtract/internal/vertica"
	"github.com/joeygibson/vxtract/internal/vnative"
	"github.com/joeygibson/vxtract/pkg/vlog"
)

// Session holds what one extraction uses: the open connection (opened
// and closed by the caller), the resolved column types, and the output
// writer. It is used once
// and discarded; it is not safe to call Run more than once.
//
// FetchColumns and OpenCursor default to vertica.FetchColumnTypes and
// vertica.StreamRows — NewSession wires them. Tests substitute fakes
// here instead of standing up a real ODBC connection; the encoder
// underneath never knows the difference.
type Session struct {
	DB     *sql.DB
	Table  string
	Limit  int64
	Output io.Writer
	Log    *vlog.Logger

	FetchColumns func(ctx context.Context, db *sql.DB, table string) ([]column.Type, error)
	OpenCursor   func(ctx context.Context, db *sql.DB, table string, limit int64) (vertica.RowCursor, error)

	Columns []column.Type
}

// Result summarizes a completed extraction for the CLI to report.
type Result struct {
	Rows  int64
	Bytes int64
}

// NewSession builds a Session around an already-open connection. The
// caller remains responsible for closing db once Run returns.
func NewSession(db *sql.DB, table string, limit int64, output io.Writer, logger *vlog.Logger) *Session {
	if logger == nil {
		logger = vlog.Default()
	}
	return &Session{
		DB:           db,
		Table:        table,
		Limit:        limit,
		Output:       output,
		Log:          logger,
		FetchColumns: vertica.FetchColumnTypes,
		OpenCursor:   vertica.StreamRows,
	}
}

// Run executes the full pipeline: fetch column metadata, write the
// file header, then stream and encode rows one at a time until the
// cursor is exhausted or ctx is cancelled.
func (s *Session) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	s.Log.Info(vlog.CategoryQuery, "resolving column metadata", "table", s.Table)
	cols, err := s.FetchColumns(ctx, s.DB, s.Table)
	if err != nil {
		s.Log.Error(vlog.CategoryQuery, "failed to resolve column metadata", err, "table", s.Table)
		return Result{}, err
	}
	s.Columns = cols

	byteCounter := &countingWriter{w: s.Output}

	s.Log.Info(vlog.CategoryEncode, "writing file header", "table", s.Table, "columns", len(cols))
	if err := vnative.WriteHeader(byteCounter, cols); err != nil {
		s.Log.Error(vlog.CategoryEncode, "failed to write file header", err, "table", s.Table)
		return Result{}, fmt.Errorf("writing header: %w", err)
	}

	s.Log.Info(vlog.CategoryQuery, "streaming rows", "table", s.Table, "limit", s.Limit)
	cursor, err := s.OpenCursor(ctx, s.DB, s.Table, s.Limit)
	if err != nil {
		s.Log.Error(vlog.CategoryQuery, "failed to stream rows", err, "table", s.Table)
		return Result{}, err
	}
	defer cursor.Close()

	writer := vnative.NewRowWriter(byteCounter, cols)

	var rowCount int64
	values := make([]any, len(cols))
	isNull := make([]bool, len(cols))

	for {
		if err := ctx.Err(); err != nil {
			return Result{Rows: rowCount, Bytes: byteCounter.n}, err
		}

		more, err := cursor.Next(ctx)
		if err != nil {
			s.Log.Error(vlog.CategoryQuery, "row fetch failed", err, "table", s.Table, "rows_so_far", rowCount)
			return Result{Rows: rowCount, Bytes: byteCounter.n}, err
		}
		if !more {
			break
		}

		for i, col := range cols {
			v, null, err := cursor.Value(ctx, i, col.Logical)
			if err != nil {
				s.Log.Error(vlog.CategoryEncode, "value fetch failed", err, "table", s.Table, "column", col.Name)
				return Result{Rows: rowCount, Bytes: byteCounter.n}, err
			}
			values[i] = v
			isNull[i] = null
		}

		if err := writer.WriteRow(values, isNull); err != nil {
			s.Log.Error(vlog.CategoryEncode, "row encode failed", err, "table", s.Table, "row", rowCount)
			return Result{Rows: rowCount, Bytes: byteCounter.n}, err
		}
		rowCount++
	}

	elapsed := time.Since(start)
	s.Log.Info(vlog.CategoryIO, "extraction complete",
		"table", s.Table, "rows", rowCount, "bytes", byteCounter.n, "elapsed", elapsed.String())

	return Result{Rows: rowCount, Bytes: byteCounter.n}, nil
}

// countingWriter tracks total bytes written so Run can report a final
// byte count without the encoder knowing anything about metrics.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
