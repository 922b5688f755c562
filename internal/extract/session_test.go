package extract

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/joeygibson/vxtract/internal/column"
	"github.com/joeygibson/vxtract/internal/sqltype"
	"github.com/joeygibson/vxtract/internal/vertica"
	"github.com/joeygibson/vxtract/pkg/vlog"
)

// fakeCursor implements vertica.RowCursor over an in-memory row set,
// letting Session.Run be exercised without a real ODBC connection.
type fakeCursor struct {
	rows [][]any
	i    int
}

func (f *fakeCursor) Next(ctx context.Context) (bool, error) {
	if f.i >= len(f.rows) {
		return false, nil
	}
	f.i++
	return true, nil
}

func (f *fakeCursor) Value(ctx context.Context, col int, logical sqltype.Type) (any, bool, error) {
	v := f.rows[f.i-1][col]
	return v, v == nil, nil
}

func (f *fakeCursor) Close() error { return nil }

func testColumns() []column.Type {
	return []column.Type{
		{Name: "id", Logical: sqltype.Integer, Width: 8},
		{Name: "name", Logical: sqltype.Varchar},
	}
}

func newTestSession(out *bytes.Buffer, rows [][]any) *Session {
	cursor := &fakeCursor{rows: rows}
	return &Session{
		Table:  "people",
		Output: out,
		Log:    vlog.New(vlog.Config{Level: vlog.LevelOff}),
		FetchColumns: func(ctx context.Context, db *sql.DB, table string) ([]column.Type, error) {
			return testColumns(), nil
		},
		OpenCursor: func(ctx context.Context, db *sql.DB, table string, limit int64) (vertica.RowCursor, error) {
			return cursor, nil
		},
	}
}

func TestSession_Run_WritesHeaderAndRows(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(&out, [][]any{
		{int64(1), "ann"},
		{int64(2), "bo"},
	})

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Rows != 2 {
		t.Errorf("Rows = %d, want 2", result.Rows)
	}
	if result.Bytes != int64(out.Len()) {
		t.Errorf("Bytes = %d, want %d", result.Bytes, out.Len())
	}
	if out.Len() == 0 {
		t.Fatal("expected non-empty output")
	}
}

func TestSession_Run_PropagatesMetadataError(t *testing.T) {
	var out bytes.Buffer
	wantErr := errors.New("boom")
	s := newTestSession(&out, nil)
	s.FetchColumns = func(ctx context.Context, db *sql.DB, table string) ([]column.Type, error) {
		return nil, wantErr
	}

	_, err := s.Run(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("Run error = %v, want %v", err, wantErr)
	}
}

func TestSession_Run_StopsOnCancelledContext(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(&out, [][]any{{int64(1), "ann"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}
