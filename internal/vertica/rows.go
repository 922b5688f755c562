package vertica

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joeygibson/vxtract/internal/sqltype"
	"github.com/joeygibson/vxtract/internal/vnative"
	"github.com/joeygibson/vxtract/pkg/verrors"
)

// dataQuery selects every column of XX_TABLE_NAME_XX, optionally
// bounded by XX_LIMIT_XX (a literal "LIMIT N" clause, or the empty
// string for an unbounded extract).
const dataQuery = `SELECT * FROM XX_TABLE_NAME_XX XX_LIMIT_XX`

// RowCursor is the minimal interface extract.Session uses to pull one
// table's worth of typed values out of the database before handing
// each row to the row assembler (vnative.RowWriter).
type RowCursor interface {
	Next(ctx context.Context) (bool, error)
	Value(ctx context.Context, col int, logical sqltype.Type) (value any, isNull bool, err error)
	Close() error
}

// StreamRows runs the data query for table, substituting limit when
// positive, and returns a RowCursor over the result set. Rows are
// fetched one at a time from the driver — the whole result set is
// never materialized in memory.
func StreamRows(ctx context.Context, db *sql.DB, table string, limit int64) (RowCursor, error) {
	query := buildDataQuery(table, limit)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, verrors.Wrapf(err, verrors.ErrCodeMetadataParse, "querying rows of %q", table)
	}

	colNames, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, verrors.Wrap(err, verrors.ErrCodeMetadataParse, "reading result column count")
	}

	return &rowCursor{rows: rows, width: len(colNames)}, nil
}

// buildDataQuery substitutes table and limit into dataQuery, emitting
// a literal LIMIT clause only when limit is positive.
func buildDataQuery(table string, limit int64) string {
	query := strings.ReplaceAll(dataQuery, "XX_TABLE_NAME_XX", table)
	limitClause := ""
	if limit > 0 {
		limitClause = fmt.Sprintf("LIMIT %d", limit)
	}
	return strings.ReplaceAll(query, "XX_LIMIT_XX", limitClause)
}

type rowCursor struct {
	rows    *sql.Rows
	width   int
	current []any
}

func (rc *rowCursor) Next(ctx context.Context) (bool, error) {
	if !rc.rows.Next() {
		if err := rc.rows.Err(); err != nil {
			return false, verrors.Wrap(err, verrors.ErrCodeUnexpectedValue, "fetching next row")
		}
		return false, nil
	}

	dest := make([]any, rc.width)
	ptrs := make([]any, rc.width)
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	if err := rc.rows.Scan(ptrs...); err != nil {
		return false, verrors.Wrap(err, verrors.ErrCodeUnexpectedValue, "scanning row")
	}
	rc.current = dest
	return true, nil
}

func (rc *rowCursor) Close() error {
	return rc.rows.Close()
}

// Value converts the driver-native value the ODBC driver returned for
// column col into the shape vnative.EncodeCell expects for logical,
// per types.go.
func (rc *rowCursor) Value(ctx context.Context, col int, logical sqltype.Type) (any, bool, error) {
	raw := rc.current[col]
	if raw == nil {
		return nil, true, nil
	}

	switch logical {
	case sqltype.Integer:
		v, err := toInt64(raw)
		return v, false, err

	case sqltype.Float:
		v, err := toFloat64(raw)
		return v, false, err

	case sqltype.Boolean:
		v, err := toBool(raw)
		return v, false, err

	case sqltype.Char, sqltype.Varchar:
		v, err := toString(raw)
		return v, false, err

	case sqltype.Numeric:
		v, err := toNumericText(raw)
		return v, false, err

	case sqltype.Binary, sqltype.Varbinary:
		v, err := toBytes(raw)
		return v, false, err

	case sqltype.Date:
		t, err := toTime(raw)
		if err != nil {
			return nil, false, err
		}
		return vnative.DateValue{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, false, nil

	case sqltype.Timestamp, sqltype.TimestampTz:
		t, err := toTime(raw)
		if err != nil {
			return nil, false, err
		}
		return vnative.TimestampValue{
			Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
			Hour: t.Hour(), Min: t.Minute(), Sec: t.Second(), Nanos: t.Nanosecond(),
		}, false, nil

	case sqltype.Time:
		t, err := toTime(raw)
		if err != nil {
			return nil, false, err
		}
		return vnative.TimeValue{Hour: t.Hour(), Min: t.Minute(), Sec: t.Second()}, false, nil

	case sqltype.TimeTz:
		b, err := toBytes(raw)
		if err != nil {
			return nil, false, err
		}
		if len(b) != 6 {
			return nil, false, verrors.Newf(verrors.ErrCodeUnexpectedValue, "timetz column %d: expected 6 raw bytes, got %d", col, len(b))
		}
		var tuple [6]byte
		copy(tuple[:], b)
		h, m, s := vnative.DecodeTimeTzTuple(tuple)
		return vnative.TimeTzValue{Hour: h, Minute: m, Second: s}, false, nil

	case sqltype.Interval:
		v, err := toInt64(raw)
		return v, false, err

	default:
		return nil, false, verrors.Newf(verrors.ErrCodeUnexpectedValue, "column %d: no conversion for logical type %v", col, logical)
	}
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, verrors.Newf(verrors.ErrCodeUnexpectedValue, "cannot convert %T to int64", raw)
	}
}

func toFloat64(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case []byte:
		return strconv.ParseFloat(string(v), 64)
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, verrors.Newf(verrors.ErrCodeUnexpectedValue, "cannot convert %T to float64", raw)
	}
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case []byte:
		return strconv.ParseBool(string(v))
	case string:
		return strconv.ParseBool(v)
	default:
		return false, verrors.Newf(verrors.ErrCodeUnexpectedValue, "cannot convert %T to bool", raw)
	}
}

func toString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", verrors.Newf(verrors.ErrCodeUnexpectedValue, "cannot convert %T to string", raw)
	}
}

// toNumericText normalizes the driver's raw value into text and uses
// decimal.Decimal to confirm it parses as a number at all (catching
// garbage driver output early, with an ErrCodeNumericParse error
// instead of the "not an integer" error EncodeNumeric would give the
// same input). It does not itself enforce the plain-integer-mantissa
// contract EncodeNumeric requires — fractional text such as "1.5"
// passes this gate and is rejected downstream by parseSigned128.
func toNumericText(raw any) (string, error) {
	text, err := toString(raw)
	if err != nil {
		return "", err
	}
	if _, err := decimal.NewFromString(text); err != nil {
		return "", verrors.Wrapf(err, verrors.ErrCodeNumericParse, "parsing numeric text %q", text)
	}
	return text, nil
}

func toBytes(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, verrors.Newf(verrors.ErrCodeUnexpectedValue, "cannot convert %T to []byte", raw)
	}
}

func toTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case []byte:
		return parseTimeText(string(v))
	case string:
		return parseTimeText(v)
	default:
		return time.Time{}, verrors.Newf(verrors.ErrCodeUnexpectedValue, "cannot convert %T to time.Time", raw)
	}
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05.999999999",
	"15:04:05",
	time.RFC3339Nano,
}

func parseTimeText(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, verrors.Newf(verrors.ErrCodeUnexpectedValue, "cannot parse %q as a time value", s)
}
