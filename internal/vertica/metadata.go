package vertica

import (
	"context"
	"database/sql"
	"strings"

	"github.com/joeygibson/vxtract/internal/column"
	"github.com/joeygibson/vxtract/pkg/verrors"
)

// ErrTableNotFound is returned by FetchColumnTypes when the metadata
// query reports zero columns for the requested table.
var ErrTableNotFound = verrors.ErrTableNotFound

// columnDefinitionsQuery reports, per column of XX_TABLE_NAME_XX, the
// seven-string tuple column.New expects: name, declared type text,
// on-disk width, and three alternate precision reporters (p3/p5/p6)
// alongside the scale reporter (p4). Vertica exposes all of this
// through v_catalog.columns; numeric_precision/numeric_scale cover
// the common case, char/datetime types fall back to
// character_maximum_length or datetime_precision.
const columnDefinitionsQuery = `
SELECT
    column_name,
    data_type,
    COALESCE(data_type_length, 0),
    COALESCE(numeric_precision, ''),
    COALESCE(numeric_scale, ''),
    COALESCE(character_maximum_length, ''),
    COALESCE(datetime_precision, '')
FROM v_catalog.columns
WHERE table_name = 'XX_TABLE_NAME_XX'
ORDER BY ordinal_position
`

// FetchColumnTypes runs the metadata query for table and builds one
// column.Type per result row, in ordinal position order. A zero-row
// result is reported as ErrTableNotFound, matching §4.6 — it is not
// possible to distinguish "table has no columns" from "table does not
// exist" from this query alone, and Vertica has no tables with zero
// columns.
func FetchColumnTypes(ctx context.Context, db *sql.DB, table string) ([]column.Type, error) {
	query := strings.ReplaceAll(columnDefinitionsQuery, "XX_TABLE_NAME_XX", table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, verrors.Wrapf(err, verrors.ErrCodeMetadataParse, "querying column metadata for %q", table)
	}
	defer rows.Close()

	var cols []column.Type
	for rows.Next() {
		var fields [7]string
		if err := rows.Scan(&fields[0], &fields[1], &fields[2], &fields[3], &fields[4], &fields[5], &fields[6]); err != nil {
			return nil, verrors.Wrap(err, verrors.ErrCodeMetadataParse, "scanning column metadata row")
		}

		col, err := column.New(fields)
		if err != nil {
			return nil, verrors.Wrap(err, verrors.ErrCodeUnknownType, "building column type")
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, verrors.Wrap(err, verrors.ErrCodeMetadataParse, "reading column metadata")
	}

	if len(cols) == 0 {
		return nil, verrors.Wrapf(ErrTableNotFound, verrors.ErrCodeTableNotFound, "table %q", table)
	}

	return cols, nil
}
