// Package column holds the per-column type model built from the
// metadata query's result shape and consumed by the header and value
// encoders.
package column

import (
	"fmt"
	"strconv"

	"github.com/joeygibson/vxtract/internal/sqltype"
)

// Type describes one column of the table being extracted: its
// logical type, its declared on-disk width, and (for Numeric) its
// precision and scale. It is built once per column from the 7-string
// positional tuple the metadata query returns and is read-only for
// the remainder of the extraction.
type Type struct {
	Name      string
	Logical   sqltype.Type
	Width     uint16
	Precision *uint16
	Scale     *uint16
}

// New builds a Type from the metadata query's 7-string positional
// tuple: (name, type, width, p3, p4, p5, p6). p4 reports scale; p3,
// p5, and p6 are alternative precision reporters tried in that order.
// An empty string in any position denotes "absent". The SQL query is
// the only place that should ever know this column order — everyone
// else goes through this constructor.
func New(fields [7]string) (Type, error) {
	name, typ, width, p3, p4, p5, p6 := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6]

	logical, err := sqltype.Classify(typ)
	if err != nil {
		return Type{}, fmt.Errorf("column %q: %w", name, err)
	}

	w, err := strconv.ParseUint(width, 10, 16)
	if err != nil {
		return Type{}, fmt.Errorf("column %q: malformed width %q: %w", name, width, err)
	}

	var scale *uint16
	if p4 != "" {
		v, err := strconv.ParseUint(p4, 10, 16)
		if err != nil {
			return Type{}, fmt.Errorf("column %q: malformed scale %q: %w", name, p4, err)
		}
		u16 := uint16(v)
		scale = &u16
	}

	var precision *uint16
	for _, candidate := range [...]string{p3, p5, p6} {
		if candidate == "" {
			continue
		}
		v, err := strconv.ParseUint(candidate, 10, 16)
		if err != nil {
			return Type{}, fmt.Errorf("column %q: malformed precision %q: %w", name, candidate, err)
		}
		u16 := uint16(v)
		precision = &u16
		break
	}

	return Type{
		Name:      name,
		Logical:   logical,
		Width:     uint16(w),
		Precision: precision,
		Scale:     scale,
	}, nil
}

// ScaleOrZero returns the column's scale, or 0 if none was reported.
func (t Type) ScaleOrZero() uint16 {
	if t.Scale == nil {
		return 0
	}
	return *t.Scale
}
