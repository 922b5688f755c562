package vnative

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/joeygibson/vxtract/internal/column"
	"github.com/joeygibson/vxtract/internal/sqltype"
)

// EncodeCell produces the byte representation of one column value for
// one row, per §4.3. A null cell always yields a nil (zero-length)
// slice; the caller is responsible for recording the null in the
// row's null vector — this function does not mutate any shared
// state.
func EncodeCell(col column.Type, value any, isNull bool) ([]byte, error) {
	if isNull {
		return nil, nil
	}

	switch col.Logical {
	case sqltype.Integer:
		v, ok := value.(int64)
		if !ok {
			return nil, fmt.Errorf("column %q: expected int64, got %T", col.Name, value)
		}
		return EncodeInteger(v), nil

	case sqltype.Float:
		v, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("column %q: expected float64, got %T", col.Name, value)
		}
		return EncodeFloat(v), nil

	case sqltype.Boolean:
		v, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("column %q: expected bool, got %T", col.Name, value)
		}
		return EncodeBoolean(v), nil

	case sqltype.Char:
		v, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("column %q: expected string, got %T", col.Name, value)
		}
		return EncodeChar(v), nil

	case sqltype.Varchar:
		v, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("column %q: expected string, got %T", col.Name, value)
		}
		return EncodeVarchar(v), nil

	case sqltype.Binary:
		v, ok := value.([]byte)
		if !ok {
			return nil, fmt.Errorf("column %q: expected []byte, got %T", col.Name, value)
		}
		return EncodeBinary(v), nil

	case sqltype.Varbinary:
		v, ok := value.([]byte)
		if !ok {
			return nil, fmt.Errorf("column %q: expected []byte, got %T", col.Name, value)
		}
		return EncodeVarbinary(v), nil

	case sqltype.Date:
		v, ok := value.(DateValue)
		if !ok {
			return nil, fmt.Errorf("column %q: expected DateValue, got %T", col.Name, value)
		}
		return EncodeDate(v.Year, v.Month, v.Day), nil

	case sqltype.Timestamp, sqltype.TimestampTz:
		v, ok := value.(TimestampValue)
		if !ok {
			return nil, fmt.Errorf("column %q: expected TimestampValue, got %T", col.Name, value)
		}
		return EncodeTimestamp(v.Year, v.Month, v.Day, v.Hour, v.Min, v.Sec, v.Nanos), nil

	case sqltype.Time:
		v, ok := value.(TimeValue)
		if !ok {
			return nil, fmt.Errorf("column %q: expected TimeValue, got %T", col.Name, value)
		}
		return EncodeTime(v.Hour, v.Min, v.Sec), nil

	case sqltype.TimeTz:
		v, ok := value.(TimeTzValue)
		if !ok {
			return nil, fmt.Errorf("column %q: expected TimeTzValue, got %T", col.Name, value)
		}
		return EncodeTimeTz(v.Hour, v.Minute, v.Second), nil

	case sqltype.Interval:
		v, ok := value.(int64)
		if !ok {
			return nil, fmt.Errorf("column %q: expected int64 microseconds, got %T", col.Name, value)
		}
		return EncodeInterval(v), nil

	case sqltype.Numeric:
		v, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("column %q: expected decimal text, got %T", col.Name, value)
		}
		return EncodeNumeric(v, col.ScaleOrZero(), uint16(WireWidth(col)))

	default:
		return nil, fmt.Errorf("column %q: unhandled logical type %v", col.Name, col.Logical)
	}
}

// EncodeInteger emits an 8-byte little-endian signed integer.
func EncodeInteger(v int64) []byte {
	return le64(v)
}

// EncodeFloat emits an 8-byte little-endian IEEE-754 binary64 value,
// preserving the native bit layout (no rounding).
func EncodeFloat(v float64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	return buf
}

// EncodeBoolean emits a single byte: 1 for true, 0 for false.
func EncodeBoolean(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// EncodeChar emits the value's UTF-8 bytes with no length prefix —
// the column's on-wire width is fixed and already known from the
// header.
func EncodeChar(s string) []byte {
	return []byte(s)
}

// EncodeVarchar emits a u32 little-endian length followed by the
// value's UTF-8 bytes.
func EncodeVarchar(s string) []byte {
	return prefixLength([]byte(s))
}

// EncodeBinary emits the raw bytes with no length prefix.
func EncodeBinary(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// EncodeVarbinary emits a u32 little-endian length followed by the
// raw bytes.
func EncodeVarbinary(b []byte) []byte {
	return prefixLength(b)
}

func prefixLength(payload []byte) []byte {
	out := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(out[:4], uint32(len(payload)))
	copy(out[4:], payload)
	return out
}
