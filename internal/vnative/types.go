package vnative

// DateValue is the broken-down (year, month, day) a cursor hands the
// encoder for a Date cell.
type DateValue struct {
	Year, Month, Day int
}

// TimestampValue is the broken-down (y, m, d, h, mi, s,
// fraction-nanoseconds) a cursor hands the encoder for a Timestamp
// or TimestampTz cell.
type TimestampValue struct {
	Year, Month, Day, Hour, Min, Sec, Nanos int
}

// TimeValue is the broken-down (h, mi, s) a cursor hands the encoder
// for a Time cell.
type TimeValue struct {
	Hour, Min, Sec int
}

// TimeTzValue is the decoded 6-byte ODBC time tuple a cursor hands
// the encoder for a TimeTz cell. Use DecodeTimeTzTuple to build one
// from the raw bytes.
type TimeTzValue struct {
	Hour, Minute, Second uint16
}
