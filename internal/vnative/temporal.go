package vnative

import (
	"encoding/binary"
	"math"
	"time"
)

// epoch is the zero point for every date and timestamp encoding:
// 2000-01-01T00:00:00 UTC.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// EncodeDate implements §4.3's Date rule: days since the epoch,
// signed 64-bit little-endian. 2000-01-01 itself encodes as eight
// zero bytes.
func EncodeDate(year, month, day int) []byte {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	days := int64(d.Sub(epoch) / (24 * time.Hour))
	return le64(days)
}

// EncodeTimestamp implements §4.3's Timestamp/TimestampTz rule:
// microseconds since the epoch, signed 64-bit little-endian. If the
// difference would overflow a signed 64-bit microsecond count, eight
// zero bytes are emitted instead of an error — this mirrors the
// source tool's behavior exactly (§4.3).
//
// TimestampTz is encoded identically; the timezone is not applied.
// This is a known limitation carried forward deliberately, not fixed
// silently — see the design notes (§9).
func EncodeTimestamp(year, month, day, hour, min, sec, nanos int) []byte {
	t := time.Date(year, time.Month(month), day, hour, min, sec, nanos, time.UTC)
	micros, ok := microsSinceEpoch(t)
	if !ok {
		return make([]byte, 8)
	}
	return le64(micros)
}

// microsSinceEpoch computes microseconds between t and the epoch
// without routing through time.Duration, whose int64-nanosecond
// range (~292 years) is narrower than the microsecond range this
// format claims to support.
func microsSinceEpoch(t time.Time) (int64, bool) {
	secDiff := t.Unix() - epoch.Unix()
	nsecDiff := int64(t.Nanosecond()) - int64(epoch.Nanosecond())

	const maxSeconds = math.MaxInt64 / 1_000_000
	const minSeconds = math.MinInt64 / 1_000_000
	if secDiff > maxSeconds || secDiff < minSeconds {
		return 0, false
	}

	micros := secDiff*1_000_000 + nsecDiff/1000
	return micros, true
}

// EncodeTime implements §4.3's Time rule: microseconds since
// midnight, signed 64-bit little-endian. Fractional seconds are
// dropped, matching the source tool.
func EncodeTime(hour, min, sec int) []byte {
	total := int64(((hour*60)+min)*60+sec) * 1_000_000
	return le64(total)
}

// DecodeTimeTzTuple parses the 6-byte little-endian ODBC time tuple
// (u16 hour || u16 minute || u16 second) consumed by EncodeTimeTz.
func DecodeTimeTzTuple(b [6]byte) (hour, minute, second uint16) {
	hour = binary.LittleEndian.Uint16(b[0:2])
	minute = binary.LittleEndian.Uint16(b[2:4])
	second = binary.LittleEndian.Uint16(b[4:6])
	return
}

// EncodeTimeTz implements §4.3's TimeTz rule. The local-zone offset
// is read from the process's local timezone at encoding time, not
// from the value's own zone — a known hazard inherited from the
// source tool and documented, not silently corrected (§9). The wire
// value packs microseconds-since-midnight in the high 40 bits and
// offset-seconds-since-(-24h) in the low 24 bits.
func EncodeTimeTz(hour, minute, second uint16) []byte {
	tUs := int64(((int(hour)*60)+int(minute))*60+int(second)) * 1_000_000

	_, localOffsetSeconds := time.Now().Zone()
	offsetS := int64(localOffsetSeconds) + 86400

	wire := (tUs << 24) + offsetS
	return le64(wire)
}

// EncodeInterval implements the interval encoding this rewrite
// defines per the design notes (§9): the driver-reported interval is
// expressed as a signed microsecond count and encoded exactly like
// Time — eight bytes, signed, little-endian microseconds. This is a
// deliberate interpretation of an underspecified wire format, not a
// pass-through of raw driver bytes.
func EncodeInterval(microseconds int64) []byte {
	return le64(microseconds)
}

func le64(v int64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(v))
	return buf
}
