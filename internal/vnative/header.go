// Package vnative implements Vertica's NATIVE bulk-load binary file
// format: the fixed file header, the per-type value encoding rules,
// the per-row null bitmap, and the row assembler that stitches them
// together. Every byte this package emits is part of the documented
// wire contract — there is no internal-only framing.
package vnative

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/joeygibson/vxtract/internal/column"
	"github.com/joeygibson/vxtract/internal/sqltype"
)

// FileMagic is the 11-byte signature every NATIVE file begins with:
// "NATIVE\n\xFF\r\n\0".
var FileMagic = [11]byte{0x4E, 0x41, 0x54, 0x49, 0x56, 0x45, 0x0A, 0xFF, 0x0D, 0x0A, 0x00}

const fileVersion uint16 = 1

// WireWidth returns the on-wire width field a column contributes to
// the header's per-column width table. 0xFFFFFFFF marks a
// variable-length column whose rows carry a length prefix.
func WireWidth(c column.Type) uint32 {
	switch c.Logical {
	case sqltype.Integer, sqltype.Char, sqltype.Binary:
		return uint32(c.Width)
	case sqltype.Varchar, sqltype.Varbinary:
		return 0xFFFFFFFF
	case sqltype.Boolean:
		return 1
	case sqltype.Float, sqltype.Date, sqltype.Timestamp, sqltype.TimestampTz,
		sqltype.Time, sqltype.TimeTz, sqltype.Interval:
		return 8
	case sqltype.Numeric:
		if c.Precision == nil {
			return 0
		}
		return uint32(((uint32(*c.Precision) / 19) + 1) * 8)
	default:
		return 0
	}
}

// WriteHeader writes the file magic followed by the column descriptor
// block: a u32 block length, the u16 version, a filler byte, the u16
// column count, and the per-column u32 on-wire widths.
func WriteHeader(w io.Writer, cols []column.Type) error {
	var body bytes.Buffer
	body.Grow(8 + 4*len(cols))

	binary.Write(&body, binary.LittleEndian, fileVersion)
	body.WriteByte(0) // filler
	binary.Write(&body, binary.LittleEndian, uint16(len(cols)))

	for _, c := range cols {
		binary.Write(&body, binary.LittleEndian, WireWidth(c))
	}

	if _, err := w.Write(FileMagic[:]); err != nil {
		return err
	}

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(body.Len()))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}

	_, err := w.Write(body.Bytes())
	return err
}
