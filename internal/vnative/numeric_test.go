package vnative

import (
	"bytes"
	"math/big"
	"testing"
)

// decodeNumeric reverses EncodeNumeric's limb shuffle and two's
// complement so the round-trip property in the design notes (§8) can
// be exercised without a second production code path.
func decodeNumeric(wire []byte) *big.Int {
	width := len(wire)
	buf := make([]byte, width)
	for limb := 0; limb < width/8; limb++ {
		chunk := wire[limb*8 : limb*8+8]
		for i := 0; i < 8; i++ {
			buf[limb*8+i] = chunk[7-i]
		}
	}

	raw := new(big.Int).SetBytes(buf)
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(width)*8)
	signLimit := new(big.Int).Rsh(modulus, 1)

	unscaled := raw
	if raw.Cmp(signLimit) >= 0 {
		unscaled = new(big.Int).Sub(raw, modulus)
	}

	return unscaled
}

func TestEncodeNumeric_SpecExample(t *testing.T) {
	// precision=19, scale=2, value "123" -> width 16 bytes,
	// expected 00*8 | 0C 30 00*6 (unscaled = 12300 = 0x300C little-endian
	// within the second limb).
	got, err := EncodeNumeric("123", 2, 16)
	if err != nil {
		t.Fatalf("EncodeNumeric: %v", err)
	}

	want := []byte{
		0, 0, 0, 0, 0, 0, 0, 0,
		0x0C, 0x30, 0, 0, 0, 0, 0, 0,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeNumeric(123, scale=2, width=16) = % x, want % x", got, want)
	}
}

func TestEncodeNumeric_RoundTrip(t *testing.T) {
	cases := []struct {
		text  string
		scale uint16
		width uint16
	}{
		{"0", 0, 8},
		{"123", 2, 16},
		{"-123", 2, 16},
		{"0", 2, 16},
		{"-0", 2, 16},
		{"170141183460469231731687303715884105727", 0, 24},  // 2^127 - 1, max signed 128-bit magnitude
		{"-170141183460469231731687303715884105728", 0, 24}, // -2^127, min signed 128-bit value
		{"1", 10, 16},
		{"-1", 10, 16},
	}

	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			wire, err := EncodeNumeric(c.text, c.scale, c.width)
			if err != nil {
				t.Fatalf("EncodeNumeric: %v", err)
			}
			if len(wire) != int(c.width) {
				t.Fatalf("wire length = %d, want %d", len(wire), c.width)
			}

			gotUnscaled := decodeNumeric(wire)

			wantMagnitude, negative, err := parseSigned128(c.text)
			if err != nil {
				t.Fatalf("parseSigned128: %v", err)
			}
			wantUnscaled := new(big.Int).Mul(wantMagnitude.Big(), pow10(c.scale))
			if negative {
				wantUnscaled.Neg(wantUnscaled)
			}

			if gotUnscaled.Cmp(wantUnscaled) != 0 {
				t.Errorf("round trip mismatch: got %s, want %s", gotUnscaled, wantUnscaled)
			}
		})
	}
}

func TestEncodeNumeric_Overflow(t *testing.T) {
	_, err := EncodeNumeric("99999999999999999999999999999999999999999999999", 0, 8)
	if err == nil {
		t.Fatal("expected overflow error, got nil")
	}
}

func TestEncodeNumeric_RejectsNonInteger(t *testing.T) {
	_, err := EncodeNumeric("12.3", 2, 16)
	if err == nil {
		t.Fatal("expected parse error for decimal point in raw text, got nil")
	}
}

func TestEncodeNumeric_RejectsBadWidth(t *testing.T) {
	if _, err := EncodeNumeric("1", 0, 0); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := EncodeNumeric("1", 0, 5); err == nil {
		t.Fatal("expected error for non-multiple-of-8 width")
	}
}
