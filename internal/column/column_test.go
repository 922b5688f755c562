package column

import (
	"testing"

	"github.com/joeygibson/vxtract/internal/sqltype"
)

func TestNewPrecisionFallback(t *testing.T) {
	// p3 wins when present.
	c, err := New([7]string{"amount", "numeric(38,10)", "16", "38", "10", "99", "100"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Precision == nil || *c.Precision != 38 {
		t.Fatalf("expected precision 38 from p3, got %v", c.Precision)
	}
	if c.Scale == nil || *c.Scale != 10 {
		t.Fatalf("expected scale 10, got %v", c.Scale)
	}

	// Falls through to p5 when p3 is empty.
	c, err = New([7]string{"amount", "numeric", "16", "", "10", "42", ""})
	if err != nil {
		t.Fatal(err)
	}
	if c.Precision == nil || *c.Precision != 42 {
		t.Fatalf("expected precision 42 from p5, got %v", c.Precision)
	}

	// Falls through to p6 when p3 and p5 are both empty.
	c, err = New([7]string{"amount", "numeric", "16", "", "", "", "7"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Precision == nil || *c.Precision != 7 {
		t.Fatalf("expected precision 7 from p6, got %v", c.Precision)
	}

	// Absent entirely.
	c, err = New([7]string{"amount", "numeric", "16", "", "", "", ""})
	if err != nil {
		t.Fatal(err)
	}
	if c.Precision != nil {
		t.Fatalf("expected no precision, got %v", *c.Precision)
	}
	if c.ScaleOrZero() != 0 {
		t.Fatalf("expected zero scale, got %d", c.ScaleOrZero())
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	if _, err := New([7]string{"c1", "geometry", "8", "", "", "", ""}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestNewRejectsMalformedWidth(t *testing.T) {
	if _, err := New([7]string{"c1", "int", "not-a-number", "", "", "", ""}); err == nil {
		t.Fatal("expected error for malformed width")
	}
}

func TestNewLogicalType(t *testing.T) {
	c, err := New([7]string{"flag", "boolean", "1", "", "", "", ""})
	if err != nil {
		t.Fatal(err)
	}
	if c.Logical != sqltype.Boolean {
		t.Fatalf("expected Boolean, got %v", c.Logical)
	}
}
