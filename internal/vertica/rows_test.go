package vertica

import (
	"testing"
	"time"
)

func TestBuildDataQuery_Unbounded(t *testing.T) {
	got := buildDataQuery("orders", 0)
	want := "SELECT * FROM orders "
	if got != want {
		t.Errorf("buildDataQuery(orders, 0) = %q, want %q", got, want)
	}
}

func TestBuildDataQuery_Limited(t *testing.T) {
	got := buildDataQuery("orders", 100)
	want := "SELECT * FROM orders LIMIT 100"
	if got != want {
		t.Errorf("buildDataQuery(orders, 100) = %q, want %q", got, want)
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{int64(42), 42},
		{int32(42), 42},
		{[]byte("42"), 42},
		{"42", 42},
	}
	for _, c := range cases {
		got, err := toInt64(c.in)
		if err != nil {
			t.Fatalf("toInt64(%v): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("toInt64(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestToBool(t *testing.T) {
	if v, err := toBool(true); err != nil || !v {
		t.Errorf("toBool(true) = %v, %v", v, err)
	}
	if v, err := toBool([]byte("true")); err != nil || !v {
		t.Errorf("toBool([]byte(true)) = %v, %v", v, err)
	}
}

func TestToTime_ParsesCommonLayouts(t *testing.T) {
	cases := []string{
		"2024-03-05 12:30:45",
		"2024-03-05",
		"12:30:45",
	}
	for _, s := range cases {
		if _, err := toTime(s); err != nil {
			t.Errorf("toTime(%q): %v", s, err)
		}
	}
}

func TestToTime_PassesThroughTimeTime(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	got, err := toTime(want)
	if err != nil {
		t.Fatalf("toTime: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("toTime(time.Time) = %v, want %v", got, want)
	}
}

func TestToInt64_RejectsUnconvertible(t *testing.T) {
	if _, err := toInt64(struct{}{}); err == nil {
		t.Fatal("expected conversion error, got nil")
	}
}

func TestToNumericText_PassesThroughValidInteger(t *testing.T) {
	got, err := toNumericText("12300")
	if err != nil {
		t.Fatalf("toNumericText: %v", err)
	}
	if got != "12300" {
		t.Errorf("toNumericText(12300) = %q, want %q", got, "12300")
	}
}

func TestToNumericText_RejectsGarbage(t *testing.T) {
	if _, err := toNumericText("not-a-number"); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}
