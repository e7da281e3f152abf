package coerce

import (
	"testing"
	"time"
)

func TestInt64(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected *int64
	}{
		{
			name:     "nil",
			value:    nil,
			expected: nil,
		},
		{
			name:     "json number",
			value:    float64(42),
			expected: ptr(int64(42)),
		},
		{
			name:     "stringified integer",
			value:    "123",
			expected: ptr(int64(123)),
		},
		{
			name:     "stringified integer with spaces",
			value:    " 7 ",
			expected: ptr(int64(7)),
		},
		{
			name:     "empty string",
			value:    "",
			expected: nil,
		},
		{
			name:     "non-numeric string",
			value:    "abc",
			expected: nil,
		},
		{
			name:     "bool",
			value:    true,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Int64(tt.value)
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("Int64(%v) = %v, want %v", tt.value, got, tt.expected)
			}
			if got != nil && *got != *tt.expected {
				t.Errorf("Int64(%v) = %d, want %d", tt.value, *got, *tt.expected)
			}
		})
	}
}

func TestIndexPair(t *testing.T) {
	tests := []struct {
		name      string
		value     interface{}
		wantStart *int64
		wantEnd   *int64
	}{
		{
			name:      "string pair",
			value:     []interface{}{"0", "5"},
			wantStart: ptr(int64(0)),
			wantEnd:   ptr(int64(5)),
		},
		{
			name:      "numeric pair",
			value:     []interface{}{float64(3), float64(9)},
			wantStart: ptr(int64(3)),
			wantEnd:   ptr(int64(9)),
		},
		{
			name:  "wrong length",
			value: []interface{}{"0"},
		},
		{
			name:  "one invalid element",
			value: []interface{}{"0", "x"},
		},
		{
			name:  "not an array",
			value: "0,5",
		},
		{
			name:  "nil",
			value: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := IndexPair(tt.value)
			if (start == nil) != (tt.wantStart == nil) || (end == nil) != (tt.wantEnd == nil) {
				t.Fatalf("IndexPair(%v) = (%v, %v), want (%v, %v)", tt.value, start, end, tt.wantStart, tt.wantEnd)
			}
			if start != nil && (*start != *tt.wantStart || *end != *tt.wantEnd) {
				t.Errorf("IndexPair(%v) = (%d, %d), want (%d, %d)", tt.value, *start, *end, *tt.wantStart, *tt.wantEnd)
			}
		})
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected *time.Time
	}{
		{
			name:     "verbose format",
			value:    "Thu Jan 22 21:04:29 +0000 2026",
			expected: ptrTime(time.Date(2026, 1, 22, 21, 4, 29, 0, time.UTC)),
		},
		{
			name:     "verbose format with offset",
			value:    "Wed Oct 10 20:19:24 +0200 2018",
			expected: ptrTime(time.Date(2018, 10, 10, 18, 19, 24, 0, time.UTC)),
		},
		{
			name:     "iso with zulu",
			value:    "2016-03-08T05:42:24.075Z",
			expected: ptrTime(time.Date(2016, 3, 8, 5, 42, 24, 75000000, time.UTC)),
		},
		{
			name:     "naive iso defaults to utc",
			value:    "2026-01-22T21:04:29",
			expected: ptrTime(time.Date(2026, 1, 22, 21, 4, 29, 0, time.UTC)),
		},
		{
			name:     "driver style",
			value:    "2026-01-22 21:04:29.000000",
			expected: ptrTime(time.Date(2026, 1, 22, 21, 4, 29, 0, time.UTC)),
		},
		{
			name:  "empty string",
			value: "",
		},
		{
			name:  "whitespace",
			value: "   ",
		},
		{
			name:  "garbage",
			value: "not a date",
		},
		{
			name:  "nil",
			value: nil,
		},
		{
			name:  "number",
			value: float64(1234567890),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Time(tt.value)
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("Time(%v) = %v, want %v", tt.value, got, tt.expected)
			}
			if got != nil && !got.Equal(*tt.expected) {
				t.Errorf("Time(%v) = %v, want %v", tt.value, got, tt.expected)
			}
			if got != nil && got.Location() != time.UTC {
				t.Errorf("Time(%v) location = %v, want UTC", tt.value, got.Location())
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(nil); got != "" {
		t.Errorf("FormatTimestamp(nil) = %q, want empty", got)
	}

	ts := time.Date(2026, 1, 22, 21, 4, 29, 123000000, time.UTC)
	if got := FormatTimestamp(&ts); got != "2026-01-22T21:04:29.123Z" {
		t.Errorf("FormatTimestamp() = %q, want 2026-01-22T21:04:29.123Z", got)
	}
}

func TestString(t *testing.T) {
	if got := String("abc"); got != "abc" {
		t.Errorf("String(\"abc\") = %q", got)
	}
	if got := String(float64(123456789)); got != "123456789" {
		t.Errorf("String(123456789) = %q, want 123456789", got)
	}
	if got := String(nil); got != "" {
		t.Errorf("String(nil) = %q, want empty", got)
	}
	if got := String([]interface{}{"x"}); got != "" {
		t.Errorf("String(slice) = %q, want empty", got)
	}
}

func TestOptString(t *testing.T) {
	if got := OptString("x"); got == nil || *got != "x" {
		t.Errorf("OptString(\"x\") = %v, want x", got)
	}
	if got := OptString(""); got != nil {
		t.Errorf("OptString(\"\") = %v, want nil", got)
	}
	if got := OptString(nil); got != nil {
		t.Errorf("OptString(nil) = %v, want nil", got)
	}
}

func TestOptFieldString(t *testing.T) {
	m := map[string]interface{}{
		"empty":  "",
		"filled": "x",
		"null":   nil,
		"number": float64(42),
	}
	if got := OptFieldString(m, "empty"); got == nil || *got != "" {
		t.Errorf("OptFieldString(empty) = %v, want pointer to empty string", got)
	}
	if got := OptFieldString(m, "filled"); got == nil || *got != "x" {
		t.Errorf("OptFieldString(filled) = %v, want x", got)
	}
	if got := OptFieldString(m, "null"); got != nil {
		t.Errorf("OptFieldString(null) = %v, want nil", got)
	}
	if got := OptFieldString(m, "absent"); got != nil {
		t.Errorf("OptFieldString(absent) = %v, want nil", got)
	}
	if got := OptFieldString(m, "number"); got == nil || *got != "42" {
		t.Errorf("OptFieldString(number) = %v, want 42", got)
	}
}

func ptr(n int64) *int64 {
	return &n
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
