package search

import (
	"testing"
	"time"
)

func TestNormalizeAuthor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"@alice", "alice"},
		{"  @alice  ", "alice"},
		{"", ""},
		{"   ", ""},
		{"@", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAuthor(tt.in); got != tt.want {
			t.Errorf("NormalizeAuthor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDayBounds(t *testing.T) {
	d := time.Date(2026, 1, 22, 13, 45, 0, 0, time.FixedZone("CET", 3600))

	start := DayStart(d)
	want := time.Date(2026, 1, 22, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("DayStart() = %v, want %v", start, want)
	}

	end := DayEnd(d)
	wantEnd := time.Date(2026, 1, 22, 23, 59, 59, 999999999, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("DayEnd() = %v, want %v", end, wantEnd)
	}
}
