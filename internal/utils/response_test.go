package utils

import (
	"testing"
	"time"
)

func TestFormatISO(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	got := FormatISO(time.Date(2024, 3, 9, 7, 5, 1, 42_000_000, loc))
	if want := "2024-03-09T12:05:01.042Z"; got != want {
		t.Errorf("FormatISO() = %q, want %q", got, want)
	}
}
