package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"How to Choose!", "how-to-choose"},
		{"  Pool -- Table  Moving!! ", "pool-table-moving"},
		{"  Moving   a 9' Table -- Safely ", "moving-a-9-table-safely"},
		{"Already-slugged", "already-slugged"},
		{"felt_and_rails", "felt-and-rails"},
		{"!!!", ""},
		{"   ", ""},
		{"Brunswick® Gold Crown III", "brunswick-gold-crown-iii"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
