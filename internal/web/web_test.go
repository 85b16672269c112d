package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/affordablebilliards/billiards_api/internal/config"
)

func TestFuncs(t *testing.T) {
	if got := Money(2199); got != "$2,199" {
		t.Errorf("Money(2199) = %q", got)
	}
	if got := Money(850.4); got != "$850" {
		t.Errorf("Money(850.4) = %q", got)
	}
	if got := Date("2025-03-04T10:00:00.000Z"); got != "March 4, 2025" {
		t.Errorf("Date() = %q", got)
	}
	if got := Date("yesterday"); got != "yesterday" {
		t.Errorf("Date(bad) = %q", got)
	}
	if got := Stars(4); got != "★★★★☆" {
		t.Errorf("Stars(4) = %q", got)
	}
	if got := Tel("586-552-6053"); got != "tel:5865526053" {
		t.Errorf("Tel() = %q", got)
	}
}

func TestRenderEveryPage(t *testing.T) {
	r, err := New(config.SiteConfig{Name: "Affordable Billiards", Phone: "586-552-6053"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, name := range []string{PageServices, PageAbout, PageNotFound} {
		var buf bytes.Buffer
		if err := r.Render(&buf, name, "Title", nil); err != nil {
			t.Errorf("Render(%s) error = %v", name, err)
			continue
		}
		if !strings.Contains(buf.String(), "586-552-6053") {
			t.Errorf("%s: phone missing from layout", name)
		}
	}
	if err := r.Render(&bytes.Buffer{}, "missing", "", nil); err == nil {
		t.Error("expected error for unknown page")
	}
}
