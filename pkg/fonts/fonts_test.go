package fonts

import (
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name     string
		family   string
		weight   int
		wantFace string
		wantOK   bool
	}{
		{"canonical regular", "Go", 400, "Go Regular", true},
		{"canonical bold", "Go", 700, "Go Bold", true},
		{"nearest weight 600 prefers bold", "Go", 600, "Go Bold", true},
		{"nearest weight 500", "go", 500, "Go Medium", true},
		{"zero weight is regular", "Go", 0, "Go Regular", true},
		{"web alias", "Arial", 400, "Go Regular", true},
		{"quoted alias", `"Helvetica Neue"`, 400, "Go Regular", true},
		{"monospace alias", "Courier New", 700, "Go Mono Bold", true},
		{"family list falls through", "Unknown Font, sans-serif", 400, "Go Regular", true},
		{"unknown family", "Papyrus", 400, "", false},
		{"empty family", "", 400, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Lookup(tt.family, tt.weight)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.family, ok, tt.wantOK)
			}
			if ok && got.Name != tt.wantFace {
				t.Errorf("Lookup(%q, %d) = %q, want %q", tt.family, tt.weight, got.Name, tt.wantFace)
			}
			if ok && len(got.TTF) == 0 {
				t.Error("face has no font data")
			}
		})
	}
}

func TestRegistryOptions(t *testing.T) {
	r := NewRegistry(
		WithFace("Brand Sans", WeightRegular, "Brand Regular", []byte{1, 2, 3}),
		WithAlias("corporate", "Brand Sans"),
	)

	f, ok := r.Lookup("Corporate", 400)
	if !ok || f.Name != "Brand Regular" {
		t.Fatalf("Lookup(corporate) = %v, %v", f, ok)
	}
	if f.Family != "brand sans" {
		t.Errorf("Family = %q, want %q", f.Family, "brand sans")
	}

	families := r.Families()
	if len(families) != 3 {
		t.Errorf("Families() = %v, want 3 entries", families)
	}
}

func TestDataURI(t *testing.T) {
	f := Face{TTF: []byte("abc")}
	if got := f.DataURI(); got != "data:font/ttf;base64,YWJj" {
		t.Errorf("DataURI() = %q", got)
	}
	r := NewRegistry()
	regular, _ := r.Lookup(FontFamily, WeightRegular)
	if !strings.HasPrefix(regular.DataURI(), "data:font/ttf;base64,AAEAAA") {
		t.Error("embedded Go Regular should be a TrueType font")
	}
}
