// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"

	"footprints/internal/creator"
)

func TestValidateSearch(t *testing.T) {
	tests := []struct {
		name      string
		term      string
		wantError bool
	}{
		{"empty", "", false},
		{"short", "北京", false},
		{"at limit in runes", strings.Repeat("京", 200), false},
		{"too long", strings.Repeat("a", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateSearch(tt.term)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateFacet(t *testing.T) {
	if msg := validateFacet("自然景观"); msg != "" {
		t.Errorf("unexpected error: %s", msg)
	}
	if msg := validateFacet(strings.Repeat("x", 101)); msg == "" {
		t.Error("expected an error for a long facet value")
	}
}

func TestParseViewportWidth(t *testing.T) {
	tests := []struct {
		in        string
		want      int
		wantError bool
	}{
		{"1280", 1280, false},
		{"375", 375, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"wide", 0, true},
		{"", 0, true},
		{"99999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, msg := parseViewportWidth(tt.in)
			if tt.wantError {
				if msg == "" {
					t.Errorf("parseViewportWidth(%q) expected error", tt.in)
				}
				return
			}
			if msg != "" {
				t.Fatalf("parseViewportWidth(%q) unexpected error: %s", tt.in, msg)
			}
			if got != tt.want {
				t.Errorf("parseViewportWidth(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name      string
		draft     creator.Draft
		wantError bool
	}{
		{"empty draft passes size checks", creator.Draft{}, false},
		{"normal", creator.Draft{Name: "北京", Description: "首都", Coordinates: "116.4, 39.9", Category: "城市"}, false},
		{"long name", creator.Draft{Name: strings.Repeat("a", 301)}, true},
		{"long description", creator.Draft{Description: strings.Repeat("a", 10_001)}, true},
		{"long coordinates", creator.Draft{Coordinates: strings.Repeat("1", 101)}, true},
		{"long category", creator.Draft{Category: strings.Repeat("c", 101)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateDraft(tt.draft)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}
