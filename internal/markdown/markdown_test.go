// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"paragraph", "中国首都", "<p>中国首都</p>"},
		{"emphasis", "the **Bund** at night", "<strong>Bund</strong>"},
		{"strikethrough", "~~closed~~", "<del>closed</del>"},
		{"autolink", "see https://example.com", `<a href="https://example.com">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestRawHTMLIsNotPassedThrough(t *testing.T) {
	got := string(Render(`<script>alert("x")</script>`))
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML leaked into output: %q", got)
	}
}
