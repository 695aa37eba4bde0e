// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides file-name friendly slugs for location names. Letters
// and digits of any script are kept, so Chinese names stay readable.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// disallowed matches anything that isn't a letter, digit, space or hyphen.
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)
	// separators collapses runs of whitespace, underscores and hyphens.
	separators = regexp.MustCompile(`[\s_-]+`)
)

// Generate creates a slug from the given string.
// Example: "Great Wall, Beijing 2026" → "great-wall-beijing-2026",
// "北京 天安门" → "北京-天安门".
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = disallowed.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// FileName returns "<prefix>-<id>-<slug>.<ext>", dropping the slug part
// when the name has no usable characters.
func FileName(prefix string, id int, name, ext string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(id))
	if s := Generate(name); s != "" {
		b.WriteByte('-')
		b.WriteString(s)
	}
	b.WriteByte('.')
	b.WriteString(ext)
	return b.String()
}
