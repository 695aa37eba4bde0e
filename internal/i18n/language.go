// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n holds the two display languages of the viewer, the UI
// message catalog, and the category localizer that translates stored
// category labels between Chinese (the storage language) and English.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the two supported display languages.
type Language string

const (
	// Chinese is the storage language: canonical category labels are Chinese.
	Chinese Language = "zh"
	// English is the secondary display language.
	English Language = "en"

	// DefaultLanguage is used when nothing else decides.
	DefaultLanguage = Chinese
)

// Languages lists the supported languages in toggle order.
var Languages = []Language{Chinese, English}

// supportedTags is parallel to Languages for the matcher.
var supportedTags = []language.Tag{language.Chinese, language.English}

var matcher = language.NewMatcher(supportedTags)

// ParseLanguage accepts "zh"/"en" (and regional variants such as "en-US"
// or "zh-CN"). The second return value is false for anything else.
func ParseLanguage(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	base, _, _ := strings.Cut(strings.ReplaceAll(s, "_", "-"), "-")
	switch Language(base) {
	case Chinese:
		return Chinese, true
	case English:
		return English, true
	}
	return DefaultLanguage, false
}

// Negotiate picks the initial session language from an Accept-Language
// header value. Unparseable or unmatched headers yield DefaultLanguage.
func Negotiate(acceptLanguage string) Language {
	if acceptLanguage == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	return Languages[idx]
}

// Label returns the language's own name for the toggle ("中文", "English").
func (l Language) Label() string {
	if l == English {
		return "English"
	}
	return "中文"
}

// All returns the "no filter applied" sentinel for the language. It is a
// translated string, so its value changes with the language.
func All(lang Language) string {
	return T(lang, "common.all")
}
