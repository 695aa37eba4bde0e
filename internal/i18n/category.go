// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

// CategoryKind identifies one of the known location categories.
type CategoryKind int

const (
	// CategoryUnknown marks a label found in neither table. Such labels
	// pass through localization verbatim.
	CategoryUnknown CategoryKind = iota
	CategoryCity
	CategoryNature
	CategoryHistorical
	CategoryFood
	CategoryOther
)

// Category is a parsed category label. Form records which language the
// raw label was written in; for CategoryUnknown it is empty.
type Category struct {
	Kind CategoryKind
	Form Language
	Raw  string
}

type categoryLabels struct {
	kind CategoryKind
	zh   string
	en   string
}

// categoryTable is the fixed, hand-authored mapping. The order is the
// order of the Creator's category select.
var categoryTable = []categoryLabels{
	{CategoryCity, "城市", "city"},
	{CategoryNature, "自然景观", "nature"},
	{CategoryHistorical, "历史遗迹", "historical"},
	{CategoryFood, "美食", "food"},
	{CategoryOther, "其他", "other"},
}

var (
	zhToEn = make(map[string]categoryLabels, len(categoryTable))
	enToZh = make(map[string]categoryLabels, len(categoryTable))
)

func init() {
	for _, c := range categoryTable {
		zhToEn[c.zh] = c
		enToZh[c.en] = c
	}
}

// ParseCategory classifies a stored label. Chinese labels take precedence
// over English ones; anything else is CategoryUnknown.
func ParseCategory(label string) Category {
	if c, ok := zhToEn[label]; ok {
		return Category{Kind: c.kind, Form: Chinese, Raw: label}
	}
	if c, ok := enToZh[label]; ok {
		return Category{Kind: c.kind, Form: English, Raw: label}
	}
	return Category{Kind: CategoryUnknown, Raw: label}
}

// In returns the label of the category in lang. A Chinese-form category
// is only translated to English, an English-form one only to Chinese;
// every other combination returns Raw unchanged.
func (c Category) In(lang Language) string {
	if c.Kind == CategoryUnknown {
		return c.Raw
	}
	switch {
	case lang == English && c.Form == Chinese:
		return zhToEn[c.Raw].en
	case lang == Chinese && c.Form == English:
		return enToZh[c.Raw].zh
	}
	return c.Raw
}

// Localize translates a stored category label for display in lang.
// Unknown labels, and labels already in the target language, are returned
// unchanged, which tolerates mixed-language stored data.
func Localize(category string, lang Language) string {
	return ParseCategory(category).In(lang)
}

// CanonicalCategories returns the canonical (Chinese) labels in order.
func CanonicalCategories() []string {
	out := make([]string, len(categoryTable))
	for i, c := range categoryTable {
		out[i] = c.zh
	}
	return out
}

// DefaultCategory is the Creator form's initial category.
const DefaultCategory = "城市"

// MarkerClass returns the map marker style class for a stored category.
// Only the canonical city label is drawn as a city marker.
func MarkerClass(category string) string {
	if category == DefaultCategory {
		return "city"
	}
	return "nature"
}
