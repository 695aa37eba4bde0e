// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package filter

import (
	"testing"

	"footprints/internal/i18n"
	"footprints/internal/models"
)

func sample() []models.Location {
	return []models.Location{
		{ID: 1, Name: "Beijing", Description: "Capital with the Forbidden City", VisitDate: "2022-05-10", Category: "城市"},
		{ID: 2, Name: "Shanghai", Description: "The Bund at night", VisitDate: "2022-06-15", Category: "城市"},
		{ID: 3, Name: "黄山", Description: "云海与奇松", VisitDate: "2019-10-01", Category: "自然景观"},
		{ID: 4, Name: "Xi'an", Description: "Terracotta warriors", VisitDate: "2023-04-02", Category: "historical"},
		{ID: 5, Name: "成都", Description: "火锅 and pandas", VisitDate: "2019-03-20", Category: "美食"},
		{ID: 6, Name: "鼓浪屿", Description: "", VisitDate: "2021-07-07", Category: "海岛"},
	}
}

func names(locs []models.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyAllReturnsInput(t *testing.T) {
	locs := sample()
	for _, lang := range i18n.Languages {
		got := Apply(locs, Reset(lang))
		if !equal(names(got), names(locs)) {
			t.Errorf("%s: Apply with no filters = %v, want %v", lang, names(got), names(locs))
		}
	}
}

func TestApplyBeijingScenario(t *testing.T) {
	locs := []models.Location{
		{ID: 1, Name: "Beijing", VisitDate: "2022-05-10", Category: "city"},
		{ID: 2, Name: "Shanghai", VisitDate: "2022-06-15", Category: "city"},
	}
	s := State{Category: i18n.All(i18n.Chinese), Year: "2022", Search: "bei", Language: i18n.Chinese}

	got := Apply(locs, s)
	if !equal(names(got), []string{"Beijing"}) {
		t.Errorf("got %v, want [Beijing]", names(got))
	}
}

func TestApply(t *testing.T) {
	zhAll := i18n.All(i18n.Chinese)
	enAll := i18n.All(i18n.English)

	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{"zh category compares stored labels", State{Category: "城市", Year: zhAll, Language: i18n.Chinese}, []string{"Beijing", "Shanghai"}},
		{"zh category does not localize english data", State{Category: "历史遗迹", Year: zhAll, Language: i18n.Chinese}, nil},
		{"zh category matches raw english label", State{Category: "historical", Year: zhAll, Language: i18n.Chinese}, []string{"Xi'an"}},
		{"en category localizes stored labels", State{Category: "city", Year: enAll, Language: i18n.English}, []string{"Beijing", "Shanghai"}},
		{"en category passes through english data", State{Category: "historical", Year: enAll, Language: i18n.English}, []string{"Xi'an"}},
		{"en category passes through unknown", State{Category: "海岛", Year: enAll, Language: i18n.English}, []string{"鼓浪屿"}},
		{"year only", State{Category: zhAll, Year: "2019", Language: i18n.Chinese}, []string{"黄山", "成都"}},
		{"search is case insensitive on name", State{Category: enAll, Year: enAll, Search: "SHANG", Language: i18n.English}, []string{"Shanghai"}},
		{"search matches description", State{Category: enAll, Year: enAll, Search: "pandas", Language: i18n.English}, []string{"成都"}},
		{"search matches chinese", State{Category: zhAll, Year: zhAll, Search: "云海", Language: i18n.Chinese}, []string{"黄山"}},
		{"predicates combine with AND", State{Category: "城市", Year: "2022", Search: "bund", Language: i18n.Chinese}, []string{"Shanghai"}},
		{"stale sentinel matches nothing", State{Category: zhAll, Year: enAll, Language: i18n.English}, nil},
		{"no match", State{Category: zhAll, Year: zhAll, Search: "atlantis", Language: i18n.Chinese}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Apply(sample(), tt.state))
			if !equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	zh := Categories(sample(), i18n.Chinese)
	wantZh := []string{"全部", "城市", "自然景观", "historical", "美食", "海岛"}
	if !equal(zh, wantZh) {
		t.Errorf("zh facet = %v, want %v", zh, wantZh)
	}

	en := Categories(sample(), i18n.English)
	wantEn := []string{"All", "city", "nature", "historical", "food", "海岛"}
	if !equal(en, wantEn) {
		t.Errorf("en facet = %v, want %v", en, wantEn)
	}
}

func TestYearsDescendingWithoutDuplicates(t *testing.T) {
	got := Years(sample(), i18n.English)
	want := []string{"All", "2023", "2022", "2021", "2019"}
	if !equal(got, want) {
		t.Fatalf("years = %v, want %v", got, want)
	}
	for i := 2; i < len(got); i++ {
		if got[i-1] <= got[i] {
			t.Errorf("years not strictly descending at %d: %v", i, got)
		}
	}
}

func TestYearsEmpty(t *testing.T) {
	got := Years(nil, i18n.Chinese)
	if !equal(got, []string{"全部"}) {
		t.Errorf("got %v", got)
	}
}

func TestResetAndActive(t *testing.T) {
	s := Reset(i18n.English)
	if s.Active() {
		t.Error("reset state should not be active")
	}
	s.Search = "x"
	if !s.Active() {
		t.Error("search term should make the state active")
	}
	s = Reset(i18n.Chinese)
	s.Year = "2022"
	if !s.Active() {
		t.Error("year filter should make the state active")
	}
}

func TestSwitch(t *testing.T) {
	tests := []struct {
		name string
		in   State
		lang i18n.Language
		want State
	}{
		{
			name: "facets reset, search kept",
			in:   State{Category: "城市", Year: "2022", Search: "首都", Language: i18n.Chinese},
			lang: i18n.English,
			want: State{Category: "All", Year: "All", Search: "首都", Language: i18n.English},
		},
		{
			name: "back to chinese",
			in:   State{Category: "city", Year: "All", Search: "", Language: i18n.English},
			lang: i18n.Chinese,
			want: State{Category: "全部", Year: "全部", Language: i18n.Chinese},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Switch(tt.in, tt.lang); got != tt.want {
				t.Errorf("Switch = %+v, want %+v", got, tt.want)
			}
		})
	}
}
