// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestYearOf(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2022-05-10", "2022"},
		{"1999-12-31", "1999"},
		{"2023", "2023"},
		{"", ""},
		{"-05-10", ""},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := YearOf(tt.date); got != tt.want {
				t.Errorf("YearOf(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestCoordinatesValid(t *testing.T) {
	tests := []struct {
		name   string
		coords Coordinates
		want   bool
	}{
		{"beijing", Coordinates{116.4074, 39.9042}, true},
		{"bounds", Coordinates{-180, 90}, true},
		{"lng out of range", Coordinates{181, 0}, false},
		{"lat out of range", Coordinates{0, -90.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coords.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocationJSONShape(t *testing.T) {
	raw := `{"name":"北京","description":"首都","coordinates":[116.4074,39.9042],"visitDate":"2022-05-10","category":"城市"}`

	var loc Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if loc.Coordinates.Lng() != 116.4074 || loc.Coordinates.Lat() != 39.9042 {
		t.Errorf("coordinates: got %v", loc.Coordinates)
	}
	if loc.ID != 0 {
		t.Errorf("ID should not come from source data, got %d", loc.ID)
	}

	loc.ID = 3
	out, err := json.Marshal(loc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"_id":3`) {
		t.Errorf("marshalled location should carry _id, got %s", out)
	}
}

func TestRecordLocation(t *testing.T) {
	r := Record{Name: "上海", Coordinates: Coordinates{121.4737, 31.2304}, VisitDate: "2022-06-15", Category: "城市"}
	loc := r.Location(2)
	if loc.ID != 2 || loc.Name != "上海" || loc.Year() != "2022" {
		t.Errorf("unexpected location: %+v", loc)
	}
}
