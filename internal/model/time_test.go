// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	want := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-14 09:26:53", want},
		{"2025-03-14T09:26:53Z", want},
		{"2025-03-14T09:26:53.000000Z", want},
		{"2025-03-14T11:26:53+02:00", want},
		{"2025-03-14", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			if err != nil {
				t.Fatalf("ParseTime(%q) error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseTime("yesterday"); err == nil {
		t.Error("ParseTime(yesterday) should fail")
	}
}

func TestFormatWire(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	got := FormatWire(time.Date(2025, 12, 31, 23, 59, 59, 999, loc))
	if got != "2025-12-31 20:59:59" {
		t.Errorf("FormatWire() = %q", got)
	}
}

func TestTimeJSON(t *testing.T) {
	var payload struct {
		At   Time `json:"at"`
		Null Time `json:"null"`
		Empt Time `json:"empty"`
	}
	data := `{"at":"2025-01-02 03:04:05","null":null,"empty":""}`
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if payload.At.Year() != 2025 || payload.At.Second() != 5 {
		t.Errorf("At = %v", payload.At)
	}
	if !payload.Null.IsZero() || !payload.Empt.IsZero() {
		t.Error("null and empty timestamps should decode to zero")
	}

	out, err := json.Marshal(payload.At)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `"2025-01-02 03:04:05"` {
		t.Errorf("Marshal = %s", out)
	}
	out, _ = json.Marshal(Time{})
	if string(out) != "null" {
		t.Errorf("zero Marshal = %s, want null", out)
	}
}
