// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewsDecodesTagShapes(t *testing.T) {
	data := `{
		"id": 7,
		"title": "Budget passes",
		"tags": ["politics", {"tag": "economy"}, {"name": "parliament"}],
		"category": {"id": 3, "name": "National"},
		"sub_category": 9,
		"publish_status": "scheduled",
		"published_at": "2025-06-01 08:00:00"
	}`

	var n News
	if err := json.Unmarshal([]byte(data), &n); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []string{"politics", "economy", "parliament"}
	if len(n.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", n.Tags, want)
	}
	for i := range want {
		if n.Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %q, want %q", i, n.Tags[i], want[i])
		}
	}

	cat, sub := n.ParentIDs()
	if cat != 3 || sub != 9 {
		t.Errorf("ParentIDs() = %d, %d; want 3, 9", cat, sub)
	}
	if n.PublishedAt.Hour() != 8 {
		t.Errorf("PublishedAt = %v", n.PublishedAt)
	}
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in   string
		want FlexInt
	}{
		{`42`, 42},
		{`"42"`, 42},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tt := range tests {
		var got FlexInt
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}

	var bad FlexInt
	if err := json.Unmarshal([]byte(`"abc"`), &bad); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestFlashNewsExpired(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	past := FlashNews{ExpiresAt: NewTime(now.Add(-time.Minute))}
	future := FlashNews{ExpiresAt: NewTime(now.Add(time.Minute))}

	if !past.Expired(now) {
		t.Error("past banner should be expired")
	}
	if future.Expired(now) {
		t.Error("future banner should not be expired")
	}
	if (FlashNews{}).Expired(now) {
		t.Error("banner without expiry should not be expired")
	}
}

func TestUploadTags(t *testing.T) {
	if u := Unchanged(""); !u.IsEmpty() {
		t.Error("Unchanged(\"\") should be Cleared")
	}
	u := Unchanged("https://cdn.example.com/a.png")
	if u.Kind() != UploadUnchanged || u.URL() != "https://cdn.example.com/a.png" {
		t.Errorf("Unchanged = %+v", u)
	}
	if _, ok := u.File(); ok {
		t.Error("Unchanged upload should not carry a file")
	}

	r := Replace(File{Name: "a.png", Data: []byte{1}})
	f, ok := r.File()
	if !ok || f.Name != "a.png" || !r.IsReplace() {
		t.Errorf("Replace = %+v", r)
	}

	all := UnchangedAll([]string{"", "/storage/x.png"})
	if len(all) != 1 || all[0].URL() != "/storage/x.png" {
		t.Errorf("UnchangedAll = %+v", all)
	}
}
