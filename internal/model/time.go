// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// WireTimeLayout is the timestamp layout the API accepts: space separated,
// seconds precision, no zone suffix.
const WireTimeLayout = "2006-01-02 15:04:05"

// readLayouts are tried in order when decoding timestamps from the API.
var readLayouts = []string{
	WireTimeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000000Z",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// Time is a timestamp that decodes the formats the API emits and encodes
// using WireTimeLayout in UTC.
type Time struct {
	time.Time
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// FormatWire formats t the way request payloads expect it.
func FormatWire(t time.Time) string {
	return t.UTC().Format(WireTimeLayout)
}

// ParseTime parses any of the timestamp layouts the API is known to emit.
// Layouts without a zone are interpreted as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range readLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON encodes the zero time as null.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(FormatWire(t.Time))
}

// UnmarshalJSON accepts null, an empty string or any supported layout.
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
