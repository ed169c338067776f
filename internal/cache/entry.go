// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

// timestampLayout is ISO-8601 with microseconds and a numeric offset.
const timestampLayout = "2006-01-02T15:04:05.000000-07:00"

// Entry is the on-disk document for one weekly menu.
type Entry struct {
	Timestamp time.Time
	MenuItems []menu.Item
}

type wireEntry struct {
	Timestamp *string      `json:"timestamp"`
	MenuItems *[]menu.Item `json:"menu_items"`
}

// Encode renders the entry as indented JSON.
func (e *Entry) Encode() ([]byte, error) {
	ts := e.Timestamp.Format(timestampLayout)
	items := e.MenuItems
	if items == nil {
		items = []menu.Item{}
	}
	return json.MarshalIndent(wireEntry{Timestamp: &ts, MenuItems: &items}, "", "  ")
}

// Decode parses an entry. Both fields are required. A timestamp without an
// offset is taken as local time.
func Decode(data []byte) (*Entry, error) {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	if w.Timestamp == nil || w.MenuItems == nil {
		return nil, errors.New("cache entry is missing timestamp or menu_items")
	}

	ts, err := parseTimestamp(*w.Timestamp)
	if err != nil {
		return nil, err
	}

	return &Entry{Timestamp: ts, MenuItems: *w.MenuItems}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	// Fractional seconds are accepted even though the layout omits them.
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid cache timestamp %q", s)
}

// Fresh reports whether the entry is younger than ttl at now.
func (e *Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.Timestamp) < ttl
}
