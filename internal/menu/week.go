// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package menu

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of dates in week specs and cache keys.
const DateLayout = "2006-01-02"

// WeekOf returns midnight of the Monday of the week containing t, in t's
// location. The API serves a whole week per request, so this is the unit of
// caching.
func WeekOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 //nolint:mnd
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseWeekSpec resolves a week spec relative to now. A spec may be -
//
//	empty or ~0 - now.
//	~N          - N weeks ago.
//	+N          - N weeks ahead.
//	YYYY-MM-DD  - that date.
//
// The returned time is a date inside the selected week, not its Monday.
func ParseWeekSpec(spec string, now time.Time) (time.Time, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "now") {
		return now, nil
	}

	if strings.HasPrefix(spec, "~") || strings.HasPrefix(spec, "+") {
		n, err := strconv.Atoi(spec[1:])
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("invalid week offset %q", spec)
		}
		if spec[0] == '~' {
			n = -n
		}
		return now.AddDate(0, 0, 7*n), nil //nolint:mnd
	}

	t, err := time.ParseInLocation(DateLayout, spec, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week spec %q, want YYYY-MM-DD, ~N or +N", spec)
	}
	return t, nil
}
