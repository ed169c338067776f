// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

const ext = ".json"

// Key identifies one weekly menu.
type Key struct {
	Hall string
	Meal string
	Week time.Time
}

// NewKey keys the menu containing date by the Monday of its week.
func NewKey(hall string, meal string, date time.Time) Key {
	return Key{Hall: hall, Meal: meal, Week: menu.WeekOf(date)}
}

// Name is the entry's file name, "{hall}_{meal}_{monday}.json".
func (k Key) Name() string {
	return fmt.Sprintf("%s_%s_%s%s", k.Hall, k.Meal, k.Week.Format(menu.DateLayout), ext)
}

func (k Key) String() string {
	return strings.TrimSuffix(k.Name(), ext)
}

// ParseName is the inverse of Name.
func ParseName(name string) (Key, bool) {
	if !strings.HasSuffix(name, ext) {
		return Key{}, false
	}
	parts := strings.Split(strings.TrimSuffix(name, ext), "_")
	if len(parts) != 3 { //nolint:mnd
		return Key{}, false
	}
	week, err := time.ParseInLocation(menu.DateLayout, parts[2], time.Local)
	if err != nil {
		return Key{}, false
	}
	return Key{Hall: parts[0], Meal: parts[1], Week: week}, true
}
