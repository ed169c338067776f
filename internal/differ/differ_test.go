// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

const wv = "West Village"

func TestWeeks(t *testing.T) {
	older := []menu.Item{
		{Name: "Grilled Chicken", Calories: 200, Protein: 40, Serving: "4 oz", DiningHall: wv},
		{Name: "Grilled Chicken", Calories: 200, Protein: 40, Serving: "4 oz", DiningHall: wv},
		{Name: "Beef Chili", Calories: 320, Protein: 22, DiningHall: wv},
		{Name: "Steamed Broccoli", Calories: 50, Protein: 4, DiningHall: wv},
	}
	newer := []menu.Item{
		{Name: "Grilled Chicken", Calories: 220, Protein: 42, Serving: "4 oz", DiningHall: wv},
		{Name: "Steamed Broccoli", Calories: 50, Protein: 4, DiningHall: wv},
		{Name: "Tofu Stir Fry", Calories: 280, Protein: 18, DiningHall: wv},
	}

	d := Weeks(older, newer)
	require.True(t, d.Modified())
	require.Len(t, d.Changes, 3)

	assert.Equal(t, Change{Kind: Added, Name: "Tofu Stir Fry", DiningHall: wv}, d.Changes[0])
	assert.Equal(t, Change{Kind: Removed, Name: "Beef Chili", DiningHall: wv}, d.Changes[1])
	assert.Equal(t, Change{Kind: Changed, Name: "Grilled Chicken", DiningHall: wv, Fields: []string{"calories", "protein"}}, d.Changes[2])

	assert.Equal(t, "1 added, 1 removed, 1 changed", d.Summary())
}

func TestWeeks_Same(t *testing.T) {
	items := []menu.Item{{Name: "Oatmeal", Calories: 150, Protein: 5, DiningHall: wv}}
	d := Weeks(items, items)
	assert.False(t, d.Modified())
	assert.Empty(t, d.Changes)
	assert.Equal(t, "0 added, 0 removed, 0 changed", d.Summary())
}

func TestWeeks_SameNameOtherHall(t *testing.T) {
	older := []menu.Item{{Name: "Oatmeal", Calories: 150, DiningHall: wv}}
	newer := []menu.Item{{Name: "Oatmeal", Calories: 150, DiningHall: "North Ave Dining Hall"}}

	d := Weeks(older, newer)
	require.Len(t, d.Changes, 2)
	assert.Equal(t, Added, d.Changes[0].Kind)
	assert.Equal(t, "North Ave Dining Hall", d.Changes[0].DiningHall)
	assert.Equal(t, Removed, d.Changes[1].Kind)
}

func TestDiff_Format(t *testing.T) {
	older := []menu.Item{{Name: "Beef Chili", Calories: 320, DiningHall: wv}}
	newer := []menu.Item{{Name: "Tofu Stir Fry", Calories: 280, DiningHall: wv}}

	out, err := Weeks(older, newer).Format(false)
	require.NoError(t, err)
	assert.Equal(t, "-", markerOf(out, `"Beef Chili|West Village"`))
	assert.Equal(t, "+", markerOf(out, `"Tofu Stir Fry|West Village"`))
}

// markerOf returns the first character of the line containing s.
func markerOf(out, s string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, s) {
			return line[:1]
		}
	}
	return ""
}
