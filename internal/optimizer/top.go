// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package optimizer

import (
	"sort"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

// DefaultTopN is the number of items TopItems returns when n <= 0.
const DefaultTopN = 10

const minTopProtein = 12

// TopItems returns the n most protein-efficient items that carry at least 12g
// of protein. Items repeated across days are listed once per hall.
func TopItems(items []menu.Item, n int) []Candidate {
	if n <= 0 {
		n = DefaultTopN
	}

	seen := make(map[string]bool)
	var out []Candidate
	for _, item := range items {
		if item.Calories <= 0 || item.Protein < minTopProtein {
			continue
		}
		if seen[item.Key()] {
			continue
		}
		seen[item.Key()] = true
		out = append(out, NewCandidate(item))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Efficiency > out[j].Efficiency
	})

	return head(out, n)
}

// CategoryCount is one row of a category distribution.
type CategoryCount struct {
	Category menu.Category `json:"category"`
	Count    int           `json:"count"`
	Percent  float64       `json:"percent"`
}

// Stats counts items per category, in menu.Categories order. Categories with
// no items are included with a zero count.
func Stats(items []menu.Item) []CategoryCount {
	counts := make(map[menu.Category]int)
	for _, item := range items {
		counts[menu.Categorize(item)]++
	}

	out := make([]CategoryCount, 0, len(menu.Categories))
	for _, c := range menu.Categories {
		cc := CategoryCount{Category: c, Count: counts[c]}
		if len(items) > 0 {
			cc.Percent = float64(cc.Count) / float64(len(items)) * 100
		}
		out = append(out, cc)
	}
	return out
}

// DefaultSoloN is the number of items SoloMeals returns when n <= 0.
const DefaultSoloN = 5

// ByProtein returns the n items with the most protein, repeats included.
// Ties keep menu order.
func ByProtein(items []menu.Item, n int) []Candidate {
	if n <= 0 {
		n = DefaultTopN
	}
	out := make([]Candidate, 0, len(items))
	for _, item := range items {
		out = append(out, NewCandidate(item))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Protein > out[j].Protein
	})
	return head(out, n)
}

// SoloMeals returns, in menu order, up to n items that meet the protein goal
// within the calorie limit on their own.
func SoloMeals(items []menu.Item, p Params, n int) []Candidate {
	if n <= 0 {
		n = DefaultSoloN
	}
	var out []Candidate
	for _, item := range items {
		if item.Protein >= p.ProteinGoal && item.Calories <= p.CalorieLimit {
			out = append(out, NewCandidate(item))
		}
	}
	return head(out, n)
}
