// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package optimizer

import (
	"math"
	"sort"
	"strings"

	"github.com/apex/log"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

// Pool sizes and per-strategy bounds.
const (
	maxProteins = 30
	maxVeggies  = 25
	maxCarbs    = 20
	maxResults  = 15

	minPoolProtein   = 10
	maxVeggieCalorie = 100
	minCarbGrams     = 15
	maxCarbCalorie   = 300
)

// Params are the targets of a search.
type Params struct {
	ProteinGoal  float64
	CalorieLimit float64
	// Hall optionally restricts candidates to one dining hall display name.
	Hall string
}

// Candidate is a menu item annotated for the search.
type Candidate struct {
	menu.Item
	Category   menu.Category
	Efficiency float64
}

// NewCandidate categorizes item and computes its efficiency.
func NewCandidate(item menu.Item) Candidate {
	return Candidate{Item: item, Category: menu.Categorize(item), Efficiency: item.Efficiency()}
}

// Combo is a set of items eaten together.
type Combo struct {
	Items    []Candidate
	Protein  float64
	Calories float64
	// Strategy is the 1-based strategy that first produced the combo.
	Strategy int
}

func newCombo(strategy int, items ...Candidate) Combo {
	c := Combo{Items: items, Strategy: strategy}
	for _, i := range items {
		c.Protein += i.Protein
		c.Calories += i.Calories
	}
	return c
}

// Efficiency is grams of protein per calorie of the whole combo.
func (c Combo) Efficiency() float64 {
	return c.Protein / math.Max(c.Calories, 1)
}

// Fat is the total fat in grams.
func (c Combo) Fat() float64 {
	var f float64
	for _, i := range c.Items {
		f += i.Fat
	}
	return f
}

// Carbs is the total carbohydrate in grams.
func (c Combo) Carbs() float64 {
	var g float64
	for _, i := range c.Items {
		g += i.Carbs
	}
	return g
}

// Macros returns the calorie split of the combo.
func (c Combo) Macros() (Macros, bool) {
	return MacroSplit(c.Protein, c.Carbs(), c.Fat())
}

// Names returns the item names in combo order.
func (c Combo) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, i := range c.Items {
		names = append(names, i.Name)
	}
	return names
}

// identity is the sorted multiset of names, used for de-duplication.
func (c Combo) identity() string {
	names := c.Names()
	sort.Strings(names)
	return strings.Join(names, "\x00")
}

func (c Combo) meets(p Params) bool {
	return c.Protein >= p.ProteinGoal && c.Calories <= p.CalorieLimit
}

// Pools are the ranked candidate lists the strategies draw from.
type Pools struct {
	Proteins []Candidate
	Veggies  []Candidate
	Carbs    []Candidate
}

// BuildPools filters items to the usable calorie range, optionally to one
// hall, and ranks the protein, vegetable and carb pools. A dish served on
// several days is a candidate once per serving.
func BuildPools(items []menu.Item, p Params) Pools {
	var valid []Candidate
	for _, item := range items {
		if item.Calories <= 0 || item.Calories >= p.CalorieLimit {
			continue
		}
		if p.Hall != "" && item.DiningHall != p.Hall {
			continue
		}
		valid = append(valid, NewCandidate(item))
	}
	if p.Hall != "" {
		log.Debugf("filtering to %s only (%d items)", p.Hall, len(valid))
	}

	var pools Pools
	for _, c := range valid {
		if c.Protein >= minPoolProtein {
			pools.Proteins = append(pools.Proteins, c)
		}
		if (c.Category == menu.Vegetable || c.Category == menu.Fruit) && c.Calories < maxVeggieCalorie {
			pools.Veggies = append(pools.Veggies, c)
		}
		if c.Category == menu.Carb && c.Carbs >= minCarbGrams && c.Calories < maxCarbCalorie {
			pools.Carbs = append(pools.Carbs, c)
		}
	}

	sort.SliceStable(pools.Proteins, func(i, j int) bool {
		a, b := pools.Proteins[i], pools.Proteins[j]
		if a.Efficiency != b.Efficiency {
			return a.Efficiency > b.Efficiency
		}
		return a.Protein > b.Protein
	})
	byEfficiencyThenCalories := func(s []Candidate) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].Efficiency != s[j].Efficiency {
				return s[i].Efficiency > s[j].Efficiency
			}
			return s[i].Calories < s[j].Calories
		}
	}
	sort.SliceStable(pools.Veggies, byEfficiencyThenCalories(pools.Veggies))
	sort.SliceStable(pools.Carbs, byEfficiencyThenCalories(pools.Carbs))

	pools.Proteins = head(pools.Proteins, maxProteins)
	pools.Veggies = head(pools.Veggies, maxVeggies)
	pools.Carbs = head(pools.Carbs, maxCarbs)

	log.Debugf("found %d high-protein items, %d vegetables, %d quality carbs",
		len(pools.Proteins), len(pools.Veggies), len(pools.Carbs))

	return pools
}

// FindCombinations runs the five strategies over the pools and returns up to
// fifteen distinct combos ordered by protein efficiency, then total protein.
//
//  1. protein + vegetable
//  2. protein + vegetable + carb
//  3. protein + carb
//  4. two proteins + vegetable
//  5. a single protein that meets the targets alone
func FindCombinations(items []menu.Item, p Params) []Combo {
	pools := BuildPools(items, p)
	proteins, veggies, carbs := pools.Proteins, pools.Veggies, pools.Carbs

	var found []Combo
	add := func(c Combo) {
		if c.meets(p) {
			found = append(found, c)
		}
	}

	for _, pr := range head(proteins, 15) {
		for _, v := range head(veggies, 15) {
			if pr.Name == v.Name {
				continue
			}
			add(newCombo(1, pr, v))
		}
	}

	for _, pr := range head(proteins, 12) {
		for _, v := range head(veggies, 12) {
			if pr.Name == v.Name {
				continue
			}
			for _, c := range head(carbs, 10) {
				if c.Name == pr.Name || c.Name == v.Name {
					continue
				}
				add(newCombo(2, pr, v, c))
			}
		}
	}

	for _, pr := range head(proteins, 15) {
		for _, c := range head(carbs, 12) {
			if pr.Name == c.Name {
				continue
			}
			add(newCombo(3, pr, c))
		}
	}

	for i, p1 := range head(proteins, 10) {
		// Two servings of the same dish are a valid pair.
		for _, p2 := range span(proteins, i+1, 15) {
			for _, v := range head(veggies, 10) {
				if v.Name == p1.Name || v.Name == p2.Name {
					continue
				}
				add(newCombo(4, p1, p2, v))
			}
		}
	}

	for _, pr := range head(proteins, 20) {
		add(newCombo(5, pr))
	}

	seen := make(map[string]bool, len(found))
	unique := found[:0]
	for _, c := range found {
		id := c.identity()
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		a, b := unique[i], unique[j]
		if a.Efficiency() != b.Efficiency() {
			return a.Efficiency() > b.Efficiency()
		}
		return a.Protein > b.Protein
	})

	return head(unique, maxResults)
}

// head returns at most the first n elements of s.
func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// span returns s[lo:hi] clamped to the bounds of s.
func span[T any](s []T, lo, hi int) []T {
	if hi > len(s) {
		hi = len(s)
	}
	if lo >= hi {
		return nil
	}
	return s[lo:hi]
}
