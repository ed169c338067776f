// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package optimizer

import (
	"math"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// Macros is the share of calories, in percent, coming from each macro.
type Macros struct {
	Protein float64 `json:"protein_pct"`
	Carbs   float64 `json:"carbs_pct"`
	Fat     float64 `json:"fat_pct"`
}

// MacroSplit converts gram totals to calorie percentages. It reports false
// when the macros carry no calories at all.
func MacroSplit(protein, carbs, fat float64) (Macros, bool) {
	m, ok := macroShares(protein, carbs, fat)
	if !ok {
		return Macros{}, false
	}
	return Macros{Protein: m.Protein * 100, Carbs: m.Carbs * 100, Fat: m.Fat * 100}, true
}

// macroShares is the calorie split as fractions of one. Balance bands are
// compared against these unscaled values.
func macroShares(protein, carbs, fat float64) (Macros, bool) {
	pc := protein * kcalPerGramProtein
	cc := carbs * kcalPerGramCarbs
	fc := fat * kcalPerGramFat
	total := pc + cc + fc
	if total <= 0 {
		return Macros{}, false
	}
	return Macros{Protein: pc / total, Carbs: cc / total, Fat: fc / total}, true
}

// Breakdown is a meal score split into its components.
type Breakdown struct {
	Efficiency  float64 `json:"efficiency"`
	Precision   float64 `json:"precision"`
	Balance     float64 `json:"balance"`
	Composition float64 `json:"composition"`
}

// Total is the sum of the components.
func (b Breakdown) Total() float64 {
	return b.Efficiency + b.Precision + b.Balance + b.Composition
}

// Score rates a set of items against the targets. Sets that miss the protein
// goal or exceed the calorie limit score zero.
func Score(items []Candidate, p Params) Breakdown {
	var protein, calories, fat, carbs float64
	for _, i := range items {
		protein += i.Protein
		calories += i.Calories
		fat += i.Fat
		carbs += i.Carbs
	}
	if len(items) == 0 || protein < p.ProteinGoal || calories > p.CalorieLimit {
		return Breakdown{}
	}

	var b Breakdown

	eff := protein / math.Max(calories, 1)
	b.Efficiency = math.Min(eff*80, 40)

	excess := protein - p.ProteinGoal
	usage := 0.0
	if p.CalorieLimit > 0 {
		usage = calories / p.CalorieLimit
	}
	b.Precision = math.Max(0, 10-excess*0.3) + usage*10

	if m, ok := macroShares(protein, carbs, fat); ok {
		b.Balance = bandScore(m.Protein, 0.25, 0.35, 10, 0.20, 0.40, 5) +
			bandScore(m.Carbs, 0.40, 0.55, 10, 0.30, 0.65, 5) +
			bandScore(m.Fat, 0.20, 0.30, 5, 0.15, 0.40, 2)
	}

	cats := make(map[menu.Category]bool)
	for _, i := range items {
		cats[i.Category] = true
	}
	var comp float64
	if cats[menu.Protein] {
		comp += 7
	}
	if cats[menu.Vegetable] || cats[menu.Fruit] {
		comp += 5
	}
	if cats[menu.Carb] {
		comp += 2
	}
	comp += math.Min(float64(len(cats)), 3)
	b.Composition = math.Min(comp, 15)

	return b
}

// Score rates the combo against p.
func (c Combo) Score(p Params) Breakdown {
	return Score(c.Items, p)
}

// bandScore awards full points inside [lo, hi], partial points inside the
// wider [wlo, whi], and nothing outside.
func bandScore(v, lo, hi, full, wlo, whi, partial float64) float64 {
	switch {
	case v >= lo && v <= hi:
		return full
	case v >= wlo && v <= whi:
		return partial
	}
	return 0
}
