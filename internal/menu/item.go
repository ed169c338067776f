// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package menu

import (
	"fmt"
	"math"
	"strings"
)

// Item is a single food offered by a dining hall. The JSON names are the cache
// file schema and must not change.
type Item struct {
	Name       string  `json:"name"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Fat        float64 `json:"fat"`
	Carbs      float64 `json:"carbs"`
	Sodium     float64 `json:"sodium"`
	Serving    string  `json:"serving"`
	DiningHall string  `json:"dining_hall"`
}

// Efficiency is grams of protein per calorie. Calories below one are clamped
// so zero-calorie items do not divide by zero.
func (i Item) Efficiency() float64 {
	return i.Protein / math.Max(i.Calories, 1)
}

// Key identifies an item across the days of a week.
func (i Item) Key() string {
	return i.Name + "|" + i.DiningHall
}

func (i Item) String() string {
	return fmt.Sprintf("%s [%s] %.1fg protein, %.0f cal", i.Name, i.DiningHall, i.Protein, i.Calories)
}

// Meal types served by the API.
const (
	Lunch  = "lunch"
	Dinner = "dinner"
)

// MealTypes lists the supported meal types in display order.
var MealTypes = []string{Lunch, Dinner}

// ParseMealType normalizes and validates a meal type.
func ParseMealType(s string) (string, error) {
	m := strings.ToLower(strings.TrimSpace(s))
	for _, mt := range MealTypes {
		if m == mt {
			return m, nil
		}
	}
	return "", fmt.Errorf("unsupported meal type %q, must be one of %v", s, MealTypes)
}
