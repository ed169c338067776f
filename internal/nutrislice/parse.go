// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package nutrislice

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

// poundServing is the real weight of a serving the API labels as one pound.
const poundServing = 0.25

// ParseWeek extracts menu items from a weekly menu document. Menu entries
// with a null or missing food are section headers and are skipped. Missing
// nutrition values are zero.
func ParseWeek(doc []byte, hallName string) ([]menu.Item, error) {
	if !gjson.ValidBytes(doc) {
		return nil, errors.New("response is not valid JSON")
	}

	items := []menu.Item{}

	gjson.GetBytes(doc, "days").ForEach(func(_, day gjson.Result) bool {
		day.Get("menu_items").ForEach(func(_, entry gjson.Result) bool {
			food := entry.Get("food")
			if !food.IsObject() {
				return true
			}

			name := food.Get("name").String()
			if name == "" {
				name = "Unknown"
			}

			nutrition := food.Get("rounded_nutrition_info")
			items = append(items, menu.Item{
				Name:       name,
				Calories:   nutrition.Get("calories").Float(),
				Protein:    nutrition.Get("g_protein").Float(),
				Fat:        nutrition.Get("g_fat").Float(),
				Carbs:      nutrition.Get("g_carbs").Float(),
				Sodium:     nutrition.Get("mg_sodium").Float(),
				Serving:    servingString(food.Get("serving_size_info")),
				DiningHall: hallName,
			})
			return true
		})
		return true
	})

	return items, nil
}

// servingString renders "amount unit". Pound servings are really a quarter
// pound, so the amount is scaled when it is numeric.
func servingString(info gjson.Result) string {
	amount := info.Get("serving_size_amount").String()
	unit := info.Get("serving_size_unit").String()

	if amount != "" && strings.Contains(strings.ToLower(unit), "lb") {
		if f, err := strconv.ParseFloat(strings.TrimSpace(amount), 64); err == nil {
			amount = formatAmount(f * poundServing)
		}
	}

	return strings.TrimSpace(amount + " " + unit)
}

// formatAmount prints the shortest form of f, keeping one decimal for whole
// numbers so scaled amounts read as measurements ("1.0 lb").
func formatAmount(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
