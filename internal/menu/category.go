// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package menu

import "strings"

// Category is the coarse food group used to compose meals.
type Category string

const (
	Protein   Category = "protein"
	Carb      Category = "carb"
	Vegetable Category = "vegetable"
	Fruit     Category = "fruit"
	Other     Category = "other"
)

// Categories in display order.
var Categories = []Category{Protein, Carb, Vegetable, Fruit, Other}

// Title is the capitalized category name.
func (c Category) Title() string {
	if c == "" {
		return "Other"
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Emoji is the glyph shown next to items of this category.
func (c Category) Emoji() string {
	switch c {
	case Protein:
		return "🍗"
	case Carb:
		return "🍚"
	case Vegetable:
		return "🥦"
	case Fruit:
		return "🍎"
	default:
		return "🍴"
	}
}

var (
	proteinKeywords = []string{
		"chicken", "beef", "pork", "fish", "salmon", "tuna", "turkey", "duck",
		"tofu", "tempeh", "seitan", "egg", "shrimp", "steak", "patty", "sausage",
		"bacon", "ham", "lamb", "tilapia", "cod", "halibut", "edamame", "beans",
	}

	carbKeywords = []string{
		"rice", "pasta", "bread", "potato", "fries", "noodle", "quinoa", "couscous",
		"tortilla", "bun", "roll", "bagel", "cereal", "oat", "waffle", "pancake",
		"muffin", "biscuit", "mac", "macaroni", "spaghetti", "penne", "linguine",
	}

	vegetableKeywords = []string{
		"broccoli", "salad", "lettuce", "spinach", "kale", "carrot", "broccolini",
		"tomato", "cucumber", "pepper", "green beans", "corn", "peas", "mushroom",
		"vegetable", "greens", "cabbage", "cauliflower", "asparagus", "zucchini",
		"squash", "brussels", "bok choy", "celery", "onion", "eggplant",
	}

	fruitKeywords = []string{
		"apple", "banana", "orange", "berry", "strawberry", "blueberry", "melon",
		"grape", "pineapple", "mango", "peach", "pear", "fruit", "watermelon",
	}
)

// Categorize classifies an item by keywords in its name, checked in the order
// protein, vegetable, fruit, carb. Names without a keyword fall back to the
// nutrition numbers.
func Categorize(item Item) Category {
	name := strings.ToLower(item.Name)

	for _, group := range []struct {
		category Category
		keywords []string
	}{
		{Protein, proteinKeywords},
		{Vegetable, vegetableKeywords},
		{Fruit, fruitKeywords},
		{Carb, carbKeywords},
	} {
		for _, k := range group.keywords {
			if strings.Contains(name, k) {
				return group.category
			}
		}
	}

	switch {
	case item.Protein >= 15:
		return Protein
	case item.Carbs >= 25 && item.Protein < 8:
		return Carb
	case item.Calories < 50 && item.Carbs < 15:
		return Vegetable
	}

	return Other
}
