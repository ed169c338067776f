// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
	"github.com/AnirudhJM24/TechJacked/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if s, ok := value.(string); ok && strings.HasPrefix(s, "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func MealValidator(value any) error {
	_, err := menu.ParseMealType(value.(string))
	return err
}

func WeekValidator(value any) error {
	_, err := menu.ParseWeekSpec(value.(string), time.Now())
	return err
}

func PositiveValidator(value any) error {
	var v float64
	switch n := value.(type) {
	case float64:
		v = n
	case int:
		v = float64(n)
	default:
		return fmt.Errorf("not a number: %v", value)
	}
	if v <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}
