// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/AnirudhJM24/TechJacked/internal/attrs"
	"github.com/AnirudhJM24/TechJacked/internal/menu"
	"github.com/AnirudhJM24/TechJacked/internal/meta"
	"github.com/AnirudhJM24/TechJacked/internal/optimizer"
	"github.com/AnirudhJM24/TechJacked/internal/output"
)

const (
	combosDefaultAttrs = "rank,names:items,protein,calories,efficiency::%3,score::%1"

	defaultProteinGoal  = 40
	defaultCalorieLimit = 600
)

type comboItem struct {
	menu.Item
	Category menu.Category `json:"category"`
}

type comboRow struct {
	Rank       int                 `json:"rank"`
	Names      string              `json:"names"`
	Items      []comboItem         `json:"items"`
	Protein    float64             `json:"protein"`
	Calories   float64             `json:"calories"`
	Fat        float64             `json:"fat"`
	Carbs      float64             `json:"carbs"`
	Efficiency float64             `json:"efficiency"`
	Score      float64             `json:"score"`
	Breakdown  optimizer.Breakdown `json:"breakdown"`
	Macros     *optimizer.Macros   `json:"macros,omitempty"`
	Strategy   int                 `json:"strategy"`
	Halls      string              `json:"halls"`
}

func newComboRow(rank int, c optimizer.Combo, p optimizer.Params) comboRow {
	row := comboRow{
		Rank:       rank,
		Names:      strings.Join(c.Names(), " + "),
		Protein:    c.Protein,
		Calories:   c.Calories,
		Fat:        c.Fat(),
		Carbs:      c.Carbs(),
		Efficiency: c.Efficiency(),
		Breakdown:  c.Score(p),
		Strategy:   c.Strategy,
	}
	row.Score = row.Breakdown.Total()
	if m, ok := c.Macros(); ok {
		row.Macros = &m
	}

	var halls []string
	for _, i := range c.Items {
		row.Items = append(row.Items, comboItem{Item: i.Item, Category: i.Category})
		if !slices.Contains(halls, i.DiningHall) {
			halls = append(halls, i.DiningHall)
		}
	}
	row.Halls = strings.Join(halls, ", ")
	return row
}

// comboParams reads the targets, restricting the search to a hall when
// exactly one was selected.
func comboParams(cmd *cli.Command, halls []menu.Hall) optimizer.Params {
	p := optimizer.Params{
		ProteinGoal:  cmd.Float("protein"),
		CalorieLimit: cmd.Float("calories"),
	}
	if len(halls) == 1 {
		p.Hall = halls[0].Name
	}
	return p
}

// CombosCommandAction is the action handler for the "combos" subcommand. It
// searches the week's items for combinations that reach the protein goal
// within the calorie limit.
func CombosCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(comboRow{})) {
		return nil
	}

	al, err := BuildAttrs(cmd, combosDefaultAttrs)
	if err != nil {
		return err
	}

	items, req, err := LoadMenu(ctx, cmd)
	if err != nil {
		return err
	}

	return emitCombos(cmd, items, comboParams(cmd, req.Halls), al)
}

func emitCombos(cmd *cli.Command, items []menu.Item, p optimizer.Params, al attrs.AttrList) error {
	log.Debugf("searching %d items for %.0fg protein under %.0f cal", len(items), p.ProteinGoal, p.CalorieLimit)
	combos := optimizer.FindCombinations(items, p)

	if cmd.Bool("detail") {
		renderComboCards(cmd, combos, p)
		return nil
	}

	rows := make([]comboRow, 0, len(combos))
	for i, c := range combos {
		rows = append(rows, newComboRow(i+1, c, p))
	}
	return Emit(cmd, rows, al)
}

// renderComboCards writes the combos as one card per option.
func renderComboCards(cmd *cli.Command, combos []optimizer.Combo, p optimizer.Params) {
	w := stdout(cmd)
	if len(combos) == 0 {
		fmt.Fprintln(w, "No combinations found that meet your criteria.")
		fmt.Fprintln(w, "Try adjusting your protein goal or calorie limit.")
		return
	}

	fmt.Fprintf(w, "Found %d meal combination(s) for %gg protein under %g cal:\n\n", len(combos), p.ProteinGoal, p.CalorieLimit)

	cards := make([]output.Card, 0, len(combos))
	for i, c := range combos {
		card := output.Card{
			Title: fmt.Sprintf("Option %d: %.1fg protein, %.0f cal (%.3fg/cal, score %.1f)",
				i+1, c.Protein, c.Calories, c.Efficiency(), c.Score(p).Total()),
		}
		for _, item := range c.Items {
			card.Lines = append(card.Lines,
				fmt.Sprintf("%s %s (%s)", item.Category.Emoji(), item.Name, item.Category.Title()),
				fmt.Sprintf("   [%s] %s", item.DiningHall, item.Serving),
				fmt.Sprintf("   %.1fg protein, %.0f cal, %.1fg fat, %.1fg carbs", item.Protein, item.Calories, item.Fat, item.Carbs),
			)
		}
		if m, ok := c.Macros(); ok {
			card.Footer = fmt.Sprintf("Macros: %.0f%% protein, %.0f%% carbs, %.0f%% fat", m.Protein, m.Carbs, m.Fat)
		}
		cards = append(cards, card)
	}
	output.RenderCards(w, cards, cmd.Bool("color"))
}

// CombosCommandFlags are the search targets, shared with pick.
func CombosCommandFlags(src string) []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:    "protein",
			Aliases: []string{"p"},
			Usage:   "minimum grams of protein",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("combos.protein", altsrc.StringSourcer(src)),
			),
			Value: defaultProteinGoal,
			Validator: func(v float64) error {
				return FlagValidators(v, PositiveValidator)
			},
		},
		&cli.FloatFlag{
			Name:    "calories",
			Aliases: []string{"k"},
			Usage:   "maximum calories",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("combos.calories", altsrc.StringSourcer(src)),
			),
			Value: defaultCalorieLimit,
			Validator: func(v float64) error {
				return FlagValidators(v, PositiveValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "detail",
			Aliases: []string{"D"},
			Usage:   "show each option as a card with per-item nutrition",
		},
	}
}

// CombosCommandBuilder constructs the cli.Command for "combos".
func CombosCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return &cli.Command{
		Name:      "combos",
		Usage:     "meal combinations that meet a protein goal within a calorie limit",
		UsageText: `techjacked combos [--protein g] [--calories cal] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append(append(CombosCommandFlags(src),
			NewMenuFlags("combos", src)...), NewCacheFlags(src)...), NewGlobalFlags("combos", src)...),
		Action: CombosCommandAction,
	}
}
