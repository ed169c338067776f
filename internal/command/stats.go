// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/AnirudhJM24/TechJacked/internal/meta"
	"github.com/AnirudhJM24/TechJacked/internal/optimizer"
)

const (
	statsDefaultAttrs     = "category,count,percent::%1"
	statsItemDefaultAttrs = "rank,name,protein,calories,category,dining_hall:hall"
)

// Stats views.
const (
	viewCategories = "categories"
	viewProtein    = "protein"
	viewSolo       = "solo"
)

var statsViews = []string{viewCategories, viewProtein, viewSolo}

// rankRows numbers candidates from 1.
func rankRows(cs []optimizer.Candidate) []topRow {
	rows := make([]topRow, 0, len(cs))
	for i, c := range cs {
		rows = append(rows, topRow{Rank: i + 1, Item: c.Item, Category: c.Category, Efficiency: c.Efficiency})
	}
	return rows
}

// StatsCommandAction is the action handler for the "stats" subcommand. By
// default it shows how the week's items fall into food categories. The
// protein view lists the items with the most protein and the solo view the
// items that meet --protein within --calories alone.
func StatsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	view := cmd.String("view")
	schema := reflect.TypeOf(optimizer.CategoryCount{})
	defaults := statsDefaultAttrs
	if view != viewCategories {
		schema = reflect.TypeOf(topRow{})
		defaults = statsItemDefaultAttrs
	}

	if DumpSchemaIfRequested(cmd, schema) {
		return nil
	}

	attrs, err := BuildAttrs(cmd, defaults)
	if err != nil {
		return err
	}

	items, _, err := LoadMenu(ctx, cmd)
	if err != nil {
		return err
	}

	switch view {
	case viewProtein:
		return Emit(cmd, rankRows(optimizer.ByProtein(items, cmd.Int("count"))), attrs)
	case viewSolo:
		p := optimizer.Params{ProteinGoal: cmd.Float("protein"), CalorieLimit: cmd.Float("calories")}
		return Emit(cmd, rankRows(optimizer.SoloMeals(items, p, cmd.Int("count"))), attrs)
	default:
		return Emit(cmd, optimizer.Stats(items), attrs)
	}
}

// StatsCommandBuilder constructs the cli.Command for "stats".
func StatsCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "view",
			Aliases: []string{"V"},
			Usage:   "what to show (categories, protein, solo)",
			Value:   viewCategories,
			Validator: func(value string) error {
				if !slices.Contains(statsViews, value) {
					return fmt.Errorf("must be one of %v", statsViews)
				}
				return nil
			},
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "number of items for the protein and solo views",
			Validator: func(v int) error {
				if v < 0 {
					return fmt.Errorf("must not be negative")
				}
				return nil
			},
		},
	}
	for _, f := range CombosCommandFlags(src) {
		if f.Names()[0] != "detail" {
			flags = append(flags, f)
		}
	}

	return &cli.Command{
		Name:      "stats",
		Usage:     "category distribution and standout items of the menu",
		UsageText: `techjacked stats [--view categories|protein|solo] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append(append(append(flags, NewMenuFlags("stats", src)...), NewCacheFlags(src)...), NewGlobalFlags("stats", src)...),
		Action: StatsCommandAction,
	}
}
