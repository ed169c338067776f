// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
	"github.com/AnirudhJM24/TechJacked/internal/meta"
)

const itemsDefaultAttrs = "name,calories,protein,fat,carbs,sodium,serving,dining_hall:hall"

// itemRow is an item annotated with its category.
type itemRow struct {
	menu.Item
	Category   menu.Category `json:"category"`
	Efficiency float64       `json:"efficiency"`
}

// ItemsCommandAction is the action handler for the "items" subcommand. It
// lists the week's menu items for the selected halls and meal.
func ItemsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(itemRow{})) {
		return nil
	}

	attrs, err := BuildAttrs(cmd, itemsDefaultAttrs)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", attrs)

	items, _, err := LoadMenu(ctx, cmd)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	rows := make([]itemRow, 0, len(items))
	for _, item := range items {
		if cmd.Bool("unique") {
			if seen[item.Key()] {
				continue
			}
			seen[item.Key()] = true
		}
		rows = append(rows, itemRow{Item: item, Category: menu.Categorize(item), Efficiency: item.Efficiency()})
	}

	return Emit(cmd, rows, attrs)
}

// ItemsCommandBuilder constructs the cli.Command for "items".
func ItemsCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return &cli.Command{
		Name:      "items",
		Usage:     "list menu items",
		UsageText: `techjacked items [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append(append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "unique",
				Aliases: []string{"u"},
				Usage:   "list a dish served on several days once per hall",
			},
		}, NewMenuFlags("items", src)...), NewCacheFlags(src)...), NewGlobalFlags("items", src)...),
		Action: ItemsCommandAction,
	}
}
