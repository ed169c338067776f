// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
	"github.com/AnirudhJM24/TechJacked/internal/meta"
	"github.com/AnirudhJM24/TechJacked/internal/optimizer"
)

const topDefaultAttrs = "rank,name,protein,calories,efficiency::%3,category,dining_hall:hall"

type topRow struct {
	Rank int `json:"rank"`
	menu.Item
	Category   menu.Category `json:"category"`
	Efficiency float64       `json:"efficiency"`
}

// TopCommandAction is the action handler for the "top" subcommand. It ranks
// items with at least 12g of protein by protein per calorie.
func TopCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(topRow{})) {
		return nil
	}

	attrs, err := BuildAttrs(cmd, topDefaultAttrs)
	if err != nil {
		return err
	}

	items, _, err := LoadMenu(ctx, cmd)
	if err != nil {
		return err
	}

	return Emit(cmd, rankRows(optimizer.TopItems(items, cmd.Int("count"))), attrs)
}

// TopCommandBuilder constructs the cli.Command for "top".
func TopCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return &cli.Command{
		Name:      "top",
		Usage:     "most protein-efficient items",
		UsageText: `techjacked top [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append(append([]cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "number of items to show",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("top.count", altsrc.StringSourcer(src)),
				),
				Value: optimizer.DefaultTopN,
				Validator: func(v int) error {
					return FlagValidators(v, PositiveValidator)
				},
			},
		}, NewMenuFlags("top", src)...), NewCacheFlags(src)...), NewGlobalFlags("top", src)...),
		Action: TopCommandAction,
	}
}
