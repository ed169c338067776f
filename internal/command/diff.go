// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/AnirudhJM24/TechJacked/internal/differ"
	"github.com/AnirudhJM24/TechJacked/internal/menu"
	"github.com/AnirudhJM24/TechJacked/internal/meta"
)

const diffDefaultAttrs = "kind,name,dining_hall:hall,fields"

// DiffCommandAction is the action handler for the "diff" subcommand. It
// compares the --week menu against the --against menu.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(differ.Change{})) {
		return nil
	}

	al, err := BuildAttrs(cmd, diffDefaultAttrs)
	if err != nil {
		return err
	}

	req, err := ResolveMenuRequest(cmd)
	if err != nil {
		return err
	}
	against, err := menu.ParseWeekSpec(cmd.String("against"), m.Clock())
	if err != nil {
		return fmt.Errorf("invalid --against: %w", err)
	}

	newer, err := loadRequest(ctx, cmd, req)
	if err != nil {
		return fmt.Errorf("week of %s: %w", req.Week.Format(menu.DateLayout), err)
	}
	oldReq := req
	oldReq.Week = menu.WeekOf(against)
	older, err := loadRequest(ctx, cmd, oldReq)
	if err != nil {
		return fmt.Errorf("week of %s: %w", oldReq.Week.Format(menu.DateLayout), err)
	}

	d := differ.Weeks(older, newer)
	log.Debugf("%s vs %s: %s", oldReq.Week.Format(menu.DateLayout), req.Week.Format(menu.DateLayout), d.Summary())

	if cmd.Bool("ascii") {
		if d.Modified() {
			s, err := d.Format(cmd.Bool("color"))
			if err != nil {
				return fmt.Errorf("failed to format diff: %w", err)
			}
			fmt.Fprint(stdout(cmd), s)
		}
	} else if err := Emit(cmd, d.Changes, al); err != nil {
		return err
	}

	fmt.Fprintln(stderr(cmd), d.Summary())
	return nil
}

// DiffCommandBuilder constructs the cli.Command for "diff".
func DiffCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return &cli.Command{
		Name:      "diff",
		Usage:     "menu changes between two weeks",
		UsageText: `techjacked diff [--week spec] [--against spec] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append(append([]cli.Flag{
			&cli.StringFlag{
				Name:    "against",
				Aliases: []string{"A"},
				Usage:   "week to compare with: YYYY-MM-DD, ~N weeks ago or +N weeks ahead",
				Value:   "~1",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator, WeekValidator)
				},
			},
			&cli.BoolFlag{
				Name:  "ascii",
				Usage: "print the annotated JSON diff instead of a change list",
			},
		}, NewMenuFlags("diff", src)...), NewCacheFlags(src)...), NewGlobalFlags("diff", src)...),
		Action: DiffCommandAction,
	}
}
