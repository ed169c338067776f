// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/AnirudhJM24/TechJacked/internal/meta"
	"github.com/AnirudhJM24/TechJacked/internal/optimizer"
	"github.com/AnirudhJM24/TechJacked/internal/tui"
)

// PickCommandAction is the action handler for the "pick" subcommand. It asks
// for the hall, meal and targets, then shows the matching combos as cards.
func PickCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("pick needs an interactive terminal; use combos instead")
	}

	model := tui.NewModel(NewRegistry().All(), tui.Selection{
		Meal:         cmd.String("meal"),
		ProteinGoal:  cmd.Float("protein"),
		CalorieLimit: cmd.Float("calories"),
	})

	sel, err := tui.Run(ctx, model)
	if errors.Is(err, tui.ErrCancelled) {
		fmt.Fprintln(stderr(cmd), "cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	log.Debugf("picked %d hall(s), %s, %.0fg under %.0f cal", len(sel.Halls), sel.Meal, sel.ProteinGoal, sel.CalorieLimit)

	week, err := ResolveWeek(cmd)
	if err != nil {
		return err
	}
	items, err := loadRequest(ctx, cmd, MenuRequest{Halls: sel.Halls, Meal: sel.Meal, Week: week})
	if err != nil {
		return err
	}

	p := optimizer.Params{ProteinGoal: sel.ProteinGoal, CalorieLimit: sel.CalorieLimit}
	if len(sel.Halls) == 1 {
		p.Hall = sel.Halls[0].Name
	}
	renderComboCards(cmd, optimizer.FindCombinations(items, p), p)
	return nil
}

// PickCommandBuilder constructs the cli.Command for "pick".
func PickCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	var flags []cli.Flag
	for _, f := range NewMenuFlags("pick", src) {
		// The picker chooses the halls itself.
		if f.Names()[0] != "hall" {
			flags = append(flags, f)
		}
	}
	for _, f := range CombosCommandFlags(src) {
		if f.Names()[0] != "detail" {
			flags = append(flags, f)
		}
	}
	flags = append(flags, NewCacheFlags(src)...)
	flags = append(flags, &cli.BoolWithInverseFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Sources: configSources("pick", src, "color"),
		Value:   true,
	})

	return &cli.Command{
		Name:      "pick",
		Usage:     "choose hall, meal and targets interactively, then show combos",
		UsageText: `techjacked pick [--week spec] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: PickCommandAction,
	}
}
