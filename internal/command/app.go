// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/AnirudhJM24/TechJacked/internal/config"
	"github.com/AnirudhJM24/TechJacked/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the techjacked
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load(ns)
	if err != nil {
		log.Debugf("running without config: %v", err)
	}
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	return NewApp(meta), nil
}

// NewApp builds the root command and its subcommands around meta.
func NewApp(meta meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "techjacked",
		Usage: "protein-first meal planning for the dining halls",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "techjacked version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		ItemsCommandBuilder(meta),
		TopCommandBuilder(meta),
		CombosCommandBuilder(meta),
		StatsCommandBuilder(meta),
		DiffCommandBuilder(meta),
		CacheCommandBuilder(meta),
		PickCommandBuilder(meta),
		CompletionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	sortFlags(app.Commands)

	return app
}

func sortFlags(cmds []*cli.Command) {
	for _, cmd := range cmds {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
		sortFlags(cmd.Commands)
	}
}
