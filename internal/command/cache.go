// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/AnirudhJM24/TechJacked/internal/cache"
	"github.com/AnirudhJM24/TechJacked/internal/menu"
	"github.com/AnirudhJM24/TechJacked/internal/meta"
)

const cacheInfoDefaultAttrs = "name,items,size,age,fresh"

type cacheRow struct {
	Name      string `json:"name"`
	Hall      string `json:"hall"`
	Meal      string `json:"meal"`
	Week      string `json:"week"`
	Timestamp string `json:"timestamp"`
	Items     int    `json:"items"`
	Size      string `json:"size"`
	Bytes     int    `json:"bytes"`
	Age       string `json:"age"`
	AgeDays   int    `json:"age_days"`
	Fresh     bool   `json:"fresh"`
}

func newCacheRow(i cache.Info, now func() time.Time) cacheRow {
	row := cacheRow{
		Name:      i.Name,
		Hall:      i.Key.Hall,
		Meal:      i.Key.Meal,
		Timestamp: i.Timestamp.Format(time.RFC3339),
		Items:     i.Items,
		Size:      humanize.Bytes(uint64(i.Size)), //nolint:gosec
		Bytes:     i.Size,
		Age:       humanize.RelTime(i.Timestamp, now(), "ago", "from now"),
		AgeDays:   i.AgeDays(now()),
		Fresh:     i.Fresh,
	}
	if !i.Key.Week.IsZero() {
		row.Week = i.Key.Week.Format(menu.DateLayout)
	}
	return row
}

// CacheInfoCommandAction lists the cached menus.
func CacheInfoCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(cacheRow{})) {
		return nil
	}

	al, err := BuildAttrs(cmd, cacheInfoDefaultAttrs)
	if err != nil {
		return err
	}

	c, err := NewCache(ctx, cmd)
	if err != nil {
		return err
	}
	if !c.Enabled() {
		fmt.Fprintln(stderr(cmd), "cache is disabled")
		return nil
	}

	infos, err := c.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cache: %w", err)
	}

	rows := make([]cacheRow, 0, len(infos))
	for _, i := range infos {
		rows = append(rows, newCacheRow(i, m.Clock))
	}
	return Emit(cmd, rows, al)
}

// CacheClearCommandAction removes every cached menu.
func CacheClearCommandAction(ctx context.Context, cmd *cli.Command) error {
	return removeEntries(ctx, cmd, "cleared", (*cache.Cache).Clear)
}

// CachePurgeCommandAction removes stale and unreadable cached menus.
func CachePurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	return removeEntries(ctx, cmd, "purged", (*cache.Cache).Purge)
}

func removeEntries(ctx context.Context, cmd *cli.Command, verb string, fn func(*cache.Cache, context.Context) (int, error)) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args[1:])

	c, err := NewCache(ctx, cmd)
	if err != nil {
		return err
	}
	if !c.Enabled() {
		fmt.Fprintln(stderr(cmd), "cache is disabled")
		return nil
	}

	n, err := fn(c, ctx)
	if err != nil {
		return fmt.Errorf("failed to clean cache: %w", err)
	}
	fmt.Fprintf(stdout(cmd), "%s %d cache %s\n", verb, n, plural(n, "entry", "entries"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// CacheCommandBuilder constructs the cli.Command for "cache" and its
// maintenance subcommands.
func CacheCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	md := map[string]any{
		"meta": meta,
	}
	return &cli.Command{
		Name:      "cache",
		Usage:     "inspect and clean the menu cache",
		UsageText: `techjacked cache info|clear|purge [options]`,
		Metadata:  md,
		Commands: []*cli.Command{
			{
				Name:     "info",
				Usage:    "list cached menus with their age",
				Metadata: md,
				Flags:    append(NewCacheFlags(src), NewGlobalFlags("cache", src)...),
				Action:   CacheInfoCommandAction,
			},
			{
				Name:     "clear",
				Usage:    "remove every cached menu",
				Metadata: md,
				Flags:    NewCacheFlags(src),
				Action:   CacheClearCommandAction,
			},
			{
				Name:     "purge",
				Usage:    "remove stale and unreadable cached menus",
				Metadata: md,
				Flags:    NewCacheFlags(src),
				Action:   CachePurgeCommandAction,
			},
		},
	}
}
