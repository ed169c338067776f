// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
	"github.com/AnirudhJM24/TechJacked/internal/nutrislice"
)

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the attributes available to --attrs, --filter and --sort",
		HideDefault: true,
	}
}

// configSources chains the namespaced and plain config keys for a flag.
func configSources(ns, src, key string, envs ...string) cli.ValueSourceChain {
	var chain []cli.ValueSource
	for _, e := range envs {
		chain = append(chain, cli.EnvVar(e))
	}
	if ns != "" {
		chain = append(chain, yaml.YAML(ns+"."+key, altsrc.StringSourcer(src)))
	}
	chain = append(chain, yaml.YAML(key, altsrc.StringSourcer(src)))
	return cli.NewValueSourceChain(chain...)
}

// NewGlobalFlags returns the output flags shared by every listing command.
// ns is the command name and src the config file path.
func NewGlobalFlags(ns, src string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
			Sources: cli.NewValueSourceChain(yaml.YAML(ns+".attrs", altsrc.StringSourcer(src))),
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: configSources(ns, src, "color"),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Sources: configSources(ns, src, "output"),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(yaml.YAML(ns+".sort", altsrc.StringSourcer(src))),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: configSources(ns, src, "titles"),
			Value:   true,
		},
		newSchemaFlag(),
	}
}

// NewMenuFlags returns the flags that select which menus are loaded.
func NewMenuFlags(ns, src string) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "hall",
			Aliases: []string{"d"},
			Usage:   "dining hall slug or name, repeatable, or all",
			Sources: cli.EnvVars("TECHJACKED_HALL"),
		},
		&cli.StringFlag{
			Name:    "meal",
			Aliases: []string{"m"},
			Usage:   "meal type (lunch, dinner)",
			Sources: configSources(ns, src, "meal", "TECHJACKED_MEAL"),
			Value:   menu.Lunch,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, MealValidator)
			},
		},
		&cli.StringFlag{
			Name:    "week",
			Aliases: []string{"w"},
			Usage:   "week to load: YYYY-MM-DD, ~N weeks ago or +N weeks ahead",
			Validator: func(value string) error {
				return FlagValidators(value, WeekValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "refresh",
			Aliases: []string{"r"},
			Usage:   "ignore cached menus and fetch again",
			Sources: cli.EnvVars("TECHJACKED_REFRESH"),
		},
		&cli.StringFlag{
			Name:    "api-url",
			Usage:   "base URL of the menu API",
			Sources: configSources("", src, "api.url", "TECHJACKED_API_URL"),
			Value:   nutrislice.DefaultBaseURL,
		},
		&cli.DurationFlag{
			Name:    "api-timeout",
			Usage:   "timeout for each menu request",
			Sources: configSources("", src, "api.timeout", "TECHJACKED_API_TIMEOUT"),
			Value:   30 * time.Second,
		},
		&cli.IntFlag{
			Name:    "api-retries",
			Usage:   "retries for failed menu requests",
			Sources: configSources("", src, "api.retries", "TECHJACKED_API_RETRIES"),
			Value:   3,
		},
	}
}

// NewCacheFlags returns the flags that locate the cache.
func NewCacheFlags(src string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "cache-dir",
			Usage:   "directory holding cached menus",
			Sources: configSources("", src, "cache.dir"),
		},
		&cli.StringFlag{
			Name:    "cache-bucket",
			Usage:   "S3 bucket to cache menus in instead of a directory",
			Sources: configSources("", src, "cache.s3.bucket", "TECHJACKED_CACHE_BUCKET"),
		},
	}
}
