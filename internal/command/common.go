// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/AnirudhJM24/TechJacked/internal/attrs"
	awsutil "github.com/AnirudhJM24/TechJacked/internal/aws"
	"github.com/AnirudhJM24/TechJacked/internal/cache"
	"github.com/AnirudhJM24/TechJacked/internal/config"
	"github.com/AnirudhJM24/TechJacked/internal/loader"
	"github.com/AnirudhJM24/TechJacked/internal/menu"
	"github.com/AnirudhJM24/TechJacked/internal/meta"
	"github.com/AnirudhJM24/TechJacked/internal/nutrislice"
	"github.com/AnirudhJM24/TechJacked/internal/output"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	al.SetGlobalTransformSpec()
	return al, nil
}

// stdout is where command results go.
func stdout(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// stderr is where progress and warnings go.
func stderr(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}
	return os.Stderr
}

// DumpSchemaIfRequested prints the attribute keys of t when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(stdout(cmd), t)
		return true
	}
	return false
}

// Emit marshals rows and passes them to the common output routine.
func Emit(cmd *cli.Command, rows any, al attrs.AttrList) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if string(raw) == "null" {
		raw = []byte("[]")
	}
	return output.SliceDiceSpit(raw, al, output.OptionsFrom(cmd), stdout(cmd))
}

// NewRegistry returns the dining halls known to the built-in list and the
// halls config map.
func NewRegistry() *menu.Registry {
	extra, err := config.GetStringMap("halls")
	if err != nil {
		log.Debugf("no extra halls configured: %v", err)
	}
	return menu.NewRegistry(extra)
}

// ResolveHalls turns --hall, or the hall config key, into halls. Nothing
// selected means every hall.
func ResolveHalls(cmd *cli.Command, reg *menu.Registry) ([]menu.Hall, error) {
	specs := cmd.StringSlice("hall")
	if len(specs) == 0 {
		specs, _ = config.GetStringSlice("hall")
	}
	return reg.Resolve(specs)
}

// ResolveWeek parses --week relative to the meta clock.
func ResolveWeek(cmd *cli.Command) (time.Time, error) {
	return menu.ParseWeekSpec(cmd.String("week"), GetMeta(cmd).Clock())
}

// NewCache opens the cache selected by --cache-bucket or --cache-dir. It is
// disabled when TECHJACKED_CACHE is 0 or false.
func NewCache(ctx context.Context, cmd *cli.Command) (*cache.Cache, error) {
	if !cache.Enabled() {
		log.Debug("cache disabled")
		return cache.Disabled(), nil
	}

	c, err := newCacheStore(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if now := GetMeta(cmd).Now; now != nil {
		c.Now = now
	}
	return c, nil
}

func newCacheStore(ctx context.Context, cmd *cli.Command) (*cache.Cache, error) {
	if bucket := cmd.String("cache-bucket"); bucket != "" {
		region, _ := config.GetString("cache.s3.region", "")
		profile, _ := config.GetString("cache.s3.profile", "")
		endpoint, _ := config.GetString("cache.s3.endpoint", "")
		prefix, _ := config.GetString("cache.s3.prefix", "techjacked")

		cfg, err := awsutil.LoadAWSConfig(ctx, awsutil.WithRegion(region), awsutil.WithProfile(profile))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		store := &cache.S3Store{
			Client: awsutil.NewS3(cfg, endpoint),
			Bucket: bucket,
			Prefix: strings.Trim(prefix, "/"),
		}
		log.Debugf("cache: %s", store)
		return cache.New(store), nil
	}

	dir := cmd.String("cache-dir")
	if dir == "" {
		var ok bool
		if dir, ok = cache.Dir(); !ok {
			log.Warn("no cache directory available, caching disabled")
			return cache.Disabled(), nil
		}
	}
	store, err := cache.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	log.Debugf("cache: %s", store)
	return cache.New(store), nil
}

// NewFetcher returns the API client configured by the menu flags.
func NewFetcher(cmd *cli.Command) *nutrislice.Client {
	return nutrislice.NewClient(
		nutrislice.WithBaseURL(cmd.String("api-url")),
		nutrislice.WithTimeout(cmd.Duration("api-timeout")),
		nutrislice.WithRetryMax(cmd.Int("api-retries")),
	)
}

// NewLoader builds the cache-then-API loader for a menu command.
func NewLoader(ctx context.Context, cmd *cli.Command) (*loader.Loader, error) {
	c, err := NewCache(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &loader.Loader{
		Cache:   c,
		Fetcher: NewFetcher(cmd),
		Refresh: cmd.Bool("refresh"),
	}, nil
}

// MenuRequest is a resolved set of menu flags.
type MenuRequest struct {
	Halls []menu.Hall
	Meal  string
	Week  time.Time
}

// ResolveMenuRequest reads --hall, --meal and --week.
func ResolveMenuRequest(cmd *cli.Command) (MenuRequest, error) {
	halls, err := ResolveHalls(cmd, NewRegistry())
	if err != nil {
		return MenuRequest{}, err
	}
	meal, err := menu.ParseMealType(cmd.String("meal"))
	if err != nil {
		return MenuRequest{}, err
	}
	week, err := ResolveWeek(cmd)
	if err != nil {
		return MenuRequest{}, err
	}
	return MenuRequest{Halls: halls, Meal: meal, Week: menu.WeekOf(week)}, nil
}

// LoadMenu resolves the menu flags and loads the matching items.
func LoadMenu(ctx context.Context, cmd *cli.Command) ([]menu.Item, MenuRequest, error) {
	req, err := ResolveMenuRequest(cmd)
	if err != nil {
		return nil, req, err
	}
	items, err := loadRequest(ctx, cmd, req)
	return items, req, err
}

func loadRequest(ctx context.Context, cmd *cli.Command, req MenuRequest) ([]menu.Item, error) {
	l, err := NewLoader(ctx, cmd)
	if err != nil {
		return nil, err
	}

	items, results, err := l.LoadAll(ctx, req.Halls, req.Meal, req.Week)
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(stderr(cmd), "warning: %s: %v\n", r.Hall.Name, r.Err)
		case r.Cached:
			log.Debugf("%s: %d items from cache", r.Hall.Name, len(r.Items))
		default:
			log.Debugf("%s: fetched %d items", r.Hall.Name, len(r.Items))
		}
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}
