// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"errors"
	"time"

	"github.com/apex/log"

	"github.com/AnirudhJM24/TechJacked/internal/cache"
	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

// ErrNoMenus is returned when no selected hall produced any items.
var ErrNoMenus = errors.New("could not fetch menu data, please try again later")

// Fetcher downloads one weekly menu.
type Fetcher interface {
	FetchWeek(ctx context.Context, hall menu.Hall, meal string, date time.Time) ([]menu.Item, error)
}

// Loader serves weekly menus from the cache and falls back to the API.
type Loader struct {
	Cache   *cache.Cache
	Fetcher Fetcher
	// Refresh skips the cache read. Fetched menus are still saved.
	Refresh bool
}

// Result is the outcome of loading one hall.
type Result struct {
	Hall   menu.Hall
	Week   time.Time
	Items  []menu.Item
	Cached bool
	Err    error
}

// Load returns the menu for one hall and the week containing date.
func (l *Loader) Load(ctx context.Context, hall menu.Hall, meal string, date time.Time) Result {
	key := cache.NewKey(hall.Slug, meal, date)
	result := Result{Hall: hall, Week: key.Week}

	if !l.Refresh {
		if items, ok := l.Cache.Load(ctx, key); ok {
			result.Items = items
			result.Cached = true
			return result
		}
	}

	items, err := l.Fetcher.FetchWeek(ctx, hall, meal, date)
	if err != nil {
		result.Err = err
		return result
	}
	result.Items = items

	if err := l.Cache.Save(ctx, key, items); err != nil {
		log.WithError(err).Warnf("failed to write %s to cache", key)
	}

	return result
}

// LoadAll loads every hall in order. A hall that fails contributes no items;
// ErrNoMenus is returned only when nothing was loaded at all.
func (l *Loader) LoadAll(ctx context.Context, halls []menu.Hall, meal string, date time.Time) ([]menu.Item, []Result, error) {
	var (
		all     []menu.Item
		results = make([]Result, 0, len(halls))
	)

	for _, hall := range halls {
		r := l.Load(ctx, hall, meal, date)
		if r.Err != nil {
			log.WithError(r.Err).Errorf("error fetching menu from %s", hall.Slug)
		}
		all = append(all, r.Items...)
		results = append(results, r)
	}

	if len(all) == 0 {
		return nil, results, ErrNoMenus
	}
	return all, results, nil
}
