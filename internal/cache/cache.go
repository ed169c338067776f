// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/apex/log"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

// TTL is how long a weekly menu is served from the cache.
const TTL = 7 * 24 * time.Hour

// Cache applies the TTL on top of a Store. A Cache with a nil Store is
// disabled: every load misses and saves are dropped.
type Cache struct {
	Store Store
	TTL   time.Duration
	Now   func() time.Time
}

// New returns a cache over store with the standard TTL.
func New(store Store) *Cache {
	return &Cache{Store: store, TTL: TTL, Now: time.Now}
}

// Disabled returns a cache that never hits.
func Disabled() *Cache {
	return New(nil)
}

// Enabled reports whether the cache has a backing store.
func (c *Cache) Enabled() bool {
	return c != nil && c.Store != nil
}

func (c *Cache) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Cache) ttl() time.Duration {
	if c.TTL <= 0 {
		return TTL
	}
	return c.TTL
}

// Load returns the cached items for key when a fresh entry exists. Unreadable
// and stale entries are misses.
func (c *Cache) Load(ctx context.Context, key Key) ([]menu.Item, bool) {
	if !c.Enabled() {
		return nil, false
	}

	data, err := c.Store.Read(ctx, key.Name())
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithError(err).Warnf("failed to read cache entry %s", key)
		}
		return nil, false
	}

	entry, err := Decode(data)
	if err != nil {
		log.WithError(err).Debugf("ignoring cache entry %s", key)
		return nil, false
	}

	if !entry.Fresh(c.now(), c.ttl()) {
		log.Debugf("cache entry %s is stale (%s)", key, entry.Timestamp)
		return nil, false
	}

	log.Debugf("cache hit: %s", key)
	return entry.MenuItems, true
}

// Save stores items for key stamped with the current time.
func (c *Cache) Save(ctx context.Context, key Key, items []menu.Item) error {
	if !c.Enabled() {
		return nil
	}

	data, err := (&Entry{Timestamp: c.now(), MenuItems: items}).Encode()
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return c.Store.Write(ctx, key.Name(), data)
}

// Info describes one readable cache entry.
type Info struct {
	Name      string
	Key       Key
	Timestamp time.Time
	Items     int
	Size      int
	Fresh     bool
}

// AgeDays is the whole number of days since the entry was written, rounded
// down. Entries stamped in the future have a negative age.
func (i Info) AgeDays(now time.Time) int {
	return int(math.Floor(now.Sub(i.Timestamp).Hours() / 24)) //nolint:mnd
}

// Info lists the readable entries. Entries that fail to decode are skipped.
func (c *Cache) Info(ctx context.Context) ([]Info, error) {
	if !c.Enabled() {
		return nil, nil
	}

	names, err := c.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	now := c.now()
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		data, err := c.Store.Read(ctx, name)
		if err != nil {
			continue
		}
		entry, err := Decode(data)
		if err != nil {
			continue
		}
		key, _ := ParseName(name)
		infos = append(infos, Info{
			Name:      name,
			Key:       key,
			Timestamp: entry.Timestamp,
			Items:     len(entry.MenuItems),
			Size:      len(data),
			Fresh:     entry.Fresh(now, c.ttl()),
		})
	}
	return infos, nil
}

// Clear removes every entry and returns how many were removed.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	return c.remove(ctx, func(string, []byte) bool { return true })
}

// Purge removes stale and unreadable entries and returns how many were
// removed.
func (c *Cache) Purge(ctx context.Context) (int, error) {
	now := c.now()
	return c.remove(ctx, func(name string, data []byte) bool {
		entry, err := Decode(data)
		return err != nil || !entry.Fresh(now, c.ttl())
	})
}

func (c *Cache) remove(ctx context.Context, match func(name string, data []byte) bool) (int, error) {
	if !c.Enabled() {
		return 0, nil
	}

	names, err := c.Store.List(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, name := range names {
		data, err := c.Store.Read(ctx, name)
		if err != nil && !errors.Is(err, ErrNotFound) {
			log.WithError(err).Warnf("failed to read cache entry %s", name)
			continue
		}
		if !match(name, data) {
			continue
		}
		if err := c.Store.Remove(ctx, name); err != nil {
			log.WithError(err).Warnf("failed to remove cache entry %s", name)
			continue
		}
		log.Debugf("removed cache entry %s", name)
		removed++
	}
	return removed, nil
}
