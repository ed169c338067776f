// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

func newTestCache(t *testing.T, now *time.Time) (*Cache, *FileStore) {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	c := New(store)
	c.Now = func() time.Time { return *now }
	return c, store
}

func TestCache_LoadSave(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.Local)
	c, _ := newTestCache(t, &now)

	key := NewKey("west-village", "lunch", now)
	_, ok := c.Load(ctx, key)
	assert.False(t, ok)

	items := []menu.Item{{Name: "Salmon", Calories: 280, Protein: 30, DiningHall: "West Village"}}
	require.NoError(t, c.Save(ctx, key, items))

	got, ok := c.Load(ctx, key)
	require.True(t, ok)
	assert.Equal(t, items, got)

	// Later in the same week still hits.
	now = now.Add(3 * 24 * time.Hour)
	_, ok = c.Load(ctx, key)
	assert.True(t, ok)

	// Seven days after writing, the entry is stale.
	now = time.Date(2026, 2, 18, 12, 0, 0, 0, time.Local)
	_, ok = c.Load(ctx, key)
	assert.False(t, ok)
}

func TestCache_EmptyMenuIsCached(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	c, _ := newTestCache(t, &now)

	key := NewKey("west-village", "dinner", now)
	require.NoError(t, c.Save(ctx, key, nil))

	got, ok := c.Load(ctx, key)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestCache_CorruptEntryMisses(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	c, store := newTestCache(t, &now)

	key := NewKey("west-village", "lunch", now)
	require.NoError(t, store.Write(ctx, key.Name(), []byte("{not json")))

	_, ok := c.Load(ctx, key)
	assert.False(t, ok)
}

func TestCache_Disabled(t *testing.T) {
	ctx := context.Background()
	c := Disabled()
	assert.False(t, c.Enabled())

	key := NewKey("west-village", "lunch", time.Now())
	assert.NoError(t, c.Save(ctx, key, []menu.Item{{Name: "x"}}))
	_, ok := c.Load(ctx, key)
	assert.False(t, ok)

	infos, err := c.Info(ctx)
	assert.NoError(t, err)
	assert.Empty(t, infos)

	n, err := c.Clear(ctx)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestCache_InfoClearPurge(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.Local)
	c, store := newTestCache(t, &now)

	old := NewKey("west-village", "lunch", now.AddDate(0, 0, -14))
	writtenAt := now
	now = now.AddDate(0, 0, -10)
	require.NoError(t, c.Save(ctx, old, []menu.Item{{Name: "Old"}}))
	now = writtenAt

	current := NewKey("west-village", "lunch", now)
	require.NoError(t, c.Save(ctx, current, []menu.Item{{Name: "A"}, {Name: "B"}}))
	require.NoError(t, store.Write(ctx, "garbage_lunch_2026-02-09.json", []byte("nope")))

	infos, err := c.Info(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2, "unreadable entries are skipped")

	byName := map[string]Info{}
	for _, i := range infos {
		byName[i.Name] = i
	}
	assert.False(t, byName[old.Name()].Fresh)
	assert.Equal(t, 10, byName[old.Name()].AgeDays(now))
	assert.True(t, byName[current.Name()].Fresh)
	assert.Equal(t, 2, byName[current.Name()].Items)
	assert.Equal(t, "west-village", byName[current.Name()].Key.Hall)

	removed, err := c.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed, "stale and unreadable entries are purged")

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{current.Name()}, names)

	removed, err = c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestInfoAgeDays(t *testing.T) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		written time.Time
		want    int
	}{
		{"just written", now, 0},
		{"under a day", now.Add(-23 * time.Hour), 0},
		{"a day and a bit", now.Add(-25 * time.Hour), 1},
		{"a week", now.Add(-7 * 24 * time.Hour), 7},
		{"an hour ahead", now.Add(time.Hour), -1},
		{"two days ahead", now.Add(47 * time.Hour), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Info{Timestamp: tt.written}.AgeDays(now))
		})
	}
}
