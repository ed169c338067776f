// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirAndEnabled(t *testing.T) {
	t.Setenv("TECHJACKED_CACHE_DIR", "/tmp/somewhere")
	dir, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, "/tmp/somewhere", dir)

	for value, want := range map[string]bool{"": true, "1": true, "0": false, "false": false} {
		t.Setenv("TECHJACKED_CACHE", value)
		assert.Equal(t, want, Enabled(), "TECHJACKED_CACHE=%q", value)
	}
}

func TestEnsureBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "cache")
	t.Setenv("TECHJACKED_CACHE_DIR", base)
	t.Setenv("TECHJACKED_CACHE", "")

	got, ok, err := EnsureBaseDir()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, base, got)
	assert.DirExists(t, base)

	t.Setenv("TECHJACKED_CACHE", "false")
	_, ok, err = EnsureBaseDir()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names, "missing directory is an empty cache")

	_, err = s.Read(ctx, "west-village_lunch_2026-02-09.json")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Write(ctx, "west-village_lunch_2026-02-09.json", []byte(`{"a":1}`)))
	require.NoError(t, s.Write(ctx, "north-ave-dining-hall_lunch_2026-02-09.json", []byte(`{"b":2}`)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	b, err := s.Read(ctx, "west-village_lunch_2026-02-09.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(b))

	info, err := os.Stat(filepath.Join(dir, "west-village_lunch_2026-02-09.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	names, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"north-ave-dining-hall_lunch_2026-02-09.json",
		"west-village_lunch_2026-02-09.json",
	}, names)

	require.NoError(t, s.Remove(ctx, "west-village_lunch_2026-02-09.json"))
	require.NoError(t, s.Remove(ctx, "west-village_lunch_2026-02-09.json"), "removing twice is fine")

	names, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"north-ave-dining-hall_lunch_2026-02-09.json"}, names)

	assert.Error(t, s.Write(ctx, "../escape.json", nil))
	assert.Equal(t, dir, s.String())
}
