// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnirudhJM24/TechJacked/internal/config"
	"github.com/AnirudhJM24/TechJacked/internal/meta"
)

var testNow = time.Date(2026, 2, 11, 12, 0, 0, 0, time.Local)

// menuServer serves the current week at .../2026/02/09/ and the prior week at
// .../2026/02/02/ for west-village lunch. Everything else is a 404.
func menuServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()

	current, err := os.ReadFile(filepath.Join("testdata", "week.json"))
	require.NoError(t, err)
	prior, err := os.ReadFile(filepath.Join("testdata", "prior_week.json"))
	require.NoError(t, err)

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if !strings.Contains(r.URL.Path, "/west-village/menu-type/lunch/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/2026/02/09/"):
			_, _ = w.Write(current)
		case strings.HasSuffix(r.URL.Path, "/2026/02/02/"):
			_, _ = w.Write(prior)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

type harness struct {
	srv      *httptest.Server
	hits     *int32
	cacheDir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("TECHJACKED_CACHE", "")
	t.Setenv("TECHJACKED_HALL", "")
	os.Unsetenv("TECHJACKED_HALL")
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	srv, hits := menuServer(t)
	return &harness{srv: srv, hits: hits, cacheDir: t.TempDir()}
}

// run executes the app with the test server and cache directory appended to
// menu commands.
func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	full := append([]string{"techjacked"}, args...)
	if len(args) > 0 && args[0] != "cache" && args[0] != "completion" {
		full = append(full, "--api-url", h.srv.URL, "--api-retries", "0")
	}
	if len(args) > 0 && args[0] != "completion" {
		full = append(full, "--cache-dir", h.cacheDir)
	}

	app := NewApp(meta.Meta{
		Args:    full,
		Context: context.Background(),
		Now:     func() time.Time { return testNow },
	})
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut

	err := app.Run(context.Background(), full)
	return out.String(), errOut.String(), err
}

func decodeRows(t *testing.T, s string) []map[string]any {
	t.Helper()
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &rows), s)
	return rows
}

func TestItemsCommand(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "items", "--hall", "west-village", "-o", "json")
	require.NoError(t, err)
	rows := decodeRows(t, out)
	require.Len(t, rows, 7)
	assert.Equal(t, "Grilled Chicken Breast", rows[0]["name"])
	assert.Equal(t, "West Village", rows[0]["hall"])
	assert.Equal(t, "1 each", rows[0]["serving"])
	assert.Equal(t, float64(40), rows[0]["protein"])

	out, _, err = h.run(t, "items", "--hall", "west-village", "--unique", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, decodeRows(t, out), 6)

	// Served from the cache the second time.
	assert.Equal(t, int32(1), atomic.LoadInt32(h.hits))
}

func TestItemsCommand_FilterSortAttrs(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "items", "--hall", "west-village", "-u",
		"-a", "!serving,!sodium,!fat,!carbs,!hall", "-f", "protein>10", "-s", "-protein", "-o", "json")
	require.NoError(t, err)
	rows := decodeRows(t, out)
	require.Len(t, rows, 3)
	assert.Equal(t, []any{"Grilled Chicken Breast", "Turkey Burger", "Ice Cream Sundae"},
		[]any{rows[0]["name"], rows[1]["name"], rows[2]["name"]})
	assert.NotContains(t, rows[0], "serving")
	assert.Contains(t, rows[0], "calories")
}

func TestItemsCommand_Text(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "items", "--hall", "west-village", "-u", "-a", "name,protein", "-t")
	require.NoError(t, err)
	assert.Contains(t, out, "Steamed Broccoli")
	assert.Contains(t, out, "protein")
}

func TestItemsCommand_Schema(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "items", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, "dining_hall")
	assert.Contains(t, out, "efficiency")
	assert.Equal(t, int32(0), atomic.LoadInt32(h.hits))
}

func TestItemsCommand_UnknownHall(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "items", "--hall", "student-center")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "student-center")
}

func TestItemsCommand_NoMenus(t *testing.T) {
	h := newHarness(t)

	_, errOut, err := h.run(t, "items", "--hall", "west-village", "--meal", "dinner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not fetch menu data")
	assert.Contains(t, errOut, "warning: West Village")
}

func TestItemsCommand_PartialFailure(t *testing.T) {
	h := newHarness(t)

	// North Ave 404s, West Village still loads.
	out, errOut, err := h.run(t, "items", "--hall", "all", "-u", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, decodeRows(t, out), 6)
	assert.Contains(t, errOut, "North Ave Dining Hall")
}

func TestTopCommand(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "top", "--hall", "west-village", "-n", "2", "-o", "json")
	require.NoError(t, err)
	rows := decodeRows(t, out)
	require.Len(t, rows, 2)
	assert.Equal(t, float64(1), rows[0]["rank"])
	assert.Equal(t, "Grilled Chicken Breast", rows[0]["name"])
	assert.Equal(t, 0.2, rows[0]["efficiency"])
	assert.Equal(t, "Turkey Burger", rows[1]["name"])
	assert.Equal(t, "protein", rows[1]["category"])
}

func TestTopCommand_InvalidCount(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "top", "--hall", "west-village", "-n", "0")
	assert.Error(t, err)
}

func TestCombosCommand(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "combos", "--hall", "west-village", "-o", "json")
	require.NoError(t, err)
	rows := decodeRows(t, out)
	require.Len(t, rows, 6)
	assert.Equal(t, "Grilled Chicken Breast", rows[0]["items"])
	assert.Equal(t, "Grilled Chicken Breast + Grilled Chicken Breast + Steamed Broccoli", rows[1]["items"])
	assert.Equal(t, "Grilled Chicken Breast + Steamed Broccoli", rows[2]["items"])
	for _, r := range rows {
		assert.GreaterOrEqual(t, r["protein"], float64(40))
		assert.LessOrEqual(t, r["calories"], float64(600))
	}
}

func TestCombosCommand_Detail(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "combos", "--hall", "west-village", "--detail", "--protein", "60", "--calories", "700")
	require.NoError(t, err)
	assert.Contains(t, out, "Option 1: 84.0g protein, 450 cal")
	assert.Contains(t, out, "[West Village] 1 each")
	assert.Contains(t, out, "Macros:")
}

func TestCombosCommand_NoResults(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "combos", "--hall", "west-village", "-D", "-p", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "No combinations found that meet your criteria.")

	out, _, err = h.run(t, "combos", "--hall", "west-village", "-p", "500", "-o", "json")
	require.NoError(t, err)
	assert.Empty(t, decodeRows(t, out))
}

func TestCombosCommand_InvalidTargets(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "combos", "--calories", "0")
	assert.Error(t, err)
}

func TestStatsCommand(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "stats", "--hall", "west-village", "-o", "json")
	require.NoError(t, err)
	rows := decodeRows(t, out)
	require.Len(t, rows, 5)
	assert.Equal(t, "protein", rows[0]["category"])
	assert.Equal(t, float64(3), rows[0]["count"])

	total := 0.0
	for _, r := range rows {
		total += r["count"].(float64)
	}
	assert.Equal(t, float64(7), total)
}

func TestStatsCommand_Views(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
	}{
		{
			name:  "highest protein",
			args:  []string{"--view", "protein", "-n", "3"},
			names: []string{"Grilled Chicken Breast", "Grilled Chicken Breast", "Turkey Burger"},
		},
		{
			name:  "highest protein default count",
			args:  []string{"--view", "protein"},
			names: []string{"Grilled Chicken Breast", "Grilled Chicken Breast", "Turkey Burger", "Ice Cream Sundae", "Brown Rice", "Steamed Broccoli", "Water"},
		},
		{
			name:  "solo meals",
			args:  []string{"-V", "solo"},
			names: []string{"Grilled Chicken Breast", "Grilled Chicken Breast"},
		},
		{
			name:  "solo meals with a lower goal",
			args:  []string{"-V", "solo", "-p", "30", "-k", "300"},
			names: []string{"Grilled Chicken Breast", "Turkey Burger", "Grilled Chicken Breast"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			args := append([]string{"stats", "--hall", "west-village", "-o", "json"}, tt.args...)
			out, _, err := h.run(t, args...)
			require.NoError(t, err)
			rows := decodeRows(t, out)
			require.Len(t, rows, len(tt.names))
			for i, r := range rows {
				assert.Equal(t, float64(i+1), r["rank"])
				assert.Equal(t, tt.names[i], r["name"])
			}
		})
	}
}

func TestStatsCommand_InvalidView(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "stats", "--view", "dessert")
	assert.Error(t, err)
}

func TestDiffCommand(t *testing.T) {
	h := newHarness(t)

	out, errOut, err := h.run(t, "diff", "--hall", "west-village", "-o", "json")
	require.NoError(t, err)
	rows := decodeRows(t, out)
	require.Len(t, rows, 2)
	assert.Equal(t, "added", rows[0]["kind"])
	assert.Equal(t, "Turkey Burger", rows[0]["name"])
	assert.Equal(t, "changed", rows[1]["kind"])
	assert.Equal(t, "Grilled Chicken Breast", rows[1]["name"])
	assert.Equal(t, []any{"protein"}, rows[1]["fields"])
	assert.Contains(t, errOut, "1 added, 0 removed, 1 changed")
}

func TestDiffCommand_Ascii(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "diff", "--hall", "west-village", "--ascii")
	require.NoError(t, err)
	assert.Contains(t, out, "Turkey Burger")
	assert.Contains(t, out, "+")
}

func TestCacheCommands(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "items", "--hall", "west-village")
	require.NoError(t, err)

	out, _, err := h.run(t, "cache", "info", "-a", "hall,meal,week,age_days", "-o", "json")
	require.NoError(t, err)
	rows := decodeRows(t, out)
	require.Len(t, rows, 1)
	assert.Equal(t, "west-village_lunch_2026-02-09.json", rows[0]["name"])
	assert.Equal(t, float64(7), rows[0]["items"])
	assert.Equal(t, true, rows[0]["fresh"])
	assert.Equal(t, "2026-02-09", rows[0]["week"])
	assert.Equal(t, float64(0), rows[0]["age_days"])

	// A stale entry alongside the fresh one.
	stale := `{"timestamp": "2025-01-01T00:00:00.000000", "menu_items": []}`
	require.NoError(t, os.WriteFile(filepath.Join(h.cacheDir, "north-ave-dining-hall_lunch_2025-01-01.json"), []byte(stale), 0o600))

	out, _, err = h.run(t, "cache", "purge")
	require.NoError(t, err)
	assert.Equal(t, "purged 1 cache entry\n", out)

	out, _, err = h.run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "cleared 1 cache entry\n", out)

	out, _, err = h.run(t, "cache", "info", "-o", "json")
	require.NoError(t, err)
	assert.Empty(t, decodeRows(t, out))
}

func TestCacheCommands_Disabled(t *testing.T) {
	h := newHarness(t)
	t.Setenv("TECHJACKED_CACHE", "false")

	_, errOut, err := h.run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, errOut, "cache is disabled")

	_, _, err = h.run(t, "items", "--hall", "west-village")
	require.NoError(t, err)
	_, _, err = h.run(t, "items", "--hall", "west-village")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(h.hits))
}

func TestRefreshSkipsCache(t *testing.T) {
	h := newHarness(t)

	for range 2 {
		_, _, err := h.run(t, "items", "--hall", "west-village", "--refresh")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(h.hits))
}

func TestCompletionCommand(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _techjacked techjacked")

	out, _, err = h.run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef techjacked")
}

func TestNewApp_FlagsSorted(t *testing.T) {
	app := NewApp(meta.Meta{})
	for _, cmd := range app.Commands {
		for i := 1; i < len(cmd.Flags); i++ {
			assert.LessOrEqual(t, cmd.Flags[i-1].Names()[0], cmd.Flags[i].Names()[0], cmd.Name)
		}
	}
}
