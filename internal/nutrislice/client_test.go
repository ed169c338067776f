// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package nutrislice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

var westVillage = menu.Hall{Slug: "west-village", Name: "West Village"}

func loadFixture(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", "week.json"))
	require.NoError(t, err)
	return b
}

func TestParseWeek(t *testing.T) {
	items, err := ParseWeek(loadFixture(t), "West Village")
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, menu.Item{
		Name:       "Grilled Chicken Breast",
		Calories:   180,
		Protein:    32,
		Fat:        4.5,
		Carbs:      0,
		Sodium:     390,
		Serving:    "1 each",
		DiningHall: "West Village",
	}, items[0])

	// Null sodium is zero, one pound is really a quarter pound.
	assert.Equal(t, 0.0, items[1].Sodium)
	assert.Equal(t, "0.25 lb", items[1].Serving)

	assert.Equal(t, "0.5 cup", items[2].Serving)

	// A non-numeric pound amount is left alone.
	assert.Equal(t, "six LBS", items[3].Serving)

	// Missing name and nutrition.
	assert.Equal(t, "Unknown", items[4].Name)
	assert.Equal(t, 0.0, items[4].Calories)
	assert.Equal(t, "", items[4].Serving)
}

func TestParseWeek_Empty(t *testing.T) {
	items, err := ParseWeek([]byte(`{"days": []}`), "West Village")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	_, err = ParseWeek([]byte(`<html>`), "West Village")
	assert.Error(t, err)
}

func TestServingString_Pounds(t *testing.T) {
	tests := []struct {
		amount string
		unit   string
		want   string
	}{
		{"4", "lb", "1.0 lb"},
		{"2", "Lbs", "0.5 Lbs"},
		{"1.5", "lb", "0.375 lb"},
		{"", "lb", "lb"},
		{"3", "oz", "3 oz"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.amount+tt.unit, func(t *testing.T) {
			doc := `{"serving_size_amount":"` + tt.amount + `","serving_size_unit":"` + tt.unit + `"}`
			assert.Equal(t, tt.want, servingString(parseResult(doc)))
		})
	}
}

func TestClient_MenuURL(t *testing.T) {
	c := NewClient(WithBaseURL("https://example.test/menu/api/weeks/school/"))
	date := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	assert.Equal(t,
		"https://example.test/menu/api/weeks/school/west-village/menu-type/lunch/2026/02/03/",
		c.MenuURL("west-village", "lunch", date))
}

func TestClient_FetchWeek(t *testing.T) {
	fixture := loadFixture(t)
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL + "/menu/api/weeks/school"))
	items, err := c.FetchWeek(context.Background(), westVillage, "dinner", time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, "/menu/api/weeks/school/west-village/menu-type/dinner/2026/02/11/", path)
	assert.Equal(t, "West Village", items[0].DiningHall)
}

func TestClient_FetchWeek_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.FetchWeek(context.Background(), westVillage, "lunch", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "west-village")
	assert.Contains(t, err.Error(), "404")
}

func TestClient_FetchWeek_RetriesServerErrors(t *testing.T) {
	fixture := loadFixture(t)
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	c := NewClient(
		WithBaseURL(srv.URL),
		WithRetryMax(2),
		WithRetryWait(time.Millisecond, 5*time.Millisecond),
	)
	items, err := c.FetchWeek(context.Background(), westVillage, "lunch", time.Now())
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_FetchWeek_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(
		WithBaseURL(srv.URL),
		WithRetryMax(1),
		WithRetryWait(time.Millisecond, 2*time.Millisecond),
		WithTimeout(time.Second),
	)
	_, err := c.FetchWeek(context.Background(), westVillage, "lunch", time.Now())
	assert.Error(t, err)
}
