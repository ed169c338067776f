// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package differ compares the menus of two weeks.
package differ

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/AnirudhJM24/TechJacked/internal/menu"
)

// Kind of change to a menu item.
type Kind string

const (
	Added   Kind = "added"
	Removed Kind = "removed"
	Changed Kind = "changed"
)

var kindOrder = map[Kind]int{Added: 0, Removed: 1, Changed: 2}

// Change is one item that differs between the weeks.
type Change struct {
	Kind       Kind     `json:"kind"`
	Name       string   `json:"name"`
	DiningHall string   `json:"dining_hall"`
	Fields     []string `json:"fields,omitempty"`
}

// Diff is the difference between an old and a new week.
type Diff struct {
	Changes []Change

	left map[string]any
	diff gojsondiff.Diff
}

// Modified reports whether the weeks differ at all.
func (d *Diff) Modified() bool {
	return d.diff.Modified()
}

// Count returns the number of changes of kind k.
func (d *Diff) Count(k Kind) int {
	n := 0
	for _, c := range d.Changes {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Summary is a one line count of changes.
func (d *Diff) Summary() string {
	return fmt.Sprintf("%d added, %d removed, %d changed", d.Count(Added), d.Count(Removed), d.Count(Changed))
}

// Format renders the diff as an annotated JSON document, lines prefixed with
// + and - for added and removed values.
func (d *Diff) Format(coloring bool) (string, error) {
	f := formatter.NewAsciiFormatter(d.left, formatter.AsciiFormatterConfig{Coloring: coloring})
	return f.Format(d.diff)
}

// Weeks compares two menus. Items are matched by name and dining hall, and a
// dish served on several days counts once.
func Weeks(older, newer []menu.Item) *Diff {
	left, right := index(older), index(newer)

	d := &Diff{
		left: left,
		diff: gojsondiff.New().CompareObjects(left, right),
	}

	for _, delta := range d.diff.Deltas() {
		var c Change
		switch v := delta.(type) {
		case *gojsondiff.Added:
			c = newChange(Added, v.PostPosition())
		case *gojsondiff.Deleted:
			c = newChange(Removed, v.PrePosition())
		case *gojsondiff.Object:
			c = newChange(Changed, v.PostPosition())
			for _, fd := range v.Deltas {
				if pd, ok := fd.(gojsondiff.PostDelta); ok {
					c.Fields = append(c.Fields, pd.PostPosition().String())
				} else if pd, ok := fd.(gojsondiff.PreDelta); ok {
					c.Fields = append(c.Fields, pd.PrePosition().String())
				}
			}
			sort.Strings(c.Fields)
		case gojsondiff.PostDelta:
			c = newChange(Changed, v.PostPosition())
		default:
			continue
		}
		d.Changes = append(d.Changes, c)
	}

	sort.SliceStable(d.Changes, func(i, j int) bool {
		a, b := d.Changes[i], d.Changes[j]
		if a.Kind != b.Kind {
			return kindOrder[a.Kind] < kindOrder[b.Kind]
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.DiningHall < b.DiningHall
	})

	return d
}

func newChange(k Kind, pos gojsondiff.Position) Change {
	key := pos.String()
	name, hall := key, ""
	if i := strings.LastIndex(key, "|"); i >= 0 {
		name, hall = key[:i], key[i+1:]
	}
	return Change{Kind: k, Name: name, DiningHall: hall}
}

func index(items []menu.Item) map[string]any {
	m := make(map[string]any, len(items))
	for _, item := range items {
		k := item.Key()
		if _, ok := m[k]; ok {
			continue
		}
		m[k] = map[string]any{
			"calories": item.Calories,
			"protein":  item.Protein,
			"fat":      item.Fat,
			"carbs":    item.Carbs,
			"sodium":   item.Sodium,
			"serving":  item.Serving,
		}
	}
	return m
}
