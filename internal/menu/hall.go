// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package menu

import (
	"fmt"
	"sort"
	"strings"
)

// Hall is a dining hall known to the API by its slug.
type Hall struct {
	Slug string
	Name string
}

// DefaultHalls are the halls served out of the box.
var DefaultHalls = []Hall{
	{Slug: "west-village", Name: "West Village"},
	{Slug: "north-ave-dining-hall", Name: "North Ave Dining Hall"},
}

// Registry is the ordered set of halls a command may select from.
type Registry struct {
	halls []Hall
}

// NewRegistry returns the default halls plus any extras keyed by slug. An
// extra with a default slug renames that hall.
func NewRegistry(extra map[string]string) *Registry {
	r := &Registry{halls: append([]Hall(nil), DefaultHalls...)}

	slugs := make([]string, 0, len(extra))
	for slug := range extra {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

outer:
	for _, slug := range slugs {
		for i := range r.halls {
			if r.halls[i].Slug == slug {
				r.halls[i].Name = extra[slug]
				continue outer
			}
		}
		r.halls = append(r.halls, Hall{Slug: slug, Name: extra[slug]})
	}

	return r
}

// All returns every registered hall.
func (r *Registry) All() []Hall {
	return append([]Hall(nil), r.halls...)
}

// Lookup finds a hall by slug or, case-insensitively, by display name.
func (r *Registry) Lookup(s string) (Hall, bool) {
	s = strings.TrimSpace(s)
	for _, h := range r.halls {
		if h.Slug == s || strings.EqualFold(h.Name, s) {
			return h, true
		}
	}
	return Hall{}, false
}

// Resolve maps hall specs to halls. No specs, "all" or "both" select every
// hall. Duplicates are collapsed and the registry order is kept.
func (r *Registry) Resolve(specs []string) ([]Hall, error) {
	if len(specs) == 0 {
		return r.All(), nil
	}

	selected := make(map[string]bool)
	for _, spec := range specs {
		for _, s := range strings.Split(spec, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if strings.EqualFold(s, "all") || strings.EqualFold(s, "both") {
				return r.All(), nil
			}
			h, ok := r.Lookup(s)
			if !ok {
				return nil, fmt.Errorf("unknown dining hall %q, must be one of %v", s, r.Slugs())
			}
			selected[h.Slug] = true
		}
	}

	var halls []Hall
	for _, h := range r.halls {
		if selected[h.Slug] {
			halls = append(halls, h)
		}
	}
	if len(halls) == 0 {
		return r.All(), nil
	}
	return halls, nil
}

// Slugs returns the registered slugs in order.
func (r *Registry) Slugs() []string {
	slugs := make([]string, 0, len(r.halls))
	for _, h := range r.halls {
		slugs = append(slugs, h.Slug)
	}
	return slugs
}

// Name returns the display name for a slug, falling back to the slug itself.
func (r *Registry) Name(slug string) string {
	if h, ok := r.Lookup(slug); ok {
		return h.Name
	}
	return slug
}
