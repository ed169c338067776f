// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"sort"
	"strings"
)

type sortKey struct {
	name          string
	descending    bool
	caseSensitive bool
}

func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, raw := range strings.Split(spec, ",") {
		k := sortKey{}
		raw = strings.TrimSpace(raw)
		for len(raw) > 0 && (raw[0] == '-' || raw[0] == '!') {
			if raw[0] == '-' {
				k.descending = true
			} else {
				k.caseSensitive = true
			}
			raw = raw[1:]
		}
		if raw == "" {
			continue
		}
		k.name = raw
		keys = append(keys, k)
	}
	return keys
}

// SortDataset stable sorts rows by the comma separated keys of spec. A key
// prefixed with - sorts descending, with ! compares strings case-sensitively.
// Numbers compare numerically and missing values sort first.
func SortDataset(rows []map[string]any, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(rows[i][k.name], rows[j][k.name], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b any, caseSensitive bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}

	sa, sb := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		sa, sb = strings.ToLower(sa), strings.ToLower(sb)
	}
	return strings.Compare(sa, sb)
}
