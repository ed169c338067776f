// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/AnirudhJM24/TechJacked/internal/attrs"
)

// DelimEnv overrides the "," separating filter expressions.
const DelimEnv = "TECHJACKED_FILTER_DELIM"

// filterRegex splits an expression into key, operand and target. Operands are
// one of = ^ ~ < > @ / and may be negated with a leading !.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter spec. Malformed expressions are logged and
// skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv(DelimEnv); ok && d != "" {
		delim = d
	}

	for _, expr := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(expr)
		if parts == nil || strings.TrimSpace(parts[1]) == "" {
			log.Errorf("invalid filter: %s", expr)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     strings.TrimSpace(parts[1]),
			Negate:  negate,
			Operand: operand,
			Target:  parts[3],
		})
	}

	return filters
}

// FilterDataset keeps the rows of candidates, a JSON array, that match every
// filter in spec and projects each onto the attrs, keyed by OutputKey.
// Transforms are not applied here.
func FilterDataset(candidates gjson.Result, al attrs.AttrList, spec string) []map[string]any {
	filters := BuildFilters(spec)
	paths := resolvePaths(al, filters)

	//nolint:prealloc
	var rows []map[string]any
	for _, candidate := range candidates.Array() {
		if !Match(candidate, filters, paths) {
			continue
		}

		row := make(map[string]any, len(al))
		for _, attr := range al {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = candidate.Get(attr.Key).Value()
		}
		rows = append(rows, row)
	}

	return rows
}

// resolvePaths maps each filter key to a gjson path. A key naming an attr
// title uses that attr's path, anything else is used as a path directly.
func resolvePaths(al attrs.AttrList, filters []Filter) []string {
	paths := make([]string, len(filters))
	for i, f := range filters {
		if attr, ok := al.Lookup(f.Key); ok {
			paths[i] = attr.Key
			continue
		}
		log.Debugf("filter key %s is not an attr, using it as a path", f.Key)
		paths[i] = f.Key
	}
	return paths
}

// Match reports whether candidate satisfies all filters. paths[i] is the
// gjson path for filters[i].
func Match(candidate gjson.Result, filters []Filter, paths []string) bool {
	for i, f := range filters {
		value := candidate.Get(paths[i])
		if !value.Exists() || value.Type == gjson.Null {
			return false
		}
		if !check(value, f) {
			return false
		}
	}
	return true
}

func check(value gjson.Result, f Filter) bool {
	switch value.Type {
	case gjson.Number:
		return checkNumericOperand(value.Float(), f)
	case gjson.String, gjson.True, gjson.False:
		return checkStringOperand(value.String(), f)
	case gjson.JSON:
		if f.Operand != "@" {
			log.Errorf("operand %s is not supported on %s", f.Operand, f.Key)
			return false
		}
		return checkContainsOperand(value, f)
	}
	return false
}

// checkContainsOperand tests array membership or object key presence.
func checkContainsOperand(value gjson.Result, f Filter) bool {
	found := false
	switch {
	case value.IsArray():
		for _, v := range value.Array() {
			if v.String() == f.Target {
				found = true
				break
			}
		}
	case value.IsObject():
		found = value.Get(gjson.Escape(f.Target)).Exists()
	}
	return found != f.Negate
}

// checkNumericOperand compares numerically. = > < are supported; @ and ~
// fall back to comparing the formatted number as a string.
func checkNumericOperand(value float64, f Filter) bool {
	switch f.Operand {
	case "@", "~", "^", "/":
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), f)
	}

	tgt, err := strconv.ParseFloat(strings.TrimSpace(f.Target), 64)
	if err != nil {
		log.Errorf("invalid numeric target: %s", f.Target)
		return false
	}

	switch f.Operand {
	case "=":
		return (value == tgt) != f.Negate
	case ">":
		return (value > tgt) != f.Negate
	case "<":
		return (value < tgt) != f.Negate
	}
	log.Errorf("unsupported numeric operand: %s", f.Operand)
	return false
}

// checkStringOperand applies a string operand. ~ is a case-insensitive
// substring match, / a regular expression.
func checkStringOperand(value string, f Filter) bool {
	var result bool
	switch f.Operand {
	case "=":
		result = value == f.Target
	case "~":
		result = strings.Contains(strings.ToLower(value), strings.ToLower(f.Target))
	case "^":
		result = strings.HasPrefix(value, f.Target)
	case ">":
		result = value > f.Target
	case "<":
		result = value < f.Target
	case "@":
		result = strings.Contains(value, f.Target)
	case "/":
		matched, err := regexp.MatchString(f.Target, value)
		if err != nil {
			log.Errorf("invalid regex: %s", f.Target)
			return false
		}
		result = matched
	default:
		log.Errorf("unsupported filtering operand: %s", f.Operand)
		return false
	}
	return result != f.Negate
}
