// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Attr is one column of output. Key is a gjson path into the row, OutputKey
// is the column title and the key used in json and yaml output.
type Attr struct {
	Key string `yaml:"key"`
	// Include is false for attrs that are only used for filtering and sorting.
	Include   bool   `yaml:"include"`
	OutputKey string `yaml:"outputKey"`
	// TransformSpec is a comma separated list of transforms. Later entries win.
	//   l, u    lower or upper case
	//   N       truncate strings to N runes, -N elides the middle
	//   %N      round numbers to N decimals
	TransformSpec string `yaml:"transformSpec"`
}

type transform struct {
	upper, lower bool
	length       int
	hasLength    bool
	precision    int
	hasPrecision bool
}

func parseTransform(spec string) (t transform) {
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		for len(tok) > 0 {
			switch c := tok[0]; {
			case c == 'l' || c == 'L':
				t.lower, t.upper = true, false
				tok = tok[1:]
			case c == 'u' || c == 'U':
				t.upper, t.lower = true, false
				tok = tok[1:]
			case c == '%':
				n, rest := leadingInt(tok[1:])
				if n != nil {
					t.precision, t.hasPrecision = *n, true
				}
				tok = rest
			case c == '-' || (c >= '0' && c <= '9'):
				n, rest := leadingInt(tok)
				if n != nil {
					t.length, t.hasLength = *n, true
				}
				if rest == tok {
					rest = tok[1:]
				}
				tok = rest
			default:
				tok = tok[1:]
			}
		}
	}
	return
}

// leadingInt parses an optionally signed integer at the front of s.
func leadingInt(s string) (*int, string) {
	end := 0
	if end < len(s) && s[end] == '-' {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil, s
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil, s[end:]
	}
	return &n, s[end:]
}

// Transform applies the attr's TransformSpec to value. Values of types the
// spec does not apply to are returned unchanged.
func (a *Attr) Transform(value any) any {
	if a.TransformSpec == "" {
		return value
	}
	t := parseTransform(a.TransformSpec)

	switch v := value.(type) {
	case float64:
		if t.hasPrecision {
			p := math.Pow(10, float64(t.precision))
			return math.Round(v*p) / p
		}
		return v
	case string:
		if t.lower {
			v = strings.ToLower(v)
		} else if t.upper {
			v = strings.ToUpper(v)
		}
		if t.hasLength {
			v = truncate(v, t.length)
		}
		return v
	}
	return value
}

// truncate shortens s to n runes. A negative n keeps both ends and joins them
// with "..".
func truncate(s string, n int) string {
	r := []rune(s)
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if len(r) <= abs {
		return s
	}
	if n >= 0 {
		return string(r[:n])
	}
	side := abs/2 - 1
	if side < 1 {
		return string(r[:abs])
	}
	return string(r[:side]) + ".." + string(r[len(r)-side:])
}

type AttrList []Attr

// String renders the list in --attrs form.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses an --attrs value and merges it into the list. Each spec is
// key[:title[:transform]]. A leading ! keeps the attr for filtering and
// sorting but hides it. The key * carries a transform applied to every attr.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		titleIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		fields := strings.Split(spec, ":")

		attr := Attr{Include: true, Key: strings.TrimSpace(fields[keyIdx])}
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr: %q", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		switch {
		case len(fields) > titleIdx && strings.TrimSpace(fields[titleIdx]) != "":
			attr.OutputKey = strings.TrimSpace(fields[titleIdx])
		case strings.Contains(attr.Key, "."):
			// items.0.name is titled name.
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		default:
			attr.OutputKey = attr.Key
		}
		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// Respecifying a default attr updates it in place, keeping its column.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				if len(fields) > titleIdx && strings.TrimSpace(fields[titleIdx]) != "" {
					(*a)[i].OutputKey = attr.OutputKey
				}
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prefixes the transform of the * attr, if any, onto
// every attr so per-attr transforms override it.
func (a *AttrList) SetGlobalTransformSpec() {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return
	}

	for i := range *a {
		if (*a)[i].Key == "*" {
			continue
		}
		if (*a)[i].TransformSpec == "" {
			(*a)[i].TransformSpec = spec
		} else {
			(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
		}
	}
}

// Included returns the attrs shown in output, in order.
func (a AttrList) Included() AttrList {
	out := make(AttrList, 0, len(a))
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

// Lookup finds the attr whose title or key is name.
func (a AttrList) Lookup(name string) (Attr, bool) {
	for _, attr := range a {
		if attr.OutputKey == name {
			return attr, true
		}
	}
	for _, attr := range a {
		if attr.Key == name {
			return attr, true
		}
	}
	return Attr{}, false
}

func (a *AttrList) Type() string {
	return "list"
}
