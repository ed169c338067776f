// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/AnirudhJM24/TechJacked/internal/attrs"
	"github.com/AnirudhJM24/TechJacked/internal/filters"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml", "raw"}

// Options control SliceDiceSpit.
type Options struct {
	Format string
	Filter string
	Sort   string
	Color  bool
	Titles bool
}

// OptionsFrom reads the common output flags of cmd.
func OptionsFrom(cmd *cli.Command) Options {
	return Options{
		Format: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Color:  cmd.Bool("color"),
		Titles: cmd.Bool("titles"),
	}
}

// SliceDiceSpit filters, transforms, sorts and renders raw, a JSON array of
// rows, to w. Raw output writes the rows untouched.
func SliceDiceSpit(raw []byte, al attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Format == "raw" {
		_, err := w.Write(raw)
		if err == nil {
			_, err = io.WriteString(w, "\n")
		}
		return err
	}

	dataset := gjson.ParseBytes(raw)
	if !dataset.IsArray() {
		return fmt.Errorf("expected a JSON array of rows")
	}

	rows := filters.FilterDataset(dataset, al, opts.Filter)
	log.Debugf("%d of %d rows after filtering", len(rows), len(dataset.Array()))

	for _, row := range rows {
		for i := range al {
			attr := al[i]
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(rows, opts.Sort)

	switch opts.Format {
	case "json":
		out, err := json.MarshalIndent(ordered(rows, al, false), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(ordered(rows, al, true))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		TableWriter(rows, al, opts, w)
	}
	return nil
}

// ordered projects rows onto the included attrs. YAML keeps attr order via
// MapSlice, JSON objects are emitted with sorted keys.
func ordered(rows []map[string]any, al attrs.AttrList, keepOrder bool) []any {
	included := al.Included()
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		if keepOrder {
			ms := make(yaml.MapSlice, 0, len(included))
			for _, attr := range included {
				ms = append(ms, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
			}
			out = append(out, ms)
			continue
		}
		m := make(map[string]any, len(included))
		for _, attr := range included {
			m[attr.OutputKey] = row[attr.OutputKey]
		}
		out = append(out, m)
	}
	return out
}
