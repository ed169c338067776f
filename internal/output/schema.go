// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// Tag is an attribute key discovered on a row type for --schema.
type Tag struct {
	Name string
	Kind string
}

// NewTag builds a Tag from a json struct tag value. holder prefixes nested
// names. Fields tagged "-" or untagged yield the zero Tag.
func NewTag(holder string, tagValue string, kind reflect.Kind) Tag {
	name, _, _ := strings.Cut(tagValue, ",")
	if name == "" || name == "-" {
		return Tag{}
	}
	if holder != "" {
		name = holder + "." + name
	}
	return Tag{Name: name, Kind: kindName(kind)}
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64, reflect.Int32:
		return "number"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Bool:
		return "bool"
	}
	return "string"
}

// Print renders the tag as "name (kind)".
func (t Tag) Print() string {
	if t.Name == "" {
		return ""
	}
	return fmt.Sprintf("%-24s %s", t.Name, t.Kind)
}

const maxSchemaDepth = 1

// DumpSchema writes the sorted attribute keys of a row type to w.
func DumpSchema(w io.Writer, typ reflect.Type) {
	for typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Slice {
		typ = typ.Elem()
	}

	tags := DumpSchemaWalker("", typ, 0)
	if len(tags) == 0 {
		log.Debugf("no tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	for _, tag := range tags {
		fmt.Fprintln(w, tag.Print())
	}
}

// DumpSchemaWalker collects json tags of typ, descending into nested structs
// and slices of structs one level.
func DumpSchemaWalker(holder string, typ reflect.Type, depth int) []Tag {
	tags := make([]Tag, 0, typ.NumField())

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			tags = append(tags, DumpSchemaWalker(holder, field.Type, depth)...)
			continue
		}

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}

		tag := NewTag(holder, tagValue, ft.Kind())
		if tag.Name == "" {
			continue
		}
		tags = append(tags, tag)

		if depth >= maxSchemaDepth {
			continue
		}
		switch {
		case ft.Kind() == reflect.Struct:
			tags = append(tags, DumpSchemaWalker(tag.Name, ft, depth+1)...)
		case ft.Kind() == reflect.Slice && ft.Elem().Kind() == reflect.Struct:
			tags = append(tags, DumpSchemaWalker(tag.Name+".#", ft.Elem(), depth+1)...)
		}
	}

	return tags
}
