// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/AnirudhJM24/TechJacked/internal/attrs"
)

const rowsJSON = `[
  {"name":"Grilled Chicken Breast","calories":200,"protein":40,"dining_hall":"West Village","vegan":false,"tags":["halal","gluten-free"]},
  {"name":"Steamed Broccoli","calories":50,"protein":4,"dining_hall":"West Village","vegan":true,"tags":["vegan"]},
  {"name":"Turkey Burger","calories":300,"protein":30,"dining_hall":"North Ave Dining Hall","vegan":false,"tags":[]},
  {"name":"Mystery Soup","calories":null,"protein":2,"dining_hall":"North Ave Dining Hall"}
]`

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		delim string
		want  []Filter
	}{
		{name: "empty spec", spec: ""},
		{
			name: "exact",
			spec: "name=Turkey Burger",
			want: []Filter{{Key: "name", Operand: "=", Target: "Turkey Burger"}},
		},
		{
			name: "negated prefix",
			spec: "name!^Steamed",
			want: []Filter{{Key: "name", Operand: "^", Target: "Steamed", Negate: true}},
		},
		{
			name: "multiple",
			spec: "protein>20,calories<400",
			want: []Filter{
				{Key: "protein", Operand: ">", Target: "20"},
				{Key: "calories", Operand: "<", Target: "400"},
			},
		},
		{
			name: "regex",
			spec: "name/^(Grilled|Turkey)",
			want: []Filter{{Key: "name", Operand: "/", Target: "^(Grilled|Turkey)"}},
		},
		{
			name: "invalid skipped",
			spec: "protein>20,nonsense,=orphan,hall~north",
			want: []Filter{
				{Key: "protein", Operand: ">", Target: "20"},
				{Key: "hall", Operand: "~", Target: "north"},
			},
		},
		{
			name:  "custom delimiter",
			spec:  "name@Chicken, Breast;protein>10",
			delim: ";",
			want: []Filter{
				{Key: "name", Operand: "@", Target: "Chicken, Breast"},
				{Key: "protein", Operand: ">", Target: "10"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delim != "" {
				t.Setenv(DelimEnv, tt.delim)
			}
			got := BuildFilters(tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckStringOperand(t *testing.T) {
	tests := []struct {
		value string
		f     Filter
		want  bool
	}{
		{"West Village", Filter{Operand: "=", Target: "West Village"}, true},
		{"West Village", Filter{Operand: "=", Target: "west village"}, false},
		{"West Village", Filter{Operand: "=", Target: "West Village", Negate: true}, false},
		{"West Village", Filter{Operand: "~", Target: "village"}, true},
		{"West Village", Filter{Operand: "^", Target: "West"}, true},
		{"West Village", Filter{Operand: "^", Target: "North", Negate: true}, true},
		{"West Village", Filter{Operand: "@", Target: "Vill"}, true},
		{"West Village", Filter{Operand: "@", Target: "vill"}, false},
		{"b", Filter{Operand: ">", Target: "a"}, true},
		{"b", Filter{Operand: "<", Target: "a"}, false},
		{"Turkey Burger", Filter{Operand: "/", Target: `^T\w+ B`}, true},
		{"Turkey Burger", Filter{Operand: "/", Target: `(`}, false},
		{"Turkey Burger", Filter{Operand: "?", Target: "x"}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, checkStringOperand(tt.value, tt.f), "%q %+v", tt.value, tt.f)
	}
}

func TestCheckNumericOperand(t *testing.T) {
	tests := []struct {
		value float64
		f     Filter
		want  bool
	}{
		{40, Filter{Operand: "=", Target: "40"}, true},
		{40, Filter{Operand: "=", Target: "40.0"}, true},
		{40, Filter{Operand: "=", Target: "40", Negate: true}, false},
		{40, Filter{Operand: ">", Target: "39.5"}, true},
		{40, Filter{Operand: ">", Target: "40"}, false},
		{40, Filter{Operand: "<", Target: " 41 "}, true},
		{40, Filter{Operand: "<", Target: "41", Negate: true}, false},
		{40, Filter{Operand: ">", Target: "lots"}, false},
		{0.25, Filter{Operand: "@", Target: "25"}, true},
		{212, Filter{Operand: "^", Target: "21"}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, checkNumericOperand(tt.value, tt.f), "%v %+v", tt.value, tt.f)
	}
}

func TestCheckContainsOperand(t *testing.T) {
	arr := gjson.Parse(`["halal","gluten-free"]`)
	obj := gjson.Parse(`{"halal":true,"kosher":false}`)

	assert.True(t, checkContainsOperand(arr, Filter{Operand: "@", Target: "halal"}))
	assert.False(t, checkContainsOperand(arr, Filter{Operand: "@", Target: "vegan"}))
	assert.True(t, checkContainsOperand(arr, Filter{Operand: "@", Target: "vegan", Negate: true}))
	assert.True(t, checkContainsOperand(obj, Filter{Operand: "@", Target: "kosher"}))
	assert.False(t, checkContainsOperand(obj, Filter{Operand: "@", Target: "vegan"}))
}

func testAttrs(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	require.NoError(t, al.Set(spec))
	return al
}

func TestFilterDataset(t *testing.T) {
	rows := gjson.Parse(rowsJSON)
	al := testAttrs(t, "name,protein,dining_hall:hall")

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{"no filter", "", []string{"Grilled Chicken Breast", "Steamed Broccoli", "Turkey Burger", "Mystery Soup"}},
		{"numeric", "protein>20", []string{"Grilled Chicken Breast", "Turkey Burger"}},
		{"by title", "hall~north", []string{"Turkey Burger", "Mystery Soup"}},
		{"all must match", "protein>20,hall=West Village", []string{"Grilled Chicken Breast"}},
		{"path not in attrs", "calories<100", []string{"Steamed Broccoli"}},
		{"null fails", "calories>0", []string{"Grilled Chicken Breast", "Steamed Broccoli", "Turkey Burger"}},
		{"bool", "vegan=true", []string{"Steamed Broccoli"}},
		{"array contains", "tags@halal", []string{"Grilled Chicken Breast"}},
		{"missing key", "spicy=true", nil},
		{"invalid ignored", "protein>20,junk", []string{"Grilled Chicken Breast", "Turkey Burger"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(rows, al, tt.spec)
			var names []string
			for _, row := range got {
				names = append(names, row["name"].(string))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterDataset_Projection(t *testing.T) {
	rows := gjson.Parse(rowsJSON)
	al := testAttrs(t, "name,dining_hall:hall,!protein,*::u")

	got := FilterDataset(rows, al, "name^Grilled")
	require.Len(t, got, 1)
	assert.Equal(t, map[string]any{
		"name":    "Grilled Chicken Breast",
		"hall":    "West Village",
		"protein": float64(40),
	}, got[0])
}
