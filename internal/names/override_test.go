// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []Assignment
	}{
		{
			name:  "plain singular",
			value: "Part",
			want:  []Assignment{{Section, Singular("Part")}},
		},
		{
			name:  "division list",
			value: "section:part,chapter:unit",
			want:  []Assignment{{Chapter, Singular("unit")}, {Section, Singular("part")}},
		},
		{
			name:  "pair",
			value: []any{"Part", "Parts"},
			want:  []Assignment{{Section, Pair("Part", "Parts")}},
		},
		{
			name:  "string slice pair",
			value: []string{"Part", "Parts"},
			want:  []Assignment{{Section, Pair("Part", "Parts")}},
		},
		{
			name:  "map",
			value: map[string]any{"chapter": []any{"unit", "units"}, "section": "part"},
			want:  []Assignment{{Chapter, Pair("unit", "units")}, {Section, Singular("part")}},
		},
		{
			name:  "malformed division list falls back to singular",
			value: "a:b:c",
			want:  []Assignment{{Section, Singular("a:b:c")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOverrides(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOverrides_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "three names", value: []any{"a", "b", "c"}},
		{name: "one name in list", value: []any{"a"}},
		{name: "non-string member", value: []any{"a", true}},
		{name: "unknown division in string", value: "figure:fig"},
		{name: "unknown division in map", value: map[string]any{"figure": "fig"}},
		{name: "bad map value", value: map[string]any{"section": 3}},
		{name: "bad pair in map", value: map[string]any{"section": []any{"a"}}},
		{name: "number", value: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOverrides(tt.value)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}
