// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{name: "string", input: `{"t":"MetaString","c":"yes"}`, want: "yes"},
		{name: "bool", input: `{"t":"MetaBool","c":true}`, want: true},
		{name: "inlines", input: `{"t":"MetaInlines","c":[{"t":"Str","c":"Part"},{"t":"Space"},{"t":"Str","c":"One"}]}`, want: "Part One"},
		{
			name:  "list",
			input: `{"t":"MetaList","c":[{"t":"MetaInlines","c":[{"t":"Str","c":"Part"}]},{"t":"MetaInlines","c":[{"t":"Str","c":"Parts"}]}]}`,
			want:  []any{"Part", "Parts"},
		},
		{
			name:  "map",
			input: `{"t":"MetaMap","c":{"section":{"t":"MetaString","c":"Part"}}}`,
			want:  map[string]any{"section": "Part"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MetaValue(decode(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetaValue_Errors(t *testing.T) {
	for _, input := range []string{`"bare"`, `{"t":"MetaBool","c":"x"}`, `{"t":"MetaWhat","c":1}`} {
		_, err := MetaValue(decode(t, input))
		assert.ErrorIs(t, err, ErrMalformed, input)
	}
}
