// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode parses a JSON fragment the way ReadDocument does.
func decode(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestParseHeader(t *testing.T) {
	el, ok := AsElement(decode(t, `{"t":"Header","c":[2,["sec:a",["unnumbered","x"],[["k","v"]]],[{"t":"Str","c":"A"}]]}`))
	require.True(t, ok)

	h, err := ParseHeader(el)
	require.NoError(t, err)
	assert.Equal(t, 2, h.Level)
	assert.Equal(t, "sec:a", h.Attr.ID)
	assert.True(t, h.Attr.HasClass("unnumbered"))
	assert.False(t, h.Attr.HasClass("y"))
	assert.Equal(t, [][2]string{{"k", "v"}}, h.Attr.KeyVals)
	assert.Len(t, h.Inlines, 1)
}

func TestParseHeader_MissingLevel(t *testing.T) {
	el, _ := AsElement(decode(t, `{"t":"Header","c":[null,["",[],[]],[]]}`))
	h, err := ParseHeader(el)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Level)
}

func TestParseHeader_NotAHeader(t *testing.T) {
	_, err := ParseHeader(Str("x"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCiteIDs(t *testing.T) {
	el, _ := AsElement(decode(t, `{"t":"Cite","c":[[{"citationId":"sec:a"},{"citationId":"sec:b"}],[{"t":"Str","c":"[@sec:a; @sec:b]"}]]}`))
	ids, ok := CiteIDs(el)
	require.True(t, ok)
	assert.Equal(t, []string{"sec:a", "sec:b"}, ids)

	_, ok = CiteIDs(Str("@sec:a"))
	assert.False(t, ok)
}

func TestCite_RoundTripsThroughCiteIDs(t *testing.T) {
	ids, ok := CiteIDs(Cite("sec:x", "@sec:x"))
	require.True(t, ok)
	assert.Equal(t, []string{"sec:x"}, ids)
}

func TestInlineList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "para", input: `{"t":"Para","c":[{"t":"Str","c":"p"}]}`, want: "p"},
		{name: "header", input: `{"t":"Header","c":[1,["",[],[]],[{"t":"Str","c":"h"}]]}`, want: "h"},
		{name: "span", input: `{"t":"Span","c":[["",[],[]],[{"t":"Str","c":"s"}]]}`, want: "s"},
		{name: "link", input: `{"t":"Link","c":[["",[],[]],[{"t":"Str","c":"l"}],["#x",""]]}`, want: "l"},
		{name: "legacy link", input: `{"t":"Link","c":[[{"t":"Str","c":"old"}],["#x",""]]}`, want: "old"},
		{name: "image", input: `{"t":"Image","c":[["",[],[]],[{"t":"Str","c":"i"}],["a.png",""]]}`, want: "i"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, ok := AsElement(decode(t, tt.input))
			require.True(t, ok)
			list, ok := InlineList(el)
			require.True(t, ok)
			assert.Equal(t, tt.want, Stringify(list))

			SetInlineList(el, []any{Str("new")})
			list, ok = InlineList(el)
			require.True(t, ok)
			assert.Equal(t, "new", Stringify(list))
		})
	}
}

func TestInlineList_NotAContainer(t *testing.T) {
	_, ok := InlineList(Str("x"))
	assert.False(t, ok)
}

func TestBuilder(t *testing.T) {
	modern := Builder{Version: Version{2, 11}}
	assert.NotContains(t, modern.Space(), "c")
	link := modern.Link([]any{Str("1")}, "#sec:a", "")
	assert.Len(t, link.Content(), 3)

	old := Builder{Version: Version{1, 15}}
	assert.Equal(t, []any{}, old.Space()["c"])
	assert.Len(t, old.Link([]any{Str("1")}, "#sec:a", "").Content(), 2)
}
