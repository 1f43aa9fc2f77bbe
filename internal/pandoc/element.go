// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Element is one AST node in JSON form.
type Element map[string]any

// AsElement reports whether v is an AST node and returns it as an Element.
func AsElement(v any) (Element, bool) {
	switch m := v.(type) {
	case Element:
		_, ok := m["t"]
		return m, ok
	case map[string]any:
		if _, ok := m["t"]; ok {
			return Element(m), true
		}
	}
	return nil, false
}

// Type returns the node tag, e.g. "Header" or "Str".
func (e Element) Type() string {
	t, _ := e["t"].(string)
	return t
}

// Content returns the raw "c" field (nil when absent).
func (e Element) Content() any {
	return e["c"]
}

// Text returns the content of a Str element.
func (e Element) Text() string {
	s, _ := e["c"].(string)
	return s
}

// Attr is a pandoc attribute triple: identifier, classes, key/value pairs.
type Attr struct {
	ID      string
	Classes []string
	KeyVals [][2]string
}

// HasClass reports whether the attribute carries class.
func (a Attr) HasClass(class string) bool {
	for _, c := range a.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// JSON returns the attribute in its wire form.
func (a Attr) JSON() []any {
	classes := make([]any, len(a.Classes))
	for i, c := range a.Classes {
		classes[i] = c
	}
	kvs := make([]any, len(a.KeyVals))
	for i, kv := range a.KeyVals {
		kvs[i] = []any{kv[0], kv[1]}
	}
	return []any{a.ID, classes, kvs}
}

func parseAttr(v any) (Attr, error) {
	parts, ok := v.([]any)
	if !ok || len(parts) != 3 {
		return Attr{}, fmt.Errorf("%w: attribute is not a triple", ErrMalformed)
	}
	var a Attr
	a.ID, _ = parts[0].(string)
	classes, _ := parts[1].([]any)
	for _, c := range classes {
		if s, ok := c.(string); ok {
			a.Classes = append(a.Classes, s)
		}
	}
	kvs, _ := parts[2].([]any)
	for _, kv := range kvs {
		pair, ok := kv.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		k, _ := pair[0].(string)
		val, _ := pair[1].(string)
		a.KeyVals = append(a.KeyVals, [2]string{k, val})
	}
	return a, nil
}

// Header is the decoded content of a Header element. Level is zero when
// the element carries no usable level.
type Header struct {
	Level   int
	Attr    Attr
	Inlines []any
}

// ParseHeader decodes a Header element.
func ParseHeader(e Element) (Header, error) {
	c, ok := e.Content().([]any)
	if e.Type() != "Header" || !ok || len(c) != 3 {
		return Header{}, fmt.Errorf("%w: not a header", ErrMalformed)
	}
	attr, err := parseAttr(c[1])
	if err != nil {
		return Header{}, err
	}
	inlines, _ := c[2].([]any)
	return Header{Level: toInt(c[0]), Attr: attr, Inlines: inlines}, nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case json.Number:
		i, err := strconv.Atoi(n.String())
		if err != nil {
			return 0
		}
		return i
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// CiteIDs returns the citation identifiers of a Cite element, in order.
func CiteIDs(e Element) ([]string, bool) {
	if e.Type() != "Cite" {
		return nil, false
	}
	c, ok := e.Content().([]any)
	if !ok || len(c) != 2 {
		return nil, false
	}
	citations, ok := c[0].([]any)
	if !ok || len(citations) == 0 {
		return nil, false
	}
	ids := make([]string, 0, len(citations))
	for _, cit := range citations {
		m, ok := cit.(map[string]any)
		if !ok {
			return nil, false
		}
		id, _ := m["citationId"].(string)
		ids = append(ids, id)
	}
	return ids, true
}

// Str builds a Str element.
func Str(s string) Element {
	return Element{"t": "Str", "c": s}
}

// RawInline builds a RawInline element in the given format.
func RawInline(format, text string) Element {
	return Element{"t": "RawInline", "c": []any{format, text}}
}

// RawBlock builds a RawBlock element in the given format.
func RawBlock(format, text string) Element {
	return Element{"t": "RawBlock", "c": []any{format, text}}
}

// Cite builds an AuthorInText Cite for a single id, as pandoc does for a
// bare @id in running text.
func Cite(id, text string) Element {
	citation := map[string]any{
		"citationId":      id,
		"citationPrefix":  []any{},
		"citationSuffix":  []any{},
		"citationMode":    map[string]any{"t": "AuthorInText"},
		"citationNoteNum": 0,
		"citationHash":    0,
	}
	return Element{"t": "Cite", "c": []any{[]any{citation}, []any{Str(text)}}}
}

// Builder constructs elements whose wire form depends on the pandoc version.
type Builder struct {
	Version Version
}

// Space builds a Space element. Legacy documents carry an empty content list.
func (b Builder) Space() Element {
	if b.Version.Less(V1_18) {
		return Element{"t": "Space", "c": []any{}}
	}
	return Element{"t": "Space"}
}

// Link builds a Link to url with the given inline text.
func (b Builder) Link(text []any, url, title string) Element {
	if b.Version.Less(V1_16) {
		return Element{"t": "Link", "c": []any{text, []any{url, title}}}
	}
	return Element{"t": "Link", "c": []any{Attr{}.JSON(), text, []any{url, title}}}
}

const (
	wholeContent = -1 // "c" is the inline list itself
	beforeTarget = -2 // second to last, ahead of the [url, title] target
)

// inlineIndex gives, for each inline-bearing container, the position of its
// inline list inside "c".
var inlineIndex = map[string]int{
	"Para":          wholeContent,
	"Plain":         wholeContent,
	"Emph":          wholeContent,
	"Strong":        wholeContent,
	"Underline":     wholeContent,
	"Strikethrough": wholeContent,
	"Superscript":   wholeContent,
	"Subscript":     wholeContent,
	"SmallCaps":     wholeContent,
	"Header":        2,
	"Span":          1,
	"Quoted":        1,
	"Link":          beforeTarget,
	"Image":         beforeTarget,
}

// inlinePos resolves the position of the inline list inside c.
func inlinePos(idx int, c []any) (int, bool) {
	if idx == beforeTarget {
		idx = len(c) - 2
	}
	return idx, idx >= 0 && idx < len(c)
}

// InlineList returns the inline sequence held by a container element.
func InlineList(e Element) ([]any, bool) {
	idx, ok := inlineIndex[e.Type()]
	if !ok {
		return nil, false
	}
	if idx == wholeContent {
		list, ok := e.Content().([]any)
		return list, ok
	}
	c, ok := e.Content().([]any)
	if !ok {
		return nil, false
	}
	pos, ok := inlinePos(idx, c)
	if !ok {
		return nil, false
	}
	list, ok := c[pos].([]any)
	return list, ok
}

// SetInlineList replaces the inline sequence of a container element.
func SetInlineList(e Element, list []any) {
	idx, ok := inlineIndex[e.Type()]
	if !ok {
		return
	}
	if idx == wholeContent {
		e["c"] = list
		return
	}
	c, ok := e.Content().([]any)
	if !ok {
		return
	}
	if pos, ok := inlinePos(idx, c); ok {
		c[pos] = list
	}
}
