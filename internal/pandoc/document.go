// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pandoc reads, walks and writes pandoc's JSON document tree.
// Nodes stay in their decoded JSON form ({"t": type, "c": content}) so that
// elements this filter does not understand pass through untouched.
// Implements: document tree I/O, traversal and pandoc version handling.
package pandoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformed is returned when input does not have the shape of a pandoc
// JSON document or element.
var ErrMalformed = errors.New("malformed pandoc document")

// Document is a decoded pandoc JSON document.
type Document struct {
	// APIVersion is the pandoc-api-version array. Nil for legacy documents.
	APIVersion []any

	// Meta maps metadata keys to Meta* nodes.
	Meta map[string]any

	// Blocks is the top-level block list.
	Blocks []any

	legacy bool
}

// documentJSON is the on-the-wire shape used by pandoc 1.18 and later.
type documentJSON struct {
	APIVersion []any          `json:"pandoc-api-version"`
	Meta       map[string]any `json:"meta"`
	Blocks     []any          `json:"blocks"`
}

// ReadDocument decodes a whole document from r. Both the current object
// form and the legacy [{"unMeta": ...}, [blocks]] array form are accepted.
// Numbers are kept as json.Number so they are written back unchanged.
func ReadDocument(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	switch v := raw.(type) {
	case map[string]any:
		blocks, ok := v["blocks"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: missing blocks", ErrMalformed)
		}
		api, _ := v["pandoc-api-version"].([]any)
		return &Document{
			APIVersion: api,
			Meta:       metaMap(v["meta"]),
			Blocks:     blocks,
		}, nil

	case []any:
		if len(v) != 2 {
			return nil, fmt.Errorf("%w: legacy document has %d parts, want 2", ErrMalformed, len(v))
		}
		head, ok := v[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: legacy document lacks unMeta", ErrMalformed)
		}
		blocks, ok := v[1].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: legacy document lacks blocks", ErrMalformed)
		}
		return &Document{
			Meta:   metaMap(head["unMeta"]),
			Blocks: blocks,
			legacy: true,
		}, nil
	}

	return nil, fmt.Errorf("%w: unexpected top-level %T", ErrMalformed, raw)
}

func metaMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Legacy reports whether the document uses the pre-1.18 array form.
func (d *Document) Legacy() bool {
	return d.legacy
}

// Write encodes the document to w in the shape it was read in.
func (d *Document) Write(w io.Writer) error {
	var out any
	if d.legacy {
		out = []any{map[string]any{"unMeta": d.Meta}, d.Blocks}
	} else {
		out = documentJSON{APIVersion: d.APIVersion, Meta: d.Meta, Blocks: d.Blocks}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}
