// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import "fmt"

// MetaValue converts a Meta* node into a plain Go value: MetaString and
// MetaInlines become string, MetaBool bool, MetaList []any and MetaMap
// map[string]any. MetaBlocks are stringified.
func MetaValue(v any) (any, error) {
	el, ok := AsElement(v)
	if !ok {
		return nil, fmt.Errorf("%w: metadata value is not a Meta node", ErrMalformed)
	}

	switch el.Type() {
	case "MetaString":
		return el.Text(), nil

	case "MetaBool":
		b, ok := el.Content().(bool)
		if !ok {
			return nil, fmt.Errorf("%w: MetaBool without bool content", ErrMalformed)
		}
		return b, nil

	case "MetaInlines", "MetaBlocks":
		return Stringify(el.Content()), nil

	case "MetaList":
		items, _ := el.Content().([]any)
		out := make([]any, 0, len(items))
		for _, item := range items {
			val, err := MetaValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil

	case "MetaMap":
		fields, _ := el.Content().(map[string]any)
		out := make(map[string]any, len(fields))
		for k, item := range fields {
			val, err := MetaValue(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = val
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: unknown metadata node %q", ErrMalformed, el.Type())
}

// MetaBlocks wraps blocks in a MetaBlocks node.
func MetaBlocks(blocks ...any) Element {
	return Element{"t": "MetaBlocks", "c": blocks}
}

// MetaList wraps items in a MetaList node.
func MetaList(items ...any) Element {
	return Element{"t": "MetaList", "c": items}
}
