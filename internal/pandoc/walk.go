// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"errors"
	"sort"
)

// Action visits one element. Returning a nil slice keeps the element;
// a non-nil slice replaces it, and an empty slice removes it. The walk
// then descends into whatever was kept or substituted. Returning
// SkipChildren keeps the element as is and does not descend into it.
type Action func(el Element) ([]any, error)

// SkipChildren is returned by an Action to leave an element and everything
// below it unvisited. It is never returned by Walk.
var SkipChildren = errors.New("skip children")

// Walk applies action to every element under x in reading order
// (pre-order, depth first) and returns the rewritten tree. Elements are
// modified in place where possible; callers should use the return value.
func Walk(x any, action Action) (any, error) {
	switch v := x.(type) {
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			el, ok := AsElement(item)
			if !ok {
				w, err := Walk(item, action)
				if err != nil {
					return nil, err
				}
				out = append(out, w)
				continue
			}

			repl, err := action(el)
			if errors.Is(err, SkipChildren) {
				out = append(out, el)
				continue
			}
			if err != nil {
				return nil, err
			}
			if repl == nil {
				repl = []any{el}
			}
			for _, r := range repl {
				w, err := Walk(r, action)
				if err != nil {
					return nil, err
				}
				out = append(out, w)
			}
		}
		return out, nil

	case Element:
		return v, walkMap(v, action)

	case map[string]any:
		return v, walkMap(v, action)
	}
	return x, nil
}

func walkMap(m map[string]any, action Action) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		w, err := Walk(m[k], action)
		if err != nil {
			return err
		}
		m[k] = w
	}
	return nil
}

// WalkBlocks walks a block list and returns the rewritten list.
func WalkBlocks(blocks []any, action Action) ([]any, error) {
	out, err := Walk(blocks, action)
	if err != nil {
		return nil, err
	}
	return out.([]any), nil
}

// Stringify returns the plain text of x: Str contents, a single space for
// each Space, SoftBreak or LineBreak, and the literal text of code, math
// and raw elements.
func Stringify(x any) string {
	var buf []byte
	collect := func(el Element) ([]any, error) {
		switch el.Type() {
		case "Str", "MetaString":
			buf = append(buf, el.Text()...)
		case "Space", "SoftBreak", "LineBreak":
			buf = append(buf, ' ')
		case "Code", "Math", "RawInline", "RawBlock", "CodeBlock":
			if c, ok := el.Content().([]any); ok && len(c) == 2 {
				if s, ok := c[1].(string); ok {
					buf = append(buf, s...)
				}
			}
		case "Para", "Plain":
			if len(buf) > 0 {
				buf = append(buf, '\n')
			}
		}
		return nil, nil
	}

	// Walk only visits elements inside lists.
	if el, ok := AsElement(x); ok {
		x = []any{el}
	}
	_, _ = Walk(x, collect)
	return string(buf)
}
