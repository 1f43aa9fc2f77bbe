// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refs

import (
	"strings"

	"github.com/pdiddy/pandoc-secnos/internal/pandoc"
)

func strText(v any) string {
	el, ok := pandoc.AsElement(v)
	if !ok || el.Type() != "Str" {
		return ""
	}
	return el.Text()
}

func strHasPrefix(v any, prefix string) bool {
	return strings.HasPrefix(strText(v), prefix)
}

func lastStrHasSuffix(out []any, suffix string) bool {
	return len(out) > 0 && strings.HasSuffix(strText(out[len(out)-1]), suffix)
}

// trimLastStr drops n trailing bytes from the final Str of out, removing
// the element when nothing is left.
func trimLastStr(out []any, n int) []any {
	last := strText(out[len(out)-1])
	if len(last) <= n {
		return out[:len(out)-1]
	}
	out[len(out)-1] = pandoc.Str(last[:len(last)-n])
	return out
}

// extractModifier removes a trailing +, * or ! from the Str just before a
// reference and returns it, or 0 when there is none.
func extractModifier(out *[]any) byte {
	if len(*out) == 0 {
		return 0
	}
	text := strText((*out)[len(*out)-1])
	if text == "" {
		return 0
	}
	mod := text[len(text)-1]
	switch mod {
	case '+', '*', '!':
		*out = trimLastStr(*out, 1)
		return mod
	}
	return 0
}

// sentenceStart reports whether a reference appended after out opens a
// sentence: nothing but spacing precedes it, or the preceding word ends
// with terminal punctuation.
func sentenceStart(out []any) bool {
	for i := len(out) - 1; i >= 0; i-- {
		el, ok := pandoc.AsElement(out[i])
		if !ok {
			return false
		}
		switch el.Type() {
		case "Space", "SoftBreak", "LineBreak":
			continue
		case "Str":
			text := strings.TrimRight(el.Text(), `"')]’”`)
			if text == "" {
				continue
			}
			switch text[len(text)-1] {
			case '.', '!', '?':
				return true
			}
			return false
		}
		return false
	}
	return true
}
