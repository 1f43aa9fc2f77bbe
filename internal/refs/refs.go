// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refs rewrites @sec:label references into section numbers, or
// into LaTeX reference macros for LaTeX output.
//
// A reference is a pandoc Cite whose citation ids all look like section
// labels. A single preceding character selects the name style:
//
//	+@sec:a   mid-sentence name   "section 1"   \cref{sec:a}
//	*@sec:a   sentence-start name "Section 1"   \Cref{sec:a}
//	!@sec:a   no name             "1"           \ref{sec:a}
//
// Without a modifier the reference is named only in clever reference mode,
// with the sentence-start name when it opens a sentence. Curly braces
// around a reference ({@sec:a}) are removed.
// Implements: reference resolver (repair, modifiers, rendering).
package refs

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/pandoc-secnos/internal/names"
	"github.com/pdiddy/pandoc-secnos/internal/numbering"
	"github.com/pdiddy/pandoc-secnos/internal/pandoc"
	"github.com/pdiddy/pandoc-secnos/pkg/types"
)

// LabelPattern matches section labels at the start of a citation id.
var LabelPattern = regexp.MustCompile(`^sec:[\p{L}\p{N}_/-]*`)

// strayRef finds references pandoc left inside Str text.
var strayRef = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_@])@(sec:[\p{L}\p{N}_/-]*)`)

// texFormat is the raw format of emitted LaTeX.
const texFormat = "tex"

// skipContainers hold inline text that must not gain links. Nothing below
// them is rewritten.
var skipContainers = map[string]bool{
	"Link": true,
}

// Resolver rewrites references against a numbering table. Counters
// accumulate across calls; use a new Resolver per document.
type Resolver struct {
	table  *numbering.Table
	policy *names.Policy
	format types.OutputFormat
	build  pandoc.Builder

	resolved     int
	unresolved   int
	missing      map[string]int
	cleverefUsed bool
}

// New returns a Resolver for one document.
func New(table *numbering.Table, policy *names.Policy, format types.OutputFormat, build pandoc.Builder) *Resolver {
	return &Resolver{
		table:   table,
		policy:  policy,
		format:  format,
		build:   build,
		missing: make(map[string]int),
	}
}

// IsLabel reports whether id names a section: it matches LabelPattern or
// is a numbered label.
func (r *Resolver) IsLabel(id string) bool {
	return LabelPattern.MatchString(id) || r.table.Has(id)
}

func (r *Resolver) isReference(el pandoc.Element) ([]string, bool) {
	ids, ok := pandoc.CiteIDs(el)
	if !ok {
		return nil, false
	}
	for _, id := range ids {
		if !r.IsLabel(id) {
			return nil, false
		}
	}
	return ids, true
}

// Repair splits references that pandoc did not parse as citations out of
// Str elements, so that Resolve sees them as Cite elements.
func (r *Resolver) Repair(blocks []any) ([]any, error) {
	return pandoc.WalkBlocks(blocks, r.onContainer(func(list []any) ([]any, error) {
		out := make([]any, 0, len(list))
		for _, item := range list {
			el, ok := pandoc.AsElement(item)
			if !ok || el.Type() != "Str" {
				out = append(out, item)
				continue
			}
			out = append(out, splitStray(el.Text())...)
		}
		return out, nil
	}))
}

func splitStray(s string) []any {
	locs := strayRef.FindAllStringSubmatchIndex(s, -1)
	if locs == nil {
		return []any{pandoc.Str(s)}
	}

	var out []any
	last := 0
	for _, loc := range locs {
		at := loc[2] - 1 // the '@'
		if at > last {
			out = append(out, pandoc.Str(s[last:at]))
		}
		label := s[loc[2]:loc[3]]
		out = append(out, pandoc.Cite(label, "@"+label))
		last = loc[3]
	}
	if last < len(s) {
		out = append(out, pandoc.Str(s[last:]))
	}
	return out
}

// Resolve replaces every reference whose labels are all numbered. Other
// references are left in place and counted as unresolved. The table is
// only read.
func (r *Resolver) Resolve(blocks []any) ([]any, error) {
	return pandoc.WalkBlocks(blocks, r.onContainer(r.resolveList))
}

// onContainer adapts an inline-list rewrite into a walk action.
func (r *Resolver) onContainer(rewrite func([]any) ([]any, error)) pandoc.Action {
	return func(el pandoc.Element) ([]any, error) {
		if skipContainers[el.Type()] {
			return nil, pandoc.SkipChildren
		}
		list, ok := pandoc.InlineList(el)
		if !ok {
			return nil, nil
		}
		list, err := rewrite(list)
		if err != nil {
			return nil, err
		}
		pandoc.SetInlineList(el, list)
		return nil, nil
	}
}

func (r *Resolver) resolveList(list []any) ([]any, error) {
	out := make([]any, 0, len(list))
	for i := 0; i < len(list); i++ {
		el, ok := pandoc.AsElement(list[i])
		if !ok {
			out = append(out, list[i])
			continue
		}
		ids, ok := r.isReference(el)
		if !ok {
			out = append(out, list[i])
			continue
		}
		if r.countMissing(ids) {
			out = append(out, list[i])
			continue
		}

		mod := extractModifier(&out)

		skipNext := false
		if i+1 < len(list) && lastStrHasSuffix(out, "{") && strHasPrefix(list[i+1], "}") {
			out = trimLastStr(out, 1)
			rest := strings.TrimPrefix(strText(list[i+1]), "}")
			if rest == "" {
				skipNext = true
			} else {
				list[i+1] = pandoc.Str(rest)
			}
		}

		rendered, err := r.Render(ids, r.style(mod, sentenceStart(out)))
		if err != nil {
			return nil, err
		}
		out = append(out, rendered...)
		r.resolved++

		if skipNext {
			i++
		}
	}
	return out, nil
}

// countMissing records labels absent from the table and reports whether
// there were any.
func (r *Resolver) countMissing(ids []string) bool {
	missing := false
	for _, id := range ids {
		if !r.table.Has(id) {
			r.missing[id]++
			r.unresolved++
			missing = true
		}
	}
	return missing
}

// style picks the naming style for a reference.
func (r *Resolver) style(mod byte, atSentenceStart bool) names.Style {
	switch mod {
	case '+':
		return names.StylePlus
	case '*':
		return names.StyleStar
	case '!':
		return names.StyleNone
	}
	if !r.policy.Cleveref {
		return names.StyleNone
	}
	if atSentenceStart {
		return names.StyleStar
	}
	return names.StylePlus
}

// Render returns the inline replacement for a group of labels sharing one
// name: a reference macro for LaTeX output, otherwise the name followed by
// linked numbers ("sections 2.1, 2.3, and 4"). Every label must be numbered.
func (r *Resolver) Render(labels []string, style names.Style) ([]any, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("rendering reference: no labels")
	}

	if r.format.IsLaTeX() {
		if style != names.StyleNone {
			r.cleverefUsed = true
			return []any{pandoc.RawInline(texFormat, fmt.Sprintf(`%s{%s}`, style.Macro(), strings.Join(labels, ",")))}, nil
		}
		items := make([]any, len(labels))
		for i, label := range labels {
			items[i] = pandoc.RawInline(texFormat, fmt.Sprintf(`\ref{%s}`, label))
		}
		return r.join(items), nil
	}

	items := make([]any, len(labels))
	for i, label := range labels {
		tgt, ok := r.table.Lookup(label)
		if !ok {
			return nil, fmt.Errorf("rendering reference: label %q is not numbered", label)
		}
		items[i] = r.build.Link([]any{pandoc.Str(tgt.Num)}, "#"+label, "")
	}

	out := r.join(items)
	if name := r.policy.Name(names.Section, style, len(labels)); name != "" {
		out = append([]any{pandoc.Str(name), r.build.Space()}, out...)
	}
	return out, nil
}

// join lists items as "a", "a and b" or "a, b, and c".
func (r *Resolver) join(items []any) []any {
	if len(items) == 2 {
		return []any{items[0], r.build.Space(), pandoc.Str("and"), r.build.Space(), items[1]}
	}
	out := make([]any, 0, 4*len(items))
	for i, item := range items {
		if i > 0 {
			out = append(out, pandoc.Str(","), r.build.Space())
			if i == len(items)-1 {
				out = append(out, pandoc.Str("and"), r.build.Space())
			}
		}
		out = append(out, item)
	}
	return out
}

// Resolved returns the number of references replaced so far.
func (r *Resolver) Resolved() int {
	return r.resolved
}

// Unresolved returns the number of label occurrences with no number.
func (r *Resolver) Unresolved() int {
	return r.unresolved
}

// UnresolvedLabels returns the distinct unnumbered labels, sorted.
func (r *Resolver) UnresolvedLabels() []string {
	out := make([]string, 0, len(r.missing))
	for label := range r.missing {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// CleverefRequired reports whether a \cref or \Cref macro was emitted.
func (r *Resolver) CleverefRequired() bool {
	return r.cleverefUsed
}
