// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preamble adds the LaTeX header-includes that section references
// need: the cleveref package, changed reference names and the section
// counter offset.
// Implements: preamble emitter (cleveref, crefname, section offset).
package preamble

import (
	"fmt"
	"regexp"

	"github.com/pdiddy/pandoc-secnos/internal/names"
	"github.com/pdiddy/pandoc-secnos/internal/pandoc"
	"github.com/pdiddy/pandoc-secnos/pkg/types"
)

const headerIncludes = "header-includes"

var (
	cleverefGuard  = regexp.MustCompile(`\\usepackage(\[[\w\s,]*\])?\{cleveref\}`)
	secoffsetGuard = regexp.MustCompile(`\\setcounter\{section\}`)
)

// Block is one raw TeX block destined for header-includes. A block whose
// Guard matches the existing header-includes is not added again.
type Block struct {
	Name  string
	TeX   string
	Guard *regexp.Regexp
}

// Needs is the state that decides which blocks are required.
type Needs struct {
	Policy           *names.Policy
	CleverefRequired bool
}

// Blocks returns the required blocks in the order they are emitted.
func Blocks(n Needs) []Block {
	var out []Block
	p := n.Policy

	if n.CleverefRequired {
		opt := ""
		if p.Capitalise {
			opt = "[capitalise]"
		}
		out = append(out, Block{
			Name:  "cleveref",
			TeX:   fmt.Sprintf("\n%%%% pandoc-secnos: required package\n\\usepackage%s{cleveref}\n", opt),
			Guard: cleverefGuard,
		})
	}

	for _, div := range names.Divisions {
		if p.PlusChanged(div) {
			f := p.Plus(div)
			out = append(out, Block{
				Name: "crefname-" + string(div),
				TeX:  fmt.Sprintf("\n%%%% pandoc-secnos: change cref names\n\\crefname{%s}{%s}{%s}\n", div, f.Singular, f.Plural),
			})
		}
	}
	for _, div := range names.Divisions {
		if p.StarChanged(div) {
			f := p.Star(div)
			out = append(out, Block{
				Name: "Crefname-" + string(div),
				TeX:  fmt.Sprintf("\n%%%% pandoc-secnos: change Cref names\n\\Crefname{%s}{%s}{%s}\n", div, f.Singular, f.Plural),
			})
		}
	}

	if p.Offset != 0 {
		out = append(out, Block{
			Name:  "secoffset",
			TeX:   fmt.Sprintf("\n%%%% pandoc-secnos: section number offset\n\\setcounter{section}{%d}\n", p.Offset),
			Guard: secoffsetGuard,
		})
	}
	return out
}

// Emit adds the required blocks to meta for LaTeX-class formats when at
// least one section was numbered. It returns the blocks actually added.
func Emit(meta map[string]any, format types.OutputFormat, numbered int, n Needs) []Block {
	if !format.IsLaTeX() || numbered == 0 {
		return nil
	}
	var added []Block
	for _, b := range Blocks(n) {
		if Add(meta, b) {
			added = append(added, b)
		}
	}
	return added
}

// Add appends b to the header-includes of meta as a tex RawBlock, turning
// a single existing value into a list. It reports false when b.Guard
// matches what is already there.
func Add(meta map[string]any, b Block) bool {
	existing, ok := meta[headerIncludes]
	if ok && b.Guard != nil && b.Guard.MatchString(pandoc.Stringify(existing)) {
		return false
	}

	entry := pandoc.MetaBlocks(pandoc.RawBlock("tex", b.TeX))
	if !ok {
		meta[headerIncludes] = pandoc.MetaList(entry)
		return true
	}

	if el, isEl := pandoc.AsElement(existing); isEl && el.Type() == "MetaList" {
		items, _ := el.Content().([]any)
		el["c"] = append(items, entry)
		return true
	}
	meta[headerIncludes] = pandoc.MetaList(existing, entry)
	return true
}
