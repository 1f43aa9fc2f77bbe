// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter runs the section numbering filter over one pandoc
// document: read options from metadata, number headers, resolve
// references, then add LaTeX header-includes where needed.
// Implements: filter orchestration (two passes, preamble, diagnostics).
package filter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/pandoc-secnos/internal/meta"
	"github.com/pdiddy/pandoc-secnos/internal/names"
	"github.com/pdiddy/pandoc-secnos/internal/numbering"
	"github.com/pdiddy/pandoc-secnos/internal/pandoc"
	"github.com/pdiddy/pandoc-secnos/internal/preamble"
	"github.com/pdiddy/pandoc-secnos/internal/refs"
	"github.com/pdiddy/pandoc-secnos/pkg/types"
)

// Options configure a Filter. They are read-only during a run.
type Options struct {
	// Format is the pandoc output format, e.g. "html" or "latex".
	Format types.OutputFormat

	// PandocVersion overrides version detection when set.
	PandocVersion string

	// Defaults supply option values the document metadata does not set.
	Defaults types.FilterConfig

	// Logger receives warnings. Nil uses slog.Default().
	Logger *slog.Logger
}

// Report summarises one run.
type Report struct {
	Numbered         int
	Duplicates       []string
	Resolved         int
	Unresolved       int
	UnresolvedLabels []string
	HeaderIncludes   []string
}

// HasUnresolved reports whether any reference was left unresolved.
func (r Report) HasUnresolved() bool {
	return r.Unresolved > 0
}

// Filter applies section numbering to documents. A Filter keeps no state
// between runs.
type Filter struct {
	opts   Options
	logger *slog.Logger
}

// New returns a Filter for opts.
func New(opts Options) *Filter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{opts: opts, logger: logger.With("filter", "pandoc-secnos")}
}

// Run reads a document from r, filters it and writes it to w.
func (f *Filter) Run(ctx context.Context, r io.Reader, w io.Writer) (Report, error) {
	doc, err := pandoc.ReadDocument(r)
	if err != nil {
		return Report{}, err
	}

	rep, err := f.Apply(ctx, doc)
	if err != nil {
		return rep, err
	}

	if err := doc.Write(w); err != nil {
		return rep, err
	}
	return rep, nil
}

// Apply filters doc in place.
func (f *Filter) Apply(ctx context.Context, doc *pandoc.Document) (Report, error) {
	version, err := pandoc.DetectVersion(f.opts.PandocVersion, doc)
	if err != nil {
		return Report{}, err
	}

	policy, table, err := f.number(doc)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Numbered: table.Numbered(), Duplicates: table.Duplicates()}
	if len(rep.Duplicates) > 0 && policy.WarningLevel >= 1 {
		f.logger.Warn("duplicate section labels; the last header wins", "labels", rep.Duplicates)
	}

	if err := ctx.Err(); err != nil {
		return rep, err
	}

	resolver := refs.New(table, policy, f.opts.Format, pandoc.Builder{Version: version})
	blocks, err := resolver.Repair(doc.Blocks)
	if err != nil {
		return rep, fmt.Errorf("repairing references: %w", err)
	}
	blocks, err = resolver.Resolve(blocks)
	if err != nil {
		return rep, fmt.Errorf("resolving references: %w", err)
	}
	doc.Blocks = blocks

	rep.Resolved = resolver.Resolved()
	rep.Unresolved = resolver.Unresolved()
	rep.UnresolvedLabels = resolver.UnresolvedLabels()
	if rep.HasUnresolved() && policy.WarningLevel >= 1 {
		f.logger.Warn("unresolved section references", "count", rep.Unresolved, "labels", rep.UnresolvedLabels)
	}

	added := preamble.Emit(doc.Meta, f.opts.Format, table.Numbered(), preamble.Needs{
		Policy:           policy,
		CleverefRequired: resolver.CleverefRequired(),
	})
	for _, b := range added {
		rep.HeaderIncludes = append(rep.HeaderIncludes, b.Name)
	}
	if len(added) > 0 && policy.WarningLevel == 2 {
		f.logger.Warn("wrote blocks to header-includes; with pandoc's --include-in-header option they must be included manually",
			"blocks", rep.HeaderIncludes)
		for _, b := range added {
			f.logger.Debug("header-includes block", "name", b.Name, "tex", b.TeX)
		}
	}

	return rep, nil
}

// Number reads options from the document metadata and numbers its
// headers without changing the document.
func (f *Filter) Number(doc *pandoc.Document) (*numbering.Table, error) {
	_, table, err := f.number(doc)
	return table, err
}

func (f *Filter) number(doc *pandoc.Document) (*names.Policy, *numbering.Table, error) {
	res, err := meta.Read(doc.Meta, f.opts.Defaults)
	if err != nil {
		return nil, nil, fmt.Errorf("reading metadata: %w", err)
	}
	if res.Policy.WarningLevel >= 1 {
		for _, key := range res.UnknownKeys {
			f.logger.Warn("unknown meta variable", "key", key)
		}
	}

	table, err := numbering.Number(doc.Blocks, res.Policy.Offset)
	if err != nil {
		return nil, nil, fmt.Errorf("numbering sections: %w", err)
	}
	return res.Policy, table, nil
}
