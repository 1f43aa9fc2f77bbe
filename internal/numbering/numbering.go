// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package numbering assigns dotted section numbers to headers and records
// them by header label.
// Implements: numbering engine (counter vector, target table).
package numbering

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/pandoc-secnos/internal/pandoc"
	"github.com/pdiddy/pandoc-secnos/pkg/types"
)

// ErrInvalidLevel is returned for a header without a positive level.
var ErrInvalidLevel = errors.New("header level must be a positive integer")

// classUnnumbered excludes a header from numbering.
const classUnnumbered = "unnumbered"

// Table maps header labels to their assigned numbers.
type Table struct {
	targets  map[string]*types.Target
	order    []string
	numbered int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{targets: make(map[string]*types.Target)}
}

// Add records label at num. An existing entry is overwritten and flagged
// as a duplicate; its position in Labels is kept.
func (t *Table) Add(label, num string) {
	_, dup := t.targets[label]
	if !dup {
		t.order = append(t.order, label)
	}
	t.targets[label] = &types.Target{
		Label:        label,
		Num:          num,
		HasDuplicate: dup,
	}
}

// Lookup returns the target for label.
func (t *Table) Lookup(label string) (types.Target, bool) {
	tgt, ok := t.targets[label]
	if !ok {
		return types.Target{}, false
	}
	return *tgt, true
}

// Has reports whether label was numbered.
func (t *Table) Has(label string) bool {
	_, ok := t.targets[label]
	return ok
}

// Len returns the number of labels.
func (t *Table) Len() int {
	return len(t.targets)
}

// Numbered returns the number of headers that were numbered, labelled
// or not.
func (t *Table) Numbered() int {
	return t.numbered
}

// Labels returns labels in order of first appearance.
func (t *Table) Labels() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Targets returns all targets in order of first appearance.
func (t *Table) Targets() []types.Target {
	out := make([]types.Target, 0, len(t.order))
	for _, label := range t.order {
		out = append(out, *t.targets[label])
	}
	return out
}

// Duplicates returns labels carried by more than one header.
func (t *Table) Duplicates() []string {
	var out []string
	for _, label := range t.order {
		if t.targets[label].HasDuplicate {
			out = append(out, label)
		}
	}
	return out
}

// Counter is the running section number, one entry per open level.
type Counter struct {
	offset int
	levels []int
}

// NewCounter returns a counter whose first top-level section is offset+1.
func NewCounter(offset int) *Counter {
	return &Counter{offset: offset}
}

// Next advances the counter for a header at level and returns the new
// number. Skipped intermediate levels are filled with zero.
func (c *Counter) Next(level int) (string, error) {
	if level <= 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
	}

	if len(c.levels) == 0 {
		c.levels = []int{c.offset}
	}
	for len(c.levels) < level {
		c.levels = append(c.levels, 0)
	}
	c.levels = c.levels[:level]
	c.levels[level-1]++

	return c.String(), nil
}

// String formats the current number, e.g. "2.3".
func (c *Counter) String() string {
	parts := make([]string, len(c.levels))
	for i, n := range c.levels {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Number walks blocks in reading order and numbers every header that is
// not marked unnumbered. Headers without an identifier take a number and
// count towards Numbered but have no label to look up. The blocks are not
// modified.
func Number(blocks []any, offset int) (*Table, error) {
	table := NewTable()
	counter := NewCounter(offset)

	_, err := pandoc.WalkBlocks(blocks, func(el pandoc.Element) ([]any, error) {
		if el.Type() != "Header" {
			return nil, nil
		}
		h, err := pandoc.ParseHeader(el)
		if err != nil {
			return nil, err
		}
		if h.Attr.HasClass(classUnnumbered) {
			return nil, nil
		}

		num, err := counter.Next(h.Level)
		if err != nil {
			return nil, fmt.Errorf("header %q: %w", h.Attr.ID, err)
		}
		table.numbered++
		if h.Attr.ID != "" {
			table.Add(h.Attr.ID, num)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}
