// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package names holds the naming and style policy for section references:
// the mid-sentence ("plus") and sentence-initial ("star") names of each
// division, capitalisation, clever referencing and the numbering offset.
// Implements: naming/style policy (plus and star names, overrides).
package names

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidName is returned for a name override that is not a singular
// name or a (singular, plural) pair of strings.
var ErrInvalidName = errors.New("invalid name override")

// Division is a numbered document division.
type Division string

const (
	Section Division = "section"
	Chapter Division = "chapter"
)

// Divisions lists the known divisions in a fixed order.
var Divisions = []Division{Section, Chapter}

func (d Division) valid() bool {
	return d == Section || d == Chapter
}

// Forms is a singular/plural name pair.
type Forms struct {
	Singular string
	Plural   string
}

// Pick returns the plural form when n > 1.
func (f Forms) Pick(n int) string {
	if n > 1 {
		return f.Plural
	}
	return f.Singular
}

func (f Forms) title() Forms {
	c := cases.Title(language.Und)
	return Forms{Singular: c.String(f.Singular), Plural: c.String(f.Plural)}
}

// Style selects how a reference is named.
type Style int

const (
	// StyleNone renders the bare number.
	StyleNone Style = iota
	// StylePlus uses the mid-sentence name ("section 2").
	StylePlus
	// StyleStar uses the sentence-initial name ("Section 2").
	StyleStar
)

// Macro returns the LaTeX reference macro for the style.
func (s Style) Macro() string {
	switch s {
	case StylePlus:
		return `\cref`
	case StyleStar:
		return `\Cref`
	}
	return `\ref`
}

// Policy is the naming and style state of one filter run.
type Policy struct {
	// Cleveref names references that carry no explicit modifier.
	Cleveref bool
	// Capitalise title-cases plus names that were not overridden.
	Capitalise bool
	// Offset seeds the first top-level section number.
	Offset int
	// WarningLevel is 0 (none), 1 (some) or 2 (all).
	WarningLevel int

	plus        map[Division]Forms
	star        map[Division]Forms
	plusChanged map[Division]bool
	starChanged map[Division]bool
}

// NewPolicy returns the default policy.
func NewPolicy() *Policy {
	return &Policy{
		WarningLevel: 2,
		plus: map[Division]Forms{
			Section: {"section", "sections"},
			Chapter: {"chapter", "chapters"},
		},
		star: map[Division]Forms{
			Section: {"Section", "Sections"},
			Chapter: {"Chapter", "Chapters"},
		},
		plusChanged: map[Division]bool{},
		starChanged: map[Division]bool{},
	}
}

// SetPlus applies a mid-sentence name override. When it changes the name,
// the sentence-initial name becomes its title-cased copy.
func (p *Policy) SetPlus(div Division, o Override) error {
	changed, err := set(p.plus, div, o)
	if err != nil {
		return err
	}
	if changed {
		p.plusChanged[div] = true
		p.star[div] = p.plus[div].title()
	}
	return nil
}

// SetStar applies a sentence-initial name override.
func (p *Policy) SetStar(div Division, o Override) error {
	changed, err := set(p.star, div, o)
	if err != nil {
		return err
	}
	if changed {
		p.starChanged[div] = true
	}
	return nil
}

func set(names map[Division]Forms, div Division, o Override) (bool, error) {
	if !div.valid() {
		return false, fmt.Errorf("%w: unknown division %q", ErrInvalidName, div)
	}
	old := names[div]
	next := old
	next.Singular = o.Singular
	if o.HasPlural {
		next.Plural = o.Plural
	}
	names[div] = next
	return next != old, nil
}

// Plus returns the mid-sentence names as configured.
func (p *Policy) Plus(div Division) Forms {
	return p.plus[div]
}

// Star returns the sentence-initial names.
func (p *Policy) Star(div Division) Forms {
	return p.star[div]
}

// PlusFor returns the mid-sentence names used in rendered text:
// title-cased when capitalising, unless the plus name was overridden.
func (p *Policy) PlusFor(div Division) Forms {
	if p.Capitalise && !p.plusChanged[div] {
		return p.plus[div].title()
	}
	return p.plus[div]
}

// Name returns the rendered name for style and count, or "" for StyleNone.
func (p *Policy) Name(div Division, style Style, n int) string {
	switch style {
	case StylePlus:
		return p.PlusFor(div).Pick(n)
	case StyleStar:
		return p.Star(div).Pick(n)
	}
	return ""
}

// PlusChanged reports whether the plus name of div was overridden.
func (p *Policy) PlusChanged(div Division) bool {
	return p.plusChanged[div]
}

// StarChanged reports whether the star name of div was overridden.
func (p *Policy) StarChanged(div Division) bool {
	return p.starChanged[div]
}
