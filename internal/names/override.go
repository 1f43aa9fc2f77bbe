// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"fmt"
	"sort"
	"strings"
)

// Override is one parsed name override: a singular name and, when
// HasPlural is set, a plural name.
type Override struct {
	Singular  string
	Plural    string
	HasPlural bool
}

// Pair builds an override carrying both forms.
func Pair(singular, plural string) Override {
	return Override{Singular: singular, Plural: plural, HasPlural: true}
}

// Singular builds an override of the singular form only.
func Singular(name string) Override {
	return Override{Singular: name}
}

// Assignment binds an override to a division.
type Assignment struct {
	Division Division
	Override Override
}

// ParseOverrides decodes a configuration value into name assignments.
// Accepted shapes:
//
//	"Part"                      singular name for section
//	"section:Part,chapter:Chap" singular names per division
//	["Part", "Parts"]           both forms for section
//	{section: "Part"}           per division, singular
//	{section: ["Part","Parts"]} per division, both forms
//
// Anything else fails with ErrInvalidName.
func ParseOverrides(value any) ([]Assignment, error) {
	switch v := value.(type) {
	case string:
		if byDiv, ok := splitDivisionList(v); ok {
			return byDivision(byDiv)
		}
		return []Assignment{{Section, Singular(v)}}, nil

	case []any:
		o, err := parsePair(v)
		if err != nil {
			return nil, err
		}
		return []Assignment{{Section, o}}, nil

	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return ParseOverrides(items)

	case map[string]any:
		return byDivision(v)
	}
	return nil, fmt.Errorf("%w: unsupported value of type %T", ErrInvalidName, value)
}

// splitDivisionList parses "div:name,div:name". It fails unless every
// comma-separated item is exactly one colon-separated pair.
func splitDivisionList(s string) (map[string]any, bool) {
	out := make(map[string]any)
	for _, item := range strings.Split(s, ",") {
		parts := strings.Split(item, ":")
		if len(parts) != 2 {
			return nil, false
		}
		out[parts[0]] = parts[1]
	}
	return out, true
}

func byDivision(m map[string]any) ([]Assignment, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Assignment, 0, len(m))
	for _, k := range keys {
		div := Division(k)
		if !div.valid() {
			return nil, fmt.Errorf("%w: unknown division %q", ErrInvalidName, k)
		}
		var o Override
		switch v := m[k].(type) {
		case string:
			o = Singular(v)
		case []any:
			var err error
			if o, err = parsePair(v); err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
		default:
			return nil, fmt.Errorf("%w: %s: unsupported value of type %T", ErrInvalidName, k, v)
		}
		out = append(out, Assignment{Division: div, Override: o})
	}
	return out, nil
}

func parsePair(items []any) (Override, error) {
	if len(items) != 2 {
		return Override{}, fmt.Errorf("%w: want [singular, plural], got %d names", ErrInvalidName, len(items))
	}
	singular, ok1 := items[0].(string)
	plural, ok2 := items[1].(string)
	if !ok1 || !ok2 {
		return Override{}, fmt.Errorf("%w: names must be strings", ErrInvalidName)
	}
	return Pair(singular, plural), nil
}
