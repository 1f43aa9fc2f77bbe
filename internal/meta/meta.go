// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package meta reads the secnos/xnos options from document metadata into a
// naming policy. Options missing from the document keep the defaults from
// the configuration file.
//
// Recognised keys: secnos-warning-level, xnos-warning-level,
// secnos-cleveref, xnos-cleveref, xnos-capitalise, xnos-capitalize,
// secnos-plus-name, secnos-star-name, xnos-number-offset. The keys
// xnos-caption-separator and xnos-number-by-section belong to sibling
// filters and are accepted without effect.
// Implements: metadata options (alias groups, unknown-key warnings).
package meta

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/pandoc-secnos/internal/names"
	"github.com/pdiddy/pandoc-secnos/internal/pandoc"
	"github.com/pdiddy/pandoc-secnos/pkg/types"
)

// ErrInvalidOption is returned for an option value of the wrong shape.
var ErrInvalidOption = errors.New("invalid metadata option")

// Alias groups: the first key present wins.
var (
	warningLevelKeys = []string{"secnos-warning-level", "xnos-warning-level"}
	cleverefKeys     = []string{"secnos-cleveref", "xnos-cleveref"}
	capitaliseKeys   = []string{"xnos-capitalise", "xnos-capitalize"}
)

const (
	keyPlusName     = "secnos-plus-name"
	keyStarName     = "secnos-star-name"
	keyNumberOffset = "xnos-number-offset"
)

var knownKeys = map[string]bool{
	"secnos-warning-level":   true,
	"xnos-warning-level":     true,
	"secnos-cleveref":        true,
	"xnos-cleveref":          true,
	"xnos-capitalise":        true,
	"xnos-capitalize":        true,
	"xnos-caption-separator": true,
	"secnos-plus-name":       true,
	"secnos-star-name":       true,
	"xnos-number-by-section": true,
	"xnos-number-offset":     true,
}

// Result is what Read found in the metadata.
type Result struct {
	Policy *names.Policy

	// UnknownKeys lists secnos/xnos keys that are not options, sorted.
	UnknownKeys []string
}

// Read builds the naming policy from defaults, then from meta.
func Read(meta map[string]any, defaults types.FilterConfig) (Result, error) {
	p, err := fromConfig(defaults)
	if err != nil {
		return Result{}, fmt.Errorf("config defaults: %w", err)
	}

	if v, key, ok, err := lookup(meta, warningLevelKeys...); err != nil {
		return Result{}, err
	} else if ok {
		level, err := toInt(v)
		if err != nil || level < 0 || level > 2 {
			return Result{}, fmt.Errorf("%w: %s must be 0, 1 or 2", ErrInvalidOption, key)
		}
		p.WarningLevel = level
	}

	if v, key, ok, err := lookup(meta, cleverefKeys...); err != nil {
		return Result{}, err
	} else if ok {
		if p.Cleveref, err = toBool(v); err != nil {
			return Result{}, fmt.Errorf("%s: %w", key, err)
		}
	}

	if v, key, ok, err := lookup(meta, capitaliseKeys...); err != nil {
		return Result{}, err
	} else if ok {
		if p.Capitalise, err = toBool(v); err != nil {
			return Result{}, fmt.Errorf("%s: %w", key, err)
		}
	}

	if err := applyNames(meta, keyPlusName, p.SetPlus); err != nil {
		return Result{}, err
	}
	if err := applyNames(meta, keyStarName, p.SetStar); err != nil {
		return Result{}, err
	}

	if v, key, ok, err := lookup(meta, keyNumberOffset); err != nil {
		return Result{}, err
	} else if ok {
		if p.Offset, err = toInt(v); err != nil {
			return Result{}, fmt.Errorf("%s: %w", key, err)
		}
	}

	return Result{Policy: p, UnknownKeys: unknownKeys(meta)}, nil
}

func fromConfig(cfg types.FilterConfig) (*names.Policy, error) {
	p := names.NewPolicy()
	p.Cleveref = cfg.Cleveref
	p.Capitalise = cfg.Capitalise
	p.WarningLevel = cfg.WarningLevel
	p.Offset = cfg.NumberOffset

	if len(cfg.PlusName) > 0 {
		if err := setAll(cfg.PlusName, p.SetPlus); err != nil {
			return nil, fmt.Errorf("plus_name: %w", err)
		}
	}
	if len(cfg.StarName) > 0 {
		if err := setAll(cfg.StarName, p.SetStar); err != nil {
			return nil, fmt.Errorf("star_name: %w", err)
		}
	}
	return p, nil
}

type setter func(names.Division, names.Override) error

func applyNames(meta map[string]any, key string, set setter) error {
	v, _, ok, err := lookup(meta, key)
	if err != nil || !ok {
		return err
	}
	if err := setAll(v, set); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func setAll(v any, set setter) error {
	assignments, err := names.ParseOverrides(v)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := set(a.Division, a.Override); err != nil {
			return err
		}
	}
	return nil
}

// lookup returns the converted value of the first key present in meta.
func lookup(meta map[string]any, keys ...string) (any, string, bool, error) {
	for _, key := range keys {
		node, ok := meta[key]
		if !ok {
			continue
		}
		v, err := pandoc.MetaValue(node)
		if err != nil {
			return nil, key, false, fmt.Errorf("%s: %w", key, err)
		}
		return v, key, true, nil
	}
	return nil, "", false, nil
}

func unknownKeys(meta map[string]any) []string {
	var out []string
	for key := range meta {
		if (strings.HasPrefix(key, "secnos") || strings.HasPrefix(key, "xnos")) && !knownKeys[key] {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: %v is not a boolean", ErrInvalidOption, v)
}

func toInt(v any) (int, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidOption, v)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidOption, s)
	}
	return n, nil
}
