// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FilterConfig holds defaults for the naming and numbering policy. Values
// come from the optional pandoc-secnos.yaml config file; document metadata
// overrides every field.
type FilterConfig struct {
	// Cleveref makes references carry a section name by default.
	Cleveref bool `json:"cleveref" yaml:"cleveref" mapstructure:"cleveref"`

	// Capitalise title-cases the mid-sentence name unless it was overridden.
	Capitalise bool `json:"capitalise" yaml:"capitalise" mapstructure:"capitalise"`

	// WarningLevel is 0 (silent), 1 (some warnings) or 2 (all warnings).
	WarningLevel int `json:"warning_level" yaml:"warning_level" mapstructure:"warning_level"`

	// NumberOffset seeds the first section counter (default 0).
	NumberOffset int `json:"number_offset" yaml:"number_offset" mapstructure:"number_offset"`

	// PlusName overrides mid-sentence names, keyed by division
	// ("section", "chapter"). Each value is a singular name or a
	// [singular, plural] pair.
	PlusName map[string]any `json:"plus_name,omitempty" yaml:"plus_name,omitempty" mapstructure:"plus_name"`

	// StarName overrides sentence-initial names, same shape as PlusName.
	StarName map[string]any `json:"star_name,omitempty" yaml:"star_name,omitempty" mapstructure:"star_name"`
}

// DefaultWarningLevel reports everything.
const DefaultWarningLevel = 2

// DefaultFilterConfig returns the built-in defaults.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{WarningLevel: DefaultWarningLevel}
}

// OutputFormat is the pandoc output format name passed to the filter.
type OutputFormat string

const (
	FormatLaTeX  OutputFormat = "latex"
	FormatBeamer OutputFormat = "beamer"
)

// IsLaTeX reports whether references for this format are deferred to
// LaTeX reference macros.
func (f OutputFormat) IsLaTeX() bool {
	return f == FormatLaTeX || f == FormatBeamer
}
