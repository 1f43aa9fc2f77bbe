// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Target records the number assigned to a labelled header.
type Target struct {
	// Label is the header identifier (e.g. "sec:intro").
	Label string `json:"label" yaml:"label"`

	// Num is the dotted section number (e.g. "2.1").
	Num string `json:"num" yaml:"num"`

	// HasDuplicate is set when an earlier header carried the same label.
	// The number is the one from the latest header.
	HasDuplicate bool `json:"has_duplicate" yaml:"has_duplicate"`
}
