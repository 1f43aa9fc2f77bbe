// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a dotted pandoc version such as 2.11.4.
type Version []int

var (
	// V1_16 introduced attributes on links.
	V1_16 = Version{1, 16}
	// V1_18 introduced the pandoc-api-version document object.
	V1_18 = Version{1, 18}
	// legacyDefault is assumed for array-form documents with no version given.
	legacyDefault = Version{1, 17}
)

// ParseVersion parses a dotted version. A leading "v" is ignored.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return nil, fmt.Errorf("empty pandoc version")
	}
	parts := strings.Split(s, ".")
	v := make(Version, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid pandoc version %q", s)
		}
		v[i] = n
	}
	return v, nil
}

// Compare returns -1, 0 or 1. Missing trailing components count as zero.
func (v Version) Compare(o Version) int {
	for i := 0; i < len(v) || i < len(o); i++ {
		a, b := 0, 0
		if i < len(v) {
			a = v[i]
		}
		if i < len(o) {
			b = o[i]
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// Less reports whether v is older than o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// DetectVersion picks the pandoc version for doc. An explicit version wins;
// otherwise documents with a pandoc-api-version come from 1.18 or later and
// legacy documents are taken to be 1.17.
func DetectVersion(explicit string, doc *Document) (Version, error) {
	if explicit != "" {
		return ParseVersion(explicit)
	}
	if doc.Legacy() {
		return legacyDefault, nil
	}
	return V1_18, nil
}
