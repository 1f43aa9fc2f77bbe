// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// sampleDocument is the pandoc JSON for:
//
//	# Introduction {#sec:intro}
//	## Scope {#sec:scope}
//	See +@sec:scope and *@sec:intro.
const sampleDocument = `{"pandoc-api-version":[1,22],"meta":{"xnos-cleveref":{"t":"MetaBool","c":true}},"blocks":[` +
	`{"t":"Header","c":[1,["sec:intro",[],[]],[{"t":"Str","c":"Introduction"}]]},` +
	`{"t":"Header","c":[2,["sec:scope",[],[]],[{"t":"Str","c":"Scope"}]]},` +
	`{"t":"Para","c":[{"t":"Str","c":"See"},{"t":"Space"},{"t":"Str","c":"+@sec:scope"},{"t":"Space"},` +
	`{"t":"Str","c":"and"},{"t":"Space"},{"t":"Str","c":"*@sec:intro."}]}]}`

// runFilter runs bin as pandoc would, with doc on stdin.
func runFilter(bin, format, doc string) error {
	cmd := exec.Command(bin, format)
	cmd.Stdin = strings.NewReader(doc)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s %s: %w", bin, format, err)
	}
	return nil
}
