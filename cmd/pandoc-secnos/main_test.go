// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pandoc-secnos/pkg/types"
)

const sampleDoc = `{"pandoc-api-version":[1,22],"meta":{},"blocks":[` +
	`{"t":"Header","c":[1,["sec:intro",[],[]],[{"t":"Str","c":"Intro"}]]},` +
	`{"t":"Header","c":[2,["sec:scope",[],[]],[{"t":"Str","c":"Scope"}]]},` +
	`{"t":"Header","c":[1,["sec:intro",[],[]],[{"t":"Str","c":"Again"}]]},` +
	`{"t":"Para","c":[{"t":"Str","c":"See"},{"t":"Space"},{"t":"Str","c":"+"},` +
	`{"t":"Cite","c":[[{"citationId":"sec:scope","citationPrefix":[],"citationSuffix":[],"citationMode":{"t":"AuthorInText"},"citationNoteNum":0,"citationHash":0}],[{"t":"Str","c":"@sec:scope"}]]}]}` +
	`]}`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		_ = targetsCmd.Flags().Set("format", "yaml")
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFilterCommand(t *testing.T) {
	out, stderr, err := execute(t, sampleDoc, "html")
	require.NoError(t, err)

	assert.Contains(t, out, `"pandoc-api-version"`)
	assert.Contains(t, out, `"c":"section"`)
	assert.Contains(t, out, `"#sec:scope"`)
	assert.Contains(t, stderr, "duplicate section labels")
	assert.NotContains(t, out, "duplicate")
}

func TestFilterCommand_LaTeX(t *testing.T) {
	out, _, err := execute(t, sampleDoc, "LaTeX")
	require.NoError(t, err)
	assert.Contains(t, out, `\\cref{sec:scope}`)
	assert.Contains(t, out, `"header-includes"`)
}

func TestFilterCommand_MalformedInput(t *testing.T) {
	_, _, err := execute(t, `{"meta":{}}`, "html")
	assert.Error(t, err)
}

func TestTargetsCommand(t *testing.T) {
	out, _, err := execute(t, sampleDoc, "targets")
	require.NoError(t, err)

	var got []types.Target
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, []types.Target{
		{Label: "sec:intro", Num: "2", HasDuplicate: true},
		{Label: "sec:scope", Num: "1.1"},
	}, got)
}

func TestTargetsCommand_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	out, _, err := execute(t, "", "targets", "--format", "json", path)
	require.NoError(t, err)

	var got []types.Target
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "1.1", got[1].Num)
}

func TestTargetsCommand_BadFormat(t *testing.T) {
	_, _, err := execute(t, sampleDoc, "targets", "--format", "xml")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "pandoc-secnos dev\n", out)
}
