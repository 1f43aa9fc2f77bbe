// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pandoc-secnos/internal/filter"
	"github.com/pdiddy/pandoc-secnos/internal/pandoc"
	"github.com/pdiddy/pandoc-secnos/pkg/types"
)

var targetsCmd = &cobra.Command{
	Use:   "targets [FILE]",
	Short: "List the section numbers assigned to a pandoc JSON document",
	Long: `Targets numbers the headers of a pandoc JSON document (as written by
pandoc -t json) and prints each label with its section number. The document
is read from FILE, or from stdin when FILE is omitted or "-".

Labels assigned to more than one header are marked as duplicates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTargets,
}

func runTargets(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening document: %w", err)
		}
		defer file.Close()
		in = file
	}

	doc, err := pandoc.ReadDocument(in)
	if err != nil {
		return err
	}

	cfg, err := filterConfig()
	if err != nil {
		return err
	}
	f := filter.New(filter.Options{
		PandocVersion: viper.GetString("pandocversion"),
		Defaults:      cfg,
		Logger:        newLogger(cmd),
	})
	table, err := f.Number(doc)
	if err != nil {
		return err
	}

	return writeTargets(cmd.OutOrStdout(), table.Targets(), format)
}

func writeTargets(w io.Writer, targets []types.Target, format string) error {
	if targets == nil {
		targets = []types.Target{}
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(targets)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(targets); err != nil {
		return fmt.Errorf("encoding targets: %w", err)
	}
	return enc.Close()
}

func init() {
	targetsCmd.Flags().String("format", "yaml", "output format: yaml or json")
	targetsCmd.Flags().BoolP("verbose", "v", false, "log debug output")

	rootCmd.AddCommand(targetsCmd)
}
