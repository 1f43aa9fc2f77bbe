// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pandoc-secnos filter.
// Pandoc runs it as `pandoc-secnos FORMAT`, writing the document as JSON
// to stdin and reading the filtered document from stdout.
// Implements: numbering, references, naming policy, preamble (CLI surface).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pandoc-secnos/internal/filter"
	"github.com/pdiddy/pandoc-secnos/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd runs the filter for the output format named by its argument.
var rootCmd = &cobra.Command{
	Use:   "pandoc-secnos [FORMAT]",
	Short: "Pandoc filter that numbers sections and resolves @sec: references",
	Long: `pandoc-secnos numbers section headers and replaces @sec:label references
with section numbers. For latex and beamer output, references become \ref,
\cref or \Cref macros and the cleveref package is added to header-includes
when needed.

Use it from pandoc:

    pandoc --filter pandoc-secnos -o out.html doc.md

Options are read from document metadata (secnos-cleveref, secnos-plus-name,
xnos-number-offset, ...). An optional pandoc-secnos.yaml supplies defaults.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	var format string
	if len(args) > 0 {
		format = strings.ToLower(args[0])
	}

	cfg, err := filterConfig()
	if err != nil {
		return err
	}

	f := filter.New(filter.Options{
		Format:        types.OutputFormat(format),
		PandocVersion: viper.GetString("pandocversion"),
		Defaults:      cfg,
		Logger:        newLogger(cmd),
	})
	_, err = f.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

// filterConfig returns the built-in defaults overlaid with the config file
// and SECNOS_* environment variables.
func filterConfig() (types.FilterConfig, error) {
	cfg := types.DefaultFilterConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pandoc-secnos.yaml or ~/.config/pandoc-secnos/pandoc-secnos.yaml)")
	rootCmd.PersistentFlags().String("pandocversion", "", "pandoc version, e.g. 2.11.4 (default: $PANDOC_VERSION or inferred from the document)")
	rootCmd.Flags().BoolP("verbose", "v", false, "also log the TeX written to header-includes")

	_ = viper.BindPFlag("pandocversion", rootCmd.PersistentFlags().Lookup("pandocversion"))
	_ = viper.BindEnv("pandocversion", "PANDOC_VERSION")

	// Defaults register the keys so SECNOS_* variables reach Unmarshal.
	def := types.DefaultFilterConfig()
	viper.SetDefault("cleveref", def.Cleveref)
	viper.SetDefault("capitalise", def.Capitalise)
	viper.SetDefault("warning_level", def.WarningLevel)
	viper.SetDefault("number_offset", def.NumberOffset)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pandoc-secnos")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pandoc-secnos"))
		}
	}

	viper.SetEnvPrefix("SECNOS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "pandoc-secnos:", err)
		stop()
		os.Exit(1)
	}
}
