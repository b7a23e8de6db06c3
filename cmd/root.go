/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for markercheck.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jwickberg/MarkerCheck/cmd/check"
	"github.com/jwickberg/MarkerCheck/cmd/markers"
	"github.com/jwickberg/MarkerCheck/cmd/tokens"
	"github.com/jwickberg/MarkerCheck/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "markercheck [flags] <book-code> <usfm-file>",
	Short: "Check USFM Scripture books for structural marker errors",
	Long: `markercheck validates a single book of Scripture encoded in USFM
against a marker stylesheet, reporting unknown markers, unclosed
spans, misplaced paragraphs, malformed attributes, and other
structural anomalies.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          check.Run,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("stylesheet", "s", "", "Stylesheet path (default usfm.sty, or the embedded catalog)")
	pf.Bool("usfm2", false, "Reject USFM 3 features (USFM 2.0 project)")
	pf.Bool("quiet", false, "Only output diagnostics")

	viper.SetEnvPrefix("MARKERCHECK")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("stylesheet", pf.Lookup("stylesheet"))
	_ = viper.BindPFlag("usfm2", pf.Lookup("usfm2"))

	rootCmd.AddCommand(check.Cmd)
	rootCmd.AddCommand(markers.Cmd)
	rootCmd.AddCommand(tokens.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
