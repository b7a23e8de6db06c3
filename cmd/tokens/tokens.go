/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tokens provides the tokens command for markercheck.
package tokens

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jwickberg/MarkerCheck/config"
	"github.com/jwickberg/MarkerCheck/fs"
	"github.com/jwickberg/MarkerCheck/internal/logger"
	"github.com/jwickberg/MarkerCheck/style"
	"github.com/jwickberg/MarkerCheck/token"
	"github.com/jwickberg/MarkerCheck/tokenizer"
)

// Cmd is the tokens cobra command.
var Cmd = &cobra.Command{
	Use:   "tokens <usfm-file>",
	Short: "Dump the token stream for a USFM file",
	Long:  `Tokenize a USFM file and print one line per token, for inspecting how the input parses.`,
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("preserve", false, "Preserve whitespace instead of normalizing")
}

func run(cmd *cobra.Command, args []string) error {
	preserve, _ := cmd.Flags().GetBool("preserve")

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	stylesheet := viper.GetString("stylesheet")
	if stylesheet == "" {
		stylesheet = cfg.Stylesheet
	}

	sheet, sheetErrs, err := style.Load(filesystem, stylesheet, cfg.ExtraStylesheets...)
	if err != nil {
		return err
	}
	for _, e := range sheetErrs {
		logger.Warn("stylesheet: %v", e)
	}

	data, err := filesystem.ReadFile(args[0])
	if err != nil {
		return err
	}

	toks := tokenizer.Tokenize(sheet, string(data), tokenizer.Options{PreserveWhitespace: preserve})
	for _, t := range toks {
		printToken(cmd, t)
	}
	return nil
}

func printToken(cmd *cobra.Command, t *token.Token) {
	out := cmd.OutOrStdout()
	if t.Kind == token.Text {
		fmt.Fprintf(out, "%-12s %q\n", t.Kind, t.Text)
		return
	}
	fmt.Fprintf(out, "%-12s \\%s", t.Kind, t.Marker)
	for _, d := range t.Data {
		fmt.Fprintf(out, " %q", d)
	}
	for _, a := range t.Attributes {
		fmt.Fprintf(out, " %s=%q", a.Name, a.Value)
	}
	fmt.Fprintln(out)
}
