/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package markers provides the markers command for markercheck.
package markers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jwickberg/MarkerCheck/config"
	"github.com/jwickberg/MarkerCheck/fs"
	"github.com/jwickberg/MarkerCheck/internal/logger"
	"github.com/jwickberg/MarkerCheck/style"
)

// Cmd is the markers cobra command.
var Cmd = &cobra.Command{
	Use:   "markers",
	Short: "List marker descriptors from the stylesheet",
	Long:  `List every marker the loaded stylesheet defines, with style type, text type, color, and nesting contexts.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("occurs", false, "Include occurs-under contexts")
}

func run(cmd *cobra.Command, args []string) error {
	occurs, _ := cmd.Flags().GetBool("occurs")

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

	for _, m := range sheet.Markers() {
		line := fmt.Sprintf("\\%-8s %-10s %-12s %s", m.Marker, m.StyleType, m.TextType, style.HexColor(m.Color))
		if occurs && len(m.OccursUnder) > 0 {
			line += "  under: " + strings.Join(m.OccursUnder, " ")
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d markers\n", sheet.Len())
	return nil
}
