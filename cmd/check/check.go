/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package check provides the check command for markercheck.
package check

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jwickberg/MarkerCheck/books"
	"github.com/jwickberg/MarkerCheck/config"
	"github.com/jwickberg/MarkerCheck/fs"
	"github.com/jwickberg/MarkerCheck/internal/logger"
	"github.com/jwickberg/MarkerCheck/l10n"
	"github.com/jwickberg/MarkerCheck/style"
	"github.com/jwickberg/MarkerCheck/validator"
)

// ErrChecksFailed signals diagnostics were reported; the CLI exits 1
// without extra output.
var ErrChecksFailed = errors.New("structural errors found")

// Cmd is the check cobra command.
var Cmd = &cobra.Command{
	Use:   "check <book-code> <usfm-file>",
	Short: "Check a USFM book for structural marker errors",
	Long: `Check one book of USFM against the marker stylesheet and report
every structural anomaly: unknown markers, unclosed spans, misplaced
paragraphs, malformed attributes, mismatched milestones, and so on.

With no arguments the files from .config/markercheck.{yaml,json} are
checked, taking each book code from its \id marker.`,
	Args: cobra.ArbitraryArgs,
	RunE: Run,
}

// Run executes the check; the root command delegates here so the
// plain two-argument form works without the subcommand name.
func Run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	usfm2 := viper.GetBool("usfm2") || cfg.USFM2
	stylesheet := viper.GetString("stylesheet")
	if stylesheet == "" {
		stylesheet = cfg.Stylesheet
	}

	type job struct{ book, path string }
	var jobs []job
	switch len(args) {
	case 2:
		if books.Number(args[0]) <= 0 {
			return usageError(cmd, "unknown book code %q", args[0])
		}
		jobs = []job{{book: args[0], path: args[1]}}
	case 0:
		files, err := cfg.ExpandFiles(filesystem, ".")
		if err != nil {
			return fmt.Errorf("error expanding config files: %w", err)
		}
		if len(files) == 0 {
			return usageError(cmd, "no files specified and no files found in config")
		}
		for _, f := range files {
			jobs = append(jobs, job{path: f})
		}
	default:
		return usageError(cmd, "expected <book-code> <usfm-file>")
	}

	sheet, sheetErrs, err := style.Load(filesystem, stylesheet, cfg.ExtraStylesheets...)
	if err != nil {
		return usageError(cmd, "%v", err)
	}
	for _, e := range sheetErrs {
		logger.Warn("stylesheet: %v", e)
	}

	translator, err := loadTranslator(filesystem, cfg)
	if err != nil {
		return err
	}

	hasDiagnostics := false
	for _, j := range jobs {
		data, err := filesystem.ReadFile(j.path)
		if err != nil {
			return usageError(cmd, "%v", err)
		}
		text := string(data)

		book := j.book
		if book == "" {
			book = bookFromID(text)
		}

		checker := validator.New(sheet, validator.Options{USFM2: usfm2, Translator: translator})
		diags := checker.Check(book, text)
		validator.Print(os.Stdout, diags, checker.Translator())
		if len(diags) > 0 {
			hasDiagnostics = true
		}
	}

	if hasDiagnostics {
		return ErrChecksFailed
	}
	if !quiet {
		color.New(color.FgGreen).Fprintln(os.Stderr, "No structural errors found.")
	}
	return nil
}

// usageError prints help to stdout, per the CLI contract for bad
// arguments, and returns the error for the exit code.
func usageError(cmd *cobra.Command, format string, args ...any) error {
	_ = cmd.Help()
	return fmt.Errorf(format, args...)
}

// bookFromID extracts the book code from the \id marker for the
// config-driven mode.
func bookFromID(text string) string {
	idx := strings.Index(text, "\\id ")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimLeft(text[idx+4:], " \t")
	end := strings.IndexAny(rest, " \t\r\n\\")
	if end < 0 {
		return rest
	}
	return rest[:end]
}

// loadTranslator builds the message translator from the configured
// catalogs, keeping the "#key" form when none are configured.
func loadTranslator(filesystem fs.FileSystem, cfg *config.Config) (l10n.Translator, error) {
	if len(cfg.Messages) == 0 {
		return nil, nil
	}
	var catalogs []*l10n.Catalog
	for _, path := range cfg.Messages {
		data, err := filesystem.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read message catalog: %w", err)
		}
		catalog, err := l10n.Load(data)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, catalog)
	}
	catalog := l10n.Match(cfg.Locale, catalogs)
	if catalog == nil {
		return nil, nil
	}
	return catalog.Translate, nil
}
