/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validator checks a USFM token stream for structural
// anomalies, accumulating diagnostics through a parser sink.
package validator

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwickberg/MarkerCheck/l10n"
)

// Severity grades a diagnostic.
type Severity int

// Severities.
const (
	Error Severity = iota
	Warning
)

// Diagnostic is one structural anomaly found in a book.
type Diagnostic struct {
	Severity Severity

	// Book, Chapter and Verse locate the anomaly. VerseEnd extends
	// the location to a verse range when consecutive verses fold into
	// one diagnostic.
	Book     string
	Chapter  int
	Verse    int
	VerseEnd int

	// Offset is the byte offset within the current verse.
	Offset int

	// Marker is the offending marker without backslash; Text is the
	// offending text when no marker applies.
	Marker string
	Text   string

	// Key is the message key, rendered through a translator.
	Key string
}

// Format renders the diagnostic in the one-line wire format.
func (d *Diagnostic) Format(translate l10n.Translator) string {
	if translate == nil {
		translate = l10n.Default
	}
	var sb strings.Builder
	sb.WriteString("MarkerCheck: ")
	sb.WriteString(d.Book)
	fmt.Fprintf(&sb, ":%d:%d", d.Chapter, d.Verse)
	if d.VerseEnd > d.Verse {
		fmt.Fprintf(&sb, "-%d", d.VerseEnd)
	}
	fmt.Fprintf(&sb, " Offset: %d", d.Offset)
	if d.Marker != "" || d.Text == "" {
		sb.WriteString(" Marker: \\")
		sb.WriteString(d.Marker)
	} else {
		sb.WriteString(" Text: ")
		sb.WriteString(d.Text)
	}
	sb.WriteString(" Message: ")
	sb.WriteString(translate(d.Key))
	return sb.String()
}

// Print writes one line per diagnostic.
func Print(w io.Writer, diags []*Diagnostic, translate l10n.Translator) {
	for _, d := range diags {
		fmt.Fprintln(w, d.Format(translate))
	}
}
