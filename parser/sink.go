/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import "github.com/jwickberg/MarkerCheck/token"

// CellAlignment is the alignment of a table cell, derived from the
// cell marker.
type CellAlignment int

// Cell alignments.
const (
	AlignStart CellAlignment = iota
	AlignCenter
	AlignEnd
)

// Sink receives structured parse events. It is the sole interface
// between the parser and a consumer; every callback gets the live
// parser state first.
type Sink interface {
	// GotMarker fires for every marker-bearing token before it is
	// interpreted.
	GotMarker(s *State, marker string)

	StartBook(s *State, marker, code string)
	EndBook(s *State, marker string)

	// Chapter and Verse report the number as written, plus optional
	// alternate and published numbers consumed by lookahead.
	Chapter(s *State, number, marker, altNumber, pubNumber string)
	Verse(s *State, number, marker, altNumber, pubNumber string)

	StartPara(s *State, marker string)
	EndPara(s *State, marker string)

	StartChar(s *State, marker string, closed bool, attributes []token.Attribute)
	EndChar(s *State, marker string, attributes []token.Attribute)

	StartNote(s *State, marker, caller, category string, closed bool)
	EndNote(s *State, marker string)

	StartTable(s *State)
	EndTable(s *State)
	StartRow(s *State, marker string)
	EndRow(s *State, marker string)
	StartCell(s *State, marker string, align CellAlignment)
	EndCell(s *State, marker string)

	StartSidebar(s *State, marker, category string, closed bool)
	EndSidebar(s *State, marker string)

	Text(s *State, text string)
	OptBreak(s *State)

	// Ref reports a scripture reference link trio.
	Ref(s *State, marker, display, target string)

	// Unmatched reports an end marker with no open element.
	Unmatched(s *State, marker string)

	// Milestone reports a standalone milestone start or end.
	Milestone(s *State, marker string, start bool, attributes []token.Attribute)
}

// NopSink implements Sink with no-ops, for embedding.
type NopSink struct{}

var _ Sink = NopSink{}

func (NopSink) GotMarker(*State, string)                         {}
func (NopSink) StartBook(*State, string, string)                 {}
func (NopSink) EndBook(*State, string)                           {}
func (NopSink) Chapter(*State, string, string, string, string)   {}
func (NopSink) Verse(*State, string, string, string, string)     {}
func (NopSink) StartPara(*State, string)                         {}
func (NopSink) EndPara(*State, string)                           {}
func (NopSink) StartChar(*State, string, bool, []token.Attribute) {
}
func (NopSink) EndChar(*State, string, []token.Attribute)      {}
func (NopSink) StartNote(*State, string, string, string, bool) {}
func (NopSink) EndNote(*State, string)                         {}
func (NopSink) StartTable(*State)                              {}
func (NopSink) EndTable(*State)                                {}
func (NopSink) StartRow(*State, string)                        {}
func (NopSink) EndRow(*State, string)                          {}
func (NopSink) StartCell(*State, string, CellAlignment)        {}
func (NopSink) EndCell(*State, string)                         {}
func (NopSink) StartSidebar(*State, string, string, bool)      {}
func (NopSink) EndSidebar(*State, string)                      {}
func (NopSink) Text(*State, string)                            {}
func (NopSink) OptBreak(*State)                                {}
func (NopSink) Ref(*State, string, string, string)             {}
func (NopSink) Unmatched(*State, string)                       {}
func (NopSink) Milestone(*State, string, bool, []token.Attribute) {
}
