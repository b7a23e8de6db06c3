/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jwickberg/MarkerCheck/parser"
	"github.com/jwickberg/MarkerCheck/style"
	"github.com/jwickberg/MarkerCheck/token"
	"github.com/jwickberg/MarkerCheck/tokenizer"
)

// recorder captures sink events as compact strings.
type recorder struct {
	parser.NopSink
	events []string
}

func (r *recorder) log(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) StartBook(s *parser.State, marker, code string) { r.log("book+ %s %s", marker, code) }
func (r *recorder) EndBook(s *parser.State, marker string)         { r.log("book- %s", marker) }
func (r *recorder) Chapter(s *parser.State, number, marker, alt, pub string) {
	r.log("chapter %s alt=%q pub=%q", number, alt, pub)
}
func (r *recorder) Verse(s *parser.State, number, marker, alt, pub string) {
	r.log("verse %s alt=%q pub=%q", number, alt, pub)
}
func (r *recorder) StartPara(s *parser.State, marker string) { r.log("para+ %s", marker) }
func (r *recorder) EndPara(s *parser.State, marker string)   { r.log("para- %s", marker) }
func (r *recorder) StartChar(s *parser.State, marker string, closed bool, attrs []token.Attribute) {
	r.log("char+ %s closed=%v", marker, closed)
}
func (r *recorder) EndChar(s *parser.State, marker string, attrs []token.Attribute) {
	r.log("char- %s", marker)
}
func (r *recorder) StartNote(s *parser.State, marker, caller, category string, closed bool) {
	r.log("note+ %s caller=%q cat=%q closed=%v", marker, caller, category, closed)
}
func (r *recorder) EndNote(s *parser.State, marker string) { r.log("note- %s", marker) }
func (r *recorder) StartTable(s *parser.State)             { r.log("table+") }
func (r *recorder) EndTable(s *parser.State)               { r.log("table-") }
func (r *recorder) StartRow(s *parser.State, marker string) {
	r.log("row+ %s", marker)
}
func (r *recorder) EndRow(s *parser.State, marker string) { r.log("row-") }
func (r *recorder) StartCell(s *parser.State, marker string, align parser.CellAlignment) {
	r.log("cell+ %s align=%d", marker, align)
}
func (r *recorder) EndCell(s *parser.State, marker string) { r.log("cell-") }
func (r *recorder) StartSidebar(s *parser.State, marker, category string, closed bool) {
	r.log("sidebar+ cat=%q closed=%v", category, closed)
}
func (r *recorder) EndSidebar(s *parser.State, marker string) { r.log("sidebar-") }
func (r *recorder) Text(s *parser.State, text string)         { r.log("text %q", text) }
func (r *recorder) OptBreak(s *parser.State)                  { r.log("optbreak") }
func (r *recorder) Ref(s *parser.State, marker, display, target string) {
	r.log("ref %q -> %q", display, target)
}
func (r *recorder) Unmatched(s *parser.State, marker string) { r.log("unmatched %s", marker) }
func (r *recorder) Milestone(s *parser.State, marker string, start bool, attrs []token.Attribute) {
	r.log("milestone %s start=%v", marker, start)
}

func testSheet(t *testing.T) *style.Sheet {
	t.Helper()
	s, errs := style.Default()
	if len(errs) != 0 {
		t.Fatalf("embedded stylesheet errors: %v", errs)
	}
	return s
}

// run parses usfm and returns the recorded events plus the parser.
func run(t *testing.T, usfm string) (*recorder, *parser.Parser) {
	t.Helper()
	sheet := testSheet(t)
	toks := tokenizer.Tokenize(sheet, usfm, tokenizer.Options{})
	rec := &recorder{}
	p := parser.New(sheet, toks, rec, parser.Options{Book: "GEN"})
	p.ProcessTokens()
	p.CloseAll()
	return rec, p
}

func has(events []string, want string) bool {
	for _, e := range events {
		if strings.HasPrefix(e, want) {
			return true
		}
	}
	return false
}

func TestParser_StackEmptyAfterCloseAll(t *testing.T) {
	inputs := []string{
		"",
		"\\id GEN\n\\c 1\n\\p\n\\v 1 Hello\n",
		"\\id GEN\n\\p\n\\v 1 \\bd unclosed\n",
		"\\id GEN\n\\p\n\\v 1 \\f + \\ft note\\f* ok\n",
		"\\id GEN\n\\esb\n\\p\n\\v 1 x\n",
	}
	for _, input := range inputs {
		_, p := run(t, input)
		if n := len(p.State().Stack); n != 0 {
			t.Errorf("stack depth %d after close_all for %q", n, input)
		}
	}
}

func TestParser_StartEndEventsBalance(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\c 1\n\\p\n\\v 1 \\wj words\\wj* \\f + \\ft n\\f*\n\\tr \\th1 A\\tc1 B\n\\esb\n\\p x\n\\esbe\n")

	opens := make(map[string]int)
	for _, e := range rec.events {
		name, _, _ := strings.Cut(e, " ")
		switch {
		case strings.HasSuffix(name, "+"):
			opens[strings.TrimSuffix(name, "+")]++
		case strings.HasSuffix(name, "-"):
			opens[strings.TrimSuffix(name, "-")]--
		}
	}
	for kind, n := range opens {
		if n != 0 {
			t.Errorf("%s events unbalanced by %d\nevents: %v", kind, n, rec.events)
		}
	}
}

func TestParser_ParagraphClosesBookAndChars(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\p\n\\v 1 \\bd bold \\p next\n")

	if !has(rec.events, "book- id") {
		t.Errorf("expected the first paragraph to close the book element: %v", rec.events)
	}
	// The bd style is implicitly closed by the second paragraph.
	if !has(rec.events, "char- bd") {
		t.Errorf("expected char close: %v", rec.events)
	}
	if has(rec.events, "char+ bd closed=true") {
		t.Errorf("bd should be reported unclosed: %v", rec.events)
	}
}

func TestParser_CharacterClosedLookahead(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\p\n\\v 1 \\bd bold\\bd* plain\n")
	if !has(rec.events, "char+ bd closed=true") {
		t.Errorf("expected bd closed=true: %v", rec.events)
	}
}

func TestParser_NestedCharKeepsOuterOpen(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\p\n\\v 1 \\w a \\+bd b\\+bd* c\\w*\n")

	var seq []string
	for _, e := range rec.events {
		if strings.HasPrefix(e, "char") {
			seq = append(seq, e)
		}
	}
	expected := []string{
		"char+ w closed=true",
		"char+ bd closed=true",
		"char- bd",
		"char- w",
	}
	if len(seq) != len(expected) {
		t.Fatalf("char events = %v", seq)
	}
	for i := range expected {
		if seq[i] != expected[i] {
			t.Errorf("char event %d = %q, want %q", i, seq[i], expected[i])
		}
	}
}

func TestParser_ChapterAltAndPubNumbers(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\c 1 \\ca 2\\ca* \\cp A\n\\p\n\\v 1 x\n")
	if !has(rec.events, `chapter 1 alt="2" pub="A"`) {
		t.Errorf("expected chapter alt and pub numbers: %v", rec.events)
	}
	// The consumed tokens never surface as their own events.
	if has(rec.events, "char+ ca") {
		t.Errorf("ca should be consumed by lookahead: %v", rec.events)
	}
}

func TestParser_VerseAltAndPubNumbers(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\c 1\n\\p\n\\v 1 \\va 2\\va* \\vp 1b\\vp* text\n")
	if !has(rec.events, `verse 1 alt="2" pub="1b"`) {
		t.Errorf("expected verse alt and pub numbers: %v", rec.events)
	}
}

func TestParser_TableStructure(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\c 1\n\\tr \\th1 Day\\thr2 Night\n\\tr \\tc1 a\\tcr2 b\n\\p\n\\v 1 x\n")

	var seq []string
	for _, e := range rec.events {
		if strings.HasPrefix(e, "table") || strings.HasPrefix(e, "row") || strings.HasPrefix(e, "cell") {
			seq = append(seq, e)
		}
	}
	expected := []string{
		"table+",
		"row+ tr",
		"cell+ th1 align=0",
		"cell-",
		"cell+ thr2 align=2",
		"cell-",
		"row-",
		"row+ tr",
		"cell+ tc1 align=0",
		"cell-",
		"cell+ tcr2 align=2",
		"cell-",
		"row-",
		"table-",
	}
	if strings.Join(seq, ";") != strings.Join(expected, ";") {
		t.Errorf("table events = %v, want %v", seq, expected)
	}
}

func TestParser_SidebarLookaheadAndCategory(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\esb \\cat People\\cat*\n\\p\n\\v 1 x\n\\esbe\n")
	if !has(rec.events, `sidebar+ cat="People" closed=true`) {
		t.Errorf("expected closed sidebar with category: %v", rec.events)
	}

	rec, _ = run(t, "\\id GEN\n\\esb\n\\p x\n\\c 1\n")
	if !has(rec.events, `sidebar+ cat="" closed=false`) {
		t.Errorf("expected unclosed sidebar before chapter: %v", rec.events)
	}
}

func TestParser_UnmatchedEnd(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\p\n\\v 1 plain\\bd* text\n")
	if !has(rec.events, "unmatched bd*") {
		t.Errorf("expected unmatched end: %v", rec.events)
	}

	rec, _ = run(t, "\\id GEN\n\\p\n\\v 1 x\n\\esbe\n")
	if !has(rec.events, "unmatched esbe") {
		t.Errorf("expected unmatched esbe: %v", rec.events)
	}
}

func TestParser_NoteCategoryAndClosure(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\p\n\\v 1 a\\f + \\cat History\\cat* \\ft note\\f* b\n")
	if !has(rec.events, `note+ f caller="+" cat="History" closed=true`) {
		t.Errorf("expected categorized closed note: %v", rec.events)
	}

	rec, _ = run(t, "\\id GEN\n\\p\n\\v 1 a\\f + never closed\n\\v 2 b\n")
	if !has(rec.events, `note+ f caller="+" cat="" closed=false`) {
		t.Errorf("expected unclosed note: %v", rec.events)
	}
	// The following verse pops the note.
	if !has(rec.events, "note- f") {
		t.Errorf("expected note close: %v", rec.events)
	}
}

func TestParser_RefSplitsDisplayAndTarget(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\p\n\\v 1 see \\ref 1.3|GEN 1:3\\ref* here\n")
	if !has(rec.events, `ref "1.3" -> "GEN 1:3"`) {
		t.Errorf("expected ref event: %v", rec.events)
	}
	if has(rec.events, "char+ ref") {
		t.Errorf("ref must not open a char element: %v", rec.events)
	}
}

func TestParser_TextTransforms(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\p\n\\v 1 a~b//c\n")

	if !has(rec.events, `text "a\u00a0b"`) {
		t.Errorf("expected tilde as no-break space: %v", rec.events)
	}
	if !has(rec.events, "optbreak") {
		t.Errorf("expected optional break: %v", rec.events)
	}
	if !has(rec.events, `text "c"`) {
		t.Errorf("expected split text after //: %v", rec.events)
	}
}

func TestParser_MilestoneEvents(t *testing.T) {
	rec, _ := run(t, "\\id GEN\n\\p\n\\v 1 \\qt-s|id=\"q\"\\*words\\qt-e|id=\"q\"\\*\n")
	if !has(rec.events, "milestone qt-s start=true") {
		t.Errorf("expected milestone start: %v", rec.events)
	}
	if !has(rec.events, "milestone qt-e start=false") {
		t.Errorf("expected milestone end: %v", rec.events)
	}
}

func TestParser_VerseRefTracking(t *testing.T) {
	sheet := testSheet(t)
	toks := tokenizer.Tokenize(sheet, "\\id GEN\n\\c 3\n\\p\n\\v 16 text\n", tokenizer.Options{})
	rec := &recorder{}
	p := parser.New(sheet, toks, rec, parser.Options{Book: "GEN"})
	p.ProcessTokens()
	p.CloseAll()

	s := p.State()
	if s.Book != "GEN" || s.Chapter != 3 || s.Verse != 16 {
		t.Errorf("ref = %s %d:%d, want GEN 3:16", s.Book, s.Chapter, s.Verse)
	}
}

func TestParser_BookRefOnlyWhenEmptyAndCanonical(t *testing.T) {
	sheet := testSheet(t)

	toks := tokenizer.Tokenize(sheet, "\\id EXO\n\\p\n\\v 1 x\n", tokenizer.Options{})
	p := parser.New(sheet, toks, &recorder{}, parser.Options{})
	p.ProcessTokens()
	if p.State().Book != "EXO" {
		t.Errorf("expected \\id to seed an empty book ref, got %q", p.State().Book)
	}

	toks = tokenizer.Tokenize(sheet, "\\id XYZ\n\\p\n\\v 1 x\n", tokenizer.Options{})
	p = parser.New(sheet, toks, &recorder{}, parser.Options{})
	p.ProcessTokens()
	if p.State().Book != "" {
		t.Errorf("non-canonical code must not seed the ref, got %q", p.State().Book)
	}

	toks = tokenizer.Tokenize(sheet, "\\id EXO\n\\p\n\\v 1 x\n", tokenizer.Options{})
	p = parser.New(sheet, toks, &recorder{}, parser.Options{Book: "GEN"})
	p.ProcessTokens()
	if p.State().Book != "GEN" {
		t.Errorf("seeded ref must win over \\id, got %q", p.State().Book)
	}
}

func TestParser_VerseOffsetsMonotonic(t *testing.T) {
	sheet := testSheet(t)
	toks := tokenizer.Tokenize(sheet, "\\id GEN\n\\c 1\n\\p\n\\v 1 In the \\bd beginning\\bd* God\n", tokenizer.Options{})
	p := parser.New(sheet, toks, parser.NopSink{}, parser.Options{Book: "GEN"})

	last := -1
	verse := 0
	for p.ProcessToken() {
		s := p.State()
		if s.Verse != verse {
			verse = s.Verse
			last = -1
		}
		if s.VerseOffset < last {
			t.Fatalf("verse offset went backwards: %d after %d", s.VerseOffset, last)
		}
		last = s.VerseOffset
	}
}
