/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator

import (
	"strings"

	"github.com/jwickberg/MarkerCheck/l10n"
	"github.com/jwickberg/MarkerCheck/parser"
	"github.com/jwickberg/MarkerCheck/style"
	"github.com/jwickberg/MarkerCheck/token"
	"github.com/jwickberg/MarkerCheck/tokenizer"
)

// emptyMarkerAllowed lists markers that legitimately carry no text.
var emptyMarkerAllowed = map[string]bool{
	"b": true, "ib": true, "ie": true, "pb": true, "tc": true, "xt": true,
}

// nonRepeatableStyles lists character styles that should not close
// and immediately reopen.
var nonRepeatableStyles = map[string]bool{
	"qt": true, "wj": true, "no": true, "it": true, "bd": true,
	"bdit": true, "em": true, "sc": true, "add": true,
}

// linkAttributes are always legal on character styles.
var linkAttributes = map[string]bool{
	"link-href": true, "link-title": true, "link-name": true,
}

// Options configures a Checker.
type Options struct {
	// USFM2 rejects USFM 3 features: ruby, milestones, and
	// non-default attributes.
	USFM2 bool

	// Translator renders message keys; nil keeps the "#key" form.
	Translator l10n.Translator
}

// Checker validates one book of USFM against a marker catalog. It
// implements parser.Sink.
type Checker struct {
	parser.NopSink

	sheet *style.Sheet
	opts  Options

	book       string
	diags      []*Diagnostic
	errorsSeen bool

	paraTag       string
	frames        []*frame
	lastEndedChar string
	expectedCell  int
	paraStack     []*style.Marker
	milestones    []*milestoneStart
	pendingVerse  *Diagnostic
}

// frame tracks one open para, char, or note element for content
// accounting.
type frame struct {
	marker  string
	isChar  bool
	closed  bool
	hasText bool
	text    strings.Builder

	// Position captured at the start event.
	chapter, verse, offset int
}

// milestoneStart is an unbalanced milestone start.
type milestoneStart struct {
	marker    string
	endMarker string
	id        string

	chapter, verse, offset int
}

// New returns a checker over the catalog.
func New(sheet *style.Sheet, opts Options) *Checker {
	return &Checker{sheet: sheet, opts: opts}
}

// Translator returns the configured message translator.
func (c *Checker) Translator() l10n.Translator {
	if c.opts.Translator == nil {
		return l10n.Default
	}
	return c.opts.Translator
}

// ErrorsSeen reports whether any diagnostic was recorded by the last
// Check.
func (c *Checker) ErrorsSeen() bool {
	return c.errorsSeen
}

// Check tokenizes and parses one book, returning every structural
// diagnostic. bookID seeds the verse reference for reporting.
func (c *Checker) Check(bookID, usfm string) []*Diagnostic {
	c.book = bookID
	c.diags = nil
	c.errorsSeen = false
	c.paraTag = ""
	c.frames = nil
	c.lastEndedChar = ""
	c.paraStack = nil
	c.milestones = nil
	c.pendingVerse = nil

	c.checkMissingSpaces(usfm)

	tokens := tokenizer.Tokenize(c.sheet, usfm, tokenizer.Options{})
	if len(tokens) == 0 || tokens[0].Marker != "id" {
		c.diags = append(c.diags, &Diagnostic{
			Book: c.book, Chapter: 1, Marker: "id", Key: msgMissingID,
		})
		c.errorsSeen = true
	}

	p := parser.New(c.sheet, tokens, c, parser.Options{Book: bookID})
	p.ProcessTokens()
	p.CloseAll()

	for _, ms := range c.milestones {
		c.diags = append(c.diags, &Diagnostic{
			Book: c.book, Chapter: ms.chapter, Verse: ms.verse,
			Offset: ms.offset, Marker: ms.marker, Key: msgMissingMilestoneEnd,
		})
	}
	c.errorsSeen = c.errorsSeen || len(c.diags) > 0
	return c.diags
}

// report records a diagnostic at the current parse position.
func (c *Checker) report(s *parser.State, severity Severity, key, marker, text string) *Diagnostic {
	d := &Diagnostic{
		Severity: severity,
		Book:     c.book,
		Chapter:  s.Chapter,
		Verse:    s.Verse,
		Offset:   s.VerseOffset,
		Marker:   marker,
		Text:     text,
		Key:      key,
	}
	c.diags = append(c.diags, d)
	c.errorsSeen = true
	return d
}

// reportAt records a diagnostic at a captured position.
func (c *Checker) reportAt(chapter, verse, offset int, severity Severity, key, marker string) {
	c.diags = append(c.diags, &Diagnostic{
		Severity: severity,
		Book:     c.book,
		Chapter:  chapter,
		Verse:    verse,
		Offset:   offset,
		Marker:   marker,
		Key:      key,
	})
	c.errorsSeen = true
}

// GotMarker checks marker-level rules that need no structure: unknown
// markers and markers a USFM 2 project must not use.
func (c *Checker) GotMarker(s *parser.State, marker string) {
	base := strings.TrimPrefix(marker, "+")
	if strings.HasSuffix(base, "*") {
		return
	}
	if tag := c.sheet.Get(base); tag.StyleType == style.Unknown {
		c.report(s, Error, msgUnknownMarker, marker, "")
	}
	if c.opts.USFM2 && base == "rb" {
		c.report(s, Error, msgNotSupportedUSFM2, marker, "")
	}
}

func (c *Checker) StartBook(s *parser.State, marker, code string) {
	c.paraTag = ""
	c.paraStack = []*style.Marker{c.sheet.Get(marker)}
}

func (c *Checker) Chapter(s *parser.State, number, marker, altNumber, pubNumber string) {
	c.paraTag = ""
	c.lastEndedChar = ""
	c.pendingVerse = nil
	c.applyParaStack(s, c.sheet.Get(marker))
}

func (c *Checker) Verse(s *parser.State, number, marker, altNumber, pubNumber string) {
	c.lastEndedChar = ""
	if c.paraTag != "" {
		c.pendingVerse = nil
		return
	}
	if d := c.pendingVerse; d != nil && d.Chapter == s.Chapter && s.Verse == d.VerseEnd+1 {
		d.VerseEnd = s.Verse
		return
	}
	d := c.report(s, Error, msgVerseWithoutPara, marker, "")
	d.VerseEnd = s.Verse
	c.pendingVerse = d
}

func (c *Checker) StartPara(s *parser.State, marker string) {
	c.paraTag = marker
	c.lastEndedChar = ""
	c.pendingVerse = nil
	c.pushFrame(s, marker, false, true)
	c.applyParaStack(s, c.sheet.Get(marker))
}

func (c *Checker) EndPara(s *parser.State, marker string) {
	c.popFrame(marker)
}

func (c *Checker) StartChar(s *parser.State, marker string, closed bool, attributes []token.Attribute) {
	tag := c.sheet.Get(marker)

	if c.paraTag == "" {
		c.report(s, Error, msgCharacterWithoutPara, marker, "")
	}
	if marker == c.lastEndedChar && nonRepeatableStyles[marker] {
		c.report(s, Warning, msgRepeatedCharacterStyle, marker, "")
	}
	c.lastEndedChar = ""

	if !closed && demandsClose(tag) {
		c.report(s, Error, msgCharacterStyleNotClosed, marker, "")
	}

	c.checkOccursUnder(s, tag, marker)
	c.checkAttributes(s, tag, marker, attributes)

	c.pushFrame(s, marker, true, closed)
}

func (c *Checker) EndChar(s *parser.State, marker string, attributes []token.Attribute) {
	f := c.popFrame(marker)
	c.lastEndedChar = marker
	if marker == "rb" && f != nil {
		c.checkRuby(s, f, attributes)
	}
}

func (c *Checker) StartNote(s *parser.State, marker, caller, category string, closed bool) {
	tag := c.sheet.Get(marker)
	if c.paraTag == "" {
		c.report(s, Error, msgNoteWithoutPara, marker, "")
	}
	if !closed {
		c.report(s, Error, msgNoteNotClosed, marker, "")
	}
	if caller == "" {
		c.report(s, Error, msgMissingCaller, marker, "")
	}
	c.checkOccursUnder(s, tag, marker)
	c.pushFrame(s, marker, false, closed)
}

func (c *Checker) EndNote(s *parser.State, marker string) {
	c.popFrame(marker)
}

func (c *Checker) StartRow(s *parser.State, marker string) {
	c.expectedCell = 1
}

func (c *Checker) StartCell(s *parser.State, marker string, align parser.CellAlignment) {
	if n := cellNumber(marker); n > 0 {
		if n != c.expectedCell {
			c.report(s, Error, msgMissingTableMarker, marker, "")
		}
		c.expectedCell = n + 1
	}
}

func (c *Checker) StartSidebar(s *parser.State, marker, category string, closed bool) {
	c.paraTag = ""
	if !closed {
		c.report(s, Error, msgSidebarNotClosed, marker, "")
	}
	c.applyParaStack(s, c.sheet.Get(marker))
}

func (c *Checker) EndSidebar(s *parser.State, marker string) {
	c.paraTag = ""
}

func (c *Checker) Text(s *parser.State, text string) {
	if strings.TrimSpace(text) != "" {
		c.lastEndedChar = ""
		for _, f := range c.frames {
			f.hasText = true
		}
	}
	for _, f := range c.frames {
		if f.isChar {
			f.text.WriteString(text)
		}
	}
	if strings.Contains(text, "|") {
		if f := c.innermostChar(); f != nil && f.closed {
			c.report(s, Error, msgInvalidAttribute, "", text)
		}
	}
}

func (c *Checker) Ref(s *parser.State, marker, display, target string) {
	for _, f := range c.frames {
		f.hasText = true
	}
}

func (c *Checker) Unmatched(s *parser.State, marker string) {
	c.report(s, Error, msgUnmatchedEnd, marker, "")
}

func (c *Checker) Milestone(s *parser.State, marker string, start bool, attributes []token.Attribute) {
	if c.opts.USFM2 {
		c.report(s, Error, msgNotSupportedUSFM2, marker, "")
		return
	}
	tag := c.sheet.Get(marker)
	c.checkAttributes(s, tag, marker, attributes)
	id, _ := attributeValue(attributes, "id")
	if start {
		c.milestones = append(c.milestones, &milestoneStart{
			marker:    marker,
			endMarker: tag.EndMarker,
			id:        id,
			chapter:   s.Chapter,
			verse:     s.Verse,
			offset:    s.VerseOffset,
		})
		return
	}
	for i := len(c.milestones) - 1; i >= 0; i-- {
		ms := c.milestones[i]
		if ms.endMarker != marker {
			continue
		}
		if ms.id != id {
			c.report(s, Error, msgMilestoneIDMismatch, marker, "")
		}
		c.milestones = append(c.milestones[:i], c.milestones[i+1:]...)
		return
	}
}

// demandsClose reports whether a character style must be explicitly
// closed: figures always, and every style nestable under NEST.
func demandsClose(tag *style.Marker) bool {
	return tag.Marker == "fig" || tag.OccursUnderContains("NEST")
}

// checkOccursUnder verifies the marker's declared contexts against
// the open elements.
func (c *Checker) checkOccursUnder(s *parser.State, tag *style.Marker, marker string) {
	if len(tag.OccursUnder) == 0 {
		return
	}
	for _, ctx := range c.contextMarkers(s) {
		if tag.OccursUnderContains(ctx) {
			return
		}
	}
	c.report(s, Error, msgInvalidMarkerPosition, marker, "")
}

// contextMarkers collects the markers the current position is under.
// The innermost stack entry is the element being opened and is not
// part of its own context.
func (c *Checker) contextMarkers(s *parser.State) []string {
	var ctx []string
	stack := s.Stack
	if len(stack) > 0 {
		stack = stack[:len(stack)-1]
	}
	for _, e := range stack {
		if e.Kind == parser.ElementChar {
			ctx = append(ctx, "NEST")
		}
		if e.Marker != "" {
			ctx = append(ctx, e.Marker)
		}
	}
	if s.Verse > 0 {
		ctx = append(ctx, "v")
	}
	return ctx
}

// checkAttributes verifies required, declared, and USFM 2 attribute
// rules for a span or milestone marker.
func (c *Checker) checkAttributes(s *parser.State, tag *style.Marker, marker string, attrs []token.Attribute) {
	for _, name := range tag.RequiredAttributes() {
		if _, ok := attributeValue(attrs, name); !ok {
			c.report(s, Error, msgMissingAttribute, marker, "")
		}
	}
	for _, a := range attrs {
		if !tag.HasAttribute(a.Name) && !strings.HasPrefix(a.Name, "x-") && !linkAttributes[a.Name] {
			c.report(s, Error, msgUnknownAttribute, marker, a.Name)
		}
	}
	if c.opts.USFM2 {
		for _, a := range attrs {
			if marker == "fig" {
				if !tag.HasAttribute(a.Name) {
					c.report(s, Error, msgNotSupportedUSFM2, marker, a.Name)
				}
				continue
			}
			if a.Name != tag.DefaultAttribute {
				c.report(s, Error, msgNotSupportedUSFM2, marker, a.Name)
			}
		}
	}
}

// checkRuby compares the gloss list against the base text grapheme
// count.
func (c *Checker) checkRuby(s *parser.State, f *frame, attrs []token.Attribute) {
	gloss, ok := attributeValue(attrs, "gloss")
	if !ok {
		return
	}
	glosses := strings.Split(gloss, ":")
	base := len(graphemes(f.text.String()))
	switch {
	case len(glosses) < base:
		c.report(s, Error, msgFewerRubyGlosses, "rb", "")
	case len(glosses) > base:
		c.report(s, Error, msgMoreRubyGlosses, "rb", "")
	}
}

// applyParaStack enforces the rank-aware paragraph nesting rule.
func (c *Checker) applyParaStack(s *parser.State, tag *style.Marker) {
	if len(tag.OccursUnder) == 0 {
		c.paraStack = append(c.paraStack, tag)
		return
	}
	pos := -1
	for i := len(c.paraStack) - 1; i >= 0; i-- {
		if tag.OccursUnderContains(c.paraStack[i].Marker) {
			pos = i
			break
		}
	}
	if pos < 0 {
		c.report(s, Error, msgInvalidParaPosition, tag.Marker, "")
		c.paraStack = append(c.paraStack, tag)
		return
	}
	if pos != len(c.paraStack)-1 {
		above := c.paraStack[pos+1]
		// Rank 0 places no constraint.
		if above.Rank != 0 && tag.Rank != 0 && above.Rank > tag.Rank {
			c.report(s, Error, msgInvalidParaPosition, tag.Marker, "")
			c.paraStack = append(c.paraStack, tag)
			return
		}
	}
	c.paraStack = append(c.paraStack[:pos+1], tag)
}

func (c *Checker) pushFrame(s *parser.State, marker string, isChar, closed bool) {
	c.frames = append(c.frames, &frame{
		marker:  marker,
		isChar:  isChar,
		closed:  closed,
		chapter: s.Chapter,
		verse:   s.Verse,
		offset:  s.VerseOffset,
	})
}

// popFrame removes the innermost frame and applies the empty-marker
// rule to it.
func (c *Checker) popFrame(marker string) *frame {
	if len(c.frames) == 0 {
		return nil
	}
	f := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	if !f.hasText && !emptyMarkerAllowed[f.marker] {
		c.reportAt(f.chapter, f.verse, f.offset, Error, msgEmptyMarker, f.marker)
	}
	return f
}

func (c *Checker) innermostChar() *frame {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].isChar {
			return c.frames[i]
		}
	}
	return nil
}

func attributeValue(attrs []token.Attribute, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// cellNumber extracts the column number from a cell marker such as
// tc1 or thr2.
func cellNumber(marker string) int {
	i := len(marker)
	for i > 0 && marker[i-1] >= '0' && marker[i-1] <= '9' {
		i--
	}
	if i == len(marker) {
		return 0
	}
	n := 0
	for _, r := range marker[i:] {
		n = n*10 + int(r-'0')
	}
	return n
}
