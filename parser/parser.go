/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser drives a USFM token stream through a pushdown state
// machine, firing structured events at a Sink.
package parser

import (
	"strings"

	"github.com/jwickberg/MarkerCheck/books"
	"github.com/jwickberg/MarkerCheck/style"
	"github.com/jwickberg/MarkerCheck/token"
)

const nbsp = "\u00a0"

// Options configures a parser.
type Options struct {
	// Book seeds the verse reference, normally from the book code the
	// caller selected. The \id marker only sets the reference when
	// this is empty.
	Book string

	// PreserveWhitespace must match the tokenizer option the token
	// stream was produced with; it affects offset accounting.
	PreserveWhitespace bool
}

// Parser is a single-pass state machine over a token list. The
// catalog it reads is never mutated, so one catalog may back many
// parsers.
type Parser struct {
	sheet  *style.Sheet
	tokens []*token.Token
	sink   Sink
	state  *State
	index  int
	opts   Options
}

// New returns a parser over tokens. A nil sink suppresses events,
// which the parser itself uses for lookahead probes.
func New(sheet *style.Sheet, tokens []*token.Token, sink Sink, opts Options) *Parser {
	return &Parser{
		sheet:  sheet,
		tokens: tokens,
		sink:   sink,
		state:  newState(opts.Book),
		opts:   opts,
	}
}

// State exposes the live parser state.
func (p *Parser) State() *State {
	return p.state
}

// clone returns a functional copy for lookahead: same token slice,
// copied stack, no sink. The primary parser never observes state
// changes from the probe.
func (p *Parser) clone() *Parser {
	return &Parser{
		sheet:  p.sheet,
		tokens: p.tokens,
		sink:   nil,
		state:  p.state.clone(),
		index:  p.index,
		opts:   p.opts,
	}
}

// ProcessTokens drives every remaining token through the machine.
func (p *Parser) ProcessTokens() {
	for p.ProcessToken() {
	}
}

// ProcessToken advances one token; it returns false past the end.
func (p *Parser) ProcessToken() bool {
	if p.index >= len(p.tokens) {
		return false
	}
	tok := p.tokens[p.index]

	if p.index > 0 {
		p.state.VerseOffset += p.tokens[p.index-1].Length(!p.opts.PreserveWhitespace)
	}

	if p.state.skip > 0 {
		p.state.skip--
		p.state.SpecialToken = true
		p.index++
		return true
	}
	p.state.SpecialToken = false

	kind := tok.Kind
	if kind == token.Unknown {
		if p.state.InNote() {
			kind = token.Character
		} else {
			kind = token.Paragraph
		}
	}

	if tok.Kind != token.Text && p.sink != nil {
		p.sink.GotMarker(p.state, tok.Marker)
	}

	p.close(kind, tok)
	p.open(kind, tok)

	p.index++
	return true
}

// close applies the implicit-closing rules an incoming token fires
// before it opens anything.
func (p *Parser) close(kind token.Kind, tok *token.Token) {
	s := p.state
	switch kind {
	case token.Book, token.Chapter:
		p.CloseAll()
	case token.Paragraph:
		if tok.Marker == "tr" {
			for len(s.Stack) > 0 && s.Peek().Kind != ElementTable && s.Peek().Kind != ElementSidebar {
				p.closeElement()
			}
			return
		}
		if tok.Marker == "esb" {
			p.CloseAll()
			return
		}
		for len(s.Stack) > 0 && s.Peek().Kind != ElementSidebar {
			p.closeElement()
		}
	case token.Character:
		if isCellMarker(tok.Marker) && s.findKind(ElementRow) >= 0 {
			for len(s.Stack) > 0 && s.Peek().Kind != ElementRow {
				p.closeElement()
			}
			return
		}
		if tok.Marker == "ref" {
			return
		}
		if !tok.Nested() {
			for len(s.Stack) > 0 && s.Peek().Kind == ElementChar {
				p.closeElement()
			}
		}
	case token.Verse, token.Note:
		for s.InNote() {
			e := p.closeElement()
			if e.Kind == ElementNote {
				break
			}
		}
	}
}

// open interprets the token, firing start events and pushing open
// elements.
func (p *Parser) open(kind token.Kind, tok *token.Token) {
	switch kind {
	case token.Book:
		p.openBook(tok)
	case token.Chapter:
		p.openChapter(tok)
	case token.Verse:
		p.openVerse(tok)
	case token.Paragraph:
		p.openParagraph(tok)
	case token.Character:
		p.openCharacter(tok)
	case token.Note:
		p.openNote(tok)
	case token.End:
		p.matchEnd(tok)
	case token.Text:
		p.emitText(tok)
	case token.Milestone:
		if p.sink != nil {
			p.sink.Milestone(p.state, tok.Marker, true, tok.Attributes)
		}
	case token.MilestoneEnd:
		if p.sink != nil {
			p.sink.Milestone(p.state, tok.Marker, false, tok.Attributes)
		}
	}
}

func (p *Parser) openBook(tok *token.Token) {
	s := p.state
	code := tok.Data[0]
	s.push(&Element{Kind: ElementBook, Marker: tok.Marker})
	if s.Book == "" && books.Number(code) > 0 {
		s.Book = code
	}
	s.Chapter = 1
	s.Verse = 0
	if p.sink != nil {
		p.sink.StartBook(s, tok.Marker, code)
	}
}

func (p *Parser) openChapter(tok *token.Token) {
	s := p.state
	number := tok.Data[0]
	alt, pub := "", ""

	la := 1
	if p.isTrio(la, "ca") {
		alt = strings.TrimSpace(p.peek(la + 1).Text)
		s.skip += 3
		la += 3
	}
	gap := 0
	if t := p.peek(la); t != nil && t.Kind == token.Text && strings.TrimSpace(t.Text) == "" {
		gap = 1
	}
	if t := p.peek(la + gap); t != nil && t.Kind == token.Paragraph && t.Marker == "cp" {
		if next := p.peek(la + gap + 1); next != nil && next.Kind == token.Text {
			pub = strings.TrimSpace(next.Text)
			s.skip += gap + 2
		}
	}

	s.Chapter = leadingInt(number)
	if s.Chapter != 1 {
		// Chapter 1 keeps accumulating through the introduction.
		s.VerseOffset = 0
	}
	s.Verse = 0
	if p.sink != nil {
		p.sink.Chapter(s, number, tok.Marker, alt, pub)
	}
}

func (p *Parser) openVerse(tok *token.Token) {
	s := p.state
	number := tok.Data[0]
	alt, pub := "", ""

	la := 1
	if p.isTrio(la, "va") {
		alt = strings.TrimSpace(p.peek(la + 1).Text)
		s.skip += 3
		la += 3
	}
	gap := 0
	if t := p.peek(la); t != nil && t.Kind == token.Text && strings.TrimSpace(t.Text) == "" {
		gap = 1
	}
	if p.isTrio(la+gap, "vp") {
		pub = strings.TrimSpace(p.peek(la + gap + 1).Text)
		s.skip += gap + 3
	}

	s.Verse = leadingInt(number)
	s.VerseOffset = 0
	if p.sink != nil {
		p.sink.Verse(s, number, tok.Marker, alt, pub)
	}
}

func (p *Parser) openParagraph(tok *token.Token) {
	s := p.state
	switch tok.Marker {
	case "tr":
		if s.Peek() == nil || s.Peek().Kind != ElementTable {
			s.push(&Element{Kind: ElementTable})
			if p.sink != nil {
				p.sink.StartTable(s)
			}
		}
		s.push(&Element{Kind: ElementRow, Marker: tok.Marker})
		if p.sink != nil {
			p.sink.StartRow(s, tok.Marker)
		}
	case "esb":
		closed := p.sidebarClosed()
		category := p.consumeCategory()
		// The sidebar is pushed whether or not it is closed; its
		// closed-ness is still reported.
		s.push(&Element{Kind: ElementSidebar, Marker: tok.Marker, Closed: closed})
		if p.sink != nil {
			p.sink.StartSidebar(s, tok.Marker, category, closed)
		}
	case "esbe":
		if s.findKind(ElementSidebar) >= 0 {
			p.CloseAll()
		} else if p.sink != nil {
			p.sink.Unmatched(s, tok.Marker)
		}
	default:
		s.push(&Element{Kind: ElementPara, Marker: tok.Marker})
		if p.sink != nil {
			p.sink.StartPara(s, tok.Marker)
		}
	}
}

func (p *Parser) openCharacter(tok *token.Token) {
	s := p.state
	if isCellMarker(tok.Marker) && s.Peek() != nil && s.Peek().Kind == ElementRow {
		align := AlignStart
		if len(tok.Marker) > 2 {
			switch tok.Marker[2] {
			case 'c':
				align = AlignCenter
			case 'r':
				align = AlignEnd
			}
		}
		s.push(&Element{Kind: ElementCell, Marker: tok.Marker})
		if p.sink != nil {
			p.sink.StartCell(s, tok.Marker, align)
		}
		return
	}

	if tok.Marker == "ref" {
		s.SpecialToken = true
		if next := p.peek(1); next != nil && next.Kind == token.Text {
			display, target, _ := strings.Cut(next.Text, "|")
			s.skip++
			if end := p.peek(2); end != nil && end.Kind == token.End && end.Marker == tok.EndMarker {
				s.skip++
			}
			if p.sink != nil {
				p.sink.Ref(s, tok.Marker, display, target)
			}
		}
		return
	}

	marker := tok.Marker
	if strings.HasPrefix(marker, "+") && s.Peek() != nil && s.Peek().Kind == ElementChar {
		marker = marker[1:]
	}
	closed := false
	if p.sink != nil {
		closed = p.isTokenClosed()
	}
	s.push(&Element{Kind: ElementChar, Marker: marker, Attributes: tok.Attributes, Closed: closed})
	if p.sink != nil {
		p.sink.StartChar(s, marker, closed, tok.Attributes)
	}
}

func (p *Parser) openNote(tok *token.Token) {
	s := p.state
	// The closed-ness probe reprocesses this token in a clone, so it
	// must run before the category trio is consumed here.
	closed := false
	if p.sink != nil {
		closed = p.isTokenClosed()
	}
	category := p.consumeCategory()
	s.push(&Element{Kind: ElementNote, Marker: tok.Marker, Closed: closed})
	if p.sink != nil {
		p.sink.StartNote(s, tok.Marker, tok.Data[0], category, closed)
	}
}

// matchEnd resolves an explicit end marker against the stack.
func (p *Parser) matchEnd(tok *token.Token) {
	s := p.state

	if i := s.findKind(ElementNote); i >= 0 && s.Stack[i].Marker+"*" == tok.Marker {
		for {
			e := p.closeElement()
			if e.Kind == ElementNote {
				return
			}
		}
	}

	found := -1
	for i := len(s.Stack) - 1; i >= 0 && s.Stack[i].Kind == ElementChar; i-- {
		if matchesEnd(s.Stack[i].Marker, tok.Marker) {
			found = i
			break
		}
	}
	if found < 0 {
		if p.sink != nil {
			p.sink.Unmatched(s, tok.Marker)
		}
		return
	}
	// The matched element reports the end token's attributes, which
	// took ownership from the opener.
	if tok.Attributes != nil {
		s.Stack[found].Attributes = tok.Attributes
	}
	for len(s.Stack) > found {
		p.closeElement()
	}
}

// matchesEnd reports whether end closes an open character element
// with the given marker, allowing the nested "+" prefix.
func matchesEnd(marker, end string) bool {
	return marker+"*" == end || "+"+marker+"*" == end
}

// emitText fires text events: "~" becomes a no-break space and "//"
// an optional line break. A trailing space is stripped before an
// upcoming paragraph, book, or chapter marker and at end of stream.
func (p *Parser) emitText(tok *token.Token) {
	if p.sink == nil {
		return
	}
	text := strings.ReplaceAll(tok.Text, "~", nbsp)
	if p.nextStartsBlock() {
		text = strings.TrimSuffix(text, " ")
	}
	for i, piece := range strings.Split(text, "//") {
		if i > 0 {
			p.sink.OptBreak(p.state)
		}
		if piece != "" {
			p.sink.Text(p.state, piece)
		}
	}
}

// nextStartsBlock reports whether the next token opens a new block or
// the stream ends.
func (p *Parser) nextStartsBlock() bool {
	next := p.peek(1)
	if next == nil {
		return true
	}
	switch next.Kind {
	case token.Paragraph, token.Book, token.Chapter:
		return true
	}
	return false
}

// CloseAll pops the entire stack, firing end callbacks.
func (p *Parser) CloseAll() {
	for len(p.state.Stack) > 0 {
		p.closeElement()
	}
}

// closeElement pops the innermost element and fires its end event.
func (p *Parser) closeElement() *Element {
	s := p.state
	e := s.pop()
	if p.sink == nil {
		return e
	}
	switch e.Kind {
	case ElementBook:
		p.sink.EndBook(s, e.Marker)
	case ElementPara:
		p.sink.EndPara(s, e.Marker)
	case ElementChar:
		p.sink.EndChar(s, e.Marker, e.Attributes)
	case ElementTable:
		p.sink.EndTable(s)
	case ElementRow:
		p.sink.EndRow(s, e.Marker)
	case ElementCell:
		p.sink.EndCell(s, e.Marker)
	case ElementNote:
		p.sink.EndNote(s, e.Marker)
	case ElementSidebar:
		p.sink.EndSidebar(s, e.Marker)
	}
	return e
}

// isTokenClosed probes whether the character style or note opened by
// the current token is explicitly closed. The probe advances a clone
// of the parser; it stops when the new element leaves the clone's
// stack and reports whether a matching end marker removed it.
func (p *Parser) isTokenClosed() bool {
	clone := p.clone()
	if !clone.ProcessToken() {
		return false
	}
	depth := len(clone.state.Stack)
	if depth == 0 {
		return false
	}
	elem := clone.state.Stack[depth-1]
	for clone.index < len(clone.tokens) {
		next := clone.tokens[clone.index]
		matching := next.Kind == token.End && clone.state.skip == 0 &&
			matchesEnd(elem.Marker, next.Marker)
		if !clone.ProcessToken() {
			break
		}
		if len(clone.state.Stack) < depth || clone.state.Stack[depth-1] != elem {
			return matching
		}
	}
	return false
}

// sidebarClosed scans ahead for the sidebar end before anything that
// would implicitly terminate the sidebar.
func (p *Parser) sidebarClosed() bool {
	for i := p.index + 1; i < len(p.tokens); i++ {
		t := p.tokens[i]
		switch t.Kind {
		case token.Paragraph:
			if t.Marker == "esbe" {
				return true
			}
			if t.Marker == "esb" {
				return false
			}
		case token.Book, token.Chapter:
			return false
		}
	}
	return false
}

// consumeCategory consumes a \cat ...\cat* trio following the current
// token, returning the category text.
func (p *Parser) consumeCategory() string {
	if !p.isTrio(1, "cat") {
		return ""
	}
	category := strings.TrimSpace(p.peek(2).Text)
	p.state.skip += 3
	return category
}

// isTrio reports whether a marker, text, end sequence for tag starts
// at the given lookahead distance.
func (p *Parser) isTrio(la int, tag string) bool {
	open := p.peek(la)
	text := p.peek(la + 1)
	end := p.peek(la + 2)
	return open != nil && open.Kind == token.Character && open.Marker == tag &&
		text != nil && text.Kind == token.Text &&
		end != nil && end.Kind == token.End && end.Marker == tag+"*"
}

func (p *Parser) peek(n int) *token.Token {
	if p.index+n >= len(p.tokens) {
		return nil
	}
	return p.tokens[p.index+n]
}

func isCellMarker(marker string) bool {
	return strings.HasPrefix(marker, "th") || strings.HasPrefix(marker, "tc")
}

// leadingInt parses the leading digits of a chapter or verse number,
// tolerating ranges and suffixed letters.
func leadingInt(s string) int {
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}
