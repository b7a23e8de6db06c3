/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tokenizer converts USFM text into a typed token stream.
package tokenizer

import (
	"strings"
	"unicode/utf8"

	"github.com/jwickberg/MarkerCheck/style"
	"github.com/jwickberg/MarkerCheck/token"
)

// Options configures tokenization.
type Options struct {
	// PreserveWhitespace disables whitespace normalization, keeping
	// text content byte for byte.
	PreserveWhitespace bool
}

// Tokenize converts UTF-8 USFM text into a token sequence, resolving
// marker classification against the catalog, attribute syntax, figure
// legacy formats, and milestone terminators.
func Tokenize(sheet *style.Sheet, usfm string, opts Options) []*token.Token {
	t := &tokenizer{sheet: sheet, preserve: opts.PreserveWhitespace}
	if !t.preserve {
		usfm = RegularizeSpaces(usfm)
	}
	t.text = usfm
	t.run()
	if !t.preserve {
		t.ensureSpacing()
	}
	return t.tokens
}

type tokenizer struct {
	sheet    *style.Sheet
	text     string
	index    int
	preserve bool
	tokens   []*token.Token

	// attrToken is the most recent span-opening token still able to
	// receive an attribute specification from a following text run.
	attrToken *token.Token
}

func (t *tokenizer) add(tok *token.Token) {
	t.tokens = append(t.tokens, tok)
}

func (t *tokenizer) run() {
	for t.index < len(t.text) {
		if t.text[t.index] != '\\' {
			end := len(t.text)
			if next := strings.IndexByte(t.text[t.index:], '\\'); next >= 0 {
				end = t.index + next
			}
			t.emitText(t.text[t.index:end])
			t.index = end
			continue
		}
		t.scanMarker()
	}
}

// scanMarker consumes a backslash-introduced marker and classifies it.
func (t *tokenizer) scanMarker() {
	start := t.index
	t.index++
	markerStart := t.index
	for t.index < len(t.text) {
		r, size := utf8.DecodeRuneInString(t.text[t.index:])
		if r == '\\' || r == '|' || isNonSemanticWhitespace(r) {
			break
		}
		t.index += size
		if r == '*' {
			break
		}
	}
	marker := t.text[markerStart:t.index]
	if marker == "" {
		t.emitText("\\")
		return
	}
	if !t.preserve && !strings.HasSuffix(marker, "*") {
		t.skipWhitespace()
	}
	t.classify(marker, start)
}

// classify dispatches on the catalog descriptor of the marker. A "+"
// prefix marks a nested character style; other prefixed markers fall
// back to the descriptor of the bare tag.
func (t *tokenizer) classify(marker string, start int) {
	if marker == "*" {
		t.bareStar(start)
		return
	}
	tag := t.sheet.Get(strings.TrimPrefix(marker, "+"))

	switch tag.StyleType {
	case style.Character:
		if tag.TextProperties.Has(style.PropVerse) {
			t.add(&token.Token{Kind: token.Verse, Marker: marker, Data: []string{t.nextWord()}})
			t.attrToken = nil
			return
		}
		tok := &token.Token{Kind: token.Character, Marker: marker, EndMarker: marker + "*"}
		t.add(tok)
		t.attrToken = tok
	case style.Paragraph:
		switch {
		case tag.TextProperties.Has(style.PropChapter):
			t.add(&token.Token{Kind: token.Chapter, Marker: marker, Data: []string{t.nextWord()}})
		case tag.TextProperties.Has(style.PropBook):
			t.add(&token.Token{Kind: token.Book, Marker: marker, Data: []string{t.nextWord()}})
		default:
			t.add(&token.Token{Kind: token.Paragraph, Marker: marker})
		}
		t.attrToken = nil
	case style.Note:
		t.add(&token.Token{Kind: token.Note, Marker: marker, EndMarker: marker + "*", Data: []string{t.nextWord()}})
		t.attrToken = nil
	case style.End:
		t.emitEnd(marker)
	case style.Milestone, style.MilestoneEnd:
		t.emitMilestone(marker, tag, start)
	default:
		t.emitUnknown(marker)
	}
}

// emitUnknown handles markers without a usable catalog entry.
func (t *tokenizer) emitUnknown(marker string) {
	if strings.HasSuffix(marker, "*") {
		t.emitEnd(marker)
		return
	}
	base := strings.TrimPrefix(marker, "+")
	if base == "esb" || base == "esbe" {
		// Sidebar markers parse as paragraphs even when the
		// stylesheet does not define them.
		t.add(&token.Token{Kind: token.Paragraph, Marker: marker})
		t.attrToken = nil
		return
	}
	t.add(&token.Token{Kind: token.Unknown, Marker: marker, EndMarker: marker + "*"})
	t.attrToken = nil
}

// emitEnd emits an end token and transfers attribute ownership from
// the most recent attribute-carrying opener with a matching end tag.
func (t *tokenizer) emitEnd(marker string) {
	tok := &token.Token{Kind: token.End, Marker: marker}
	for i := len(t.tokens) - 1; i >= 0; i-- {
		prev := t.tokens[i]
		if len(prev.Attributes) > 0 {
			if prev.EndMarker == marker {
				tok.Attributes = prev.Attributes
				tok.BareAttribute = prev.BareAttribute
			}
			break
		}
	}
	t.add(tok)
	if t.attrToken != nil && t.attrToken.EndMarker == marker {
		t.attrToken = nil
	}
}

// emitMilestone emits a milestone token if its \* terminator appears
// before the next marker; otherwise the whole slice stays literal
// text so a partially typed milestone remains editable.
func (t *tokenizer) emitMilestone(marker string, tag *style.Marker, start int) {
	next := strings.IndexByte(t.text[t.index:], '\\')
	terminated := next >= 0 && strings.HasPrefix(t.text[t.index+next:], "\\*")
	if !terminated {
		end := len(t.text)
		if next >= 0 {
			end = t.index + next
		}
		t.add(&token.Token{Kind: token.Text, Text: t.text[start:end]})
		t.index = end
		return
	}
	kind := token.Milestone
	if tag.StyleType == style.MilestoneEnd {
		kind = token.MilestoneEnd
	}
	tok := &token.Token{Kind: kind, Marker: marker, EndMarker: tag.EndMarker}
	t.add(tok)
	t.attrToken = tok
}

// bareStar closes the most recent milestone: no token is emitted and
// any space-only text tokens back to the milestone are dropped.
func (t *tokenizer) bareStar(start int) {
	i := len(t.tokens) - 1
	for i >= 0 && t.tokens[i].Kind == token.Text && strings.TrimSpace(t.tokens[i].Text) == "" {
		i--
	}
	if i >= 0 && (t.tokens[i].Kind == token.Milestone || t.tokens[i].Kind == token.MilestoneEnd) {
		t.tokens = t.tokens[:i+1]
		if t.attrToken == t.tokens[i] {
			t.attrToken = nil
		}
		return
	}
	t.add(&token.Token{Kind: token.Unknown, Marker: "*", EndMarker: "**"})
	t.attrToken = nil
}

// emitText emits a text run, interpreting a "|" suffix as an
// attribute specification for the open span marker.
func (t *tokenizer) emitText(text string) {
	tok := &token.Token{Kind: token.Text, Text: text}
	if pipe := strings.IndexByte(text, '|'); pipe >= 0 && t.attrToken != nil {
		prefix, spec := text[:pipe], text[pipe+1:]
		if t.foldAttributes(tok, prefix, spec, pipe+1) {
			t.add(tok)
			return
		}
	}
	t.add(tok)
}

// foldAttributes attaches a parsed attribute specification to the
// open marker. Returns false when the spec does not parse, in which
// case the pipe stays literal text.
func (t *tokenizer) foldAttributes(tok *token.Token, prefix, spec string, base int) bool {
	if t.attrToken.Marker == "fig" && strings.Count(spec, "|") == 5 {
		t.foldLegacyFigure(tok, prefix, spec, base)
		return true
	}
	attrs, bare, ok := parseAttributes(spec, base, t.defaultAttribute())
	if !ok {
		return false
	}
	t.attrToken.Attributes = attrs
	t.attrToken.BareAttribute = bare
	tok.Text = prefix
	return true
}

// defaultAttribute returns the declared default attribute of the open
// span marker, or "" when bare values are not accepted.
func (t *tokenizer) defaultAttribute() string {
	if t.attrToken == nil {
		return ""
	}
	tag, ok := t.sheet.Lookup(t.attrToken.BaseMarker())
	if !ok {
		return ""
	}
	return tag.DefaultAttribute
}

// foldLegacyFigure decodes the six-field legacy figure payload into
// USFM 3 attributes. The accumulated text becomes the alt attribute
// and the caption field becomes the text.
func (t *tokenizer) foldLegacyFigure(tok *token.Token, prefix, spec string, base int) {
	fields := strings.Split(spec, "|")
	offsets := make([]int, len(fields))
	pos := base
	for i, f := range fields {
		offsets[i] = pos
		pos += len(f) + 1
	}
	names := []string{"src", "size", "loc", "copy", "caption", "ref"}
	attrs := []token.Attribute{{Name: "alt", Value: prefix, Offset: 0}}
	caption := ""
	for i, name := range names {
		if name == "caption" {
			caption = fields[i]
			continue
		}
		attrs = append(attrs, token.Attribute{Name: name, Value: fields[i], Offset: offsets[i]})
	}
	t.attrToken.Attributes = attrs
	tok.Text = caption
}

// nextWord consumes the next payload word: book code, chapter or
// verse number, or note caller.
func (t *tokenizer) nextWord() string {
	for t.index < len(t.text) {
		r, size := utf8.DecodeRuneInString(t.text[t.index:])
		if !isNonSemanticWhitespace(r) {
			break
		}
		t.index += size
	}
	start := t.index
	for t.index < len(t.text) {
		r, size := utf8.DecodeRuneInString(t.text[t.index:])
		if r == '\\' || isNonSemanticWhitespace(r) {
			break
		}
		t.index += size
	}
	word := t.text[start:t.index]
	if !t.preserve {
		t.skipWhitespace()
	}
	return word
}

func (t *tokenizer) skipWhitespace() {
	for t.index < len(t.text) {
		r, size := utf8.DecodeRuneInString(t.text[t.index:])
		if !isNonSemanticWhitespace(r) {
			return
		}
		t.index += size
	}
}

// ensureSpacing guarantees round-trip stability in normalize mode: a
// single trailing space is kept in the text before book, chapter, and
// paragraph markers, and before verse markers not preceded by an
// opening parenthesis or bracket.
func (t *tokenizer) ensureSpacing() {
	for i, tok := range t.tokens {
		switch tok.Kind {
		case token.Book, token.Chapter, token.Paragraph:
		case token.Verse:
			if i > 0 && t.tokens[i-1].Kind == token.Text {
				text := t.tokens[i-1].Text
				if strings.HasSuffix(text, "(") || strings.HasSuffix(text, "[") {
					continue
				}
			}
		default:
			continue
		}
		if i > 0 {
			prev := t.tokens[i-1]
			if prev.Kind == token.Text && !strings.HasSuffix(prev.Text, " ") {
				prev.Text += " "
			}
		}
	}
}
