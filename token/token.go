/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides the USFM token model.
package token

import "strings"

// Kind classifies a token.
type Kind int

// Token kinds.
const (
	Book Kind = iota
	Chapter
	Verse
	Text
	Paragraph
	Character
	Note
	End
	Milestone
	MilestoneEnd
	Unknown
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Book:
		return "book"
	case Chapter:
		return "chapter"
	case Verse:
		return "verse"
	case Text:
		return "text"
	case Paragraph:
		return "paragraph"
	case Character:
		return "character"
	case Note:
		return "note"
	case End:
		return "end"
	case Milestone:
		return "milestone"
	case MilestoneEnd:
		return "milestoneEnd"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Attribute is one name="value" pair attached to a span-opening
// token. Offset is the byte offset of the value within the text token
// the attribute specification was lexed from.
type Attribute struct {
	Name   string
	Value  string
	Offset int
}

// Token is one element of the tokenized USFM stream. Tokens are
// immutable after tokenization, except that attribute ownership is
// shared with the matching end token.
type Token struct {
	Kind Kind

	// Marker is the tag without backslash, present for every kind but
	// Text. Nested character markers keep their "+" prefix and end
	// markers their trailing "*".
	Marker string

	// Text is the run content, present only for Text tokens.
	Text string

	// EndMarker is the closing tag when this token opens a span.
	EndMarker string

	// Data carries payload words: book code, chapter number, verse
	// number, note caller.
	Data []string

	// Attributes is the attribute list lexed with this token.
	Attributes []Attribute

	// BareAttribute records that Attributes was produced from a bare
	// default value rather than name="value" pairs.
	BareAttribute bool
}

// Attribute returns the value of the named attribute.
func (t *Token) Attribute(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Nested reports whether the token is a nested character style.
func (t *Token) Nested() bool {
	return strings.HasPrefix(t.Marker, "+")
}

// BaseMarker returns the marker without nesting prefix or end star.
func (t *Token) BaseMarker() string {
	return strings.TrimSuffix(strings.TrimPrefix(t.Marker, "+"), "*")
}

// Length returns the displayed byte length of the token, used for
// verse offset accounting. addSpaces accounts for the whitespace the
// tokenizer consumed after markers and data words in normalize mode.
func (t *Token) Length(addSpaces bool) int {
	if t.Kind == Text {
		return len(t.Text)
	}
	n := 1 + len(t.Marker)
	if addSpaces && !strings.HasSuffix(t.Marker, "*") {
		n++
	}
	for _, d := range t.Data {
		n += len(d)
		if addSpaces {
			n++
		}
	}
	switch t.Kind {
	case Milestone, MilestoneEnd:
		if len(t.Attributes) > 0 {
			n += 1 + len(attributeText(t))
		}
		n += 2 // terminating \*
	case End:
		if len(t.Attributes) > 0 {
			n += 1 + len(attributeText(t))
		}
	}
	return n
}

// attributeText serializes the attribute list back to specification
// form: a bare default value, or name="value" pairs.
func attributeText(t *Token) string {
	if t.BareAttribute && len(t.Attributes) == 1 {
		return t.Attributes[0].Value
	}
	var sb strings.Builder
	for i, a := range t.Attributes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(a.Value)
		sb.WriteByte('"')
	}
	return sb.String()
}

// Join re-serializes a token sequence to USFM. In normalize mode the
// output retokenizes to an equal sequence; with preserved whitespace
// the text content round-trips byte for byte.
func Join(tokens []*Token, preserveWhitespace bool) string {
	var sb strings.Builder
	for _, t := range tokens {
		switch t.Kind {
		case Text:
			sb.WriteString(t.Text)
		case End:
			if len(t.Attributes) > 0 {
				sb.WriteByte('|')
				sb.WriteString(attributeText(t))
			}
			sb.WriteByte('\\')
			sb.WriteString(t.Marker)
		case Milestone, MilestoneEnd:
			sb.WriteByte('\\')
			sb.WriteString(t.Marker)
			if len(t.Attributes) > 0 {
				sb.WriteByte('|')
				sb.WriteString(attributeText(t))
			}
			sb.WriteString("\\*")
		default:
			sb.WriteByte('\\')
			sb.WriteString(t.Marker)
			if !preserveWhitespace && !strings.HasSuffix(t.Marker, "*") {
				sb.WriteByte(' ')
			}
			for i, d := range t.Data {
				if preserveWhitespace && i == 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(d)
				if !preserveWhitespace {
					sb.WriteByte(' ')
				}
			}
		}
	}
	return sb.String()
}
