/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package style provides the marker catalog and stylesheet loader for
// USFM marker definitions.
package style

import "strings"

// Type classifies how a marker parses. It is a string newtype so that
// values a newer stylesheet defines round-trip through older code.
type Type string

// Well-known style types.
const (
	Character    Type = "character"
	Paragraph    Type = "paragraph"
	Note         Type = "note"
	Milestone    Type = "milestone"
	MilestoneEnd Type = "milestoneEnd"
	End          Type = "end"
	Unknown      Type = "unknown"
)

// TextType classifies the text a marker introduces.
type TextType string

// Well-known text types.
const (
	TextUnspecified     TextType = ""
	TextTitle           TextType = "title"
	TextSection         TextType = "section"
	TextVerse           TextType = "verseText"
	TextNote            TextType = "noteText"
	TextOther           TextType = "other"
	TextBackTranslation TextType = "backTranslation"
	TextTranslationNote TextType = "translationNote"
)

// TextProperties is a bit set of marker text properties.
type TextProperties uint32

// Text property flags.
const (
	PropVerse TextProperties = 1 << iota
	PropChapter
	PropParagraph
	PropPublishable
	PropVernacular
	PropPoetic
	PropLevel1
	PropLevel2
	PropLevel3
	PropLevel4
	PropLevel5
	PropCrossReference
	PropNonpublishable
	PropNonvernacular
	PropBook
	PropNote
)

// Has reports whether every flag in p is set.
func (t TextProperties) Has(p TextProperties) bool {
	return t&p == p
}

// Add returns t with the flags in p set.
func (t TextProperties) Add(p TextProperties) TextProperties {
	return t | p
}

// Remove returns t with the flags in p cleared.
func (t TextProperties) Remove(p TextProperties) TextProperties {
	return t &^ p
}

// propertyNames maps stylesheet \TextProperties names to flags.
var propertyNames = map[string]TextProperties{
	"verse":          PropVerse,
	"chapter":        PropChapter,
	"paragraph":      PropParagraph,
	"publishable":    PropPublishable,
	"vernacular":     PropVernacular,
	"poetic":         PropPoetic,
	"level_1":        PropLevel1,
	"level_2":        PropLevel2,
	"level_3":        PropLevel3,
	"level_4":        PropLevel4,
	"level_5":        PropLevel5,
	"crossreference": PropCrossReference,
	"nonpublishable": PropNonpublishable,
	"nonvernacular":  PropNonvernacular,
	"book":           PropBook,
	"note":           PropNote,
}

// Justification is a paragraph justification mode.
type Justification string

// Justification values.
const (
	Left   Justification = "left"
	Center Justification = "center"
	Right  Justification = "right"
	Both   Justification = "both"
)

// AttributeSpec is one declared attribute of a marker. In the raw
// stylesheet spec a leading "?" marks the name optional.
type AttributeSpec struct {
	Name     string
	Required bool
}

// Marker is one catalog entry: everything the stylesheet declares
// about a marker, plus derived defaults.
type Marker struct {
	// Marker is the identifying tag, lowercase, without backslash.
	Marker string

	StyleType Type

	// EndMarker is the closing tag (e.g. "fig*"). Character styles
	// without an explicit value default to Marker + "*".
	EndMarker string

	TextType       TextType
	TextProperties TextProperties

	// OccursUnder lists parent markers under which this marker is
	// legal; empty means anywhere.
	OccursUnder []string

	// Rank is the nesting depth for headings and poetry.
	Rank int

	// Attributes lists declared attributes, required entries first.
	Attributes []AttributeSpec

	// DefaultAttribute is the attribute a bare payload value binds
	// to. Defined iff at most one attribute is required; then it is
	// the first declared attribute.
	DefaultAttribute string

	// Cosmetic fields, carried but not interpreted by the validator.
	Name            string
	Description     string
	FontName        string
	XMLTag          string
	Encoding        string
	FontSize        int
	LineSpacing     int
	SpaceBefore     int
	SpaceAfter      int
	LeftMargin      int // thousandths
	RightMargin     int // thousandths
	FirstLineIndent int // thousandths
	Bold            bool
	Italic          bool
	SmallCaps       bool
	Subscript       bool
	Superscript     bool
	Underline       bool
	NotRepeatable   bool
	Regular         bool
	Color           int // RGB
	ColorName       string
	Justification   Justification
}

// HasAttribute reports whether name is a declared attribute.
func (m *Marker) HasAttribute(name string) bool {
	for _, a := range m.Attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// RequiredAttributes returns the names of all required attributes.
func (m *Marker) RequiredAttributes() []string {
	var names []string
	for _, a := range m.Attributes {
		if a.Required {
			names = append(names, a.Name)
		}
	}
	return names
}

// OccursUnderContains reports whether parent is a legal context.
func (m *Marker) OccursUnderContains(parent string) bool {
	for _, p := range m.OccursUnder {
		if p == parent {
			return true
		}
	}
	return false
}

// clone returns a deep copy of the descriptor.
func (m *Marker) clone() *Marker {
	c := *m
	c.OccursUnder = append([]string(nil), m.OccursUnder...)
	c.Attributes = append([]AttributeSpec(nil), m.Attributes...)
	return &c
}

// setAttributes applies a parsed raw attribute spec and derives
// DefaultAttribute.
func (m *Marker) setAttributes(specs []AttributeSpec) {
	m.Attributes = specs
	m.DefaultAttribute = ""
	required := 0
	for _, a := range specs {
		if a.Required {
			required++
		}
	}
	if required <= 1 && len(specs) > 0 {
		m.DefaultAttribute = specs[0].Name
	}
}

// newMarker creates a descriptor with catalog defaults applied: every
// new entry is publishable except the chapter and verse markers.
func newMarker(tag string) *Marker {
	m := &Marker{Marker: tag}
	if tag == "c" || tag == "v" {
		m.TextProperties = m.TextProperties.Add(PropNonpublishable)
	} else {
		m.TextProperties = m.TextProperties.Add(PropPublishable)
	}
	return m
}

// parseAttributeSpec decodes a raw \Attributes value. A leading "?"
// marks a name optional; required names must precede optional ones.
func parseAttributeSpec(raw string) ([]AttributeSpec, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, errEmptyAttributes
	}
	specs := make([]AttributeSpec, 0, len(fields))
	sawOptional := false
	for _, f := range fields {
		required := true
		if strings.HasPrefix(f, "?") {
			required = false
			f = f[1:]
		}
		if f == "" {
			return nil, errEmptyAttributes
		}
		if required && sawOptional {
			return nil, errRequiredAfterOptional
		}
		if !required {
			sawOptional = true
		}
		specs = append(specs, AttributeSpec{Name: f, Required: required})
	}
	return specs, nil
}
