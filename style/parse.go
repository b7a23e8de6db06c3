/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package style

import (
	"strconv"
	"strings"
)

// ThemeFunc resolves a \ColorName value to an RGB int. The core
// default resolves every name to 0.
type ThemeFunc func(name string) int

// NoTheme is the default theme hook.
func NoTheme(string) int { return 0 }

// entry is one pre-processed stylesheet line: the field name
// lowercased, the rest of the line trimmed, and the source line.
type entry struct {
	field string
	text  string
	line  int
}

// Parse decodes stylesheet text into a catalog. Errors are
// accumulated with line numbers; parsing continues on a best-effort
// basis, so a partially valid stylesheet still yields descriptors.
func Parse(data []byte) (*Sheet, []Error) {
	return ParseWithTheme(data, NoTheme)
}

// ParseWithTheme is Parse with a theme hook for \ColorName values.
func ParseWithTheme(data []byte, theme ThemeFunc) (*Sheet, []Error) {
	if theme == nil {
		theme = NoTheme
	}
	p := &sheetParser{sheet: NewSheet(), theme: theme}
	p.parse(string(data))
	return p.sheet, p.errors
}

type sheetParser struct {
	sheet  *Sheet
	theme  ThemeFunc
	errors []Error
}

func (p *sheetParser) errorf(line int, format string, args ...any) {
	p.errors = append(p.errors, lineError(line, format, args...))
}

// parse splits the text into entries and assembles a descriptor from
// every \Marker entry and its following body entries.
func (p *sheetParser) parse(text string) {
	entries := p.split(text)

	sawMarker := false
	for i := 0; i < len(entries); {
		e := entries[i]
		if e.field != "marker" {
			p.errorf(e.line, "field \\%s outside marker definition", e.field)
			i++
			continue
		}
		sawMarker = true

		fields := strings.Fields(e.text)
		switch {
		case len(fields) == 0:
			p.errorf(e.line, "\\marker requires a tag")
			i++
		case len(fields) == 2 && fields[1] == "-":
			// \marker xy - removes xy and xy*.
			p.sheet.Remove(fields[0])
			i++
		default:
			tag := fields[0]
			body, next := block(entries, i+1)
			p.assemble(tag, e.line, body)
			i = next
		}
	}

	if !sawMarker {
		p.errors = append(p.errors, Error{Line: 0, Message: "no \\Marker entries in stylesheet"})
	}
}

// split pre-processes lines: strip an optional leading "#!", discard
// "#" comments, trim, and decode "\field rest" pairs.
func (p *sheetParser) split(text string) []entry {
	var entries []entry
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimPrefix(raw, "#!")
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "\\") {
			p.errorf(i+1, "line does not begin with a marker: %q", line)
			continue
		}
		field, rest, _ := strings.Cut(line[1:], " ")
		entries = append(entries, entry{
			field: strings.ToLower(field),
			text:  strings.TrimSpace(rest),
			line:  i + 1,
		})
	}
	return entries
}

// block returns the body entries from start up to the next \marker.
func block(entries []entry, start int) (body []entry, next int) {
	next = start
	for next < len(entries) && entries[next].field != "marker" {
		next++
	}
	return entries[start:next], next
}

// assemble decodes one marker block into a descriptor and records it.
func (p *sheetParser) assemble(tag string, line int, body []entry) {
	if _, exists := p.sheet.Lookup(tag); exists {
		p.errorf(line, "duplicate definition of marker \\%s", tag)
	}

	m := newMarker(tag)
	seen := make(map[string]int)

	for _, e := range body {
		if prev, dup := seen[e.field]; dup {
			p.errorf(e.line, "duplicate field \\%s (first defined on line %d)", e.field, prev)
			continue
		}
		seen[e.field] = e.line
		p.decodeField(m, e)
	}

	if _, ok := seen["name"]; !ok {
		p.errorf(line, "marker \\%s has no \\Name", tag)
	}

	p.finish(m, line)
}

// finish applies the derived defaults and synthesizes end descriptors.
func (p *sheetParser) finish(m *Marker, line int) {
	if m.Marker == "id" {
		m.TextProperties = m.TextProperties.Add(PropBook)
	}

	// Publishable inference for plain content markers.
	if m.TextType == TextOther &&
		(m.StyleType == Character || m.StyleType == Paragraph) &&
		!m.TextProperties.Has(PropNonpublishable) &&
		!m.TextProperties.Has(PropChapter) &&
		!m.TextProperties.Has(PropVerse) {
		m.TextProperties = m.TextProperties.Add(PropPublishable)
	}

	switch m.StyleType {
	case Character:
		if m.EndMarker == "" {
			m.EndMarker = m.Marker + "*"
		} else {
			p.synthesizeEnd(m, End)
		}
	case Milestone:
		if m.EndMarker == "" {
			p.errorf(line, "milestone \\%s has no \\Endmarker", m.Marker)
		} else {
			p.synthesizeEnd(m, MilestoneEnd)
		}
	default:
		if m.EndMarker != "" {
			p.synthesizeEnd(m, End)
		}
	}

	p.sheet.put(m)
}

// synthesizeEnd records the paired end descriptor for an explicit
// \Endmarker. Milestone ends carry an optional id attribute and the
// start's name.
func (p *sheetParser) synthesizeEnd(m *Marker, styleType Type) {
	end := newMarker(m.EndMarker)
	end.StyleType = styleType
	end.Name = m.Name
	end.TextType = m.TextType
	end.TextProperties = m.TextProperties
	if styleType == MilestoneEnd {
		end.setAttributes([]AttributeSpec{{Name: "id", Required: false}})
	}
	p.sheet.put(end)
}

// decodeField applies one body entry to the descriptor under assembly.
func (p *sheetParser) decodeField(m *Marker, e entry) {
	switch e.field {
	case "name":
		m.Name = e.text
	case "description":
		m.Description = e.text
	case "fontname":
		m.FontName = e.text
	case "xmltag":
		m.XMLTag = e.text
	case "encoding":
		m.Encoding = e.text
	case "fontsize":
		m.FontSize = p.intField(e)
	case "linespacing":
		m.LineSpacing = p.intField(e)
	case "spacebefore":
		m.SpaceBefore = p.intField(e)
	case "spaceafter":
		m.SpaceAfter = p.intField(e)
	case "rank":
		m.Rank = p.intField(e)
	case "leftmargin":
		m.LeftMargin = p.floatField(e)
	case "rightmargin":
		m.RightMargin = p.floatField(e)
	case "firstlineindent":
		m.FirstLineIndent = p.floatField(e)
	case "bold":
		m.Bold = boolField(e)
	case "italic":
		m.Italic = boolField(e)
	case "smallcaps":
		m.SmallCaps = boolField(e)
	case "subscript":
		m.Subscript = boolField(e)
	case "superscript":
		m.Superscript = boolField(e)
	case "underline":
		m.Underline = boolField(e)
	case "notrepeatable":
		m.NotRepeatable = boolField(e)
	case "regular":
		m.Bold = false
		m.Italic = false
		m.Superscript = false
		m.Regular = true
	case "color":
		m.Color = p.colorField(e)
	case "colorname":
		m.ColorName = e.text
		m.Color = p.theme(e.text)
	case "justification":
		switch j := Justification(strings.ToLower(e.text)); j {
		case Left, Center, Right, Both:
			m.Justification = j
		default:
			p.errorf(e.line, "unknown justification %q", e.text)
		}
	case "styletype":
		switch t := Type(strings.ToLower(e.text)); t {
		case Character, Paragraph, Note, Milestone:
			m.StyleType = t
		default:
			p.errorf(e.line, "unknown styletype %q", e.text)
		}
	case "texttype":
		p.textTypeField(m, e)
	case "textproperties":
		p.propertiesField(m, e)
	case "attributes":
		specs, err := parseAttributeSpec(e.text)
		if err != nil {
			p.errorf(e.line, "invalid attributes for \\%s: %v", m.Marker, err)
			return
		}
		m.setAttributes(specs)
	case "occursunder":
		m.OccursUnder = strings.Fields(e.text)
	case "endmarker":
		m.EndMarker = e.text
	default:
		p.errorf(e.line, "unknown field \\%s", e.field)
	}
}

// textTypeField decodes \TextType, including the chapternumber and
// versenumber forms that infer text properties.
func (p *sheetParser) textTypeField(m *Marker, e entry) {
	switch strings.ToLower(e.text) {
	case "title":
		m.TextType = TextTitle
	case "section":
		m.TextType = TextSection
	case "versetext":
		m.TextType = TextVerse
	case "notetext":
		m.TextType = TextNote
	case "other":
		m.TextType = TextOther
	case "backtranslation":
		m.TextType = TextBackTranslation
	case "translationnote":
		m.TextType = TextTranslationNote
	case "chapternumber":
		m.TextType = TextOther
		m.TextProperties = m.TextProperties.Add(PropChapter)
	case "versenumber":
		m.TextType = TextVerse
		m.TextProperties = m.TextProperties.Add(PropVerse)
	default:
		p.errorf(e.line, "unknown texttype %q", e.text)
	}
}

// propertiesField decodes \TextProperties. A nonpublishable property
// suppresses the publishable default.
func (p *sheetParser) propertiesField(m *Marker, e entry) {
	for _, name := range strings.Fields(strings.ToLower(e.text)) {
		prop, ok := propertyNames[name]
		if !ok {
			p.errorf(e.line, "unknown text property %q", name)
			continue
		}
		m.TextProperties = m.TextProperties.Add(prop)
	}
	if m.TextProperties.Has(PropNonpublishable) {
		m.TextProperties = m.TextProperties.Remove(PropPublishable)
	}
}

// intField decodes a non-negative integer; a literal "-" means 0.
func (p *sheetParser) intField(e entry) int {
	if e.text == "-" {
		return 0
	}
	n, err := strconv.Atoi(e.text)
	if err != nil || n < 0 {
		p.errorf(e.line, "invalid number %q for \\%s", e.text, e.field)
		return 0
	}
	return n
}

// floatField decodes a floating point value stored in thousandths.
func (p *sheetParser) floatField(e entry) int {
	if e.text == "-" {
		return 0
	}
	f, err := strconv.ParseFloat(e.text, 64)
	if err != nil {
		p.errorf(e.line, "invalid number %q for \\%s", e.text, e.field)
		return 0
	}
	if f < 0 {
		return int(f*1000 - 0.5)
	}
	return int(f*1000 + 0.5)
}

// boolField decodes a flag field: a literal "-" means false, anything
// else (including an empty value) means true.
func boolField(e entry) bool {
	return e.text != "-"
}

// colorField decodes \Color: decimal values are BGR and converted to
// RGB; an "x" prefix introduces hex in RGB order; "-" means 0.
func (p *sheetParser) colorField(e entry) int {
	if e.text == "-" {
		return 0
	}
	if strings.HasPrefix(strings.ToLower(e.text), "x") {
		n, err := strconv.ParseInt(e.text[1:], 16, 32)
		if err != nil {
			p.errorf(e.line, "invalid color %q", e.text)
			return 0
		}
		return int(n)
	}
	n, err := strconv.Atoi(e.text)
	if err != nil || n < 0 {
		p.errorf(e.line, "invalid color %q", e.text)
		return 0
	}
	// Swap BGR to RGB.
	return (n&0xFF)<<16 | n&0xFF00 | (n>>16)&0xFF
}
