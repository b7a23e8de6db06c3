/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator_test

import (
	"strings"
	"testing"

	"github.com/jwickberg/MarkerCheck/style"
	"github.com/jwickberg/MarkerCheck/validator"
)

func testSheet(t *testing.T) *style.Sheet {
	t.Helper()
	sheet, errs := style.Default()
	if len(errs) != 0 {
		t.Fatalf("embedded stylesheet errors: %v", errs)
	}
	return sheet
}

func check(t *testing.T, usfm string) []*validator.Diagnostic {
	t.Helper()
	c := validator.New(testSheet(t), validator.Options{})
	return c.Check("GEN", usfm)
}

func checkUSFM2(t *testing.T, usfm string) []*validator.Diagnostic {
	t.Helper()
	c := validator.New(testSheet(t), validator.Options{USFM2: true})
	return c.Check("GEN", usfm)
}

func keys(diags []*validator.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Key
	}
	return out
}

func hasKey(diags []*validator.Diagnostic, key string) *validator.Diagnostic {
	for _, d := range diags {
		if d.Key == key {
			return d
		}
	}
	return nil
}

func requireClean(t *testing.T, usfm string) {
	t.Helper()
	if diags := check(t, usfm); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", keys(diags))
	}
}

func TestCheck_EmptyInputMissingID(t *testing.T) {
	diags := check(t, "")
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want just missing id", keys(diags))
	}
	d := diags[0]
	if d.Key != "missingIdMarker" || d.Book != "GEN" || d.Chapter != 1 || d.Verse != 0 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestCheck_MinimalBookIsClean(t *testing.T) {
	requireClean(t, "\\id GEN\n\\p\n\\v 1 Hello\n")
}

func TestCheck_FullerBookIsClean(t *testing.T) {
	requireClean(t, strings.Join([]string{
		`\id GEN Genesis`,
		`\h Genesis`,
		`\toc1 Genesis`,
		`\mt1 Genesis`,
		`\c 1`,
		`\s1 The Creation`,
		`\p`,
		`\v 1 In the beginning \nd God\nd* created//the heavens.`,
		`\v 2 And the earth \add was\add* without form.`,
		`\q1 poetry line`,
		`\c 2`,
		`\p`,
		`\v 1 Thus the heavens\f + \fr 2:1 \ft a note\f* were finished.`,
	}, "\n") + "\n")
}

func TestCheck_VerseWithoutParagraph(t *testing.T) {
	diags := check(t, "\\id GEN\n\\v 1 Hi\n")
	d := hasKey(diags, "verseWithoutParagraph")
	if d == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
	if d.Chapter != 1 || d.Verse != 1 {
		t.Errorf("position = %d:%d, want 1:1", d.Chapter, d.Verse)
	}
}

func TestCheck_VerseWithoutParagraphRangeFolds(t *testing.T) {
	diags := check(t, "\\id GEN\n\\v 1 a\n\\v 2 b\n\\v 3 c\n")
	var found []*validator.Diagnostic
	for _, d := range diags {
		if d.Key == "verseWithoutParagraph" {
			found = append(found, d)
		}
	}
	if len(found) != 1 {
		t.Fatalf("expected one folded diagnostic, got %v", keys(diags))
	}
	if found[0].Verse != 1 || found[0].VerseEnd != 3 {
		t.Errorf("range = %d-%d, want 1-3", found[0].Verse, found[0].VerseEnd)
	}
}

func TestCheck_DefaultAttributeIsClean(t *testing.T) {
	requireClean(t, "\\id GEN\n\\p\n\\v 1 \\w foo\\w*\n")
}

func TestCheck_MissingSpaceBeforeMarker(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 a\\\\b\n")
	if hasKey(diags, "missingSpacesBeforeMarkers") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
}

func TestCheck_UnclosedCharacterStyle(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\bd hi")
	d := hasKey(diags, "characterStyleNotClosed")
	if d == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
	if d.Marker != "bd" {
		t.Errorf("marker = %q, want bd", d.Marker)
	}
}

func TestCheck_USFM2RejectsMilestones(t *testing.T) {
	diags := checkUSFM2(t, "\\id GEN\n\\p\n\\v 1 \\qt-s|who=\"Paul\"\\*said\\qt-e\\*\n")
	d := hasKey(diags, "markerNotSupportedUSFM2")
	if d == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
	if d.Marker != "qt-s" {
		t.Errorf("marker = %q, want qt-s", d.Marker)
	}
}

func TestCheck_USFM2RejectsRuby(t *testing.T) {
	diags := checkUSFM2(t, "\\id GEN\n\\p\n\\v 1 \\rb base|gloss=\"g\"\\rb*\n")
	if hasKey(diags, "markerNotSupportedUSFM2") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
}

func TestCheck_USFM2RejectsNonDefaultAttributes(t *testing.T) {
	diags := checkUSFM2(t, "\\id GEN\n\\p\n\\v 1 \\w a|strong=\"G1\"\\w*\n")
	if hasKey(diags, "markerNotSupportedUSFM2") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	// The bare default value form is fine in USFM 2.
	c := validator.New(testSheet(t), validator.Options{USFM2: true})
	diags = c.Check("GEN", "\\id GEN\n\\p\n\\v 1 \\w a|grace\\w*\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", keys(diags))
	}
}

func TestCheck_FigureWithAttributesIsClean(t *testing.T) {
	requireClean(t, "\\id GEN\n\\p\n\\v 1 \\fig cap|src=\"a.jpg\" size=\"col\" loc=\"\" copy=\"\" ref=\"1.1\"\\fig*\n")
}

func TestCheck_LegacyFigureIsClean(t *testing.T) {
	requireClean(t, "\\id GEN\n\\p\n\\v 1 \\fig desc|a.jpg|col|loc|copy|cap|1:1\\fig*\n")
}

func TestCheck_FigureMissingRequiredAttributes(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\fig cap|alt=\"d\"\\fig*\n")
	var missing int
	for _, d := range diags {
		if d.Key == "missingRequiredAttribute" {
			missing++
		}
	}
	if missing != 2 {
		t.Fatalf("expected src and size to be reported, got %v", keys(diags))
	}
}

func TestCheck_UnknownAttribute(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\w a|foo=\"1\"\\w*\n")
	if hasKey(diags, "unknownAttribute") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	// x- custom attributes and link attributes are whitelisted.
	requireClean(t, "\\id GEN\n\\p\n\\v 1 \\w a|x-note=\"1\"\\w*\n")
	requireClean(t, "\\id GEN\n\\p\n\\v 1 \\w a|link-href=\"#x\"\\w*\n")
}

func TestCheck_MissingMilestoneEnd(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\qt-s|id=\"x\"\\*words\n")
	d := hasKey(diags, "missingMilestoneEnd")
	if d == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
	if d.Marker != "qt-s" {
		t.Errorf("marker = %q, want qt-s", d.Marker)
	}
}

func TestCheck_MilestoneIDMismatch(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\qt-s|id=\"x\"\\*words\\qt-e|id=\"y\"\\*\n")
	if hasKey(diags, "milestoneIdMismatch") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
}

func TestCheck_MatchedMilestonesAreClean(t *testing.T) {
	requireClean(t, "\\id GEN\n\\p\n\\v 1 \\qt-s|id=\"x\"\\*words\\qt-e|id=\"x\"\\*\n")
}

func TestCheck_RubyGlossCounts(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\rb 漢字|gloss=\"kan\"\\rb*\n")
	if hasKey(diags, "fewerRubyGlossesThanBaseText") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	diags = check(t, "\\id GEN\n\\p\n\\v 1 \\rb 字|gloss=\"a:b\"\\rb*\n")
	if hasKey(diags, "moreRubyGlossesThanBaseText") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	requireClean(t, "\\id GEN\n\\p\n\\v 1 \\rb 漢字|gloss=\"kan:ji\"\\rb*\n")
}

func TestCheck_UnknownMarker(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\zzz hi\n")
	d := hasKey(diags, "unknownMarker")
	if d == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
	if d.Marker != "zzz" {
		t.Errorf("marker = %q, want zzz", d.Marker)
	}
}

func TestCheck_EmptyMarker(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\bd \\bd* x\n")
	if hasKey(diags, "emptyMarker") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	// Markers on the allowlist may be empty.
	requireClean(t, "\\id GEN\n\\p\n\\v 1 one\n\\b\n\\q1 two\n")
}

func TestCheck_RepeatedCharacterStyle(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\wj a\\wj* \\wj b\\wj*\n")
	d := hasKey(diags, "repeatedCharacterStyle")
	if d == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
	if d.Severity != validator.Warning {
		t.Error("expected a warning severity")
	}

	// Intervening text clears the repetition.
	requireClean(t, "\\id GEN\n\\p\n\\v 1 \\wj a\\wj* and \\wj b\\wj*\n")
}

func TestCheck_CharWithoutParagraph(t *testing.T) {
	diags := check(t, "\\id GEN\n\\bd hi\\bd*\n")
	if hasKey(diags, "characterStyleWithoutParagraph") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
}

func TestCheck_NoteChecks(t *testing.T) {
	diags := check(t, "\\id GEN\n\\f + \\ft x\\f*\n")
	if hasKey(diags, "noteWithoutParagraph") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	diags = check(t, "\\id GEN\n\\p\n\\v 1 a\\f + text\n\\v 2 b\n")
	if hasKey(diags, "noteNotClosed") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	diags = check(t, "\\id GEN\n\\p\n\\v 1 a\\f \\ft text\\f* b\n")
	if hasKey(diags, "missingCaller") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
}

func TestCheck_SidebarNotClosed(t *testing.T) {
	diags := check(t, "\\id GEN\n\\esb\n\\p x\n\\c 1\n\\p\n\\v 1 y\n")
	if hasKey(diags, "sidebarNotClosed") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	requireClean(t, "\\id GEN\n\\p\n\\v 1 y\n\\esb \\cat People\\cat*\n\\p inside\n\\esbe\n")
}

func TestCheck_UnmatchedEnd(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 plain\\bd* x\n")
	if hasKey(diags, "unmatchedEndMarker") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
}

func TestCheck_TableCellNumbering(t *testing.T) {
	diags := check(t, "\\id GEN\n\\c 1\n\\tr \\th1 A\\th3 B\n\\p\n\\v 1 x\n")
	if hasKey(diags, "missingTableMarker") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	requireClean(t, "\\id GEN\n\\c 1\n\\tr \\th1 A\\th2 B\n\\tr \\tc1 a\\tc2 b\n\\p\n\\v 1 x\n")
}

func TestCheck_OccursUnderViolation(t *testing.T) {
	// xo belongs inside a cross reference note.
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\xo 1:1\\xo*\n")
	if hasKey(diags, "invalidMarkerPosition") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	requireClean(t, "\\id GEN\n\\p\n\\v 1 a\\x - \\xo 1:1 \\xt note\\x* b\n")
}

func TestCheck_ParagraphStack(t *testing.T) {
	// s2 needs a chapter or s1 context.
	diags := check(t, "\\id GEN\n\\s2 Early\n\\p x\n")
	if hasKey(diags, "invalidParagraphPosition") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}

	requireClean(t, "\\id GEN\n\\c 1\n\\s1 Heading\n\\s2 Sub\n\\p\n\\v 1 x\n")
}

func TestCheck_InvalidAttributePipe(t *testing.T) {
	diags := check(t, "\\id GEN\n\\p\n\\v 1 \\nd a|b\\nd*\n")
	if hasKey(diags, "invalidAttribute") == nil {
		t.Fatalf("diagnostics = %v", keys(diags))
	}
}

func TestCheck_ErrorsSeen(t *testing.T) {
	c := validator.New(testSheet(t), validator.Options{})
	c.Check("GEN", "\\id GEN\n\\p\n\\v 1 ok\n")
	if c.ErrorsSeen() {
		t.Error("clean input must not set errors seen")
	}
	c.Check("GEN", "")
	if !c.ErrorsSeen() {
		t.Error("missing id must set errors seen")
	}
}

func TestDiagnostic_Format(t *testing.T) {
	d := &validator.Diagnostic{
		Book: "GEN", Chapter: 1, Verse: 2, Offset: 5,
		Marker: "bd", Key: "characterStyleNotClosed",
	}
	expected := `MarkerCheck: GEN:1:2 Offset: 5 Marker: \bd Message: #characterStyleNotClosed`
	if got := d.Format(nil); got != expected {
		t.Errorf("Format = %q, want %q", got, expected)
	}

	d.VerseEnd = 4
	if got := d.Format(nil); !strings.Contains(got, "GEN:1:2-4") {
		t.Errorf("expected verse range in %q", got)
	}

	translated := d.Format(func(key string) string { return "translated " + key })
	if !strings.Contains(translated, "Message: translated characterStyleNotClosed") {
		t.Errorf("translator not applied: %q", translated)
	}
}
