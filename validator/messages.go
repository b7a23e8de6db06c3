/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator

// Message keys for diagnostics. The CLI renders them through the
// l10n translator; the default rendering is the "#key" form.
const (
	msgMissingID               = "missingIdMarker"
	msgMissingSpace            = "missingSpacesBeforeMarkers"
	msgUnknownMarker           = "unknownMarker"
	msgEmptyMarker             = "emptyMarker"
	msgRepeatedCharacterStyle  = "repeatedCharacterStyle"
	msgCharacterStyleNotClosed = "characterStyleNotClosed"
	msgCharacterWithoutPara    = "characterStyleWithoutParagraph"
	msgVerseWithoutPara        = "verseWithoutParagraph"
	msgNoteWithoutPara         = "noteWithoutParagraph"
	msgNoteNotClosed           = "noteNotClosed"
	msgSidebarNotClosed        = "sidebarNotClosed"
	msgUnmatchedEnd            = "unmatchedEndMarker"
	msgMissingTableMarker      = "missingTableMarker"
	msgMissingAttribute        = "missingRequiredAttribute"
	msgUnknownAttribute        = "unknownAttribute"
	msgInvalidAttribute        = "invalidAttribute"
	msgInvalidMarkerPosition   = "invalidMarkerPosition"
	msgInvalidParaPosition     = "invalidParagraphPosition"
	msgMissingMilestoneEnd     = "missingMilestoneEnd"
	msgMilestoneIDMismatch     = "milestoneIdMismatch"
	msgNotSupportedUSFM2       = "markerNotSupportedUSFM2"
	msgFewerRubyGlosses        = "fewerRubyGlossesThanBaseText"
	msgMoreRubyGlosses         = "moreRubyGlossesThanBaseText"
	msgMissingCaller           = "missingCaller"
)
