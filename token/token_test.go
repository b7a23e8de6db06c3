/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token_test

import (
	"testing"

	"github.com/jwickberg/MarkerCheck/token"
)

func TestToken_BaseMarker(t *testing.T) {
	tests := []struct {
		marker   string
		expected string
	}{
		{"bd", "bd"},
		{"bd*", "bd"},
		{"+bd", "bd"},
		{"+bd*", "bd"},
		{"qt-s", "qt-s"},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			tok := &token.Token{Marker: tt.marker}
			if got := tok.BaseMarker(); got != tt.expected {
				t.Errorf("BaseMarker() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestToken_Attribute(t *testing.T) {
	tok := &token.Token{Attributes: []token.Attribute{
		{Name: "lemma", Value: "grace"},
		{Name: "strong", Value: "G5485"},
	}}
	if v, ok := tok.Attribute("strong"); !ok || v != "G5485" {
		t.Errorf("Attribute(strong) = %q, %v", v, ok)
	}
	if _, ok := tok.Attribute("srcloc"); ok {
		t.Error("expected srcloc to be absent")
	}
}

func TestToken_Length(t *testing.T) {
	tests := []struct {
		name      string
		tok       token.Token
		addSpaces bool
		expected  int
	}{
		{"text", token.Token{Kind: token.Text, Text: "Hello"}, true, 5},
		{"paragraph with space", token.Token{Kind: token.Paragraph, Marker: "p"}, true, 3},
		{"paragraph preserved", token.Token{Kind: token.Paragraph, Marker: "p"}, false, 2},
		{"verse with data", token.Token{Kind: token.Verse, Marker: "v", Data: []string{"12"}}, true, 6},
		{"end marker", token.Token{Kind: token.End, Marker: "bd*"}, true, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.Length(tt.addSpaces); got != tt.expected {
				t.Errorf("Length(%v) = %d, want %d", tt.addSpaces, got, tt.expected)
			}
		})
	}
}

func TestJoin_Normalize(t *testing.T) {
	tokens := []*token.Token{
		{Kind: token.Book, Marker: "id", Data: []string{"GEN"}},
		{Kind: token.Paragraph, Marker: "p"},
		{Kind: token.Verse, Marker: "v", Data: []string{"1"}},
		{Kind: token.Text, Text: "In the beginning "},
		{Kind: token.Character, Marker: "nd"},
		{Kind: token.Text, Text: "God"},
		{Kind: token.End, Marker: "nd*"},
	}
	expected := `\id GEN \p \v 1 In the beginning \nd God\nd*`
	if got := token.Join(tokens, false); got != expected {
		t.Errorf("Join = %q, want %q", got, expected)
	}
}

func TestJoin_MilestoneAttributes(t *testing.T) {
	tokens := []*token.Token{
		{Kind: token.Milestone, Marker: "qt-s", EndMarker: "qt-e",
			Attributes: []token.Attribute{{Name: "id", Value: "q1"}, {Name: "who", Value: "Paul"}}},
	}
	expected := `\qt-s|id="q1" who="Paul"\*`
	if got := token.Join(tokens, false); got != expected {
		t.Errorf("Join = %q, want %q", got, expected)
	}
}

func TestJoin_EndTokenCarriesAttributes(t *testing.T) {
	attrs := []token.Attribute{{Name: "lemma", Value: "grace"}}
	tokens := []*token.Token{
		{Kind: token.Character, Marker: "w", EndMarker: "w*", Attributes: attrs, BareAttribute: true},
		{Kind: token.Text, Text: "grace"},
		{Kind: token.End, Marker: "w*", Attributes: attrs, BareAttribute: true},
	}
	expected := `\w grace|grace\w*`
	if got := token.Join(tokens, false); got != expected {
		t.Errorf("Join = %q, want %q", got, expected)
	}
}
