/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import "github.com/jwickberg/MarkerCheck/token"

// ElementKind classifies an open element on the parser stack.
type ElementKind int

// Element kinds.
const (
	ElementBook ElementKind = iota
	ElementPara
	ElementChar
	ElementTable
	ElementRow
	ElementCell
	ElementNote
	ElementSidebar
)

// String returns the element kind name.
func (k ElementKind) String() string {
	switch k {
	case ElementBook:
		return "book"
	case ElementPara:
		return "para"
	case ElementChar:
		return "char"
	case ElementTable:
		return "table"
	case ElementRow:
		return "row"
	case ElementCell:
		return "cell"
	case ElementNote:
		return "note"
	case ElementSidebar:
		return "sidebar"
	default:
		return "invalid"
	}
}

// Element is one open construct on the parser stack.
type Element struct {
	Kind       ElementKind
	Marker     string
	Attributes []token.Attribute

	// Closed records whether lookahead found a matching end for the
	// element.
	Closed bool
}

// State is the mutable parser state exposed to sink callbacks.
type State struct {
	// Stack holds the open elements, innermost last.
	Stack []*Element

	// Book, Chapter and Verse form the current verse reference.
	Book    string
	Chapter int
	Verse   int

	// VerseOffset is the byte offset within the current verse.
	VerseOffset int

	// SpecialToken is set while the parser consumes lookahead tokens
	// such as alternate and published numbers, categories, or link trios.
	SpecialToken bool

	// skip counts pre-consumed tokens still to pass over.
	skip int
}

func newState(book string) *State {
	return &State{Book: book, Chapter: 1}
}

// clone deep-copies the state for lookahead probing.
func (s *State) clone() *State {
	c := *s
	c.Stack = make([]*Element, len(s.Stack))
	for i, e := range s.Stack {
		elem := *e
		c.Stack[i] = &elem
	}
	return &c
}

// Peek returns the innermost open element, or nil.
func (s *State) Peek() *Element {
	if len(s.Stack) == 0 {
		return nil
	}
	return s.Stack[len(s.Stack)-1]
}

// InNote reports whether a note element is open.
func (s *State) InNote() bool {
	return s.findKind(ElementNote) >= 0
}

// ParaMarker returns the marker of the innermost open paragraph, or
// "" when none is open.
func (s *State) ParaMarker() string {
	for i := len(s.Stack) - 1; i >= 0; i-- {
		if s.Stack[i].Kind == ElementPara {
			return s.Stack[i].Marker
		}
	}
	return ""
}

func (s *State) findKind(kind ElementKind) int {
	for i := len(s.Stack) - 1; i >= 0; i-- {
		if s.Stack[i].Kind == kind {
			return i
		}
	}
	return -1
}

func (s *State) push(e *Element) {
	s.Stack = append(s.Stack, e)
}

func (s *State) pop() *Element {
	e := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return e
}
