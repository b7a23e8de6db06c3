/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package style

// colorRed is the color assigned to synthesized unknown-marker entries.
const colorRed = 0xFF0000

// Sheet is an indexed catalog of marker descriptors. It is built once
// by the loader and read-only thereafter, except that looking up an
// undefined marker records a synthesized unknown-style descriptor.
type Sheet struct {
	markers map[string]*Marker
	order   []string
}

// NewSheet returns an empty catalog.
func NewSheet() *Sheet {
	return &Sheet{markers: make(map[string]*Marker)}
}

// Get returns the descriptor for marker. An undefined marker gets a
// synthesized descriptor with unknown style type and red color, which
// is inserted into the catalog and returned.
func (s *Sheet) Get(marker string) *Marker {
	if m, ok := s.markers[marker]; ok {
		return m
	}
	m := newMarker(marker)
	m.StyleType = Unknown
	m.Color = colorRed
	s.put(m)
	return m
}

// Lookup returns the descriptor for marker without synthesizing one.
func (s *Sheet) Lookup(marker string) (*Marker, bool) {
	m, ok := s.markers[marker]
	return m, ok
}

// put inserts or replaces a descriptor, preserving insertion order.
func (s *Sheet) put(m *Marker) {
	if _, ok := s.markers[m.Marker]; !ok {
		s.order = append(s.order, m.Marker)
	}
	s.markers[m.Marker] = m
}

// Remove deletes marker and, when present, its end-marker counterpart,
// preserving contiguous indexing of the remaining entries.
func (s *Sheet) Remove(marker string) {
	s.remove(marker)
	s.remove(marker + "*")
}

func (s *Sheet) remove(marker string) {
	if _, ok := s.markers[marker]; !ok {
		return
	}
	delete(s.markers, marker)
	for i, name := range s.order {
		if name == marker {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Merge folds other into s: entries from other override same-named
// entries in s. Descriptors are deep-copied so the sheets stay
// independent.
func (s *Sheet) Merge(other *Sheet) {
	for _, name := range other.order {
		s.put(other.markers[name].clone())
	}
}

// Len returns the number of descriptors in the catalog.
func (s *Sheet) Len() int {
	return len(s.order)
}

// Markers returns every descriptor in catalog order.
func (s *Sheet) Markers() []*Marker {
	out := make([]*Marker, len(s.order))
	for i, name := range s.order {
		out[i] = s.markers[name]
	}
	return out
}
