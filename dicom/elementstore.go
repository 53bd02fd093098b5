// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

// ElementStore is an ordered container of decoded Elements, kept sorted by
// the (group, element) composite key. Elements are inserted one at a time
// as the decoder produces them, each at its binary-search-computed
// position.
type ElementStore struct {
	elements []*Element

	hasSliceLocation bool
	sliceLocation    float64
}

// newElementStore returns an empty ElementStore.
func newElementStore() *ElementStore {
	return &ElementStore{}
}

// Len returns the number of top-level elements in the store.
func (s *ElementStore) Len() int {
	return len(s.elements)
}

// Elements returns the store's elements in sorted (group, element) order.
// The returned slice must not be mutated.
func (s *ElementStore) Elements() []*Element {
	return s.elements
}

// Lookup returns the element with the given tag and true, or nil and false
// if no such element is present.
func (s *ElementStore) Lookup(tag Tag) (*Element, bool) {
	idx := insertionIndex(s.elements, tag)
	if idx < len(s.elements) && s.elements[idx].Tag == tag {
		return s.elements[idx], true
	}
	return nil, false
}

// SliceLocation returns the floating-point value decoded from the Slice
// Location element (0020,1041), and whether that element was present and
// parsed successfully. Exposed for external collaborators that sort slices
// across files; this package only decodes and surfaces the value.
func (s *ElementStore) SliceLocation() (float64, bool) {
	return s.sliceLocation, s.hasSliceLocation
}

// insert adds e to the store at its sorted position. If an element with
// e.Tag is already present, it is overwritten in place rather than
// duplicated (duplicate tags at one level are unexpected but tolerated).
func (s *ElementStore) insert(e *Element) {
	idx := insertionIndex(s.elements, e.Tag)
	if idx < len(s.elements) && s.elements[idx].Tag == e.Tag {
		s.elements[idx] = e
		return
	}

	s.elements = append(s.elements, nil)
	copy(s.elements[idx+1:], s.elements[idx:])
	s.elements[idx] = e
}

// insertionIndex returns the position at which an element with tag belongs
// within elements, which must already be sorted by (group, element). If an
// element with that exact tag is present, its index is returned. Binary
// search proceeds recursively over the half-open interval [lo, hi),
// comparing group first, then element.
func insertionIndex(elements []*Element, tag Tag) int {
	return binarySearch(elements, tag, 0, len(elements))
}

func binarySearch(elements []*Element, tag Tag, lo, hi int) int {
	if lo >= hi {
		return lo
	}

	mid := (lo + hi) / 2
	switch {
	case elements[mid].Tag.Group > tag.Group:
		return binarySearch(elements, tag, lo, mid)
	case elements[mid].Tag.Group < tag.Group:
		return binarySearch(elements, tag, mid+1, hi)
	case elements[mid].Tag.Element > tag.Element:
		return binarySearch(elements, tag, lo, mid)
	case elements[mid].Tag.Element < tag.Element:
		return binarySearch(elements, tag, mid+1, hi)
	default:
		return mid
	}
}
