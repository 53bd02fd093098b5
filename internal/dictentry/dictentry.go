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

// Package dictentry is a minimal reference Dictionary: a flat table sorted
// by (group, element), queried by binary search. The dicom package treats
// its real dictionary as an external collaborator (spec.md §2); this
// package exists only so dicom's own tests have a concrete table to wrap in
// a dicom.Dictionary adapter and pass to the decoder.
package dictentry

// Entry is one row of the table: a tag's canonical VR and human title.
type Entry struct {
	Group, Element uint16
	VR             string
	Title          string
}

// Table is a lookup table backed by entries sorted ascending by
// (Group, Element). Table is read-only once built and safe to share across
// concurrent lookups.
type Table struct {
	entries []Entry
}

// New builds a Table from entries, which must already be sorted ascending
// by (Group, Element); New does not sort them itself.
func New(entries []Entry) *Table {
	return &Table{entries: entries}
}

// Lookup returns the entry nearest (group, element) by the same recursive
// binary search the original program used for its own dictionary: on a
// miss it returns whatever entry the search bottomed out on, matching
// spec.md §9's documented anomaly. The second result reports whether that
// entry's Group/Element equal the ones asked for; callers must check it
// before trusting Title or VR.
func (t *Table) Lookup(group, element uint16) (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	idx := binSearch(t.entries, group, element, 0, len(t.entries)-1)
	e := t.entries[idx]
	return e, e.Group == group && e.Element == element
}

// binSearch is the original dictionary search verbatim in shape: a closed
// interval [min, max], recursing toward the match and returning min when
// the interval collapses — even when that final min is not an exact hit.
func binSearch(entries []Entry, group, element uint16, min, max int) int {
	if min >= max {
		return min
	}

	mid := (min + max) / 2
	switch {
	case entries[mid].Group > group:
		return binSearch(entries, group, element, min, mid-1)
	case entries[mid].Group < group:
		return binSearch(entries, group, element, mid+1, max)
	case entries[mid].Element > element:
		return binSearch(entries, group, element, min, mid-1)
	case entries[mid].Element < element:
		return binSearch(entries, group, element, mid+1, max)
	default:
		return mid
	}
}
