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

// DictionaryEntry is the record a Dictionary returns for a known tag: its
// canonical Value Representation and human-readable title.
type DictionaryEntry struct {
	Tag   Tag
	VR    VR
	Title string
}

// Dictionary is the external collaborator this decoder consumes to resolve
// tag descriptions and implicit-VR values. A precomputed, sorted table of
// {tag, vr, title} triples queried by binary search is the expected shape
// (see internal/dictentry for a minimal reference implementation used by
// this package's own tests); building or maintaining that table is outside
// this package's scope.
type Dictionary interface {
	// Lookup returns the entry whose Tag exactly equals tag, and true. If no
	// such entry exists, Lookup returns the zero DictionaryEntry and false.
	Lookup(tag Tag) (DictionaryEntry, bool)
}

// emptyDictionary is the Dictionary used when no Dictionary option is
// supplied: every lookup misses, so every tag is treated as "Unknown Tag"
// and implicit-VR tags default to UN.
type emptyDictionary struct{}

func (emptyDictionary) Lookup(Tag) (DictionaryEntry, bool) {
	return DictionaryEntry{}, false
}

// unknownTagTitle is the description assigned to any tag the Dictionary
// does not recognize.
const unknownTagTitle = "Unknown Tag"

// dictionaryTitle resolves the human-readable description for tag: the
// dictionary's title on a hit, else "Unknown Tag".
func dictionaryTitle(dict Dictionary, tag Tag) string {
	if entry, ok := dict.Lookup(tag); ok {
		return entry.Title
	}
	return unknownTagTitle
}
