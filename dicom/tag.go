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

import "fmt"

// Tag is the composite primary key identifying a Data Element: an ordered
// pair of 16-bit numbers called the group number and the element number, as
// specified in http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10.
type Tag struct {
	Group   uint16
	Element uint16
}

// String renders a Tag as "(gggg,eeee)" in the conventional DICOM notation.
func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group, t.Element)
}

// Less reports whether t sorts before other under the (group, element)
// composite ordering required of an ElementStore.
func (t Tag) Less(other Tag) bool {
	if t.Group != other.Group {
		return t.Group < other.Group
	}
	return t.Element < other.Element
}

// IsMetadataElement is true if and only if the tag belongs to the File Meta
// Information group, which is always framed as explicit VR little endian
// regardless of the active transfer syntax.
func (t Tag) IsMetadataElement() bool {
	return t.Group == 0x0002
}

// Well-known tags referenced directly by the decoder.
var (
	// ItemTag marks the start of a sequence item: (FFFE,E000).
	ItemTag = Tag{0xFFFE, 0xE000}

	// ItemDelimitationTag ends an undefined-length sequence item: (FFFE,E00D).
	ItemDelimitationTag = Tag{0xFFFE, 0xE00D}

	// SequenceDelimitationTag ends an undefined-length sequence: (FFFE,E0DD).
	SequenceDelimitationTag = Tag{0xFFFE, 0xE0DD}

	// TransferSyntaxUIDTag is (0002,0010), whose value retroactively sets the
	// parser's transfer-syntax state.
	TransferSyntaxUIDTag = Tag{0x0002, 0x0010}

	// SliceLocationTag is (0020,1041), whose ASCII decimal payload is exposed
	// as a float64 for external slice-stack sorting.
	SliceLocationTag = Tag{0x0020, 0x1041}
)

// isSequenceDelimiter reports whether t is one of the two delimiter tags
// that must never appear as an ordinary top-level data element.
func isSequenceDelimiter(t Tag) bool {
	return t == SequenceDelimitationTag || t == ItemDelimitationTag
}
