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

// Payload is the mutually-exclusive leaf-or-sequence content of an Element.
// It is implemented exactly by LeafValue and *Sequence, giving the "exactly
// one of value bytes or sequence" invariant type-level enforcement instead
// of relying on a runtime nil check of two separate fields.
type Payload interface {
	isPayload()
}

// LeafValue is the raw, uninterpreted byte payload of a non-sequence
// Element. This decoder never interprets VR-typed payload semantics beyond
// two side effects (Transfer Syntax UID, Slice Location); everything else
// stays exactly as it appeared on the wire.
type LeafValue []byte

func (LeafValue) isPayload() {}

// SequenceItem is a leaf within a Sequence: a value length plus raw bytes.
// Items of undefined length are materialized with their accumulated byte
// content after the item delimiter has been stripped.
type SequenceItem struct {
	VL    uint32
	Bytes []byte
}

// Sequence is the ordered collection of SequenceItems decoded for an SQ
// Element, in wire order. It retains the transfer-syntax flags in effect
// when it was decoded so that its items' raw bytes can later be re-decoded
// as nested elements via ParseItemElements.
type Sequence struct {
	Items []*SequenceItem

	isImplicit  bool
	isBigEndian bool
}

func (*Sequence) isPayload() {}

// DecodeItem re-decodes item's raw bytes as a nested ordered list of
// DICOM elements, using the transfer-syntax state in effect when seq was
// decoded. This is the recursive structure callers ask for explicitly; the
// top-level decode never does it automatically, since a Sequence's items
// are themselves only materialized as raw byte runs.
func (seq *Sequence) DecodeItem(item *SequenceItem, opts ...ParserOption) (*ElementStore, error) {
	return ParseItemElements(item.Bytes, seq.isImplicit, seq.isBigEndian, opts...)
}

// Element is the record for one decoded Data Element.
type Element struct {
	Tag         Tag
	Description string
	VR          VR

	// VL is the 32-bit value length, or UndefinedLength.
	VL uint32

	Payload Payload
}

// IsSequence reports whether e is a sequence node rather than a leaf.
func (e *Element) IsSequence() bool {
	_, ok := e.Payload.(*Sequence)
	return ok
}

// ValueBytes returns e's raw payload and true if e is a leaf element, or
// nil and false if e is a sequence node.
func (e *Element) ValueBytes() ([]byte, bool) {
	leaf, ok := e.Payload.(LeafValue)
	if !ok {
		return nil, false
	}
	return []byte(leaf), true
}

// Sequence returns e's decoded Sequence and true if e is a sequence node,
// or nil and false if e is a leaf element.
func (e *Element) Sequence() (*Sequence, bool) {
	seq, ok := e.Payload.(*Sequence)
	return seq, ok
}
