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

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicomcore/parser/internal/dictentry"
)

type testDictionary struct {
	table *dictentry.Table
}

func (d testDictionary) Lookup(tag Tag) (DictionaryEntry, bool) {
	entry, ok := d.table.Lookup(tag.Group, tag.Element)
	if !ok {
		return DictionaryEntry{}, false
	}
	return DictionaryEntry{Tag: Tag{entry.Group, entry.Element}, VR: VR(entry.VR), Title: entry.Title}, ok
}

func newTestDictionary(entries ...dictentry.Entry) testDictionary {
	return testDictionary{table: dictentry.New(entries)}
}

func TestDecodeHeaderExplicitShortForm(t *testing.T) {
	// (0008,0005) CS length=10.
	bs := newByteSource(bytes.NewReader([]byte{'C', 'S', 0x0A, 0x00}))
	ctx := newDecodeContext(emptyDictionary{}, nil, true)

	vr, vl, err := decodeHeader(bs, ctx, Tag{0x0008, 0x0005})
	require.NoError(t, err)
	assert.EqualValues(t, "CS", vr)
	assert.EqualValues(t, 10, vl)
}

func TestDecodeHeaderExplicitExtendedForm(t *testing.T) {
	// OB VR: 2 reserved bytes then 4-byte length.
	bs := newByteSource(bytes.NewReader([]byte{'O', 'B', 0x00, 0x00, 0x64, 0x00, 0x00, 0x00}))
	ctx := newDecodeContext(emptyDictionary{}, nil, true)

	vr, vl, err := decodeHeader(bs, ctx, Tag{0x7FE0, 0x0010})
	require.NoError(t, err)
	assert.EqualValues(t, "OB", vr)
	assert.EqualValues(t, 0x64, vl)
}

func TestDecodeHeaderMetadataGroupIsAlwaysExplicit(t *testing.T) {
	bs := newByteSource(bytes.NewReader([]byte{'U', 'I', 0x04, 0x00}))
	ctx := newDecodeContext(emptyDictionary{}, nil, true)
	ctx.isImplicit = true // global state says implicit...

	vr, vl, err := decodeHeader(bs, ctx, Tag{0x0002, 0x0010}) // ...but group 0x0002 overrides it.
	require.NoError(t, err)
	assert.EqualValues(t, "UI", vr)
	assert.EqualValues(t, 4, vl)
}

func TestDecodeHeaderImplicitKnownTag(t *testing.T) {
	dict := newTestDictionary(dictentry.Entry{Group: 0x0010, Element: 0x0010, VR: "PN", Title: "Patient's Name"})
	bs := newByteSource(bytes.NewReader([]byte{0x06, 0x00, 0x00, 0x00}))
	ctx := newDecodeContext(dict, nil, true)
	ctx.isImplicit = true

	vr, vl, err := decodeHeader(bs, ctx, Tag{0x0010, 0x0010})
	require.NoError(t, err)
	assert.EqualValues(t, "PN", vr)
	assert.EqualValues(t, 6, vl)
}

func TestDecodeHeaderImplicitUnknownTagDefaultsToUN(t *testing.T) {
	bs := newByteSource(bytes.NewReader([]byte{0x02, 0x00, 0x00, 0x00}))
	ctx := newDecodeContext(emptyDictionary{}, nil, false) // loose custom tags disabled
	ctx.isImplicit = true

	vr, vl, err := decodeHeader(bs, ctx, Tag{0x0009, 0x0001})
	require.NoError(t, err)
	assert.Equal(t, UnknownVR, vr)
	assert.EqualValues(t, 2, vl)
}

func TestDecodeHeaderLooseOverrideExplicit(t *testing.T) {
	// Unknown tag, implicit syntax, loose custom tags on, but the lookahead
	// bytes happen to spell a valid VR code: treat as explicit.
	bs := newByteSource(bytes.NewReader([]byte{'L', 'O', 0x04, 0x00}))
	ctx := newDecodeContext(emptyDictionary{}, nil, true)
	ctx.isImplicit = true

	vr, vl, err := decodeHeader(bs, ctx, Tag{0x3F3F, 0x1000})
	require.NoError(t, err)
	assert.EqualValues(t, "LO", vr)
	assert.EqualValues(t, 4, vl)
}

func TestDecodeHeaderLooseImplicitUndefinedLengthSQ(t *testing.T) {
	// Unknown tag, implicit syntax, loose custom tags on, lookahead reads
	// as 0xFFFFFFFF: treat as an implicit sequence of undefined length.
	bs := newByteSource(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFE, 0xFF, 0xDD, 0xE0}))
	ctx := newDecodeContext(emptyDictionary{}, nil, true)
	ctx.isImplicit = true

	vr, vl, err := decodeHeader(bs, ctx, Tag{0x3F3F, 0x1001})
	require.NoError(t, err)
	assert.Equal(t, SequenceVR, vr)
	assert.Equal(t, UndefinedLength, vl)
}

func TestDecodeElementTransferSyntaxSwitch(t *testing.T) {
	// Boundary scenario 3: after seeing the implicit LE UID, a later
	// element is decoded in implicit mode with its VR resolved from the
	// dictionary.
	dict := newTestDictionary(dictentry.Entry{Group: 0x0010, Element: 0x0010, VR: "PN", Title: "Patient's Name"})
	ctx := newDecodeContext(dict, nil, true)

	uidBytes := []byte(ImplicitVRLittleEndianUID)
	ctx.applyTransferSyntaxUID(trimUID(uidBytes))
	assert.True(t, ctx.isImplicit)

	bs := newByteSource(bytes.NewReader(append([]byte{0x06, 0x00, 0x00, 0x00}, []byte("Doe^J\x00")...)))
	elem, err := decodeElement(bs, ctx, Tag{0x0010, 0x0010})
	require.NoError(t, err)
	assert.Equal(t, VR("PN"), elem.VR)
	value, ok := elem.ValueBytes()
	require.True(t, ok)
	assert.Equal(t, "Doe^J\x00", string(value))
}

func TestDecodeElementSetsTransferSyntaxState(t *testing.T) {
	ctx := newDecodeContext(emptyDictionary{}, nil, true)
	payload := append([]byte(ImplicitVRLittleEndianUID), 0x00) // pad to even length

	header := []byte{'U', 'I', byte(len(payload)), 0x00}
	bs := newByteSource(bytes.NewReader(append(header, payload...)))

	_, err := decodeElement(bs, ctx, TransferSyntaxUIDTag)
	require.NoError(t, err)
	assert.True(t, ctx.isImplicit)
	assert.False(t, ctx.isBigEndian)
}

func TestDecodeElementUnknownVendorTagAsUndefinedLengthSequence(t *testing.T) {
	// Boundary scenario 5: unknown tag under implicit LE with 0xFFFFFFFF
	// length decodes as a sequence, not a 4 GiB leaf read.
	ctx := newDecodeContext(emptyDictionary{}, nil, true)
	ctx.isImplicit = true

	// lookahead(FFFFFFFF) + one defined-length item ("AB") + sequence delimiter.
	var data []byte
	data = append(data, 0xFF, 0xFF, 0xFF, 0xFF)                   // header lookahead
	data = append(data, 0xFE, 0xFF, 0x00, 0xE0)                   // item tag (FFFE,E000)
	data = append(data, 0x02, 0x00, 0x00, 0x00)                   // item length 2
	data = append(data, 'A', 'B')                                 // item payload
	data = append(data, 0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00) // sequence delimiter

	bs := newByteSource(bytes.NewReader(data))
	elem, err := decodeElement(bs, ctx, Tag{0x3F3F, 0x1001})
	require.NoError(t, err)

	assert.True(t, elem.IsSequence())
	seq, ok := elem.Sequence()
	require.True(t, ok)
	require.Len(t, seq.Items, 1)
	assert.Equal(t, "AB", string(seq.Items[0].Bytes))
}

func TestDecodeElementNestedUndefinedLengthSequence(t *testing.T) {
	// Boundary scenario 4: an outer undefined-length item contains a
	// nested SQ element whose own item delimiter must not be mistaken for
	// the outer item's delimiter.
	ctx := newDecodeContext(emptyDictionary{}, nil, true)
	ctx.isImplicit = false

	// Nested item content: one explicit-VR defined-length item belonging
	// to the inner sequence. Its payload is the item delimiter's 4 bytes, so
	// the delimiter pattern appears inside the nested item as well as at the
	// true end of the outer item.
	innerItemPayload := []byte{0xFE, 0xFF, 0x0D, 0xE0}
	var innerItem []byte
	innerItem = append(innerItem, 0xFE, 0xFF, 0x00, 0xE0) // item tag
	innerItem = append(innerItem, byte(len(innerItemPayload)), 0x00, 0x00, 0x00)
	innerItem = append(innerItem, innerItemPayload...)

	// The nested SQ element: tag (0008,0008) SQ undefined length, then one
	// item, then the inner sequence delimiter.
	var nestedSQ []byte
	nestedSQ = append(nestedSQ, 0x08, 0x00, 0x08, 0x00)             // tag
	nestedSQ = append(nestedSQ, 'S', 'Q', 0x00, 0x00)               // VR + reserved
	nestedSQ = append(nestedSQ, 0xFF, 0xFF, 0xFF, 0xFF)             // undefined length
	nestedSQ = append(nestedSQ, innerItem...)
	nestedSQ = append(nestedSQ, 0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00) // inner seq delimiter

	// Outer item: the nested SQ bytes above, then the outer item delimiter.
	var outer []byte
	outer = append(outer, 0xFE, 0xFF, 0x00, 0xE0) // outer item tag
	outer = append(outer, 0xFF, 0xFF, 0xFF, 0xFF) // outer item undefined length
	outer = append(outer, nestedSQ...)
	outer = append(outer, 0xFE, 0xFF, 0x0D, 0xE0, 0x00, 0x00, 0x00, 0x00) // outer item delimiter
	outer = append(outer, 0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00) // outer seq delimiter

	bs := newByteSource(bytes.NewReader(outer))
	seq, err := readSequence(bs, ctx, UndefinedLength)
	require.NoError(t, err)
	require.Len(t, seq.Items, 1)

	nestedStore, err := seq.DecodeItem(seq.Items[0])
	require.NoError(t, err)
	require.Equal(t, 1, nestedStore.Len())

	nestedElem, ok := nestedStore.Lookup(Tag{0x0008, 0x0008})
	require.True(t, ok)
	require.True(t, nestedElem.IsSequence())
	innerSeq, ok := nestedElem.Sequence()
	require.True(t, ok)
	require.Len(t, innerSeq.Items, 1)
	assert.Equal(t, innerItemPayload, innerSeq.Items[0].Bytes)
}

func TestDecodeElementSliceLocationParsed(t *testing.T) {
	ctx := newDecodeContext(emptyDictionary{}, nil, true)
	bs := newByteSource(bytes.NewReader([]byte{'D', 'S', 0x06, 0x00, '-', '1', '2', '.', '5', ' '}))

	elem, err := decodeElement(bs, ctx, SliceLocationTag)
	require.NoError(t, err)

	got, ok := parseSliceLocation(elem)
	require.True(t, ok)
	assert.InDelta(t, -12.5, got, 1e-9)
}

func TestDecodeElementUndefinedLengthLeafIsRejected(t *testing.T) {
	ctx := newDecodeContext(emptyDictionary{}, nil, true)
	bs := newByteSource(bytes.NewReader([]byte{'O', 'B', 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}))

	_, err := decodeElement(bs, ctx, Tag{0x7FE0, 0x0010})
	assert.Error(t, err)
}

func TestStraySequenceDelimiterAbortsAtTopLevel(t *testing.T) {
	bs := newByteSource(bytes.NewReader([]byte{0xFE, 0xFF, 0xDD, 0xE0}))
	ctx := newDecodeContext(emptyDictionary{}, nil, true)

	_, err := decodeLoop(bs, ctx, true)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, codeStraySequenceDelim, parseErr.Code)
}
