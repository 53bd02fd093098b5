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
	"encoding/binary"
	"strconv"
	"strings"
)

// decodeLoop is the ElementDecoder's top-level loop, shared by the
// top-level file parse and by recursive item-element re-parsing. When
// checkStrayDelimiters is true, a delimiter tag encountered where an
// ordinary element is expected aborts with codeStraySequenceDelim; item
// re-parsing passes false because item bytes have already been trimmed of
// their own terminating delimiter and contain no stray ones.
func decodeLoop(bs *ByteSource, ctx *decodeContext, checkStrayDelimiters bool) (*ElementStore, error) {
	store := newElementStore()

	for !bs.AtEnd() {
		tag, err := bs.Tag()
		if err != nil {
			return store, parseErrorf(codeTagReadFailure, "read tag: %w", err)
		}
		if checkStrayDelimiters && isSequenceDelimiter(tag) {
			return store, parseErrorf(codeStraySequenceDelim, "stray delimiter %s at top level", tag)
		}

		elem, err := decodeElement(bs, ctx, tag)
		if err != nil {
			return store, err
		}

		if elem.Tag == SliceLocationTag {
			if f, ok := parseSliceLocation(elem); ok {
				store.sliceLocation = f
				store.hasSliceLocation = true
			}
		}
		store.insert(elem)
	}
	return store, nil
}

// decodeElement decodes the header and payload of one element whose tag has
// already been read.
func decodeElement(bs *ByteSource, ctx *decodeContext, tag Tag) (*Element, error) {
	vr, vl, err := decodeHeader(bs, ctx, tag)
	if err != nil {
		return nil, err
	}

	elem := &Element{
		Tag:         tag,
		Description: dictionaryTitle(ctx.dict, tag),
		VR:          vr,
		VL:          vl,
	}

	if vr == SequenceVR {
		seq, err := readSequence(bs, ctx, vl)
		if err != nil {
			return nil, err
		}
		elem.Payload = seq
		return elem, nil
	}

	if vl == UndefinedLength {
		// Undefined length is only meaningful for SQ; a leaf VR with an
		// undefined length describes pixel-data-style encapsulated encoding,
		// which this decoder does not support.
		return nil, parseErrorf(codePayloadShortReadLarge, "undefined length leaf element %s (VR=%s) is unsupported", tag, vr)
	}

	payload, err := bs.ReadExact(vl)
	if err != nil {
		code := codePayloadShortReadSmall
		if vl > maxReadChunk {
			code = codePayloadShortReadLarge
		}
		return nil, parseErrorf(code, "payload for %s: %w", tag, err)
	}
	elem.Payload = LeafValue(payload)

	if tag == TransferSyntaxUIDTag {
		ctx.applyTransferSyntaxUID(trimUID(payload))
		bs.SetByteOrder(ctx.byteOrder())
	}

	return elem, nil
}

// decodeHeader resolves the VR and value length for tag, choosing among the
// four element header layouts: explicit VR, implicit VR, and (under loose
// custom-tag handling) the two speculative forms an unrecognized implicit
// tag may take. See http://dicom.nema.org/medical/dicom/current/output/chtml/part05/sect_7.1.1.html.
func decodeHeader(bs *ByteSource, ctx *decodeContext, tag Tag) (VR, uint32, error) {
	entry, known := ctx.dict.Lookup(tag)

	if !ctx.isImplicit || tag.IsMetadataElement() {
		return decodeExplicitHeader(bs)
	}

	if !known && ctx.looseCustomTags {
		lookahead, err := bs.ReadExact(4)
		if err != nil {
			return "", 0, parseErrorf(codeHeaderShortRead, "header lookahead for %s: %w", tag, err)
		}

		if candidate := string(lookahead[0:2]); IsValidVR(candidate) {
			return decodeExplicitHeaderBody(bs, VR(candidate), lookahead)
		}
		if binary.LittleEndian.Uint32(lookahead) == UndefinedLength {
			return SequenceVR, UndefinedLength, nil
		}

		// Neither speculative read matched: this is an ordinary implicit
		// element and lookahead already holds its 4-byte length field.
		return implicitVR(known, entry), binary.LittleEndian.Uint32(lookahead), nil
	}

	length, err := bs.UInt32(binary.LittleEndian)
	if err != nil {
		return "", 0, parseErrorf(codeHeaderShortRead, "implicit length for %s: %w", tag, err)
	}
	return implicitVR(known, entry), length, nil
}

func implicitVR(known bool, entry DictionaryEntry) VR {
	if known {
		return entry.VR
	}
	return UnknownVR
}

// decodeExplicitHeader reads a fresh 4-byte lookahead buffer and decodes it
// as an explicit-VR header.
func decodeExplicitHeader(bs *ByteSource) (VR, uint32, error) {
	b, err := bs.ReadExact(4)
	if err != nil {
		return "", 0, parseErrorf(codeHeaderShortRead, "explicit header: %w", err)
	}
	return decodeExplicitHeaderBody(bs, VR(b[0:2]), b)
}

// decodeExplicitHeaderBody finishes decoding an explicit-VR header whose
// first 4 bytes (the VR code plus 2 more bytes) have already been read into
// b. If vr uses the extended length encoding, b[2:4] is reserved and 4 more
// bytes are read as the length; otherwise b[2:4] is the 2-byte length.
func decodeExplicitHeaderBody(bs *ByteSource, vr VR, b []byte) (VR, uint32, error) {
	if usesExtendedLength(vr) {
		lb, err := bs.ReadExact(4)
		if err != nil {
			return "", 0, parseErrorf(codeHeaderShortRead, "extended length for VR %s: %w", vr, err)
		}
		return vr, binary.LittleEndian.Uint32(lb), nil
	}
	return vr, uint32(binary.LittleEndian.Uint16(b[2:4])), nil
}

// trimUID strips the trailing NUL padding and whitespace DICOM UID values
// are conventionally padded with to reach an even byte count.
func trimUID(b []byte) string {
	return strings.TrimRight(string(b), "\x00 \t\r\n")
}

// parseSliceLocation decodes elem's payload as the ASCII decimal float
// value of the Slice Location element.
func parseSliceLocation(elem *Element) (float64, bool) {
	raw, ok := elem.ValueBytes()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
