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
	"encoding/binary"
)

// Wire-level byte patterns the byte-accumulation sub-loop in
// accumulateUndefinedLengthItem scans for. Each is 4 bytes: a little-endian
// Tag encoding, or (for explicitSQOpenBytes) a VR code plus its 2 reserved
// bytes under explicit VR encoding, or (for allFF) the undefined-length
// marker.
var (
	itemDelimiterBytes     = []byte{0xFE, 0xFF, 0x0D, 0xE0} // (FFFE,E00D)
	sequenceDelimiterBytes = []byte{0xFE, 0xFF, 0xDD, 0xE0} // (FFFE,E0DD)
	explicitSQOpenBytes    = []byte{'S', 'Q', 0x00, 0x00}
	allFF                  = []byte{0xFF, 0xFF, 0xFF, 0xFF}
)

// readSequence is the SequenceReader entry point: it dispatches on vl to
// the undefined-length delimiter-terminated mode or the defined-length
// budget-bounded mode.
func readSequence(bs *ByteSource, ctx *decodeContext, vl uint32) (*Sequence, error) {
	seq := &Sequence{isImplicit: ctx.isImplicit, isBigEndian: ctx.isBigEndian}

	if vl == UndefinedLength {
		if err := readItemsUntilSequenceDelimiter(bs, ctx, seq); err != nil {
			return nil, err
		}
		return seq, nil
	}
	if err := readItemsWithinBudget(bs, ctx, seq, int64(vl)); err != nil {
		return nil, err
	}
	return seq, nil
}

// readItemsUntilSequenceDelimiter implements the undefined-length mode: loop
// reading (tag, length) pairs until the sequence delimiter is found.
func readItemsUntilSequenceDelimiter(bs *ByteSource, ctx *decodeContext, seq *Sequence) error {
	for {
		tag, err := bs.Tag()
		if err != nil {
			return parseErrorf(codeUndefinedSeqReadFail, "sequence item tag: %w", err)
		}
		if tag == SequenceDelimitationTag {
			if err := bs.Skip(4); err != nil {
				return parseErrorf(codeUndefinedSeqReadFail, "sequence delimiter reserved bytes: %w", err)
			}
			return nil
		}
		if tag != ItemTag {
			return parseErrorf(codeUndefinedSeqReadFail, "expected item tag, got %s", tag)
		}
		item, err := readOneItem(bs, ctx)
		if err != nil {
			return err
		}
		seq.Items = append(seq.Items, item)
	}
}

// readItemsWithinBudget implements the defined-length mode: the same item
// loop, bounded by a decreasing byte budget rather than a delimiter.
func readItemsWithinBudget(bs *ByteSource, ctx *decodeContext, seq *Sequence, budget int64) error {
	for budget > 0 {
		before := bs.BytesRead()

		tag, err := bs.Tag()
		if err != nil {
			return parseErrorf(codeDefinedSeqReadFail, "sequence item tag: %w", err)
		}
		if tag != ItemTag {
			return parseErrorf(codeDefinedSeqReadFail, "expected item tag, got %s", tag)
		}
		item, err := readOneItem(bs, ctx)
		if err != nil {
			return err
		}
		seq.Items = append(seq.Items, item)

		budget -= bs.BytesRead() - before
	}
	return nil
}

// readOneItem reads a single item's 4-byte length field (the item tag has
// already been consumed by the caller) and its body, in either length mode.
func readOneItem(bs *ByteSource, ctx *decodeContext) (*SequenceItem, error) {
	vl, err := bs.UInt32(binary.LittleEndian)
	if err != nil {
		return nil, parseErrorf(codeUndefinedSeqReadFail, "item length: %w", err)
	}

	if vl != UndefinedLength {
		data, err := bs.ReadExact(vl)
		if err != nil {
			return nil, parseErrorf(codeDefinedSeqReadFail, "item payload: %w", err)
		}
		return &SequenceItem{VL: vl, Bytes: data}, nil
	}

	data, err := accumulateUndefinedLengthItem(bs, ctx)
	if err != nil {
		return nil, err
	}
	return &SequenceItem{VL: vl, Bytes: data}, nil
}

// accumulateUndefinedLengthItem is the byte-accumulation sub-loop for an
// undefined-length item: a single-byte-at-a-time scan, growing buf one byte
// at a time and testing its trailing window for the markers that matter.
// depth counts
// sub-sequences opened (and not yet closed) within this item's own body, so
// that an inner sequence's or inner item's delimiter never prematurely
// terminates the outer item.
func accumulateUndefinedLengthItem(bs *ByteSource, ctx *decodeContext) ([]byte, error) {
	buf := make([]byte, 0, 64)
	depth := 0

	for {
		b, err := bs.ReadByte()
		if err != nil {
			return nil, parseErrorf(codeUndefinedSeqReadFail, "item byte accumulation: %w", err)
		}
		buf = append(buf, b)

		if len(buf) < 4 {
			continue
		}
		last4 := buf[len(buf)-4:]

		if len(buf) >= 8 && bytes.Equal(last4, allFF) {
			preceding := buf[len(buf)-8 : len(buf)-4]
			if opensSubSequence(ctx, preceding) {
				depth++
			}
		}

		if bytes.Equal(last4, itemDelimiterBytes) {
			if depth == 0 {
				if err := bs.Skip(4); err != nil {
					return nil, parseErrorf(codeUndefinedSeqReadFail, "item delimiter reserved bytes: %w", err)
				}
				return buf[:len(buf)-4], nil
			}
			continue
		}

		if bytes.Equal(last4, sequenceDelimiterBytes) {
			depth--
		}
	}
}

// opensSubSequence reports whether the 4 bytes immediately preceding a
// freshly-seen 0xFFFFFFFF marker identify the start of a nested
// undefined-length sequence, under either explicit or implicit VR encoding.
func opensSubSequence(ctx *decodeContext, preceding []byte) bool {
	if !ctx.isImplicit {
		return bytes.Equal(preceding, explicitSQOpenBytes)
	}

	tag := Tag{
		Group:   binary.LittleEndian.Uint16(preceding[0:2]),
		Element: binary.LittleEndian.Uint16(preceding[2:4]),
	}
	if entry, ok := ctx.dict.Lookup(tag); ok {
		return entry.VR == SequenceVR
	}
	return ctx.looseCustomTags
}
