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
	"io"
	"os"
)

const (
	preambleSize = 128
	magic        = "DICM"
)

// Parse reads a DICOM byte stream from r: the 128-byte preamble (discarded),
// the "DICM" magic, then the element-decoding loop. The loop runs until r
// is exhausted. On any structural failure the returned error is a
// *ParseError carrying one of the package's stable numeric codes; the
// ElementStore returned alongside it (non-nil even on error) holds whatever
// elements were successfully decoded before the failure.
func Parse(r io.Reader, opts ...ParserOption) (*ElementStore, error) {
	bs := newByteSource(r)

	if _, err := bs.ReadExact(preambleSize); err != nil {
		return newElementStore(), parseErrorf(codePreambleShortRead, "preamble: %w", err)
	}

	magicBytes, err := bs.ReadExact(4)
	if err != nil {
		return newElementStore(), parseErrorf(codeMagicShortRead, "magic: %w", err)
	}
	if string(magicBytes) != magic {
		return newElementStore(), parseErrorf(codeMagicMismatch, "magic mismatch: got %q, want %q", magicBytes, magic)
	}

	cfg := newParserConfig(opts)
	ctx := newDecodeContext(cfg.dict, cfg.logger, cfg.looseCustomTags)
	return decodeLoop(bs, ctx, true)
}

// ParseFile opens path and parses it as a DICOM file. It returns
// codeCannotOpenInput if the file cannot be opened.
func ParseFile(path string, opts ...ParserOption) (*ElementStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return newElementStore(), parseErrorf(codeCannotOpenInput, "open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f, opts...)
}

// ParseItemElements re-decodes a SequenceItem's raw bytes as an ordered list
// of nested DICOM elements. isImplicit and isBigEndian carry forward the
// transfer-syntax state in effect when the enclosing Sequence was decoded;
// callers normally obtain both values, and data, from a Sequence and
// SequenceItem rather than supplying them directly.
//
// An element's undefined-length sentinel is mapped to 0 in the elements
// this function returns; the original sentinel is not kept anywhere, but
// the element's decoded Sequence payload, if it has one, is unaffected.
func ParseItemElements(data []byte, isImplicit, isBigEndian bool, opts ...ParserOption) (*ElementStore, error) {
	bs := newByteSource(bytes.NewReader(data))
	if isBigEndian {
		bs.SetByteOrder(binary.BigEndian)
	}

	cfg := newParserConfig(opts)
	ctx := newDecodeContext(cfg.dict, cfg.logger, cfg.looseCustomTags)
	ctx.isImplicit = isImplicit
	ctx.isBigEndian = isBigEndian

	store, err := decodeLoop(bs, ctx, false)
	if err != nil {
		return store, err
	}

	for _, e := range store.elements {
		if e.VL == UndefinedLength {
			e.VL = 0
		}
	}
	return store, nil
}
