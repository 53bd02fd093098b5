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
	"log"
)

// Transfer syntax UIDs this decoder recognizes.
// http://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_A
const (
	// ExplicitVRLittleEndianUID is the Explicit VR Little Endian UID.
	ExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1"
	// ExplicitVRBigEndianUID is the Explicit VR Big Endian UID.
	ExplicitVRBigEndianUID = "1.2.840.10008.1.2.2"
	// ImplicitVRLittleEndianUID is the Implicit VR Little Endian UID.
	ImplicitVRLittleEndianUID = "1.2.840.10008.1.2"
)

// decodeContext is the parser's mutable state, threaded explicitly through
// every header-decode call instead of living as package-level or global
// state, so that concurrent Parse calls never share mutable transfer-syntax
// state.
type decodeContext struct {
	dict            Dictionary
	logger          *log.Logger
	looseCustomTags bool

	isImplicit  bool
	isBigEndian bool
}

// newDecodeContext returns a decodeContext in the default state: explicit
// VR little endian, the conventional preamble syntax.
func newDecodeContext(dict Dictionary, logger *log.Logger, looseCustomTags bool) *decodeContext {
	return &decodeContext{dict: dict, logger: logger, looseCustomTags: looseCustomTags}
}

// byteOrder returns the binary.ByteOrder implied by the current
// transfer-syntax state.
func (dc *decodeContext) byteOrder() binary.ByteOrder {
	if dc.isBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// applyTransferSyntaxUID updates isImplicit/isBigEndian to match uid. Called
// exactly once, when element (0002,0010) is decoded; never reverts
// afterward. Unknown UIDs default to explicit VR little endian and log a
// warning rather than aborting the parse.
func (dc *decodeContext) applyTransferSyntaxUID(uid string) {
	switch uid {
	case ExplicitVRLittleEndianUID:
		dc.isImplicit, dc.isBigEndian = false, false
	case ExplicitVRBigEndianUID:
		dc.isImplicit, dc.isBigEndian = false, true
	case ImplicitVRLittleEndianUID:
		dc.isImplicit, dc.isBigEndian = true, false
	default:
		dc.logf("unknown transfer syntax %q, assuming explicit VR little endian", uid)
		dc.isImplicit, dc.isBigEndian = false, false
	}
}

func (dc *decodeContext) logf(format string, args ...interface{}) {
	if dc.logger != nil {
		dc.logger.Printf(format, args...)
	}
}
