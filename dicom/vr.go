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

// VR models a DICOM Value Representation: a two-ASCII-character code.
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
type VR string

// UnknownVR is assigned to elements whose tag has no dictionary entry under
// implicit VR encoding.
const UnknownVR VR = "UN"

// SequenceVR is the Value Representation denoting a nested sequence.
const SequenceVR VR = "SQ"

// UndefinedLength is the sentinel 32-bit value length meaning "terminated
// by delimiter, not a byte count."
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
const UndefinedLength uint32 = 0xFFFFFFFF

// validVRs is the fixed finite set of two-character VR codes this decoder
// recognizes as valid under explicit VR encoding.
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
var validVRs = map[VR]bool{
	"AE": true, "AS": true, "AT": true, "CS": true, "DA": true,
	"DS": true, "DT": true, "FL": true, "FD": true, "IS": true,
	"LO": true, "LT": true, "OB": true, "OD": true, "OF": true,
	"OL": true, "OW": true, "PN": true, "SH": true, "SL": true,
	"SQ": true, "SS": true, "ST": true, "TM": true, "UC": true,
	"UI": true, "UL": true, "UN": true, "UR": true, "US": true,
	"UT": true,
}

// extendedLengthVRs is the subset of VRs that, under explicit VR encoding,
// carry 2 reserved bytes followed by a 4-byte value length instead of a
// plain 2-byte value length: {OB, OW, OF, SQ, UT, UN}.
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
var extendedLengthVRs = map[VR]bool{
	"OB": true, "OW": true, "OF": true, "SQ": true, "UT": true, "UN": true,
}

// IsValidVR reports whether code is one of the two-character VR codes this
// decoder recognizes.
func IsValidVR(code string) bool {
	return validVRs[VR(code)]
}

// usesExtendedLength reports whether vr uses the 4-byte explicit-VR length
// field (with 2 reserved bytes) rather than the 2-byte length field.
func usesExtendedLength(vr VR) bool {
	return extendedLengthVRs[vr]
}
