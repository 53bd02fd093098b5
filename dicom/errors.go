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

// Stable error codes returned by Parse, preserved from the program this
// decoder was distilled from.
const (
	codeOK = 0

	codePreambleShortRead = 101
	codeMagicShortRead    = 102
	codeMagicMismatch     = 103

	codeTagReadFailure        = 201
	codeStraySequenceDelim    = 202
	codeHeaderShortRead       = 204
	codeUndefinedSeqReadFail  = 208
	codeDefinedSeqReadFail    = 209
	codePayloadShortReadSmall = 301
	codePayloadShortReadLarge = 302
	codeCannotOpenInput       = 501
)

// ParseError is returned by Parse and ParseFile on any structural failure.
// Code is stable across releases; callers that depended on the bare integer
// codes documented by the original program can recover them from Code.
type ParseError struct {
	Code int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("dicom: parse error %d", e.Code)
	}
	return fmt.Sprintf("dicom: parse error %d: %v", e.Code, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(code int, format string, args ...interface{}) *ParseError {
	return &ParseError{Code: code, Err: fmt.Errorf(format, args...)}
}

// shortReadError is wrapped by ParseError at the call sites that know which
// stable code a short read corresponds to in context (header vs. payload
// vs. preamble all carry different codes for the same underlying condition).
type shortReadError struct {
	want, got int
}

func (e *shortReadError) Error() string {
	return fmt.Sprintf("short read: wanted %d bytes, got %d", e.want, e.got)
}
