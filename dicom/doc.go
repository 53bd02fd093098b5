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

// Package dicom decodes the core of the DICOM file format: the 128-byte
// preamble, the "DICM" magic, and the stream of data elements that follows,
// including sequences nested to arbitrary depth with either defined or
// undefined length.
//
// The package autodetects the transfer syntax declared by the Transfer
// Syntax UID element (0002,0010) and uses it to frame every subsequent
// element. Unknown tags are tolerated and recorded with the description
// "Unknown Tag". Value fields are kept as raw bytes; this package does not
// interpret VR-typed payloads beyond two side effects required to support
// external slice-sorting: the Transfer Syntax UID and the Slice Location
// (0020,1041) element.
//
// Dictionary lookups, pixel data interpretation, and DICOM writing are
// outside this package's scope. Callers supply a Dictionary implementation;
// see the Dictionary interface in dictionary.go.
package dicom
