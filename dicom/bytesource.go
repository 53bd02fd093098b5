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
	"bufio"
	"encoding/binary"
	"io"
)

// maxReadChunk bounds a single underlying Read call inside ReadExact. Value
// fields in practice are far smaller than this, but a large OB/OW/UN payload
// is still read to completion across as many chunks as needed; no remainder
// is ever silently dropped.
const maxReadChunk = 1 << 20

// ByteSource is a sequential byte reader over a DICOM byte stream. It tracks
// how many bytes have been consumed and records the byte order the active
// transfer syntax implies for payload numerics. Tags and length fields are
// always read little endian; ByteOrder does not affect them.
type ByteSource struct {
	r     *bufio.Reader
	order binary.ByteOrder
	read  int64
}

// newByteSource wraps r for sequential decoding, defaulting to little
// endian (explicit VR little endian is the conventional preamble syntax).
func newByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: bufio.NewReader(r), order: binary.LittleEndian}
}

// ByteOrder returns the byte order currently in effect.
func (bs *ByteSource) ByteOrder() binary.ByteOrder {
	return bs.order
}

// SetByteOrder updates the byte order in effect. The decoder calls it each
// time a Transfer Syntax UID element is decoded, and ParseItemElements calls
// it for big endian item bytes.
func (bs *ByteSource) SetByteOrder(order binary.ByteOrder) {
	bs.order = order
}

// BytesRead returns the total number of bytes consumed so far.
func (bs *ByteSource) BytesRead() int64 {
	return bs.read
}

// AtEnd reports whether the stream has no more bytes to read.
func (bs *ByteSource) AtEnd() bool {
	_, err := bs.r.Peek(1)
	return err != nil
}

// ReadExact reads exactly n bytes, returning a shortReadError if the stream
// ends first. Reads larger than maxReadChunk are split across multiple
// underlying Read calls; the final chunk is always the exact remainder.
func (bs *ByteSource) ReadExact(n uint32) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}

	total := 0
	for total < len(buf) {
		end := total + maxReadChunk
		if end > len(buf) {
			end = len(buf)
		}
		got, err := io.ReadFull(bs.r, buf[total:end])
		total += got
		bs.read += int64(got)
		if err != nil {
			return nil, &shortReadError{want: len(buf), got: total}
		}
	}
	return buf, nil
}

// ReadByte reads a single byte, used by the sequence byte-accumulation
// sub-loop to scan for delimiter markers one byte at a time.
func (bs *ByteSource) ReadByte() (byte, error) {
	b, err := bs.r.ReadByte()
	if err != nil {
		return 0, &shortReadError{want: 1, got: 0}
	}
	bs.read++
	return b, nil
}

// Skip discards the next n bytes.
func (bs *ByteSource) Skip(n int64) error {
	got, err := io.CopyN(io.Discard, bs.r, n)
	bs.read += got
	if err != nil {
		return &shortReadError{want: int(n), got: int(got)}
	}
	return nil
}

// UInt16 reads a 2-byte unsigned integer in the given byte order.
func (bs *ByteSource) UInt16(order binary.ByteOrder) (uint16, error) {
	b, err := bs.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

// UInt32 reads a 4-byte unsigned integer in the given byte order.
func (bs *ByteSource) UInt32(order binary.ByteOrder) (uint32, error) {
	b, err := bs.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// Tag reads a 4-byte Tag: group then element, each little endian regardless
// of the active transfer syntax (tag framing is never byte-swapped).
func (bs *ByteSource) Tag() (Tag, error) {
	group, err := bs.UInt16(binary.LittleEndian)
	if err != nil {
		return Tag{}, err
	}
	element, err := bs.UInt16(binary.LittleEndian)
	if err != nil {
		return Tag{}, err
	}
	return Tag{group, element}, nil
}
