/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package json

import (
	"math/bits"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// minCapacity mirrors the CAPACITY_MIN constant from the original dynbuffer
// implementation this type is ported from.
const minCapacity = 256

// Buffer is an append-only, growable byte buffer with a reserved header
// prefix and random-access writes, used by BinaryWriter to backpatch
// compound-value lengths without a second pass over the source.
//
// Growth allocates the new capacity uninitialized via dirtmake and copies
// the existing bytes into it immediately. On top of plain appending it
// has a headerReserve region that sits before logical position 0 (reached
// only through HeaderBytes), and WriteAt/Skip for patching bytes already
// written.
type Buffer struct {
	buf           []byte // buf[headerReserve:] is the logical, addressable region
	pos           int    // write position, relative to buf[headerReserve:]
	headerReserve int
}

// NewBuffer returns a Buffer with headerReserve bytes of prefix space
// reserved before logical position 0, so a caller downstream (e.g. a
// length-framed transport) can prepend a header without copying the body.
func NewBuffer(headerReserve int) *Buffer {
	b := &Buffer{headerReserve: headerReserve}
	if headerReserve > 0 {
		b.buf = dirtmake.Bytes(headerReserve, headerReserve+minCapacity)
	}
	return b
}

// Len returns the number of logical bytes written (excluding the header
// reserve).
func (b *Buffer) Len() int { return b.pos }

// Ensure grows the buffer, if necessary, so that total bytes (header
// reserve plus total logical bytes) is at least total.
func (b *Buffer) Ensure(total int) {
	need := b.headerReserve + total
	if need <= len(b.buf) {
		return
	}
	ncap := 1 << bits.Len(uint(need-1))
	if ncap < b.headerReserve+minCapacity {
		ncap = b.headerReserve + minCapacity
	}
	nbuf := dirtmake.Bytes(ncap, ncap)
	copy(nbuf, b.buf[:b.headerReserve+b.pos])
	b.buf = nbuf
}

// EnsureDelta grows the buffer so that n more bytes can be written at the
// current position without reallocating.
func (b *Buffer) EnsureDelta(n int) {
	b.Ensure(b.pos + n)
}

// Append appends bytes to the buffer, growing as necessary.
func (b *Buffer) Append(p []byte) {
	b.EnsureDelta(len(p))
	copy(b.buf[b.headerReserve+b.pos:], p)
	b.pos += len(p)
}

// AppendByte appends a single byte to the buffer, growing as necessary.
func (b *Buffer) AppendByte(c byte) {
	b.EnsureDelta(1)
	b.buf[b.headerReserve+b.pos] = c
	b.pos += 1
}

// AppendString appends the bytes of s without allocating an intermediate
// []byte copy.
func (b *Buffer) AppendString(s string) {
	b.EnsureDelta(len(s))
	copy(b.buf[b.headerReserve+b.pos:], s)
	b.pos += len(s)
}

// Skip reserves n bytes at the current position, returning the position
// they start at (relative to the logical region) so a caller can WriteAt
// them in later, e.g. to backpatch a length field.
func (b *Buffer) Skip(n int) int {
	b.EnsureDelta(n)
	old := b.pos
	b.pos += n
	return old
}

// WriteAt overwrites bytes starting at logical position pos. pos+len(p)
// must not exceed the current logical length.
func (b *Buffer) WriteAt(pos int, p []byte) {
	copy(b.buf[b.headerReserve+pos:], p)
}

// Truncate resets the logical length back to pos, discarding any bytes
// written after it without shrinking the backing array.
func (b *Buffer) Truncate(pos int) {
	b.pos = pos
}

// CopyWithin copies n bytes from srcPos to dstPos within the logical
// region, as a memmove (the source and destination ranges may overlap).
// Used by BinaryWriter's backpatch to slide a compound value's payload
// left or right once the real length-byte count is known.
func (b *Buffer) CopyWithin(dstPos, srcPos, n int) {
	hr := b.headerReserve
	copy(b.buf[hr+dstPos:hr+dstPos+n], b.buf[hr+srcPos:hr+srcPos+n])
}

// Clear resets the buffer to empty, retaining its backing array.
func (b *Buffer) Clear() {
	b.pos = 0
}

// Bytes returns the logical contents of the buffer (excluding the header
// reserve). The returned slice is valid only until the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.headerReserve : b.headerReserve+b.pos]
}

// HeaderBytes returns the reserved header-prefix region for the caller to
// fill in, plus the logical body immediately following it, as one
// contiguous slice suitable for a single write to an underlying transport.
func (b *Buffer) HeaderBytes() []byte {
	return b.buf[:b.headerReserve+b.pos]
}
