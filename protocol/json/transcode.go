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

import "github.com/bytedance/gopkg/lang/span"

// spanCache backs optional interning of the string, label and number bytes
// the Parser copies out of the lexer's scratch buffer during transcoding, so
// repeated field names across a large document share one backing
// allocation instead of each being copied out fresh.
//
// Grounded on protocol/thrift/binary.go's spanCache/SetSpanCache, which
// wires github.com/bytedance/gopkg/lang/span the same way for Thrift
// string fields. Off by default.
var (
	spanCache       = span.NewSpanCache(1024 * 1024)
	spanCacheEnable bool
)

// SetInternPool enables or disables span-cache interning of string bytes
// copied during transcoding.
func SetInternPool(enable bool) {
	spanCacheEnable = enable
}

func internBytes(s []byte) []byte {
	if !spanCacheEnable {
		return append([]byte(nil), s...)
	}
	return spanCache.Copy(s)
}

// ValidateJSON reports whether src is syntactically valid JSON text,
// without materializing it into any other representation. It corresponds
// to driving a NopVisitor with the Parser.
func ValidateJSON(src []byte) bool {
	p := NewParser(src)
	return p.Parse(NopVisitor{}) == nil
}

// errorMessage renders err the way this package's failure contract
// requires: a human-readable message prefixed with "Error:", per
// spec.md §8 scenario 3 and §7's destination-buffer failure contract.
func errorMessage(err error) string {
	return "Error: " + err.Error()
}

// writeFailure clears dst and writes err's message followed by a trailing
// NUL byte, matching the destination-buffer failure contract used by every
// Transcode* entry point: on failure dst holds only the error message, not
// any partial output.
func writeFailure(dst *Buffer, err error) {
	dst.Truncate(0)
	dst.AppendString(errorMessage(err))
	dst.AppendByte(0)
}

// TranscodeJSONToJSON parses src as JSON text and re-serializes it into
// dst, either compact (indent == "") or pretty-printed with indent
// repeated once per nesting level. It reports ok=false if src is not valid
// JSON, in which case dst holds only a NUL-terminated error message.
func TranscodeJSONToJSON(src []byte, dst *Buffer, indent string) (ok bool) {
	w := NewJSONWriter(dst, indent)
	p := NewParser(src)
	if err := p.Parse(w); err != nil {
		writeFailure(dst, err)
		return false
	}
	return true
}

// TranscodeJSONToBinary parses src as JSON text and encodes it into dst in
// the compact length-prefixed binary form. It reports ok=false if src is
// not valid JSON, in which case dst holds only a NUL-terminated error
// message.
func TranscodeJSONToBinary(src []byte, dst *Buffer) (ok bool) {
	w := NewBinaryWriter(dst)
	p := NewParser(src)
	if err := p.Parse(w); err != nil {
		writeFailure(dst, err)
		return false
	}
	return true
}

// TranscodeBinaryToJSON decodes src from the compact binary form and
// serializes it as JSON text into dst. It reports ok=false if src is
// malformed binary, in which case dst holds only a NUL-terminated error
// message.
func TranscodeBinaryToJSON(src []byte, dst *Buffer) (ok bool) {
	w := NewJSONWriter(dst, "")
	r := NewBinaryReader(src)
	if err := r.Walk(w); err != nil {
		writeFailure(dst, err)
		return false
	}
	return true
}
