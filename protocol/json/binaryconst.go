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

// Binary wire-format constants, verbatim from jsonlib/jsonbinaryconst.h.
//
// Every value byte starts with a type/length header byte: the top 3 bits
// are the type code, the next bit (binTypeLengthCont) says whether the
// length continues into further bytes, and the low 4 bits are the first
// length chunk.
const (
	binTypeObject   uint8 = 0x00
	binTypeArray    uint8 = 0x01
	binTypeString   uint8 = 0x02
	binTypeNumber   uint8 = 0x03
	binTypeSS       uint8 = 0x04 // simple scalar: false/true/null/undefined
	binTypeTString  uint8 = 0x05 // reserved by the original format, unused here
	binTypeSBinary  uint8 = 0x06 // reserved by the original format, unused here
	binTypeReserved uint8 = 0x07

	binTypeShift      = 5
	binTypeLengthCont uint8 = 0x10

	// A simple scalar is encoded as the header byte binSSPrefix (type SS,
	// 4-bit length of 1) followed by one binSSData* byte.
	binSSPrefix      uint8 = 0x81
	binSSDataFalse   uint8 = 0x00
	binSSDataTrue    uint8 = 0x01
	binSSDataNull    uint8 = 0x02
	binSSDataUndef   uint8 = 0x03
)

// reserveLength is the number of length-continuation bytes the binary
// writer speculatively reserves for an object/array before it knows the
// compound's actual encoded length, matching RESERVE_LENGTH in
// orig/jsonlib/json_transcode_json_to_binary.c. It is not exposed as a
// public knob: the backpatch logic in binarywriter.go is correct for any
// value from 0 to 4 (the most continuation bytes a length can need), but 1
// is what the original format was tuned for and
// there is no use case in this codec for changing it.
const reserveLength = 1
