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

// BinaryWriter is a Visitor that serializes the events it's fed into the
// compact length-prefixed binary form. It is the transcode target for
// TranscodeJSONToBinary.
//
// Grounded on orig/jsonlib/json_transcode_json_to_binary.c. Object/array
// lengths aren't known until every member has been written, so the writer
// reserves reserveLength+1 header bytes at the start of each compound and
// backpatches them once the compound closes; if the real length needs a
// different number of continuation bytes than was reserved, the payload is
// memmove'd left or right to close the gap or make room.
type BinaryWriter struct {
	dst *Buffer
	// compoundStart holds the logical start position of each currently
	// open object/array, pushed by startCompound and popped by
	// finishCompound.
	compoundStart []int
}

// NewBinaryWriter returns a BinaryWriter appending encoded values to dst.
func NewBinaryWriter(dst *Buffer) *BinaryWriter {
	return &BinaryWriter{dst: dst}
}

// writeTypeLength writes a type+length header for a scalar with a
// known-in-advance length (STRING, NUMBER): byte 1 carries the type and the
// low 4 bits of length, with up to 4 further 7-bit continuation bytes.
func writeTypeLength(dst *Buffer, typ uint8, length uint32) {
	lenchunk := byte(length & 0x0f)
	length >>= 4
	first := (typ << binTypeShift) | lenchunk
	if length == 0 {
		dst.AppendByte(first)
		return
	}
	dst.AppendByte(first | binTypeLengthCont)

	for i := 0; i < 4; i++ {
		chunk := byte(length & 0x7f)
		length >>= 7
		if length == 0 {
			dst.AppendByte(chunk)
			return
		}
		dst.AppendByte(chunk | 0x80)
	}
}

func (w *BinaryWriter) startCompound() {
	start := w.dst.Skip(reserveLength + 1)
	w.compoundStart = append(w.compoundStart, start)
}

// finishCompound backpatches the type+length header reserved by
// startCompound for the compound now ending at the buffer's current
// position, per finalize_object_array.
func (w *BinaryWriter) finishCompound(typ uint8) {
	n := len(w.compoundStart)
	start := w.compoundStart[n-1]
	w.compoundStart = w.compoundStart[:n-1]

	actlen := uint32(w.dst.Len() - start - reserveLength - 1)

	if actlen == 0 {
		w.dst.Truncate(start)
		w.dst.AppendByte(typ << binTypeShift)
		return
	}

	lenchunk := byte(actlen & 0x0f)
	lenshift := actlen >> 4

	if lenshift == 0 {
		w.dst.WriteAt(start, []byte{(typ << binTypeShift) | lenchunk})
		if reserveLength > 0 {
			w.dst.CopyWithin(start+1, start+1+reserveLength, int(actlen))
			w.dst.Truncate(w.dst.Len() - reserveLength)
		}
		return
	}

	w.dst.WriteAt(start, []byte{(typ << binTypeShift) | lenchunk | binTypeLengthCont})

	var lenbytes [4]byte
	lenindex := 0
	for ; lenindex < 4; lenindex++ {
		chunk := byte(lenshift & 0x7f)
		lenshift >>= 7
		if lenshift == 0 {
			lenbytes[lenindex] = chunk
			lenindex++
			break
		}
		lenbytes[lenindex] = chunk | 0x80
	}

	if lenindex == reserveLength {
		w.dst.WriteAt(start+1, lenbytes[:reserveLength])
		return
	}

	if lenindex > reserveLength {
		grow := lenindex - reserveLength
		w.dst.Skip(grow)
		w.dst.CopyWithin(start+1+lenindex, start+1+reserveLength, int(actlen))
	} else {
		shrink := reserveLength - lenindex
		w.dst.CopyWithin(start+1+lenindex, start+1+reserveLength, int(actlen))
		w.dst.Truncate(w.dst.Len() - shrink)
	}
	w.dst.WriteAt(start+1, lenbytes[:lenindex])
}

func (w *BinaryWriter) StartObject() error {
	w.startCompound()
	return nil
}

func (w *BinaryWriter) EndObject() error {
	w.finishCompound(binTypeObject)
	return nil
}

func (w *BinaryWriter) StartArray() error {
	w.startCompound()
	return nil
}

func (w *BinaryWriter) EndArray() error {
	w.finishCompound(binTypeArray)
	return nil
}

func (w *BinaryWriter) AddEmptyObject() error {
	w.dst.AppendByte(binTypeObject << binTypeShift)
	return nil
}

func (w *BinaryWriter) AddEmptyArray() error {
	w.dst.AppendByte(binTypeArray << binTypeShift)
	return nil
}

func (w *BinaryWriter) PushLabel(label []byte) error {
	PackModifiedUTF8(w.dst, label)
	return nil
}

func (w *BinaryWriter) AddBool(v bool) error {
	w.dst.EnsureDelta(2)
	w.dst.AppendByte(binSSPrefix)
	if v {
		w.dst.AppendByte(binSSDataTrue)
	} else {
		w.dst.AppendByte(binSSDataFalse)
	}
	return nil
}

func (w *BinaryWriter) AddString(s []byte) error {
	writeTypeLength(w.dst, binTypeString, uint32(len(s)))
	w.dst.Append(s)
	return nil
}

func (w *BinaryWriter) AddNumber(lexeme []byte) error {
	writeTypeLength(w.dst, binTypeNumber, uint32(len(lexeme)))
	w.dst.Append(lexeme)
	return nil
}

func (w *BinaryWriter) AddNull() error {
	w.dst.EnsureDelta(2)
	w.dst.AppendByte(binSSPrefix)
	w.dst.AppendByte(binSSDataNull)
	return nil
}

func (w *BinaryWriter) AddUndefined() error {
	w.dst.EnsureDelta(2)
	w.dst.AppendByte(binSSPrefix)
	w.dst.AppendByte(binSSDataUndef)
	return nil
}
