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

// BinaryReader walks a buffer in the compact length-prefixed binary form
// and drives a Visitor with the events it finds, recursing into nested
// objects/arrays. It is the transcode source for TranscodeBinaryToJSON and
// for any other Visitor that wants to consume binary-encoded input.
//
// Grounded on pgjson/jsonlib/json_transcode_binary_to_json.c's
// extract_type_length/output_object/output_array/output_value. One
// deliberate deviation: extract_type_length there accumulates
// length-continuation chunks with `length!=chunk<<shift` (a stray `!=`
// typo for `|=`), which corrupts any length whose continuation bytes
// aren't all zero going in. This reader accumulates with `|=`.
type BinaryReader struct {
	data []byte
}

// NewBinaryReader returns a BinaryReader over data.
func NewBinaryReader(data []byte) *BinaryReader {
	return &BinaryReader{data: data}
}

// extractTypeLength decodes the type+length header starting at src,
// returning the type code, the value payload slice, and the number of
// bytes consumed from src (header plus payload).
func extractTypeLength(src []byte) (typ uint8, payload []byte, consumed int, err error) {
	if len(src) == 0 {
		return 0, nil, 0, ErrTruncated
	}
	typespec := src[0]
	typ = typespec >> binTypeShift
	length := uint32(typespec & 0x0f)
	pos := 1

	if typespec&binTypeLengthCont != 0 {
		shift := uint(4)
		for {
			if pos >= len(src) {
				return 0, nil, 0, ErrTruncated
			}
			lencont := src[pos]
			pos++
			length |= uint32(lencont&0x7f) << shift
			if lencont&0x80 == 0 {
				break
			}
			shift += 7
			if shift > 25 {
				return 0, nil, 0, ErrLengthOverflow
			}
		}
	}

	if pos+int(length) > len(src) {
		return 0, nil, 0, ErrTruncated
	}

	return typ, src[pos : pos+int(length)], pos + int(length), nil
}

// Walk decodes exactly one value from the reader's data and drives v with
// it, recursing into any nested objects/arrays.
func (r *BinaryReader) Walk(v Visitor) error {
	typ, payload, _, err := extractTypeLength(r.data)
	if err != nil {
		return err
	}
	return outputValue(typ, payload, v)
}

func outputValue(typ uint8, data []byte, v Visitor) error {
	switch typ {
	case binTypeObject:
		return outputObject(data, v)
	case binTypeArray:
		return outputArray(data, v)
	case binTypeString:
		return v.AddString(data)
	case binTypeNumber:
		return v.AddNumber(data)
	case binTypeSS:
		if len(data) == 0 {
			return ErrMalformedScalar
		}
		switch data[0] {
		case binSSDataFalse:
			return v.AddBool(false)
		case binSSDataTrue:
			return v.AddBool(true)
		case binSSDataNull:
			return v.AddNull()
		case binSSDataUndef:
			return v.AddUndefined()
		default:
			return ErrMalformedScalar
		}
	default:
		return ErrUnknownType
	}
}

func outputObject(data []byte, v Visitor) error {
	empty := true
	src := data
	for len(src) > 0 {
		if empty {
			if err := v.StartObject(); err != nil {
				return err
			}
			empty = false
		}

		label, n, err := UnpackModifiedUTF8(src)
		if err != nil {
			return err
		}
		src = src[n:]

		if err := v.PushLabel(label); err != nil {
			return err
		}

		typ, payload, consumed, err := extractTypeLength(src)
		if err != nil {
			return err
		}
		src = src[consumed:]

		if err := outputValue(typ, payload, v); err != nil {
			return err
		}
	}

	if empty {
		return v.AddEmptyObject()
	}
	return v.EndObject()
}

func outputArray(data []byte, v Visitor) error {
	empty := true
	src := data
	for len(src) > 0 {
		if empty {
			if err := v.StartArray(); err != nil {
				return err
			}
			empty = false
		}

		typ, payload, consumed, err := extractTypeLength(src)
		if err != nil {
			return err
		}
		src = src[consumed:]

		if err := outputValue(typ, payload, v); err != nil {
			return err
		}
	}

	if empty {
		return v.AddEmptyArray()
	}
	return v.EndArray()
}
