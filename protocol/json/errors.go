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
	"errors"
	"fmt"
)

// ErrorClass groups the error kinds from the codec's failure taxonomy:
// lexing, parsing, binary-wire decoding, and resource exhaustion.
type ErrorClass int8

const (
	ClassLex ErrorClass = iota
	ClassParse
	ClassBinary
	ClassResource
)

func (c ErrorClass) String() string {
	switch c {
	case ClassLex:
		return "lex"
	case ClassParse:
		return "parse"
	case ClassBinary:
		return "binary"
	case ClassResource:
		return "resource"
	default:
		return "unknown"
	}
}

// CodecError is the error type the Parser returns for grammar errors and
// UnpackModifiedUTF8 returns for an unterminated label. It carries the
// ErrorClass so callers can tell the failure's class without string
// matching, while still satisfying the plain error interface for callers
// that don't care. Illegal-string and binary-decoding failures are
// returned as the bare sentinels below, not as a CodecError.
type CodecError struct {
	Class ErrorClass
	Msg   string
	Err   error // wrapped cause, if any; nil for most lex/parse errors
}

func (e *CodecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Class, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Class, e.Msg)
}

func (e *CodecError) Unwrap() error { return e.Err }

// NewCodecError constructs a CodecError for the given class and message.
func NewCodecError(class ErrorClass, msg string) *CodecError {
	return &CodecError{Class: class, Msg: msg}
}

// NewCodecErrorWithErr wraps an underlying error (e.g. from the allocator)
// into the codec's own error taxonomy.
func NewCodecErrorWithErr(class ErrorClass, msg string, err error) *CodecError {
	return &CodecError{Class: class, Msg: msg, Err: err}
}

// Sentinel errors for the specific LexError/ParseError/BinaryError/
// ResourceError kinds named in the codec's failure taxonomy.
// ErrIllegalString (from the Parser) and ErrTruncated, ErrUnknownType,
// ErrMalformedScalar and ErrLengthOverflow (from the BinaryReader) are
// returned as-is, so errors.Is matches them. The other sentinels are not
// returned by any function in this package: parse errors come back as a
// *CodecError with ClassParse and a message naming the offending token.
var (
	ErrIllegalString = errors.New("illegal string escape or control character")
	ErrUnknownChar   = errors.New("unrecognized character")

	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrExpectedLabel        = errors.New("expected object label")
	ErrExpectedColon        = errors.New("expected colon")
	ErrExpectedValue        = errors.New("expected value")
	ErrExpectedCommaOrClose = errors.New("expected comma or close")
	ErrExpectedEOF          = errors.New("expected end of input")
	ErrUnknownIdentifier    = errors.New("unrecognized identifier")

	ErrTruncated       = errors.New("truncated binary value")
	ErrUnknownType     = errors.New("unknown binary type code")
	ErrMalformedScalar = errors.New("malformed simple scalar")
	ErrLengthOverflow  = errors.New("binary length overflow")

	ErrOutOfMemory = errors.New("out of memory")
)
