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

import "github.com/cloudwego/jsonwire/unsafex"

// Lexer is a byte-driven scanner over a JSON text source, producing the
// fixed token set described by TokenKind. It owns a scratch buffer that
// string/number/identifier lexemes are collected into; the scratch content
// returned by NextToken is only valid until the next call to NextToken.
//
// Grounded on pgjson/jsonlib/jsonlex.inc.c's jsonlex_next_token state
// machine; GETC/UNGETC become a position index and a one-byte-back seek
// since the Go Lexer owns its source slice directly rather than going
// through a macro-configurable character source.
type Lexer struct {
	src []byte
	pos int

	scratch []byte

	Line, Col         int
	startLine, startCol int
}

// NewLexer returns a Lexer scanning src from the beginning.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, Line: 1, Col: 0}
}

// Reset rewinds the Lexer to scan a new source from the beginning, reusing
// its scratch buffer allocation.
func (l *Lexer) Reset(src []byte) {
	l.src = src
	l.pos = 0
	l.scratch = l.scratch[:0]
	l.Line, l.Col = 1, 0
}

func (l *Lexer) getc() int {
	if l.pos >= len(l.src) {
		return -1
	}
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.Line++
		l.Col = 0
	} else {
		l.Col++
	}
	return int(c)
}

// ungetc backs up exactly one byte, as called for only the byte most
// recently returned by getc (per the spec's lexer contract).
func (l *Lexer) ungetc() {
	l.pos--
	if l.Col > 0 {
		l.Col--
	}
}

func (l *Lexer) clearScratch() {
	l.scratch = l.scratch[:0]
}

func (l *Lexer) bufferByte(c byte) {
	l.scratch = append(l.scratch, c)
}

// Scratch returns the current scratch buffer contents (the most recently
// lexed lexeme). Valid only until the next NextToken call.
func (l *Lexer) Scratch() []byte { return l.scratch }

// ScratchString returns a zero-copy string view of the scratch buffer,
// valid under the same lifetime constraint as Scratch.
func (l *Lexer) ScratchString() string { return unsafex.BinaryToString(l.scratch) }

// NextToken scans and returns the next token from the source.
func (l *Lexer) NextToken() (Token, error) {
	l.clearScratch()

	for {
		charin := l.getc()
		if charin < 0 {
			return Token{Kind: TokEOF}, nil
		}
		cc := lexClassTable[charin]

		switch cc.primary() {
		case lexClassWhite:
			continue

		case lexClassTerm:
			return Token{Kind: cc.termToken()}, nil

		case lexClassIDChar:
			return l.lexIdentifier(byte(charin))

		case lexClassNumeric:
			return l.lexNumber(byte(charin))

		case lexClassQuote:
			return l.lexString(byte(charin))

		default:
			return Token{Kind: TokUnknown, Lexeme: []byte{byte(charin)}}, nil
		}
	}
}

func (l *Lexer) lexIdentifier(first byte) (Token, error) {
	l.bufferByte(first)
	for {
		charin := l.getc()
		if charin < 0 {
			break
		}
		cc := lexClassTable[charin]
		if cc&attrIDCharCont == 0 {
			l.ungetc()
			break
		}
		l.bufferByte(byte(charin))
	}
	return Token{Kind: TokIdentifier, Lexeme: l.scratch}, nil
}

func (l *Lexer) lexNumber(first byte) (Token, error) {
	l.bufferByte(first)

	var charin int
	// integer digits (optimized for the common all-integer case)
	for {
		charin = l.getc()
		if charin < 0 {
			return Token{Kind: TokInteger, Lexeme: l.scratch}, nil
		}
		cc := lexClassTable[charin]
		if cc&attrDigit == 0 {
			break
		}
		l.bufferByte(byte(charin))
	}

	cc := lexClassTable[charin]
	if cc&attrIntSep == 0 {
		l.ungetc()
		return Token{Kind: TokInteger, Lexeme: l.scratch}, nil
	}

	if charin == '.' {
		l.bufferByte('.')
		for {
			charin = l.getc()
			if charin < 0 {
				return Token{Kind: TokNumeric, Lexeme: l.scratch}, nil
			}
			cc = lexClassTable[charin]
			if cc&attrDigit == 0 {
				break
			}
			l.bufferByte(byte(charin))
		}
	}

	if charin != 'e' && charin != 'E' {
		l.ungetc()
		return Token{Kind: TokNumeric, Lexeme: l.scratch}, nil
	}

	charin = l.getc()
	if charin < 0 {
		return Token{Kind: TokNumeric, Lexeme: l.scratch}, nil
	}
	cc = lexClassTable[charin]
	if cc.primary() != lexClassNumeric {
		l.ungetc()
		return Token{Kind: TokNumeric, Lexeme: l.scratch}, nil
	}
	l.bufferByte('E')
	for {
		l.bufferByte(byte(charin))
		charin = l.getc()
		if charin < 0 {
			return Token{Kind: TokNumeric, Lexeme: l.scratch}, nil
		}
		cc = lexClassTable[charin]
		if cc&attrDigit == 0 {
			l.ungetc()
			return Token{Kind: TokNumeric, Lexeme: l.scratch}, nil
		}
	}
}

func (l *Lexer) lexString(quoteChar byte) (Token, error) {
	for {
		charin := l.getc()
		if charin < 0 || charin < 0x20 {
			return Token{Kind: TokIllegalString}, nil
		}
		if byte(charin) == quoteChar {
			return Token{Kind: TokString, Lexeme: l.scratch}, nil
		}
		if charin == '\\' {
			esc := l.getc()
			if esc == 'u' {
				if !l.lexUnicodeEscape() {
					return Token{Kind: TokIllegalString}, nil
				}
				continue
			}
			var repl byte
			switch esc {
			case '\'':
				repl = '\''
			case '"':
				repl = '"'
			case '\\':
				repl = '\\'
			case '/':
				repl = '/'
			case 'n':
				repl = '\n'
			case 'r':
				repl = '\r'
			case 't':
				repl = '\t'
			case 'b':
				repl = '\b'
			case 'f':
				repl = '\f'
			case '0':
				repl = 0
			default:
				return Token{Kind: TokIllegalString}, nil
			}
			l.bufferByte(repl)
			continue
		}
		l.bufferByte(byte(charin))
	}
}

// lexUnicodeEscape decodes a \uXXXX escape into its UTF-8 encoding,
// appended to the scratch buffer. Grounded on
// pgjson/jsonlib/jsonlex.inc.c's jsonlex_unicode_escape.
func (l *Lexer) lexUnicodeEscape() bool {
	var codepoint uint32
	for i := 0; i < 4; i++ {
		digit := l.getc()
		var nibble uint32
		switch {
		case digit >= '0' && digit <= '9':
			nibble = uint32(digit - '0')
		case digit >= 'a' && digit <= 'f':
			nibble = uint32(digit-'a') + 10
		case digit >= 'A' && digit <= 'F':
			nibble = uint32(digit-'A') + 10
		default:
			return false
		}
		codepoint = (codepoint << 4) | nibble
	}

	switch {
	case codepoint <= 0x7f:
		l.bufferByte(byte(codepoint))
	case codepoint <= 0x7ff:
		l.bufferByte(0xc0 | byte(codepoint>>6&0x1f))
		l.bufferByte(0x80 | byte(codepoint&0x3f))
	case codepoint <= 0xffff:
		l.bufferByte(0xe0 | byte(codepoint>>12&0x0f))
		l.bufferByte(0x80 | byte(codepoint>>6&0x3f))
		l.bufferByte(0x80 | byte(codepoint&0x3f))
	case codepoint <= 0x10ffff:
		l.bufferByte(0xf0 | byte(codepoint>>18&0x07))
		l.bufferByte(0x80 | byte(codepoint>>12&0x3f))
		l.bufferByte(0x80 | byte(codepoint>>6&0x3f))
		l.bufferByte(0x80 | byte(codepoint&0x3f))
	default:
		return false
	}
	return true
}
