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

// TokenKind represents the fixed set of tokens the Lexer can produce.
// originally modeled on pgjson's jsonlex_token_t
type TokenKind int8

const (
	TokLBrace TokenKind = iota + 1
	TokRBrace
	TokColon
	TokComma
	TokLBracket
	TokRBracket
	TokLParen
	TokRParen

	TokIdentifier // includes null, true, false, undefined; resolved by the Parser
	TokInteger    // digits only, optionally preceded by minus
	TokNumeric    // decimal point and/or exponent present
	TokString

	TokIllegalString
	TokUnknown
	TokEOF
)

// String returns a human-readable token name, used to render parse error
// messages the way the original "got <TOKEN NAME>" diagnostics read.
func (k TokenKind) String() string {
	switch k {
	case TokLBrace:
		return "LEFT BRACE"
	case TokRBrace:
		return "RIGHT BRACE"
	case TokColon:
		return "COLON"
	case TokComma:
		return "COMMA"
	case TokLBracket:
		return "LEFT BRACKET"
	case TokRBracket:
		return "RIGHT BRACKET"
	case TokLParen:
		return "LEFT PARENTHESIS"
	case TokRParen:
		return "RIGHT PARENTHESIS"
	case TokIdentifier:
		return "IDENTIFIER"
	case TokInteger:
		return "INTEGER"
	case TokNumeric:
		return "NUMERIC"
	case TokString:
		return "STRING"
	case TokIllegalString:
		return "<BAD ESCAPE SEQUENCE IN STRING>"
	case TokEOF:
		return "<EOF>"
	default:
		return "<UNKNOWN>"
	}
}

// Token is one lexer token. For TokIdentifier, TokInteger, TokNumeric and
// TokString, Lexeme is a view into the Lexer's scratch buffer valid only
// until the next call to Lexer.NextToken. For TokUnknown it is a fresh
// one-byte slice holding the unrecognized byte; for the other kinds
// (including TokIllegalString) it is nil.
type Token struct {
	Kind   TokenKind
	Lexeme []byte
}
