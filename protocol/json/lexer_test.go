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
	"testing"

	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer([]byte(src))
	var toks []Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		cp := Token{Kind: tok.Kind}
		if tok.Lexeme != nil {
			cp.Lexeme = append([]byte(nil), tok.Lexeme...)
		}
		toks = append(toks, cp)
		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestLexerTerminalTokens(t *testing.T) {
	toks := lexAll(t, "{}[]:,()")
	kinds := make([]TokenKind, len(toks))
	for i, tk := range toks {
		kinds[i] = tk.Kind
	}
	require.Equal(t, []TokenKind{
		TokLBrace, TokRBrace, TokLBracket, TokRBracket,
		TokColon, TokComma, TokLParen, TokRParen, TokEOF,
	}, kinds)
}

func TestLexerWhitespaceSkipped(t *testing.T) {
	toks := lexAll(t, "  \t\r\n{ \n }  ")
	require.Equal(t, []TokenKind{TokLBrace, TokRBrace, TokEOF}, []TokenKind{toks[0].Kind, toks[1].Kind, toks[2].Kind})
}

func TestLexerIdentifier(t *testing.T) {
	toks := lexAll(t, "null true false undefined _x$9")
	for i, want := range []string{"null", "true", "false", "undefined", "_x$9"} {
		require.Equal(t, TokIdentifier, toks[i].Kind)
		require.Equal(t, want, string(toks[i].Lexeme))
	}
}

func TestLexerInteger(t *testing.T) {
	toks := lexAll(t, "0 123 -45")
	for i, want := range []string{"0", "123", "-45"} {
		require.Equal(t, TokInteger, toks[i].Kind)
		require.Equal(t, want, string(toks[i].Lexeme))
	}
}

func TestLexerNumeric(t *testing.T) {
	cases := map[string]string{
		"3.14":    "3.14",
		"-0":      "-0",
		"1e10":    "1E10",
		"1E10":    "1E10",
		"3.14e-2": "3.14E-2",
		"2E+5":    "2E+5",
	}
	for in, want := range cases {
		toks := lexAll(t, in)
		kind := toks[0].Kind
		if in == "-0" {
			require.Equal(t, TokInteger, kind)
		} else {
			require.Equal(t, TokNumeric, kind)
		}
		require.Equal(t, want, string(toks[0].Lexeme))
	}
}

func TestLexerStringBasic(t *testing.T) {
	toks := lexAll(t, `"hello"`)
	require.Equal(t, TokString, toks[0].Kind)
	require.Equal(t, "hello", string(toks[0].Lexeme))
}

func TestLexerStringSingleQuote(t *testing.T) {
	toks := lexAll(t, `'hello'`)
	require.Equal(t, TokString, toks[0].Kind)
	require.Equal(t, "hello", string(toks[0].Lexeme))
}

func TestLexerStringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\n\t\r\b\f\\\/\"\'\0z"`)
	require.Equal(t, TokString, toks[0].Kind)
	require.Equal(t, "a\n\t\r\b\f\\/\"'\x00z", string(toks[0].Lexeme))
}

func TestLexerStringLiteralUTF8PassesThrough(t *testing.T) {
	toks := lexAll(t, `"é"`)
	require.Equal(t, TokString, toks[0].Kind)
	require.Equal(t, "\xc3\xa9", string(toks[0].Lexeme))
}

func TestLexerStringUnicodeEscape(t *testing.T) {
	// raw string so the source bytes are the literal escape sequence
	// (quote, backslash, u, 0, 0, e, 9, quote) for the Lexer to decode,
	// as opposed to the literal UTF-8 byte passthrough test above.
	toks := lexAll(t, `"\u00e9"`)
	require.Equal(t, TokString, toks[0].Kind)
	require.Equal(t, "\xc3\xa9", string(toks[0].Lexeme))
}

func TestLexerStringUnicodeEscapeThreeByte(t *testing.T) {
	toks := lexAll(t, `"\u4e2d"`)
	require.Equal(t, TokString, toks[0].Kind)
	require.Equal(t, "\xe4\xb8\xad", string(toks[0].Lexeme))
}

func TestLexerStringIllegalUnicodeEscape(t *testing.T) {
	l := NewLexer([]byte(`"\u00g9"`))
	tok, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, TokIllegalString, tok.Kind)
}

func TestLexerStringIllegalControlChar(t *testing.T) {
	l := NewLexer([]byte("\"a\nb\""))
	tok, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, TokIllegalString, tok.Kind)
}

func TestLexerStringIllegalEscape(t *testing.T) {
	l := NewLexer([]byte(`"a\qb"`))
	tok, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, TokIllegalString, tok.Kind)
}

func TestLexerUnknownChar(t *testing.T) {
	l := NewLexer([]byte("#"))
	tok, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, TokUnknown, tok.Kind)
}

func TestLexerLexemeStableUntilNextCall(t *testing.T) {
	l := NewLexer([]byte(`"abc" "def"`))
	tok1, err := l.NextToken()
	require.NoError(t, err)
	first := append([]byte(nil), tok1.Lexeme...)
	require.Equal(t, "abc", string(first))

	_, err = l.NextToken()
	require.NoError(t, err)
	// first's own copy is unaffected, demonstrating the caller must copy
	// before calling NextToken again if it needs the lexeme to persist.
	require.Equal(t, "abc", string(first))
}
