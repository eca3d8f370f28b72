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

func escapeToString(s []byte, quote byte, asciiOnly bool) string {
	b := NewBuffer(0)
	WriteEscapedString(b, s, quote, asciiOnly)
	return string(b.Bytes())
}

func TestWriteEscapedStringVerbatim(t *testing.T) {
	require.Equal(t, `hello world`, escapeToString([]byte("hello world"), '"', false))
}

func TestWriteEscapedStringControlChars(t *testing.T) {
	require.Equal(t, `\n\t\r\b\f`, escapeToString([]byte("\n\t\r\b\f"), '"', false))
	require.Equal(t, `\x01\x1f`, escapeToString([]byte{0x01, 0x1f}, '"', false))
}

func TestWriteEscapedStringQuoteAndBackslash(t *testing.T) {
	require.Equal(t, `\"`, escapeToString([]byte(`"`), '"', false))
	require.Equal(t, `'`, escapeToString([]byte(`'`), '"', false))
	require.Equal(t, `\\`, escapeToString([]byte(`\`), '"', false))
	require.Equal(t, `\/`, escapeToString([]byte(`/`), '"', false))
}

func TestWriteEscapedStringSingleQuoteActive(t *testing.T) {
	require.Equal(t, `"`, escapeToString([]byte(`"`), '\'', false))
	require.Equal(t, `\'`, escapeToString([]byte(`'`), '\'', false))
}

func TestWriteEscapedStringUTF8NonASCIIMode(t *testing.T) {
	// "heéllo", 'é' is U+00E9, 2-byte UTF-8: 0xC3 0xA9; passed through
	// verbatim in non-ASCII mode, per spec.md §8 scenario 4.
	require.Equal(t, "he\xc3\xa9llo", escapeToString([]byte("he\xc3\xa9llo"), '"', false))
}

func TestWriteEscapedStringUTF8ASCIIMode(t *testing.T) {
	// same input in ASCII mode escapes the non-ASCII byte, per spec.md §8
	// scenario 4.
	require.Equal(t, `he\u00e9llo`, escapeToString([]byte("he\xc3\xa9llo"), '"', true))
}

func TestWriteEscapedStringThreeByteASCIIMode(t *testing.T) {
	// U+4E2D (中) = 0xE4 0xB8 0xAD
	require.Equal(t, `\u4e2d`, escapeToString([]byte{0xe4, 0xb8, 0xad}, '"', true))
	require.Equal(t, "\xe4\xb8\xad", escapeToString([]byte{0xe4, 0xb8, 0xad}, '"', false))
}

func TestWriteEscapedStringFourByteBecomesReplacement(t *testing.T) {
	// U+1F600 (grinning face) = 0xF0 0x9F 0x98 0x80, above U+FFFF: ASCII
	// mode can't represent it as a \uXXXX escape, so it becomes the
	// replacement sequence. Non-ASCII mode passes the valid UTF-8 bytes
	// through verbatim regardless of codepoint width.
	seq := []byte{0xf0, 0x9f, 0x98, 0x80}
	require.Equal(t, `\`+`uFFFD`, escapeToString(seq, '"', true))
	require.Equal(t, string(seq), escapeToString(seq, '"', false))
}

func TestWriteEscapedStringMalformedContinuation(t *testing.T) {
	// the trailing 0x20 is not a valid continuation byte, so only the lead
	// byte is replaced; the space that follows is emitted verbatim.
	require.Equal(t, `\`+`uFFFD `, escapeToString([]byte{0xc3, 0x20}, '"', false))
	require.Equal(t, `\`+`uFFFD`, escapeToString([]byte{0xc3}, '"', false))
}

func TestWriteEscapedStringAllBytesASCIIOutput(t *testing.T) {
	// every byte 0x00..0xff, ASCII mode must escape all non-printable/non-ASCII.
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	out := escapeToString(all, '"', true)
	for _, c := range []byte(out) {
		require.Less(t, c, byte(0x80))
	}
}

func TestPackUnpackModifiedUTF8(t *testing.T) {
	b := NewBuffer(0)
	PackModifiedUTF8(b, []byte("k\x00ey"))
	require.Equal(t, []byte{'k', 0xc0, 0x80, 'e', 'y', 0x00}, b.Bytes())

	label, n, err := UnpackModifiedUTF8(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, "k\x00ey", string(label))
	require.Equal(t, b.Len(), n)
}

func TestUnpackModifiedUTF8Unterminated(t *testing.T) {
	_, _, err := UnpackModifiedUTF8([]byte("noterminator"))
	require.Error(t, err)
}

func TestPackModifiedUTF8NoEmbeddedNUL(t *testing.T) {
	b := NewBuffer(0)
	PackModifiedUTF8(b, []byte("plain"))
	out := b.Bytes()
	require.Equal(t, byte(0), out[len(out)-1])
	for _, c := range out[:len(out)-1] {
		require.NotEqual(t, byte(0), c)
	}
}
