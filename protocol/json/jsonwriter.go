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

// jsonFrameKind identifies the compound currently open on the JSONWriter's
// frame stack.
type jsonFrameKind uint8

const (
	frameRoot jsonFrameKind = iota
	frameObject
	frameArray
)

type jsonFrame struct {
	kind      jsonFrameKind
	hasMember bool
}

// JSONWriter is a Visitor that re-serializes the events it's fed back into
// JSON text, either compact or indented. It is the transcode target for
// TranscodeJSONToJSON (canonicalization/pretty-printing) and for rendering
// the result of a BinaryReader walk.
//
// Grounded on orig/jsonlib/json_transcode_to_json.c's JSONPARSE_ACTION_*
// handlers, which track an open-compound stack with a has-member flag per
// level to decide when a separating comma is due.
type JSONWriter struct {
	dst    *Buffer
	stack  []jsonFrame
	indent string // empty means compact output
	depth  int
	// ASCIIOnly, when true, escapes all non-ASCII bytes as \uXXXX instead
	// of passing valid UTF-8 through verbatim.
	ASCIIOnly bool

	pendingLabel bool
}

// NewJSONWriter returns a JSONWriter appending to dst. An empty indent
// produces compact output; a non-empty indent (e.g. "  ") produces
// pretty-printed output using that string per nesting level.
func NewJSONWriter(dst *Buffer, indent string) *JSONWriter {
	return &JSONWriter{dst: dst, indent: indent, stack: []jsonFrame{{kind: frameRoot}}}
}

func (w *JSONWriter) top() *jsonFrame { return &w.stack[len(w.stack)-1] }

func (w *JSONWriter) beforeValue() {
	f := w.top()
	if f.kind == frameRoot {
		return
	}
	if f.hasMember {
		w.dst.AppendByte(',')
	}
	f.hasMember = true
	w.newlineIndent()
}

func (w *JSONWriter) newlineIndent() {
	if w.indent == "" {
		return
	}
	w.dst.AppendByte('\n')
	for i := 0; i < w.depth; i++ {
		w.dst.AppendString(w.indent)
	}
}

func (w *JSONWriter) StartObject() error {
	w.valuePosition()
	w.dst.AppendByte('{')
	w.depth++
	w.stack = append(w.stack, jsonFrame{kind: frameObject})
	return nil
}

func (w *JSONWriter) EndObject() error {
	w.depth--
	closingEmpty := !w.top().hasMember
	w.stack = w.stack[:len(w.stack)-1]
	if !closingEmpty {
		w.newlineIndent()
	}
	w.dst.AppendByte('}')
	return nil
}

func (w *JSONWriter) StartArray() error {
	w.valuePosition()
	w.dst.AppendByte('[')
	w.depth++
	w.stack = append(w.stack, jsonFrame{kind: frameArray})
	return nil
}

func (w *JSONWriter) EndArray() error {
	w.depth--
	closingEmpty := !w.top().hasMember
	w.stack = w.stack[:len(w.stack)-1]
	if !closingEmpty {
		w.newlineIndent()
	}
	w.dst.AppendByte(']')
	return nil
}

func (w *JSONWriter) AddEmptyObject() error {
	w.valuePosition()
	w.dst.Append([]byte{'{', '}'})
	return nil
}

func (w *JSONWriter) AddEmptyArray() error {
	w.valuePosition()
	w.dst.Append([]byte{'[', ']'})
	return nil
}

func (w *JSONWriter) PushLabel(label []byte) error {
	w.beforeValue()
	// a label push counts as starting a member, but the value that
	// follows must not itself be treated as needing a leading comma or
	// newline -- suppress the next beforeValue's separator logic by
	// writing the label/colon directly here instead of through it.
	w.dst.AppendByte('"')
	WriteEscapedString(w.dst, label, '"', w.ASCIIOnly)
	w.dst.AppendByte('"')
	w.dst.AppendByte(':')
	if w.indent != "" {
		w.dst.AppendByte(' ')
	}
	w.pendingLabel = true
	return nil
}

// valuePosition is called at the start of every value-producing method
// (including StartObject/StartArray for compound values). It must not
// double-comma a value immediately following a label: PushLabel already
// accounted for the member separator, so that one case skips beforeValue
// entirely.
func (w *JSONWriter) valuePosition() {
	if w.pendingLabel {
		w.pendingLabel = false
		return
	}
	w.beforeValue()
}

func (w *JSONWriter) AddBool(v bool) error {
	w.valuePosition()
	if v {
		w.dst.Append([]byte("true"))
	} else {
		w.dst.Append([]byte("false"))
	}
	return nil
}

func (w *JSONWriter) AddString(s []byte) error {
	w.valuePosition()
	w.dst.AppendByte('"')
	WriteEscapedString(w.dst, s, '"', w.ASCIIOnly)
	w.dst.AppendByte('"')
	return nil
}

func (w *JSONWriter) AddNumber(lexeme []byte) error {
	w.valuePosition()
	w.dst.Append(lexeme)
	return nil
}

func (w *JSONWriter) AddNull() error {
	w.valuePosition()
	w.dst.Append([]byte("null"))
	return nil
}

func (w *JSONWriter) AddUndefined() error {
	w.valuePosition()
	w.dst.Append([]byte("undefined"))
	return nil
}
