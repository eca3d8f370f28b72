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

import "fmt"

// Parser is a recursive-descent parser driving a Visitor as it consumes
// JSON text. It owns no output buffer itself; all materialization is left
// to whichever Visitor it is constructed with.
//
// Grammar (grounded on pgjson/shared/json/parser/jsonparse.inc.c):
//
//	value  := object | array | IDENTIFIER | INTEGER | NUMERIC | STRING
//	object := '{' '}' | '{' member (',' member)* '}'
//	member := (IDENTIFIER | STRING) ':' value
//	array  := '[' ']' | '[' value (',' value)* ']'
type Parser struct {
	lex *Lexer
	tok Token
}

// NewParser returns a Parser reading JSON text from src.
func NewParser(src []byte) *Parser {
	p := &Parser{lex: NewLexer(src)}
	return p
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// Parse consumes exactly one JSON value from the source, followed by
// nothing but trailing whitespace and EOF, driving v as it goes.
func (p *Parser) Parse(v Visitor) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.parseValue(v); err != nil {
		return err
	}
	if p.tok.Kind != TokEOF {
		return NewCodecError(ClassParse,
			fmt.Sprintf("expected end of input, got %s", p.tok.Kind))
	}
	return nil
}

func (p *Parser) parseValue(v Visitor) error {
	switch p.tok.Kind {
	case TokLBrace:
		return p.parseObject(v)
	case TokLBracket:
		return p.parseArray(v)
	case TokIdentifier:
		return p.parseIdentifierValue(v)
	case TokInteger, TokNumeric:
		lexeme := internBytes(p.tok.Lexeme)
		if err := v.AddNumber(lexeme); err != nil {
			return err
		}
		return p.advance()
	case TokString:
		s := internBytes(p.tok.Lexeme)
		if err := v.AddString(s); err != nil {
			return err
		}
		return p.advance()
	case TokIllegalString:
		return ErrIllegalString
	default:
		return NewCodecError(ClassParse,
			fmt.Sprintf("expected a value, got %s", p.tok.Kind))
	}
}

func (p *Parser) parseIdentifierValue(v Visitor) error {
	ident := p.lex.ScratchString()
	var err error
	switch ident {
	case "null":
		err = v.AddNull()
	case "true":
		err = v.AddBool(true)
	case "false":
		err = v.AddBool(false)
	case "undefined":
		err = v.AddUndefined()
	default:
		return NewCodecError(ClassParse, fmt.Sprintf("unknown identifier %q", ident))
	}
	if err != nil {
		return err
	}
	return p.advance()
}

func (p *Parser) parseObject(v Visitor) error {
	if err := p.advance(); err != nil { // consume '{'
		return err
	}
	if p.tok.Kind == TokRBrace {
		if err := v.AddEmptyObject(); err != nil {
			return err
		}
		return p.advance()
	}

	if err := v.StartObject(); err != nil {
		return err
	}

	for {
		var label []byte
		switch p.tok.Kind {
		case TokIdentifier, TokString:
			label = internBytes(p.lex.Scratch())
		case TokIllegalString:
			return ErrIllegalString
		default:
			return NewCodecError(ClassParse,
				fmt.Sprintf("expected an object label, got %s", p.tok.Kind))
		}
		if err := v.PushLabel(label); err != nil {
			return err
		}
		if err := p.advance(); err != nil {
			return err
		}

		if p.tok.Kind != TokColon {
			return NewCodecError(ClassParse,
				fmt.Sprintf("expected ':', got %s", p.tok.Kind))
		}
		if err := p.advance(); err != nil {
			return err
		}

		if err := p.parseValue(v); err != nil {
			return err
		}

		switch p.tok.Kind {
		case TokComma:
			if err := p.advance(); err != nil {
				return err
			}
			if p.tok.Kind == TokRBrace {
				return NewCodecError(ClassParse, "expected an object label, got RIGHT BRACE")
			}
			continue
		case TokRBrace:
			if err := v.EndObject(); err != nil {
				return err
			}
			return p.advance()
		default:
			return NewCodecError(ClassParse,
				fmt.Sprintf("expected ',' or '}', got %s", p.tok.Kind))
		}
	}
}

func (p *Parser) parseArray(v Visitor) error {
	if err := p.advance(); err != nil { // consume '['
		return err
	}
	if p.tok.Kind == TokRBracket {
		if err := v.AddEmptyArray(); err != nil {
			return err
		}
		return p.advance()
	}

	if err := v.StartArray(); err != nil {
		return err
	}

	for {
		if err := p.parseValue(v); err != nil {
			return err
		}

		switch p.tok.Kind {
		case TokComma:
			if err := p.advance(); err != nil {
				return err
			}
			if p.tok.Kind == TokRBracket {
				return NewCodecError(ClassParse, "expected a value, got RIGHT BRACKET")
			}
			continue
		case TokRBracket:
			if err := v.EndArray(); err != nil {
				return err
			}
			return p.advance()
		default:
			return NewCodecError(ClassParse,
				fmt.Sprintf("expected ',' or ']', got %s", p.tok.Kind))
		}
	}
}
