// Package parser builds an expression tree from a token sequence.
//
// Grammar (flat, every operator has the same precedence):
//
//	expression = primary (OP primary)*
//	primary    = NUMBER | IDENT | "(" expression ")"
//
// Operators fold strictly left to right, so "2 + 3 * 4" is ((2 + 3) * 4).
package parser

import (
	"strconv"

	"github.com/sarchlab/everisa/ast"
	"github.com/sarchlab/everisa/lexer"
)

// Parser consumes a token slice produced by the lexer.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// NewParser creates a parser positioned at the first token.
func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses tokens as one expression.
func Parse(tokens []lexer.Token) (ast.Node, error) {
	return NewParser(tokens).Parse()
}

// ParseString tokenizes and parses source.
func ParseString(source string) (ast.Node, error) {
	return Parse(lexer.Tokenize(source))
}

// Parse parses one expression starting at the current position.
func (p *Parser) Parse() (ast.Node, error) {
	return p.parseExpression()
}

// Remaining returns the tokens the parser has not consumed.
func (p *Parser) Remaining() []lexer.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return p.tokens[p.pos:]
}

// peek returns the current token without advancing. ok is false at the end
// of input.
func (p *Parser) peek() (tok lexer.Token, ok bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

// consume returns the current token and advances past it.
func (p *Parser) consume() (lexer.Token, error) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, &EndOfInputError{Index: p.pos}
	}

	tok := p.tokens[p.pos]
	p.pos++

	return tok, nil
}

func (p *Parser) parseExpression() (ast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != lexer.OP {
			return left, nil
		}

		opTok, _ := p.consume()
		op, ok := ast.ParseOp(opTok.Text)
		if !ok {
			return nil, &SyntaxError{
				Text: opTok.Text,
				Pos:  opTok.Pos,
				Msg:  "not a binary operator",
			}
		}

		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOp{Left: left, Op: op, Right: right}
	}
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok, err := p.consume()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.NUMBER:
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, &SyntaxError{
				Text: tok.Text,
				Pos:  tok.Pos,
				Msg:  "integer literal out of range",
			}
		}
		return &ast.Number{Value: v}, nil
	case lexer.IDENT:
		return &ast.Variable{Name: tok.Text}, nil
	case lexer.LPAREN:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		// The closing token is taken as is; only its presence is required.
		if _, err := p.consume(); err != nil {
			return nil, err
		}

		return expr, nil
	default:
		return nil, &SyntaxError{Text: tok.Text, Pos: tok.Pos}
	}
}
