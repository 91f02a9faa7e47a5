// Package lexer turns expression source text into a flat sequence of tokens.
package lexer

import "fmt"

// Kind identifies the category of a lexed token.
type Kind int

const (
	NUMBER Kind = iota
	IDENT
	OP
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	SEMICOLON

	// WHITESPACE is matched by the scanner but never emitted.
	WHITESPACE
)

var kindNames = [...]string{
	NUMBER:     "NUMBER",
	IDENT:      "IDENT",
	OP:         "OP",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	SEMICOLON:  "SEMICOLON",
	WHITESPACE: "WHITESPACE",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical unit produced by Tokenize.
type Token struct {
	Kind Kind
	Text string // the exact source text that was matched
	Pos  int    // byte offset of Text in the source
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-8q @%d", t.Kind, t.Text, t.Pos)
}
