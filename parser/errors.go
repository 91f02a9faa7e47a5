package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax matches every *SyntaxError.
	ErrSyntax = errors.New("syntax error")

	// ErrEndOfInput matches every *EndOfInputError.
	ErrEndOfInput = errors.New("unexpected end of input")
)

// SyntaxError reports a token that cannot start or continue an expression.
type SyntaxError struct {
	Text string // the offending token text
	Pos  int    // byte offset of the token in the source
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s at offset %d: %s", e.Msg, e.Pos, e.Text)
	}
	return fmt.Sprintf("unexpected token at offset %d: %s", e.Pos, e.Text)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// EndOfInputError reports a consume past the last token.
type EndOfInputError struct {
	Index int // token index that was requested
}

func (e *EndOfInputError) Error() string {
	return fmt.Sprintf("unexpected end of input at token %d", e.Index)
}

func (e *EndOfInputError) Unwrap() error { return ErrEndOfInput }

// IsIncomplete reports whether err means more input could complete the
// expression.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrEndOfInput)
}
