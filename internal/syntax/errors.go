package syntax

import (
	"errors"
	"fmt"
)

// Pattern rejection causes. Match with errors.Is.
var (
	ErrUnbalancedParen = errors.New("unbalanced parenthesis")
	ErrStackUnderflow  = errors.New("missing operand")
	ErrDanglingOperand = errors.New("missing operator")
	ErrInvalidSyntax   = errors.New("invalid syntax")
)

// Error describes a rejected pattern. Pos is a byte offset into Expr, or -1
// when the failure has no single location.
type Error struct {
	Err  error
	Expr string
	Pos  int
}

func (e *Error) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%v in %q", e.Err, e.Expr)
	}
	return fmt.Sprintf("%v at offset %d in %q", e.Err, e.Pos, e.Expr)
}

func (e *Error) Unwrap() error {
	return e.Err
}
